package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"analytics-gateway/internal/logging"
	"analytics-gateway/internal/model"
	"analytics-gateway/internal/repository"
)

const flushTimeout = 5 * time.Second

// AuditWorker collects fetch records and persists them in the background.
type AuditWorker interface {
	Enqueue(record model.FetchRecord)
	Shutdown()
}

type batchAuditWorker struct {
	repo          repository.FetchRepository
	queue         chan model.FetchRecord
	batchSize     int
	flushInterval time.Duration
	logger        *slog.Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewBatchAuditWorker starts a worker that flushes to repo every batchSize
// records or every interval, whichever comes first.
func NewBatchAuditWorker(repo repository.FetchRepository, bufferSize, batchSize int, interval time.Duration, logger *slog.Logger) *batchAuditWorker {
	if logger == nil {
		logger = slog.Default()
	}
	worker := &batchAuditWorker{
		repo:          repo,
		queue:         make(chan model.FetchRecord, bufferSize),
		batchSize:     batchSize,
		flushInterval: interval,
		logger:        logger.With(logging.Operation("audit_worker")),
	}
	worker.wg.Add(1)
	go worker.startLoop()
	return worker
}

// Enqueue never blocks the request path: when the buffer is full the record
// is dropped and a warning logged.
func (w *batchAuditWorker) Enqueue(record model.FetchRecord) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.closed {
		return
	}

	select {
	case w.queue <- record:
	default:
		w.logger.Warn("audit queue full, dropping record",
			logging.RequestID(record.RequestID),
			logging.Property(record.PropertyID))
	}
}

// Shutdown stops accepting records and waits until the queue is flushed.
func (w *batchAuditWorker) Shutdown() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	close(w.queue)
	w.mu.Unlock()

	w.wg.Wait()
	w.logger.Info("audit worker stopped")
}

func (w *batchAuditWorker) startLoop() {
	defer w.wg.Done()

	var batch []model.FetchRecord
	ticker := time.NewTicker(w.flushInterval)
	defer ticker.Stop()

	for {
		select {
		case record, ok := <-w.queue:
			if !ok {
				if len(batch) > 0 {
					w.bulkInsert(batch)
				}
				return
			}

			batch = append(batch, record)
			if len(batch) >= w.batchSize {
				w.bulkInsert(batch)
				batch = nil
			}

		case <-ticker.C:
			if len(batch) > 0 {
				w.bulkInsert(batch)
				batch = nil
			}
		}
	}
}

func (w *batchAuditWorker) bulkInsert(records []model.FetchRecord) {
	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()

	if err := w.repo.CreateBatch(ctx, records); err != nil {
		w.logger.Error("audit flush failed", slog.Int("records", len(records)), logging.Err(err))
		return
	}
	w.logger.Debug("audit records flushed", slog.Int("records", len(records)))
}

type nopAuditWorker struct{}

// NewNopAuditWorker returns a worker that discards every record.
func NewNopAuditWorker() AuditWorker {
	return nopAuditWorker{}
}

func (nopAuditWorker) Enqueue(model.FetchRecord) {}

func (nopAuditWorker) Shutdown() {}
