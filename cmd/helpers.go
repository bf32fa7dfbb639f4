package cmd

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/mattn/go-isatty"

	"analytics-gateway/internal/config"
	"analytics-gateway/internal/ga4"
	"analytics-gateway/internal/logging"
	"analytics-gateway/internal/mailchimp"
	"analytics-gateway/internal/service"
)

// printJSON writes v to stdout, indented when forced or when stdout is a terminal.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	if prettyFlag || isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

// newLogger builds the process logger from cfg and installs it as the default.
func newLogger(cfg *config.Config) (*slog.Logger, io.Closer) {
	logger, closer := logging.New(logging.Options{
		Production: cfg.IsProduction(),
		Level:      cfg.LogLevel,
		File:       cfg.LogFile,
	})
	slog.SetDefault(logger)
	return logger, closer
}

// cliLogger keeps one-off commands quiet on stderr so stdout stays pipeable JSON.
func cliLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
}

// newTransport returns the outbound connection pool shared by every upstream.
func newTransport() *http.Transport {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxIdleConnsPerHost = 16
	transport.IdleConnTimeout = 90 * time.Second
	return transport
}

func analyticsConfig(cfg *config.Config, transport http.RoundTripper) service.AnalyticsConfig {
	return service.AnalyticsConfig{
		TokenClient: &http.Client{Transport: transport, Timeout: cfg.TokenTimeout},
		Report: ga4.Config{
			BaseURL:         cfg.GA4BaseURL,
			Transport:       transport,
			PageTimeout:     cfg.ReportPageTimeout,
			DefaultPageSize: cfg.GA4PageSize,
		},
	}
}

// newMailchimpAPI returns nil when no API key is configured so the service
// can answer with a configuration error instead.
func newMailchimpAPI(cfg *config.Config, transport http.RoundTripper) (service.MailchimpAPI, error) {
	if cfg.MailchimpAPIKey == "" {
		return nil, nil
	}
	client, err := mailchimp.New(
		&http.Client{Transport: transport, Timeout: cfg.MailchimpTimeout},
		cfg.MailchimpAPIKey,
		cfg.MailchimpBaseURL,
	)
	if err != nil {
		return nil, err
	}
	return client, nil
}
