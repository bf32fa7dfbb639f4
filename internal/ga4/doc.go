// Package ga4 runs Google Analytics 4 Data API reports and flattens the
// columnar responses into rows keyed by header name.
//
// A ReportFetcher drains every page of a report sequentially: each page's
// offset depends on the rows already received, so pages are never fetched in
// parallel. Any failing page aborts the whole report; no partial result is
// returned and nothing is retried.
package ga4
