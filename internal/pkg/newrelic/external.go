package newrelic

import (
	"context"
	"net/http"

	"github.com/newrelic/go-agent/v3/newrelic"
)

// InstrumentHTTPRequest runs do, recording it as an external segment for req
// when ctx carries a transaction
func InstrumentHTTPRequest(ctx context.Context, req *http.Request, do func() (*http.Response, error)) (*http.Response, error) {
	txn := newrelic.FromContext(ctx)
	if txn == nil {
		return do()
	}

	segment := newrelic.StartExternalSegment(txn, req)
	defer segment.End()

	resp, err := do()
	segment.Response = resp
	return resp, err
}

// StartSegment opens a named segment, or returns nil outside a transaction
func StartSegment(ctx context.Context, name string) *newrelic.Segment {
	if txn := newrelic.FromContext(ctx); txn != nil {
		return txn.StartSegment(name)
	}
	return nil
}
