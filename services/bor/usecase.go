package bor

import (
	"context"
	"encoding/json"
)

//go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks github.com/piresc/estamp/services/bor BORUC

// BORUC exposes the Board of Revenue operations. Results are the upstream
// JSON bodies, unmodified.
type BORUC interface {
	FetchInstruments(ctx context.Context) (json.RawMessage, error)
	CalcDuty(ctx context.Context, payload json.RawMessage) (json.RawMessage, error)
	IssueStamp(ctx context.Context, payload json.RawMessage) (json.RawMessage, error)
	VerifyStamp(ctx context.Context, stampID string) (json.RawMessage, error)
}
