package usecase

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/piresc/estamp/internal/pkg/apperror"
	"github.com/piresc/estamp/services/bor"
)

const (
	pathInstruments = "/instruments"
	pathDutyCalc    = "/duty/calc"
	pathStampIssue  = "/stamp/issue"
	pathStampVerify = "/stamp/verify/"
)

// BORUC implements the BOR facade over a BOR gateway
type BORUC struct {
	borGW bor.BORGW
}

// NewBORUC creates a new BOR use case
func NewBORUC(borGW bor.BORGW) *BORUC {
	return &BORUC{
		borGW: borGW,
	}
}

// FetchInstruments lists the stamp-duty instruments
func (uc *BORUC) FetchInstruments(ctx context.Context) (json.RawMessage, error) {
	return uc.borGW.Do(ctx, http.MethodGet, pathInstruments, nil)
}

// CalcDuty asks BOR to calculate duty for payload
func (uc *BORUC) CalcDuty(ctx context.Context, payload json.RawMessage) (json.RawMessage, error) {
	return uc.borGW.Do(ctx, http.MethodPost, pathDutyCalc, jsonBody(payload))
}

// IssueStamp asks BOR to issue a stamp for payload
func (uc *BORUC) IssueStamp(ctx context.Context, payload json.RawMessage) (json.RawMessage, error) {
	return uc.borGW.Do(ctx, http.MethodPost, pathStampIssue, jsonBody(payload))
}

// VerifyStamp looks up a stamp by id
func (uc *BORUC) VerifyStamp(ctx context.Context, stampID string) (json.RawMessage, error) {
	if strings.TrimSpace(stampID) == "" {
		return nil, apperror.Validation("Stamp ID is required")
	}
	return uc.borGW.Do(ctx, http.MethodGet, pathStampVerify+url.PathEscape(stampID), nil)
}

// jsonBody sends an empty object when the caller supplied no payload
func jsonBody(payload json.RawMessage) json.RawMessage {
	if len(payload) == 0 {
		return json.RawMessage("{}")
	}
	return payload
}
