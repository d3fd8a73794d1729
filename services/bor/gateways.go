package bor

import (
	"context"
	"encoding/json"
)

//go:generate mockgen -destination=mocks/mock_gateway.go -package=mocks github.com/piresc/estamp/services/bor TokenProvider,BORGW

// TokenProvider hands out a bearer token for the BOR API
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
	Invalidate()
}

// BORGW performs authenticated calls against the BOR API
type BORGW interface {
	Do(ctx context.Context, method, path string, body interface{}) (json.RawMessage, error)
}
