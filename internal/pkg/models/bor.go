package models

import (
	"encoding/json"
	"time"
)

// BORToken is a bearer token obtained from the BOR auth endpoint
type BORToken struct {
	Token     string
	ExpiresAt time.Time
}

// BORTokenResponse is the client-credentials exchange response body
type BORTokenResponse struct {
	AccessToken string       `json:"access_token"`
	ExpiresIn   *json.Number `json:"expires_in,omitempty"`
	TokenType   string       `json:"token_type,omitempty"`
}
