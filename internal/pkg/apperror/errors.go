package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error for transport mapping
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindConflict
	KindNotFound
	KindExpired
	KindInvalid
	KindInvalidToken
	KindInvalidCredentials
	KindUnauthorized
	KindForbidden
	KindConfig
	KindUpstreamAuth
	KindUpstream
	KindUpstreamUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	case KindExpired:
		return "expired"
	case KindInvalid:
		return "invalid"
	case KindInvalidToken:
		return "invalid_token"
	case KindInvalidCredentials:
		return "invalid_credentials"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindConfig:
		return "config"
	case KindUpstreamAuth:
		return "upstream_auth"
	case KindUpstream:
		return "upstream"
	case KindUpstreamUnavailable:
		return "upstream_unavailable"
	default:
		return "internal"
	}
}

// Error is an application error with a client-safe message
type Error struct {
	Kind    Kind
	Message string
	Err     error

	// Upstream details, set for KindUpstream and KindUpstreamAuth
	Status int
	Body   []byte
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches errors of the same kind so callers can compare against sentinels
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

func newError(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Validation reports missing or malformed input
func Validation(msg string) *Error { return newError(KindValidation, msg) }

// Conflict reports a uniqueness violation such as a duplicate email
func Conflict(msg string) *Error { return newError(KindConflict, msg) }

// NotFound reports a missing record
func NotFound(msg string) *Error { return newError(KindNotFound, msg) }

// Expired reports a one-time code or token used after its lifetime
func Expired(msg string) *Error { return newError(KindExpired, msg) }

// Invalid reports a one-time code that does not match
func Invalid(msg string) *Error { return newError(KindInvalid, msg) }

// InvalidToken reports a reset token that is malformed, forged or mis-scoped
func InvalidToken(msg string) *Error { return newError(KindInvalidToken, msg) }

// InvalidCredentials reports a password mismatch
func InvalidCredentials(msg string) *Error { return newError(KindInvalidCredentials, msg) }

// Unauthorized reports a missing or invalid session
func Unauthorized(msg string) *Error { return newError(KindUnauthorized, msg) }

// Forbidden reports an ownership violation
func Forbidden(msg string) *Error { return newError(KindForbidden, msg) }

// Config reports a missing required setting
func Config(msg string) *Error { return newError(KindConfig, msg) }

// UpstreamAuth reports a failed BOR token exchange. body is kept for diagnostics.
func UpstreamAuth(msg string, status int, body []byte, cause error) *Error {
	return &Error{Kind: KindUpstreamAuth, Message: msg, Status: status, Body: body, Err: cause}
}

// Upstream reports a non-2xx response from the BOR API
func Upstream(status int, body []byte) *Error {
	return &Error{
		Kind:    KindUpstream,
		Message: fmt.Sprintf("BOR request failed with status %d", status),
		Status:  status,
		Body:    body,
	}
}

// UpstreamUnavailable reports a network or timeout failure talking to BOR
func UpstreamUnavailable(cause error) *Error {
	return &Error{Kind: KindUpstreamUnavailable, Message: "BOR service unavailable", Err: cause}
}

// Internal wraps an unexpected failure. The message is never shown to clients.
func Internal(msg string, cause error) *Error {
	return &Error{Kind: KindInternal, Message: msg, Err: cause}
}

// KindOf returns the kind of err, or KindInternal for foreign errors
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// As extracts the application error from err
func As(err error) (*Error, bool) {
	var appErr *Error
	ok := errors.As(err, &appErr)
	return appErr, ok
}

// HTTPStatus maps an error kind to its response status
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindValidation, KindConflict, KindExpired, KindInvalid,
		KindInvalidToken, KindInvalidCredentials:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindUpstreamAuth, KindUpstream, KindUpstreamUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
