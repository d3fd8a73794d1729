package logger

import (
	"strings"
	"time"

	"go.uber.org/zap"
)

// Field aliases zap.Field so callers never import zap directly
type Field = zap.Field

func String(key, val string) Field { return zap.String(key, val) }
func Int(key string, val int) Field { return zap.Int(key, val) }
func Bool(key string, val bool) Field { return zap.Bool(key, val) }
func Any(key string, val interface{}) Field { return zap.Any(key, val) }
func Duration(key string, val time.Duration) Field { return zap.Duration(key, val) }

// Err logs err under the "error" key
func Err(err error) Field {
	return zap.Error(err)
}

// Email logs an address with all but the first two characters of the
// local part masked
func Email(key, addr string) Field {
	return zap.String(key, maskEmail(addr))
}

func maskEmail(addr string) string {
	local, domain, ok := strings.Cut(addr, "@")
	if !ok || strings.Contains(domain, "@") {
		return addr
	}
	if len(local) <= 2 {
		return addr
	}
	return local[:2] + strings.Repeat("*", len(local)-2) + "@" + domain
}
