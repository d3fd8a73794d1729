package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/piresc/estamp/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_storage.go -package=mocks github.com/piresc/estamp/internal/pkg/storage Store

// Store persists generated artifacts and returns the URL they are served from
type Store interface {
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
}

// New selects a Store from configuration
func New(ctx context.Context, cfg models.StorageConfig) (Store, error) {
	switch cfg.Driver {
	case "s3":
		return NewS3Store(ctx, cfg)
	case "local", "":
		return NewLocalStore(cfg.LocalDir, cfg.PublicPrefix)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

func cleanKey(key string) (string, error) {
	key = strings.TrimLeft(key, "/")
	if key == "" || strings.Contains(key, "..") {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return key, nil
}

func joinURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + key
}
