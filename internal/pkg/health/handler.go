package health

import (
	"context"
	"net/http"
	"os"
	"runtime"
	"sort"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/piresc/estamp/internal/pkg/logger"
)

// BuildInfo describes the running binary
type BuildInfo struct {
	Version     string    `json:"version"`
	GitCommit   string    `json:"git_commit"`
	ServiceName string    `json:"service_name"`
	GoVersion   string    `json:"go_version"`
	Hostname    string    `json:"hostname"`
	ServerTime  time.Time `json:"server_time"`
}

// Checker probes one dependency
type Checker interface {
	Ping(ctx context.Context) error
}

// CheckerFunc adapts a function to Checker
type CheckerFunc func(ctx context.Context) error

func (f CheckerFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

// ReadinessResponse reports each dependency's state
type ReadinessResponse struct {
	Status       string            `json:"status"`
	Dependencies map[string]string `json:"dependencies"`
}

const checkTimeout = 2 * time.Second

// NewPingHandler returns build information for the service
func NewPingHandler(serviceName, version string) echo.HandlerFunc {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	info := BuildInfo{
		Version:     version,
		GitCommit:   os.Getenv("GIT_COMMIT"),
		ServiceName: serviceName,
		GoVersion:   runtime.Version(),
		Hostname:    hostname,
	}
	if info.Version == "" {
		info.Version = "development"
	}
	if info.GitCommit == "" {
		info.GitCommit = "unknown"
	}

	return func(c echo.Context) error {
		resp := info
		resp.ServerTime = time.Now()
		return c.JSON(http.StatusOK, resp)
	}
}

// NewReadyHandler answers 503 while any dependency fails its probe
func NewReadyHandler(checkers map[string]Checker) echo.HandlerFunc {
	names := make([]string, 0, len(checkers))
	for name := range checkers {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), checkTimeout)
		defer cancel()

		resp := ReadinessResponse{Status: "ok", Dependencies: make(map[string]string, len(names))}
		for _, name := range names {
			if err := checkers[name].Ping(ctx); err != nil {
				logger.Warn("Readiness check failed", logger.String("dependency", name), logger.Err(err))
				resp.Dependencies[name] = "down"
				resp.Status = "degraded"
				continue
			}
			resp.Dependencies[name] = "up"
		}

		status := http.StatusOK
		if resp.Status != "ok" {
			status = http.StatusServiceUnavailable
		}
		return c.JSON(status, resp)
	}
}

// RegisterHealthEndpoints registers /ping, liveness and readiness endpoints
func RegisterHealthEndpoints(e *echo.Echo, serviceName, version string, checkers map[string]Checker) {
	e.GET("/ping", NewPingHandler(serviceName, version))

	live := func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	}
	e.GET("/health", live)
	e.GET("/healthz", live)

	e.GET("/ready", NewReadyHandler(checkers))
}
