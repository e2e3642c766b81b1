package api

import (
	"context"
	"log/slog"
	"os"

	"github.com/NVIDIA/cookbook/pkg/logging"
	"github.com/NVIDIA/cookbook/pkg/recipe"
	"github.com/NVIDIA/cookbook/pkg/server"
)

const (
	name           = "cookd"
	versionDefault = "dev"

	// cookbookDirEnvVar points the daemon at the cookbook directory to serve.
	cookbookDirEnvVar = "COOKBOOK_DIR"
	// cacheDirEnvVar enables the definition cache when set to a directory.
	cacheDirEnvVar = "COOKBOOK_CACHE_DIR"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/NVIDIA/cookbook/pkg/api.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Serve starts the cookbook API server and blocks until shutdown.
// It configures logging, opens the cookbook, sets up routes, and handles
// graceful shutdown. Returns an error if the server fails to start or
// encounters a fatal error.
func Serve() error {
	ctx := context.Background()

	logging.SetDefaultStructuredLogger(name, version)
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
	)

	dir := os.Getenv(cookbookDirEnvVar)
	if dir == "" {
		dir = "."
	}
	cookbook, err := recipe.OpenDir(dir)
	if err != nil {
		slog.Error("failed to open cookbook", "dir", dir, "error", err)
		return err
	}
	slog.Info("serving cookbook", "dir", cookbook.Source())

	// Cache is opt-in; a cache that cannot be opened downgrades to
	// uncached loads rather than failing startup
	opts := []HandlerOption{WithVersion(version)}
	if cacheDir := os.Getenv(cacheDirEnvVar); cacheDir != "" {
		cache, cerr := recipe.OpenCache(cacheDir)
		if cerr != nil {
			slog.Warn("definition cache disabled", "dir", cacheDir, "error", cerr)
		} else {
			opts = append(opts, WithCache(cache))
			slog.Info("definition cache enabled", "dir", cache.Dir())
		}
	}

	h := NewCookbookHandler(cookbook, opts...)

	// Create and run server
	s := server.New(
		server.WithName(name),
		server.WithVersion(version),
		server.WithHandler(h.Routes()),
	)

	if err := s.Run(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}

	return nil
}
