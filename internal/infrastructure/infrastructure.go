// Package infrastructure provides core service initialization for
// application startup. It assembles the common dependencies (logging,
// lifecycle coordination, tenant store access) that the refinement
// pipeline requires.
package infrastructure

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/tlemoine/classeur/internal/config"
	"github.com/tlemoine/classeur/pkg/database"
	"github.com/tlemoine/classeur/pkg/lifecycle"
)

// Infrastructure holds the process-level systems a refinement run depends
// on. Database is nil when no tenant store is configured; the pipeline then
// runs on the case file and keyword passes alone.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  *database.Database
}

// New creates an Infrastructure from the application configuration.
// It initializes all systems but does not start them; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	infra := &Infrastructure{
		Lifecycle: lc,
		Logger:    logger,
	}

	if cfg.Database.Configured() {
		db, err := database.New(&cfg.Database, logger)
		if err != nil {
			return nil, fmt.Errorf("database init failed: %w", err)
		}
		infra.Database = db
	}

	return infra, nil
}

// Start registers the configured systems with the lifecycle coordinator and
// waits for their startup hooks to complete.
func (i *Infrastructure) Start() {
	if i.Database != nil {
		i.Database.Start(i.Lifecycle)
	}
	i.Lifecycle.WaitForStartup()
}
