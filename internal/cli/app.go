package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conorfennell/examprep/internal/config"
	"github.com/conorfennell/examprep/internal/logger"
	"github.com/conorfennell/examprep/internal/pdftext"
	"github.com/conorfennell/examprep/internal/session"
	"github.com/conorfennell/examprep/internal/storage"
)

// app is the process-scoped set of dependencies a command runs against.
type app struct {
	cfg  config.Config
	log  *logger.Logger
	db   *storage.DB
	ctrl *session.Controller
}

// openApp loads configuration from the command's flags and opens the store.
// The caller must call close.
func openApp(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to init logger: %w", err)
	}

	text, err := pdftext.New(cfg.Extractor)
	if err != nil {
		return nil, err
	}

	db, err := storage.Open(cfg.DB)
	if err != nil {
		return nil, err
	}
	log.Debug("database opened", "path", cfg.DB)

	return &app{
		cfg:  cfg,
		log:  log,
		db:   db,
		ctrl: session.New(db, text, log),
	}, nil
}

func (a *app) close() {
	if err := a.db.Close(); err != nil {
		a.log.Warn("failed to close database", "error", err)
	}
	a.log.Sync()
}
