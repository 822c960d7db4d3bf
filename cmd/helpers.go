package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	"github.com/ziadkadry99/studymate/internal/config"
	"github.com/ziadkadry99/studymate/internal/db"
	"github.com/ziadkadry99/studymate/internal/logging"
	"github.com/ziadkadry99/studymate/internal/prefs"
	"github.com/ziadkadry99/studymate/internal/studymate"
	"github.com/ziadkadry99/studymate/internal/theme"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `studymate init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// session bundles what a command needs to talk to the server and the local
// preference store. Close releases it.
type session struct {
	cfg    *config.Config
	logger *zap.Logger
	client *studymate.Client
	db     *db.DB
}

// newSession loads config, builds the logger and the server client. console
// adds stderr logging when --verbose is set; the TUI passes false.
func newSession(console bool) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(logging.Options{
		File:    cfg.LogPath(),
		Level:   cfg.LogLevel,
		Console: console && verbose,
	})
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	client, err := studymate.NewClient(cfg.ServerURL, cfg.RequestTimeout)
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("creating client: %w", err)
	}

	return &session{cfg: cfg, logger: logger, client: client}, nil
}

// switcher opens the preference database and returns a theme switcher
// backed by it.
func (s *session) switcher(ctx context.Context) (*theme.Switcher, error) {
	if s.db == nil {
		database, err := db.Open(s.cfg.DBPath())
		if err != nil {
			return nil, fmt.Errorf("opening preferences: %w", err)
		}
		s.db = database
	}
	fallback, err := theme.Parse(s.cfg.DefaultTheme)
	if err != nil {
		fallback = theme.Default
	}
	sw := theme.NewSwitcher(prefs.NewStore(s.db), s.cfg.ThemeKey, fallback, nil, s.logger)
	sw.Load(ctx)
	return sw, nil
}

func (s *session) Close() {
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Warn("closing preferences", zap.Error(err))
		}
	}
	_ = s.logger.Sync()
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
