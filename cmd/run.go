package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/studycentre/internal/app"
	"github.com/abhisek/studycentre/internal/config"
	"github.com/abhisek/studycentre/internal/course"
	"github.com/abhisek/studycentre/internal/logging"
	"github.com/abhisek/studycentre/internal/progress"
	"github.com/abhisek/studycentre/internal/screen"
	"github.com/abhisek/studycentre/internal/store"
)

// env is everything a command needs once flags and config are resolved.
type env struct {
	cfg      *config.Config
	catalog  *course.Catalog
	log      *zap.Logger
	store    *store.Store
	recorder *progress.Recorder
	learner  string
}

func (e *env) Close() {
	if e.store != nil {
		e.store.Close()
	}
	_ = e.log.Sync()
}

// openEnv loads config, content and the database. The TUI gets a logger
// that never writes to the terminal.
func openEnv(cmd *cobra.Command, forTUI bool) (*env, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}

	newLogger := logging.New
	if forTUI {
		newLogger = logging.ForTUI
	}
	log, err := newLogger(cfg.Env, cfg.Log)
	if err != nil {
		return nil, err
	}

	catalog, err := loadCatalog(cmd, cfg)
	if err != nil {
		return nil, err
	}

	dbPath, err := resolveDBPath(cmd, cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	log.Debug("store opened", zap.String("path", dbPath))

	learner, _ := cmd.Flags().GetString("learner")
	if learner == "" {
		learner = cfg.Learner
	}

	return &env{
		cfg:     cfg,
		catalog: catalog,
		log:     log,
		store:   st,
		recorder: progress.NewRecorder(st.AttemptRepo(), log,
			progress.WithQuizPassThreshold(cfg.Quiz.PassThreshold)),
		learner: learner,
	}, nil
}

func loadCatalog(cmd *cobra.Command, cfg *config.Config) (*course.Catalog, error) {
	dir, _ := cmd.Flags().GetString("content")
	if dir == "" {
		dir = cfg.ContentDir
	}
	if dir == "" {
		return course.Default(), nil
	}
	catalog, err := course.LoadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("load content: %w", err)
	}
	return catalog, nil
}

// requireLearner returns the learner for commands that read or change
// recorded progress.
func (e *env) requireLearner() (string, error) {
	if e.learner == "" {
		return "", fmt.Errorf("no learner: pass --learner or set learner in config")
	}
	return e.learner, nil
}

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command, start func(screen.Deps) screen.Screen) error {
	e, err := openEnv(cmd, true)
	if err != nil {
		return err
	}
	defer e.Close()

	if start != nil && e.learner == "" {
		fmt.Fprintln(os.Stderr, "No learner set; starting at the welcome screen.")
		start = nil
	}

	return app.Run(app.Options{
		Deps: screen.Deps{
			Catalog:  e.catalog,
			Recorder: e.recorder,
			Learner:  e.learner,
			Log:      e.log,
		},
		Start: start,
	})
}
