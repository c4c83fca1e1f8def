package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/abhisek/twotor/internal/config"
	"github.com/abhisek/twotor/internal/content"
	"github.com/abhisek/twotor/internal/logging"
	"github.com/abhisek/twotor/internal/predict"
	"github.com/abhisek/twotor/internal/store"
	"github.com/abhisek/twotor/internal/tutoring"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// engine bundles an opened System with the resources it holds.
type engine struct {
	sys   *tutoring.System
	store *store.Store
	log   *zap.Logger
}

func (e *engine) Close() {
	_ = e.log.Sync()
	_ = e.store.Close()
}

// loadConfig reads --config and applies the --content and --log flags.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	if p, _ := cmd.Flags().GetString("content"); p != "" {
		cfg.ContentPath = p
	}
	if m, _ := cmd.Flags().GetString("log"); m != "" {
		cfg.LogMode = m
		if err := cfg.Validate(); err != nil {
			return config.Config{}, err
		}
	}
	return cfg, nil
}

func loadCatalog(cfg config.Config) (*content.Catalog, error) {
	if cfg.ContentPath == "" {
		return content.Sample()
	}
	return content.LoadFile(cfg.ContentPath)
}

// openEngine opens the store and builds a System from config and flags.
func openEngine(cmd *cobra.Command) (*engine, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger, err := logging.New(cfg.LogMode)
	if err != nil {
		return nil, err
	}

	catalog, err := loadCatalog(cfg)
	if err != nil {
		return nil, fmt.Errorf("load content: %w", err)
	}

	dbPath, err := resolveDBPath(cmd, cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	logger.Debug("store opened", zap.String("path", dbPath))

	weights := cfg.Prediction
	sys, err := tutoring.New(cmd.Context(), tutoring.Options{
		Catalog:       catalog,
		Store:         st,
		MasteryParams: cfg.MasteryParams(),
		Priors:        cfg.MasteryPriors(),
		DefaultPrior:  cfg.Mastery.DefaultPrior,
		Predictor:     predict.New(&weights),
		Helpdesk:      cfg.Helpdesk,
		Logger:        logger,
	})
	if err != nil {
		_ = st.Close()
		return nil, err
	}
	return &engine{sys: sys, store: st, log: logger}, nil
}

// withEngine runs fn against an opened engine and closes it afterwards.
func withEngine(cmd *cobra.Command, fn func(sys *tutoring.System) (any, error)) error {
	e, err := openEngine(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	out, err := fn(e.sys)
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), out)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
