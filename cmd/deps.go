package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/lessonplan/internal/config"
	"github.com/abhisek/lessonplan/internal/history"
	"github.com/abhisek/lessonplan/internal/lessonplan"
	"github.com/abhisek/lessonplan/internal/llm"
	"github.com/abhisek/lessonplan/internal/logger"
	"github.com/abhisek/lessonplan/internal/planner"
	"github.com/abhisek/lessonplan/internal/session"
	"github.com/abhisek/lessonplan/internal/store"
)

// deps is everything a command needs, built from config and flags.
type deps struct {
	cfg     config.Config
	store   *store.Store
	log     *logger.Logger
	history *history.KVStore
	ctrl    *session.Controller

	// model is the configured model, empty when no provider is available.
	model string
	// llmErr explains why no provider could be built.
	llmErr error
}

func (d *deps) Close() {
	d.log.Sync()
	d.store.Close()
}

// setup builds the dependency graph. A missing or misconfigured LLM
// provider is not fatal: history and export still work, and generate or
// refine report the cause.
func setup(cmd *cobra.Command) (*deps, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.Log.Mode, cfg.Log.File)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	d := &deps{
		cfg:     cfg,
		store:   st,
		log:     log,
		history: history.NewKVStore(st.KVRepo()),
	}

	llmCfg := cfg.LLM
	if !llmCfg.HasKey() {
		if found, ok := llm.DiscoverConfig(llmCfg); ok {
			llmCfg = found
		}
	}

	var p session.Planner
	provider, err := llm.NewProvider(ctx, llmCfg, st.EventRepo(), log)
	if err != nil {
		log.Warn("LLM provider unavailable", "provider", llmCfg.Provider, "error", err)
		d.llmErr = err
		p = offlinePlanner{err: err}
	} else {
		d.model = provider.ModelID()
		p = planner.New(provider, cfg.Planner)
	}

	d.ctrl = session.New(p, d.history, session.Options{Logger: log})
	log.Info("lessonplan started", "db", dbPath, "provider", llmCfg.Provider, "model", d.model)
	return d, nil
}

// requireLLM fails commands that need the model when none is configured.
func (d *deps) requireLLM() error {
	if d.llmErr != nil {
		return fmt.Errorf("LLM provider not configured: %w", d.llmErr)
	}
	return nil
}

// offlinePlanner stands in for the planner when no provider could be
// built, so the TUI can still browse and export history.
type offlinePlanner struct {
	err error
}

func (o offlinePlanner) Generate(context.Context, lessonplan.GenerationParams) (lessonplan.LessonPlan, error) {
	return lessonplan.LessonPlan{}, &planner.GenerationError{Err: o.err}
}

func (o offlinePlanner) Refine(context.Context, lessonplan.LessonPlan, string) (lessonplan.LessonPlan, error) {
	return lessonplan.LessonPlan{}, &planner.RefinementError{Err: o.err}
}
