package main

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/avatarmedicine/dietdiary/internal/adapter/dietapi"
	"github.com/avatarmedicine/dietdiary/internal/adapter/llm"
	"github.com/avatarmedicine/dietdiary/internal/adapter/localstore"
	"github.com/avatarmedicine/dietdiary/internal/adapter/speech"
	"github.com/avatarmedicine/dietdiary/internal/app"
	"github.com/avatarmedicine/dietdiary/internal/config"
	"github.com/avatarmedicine/dietdiary/internal/domain"
	"github.com/avatarmedicine/dietdiary/internal/service/diary"
	"github.com/avatarmedicine/dietdiary/internal/service/voicelog"
)

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dietdiary",
		Short: "Diet diary client",
		Long: `Dietdiary keeps a personal diet diary against a remote backend.

It logs meals (typed or spoken), tells you which of today's required
meals are still missing, and fetches your generated report. Login state
and a read-only mirror of fetched records live in a local SQLite file.`,
		SilenceUsage: true,
	}

	cmd.AddCommand(
		registerCmd(),
		loginCmd(),
		logoutCmd(),
		profileCmd(),
		logCmd(),
		statusCmd(),
		voiceCmd(),
		reportCmd(),
		checkCmd(),
		versionCmd(),
	)
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("dietdiary", app.BuildVersion())
		},
	}
}

// appEnv holds everything a command needs: config, logger, local store
// and the backend client. Commands build it on demand so that "version"
// and friends work without any configuration present.
type appEnv struct {
	cfg    *config.Config
	log    *slog.Logger
	store  *localstore.Store
	client *dietapi.Client
}

func newAppEnv() (*appEnv, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger := app.NewLogger(cfg.Log)

	store, err := localstore.Open(cfg.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}

	return &appEnv{
		cfg:    cfg,
		log:    logger,
		store:  store,
		client: dietapi.New(cfg.API.BaseURL, cfg.API.Key, cfg.API.Timeout, logger),
	}, nil
}

func (a *appEnv) Close() {
	if err := a.store.Close(); err != nil {
		a.log.Warn("close local store", slog.String("error", err.Error()))
	}
}

func (a *appEnv) diary() *diary.Service {
	return diary.NewService(a.log, a.client, a.store)
}

func (a *appEnv) voicePipeline() (*voicelog.Pipeline, error) {
	if !a.cfg.SpeechAvailable() {
		return nil, fmt.Errorf("no transcriber command configured: %w", domain.ErrSpeechUnavailable)
	}
	if a.cfg.LLM.APIKey == "" {
		return nil, errors.New("llm api key is not configured; voice analysis needs one")
	}

	rec := speech.New(a.cfg.Speech.Command, a.cfg.Speech.Language, a.cfg.Speech.Timeout, a.log)
	ext := llm.New(a.cfg.LLM.APIKey, a.cfg.LLM.Model, a.cfg.LLM.MaxTokens, a.log)
	return voicelog.NewPipeline(a.log, rec, ext, a.client), nil
}

// ownerID resolves the logged-in owner from the local session.
func (a *appEnv) ownerID() (string, error) {
	id, err := a.store.OwnerID()
	if errors.Is(err, domain.ErrNotLoggedIn) {
		return "", errors.New("not logged in; run `dietdiary login` first")
	}
	return id, err
}

// parseDay accepts YYYY-MM-DD in local time; empty means today.
func parseDay(s string) (time.Time, error) {
	if s == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local), nil
	}
	day, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	return day, nil
}
