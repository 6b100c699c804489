package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/wordwhiz/vocabot/internal/config"
	"github.com/wordwhiz/vocabot/internal/corpus"
	"github.com/wordwhiz/vocabot/internal/i18n"
	"github.com/wordwhiz/vocabot/internal/logging"
	"github.com/wordwhiz/vocabot/internal/quiz"
	"github.com/wordwhiz/vocabot/internal/scheduler"
	"github.com/wordwhiz/vocabot/internal/server"
	"github.com/wordwhiz/vocabot/internal/telegram"
)

// Application aggregates the bot, the quiz engine and the operational HTTP
// server.
type Application struct {
	cfg    *config.App
	logger zerolog.Logger

	bot    *telegram.Bot
	engine *quiz.Engine
	sched  *scheduler.Scheduler
	http   *http.Server
}

// New bootstraps config, logger, corpus, localizer, scheduler, engine and
// the Telegram transport.
func New(ctx context.Context, cfg *config.App) (*Application, error) {
	logger := logging.New(cfg.Name, cfg.Env)
	logger.Info().Msg("starting application bootstrap")

	loc, err := i18n.New(cfg.Quiz.BotLanguage, logger)
	if err != nil {
		return nil, fmt.Errorf("build localizer: %w", err)
	}

	store := corpus.NewStore(cfg.Corpus.WordsFile, logger)
	sched := scheduler.New(logger)

	bot, err := telegram.New(cfg, store, loc, logger)
	if err != nil {
		return nil, fmt.Errorf("build telegram bot: %w", err)
	}

	engine := quiz.NewEngine(store, bot, sched, loc, quiz.Config{
		MaxAttempts:       cfg.Quiz.MaxAttempts,
		HistoryLimit:      cfg.Quiz.HistoryLimit,
		HintThreshold:     cfg.Quiz.HintThreshold,
		HintRevealPercent: cfg.Quiz.HintRevealPercent,
		DefaultInterval:   cfg.Quiz.DefaultInterval,
	}, logger)

	if err := bot.Bind(engine); err != nil {
		return nil, fmt.Errorf("bind engine to bot: %w", err)
	}

	return &Application{
		cfg:    cfg,
		logger: logger,
		bot:    bot,
		engine: engine,
		sched:  sched,
		http:   server.New(cfg, logger),
	}, nil
}

// Run starts the poller and the HTTP server and waits for termination.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info().Str("addr", a.cfg.HTTPAddr).Msg("http server listening")
		if err := a.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	go a.bot.Start()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		a.logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		return fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
		a.logger.Warn().Msg("context canceled")
	}

	a.bot.Stop()
	a.engine.StopAll()
	a.sched.StopAll()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GracefulShutdownTimeout)
	defer cancel()
	if err := a.http.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("http shutdown error")
	}

	a.logger.Info().Msg("shutdown complete")
	return nil
}
