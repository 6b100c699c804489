package config

import (
	"context"
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// App holds core runtime configuration.
type App struct {
	Name                    string        `env:"APP_NAME" envDefault:"vocabot"`
	Env                     string        `env:"APP_ENV" envDefault:"development"`
	HTTPAddr                string        `env:"HTTP_ADDR" envDefault:"0.0.0.0:8080"`
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_SECONDS" envDefault:"10s"`

	Telegram Telegram
	Quiz     Quiz
	Corpus   Corpus
}

// Telegram captures bot transport settings.
type Telegram struct {
	Token          string        `env:"TELEGRAM_TOKEN,notEmpty"`
	AllowedHandles []string      `env:"ALLOWED_HANDLES" envSeparator:"," envDefault:""`
	PollTimeout    time.Duration `env:"TELEGRAM_POLL_TIMEOUT" envDefault:"10s"`
}

// Quiz groups session and grading defaults.
type Quiz struct {
	DefaultGroup      string        `env:"QUIZ_DEFAULT_GROUP" envDefault:"english_b2"`
	DefaultInterval   time.Duration `env:"QUIZ_DEFAULT_INTERVAL" envDefault:"120m"`
	MaxAttempts       int           `env:"QUIZ_MAX_ATTEMPTS" envDefault:"4"`
	HistoryLimit      int           `env:"QUIZ_HISTORY_LENGTH" envDefault:"100"`
	HintThreshold     int           `env:"QUIZ_HINT_ATTEMPTS" envDefault:"2"`
	HintRevealPercent int           `env:"QUIZ_HINT_PERCENT" envDefault:"20"`
	BotLanguage       string        `env:"BOT_LANGUAGE" envDefault:"english"`
}

// Corpus points at the word store.
type Corpus struct {
	WordsFile string `env:"WORDS_FILE" envDefault:"data/words.json"`
}

// Load parses environment variables into App config.
func Load(ctx context.Context) (*App, error) {
	cfg := &App{}
	if err := env.ParseWithOptions(cfg, env.Options{RequiredIfNoDef: true}); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
