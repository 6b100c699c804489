package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New builds the bot's structured logger. Console output stays colored in
// development and plain in production.
func New(appName, env string) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
		NoColor:    env == "production",
	}
	return zerolog.New(output).With().
		Timestamp().
		Str("app", appName).
		Str("env", env).
		Logger()
}
