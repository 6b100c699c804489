package telegram

import (
	"strconv"
	"strings"
	"time"
)

// parseStartArgs interprets /start arguments. A leading numeric argument is
// the interval in minutes; a leading non-numeric argument is the word group,
// optionally followed by the interval. Anything unparseable falls back to the
// configured defaults.
func parseStartArgs(args []string, defaultGroup string, defaultInterval time.Duration) (string, time.Duration) {
	group := defaultGroup
	interval := defaultInterval

	if len(args) >= 1 {
		if minutes, err := strconv.Atoi(args[0]); err == nil {
			if minutes > 0 {
				interval = time.Duration(minutes) * time.Minute
			}
		} else {
			group = strings.ToLower(strings.TrimSpace(args[0]))
			if len(args) > 1 {
				if minutes, err := strconv.Atoi(args[1]); err == nil && minutes > 0 {
					interval = time.Duration(minutes) * time.Minute
				}
			}
		}
	}

	return group, interval
}

// isCommand reports whether a message is a bot command rather than answer
// text. Commands go to their registered handlers; unknown ones are ignored.
func isCommand(text string) bool {
	return strings.HasPrefix(strings.TrimSpace(text), "/")
}
