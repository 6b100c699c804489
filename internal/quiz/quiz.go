package quiz

import (
	"context"
	"errors"
	"time"
)

// Entry is a single word/description pair supplied by the corpus.
type Entry struct {
	Word        string
	Description string
}

// Corpus supplies quiz material grouped by language level.
// Group name matching is normalization-insensitive.
type Corpus interface {
	Candidates(ctx context.Context, group string) ([]Entry, error)
	Groups(ctx context.Context) ([]string, error)
}

// Transport delivers an outgoing message and reports the sent message id,
// which becomes a reply anchor for outstanding questions.
type Transport interface {
	Send(ctx context.Context, chatID int64, text string) (int64, error)
}

// JobHandle is an opaque cancellation token for a scheduled repeating job.
// The scheduler owns the timer; the engine only holds the handle.
type JobHandle interface {
	Stop()
}

// Scheduler runs a callback repeatedly at a fixed interval, starting with an
// immediate first invocation.
type Scheduler interface {
	Repeat(interval time.Duration, fn func(ctx context.Context)) JobHandle
}

// Localizer resolves display strings by key. The engine treats results as
// opaque text.
type Localizer interface {
	Text(key string, params map[string]string) string
}

// Incoming is a text message delivered by the transport.
type Incoming struct {
	ChatID    int64
	MessageID int64
	Text      string
	ReplyTo   int64 // 0 when the message is not a direct reply
	Private   bool  // 1:1 chat
}

// Verdict values are the terminal classifications of a graded message.
const (
	VerdictCorrect        = "correct"
	VerdictIncorrect      = "incorrect"
	VerdictIncorrectFinal = "incorrect_final"
	VerdictGaveUp         = "gave_up"
	VerdictStale          = "stale"
	VerdictNotAReply      = "not_a_reply"
)

// Result reports how an incoming message was classified.
type Result struct {
	Verdict    string
	Remaining  int     // attempts left after this message, incorrect only
	Similarity float64 // percentage against the expected answer
	Hint       string  // revealed prefix, when a hint fired
}

// Session layer errors, surfaced to the user as localized notices.
var (
	ErrAlreadyActive   = errors.New("quiz already active for chat")
	ErrNoActiveSession = errors.New("no active quiz session for chat")
	ErrEmptyGroup      = errors.New("word group has no entries")
)

// Config holds grading and session constants.
type Config struct {
	MaxAttempts       int           // wrong answers before the answer is revealed
	HistoryLimit      int           // outstanding questions kept per chat
	HintThreshold     int           // remaining attempts at or below which hints fire
	HintRevealPercent int           // percent of the answer revealed per hint iteration
	DefaultInterval   time.Duration // used when Start receives a non-positive interval
	IDKTokens         []string
	HintTokens        []string
}

// DefaultConfig returns the production tuning.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:       4,
		HistoryLimit:      100,
		HintThreshold:     2,
		HintRevealPercent: 20,
		DefaultInterval:   120 * time.Minute,
		IDKTokens:         []string{"idk"},
		HintTokens:        []string{"hint"},
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = d.MaxAttempts
	}
	if c.HistoryLimit <= 0 {
		c.HistoryLimit = d.HistoryLimit
	}
	if c.HintThreshold <= 0 {
		c.HintThreshold = d.HintThreshold
	}
	if c.HintRevealPercent <= 0 {
		c.HintRevealPercent = d.HintRevealPercent
	}
	if c.DefaultInterval <= 0 {
		c.DefaultInterval = d.DefaultInterval
	}
	if len(c.IDKTokens) == 0 {
		c.IDKTokens = d.IDKTokens
	}
	if len(c.HintTokens) == 0 {
		c.HintTokens = d.HintTokens
	}
	return c
}
