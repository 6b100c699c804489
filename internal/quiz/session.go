package quiz

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/wordwhiz/vocabot/internal/metrics"
)

// Session tracks a chat's recurring quiz: whether it is active, the selected
// word group, and the handle of the scheduled job.
type Session struct {
	ChatID  int64
	Active  bool
	Group   string
	job     JobHandle
	started time.Time
}

// Engine owns per-chat sessions and question history and orchestrates the
// corpus, transport, scheduler and localizer collaborators.
//
// A keyed per-chat mutex serializes every mutation path for a given chat:
// a scheduler tick and an incoming-message grading for the same chat never
// interleave. Different chats proceed concurrently.
type Engine struct {
	cfg       Config
	corpus    Corpus
	transport Transport
	scheduler Scheduler
	loc       Localizer
	logger    zerolog.Logger
	history   *History

	mu       sync.Mutex
	sessions map[int64]*Session
	chatMu   map[int64]*sync.Mutex
}

// NewEngine builds the quiz engine with its collaborators.
func NewEngine(corpus Corpus, transport Transport, scheduler Scheduler, loc Localizer, cfg Config, logger zerolog.Logger) *Engine {
	cfg = cfg.withDefaults()
	return &Engine{
		cfg:       cfg,
		corpus:    corpus,
		transport: transport,
		scheduler: scheduler,
		loc:       loc,
		logger:    logger.With().Str("component", "quiz_engine").Logger(),
		history:   NewHistory(cfg.HistoryLimit),
		sessions:  make(map[int64]*Session),
		chatMu:    make(map[int64]*sync.Mutex),
	}
}

// History exposes the engine's question ledger, read-only use intended.
func (e *Engine) History() *History {
	return e.history
}

func (e *Engine) chatLock(chatID int64) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()
	l, ok := e.chatMu[chatID]
	if !ok {
		l = &sync.Mutex{}
		e.chatMu[chatID] = l
	}
	return l
}

func (e *Engine) session(chatID int64) *Session {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sessions[chatID]
}

// Start activates a recurring quiz for the chat. Fails with ErrAlreadyActive
// when a session is already running, and with ErrEmptyGroup when the resolved
// word group has no entries. On success a "quiz started" notice is sent and
// the first question fires immediately.
func (e *Engine) Start(ctx context.Context, chatID int64, group string, interval time.Duration) error {
	lock := e.chatLock(chatID)
	lock.Lock()
	defer lock.Unlock()

	if s := e.session(chatID); s != nil && s.Active {
		return ErrAlreadyActive
	}

	if interval <= 0 {
		interval = e.cfg.DefaultInterval
	}

	pool, err := e.corpus.Candidates(ctx, group)
	if err != nil {
		return err
	}
	if len(pool) == 0 {
		return ErrEmptyGroup
	}

	session := &Session{
		ChatID:  chatID,
		Active:  true,
		Group:   group,
		started: time.Now(),
	}

	e.mu.Lock()
	e.sessions[chatID] = session
	e.mu.Unlock()

	if _, err := e.transport.Send(ctx, chatID, e.loc.Text("quiz_started", map[string]string{"group": group})); err != nil {
		e.logger.Warn().Err(err).Int64("chat_id", chatID).Msg("start notice failed")
	}

	// The scheduler invokes the callback immediately, so the first question
	// follows the start notice without waiting a full interval.
	job := e.scheduler.Repeat(interval, func(tickCtx context.Context) {
		lock := e.chatLock(chatID)
		lock.Lock()
		defer lock.Unlock()
		e.tick(tickCtx, chatID)
	})

	// Publish the handle under the same lock StopAll reads it with. A
	// shutdown racing this start may have already discarded the session;
	// then the job is ours to reap.
	e.mu.Lock()
	if e.sessions[chatID] == session {
		session.job = job
		e.mu.Unlock()
	} else {
		e.mu.Unlock()
		job.Stop()
		return nil
	}

	metrics.ActiveSessions.Inc()
	e.logger.Info().
		Int64("chat_id", chatID).
		Str("group", group).
		Dur("interval", interval).
		Msg("quiz session started")

	return nil
}

// Stop cancels the chat's recurring quiz. The job handle cancellation is
// synchronous; an in-flight tick may still finish, future ticks will not run.
func (e *Engine) Stop(ctx context.Context, chatID int64) error {
	lock := e.chatLock(chatID)
	lock.Lock()
	defer lock.Unlock()

	e.mu.Lock()
	session := e.sessions[chatID]
	if session == nil || !session.Active {
		e.mu.Unlock()
		return ErrNoActiveSession
	}
	delete(e.sessions, chatID)
	e.mu.Unlock()

	if session.job != nil {
		session.job.Stop()
	}

	metrics.ActiveSessions.Dec()
	e.logger.Info().Int64("chat_id", chatID).Msg("quiz session stopped")

	if _, err := e.transport.Send(ctx, chatID, e.loc.Text("quiz_stopped", nil)); err != nil {
		e.logger.Warn().Err(err).Int64("chat_id", chatID).Msg("stop notice failed")
	}
	return nil
}

// AskNow poses one question outside the schedule. Only permitted while a
// session is active.
func (e *Engine) AskNow(ctx context.Context, chatID int64) error {
	lock := e.chatLock(chatID)
	lock.Lock()
	defer lock.Unlock()

	if s := e.session(chatID); s == nil || !s.Active {
		return ErrNoActiveSession
	}
	e.tick(ctx, chatID)
	return nil
}

// StopAll tears down every active session, used during shutdown. Job handles
// are snapshotted under e.mu, the same lock Start publishes them with; a
// session whose handle is not published yet is reaped by its own Start.
func (e *Engine) StopAll() {
	e.mu.Lock()
	jobs := make([]JobHandle, 0, len(e.sessions))
	for _, s := range e.sessions {
		if s.job != nil {
			jobs = append(jobs, s.job)
		}
	}
	e.sessions = make(map[int64]*Session)
	e.mu.Unlock()

	for _, job := range jobs {
		job.Stop()
	}
	metrics.ActiveSessions.Sub(float64(len(jobs)))
}

// tick picks a pseudo-random candidate for the session's group, sends it and
// records the question. An empty pool sends a notice but keeps the session
// active. Callers must hold the chat lock.
func (e *Engine) tick(ctx context.Context, chatID int64) {
	session := e.session(chatID)
	if session == nil || !session.Active {
		return
	}

	pool, err := e.corpus.Candidates(ctx, session.Group)
	if err != nil {
		e.logger.Error().Err(err).Int64("chat_id", chatID).Str("group", session.Group).Msg("corpus lookup failed")
		return
	}
	if len(pool) == 0 {
		if _, err := e.transport.Send(ctx, chatID, e.loc.Text("no_words_group", map[string]string{"group": session.Group})); err != nil {
			e.logger.Warn().Err(err).Int64("chat_id", chatID).Msg("empty pool notice failed")
		}
		return
	}

	pick := pool[rand.Intn(len(pool))]
	text := e.loc.Text("quiz_question", map[string]string{
		"group":       session.Group,
		"description": pick.Description,
	})

	msgID, err := e.transport.Send(ctx, chatID, text)
	if err != nil {
		// No anchor, nothing to correlate replies with; skip this round.
		e.logger.Error().Err(err).Int64("chat_id", chatID).Msg("question send failed")
		return
	}

	e.history.Append(&Question{
		ID:      uuid.NewString(),
		ChatID:  chatID,
		Answer:  pick.Word,
		Anchors: []int64{msgID},
		AskedAt: time.Now(),
	})

	metrics.QuestionsPosed.Inc()
	e.logger.Debug().
		Int64("chat_id", chatID).
		Int64("anchor", msgID).
		Str("group", session.Group).
		Msg("question posed")
}
