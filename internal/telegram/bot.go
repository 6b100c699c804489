package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	tele "gopkg.in/telebot.v3"

	"github.com/wordwhiz/vocabot/internal/config"
	"github.com/wordwhiz/vocabot/internal/corpus"
	"github.com/wordwhiz/vocabot/internal/i18n"
	"github.com/wordwhiz/vocabot/internal/quiz"
)

// Bot adapts Telegram to the quiz engine: it dispatches commands, performs
// the allow-list pre-check for management commands, and feeds plain text
// messages into the grading engine.
type Bot struct {
	tb      *tele.Bot
	cfg     *config.App
	store   *corpus.Store
	loc     *i18n.Localizer
	logger  zerolog.Logger
	allowed map[string]struct{}

	engine *quiz.Engine // bound after construction, see Bind
}

// New connects to Telegram. The engine is attached later with Bind because
// the engine itself needs the bot as its transport.
func New(cfg *config.App, store *corpus.Store, loc *i18n.Localizer, logger zerolog.Logger) (*Bot, error) {
	tb, err := tele.NewBot(tele.Settings{
		Token:  cfg.Telegram.Token,
		Poller: &tele.LongPoller{Timeout: cfg.Telegram.PollTimeout},
	})
	if err != nil {
		return nil, fmt.Errorf("connect telegram: %w", err)
	}

	allowed := make(map[string]struct{}, len(cfg.Telegram.AllowedHandles))
	for _, h := range cfg.Telegram.AllowedHandles {
		h = strings.TrimSpace(h)
		if h != "" {
			allowed[strings.TrimPrefix(h, "@")] = struct{}{}
		}
	}

	return &Bot{
		tb:      tb,
		cfg:     cfg,
		store:   store,
		loc:     loc,
		logger:  logger.With().Str("component", "telegram").Logger(),
		allowed: allowed,
	}, nil
}

// Send implements quiz.Transport.
func (b *Bot) Send(ctx context.Context, chatID int64, text string) (int64, error) {
	msg, err := b.tb.Send(tele.ChatID(chatID), text)
	if err != nil {
		return 0, fmt.Errorf("send message: %w", err)
	}
	return int64(msg.ID), nil
}

// Bind attaches the engine and registers all handlers and the command menu.
func (b *Bot) Bind(engine *quiz.Engine) error {
	b.engine = engine

	b.tb.Handle("/start", b.handleStart)
	b.tb.Handle("/stop", b.handleStop)
	b.tb.Handle("/quiz", b.handleQuiz)
	b.tb.Handle("/groups", b.handleGroups)
	b.tb.Handle("/add_word", b.handleAddWord)
	b.tb.Handle("/remove_word", b.handleRemoveWord)
	b.tb.Handle(tele.OnText, b.handleText)

	commands := []tele.Command{
		{Text: "start", Description: b.loc.Text("start_description", nil)},
		{Text: "stop", Description: b.loc.Text("stop_description", nil)},
		{Text: "quiz", Description: b.loc.Text("quiz_description", nil)},
		{Text: "groups", Description: b.loc.Text("groups_description", nil)},
		{Text: "add_word", Description: b.loc.Text("add_word_description", nil)},
		{Text: "remove_word", Description: b.loc.Text("remove_word_description", nil)},
	}
	if err := b.tb.SetCommands(commands); err != nil {
		return fmt.Errorf("set command menu: %w", err)
	}
	return nil
}

// Start blocks polling for updates until Stop is called.
func (b *Bot) Start() {
	b.logger.Info().Msg("telegram poller starting")
	b.tb.Start()
}

// Stop terminates the poller.
func (b *Bot) Stop() {
	b.tb.Stop()
	b.logger.Info().Msg("telegram poller stopped")
}

func (b *Bot) handleStart(c tele.Context) error {
	group, interval := parseStartArgs(c.Args(), b.cfg.Quiz.DefaultGroup, b.cfg.Quiz.DefaultInterval)

	err := b.engine.Start(context.Background(), c.Chat().ID, group, interval)
	switch {
	case errors.Is(err, quiz.ErrAlreadyActive):
		return c.Send(b.loc.Text("quiz_ongoing", nil))
	case errors.Is(err, quiz.ErrEmptyGroup):
		return c.Send(b.loc.Text("no_words_group", map[string]string{"group": group}))
	case err != nil:
		b.logger.Error().Err(err).Int64("chat_id", c.Chat().ID).Msg("start failed")
		return err
	}
	// Engine sent the start notice and first question itself.
	return nil
}

func (b *Bot) handleStop(c tele.Context) error {
	err := b.engine.Stop(context.Background(), c.Chat().ID)
	if errors.Is(err, quiz.ErrNoActiveSession) {
		return c.Send(b.loc.Text("no_ongoing", nil))
	}
	return err
}

func (b *Bot) handleQuiz(c tele.Context) error {
	err := b.engine.AskNow(context.Background(), c.Chat().ID)
	if errors.Is(err, quiz.ErrNoActiveSession) {
		return c.Send(b.loc.Text("no_ongoing", nil))
	}
	return err
}

func (b *Bot) handleGroups(c tele.Context) error {
	groups, err := b.store.Groups(context.Background())
	if err != nil {
		b.logger.Error().Err(err).Msg("list groups failed")
		return err
	}
	if len(groups) == 0 {
		return c.Send(b.loc.Text("no_words_group", map[string]string{"group": "*"}))
	}
	return c.Send(b.loc.Text("groups_list", map[string]string{"groups": strings.Join(groups, "\n")}))
}

func (b *Bot) handleAddWord(c tele.Context) error {
	if !b.authorize(c) {
		return nil
	}
	payload := strings.TrimSpace(c.Message().Payload)
	if payload == "" {
		return c.Send(b.loc.Text("provide_word", nil))
	}
	if err := b.store.AddWord(context.Background(), payload); err != nil {
		b.logger.Warn().Err(err).Msg("add word rejected")
		return c.Send(b.loc.Text("invalid_word_format", nil))
	}
	return c.Send(b.loc.Text("word_added", nil))
}

func (b *Bot) handleRemoveWord(c tele.Context) error {
	if !b.authorize(c) {
		return nil
	}
	word := strings.TrimSpace(c.Message().Payload)
	if word == "" {
		return c.Send(b.loc.Text("provide_word", nil))
	}
	removed, err := b.store.RemoveWord(context.Background(), word)
	if err != nil {
		b.logger.Error().Err(err).Str("word", word).Msg("remove word failed")
		return err
	}
	if !removed {
		return c.Send(b.loc.Text("word_not_found", map[string]string{"word": word}))
	}
	return c.Send(b.loc.Text("word_removed", map[string]string{"word": word}))
}

func (b *Bot) handleText(c tele.Context) error {
	m := c.Message()
	// Telebot routes unregistered commands here too; they are not answers
	// and must never burn an attempt.
	if isCommand(m.Text) {
		return nil
	}
	incoming := quiz.Incoming{
		ChatID:    c.Chat().ID,
		MessageID: int64(m.ID),
		Text:      m.Text,
		Private:   c.Chat().Type == tele.ChatPrivate,
	}
	if m.ReplyTo != nil {
		incoming.ReplyTo = int64(m.ReplyTo.ID)
	}

	res, err := b.engine.HandleMessage(context.Background(), incoming)
	if err != nil {
		b.logger.Warn().Err(err).Int64("chat_id", incoming.ChatID).Str("verdict", res.Verdict).Msg("grading notice failed")
	}
	return nil
}

// authorize is the explicit allow-list pre-check for management commands.
// It replies with the unauthorized notice itself so handlers can simply
// bail out.
func (b *Bot) authorize(c tele.Context) bool {
	sender := c.Sender()
	if sender != nil {
		if _, ok := b.allowed[sender.Username]; ok {
			return true
		}
	}
	if err := c.Send(b.loc.Text("unauthorized_command", nil)); err != nil {
		b.logger.Warn().Err(err).Msg("unauthorized notice failed")
	}
	return false
}
