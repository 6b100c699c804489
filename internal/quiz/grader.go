package quiz

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/wordwhiz/vocabot/internal/metrics"
)

// HandleMessage grades one incoming text message against the chat's
// outstanding questions and sends the resulting notice. State mutation
// (attempt counters, anchor appends, removals) always happens before the
// notification is attempted, so a failed send never corrupts the ledger.
func (e *Engine) HandleMessage(ctx context.Context, msg Incoming) (Result, error) {
	lock := e.chatLock(msg.ChatID)
	lock.Lock()
	defer lock.Unlock()

	res, err := e.grade(ctx, msg)
	metrics.AnswersGraded.WithLabelValues(res.Verdict).Inc()
	return res, err
}

func (e *Engine) grade(ctx context.Context, msg Incoming) (Result, error) {
	anchor, ok := e.resolveAnchor(msg)
	if !ok {
		key := "reply_to_question"
		if s := e.session(msg.ChatID); s == nil || !s.Active {
			key = "start_session_prompt"
		}
		return Result{Verdict: VerdictNotAReply}, e.notify(ctx, msg.ChatID, e.loc.Text(key, nil))
	}

	question := e.history.Resolve(msg.ChatID, anchor)
	if question == nil {
		return Result{Verdict: VerdictStale}, e.notify(ctx, msg.ChatID, e.loc.Text("incorrect_outdated", nil))
	}

	normalized := Normalize(msg.Text)

	// Giving up reveals the answer without burning attempts. The question is
	// removed: once the answer is on screen there is nothing left to grade.
	if matchToken(normalized, e.cfg.IDKTokens) {
		e.history.Remove(msg.ChatID, question.ID)
		text := e.loc.Text("idk_answer", map[string]string{"answer": question.Answer})
		return Result{Verdict: VerdictGaveUp}, e.notify(ctx, msg.ChatID, text)
	}

	if normalized == Normalize(question.Answer) {
		e.history.Remove(msg.ChatID, question.ID)
		text := e.loc.Text("correct_answer", nil)
		return Result{Verdict: VerdictCorrect}, e.notify(ctx, msg.ChatID, text)
	}

	return e.gradeIncorrect(ctx, msg, question, normalized)
}

func (e *Engine) gradeIncorrect(ctx context.Context, msg Incoming, question *Question, normalized string) (Result, error) {
	question.Attempts++
	if question.Attempts > e.cfg.MaxAttempts {
		question.Attempts = e.cfg.MaxAttempts
	}
	remaining := e.cfg.MaxAttempts - question.Attempts

	pct := Similarity(msg.Text, question.Answer)

	var hint string
	if matchToken(normalized, e.cfg.HintTokens) || remaining <= e.cfg.HintThreshold {
		question.HintCount++
		hint = RevealHint(question.Answer, question.HintCount, e.cfg.HintRevealPercent)
	}

	if remaining <= 0 {
		e.history.Remove(msg.ChatID, question.ID)
		text := e.loc.Text("incorrect_final_answer", map[string]string{"answer": question.Answer})
		res := Result{Verdict: VerdictIncorrectFinal, Similarity: pct, Hint: hint}
		return res, e.notify(ctx, msg.ChatID, text)
	}

	parts := []string{
		e.loc.Text("incorrect_answer", map[string]string{"remaining": strconv.Itoa(remaining)}),
		e.loc.Text(fmt.Sprintf("closeness_%d", Band(pct)), nil),
	}
	if hint != "" {
		parts = append(parts, e.loc.Text("hint", map[string]string{"hint": hint}))
	}

	promptID, err := e.transport.Send(ctx, msg.ChatID, strings.Join(parts, "\n"))
	if err == nil {
		// The follow-up prompt is itself a valid reply target for the next
		// attempt at this question.
		question.Anchors = append(question.Anchors, promptID)
	} else {
		e.logger.Warn().Err(err).Int64("chat_id", msg.ChatID).Msg("follow-up prompt failed")
	}

	return Result{Verdict: VerdictIncorrect, Remaining: remaining, Similarity: pct, Hint: hint}, nil
}

// resolveAnchor determines which message the incoming text answers. A direct
// reply wins; in a private chat with an active session, a plain message is
// treated as a reply to the most recent question's last anchor.
func (e *Engine) resolveAnchor(msg Incoming) (int64, bool) {
	if msg.ReplyTo != 0 {
		return msg.ReplyTo, true
	}
	if !msg.Private {
		return 0, false
	}
	if s := e.session(msg.ChatID); s == nil || !s.Active {
		return 0, false
	}
	latest := e.history.Latest(msg.ChatID)
	if latest == nil || len(latest.Anchors) == 0 {
		return 0, false
	}
	return latest.Anchors[len(latest.Anchors)-1], true
}

func (e *Engine) notify(ctx context.Context, chatID int64, text string) error {
	if _, err := e.transport.Send(ctx, chatID, text); err != nil {
		return fmt.Errorf("send notice: %w", err)
	}
	return nil
}
