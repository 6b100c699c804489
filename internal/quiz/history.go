package quiz

import (
	"sync"
	"time"
)

// Question is an outstanding quiz question awaiting an answer.
//
// Anchors lists the message ids a reply may target to be correlated with
// this question, in insertion order: the original question message plus any
// follow-up prompts sent after incorrect attempts.
type Question struct {
	ID        string
	ChatID    int64
	Answer    string
	Attempts  int
	HintCount int
	Anchors   []int64
	AskedAt   time.Time
}

// HasAnchor reports whether the given message id correlates to this question.
func (q *Question) HasAnchor(anchor int64) bool {
	for _, a := range q.Anchors {
		if a == anchor {
			return true
		}
	}
	return false
}

// History is the bounded per-chat ledger of outstanding questions. Each
// chat's sequence is independently capped at the configured limit; eviction
// removes oldest-first, so a high-traffic chat cannot starve others.
//
// The map itself is guarded by the mutex; mutation of an individual entry's
// counters and anchors is serialized by the engine's per-chat lock.
type History struct {
	mu     sync.RWMutex
	limit  int
	byChat map[int64][]*Question
}

// NewHistory creates a ledger keeping at most limit questions per chat.
func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultConfig().HistoryLimit
	}
	return &History{
		limit:  limit,
		byChat: make(map[int64][]*Question),
	}
}

// Append records a new question, evicting the chat's oldest entry when the
// per-chat bound is exceeded.
func (h *History) Append(q *Question) {
	h.mu.Lock()
	defer h.mu.Unlock()

	entries := append(h.byChat[q.ChatID], q)
	if len(entries) > h.limit {
		entries = entries[len(entries)-h.limit:]
	}
	h.byChat[q.ChatID] = entries
}

// Resolve finds the chat's question correlated to the given reply anchor.
// Returns nil when the anchor belongs to no outstanding question.
func (h *History) Resolve(chatID, anchor int64) *Question {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, q := range h.byChat[chatID] {
		if q.HasAnchor(anchor) {
			return q
		}
	}
	return nil
}

// Latest returns the chat's most recently asked question, or nil.
func (h *History) Latest(chatID int64) *Question {
	h.mu.RLock()
	defer h.mu.RUnlock()

	entries := h.byChat[chatID]
	if len(entries) == 0 {
		return nil
	}
	return entries[len(entries)-1]
}

// Remove deletes a question from the chat's ledger, reporting whether it was
// present.
func (h *History) Remove(chatID int64, questionID string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	entries := h.byChat[chatID]
	for i, q := range entries {
		if q.ID == questionID {
			h.byChat[chatID] = append(entries[:i], entries[i+1:]...)
			return true
		}
	}
	return false
}

// Len reports how many questions are outstanding for the chat.
func (h *History) Len(chatID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.byChat[chatID])
}

// Drop discards all outstanding questions for a chat.
func (h *History) Drop(chatID int64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.byChat, chatID)
}
