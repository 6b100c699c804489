package quiz

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func question(chatID int64, id string, anchors ...int64) *Question {
	return &Question{ID: id, ChatID: chatID, Answer: "word-" + id, Anchors: anchors}
}

func TestHistoryResolveByAnchor(t *testing.T) {
	h := NewHistory(10)
	h.Append(question(1, "q1", 100))
	h.Append(question(1, "q2", 200, 201))

	require.NotNil(t, h.Resolve(1, 100))
	assert.Equal(t, "q1", h.Resolve(1, 100).ID)
	assert.Equal(t, "q2", h.Resolve(1, 201).ID)
	assert.Nil(t, h.Resolve(1, 999))
	assert.Nil(t, h.Resolve(2, 100), "anchors are chat-scoped")
}

func TestHistoryBoundEvictsOldestPerChat(t *testing.T) {
	h := NewHistory(2)
	h.Append(question(1, "q1", 100))
	h.Append(question(1, "q2", 200))
	h.Append(question(1, "q3", 300))

	assert.Equal(t, 2, h.Len(1))
	assert.Nil(t, h.Resolve(1, 100), "evicted anchors no longer resolve")
	assert.NotNil(t, h.Resolve(1, 200))
	assert.NotNil(t, h.Resolve(1, 300))
}

func TestHistoryBoundIsPerChat(t *testing.T) {
	h := NewHistory(2)
	// A busy chat must not evict another chat's questions.
	for i := 0; i < 50; i++ {
		h.Append(question(1, fmt.Sprintf("busy-%d", i), int64(1000+i)))
	}
	h.Append(question(2, "quiet", 42))

	assert.Equal(t, 2, h.Len(1))
	assert.Equal(t, 1, h.Len(2))
	assert.NotNil(t, h.Resolve(2, 42))
}

func TestHistoryNeverExceedsBound(t *testing.T) {
	h := NewHistory(5)
	for i := 0; i < 100; i++ {
		h.Append(question(7, fmt.Sprintf("q%d", i), int64(i)))
		assert.LessOrEqual(t, h.Len(7), 5)
	}
}

func TestHistoryLatest(t *testing.T) {
	h := NewHistory(10)
	assert.Nil(t, h.Latest(1))

	h.Append(question(1, "q1", 100))
	h.Append(question(1, "q2", 200))
	require.NotNil(t, h.Latest(1))
	assert.Equal(t, "q2", h.Latest(1).ID)
}

func TestHistoryRemove(t *testing.T) {
	h := NewHistory(10)
	h.Append(question(1, "q1", 100))

	assert.True(t, h.Remove(1, "q1"))
	assert.False(t, h.Remove(1, "q1"))
	assert.Nil(t, h.Resolve(1, 100))
	assert.Equal(t, 0, h.Len(1))
}

func TestHistoryDrop(t *testing.T) {
	h := NewHistory(10)
	h.Append(question(1, "q1", 100))
	h.Append(question(2, "q2", 200))

	h.Drop(1)
	assert.Equal(t, 0, h.Len(1))
	assert.Equal(t, 1, h.Len(2))
}
