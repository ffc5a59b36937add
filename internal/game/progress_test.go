package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeStatus(t *testing.T) {
	history := []HistoryEntry{
		{Outcome: OutcomeFailed, Results: CardResult{"apt": MarkWrong, "dusk": MarkCorrect}},
		{Outcome: OutcomeBingo, Results: CardResult{"apt": MarkCorrect, "dusk": MarkWrong}},
	}
	current := CardResult{"apt": MarkWrong, "bough": MarkWrong}

	got := ComputeStatus(history, current)
	assert.Equal(t, map[string]WordStatus{
		"apt":   {Correct: true, MissCount: 2},
		"dusk":  {Correct: true, MissCount: 1},
		"bough": {Correct: false, MissCount: 1},
	}, got)
}

func TestComputeStatusEmpty(t *testing.T) {
	assert.Empty(t, ComputeStatus(nil, nil))
}

func TestCorrectWordsMonotonic(t *testing.T) {
	marks := []CardResult{
		{"a": MarkCorrect, "b": MarkWrong},
		{"a": MarkWrong, "b": MarkWrong},
		{"b": MarkCorrect, "c": MarkWrong},
		{"a": MarkWrong, "b": MarkWrong, "c": MarkWrong},
	}
	var history []HistoryEntry
	prev := 0
	for _, r := range marks {
		history = append(history, HistoryEntry{Results: r, Outcome: OutcomeFailed})
		n := len(CorrectWords(history, nil))
		assert.GreaterOrEqual(t, n, prev)
		prev = n
	}
	assert.Equal(t, 2, prev)
}

func TestIsSessionComplete(t *testing.T) {
	history := []HistoryEntry{{Results: CardResult{"a": MarkCorrect, "b": MarkWrong}}}

	assert.False(t, IsSessionComplete(history, CardResult{"c": MarkCorrect}, 3))
	assert.True(t, IsSessionComplete(history, CardResult{"b": MarkCorrect, "c": MarkCorrect}, 3))
	assert.Equal(t, Progress{Correct: 1, Total: 3}, Summarize(history, nil, 3))
}
