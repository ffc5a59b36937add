package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCardShape(t *testing.T) {
	list := testList(15)
	inList := map[string]bool{}
	for _, e := range list {
		inList[e.Word] = true
	}

	for seed := int64(1); seed <= 50; seed++ {
		card, err := BuildCard(list, nil, NewRand(seed))
		require.NoError(t, err)

		seen := map[string]bool{}
		sentinels := 0
		for i, cell := range card {
			assert.Equal(t, CellDefault, cell.State)
			if cell.Sentinel {
				sentinels++
				assert.Equal(t, SentinelIndex, i)
				continue
			}
			assert.True(t, inList[cell.Word], "unknown word %q", cell.Word)
			assert.False(t, seen[cell.Word], "duplicate word %q", cell.Word)
			seen[cell.Word] = true
		}
		assert.Equal(t, 1, sentinels)
		assert.Len(t, seen, WordCells)
	}
}

func TestBuildCardShortList(t *testing.T) {
	_, err := BuildCard(testList(7), nil, NewRand(1))
	require.ErrorIs(t, err, ErrListTooShort)
}

func TestBuildCardPrefersUnmasteredThenStruggled(t *testing.T) {
	list := testList(12)
	status := map[string]WordStatus{}
	// w0..w5 mastered, w6..w8 struggled, w9..w11 unmastered.
	for i := 0; i < 6; i++ {
		status[list[i].Word] = WordStatus{Correct: true}
	}
	for i := 6; i < 9; i++ {
		status[list[i].Word] = WordStatus{Correct: true, MissCount: 2}
	}
	// A miss without a correct answer is still unmastered.
	status["w9"] = WordStatus{MissCount: 3}

	for seed := int64(1); seed <= 20; seed++ {
		card, err := BuildCard(list, status, NewRand(seed))
		require.NoError(t, err)
		words := card.Words()
		for _, w := range []string{"w6", "w7", "w8", "w9", "w10", "w11"} {
			assert.Contains(t, words, w)
		}
		mastered := 0
		for _, w := range words {
			if st := status[w]; st.Correct && st.MissCount == 0 {
				mastered++
			}
		}
		assert.Equal(t, 2, mastered)
	}
}

func TestBuildCardInsertsSentinelAtCentre(t *testing.T) {
	card, err := BuildCard(testList(8), nil, &scriptedRand{})
	require.NoError(t, err)
	assert.Equal(t, []string{"w0", "w1", "w2", "w3", "w4", "w5", "w6", "w7"}, card.Words())
	assert.Equal(t, "w3", card[3].Word)
	assert.True(t, card[4].Sentinel)
	assert.Equal(t, "w4", card[5].Word)
}

func TestValidateList(t *testing.T) {
	noDefs := testList(8)
	noDefs[3].Definitions = nil

	dup := testList(8)
	dup[5].Word = "W1"

	empty := testList(8)
	empty[0].Word = "  "

	cases := []struct {
		name string
		list []WordEntry
		want error
	}{
		{"ok", testList(8), nil},
		{"short", testList(3), ErrListTooShort},
		{"no definitions", noDefs, ErrNoDefinitions},
		{"duplicate", dup, ErrDuplicateWord},
		{"empty word", empty, ErrEmptyWord},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateList(tc.list)
			if tc.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.want)
		})
	}
}
