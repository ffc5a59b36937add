package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func namedCard() Card {
	words := []string{"apt", "blossom", "bough", "content", "detest", "dusk", "obtain", "orchard"}
	var c Card
	j := 0
	for i := range c {
		if i == SentinelIndex {
			c[i] = Cell{Sentinel: true, State: CellDefault}
			continue
		}
		c[i] = Cell{Word: words[j], State: CellDefault}
		j++
	}
	return c
}

func TestEvaluateClassification(t *testing.T) {
	card := namedCard()
	cases := []struct {
		name   string
		prompt string
		cell   int
		want   Result
	}{
		{"sentinel, word off card", "prune", SentinelIndex, ResultCorrect},
		{"sentinel, word on card", "dusk", SentinelIndex, ResultIncorrect},
		{"matching cell", "dusk", card.IndexOf("dusk"), ResultCorrect},
		{"other cell", "dusk", card.IndexOf("apt"), ResultIncorrect},
		{"word cell, word off card", "prune", 0, ResultIncorrect},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := card
			v, err := Evaluate(tc.cell, &Prompt{Word: tc.prompt}, &c, false)
			require.NoError(t, err)
			assert.Equal(t, tc.want, v.Result)
			assert.Equal(t, tc.prompt, v.Word)
		})
	}
}

func TestEvaluateGuards(t *testing.T) {
	card := namedCard()
	card[0].State = CellCorrect
	p := &Prompt{Word: "apt"}

	v, err := Evaluate(1, nil, &card, false)
	require.NoError(t, err)
	assert.Equal(t, ResultIgnored, v.Result, "no prompt")

	v, err = Evaluate(1, p, &card, true)
	require.NoError(t, err)
	assert.Equal(t, ResultIgnored, v.Result, "busy")

	v, err = Evaluate(0, p, &card, false)
	require.NoError(t, err)
	assert.Equal(t, ResultIgnored, v.Result, "already correct")

	_, err = Evaluate(9, p, &card, false)
	assert.ErrorIs(t, err, ErrCellIndex)
	_, err = Evaluate(-1, p, &card, false)
	assert.ErrorIs(t, err, ErrCellIndex)
}

func TestApplyKeysResultByPromptedWord(t *testing.T) {
	card := namedCard()
	results := CardResult{}
	apt := card.IndexOf("apt")

	v, err := Evaluate(apt, &Prompt{Word: "dusk"}, &card, false)
	require.NoError(t, err)
	v.Apply(&card, results)

	assert.Equal(t, CellWrong, card[apt].State)
	assert.Equal(t, CardResult{"dusk": MarkWrong}, results)
	_, recorded := results["apt"]
	assert.False(t, recorded)
}

func TestApplyCorrectSentinel(t *testing.T) {
	card := namedCard()
	results := CardResult{}
	v, err := Evaluate(SentinelIndex, &Prompt{Word: "wander"}, &card, false)
	require.NoError(t, err)
	v.Apply(&card, results)

	assert.Equal(t, CellCorrect, card[SentinelIndex].State)
	assert.Equal(t, MarkCorrect, results["wander"])
}
