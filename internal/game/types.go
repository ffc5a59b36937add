// internal/game/types.go
//
// Core type definitions for the bingo game engine.
// Defines:
//   - WordEntry/Definition: read-only vocabulary supplied by the catalog.
//   - Cell/Card: the 3x3 grid with the "none of these" sentinel at the centre.
//   - Prompt: the definition currently shown to the player.
//   - CardResult/HistoryEntry: per-card marks and the append-only card log.
//   - WordStatus: per-word mastery derived from the log.

package game

import "errors"

const (
	// CardSize is the number of cells on a card (3x3).
	CardSize = 9
	// WordCells is the number of word cells on a card (all but the sentinel).
	WordCells = CardSize - 1
	// SentinelIndex is the fixed position of the "none of these" cell.
	SentinelIndex = 4
	// DefaultCardCap is the number of cards a session may conclude before it is over.
	DefaultCardCap = 5
)

var (
	ErrListTooShort  = errors.New("word list has fewer than 8 entries")
	ErrNoDefinitions = errors.New("word has no definitions")
	ErrDuplicateWord = errors.New("word list contains a duplicate word")
	ErrEmptyWord     = errors.New("word list contains an empty word")
	ErrCellIndex     = errors.New("cell index out of range")
	ErrNotPlaying    = errors.New("no list selected")
)

// Definition is one sense of a word.
type Definition struct {
	PartOfSpeech string `json:"partOfSpeech"`
	Text         string `json:"definition"`
}

// WordEntry is a vocabulary word with its ordered definitions.
type WordEntry struct {
	Word        string       `json:"word"`
	Definitions []Definition `json:"definitions"`
}

// CellState is the visual state of a single cell.
type CellState string

const (
	CellDefault CellState = "default"
	CellCorrect CellState = "correct"
	CellWrong   CellState = "wrong"
)

// Cell holds either a word or the sentinel.
type Cell struct {
	Word     string    `json:"word,omitempty"`
	Sentinel bool      `json:"sentinel,omitempty"`
	State    CellState `json:"state"`
}

// Card is a 3x3 grid, row-major. Index 4 is always the sentinel.
type Card [CardSize]Cell

// IndexOf returns the index of the word cell holding w, or -1.
func (c *Card) IndexOf(w string) int {
	for i := range c {
		if !c[i].Sentinel && c[i].Word == w {
			return i
		}
	}
	return -1
}

// Words lists the words on the card in cell order, sentinel excluded.
func (c *Card) Words() []string {
	out := make([]string, 0, WordCells)
	for i := range c {
		if !c[i].Sentinel {
			out = append(out, c[i].Word)
		}
	}
	return out
}

// Prompt is the definition currently being asked.
type Prompt struct {
	Word         string `json:"-"`
	PartOfSpeech string `json:"partOfSpeech"`
	Definition   string `json:"definition"`
}

// Mark records how the player answered a prompted word on one card.
type Mark string

const (
	MarkCorrect Mark = "correct"
	MarkWrong   Mark = "wrong"
)

// CardResult maps a prompted word to its mark on the current card.
type CardResult map[string]Mark

func (r CardResult) clone() CardResult {
	out := make(CardResult, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Outcome is how a card concluded.
type Outcome string

const (
	OutcomeBingo  Outcome = "bingo"
	OutcomeFailed Outcome = "failed"
)

// HistoryEntry is appended exactly once per concluded card and never mutated.
type HistoryEntry struct {
	Results CardResult `json:"results"`
	Outcome Outcome    `json:"outcome"`
}

// WordStatus is derived mastery for one word.
type WordStatus struct {
	Correct   bool `json:"correct"`
	MissCount int  `json:"missCount"`
}

// FeedbackKind classifies the feedback banner.
type FeedbackKind string

const (
	FeedbackCorrect   FeedbackKind = "correct"
	FeedbackIncorrect FeedbackKind = "incorrect"
)

// Feedback is shown between an answer and the next state advance.
type Feedback struct {
	Kind           FeedbackKind `json:"kind"`
	RevealedAnswer string       `json:"revealedAnswer,omitempty"`
}

// Flags summarise card and session conclusion.
type Flags struct {
	CardWon    bool `json:"cardWon"`
	CardFailed bool `json:"cardFailed"`
	GameWon    bool `json:"gameWon"`
	GameOver   bool `json:"gameOver"`
}
