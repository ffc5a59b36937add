package game

import "fmt"

// Result classifies a click.
type Result string

const (
	ResultIgnored   Result = "ignored"
	ResultCorrect   Result = "correct"
	ResultIncorrect Result = "incorrect"
)

// Verdict is the classification of one click plus the delta it implies.
type Verdict struct {
	Result Result
	Cell   int
	// Word is the prompted word; results are always keyed by it.
	Word string
}

// Evaluate classifies a click on cell index against the current prompt.
// The click is ignored when there is no prompt, when busy (a feedback or
// transition window is open) or when the cell is already correct.
func Evaluate(index int, prompt *Prompt, card *Card, busy bool) (Verdict, error) {
	if index < 0 || index >= CardSize {
		return Verdict{Result: ResultIgnored, Cell: index}, fmt.Errorf("%w: %d", ErrCellIndex, index)
	}
	if prompt == nil || busy || card[index].State == CellCorrect {
		return Verdict{Result: ResultIgnored, Cell: index}, nil
	}

	v := Verdict{Cell: index, Word: prompt.Word}
	cell := card[index]
	if cell.Sentinel {
		if card.IndexOf(prompt.Word) < 0 {
			v.Result = ResultCorrect
		} else {
			v.Result = ResultIncorrect
		}
		return v, nil
	}
	if cell.Word == prompt.Word {
		v.Result = ResultCorrect
	} else {
		v.Result = ResultIncorrect
	}
	return v, nil
}

// Apply writes the verdict into the card and the current card's results.
// An incorrect click marks the cell wrong; reverting it is the controller's job.
func (v Verdict) Apply(card *Card, results CardResult) {
	switch v.Result {
	case ResultCorrect:
		card[v.Cell].State = CellCorrect
		results[v.Word] = MarkCorrect
	case ResultIncorrect:
		card[v.Cell].State = CellWrong
		results[v.Word] = MarkWrong
	}
}
