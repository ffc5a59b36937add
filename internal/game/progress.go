package game

// ComputeStatus folds the card log and the current card's results into
// per-word mastery. A word is correct once any card marked it correct; a
// later miss never downgrades it. MissCount counts every wrong mark.
func ComputeStatus(history []HistoryEntry, current CardResult) map[string]WordStatus {
	out := make(map[string]WordStatus)
	fold := func(r CardResult) {
		for w, m := range r {
			st := out[w]
			switch m {
			case MarkCorrect:
				st.Correct = true
			case MarkWrong:
				st.MissCount++
			}
			out[w] = st
		}
	}
	for _, h := range history {
		fold(h.Results)
	}
	fold(current)
	return out
}

// CorrectWords is the set of words ever marked correct in the session.
func CorrectWords(history []HistoryEntry, current CardResult) map[string]struct{} {
	out := make(map[string]struct{})
	add := func(r CardResult) {
		for w, m := range r {
			if m == MarkCorrect {
				out[w] = struct{}{}
			}
		}
	}
	for _, h := range history {
		add(h.Results)
	}
	add(current)
	return out
}

// IsSessionComplete reports whether every word of the list has been answered
// correctly at least once.
func IsSessionComplete(history []HistoryEntry, current CardResult, totalWords int) bool {
	return len(CorrectWords(history, current)) >= totalWords
}

// Progress is the scoreboard headline.
type Progress struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// Summarize returns how many of totalWords are correct so far.
func Summarize(history []HistoryEntry, current CardResult, totalWords int) Progress {
	return Progress{Correct: len(CorrectWords(history, current)), Total: totalWords}
}
