package game

// Queue is the per-card definition queue: a shuffled permutation of the
// whole list and a cursor that only moves forward.
type Queue struct {
	Entries []WordEntry
	Cursor  int
}

// NewQueue shuffles a copy of list into a fresh queue.
func NewQueue(list []WordEntry, rng Rand) Queue {
	entries := make([]WordEntry, len(list))
	copy(entries, list)
	rng.Shuffle(len(entries), func(i, j int) { entries[i], entries[j] = entries[j], entries[i] })
	return Queue{Entries: entries}
}

// Remaining is the number of entries not yet scanned.
func (q Queue) Remaining() int { return len(q.Entries) - q.Cursor }

// NextPrompt scans forward from the cursor and returns the first eligible
// prompt together with the advanced queue. A candidate is skipped when its
// cell on the card is already correct, or when it is off the card and the
// sentinel is already correct. Words without definitions are never eligible.
// ok is false when the queue is exhausted; that ends the card, it is not an error.
func NextPrompt(q Queue, card Card, rng Rand) (p Prompt, next Queue, ok bool) {
	sentinelDone := card[SentinelIndex].State == CellCorrect
	for i := q.Cursor; i < len(q.Entries); i++ {
		e := q.Entries[i]
		if len(e.Definitions) == 0 {
			continue
		}
		if idx := card.IndexOf(e.Word); idx >= 0 {
			if card[idx].State == CellCorrect {
				continue
			}
		} else if sentinelDone {
			continue
		}
		def := e.Definitions[rng.Intn(len(e.Definitions))]
		q.Cursor = i + 1
		return Prompt{Word: e.Word, PartOfSpeech: def.PartOfSpeech, Definition: def.Text}, q, true
	}
	q.Cursor = len(q.Entries)
	return Prompt{}, q, false
}
