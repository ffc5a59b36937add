// internal/game/card.go
//
// Card construction biased by mastery.
// The list is split into three tiers, each shuffled on its own:
//   1. unmastered: never answered correctly
//   2. struggled:  answered correctly but missed at least once
//   3. mastered:   answered correctly, never missed
// The first eight words of unmastered+struggled+mastered fill the card and the
// sentinel is inserted at the centre.

package game

import (
	"fmt"
	"strings"
)

// ValidateList checks that list can back a session: at least WordCells
// entries, no empty or duplicate words, every word with a definition.
func ValidateList(list []WordEntry) error {
	if len(list) < WordCells {
		return fmt.Errorf("%w: got %d", ErrListTooShort, len(list))
	}
	seen := make(map[string]struct{}, len(list))
	for i, e := range list {
		w := strings.ToLower(strings.TrimSpace(e.Word))
		if w == "" {
			return fmt.Errorf("%w (entry %d)", ErrEmptyWord, i)
		}
		if len(e.Definitions) == 0 {
			return fmt.Errorf("%w: %q", ErrNoDefinitions, e.Word)
		}
		if _, dup := seen[w]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateWord, e.Word)
		}
		seen[w] = struct{}{}
	}
	return nil
}

// BuildCard returns a fresh card in which every cell is in the default state.
func BuildCard(list []WordEntry, status map[string]WordStatus, rng Rand) (Card, error) {
	var card Card
	if len(list) < WordCells {
		return card, fmt.Errorf("%w: got %d", ErrListTooShort, len(list))
	}

	var unmastered, struggled, mastered []string
	for _, e := range list {
		st := status[e.Word]
		switch {
		case !st.Correct:
			unmastered = append(unmastered, e.Word)
		case st.MissCount > 0:
			struggled = append(struggled, e.Word)
		default:
			mastered = append(mastered, e.Word)
		}
	}
	shuffle(rng, unmastered)
	shuffle(rng, struggled)
	shuffle(rng, mastered)

	picked := make([]string, 0, len(list))
	picked = append(picked, unmastered...)
	picked = append(picked, struggled...)
	picked = append(picked, mastered...)
	picked = picked[:WordCells]

	for i, j := 0, 0; i < CardSize; i++ {
		if i == SentinelIndex {
			card[i] = Cell{Sentinel: true, State: CellDefault}
			continue
		}
		card[i] = Cell{Word: picked[j], State: CellDefault}
		j++
	}
	return card, nil
}

func shuffle(rng Rand, s []string) {
	rng.Shuffle(len(s), func(i, j int) { s[i], s[j] = s[j], s[i] })
}
