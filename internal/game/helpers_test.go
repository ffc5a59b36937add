package game

import (
	"fmt"
)

// testList returns n words w0..w(n-1), each with two definitions.
func testList(n int) []WordEntry {
	out := make([]WordEntry, n)
	for i := range out {
		w := fmt.Sprintf("w%d", i)
		out[i] = WordEntry{
			Word: w,
			Definitions: []Definition{
				{PartOfSpeech: "n", Text: "first sense of " + w},
				{PartOfSpeech: "v", Text: "second sense of " + w},
			},
		}
	}
	return out
}

// scriptedRand replays fixed permutations. Every Shuffle of more than one
// element consumes the next script entry; a nil entry, or an empty script,
// leaves the slice in its original order. Intn always picks 0.
type scriptedRand struct {
	perms [][]int
}

func (r *scriptedRand) Intn(int) int { return 0 }

func (r *scriptedRand) Shuffle(n int, swap func(i, j int)) {
	if n <= 1 || len(r.perms) == 0 {
		return
	}
	p := r.perms[0]
	r.perms = r.perms[1:]
	if p == nil {
		return
	}
	// cur[i] is the original index currently at position i.
	cur := make([]int, n)
	for i := range cur {
		cur[i] = i
	}
	for i, want := range p {
		for j := i; j < n; j++ {
			if cur[j] == want {
				swap(i, j)
				cur[i], cur[j] = cur[j], cur[i]
				break
			}
		}
	}
}

// countingCue counts audio cues.
type countingCue struct{ n int }

func (c *countingCue) Play() { c.n++ }
