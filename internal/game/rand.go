package game

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand"
)

// Rand is the source of randomness for shuffles and definition picks.
// *math/rand.Rand satisfies it; tests pass a fixed-seed source.
type Rand interface {
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

// NewRand returns a math/rand source seeded with seed.
func NewRand(seed int64) Rand {
	return rand.New(rand.NewSource(seed))
}

// RandomSeed draws a seed from crypto/rand.
func RandomSeed() int64 {
	var b [8]byte
	_, _ = crand.Read(b[:])
	return int64(binary.BigEndian.Uint64(b[:]) >> 1)
}
