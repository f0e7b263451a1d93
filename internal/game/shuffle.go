package game

import "math/rand"

// Shuffler decides the deal order of a deck. Implementations must return
// a copy and leave the input untouched.
type Shuffler func(deck []Card) []Card

// NoShuffle deals the deck in catalog order. This matches the behavior of
// the original table rules and keeps deals reproducible in tests.
func NoShuffle(deck []Card) []Card {
	out := make([]Card, len(deck))
	copy(out, deck)
	return out
}

// RandomShuffle returns a randomized copy of the deck.
func RandomShuffle(deck []Card) []Card {
	out := make([]Card, len(deck))
	copy(out, deck)
	rand.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}
