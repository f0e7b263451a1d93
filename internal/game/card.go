package game

import "context"

// Card is one card from the catalog. Cards are value types and are never
// mutated after loading; the defeat relation is expressed as the set of
// opposing card names in WinsAgainst.
type Card struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Color       string   `json:"color"`
	Suit        string   `json:"suit"`
	WinsAgainst []string `json:"winsAgainst"`
}

// Beats reports whether c defeats other in a head-to-head comparison.
// Cards with the same name tie and beat nothing.
func (c Card) Beats(other Card) bool {
	if c.Name == other.Name {
		return false
	}
	for _, name := range c.WinsAgainst {
		if name == other.Name {
			return true
		}
	}
	return false
}

// DeckProvider supplies the ordered card list assigned to a new game.
// The returned slice is copied by the game and never written back.
type DeckProvider interface {
	Cards(ctx context.Context) ([]Card, error)
}
