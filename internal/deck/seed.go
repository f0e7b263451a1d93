package deck

import (
	"context"
	"log/slog"

	"github.com/playmesa/cardtable/internal/game"
)

// demoDeck is the default elemental deck. Each card names the cards it
// defeats head-to-head; cards with the same name always tie.
var demoDeck = []game.Card{
	{ID: 1, Name: "Rock", Color: "gray", Suit: "stone", WinsAgainst: []string{"Scissors", "Ember"}},
	{ID: 2, Name: "Paper", Color: "white", Suit: "scroll", WinsAgainst: []string{"Rock", "Tide"}},
	{ID: 3, Name: "Scissors", Color: "red", Suit: "blade", WinsAgainst: []string{"Paper", "Grove"}},
	{ID: 4, Name: "Ember", Color: "orange", Suit: "flame", WinsAgainst: []string{"Paper", "Grove", "Scissors"}},
	{ID: 5, Name: "Tide", Color: "blue", Suit: "wave", WinsAgainst: []string{"Ember", "Rock", "Gale"}},
	{ID: 6, Name: "Grove", Color: "green", Suit: "leaf", WinsAgainst: []string{"Tide", "Rock", "Paper"}},
	{ID: 7, Name: "Gale", Color: "silver", Suit: "wind", WinsAgainst: []string{"Grove", "Ember", "Scissors"}},
	{ID: 8, Name: "Bolt", Color: "yellow", Suit: "storm", WinsAgainst: []string{"Tide", "Gale", "Rock"}},
}

// SeedDemo loads the demo deck into an empty catalog. Idempotent: a
// non-empty catalog is left alone.
func SeedDemo(ctx context.Context, logger *slog.Logger, store *Store) error {
	n, err := store.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	for _, c := range demoDeck {
		if err := store.Insert(ctx, c); err != nil {
			return err
		}
	}
	logger.Info("demo deck seeded", "cards", len(demoDeck))
	return nil
}
