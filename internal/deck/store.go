// Package deck is the sqlite-backed card catalog. It is the external card
// provider for new game sessions: the catalog is read once per session and
// the returned cards are never written back.
package deck

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/playmesa/cardtable/internal/game"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Cards returns the full catalog in id order. Implements game.DeckProvider.
func (s *Store) Cards(ctx context.Context) ([]game.Card, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, color, suit, wins_against
		FROM cards
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying cards: %w", err)
	}
	defer rows.Close()

	var cards []game.Card
	for rows.Next() {
		var c game.Card
		var wins string
		if err := rows.Scan(&c.ID, &c.Name, &c.Color, &c.Suit, &wins); err != nil {
			return nil, fmt.Errorf("scanning card: %w", err)
		}
		if err := json.Unmarshal([]byte(wins), &c.WinsAgainst); err != nil {
			return nil, fmt.Errorf("decoding wins_against for card %d: %w", c.ID, err)
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

// Count reports the catalog size.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM cards").Scan(&n)
	return n, err
}

// Insert adds one card to the catalog.
func (s *Store) Insert(ctx context.Context, c game.Card) error {
	wins, err := json.Marshal(c.WinsAgainst)
	if err != nil {
		return fmt.Errorf("encoding wins_against: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO cards (id, name, color, suit, wins_against)
		VALUES (?, ?, ?, ?, ?)
	`, c.ID, c.Name, c.Color, c.Suit, string(wins))
	if err != nil {
		return fmt.Errorf("inserting card %q: %w", c.Name, err)
	}
	return nil
}
