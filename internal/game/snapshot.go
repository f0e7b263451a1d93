package game

import "github.com/google/uuid"

// CardHand is the read-only view of one player's hand.
type CardHand struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Cards  []Card `json:"cards"`
}

// Snapshot is a point-in-time serializable view of a game, built fresh
// after every successful mutation and broadcast to the session's members.
// Snapshots are never stored.
type Snapshot struct {
	GameSessionID    uuid.UUID       `json:"gameSessionId"`
	HasDealtCards    bool            `json:"hasDealtCards"`
	IsComplete       bool            `json:"isComplete"`
	GameCreatorID    string          `json:"gameCreatorId"`
	GameCreatorName  string          `json:"gameCreatorName"`
	TurnWinnerID     string          `json:"turnWinnerId"`
	AccessCode       int             `json:"accessCode"`
	Hands            []CardHand      `json:"hands"`
	PlayedCards      map[string]Card `json:"playedCards"`
	ReadyForNextTurn bool            `json:"readyForNextTurn"`
}

// Hands projects every seated player's current hand in seating order.
func (g *Game) Hands() []CardHand {
	hands := make([]CardHand, 0, len(g.players))
	for _, p := range g.players {
		hands = append(hands, CardHand{
			UserID: p.UserID,
			Name:   p.Name,
			Cards:  append([]Card(nil), p.Hand...),
		})
	}
	return hands
}

// Snapshot builds the broadcast view of the game. Completion is derived:
// the game is complete when every hand is empty.
func (g *Game) Snapshot() Snapshot {
	complete := true
	for _, p := range g.players {
		if len(p.Hand) > 0 {
			complete = false
			break
		}
	}

	played := make(map[string]Card, len(g.plays))
	for _, play := range g.plays {
		played[play.UserID] = play.Card
	}

	return Snapshot{
		GameSessionID:    g.id,
		HasDealtCards:    g.HasDealtCards(),
		IsComplete:       complete,
		GameCreatorID:    g.creatorID,
		GameCreatorName:  g.creatorName,
		TurnWinnerID:     g.turnWinnerID,
		AccessCode:       g.accessCode,
		Hands:            g.Hands(),
		PlayedCards:      played,
		ReadyForNextTurn: g.ReadyForNextTurn(),
	}
}
