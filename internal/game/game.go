package game

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Status is the lifecycle stage of a game.
type Status int

const (
	StatusNone Status = iota
	StatusOpen
	StatusComplete
)

// TieWinnerID is stored as the turn winner when both played cards share a
// name. It is a sentinel, not a player id.
const TieWinnerID = "-1"

// Play is one recorded card play within the current turn. Order matters:
// turn resolution compares the first play against the second.
type Play struct {
	UserID string `json:"userId"`
	Card   Card   `json:"card"`
}

// Game is the state machine for one session. It is not safe for concurrent
// use; the session registry serializes access per game.
type Game struct {
	id          uuid.UUID
	accessCode  int
	creatorID   string
	creatorName string

	players []*Player
	deck    []Card
	shuffle Shuffler

	status       Status
	turnIndex    int
	plays        []Play
	turnWinnerID string
}

// NewGame creates an open game with the creator seated and the provider's
// deck copied in. The turn index starts at -1: cards are not dealt.
func NewGame(ctx context.Context, accessCode int, creator *Player, provider DeckProvider, shuffle Shuffler) (*Game, error) {
	deck, err := provider.Cards(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading deck: %w", err)
	}
	if shuffle == nil {
		shuffle = NoShuffle
	}
	return &Game{
		id:          uuid.New(),
		accessCode:  accessCode,
		creatorID:   creator.UserID,
		creatorName: creator.Name,
		players:     []*Player{creator},
		deck:        append([]Card(nil), deck...),
		shuffle:     shuffle,
		status:      StatusOpen,
		turnIndex:   -1,
	}, nil
}

func (g *Game) ID() uuid.UUID { return g.id }
func (g *Game) AccessCode() int { return g.accessCode }
func (g *Game) Status() Status { return g.status }
func (g *Game) CreatorID() string { return g.creatorID }

// Players returns the seating order. Callers must not mutate it.
func (g *Game) Players() []*Player { return g.players }

// HasDealtCards reports whether a deal has happened this round.
func (g *Game) HasDealtCards() bool { return g.turnIndex >= 0 }

// CurrentTurn is the seat index whose turn is active, or -1 before dealing.
func (g *Game) CurrentTurn() int { return g.turnIndex }

// ReadyForNextTurn holds when every seated player has played this turn.
func (g *Game) ReadyForNextTurn() bool { return len(g.plays) == len(g.players) }

// TurnWinnerID is the result of the most recent resolved turn: a player id,
// TieWinnerID, or empty if no turn has resolved yet.
func (g *Game) TurnWinnerID() string { return g.turnWinnerID }

// PlayedCards returns the current turn's plays in play order.
func (g *Game) PlayedCards() []Play { return g.plays }

// AddPlayer seats a player. Ids and display names are unique per game, and
// nobody may join once cards are out.
func (g *Game) AddPlayer(p *Player) error {
	for _, seated := range g.players {
		if seated.UserID == p.UserID {
			return ErrDuplicatePlayer
		}
		if seated.Name == p.Name {
			return ErrNameTaken
		}
	}
	if g.HasDealtCards() {
		return ErrAlreadyDealt
	}
	g.players = append(g.players, p)
	return nil
}

// DealCards clears every hand and distributes the deck round-robin in
// seating order: card k goes to player k mod N. A successful deal sets the
// turn index to 0. Dealing with no players seated is a no-op.
func (g *Game) DealCards() error {
	if g.HasDealtCards() {
		return ErrAlreadyDealt
	}
	if g.status == StatusComplete {
		return ErrGameClosed
	}
	if len(g.players) == 0 {
		return nil
	}

	for _, p := range g.players {
		p.Hand = nil
	}
	for i, c := range g.shuffle(g.deck) {
		g.players[i%len(g.players)].AddToHand(c)
	}
	g.turnIndex = 0
	return nil
}

// PlayCard records userID's card for the current turn and removes it from
// their hand. One play per player per turn. When the last seated player
// plays, the turn resolves immediately; the play record stays in place
// until CompleteTurn.
func (g *Game) PlayCard(userID string, card Card) error {
	for _, play := range g.plays {
		if play.UserID == userID {
			return ErrAlreadyPlayed
		}
	}

	g.plays = append(g.plays, Play{UserID: userID, Card: card})
	if p := g.PlayerByID(userID); p != nil {
		p.RemoveFromHand(card)
	}

	if g.ReadyForNextTurn() {
		winnerID, err := g.resolveTurn()
		if err != nil {
			return err
		}
		g.turnWinnerID = winnerID
	}
	return nil
}

// resolveTurn compares the two played cards. Same name is a tie. Otherwise
// the first card wins iff its defeat-set names the second card; absence
// from the defeat-set credits the second player. The winner scores a point.
// The rule is defined for exactly two plays.
func (g *Game) resolveTurn() (string, error) {
	if len(g.plays) != 2 {
		return "", ErrInvalidTurnSize
	}

	first, second := g.plays[0], g.plays[1]
	if first.Card.Name == second.Card.Name {
		return TieWinnerID, nil
	}

	winner := second
	if first.Card.Beats(second.Card) {
		winner = first
	}
	if p := g.PlayerByID(winner.UserID); p != nil {
		p.IncrementScore()
	}
	return winner.UserID, nil
}

// CompleteTurn advances the turn index, wrapping past the last seat, and
// discards the turn's play record. The last resolved winner persists until
// the next resolution overwrites it.
func (g *Game) CompleteTurn() error {
	if g.turnIndex < 0 {
		return ErrNotDealt
	}
	g.turnIndex++
	if g.turnIndex == len(g.players) {
		g.turnIndex = 0
	}
	g.plays = nil
	return nil
}

// RetirePlayer removes a player and discards their hand. Returns nil if the
// player was never seated.
func (g *Game) RetirePlayer(userID string) *Player {
	for i, p := range g.players {
		if p.UserID == userID {
			p.Hand = nil
			g.players = append(g.players[:i], g.players[i+1:]...)
			return p
		}
	}
	return nil
}

// Reset marks cards as not dealt so the next DealCards starts a fresh
// round. Seating, hands, and scores are left as they are; DealCards clears
// hands itself.
func (g *Game) Reset() {
	g.turnIndex = -1
}

// PlayerByID returns the seated player with the given id, or nil.
func (g *Game) PlayerByID(userID string) *Player {
	for _, p := range g.players {
		if p.UserID == userID {
			return p
		}
	}
	return nil
}

// PlayerName returns the display name for userID, or "" if not seated.
func (g *Game) PlayerName(userID string) string {
	if p := g.PlayerByID(userID); p != nil {
		return p.Name
	}
	return ""
}
