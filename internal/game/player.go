package game

// Player is one participant in a game. The game's player list owns the
// player for the lifetime of the session; there is no back-pointer.
type Player struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Hand   []Card `json:"hand"`
	Score  int    `json:"score"`
}

// NewPlayer returns a player with an empty hand and zero score.
func NewPlayer(userID, name string) *Player {
	return &Player{UserID: userID, Name: name}
}

// AddToHand appends a card to the player's hand.
func (p *Player) AddToHand(c Card) {
	p.Hand = append(p.Hand, c)
}

// RemoveFromHand removes the first card with a matching id. Removing a
// card the player does not hold is a no-op.
func (p *Player) RemoveFromHand(c Card) {
	for i, held := range p.Hand {
		if held.ID == c.ID {
			p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
			return
		}
	}
}

// IncrementScore awards a point. Called only by turn resolution.
func (p *Player) IncrementScore() {
	p.Score++
}
