package game

import "errors"

// State machine rejections. All are local to the offending request; the
// session layer translates them to user-facing messages and never lets
// them reach other clients.
var (
	ErrAlreadyDealt    = errors.New("cards have been dealt")
	ErrGameClosed      = errors.New("game is closed")
	ErrNotDealt        = errors.New("cards have not been dealt")
	ErrDuplicatePlayer = errors.New("player has already joined the game")
	ErrNameTaken       = errors.New("username is already in use")
	ErrAlreadyPlayed   = errors.New("player has already played a card this turn")
	ErrInvalidTurnSize = errors.New("there must be exactly two played cards to determine the turn result")
)
