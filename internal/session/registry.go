package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/playmesa/cardtable/internal/game"
)

// ErrNotFound covers both an unknown session id and a wrong access code.
// The two cases are deliberately indistinguishable to the caller.
var ErrNotFound = errors.New("game not found or invalid access code")

// StateError is a game-rule rejection translated for the requesting
// client. It is never broadcast to the session's other members.
type StateError struct {
	msg string
}

func (e *StateError) Error() string { return e.msg }

// Publisher delivers an event to every member of a session. Delivery is
// fire-and-forget; the registry does not depend on it succeeding.
type Publisher interface {
	Publish(gameID uuid.UUID, event string, payload any)
}

// Broadcast event names, sent with a fresh snapshot (or a small payload
// for PlayerRetired) after every successful mutation.
const (
	EventGameCreated      = "GameCreated"
	EventPlayerJoined     = "PlayerJoined"
	EventPlayerRetired    = "PlayerRetired"
	EventGameStateChanged = "GameStateChanged"
)

type entry struct {
	mu         sync.Mutex
	game       *game.Game
	lastActive time.Time
}

// Registry is the process-wide session store. Each entry carries its own
// mutex so operations against one game are serialized while unrelated
// games proceed concurrently.
type Registry struct {
	logger  *slog.Logger
	decks   game.DeckProvider
	pub     Publisher
	shuffle game.Shuffler
	ttl     time.Duration

	mu    sync.RWMutex
	games map[uuid.UUID]*entry
}

// NewRegistry builds an empty registry. ttl is the idle eviction horizon;
// zero keeps sessions forever.
func NewRegistry(logger *slog.Logger, decks game.DeckProvider, pub Publisher, shuffle game.Shuffler, ttl time.Duration) *Registry {
	return &Registry{
		logger:  logger,
		decks:   decks,
		pub:     pub,
		shuffle: shuffle,
		ttl:     ttl,
		games:   make(map[uuid.UUID]*entry),
	}
}

// lookup finds the entry for (gameID, accessCode) and marks it active.
// A wrong code fails exactly like a missing id.
func (r *Registry) lookup(gameID uuid.UUID, accessCode int) (*entry, bool) {
	r.mu.RLock()
	e, ok := r.games[gameID]
	r.mu.RUnlock()
	if !ok || e.game.AccessCode() != accessCode {
		return nil, false
	}

	e.mu.Lock()
	e.lastActive = time.Now()
	e.mu.Unlock()
	return e, true
}

// CreateGame registers a new session with the creator seated and announces
// it to the (so far empty) session group.
func (r *Registry) CreateGame(ctx context.Context, userID, userName string, accessCode int) (game.Snapshot, error) {
	creator := game.NewPlayer(userID, userName)
	g, err := game.NewGame(ctx, accessCode, creator, r.decks, r.shuffle)
	if err != nil {
		return game.Snapshot{}, err
	}

	e := &entry{game: g, lastActive: time.Now()}
	r.mu.Lock()
	r.games[g.ID()] = e
	r.mu.Unlock()

	snap := g.Snapshot()
	r.pub.Publish(g.ID(), EventGameCreated, snap)
	r.logger.Info("game created", "game_id", g.ID(), "creator", userID)
	return snap, nil
}

// JoinGame seats a new player in an existing session.
func (r *Registry) JoinGame(userID, userName string, gameID uuid.UUID, accessCode int) (game.Snapshot, error) {
	e, ok := r.lookup(gameID, accessCode)
	if !ok {
		return game.Snapshot{}, ErrNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.game.AddPlayer(game.NewPlayer(userID, userName)); err != nil {
		return game.Snapshot{}, &StateError{msg: err.Error()}
	}

	snap := e.game.Snapshot()
	r.pub.Publish(gameID, EventPlayerJoined, snap)
	return snap, nil
}

// LeaveGame retires a player. Best-effort: leaving an unknown session or
// one the player never joined is silently ignored.
func (r *Registry) LeaveGame(userID string, gameID uuid.UUID, accessCode int) {
	e, ok := r.lookup(gameID, accessCode)
	if !ok {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.game.RetirePlayer(userID) == nil {
		return
	}
	r.pub.Publish(gameID, EventPlayerRetired, map[string]string{"userId": userID})
}

// GetState returns the current snapshot without mutating anything.
func (r *Registry) GetState(gameID uuid.UUID, accessCode int) (game.Snapshot, error) {
	e, ok := r.lookup(gameID, accessCode)
	if !ok {
		return game.Snapshot{}, ErrNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.game.Snapshot(), nil
}

// DealCards deals the session's deck and broadcasts the dealt state.
func (r *Registry) DealCards(gameID uuid.UUID, accessCode int) (game.Snapshot, error) {
	e, ok := r.lookup(gameID, accessCode)
	if !ok {
		return game.Snapshot{}, ErrNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.game.DealCards(); err != nil {
		return game.Snapshot{}, &StateError{msg: err.Error()}
	}

	snap := e.game.Snapshot()
	r.pub.Publish(gameID, EventGameStateChanged, snap)
	return snap, nil
}

// PlayCard records a player's card for the current turn. A nil return
// means the play was accepted and the new state broadcast.
func (r *Registry) PlayCard(userID string, card game.Card, gameID uuid.UUID, accessCode int) error {
	e, ok := r.lookup(gameID, accessCode)
	if !ok {
		return ErrNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.game.PlayCard(userID, card); err != nil {
		return &StateError{msg: err.Error()}
	}

	r.pub.Publish(gameID, EventGameStateChanged, e.game.Snapshot())
	return nil
}

// NextTurn advances the session to the next turn.
func (r *Registry) NextTurn(gameID uuid.UUID, accessCode int) error {
	e, ok := r.lookup(gameID, accessCode)
	if !ok {
		return ErrNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.game.CompleteTurn(); err != nil {
		return &StateError{msg: err.Error()}
	}

	r.pub.Publish(gameID, EventGameStateChanged, e.game.Snapshot())
	return nil
}

// RestartGame resets the deal so a fresh round can start.
func (r *Registry) RestartGame(gameID uuid.UUID, accessCode int) error {
	e, ok := r.lookup(gameID, accessCode)
	if !ok {
		return ErrNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.game.Reset()
	r.pub.Publish(gameID, EventGameStateChanged, e.game.Snapshot())
	return nil
}

// GetPlayerName resolves a seated player's display name. An unknown player
// in a known session returns "".
func (r *Registry) GetPlayerName(userID string, gameID uuid.UUID, accessCode int) (string, error) {
	e, ok := r.lookup(gameID, accessCode)
	if !ok {
		return "", ErrNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.game.PlayerName(userID), nil
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.games)
}

// Sweep evicts sessions idle longer than the registry's ttl, checking on
// every tick of interval until ctx is done. With a zero ttl it only waits
// for cancellation, matching the original's keep-forever behavior.
func (r *Registry) Sweep(ctx context.Context, interval time.Duration) error {
	if r.ttl <= 0 {
		<-ctx.Done()
		return nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			r.evictIdle(time.Now())
		}
	}
}

func (r *Registry) evictIdle(now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, e := range r.games {
		e.mu.Lock()
		idle := now.Sub(e.lastActive)
		e.mu.Unlock()

		if idle > r.ttl {
			delete(r.games, id)
			r.logger.Info("session evicted", "game_id", id, "idle", idle)
		}
	}
}
