package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/playmesa/cardtable/internal/game"
)

type stubDeck []game.Card

func (s stubDeck) Cards(_ context.Context) ([]game.Card, error) {
	return s, nil
}

type published struct {
	gameID  uuid.UUID
	event   string
	payload any
}

// recordingPublisher captures broadcasts so tests can assert the
// broadcast-on-success / private-reply-on-failure contract.
type recordingPublisher struct {
	mu     sync.Mutex
	events []published
}

func (p *recordingPublisher) Publish(gameID uuid.UUID, event string, payload any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, published{gameID: gameID, event: event, payload: payload})
}

func (p *recordingPublisher) all() []published {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]published(nil), p.events...)
}

var (
	rock     = game.Card{ID: 1, Name: "Rock", WinsAgainst: []string{"Scissors"}}
	scissors = game.Card{ID: 2, Name: "Scissors", WinsAgainst: []string{"Paper"}}
)

func newTestRegistry(deck []game.Card, ttl time.Duration) (*Registry, *recordingPublisher) {
	pub := &recordingPublisher{}
	reg := NewRegistry(slog.New(slog.NewTextHandler(io.Discard, nil)), stubDeck(deck), pub, nil, ttl)
	return reg, pub
}

func TestCreateGame(t *testing.T) {
	reg, pub := newTestRegistry([]game.Card{rock, scissors}, 0)

	snap, err := reg.CreateGame(context.Background(), "u1", "Alice", 1234)
	if err != nil {
		t.Fatalf("creating game: %v", err)
	}

	if snap.GameCreatorID != "u1" || snap.GameCreatorName != "Alice" {
		t.Errorf("creator = %q/%q, want u1/Alice", snap.GameCreatorID, snap.GameCreatorName)
	}
	if snap.AccessCode != 1234 {
		t.Errorf("access code = %d, want 1234", snap.AccessCode)
	}
	if reg.Len() != 1 {
		t.Errorf("registry size = %d, want 1", reg.Len())
	}

	events := pub.all()
	if len(events) != 1 || events[0].event != EventGameCreated {
		t.Fatalf("events = %v, want one GameCreated", events)
	}
}

func TestJoinGame(t *testing.T) {
	reg, pub := newTestRegistry([]game.Card{rock, scissors}, 0)
	created, _ := reg.CreateGame(context.Background(), "u1", "Alice", 1234)

	snap, err := reg.JoinGame("u2", "Bob", created.GameSessionID, 1234)
	if err != nil {
		t.Fatalf("joining: %v", err)
	}
	if len(snap.Hands) != 2 {
		t.Errorf("hands = %d, want 2 players listed", len(snap.Hands))
	}

	events := pub.all()
	if last := events[len(events)-1]; last.event != EventPlayerJoined {
		t.Errorf("last event = %q, want PlayerJoined", last.event)
	}
}

func TestJoinGameWrongCodeLooksLikeMissingGame(t *testing.T) {
	reg, pub := newTestRegistry([]game.Card{rock, scissors}, 0)
	created, _ := reg.CreateGame(context.Background(), "u1", "Alice", 1234)
	baseline := len(pub.all())

	_, wrongCode := reg.JoinGame("u2", "Bob", created.GameSessionID, 9999)
	_, unknownID := reg.JoinGame("u2", "Bob", uuid.New(), 1234)

	if !errors.Is(wrongCode, ErrNotFound) {
		t.Errorf("wrong code err = %v, want ErrNotFound", wrongCode)
	}
	if !errors.Is(unknownID, ErrNotFound) {
		t.Errorf("unknown id err = %v, want ErrNotFound", unknownID)
	}
	if wrongCode.Error() != unknownID.Error() {
		t.Error("wrong code and unknown id must be indistinguishable")
	}
	if len(pub.all()) != baseline {
		t.Error("failed joins must not broadcast")
	}
}

func TestJoinGameStateRejection(t *testing.T) {
	reg, pub := newTestRegistry([]game.Card{rock, scissors}, 0)
	created, _ := reg.CreateGame(context.Background(), "u1", "Alice", 1234)
	baseline := len(pub.all())

	_, err := reg.JoinGame("u1", "Alice Again", created.GameSessionID, 1234)

	var rejected *StateError
	if !errors.As(err, &rejected) {
		t.Fatalf("err = %v, want StateError", err)
	}
	if rejected.Error() == "" {
		t.Error("state error should carry a user-facing message")
	}
	if len(pub.all()) != baseline {
		t.Error("rejections must not broadcast")
	}
}

func TestLeaveGameIsBestEffort(t *testing.T) {
	reg, pub := newTestRegistry([]game.Card{rock, scissors}, 0)
	created, _ := reg.CreateGame(context.Background(), "u1", "Alice", 1234)
	reg.JoinGame("u2", "Bob", created.GameSessionID, 1234)
	baseline := len(pub.all())

	// Unknown game and unknown player are both silent.
	reg.LeaveGame("u2", uuid.New(), 1234)
	reg.LeaveGame("ghost", created.GameSessionID, 1234)
	if len(pub.all()) != baseline {
		t.Error("no-op leaves must not broadcast")
	}

	reg.LeaveGame("u2", created.GameSessionID, 1234)
	events := pub.all()
	if last := events[len(events)-1]; last.event != EventPlayerRetired {
		t.Errorf("last event = %q, want PlayerRetired", last.event)
	}

	snap, err := reg.GetState(created.GameSessionID, 1234)
	if err != nil {
		t.Fatalf("get state: %v", err)
	}
	if len(snap.Hands) != 1 {
		t.Errorf("hands = %d, want 1 after leave", len(snap.Hands))
	}
}

func TestPlayThroughOneTurn(t *testing.T) {
	reg, pub := newTestRegistry([]game.Card{rock, scissors}, 0)
	created, _ := reg.CreateGame(context.Background(), "u1", "Alice", 1234)
	if _, err := reg.JoinGame("u2", "Bob", created.GameSessionID, 1234); err != nil {
		t.Fatalf("joining: %v", err)
	}

	snap, err := reg.DealCards(created.GameSessionID, 1234)
	if err != nil {
		t.Fatalf("dealing: %v", err)
	}
	if !snap.HasDealtCards {
		t.Fatal("snapshot should report dealt cards")
	}

	// Round-robin over [Rock, Scissors]: Alice holds Rock, Bob Scissors.
	if err := reg.PlayCard("u1", rock, created.GameSessionID, 1234); err != nil {
		t.Fatalf("alice plays: %v", err)
	}
	if err := reg.PlayCard("u2", scissors, created.GameSessionID, 1234); err != nil {
		t.Fatalf("bob plays: %v", err)
	}

	snap, _ = reg.GetState(created.GameSessionID, 1234)
	if snap.TurnWinnerID != "u1" {
		t.Errorf("winner = %q, want u1 (Rock defeats Scissors)", snap.TurnWinnerID)
	}
	if !snap.ReadyForNextTurn {
		t.Error("both players played, snapshot should be ready for next turn")
	}

	// Double play is rejected privately.
	baseline := len(pub.all())
	err = reg.PlayCard("u1", rock, created.GameSessionID, 1234)
	var rejected *StateError
	if !errors.As(err, &rejected) {
		t.Fatalf("double play err = %v, want StateError", err)
	}
	if len(pub.all()) != baseline {
		t.Error("rejected play must not broadcast")
	}

	if err := reg.NextTurn(created.GameSessionID, 1234); err != nil {
		t.Fatalf("next turn: %v", err)
	}
	snap, _ = reg.GetState(created.GameSessionID, 1234)
	if len(snap.PlayedCards) != 0 {
		t.Error("advancing the turn should clear the play record")
	}
	if snap.TurnWinnerID != "u1" {
		t.Error("advancing the turn should keep the last winner")
	}
}

func TestNextTurnBeforeDeal(t *testing.T) {
	reg, _ := newTestRegistry([]game.Card{rock, scissors}, 0)
	created, _ := reg.CreateGame(context.Background(), "u1", "Alice", 1234)

	err := reg.NextTurn(created.GameSessionID, 1234)
	var rejected *StateError
	if !errors.As(err, &rejected) {
		t.Fatalf("err = %v, want StateError", err)
	}
}

func TestRestartGameAllowsFreshDeal(t *testing.T) {
	reg, _ := newTestRegistry([]game.Card{rock, scissors}, 0)
	created, _ := reg.CreateGame(context.Background(), "u1", "Alice", 1234)
	reg.JoinGame("u2", "Bob", created.GameSessionID, 1234)

	if _, err := reg.DealCards(created.GameSessionID, 1234); err != nil {
		t.Fatalf("dealing: %v", err)
	}
	if err := reg.RestartGame(created.GameSessionID, 1234); err != nil {
		t.Fatalf("restart: %v", err)
	}
	if _, err := reg.DealCards(created.GameSessionID, 1234); err != nil {
		t.Fatalf("re-deal after restart: %v", err)
	}
}

func TestGetPlayerName(t *testing.T) {
	reg, _ := newTestRegistry(nil, 0)
	created, _ := reg.CreateGame(context.Background(), "u1", "Alice", 1234)

	name, err := reg.GetPlayerName("u1", created.GameSessionID, 1234)
	if err != nil {
		t.Fatalf("get name: %v", err)
	}
	if name != "Alice" {
		t.Errorf("name = %q, want Alice", name)
	}

	name, err = reg.GetPlayerName("ghost", created.GameSessionID, 1234)
	if err != nil {
		t.Fatalf("get unknown name: %v", err)
	}
	if name != "" {
		t.Errorf("name = %q, want empty for unknown player", name)
	}

	if _, err := reg.GetPlayerName("u1", created.GameSessionID, 9999); !errors.Is(err, ErrNotFound) {
		t.Errorf("wrong code err = %v, want ErrNotFound", err)
	}
}

func TestEvictIdleSessions(t *testing.T) {
	reg, _ := newTestRegistry(nil, time.Minute)
	created, _ := reg.CreateGame(context.Background(), "u1", "Alice", 1234)

	reg.evictIdle(time.Now())
	if reg.Len() != 1 {
		t.Fatal("fresh session must survive a sweep")
	}

	reg.evictIdle(time.Now().Add(2 * time.Minute))
	if reg.Len() != 0 {
		t.Fatal("idle session should be evicted after the ttl")
	}

	if _, err := reg.GetState(created.GameSessionID, 1234); !errors.Is(err, ErrNotFound) {
		t.Errorf("evicted session err = %v, want ErrNotFound", err)
	}
}

func TestConcurrentCreates(t *testing.T) {
	reg, _ := newTestRegistry(nil, 0)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := reg.CreateGame(context.Background(), "u1", "Alice", 1); err != nil {
				t.Errorf("create: %v", err)
			}
		}()
	}
	wg.Wait()

	if reg.Len() != 20 {
		t.Errorf("registry size = %d, want 20", reg.Len())
	}
}
