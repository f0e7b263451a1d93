package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"nhooyr.io/websocket"

	"github.com/playmesa/cardtable/internal/session"
)

func TestHandleWSFeed(t *testing.T) {
	r, broker := gameRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/games",
		CreateGameRequest{UserID: "u1", UserName: "Alice", AccessCode: 1234})
	created := decodeSnapshot(t, w)

	srv := httptest.NewServer(r)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	wsURL := "ws" + srv.URL[len("http"):] +
		"/api/games/" + created.GameSessionID.String() + "/ws?code=1234"

	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.CloseNow()

	// Give the server a beat to register the subscription, then publish.
	time.Sleep(50 * time.Millisecond)
	broker.Publish(created.GameSessionID, session.EventGameStateChanged, created)

	_, data, err := conn.Read(ctx)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	var ev Event
	if err := json.Unmarshal(data, &ev); err != nil {
		t.Fatalf("decoding event: %v", err)
	}
	if ev.Type != session.EventGameStateChanged {
		t.Errorf("event type = %q, want %q", ev.Type, session.EventGameStateChanged)
	}

	conn.Close(websocket.StatusNormalClosure, "done")
}

func TestHandleWSWrongCode(t *testing.T) {
	r, _ := gameRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/games",
		CreateGameRequest{UserID: "u1", UserName: "Alice", AccessCode: 1234})
	created := decodeSnapshot(t, w)

	req := httptest.NewRequest(http.MethodGet,
		"/api/games/"+created.GameSessionID.String()+"/ws?code=9999", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}
