package server

import (
	"log/slog"
	"net/http"

	"nhooyr.io/websocket"

	"github.com/playmesa/cardtable/internal/session"
)

// handleWS serves the same per-game event feed as the SSE endpoint over a
// WebSocket, for clients that already hold a socket open.
func handleWS(logger *slog.Logger, reg *session.Registry, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameID, err := gameIDParam(r)
		if err != nil {
			writeError(w, http.StatusNotFound, session.ErrNotFound.Error())
			return
		}
		code, ok := codeQuery(r)
		if !ok {
			writeError(w, http.StatusBadRequest, "code query parameter required")
			return
		}

		if _, err := reg.GetState(gameID, code); err != nil {
			writeSessionError(w, err)
			return
		}

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			InsecureSkipVerify: true,
		})
		if err != nil {
			logger.Error("websocket accept failed", "error", err)
			return
		}
		defer conn.CloseNow()

		ch := broker.Subscribe(gameID)
		defer broker.Unsubscribe(gameID, ch)

		ctx := r.Context()
		for {
			select {
			case <-ctx.Done():
				conn.Close(websocket.StatusGoingAway, "server shutting down")
				return
			case data := <-ch:
				if err := conn.Write(ctx, websocket.MessageText, data); err != nil {
					logger.Debug("websocket write failed", "error", err)
					return
				}
			}
		}
	}
}
