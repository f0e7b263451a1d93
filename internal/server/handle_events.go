package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/playmesa/cardtable/internal/session"
)

// handleEvents streams a session's broadcast events over SSE. Subscribing
// requires the same (id, access code) pair as any other operation.
func handleEvents(reg *session.Registry, broker *Broker) http.HandlerFunc {
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

		flusher, ok := w.(http.Flusher)
		if !ok {
			writeError(w, http.StatusInternalServerError, "streaming not supported")
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("X-Accel-Buffering", "no")
		flusher.Flush()

		ch := broker.Subscribe(gameID)
		defer broker.Unsubscribe(gameID, ch)

		ping := time.NewTicker(30 * time.Second)
		defer ping.Stop()

		for {
			select {
			case <-r.Context().Done():
				return
			case data := <-ch:
				fmt.Fprintf(w, "event: state\ndata: %s\n\n", data)
				flusher.Flush()
			case <-ping.C:
				fmt.Fprintf(w, ": ping\n\n")
				flusher.Flush()
			}
		}
	}
}
