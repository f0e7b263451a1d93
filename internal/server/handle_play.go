package server

import (
	"net/http"
	"strings"

	"github.com/playmesa/cardtable/internal/game"
	"github.com/playmesa/cardtable/internal/session"
)

type PlayCardRequest struct {
	AccessCode int       `json:"accessCode"`
	UserID     string    `json:"userId"`
	Card       game.Card `json:"card"`
}

func handlePlayCard(reg *session.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameID, err := gameIDParam(r)
		if err != nil {
			writeError(w, http.StatusNotFound, session.ErrNotFound.Error())
			return
		}

		var req PlayCardRequest
		if err := readJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		req.UserID = strings.TrimSpace(req.UserID)
		if req.UserID == "" || req.Card.Name == "" {
			writeError(w, http.StatusBadRequest, "userId and card are required")
			return
		}

		if err := reg.PlayCard(req.UserID, req.Card, gameID, req.AccessCode); err != nil {
			writeSessionError(w, err)
			return
		}

		// Accepted: the new state reaches the player over the broadcast feed.
		w.WriteHeader(http.StatusNoContent)
	}
}
