package server

import (
	"net/http"
	"strings"

	"github.com/playmesa/cardtable/internal/session"
)

type JoinGameRequest struct {
	AccessCode int    `json:"accessCode"`
	UserID     string `json:"userId"`
	UserName   string `json:"userName"`
}

func handleJoinGame(reg *session.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameID, err := gameIDParam(r)
		if err != nil {
			writeError(w, http.StatusNotFound, session.ErrNotFound.Error())
			return
		}

		var req JoinGameRequest
		if err := readJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		req.UserID = strings.TrimSpace(req.UserID)
		req.UserName = strings.TrimSpace(req.UserName)
		if req.UserID == "" || req.UserName == "" {
			writeError(w, http.StatusBadRequest, "userId and userName are required")
			return
		}

		snap, err := reg.JoinGame(req.UserID, req.UserName, gameID, req.AccessCode)
		if err != nil {
			writeSessionError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, snap)
	}
}
