package server

import (
	"net/http"
	"strings"

	"github.com/playmesa/cardtable/internal/session"
)

type CreateGameRequest struct {
	UserID     string `json:"userId"`
	UserName   string `json:"userName"`
	AccessCode int    `json:"accessCode"`
}

func handleCreateGame(reg *session.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateGameRequest
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

		snap, err := reg.CreateGame(r.Context(), req.UserID, req.UserName, req.AccessCode)
		if err != nil {
			writeSessionError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, snap)
	}
}
