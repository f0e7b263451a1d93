package server

import (
	"net/http"

	"github.com/playmesa/cardtable/internal/session"
)

type LeaveGameRequest struct {
	AccessCode int    `json:"accessCode"`
	UserID     string `json:"userId"`
}

// Leaving is best-effort: an unknown game, a wrong code, or a player who
// never joined all produce the same 204.
func handleLeaveGame(reg *session.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameID, err := gameIDParam(r)
		if err != nil {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		var req LeaveGameRequest
		if err := readJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		reg.LeaveGame(req.UserID, gameID, req.AccessCode)
		w.WriteHeader(http.StatusNoContent)
	}
}
