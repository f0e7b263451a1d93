package server

import (
	"net/http"

	"github.com/playmesa/cardtable/internal/session"
)

func handleGameState(reg *session.Registry) http.HandlerFunc {
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

		snap, err := reg.GetState(gameID, code)
		if err != nil {
			writeSessionError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, snap)
	}
}
