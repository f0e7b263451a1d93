package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/playmesa/cardtable/internal/session"
)

type PlayerNameResponse struct {
	Name string `json:"name"`
}

func handlePlayerName(reg *session.Registry) http.HandlerFunc {
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

		name, err := reg.GetPlayerName(chi.URLParam(r, "userID"), gameID, code)
		if err != nil {
			writeSessionError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, PlayerNameResponse{Name: name})
	}
}
