package server

import (
	"net/http"

	"github.com/playmesa/cardtable/internal/session"
)

type DealCardsRequest struct {
	AccessCode int `json:"accessCode"`
}

func handleDealCards(reg *session.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameID, err := gameIDParam(r)
		if err != nil {
			writeError(w, http.StatusNotFound, session.ErrNotFound.Error())
			return
		}

		var req DealCardsRequest
		if err := readJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		snap, err := reg.DealCards(gameID, req.AccessCode)
		if err != nil {
			writeSessionError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, snap)
	}
}
