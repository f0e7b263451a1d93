package server

import (
	"errors"
	"net/http"

	"github.com/playmesa/cardtable/internal/session"
)

// writeSessionError maps registry failures onto HTTP responses. Misses are
// uniform 404s (a wrong access code looks like an unknown game); game-rule
// rejections are 409s carrying the message for the requesting client only.
func writeSessionError(w http.ResponseWriter, err error) {
	var rejected *session.StateError
	switch {
	case errors.Is(err, session.ErrNotFound):
		writeError(w, http.StatusNotFound, session.ErrNotFound.Error())
	case errors.As(err, &rejected):
		writeError(w, http.StatusConflict, rejected.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
