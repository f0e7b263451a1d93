package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func gameIDParam(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "gameID"))
}

func codeQuery(r *http.Request) (int, bool) {
	code, err := strconv.Atoi(r.URL.Query().Get("code"))
	if err != nil {
		return 0, false
	}
	return code, true
}
