package server

import (
	"database/sql"
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"

	"github.com/playmesa/cardtable/internal/session"
)

func addRoutes(r chi.Router, logger *slog.Logger, reg *session.Registry, broker *Broker, db *sql.DB, spaDir string) {
	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("Card Table API", "/openapi.json", "/docs"))
	r.Get("/healthz", handleHealth(logger, db))

	r.Route("/api/games", func(r chi.Router) {
		r.Post("/", handleCreateGame(reg))

		r.Route("/{gameID}", func(r chi.Router) {
			r.Post("/join", handleJoinGame(reg))
			r.Post("/leave", handleLeaveGame(reg))
			r.Get("/state", handleGameState(reg))
			r.Post("/deal", handleDealCards(reg))
			r.Post("/play", handlePlayCard(reg))
			r.Post("/next-turn", handleNextTurn(reg))
			r.Post("/reset", handleRestartGame(reg))
			r.Get("/players/{userID}/name", handlePlayerName(reg))
			r.Get("/events", handleEvents(reg, broker))
			r.Get("/ws", handleWS(logger, reg, broker))
		})
	})

	if spaDir != "" {
		if info, err := os.Stat(spaDir); err == nil && info.IsDir() {
			logger.Info("serving SPA", "dir", spaDir)
			r.NotFound(handleSPA(spaDir))
		}
	}
}
