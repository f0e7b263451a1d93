package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi31"

	"github.com/playmesa/cardtable/internal/game"
)

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

func newOpenAPISpec() *openapi31.Spec {
	r := openapi31.NewReflector()
	r.Spec.Info.Title = "Card Table API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Backend API for live multiplayer card-game sessions.")

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.SetDescription("Returns the health status of backend dependencies.")
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getHealthz)

	// POST /api/games
	postGame, _ := r.NewOperationContext(http.MethodPost, "/api/games")
	postGame.SetSummary("Create game session")
	postGame.SetDescription("Creates a new session gated by the given access code, with the creator seated.")
	postGame.AddReqStructure(CreateGameRequest{})
	postGame.AddRespStructure(game.Snapshot{}, openapi.WithHTTPStatus(http.StatusCreated))
	postGame.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(postGame)

	// POST /api/games/{gameID}/join
	postJoin, _ := r.NewOperationContext(http.MethodPost, "/api/games/{gameID}/join")
	postJoin.SetSummary("Join game")
	postJoin.SetDescription("Seats a new player. Requires the session id and its access code; a wrong code is indistinguishable from an unknown session.")
	postJoin.AddReqStructure(JoinGameRequest{})
	postJoin.AddRespStructure(game.Snapshot{}, openapi.WithHTTPStatus(http.StatusOK))
	postJoin.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	postJoin.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(postJoin)

	// POST /api/games/{gameID}/leave
	postLeave, _ := r.NewOperationContext(http.MethodPost, "/api/games/{gameID}/leave")
	postLeave.SetSummary("Leave game")
	postLeave.SetDescription("Retires a player. Best-effort: always returns 204.")
	postLeave.AddReqStructure(LeaveGameRequest{})
	postLeave.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusNoContent))
	_ = r.AddOperation(postLeave)

	// GET /api/games/{gameID}/state
	getState, _ := r.NewOperationContext(http.MethodGet, "/api/games/{gameID}/state")
	getState.SetSummary("Get game state")
	getState.SetDescription("Returns the current snapshot. Pass the access code as the code query parameter.")
	getState.AddRespStructure(game.Snapshot{}, openapi.WithHTTPStatus(http.StatusOK))
	getState.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getState)

	// POST /api/games/{gameID}/deal
	postDeal, _ := r.NewOperationContext(http.MethodPost, "/api/games/{gameID}/deal")
	postDeal.SetSummary("Deal cards")
	postDeal.SetDescription("Deals the session's deck round-robin and starts the first turn.")
	postDeal.AddReqStructure(DealCardsRequest{})
	postDeal.AddRespStructure(game.Snapshot{}, openapi.WithHTTPStatus(http.StatusOK))
	postDeal.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	postDeal.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(postDeal)

	// POST /api/games/{gameID}/play
	postPlay, _ := r.NewOperationContext(http.MethodPost, "/api/games/{gameID}/play")
	postPlay.SetSummary("Play a card")
	postPlay.SetDescription("Records the player's card for the current turn. The turn resolves once every player has played.")
	postPlay.AddReqStructure(PlayCardRequest{})
	postPlay.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusNoContent))
	postPlay.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	postPlay.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(postPlay)

	// POST /api/games/{gameID}/next-turn
	postNext, _ := r.NewOperationContext(http.MethodPost, "/api/games/{gameID}/next-turn")
	postNext.SetSummary("Advance turn")
	postNext.SetDescription("Moves the active turn to the next seat and clears the turn's play record.")
	postNext.AddReqStructure(TurnRequest{})
	postNext.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusNoContent))
	postNext.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	postNext.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(postNext)

	// POST /api/games/{gameID}/reset
	postReset, _ := r.NewOperationContext(http.MethodPost, "/api/games/{gameID}/reset")
	postReset.SetSummary("Restart game")
	postReset.SetDescription("Marks cards as not dealt so a fresh deal can start. Seating and scores are kept.")
	postReset.AddReqStructure(TurnRequest{})
	postReset.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusNoContent))
	postReset.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(postReset)

	// GET /api/games/{gameID}/players/{userID}/name
	getName, _ := r.NewOperationContext(http.MethodGet, "/api/games/{gameID}/players/{userID}/name")
	getName.SetSummary("Look up player name")
	getName.SetDescription("Resolves a seated player's display name. Unknown players resolve to an empty name.")
	getName.AddRespStructure(PlayerNameResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getName.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getName)

	// GET /api/games/{gameID}/events
	getEvents, _ := r.NewOperationContext(http.MethodGet, "/api/games/{gameID}/events")
	getEvents.SetSummary("SSE event stream")
	getEvents.SetDescription("Server-Sent Events stream of session broadcasts. Pass the access code as the code query parameter.")
	getEvents.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK),
		openapi.WithContentType("text/event-stream"))
	_ = r.AddOperation(getEvents)

	// GET /api/games/{gameID}/ws
	getWS, _ := r.NewOperationContext(http.MethodGet, "/api/games/{gameID}/ws")
	getWS.SetSummary("WebSocket event feed")
	getWS.SetDescription("Upgrades to a WebSocket carrying the same event feed as the SSE endpoint.")
	getWS.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusSwitchingProtocols),
		openapi.WithContentType("text/plain"))
	_ = r.AddOperation(getWS)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Write(data)
	}
}
