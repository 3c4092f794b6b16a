// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/diamondos/dugout/internal/adapters/repository"
	"github.com/diamondos/dugout/internal/app"
	"github.com/diamondos/dugout/internal/domain/model"
	"github.com/diamondos/dugout/internal/domain/outcome"
	"github.com/diamondos/dugout/internal/domain/reconcile"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// SubmitPlay records one manager's observation of a play.
	SubmitPlay(ctx context.Context, userID string, in service.SubmitPlayInput) (model.PlayEvent, error)

	// ResolveDispute applies a commissioner ruling to a disputed event.
	ResolveDispute(ctx context.Context, userID string, in service.RulingInput) (model.PlayEvent, error)

	// ListEvents returns all play events recorded for a game.
	ListEvents(ctx context.Context, gameID string) ([]model.PlayEvent, error)

	// Recalculate rebuilds and persists a player's season batting line.
	Recalculate(ctx context.Context, playerID, season string) (model.PlayerSeasonStats, error)

	// PlayerStats returns the persisted batting line.
	PlayerStats(ctx context.Context, playerID, season string) (model.PlayerSeasonStats, error)

	// Reference record seeding.
	CreateLeague(ctx context.Context, l model.League) (model.League, error)
	CreateTeam(ctx context.Context, t model.Team) (model.Team, error)
	CreatePlayer(ctx context.Context, p model.Player) (model.Player, error)
	CreateGame(ctx context.Context, g model.Game) (model.Game, error)
}

// userHeader carries the caller identity. The service trusts the value;
// authentication happens upstream.
const userHeader = "X-User-ID"

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler  *HealthHandler
	statusHandler  *StatusHandler
	eventsHandler  *EventsHandler
	rulingHandler  *RulingHandler
	statsHandler   *StatsHandler
	leaguesHandler *LeaguesHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statusProvider StatusProvider) *Server {
	return &Server{
		healthHandler:  NewHealthHandler(),
		statusHandler:  NewStatusHandler(statusProvider),
		eventsHandler:  NewEventsHandler(deps),
		rulingHandler:  NewRulingHandler(deps),
		statsHandler:   NewStatsHandler(deps),
		leaguesHandler: NewLeaguesHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/statusz", MetricsMiddleware(s.statusHandler.HandleStatus, "statusz"))
	mux.HandleFunc("/events", MetricsMiddleware(s.eventsHandler.HandleEvents, "events"))
	mux.HandleFunc("/events/", MetricsMiddleware(s.rulingHandler.HandleResolve, "resolve"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleGetStats, "stats"))
	mux.HandleFunc("/stats/recalculate", MetricsMiddleware(s.statsHandler.HandleRecalculate, "recalculate"))
	mux.HandleFunc("/leagues", MetricsMiddleware(s.leaguesHandler.HandleCreateLeague, "leagues"))
	mux.HandleFunc("/teams", MetricsMiddleware(s.leaguesHandler.HandleCreateTeam, "teams"))
	mux.HandleFunc("/players", MetricsMiddleware(s.leaguesHandler.HandleCreatePlayer, "players"))
	mux.HandleFunc("/games", MetricsMiddleware(s.leaguesHandler.HandleCreateGame, "games"))
}

// eventResponse mirrors the wire shape of a play event.
type eventResponse struct {
	ID                 string     `json:"id"`
	GameID             string     `json:"game_id"`
	Inning             int        `json:"inning"`
	IsTopInning        bool       `json:"is_top_inning"`
	PlayerID           string     `json:"player_id"`
	EventType          string     `json:"event_type"`
	Result             string     `json:"result,omitempty"`
	RunsScored         int        `json:"runs_scored"`
	RBICount           int        `json:"rbi_count"`
	Manager1Input      string     `json:"manager1_input,omitempty"`
	Manager2Input      string     `json:"manager2_input,omitempty"`
	IsDisputed         bool       `json:"is_disputed"`
	CommissionerRuling string     `json:"commissioner_ruling,omitempty"`
	ResolvedAt         *time.Time `json:"resolved_at,omitempty"`
	Status             string     `json:"status"`
}

func toEventResponse(ev model.PlayEvent) eventResponse {
	return eventResponse{
		ID:                 ev.ID,
		GameID:             ev.GameID,
		Inning:             ev.Inning,
		IsTopInning:        ev.IsTopInning,
		PlayerID:           ev.PlayerID,
		EventType:          ev.EventType,
		Result:             ev.Result,
		RunsScored:         ev.RunsScored,
		RBICount:           ev.RBICount,
		Manager1Input:      ev.Manager1Input,
		Manager2Input:      ev.Manager2Input,
		IsDisputed:         ev.IsDisputed,
		CommissionerRuling: ev.CommissionerRuling,
		ResolvedAt:         ev.ResolvedAt,
		Status:             eventStatus(ev),
	}
}

func eventStatus(ev model.PlayEvent) string {
	switch {
	case ev.IsDisputed:
		return "disputed"
	case ev.Resolved():
		return "resolved"
	default:
		return "awaiting_second_input"
	}
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeDomainError translates domain errors to HTTP responses so every
// handler maps failures the same way.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, outcome.ErrUnrecognizedCode),
		errors.Is(err, reconcile.ErrMissingField),
		errors.Is(err, service.ErrMissingField):
		writeError(w, http.StatusBadRequest, "bad_request", err)
	case errors.Is(err, service.ErrUnauthorized):
		writeError(w, http.StatusForbidden, "forbidden", err)
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, reconcile.ErrSlotResolved),
		errors.Is(err, reconcile.ErrSlotDisputed),
		errors.Is(err, reconcile.ErrNotDisputed),
		errors.Is(err, repository.ErrDuplicateID):
		writeError(w, http.StatusConflict, "conflict", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}

// requireUser extracts the caller id, rejecting anonymous requests.
func requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := r.Header.Get(userHeader)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized", NewKind("api.require_user", ErrNoUser))
		return "", false
	}
	return userID, true
}
