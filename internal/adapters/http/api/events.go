package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/diamondos/dugout/internal/app"
)

// EventsHandler handles play event submission and listing.
type EventsHandler struct {
	deps Dependencies
}

// NewEventsHandler creates a new events handler.
func NewEventsHandler(deps Dependencies) *EventsHandler {
	return &EventsHandler{deps: deps}
}

// submitPlayRequest mirrors the wire schema for POST /events.
type submitPlayRequest struct {
	GameID      string `json:"game_id"`
	Inning      int    `json:"inning"`
	IsTopInning bool   `json:"is_top_inning"`
	PlayerID    string `json:"player_id"`
	Code        string `json:"code"`
	RunsScored  int    `json:"runs_scored"`
	RBICount    int    `json:"rbi_count"`
}

func (e submitPlayRequest) validate() error {
	switch {
	case strings.TrimSpace(e.GameID) == "":
		return errors.New("missing game_id")
	case e.Inning < 1:
		return errors.New("inning must be >= 1")
	case strings.TrimSpace(e.PlayerID) == "":
		return errors.New("missing player_id")
	case strings.TrimSpace(e.Code) == "":
		return errors.New("missing code")
	case e.RunsScored < 0 || e.RBICount < 0:
		return errors.New("runs_scored and rbi_count must not be negative")
	}
	return nil
}

// HandleEvents dispatches POST /events (submit) and GET /events (list).
func (h *EventsHandler) HandleEvents(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.handleSubmit(w, r)
	case http.MethodGet:
		h.handleList(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *EventsHandler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	const op = "api.submit_play"

	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	var req submitPlayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	ev, err := h.deps.SubmitPlay(r.Context(), userID, service.SubmitPlayInput{
		GameID:      req.GameID,
		Inning:      req.Inning,
		IsTopInning: req.IsTopInning,
		PlayerID:    req.PlayerID,
		Code:        req.Code,
		RunsScored:  req.RunsScored,
		RBICount:    req.RBICount,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	status := http.StatusCreated
	if ev.Version > 1 {
		// The slot already existed; this submission updated it
		// (second input or a manager correcting their own entry)
		// rather than creating a new row.
		status = http.StatusOK
	}
	writeJSON(w, status, toEventResponse(ev))
}

func (h *EventsHandler) handleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_events"

	gameID := r.URL.Query().Get("game_id")
	if gameID == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	events, err := h.deps.ListEvents(r.Context(), gameID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	out := make([]eventResponse, 0, len(events))
	for _, ev := range events {
		out = append(out, toEventResponse(ev))
	}
	writeJSON(w, http.StatusOK, out)
}

// RulingHandler handles commissioner rulings on disputed events.
type RulingHandler struct {
	deps Dependencies
}

// NewRulingHandler creates a new ruling handler.
func NewRulingHandler(deps Dependencies) *RulingHandler {
	return &RulingHandler{deps: deps}
}

// rulingRequest mirrors the wire schema for POST /events/{id}/resolve.
type rulingRequest struct {
	Code       string `json:"code"`
	RunsScored int    `json:"runs_scored"`
	RBICount   int    `json:"rbi_count"`
}

// HandleResolve handles POST /events/{id}/resolve requests.
func (h *RulingHandler) HandleResolve(w http.ResponseWriter, r *http.Request) {
	const op = "api.resolve_dispute"

	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	// Extract the event id from /events/{id}/resolve.
	path := strings.TrimPrefix(r.URL.Path, "/events/")
	eventID, action, found := strings.Cut(path, "/")
	if !found || action != "resolve" || eventID == "" {
		http.NotFound(w, r)
		return
	}

	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	var req rulingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if strings.TrimSpace(req.Code) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	if req.RunsScored < 0 || req.RBICount < 0 {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	ev, err := h.deps.ResolveDispute(r.Context(), userID, service.RulingInput{
		EventID:    eventID,
		Code:       req.Code,
		RunsScored: req.RunsScored,
		RBICount:   req.RBICount,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toEventResponse(ev))
}
