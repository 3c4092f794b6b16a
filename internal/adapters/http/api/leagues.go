package api

import (
	"encoding/json"
	"net/http"

	"github.com/diamondos/dugout/internal/domain/model"
)

// LeaguesHandler handles reference record seeding: leagues, teams,
// players, and games.
type LeaguesHandler struct {
	deps Dependencies
}

// NewLeaguesHandler creates a new leagues handler.
func NewLeaguesHandler(deps Dependencies) *LeaguesHandler {
	return &LeaguesHandler{deps: deps}
}

// leagueBody is the wire shape of a league on both requests and
// responses; the other seeding endpoints follow the same pattern.
type leagueBody struct {
	ID             string `json:"id,omitempty"`
	Name           string `json:"name"`
	Season         string `json:"season"`
	CommissionerID string `json:"commissioner_id"`
}

// HandleCreateLeague handles POST /leagues requests.
func (h *LeaguesHandler) HandleCreateLeague(w http.ResponseWriter, r *http.Request) {
	const op = "api.create_league"

	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req leagueBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	l, err := h.deps.CreateLeague(r.Context(), model.League{
		ID:             req.ID,
		Name:           req.Name,
		Season:         req.Season,
		CommissionerID: req.CommissionerID,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, leagueBody{
		ID:             l.ID,
		Name:           l.Name,
		Season:         l.Season,
		CommissionerID: l.CommissionerID,
	})
}

type teamBody struct {
	ID        string `json:"id,omitempty"`
	LeagueID  string `json:"league_id"`
	Name      string `json:"name"`
	ManagerID string `json:"manager_id"`
}

// HandleCreateTeam handles POST /teams requests.
func (h *LeaguesHandler) HandleCreateTeam(w http.ResponseWriter, r *http.Request) {
	const op = "api.create_team"

	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req teamBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	t, err := h.deps.CreateTeam(r.Context(), model.Team{
		ID:        req.ID,
		LeagueID:  req.LeagueID,
		Name:      req.Name,
		ManagerID: req.ManagerID,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, teamBody{
		ID:        t.ID,
		LeagueID:  t.LeagueID,
		Name:      t.Name,
		ManagerID: t.ManagerID,
	})
}

type playerBody struct {
	ID       string `json:"id,omitempty"`
	TeamID   string `json:"team_id,omitempty"`
	Name     string `json:"name"`
	Position string `json:"position,omitempty"`
}

// HandleCreatePlayer handles POST /players requests.
func (h *LeaguesHandler) HandleCreatePlayer(w http.ResponseWriter, r *http.Request) {
	const op = "api.create_player"

	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req playerBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	p, err := h.deps.CreatePlayer(r.Context(), model.Player{
		ID:       req.ID,
		TeamID:   req.TeamID,
		Name:     req.Name,
		Position: req.Position,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, playerBody{
		ID:       p.ID,
		TeamID:   p.TeamID,
		Name:     p.Name,
		Position: p.Position,
	})
}

type gameBody struct {
	ID         string `json:"id,omitempty"`
	LeagueID   string `json:"league_id"`
	HomeTeamID string `json:"home_team_id"`
	AwayTeamID string `json:"away_team_id"`
}

// HandleCreateGame handles POST /games requests.
func (h *LeaguesHandler) HandleCreateGame(w http.ResponseWriter, r *http.Request) {
	const op = "api.create_game"

	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req gameBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	g, err := h.deps.CreateGame(r.Context(), model.Game{
		ID:         req.ID,
		LeagueID:   req.LeagueID,
		HomeTeamID: req.HomeTeamID,
		AwayTeamID: req.AwayTeamID,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, gameBody{
		ID:         g.ID,
		LeagueID:   g.LeagueID,
		HomeTeamID: g.HomeTeamID,
		AwayTeamID: g.AwayTeamID,
	})
}
