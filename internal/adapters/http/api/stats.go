package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/diamondos/dugout/internal/domain/model"
)

// StatsHandler handles batting stats reads and recalculation.
type StatsHandler struct {
	deps Dependencies
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(deps Dependencies) *StatsHandler {
	return &StatsHandler{deps: deps}
}

// statsResponse mirrors the wire shape of a season batting line.
type statsResponse struct {
	PlayerID           string  `json:"player_id"`
	Season             string  `json:"season"`
	GamesPlayed        int     `json:"games_played"`
	AtBats             int     `json:"at_bats"`
	Hits               int     `json:"hits"`
	Runs               int     `json:"runs"`
	RBIs               int     `json:"rbis"`
	HomeRuns           int     `json:"home_runs"`
	Doubles            int     `json:"doubles"`
	Triples            int     `json:"triples"`
	Walks              int     `json:"walks"`
	Strikeouts         int     `json:"strikeouts"`
	StolenBases        int     `json:"stolen_bases"`
	CaughtStealing     int     `json:"caught_stealing"`
	BattingAverage     float64 `json:"batting_average"`
	OnBasePercentage   float64 `json:"on_base_percentage"`
	SluggingPercentage float64 `json:"slugging_percentage"`
	OPS                float64 `json:"ops"`
}

func toStatsResponse(st model.PlayerSeasonStats) statsResponse {
	return statsResponse{
		PlayerID:           st.PlayerID,
		Season:             st.Season,
		GamesPlayed:        st.GamesPlayed,
		AtBats:             st.AtBats,
		Hits:               st.Hits,
		Runs:               st.Runs,
		RBIs:               st.RBIs,
		HomeRuns:           st.HomeRuns,
		Doubles:            st.Doubles,
		Triples:            st.Triples,
		Walks:              st.Walks,
		Strikeouts:         st.Strikeouts,
		StolenBases:        st.StolenBases,
		CaughtStealing:     st.CaughtStealing,
		BattingAverage:     st.BattingAverage,
		OnBasePercentage:   st.OnBasePercentage,
		SluggingPercentage: st.SluggingPercentage,
		OPS:                st.OPS,
	}
}

// HandleGetStats handles GET /stats?player_id=X&season=Y requests.
func (h *StatsHandler) HandleGetStats(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_stats"

	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	playerID := r.URL.Query().Get("player_id")
	season := r.URL.Query().Get("season")
	if playerID == "" || season == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	st, err := h.deps.PlayerStats(r.Context(), playerID, season)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toStatsResponse(st))
}

// recalculateRequest mirrors the wire schema for POST /stats/recalculate.
type recalculateRequest struct {
	PlayerID string `json:"player_id"`
	Season   string `json:"season"`
}

// HandleRecalculate handles POST /stats/recalculate requests.
func (h *StatsHandler) HandleRecalculate(w http.ResponseWriter, r *http.Request) {
	const op = "api.recalculate_stats"

	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req recalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if strings.TrimSpace(req.PlayerID) == "" || strings.TrimSpace(req.Season) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	st, err := h.deps.Recalculate(r.Context(), req.PlayerID, req.Season)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toStatsResponse(st))
}
