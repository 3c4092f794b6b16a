// Package model contains domain models passed between layers.
package model

import "time"

// Role names a user's capability within a league.
type Role string

const (
	RoleCommissioner Role = "commissioner"
	RoleManager      Role = "manager"
	RoleParent       Role = "parent"
)

// ManagerSlot identifies which of the two independent scorekeepers a
// submission came from. The home-team manager always occupies slot one.
type ManagerSlot int

const (
	ManagerSlotNone ManagerSlot = 0
	ManagerSlotHome ManagerSlot = 1
	ManagerSlotAway ManagerSlot = 2
)

// League is a season-scoped league record.
type League struct {
	ID             string
	Name           string
	Season         string
	CommissionerID string
}

// Team belongs to a league and is run by a single manager.
type Team struct {
	ID        string
	LeagueID  string
	Name      string
	ManagerID string
}

// Player is a rostered player. TeamID is empty until drafted.
type Player struct {
	ID       string
	TeamID   string
	Name     string
	Position string
}

// Game is one scheduled matchup between two teams in a league.
type Game struct {
	ID         string
	LeagueID   string
	HomeTeamID string
	AwayTeamID string
}

// PlayEvent is one at-bat occurrence within a game. The slot
// (GameID, Inning, IsTopInning) holds at most one live event at a time.
//
// Result stays empty until both manager inputs agree or a commissioner
// ruling is recorded; ResolvedAt is stamped exactly when Result is set.
// Version is the optimistic-concurrency token guarding slot transitions.
type PlayEvent struct {
	ID                 string
	GameID             string
	Inning             int
	IsTopInning        bool
	PlayerID           string
	EventType          string
	Result             string
	RunsScored         int
	RBICount           int
	Manager1Input      string
	Manager2Input      string
	IsDisputed         bool
	CommissionerRuling string
	ResolvedAt         *time.Time
	Version            int64
	CreatedAt          time.Time
}

// Resolved reports whether the event carries a canonical result.
func (e PlayEvent) Resolved() bool {
	return e.ResolvedAt != nil
}

// SetManagerInput stores a raw submitted code into the input slot of
// the given manager.
func (e *PlayEvent) SetManagerInput(slot ManagerSlot, code string) {
	switch slot {
	case ManagerSlotHome:
		e.Manager1Input = code
	case ManagerSlotAway:
		e.Manager2Input = code
	}
}

// ManagerInput returns the raw code stored for the given manager.
func (e PlayEvent) ManagerInput(slot ManagerSlot) string {
	if slot == ManagerSlotHome {
		return e.Manager1Input
	}
	return e.Manager2Input
}

// PlayerSeasonStats is the derived batting line for one player and
// season. It is always recomputed wholesale, never patched.
type PlayerSeasonStats struct {
	PlayerID string
	Season   string

	GamesPlayed    int
	AtBats         int
	Hits           int
	Runs           int
	RBIs           int
	HomeRuns       int
	Doubles        int
	Triples        int
	Walks          int
	Strikeouts     int
	StolenBases    int
	CaughtStealing int

	BattingAverage     float64
	OnBasePercentage   float64
	SluggingPercentage float64
	OPS                float64
}
