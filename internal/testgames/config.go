package testgames

import "time"

// Config holds configuration for the scorekeeping test
type Config struct {
	BaseURL      string        // Base URL of the service
	NumGames     int           // Number of games to script and play
	Innings      int           // Innings per game
	ConflictRate float64       // Fraction of plays where managers disagree
	Workers      int           // Number of concurrent workers
	Timeout      time.Duration // HTTP request timeout
	LogFile      string        // Log file for test output
	Verbose      bool          // Enable verbose logging
}

// Play represents one scripted half-inning play with both managers' views.
type Play struct {
	GameID      string `json:"game_id"`
	Inning      int    `json:"inning"`
	IsTopInning bool   `json:"is_top_inning"`
	PlayerID    string `json:"player_id"`
	HomeCode    string `json:"home_code"`
	AwayCode    string `json:"away_code"`
	RunsScored  int    `json:"runs_scored"`
	RBICount    int    `json:"rbi_count"`
}

// submitRequest mirrors the POST /events wire schema.
type submitRequest struct {
	GameID      string `json:"game_id"`
	Inning      int    `json:"inning"`
	IsTopInning bool   `json:"is_top_inning"`
	PlayerID    string `json:"player_id"`
	Code        string `json:"code"`
	RunsScored  int    `json:"runs_scored"`
	RBICount    int    `json:"rbi_count"`
}

// eventResponse mirrors the play event wire schema.
type eventResponse struct {
	ID         string     `json:"id"`
	GameID     string     `json:"game_id"`
	PlayerID   string     `json:"player_id"`
	Result     string     `json:"result"`
	RunsScored int        `json:"runs_scored"`
	RBICount   int        `json:"rbi_count"`
	IsDisputed bool       `json:"is_disputed"`
	ResolvedAt *time.Time `json:"resolved_at"`
	Status     string     `json:"status"`
}

// statsResponse mirrors the season batting line wire schema.
type statsResponse struct {
	PlayerID           string  `json:"player_id"`
	Season             string  `json:"season"`
	GamesPlayed        int     `json:"games_played"`
	AtBats             int     `json:"at_bats"`
	Hits               int     `json:"hits"`
	Runs               int     `json:"runs"`
	RBIs               int     `json:"rbis"`
	HomeRuns           int     `json:"home_runs"`
	Walks              int     `json:"walks"`
	Strikeouts         int     `json:"strikeouts"`
	BattingAverage     float64 `json:"batting_average"`
	OnBasePercentage   float64 `json:"on_base_percentage"`
	SluggingPercentage float64 `json:"slugging_percentage"`
	OPS                float64 `json:"ops"`
}

// Fixture holds the seeded league graph the test plays against.
type Fixture struct {
	LeagueID       string
	Season         string
	CommissionerID string
	HomeManagerID  string
	AwayManagerID  string
	HomeTeamID     string
	AwayTeamID     string
	GameIDs        []string
	PlayerIDs      []string
}

// Stats holds test statistics
type Stats struct {
	PlaysScripted    int
	PlaysSubmitted   int
	PlaysResolved    int
	PlaysDisputed    int
	PlaysFailed      int
	RulingsApplied   int
	PlayersVerified  int
	VerifyMismatches int
	StartTime        time.Time
	EndTime          time.Time
	Duration         time.Duration
}
