package sqlite

import "database/sql"

// schema is applied on every open; each statement is idempotent.
const schema = `
CREATE TABLE IF NOT EXISTS leagues (
	id              TEXT PRIMARY KEY,
	name            TEXT NOT NULL,
	season          TEXT NOT NULL,
	commissioner_id TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS teams (
	id         TEXT PRIMARY KEY,
	league_id  TEXT NOT NULL REFERENCES leagues(id),
	name       TEXT NOT NULL,
	manager_id TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS players (
	id       TEXT PRIMARY KEY,
	team_id  TEXT REFERENCES teams(id),
	name     TEXT NOT NULL,
	position TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS games (
	id           TEXT PRIMARY KEY,
	league_id    TEXT NOT NULL REFERENCES leagues(id),
	home_team_id TEXT NOT NULL REFERENCES teams(id),
	away_team_id TEXT NOT NULL REFERENCES teams(id)
);

CREATE TABLE IF NOT EXISTS play_events (
	id                  TEXT PRIMARY KEY,
	game_id             TEXT NOT NULL REFERENCES games(id),
	inning              INTEGER NOT NULL,
	is_top_inning       INTEGER NOT NULL,
	player_id           TEXT NOT NULL,
	event_type          TEXT NOT NULL,
	result              TEXT NOT NULL DEFAULT '',
	runs_scored         INTEGER NOT NULL DEFAULT 0,
	rbi_count           INTEGER NOT NULL DEFAULT 0,
	manager1_input      TEXT,
	manager2_input      TEXT,
	is_disputed         INTEGER NOT NULL DEFAULT 0,
	commissioner_ruling TEXT,
	resolved_at         INTEGER,
	version             INTEGER NOT NULL DEFAULT 1,
	created_at          INTEGER NOT NULL,
	UNIQUE (game_id, inning, is_top_inning)
);

CREATE INDEX IF NOT EXISTS idx_play_events_game ON play_events(game_id);
CREATE INDEX IF NOT EXISTS idx_play_events_player ON play_events(player_id);
CREATE INDEX IF NOT EXISTS idx_play_events_disputed ON play_events(is_disputed) WHERE is_disputed = 1;

CREATE TABLE IF NOT EXISTS player_season_stats (
	player_id           TEXT NOT NULL,
	season              TEXT NOT NULL,
	games_played        INTEGER NOT NULL DEFAULT 0,
	at_bats             INTEGER NOT NULL DEFAULT 0,
	hits                INTEGER NOT NULL DEFAULT 0,
	runs                INTEGER NOT NULL DEFAULT 0,
	rbis                INTEGER NOT NULL DEFAULT 0,
	home_runs           INTEGER NOT NULL DEFAULT 0,
	doubles             INTEGER NOT NULL DEFAULT 0,
	triples             INTEGER NOT NULL DEFAULT 0,
	walks               INTEGER NOT NULL DEFAULT 0,
	strikeouts          INTEGER NOT NULL DEFAULT 0,
	stolen_bases        INTEGER NOT NULL DEFAULT 0,
	caught_stealing     INTEGER NOT NULL DEFAULT 0,
	batting_average     REAL NOT NULL DEFAULT 0,
	on_base_percentage  REAL NOT NULL DEFAULT 0,
	slugging_percentage REAL NOT NULL DEFAULT 0,
	ops                 REAL NOT NULL DEFAULT 0,
	PRIMARY KEY (player_id, season)
);
`

func createSchema(sqlDB *sql.DB) error {
	_, err := sqlDB.Exec(schema)
	return err
}
