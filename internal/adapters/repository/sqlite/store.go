// Package sqlite provides a SQLite-backed implementation of the
// repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/diamondos/dugout/internal/adapters/repository"
	"github.com/diamondos/dugout/internal/domain/model"
	"github.com/diamondos/dugout/pkg/metrics"

	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// Store persists scorekeeping state in SQLite.
type Store struct {
	sqlDB *sql.DB
}

// Open opens the database at path and ensures the schema exists.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := createSchema(sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

const eventColumns = `id, game_id, inning, is_top_inning, player_id, event_type,
	result, runs_scored, rbi_count, manager1_input, manager2_input,
	is_disputed, commissioner_ruling, resolved_at, version, created_at`

func (s *Store) GetEvent(ctx context.Context, id string) (model.PlayEvent, error) {
	row := s.sqlDB.QueryRowContext(ctx,
		`SELECT `+eventColumns+` FROM play_events WHERE id = ?`, id)
	return scanEvent(row)
}

func (s *Store) GetSlotEvent(ctx context.Context, gameID string, inning int, isTop bool) (model.PlayEvent, error) {
	row := s.sqlDB.QueryRowContext(ctx,
		`SELECT `+eventColumns+` FROM play_events
		 WHERE game_id = ? AND inning = ? AND is_top_inning = ?`,
		gameID, inning, boolToInt(isTop))
	return scanEvent(row)
}

func (s *Store) CreateEvent(ctx context.Context, ev model.PlayEvent) error {
	defer observe("create_event", time.Now())

	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO play_events (`+eventColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ev.ID, ev.GameID, ev.Inning, boolToInt(ev.IsTopInning), ev.PlayerID, ev.EventType,
		ev.Result, ev.RunsScored, ev.RBICount, nullable(ev.Manager1Input), nullable(ev.Manager2Input),
		boolToInt(ev.IsDisputed), nullable(ev.CommissionerRuling), nullTime(ev.ResolvedAt),
		ev.Version, ev.CreatedAt.UTC().UnixMilli(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrSlotTaken
		}
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

func (s *Store) UpdateEvent(ctx context.Context, ev model.PlayEvent) (model.PlayEvent, error) {
	defer observe("update_event", time.Now())

	// The version predicate makes the write a compare-and-swap: a
	// racing writer that already bumped the version leaves zero rows
	// affected here.
	res, err := s.sqlDB.ExecContext(ctx,
		`UPDATE play_events SET
		   result = ?, runs_scored = ?, rbi_count = ?,
		   manager1_input = ?, manager2_input = ?,
		   is_disputed = ?, commissioner_ruling = ?, resolved_at = ?,
		   version = version + 1
		 WHERE id = ? AND version = ?`,
		ev.Result, ev.RunsScored, ev.RBICount,
		nullable(ev.Manager1Input), nullable(ev.Manager2Input),
		boolToInt(ev.IsDisputed), nullable(ev.CommissionerRuling), nullTime(ev.ResolvedAt),
		ev.ID, ev.Version,
	)
	if err != nil {
		return model.PlayEvent{}, fmt.Errorf("update event: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return model.PlayEvent{}, fmt.Errorf("update event rows affected: %w", err)
	}
	if affected == 0 {
		// Either the row vanished or the version moved under us.
		if _, gerr := s.GetEvent(ctx, ev.ID); errors.Is(gerr, repository.ErrNotFound) {
			return model.PlayEvent{}, repository.ErrNotFound
		}
		return model.PlayEvent{}, repository.ErrVersionConflict
	}
	ev.Version++
	return ev, nil
}

func (s *Store) ListEventsByGame(ctx context.Context, gameID string) ([]model.PlayEvent, error) {
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT `+eventColumns+` FROM play_events
		 WHERE game_id = ? ORDER BY inning, is_top_inning DESC, created_at`, gameID)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()
	return collectEvents(rows)
}

func (s *Store) ListResolvedEvents(ctx context.Context, playerID, season string) ([]model.PlayEvent, error) {
	defer observe("list_resolved_events", time.Now())

	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT `+prefixedEventColumns("e")+`
		 FROM play_events e
		 JOIN games g ON g.id = e.game_id
		 JOIN leagues l ON l.id = g.league_id
		 WHERE e.player_id = ? AND l.season = ?
		   AND e.is_disputed = 0 AND e.resolved_at IS NOT NULL`,
		playerID, season)
	if err != nil {
		return nil, fmt.Errorf("list resolved events: %w", err)
	}
	defer rows.Close()
	return collectEvents(rows)
}

func (s *Store) CreateLeague(ctx context.Context, l model.League) error {
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO leagues (id, name, season, commissioner_id) VALUES (?, ?, ?, ?)`,
		l.ID, l.Name, l.Season, l.CommissionerID)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicateID
		}
		return fmt.Errorf("insert league: %w", err)
	}
	return nil
}

func (s *Store) GetLeague(ctx context.Context, id string) (model.League, error) {
	var l model.League
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT id, name, season, commissioner_id FROM leagues WHERE id = ?`, id).
		Scan(&l.ID, &l.Name, &l.Season, &l.CommissionerID)
	if errors.Is(err, sql.ErrNoRows) {
		return model.League{}, repository.ErrNotFound
	}
	if err != nil {
		return model.League{}, fmt.Errorf("get league: %w", err)
	}
	return l, nil
}

func (s *Store) CreateTeam(ctx context.Context, t model.Team) error {
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO teams (id, league_id, name, manager_id) VALUES (?, ?, ?, ?)`,
		t.ID, t.LeagueID, t.Name, t.ManagerID)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicateID
		}
		return fmt.Errorf("insert team: %w", err)
	}
	return nil
}

func (s *Store) GetTeam(ctx context.Context, id string) (model.Team, error) {
	var t model.Team
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT id, league_id, name, manager_id FROM teams WHERE id = ?`, id).
		Scan(&t.ID, &t.LeagueID, &t.Name, &t.ManagerID)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Team{}, repository.ErrNotFound
	}
	if err != nil {
		return model.Team{}, fmt.Errorf("get team: %w", err)
	}
	return t, nil
}

func (s *Store) CreatePlayer(ctx context.Context, p model.Player) error {
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO players (id, team_id, name, position) VALUES (?, ?, ?, ?)`,
		p.ID, nullable(p.TeamID), p.Name, p.Position)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicateID
		}
		return fmt.Errorf("insert player: %w", err)
	}
	return nil
}

func (s *Store) GetPlayer(ctx context.Context, id string) (model.Player, error) {
	var p model.Player
	var teamID sql.NullString
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT id, team_id, name, position FROM players WHERE id = ?`, id).
		Scan(&p.ID, &teamID, &p.Name, &p.Position)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Player{}, repository.ErrNotFound
	}
	if err != nil {
		return model.Player{}, fmt.Errorf("get player: %w", err)
	}
	p.TeamID = teamID.String
	return p, nil
}

func (s *Store) CreateGame(ctx context.Context, g model.Game) error {
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO games (id, league_id, home_team_id, away_team_id) VALUES (?, ?, ?, ?)`,
		g.ID, g.LeagueID, g.HomeTeamID, g.AwayTeamID)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicateID
		}
		return fmt.Errorf("insert game: %w", err)
	}
	return nil
}

func (s *Store) GetGame(ctx context.Context, id string) (model.Game, error) {
	var g model.Game
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT id, league_id, home_team_id, away_team_id FROM games WHERE id = ?`, id).
		Scan(&g.ID, &g.LeagueID, &g.HomeTeamID, &g.AwayTeamID)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Game{}, repository.ErrNotFound
	}
	if err != nil {
		return model.Game{}, fmt.Errorf("get game: %w", err)
	}
	return g, nil
}

func (s *Store) UpsertPlayerSeasonStats(ctx context.Context, st model.PlayerSeasonStats) error {
	defer observe("upsert_stats", time.Now())

	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO player_season_stats (
		   player_id, season, games_played, at_bats, hits, runs, rbis,
		   home_runs, doubles, triples, walks, strikeouts, stolen_bases,
		   caught_stealing, batting_average, on_base_percentage,
		   slugging_percentage, ops
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (player_id, season) DO UPDATE SET
		   games_played = excluded.games_played,
		   at_bats = excluded.at_bats,
		   hits = excluded.hits,
		   runs = excluded.runs,
		   rbis = excluded.rbis,
		   home_runs = excluded.home_runs,
		   doubles = excluded.doubles,
		   triples = excluded.triples,
		   walks = excluded.walks,
		   strikeouts = excluded.strikeouts,
		   stolen_bases = excluded.stolen_bases,
		   caught_stealing = excluded.caught_stealing,
		   batting_average = excluded.batting_average,
		   on_base_percentage = excluded.on_base_percentage,
		   slugging_percentage = excluded.slugging_percentage,
		   ops = excluded.ops`,
		st.PlayerID, st.Season, st.GamesPlayed, st.AtBats, st.Hits, st.Runs, st.RBIs,
		st.HomeRuns, st.Doubles, st.Triples, st.Walks, st.Strikeouts, st.StolenBases,
		st.CaughtStealing, st.BattingAverage, st.OnBasePercentage,
		st.SluggingPercentage, st.OPS,
	)
	if err != nil {
		return fmt.Errorf("upsert stats: %w", err)
	}
	return nil
}

func (s *Store) GetPlayerSeasonStats(ctx context.Context, playerID, season string) (model.PlayerSeasonStats, error) {
	var st model.PlayerSeasonStats
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT player_id, season, games_played, at_bats, hits, runs, rbis,
		        home_runs, doubles, triples, walks, strikeouts, stolen_bases,
		        caught_stealing, batting_average, on_base_percentage,
		        slugging_percentage, ops
		 FROM player_season_stats WHERE player_id = ? AND season = ?`,
		playerID, season).
		Scan(&st.PlayerID, &st.Season, &st.GamesPlayed, &st.AtBats, &st.Hits, &st.Runs, &st.RBIs,
			&st.HomeRuns, &st.Doubles, &st.Triples, &st.Walks, &st.Strikeouts, &st.StolenBases,
			&st.CaughtStealing, &st.BattingAverage, &st.OnBasePercentage,
			&st.SluggingPercentage, &st.OPS)
	if errors.Is(err, sql.ErrNoRows) {
		return model.PlayerSeasonStats{}, repository.ErrNotFound
	}
	if err != nil {
		return model.PlayerSeasonStats{}, fmt.Errorf("get stats: %w", err)
	}
	return st, nil
}

// EventCount returns the number of stored play events.
func (s *Store) EventCount(ctx context.Context) int {
	var n int
	if err := s.sqlDB.QueryRowContext(ctx, `SELECT COUNT(*) FROM play_events`).Scan(&n); err != nil {
		return 0
	}
	return n
}

// OpenDisputeCount returns the number of events awaiting a ruling.
func (s *Store) OpenDisputeCount(ctx context.Context) int {
	var n int
	if err := s.sqlDB.QueryRowContext(ctx, `SELECT COUNT(*) FROM play_events WHERE is_disputed = 1`).Scan(&n); err != nil {
		return 0
	}
	return n
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (model.PlayEvent, error) {
	var ev model.PlayEvent
	var isTop, disputed int
	var m1, m2, ruling sql.NullString
	var resolvedAt sql.NullInt64
	var createdAt int64

	err := row.Scan(&ev.ID, &ev.GameID, &ev.Inning, &isTop, &ev.PlayerID, &ev.EventType,
		&ev.Result, &ev.RunsScored, &ev.RBICount, &m1, &m2,
		&disputed, &ruling, &resolvedAt, &ev.Version, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.PlayEvent{}, repository.ErrNotFound
	}
	if err != nil {
		return model.PlayEvent{}, fmt.Errorf("scan event: %w", err)
	}

	ev.IsTopInning = isTop != 0
	ev.IsDisputed = disputed != 0
	ev.Manager1Input = m1.String
	ev.Manager2Input = m2.String
	ev.CommissionerRuling = ruling.String
	ev.CreatedAt = time.UnixMilli(createdAt).UTC()
	if resolvedAt.Valid {
		t := time.UnixMilli(resolvedAt.Int64).UTC()
		ev.ResolvedAt = &t
	}
	return ev, nil
}

func collectEvents(rows *sql.Rows) ([]model.PlayEvent, error) {
	var out []model.PlayEvent
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return out, nil
}

func prefixedEventColumns(alias string) string {
	cols := strings.Split(eventColumns, ",")
	for i, c := range cols {
		cols[i] = alias + "." + strings.TrimSpace(c)
	}
	return strings.Join(cols, ", ")
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().UnixMilli()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "unique constraint")
}

// observe records store operation latency.
func observe(op string, start time.Time) {
	metrics.RecordStoreLatency(op, float64(time.Since(start).Milliseconds()))
}
