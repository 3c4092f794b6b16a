// Package repository defines the persistence interfaces for league
// records, play events, and derived stats, plus an in-memory
// implementation used for tests and zero-config runs.
package repository

import (
	"context"

	"github.com/diamondos/dugout/internal/domain/model"
)

// EventStore provides read/write access to play events. A slot
// (game, inning, half-inning) holds at most one event; the store
// enforces that on create and guards updates with the event's
// version token.
type EventStore interface {
	// GetEvent returns the event with the given id.
	// Returns ErrNotFound if the event is unknown.
	GetEvent(ctx context.Context, id string) (model.PlayEvent, error)

	// GetSlotEvent returns the event occupying the slot.
	// Returns ErrNotFound if the slot is empty.
	GetSlotEvent(ctx context.Context, gameID string, inning int, isTop bool) (model.PlayEvent, error)

	// CreateEvent inserts a new event into its slot.
	// Returns ErrSlotTaken if the slot already holds an event.
	CreateEvent(ctx context.Context, ev model.PlayEvent) error

	// UpdateEvent writes ev back if its Version still matches the
	// stored row, then bumps the version. Returns ErrVersionConflict
	// when another writer got there first.
	UpdateEvent(ctx context.Context, ev model.PlayEvent) (model.PlayEvent, error)

	// ListEventsByGame returns all events recorded for a game.
	ListEventsByGame(ctx context.Context, gameID string) ([]model.PlayEvent, error)

	// ListResolvedEvents returns the resolved, undisputed events for a
	// player across all games whose league season matches season.
	ListResolvedEvents(ctx context.Context, playerID, season string) ([]model.PlayEvent, error)
}

// LeagueStore provides access to league, team, player, and game
// reference records.
type LeagueStore interface {
	CreateLeague(ctx context.Context, l model.League) error
	GetLeague(ctx context.Context, id string) (model.League, error)

	CreateTeam(ctx context.Context, t model.Team) error
	GetTeam(ctx context.Context, id string) (model.Team, error)

	CreatePlayer(ctx context.Context, p model.Player) error
	GetPlayer(ctx context.Context, id string) (model.Player, error)

	CreateGame(ctx context.Context, g model.Game) error
	GetGame(ctx context.Context, id string) (model.Game, error)
}

// StatsStore provides access to derived player season stats.
type StatsStore interface {
	// UpsertPlayerSeasonStats replaces the stats row for
	// (player, season) wholesale.
	UpsertPlayerSeasonStats(ctx context.Context, s model.PlayerSeasonStats) error

	// GetPlayerSeasonStats returns the persisted stats row.
	// Returns ErrNotFound if no row exists.
	GetPlayerSeasonStats(ctx context.Context, playerID, season string) (model.PlayerSeasonStats, error)
}

// Store bundles the full persistence surface.
type Store interface {
	EventStore
	LeagueStore
	StatsStore
}

// StatsReporter is an optional store capability exposing operational
// counts for monitoring.
type StatsReporter interface {
	EventCount(ctx context.Context) int
	OpenDisputeCount(ctx context.Context) int
}
