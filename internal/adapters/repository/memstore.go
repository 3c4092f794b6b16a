package repository

import (
	"context"
	"sync"
	"time"

	"github.com/diamondos/dugout/internal/domain/model"
	"github.com/diamondos/dugout/pkg/metrics"
)

// slotKey is the unique coordinate of one at-bat's reconciliation record.
type slotKey struct {
	gameID string
	inning int
	isTop  bool
}

// statsKey identifies one derived stats row.
type statsKey struct {
	playerID string
	season   string
}

// MemStore is a mutex-guarded in-memory Store. All records are stored
// and returned by value, so callers never share mutable state.
type MemStore struct {
	mu sync.RWMutex

	events  map[string]model.PlayEvent
	slots   map[slotKey]string // slot -> event id
	leagues map[string]model.League
	teams   map[string]model.Team
	players map[string]model.Player
	games   map[string]model.Game
	stats   map[statsKey]model.PlayerSeasonStats
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		events:  make(map[string]model.PlayEvent),
		slots:   make(map[slotKey]string),
		leagues: make(map[string]model.League),
		teams:   make(map[string]model.Team),
		players: make(map[string]model.Player),
		games:   make(map[string]model.Game),
		stats:   make(map[statsKey]model.PlayerSeasonStats),
	}
}

func (s *MemStore) GetEvent(ctx context.Context, id string) (model.PlayEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ev, ok := s.events[id]
	if !ok {
		return model.PlayEvent{}, ErrNotFound
	}
	return ev, nil
}

func (s *MemStore) GetSlotEvent(ctx context.Context, gameID string, inning int, isTop bool) (model.PlayEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.slots[slotKey{gameID: gameID, inning: inning, isTop: isTop}]
	if !ok {
		return model.PlayEvent{}, ErrNotFound
	}
	return s.events[id], nil
}

func (s *MemStore) CreateEvent(ctx context.Context, ev model.PlayEvent) error {
	defer observe("create_event", time.Now())

	s.mu.Lock()
	defer s.mu.Unlock()

	key := slotKey{gameID: ev.GameID, inning: ev.Inning, isTop: ev.IsTopInning}
	if _, taken := s.slots[key]; taken {
		return ErrSlotTaken
	}
	if _, dup := s.events[ev.ID]; dup {
		return ErrDuplicateID
	}
	s.events[ev.ID] = ev
	s.slots[key] = ev.ID
	return nil
}

func (s *MemStore) UpdateEvent(ctx context.Context, ev model.PlayEvent) (model.PlayEvent, error) {
	defer observe("update_event", time.Now())

	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.events[ev.ID]
	if !ok {
		return model.PlayEvent{}, ErrNotFound
	}
	if cur.Version != ev.Version {
		return model.PlayEvent{}, ErrVersionConflict
	}
	ev.Version++
	s.events[ev.ID] = ev
	return ev, nil
}

func (s *MemStore) ListEventsByGame(ctx context.Context, gameID string) ([]model.PlayEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.PlayEvent
	for _, ev := range s.events {
		if ev.GameID == gameID {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (s *MemStore) ListResolvedEvents(ctx context.Context, playerID, season string) ([]model.PlayEvent, error) {
	defer observe("list_resolved_events", time.Now())

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.PlayEvent
	for _, ev := range s.events {
		if ev.PlayerID != playerID || ev.IsDisputed || !ev.Resolved() {
			continue
		}
		game, ok := s.games[ev.GameID]
		if !ok {
			continue
		}
		league, ok := s.leagues[game.LeagueID]
		if !ok || league.Season != season {
			continue
		}
		out = append(out, ev)
	}
	return out, nil
}

func (s *MemStore) CreateLeague(ctx context.Context, l model.League) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, dup := s.leagues[l.ID]; dup {
		return ErrDuplicateID
	}
	s.leagues[l.ID] = l
	return nil
}

func (s *MemStore) GetLeague(ctx context.Context, id string) (model.League, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	l, ok := s.leagues[id]
	if !ok {
		return model.League{}, ErrNotFound
	}
	return l, nil
}

func (s *MemStore) CreateTeam(ctx context.Context, t model.Team) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, dup := s.teams[t.ID]; dup {
		return ErrDuplicateID
	}
	s.teams[t.ID] = t
	return nil
}

func (s *MemStore) GetTeam(ctx context.Context, id string) (model.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.teams[id]
	if !ok {
		return model.Team{}, ErrNotFound
	}
	return t, nil
}

func (s *MemStore) CreatePlayer(ctx context.Context, p model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, dup := s.players[p.ID]; dup {
		return ErrDuplicateID
	}
	s.players[p.ID] = p
	return nil
}

func (s *MemStore) GetPlayer(ctx context.Context, id string) (model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.players[id]
	if !ok {
		return model.Player{}, ErrNotFound
	}
	return p, nil
}

func (s *MemStore) CreateGame(ctx context.Context, g model.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, dup := s.games[g.ID]; dup {
		return ErrDuplicateID
	}
	s.games[g.ID] = g
	return nil
}

func (s *MemStore) GetGame(ctx context.Context, id string) (model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.games[id]
	if !ok {
		return model.Game{}, ErrNotFound
	}
	return g, nil
}

func (s *MemStore) UpsertPlayerSeasonStats(ctx context.Context, st model.PlayerSeasonStats) error {
	defer observe("upsert_stats", time.Now())

	s.mu.Lock()
	defer s.mu.Unlock()

	s.stats[statsKey{playerID: st.PlayerID, season: st.Season}] = st
	return nil
}

func (s *MemStore) GetPlayerSeasonStats(ctx context.Context, playerID, season string) (model.PlayerSeasonStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.stats[statsKey{playerID: playerID, season: season}]
	if !ok {
		return model.PlayerSeasonStats{}, ErrNotFound
	}
	return st, nil
}

// EventCount returns the number of stored play events.
func (s *MemStore) EventCount(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}

// OpenDisputeCount returns the number of events awaiting a ruling.
func (s *MemStore) OpenDisputeCount(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, ev := range s.events {
		if ev.IsDisputed {
			n++
		}
	}
	return n
}

// observe records store operation latency.
func observe(op string, start time.Time) {
	metrics.RecordStoreLatency(op, float64(time.Since(start).Milliseconds()))
}
