// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
//
// The service owns role resolution: it maps the calling user to a
// manager slot or commissioner capability before handing work to the
// reconciliation engine, which stays free of identity concerns.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/diamondos/dugout/internal/adapters/repository"
	"github.com/diamondos/dugout/internal/adapters/repository/sqlite"
	"github.com/diamondos/dugout/internal/domain/batting"
	"github.com/diamondos/dugout/internal/domain/model"
	"github.com/diamondos/dugout/internal/domain/reconcile"
	"github.com/diamondos/dugout/pkg/logger"
	"github.com/diamondos/dugout/pkg/metrics"
	"github.com/google/uuid"
)

// Service wires the store, the reconciliation engine, and the stats
// aggregator behind the operations the HTTP layer needs.
type Service struct {
	mu sync.RWMutex

	store      repository.Store
	engine     *reconcile.Engine
	aggregator *batting.Aggregator

	dbPath  string
	started bool
	startAt time.Time

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithStore injects a pre-built store, used by tests.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithDBPath sets the SQLite database path. An empty path selects the
// in-memory store.
func WithDBPath(path string) Option {
	return func(s *Service) {
		s.dbPath = path
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	if s.store == nil {
		if s.dbPath != "" {
			store, err := sqlite.Open(s.dbPath)
			if err != nil {
				return fmt.Errorf("open sqlite store: %w", err)
			}
			s.store = store
			s.logger.Info(ctx, "using sqlite store", logger.String("path", s.dbPath))
		} else {
			s.store = repository.NewMemStore()
			s.logger.Info(ctx, "using in-memory store")
		}
	}

	s.engine = reconcile.New(s.store)
	s.aggregator = batting.New(s.store, s.store)
	s.started = true
	s.startAt = time.Now()

	s.logger.Info(ctx, "scorekeeping service started")
	return nil
}

// Stop releases service resources.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	if closer, ok := s.store.(interface{ Close() error }); ok {
		_ = closer.Close()
	}
	s.started = false
	s.logger.Info(context.Background(), "scorekeeping service stopped")
}

// SubmitPlayInput carries one manager submission from the HTTP layer.
type SubmitPlayInput struct {
	GameID      string
	Inning      int
	IsTopInning bool
	PlayerID    string
	Code        string
	RunsScored  int
	RBICount    int
}

// SubmitPlay resolves the caller to a manager slot for the game and
// forwards the observation to the reconciliation engine. Callers who
// manage neither team are rejected.
func (s *Service) SubmitPlay(ctx context.Context, userID string, in SubmitPlayInput) (model.PlayEvent, error) {
	game, err := s.store.GetGame(ctx, in.GameID)
	if err != nil {
		return model.PlayEvent{}, fmt.Errorf("game %s: %w", in.GameID, err)
	}

	slot, err := s.managerSlot(ctx, game, userID)
	if err != nil {
		return model.PlayEvent{}, err
	}

	ev, err := s.engine.SubmitPlay(ctx, reconcile.Submission{
		GameID:      in.GameID,
		Inning:      in.Inning,
		IsTopInning: in.IsTopInning,
		Slot:        slot,
		PlayerID:    in.PlayerID,
		Code:        in.Code,
		RunsScored:  in.RunsScored,
		RBICount:    in.RBICount,
	})
	if err != nil {
		return model.PlayEvent{}, err
	}

	s.logger.Debug(ctx, "play submitted",
		logger.String("game", in.GameID),
		logger.Int("inning", in.Inning),
		logger.String("code", in.Code),
		logger.Any("disputed", ev.IsDisputed),
		logger.Any("resolved", ev.Resolved()),
	)
	return ev, nil
}

// RulingInput carries a commissioner resolution from the HTTP layer.
type RulingInput struct {
	EventID    string
	Code       string
	RunsScored int
	RBICount   int
}

// ResolveDispute checks the caller holds the commissioner role for the
// event's league, then applies the ruling.
func (s *Service) ResolveDispute(ctx context.Context, userID string, in RulingInput) (model.PlayEvent, error) {
	ev, err := s.store.GetEvent(ctx, in.EventID)
	if err != nil {
		return model.PlayEvent{}, fmt.Errorf("event %s: %w", in.EventID, err)
	}
	game, err := s.store.GetGame(ctx, ev.GameID)
	if err != nil {
		return model.PlayEvent{}, fmt.Errorf("game %s: %w", ev.GameID, err)
	}
	league, err := s.store.GetLeague(ctx, game.LeagueID)
	if err != nil {
		return model.PlayEvent{}, fmt.Errorf("league %s: %w", game.LeagueID, err)
	}
	if league.CommissionerID != userID {
		return model.PlayEvent{}, fmt.Errorf("user is not commissioner of league %s: %w", league.ID, ErrUnauthorized)
	}

	return s.engine.ResolveDispute(ctx, reconcile.Ruling{
		EventID:    in.EventID,
		Code:       in.Code,
		RunsScored: in.RunsScored,
		RBICount:   in.RBICount,
	})
}

// Recalculate rebuilds the season batting line for a player.
func (s *Service) Recalculate(ctx context.Context, playerID, season string) (model.PlayerSeasonStats, error) {
	if _, err := s.store.GetPlayer(ctx, playerID); err != nil {
		return model.PlayerSeasonStats{}, fmt.Errorf("player %s: %w", playerID, err)
	}
	return s.aggregator.Recalculate(ctx, playerID, season)
}

// PlayerStats returns the persisted batting line for a player/season.
func (s *Service) PlayerStats(ctx context.Context, playerID, season string) (model.PlayerSeasonStats, error) {
	return s.store.GetPlayerSeasonStats(ctx, playerID, season)
}

// ListEvents returns every play event recorded for a game.
func (s *Service) ListEvents(ctx context.Context, gameID string) ([]model.PlayEvent, error) {
	if _, err := s.store.GetGame(ctx, gameID); err != nil {
		return nil, fmt.Errorf("game %s: %w", gameID, err)
	}
	return s.store.ListEventsByGame(ctx, gameID)
}

// managerSlot maps userID to the manager slot it occupies for game.
func (s *Service) managerSlot(ctx context.Context, game model.Game, userID string) (model.ManagerSlot, error) {
	home, err := s.store.GetTeam(ctx, game.HomeTeamID)
	if err != nil {
		return model.ManagerSlotNone, fmt.Errorf("team %s: %w", game.HomeTeamID, err)
	}
	away, err := s.store.GetTeam(ctx, game.AwayTeamID)
	if err != nil {
		return model.ManagerSlotNone, fmt.Errorf("team %s: %w", game.AwayTeamID, err)
	}
	switch userID {
	case home.ManagerID:
		return model.ManagerSlotHome, nil
	case away.ManagerID:
		return model.ManagerSlotAway, nil
	}
	return model.ManagerSlotNone, fmt.Errorf("user manages neither team of game %s: %w", game.ID, ErrUnauthorized)
}

// CreateLeague stores a new league record, minting an id when absent.
func (s *Service) CreateLeague(ctx context.Context, l model.League) (model.League, error) {
	if l.Name == "" || l.Season == "" || l.CommissionerID == "" {
		return model.League{}, fmt.Errorf("league needs name, season, and commissioner: %w", ErrMissingField)
	}
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if err := s.store.CreateLeague(ctx, l); err != nil {
		return model.League{}, err
	}
	return l, nil
}

// CreateTeam stores a new team record.
func (s *Service) CreateTeam(ctx context.Context, t model.Team) (model.Team, error) {
	if t.Name == "" || t.LeagueID == "" || t.ManagerID == "" {
		return model.Team{}, fmt.Errorf("team needs name, league, and manager: %w", ErrMissingField)
	}
	if _, err := s.store.GetLeague(ctx, t.LeagueID); err != nil {
		return model.Team{}, fmt.Errorf("league %s: %w", t.LeagueID, err)
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if err := s.store.CreateTeam(ctx, t); err != nil {
		return model.Team{}, err
	}
	return t, nil
}

// CreatePlayer stores a new player record.
func (s *Service) CreatePlayer(ctx context.Context, p model.Player) (model.Player, error) {
	if p.Name == "" {
		return model.Player{}, fmt.Errorf("player needs a name: %w", ErrMissingField)
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if err := s.store.CreatePlayer(ctx, p); err != nil {
		return model.Player{}, err
	}
	return p, nil
}

// CreateGame stores a new game record.
func (s *Service) CreateGame(ctx context.Context, g model.Game) (model.Game, error) {
	if g.LeagueID == "" || g.HomeTeamID == "" || g.AwayTeamID == "" {
		return model.Game{}, fmt.Errorf("game needs league and both teams: %w", ErrMissingField)
	}
	if _, err := s.store.GetLeague(ctx, g.LeagueID); err != nil {
		return model.Game{}, fmt.Errorf("league %s: %w", g.LeagueID, err)
	}
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	if err := s.store.CreateGame(ctx, g); err != nil {
		return model.Game{}, err
	}
	return g, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started": s.started,
	}
	if !s.started {
		return stats
	}
	stats["uptime_seconds"] = int(time.Since(s.startAt).Seconds())

	if reporter, ok := s.store.(repository.StatsReporter); ok {
		ctx := context.Background()
		events := reporter.EventCount(ctx)
		disputes := reporter.OpenDisputeCount(ctx)
		stats["events"] = events
		stats["open_disputes"] = disputes

		metrics.UpdateEventsTracked(events)
		metrics.UpdateDisputesOpen(disputes)
	}
	return stats
}
