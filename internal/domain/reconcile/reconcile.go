// Package reconcile implements the dual-manager play resolution state
// machine. Each slot (game, inning, half-inning) moves through
// Empty -> AwaitingSecondInput -> Resolved | Disputed, with Disputed
// clearable only by a commissioner ruling.
//
// The engine carries no identity or storage concerns: callers resolve
// the submitting user to a manager slot (or commissioner capability)
// before invoking it.
package reconcile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/diamondos/dugout/internal/adapters/repository"
	"github.com/diamondos/dugout/internal/domain/model"
	"github.com/diamondos/dugout/internal/domain/outcome"
	"github.com/diamondos/dugout/pkg/metrics"
	"github.com/google/uuid"
)

// eventTypeAtBat is the only event type this engine records.
const eventTypeAtBat = "at_bat"

// Store is the slice of the event store the engine needs. Updates are
// compare-and-swap on the event's version token so two racing
// submissions cannot both resolve the same slot.
type Store interface {
	GetEvent(ctx context.Context, id string) (model.PlayEvent, error)
	GetSlotEvent(ctx context.Context, gameID string, inning int, isTop bool) (model.PlayEvent, error)
	CreateEvent(ctx context.Context, ev model.PlayEvent) error
	UpdateEvent(ctx context.Context, ev model.PlayEvent) (model.PlayEvent, error)
}

// Submission is one manager's observation of an at-bat.
type Submission struct {
	GameID      string
	Inning      int
	IsTopInning bool
	Slot        model.ManagerSlot
	PlayerID    string
	Code        string
	RunsScored  int
	RBICount    int
}

// Ruling is a commissioner's resolution of a disputed event.
type Ruling struct {
	EventID    string
	Code       string
	RunsScored int
	RBICount   int
}

// Engine reconciles manager submissions into canonical play events.
type Engine struct {
	store Store
	now   func() time.Time
	newID func() string
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithClock sets the time source, used by tests for deterministic
// resolved_at stamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithIDGenerator sets the event id source.
func WithIDGenerator(newID func() string) Option {
	return func(e *Engine) {
		if newID != nil {
			e.newID = newID
		}
	}
}

// New constructs an Engine backed by store.
func New(store Store, opts ...Option) *Engine {
	e := &Engine{
		store: store,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SubmitPlay records one manager's observation for a slot.
//
// The first submission creates the slot's event. The second submission
// either resolves the slot (inputs agree) or marks it disputed. A
// submission against an already resolved slot fails with
// ErrSlotResolved; a manager may correct their own input only while the
// other manager has not yet submitted. The slot transition is a CAS
// retried once on conflict.
func (e *Engine) SubmitPlay(ctx context.Context, sub Submission) (model.PlayEvent, error) {
	const op = "reconcile.submit_play"

	code, err := outcome.Normalize(sub.Code)
	if err != nil {
		return model.PlayEvent{}, fmt.Errorf("%s: %w", op, err)
	}
	if err := sub.validate(); err != nil {
		return model.PlayEvent{}, fmt.Errorf("%s: %w", op, err)
	}

	ev, err := e.store.GetSlotEvent(ctx, sub.GameID, sub.Inning, sub.IsTopInning)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		created, cerr := e.createFirstInput(ctx, sub, code)
		if cerr == nil {
			metrics.RecordPlaySubmitted()
			return created, nil
		}
		// Lost the create race: the other manager's submission landed
		// first, so apply ours to the existing event instead.
		if !errors.Is(cerr, repository.ErrSlotTaken) {
			return model.PlayEvent{}, fmt.Errorf("%s: %w", op, cerr)
		}
		ev, err = e.store.GetSlotEvent(ctx, sub.GameID, sub.Inning, sub.IsTopInning)
		if err != nil {
			return model.PlayEvent{}, fmt.Errorf("%s: %w", op, err)
		}
	case err != nil:
		return model.PlayEvent{}, fmt.Errorf("%s: %w", op, err)
	}

	updated, err := e.applySecondInput(ctx, ev, sub, code)
	if errors.Is(err, repository.ErrVersionConflict) {
		// One retry against the fresh row; a second conflict surfaces.
		ev, rerr := e.store.GetSlotEvent(ctx, sub.GameID, sub.Inning, sub.IsTopInning)
		if rerr != nil {
			return model.PlayEvent{}, fmt.Errorf("%s: %w", op, rerr)
		}
		updated, err = e.applySecondInput(ctx, ev, sub, code)
	}
	if err != nil {
		return model.PlayEvent{}, fmt.Errorf("%s: %w", op, err)
	}

	metrics.RecordPlaySubmitted()
	if updated.Resolved() {
		metrics.RecordPlayResolved()
	} else if updated.IsDisputed {
		metrics.RecordPlayDisputed()
	}
	return updated, nil
}

func (e *Engine) createFirstInput(ctx context.Context, sub Submission, code string) (model.PlayEvent, error) {
	ev := model.PlayEvent{
		ID:          e.newID(),
		GameID:      sub.GameID,
		Inning:      sub.Inning,
		IsTopInning: sub.IsTopInning,
		PlayerID:    sub.PlayerID,
		EventType:   eventTypeAtBat,
		RunsScored:  sub.RunsScored,
		RBICount:    sub.RBICount,
		CreatedAt:   e.now(),
		Version:     1,
	}
	ev.SetManagerInput(sub.Slot, code)
	if err := e.store.CreateEvent(ctx, ev); err != nil {
		return model.PlayEvent{}, err
	}
	return ev, nil
}

func (e *Engine) applySecondInput(ctx context.Context, ev model.PlayEvent, sub Submission, code string) (model.PlayEvent, error) {
	if ev.Resolved() {
		return model.PlayEvent{}, ErrSlotResolved
	}
	if ev.IsDisputed {
		return model.PlayEvent{}, ErrSlotDisputed
	}

	ev.SetManagerInput(sub.Slot, code)

	other := ev.Manager1Input
	if sub.Slot == model.ManagerSlotHome {
		other = ev.Manager2Input
	}
	if other != "" {
		if other == code {
			now := e.now()
			ev.Result = code
			ev.RunsScored = sub.RunsScored
			ev.RBICount = sub.RBICount
			ev.IsDisputed = false
			ev.ResolvedAt = &now
		} else {
			ev.IsDisputed = true
		}
	}

	return e.store.UpdateEvent(ctx, ev)
}

// ResolveDispute applies a commissioner ruling to a disputed event and
// resolves it. Ruling an event that was never disputed fails with
// ErrNotDisputed so an agreed result cannot be silently overwritten.
func (e *Engine) ResolveDispute(ctx context.Context, r Ruling) (model.PlayEvent, error) {
	const op = "reconcile.resolve_dispute"

	code, err := outcome.Normalize(r.Code)
	if err != nil {
		return model.PlayEvent{}, fmt.Errorf("%s: %w", op, err)
	}

	ev, err := e.store.GetEvent(ctx, r.EventID)
	if err != nil {
		return model.PlayEvent{}, fmt.Errorf("%s: %w", op, err)
	}
	if !ev.IsDisputed {
		return model.PlayEvent{}, fmt.Errorf("%s: %w", op, ErrNotDisputed)
	}

	now := e.now()
	ev.Result = code
	ev.CommissionerRuling = code
	ev.RunsScored = r.RunsScored
	ev.RBICount = r.RBICount
	ev.IsDisputed = false
	ev.ResolvedAt = &now

	updated, err := e.store.UpdateEvent(ctx, ev)
	if err != nil {
		return model.PlayEvent{}, fmt.Errorf("%s: %w", op, err)
	}

	metrics.RecordDisputeRuling()
	return updated, nil
}

func (s Submission) validate() error {
	switch {
	case s.GameID == "":
		return fmt.Errorf("missing game id: %w", ErrMissingField)
	case s.Inning < 1:
		return fmt.Errorf("inning must be positive: %w", ErrMissingField)
	case s.Slot != model.ManagerSlotHome && s.Slot != model.ManagerSlotAway:
		return fmt.Errorf("invalid manager slot: %w", ErrMissingField)
	case s.PlayerID == "":
		return fmt.Errorf("missing player id: %w", ErrMissingField)
	}
	return nil
}
