package reconcile_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/diamondos/dugout/internal/adapters/repository"
	"github.com/diamondos/dugout/internal/domain/model"
	"github.com/diamondos/dugout/internal/domain/outcome"
	"github.com/diamondos/dugout/internal/domain/reconcile"
	. "github.com/smartystreets/goconvey/convey"
)

func newTestEngine() (*reconcile.Engine, *repository.MemStore) {
	store := repository.NewMemStore()
	now := time.Date(2026, 6, 14, 18, 30, 0, 0, time.UTC)
	engine := reconcile.New(store,
		reconcile.WithClock(func() time.Time { return now }),
	)
	return engine, store
}

func homeSubmission(code string) reconcile.Submission {
	return reconcile.Submission{
		GameID:      "game-1",
		Inning:      3,
		IsTopInning: true,
		Slot:        model.ManagerSlotHome,
		PlayerID:    "player-7",
		Code:        code,
		RunsScored:  1,
		RBICount:    2,
	}
}

func awaySubmission(code string) reconcile.Submission {
	sub := homeSubmission(code)
	sub.Slot = model.ManagerSlotAway
	return sub
}

func TestSubmitPlay(t *testing.T) {
	Convey("Given a reconciliation engine", t, func() {
		ctx := context.Background()
		engine, _ := newTestEngine()

		Convey("When the first manager submits", func() {
			ev, err := engine.SubmitPlay(ctx, homeSubmission("HR"))

			Convey("Then the slot awaits the second input", func() {
				So(err, ShouldBeNil)
				So(ev.ID, ShouldNotBeEmpty)
				So(ev.Manager1Input, ShouldEqual, "HR")
				So(ev.Manager2Input, ShouldBeEmpty)
				So(ev.Resolved(), ShouldBeFalse)
				So(ev.IsDisputed, ShouldBeFalse)
				So(ev.Result, ShouldBeEmpty)
			})
		})

		Convey("When both managers agree", func() {
			_, err := engine.SubmitPlay(ctx, homeSubmission("HR"))
			So(err, ShouldBeNil)
			ev, err := engine.SubmitPlay(ctx, awaySubmission("HR"))

			Convey("Then the slot resolves with the agreed result", func() {
				So(err, ShouldBeNil)
				So(ev.Resolved(), ShouldBeTrue)
				So(ev.IsDisputed, ShouldBeFalse)
				So(ev.Result, ShouldEqual, "HR")
				So(ev.ResolvedAt, ShouldNotBeNil)
				So(ev.RunsScored, ShouldEqual, 1)
				So(ev.RBICount, ShouldEqual, 2)
			})
		})

		Convey("When agreement differs only in case and padding", func() {
			_, err := engine.SubmitPlay(ctx, homeSubmission("hr"))
			So(err, ShouldBeNil)
			ev, err := engine.SubmitPlay(ctx, awaySubmission("  HR "))

			Convey("Then the canonical forms match and the slot resolves", func() {
				So(err, ShouldBeNil)
				So(ev.Resolved(), ShouldBeTrue)
				So(ev.Result, ShouldEqual, "HR")
			})
		})

		Convey("When the managers disagree", func() {
			_, err := engine.SubmitPlay(ctx, homeSubmission("1B"))
			So(err, ShouldBeNil)
			ev, err := engine.SubmitPlay(ctx, awaySubmission("E5"))

			Convey("Then the slot is disputed with no result", func() {
				So(err, ShouldBeNil)
				So(ev.IsDisputed, ShouldBeTrue)
				So(ev.Resolved(), ShouldBeFalse)
				So(ev.Result, ShouldBeEmpty)
				So(ev.Manager1Input, ShouldEqual, "1B")
				So(ev.Manager2Input, ShouldEqual, "E5")
			})
		})

		Convey("When a manager resubmits into a resolved slot", func() {
			_, err := engine.SubmitPlay(ctx, homeSubmission("HR"))
			So(err, ShouldBeNil)
			_, err = engine.SubmitPlay(ctx, awaySubmission("HR"))
			So(err, ShouldBeNil)

			_, err = engine.SubmitPlay(ctx, homeSubmission("K"))

			Convey("Then the submission is rejected", func() {
				So(errors.Is(err, reconcile.ErrSlotResolved), ShouldBeTrue)
			})
		})

		Convey("When a manager resubmits into a disputed slot", func() {
			_, err := engine.SubmitPlay(ctx, homeSubmission("1B"))
			So(err, ShouldBeNil)
			_, err = engine.SubmitPlay(ctx, awaySubmission("E5"))
			So(err, ShouldBeNil)

			_, err = engine.SubmitPlay(ctx, awaySubmission("1B"))

			Convey("Then only a commissioner ruling can clear the slot", func() {
				So(errors.Is(err, reconcile.ErrSlotDisputed), ShouldBeTrue)
			})
		})

		Convey("When a manager corrects their own input before the other submits", func() {
			_, err := engine.SubmitPlay(ctx, homeSubmission("1B"))
			So(err, ShouldBeNil)
			ev, err := engine.SubmitPlay(ctx, homeSubmission("2B"))

			Convey("Then the input is replaced and the slot still awaits", func() {
				So(err, ShouldBeNil)
				So(ev.Manager1Input, ShouldEqual, "2B")
				So(ev.Resolved(), ShouldBeFalse)
				So(ev.IsDisputed, ShouldBeFalse)
			})

			Convey("And later agreement on the corrected code resolves", func() {
				So(err, ShouldBeNil)
				resolved, rerr := engine.SubmitPlay(ctx, awaySubmission("2B"))
				So(rerr, ShouldBeNil)
				So(resolved.Resolved(), ShouldBeTrue)
				So(resolved.Result, ShouldEqual, "2B")
			})
		})

		Convey("When the outcome code is unrecognized", func() {
			_, err := engine.SubmitPlay(ctx, homeSubmission("XX"))

			Convey("Then submission fails validation", func() {
				So(errors.Is(err, outcome.ErrUnrecognizedCode), ShouldBeTrue)
			})
		})

		Convey("When required fields are missing", func() {
			sub := homeSubmission("1B")
			sub.GameID = ""
			_, err := engine.SubmitPlay(ctx, sub)
			So(errors.Is(err, reconcile.ErrMissingField), ShouldBeTrue)

			sub = homeSubmission("1B")
			sub.Inning = 0
			_, err = engine.SubmitPlay(ctx, sub)
			So(errors.Is(err, reconcile.ErrMissingField), ShouldBeTrue)

			sub = homeSubmission("1B")
			sub.PlayerID = ""
			_, err = engine.SubmitPlay(ctx, sub)
			So(errors.Is(err, reconcile.ErrMissingField), ShouldBeTrue)

			sub = homeSubmission("1B")
			sub.Slot = model.ManagerSlotNone
			_, err = engine.SubmitPlay(ctx, sub)
			So(errors.Is(err, reconcile.ErrMissingField), ShouldBeTrue)
		})

		Convey("When the same play lands in both half-innings", func() {
			top := homeSubmission("1B")
			bottom := homeSubmission("1B")
			bottom.IsTopInning = false

			evTop, err := engine.SubmitPlay(ctx, top)
			So(err, ShouldBeNil)
			evBottom, err := engine.SubmitPlay(ctx, bottom)
			So(err, ShouldBeNil)

			Convey("Then the half-innings occupy distinct slots", func() {
				So(evTop.ID, ShouldNotEqual, evBottom.ID)
			})
		})
	})
}

func TestResolveDispute(t *testing.T) {
	Convey("Given a disputed slot", t, func() {
		ctx := context.Background()
		engine, _ := newTestEngine()

		_, err := engine.SubmitPlay(ctx, homeSubmission("1B"))
		So(err, ShouldBeNil)
		disputed, err := engine.SubmitPlay(ctx, awaySubmission("E5"))
		So(err, ShouldBeNil)
		So(disputed.IsDisputed, ShouldBeTrue)

		Convey("When the commissioner rules", func() {
			ev, err := engine.ResolveDispute(ctx, reconcile.Ruling{
				EventID:    disputed.ID,
				Code:       "e5",
				RunsScored: 0,
				RBICount:   0,
			})

			Convey("Then the slot resolves with the ruling", func() {
				So(err, ShouldBeNil)
				So(ev.Resolved(), ShouldBeTrue)
				So(ev.IsDisputed, ShouldBeFalse)
				So(ev.Result, ShouldEqual, "E5")
				So(ev.CommissionerRuling, ShouldEqual, "E5")
				So(ev.ResolvedAt, ShouldNotBeNil)
			})

			Convey("And manager submissions remain rejected afterwards", func() {
				So(err, ShouldBeNil)
				_, serr := engine.SubmitPlay(ctx, homeSubmission("1B"))
				So(errors.Is(serr, reconcile.ErrSlotResolved), ShouldBeTrue)
			})
		})

		Convey("When the ruling code is unrecognized", func() {
			_, err := engine.ResolveDispute(ctx, reconcile.Ruling{EventID: disputed.ID, Code: "??"})
			So(errors.Is(err, outcome.ErrUnrecognizedCode), ShouldBeTrue)
		})

		Convey("When ruling an unknown event", func() {
			_, err := engine.ResolveDispute(ctx, reconcile.Ruling{EventID: "nope", Code: "1B"})
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})

		Convey("When ruling an event that is not disputed", func() {
			awaiting, err := engine.SubmitPlay(ctx, reconcile.Submission{
				GameID:      "game-2",
				Inning:      1,
				IsTopInning: true,
				Slot:        model.ManagerSlotHome,
				PlayerID:    "player-1",
				Code:        "K",
			})
			So(err, ShouldBeNil)

			_, err = engine.ResolveDispute(ctx, reconcile.Ruling{EventID: awaiting.ID, Code: "K"})

			Convey("Then the ruling is rejected", func() {
				So(errors.Is(err, reconcile.ErrNotDisputed), ShouldBeTrue)
			})
		})
	})
}
