package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/diamondos/dugout/internal/adapters/repository"
	"github.com/diamondos/dugout/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func newEvent(id, gameID string, inning int, isTop bool) model.PlayEvent {
	return model.PlayEvent{
		ID:          id,
		GameID:      gameID,
		Inning:      inning,
		IsTopInning: isTop,
		PlayerID:    "p1",
		EventType:   "at_bat",
		CreatedAt:   time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC),
		Version:     1,
	}
}

func TestMemStoreEvents(t *testing.T) {
	Convey("Given an in-memory store", t, func() {
		ctx := context.Background()
		store := repository.NewMemStore()

		Convey("When creating and fetching an event", func() {
			ev := newEvent("e1", "g1", 1, true)
			So(store.CreateEvent(ctx, ev), ShouldBeNil)

			got, err := store.GetEvent(ctx, "e1")
			So(err, ShouldBeNil)
			So(got, ShouldResemble, ev)

			bySlot, err := store.GetSlotEvent(ctx, "g1", 1, true)
			So(err, ShouldBeNil)
			So(bySlot.ID, ShouldEqual, "e1")
		})

		Convey("When fetching an unknown event", func() {
			_, err := store.GetEvent(ctx, "missing")
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)

			_, err = store.GetSlotEvent(ctx, "g1", 1, true)
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})

		Convey("When a second event targets an occupied slot", func() {
			So(store.CreateEvent(ctx, newEvent("e1", "g1", 1, true)), ShouldBeNil)
			err := store.CreateEvent(ctx, newEvent("e2", "g1", 1, true))
			So(errors.Is(err, repository.ErrSlotTaken), ShouldBeTrue)
		})

		Convey("When an event reuses an existing id", func() {
			So(store.CreateEvent(ctx, newEvent("e1", "g1", 1, true)), ShouldBeNil)
			err := store.CreateEvent(ctx, newEvent("e1", "g1", 2, true))
			So(errors.Is(err, repository.ErrDuplicateID), ShouldBeTrue)
		})

		Convey("When updating with the current version", func() {
			ev := newEvent("e1", "g1", 1, true)
			So(store.CreateEvent(ctx, ev), ShouldBeNil)

			ev.Manager2Input = "HR"
			updated, err := store.UpdateEvent(ctx, ev)

			Convey("Then the version advances", func() {
				So(err, ShouldBeNil)
				So(updated.Version, ShouldEqual, 2)
				So(updated.Manager2Input, ShouldEqual, "HR")
			})
		})

		Convey("When updating with a stale version", func() {
			ev := newEvent("e1", "g1", 1, true)
			So(store.CreateEvent(ctx, ev), ShouldBeNil)

			_, err := store.UpdateEvent(ctx, ev)
			So(err, ShouldBeNil)

			// The caller still holds version 1.
			_, err = store.UpdateEvent(ctx, ev)
			So(errors.Is(err, repository.ErrVersionConflict), ShouldBeTrue)
		})

		Convey("When listing events by game", func() {
			So(store.CreateEvent(ctx, newEvent("e1", "g1", 1, true)), ShouldBeNil)
			So(store.CreateEvent(ctx, newEvent("e2", "g1", 1, false)), ShouldBeNil)
			So(store.CreateEvent(ctx, newEvent("e3", "g2", 1, true)), ShouldBeNil)

			events, err := store.ListEventsByGame(ctx, "g1")
			So(err, ShouldBeNil)
			So(len(events), ShouldEqual, 2)
		})
	})
}

func TestMemStoreListResolvedEvents(t *testing.T) {
	Convey("Given events across seasons and dispute states", t, func() {
		ctx := context.Background()
		store := repository.NewMemStore()

		So(store.CreateLeague(ctx, model.League{ID: "l-2026", Season: "2026"}), ShouldBeNil)
		So(store.CreateLeague(ctx, model.League{ID: "l-2025", Season: "2025"}), ShouldBeNil)
		So(store.CreateGame(ctx, model.Game{ID: "g1", LeagueID: "l-2026"}), ShouldBeNil)
		So(store.CreateGame(ctx, model.Game{ID: "g2", LeagueID: "l-2025"}), ShouldBeNil)

		at := time.Date(2026, 6, 1, 19, 0, 0, 0, time.UTC)

		resolved := newEvent("e1", "g1", 1, true)
		resolved.Result = "1B"
		resolved.ResolvedAt = &at
		So(store.CreateEvent(ctx, resolved), ShouldBeNil)

		disputed := newEvent("e2", "g1", 2, true)
		disputed.IsDisputed = true
		So(store.CreateEvent(ctx, disputed), ShouldBeNil)

		awaiting := newEvent("e3", "g1", 3, true)
		So(store.CreateEvent(ctx, awaiting), ShouldBeNil)

		lastSeason := newEvent("e4", "g2", 1, true)
		lastSeason.Result = "HR"
		lastSeason.ResolvedAt = &at
		So(store.CreateEvent(ctx, lastSeason), ShouldBeNil)

		Convey("When listing resolved events for the current season", func() {
			events, err := store.ListResolvedEvents(ctx, "p1", "2026")

			Convey("Then only resolved, undisputed, in-season events return", func() {
				So(err, ShouldBeNil)
				So(len(events), ShouldEqual, 1)
				So(events[0].ID, ShouldEqual, "e1")
			})
		})

		Convey("When listing for another player", func() {
			events, err := store.ListResolvedEvents(ctx, "p2", "2026")
			So(err, ShouldBeNil)
			So(events, ShouldBeEmpty)
		})

		Convey("When counting open disputes", func() {
			So(store.OpenDisputeCount(ctx), ShouldEqual, 1)
			So(store.EventCount(ctx), ShouldEqual, 4)
		})
	})
}

func TestMemStoreLeagueEntities(t *testing.T) {
	Convey("Given an in-memory store", t, func() {
		ctx := context.Background()
		store := repository.NewMemStore()

		Convey("When round-tripping league entities", func() {
			league := model.League{ID: "l1", Name: "Dusty Creek", Season: "2026", CommissionerID: "u-comm"}
			So(store.CreateLeague(ctx, league), ShouldBeNil)
			got, err := store.GetLeague(ctx, "l1")
			So(err, ShouldBeNil)
			So(got, ShouldResemble, league)

			team := model.Team{ID: "t1", LeagueID: "l1", Name: "Badgers", ManagerID: "u-home"}
			So(store.CreateTeam(ctx, team), ShouldBeNil)
			gotTeam, err := store.GetTeam(ctx, "t1")
			So(err, ShouldBeNil)
			So(gotTeam, ShouldResemble, team)

			player := model.Player{ID: "p1", TeamID: "t1", Name: "Sam Mercer"}
			So(store.CreatePlayer(ctx, player), ShouldBeNil)
			gotPlayer, err := store.GetPlayer(ctx, "p1")
			So(err, ShouldBeNil)
			So(gotPlayer, ShouldResemble, player)

			game := model.Game{ID: "g1", LeagueID: "l1", HomeTeamID: "t1", AwayTeamID: "t2"}
			So(store.CreateGame(ctx, game), ShouldBeNil)
			gotGame, err := store.GetGame(ctx, "g1")
			So(err, ShouldBeNil)
			So(gotGame, ShouldResemble, game)
		})

		Convey("When creating a duplicate league id", func() {
			So(store.CreateLeague(ctx, model.League{ID: "l1"}), ShouldBeNil)
			err := store.CreateLeague(ctx, model.League{ID: "l1"})
			So(errors.Is(err, repository.ErrDuplicateID), ShouldBeTrue)
		})

		Convey("When fetching entities that do not exist", func() {
			_, err := store.GetLeague(ctx, "nope")
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			_, err = store.GetTeam(ctx, "nope")
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			_, err = store.GetPlayer(ctx, "nope")
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			_, err = store.GetGame(ctx, "nope")
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})
	})
}

func TestMemStoreStats(t *testing.T) {
	Convey("Given an in-memory store", t, func() {
		ctx := context.Background()
		store := repository.NewMemStore()

		Convey("When upserting a stats row twice", func() {
			first := model.PlayerSeasonStats{PlayerID: "p1", Season: "2026", AtBats: 3, Hits: 1}
			So(store.UpsertPlayerSeasonStats(ctx, first), ShouldBeNil)

			second := first
			second.AtBats = 4
			second.Hits = 2
			So(store.UpsertPlayerSeasonStats(ctx, second), ShouldBeNil)

			Convey("Then the row is replaced wholesale", func() {
				got, err := store.GetPlayerSeasonStats(ctx, "p1", "2026")
				So(err, ShouldBeNil)
				So(got, ShouldResemble, second)
			})
		})

		Convey("When fetching stats that were never computed", func() {
			_, err := store.GetPlayerSeasonStats(ctx, "p1", "2026")
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})
	})
}
