package outcome_test

import (
	"errors"
	"testing"

	outcome "github.com/diamondos/dugout/internal/domain/outcome"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNormalize(t *testing.T) {
	Convey("Given the outcome code taxonomy", t, func() {
		Convey("When normalizing recognized codes", func() {
			recognized := []string{
				"1B", "2B", "3B", "HR", "1B+E", "2B+E",
				"BB", "IBB", "HBP", "CI",
				"K", "KC", "KPB", "KWP",
				"F8", "F1", "L6", "F9",
				"4-3", "6-3", "1-3", "5-3", "3U",
				"E1", "E5", "E9",
				"SAC", "SF", "SF7", "SF8", "SF9",
				"WP", "PB",
				"SB", "SB2", "SB3", "SBH", "CS", "CS2", "PO", "PO1", "PO3",
			}
			for _, code := range recognized {
				normalized, err := outcome.Normalize(code)
				So(err, ShouldBeNil)
				So(normalized, ShouldEqual, code)
			}
		})

		Convey("When normalizing lowercase input", func() {
			normalized, err := outcome.Normalize("hr")

			Convey("Then it should uppercase the code", func() {
				So(err, ShouldBeNil)
				So(normalized, ShouldEqual, "HR")
			})
		})

		Convey("When normalizing padded input", func() {
			normalized, err := outcome.Normalize("  1b ")

			Convey("Then it should trim and uppercase", func() {
				So(err, ShouldBeNil)
				So(normalized, ShouldEqual, "1B")
			})
		})

		Convey("When normalizing unrecognized codes", func() {
			for _, code := range []string{"", "XX", "5B", "F0", "E10", "10-3", "K9", "SB4", "PO4"} {
				_, err := outcome.Normalize(code)
				So(errors.Is(err, outcome.ErrUnrecognizedCode), ShouldBeTrue)
			}
		})
	})
}

func TestClassification(t *testing.T) {
	Convey("Given outcome classification predicates", t, func() {
		Convey("When checking hits", func() {
			So(outcome.IsHit("1B"), ShouldBeTrue)
			So(outcome.IsHit("2B"), ShouldBeTrue)
			So(outcome.IsHit("3B"), ShouldBeTrue)
			So(outcome.IsHit("HR"), ShouldBeTrue)
			So(outcome.IsHit("1B+E"), ShouldBeTrue)
			So(outcome.IsHit("2B+E"), ShouldBeTrue)
			So(outcome.IsHit("BB"), ShouldBeFalse)
			So(outcome.IsHit("E5"), ShouldBeFalse)
			So(outcome.IsHit("K"), ShouldBeFalse)
		})

		Convey("When checking extra-base hit kinds", func() {
			So(outcome.IsDouble("2B"), ShouldBeTrue)
			So(outcome.IsDouble("2B+E"), ShouldBeTrue)
			So(outcome.IsDouble("1B"), ShouldBeFalse)
			// Exact match only; no credit for strings that merely
			// contain the code.
			So(outcome.IsDouble("X2B"), ShouldBeFalse)
			So(outcome.IsTriple("3B"), ShouldBeTrue)
			So(outcome.IsHomeRun("HR"), ShouldBeTrue)
			So(outcome.IsHomeRun("3B"), ShouldBeFalse)
		})

		Convey("When checking walks", func() {
			So(outcome.IsWalk("BB"), ShouldBeTrue)
			So(outcome.IsWalk("IBB"), ShouldBeTrue)
			So(outcome.IsWalk("HBP"), ShouldBeTrue)
			So(outcome.IsWalk("CI"), ShouldBeTrue)
			So(outcome.IsWalk("1B"), ShouldBeFalse)
		})

		Convey("When checking strikeouts", func() {
			So(outcome.IsStrikeout("K"), ShouldBeTrue)
			So(outcome.IsStrikeout("KC"), ShouldBeTrue)
			So(outcome.IsStrikeout("KPB"), ShouldBeTrue)
			So(outcome.IsStrikeout("KWP"), ShouldBeTrue)
			So(outcome.IsStrikeout("F8"), ShouldBeFalse)
		})

		Convey("When checking sacrifices", func() {
			So(outcome.IsSacrifice("SAC"), ShouldBeTrue)
			So(outcome.IsSacrifice("SF"), ShouldBeTrue)
			So(outcome.IsSacrifice("SF8"), ShouldBeTrue)
			So(outcome.IsSacrifice("4-3"), ShouldBeFalse)
		})

		Convey("When checking baserunning codes", func() {
			So(outcome.IsStolenBase("SB"), ShouldBeTrue)
			So(outcome.IsStolenBase("SB2"), ShouldBeTrue)
			So(outcome.IsStolenBase("SBH"), ShouldBeTrue)
			So(outcome.IsCaughtStealing("CS"), ShouldBeTrue)
			So(outcome.IsCaughtStealing("CS3"), ShouldBeTrue)
			So(outcome.IsStolenBase("CS"), ShouldBeFalse)
		})
	})
}

func TestCountsAsAtBat(t *testing.T) {
	Convey("Given the at-bat rule", t, func() {
		Convey("Then hits, outs, errors, and strikeouts count", func() {
			for _, code := range []string{"1B", "2B", "HR", "K", "KC", "F8", "4-3", "3U", "E5", "L6"} {
				So(outcome.CountsAsAtBat(code), ShouldBeTrue)
			}
		})

		Convey("And walks, sacrifices, battery, and baserunning codes do not", func() {
			for _, code := range []string{"BB", "IBB", "HBP", "CI", "SAC", "SF", "SF9", "WP", "PB", "SB", "SB2", "CS", "PO"} {
				So(outcome.CountsAsAtBat(code), ShouldBeFalse)
			}
		})
	})
}
