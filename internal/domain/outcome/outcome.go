// Package outcome defines the closed taxonomy of at-bat outcome codes
// and the classification rules used by stat aggregation.
//
// Codes are case-insensitive on input and canonicalized to upper case.
// Unrecognized codes are rejected at submission time, never at
// aggregation time.
package outcome

import (
	"fmt"
	"strings"
)

// Canonical code sets. Prefix families (fielded outs, groundouts,
// baserunning) are validated structurally below.
var (
	hitCodes       = map[string]bool{"1B": true, "2B": true, "3B": true, "HR": true, "1B+E": true, "2B+E": true}
	walkCodes      = map[string]bool{"BB": true, "IBB": true, "HBP": true, "CI": true}
	strikeoutCodes = map[string]bool{"K": true, "KC": true, "KPB": true, "KWP": true}
	sacrificeCodes = map[string]bool{"SAC": true, "SF": true, "SF7": true, "SF8": true, "SF9": true}
	batteryCodes   = map[string]bool{"WP": true, "PB": true}
)

// Normalize canonicalizes code and validates it against the taxonomy.
// Returns the upper-cased canonical form, or ErrUnrecognizedCode.
func Normalize(code string) (string, error) {
	c := strings.ToUpper(strings.TrimSpace(code))
	if c == "" || !recognized(c) {
		return "", fmt.Errorf("%q: %w", code, ErrUnrecognizedCode)
	}
	return c, nil
}

func recognized(c string) bool {
	switch {
	case hitCodes[c], walkCodes[c], strikeoutCodes[c], sacrificeCodes[c], batteryCodes[c]:
		return true
	case isFieldedOut(c), isGroundout(c), isFieldingError(c):
		return true
	case isStolenBase(c), isCaughtStealing(c), isPickoff(c):
		return true
	}
	return false
}

// isFieldedOut matches fly and line outs: F or L plus fielder 1-9.
func isFieldedOut(c string) bool {
	if len(c) != 2 || (c[0] != 'F' && c[0] != 'L') {
		return false
	}
	return isFielder(c[1])
}

// isGroundout matches "digit-digit" notations like 6-3 and unassisted
// putouts like 3U.
func isGroundout(c string) bool {
	if len(c) == 3 && c[1] == '-' {
		return isFielder(c[0]) && isFielder(c[2])
	}
	if len(c) == 2 && c[1] == 'U' {
		return isFielder(c[0])
	}
	return false
}

// isFieldingError matches reached-on-error codes E1 through E9.
func isFieldingError(c string) bool {
	return len(c) == 2 && c[0] == 'E' && isFielder(c[1])
}

// isStolenBase matches SB with an optional target base (SB, SB2, SB3, SBH).
func isStolenBase(c string) bool {
	if !strings.HasPrefix(c, "SB") {
		return false
	}
	rest := c[2:]
	return rest == "" || rest == "2" || rest == "3" || rest == "H"
}

// isCaughtStealing matches CS with an optional target base.
func isCaughtStealing(c string) bool {
	if !strings.HasPrefix(c, "CS") {
		return false
	}
	rest := c[2:]
	return rest == "" || rest == "2" || rest == "3" || rest == "H"
}

// isPickoff matches PO with an optional base (PO, PO1, PO2, PO3).
func isPickoff(c string) bool {
	if !strings.HasPrefix(c, "PO") {
		return false
	}
	rest := c[2:]
	return rest == "" || rest == "1" || rest == "2" || rest == "3"
}

func isFielder(b byte) bool {
	return b >= '1' && b <= '9'
}

// IsHit reports whether c is a base hit, including hit-with-error variants.
func IsHit(c string) bool {
	return hitCodes[c]
}

// IsDouble covers 2B and 2B+E.
func IsDouble(c string) bool {
	return c == "2B" || c == "2B+E"
}

// IsTriple covers 3B.
func IsTriple(c string) bool {
	return c == "3B"
}

// IsHomeRun covers HR.
func IsHomeRun(c string) bool {
	return c == "HR"
}

// IsWalk covers the walk/HBP family: BB, IBB, HBP, CI.
func IsWalk(c string) bool {
	return walkCodes[c]
}

// IsStrikeout covers K, KC, KPB, KWP.
func IsStrikeout(c string) bool {
	return strikeoutCodes[c]
}

// IsSacrifice covers SAC, SF and positioned sacrifice flies.
func IsSacrifice(c string) bool {
	return sacrificeCodes[c]
}

// IsStolenBase reports a stolen-base code.
func IsStolenBase(c string) bool {
	return isStolenBase(c)
}

// IsCaughtStealing reports a caught-stealing code.
func IsCaughtStealing(c string) bool {
	return isCaughtStealing(c)
}

// CountsAsAtBat reports whether c charges the batter with an official
// at-bat. Walks, sacrifices, baserunning-only codes and the battery
// codes WP/PB do not.
func CountsAsAtBat(c string) bool {
	if walkCodes[c] || sacrificeCodes[c] || batteryCodes[c] {
		return false
	}
	if isStolenBase(c) || isCaughtStealing(c) || isPickoff(c) {
		return false
	}
	return true
}
