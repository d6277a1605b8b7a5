package domain

import (
	"strconv"
	"strings"
)

// Sentinel position strings for entrants and teams no longer ranked.
// Positions are persisted as text for historical and display reasons; the
// structured Position type below is the in-memory form.
const (
	PositionCut       = "CUT"
	PositionWithdrawn = "WD"
	PositionDQ        = "DQ"
)

// Position is a resolved leaderboard standing. Tied positions share the
// lowest rank of the tie and render with a "T" prefix.
type Position struct {
	Rank int
	Tied bool
}

// String encodes the position in its stored form ("3" or "T3").
func (p Position) String() string {
	if p.Tied {
		return "T" + strconv.Itoa(p.Rank)
	}
	return strconv.Itoa(p.Rank)
}

// ParsePosition decodes a stored position string. The parse is deliberately
// forgiving: any non-digit prefix is stripped, so "T3", " 3" and "t3" all
// yield rank 3. Sentinels and empty strings report ok=false.
func ParsePosition(s string) (Position, bool) {
	s = strings.TrimSpace(s)
	if s == "" || IsTerminalPosition(s) {
		return Position{}, false
	}
	tied := s[0] == 'T' || s[0] == 't'
	i := 0
	for i < len(s) && (s[i] < '0' || s[i] > '9') {
		i++
	}
	rank, err := strconv.Atoi(s[i:])
	if err != nil || rank <= 0 {
		return Position{}, false
	}
	return Position{Rank: rank, Tied: tied}, true
}

// IsTerminalPosition reports whether s is one of the sentinel states that end
// participation in a tournament.
func IsTerminalPosition(s string) bool {
	switch s {
	case PositionCut, PositionWithdrawn, PositionDQ:
		return true
	}
	return false
}
