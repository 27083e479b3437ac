package models

import (
	"strings"

	"github.com/google/uuid"
)

// Position identifies where a player lines up.
type Position string

const (
	PositionQB  Position = "QB"
	PositionRB  Position = "RB"
	PositionWR  Position = "WR"
	PositionTE  Position = "TE"
	PositionK   Position = "K"
	PositionDST Position = "DST"
	PositionDL  Position = "DL"
	PositionLB  Position = "LB"
	PositionDB  Position = "DB"

	// Roster slot categories. Never a player's own position.
	SlotFlex  Position = "FLEX"
	SlotBench Position = "BENCH"
)

// PositionFamily selects which stat bag a player carries.
type PositionFamily string

const (
	FamilyOffense PositionFamily = "OFFENSE"
	FamilyKicker  PositionFamily = "KICKER"
	FamilyDefense PositionFamily = "DEFENSE"
	FamilyIDP     PositionFamily = "IDP"
)

// ParsePosition resolves a raw position string to a Position, reporting
// whether it resolved.
func ParsePosition(s string) (Position, bool) {
	switch Position(strings.ToUpper(strings.TrimSpace(s))) {
	case PositionQB:
		return PositionQB, true
	case PositionRB:
		return PositionRB, true
	case PositionWR:
		return PositionWR, true
	case PositionTE:
		return PositionTE, true
	case PositionK:
		return PositionK, true
	case PositionDST, "DEF", "D/ST":
		return PositionDST, true
	case PositionDL:
		return PositionDL, true
	case PositionLB:
		return PositionLB, true
	case PositionDB:
		return PositionDB, true
	}
	return "", false
}

// Family returns the stat-bag family for a position.
func (p Position) Family() PositionFamily {
	switch p {
	case PositionQB, PositionRB, PositionWR, PositionTE:
		return FamilyOffense
	case PositionK:
		return FamilyKicker
	case PositionDST:
		return FamilyDefense
	default:
		return FamilyIDP
	}
}

// FlexEligible reports whether a position can fill a FLEX roster slot.
func (p Position) FlexEligible() bool {
	return p == PositionRB || p == PositionWR || p == PositionTE
}

// playerNamespace seeds deterministic player IDs so the same
// name/team/position always maps to the same UUID across merges.
var playerNamespace = uuid.MustParse("9f2c1ad4-3e7b-4a60-9c15-2d8f04b7e1aa")

// PlayerID derives the stable identity UUID for a player.
func PlayerID(name, team string, pos Position) uuid.UUID {
	key := strings.ToLower(strings.TrimSpace(name)) + "|" + strings.ToUpper(strings.TrimSpace(team)) + "|" + string(pos)
	return uuid.NewSHA1(playerNamespace, []byte(key))
}

// OffenseStats holds season projections for QB/RB/WR/TE players.
type OffenseStats struct {
	PassingYards   float64 `json:"passing_yards,omitempty"`
	PassingTDs     float64 `json:"passing_tds,omitempty"`
	Interceptions  float64 `json:"interceptions,omitempty"`
	RushingYards   float64 `json:"rushing_yards,omitempty"`
	RushingTDs     float64 `json:"rushing_tds,omitempty"`
	Receptions     float64 `json:"receptions,omitempty"`
	ReceivingYards float64 `json:"receiving_yards,omitempty"`
	ReceivingTDs   float64 `json:"receiving_tds,omitempty"`
	VORP           float64 `json:"vorp,omitempty"`
	WeeklyPoints   float64 `json:"weekly_points,omitempty"`
}

// KickerStats holds season projections for kickers.
type KickerStats struct {
	FieldGoals   float64 `json:"field_goals,omitempty"`
	FieldGoalAtt float64 `json:"field_goal_att,omitempty"`
	ExtraPoints  float64 `json:"extra_points,omitempty"`
	WeeklyPoints float64 `json:"weekly_points,omitempty"`
}

// DefenseStats holds season projections for team defenses.
type DefenseStats struct {
	Sacks            float64 `json:"sacks,omitempty"`
	Interceptions    float64 `json:"interceptions,omitempty"`
	FumbleRecoveries float64 `json:"fumble_recoveries,omitempty"`
	Touchdowns       float64 `json:"touchdowns,omitempty"`
	PointsAllowedPG  float64 `json:"points_allowed_pg,omitempty"`
	WeeklyPoints     float64 `json:"weekly_points,omitempty"`
}

// IDPStats holds season projections for individual defensive players.
type IDPStats struct {
	Tackles       float64 `json:"tackles,omitempty"`
	Sacks         float64 `json:"sacks,omitempty"`
	Interceptions float64 `json:"interceptions,omitempty"`
	ForcedFumbles float64 `json:"forced_fumbles,omitempty"`
	PositionRank  int     `json:"position_rank,omitempty"` // lower is better
	WeeklyPoints  float64 `json:"weekly_points,omitempty"`
}

// Player is the canonical reconciled record for one real-world player.
// Exactly one stat bag is non-nil, selected by Position.Family().
// Canonical players are replaced wholesale on re-merge, never mutated
// in place.
type Player struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Team     string    `json:"team"` // normalized 2-3 letter code
	Position Position  `json:"position"`
	ByeWeek  int       `json:"bye_week,omitempty"`

	Offense *OffenseStats `json:"offense,omitempty"`
	Kicker  *KickerStats  `json:"kicker,omitempty"`
	Defense *DefenseStats `json:"defense,omitempty"`
	IDP     *IDPStats     `json:"idp,omitempty"`
}
