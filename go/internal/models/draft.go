package models

import (
	"time"

	"github.com/google/uuid"
)

// DraftType defines how turn order moves between rounds.
type DraftType string

const (
	DraftTypeSnake  DraftType = "SNAKE"
	DraftTypeLinear DraftType = "LINEAR"
)

// SessionStatus defines the lifecycle state of a draft session.
type SessionStatus string

const (
	SessionUninitialized SessionStatus = "UNINITIALIZED"
	SessionConfigured    SessionStatus = "CONFIGURED"
	SessionActive        SessionStatus = "ACTIVE"
	SessionPaused        SessionStatus = "PAUSED"
	SessionComplete      SessionStatus = "COMPLETED"
)

// DraftSettings holds configuration for a draft session. Immutable once
// a session starts except through an explicit update-and-reset.
type DraftSettings struct {
	NumberOfTeams    int              `json:"number_of_teams"`
	UserTeamIndex    int              `json:"user_team_index"`
	DraftType        DraftType        `json:"draft_type"`
	PickTimeLimitSec int              `json:"pick_time_limit_sec"`
	RosterSlots      map[Position]int `json:"roster_slots"` // includes FLEX and BENCH
}

// TotalRosterSlots returns the number of picks each team makes.
func (s DraftSettings) TotalRosterSlots() int {
	total := 0
	for _, n := range s.RosterSlots {
		total += n
	}
	return total
}

// FlexSlots returns the configured FLEX slot count.
func (s DraftSettings) FlexSlots() int {
	return s.RosterSlots[SlotFlex]
}

// DraftTeam is one franchise in the draft. Exactly one team per session
// has IsUser set.
type DraftTeam struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Roster []Player  `json:"roster"` // pick order
	IsUser bool      `json:"is_user"`
}

// DraftPick is one append-only pick-log entry. The log is the sole
// source of truth for who picked what in what order; rosters and the
// available pool must always be reconstructible from it.
type DraftPick struct {
	PickNumber int       `json:"pick_number"` // 1-based, monotonic
	TeamIndex  int       `json:"team_index"`
	Player     *Player   `json:"player,omitempty"` // nil for a skipped slot
	PickedAt   time.Time `json:"picked_at"`
}
