package events

import (
	"time"
)

// Event payload types shared between the session layer and the gateway.

// PickMadePayload is emitted after a pick is recorded.
type PickMadePayload struct {
	PickNumber int       `json:"pick_number"`
	TeamIndex  int       `json:"team_index"`
	TeamName   string    `json:"team_name"`
	PlayerID   string    `json:"player_id,omitempty"` // empty for a skipped slot
	PlayerName string    `json:"player_name,omitempty"`
	MadeAt     time.Time `json:"made_at"`
}

// PickUndonePayload is emitted after an undo.
type PickUndonePayload struct {
	PickNumber int       `json:"pick_number"`
	TeamIndex  int       `json:"team_index"`
	PlayerID   string    `json:"player_id,omitempty"`
	UndoneAt   time.Time `json:"undone_at"`
}

// DraftStartedPayload is emitted when the session activates.
type DraftStartedPayload struct {
	StartedAt   time.Time `json:"started_at"`
	CurrentPick int       `json:"current_pick"`
	TotalPicks  int       `json:"total_picks"`
}

// DraftPausedPayload is emitted when the session pauses.
type DraftPausedPayload struct {
	PausedAt    time.Time `json:"paused_at"`
	CurrentPick int       `json:"current_pick"`
}

// DraftCompletedPayload is emitted once the final pick lands.
type DraftCompletedPayload struct {
	CompletedAt time.Time `json:"completed_at"`
	TotalPicks  int       `json:"total_picks"`
}

// TimerSyncPayload is broadcast on every countdown tick.
type TimerSyncPayload struct {
	PickNumber   int `json:"pick_number"`
	TeamIndex    int `json:"team_index"`
	RemainingSec int `json:"remaining_sec"`
}
