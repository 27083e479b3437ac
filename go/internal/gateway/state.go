package gateway

import (
	"github.com/draftops/warroom/go/internal/models"
)

// SessionState is the snapshot broadcast to clients and served from
// the state endpoint.
type SessionState struct {
	Status         models.SessionStatus `json:"status"`
	CurrentPick    int                  `json:"current_pick"`
	OnClockTeam    int                  `json:"on_clock_team"`
	UserOnClock    bool                 `json:"user_on_clock"`
	RemainingSec   int                  `json:"remaining_sec"`
	CompletedPicks int                  `json:"completed_picks"`
	TotalPicks     int                  `json:"total_picks"`
}

// Envelope wraps every WebSocket message with its event type.
type Envelope struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// WebSocket event types.
const (
	EventState          = "state"
	EventPickMade       = "pick_made"
	EventPickUndone     = "pick_undone"
	EventDraftStarted   = "draft_started"
	EventDraftPaused    = "draft_paused"
	EventDraftCompleted = "draft_completed"
	EventTimerSync      = "timer_sync"
)
