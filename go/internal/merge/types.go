package merge

import (
	"github.com/google/uuid"

	"github.com/draftops/warroom/go/internal/models"
)

// RawRecord is one already-typed player row handed over by the
// ingestion layer, tagged with the source it came from. At most one
// stat bag is set, matching the record's classified position family.
type RawRecord struct {
	Source   string `json:"source"`
	Name     string `json:"name"`
	Team     string `json:"team"`
	Position string `json:"position"`
	ByeWeek  int    `json:"bye_week,omitempty"`

	Offense *models.OffenseStats `json:"offense,omitempty"`
	Kicker  *models.KickerStats  `json:"kicker,omitempty"`
	Defense *models.DefenseStats `json:"defense,omitempty"`
	IDP     *models.IDPStats     `json:"idp,omitempty"`
}

// ConflictType classifies a disagreement between sources.
type ConflictType string

const (
	ConflictTeamMismatch     ConflictType = "TEAM_MISMATCH"
	ConflictPositionMismatch ConflictType = "POSITION_MISMATCH"
)

// Conflict records one disagreement resolved during a merge.
type Conflict struct {
	PlayerID   uuid.UUID    `json:"player_id"`
	PlayerName string       `json:"player_name"`
	Type       ConflictType `json:"type"`
	Sources    []string     `json:"sources"`
}

// Report aggregates everything a merge had to resolve or discard.
// Conflicts are returned as data, never raised.
type Report struct {
	Conflicts []Conflict `json:"conflicts"`
	Dropped   int        `json:"dropped"`
}
