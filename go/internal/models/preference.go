package models

// PlayerPreference captures the operator's per-player annotations.
// IsTarget and IsAvoid are mutually exclusive; use the setters to keep
// them that way.
type PlayerPreference struct {
	IsTarget   bool   `json:"is_target"`
	IsAvoid    bool   `json:"is_avoid"`
	CustomRank *int   `json:"custom_rank,omitempty"` // positive when set
	Note       string `json:"note,omitempty"`
}

// SetTarget marks the player as a target, clearing any avoid flag.
func (p *PlayerPreference) SetTarget(target bool) {
	p.IsTarget = target
	if target {
		p.IsAvoid = false
	}
}

// SetAvoid marks the player as avoided, clearing any target flag.
func (p *PlayerPreference) SetAvoid(avoid bool) {
	p.IsAvoid = avoid
	if avoid {
		p.IsTarget = false
	}
}
