package session

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/draftops/warroom/go/internal/models"
	"github.com/draftops/warroom/go/internal/valuation"
)

// Session is the live draft state machine. It is an explicit object
// with no ambient globals, so multiple sessions can coexist in tests. All
// operations are synchronous atomic transitions; callers that share a
// session across goroutines must serialize access themselves.
type Session struct {
	clock clockwork.Clock

	initialized bool
	started     bool
	active      bool

	settings     models.DraftSettings
	teams        []models.DraftTeam
	available    map[uuid.UUID]models.Player
	picks        []models.DraftPick
	currentPick  int
	currentTeam  int
	remainingSec int
}

// New creates an uninitialized session. In production pass
// clockwork.NewRealClock(); tests use a FakeClock so pick timestamps
// are reproducible.
func New(clock clockwork.Clock) *Session {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Session{clock: clock}
}

// Initialize loads settings, teams and the merged player pool, resets
// the pick counter and log, and leaves the session configured but not
// active. Configuration errors are rejected before any state changes.
func (s *Session) Initialize(settings models.DraftSettings, teams []models.DraftTeam, players []models.Player) error {
	if err := validateConfig(settings, teams); err != nil {
		return err
	}
	s.applyConfig(settings, teams, players)
	s.initialized = true

	log.Info().
		Int("teams", settings.NumberOfTeams).
		Str("draft_type", string(settings.DraftType)).
		Int("pool_size", len(players)).
		Msg("draft session configured")
	return nil
}

// UpdateSettingsAndReset replaces the settings and restarts the session
// from pick 1: every drafted player returns to the pool and the pick
// log is cleared.
func (s *Session) UpdateSettingsAndReset(settings models.DraftSettings, teams []models.DraftTeam) error {
	if !s.initialized {
		return ErrNotInitialized
	}
	if err := validateConfig(settings, teams); err != nil {
		return err
	}

	players := make([]models.Player, 0, len(s.available)+len(s.picks))
	for _, p := range s.available {
		players = append(players, p)
	}
	for _, t := range s.teams {
		players = append(players, t.Roster...)
	}
	s.applyConfig(settings, teams, players)

	log.Info().Int("teams", settings.NumberOfTeams).Msg("draft session reset with new settings")
	return nil
}

func (s *Session) applyConfig(settings models.DraftSettings, teams []models.DraftTeam, players []models.Player) {
	s.settings = settings
	s.teams = make([]models.DraftTeam, len(teams))
	for i, t := range teams {
		t.Roster = nil
		s.teams[i] = t
	}
	s.available = make(map[uuid.UUID]models.Player, len(players))
	for _, p := range players {
		s.available[p.ID] = p
	}
	s.picks = nil
	s.currentPick = 1
	s.currentTeam = TeamOnClock(1, settings.NumberOfTeams, settings.DraftType)
	s.remainingSec = settings.PickTimeLimitSec
	s.started = false
	s.active = false
}

func validateConfig(settings models.DraftSettings, teams []models.DraftTeam) error {
	if settings.NumberOfTeams < 2 {
		return fmt.Errorf("%w: need at least 2 teams, got %d", ErrInvalidConfig, settings.NumberOfTeams)
	}
	if len(teams) != settings.NumberOfTeams {
		return fmt.Errorf("%w: %d teams provided for %d slots", ErrInvalidConfig, len(teams), settings.NumberOfTeams)
	}
	if settings.TotalRosterSlots() == 0 {
		return fmt.Errorf("%w: roster slots sum to zero", ErrInvalidConfig)
	}
	if settings.DraftType != models.DraftTypeSnake && settings.DraftType != models.DraftTypeLinear {
		return fmt.Errorf("%w: unknown draft type %q", ErrInvalidConfig, settings.DraftType)
	}
	if settings.UserTeamIndex < 0 || settings.UserTeamIndex >= settings.NumberOfTeams {
		return fmt.Errorf("%w: user team index %d out of range", ErrInvalidConfig, settings.UserTeamIndex)
	}
	if settings.PickTimeLimitSec <= 0 {
		return fmt.Errorf("%w: pick time limit must be positive", ErrInvalidConfig)
	}
	for i, t := range teams {
		if t.IsUser != (i == settings.UserTeamIndex) {
			return fmt.Errorf("%w: exactly one user team required, at index %d", ErrInvalidConfig, settings.UserTeamIndex)
		}
	}
	return nil
}

// Start activates the session. Pick state is untouched.
func (s *Session) Start() error {
	if !s.initialized {
		return ErrNotInitialized
	}
	if s.IsComplete() {
		return ErrSessionComplete
	}
	s.started = true
	s.active = true
	log.Info().Int("pick", s.currentPick).Msg("draft session started")
	return nil
}

// Pause deactivates the session. The timer stops decrementing but pick
// state is untouched; there is nothing in flight to cancel because
// picks are instantaneous.
func (s *Session) Pause() error {
	if !s.initialized {
		return ErrNotInitialized
	}
	s.active = false
	log.Info().Int("pick", s.currentPick).Msg("draft session paused")
	return nil
}

// RecordPick moves a player from the available pool onto a team's
// roster and appends the pick to the log. It is the single primitive
// for both the user's own picks and manually entered opposing picks.
// On any precondition failure the session is left unchanged.
func (s *Session) RecordPick(playerID uuid.UUID, teamIndex int) (models.DraftPick, error) {
	if err := s.checkPickPreconditions(teamIndex); err != nil {
		return models.DraftPick{}, err
	}
	player, ok := s.available[playerID]
	if !ok {
		return models.DraftPick{}, fmt.Errorf("%w: %s", ErrPlayerNotAvailable, playerID)
	}

	delete(s.available, playerID)
	s.teams[teamIndex].Roster = append(s.teams[teamIndex].Roster, player)
	pick := models.DraftPick{
		PickNumber: s.currentPick,
		TeamIndex:  teamIndex,
		Player:     &player,
		PickedAt:   s.clock.Now(),
	}
	s.appendPick(pick)

	log.Debug().
		Int("pick", pick.PickNumber).
		Int("team", teamIndex).
		Str("player", player.Name).
		Msg("pick recorded")
	return pick, nil
}

// SkipPick records a null slot for a team that forfeited its turn. The
// pool is untouched but the pick counter advances.
func (s *Session) SkipPick(teamIndex int) (models.DraftPick, error) {
	if err := s.checkPickPreconditions(teamIndex); err != nil {
		return models.DraftPick{}, err
	}
	pick := models.DraftPick{
		PickNumber: s.currentPick,
		TeamIndex:  teamIndex,
		PickedAt:   s.clock.Now(),
	}
	s.appendPick(pick)
	return pick, nil
}

func (s *Session) checkPickPreconditions(teamIndex int) error {
	if !s.initialized {
		return ErrNotInitialized
	}
	if s.IsComplete() {
		return ErrSessionComplete
	}
	if teamIndex < 0 || teamIndex >= len(s.teams) {
		return fmt.Errorf("%w: %d", ErrInvalidTeamIndex, teamIndex)
	}
	return nil
}

func (s *Session) appendPick(pick models.DraftPick) {
	s.picks = append(s.picks, pick)
	s.currentPick++
	s.currentTeam = TeamOnClock(s.currentPick, s.settings.NumberOfTeams, s.settings.DraftType)
	s.remainingSec = s.settings.PickTimeLimitSec
}

// UndoLastPick pops the last log entry, returns its player to the pool
// and rolls the pick counters back to the values recorded on the entry.
// A no-op returning nil when the log is empty.
func (s *Session) UndoLastPick() *models.DraftPick {
	if len(s.picks) == 0 {
		return nil
	}
	last := s.picks[len(s.picks)-1]
	s.picks = s.picks[:len(s.picks)-1]

	if last.Player != nil {
		roster := s.teams[last.TeamIndex].Roster
		for i := len(roster) - 1; i >= 0; i-- {
			if roster[i].ID == last.Player.ID {
				roster = append(roster[:i], roster[i+1:]...)
				break
			}
		}
		s.teams[last.TeamIndex].Roster = roster
		s.available[last.Player.ID] = *last.Player
	}

	s.currentPick = last.PickNumber
	s.currentTeam = TeamOnClock(s.currentPick, s.settings.NumberOfTeams, s.settings.DraftType)
	s.remainingSec = s.settings.PickTimeLimitSec

	log.Debug().Int("pick", last.PickNumber).Msg("pick undone")
	return &last
}

// SetRemaining overwrites the countdown. The session performs no
// scheduling of its own; an external periodic tick drives it.
func (s *Session) SetRemaining(seconds int) {
	if seconds < 0 {
		seconds = 0
	}
	s.remainingSec = seconds
}

// Tick decrements the countdown by one second while the session is
// active and returns the remaining time. Expiry policy (auto-pick or
// otherwise) belongs to the caller.
func (s *Session) Tick() int {
	if s.active && s.remainingSec > 0 {
		s.remainingSec--
	}
	return s.remainingSec
}

// IsComplete reports whether every roster slot has been picked. The
// terminal state is reached implicitly once the pick counter passes
// numberOfTeams x totalRosterSlots.
func (s *Session) IsComplete() bool {
	return s.initialized && s.currentPick > s.TotalPicks()
}

// TotalPicks returns the number of picks in a full draft.
func (s *Session) TotalPicks() int {
	return s.settings.NumberOfTeams * s.settings.TotalRosterSlots()
}

// Status derives the lifecycle state; it is never stored, so undo
// naturally rolls it back.
func (s *Session) Status() models.SessionStatus {
	switch {
	case !s.initialized:
		return models.SessionUninitialized
	case s.IsComplete():
		return models.SessionComplete
	case s.active:
		return models.SessionActive
	case s.started:
		return models.SessionPaused
	default:
		return models.SessionConfigured
	}
}

// AvailablePlayers returns a name-sorted copy of the undrafted pool.
func (s *Session) AvailablePlayers() []models.Player {
	players := make([]models.Player, 0, len(s.available))
	for _, p := range s.available {
		players = append(players, p)
	}
	sort.Slice(players, func(i, j int) bool {
		if players[i].Name != players[j].Name {
			return players[i].Name < players[j].Name
		}
		return players[i].ID.String() < players[j].ID.String()
	})
	return players
}

// Teams returns a deep copy of the teams and their rosters.
func (s *Session) Teams() []models.DraftTeam {
	teams := make([]models.DraftTeam, len(s.teams))
	for i, t := range s.teams {
		t.Roster = append([]models.Player(nil), t.Roster...)
		teams[i] = t
	}
	return teams
}

// UserTeam returns a copy of the operator's team.
func (s *Session) UserTeam() models.DraftTeam {
	t := s.teams[s.settings.UserTeamIndex]
	t.Roster = append([]models.Player(nil), t.Roster...)
	return t
}

// Picks returns a copy of the append-only pick log.
func (s *Session) Picks() []models.DraftPick {
	return append([]models.DraftPick(nil), s.picks...)
}

// Settings returns the session settings.
func (s *Session) Settings() models.DraftSettings { return s.settings }

// CurrentPickNumber returns the 1-based pick about to be made.
func (s *Session) CurrentPickNumber() int { return s.currentPick }

// CurrentTeamIndex returns the index of the team on the clock.
func (s *Session) CurrentTeamIndex() int { return s.currentTeam }

// RemainingSeconds returns the countdown value.
func (s *Session) RemainingSeconds() int { return s.remainingSec }

// Recommendations ranks the available pool against the user roster.
// Regeneration after a pick is the caller's follow-up call; the session
// pushes nothing.
func (s *Session) Recommendations(
	prefs map[uuid.UUID]*models.PlayerPreference,
	biases valuation.Biases,
	base valuation.BaseValueFunc,
	limit int,
) []valuation.Recommendation {
	if !s.initialized {
		return nil
	}
	return valuation.Recommend(s.AvailablePlayers(), s.UserTeam().Roster, prefs, biases, s.settings, base, limit)
}
