package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/draftops/warroom/go/internal/events"
	"github.com/draftops/warroom/go/internal/merge"
	"github.com/draftops/warroom/go/internal/models"
	"github.com/draftops/warroom/go/internal/scoring"
	"github.com/draftops/warroom/go/internal/session"
	"github.com/draftops/warroom/go/internal/valuation"
)

// EventSink receives draft lifecycle events. *events.Publisher
// implements it; a nil sink disables external publishing.
type EventSink interface {
	Publish(subject string, payload any)
}

// PickLog persists the append-only pick log so the session survives a
// restart. *repository.PickRepository implements it; a nil log keeps
// everything in memory.
type PickLog interface {
	AppendPick(ctx context.Context, sessionID uuid.UUID, pick models.DraftPick) error
	DeleteLastPick(ctx context.Context, sessionID uuid.UUID) error
	ClearPicks(ctx context.Context, sessionID uuid.UUID) error
}

// Service bridges the draft core to its external collaborators: it
// owns the HTTP mutation/query surface, the WebSocket fan-out and the
// countdown loop. The core assumes a single caller, so every mutating
// handler runs under one mutex.
type Service struct {
	mu sync.Mutex

	sess   *session.Session
	pool   map[uuid.UUID]models.Player
	report merge.Report
	prefs  map[uuid.UUID]*models.PlayerPreference
	biases valuation.Biases
	rules  scoring.Rules

	cm        *ConnectionManager
	sink      EventSink
	pickLog   PickLog
	sessionID uuid.UUID
	clock     clockwork.Clock
}

// NewService creates a gateway service around a session. sink and
// pickLog may be nil when NATS publishing or persistence is disabled.
func NewService(sess *session.Session, rules scoring.Rules, cm *ConnectionManager, sink EventSink, pickLog PickLog, clock clockwork.Clock) *Service {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Service{
		sess:    sess,
		pool:    make(map[uuid.UUID]models.Player),
		prefs:   make(map[uuid.UUID]*models.PlayerPreference),
		rules:   rules,
		cm:      cm,
		sink:    sink,
		pickLog: pickLog,
		clock:   clock,
	}
}

// RegisterRoutes attaches all HTTP routes to the mux.
func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/pool/merge", s.handleMergePool)
	mux.HandleFunc("POST /api/session/initialize", s.handleInitialize)
	mux.HandleFunc("POST /api/session/settings", s.handleUpdateSettings)
	mux.HandleFunc("POST /api/session/start", s.handleStart)
	mux.HandleFunc("POST /api/session/pause", s.handlePause)
	mux.HandleFunc("POST /api/picks", s.handleRecordPick)
	mux.HandleFunc("POST /api/picks/skip", s.handleSkipPick)
	mux.HandleFunc("POST /api/picks/undo", s.handleUndoPick)
	mux.HandleFunc("POST /api/preferences", s.handleSetPreference)
	mux.HandleFunc("POST /api/biases", s.handleSetBiases)
	mux.HandleFunc("GET /api/pool/report", s.handleMergeReport)
	mux.HandleFunc("GET /api/state", s.handleState)
	mux.HandleFunc("GET /api/players", s.handleAvailablePlayers)
	mux.HandleFunc("GET /api/teams", s.handleTeams)
	mux.HandleFunc("GET /api/picks", s.handlePicks)
	mux.HandleFunc("GET /api/recommendations", s.handleRecommendations)
	mux.HandleFunc("GET /ws", s.cm.HandleWS)
}

func (s *Service) handleMergePool(w http.ResponseWriter, r *http.Request) {
	var records []merge.RawRecord
	if err := json.NewDecoder(r.Body).Decode(&records); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	s.mu.Lock()
	pool, report := merge.Merge(records)
	s.pool = pool
	s.report = report
	s.mu.Unlock()

	log.Info().
		Int("records", len(records)).
		Int("players", len(pool)).
		Int("conflicts", len(report.Conflicts)).
		Int("dropped", report.Dropped).
		Msg("player pool merged")

	writeJSON(w, http.StatusOK, struct {
		Players int          `json:"players"`
		Report  merge.Report `json:"report"`
	}{Players: len(pool), Report: report})
}

type initializeRequest struct {
	Settings models.DraftSettings `json:"settings"`
	Teams    []models.DraftTeam   `json:"teams"`
}

func (s *Service) handleInitialize(w http.ResponseWriter, r *http.Request) {
	var req initializeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	players := make([]models.Player, 0, len(s.pool))
	for _, p := range s.pool {
		players = append(players, p)
	}
	if err := s.sess.Initialize(req.Settings, req.Teams, players); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	s.sessionID = uuid.New()
	s.clearPickLog(r.Context())
	writeJSON(w, http.StatusOK, s.snapshot())
}

func (s *Service) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req initializeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sess.UpdateSettingsAndReset(req.Settings, req.Teams); err != nil {
		writeError(w, statusForSessionError(err), err)
		return
	}
	s.clearPickLog(r.Context())
	writeJSON(w, http.StatusOK, s.snapshot())
}

func (s *Service) handleStart(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sess.Start(); err != nil {
		writeError(w, statusForSessionError(err), err)
		return
	}
	payload := events.DraftStartedPayload{
		StartedAt:   s.clock.Now(),
		CurrentPick: s.sess.CurrentPickNumber(),
		TotalPicks:  s.sess.TotalPicks(),
	}
	s.emit(events.SubjectDraftStarted, EventDraftStarted, payload)
	writeJSON(w, http.StatusOK, s.snapshot())
}

func (s *Service) handlePause(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sess.Pause(); err != nil {
		writeError(w, statusForSessionError(err), err)
		return
	}
	payload := events.DraftPausedPayload{
		PausedAt:    s.clock.Now(),
		CurrentPick: s.sess.CurrentPickNumber(),
	}
	s.emit(events.SubjectDraftPaused, EventDraftPaused, payload)
	writeJSON(w, http.StatusOK, s.snapshot())
}

type recordPickRequest struct {
	PlayerID  uuid.UUID `json:"player_id"`
	TeamIndex int       `json:"team_index"`
}

func (s *Service) handleRecordPick(w http.ResponseWriter, r *http.Request) {
	var req recordPickRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	pick, err := s.sess.RecordPick(req.PlayerID, req.TeamIndex)
	if err != nil {
		writeError(w, statusForSessionError(err), err)
		return
	}

	teams := s.sess.Teams()
	payload := events.PickMadePayload{
		PickNumber: pick.PickNumber,
		TeamIndex:  pick.TeamIndex,
		TeamName:   teams[pick.TeamIndex].Name,
		PlayerID:   pick.Player.ID.String(),
		PlayerName: pick.Player.Name,
		MadeAt:     pick.PickedAt,
	}
	s.persistAppend(r.Context(), pick)
	s.emit(events.SubjectPickMade, EventPickMade, payload)
	s.emitCompletedIfDone()

	writeJSON(w, http.StatusOK, s.snapshot())
}

type skipPickRequest struct {
	TeamIndex int `json:"team_index"`
}

func (s *Service) handleSkipPick(w http.ResponseWriter, r *http.Request) {
	var req skipPickRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	pick, err := s.sess.SkipPick(req.TeamIndex)
	if err != nil {
		writeError(w, statusForSessionError(err), err)
		return
	}

	teams := s.sess.Teams()
	payload := events.PickMadePayload{
		PickNumber: pick.PickNumber,
		TeamIndex:  pick.TeamIndex,
		TeamName:   teams[pick.TeamIndex].Name,
		MadeAt:     pick.PickedAt,
	}
	s.persistAppend(r.Context(), pick)
	s.emit(events.SubjectPickMade, EventPickMade, payload)
	s.emitCompletedIfDone()

	writeJSON(w, http.StatusOK, s.snapshot())
}

func (s *Service) handleUndoPick(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	undone := s.sess.UndoLastPick()
	if undone != nil {
		if s.pickLog != nil {
			if err := s.pickLog.DeleteLastPick(r.Context(), s.sessionID); err != nil {
				log.Error().Err(err).Msg("failed to delete last pick from log")
			}
		}
		payload := events.PickUndonePayload{
			PickNumber: undone.PickNumber,
			TeamIndex:  undone.TeamIndex,
			UndoneAt:   s.clock.Now(),
		}
		if undone.Player != nil {
			payload.PlayerID = undone.Player.ID.String()
		}
		s.emit(events.SubjectPickUndone, EventPickUndone, payload)
	}
	writeJSON(w, http.StatusOK, s.snapshot())
}

type preferenceRequest struct {
	PlayerID   uuid.UUID `json:"player_id"`
	IsTarget   *bool     `json:"is_target,omitempty"`
	IsAvoid    *bool     `json:"is_avoid,omitempty"`
	CustomRank *int      `json:"custom_rank,omitempty"`
	Note       *string   `json:"note,omitempty"`
}

func (s *Service) handleSetPreference(w http.ResponseWriter, r *http.Request) {
	var req preferenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.CustomRank != nil && *req.CustomRank < 1 {
		writeError(w, http.StatusBadRequest, errors.New("custom_rank must be positive"))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	pref := s.prefs[req.PlayerID]
	if pref == nil {
		pref = &models.PlayerPreference{}
		s.prefs[req.PlayerID] = pref
	}
	if req.IsTarget != nil {
		pref.SetTarget(*req.IsTarget)
	}
	if req.IsAvoid != nil {
		pref.SetAvoid(*req.IsAvoid)
	}
	if req.CustomRank != nil {
		pref.CustomRank = req.CustomRank
	}
	if req.Note != nil {
		pref.Note = *req.Note
	}
	writeJSON(w, http.StatusOK, pref)
}

func (s *Service) handleSetBiases(w http.ResponseWriter, r *http.Request) {
	var biases valuation.Biases
	if err := json.NewDecoder(r.Body).Decode(&biases); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	s.mu.Lock()
	s.biases = biases
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, biases)
}

func (s *Service) handleMergeReport(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	report := s.report
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, report)
}

func (s *Service) handleState(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	state := s.snapshot()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, state)
}

func (s *Service) handleAvailablePlayers(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	players := s.sess.AvailablePlayers()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, players)
}

func (s *Service) handleTeams(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	teams := s.sess.Teams()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, teams)
}

func (s *Service) handlePicks(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	picks := s.sess.Picks()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, picks)
}

func (s *Service) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, errors.New("limit must be a positive integer"))
			return
		}
		limit = n
	}

	s.mu.Lock()
	recs := s.sess.Recommendations(s.prefs, s.biases, s.rules.BaseValue, limit)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, recs)
}

// TickAndBroadcast advances the countdown by one second and pushes a
// timer sync to all clients. Called by the timer loop; expiry triggers
// nothing here, auto-pick policy stays with the operator.
func (s *Service) TickAndBroadcast() {
	s.mu.Lock()
	if s.sess.Status() != models.SessionActive {
		s.mu.Unlock()
		return
	}
	payload := events.TimerSyncPayload{
		PickNumber:   s.sess.CurrentPickNumber(),
		TeamIndex:    s.sess.CurrentTeamIndex(),
		RemainingSec: s.sess.Tick(),
	}
	s.mu.Unlock()

	s.cm.Broadcast(EventTimerSync, payload)
	if s.sink != nil {
		s.sink.Publish(events.SubjectTimerSync, payload)
	}
}

// persistAppend writes a pick to the external log. Best effort: the
// in-memory session already holds the truth for this run.
func (s *Service) persistAppend(ctx context.Context, pick models.DraftPick) {
	if s.pickLog == nil {
		return
	}
	if err := s.pickLog.AppendPick(ctx, s.sessionID, pick); err != nil {
		log.Error().Err(err).Int("pick", pick.PickNumber).Msg("failed to persist pick")
	}
}

func (s *Service) clearPickLog(ctx context.Context) {
	if s.pickLog == nil {
		return
	}
	if err := s.pickLog.ClearPicks(ctx, s.sessionID); err != nil {
		log.Error().Err(err).Msg("failed to clear pick log")
	}
}

// emit broadcasts to WebSocket clients and, when configured, to NATS.
// Callers must hold s.mu.
func (s *Service) emit(subject, eventType string, payload any) {
	s.cm.Broadcast(eventType, payload)
	if s.sink != nil {
		s.sink.Publish(subject, payload)
	}
}

func (s *Service) emitCompletedIfDone() {
	if !s.sess.IsComplete() {
		return
	}
	s.emit(events.SubjectDraftCompleted, EventDraftCompleted, events.DraftCompletedPayload{
		CompletedAt: s.clock.Now(),
		TotalPicks:  s.sess.TotalPicks(),
	})
}

func (s *Service) snapshot() SessionState {
	return SessionState{
		Status:         s.sess.Status(),
		CurrentPick:    s.sess.CurrentPickNumber(),
		OnClockTeam:    s.sess.CurrentTeamIndex(),
		UserOnClock:    s.sess.CurrentTeamIndex() == s.sess.Settings().UserTeamIndex,
		RemainingSec:   s.sess.RemainingSeconds(),
		CompletedPicks: len(s.sess.Picks()),
		TotalPicks:     s.sess.TotalPicks(),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to write JSON response")
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func statusForSessionError(err error) int {
	switch {
	case errors.Is(err, session.ErrPlayerNotAvailable),
		errors.Is(err, session.ErrSessionComplete):
		return http.StatusConflict
	case errors.Is(err, session.ErrNotInitialized):
		return http.StatusPreconditionFailed
	default:
		return http.StatusBadRequest
	}
}
