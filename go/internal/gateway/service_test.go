package gateway

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/draftops/warroom/go/internal/events"
	"github.com/draftops/warroom/go/internal/models"
	"github.com/draftops/warroom/go/internal/scoring"
	"github.com/draftops/warroom/go/internal/session"
	"github.com/draftops/warroom/go/internal/valuation"
)

type fakeSink struct {
	subjects []string
}

func (f *fakeSink) Publish(subject string, payload any) {
	f.subjects = append(f.subjects, subject)
}

func newTestServer(t *testing.T) (*httptest.Server, *fakeSink) {
	t.Helper()
	sink := &fakeSink{}
	sess := session.New(clockwork.NewFakeClock())
	cm := NewConnectionManager(DefaultConnectionConfig())
	svc := NewService(sess, scoring.DefaultRules(), cm, sink, nil, clockwork.NewFakeClock())

	mux := http.NewServeMux()
	svc.RegisterRoutes(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, sink
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func mergeRecords() []map[string]any {
	records := make([]map[string]any, 0, 4)
	for i, name := range []string{"Alpha Back", "Bravo Back", "Charlie Back", "Delta Back"} {
		records = append(records, map[string]any{
			"source":   "test",
			"name":     name,
			"team":     "KC",
			"position": "RB",
			"offense":  map[string]any{"weekly_points": float64(20 - i)},
		})
	}
	return records
}

func initBody() map[string]any {
	return map[string]any{
		"settings": map[string]any{
			"number_of_teams":     2,
			"user_team_index":     0,
			"draft_type":          "SNAKE",
			"pick_time_limit_sec": 60,
			"roster_slots":        map[string]int{"RB": 2},
		},
		"teams": []map[string]any{
			{"id": uuid.NewString(), "name": "Me", "is_user": true},
			{"id": uuid.NewString(), "name": "Them", "is_user": false},
		},
	}
}

func TestDraftFlowOverHTTP(t *testing.T) {
	srv, sink := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/pool/merge", mergeRecords())
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = postJSON(t, srv.URL+"/api/session/initialize", initBody())
	require.Equal(t, http.StatusOK, resp.StatusCode)
	state := decode[SessionState](t, resp)
	assert.Equal(t, models.SessionConfigured, state.Status)
	assert.Equal(t, 1, state.CurrentPick)
	assert.True(t, state.UserOnClock)

	resp = postJSON(t, srv.URL+"/api/session/start", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	state = decode[SessionState](t, resp)
	assert.Equal(t, models.SessionActive, state.Status)

	// pick the first available player for team 0
	httpResp, err := http.Get(srv.URL + "/api/players")
	require.NoError(t, err)
	players := decode[[]models.Player](t, httpResp)
	httpResp.Body.Close()
	require.Len(t, players, 4)

	resp = postJSON(t, srv.URL+"/api/picks", map[string]any{
		"player_id":  players[0].ID,
		"team_index": 0,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	state = decode[SessionState](t, resp)
	assert.Equal(t, 2, state.CurrentPick)
	assert.Equal(t, 1, state.CompletedPicks)
	assert.False(t, state.UserOnClock)

	// the same player cannot be picked twice
	resp = postJSON(t, srv.URL+"/api/picks", map[string]any{
		"player_id":  players[0].ID,
		"team_index": 1,
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = postJSON(t, srv.URL+"/api/picks/undo", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	state = decode[SessionState](t, resp)
	assert.Equal(t, 1, state.CurrentPick)
	assert.Equal(t, 0, state.CompletedPicks)

	assert.Contains(t, sink.subjects, events.SubjectDraftStarted)
	assert.Contains(t, sink.subjects, events.SubjectPickMade)
	assert.Contains(t, sink.subjects, events.SubjectPickUndone)
}

func TestPickBeforeInitializeOverHTTP(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/picks", map[string]any{
		"player_id":  models.PlayerID("Nobody", "KC", models.PositionRB),
		"team_index": 0,
	})
	assert.Equal(t, http.StatusPreconditionFailed, resp.StatusCode)
}

func TestRecommendationsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/pool/merge", mergeRecords())
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp = postJSON(t, srv.URL+"/api/session/initialize", initBody())
	require.Equal(t, http.StatusOK, resp.StatusCode)

	httpResp, err := http.Get(srv.URL + "/api/recommendations?limit=2")
	require.NoError(t, err)
	defer httpResp.Body.Close()
	recs := decode[[]valuation.Recommendation](t, httpResp)
	require.Len(t, recs, 2)
	// highest projection first
	assert.Equal(t, "Alpha Back", recs[0].Player.Name)

	badResp, err := http.Get(srv.URL + "/api/recommendations?limit=0")
	require.NoError(t, err)
	defer badResp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, badResp.StatusCode)
}

func TestPreferenceValidationOverHTTP(t *testing.T) {
	srv, _ := newTestServer(t)

	rank := 0
	resp := postJSON(t, srv.URL+"/api/preferences", map[string]any{
		"player_id":   models.PlayerID("Alpha Back", "KC", models.PositionRB),
		"custom_rank": rank,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
