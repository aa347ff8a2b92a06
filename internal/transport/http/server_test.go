package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sentineldr/core/internal/broadcast"
	"github.com/sentineldr/core/internal/coordinator"
	"github.com/sentineldr/core/internal/detector"
	"github.com/sentineldr/core/internal/graph"
	"github.com/sentineldr/core/internal/oracle"
	"github.com/sentineldr/core/internal/planner"
)

func newTestServer() (*Server, *coordinator.Coordinator) {
	g := graph.New()
	o := oracle.New(nil, nil, nil)
	c := coordinator.New(g, o, detector.New(o, nil, nil, nil), planner.New(o, nil, nil, nil), broadcast.New(nil), nil, nil, nil)
	return NewServer(c, nil), c
}

func doJSON(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r *http.Request
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		r = httptest.NewRequest(method, path, bytes.NewReader(data))
	} else {
		r = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	s.ServeHTTP(w, r)
	return w
}

func TestHandleHealth(t *testing.T) {
	s, _ := newTestServer()
	w := doJSON(t, s, http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandleGraph_EmptySnapshot(t *testing.T) {
	s, _ := newTestServer()
	w := doJSON(t, s, http.MethodGet, "/api/graph/", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var snap graph.Snapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	assert.Empty(t, snap.Incidents)
}

func TestHandleSignalText_NeverCreatesIncident(t *testing.T) {
	s, _ := newTestServer()
	w := doJSON(t, s, http.MethodPost, "/api/signals/text", map[string]any{
		"content":  "reports of flooding downtown",
		"metadata": map[string]any{"sector": "4"},
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, s, http.MethodGet, "/api/graph/incidents", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]\n", w.Body.String())
}

func doForm(t *testing.T, s *Server, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	s.ServeHTTP(w, r)
	return w
}

func TestHandleSignalImage_CreatesIncident(t *testing.T) {
	s, c := newTestServer()
	w := doForm(t, s, "/api/signals/image", url.Values{
		"description": {"collapsed building"},
		"sector":      {"1"},
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, c.Graph.Incidents(), 1)
}

func TestHandleGetIncident_NotFound(t *testing.T) {
	s, _ := newTestServer()
	w := doJSON(t, s, http.MethodGet, "/api/graph/incidents/does-not-exist", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleResourceAssignAndUnassign(t *testing.T) {
	s, c := newTestServer()
	inc := c.Graph.AddIncident(graph.IncidentNode{Status: graph.IncidentActive})
	res := c.Graph.AddResource(graph.ResourceNode{Status: graph.ResourceAvailable})

	w := doJSON(t, s, http.MethodPost, "/api/resources/assign", map[string]any{
		"resource_id": res.ID, "incident_id": inc.ID,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	got, ok := c.Graph.Resource(res.ID)
	require.True(t, ok)
	assert.Equal(t, graph.ResourceDispatched, got.Status)

	w = doJSON(t, s, http.MethodPost, "/api/resources/unassign/"+res.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandleCopilotAsk_FallsBackWithoutLLM(t *testing.T) {
	s, _ := newTestServer()
	w := doJSON(t, s, http.MethodPost, "/api/copilot/ask", map[string]any{
		"question": "What incidents are active right now?",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp copilotResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Fallback)
	assert.NotEmpty(t, resp.Answer)
}

func TestHandleVoiceTranscribeAndList(t *testing.T) {
	s, _ := newTestServer()
	w := doJSON(t, s, http.MethodPost, "/api/voice/transcribe", map[string]any{
		"transcript": "trapped family near 5th and Oak", "camp_name": "Riverside Camp",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, s, http.MethodGet, "/api/voice/reports", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var reports []graph.VoiceReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reports))
	require.Len(t, reports, 1)
	assert.Equal(t, "Riverside Camp", reports[0].CampName)
}

func TestHandleVoiceSynthesize_ReturnsContentAddressedRef(t *testing.T) {
	s, _ := newTestServer()
	w := doJSON(t, s, http.MethodPost, "/api/voice/synthesize", map[string]any{"text": "evacuate sector 3"})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp synthesizeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.AudioRef, "voice-ref:")
}

func TestHandleSimStatusAndReset(t *testing.T) {
	s, c := newTestServer()
	w := doJSON(t, s, http.MethodGet, "/api/simulation/status", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, s, http.MethodPost, "/api/simulation/reset", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, c.SimulationStatus().Running)
}
