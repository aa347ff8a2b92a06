package http

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"

	"github.com/sentineldr/core/internal/httperr"
)

// synthesizeRequest is the body for POST /api/voice/synthesize. Synthesis
// is modeled abstractly: rather than calling a real text-to-speech
// provider, the response is a stable content-addressed reference a client
// can use to dedupe/cache against, not playable audio.
type synthesizeRequest struct {
	Text string `json:"text"`
}

type synthesizeResponse struct {
	AudioRef string `json:"audio_ref"`
	Text     string `json:"text"`
}

func (s *Server) handleVoiceSynthesize(w http.ResponseWriter, r *http.Request) {
	var req synthesizeRequest
	if herr := decodeJSON(r, &req); herr != nil {
		httperr.Write(w, herr)
		return
	}
	sum := sha256.Sum256([]byte(req.Text))
	writeJSON(w, http.StatusOK, synthesizeResponse{
		AudioRef: "voice-ref:" + hex.EncodeToString(sum[:8]),
		Text:     req.Text,
	})
}

type transcribeRequest struct {
	Transcript     string `json:"transcript"`
	CampName       string `json:"camp_name"`
	CallerLocation string `json:"caller_location"`
}

func (s *Server) handleVoiceTranscribe(w http.ResponseWriter, r *http.Request) {
	var req transcribeRequest
	if herr := decodeJSON(r, &req); herr != nil {
		httperr.Write(w, herr)
		return
	}
	report, err := s.coordinator.TranscribeVoice(r.Context(), req.Transcript, req.CampName, req.CallerLocation)
	if err != nil {
		httperr.Write(w, httperr.FromDomain(err))
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleVoiceReports(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.coordinator.Graph.VoiceReports())
}

// handleVoiceReport returns the most recently recorded voice report, the
// one a dashboard's "latest briefing" panel would show.
func (s *Server) handleVoiceReport(w http.ResponseWriter, r *http.Request) {
	reports := s.coordinator.Graph.VoiceReports()
	if len(reports) == 0 {
		writeJSON(w, http.StatusOK, map[string]any{"report": nil})
		return
	}
	latest := reports[0]
	for _, v := range reports[1:] {
		if v.CreatedAt.After(latest.CreatedAt) {
			latest = v
		}
	}
	writeJSON(w, http.StatusOK, latest)
}
