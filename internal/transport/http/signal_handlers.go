package http

import (
	"encoding/json"
	"net/http"

	"github.com/sentineldr/core/internal/httperr"
)

// textSignalRequest is the JSON body for POST /api/signals/text.
type textSignalRequest struct {
	Content  string         `json:"content"`
	Metadata map[string]any `json:"metadata"`
}

func (s *Server) handleSignalText(w http.ResponseWriter, r *http.Request) {
	var req textSignalRequest
	if herr := decodeJSON(r, &req); herr != nil {
		httperr.Write(w, herr)
		return
	}
	s.processSignal(w, r, "text", req.Content, req.Metadata)
}

// handleSignalImage and handleSignalAudio both accept multipart/form-data:
// a "description"/"transcript" text field, an optional "file" upload
// (stored only by reference — no image/audio model backend is wired, per
// spec's exclusion of real multimodal inference), and an optional
// "metadata" field holding a JSON object.
func (s *Server) handleSignalImage(w http.ResponseWriter, r *http.Request) {
	content, metadata, herr := parseMultipartSignal(r, "description")
	if herr != nil {
		httperr.Write(w, herr)
		return
	}
	s.processSignal(w, r, "image", content, metadata)
}

func (s *Server) handleSignalAudio(w http.ResponseWriter, r *http.Request) {
	content, metadata, herr := parseMultipartSignal(r, "transcript")
	if herr != nil {
		httperr.Write(w, herr)
		return
	}
	if _, ok := metadata["transcript"]; !ok {
		metadata["transcript"] = content
	}
	s.processSignal(w, r, "audio", content, metadata)
}

func parseMultipartSignal(r *http.Request, contentField string) (string, map[string]any, *httperr.Error) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		// Fall back to a plain form (no file), tolerating non-multipart callers.
		if err := r.ParseForm(); err != nil {
			return "", nil, httperr.BadRequest("invalid form body: " + err.Error())
		}
	}
	content := r.FormValue(contentField)
	metadata := map[string]any{}
	if raw := r.FormValue("metadata"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &metadata); err != nil {
			return "", nil, httperr.BadRequest("invalid metadata JSON: " + err.Error())
		}
	}
	if sector := r.FormValue("sector"); sector != "" {
		metadata["sector"] = sector
	}
	if file, header, err := r.FormFile("file"); err == nil {
		defer file.Close()
		metadata["description"] = header.Filename
	}
	return content, metadata, nil
}

func (s *Server) processSignal(w http.ResponseWriter, r *http.Request, signalType, content string, metadata map[string]any) {
	result, err := s.coordinator.ProcessSignal(r.Context(), signalType, content, metadata)
	if err != nil {
		httperr.Write(w, httperr.FromDomain(err))
		return
	}
	writeJSON(w, http.StatusOK, result)
}
