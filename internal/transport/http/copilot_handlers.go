package http

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/sentineldr/core/internal/graph"
	"github.com/sentineldr/core/internal/httperr"
	"github.com/sentineldr/core/internal/oracle"
)

// copilotTurn is one prior question/answer exchange, kept client-side and
// replayed so the analyzer can see conversational context.
type copilotTurn struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type copilotRequest struct {
	Question string        `json:"question"`
	History  []copilotTurn `json:"history"`
}

type copilotResponse struct {
	Answer    string `json:"answer"`
	Fallback  bool   `json:"fallback"`
	Timestamp string `json:"timestamp"`
}

var urgencyRank = map[string]int{
	"critical": 0,
	"high":     1,
	"medium":   2,
	"low":      3,
}

// buildSituationSummary renders the same kind of operator-facing digest the
// original's _build_situation_summary did: scenario/sim-time header,
// incidents sorted by urgency, resource counts, unresolved contradictions,
// pending actions, and hospital capacity.
func buildSituationSummary(snap graph.Snapshot) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Scenario: %s (%s)\n", snap.ScenarioName, snap.ScenarioID)
	fmt.Fprintf(&b, "Simulated time: %s\n\n", snap.CurrentSimTime.Format("15:04:05"))

	incidents := append([]graph.IncidentNode(nil), snap.Incidents...)
	sort.SliceStable(incidents, func(i, j int) bool {
		return urgencyRank[incidents[i].Urgency] < urgencyRank[incidents[j].Urgency]
	})
	b.WriteString("Active incidents:\n")
	if len(incidents) == 0 {
		b.WriteString("  none\n")
	}
	for _, inc := range incidents {
		trapped := ""
		if inc.Trapped != nil {
			trapped = fmt.Sprintf(", trapped %d-%d", inc.Trapped.Min, inc.Trapped.Max)
		}
		fmt.Fprintf(&b, "  [%s] %s urgency=%s status=%s sector=%s%s\n",
			inc.ID, inc.IncidentType, inc.Urgency, inc.Status, inc.Location.Sector, trapped)
	}

	available, dispatched := 0, 0
	var dispatchedLines []string
	for _, res := range snap.Resources {
		if res.Status == "available" {
			available++
			continue
		}
		dispatched++
		dispatchedLines = append(dispatchedLines, fmt.Sprintf("  %s (%s) -> incident %s", res.UnitID, res.ResourceType, res.AssignedIncident))
	}
	fmt.Fprintf(&b, "\nResources: %d available, %d dispatched\n", available, dispatched)
	for _, l := range dispatchedLines {
		b.WriteString(l + "\n")
	}

	b.WriteString("\nUnresolved contradictions:\n")
	unresolved := 0
	for _, c := range snap.Contradictions {
		if c.Resolved {
			continue
		}
		unresolved++
		fmt.Fprintf(&b, "  [%s] %s verdict=%s urgency=%s\n", c.ID, c.EntityName, c.Verdict, c.Urgency)
	}
	if unresolved == 0 {
		b.WriteString("  none\n")
	}

	b.WriteString("\nPending actions:\n")
	pending := 0
	for _, a := range snap.Actions {
		if a.Status != "pending" {
			continue
		}
		pending++
		rationale := a.Rationale
		if len(rationale) > 120 {
			rationale = rationale[:120] + "..."
		}
		fmt.Fprintf(&b, "  [%s] %s: %s\n", a.ID, a.ActionType, rationale)
	}
	if pending == 0 {
		b.WriteString("  none\n")
	}

	b.WriteString("\nHospital capacity:\n")
	hospitals := 0
	for _, loc := range snap.Locations {
		if loc.LocationType != "hospital" {
			continue
		}
		hospitals++
		used, total := 0, 0
		if loc.CapacityUsed != nil {
			used = *loc.CapacityUsed
		}
		if loc.CapacityTotal != nil {
			total = *loc.CapacityTotal
		}
		fmt.Fprintf(&b, "  %s: %d/%d beds used\n", loc.ID, used, total)
	}
	if hospitals == 0 {
		b.WriteString("  none reported\n")
	}

	return b.String()
}

func renderHistory(turns []copilotTurn) string {
	if len(turns) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("Prior conversation:\n")
	for _, t := range turns {
		fmt.Fprintf(&b, "Q: %s\nA: %s\n", t.Question, t.Answer)
	}
	b.WriteString("\n")
	return b.String()
}

func (s *Server) handleCopilotAsk(w http.ResponseWriter, r *http.Request) {
	var req copilotRequest
	if herr := decodeJSON(r, &req); herr != nil {
		httperr.Write(w, herr)
		return
	}
	snap := s.coordinator.Graph.Snapshot()
	out := s.coordinator.Oracle.AnalyzeCopilot(r.Context(), oracle.CopilotInput{
		Question:    req.Question,
		Situation:   buildSituationSummary(snap),
		HistoryText: renderHistory(req.History),
	})
	answer, _ := out.Data["answer"].(string)
	writeJSON(w, http.StatusOK, copilotResponse{
		Answer:    answer,
		Fallback:  out.Fallback,
		Timestamp: out.Timestamp.Format("2006-01-02T15:04:05Z07:00"),
	})
}
