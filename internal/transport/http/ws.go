package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/coder/websocket"

	"github.com/sentineldr/core/internal/broadcast"
	"github.com/sentineldr/core/internal/coordinator"
	"github.com/sentineldr/core/internal/telemetry"
)

// hub serves the dashboard's single WebSocket feed: every connection gets
// the current graph snapshot and simulation status on connect, then
// receives every fabric broadcast, and may push human-decision and
// simulation-control frames back.
type hub struct {
	coordinator *coordinator.Coordinator
	log         telemetry.Logger
}

func newHub(c *coordinator.Coordinator, log telemetry.Logger) *hub {
	if log == nil {
		log = telemetry.NewNoopLogger()
	}
	return &hub{coordinator: c, log: log}
}

// connSink adapts one live WebSocket connection into a broadcast.Sink,
// serializing writes onto a buffered channel so a slow client can't block
// the fabric's fan-out goroutine.
type connSink struct {
	out chan broadcast.Message
}

func newConnSink() *connSink {
	return &connSink{out: make(chan broadcast.Message, 64)}
}

func (s *connSink) Send(ctx context.Context, msg broadcast.Message) error {
	select {
	case s.out <- msg:
		return nil
	default:
		return errors.New("connection send buffer full")
	}
}

// inboundFrame is a client->server message: {type, payload}.
type inboundFrame struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type humanDecisionPayload struct {
	ItemType  string `json:"item_type"` // "contradiction" or "action"
	ItemID    string `json:"item_id"`
	Decision  string `json:"decision"`
	Reason    string `json:"reason"`
	DecidedBy string `json:"decided_by"`
}

type startSimulationPayload struct {
	ScenarioID string  `json:"scenario_id"`
	Speed      float64 `json:"speed"`
}

func (h *hub) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{OriginPatterns: []string{"*"}})
	if err != nil {
		h.log.Warn(r.Context(), "websocket accept failed", "error", err.Error())
		return
	}
	defer conn.CloseNow()

	ctx := r.Context()
	sink := newConnSink()
	id := h.coordinator.Broadcast.Subscribe(sink)
	defer h.coordinator.Broadcast.Unsubscribe(id)

	if err := h.sendInitialState(ctx, conn); err != nil {
		return
	}

	done := make(chan struct{})
	go h.writePump(ctx, conn, sink, done)
	h.readPump(ctx, conn)
	close(done)
}

func (h *hub) sendInitialState(ctx context.Context, conn *websocket.Conn) error {
	if err := writeFrame(ctx, conn, "initial_state", h.coordinator.Graph.Snapshot()); err != nil {
		return err
	}
	return writeFrame(ctx, conn, "sim_status", h.coordinator.SimulationStatus())
}

// writePump drains the connection's sink buffer to the socket until the
// connection's read loop signals it's done.
func (h *hub) writePump(ctx context.Context, conn *websocket.Conn, sink *connSink, done chan struct{}) {
	for {
		select {
		case <-done:
			return
		case msg := <-sink.out:
			data, err := json.Marshal(msg)
			if err != nil {
				continue
			}
			if err := conn.Write(ctx, websocket.MessageText, data); err != nil {
				return
			}
		}
	}
}

// readPump handles client->server control frames until the connection
// closes or a read fails.
func (h *hub) readPump(ctx context.Context, conn *websocket.Conn) {
	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			return
		}
		var frame inboundFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			h.log.Warn(ctx, "websocket frame unparseable", "error", err.Error())
			continue
		}
		h.dispatch(ctx, conn, frame)
	}
}

func (h *hub) dispatch(ctx context.Context, conn *websocket.Conn, frame inboundFrame) {
	switch frame.Type {
	case "human_decision":
		h.handleHumanDecision(ctx, frame.Payload)
	case "request_refresh":
		_ = writeFrame(ctx, conn, "graph_update", h.coordinator.Graph.Snapshot())
	case "start_simulation":
		var p startSimulationPayload
		_ = json.Unmarshal(frame.Payload, &p)
		speed := p.Speed
		if speed <= 0 {
			speed = 1.0
		}
		h.coordinator.StartSimulation(p.ScenarioID, speed)
	case "pause_simulation":
		h.coordinator.PauseSimulation()
	case "resume_simulation":
		h.coordinator.ResumeSimulation()
	case "reset_simulation":
		h.coordinator.ResetSimulation(ctx)
	default:
		h.log.Warn(ctx, "unknown websocket frame type", "type", frame.Type)
	}
}

func (h *hub) handleHumanDecision(ctx context.Context, raw json.RawMessage) {
	var p humanDecisionPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		h.log.Warn(ctx, "human_decision frame unparseable", "error", err.Error())
		return
	}
	if p.DecidedBy == "" {
		p.DecidedBy = "operator"
	}
	switch p.ItemType {
	case "contradiction":
		if _, err := h.coordinator.ResolveContradiction(ctx, p.ItemID, p.Decision, p.DecidedBy); err != nil {
			h.log.Warn(ctx, "resolve contradiction via websocket failed", "error", err.Error())
		}
	case "action":
		var err error
		if p.Decision == "reject" {
			_, err = h.coordinator.RejectAction(ctx, p.ItemID, p.Reason)
		} else {
			_, err = h.coordinator.ApproveAction(ctx, p.ItemID)
		}
		if err != nil {
			h.log.Warn(ctx, "decide action via websocket failed", "error", err.Error())
		}
	default:
		h.log.Warn(ctx, "human_decision frame has unknown item_type", "item_type", p.ItemType)
	}
}

func writeFrame(ctx context.Context, conn *websocket.Conn, msgType string, payload any) error {
	msg := broadcast.Message{Type: msgType, Payload: payload, Timestamp: time.Now().UTC()}
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return conn.Write(ctx, websocket.MessageText, data)
}
