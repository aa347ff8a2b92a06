package broadcast

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"goa.design/pulse/streaming"
)

// pulseStream is the subset of a goa.design/pulse stream handle PulseSink
// needs: publish one named event with a payload.
type pulseStream interface {
	Add(ctx context.Context, event string, payload []byte) (string, error)
}

// PulseSink publishes broadcast messages to a single Redis-backed Pulse
// stream, letting multiple coordinator processes share one dashboard fan-out
// instead of each holding its own in-process WebSocket registry. Adapted from
// features/stream/pulse/clients/pulse/client.go and features/stream/pulse/sink.go,
// generalized from run-event envelopes to graph-update/alert/recommendation
// envelopes.
type PulseSink struct {
	stream     pulseStream
	streamName string
}

// NewPulseSink opens (or creates) the named Pulse stream on the given Redis
// client and returns a Sink that publishes every broadcast Message to it.
func NewPulseSink(redisClient *redis.Client, streamName string) (*PulseSink, error) {
	if streamName == "" {
		streamName = "sentineldr/dashboard"
	}
	stream, err := streaming.NewStream(streamName, redisClient)
	if err != nil {
		return nil, err
	}
	return &PulseSink{stream: stream, streamName: streamName}, nil
}

// Send publishes the message as a JSON-encoded Pulse stream entry.
func (s *PulseSink) Send(ctx context.Context, msg Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	_, err = s.stream.Add(ctx, msg.Type, payload)
	return err
}
