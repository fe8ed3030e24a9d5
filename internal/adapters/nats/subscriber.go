package natsadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/samirrijal/schoolnav/internal/core/domain"
)

const (
	// queueAckWait bounds how long the server waits for any sign of life
	// from the narrator before redelivering a queue.
	queueAckWait = 30 * time.Second
	// queueHeartbeat must stay well under queueAckWait.
	queueHeartbeat = 10 * time.Second
)

// Subscriber implements ports.EventSubscriber using NATS JetStream.
type Subscriber struct {
	conn *nats.Conn
	js   nats.JetStreamContext
	subs []*nats.Subscription
}

// NewSubscriber creates a subscriber with its own NATS connection.
func NewSubscriber(url string) (*Subscriber, error) {
	conn, err := RawConn(url)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	js, err := conn.JetStream()
	if err != nil {
		return nil, fmt.Errorf("jetstream: %w", err)
	}
	return &Subscriber{conn: conn, js: js}, nil
}

// SubscribeVoiceQueues delivers queued narrations one at a time, in publish order.
// A narration may run longer than the ack wait; the message is kept alive
// with progress acks until the handler returns.
func (s *Subscriber) SubscribeVoiceQueues(ctx context.Context, handler func(ctx context.Context, q *domain.VoiceQueue) error) error {
	sub, err := s.js.Subscribe(SubjectVoiceQueue+".>", func(msg *nats.Msg) {
		handleVoiceQueue(ctx, msg, msg.Data, handler, queueHeartbeat)
	},
		nats.Durable("narrator"),
		nats.ManualAck(),
		nats.AckWait(queueAckWait),
		nats.MaxAckPending(1),
		nats.MaxDeliver(3),
	)
	if err != nil {
		return err
	}
	s.subs = append(s.subs, sub)
	return nil
}

// ackable is the part of *nats.Msg a queue delivery needs.
type ackable interface {
	Ack(opts ...nats.AckOpt) error
	Nak(opts ...nats.AckOpt) error
	Term(opts ...nats.AckOpt) error
	InProgress(opts ...nats.AckOpt) error
}

// handleVoiceQueue decodes one queue and runs handler, sending a progress
// ack every heartbeat so the server does not redeliver mid-narration.
// Handler errors are nak'd for redelivery.
func handleVoiceQueue(ctx context.Context, msg ackable, data []byte, handler func(ctx context.Context, q *domain.VoiceQueue) error, heartbeat time.Duration) {
	var q domain.VoiceQueue
	if err := json.Unmarshal(data, &q); err != nil {
		slog.Warn("dropping malformed voice queue", "error", err)
		_ = msg.Term()
		return
	}

	done := make(chan struct{})
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		ticker := time.NewTicker(heartbeat)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := msg.InProgress(); err != nil {
					slog.Warn("voice queue progress ack failed", "queue_id", q.ID, "error", err)
				}
			}
		}
	}()

	err := handler(ctx, &q)
	close(done)
	<-stopped

	if err != nil {
		slog.Warn("narration failed, requeueing", "queue_id", q.ID, "error", err)
		_ = msg.Nak()
		return
	}
	_ = msg.Ack()
}

// Close unsubscribes and drains.
func (s *Subscriber) Close() {
	for _, sub := range s.subs {
		_ = sub.Unsubscribe()
	}
	_ = s.conn.Drain()
}
