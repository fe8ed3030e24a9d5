package natsadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/samirrijal/schoolnav/internal/core/domain"
)

// Subjects used on the bus.
const (
	SubjectVoiceQueue      = "navigation.voice.queue"
	SubjectAnnouncement    = "navigation.voice.say"
	SubjectLocationUpdated = "map.location.updated"
	SubjectLocationsSynced = "map.location.synced"
)

// Publisher implements ports.EventPublisher using NATS JetStream.
type Publisher struct {
	conn *nats.Conn
	js   nats.JetStreamContext
}

// NewPublisher connects to NATS and enables JetStream.
func NewPublisher(url string) (*Publisher, error) {
	conn, err := RawConn(url)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	js, err := conn.JetStream()
	if err != nil {
		return nil, fmt.Errorf("jetstream: %w", err)
	}

	streams := []nats.StreamConfig{
		{
			Name:      "NAVIGATION_VOICE",
			Subjects:  []string{"navigation.voice.>"},
			Retention: nats.InterestPolicy,
			MaxAge:    15 * time.Minute,
			Storage:   nats.FileStorage,
		},
		{
			Name:      "MAP_EVENTS",
			Subjects:  []string{"map.location.>"},
			Retention: nats.LimitsPolicy,
			MaxAge:    24 * time.Hour,
			Storage:   nats.FileStorage,
		},
	}

	for _, cfg := range streams {
		if _, err := js.AddStream(&cfg); err != nil {
			// Stream may already exist; try update
			if _, err := js.UpdateStream(&cfg); err != nil {
				return nil, fmt.Errorf("ensure stream %s: %w", cfg.Name, err)
			}
		}
	}

	return &Publisher{conn: conn, js: js}, nil
}

func (p *Publisher) PublishVoiceQueue(ctx context.Context, q *domain.VoiceQueue) error {
	data, err := json.Marshal(q)
	if err != nil {
		return err
	}
	_, err = p.js.Publish(SubjectVoiceQueue+"."+q.ID, data, nats.Context(ctx))
	return err
}

func (p *Publisher) PublishAnnouncement(ctx context.Context, a *domain.Announcement) error {
	data, err := EncodeAnnouncement(a)
	if err != nil {
		return err
	}
	msg := nats.NewMsg(SubjectAnnouncement + "." + string(a.Language))
	msg.Data = data
	// Lets JetStream drop a redelivered activity's duplicate.
	msg.Header.Set(nats.MsgIdHdr, fmt.Sprintf("%s-%d", a.QueueID, a.Sequence))
	_, err = p.js.PublishMsg(msg, nats.Context(ctx))
	return err
}

func (p *Publisher) PublishLocationUpdated(ctx context.Context, loc *domain.Location) error {
	data, err := json.Marshal(loc)
	if err != nil {
		return err
	}
	_, err = p.js.Publish(SubjectLocationUpdated, data, nats.Context(ctx))
	return err
}

func (p *Publisher) PublishLocationsSynced(ctx context.Context, count int) error {
	data, err := json.Marshal(map[string]any{"count": count, "synced_at": time.Now().UTC()})
	if err != nil {
		return err
	}
	_, err = p.js.Publish(SubjectLocationsSynced, data, nats.Context(ctx))
	return err
}

// Close drains and closes the connection.
func (p *Publisher) Close() {
	_ = p.conn.Drain()
}

// RawConn creates a plain NATS connection for subscribing (e.g. WebSocket relay).
func RawConn(url string) (*nats.Conn, error) {
	return nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
}
