package http

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/nats-io/nats.go"

	natsadapter "github.com/samirrijal/schoolnav/internal/adapters/nats"
	"github.com/samirrijal/schoolnav/internal/pkg/metrics"
)

// wsMessage is sent from client to subscribe/unsubscribe to feeds.
type wsMessage struct {
	Action   string `json:"action"`   // "subscribe" | "unsubscribe"
	Channel  string `json:"channel"`  // "voice" | "map" (default: voice)
	Language string `json:"language"` // voice only, "" = all
}

// wsSubject maps a client request to the NATS subject it follows.
// The second result reports whether payloads are protobuf announcements.
func wsSubject(m wsMessage) (string, bool, bool) {
	switch m.Channel {
	case "", "voice":
		if m.Language != "" {
			return natsadapter.SubjectAnnouncement + "." + m.Language, true, true
		}
		return natsadapter.SubjectAnnouncement + ".>", true, true
	case "map":
		return "map.location.>", false, true
	default:
		return "", false, false
	}
}

// WebSocketHandler relays spoken announcements and map events to browsers.
// Clients send JSON: {"action":"subscribe","channel":"voice","language":"th"}.
// Every connection starts subscribed to all announcements.
func WebSocketHandler(nc *nats.Conn) func(*websocket.Conn) {
	return func(c *websocket.Conn) {
		defer c.Close()

		metrics.ActiveWebSockets.Inc()
		defer metrics.ActiveWebSockets.Dec()

		remoteAddr := c.RemoteAddr().String()
		slog.Debug("ws client connected", "remote", remoteAddr)

		var mu sync.Mutex
		subs := make(map[string]*nats.Subscription)

		write := func(data []byte) error {
			mu.Lock()
			defer mu.Unlock()
			return c.WriteMessage(websocket.TextMessage, data)
		}
		writeJSON := func(v interface{}) error {
			data, err := json.Marshal(v)
			if err != nil {
				return err
			}
			return write(data)
		}
		relay := func(proto bool) nats.MsgHandler {
			return func(msg *nats.Msg) {
				data := msg.Data
				if proto {
					var err error
					if data, err = natsadapter.AnnouncementJSON(msg.Data); err != nil {
						slog.Warn("ws dropping malformed announcement", "subject", msg.Subject, "error", err)
						return
					}
				}
				_ = write(data)
			}
		}

		defaultSubject := natsadapter.SubjectAnnouncement + ".>"
		sub, err := nc.Subscribe(defaultSubject, relay(true))
		if err != nil {
			slog.Error("ws default subscribe failed", "error", err)
			return
		}
		subs[defaultSubject] = sub

		done := make(chan struct{})
		go func() {
			ticker := time.NewTicker(30 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					mu.Lock()
					err := c.WriteMessage(websocket.PingMessage, nil)
					mu.Unlock()
					if err != nil {
						return
					}
				case <-done:
					return
				}
			}
		}()

		for {
			_, msg, err := c.ReadMessage()
			if err != nil {
				break
			}

			var m wsMessage
			if err := json.Unmarshal(msg, &m); err != nil {
				_ = writeJSON(map[string]string{"error": "invalid JSON"})
				continue
			}

			subject, isProto, ok := wsSubject(m)
			if !ok {
				_ = writeJSON(map[string]string{"error": "unknown channel: " + m.Channel})
				continue
			}

			switch m.Action {
			case "subscribe":
				if _, exists := subs[subject]; exists {
					_ = writeJSON(map[string]string{"status": "already subscribed", "subject": subject})
					continue
				}
				s, err := nc.Subscribe(subject, relay(isProto))
				if err != nil {
					_ = writeJSON(map[string]string{"error": "subscribe failed: " + err.Error()})
					continue
				}
				subs[subject] = s
				_ = writeJSON(map[string]string{"status": "subscribed", "subject": subject})

			case "unsubscribe":
				if s, exists := subs[subject]; exists {
					_ = s.Unsubscribe()
					delete(subs, subject)
					_ = writeJSON(map[string]string{"status": "unsubscribed", "subject": subject})
				} else {
					_ = writeJSON(map[string]string{"error": "not subscribed to " + subject})
				}

			default:
				_ = writeJSON(map[string]string{"error": "unknown action: " + m.Action})
			}
		}

		close(done)
		for _, s := range subs {
			_ = s.Unsubscribe()
		}
		slog.Debug("ws client disconnected", "remote", remoteAddr)
	}
}
