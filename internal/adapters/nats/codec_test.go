package natsadapter_test

import (
	"encoding/json"
	"testing"

	natsadapter "github.com/samirrijal/schoolnav/internal/adapters/nats"
	"github.com/samirrijal/schoolnav/internal/core/domain"
)

func TestAnnouncementWireFormat(t *testing.T) {
	in := &domain.Announcement{QueueID: "q-1", Sequence: 3, Text: "เลี้ยวซ้าย", Language: domain.LangThai}

	data, err := natsadapter.EncodeAnnouncement(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out, err := natsadapter.DecodeAnnouncement(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *out != *in {
		t.Fatalf("expected %+v, got %+v", in, out)
	}

	js, err := natsadapter.AnnouncementJSON(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(js, &m); err != nil {
		t.Fatalf("relay output is not JSON: %v", err)
	}
	if m["text"] != "เลี้ยวซ้าย" {
		t.Errorf("expected text to survive, got %v", m["text"])
	}
}

func TestDecodeAnnouncementRejectsGarbage(t *testing.T) {
	if _, err := natsadapter.DecodeAnnouncement([]byte{0xff, 0xff, 0xff}); err == nil {
		t.Fatal("expected error for invalid payload")
	}
}
