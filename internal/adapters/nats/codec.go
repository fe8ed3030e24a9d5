package natsadapter

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/samirrijal/schoolnav/internal/core/domain"
)

// Announcements travel as protobuf Structs so speech devices can decode
// them without our Go types.

// EncodeAnnouncement serializes a to protobuf wire format.
func EncodeAnnouncement(a *domain.Announcement) ([]byte, error) {
	s, err := structpb.NewStruct(map[string]any{
		"queue_id": a.QueueID,
		"sequence": a.Sequence,
		"text":     a.Text,
		"language": string(a.Language),
	})
	if err != nil {
		return nil, fmt.Errorf("build announcement: %w", err)
	}
	return proto.Marshal(s)
}

// DecodeAnnouncement parses the output of EncodeAnnouncement.
func DecodeAnnouncement(data []byte) (*domain.Announcement, error) {
	var s structpb.Struct
	if err := proto.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode announcement: %w", err)
	}
	f := s.GetFields()
	return &domain.Announcement{
		QueueID:  f["queue_id"].GetStringValue(),
		Sequence: int(f["sequence"].GetNumberValue()),
		Text:     f["text"].GetStringValue(),
		Language: domain.Language(f["language"].GetStringValue()),
	}, nil
}

// AnnouncementJSON converts a wire announcement to JSON for browser clients.
func AnnouncementJSON(data []byte) ([]byte, error) {
	var s structpb.Struct
	if err := proto.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode announcement: %w", err)
	}
	return protojson.Marshal(&s)
}
