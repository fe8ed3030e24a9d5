package domain

// Language selects the phrase table for generated text.
type Language string

const (
	LangThai    Language = "th"
	LangEnglish Language = "en"
)

// ParseLanguage maps "th" to Thai and anything else to English.
func ParseLanguage(s string) Language {
	if s == string(LangThai) {
		return LangThai
	}
	return LangEnglish
}

// Point is a coordinate in the map's drawing space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PathPoints is an ordered polyline. Two or more points make a usable route.
type PathPoints []Point

// TurnType classifies the direction change at an interior path point.
type TurnType string

const (
	TurnLeft     TurnType = "left"
	TurnRight    TurnType = "right"
	TurnStraight TurnType = "straight"
)

// TurnRecord describes the turn taken at Point, which is PathPoints[PointIndex].
type TurnRecord struct {
	PointIndex       int      `json:"pointIndex"`
	Point            Point    `json:"point"`
	TurnAngle        float64  `json:"turnAngle"`
	TurnType         TurnType `json:"turnType"`
	DistanceFromPrev int      `json:"distanceFromPrev"`
}

// StepType is the kind of instruction a NavigationStep carries.
type StepType string

const (
	StepStart    StepType = "start"
	StepWalk     StepType = "walk"
	StepTurn     StepType = "turn"
	StepBuilding StepType = "building"
	StepFloor    StepType = "floor"
	StepEnter    StepType = "enter"
)

// NavigationStep is one human-readable instruction.
// TurnType is set only on turn steps and NeedsFloorChange only on floor steps.
type NavigationStep struct {
	Step             int      `json:"step"`
	Text             string   `json:"text"`
	Distance         string   `json:"distance"`
	Icon             string   `json:"icon"`
	Type             StepType `json:"type"`
	TurnType         TurnType `json:"turnType,omitempty"`
	NeedsFloorChange *bool    `json:"needsFloorChange,omitempty"`
}

// Destination is the room the user is walking to.
// Floor 0 means unknown and is treated as floor 1.
type Destination struct {
	Name     string `json:"name"`
	Building string `json:"building"`
	Floor    int    `json:"floor,omitempty"`
}

// StartPoint is where the user stands. Zero floors mean unset.
type StartPoint struct {
	Floor        int `json:"floor,omitempty"`
	DefaultFloor int `json:"defaultFloor,omitempty"`
}

// ResolvedFloor returns Floor, else DefaultFloor, else 1.
// A nil start point resolves to floor 1.
func (s *StartPoint) ResolvedFloor() int {
	switch {
	case s == nil:
		return 1
	case s.Floor != 0:
		return s.Floor
	case s.DefaultFloor != 0:
		return s.DefaultFloor
	default:
		return 1
	}
}

// RouteContext carries everything needed to describe one route.
// It is passed explicitly instead of living in shared state.
type RouteContext struct {
	Path        string      `json:"path"`
	Destination Destination `json:"destination"`
	Start       *StartPoint `json:"start,omitempty"`
	Language    Language    `json:"language"`
}

// VoiceQueue is the ordered list of announcements for one route.
type VoiceQueue struct {
	ID            string   `json:"id"`
	Language      Language `json:"language"`
	Provider      string   `json:"provider"`
	Announcements []string `json:"announcements"`
}

// Directions is the full answer to a navigation request.
type Directions struct {
	Steps       []NavigationStep `json:"steps"`
	Voice       VoiceQueue       `json:"voice"`
	Provider    string           `json:"provider"`
	Destination Destination      `json:"destination"`
	Language    Language         `json:"language"`
}

// Announcement is a single utterance handed to the speech subsystem.
type Announcement struct {
	QueueID  string   `json:"queue_id"`
	Sequence int      `json:"sequence"`
	Text     string   `json:"text"`
	Language Language `json:"language"`
}
