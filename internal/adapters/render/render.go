// Package render maps navigation steps to display rows and writes them to
// a RenderTarget. The mapping is pure; targets own all output.
package render

import (
	"github.com/samirrijal/schoolnav/internal/core/domain"
)

// Highlight classes for steps that deserve extra attention.
const (
	ClassTurn        = "turn-step"
	ClassFloorChange = "floor-change-step"
)

const defaultColor = "#666"

// Row is one rendered step.
type Row struct {
	Number    int    `json:"number"`
	Icon      string `json:"icon"`
	Color     string `json:"color"`
	Text      string `json:"text"`
	Distance  string `json:"distance"`
	Highlight string `json:"highlight,omitempty"`
	SpeakText string `json:"speak_text"`
}

// RenderTarget receives rendered output.
type RenderTarget interface {
	Title(text string) error
	Row(r Row) error
	Notice(text string) error
}

// StepColor returns the accent color for a step.
func StepColor(t domain.StepType, turn domain.TurnType) string {
	switch t {
	case domain.StepStart, domain.StepEnter:
		return "#4CAF50"
	case domain.StepWalk:
		return "#2196F3"
	case domain.StepTurn:
		if turn == domain.TurnLeft {
			return "#FF9800"
		}
		return "#FF5722"
	case domain.StepBuilding:
		return "#9C27B0"
	case domain.StepFloor:
		return "#FFC107"
	default:
		return defaultColor
	}
}

func highlight(s domain.NavigationStep) string {
	switch {
	case s.Type == domain.StepTurn:
		return ClassTurn
	case s.Type == domain.StepFloor && s.NeedsFloorChange != nil && *s.NeedsFloorChange:
		return ClassFloorChange
	default:
		return ""
	}
}

// Rows maps steps to rows without side effects.
func Rows(steps []domain.NavigationStep) []Row {
	rows := make([]Row, len(steps))
	for i, s := range steps {
		rows[i] = Row{
			Number:    s.Step,
			Icon:      s.Icon,
			Color:     StepColor(s.Type, s.TurnType),
			Text:      s.Text,
			Distance:  s.Distance,
			Highlight: highlight(s),
			SpeakText: s.Text,
		}
	}
	return rows
}

// Title returns the heading shown above the step list.
func Title(lang domain.Language) string {
	if lang == domain.LangThai {
		return "ขั้นตอนการเดินทาง"
	}
	return "Navigation Steps"
}

// NoStartNotice is shown instead of steps until a start point is chosen.
func NoStartNotice(lang domain.Language) string {
	if lang == domain.LangThai {
		return "คลิกที่แผนที่เพื่อตั้งจุดเริ่มต้นก่อน"
	}
	return "Click on map to set starting point first"
}

// Render writes the title and one row per step.
func Render(t RenderTarget, steps []domain.NavigationStep, lang domain.Language) error {
	if err := t.Title(Title(lang)); err != nil {
		return err
	}
	for _, r := range Rows(steps) {
		if err := t.Row(r); err != nil {
			return err
		}
	}
	return nil
}

// RenderNoStart writes the prompt asking the user to pick a start point.
func RenderNoStart(t RenderTarget, lang domain.Language) error {
	return t.Notice(NoStartNotice(lang))
}
