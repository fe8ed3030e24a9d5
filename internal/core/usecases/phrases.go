package usecases

import (
	"fmt"

	"github.com/samirrijal/schoolnav/internal/core/domain"
	"github.com/samirrijal/schoolnav/internal/pkg/geospatial"
)

// Symbolic icon identifiers understood by the map UI.
const (
	IconStart    = "fa-location-dot"
	IconWalk     = "fa-person-walking"
	IconStraight = "fa-arrow-up"
	IconLeft     = "fa-arrow-left"
	IconRight    = "fa-arrow-right"
	IconBuilding = "fa-building"
	IconStairs   = "fa-stairs"
	IconSameFl   = "fa-check"
	IconEnter    = "fa-door-open"
)

// phrasebook holds every user-facing sentence for one language.
type phrasebook struct {
	start        string
	headings     map[geospatial.Heading]string
	walkFirst    func(dir string, meters int) string
	walkStraight func(meters int) string
	turnLeft     string
	turnRight    string
	lookFor      func(building string) string
	floorUp      func(floor, n int) string
	floorDown    func(floor, n int) string
	sameFloor    func(floor int) string
	floorCount   func(n int) string
	enter        func(name string) string
	arrived      string
	unknownBldg  string
	namedBldg    func(id string) string
}

var thai = phrasebook{
	start: "เริ่มต้นจากจุดเริ่มต้น",
	headings: map[geospatial.Heading]string{
		geospatial.HeadingRight: "ไปทางขวา",
		geospatial.HeadingLeft:  "ไปทางซ้าย",
		geospatial.HeadingDown:  "ลงด้านล่าง",
		geospatial.HeadingUp:    "ขึ้นด้านบน",
	},
	walkFirst:    func(dir string, m int) string { return fmt.Sprintf("เดิน%s ประมาณ %d เมตร", dir, m) },
	walkStraight: func(m int) string { return fmt.Sprintf("เดินตรงไป %d เมตร", m) },
	turnLeft:     "เลี้ยวซ้าย",
	turnRight:    "เลี้ยวขวา",
	lookFor:      func(b string) string { return "มองหา " + b },
	floorUp: func(f, n int) string {
		if n > 2 {
			return fmt.Sprintf("ขึ้นลิฟต์หรือบันไดไปชั้น %d (%d ชั้น)", f, n)
		}
		return fmt.Sprintf("ขึ้นบันไดไปชั้น %d", f)
	},
	floorDown: func(f, n int) string {
		if n > 2 {
			return fmt.Sprintf("ลงลิฟต์หรือบันไดไปชั้น %d (%d ชั้น)", f, n)
		}
		return fmt.Sprintf("ลงบันไดไปชั้น %d", f)
	},
	sameFloor:   func(f int) string { return fmt.Sprintf("ห้องอยู่ชั้น %d", f) },
	floorCount:  func(n int) string { return fmt.Sprintf("%d ชั้น", n) },
	enter:       func(name string) string { return "เข้าสู่ " + name },
	arrived:     "ถึงจุดหมายแล้ว การนำทางเสร็จสิ้น",
	unknownBldg: "อาคาร",
	namedBldg:   func(id string) string { return "อาคาร " + id },
}

var english = phrasebook{
	start: "Start from starting point",
	headings: map[geospatial.Heading]string{
		geospatial.HeadingRight: "to the right",
		geospatial.HeadingLeft:  "to the left",
		geospatial.HeadingDown:  "downward",
		geospatial.HeadingUp:    "upward",
	},
	walkFirst:    func(dir string, m int) string { return fmt.Sprintf("Walk %s approximately %d meters", dir, m) },
	walkStraight: func(m int) string { return fmt.Sprintf("Walk straight %d meters", m) },
	turnLeft:     "Turn left",
	turnRight:    "Turn right",
	lookFor:      func(b string) string { return "Look for " + b },
	floorUp: func(f, n int) string {
		if n > 2 {
			return fmt.Sprintf("Take elevator or stairs to floor %d (%d floors up)", f, n)
		}
		return fmt.Sprintf("Go up stairs to floor %d", f)
	},
	floorDown: func(f, n int) string {
		if n > 2 {
			return fmt.Sprintf("Take elevator or stairs to floor %d (%d floors down)", f, n)
		}
		return fmt.Sprintf("Go down stairs to floor %d", f)
	},
	sameFloor:   func(f int) string { return fmt.Sprintf("Room is on floor %d", f) },
	floorCount:  func(n int) string { return fmt.Sprintf("%d floor(s)", n) },
	enter:       func(name string) string { return "Enter " + name },
	arrived:     "Destination reached. Navigation complete",
	unknownBldg: "the building",
	namedBldg:   func(id string) string { return "Building " + id },
}

func phrasesFor(lang domain.Language) *phrasebook {
	if lang == domain.LangThai {
		return &thai
	}
	return &english
}

// InitialDirection describes the first segment's heading in the given language.
func InitialDirection(p1, p2 domain.Point, lang domain.Language) string {
	return phrasesFor(lang).headings[geospatial.InitialHeading(p1, p2)]
}

// ClosingAnnouncement is the final item of every voice queue.
func ClosingAnnouncement(lang domain.Language) string {
	return phrasesFor(lang).arrived
}
