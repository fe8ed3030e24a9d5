package geospatial

import (
	"math"

	"github.com/samirrijal/schoolnav/internal/core/domain"
)

const (
	// DistanceScale converts drawing units to approximate meters.
	DistanceScale = 2.0
	// TurnThreshold is the dead zone, in degrees, inside which a bend counts as straight.
	TurnThreshold = 25.0
)

// Heading is a coarse screen-space direction.
type Heading int

const (
	HeadingRight Heading = iota
	HeadingLeft
	HeadingDown
	HeadingUp
)

func (h Heading) String() string {
	switch h {
	case HeadingRight:
		return "right"
	case HeadingLeft:
		return "left"
	case HeadingDown:
		return "down"
	default:
		return "up"
	}
}

// SegmentDistance returns the scaled length of p1→p2 rounded to whole meters.
func SegmentDistance(p1, p2 domain.Point) int {
	return int(math.Round(math.Hypot(p2.X-p1.X, p2.Y-p1.Y) * DistanceScale))
}

// InitialHeading classifies the first segment. Screen y grows downward.
// The horizontal test is strict, so a perfect diagonal is vertical.
func InitialHeading(p1, p2 domain.Point) Heading {
	dx := p2.X - p1.X
	dy := p2.Y - p1.Y
	if math.Abs(dx) > math.Abs(dy) {
		if dx > 0 {
			return HeadingRight
		}
		return HeadingLeft
	}
	if dy > 0 {
		return HeadingDown
	}
	return HeadingUp
}

// Bearing returns the angle of p1→p2 in degrees, in (-180, 180].
func Bearing(p1, p2 domain.Point) float64 {
	return math.Atan2(p2.Y-p1.Y, p2.X-p1.X) * 180 / math.Pi
}

// NormalizeAngle folds a bearing difference into (-180, 180].
// An exact U-turn therefore comes out as +180 and classifies as a right
// turn; the browser map kept -180 and called it left.
func NormalizeAngle(deg float64) float64 {
	for deg > 180 {
		deg -= 360
	}
	for deg <= -180 {
		deg += 360
	}
	return deg
}

// ClassifyTurn maps a signed turn angle to a turn type using TurnThreshold.
func ClassifyTurn(angle float64) domain.TurnType {
	switch {
	case angle > TurnThreshold:
		return domain.TurnRight
	case angle < -TurnThreshold:
		return domain.TurnLeft
	default:
		return domain.TurnStraight
	}
}

// AnalyzeTurns returns one record per interior point of the path.
// Paths shorter than three points have no interior and yield nil.
func AnalyzeTurns(points domain.PathPoints) []domain.TurnRecord {
	if len(points) < 3 {
		return nil
	}
	turns := make([]domain.TurnRecord, 0, len(points)-2)
	for i := 1; i < len(points)-1; i++ {
		prev, curr, next := points[i-1], points[i], points[i+1]
		angle := NormalizeAngle(Bearing(curr, next) - Bearing(prev, curr))
		turns = append(turns, domain.TurnRecord{
			PointIndex:       i,
			Point:            curr,
			TurnAngle:        angle,
			TurnType:         ClassifyTurn(angle),
			DistanceFromPrev: SegmentDistance(prev, curr),
		})
	}
	return turns
}
