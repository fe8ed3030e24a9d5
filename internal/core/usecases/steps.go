package usecases

import (
	"errors"
	"fmt"

	"github.com/samirrijal/schoolnav/internal/core/domain"
	"github.com/samirrijal/schoolnav/internal/core/ports"
	"github.com/samirrijal/schoolnav/internal/pkg/geospatial"
)

// ErrRouteUnavailable is returned when a path has fewer than two points.
var ErrRouteUnavailable = errors.New("route unavailable")

// minWalkSegment is the shortest straight stretch, in meters, worth its own step.
const minWalkSegment = 5

// buildingApproach is the nominal distance shown on the building step.
const buildingApproach = "10m"

const (
	ProviderDetailed = "detailed"
	ProviderFallback = "fallback"
)

// DetailedProvider builds turn-by-turn steps from route geometry.
type DetailedProvider struct {
	buildings ports.BuildingNamer
}

// NewDetailedProvider creates a DetailedProvider.
func NewDetailedProvider(buildings ports.BuildingNamer) *DetailedProvider {
	return &DetailedProvider{buildings: buildings}
}

func (p *DetailedProvider) Name() string { return ProviderDetailed }

// Steps returns ErrRouteUnavailable when points has fewer than two entries.
func (p *DetailedProvider) Steps(points domain.PathPoints, dest domain.Destination, start *domain.StartPoint, lang domain.Language) ([]domain.NavigationStep, error) {
	if len(points) < 2 {
		return nil, ErrRouteUnavailable
	}
	ph := phrasesFor(lang)
	b := &stepBuilder{}

	b.add(domain.NavigationStep{Text: ph.start, Distance: "0m", Icon: IconStart, Type: domain.StepStart})

	first := geospatial.SegmentDistance(points[0], points[1])
	b.add(domain.NavigationStep{
		Text:     ph.walkFirst(InitialDirection(points[0], points[1], lang), first),
		Distance: fmt.Sprintf("%dm", first),
		Icon:     IconWalk,
		Type:     domain.StepWalk,
	})

	turns := geospatial.AnalyzeTurns(points)
	last := geospatial.SegmentDistance(points[len(points)-2], points[len(points)-1])
	acc := 0
	for i, t := range turns {
		acc += t.DistanceFromPrev
		if t.TurnType == domain.TurnStraight {
			continue
		}

		text, icon := ph.turnRight, IconRight
		if t.TurnType == domain.TurnLeft {
			text, icon = ph.turnLeft, IconLeft
		}
		b.add(domain.NavigationStep{
			Text:     text,
			Distance: fmt.Sprintf("%dm", acc),
			Icon:     icon,
			Type:     domain.StepTurn,
			TurnType: t.TurnType,
		})

		if ahead := walkAhead(turns, i, last); ahead > minWalkSegment {
			b.add(domain.NavigationStep{
				Text:     ph.walkStraight(ahead),
				Distance: fmt.Sprintf("%dm", ahead),
				Icon:     IconStraight,
				Type:     domain.StepWalk,
			})
		}
		acc = 0
	}

	appendArrival(b, ph, p.buildings, dest, start, lang)
	return b.steps, nil
}

// walkAhead measures the straight stretch after turns[i]. With a later turn
// at j it sums the records strictly between i and j; otherwise it sums every
// remaining record and the final segment.
func walkAhead(turns []domain.TurnRecord, i, lastSegment int) int {
	next := -1
	for j := i + 1; j < len(turns); j++ {
		if turns[j].TurnType != domain.TurnStraight {
			next = j
			break
		}
	}

	sum := 0
	if next < 0 {
		for _, t := range turns[i+1:] {
			sum += t.DistanceFromPrev
		}
		return sum + lastSegment
	}
	for _, t := range turns[i+1 : next] {
		sum += t.DistanceFromPrev
	}
	return sum
}

// FallbackProvider produces the short, geometry-free sequence used when no
// route is drawn. It never fails.
type FallbackProvider struct {
	buildings ports.BuildingNamer
}

// NewFallbackProvider creates a FallbackProvider.
func NewFallbackProvider(buildings ports.BuildingNamer) *FallbackProvider {
	return &FallbackProvider{buildings: buildings}
}

func (p *FallbackProvider) Name() string { return ProviderFallback }

func (p *FallbackProvider) Steps(_ domain.PathPoints, dest domain.Destination, start *domain.StartPoint, lang domain.Language) ([]domain.NavigationStep, error) {
	ph := phrasesFor(lang)
	b := &stepBuilder{}
	b.add(domain.NavigationStep{Text: ph.start, Distance: "0m", Icon: IconStart, Type: domain.StepStart})
	appendArrival(b, ph, p.buildings, dest, start, lang)
	return b.steps, nil
}

// SelectProvider picks the geometric provider for usable paths and the
// fallback otherwise.
func SelectProvider(points domain.PathPoints, detailed, fallback ports.NavigationStepProvider) ports.NavigationStepProvider {
	if len(points) >= 2 {
		return detailed
	}
	return fallback
}

// appendArrival adds the building, floor and enter steps shared by every provider.
func appendArrival(b *stepBuilder, ph *phrasebook, names ports.BuildingNamer, dest domain.Destination, start *domain.StartPoint, lang domain.Language) {
	b.add(domain.NavigationStep{
		Text:     ph.lookFor(buildingName(names, dest.Building, lang)),
		Distance: buildingApproach,
		Icon:     IconBuilding,
		Type:     domain.StepBuilding,
	})
	b.add(floorStep(ph, start.ResolvedFloor(), destFloor(dest)))
	b.add(domain.NavigationStep{Text: ph.enter(dest.Name), Distance: "0m", Icon: IconEnter, Type: domain.StepEnter})
}

func destFloor(dest domain.Destination) int {
	if dest.Floor != 0 {
		return dest.Floor
	}
	return 1
}

func floorStep(ph *phrasebook, from, to int) domain.NavigationStep {
	change := from != to
	step := domain.NavigationStep{Type: domain.StepFloor, NeedsFloorChange: &change}

	diff := to - from
	switch {
	case diff > 0:
		step.Text = ph.floorUp(to, diff)
		step.Distance = ph.floorCount(diff)
		step.Icon = IconStairs
	case diff < 0:
		step.Text = ph.floorDown(to, -diff)
		step.Distance = ph.floorCount(-diff)
		step.Icon = IconStairs
	default:
		step.Text = ph.sameFloor(to)
		step.Distance = "0m"
		step.Icon = IconSameFl
	}
	return step
}

func buildingName(names ports.BuildingNamer, id string, lang domain.Language) string {
	if names != nil {
		if n := names.BuildingName(id, lang); n != "" {
			return n
		}
	}
	ph := phrasesFor(lang)
	if id == "" {
		return ph.unknownBldg
	}
	return ph.namedBldg(id)
}

// stepBuilder numbers steps 1..N as they are appended.
type stepBuilder struct {
	steps []domain.NavigationStep
}

func (b *stepBuilder) add(s domain.NavigationStep) {
	s.Step = len(b.steps) + 1
	b.steps = append(b.steps, s)
}
