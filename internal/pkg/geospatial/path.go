package geospatial

import (
	"regexp"
	"strconv"

	"github.com/samirrijal/schoolnav/internal/core/domain"
)

// pathCommand matches absolute move-to and line-to commands with one
// coordinate pair each, e.g. "M 10 20", "L30,40", "M-5 2.5".
var pathCommand = regexp.MustCompile(`([ML])\s*(-?[\d.]+)[\s,]+(-?[\d.]+)`)

// ExtractPathPoints parses an SVG-style path description into points, in
// source order. Curve and relative commands are ignored, as are pairs whose
// numbers fail to parse. Input without any command yields an empty slice.
func ExtractPathPoints(d string) domain.PathPoints {
	matches := pathCommand.FindAllStringSubmatch(d, -1)
	points := make(domain.PathPoints, 0, len(matches))
	for _, m := range matches {
		x, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			continue
		}
		y, err := strconv.ParseFloat(m[3], 64)
		if err != nil {
			continue
		}
		points = append(points, domain.Point{X: x, Y: y})
	}
	return points
}
