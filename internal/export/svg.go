// Package export writes runs to vector formats for use outside the
// terminal.
package export

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/san-kum/pointmass/internal/viz"
)

type Point struct {
	X, Y float64
}

// GroundTrackPoints maps a track onto the SVG plane: east to the right,
// north up.
func GroundTrackPoints(track []viz.TrackPoint) []Point {
	pts := make([]Point, len(track))
	for i, p := range track {
		pts[i] = Point{X: p.East, Y: p.North}
	}
	return pts
}

// SeriesPoints pairs each sample with its time.
func SeriesPoints(times, values []float64) []Point {
	n := min(len(times), len(values))
	pts := make([]Point, n)
	for i := 0; i < n; i++ {
		pts[i] = Point{X: times[i], Y: values[i]}
	}
	return pts
}

// PolylineSVG draws points as a single path scaled into width x height
// with 10% padding. With equalAspect the two axes share one scale, which
// keeps a ground track's turns circular.
func PolylineSVG(w io.Writer, points []Point, width, height int, strokeColor string, equalAspect bool) error {
	if len(points) < 2 {
		return fmt.Errorf("export: need at least 2 points, got %d", len(points))
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	if equalAspect {
		r := math.Max(rangeX, rangeY)
		minX -= (r - rangeX) / 2
		minY -= (r - rangeY) / 2
		rangeX, rangeY = r, r
	}
	minX -= rangeX * 0.1
	minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor)

	for i, p := range points {
		x := (p.X - minX) / rangeX * float64(width)
		y := float64(height) - (p.Y-minY)/rangeY*float64(height)

		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}

	sb.WriteString(`"/>
</svg>
`)
	_, err := io.WriteString(w, sb.String())
	return err
}
