// Package measure computes derived measurements over normalized
// annotation geometry: segment and polyline lengths, enclosed area,
// bounding boxes and centroids. All inputs are pixel-space points;
// lengths can be scaled to microns with the slide's resolution.
package measure

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"ndpslide/internal/models"
)

// SegmentLength returns the pixel-space length of a linear
// measurement. A measurement without its two endpoints yields 0.
func SegmentLength(lm models.LinearMeasure) float64 {
	if len(lm.Points) != 2 || len(lm.Points[0]) == 0 || len(lm.Points[1]) == 0 {
		return 0
	}
	a := lm.Points[0][0]
	b := lm.Points[1][0]
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// PolylineLength returns the total pixel-space length of a polyline.
// When closed is true the segment from the last point back to the
// first is included.
func PolylineLength(pts []models.Point, closed bool) float64 {
	if len(pts) < 2 {
		return 0
	}
	var total float64
	for i := 1; i < len(pts); i++ {
		total += math.Hypot(pts[i].X-pts[i-1].X, pts[i].Y-pts[i-1].Y)
	}
	if closed {
		last := pts[len(pts)-1]
		total += math.Hypot(pts[0].X-last.X, pts[0].Y-last.Y)
	}
	return total
}

// Area returns the pixel-space area enclosed by a polygon, computed
// with the shoelace formula. Fewer than three points enclose nothing.
func Area(pts []models.Point) float64 {
	if len(pts) < 3 {
		return 0
	}
	var sum float64
	for i := range pts {
		j := (i + 1) % len(pts)
		sum += pts[i].X*pts[j].Y - pts[j].X*pts[i].Y
	}
	return math.Abs(sum) / 2
}

// Bounds returns the axis-aligned bounding box of a point set. The
// second return is false when the set is empty.
func Bounds(pts []models.Point) (min, max models.Point, ok bool) {
	if len(pts) == 0 {
		return models.Point{}, models.Point{}, false
	}
	xs, ys := split(pts)
	min = models.Point{X: floats.Min(xs), Y: floats.Min(ys)}
	max = models.Point{X: floats.Max(xs), Y: floats.Max(ys)}
	return min, max, true
}

// Centroid returns the arithmetic mean of a point set. The second
// return is false when the set is empty.
func Centroid(pts []models.Point) (models.Point, bool) {
	if len(pts) == 0 {
		return models.Point{}, false
	}
	xs, ys := split(pts)
	return models.Point{X: stat.Mean(xs, nil), Y: stat.Mean(ys, nil)}, true
}

// PixelsToMicrons scales a pixel-space distance to microns using the
// microns-per-pixel resolution of the axis it was measured along.
func PixelsToMicrons(px, mpp float64) float64 {
	return px * mpp
}

func split(pts []models.Point) (xs, ys []float64) {
	xs = make([]float64, len(pts))
	ys = make([]float64, len(pts))
	for i, p := range pts {
		xs[i] = p.X
		ys[i] = p.Y
	}
	return xs, ys
}
