package measure

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"

	"ndpslide/internal/models"
)

const tol = 1e-12

func unitSquare() []models.Point {
	return []models.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
}

func TestSegmentLength(t *testing.T) {
	lm := models.LinearMeasure{Points: [][]models.Point{
		{{X: 0, Y: 0}},
		{{X: 3, Y: 4}},
	}}
	if got := SegmentLength(lm); !scalar.EqualWithinAbs(got, 5, tol) {
		t.Errorf("SegmentLength = %v, want 5", got)
	}

	// Degenerate shapes measure zero rather than panicking.
	if got := SegmentLength(models.LinearMeasure{}); got != 0 {
		t.Errorf("SegmentLength of empty measure = %v, want 0", got)
	}
}

func TestPolylineLength(t *testing.T) {
	pts := unitSquare()
	if got := PolylineLength(pts, false); !scalar.EqualWithinAbs(got, 3, tol) {
		t.Errorf("open length = %v, want 3", got)
	}
	if got := PolylineLength(pts, true); !scalar.EqualWithinAbs(got, 4, tol) {
		t.Errorf("closed length = %v, want 4", got)
	}
	if got := PolylineLength(nil, true); got != 0 {
		t.Errorf("empty length = %v, want 0", got)
	}
	if got := PolylineLength(pts[:1], true); got != 0 {
		t.Errorf("single-point length = %v, want 0", got)
	}
}

func TestArea(t *testing.T) {
	if got := Area(unitSquare()); !scalar.EqualWithinAbs(got, 1, tol) {
		t.Errorf("square area = %v, want 1", got)
	}

	// Winding order must not affect the result.
	reversed := []models.Point{{X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 0}, {X: 0, Y: 0}}
	if got := Area(reversed); !scalar.EqualWithinAbs(got, 1, tol) {
		t.Errorf("reversed square area = %v, want 1", got)
	}

	triangle := []models.Point{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 0, Y: 3}}
	if got := Area(triangle); !scalar.EqualWithinAbs(got, 6, tol) {
		t.Errorf("triangle area = %v, want 6", got)
	}

	if got := Area(unitSquare()[:2]); got != 0 {
		t.Errorf("two-point area = %v, want 0", got)
	}
}

func TestBounds(t *testing.T) {
	pts := []models.Point{{X: -2, Y: 5}, {X: 7, Y: -1}, {X: 3, Y: 3}}
	min, max, ok := Bounds(pts)
	if !ok {
		t.Fatal("Bounds reported empty for a non-empty set")
	}
	if min.X != -2 || min.Y != -1 || max.X != 7 || max.Y != 5 {
		t.Errorf("Bounds = (%v, %v)-(%v, %v), want (-2, -1)-(7, 5)", min.X, min.Y, max.X, max.Y)
	}

	if _, _, ok := Bounds(nil); ok {
		t.Error("Bounds reported ok for an empty set")
	}
}

func TestCentroid(t *testing.T) {
	c, ok := Centroid(unitSquare())
	if !ok {
		t.Fatal("Centroid reported empty for a non-empty set")
	}
	if !scalar.EqualWithinAbs(c.X, 0.5, tol) || !scalar.EqualWithinAbs(c.Y, 0.5, tol) {
		t.Errorf("Centroid = (%v, %v), want (0.5, 0.5)", c.X, c.Y)
	}

	if _, ok := Centroid(nil); ok {
		t.Error("Centroid reported ok for an empty set")
	}
}

func TestPixelsToMicrons(t *testing.T) {
	if got := PixelsToMicrons(100, 0.25); math.Abs(got-25) > tol {
		t.Errorf("PixelsToMicrons(100, 0.25) = %v, want 25", got)
	}
}
