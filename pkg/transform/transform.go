// Package transform derives the affine coordinate transform that maps
// stage-space nanometer coordinates onto image pixel coordinates.
//
// The scanner records annotation geometry relative to the physical
// slide centre, in nanometers. The image's own origin is its top-left
// pixel. The transform bridges the two using only the image metadata:
// the pixel dimensions, the per-axis microns-per-pixel resolution and
// the scan origin's declared offset from the slide centre.
package transform

import (
	"ndpslide/internal/models"
)

// Transform converts stage-space nanometer points into image pixel
// points. It is immutable after construction and safe to share.
type Transform struct {
	// CentreX and CentreY are the image's own centre point measured
	// from its top-left origin, at nanometer scale.
	CentreX float64
	CentreY float64

	// OffsetX and OffsetY are the nanometer-space coordinates of the
	// image's pixel origin relative to the physical slide centre.
	OffsetX float64
	OffsetY float64

	// MppX and MppY are the microns-per-pixel resolution per axis.
	MppX float64
	MppY float64
}

// New derives the transform from resolved slide metadata.
func New(m models.SlideMetadata) Transform {
	cx := float64(m.WidthPx) / 2 * m.MppX * 1000
	cy := float64(m.HeightPx) / 2 * m.MppY * 1000
	return Transform{
		CentreX: cx,
		CentreY: cy,
		OffsetX: cx - m.OffsetFromCentreX,
		OffsetY: cy - m.OffsetFromCentreY,
		MppX:    m.MppX,
		MppY:    m.MppY,
	}
}

// ToPixel converts a stage-space nanometer point to pixel coordinates.
// Each axis is converted independently:
//
//	pixel = (nm + offset) / (1000 * mpp)
//
// The conversion is a pure function; the stage point
// (-OffsetX, -OffsetY) always lands exactly on pixel (0, 0).
func (t Transform) ToPixel(p models.Point) models.Point {
	return models.Point{
		X: (p.X + t.OffsetX) / (1000 * t.MppX),
		Y: (p.Y + t.OffsetY) / (1000 * t.MppY),
	}
}
