// Package annotations parses the sidecar annotation document that
// accompanies a whole-slide image and normalizes every annotation's
// geometry into the image's pixel coordinate space.
//
// The sidecar format stores one container element per annotation. By
// convention of the format the saved view-state fields and the
// annotation's scalar geometry fields share one nesting level, while
// the annotation element itself carries the type tag, the measure
// fields and any point list. All x/y values are stage-space
// nanometers; the normalizer runs each through the supplied transform.
package annotations

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"ndpslide/internal/models"
	"ndpslide/pkg/transform"
)

// viewState mirrors one container element of the sidecar document.
// Pointer fields distinguish an absent element from a present empty
// one; optionality is decided by element existence, never by value
// truthiness.
type viewState struct {
	ID              string          `xml:"id,attr"`
	Title           *string         `xml:"title"`
	Details         *string         `xml:"details"`
	CoordFormat     *string         `xml:"coordformat"`
	Lens            *string         `xml:"lens"`
	ShowTitle       string          `xml:"showtitle"`
	ShowHistogram   string          `xml:"showhistogram"`
	ShowLineProfile string          `xml:"showlineprofile"`
	X               *string         `xml:"x"`
	Y               *string         `xml:"y"`
	Z               *string         `xml:"z"`
	X1              *string         `xml:"x1"`
	Y1              *string         `xml:"y1"`
	X2              *string         `xml:"x2"`
	Y2              *string         `xml:"y2"`
	Radius          *string         `xml:"radius"`
	Annotation      *annotationElem `xml:"annotation"`
}

type annotationElem struct {
	Type        string     `xml:"type,attr"`
	DisplayName string     `xml:"displayname,attr"`
	Color       string     `xml:"color,attr"`
	MeasureType *string    `xml:"measuretype"`
	Closed      *string    `xml:"closed"`
	PointList   *pointList `xml:"pointlist"`
}

type pointList struct {
	Points []rawPoint `xml:"point"`
}

type rawPoint struct {
	X *string `xml:"x"`
	Y *string `xml:"y"`
}

type document struct {
	ViewStates []viewState `xml:"ndpviewstate"`
}

// Parse reads the sidecar document and returns its annotations in
// document order, with all x/y geometry converted to pixel space by t.
// The first malformed or unrecognized annotation fails the whole
// parse; no partial sequence is returned. The document tree is not
// retained past the call.
func Parse(r io.Reader, t transform.Transform) ([]models.Annotation, error) {
	var doc document
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, &MalformedDocumentError{Reason: err.Error()}
	}

	anns := make([]models.Annotation, 0, len(doc.ViewStates))
	for i, vs := range doc.ViewStates {
		ann, err := normalize(i, vs, t)
		if err != nil {
			return nil, err
		}
		anns = append(anns, ann)
	}
	return anns, nil
}

func normalize(idx int, vs viewState, t transform.Transform) (models.Annotation, error) {
	var ann models.Annotation
	var err error

	if vs.Title == nil {
		return ann, missing(idx, "title")
	}
	ann.Title = *vs.Title

	// details may be textually absent; that is an empty description,
	// not an error.
	if vs.Details != nil {
		ann.Details = *vs.Details
	}

	if vs.CoordFormat == nil {
		return ann, missing(idx, "coordformat")
	}
	ann.CoordFormat = *vs.CoordFormat

	if ann.Lens, err = floatElem(idx, "lens", vs.Lens); err != nil {
		return ann, err
	}
	ann.ShowTitle = vs.ShowTitle == "1"
	ann.ShowHistogram = vs.ShowHistogram == "1"
	ann.ShowLineProfile = vs.ShowLineProfile == "1"

	elem := vs.Annotation
	if elem == nil {
		return ann, missing(idx, "annotation")
	}
	ann.Type = elem.Type
	ann.DisplayName = elem.DisplayName
	ann.Color = elem.Color
	if elem.MeasureType == nil {
		return ann, missing(idx, "measuretype")
	}
	ann.MeasureType = *elem.MeasureType
	if elem.Closed == nil {
		return ann, missing(idx, "closed")
	}
	ann.Closed = *elem.Closed == "1"

	if ann.Geometry, err = normalizeGeometry(idx, vs, t); err != nil {
		return ann, err
	}
	return ann, nil
}

// normalizeGeometry dispatches on the declared annotation type. The
// type set is closed; anything outside it is rejected rather than
// probed for fields.
func normalizeGeometry(idx int, vs viewState, t transform.Transform) (models.Geometry, error) {
	switch vs.Annotation.Type {
	case "linearmeasure":
		return normalizeLinearMeasure(idx, vs, t)
	case "circle":
		return normalizeCircle(idx, vs, t)
	case "pin", "pointer":
		return normalizePin(idx, vs, t)
	case "freehand", "polygon":
		return normalizeFreehand(idx, vs, t)
	default:
		return nil, &UnsupportedTypeError{Type: vs.Annotation.Type}
	}
}

// normalizeLinearMeasure reads the measurement's endpoints. Unlike
// every other type, the endpoints arrive as four sibling scalar
// fields, and each endpoint is emitted wrapped in a single-element
// point sequence.
func normalizeLinearMeasure(idx int, vs viewState, t transform.Transform) (models.Geometry, error) {
	x1, err := floatElem(idx, "x1", vs.X1)
	if err != nil {
		return nil, err
	}
	y1, err := floatElem(idx, "y1", vs.Y1)
	if err != nil {
		return nil, err
	}
	x2, err := floatElem(idx, "x2", vs.X2)
	if err != nil {
		return nil, err
	}
	y2, err := floatElem(idx, "y2", vs.Y2)
	if err != nil {
		return nil, err
	}
	return models.LinearMeasure{
		Points: [][]models.Point{
			{t.ToPixel(models.Point{X: x1, Y: y1})},
			{t.ToPixel(models.Point{X: x2, Y: y2})},
		},
	}, nil
}

func normalizeCircle(idx int, vs viewState, t transform.Transform) (models.Geometry, error) {
	centre, z, err := anchor(idx, vs, t)
	if err != nil {
		return nil, err
	}
	c := models.Circle{Centre: centre, Z: z}
	// The radius stays in nanometers; the viewer stores it in stage
	// units and consumers expect it unchanged.
	if vs.Radius != nil {
		if c.Radius, err = floatElem(idx, "radius", vs.Radius); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func normalizePin(idx int, vs viewState, t transform.Transform) (models.Geometry, error) {
	centre, z, err := anchor(idx, vs, t)
	if err != nil {
		return nil, err
	}
	return models.Pin{Centre: centre, Z: z}, nil
}

func normalizeFreehand(idx int, vs viewState, t transform.Transform) (models.Geometry, error) {
	anchorPt, z, err := anchor(idx, vs, t)
	if err != nil {
		return nil, err
	}
	fh := models.Freehand{Anchor: anchorPt, Z: z, Points: []models.Point{}}
	if vs.Annotation.PointList == nil {
		// A zero-point annotation is legal.
		return fh, nil
	}
	for i, rp := range vs.Annotation.PointList.Points {
		x, err := floatElem(idx, fmt.Sprintf("point[%d]/x", i), rp.X)
		if err != nil {
			return nil, err
		}
		y, err := floatElem(idx, fmt.Sprintf("point[%d]/y", i), rp.Y)
		if err != nil {
			return nil, err
		}
		fh.Points = append(fh.Points, t.ToPixel(models.Point{X: x, Y: y}))
	}
	return fh, nil
}

// anchor reads the x/y/z scalars shared by all non-linear types,
// converting x/y to pixel space and leaving z in raw units.
func anchor(idx int, vs viewState, t transform.Transform) (models.Point, float64, error) {
	x, err := floatElem(idx, "x", vs.X)
	if err != nil {
		return models.Point{}, 0, err
	}
	y, err := floatElem(idx, "y", vs.Y)
	if err != nil {
		return models.Point{}, 0, err
	}
	z, err := floatElem(idx, "z", vs.Z)
	if err != nil {
		return models.Point{}, 0, err
	}
	return t.ToPixel(models.Point{X: x, Y: y}), z, nil
}

func floatElem(idx int, name string, raw *string) (float64, error) {
	if raw == nil {
		return 0, missing(idx, name)
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(*raw), 64)
	if err != nil {
		return 0, &MalformedDocumentError{
			Reason: fmt.Sprintf("ndpviewstate %d: element %q is not numeric: %v", idx, name, err),
		}
	}
	return f, nil
}

func missing(idx int, name string) error {
	return &MalformedDocumentError{
		Reason: fmt.Sprintf("ndpviewstate %d: missing %q element", idx, name),
	}
}
