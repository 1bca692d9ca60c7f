package models

// Kind identifies the shape class of an annotation. The set is closed:
// the sidecar format declares each annotation's type explicitly, and
// unknown type strings are rejected at parse time rather than being
// carried as untyped attribute bags.
type Kind int

const (
	// KindLinearMeasure is a two-endpoint distance measurement.
	KindLinearMeasure Kind = iota

	// KindCircle is a circular region with a centre and radius.
	KindCircle

	// KindPin is a single marked point.
	KindPin

	// KindFreehand is a hand-drawn polyline or polygon.
	KindFreehand
)

// String returns the canonical name of the kind.
func (k Kind) String() string {
	switch k {
	case KindLinearMeasure:
		return "linearmeasure"
	case KindCircle:
		return "circle"
	case KindPin:
		return "pin"
	case KindFreehand:
		return "freehand"
	default:
		return "unknown"
	}
}

// Geometry is the type-specific payload of an annotation. Exactly one
// concrete geometry exists per Kind.
type Geometry interface {
	Kind() Kind
}

// LinearMeasure is the geometry of a two-endpoint measurement.
//
// Points always holds exactly two single-element point sequences, one
// per endpoint, in pixel space. The double nesting mirrors the shape
// the viewer software expects and is preserved for compatibility.
type LinearMeasure struct {
	Points [][]Point
}

// Kind implements Geometry.
func (LinearMeasure) Kind() Kind { return KindLinearMeasure }

// Circle is the geometry of a circular annotation.
type Circle struct {
	// Centre is the circle centre in pixel space.
	Centre Point

	// Z is the focal plane, left in raw units.
	Z float64

	// Radius is the circle radius in nanometers. It is intentionally
	// not converted to pixels; the sidecar format stores it in stage
	// units and consumers expect it unchanged.
	Radius float64
}

// Kind implements Geometry.
func (Circle) Kind() Kind { return KindCircle }

// Pin is the geometry of a single marked point.
type Pin struct {
	// Centre is the pin location in pixel space.
	Centre Point

	// Z is the focal plane, left in raw units.
	Z float64
}

// Kind implements Geometry.
func (Pin) Kind() Kind { return KindPin }

// Freehand is the geometry of a hand-drawn polyline or polygon.
type Freehand struct {
	// Anchor is the annotation's own x/y position in pixel space.
	Anchor Point

	// Z is the focal plane, left in raw units.
	Z float64

	// Points are the polyline vertices in pixel space, in document
	// order. A zero-point annotation is legal and yields an empty
	// slice.
	Points []Point
}

// Kind implements Geometry.
func (Freehand) Kind() Kind { return KindFreehand }

// Annotation is one user-drawn annotation together with its saved
// view-state. Annotations are parsed once at load time into an
// immutable list; the sidecar format bundles the view-state fields and
// the annotation geometry at the same nesting level.
type Annotation struct {
	// Title is the user-visible annotation title. May be empty.
	Title string

	// Details is the free-text description. Empty when the element
	// is absent from the document.
	Details string

	// CoordFormat is the coordinate format tag declared by the
	// viewer, e.g. "nanometers".
	CoordFormat string

	// Lens is the objective magnification the view-state was saved
	// at.
	Lens float64

	// ShowTitle, ShowHistogram and ShowLineProfile are viewer
	// display flags.
	ShowTitle       bool
	ShowHistogram   bool
	ShowLineProfile bool

	// Type is the raw type string from the document, e.g.
	// "freehand" or "pointer". The normalized shape class is
	// Geometry.Kind().
	Type string

	// DisplayName is the viewer's display name for the annotation
	// tool used.
	DisplayName string

	// Color is the annotation colour as stored, e.g. "#000000".
	Color string

	// MeasureType declares what the annotation measures.
	MeasureType string

	// Closed reports whether the shape is closed (polygon rather
	// than polyline).
	Closed bool

	// Geometry is the type-specific payload, with all x/y
	// coordinates already converted to pixel space.
	Geometry Geometry
}
