package models

// Point is a 2D coordinate. Depending on context it holds either
// stage-space nanometers (as stored by the scanner) or image pixel
// coordinates (after conversion).
type Point struct {
	X, Y float64
}

// SlideMetadata holds the physical scan parameters extracted from the
// image container. It is constructed once by the metadata resolver and
// never mutated afterwards.
type SlideMetadata struct {
	// WidthPx and HeightPx are the image dimensions in pixels.
	WidthPx  int
	HeightPx int

	// MppX and MppY are the physical size of one pixel in microns,
	// per axis. Always positive.
	MppX float64
	MppY float64

	// OffsetFromCentreX and OffsetFromCentreY are the scan origin's
	// displacement from the physical slide centre, in nanometers,
	// as declared by the instrument.
	OffsetFromCentreX float64
	OffsetFromCentreY float64

	// OffsetFromCentreZ is the focal-plane offset in nanometers.
	// Only present in raw-TIFF metadata; parsed but unused by the
	// coordinate conversion.
	OffsetFromCentreZ float64

	// Date, Maker, Model and Software describe the acquisition.
	// Sourced from whichever metadata dialect is active; empty when
	// the container does not carry them.
	Date     string
	Maker    string
	Model    string
	Software string
}

// Info is the read-only summary view of a loaded slide and its
// annotations. There is no mutation path back into the source files.
type Info struct {
	// Width and Height are the image dimensions in pixels.
	Width  int
	Height int

	// Date, Maker, Model and Software are acquisition details taken
	// from the image metadata.
	Date     string
	Maker    string
	Model    string
	Software string

	// Annotations is the number of annotations parsed from the
	// sidecar document.
	Annotations int
}
