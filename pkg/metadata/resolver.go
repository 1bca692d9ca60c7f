// Package metadata resolves the physical scan parameters of a
// whole-slide image from its raw container metadata.
//
// Two metadata dialects are supported. OpenSlide-style properties
// expose the resolution as a single microns-per-pixel reciprocal under
// "openslide." keys and the slide-centre offsets under vendor-prefixed
// keys. Raw TIFF tags expose the resolution as a pixels-per-centimeter
// rational and the offsets under unprefixed vendor tag names. Both
// converge on the same SlideMetadata; dialect selection is driven by
// which keys are present.
package metadata

import (
	"fmt"
	"strconv"

	"ndpslide/internal/models"
)

// Rational is a two-element rational metadata value as stored in TIFF
// RATIONAL tags.
type Rational struct {
	Num int64
	Den int64
}

// Properties is the raw key-value metadata extracted from the image
// container. Values are strings, integers, floats or Rational pairs,
// depending on the source encoding.
type Properties map[string]any

// OpenSlide-dialect keys.
const (
	keyOSWidth   = "openslide.level[0].width"
	keyOSHeight  = "openslide.level[0].height"
	keyOSMppX    = "openslide.mpp-x"
	keyOSMppY    = "openslide.mpp-y"
	keyOSOffsetX = "hamamatsu.XOffsetFromSlideCentre"
	keyOSOffsetY = "hamamatsu.YOffsetFromSlideCentre"
)

// Raw TIFF-dialect keys.
const (
	keyTIFFWidth   = "ImageWidth"
	keyTIFFHeight  = "ImageLength"
	keyTIFFResX    = "XResolution"
	keyTIFFResY    = "YResolution"
	keyTIFFOffsetX = "XOffsetFromSlideCentre"
	keyTIFFOffsetY = "YOffsetFromSlideCentre"
	keyTIFFOffsetZ = "ZOffsetFromSlideCentre"
)

// Resolve extracts the slide metadata from a raw property mapping. It
// is a pure function of its input: no caching, no global state, and no
// partial result on failure. A required key that is absent produces a
// MissingFieldError naming that key.
func Resolve(props Properties) (models.SlideMetadata, error) {
	if _, ok := props[keyOSMppX]; ok {
		return resolveOpenSlide(props)
	}
	return resolveTIFF(props)
}

func resolveOpenSlide(props Properties) (models.SlideMetadata, error) {
	var m models.SlideMetadata
	var err error

	if m.WidthPx, err = intField(props, keyOSWidth); err != nil {
		return models.SlideMetadata{}, err
	}
	if m.HeightPx, err = intField(props, keyOSHeight); err != nil {
		return models.SlideMetadata{}, err
	}
	if m.MppX, err = reciprocalField(props, keyOSMppX); err != nil {
		return models.SlideMetadata{}, err
	}
	if m.MppY, err = reciprocalField(props, keyOSMppY); err != nil {
		return models.SlideMetadata{}, err
	}
	if m.OffsetFromCentreX, err = floatField(props, keyOSOffsetX); err != nil {
		return models.SlideMetadata{}, err
	}
	if m.OffsetFromCentreY, err = floatField(props, keyOSOffsetY); err != nil {
		return models.SlideMetadata{}, err
	}

	m.Date = stringField(props, "tiff.DateTime")
	m.Maker = stringField(props, "tiff.Make")
	m.Model = stringField(props, "tiff.Model")
	m.Software = stringField(props, "tiff.Software")
	return m, nil
}

func resolveTIFF(props Properties) (models.SlideMetadata, error) {
	var m models.SlideMetadata
	var err error

	if m.WidthPx, err = intField(props, keyTIFFWidth); err != nil {
		return models.SlideMetadata{}, err
	}
	if m.HeightPx, err = intField(props, keyTIFFHeight); err != nil {
		return models.SlideMetadata{}, err
	}
	if m.MppX, err = resolutionField(props, keyTIFFResX); err != nil {
		return models.SlideMetadata{}, err
	}
	if m.MppY, err = resolutionField(props, keyTIFFResY); err != nil {
		return models.SlideMetadata{}, err
	}
	if m.OffsetFromCentreX, err = floatField(props, keyTIFFOffsetX); err != nil {
		return models.SlideMetadata{}, err
	}
	if m.OffsetFromCentreY, err = floatField(props, keyTIFFOffsetY); err != nil {
		return models.SlideMetadata{}, err
	}

	// The Z offset is optional and unused by the geometry pipeline.
	if _, ok := props[keyTIFFOffsetZ]; ok {
		if m.OffsetFromCentreZ, err = floatField(props, keyTIFFOffsetZ); err != nil {
			return models.SlideMetadata{}, err
		}
	}

	m.Date = stringField(props, "DateTime")
	m.Maker = stringField(props, "Make")
	m.Model = stringField(props, "Model")
	m.Software = stringField(props, "Software")
	return m, nil
}

// reciprocalField reads a single-number resolution value and inverts
// it into microns per pixel.
func reciprocalField(props Properties, key string) (float64, error) {
	v, err := floatField(props, key)
	if err != nil {
		return 0, err
	}
	if v <= 0 {
		return 0, fmt.Errorf("metadata: field %q must be positive, got %v", key, v)
	}
	return 1 / v, nil
}

// resolutionField reads a resolution value that may be either a
// rational pair scaled from centimeters or a plain number. Rational
// values follow the scanner convention mpp = 10000/numerator, with
// the denominator always 1-equivalent and ignored. Plain numbers are
// treated as microns-per-pixel reciprocals.
func resolutionField(props Properties, key string) (float64, error) {
	raw, ok := props[key]
	if !ok {
		return 0, &MissingFieldError{Field: key}
	}
	if r, ok := raw.(Rational); ok {
		if r.Num <= 0 {
			return 0, fmt.Errorf("metadata: field %q has non-positive numerator %d", key, r.Num)
		}
		return 10000 / float64(r.Num), nil
	}
	return reciprocalField(props, key)
}

// floatField coerces a property value to float64. String values are
// parsed, never truncated.
func floatField(props Properties, key string) (float64, error) {
	raw, ok := props[key]
	if !ok {
		return 0, &MissingFieldError{Field: key}
	}
	switch v := raw.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("metadata: field %q is not numeric: %w", key, err)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("metadata: field %q has unsupported type %T", key, raw)
	}
}

func intField(props Properties, key string) (int, error) {
	f, err := floatField(props, key)
	if err != nil {
		return 0, err
	}
	n := int(f)
	if float64(n) != f || n <= 0 {
		return 0, fmt.Errorf("metadata: field %q must be a positive integer, got %v", key, f)
	}
	return n, nil
}

func stringField(props Properties, key string) string {
	if v, ok := props[key].(string); ok {
		return v
	}
	return ""
}
