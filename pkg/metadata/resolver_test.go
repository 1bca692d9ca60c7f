package metadata

import (
	"errors"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

const tol = 1e-12

// openSlideProps returns a complete OpenSlide-dialect mapping, all
// values strings as that library reports them.
func openSlideProps() Properties {
	return Properties{
		"openslide.level[0].width":         "15360",
		"openslide.level[0].height":        "12288",
		"openslide.mpp-x":                  "4.0",
		"openslide.mpp-y":                  "4.0",
		"hamamatsu.XOffsetFromSlideCentre": "2278",
		"hamamatsu.YOffsetFromSlideCentre": "-11463",
		"tiff.DateTime":                    "2024:01:01 00:00:00",
		"tiff.Make":                        "Hamamatsu",
		"tiff.Model":                       "C9600-12",
		"tiff.Software":                    "NDP.scan",
	}
}

// tiffProps returns the equivalent raw-TIFF-dialect mapping.
func tiffProps() Properties {
	return Properties{
		"ImageWidth":             int64(15360),
		"ImageLength":            int64(12288),
		"XResolution":            Rational{Num: 40000, Den: 1},
		"YResolution":            Rational{Num: 40000, Den: 1},
		"XOffsetFromSlideCentre": int64(2278),
		"YOffsetFromSlideCentre": int64(-11463),
		"DateTime":               "2024:01:01 00:00:00",
		"Make":                   "Hamamatsu",
		"Model":                  "C9600-12",
		"Software":               "NDP.scan",
	}
}

func TestResolveOpenSlideDialect(t *testing.T) {
	m, err := Resolve(openSlideProps())
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if m.WidthPx != 15360 || m.HeightPx != 12288 {
		t.Errorf("dimensions = %dx%d, want 15360x12288", m.WidthPx, m.HeightPx)
	}
	// Single-number resolution values are inverted: mpp = 1/value.
	if !scalar.EqualWithinAbs(m.MppX, 0.25, tol) || !scalar.EqualWithinAbs(m.MppY, 0.25, tol) {
		t.Errorf("mpp = (%v, %v), want (0.25, 0.25)", m.MppX, m.MppY)
	}
	if m.OffsetFromCentreX != 2278 || m.OffsetFromCentreY != -11463 {
		t.Errorf("offsets = (%v, %v), want (2278, -11463)", m.OffsetFromCentreX, m.OffsetFromCentreY)
	}
	if m.Maker != "Hamamatsu" || m.Software != "NDP.scan" {
		t.Errorf("summary strings = %q/%q, want Hamamatsu/NDP.scan", m.Maker, m.Software)
	}
}

func TestResolveTIFFDialect(t *testing.T) {
	m, err := Resolve(tiffProps())
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if m.WidthPx != 15360 || m.HeightPx != 12288 {
		t.Errorf("dimensions = %dx%d, want 15360x12288", m.WidthPx, m.HeightPx)
	}
	// Rational resolution values scale from centimeters:
	// mpp = 10000/numerator, denominator ignored.
	if !scalar.EqualWithinAbs(m.MppX, 0.25, tol) || !scalar.EqualWithinAbs(m.MppY, 0.25, tol) {
		t.Errorf("mpp = (%v, %v), want (0.25, 0.25)", m.MppX, m.MppY)
	}
	if m.OffsetFromCentreX != 2278 || m.OffsetFromCentreY != -11463 {
		t.Errorf("offsets = (%v, %v), want (2278, -11463)", m.OffsetFromCentreX, m.OffsetFromCentreY)
	}
	if m.Date != "2024:01:01 00:00:00" || m.Model != "C9600-12" {
		t.Errorf("summary strings = %q/%q", m.Date, m.Model)
	}
}

// TestDialectEquivalence verifies that the same physical resolution
// expressed in both encodings resolves to matching mpp values.
func TestDialectEquivalence(t *testing.T) {
	os, err := Resolve(openSlideProps())
	if err != nil {
		t.Fatalf("Resolve(openslide) failed: %v", err)
	}
	tf, err := Resolve(tiffProps())
	if err != nil {
		t.Fatalf("Resolve(tiff) failed: %v", err)
	}

	if !scalar.EqualWithinAbs(os.MppX, tf.MppX, tol) {
		t.Errorf("MppX differs between dialects: %v vs %v", os.MppX, tf.MppX)
	}
	if !scalar.EqualWithinAbs(os.MppY, tf.MppY, tol) {
		t.Errorf("MppY differs between dialects: %v vs %v", os.MppY, tf.MppY)
	}
	if os.WidthPx != tf.WidthPx || os.HeightPx != tf.HeightPx {
		t.Errorf("dimensions differ between dialects")
	}
	if os.OffsetFromCentreX != tf.OffsetFromCentreX || os.OffsetFromCentreY != tf.OffsetFromCentreY {
		t.Errorf("offsets differ between dialects")
	}
}

// TestMissingResolutionKey verifies a missing resolution key fails
// with a MissingFieldError naming exactly that key.
func TestMissingResolutionKey(t *testing.T) {
	props := openSlideProps()
	delete(props, "openslide.mpp-y")

	_, err := Resolve(props)
	var missing *MissingFieldError
	if !errors.As(err, &missing) {
		t.Fatalf("Resolve returned %v, want MissingFieldError", err)
	}
	if missing.Field != "openslide.mpp-y" {
		t.Errorf("missing field = %q, want %q", missing.Field, "openslide.mpp-y")
	}

	props = tiffProps()
	delete(props, "XResolution")
	_, err = Resolve(props)
	if !errors.As(err, &missing) {
		t.Fatalf("Resolve returned %v, want MissingFieldError", err)
	}
	if missing.Field != "XResolution" {
		t.Errorf("missing field = %q, want %q", missing.Field, "XResolution")
	}
}

func TestMissingOffsetKey(t *testing.T) {
	props := tiffProps()
	delete(props, "YOffsetFromSlideCentre")

	_, err := Resolve(props)
	var missing *MissingFieldError
	if !errors.As(err, &missing) {
		t.Fatalf("Resolve returned %v, want MissingFieldError", err)
	}
	if missing.Field != "YOffsetFromSlideCentre" {
		t.Errorf("missing field = %q, want %q", missing.Field, "YOffsetFromSlideCentre")
	}
}

// TestZOffsetOptional verifies the Z offset is parsed when present
// and tolerated when absent.
func TestZOffsetOptional(t *testing.T) {
	props := tiffProps()
	m, err := Resolve(props)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if m.OffsetFromCentreZ != 0 {
		t.Errorf("absent Z offset = %v, want 0", m.OffsetFromCentreZ)
	}

	props["ZOffsetFromSlideCentre"] = int64(1500)
	m, err = Resolve(props)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if m.OffsetFromCentreZ != 1500 {
		t.Errorf("Z offset = %v, want 1500", m.OffsetFromCentreZ)
	}
}

// TestStringCoercion verifies string-typed numbers are parsed, not
// truncated, and that garbage is rejected.
func TestStringCoercion(t *testing.T) {
	props := openSlideProps()
	props["hamamatsu.XOffsetFromSlideCentre"] = "2278.75"
	m, err := Resolve(props)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if m.OffsetFromCentreX != 2278.75 {
		t.Errorf("offset X = %v, want 2278.75 (value was truncated?)", m.OffsetFromCentreX)
	}

	props["hamamatsu.XOffsetFromSlideCentre"] = "not-a-number"
	if _, err := Resolve(props); err == nil {
		t.Error("Resolve accepted a non-numeric offset")
	}
}

func TestNonPositiveResolution(t *testing.T) {
	props := openSlideProps()
	props["openslide.mpp-x"] = "0"
	if _, err := Resolve(props); err == nil {
		t.Error("Resolve accepted a zero resolution")
	}

	props = tiffProps()
	props["XResolution"] = Rational{Num: 0, Den: 1}
	if _, err := Resolve(props); err == nil {
		t.Error("Resolve accepted a zero rational numerator")
	}
}
