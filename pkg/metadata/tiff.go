package metadata

import (
	"fmt"
	"io"

	"github.com/rwcarlsen/goexif/tiff"
)

// TIFF tag ids carried by the image container. The three offset tags
// are Hamamatsu vendor tags.
const (
	tagImageWidth  = 256
	tagImageLength = 257
	tagMake        = 271
	tagModel       = 272
	tagXResolution = 282
	tagYResolution = 283
	tagSoftware    = 305
	tagDateTime    = 306
	tagXOffset     = 65422
	tagYOffset     = 65423
	tagZOffset     = 65424
)

// ReadTIFFProperties decodes the first image directory of a TIFF
// stream into a raw-TIFF-dialect property mapping for Resolve. Tags
// outside the known set are ignored; presence checking is left to the
// resolver so that a missing tag surfaces as a MissingFieldError
// naming the key.
func ReadTIFFProperties(r io.Reader) (Properties, error) {
	tf, err := tiff.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("metadata: decoding tiff: %w", err)
	}
	if len(tf.Dirs) == 0 {
		return nil, fmt.Errorf("metadata: tiff stream has no image directory")
	}

	props := Properties{}
	for _, t := range tf.Dirs[0].Tags {
		switch t.Id {
		case tagImageWidth, tagImageLength, tagXOffset, tagYOffset, tagZOffset:
			v, err := t.Int64(0)
			if err != nil {
				return nil, fmt.Errorf("metadata: reading tag %d: %w", t.Id, err)
			}
			props[tagKeyName(t.Id)] = v
		case tagXResolution, tagYResolution:
			num, den, err := t.Rat2(0)
			if err != nil {
				return nil, fmt.Errorf("metadata: reading tag %d: %w", t.Id, err)
			}
			props[tagKeyName(t.Id)] = Rational{Num: num, Den: den}
		case tagMake, tagModel, tagSoftware, tagDateTime:
			s, err := t.StringVal()
			if err != nil {
				return nil, fmt.Errorf("metadata: reading tag %d: %w", t.Id, err)
			}
			props[tagKeyName(t.Id)] = s
		}
	}
	return props, nil
}

func tagKeyName(id uint16) string {
	switch id {
	case tagImageWidth:
		return keyTIFFWidth
	case tagImageLength:
		return keyTIFFHeight
	case tagXResolution:
		return keyTIFFResX
	case tagYResolution:
		return keyTIFFResY
	case tagXOffset:
		return keyTIFFOffsetX
	case tagYOffset:
		return keyTIFFOffsetY
	case tagZOffset:
		return keyTIFFOffsetZ
	case tagMake:
		return "Make"
	case tagModel:
		return "Model"
	case tagSoftware:
		return "Software"
	case tagDateTime:
		return "DateTime"
	default:
		return fmt.Sprintf("Tag%d", id)
	}
}
