// Package ndp ties the metadata resolver and the annotation
// normalizer together into a whole-slide reader. Opening a slide
// resolves the image metadata first, derives the coordinate
// transform, and only then parses the sidecar annotations, since
// every annotation point requires the transform.
package ndp

import (
	"fmt"
	"os"

	"ndpslide/internal/models"
	"ndpslide/pkg/annotations"
	"ndpslide/pkg/metadata"
	"ndpslide/pkg/transform"
)

// DefaultAnnotationSuffix is appended to the image path when no
// sidecar path is given.
const DefaultAnnotationSuffix = ".ndpa"

// FileNotFoundError reports a missing input file. Both input paths
// are checked before any parsing begins.
type FileNotFoundError struct {
	Path string
}

func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("ndp: file not found: %s", e.Path)
}

// Reader is a loaded slide: the resolved metadata, the derived
// coordinate transform and the normalized annotations. All fields are
// constructed once by Open and never mutated, so a Reader is safe to
// share between goroutines.
type Reader struct {
	// ImagePath and AnnotationPath are the input files the reader
	// was loaded from.
	ImagePath      string
	AnnotationPath string

	// Metadata is the resolved slide metadata.
	Metadata models.SlideMetadata

	// Transform maps stage-space nanometers to image pixels.
	Transform transform.Transform

	// Annotations are the normalized annotations in document order.
	Annotations []models.Annotation
}

// Open loads a slide image and its sidecar annotation document. An
// empty annotationPath defaults to imagePath + ".ndpa". Both files
// must exist before any parsing starts; a missing file is reported as
// a FileNotFoundError citing its path.
func Open(imagePath, annotationPath string) (*Reader, error) {
	if annotationPath == "" {
		annotationPath = imagePath + DefaultAnnotationSuffix
	}
	for _, p := range []string{imagePath, annotationPath} {
		if _, err := os.Stat(p); err != nil {
			return nil, &FileNotFoundError{Path: p}
		}
	}

	img, err := os.Open(imagePath)
	if err != nil {
		return nil, fmt.Errorf("ndp: opening image: %w", err)
	}
	defer img.Close()

	props, err := metadata.ReadTIFFProperties(img)
	if err != nil {
		return nil, err
	}

	r, err := Load(props, annotationPath)
	if err != nil {
		return nil, err
	}
	r.ImagePath = imagePath
	return r, nil
}

// Load builds a Reader from an already-extracted property mapping and
// a sidecar annotation path. It is the core of Open and accepts
// either metadata dialect, so callers that extract properties through
// a different image library (OpenSlide bindings, for instance) can
// reuse the same pipeline.
func Load(props metadata.Properties, annotationPath string) (*Reader, error) {
	meta, err := metadata.Resolve(props)
	if err != nil {
		return nil, err
	}
	tr := transform.New(meta)

	f, err := os.Open(annotationPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &FileNotFoundError{Path: annotationPath}
		}
		return nil, fmt.Errorf("ndp: opening annotations: %w", err)
	}
	defer f.Close()

	anns, err := annotations.Parse(f, tr)
	if err != nil {
		return nil, err
	}

	return &Reader{
		AnnotationPath: annotationPath,
		Metadata:       meta,
		Transform:      tr,
		Annotations:    anns,
	}, nil
}

// Info returns the read-only summary of the slide and its
// annotations.
func (r *Reader) Info() models.Info {
	return models.Info{
		Width:       r.Metadata.WidthPx,
		Height:      r.Metadata.HeightPx,
		Date:        r.Metadata.Date,
		Maker:       r.Metadata.Maker,
		Model:       r.Metadata.Model,
		Software:    r.Metadata.Software,
		Annotations: len(r.Annotations),
	}
}
