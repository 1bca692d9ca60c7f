package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"ndpslide/internal/models"
	"ndpslide/pkg/config"
	"ndpslide/pkg/measure"
	"ndpslide/pkg/ndp"
)

func main() {
	// Parse command line arguments
	imagePath := flag.String("image", "", "Path to the whole-slide image file (NDPI)")
	annotationPath := flag.String("annotations", "", "Path to the sidecar annotation file (default: image path + suffix)")
	configPath := flag.String("config", "ndpslide.yaml", "Path to the YAML configuration file")
	jsonOut := flag.Bool("json", false, "Emit the annotation list as JSON")
	verbose := flag.Bool("verbose", false, "Print per-annotation detail")
	flag.Parse()

	// Validate inputs
	if *imagePath == "" {
		flag.Usage()
		os.Exit(1)
	}

	// Load configuration (defaults apply when the file is absent)
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *jsonOut {
		cfg.Output.Format = "json"
	}
	if *verbose {
		cfg.Output.Verbose = true
	}

	// Resolve the sidecar path from configuration when not given
	sidecar := *annotationPath
	if sidecar == "" {
		sidecar = *imagePath + cfg.Reader.AnnotationSuffix
	}

	// Load the slide: metadata first, then annotations
	reader, err := ndp.Open(*imagePath, sidecar)
	if err != nil {
		log.Fatalf("Failed to load slide: %v", err)
	}

	if cfg.Output.Format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(reader.Annotations); err != nil {
			log.Fatalf("Failed to encode annotations: %v", err)
		}
		return
	}

	info := reader.Info()
	fmt.Println("================================")
	fmt.Println("WHOLE-SLIDE IMAGE SUMMARY")
	fmt.Println("================================")
	fmt.Printf("Image:       %s\n", reader.ImagePath)
	fmt.Printf("Annotations: %s\n", reader.AnnotationPath)
	fmt.Printf("Dimensions:  %d x %d px\n", info.Width, info.Height)
	fmt.Printf("Date:        %s\n", info.Date)
	fmt.Printf("Maker:       %s\n", info.Maker)
	fmt.Printf("Model:       %s\n", info.Model)
	fmt.Printf("Software:    %s\n", info.Software)
	fmt.Printf("Resolution:  %.4f x %.4f um/px\n", reader.Metadata.MppX, reader.Metadata.MppY)
	fmt.Printf("Annotation count: %d\n", info.Annotations)

	if !cfg.Output.Verbose {
		return
	}

	for i, ann := range reader.Annotations {
		fmt.Printf("\n[%d] %s (%s)\n", i, ann.Title, ann.Geometry.Kind())
		if ann.Details != "" {
			fmt.Printf("    details: %s\n", ann.Details)
		}
		fmt.Printf("    lens: %.1fx  color: %s  closed: %v\n", ann.Lens, ann.Color, ann.Closed)
		printGeometry(ann, reader.Metadata, cfg)
	}
}

func printGeometry(ann models.Annotation, meta models.SlideMetadata, cfg *config.Config) {
	switch g := ann.Geometry.(type) {
	case models.LinearMeasure:
		length := measure.SegmentLength(g)
		if cfg.Output.ReportMicrons {
			fmt.Printf("    length: %.2f um\n", measure.PixelsToMicrons(length, meta.MppX))
		} else {
			fmt.Printf("    length: %.2f px\n", length)
		}
	case models.Circle:
		fmt.Printf("    centre: (%.1f, %.1f) px  radius: %.0f nm\n", g.Centre.X, g.Centre.Y, g.Radius)
	case models.Pin:
		fmt.Printf("    position: (%.1f, %.1f) px\n", g.Centre.X, g.Centre.Y)
	case models.Freehand:
		fmt.Printf("    points: %d  perimeter: %.2f px\n", len(g.Points), measure.PolylineLength(g.Points, ann.Closed))
		if min, max, ok := measure.Bounds(g.Points); ok {
			fmt.Printf("    bounds: (%.1f, %.1f) - (%.1f, %.1f) px\n", min.X, min.Y, max.X, max.Y)
		}
	}
}
