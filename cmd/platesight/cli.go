package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/platesight/platesight/internal/ocr"
	"github.com/platesight/platesight/internal/pipeline"
	"github.com/platesight/platesight/internal/server"
	"github.com/platesight/platesight/internal/source"
)

// CLI holds the parsed command line for one run.
type CLI struct {
	imagePath string
	framesDir string
	serve     bool
	addr      string
	language  string
	outDir    string
}

func NewCLI() *CLI {
	addr := os.Getenv("PLATESIGHT_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	lang := os.Getenv("PLATESIGHT_OCR_LANG")
	if lang == "" {
		lang = "eng"
	}
	return &CLI{
		addr:     addr,
		language: lang,
		outDir:   ".",
	}
}

// Run parses flags and dispatches to the selected mode. Exactly one of
// -image, -frames, or -serve must be given.
func (c *CLI) Run(args []string) error {
	fs := flag.NewFlagSet("platesight", flag.ExitOnError)
	fs.StringVar(&c.imagePath, "image", c.imagePath, "Detect plates in a single image file")
	fs.StringVar(&c.framesDir, "frames", c.framesDir, "Detect plates across a directory of frames")
	fs.BoolVar(&c.serve, "serve", c.serve, "Run the HTTP detection API")
	fs.StringVar(&c.addr, "addr", c.addr, "Listen address for -serve")
	fs.StringVar(&c.language, "lang", c.language, "Tesseract language code")
	fs.StringVar(&c.outDir, "out", c.outDir, "Directory for annotated output frames")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parsing flags: %w", err)
	}

	modes := 0
	if c.imagePath != "" {
		modes++
	}
	if c.framesDir != "" {
		modes++
	}
	if c.serve {
		modes++
	}
	if modes != 1 {
		return errors.New("exactly one of -image, -frames, or -serve is required (see --help)")
	}

	recognizer := ocr.NewTesseractRecognizer(c.language)
	defer recognizer.Close()
	pipe := pipeline.New(recognizer, pipeline.DefaultConfig())

	switch {
	case c.serve:
		debugf("serving detection API on %s", c.addr)
		return server.NewRouter(pipe).Run(c.addr)
	case c.imagePath != "":
		return c.processSource(pipe, source.NewImageSource(c.imagePath), c.imagePath)
	default:
		src, err := source.NewDirSource(c.framesDir)
		if err != nil {
			return err
		}
		return c.processSource(pipe, src, c.framesDir)
	}
}

// processSource drains a frame source through the pipeline, printing one
// record per detection and writing annotated frames alongside. A frame
// processing failure terminates the run; the pipeline's own filters
// already absorb routine bad input, so whatever reaches here is not worth
// resuming past.
func (c *CLI) processSource(pipe *pipeline.Pipeline, src source.FrameSource, name string) error {
	defer src.Close()

	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	frameIndex := 0
	total := 0

	for {
		frame, err := src.Next()
		if errors.Is(err, source.ErrEndOfStream) {
			break
		}
		if err != nil {
			return err
		}

		result, err := pipe.ProcessFrame(frame)
		if err != nil {
			return fmt.Errorf("frame %d: %w", frameIndex, err)
		}

		for _, plate := range result.Plates {
			fmt.Println(plate)
		}
		total += len(result.Plates)

		if len(result.Plates) > 0 {
			outPath := filepath.Join(c.outDir, fmt.Sprintf("%s_annotated_%04d.png", base, frameIndex))
			if err := imaging.Save(result.Annotated, outPath); err != nil {
				return fmt.Errorf("failed to save annotated frame: %w", err)
			}
			debugf("wrote %s", outPath)
		}
		frameIndex++
	}

	debugf("processed %d frame(s), %d detection(s)", frameIndex, total)
	return nil
}

func debugf(format string, args ...any) {
	if os.Getenv("PLATESIGHT_LOG_LEVEL") == "debug" {
		log.Printf(format, args...)
	}
}
