// Package source abstracts where frames come from. The pipeline itself is
// single-frame and stateless; a FrameSource feeds it decoded frames one at
// a time and signals end of stream with ErrEndOfStream, which is a normal
// termination condition rather than a failure.
package source

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/platesight/platesight/internal/imaging"
)

// ErrEndOfStream is returned by Next when a source has no more frames.
// Check with errors.Is.
var ErrEndOfStream = errors.New("end of stream")

// FrameSource supplies decoded frames in order.
type FrameSource interface {
	// Next returns the next frame, or ErrEndOfStream when the source is
	// exhausted. Any other error means the source is broken and should be
	// abandoned; frame inputs are assumed fixed, so errors are not
	// transient and not retried.
	Next() (image.Image, error)
	Close() error
}

// ImageSource yields a single image file as a one-frame stream.
type ImageSource struct {
	path string
	done bool
}

// NewImageSource returns a source for one image file. The file is decoded
// lazily on the first Next call.
func NewImageSource(path string) *ImageSource {
	return &ImageSource{path: path}
}

// Next returns the image on the first call and ErrEndOfStream afterwards.
func (s *ImageSource) Next() (image.Image, error) {
	if s.done {
		return nil, ErrEndOfStream
	}
	s.done = true
	return imaging.LoadFile(s.path)
}

// Close is a no-op for image sources.
func (s *ImageSource) Close() error { return nil }

// DirSource yields the image files of a directory as a frame sequence, in
// sorted filename order. It stands in for a decoded video stream: name
// order is frame order.
type DirSource struct {
	paths []string
	next  int
}

// NewDirSource scans a directory for image files (png, jpg, jpeg, gif) and
// returns a source over them. Subdirectories are not descended into.
// Returns an error if the directory cannot be read or contains no frames.
func NewDirSource(dir string) (*DirSource, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read frame directory: %w", err)
	}

	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".png", ".jpg", ".jpeg", ".gif":
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no image frames found in %s", dir)
	}
	sort.Strings(paths)

	return &DirSource{paths: paths}, nil
}

// Next decodes and returns the next frame in filename order.
func (s *DirSource) Next() (image.Image, error) {
	if s.next >= len(s.paths) {
		return nil, ErrEndOfStream
	}
	path := s.paths[s.next]
	s.next++
	return imaging.LoadFile(path)
}

// Close is a no-op for directory sources.
func (s *DirSource) Close() error { return nil }
