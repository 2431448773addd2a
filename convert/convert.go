package convert

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

// ErrImageModeConflict is returned when a request selects both write-images
// and embed-images mode. It is a usage error: no conversion work has begun
// and no filesystem mutation has occurred when it is returned.
var ErrImageModeConflict = errors.New("write-images and embed-images are mutually exclusive")

// DefaultImageDirSuffix is appended to the input's base name to form the
// default image directory, placed alongside the input file.
const DefaultImageDirSuffix = "_images"

// Options is the configuration passed to a Converter.
//
// ImagePath is advisory: the current engine ignores it and writes extracted
// images next to the source document. It is still populated for forward
// compatibility, and the orchestrator compensates for the discrepancy.
type Options struct {
	WriteImages bool
	ImagePath   string
	EmbedImages bool
}

// Converter produces Markdown text from a PDF file. The path handed to
// ToMarkdown is always absolute.
type Converter interface {
	ToMarkdown(path string, opts Options) (string, error)
}

// Request describes one conversion invocation.
type Request struct {
	// Input is the source PDF. It is resolved to an absolute path before
	// use; the engine mis-concatenates relative paths.
	Input string

	// Output is the destination file. Empty means the input path with its
	// extension replaced by ".md". Ignored when Stdout is set.
	Output string

	// Stdout streams the Markdown to the orchestrator's writer instead of a
	// file.
	Stdout bool

	// WriteImages extracts images to ImageDir. Mutually exclusive with
	// EmbedImages.
	WriteImages bool

	// EmbedImages inlines images as encoded data in the Markdown.
	EmbedImages bool

	// ImageDir is the target directory for extracted images. Empty means
	// "<input stem>_images" beside the input file.
	ImageDir string
}

// Orchestrator runs conversions through a Converter and delivers the
// result. The writer fields default to the process streams; tests replace
// them.
type Orchestrator struct {
	Converter Converter

	// Stdout receives the raw UTF-8 Markdown bytes in stdout mode. Writing
	// bytes rather than text keeps platform newline and encoding
	// translation away from non-ASCII output.
	Stdout io.Writer

	// Stderr receives the one-line confirmation in file-output mode.
	Stderr io.Writer
}

// New returns an Orchestrator delivering to the process streams.
func New(c Converter) *Orchestrator {
	return &Orchestrator{Converter: c, Stdout: os.Stdout, Stderr: os.Stderr}
}

// Convert runs one conversion. Validation failures surface before any side
// effect; conversion and filesystem errors propagate without retry or
// partial-output cleanup.
func (o *Orchestrator) Convert(req Request) error {
	if req.WriteImages && req.EmbedImages {
		return ErrImageModeConflict
	}

	input, err := filepath.Abs(req.Input)
	if err != nil {
		return fmt.Errorf("resolving input path: %w", err)
	}
	sourceDir := filepath.Dir(input)

	output := req.Output
	if !req.Stdout {
		if output == "" {
			output = strings.TrimSuffix(input, filepath.Ext(input)) + ".md"
		}
		if output, err = filepath.Abs(output); err != nil {
			return fmt.Errorf("resolving output path: %w", err)
		}
	}

	var opts Options
	var before map[string]bool
	var imageDir string

	switch {
	case req.EmbedImages:
		opts.EmbedImages = true
	case req.WriteImages:
		opts.WriteImages = true
		imageDir = req.ImageDir
		if imageDir == "" {
			stem := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
			imageDir = filepath.Join(sourceDir, stem+DefaultImageDirSuffix)
		} else if imageDir, err = filepath.Abs(imageDir); err != nil {
			return fmt.Errorf("resolving image directory: %w", err)
		}
		if err := os.MkdirAll(imageDir, 0o755); err != nil {
			return fmt.Errorf("creating image directory: %w", err)
		}
		opts.ImagePath = imageDir

		// Snapshot before the conversion so the diff afterward identifies
		// exactly the images it produced, wherever it put them.
		if before, err = imageSnapshot(sourceDir); err != nil {
			return err
		}
	}

	text, err := o.Converter.ToMarkdown(input, opts)
	if err != nil {
		return fmt.Errorf("converting %s: %w", filepath.Base(input), err)
	}

	if req.WriteImages {
		if text, err = relocateImages(sourceDir, imageDir, text, before); err != nil {
			return err
		}
		if !req.Stdout {
			text = relativizeImagePaths(text, filepath.Dir(output))
		}
	}

	if req.Stdout {
		if _, err := o.Stdout.Write([]byte(text)); err != nil {
			return fmt.Errorf("writing to stdout: %w", err)
		}
		return nil
	}
	if err := os.WriteFile(output, []byte(text), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}
	fmt.Fprintf(o.Stderr, "Converted to %s\n", output)
	return nil
}

// imageSnapshot returns the set of PNG files currently present in dir.
func imageSnapshot(dir string) (map[string]bool, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.png"))
	if err != nil {
		return nil, fmt.Errorf("listing images in %s: %w", dir, err)
	}
	set := make(map[string]bool, len(matches))
	for _, m := range matches {
		set[m] = true
	}
	return set, nil
}

// relocateImages moves images the conversion dropped into the source
// directory over to imageDir and rewrites their references in the Markdown
// to the new absolute locations.
func relocateImages(sourceDir, imageDir, text string, before map[string]bool) (string, error) {
	after, err := imageSnapshot(sourceDir)
	if err != nil {
		return "", err
	}

	var created []string
	for path := range after {
		if !before[path] {
			created = append(created, path)
		}
	}
	sort.Strings(created)

	for _, old := range created {
		dest := filepath.Join(imageDir, filepath.Base(old))
		if err := moveFile(old, dest); err != nil {
			return "", fmt.Errorf("relocating %s: %w", filepath.Base(old), err)
		}
		text = strings.ReplaceAll(text, old, dest)
		logrus.WithFields(logrus.Fields{"from": old, "to": dest}).Debug("relocated image")
	}
	return text, nil
}

// moveFile renames src to dest, falling back to copy-and-remove when the
// two live on different filesystems.
func moveFile(src, dest string) error {
	if err := os.Rename(src, dest); err == nil {
		return nil
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return err
	}
	return os.Remove(src)
}
