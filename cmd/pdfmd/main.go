// Command pdfmd converts PDF documents to Markdown, optionally extracting
// or embedding images, with Tesseract OCR for scanned pages when
// available.
//
//	pdfmd convert -to markdown [-o out.md] [flags] <input.pdf>
//	pdfmd check
//	pdfmd version
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/tsawler/pdfmd/convert"
	"github.com/tsawler/pdfmd/engine"
	"github.com/tsawler/pdfmd/tesseract"
)

// version is stamped by the release build via -ldflags.
var version = "dev"

// usageError marks failures that should exit with the usage status code.
type usageError struct {
	msg string
}

func (e usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return usageError{msg: fmt.Sprintf(format, args...)}
}

func main() {
	_ = godotenv.Load() // optional .env; absence is normal

	logrus.SetOutput(os.Stderr)
	logrus.SetLevel(logrus.WarnLevel)
	if s := os.Getenv("PDFMD_LOG_LEVEL"); s != "" {
		if level, err := logrus.ParseLevel(s); err == nil {
			logrus.SetLevel(level)
		}
	}

	// Tesseract has to be discoverable before the engine opens its first
	// document; the conversion library probes the environment at startup.
	resolver := tesseract.New()
	resolver.Override = os.Getenv(tesseract.OverrideEnv)

	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "convert":
		resolver.Configure()
		err = runConvert(os.Args[2:])
	case "check":
		// Discovery status is informational; absence is not a failure.
		fmt.Print(resolver.Report())
	case "version", "--version":
		fmt.Println("pdfmd " + version)
	case "help", "-h", "--help":
		printUsage(os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, "pdfmd: unknown command %q\n\n", os.Args[1])
		printUsage(os.Stderr)
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "pdfmd: %v\n", err)
		var usage usageError
		if errors.As(err, &usage) || errors.Is(err, convert.ErrImageModeConflict) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func runConvert(args []string) error {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Usage: pdfmd convert [flags] <input.pdf>")
		fs.PrintDefaults()
	}

	var (
		to          = fs.String("to", "", "Output format: markdown or md (required)")
		output      string
		useStdout   = fs.Bool("stdout", false, "Write output to stdout instead of a file")
		writeImages = fs.Bool("write-images", false, "Extract images to a directory (default: {input}_images)")
		embedImages = fs.Bool("embed-images", false, "Embed images as base64 in the markdown output")
		imageDir    = fs.String("image-dir", "", "Directory for extracted images")
		verbose     = fs.Bool("verbose", false, "Enable debug logging")
	)
	fs.StringVar(&output, "o", "", "Output file path (defaults to {input}.md)")
	fs.StringVar(&output, "output", "", "Output file path (defaults to {input}.md)")

	if err := fs.Parse(args); err != nil {
		return usagef("%v", err)
	}
	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return usagef("expected exactly one input file, got %d", fs.NArg())
	}
	switch *to {
	case "markdown", "md":
	case "":
		return usagef("missing required -to option")
	default:
		return usagef("unsupported output format %q (choose markdown or md)", *to)
	}

	input := fs.Arg(0)
	if err := validateInput(input); err != nil {
		return err
	}

	eng := engine.New()
	defer eng.Close()

	orch := convert.New(eng)
	return orch.Convert(convert.Request{
		Input:       input,
		Output:      output,
		Stdout:      *useStdout,
		WriteImages: *writeImages,
		EmbedImages: *embedImages,
		ImageDir:    *imageDir,
	})
}

// validateInput checks that the input exists and carries the PDF magic
// before any conversion work begins.
func validateInput(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return usagef("input file does not exist: %s", path)
		}
		return fmt.Errorf("opening input: %w", err)
	}
	defer f.Close()

	magic := make([]byte, 4)
	if _, err := io.ReadFull(f, magic); err != nil || string(magic) != "%PDF" {
		return usagef("%s does not look like a PDF file", path)
	}
	return nil
}

func printUsage(w *os.File) {
	fmt.Fprint(w, `pdfmd - PDF command-line tools

Usage:
  pdfmd convert [flags] <input.pdf>   Convert a PDF to Markdown
  pdfmd check                         Report Tesseract OCR availability
  pdfmd version                       Print the version

Convert flags:
  -to string         Output format: markdown or md (required)
  -o, -output string Output file path (defaults to {input}.md)
  -stdout            Write output to stdout instead of a file
  -write-images      Extract images to a directory (default: {input}_images)
  -embed-images      Embed images as base64 in the markdown output
  -image-dir string  Directory for extracted images
  -verbose           Enable debug logging

Environment:
  PDFMD_TESSERACT    Path to the tesseract executable (skips discovery)
  PDFMD_LOG_LEVEL    Log level (debug, info, warn, error)
  TESSDATA_PREFIX    Tesseract language data directory (set if absent)
`)
}
