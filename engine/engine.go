package engine

import (
	"fmt"
	"path/filepath"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/gen2brain/go-fitz"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/pdfmd/convert"
	"github.com/tsawler/pdfmd/ocr"
)

// Engine converts PDF files to Markdown. It implements convert.Converter.
// The zero value is not usable; construct with New.
type Engine struct {
	// Language selects the OCR language model for scanned pages.
	Language string

	// DPI is the render resolution for the OCR fallback.
	DPI float64

	// MinImageSide drops extracted images whose smaller edge is below this
	// many pixels; page HTML tends to carry decorative fragments.
	MinImageSide int

	ocrClient *ocr.Client
	ocrTried  bool
}

var _ convert.Converter = (*Engine)(nil)

// New returns an Engine with default settings.
func New() *Engine {
	return &Engine{
		Language:     "eng",
		DPI:          150,
		MinImageSide: 8,
	}
}

// Close releases the OCR client, if one was created.
func (e *Engine) Close() error {
	if e.ocrClient == nil {
		return nil
	}
	err := e.ocrClient.Close()
	e.ocrClient = nil
	return err
}

// ToMarkdown converts the document at path. Malformed or encrypted input
// surfaces as an error from the underlying library; there is no retry.
func (e *Engine) ToMarkdown(path string, opts convert.Options) (string, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", filepath.Base(path), err)
	}
	defer doc.Close()

	conv := md.NewConverter("", true, nil)

	var out strings.Builder
	for page := 0; page < doc.NumPage(); page++ {
		pageHTML, err := doc.HTML(page, true)
		if err != nil {
			return "", fmt.Errorf("rendering page %d: %w", page+1, err)
		}

		if opts.WriteImages {
			if pageHTML, err = e.extractPageImages(path, page, pageHTML); err != nil {
				return "", err
			}
		}

		text, err := conv.ConvertString(pageHTML)
		if err != nil {
			return "", fmt.Errorf("converting page %d: %w", page+1, err)
		}
		if !opts.WriteImages && !opts.EmbedImages {
			text = stripInlineImages(text)
		}
		text = strings.TrimSpace(text)

		if textWithoutImages(text) == "" {
			if recognized := e.ocrPage(doc, page); recognized != "" {
				if text != "" {
					text += "\n\n"
				}
				text += recognized
			}
		}
		if text == "" {
			continue
		}
		out.WriteString(text)
		out.WriteString("\n\n")
	}

	// PDF text extraction frequently yields decomposed accents; normalize
	// so downstream consumers see canonical UTF-8.
	return norm.NFC.String(out.String()), nil
}

// ocrPage recognizes a page render with Tesseract. Any failure along the
// way, including OCR not being available at all, yields an empty string:
// conversion proceeds without OCR capability.
func (e *Engine) ocrPage(doc *fitz.Document, page int) string {
	client := e.ocr()
	if client == nil {
		return ""
	}
	render, err := doc.ImagePNG(page, e.DPI)
	if err != nil {
		logrus.WithError(err).WithField("page", page+1).Debug("page render for OCR failed")
		return ""
	}
	text, err := client.RecognizePNG(render)
	if err != nil {
		logrus.WithError(err).WithField("page", page+1).Debug("ocr failed")
		return ""
	}
	return strings.TrimSpace(text)
}

func (e *Engine) ocr() *ocr.Client {
	if !e.ocrTried {
		e.ocrTried = true
		client, err := ocr.New(e.Language)
		if err != nil {
			logrus.WithError(err).Debug("ocr unavailable, scanned pages will yield no text")
		}
		e.ocrClient = client
	}
	return e.ocrClient
}
