//go:build ocr

// Package ocr recognizes text in page renders using the Tesseract engine
// via gosseract. It backs the engine package's scanned-page fallback.
//
// This implementation is selected by the "ocr" build tag and needs the
// Tesseract libraries installed at build time:
//
//	go build -tags ocr
//
// At run time Tesseract must also find its trained-language data; the
// tesseract package configures TESSDATA_PREFIX before the engine starts.
package ocr

import (
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// Client performs OCR over encoded images. Close it when done to release
// the underlying Tesseract resources.
type Client struct {
	client *gosseract.Client
}

// New creates a client configured for the given language model (for
// example "eng", or "eng+deu" for several). An empty lang keeps the
// engine default.
func New(lang string) (*Client, error) {
	client := gosseract.NewClient()
	if lang != "" {
		if err := client.SetLanguage(lang); err != nil {
			client.Close()
			return nil, fmt.Errorf("setting language %q: %w", lang, err)
		}
	}
	if err := client.SetPageSegMode(gosseract.PSM_AUTO); err != nil {
		client.Close()
		return nil, fmt.Errorf("setting page segmentation mode: %w", err)
	}
	return &Client{client: client}, nil
}

// Close releases OCR resources. Safe on a nil client.
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// RecognizePNG runs recognition over an encoded image (PNG, JPEG, TIFF)
// and returns the recognized text with surrounding whitespace trimmed.
func (c *Client) RecognizePNG(data []byte) (string, error) {
	if err := c.client.SetImageFromBytes(data); err != nil {
		return "", fmt.Errorf("setting image: %w", err)
	}
	text, err := c.client.Text()
	if err != nil {
		return "", fmt.Errorf("recognizing image: %w", err)
	}
	return strings.TrimSpace(text), nil
}
