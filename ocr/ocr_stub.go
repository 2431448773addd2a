//go:build !ocr

// Package ocr recognizes text in page renders using the Tesseract engine
// via gosseract. It backs the engine package's scanned-page fallback.
//
// This is the stub implementation used when the "ocr" build tag is not
// set; every operation reports ErrOCRNotEnabled and the engine simply
// emits no text for scanned pages. To enable OCR, rebuild with the
// Tesseract libraries installed:
//
//	go build -tags ocr
package ocr

import "errors"

// ErrOCRNotEnabled is returned when OCR support was not compiled in.
// Rebuild with -tags ocr to enable it.
var ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// Client is a stub OCR client; every operation fails with ErrOCRNotEnabled.
type Client struct{}

// New returns ErrOCRNotEnabled.
func New(lang string) (*Client, error) {
	return nil, ErrOCRNotEnabled
}

// Close is a no-op. Safe on a nil client.
func (c *Client) Close() error {
	return nil
}

// RecognizePNG returns ErrOCRNotEnabled.
func (c *Client) RecognizePNG(data []byte) (string, error) {
	return "", ErrOCRNotEnabled
}
