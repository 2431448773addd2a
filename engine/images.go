package engine

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	// Page HTML occasionally carries non-PNG inline images.
	_ "image/gif"
	_ "image/jpeg"

	"golang.org/x/net/html"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// inlineImagePattern matches Markdown image references with inline data.
var inlineImagePattern = regexp.MustCompile(`!\[[^\]]*\]\(data:image/[^)]*\)`)

// anyImagePattern matches any Markdown image reference.
var anyImagePattern = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)

// stripInlineImages removes inline-data image references from Markdown.
func stripInlineImages(text string) string {
	return inlineImagePattern.ReplaceAllString(text, "")
}

// textWithoutImages returns the Markdown with every image reference removed
// and whitespace trimmed. An empty result means the page has no usable text
// layer.
func textWithoutImages(text string) string {
	return strings.TrimSpace(anyImagePattern.ReplaceAllString(text, ""))
}

// extractPageImages decodes inline images in the page HTML into PNG files
// and replaces each data URI with the written file's absolute path, so the
// Markdown rendered from it references files instead of inline data.
//
// The files land alongside the source document (see the package comment for
// why); the convert package relocates them afterward. Inline data that does
// not decode as an image is left in place rather than failing the page.
func (e *Engine) extractPageImages(docPath string, page int, pageHTML string) (string, error) {
	root, err := html.Parse(strings.NewReader(pageHTML))
	if err != nil {
		return "", fmt.Errorf("parsing page %d html: %w", page+1, err)
	}

	dir := filepath.Dir(docPath)
	base := filepath.Base(docPath)
	seq := 0
	var writeErr error

	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if writeErr != nil {
			return
		}
		if n.Type == html.ElementNode && n.Data == "img" {
			for i, attr := range n.Attr {
				if attr.Key != "src" || !strings.HasPrefix(attr.Val, "data:") {
					continue
				}
				data, err := decodeDataURI(attr.Val)
				if err != nil {
					continue
				}
				encoded, ok := e.toPNG(data)
				if !ok {
					continue
				}
				name := fmt.Sprintf("%s-%d-%d.png", base, page+1, seq)
				target := filepath.Join(dir, name)
				if err := os.WriteFile(target, encoded, 0o644); err != nil {
					writeErr = fmt.Errorf("writing image %s: %w", name, err)
					return
				}
				n.Attr[i].Val = target
				seq++
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(root)
	if writeErr != nil {
		return "", writeErr
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, root); err != nil {
		return "", fmt.Errorf("rendering page %d html: %w", page+1, err)
	}
	return buf.String(), nil
}

// toPNG validates decoded image data and returns it PNG-encoded. Images
// smaller than MinImageSide on either edge are rejected as decorative
// fragments; PNG input passes through unchanged.
func (e *Engine) toPNG(data []byte) ([]byte, bool) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, false
	}
	bounds := img.Bounds()
	if bounds.Dx() < e.MinImageSide || bounds.Dy() < e.MinImageSide {
		return nil, false
	}
	if format == "png" {
		return data, true
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, false
	}
	return buf.Bytes(), true
}

// decodeDataURI returns the payload bytes of a base64 data URI.
func decodeDataURI(uri string) ([]byte, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return nil, fmt.Errorf("not a data URI")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, fmt.Errorf("malformed data URI")
	}
	if !strings.HasSuffix(meta, ";base64") {
		return nil, fmt.Errorf("unsupported data URI encoding %q", meta)
	}
	return base64.StdEncoding.DecodeString(payload)
}
