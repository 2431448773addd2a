// Package engine converts PDF documents to Markdown.
//
// Pages are rendered to HTML by MuPDF (via go-fitz) and rewritten to
// Markdown with html-to-markdown. Inline raster content arrives as data
// URIs in the page HTML; depending on the requested image mode the engine
// keeps them inline, strips them, or decodes them into PNG files on disk.
// Pages that carry no text layer fall back to Tesseract OCR over a page
// render, when OCR support is compiled in (the "ocr" build tag) and a
// Tesseract installation was configured beforehand — see the tesseract
// package.
//
// Known limitation: in write-images mode the extraction pipeline emits the
// image files alongside the source document. The ImagePath conversion
// option is accepted for forward compatibility but not yet honored; the
// convert package compensates by relocating the files after conversion.
package engine
