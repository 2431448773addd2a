// Package convert orchestrates a single PDF-to-Markdown conversion.
//
// The conversion itself is delegated to a Converter (the engine package in
// production). The orchestrator's job is everything around that call:
// validating the request, resolving default output and image locations, and
// compensating for the engine's image-output defect. The engine accepts an
// image directory option but currently writes extracted images next to the
// source PDF instead; Convert snapshots the source directory before the
// conversion, diffs it afterward, moves exactly the new images to the
// requested directory, and rewrites the image references in the produced
// Markdown to match.
//
// The snapshot-and-diff compensation is not safe against concurrent
// conversions in the same source directory: two simultaneous runs could
// misattribute newly created images to each other. The tool targets a
// single ad hoc CLI invocation, so this is a documented limitation rather
// than a synchronized code path.
package convert
