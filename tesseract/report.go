package tesseract

import (
	"fmt"
	"strings"
)

// installHelpURL points users at Tesseract installers for every platform.
const installHelpURL = "https://github.com/UB-Mannheim/tesseract/wiki"

// Report runs discovery and configuration, then describes the result as
// human-readable text for the "check" command. It never fails: a missing
// engine is reported as a normal state together with installation guidance.
func (r *Resolver) Report() string {
	st := r.Configure()

	var b strings.Builder
	if !st.Found() {
		b.WriteString("Tesseract OCR: not found\n")
		b.WriteString("  OCR for scanned PDFs will not be available.\n")
		fmt.Fprintf(&b, "  See: %s\n", installHelpURL)
		return b.String()
	}

	status := "installed"
	if !st.OnPath {
		status = "installed (auto-configured)"
	}
	fmt.Fprintf(&b, "Tesseract OCR: %s\n", status)
	fmt.Fprintf(&b, "  Executable: %s\n", st.Path)
	if st.DataDir != "" {
		fmt.Fprintf(&b, "  %s: %s\n", DataDirEnv, st.DataDir)
	}
	if langs := r.Languages(st); len(langs) > 0 {
		fmt.Fprintf(&b, "  Languages (%d): %s\n", len(langs), strings.Join(langs, ", "))
	}
	return b.String()
}
