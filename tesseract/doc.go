// Package tesseract locates the Tesseract OCR executable on the host and
// prepares the process environment so the conversion engine can invoke it.
//
// Discovery order: an explicit override path, then the executable search
// path, then (on Windows only) a list of well-known installation
// directories. When Tesseract is found outside the search path on Windows,
// its directory is prepended to PATH for the current process. Independently
// of platform, TESSDATA_PREFIX is pointed at the tessdata directory beside
// the executable when the variable is not already set; a user's explicit
// configuration is never overwritten.
//
// Configuration must complete before the engine package opens its first
// document, because the underlying conversion library probes the
// environment when it starts. Call Configure once from main:
//
//	res := tesseract.New()
//	res.Configure()
//
// Absence of Tesseract is a normal, reportable state, not an error:
// conversion proceeds without OCR capability, and Report describes the
// situation for the "check" command.
package tesseract
