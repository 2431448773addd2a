package tesseract

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

const (
	// Executable is the name Tesseract is looked up by on the search path.
	Executable = "tesseract"

	// DataDirEnv is the environment variable the OCR engine reads to find
	// its trained-language data files.
	DataDirEnv = "TESSDATA_PREFIX"

	// OverrideEnv optionally pins the executable path, skipping discovery.
	OverrideEnv = "PDFMD_TESSERACT"

	pathEnv = "PATH"
)

// trainedDataExt is the file extension of Tesseract language models.
const trainedDataExt = ".traineddata"

// Resolver discovers the Tesseract executable and applies the environment
// configuration the conversion engine depends on. All collaborators are
// injectable so tests can simulate any platform and environment; the zero
// value is not usable, construct with New.
type Resolver struct {
	// LookPath searches the executable search path. Defaults to exec.LookPath.
	LookPath func(file string) (string, error)

	// Getenv and Setenv access the process environment.
	Getenv func(key string) string
	Setenv func(key, value string) error

	// FileExists and DirExists probe the filesystem.
	FileExists func(path string) bool
	DirExists  func(path string) bool

	// ReadDir lists a directory. Used only for language reporting.
	ReadDir func(path string) ([]os.DirEntry, error)

	// GOOS selects platform-specific behavior. Defaults to runtime.GOOS.
	GOOS string

	// Override, when non-empty, is used as the executable path if it exists,
	// bypassing discovery. Populated from the PDFMD_TESSERACT variable by
	// the CLI layer.
	Override string
}

// Status describes the outcome of discovery and configuration.
type Status struct {
	// Path is the resolved executable path, empty when not found.
	Path string

	// OnPath reports whether the executable was reachable via the search
	// path without intervention.
	OnPath bool

	// AutoConfigured reports whether the search path was extended to make
	// the executable reachable.
	AutoConfigured bool

	// DataDir is the value of the data-directory variable after
	// configuration. May be empty.
	DataDir string
}

// Found reports whether a Tesseract executable was located.
func (s Status) Found() bool {
	return s.Path != ""
}

// New returns a Resolver wired to the real process environment.
func New() *Resolver {
	return &Resolver{
		LookPath: exec.LookPath,
		Getenv:   os.Getenv,
		Setenv:   os.Setenv,
		FileExists: func(path string) bool {
			info, err := os.Stat(path)
			return err == nil && !info.IsDir()
		},
		DirExists: func(path string) bool {
			info, err := os.Stat(path)
			return err == nil && info.IsDir()
		},
		ReadDir: os.ReadDir,
		GOOS:    runtime.GOOS,
	}
}

// windowsInstallDirs returns the well-known Tesseract installation
// directories on Windows, in the order they are checked.
func windowsInstallDirs(getenv func(string) string) []string {
	dirs := []string{
		`C:\Program Files\Tesseract-OCR`,
		`C:\Program Files (x86)\Tesseract-OCR`,
	}
	if v := getenv("LOCALAPPDATA"); v != "" {
		dirs = append(dirs, filepath.Join(v, "Programs", "Tesseract-OCR"))
	}
	if v := getenv("ProgramFiles"); v != "" {
		dirs = append(dirs, filepath.Join(v, "Tesseract-OCR"))
	}
	if v := getenv("ProgramFiles(x86)"); v != "" {
		dirs = append(dirs, filepath.Join(v, "Tesseract-OCR"))
	}
	return dirs
}

// Find locates the Tesseract executable without mutating the environment.
// onPath reports whether it was found via the search path; a hit through
// the override or the well-known install locations returns false.
func (r *Resolver) Find() (path string, onPath bool) {
	if r.Override != "" && r.FileExists(r.Override) {
		return r.Override, false
	}
	if p, err := r.LookPath(Executable); err == nil {
		return p, true
	}
	if r.GOOS == "windows" {
		for _, dir := range windowsInstallDirs(r.Getenv) {
			exe := filepath.Join(dir, "tesseract.exe")
			if r.FileExists(exe) {
				return exe, false
			}
		}
	}
	return "", false
}

// Configure locates Tesseract and applies environment configuration so the
// conversion engine can invoke it. When nothing is found the environment is
// left untouched. Repeated calls converge to the same environment state.
func (r *Resolver) Configure() Status {
	path, onPath := r.Find()
	st := Status{Path: path, OnPath: onPath, DataDir: r.Getenv(DataDirEnv)}
	if path == "" {
		return st
	}

	dir := filepath.Dir(path)

	// Windows installs commonly live outside PATH; the engine resolves the
	// executable by name, so the directory has to be reachable.
	if r.GOOS == "windows" && !onPath {
		if !searchPathContains(r.Getenv(pathEnv), dir) {
			if err := r.Setenv(pathEnv, dir+string(os.PathListSeparator)+r.Getenv(pathEnv)); err != nil {
				logrus.WithError(err).Warn("could not extend executable search path")
			}
		}
		st.AutoConfigured = true
	}

	// Set-if-absent only: a user's explicit data directory always wins.
	if r.Getenv(DataDirEnv) == "" {
		tessdata := filepath.Join(dir, "tessdata")
		if r.DirExists(tessdata) {
			if err := r.Setenv(DataDirEnv, tessdata); err != nil {
				logrus.WithError(err).Warn("could not set data-directory variable")
			}
		}
	}
	st.DataDir = r.Getenv(DataDirEnv)

	logrus.WithFields(logrus.Fields{
		"path":     st.Path,
		"on_path":  st.OnPath,
		"tessdata": st.DataDir,
	}).Debug("tesseract configured")
	return st
}

// Languages lists the installed language models for a discovered
// executable, derived from the tessdata directory beside it. The result is
// lexicographically sorted; nil when nothing is installed.
func (r *Resolver) Languages(st Status) []string {
	if !st.Found() {
		return nil
	}
	tessdata := filepath.Join(filepath.Dir(st.Path), "tessdata")
	entries, err := r.ReadDir(tessdata)
	if err != nil {
		return nil
	}
	var langs []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, trainedDataExt) {
			continue
		}
		langs = append(langs, strings.TrimSuffix(name, trainedDataExt))
	}
	sort.Strings(langs)
	return langs
}

// searchPathContains reports whether dir is already an entry of the search
// path value. The comparison is case-insensitive to match Windows
// filesystem semantics, which keeps repeated configuration from stacking
// duplicate entries.
func searchPathContains(pathValue, dir string) bool {
	for _, entry := range strings.Split(pathValue, string(os.PathListSeparator)) {
		if strings.EqualFold(strings.TrimSpace(entry), dir) {
			return true
		}
	}
	return false
}
