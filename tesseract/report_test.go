package tesseract

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// installedResolver returns a resolver backed by a real temp install layout:
// a tesseract executable reachable via the fake search path and, when langs
// are given, a tessdata directory beside it.
func installedResolver(t *testing.T, langs ...string) (*Resolver, string) {
	t.Helper()
	dir := t.TempDir()
	exe := filepath.Join(dir, "tesseract")
	if err := os.WriteFile(exe, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	if len(langs) > 0 {
		tessdata := filepath.Join(dir, "tessdata")
		if err := os.Mkdir(tessdata, 0o755); err != nil {
			t.Fatal(err)
		}
		for _, lang := range langs {
			name := filepath.Join(tessdata, lang+trainedDataExt)
			if err := os.WriteFile(name, []byte("model"), 0o644); err != nil {
				t.Fatal(err)
			}
		}
	}

	env := map[string]string{}
	r := New()
	r.LookPath = func(string) (string, error) { return exe, nil }
	r.Getenv = func(key string) string { return env[key] }
	r.Setenv = func(key, value string) error {
		env[key] = value
		return nil
	}
	r.GOOS = "linux"
	return r, exe
}

func TestReportInstalled(t *testing.T) {
	r, exe := installedResolver(t, "osd", "eng", "deu")

	report := r.Report()
	if !strings.Contains(report, "Tesseract OCR: installed\n") {
		t.Errorf("report missing installed status:\n%s", report)
	}
	if !strings.Contains(report, "Executable: "+exe) {
		t.Errorf("report missing executable path:\n%s", report)
	}
	if !strings.Contains(report, DataDirEnv+": "+filepath.Join(filepath.Dir(exe), "tessdata")) {
		t.Errorf("report missing data directory:\n%s", report)
	}
	// Language list is sorted.
	if !strings.Contains(report, "Languages (3): deu, eng, osd") {
		t.Errorf("report missing sorted language list:\n%s", report)
	}
}

func TestReportInstalledWithoutTessdata(t *testing.T) {
	r, _ := installedResolver(t)

	report := r.Report()
	if !strings.Contains(report, "Tesseract OCR: installed\n") {
		t.Errorf("report missing installed status:\n%s", report)
	}
	if strings.Contains(report, "Languages") {
		t.Errorf("report lists languages without a tessdata directory:\n%s", report)
	}
	if strings.Contains(report, DataDirEnv+":") {
		t.Errorf("report shows %s when unset:\n%s", DataDirEnv, report)
	}
}

func TestReportAutoConfigured(t *testing.T) {
	exe := filepath.Join(`C:\Program Files\Tesseract-OCR`, "tesseract.exe")

	host := newFakeHost()
	host.files[exe] = true

	report := host.resolver("windows").Report()
	if !strings.Contains(report, "Tesseract OCR: installed (auto-configured)") {
		t.Errorf("report missing auto-configured status:\n%s", report)
	}
}

func TestReportNotFound(t *testing.T) {
	report := newFakeHost().resolver("linux").Report()
	if !strings.Contains(report, "Tesseract OCR: not found") {
		t.Errorf("report missing not-found status:\n%s", report)
	}
	if !strings.Contains(report, installHelpURL) {
		t.Errorf("report missing install help link:\n%s", report)
	}
}

func TestReportIdempotent(t *testing.T) {
	r, _ := installedResolver(t, "eng")
	first := r.Report()
	second := r.Report()
	if first != second {
		t.Errorf("repeated Report() diverged:\n%s\n---\n%s", first, second)
	}
}

func TestLanguagesIgnoresForeignFiles(t *testing.T) {
	r, exe := installedResolver(t, "eng")
	tessdata := filepath.Join(filepath.Dir(exe), "tessdata")
	if err := os.WriteFile(filepath.Join(tessdata, "README.md"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(tessdata, "configs"), 0o755); err != nil {
		t.Fatal(err)
	}

	st := r.Configure()
	langs := r.Languages(st)
	if len(langs) != 1 || langs[0] != "eng" {
		t.Errorf("Languages() = %v, want [eng]", langs)
	}
}
