package config

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readArchive(t *testing.T, path string) map[string]string {
	t.Helper()
	zr, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("failed to open report: %v", err)
	}
	defer zr.Close()

	out := make(map[string]string)
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("failed to open %s: %v", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("failed to read %s: %v", f.Name, err)
		}
		out[f.Name] = string(data)
	}
	return out
}

func TestReport_Archive(t *testing.T) {
	dir := t.TempDir()
	conf := ReporterConfig{Destination: filepath.Join(dir, "report.zip")}
	r, err := conf.Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	sheet := filepath.Join(dir, "styles.yaml")
	if err := os.WriteFile(sheet, []byte("styles: []\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := r.StoreCopy("sheets/styles.yaml", sheet); err != nil {
		t.Fatalf("StoreCopy() error = %v", err)
	}
	// changes after the copy was taken do not reach the report
	if err := os.WriteFile(sheet, []byte("changed"), 0644); err != nil {
		t.Fatal(err)
	}
	r.StoreData("config/config.yaml", []byte("version: 1\n"))
	r.Store("missing.log", filepath.Join(dir, "missing.log"))

	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	files := readArchive(t, conf.Destination)
	if got := files["sheets/styles.yaml"]; got != "styles: []\n" {
		t.Errorf("sheet copy = %q", got)
	}
	if got := files["config/config.yaml"]; got != "version: 1\n" {
		t.Errorf("config data = %q", got)
	}
	if _, ok := files["missing.log"]; ok {
		t.Error("absent file should not be archived")
	}
	manifest := files["MANIFEST"]
	for _, name := range []string{"sheets/styles.yaml", "config/config.yaml", "missing.log"} {
		if !strings.Contains(manifest, name) {
			t.Errorf("MANIFEST missing %s:\n%s", name, manifest)
		}
	}
}

func TestReportClose_RemovesScratchDirs(t *testing.T) {
	reportFile, err := os.CreateTemp("", "test-report-*.zip")
	if err != nil {
		t.Fatalf("failed to create temp report file: %v", err)
	}
	defer os.Remove(reportFile.Name())

	r := &Report{
		entries: make(map[string]entry),
		file:    reportFile,
	}

	scratch, err := os.MkdirTemp("", "test-trace-")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(scratch, "style-trace.txt"), []byte("trace"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	kept := t.TempDir()
	if err := os.WriteFile(filepath.Join(kept, "a.txt"), []byte("a"), 0644); err != nil {
		t.Fatal(err)
	}

	r.StoreScratch("trace", scratch)
	r.Store("kept", kept)

	if err := r.Close(); err != nil {
		t.Fatalf("Report.Close() error: %v", err)
	}

	if _, err := os.Stat(scratch); !os.IsNotExist(err) {
		os.RemoveAll(scratch)
		t.Error("expected scratch dir to be removed")
	}
	if _, err := os.Stat(kept); err != nil {
		t.Errorf("stored dir should not be removed: %v", err)
	}

	files := readArchive(t, reportFile.Name())
	if files["trace/style-trace.txt"] != "trace" || files["kept/a.txt"] != "a" {
		t.Errorf("archive entries = %v", files)
	}
}

func TestReport_StorePanicsOnConflict(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	r.Store("final.log", "/tmp/a.log")
	r.Store("final.log", "/tmp/a.log")

	defer func() {
		if recover() == nil {
			t.Error("expected panic on conflicting Store")
		}
	}()
	r.Store("final.log", "/tmp/b.log")
}

func TestReport_NilReport(t *testing.T) {
	var r *Report
	r.Store("a", "b")
	r.StoreScratch("a", "b")
	r.StoreData("a", nil)
	if err := r.StoreCopy("a", "/nonexistent"); err != nil {
		t.Errorf("StoreCopy on nil report should not error, got: %v", err)
	}
	if r.Name() != "" {
		t.Error("Name of nil report should be empty")
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close on nil report should not error, got: %v", err)
	}
}

func TestReportClose_NilFile(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	if err := r.Close(); err != nil {
		t.Errorf("Close with nil file should not error, got: %v", err)
	}
}
