package sheet

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

func writeBundle(t *testing.T, entries map[string]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bundle.zip")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	w := zip.NewWriter(f)
	for name, content := range entries {
		fw, err := w.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := fw.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	f.Close()
	return path
}

func TestLoadBundle(t *testing.T) {
	path := writeBundle(t, map[string]string{
		"10-extra.css":     `@import "base.css"; .Quote { -style-based-on: "Normal"; font-style: italic; }`,
		"2-headings.xml":   `<Styles><markup><tag id="Heading 1" basedOn="Normal"/></markup></Styles>`,
		"1-base.yaml":      "styles:\n  - name: Normal\n",
		"docs/readme.txt":  "not a sheet",
		"fonts/serif.woff": "binary",
	})

	core, logs := observer.New(zapcore.WarnLevel)
	defs, err := LoadFile(path, zap.New(core))
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	var names []string
	for _, d := range defs {
		names = append(names, d.Name)
	}
	want := []string{"Normal", "Heading 1", "Quote"}
	if len(names) != len(want) {
		t.Fatalf("names = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names = %v, want %v", names, want)
			break
		}
	}
	if defs[0].Source != path+"/1-base.yaml #1" {
		t.Errorf("Source = %q", defs[0].Source)
	}
	if logs.FilterMessage("@import is not followed here, ignoring").Len() != 1 {
		t.Errorf("expected import warning, got %v", logs.All())
	}
}

func TestLoadBundleErrors(t *testing.T) {
	path := writeBundle(t, map[string]string{
		"a.yaml": "styles:\n  - name: Normal\n",
		"b.yaml": "styles: [",
		"c.xml":  "<Other/>",
	})
	defs, err := LoadBundle(path, zaptest.NewLogger(t))
	if len(multierr.Errors(err)) != 2 {
		t.Errorf("errors = %v, want 2", err)
	}
	if len(defs) != 1 {
		t.Errorf("defs = %+v, want Normal only", defs)
	}

	core, logs := observer.New(zapcore.WarnLevel)
	empty := writeBundle(t, map[string]string{"readme.txt": "x"})
	if defs, err := LoadBundle(empty, zap.New(core)); err != nil || len(defs) != 0 {
		t.Errorf("LoadBundle(empty) = %v, %v", defs, err)
	}
	if logs.FilterMessage("Bundle has no style sheets").Len() != 1 {
		t.Error("expected empty bundle warning")
	}

	if _, err := LoadBundle(filepath.Join(t.TempDir(), "missing.zip"), nil); err == nil {
		t.Error("expected error for missing bundle")
	}
}
