package state

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"stylecascade/config"
	"stylecascade/style"
)

func TestContextWithEnv(t *testing.T) {
	ctx := ContextWithEnv(context.Background())
	if ctx == nil {
		t.Fatal("ContextWithEnv() returned nil")
	}

	env := EnvFromContext(ctx)
	if env == nil {
		t.Fatal("EnvFromContext() returned nil")
	}
	if env.start.IsZero() {
		t.Error("Environment start time not set")
	}
}

func TestEnvFromContext(t *testing.T) {
	t.Run("valid context", func(t *testing.T) {
		if env := EnvFromContext(ContextWithEnv(context.Background())); env == nil {
			t.Error("Expected non-nil environment")
		}
	})

	t.Run("panic on missing env", func(t *testing.T) {
		defer func() {
			if r := recover(); r == nil {
				t.Error("Expected panic when env not in context")
			}
		}()
		EnvFromContext(context.Background())
	})
}

func TestLocalEnv_Uptime(t *testing.T) {
	env := EnvFromContext(ContextWithEnv(context.Background()))

	time.Sleep(10 * time.Millisecond)
	uptime := env.Uptime()

	if uptime < 10*time.Millisecond {
		t.Errorf("Uptime() = %v, expected at least 10ms", uptime)
	}
	if uptime > 1*time.Second {
		t.Errorf("Uptime() = %v, unexpectedly large", uptime)
	}
}

func TestLocalEnv_RedirectAndRestore(t *testing.T) {
	t.Run("with logger", func(t *testing.T) {
		env := &LocalEnv{
			Log: zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1))),
		}
		for i := range 3 {
			env.RedirectStdLog()
			if env.restoreStdLog == nil {
				t.Errorf("Iteration %d: restoreStdLog not set", i)
			}
			env.RestoreStdLog()
		}
	})

	t.Run("without logger", func(t *testing.T) {
		env := &LocalEnv{}
		env.RedirectStdLog()
		if env.restoreStdLog != nil {
			t.Error("Expected restoreStdLog to remain nil")
		}
		env.RestoreStdLog()
	})
}

func testConfig() *config.Config {
	return &config.Config{
		Version: 1,
		Styles: config.StylesConfig{
			NormalStyle:   "Body",
			DefaultFamily: "Charis SIL",
			StrictCycles:  true,
		},
		WritingSystems: []config.WritingSystemConfig{
			{ID: 1, Lang: "en", DefaultFont: "Times New Roman"},
			{ID: 2, Lang: "ar"},
		},
	}
}

func TestLocalEnv_PrepareStyles(t *testing.T) {
	env := &LocalEnv{Cfg: testConfig(), Log: zaptest.NewLogger(t)}
	if err := env.PrepareStyles(); err != nil {
		t.Fatalf("PrepareStyles() error = %v", err)
	}

	if env.WritingSystems.Len() != 2 {
		t.Errorf("writing systems = %d, want 2", env.WritingSystems.Len())
	}
	if got := env.WritingSystems.DefaultFontFamily(1); got != "Times New Roman" {
		t.Errorf("DefaultFontFamily(1) = %q", got)
	}
	if got := env.WritingSystems.DefaultFontFamily(2); got != "Charis SIL" {
		t.Errorf("DefaultFontFamily(2) = %q, want fallback", got)
	}
	if env.Tracer.IsEnabled() {
		t.Error("tracer should be disabled without report")
	}

	dir := env.WritingSystems
	if err := env.PrepareStyles(); err != nil || env.WritingSystems != dir {
		t.Error("second PrepareStyles() should be a no-op")
	}
}

func TestLocalEnv_PrepareStylesWithReport(t *testing.T) {
	rpt, err := (&config.ReporterConfig{Destination: filepath.Join(t.TempDir(), "report.zip")}).Prepare()
	if err != nil {
		t.Fatal(err)
	}
	defer rpt.Close()

	env := &LocalEnv{Cfg: testConfig(), Rpt: rpt, Log: zaptest.NewLogger(t)}
	if err := env.PrepareStyles(); err != nil {
		t.Fatalf("PrepareStyles() error = %v", err)
	}
	if !env.Tracer.IsEnabled() {
		t.Error("tracer should be enabled with report")
	}
}

func TestLocalEnv_PrepareStylesErrors(t *testing.T) {
	if err := (&LocalEnv{}).PrepareStyles(); err == nil {
		t.Error("expected error without configuration")
	}

	cfg := testConfig()
	cfg.WritingSystems = append(cfg.WritingSystems, config.WritingSystemConfig{ID: 1, Lang: "de"})
	if err := (&LocalEnv{Cfg: cfg}).PrepareStyles(); err == nil {
		t.Error("expected error for duplicate writing system")
	}
}

func TestLocalEnv_CatalogOptions(t *testing.T) {
	cycle := func(t *testing.T, strict bool) error {
		cfg := testConfig()
		cfg.Styles.StrictCycles = strict
		env := &LocalEnv{Cfg: cfg}

		cat := style.NewCatalog(env.CatalogOptions()...)
		a, b := style.New("A", style.KindParagraph), style.New("B", style.KindParagraph)
		a.BasedOnName, b.BasedOnName = "B", "A"
		if err := cat.Add(a); err != nil {
			t.Fatal(err)
		}
		if err := cat.Add(b); err != nil {
			t.Fatal(err)
		}
		if cat.NormalStyleName() != "Body" {
			t.Errorf("NormalStyleName() = %q, want Body", cat.NormalStyleName())
		}
		return cat.ConnectStyles()
	}

	if err := cycle(t, true); err == nil {
		t.Error("strict cycles: expected error")
	}
	if err := cycle(t, false); err != nil {
		t.Errorf("repaired cycles: unexpected error %v", err)
	}
}
