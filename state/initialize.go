package state

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"stylecascade/misc"
	"stylecascade/style"
	"stylecascade/wsys"
)

// newLocalEnv creates a new LocalEnv instance with default values
func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		start: time.Now(),
	}
}

// PrepareStyles builds the writing system directory from configuration and,
// when debug report is requested, a tracer whose output goes into the
// report. Calling it again is a no-op.
func (e *LocalEnv) PrepareStyles() error {
	if e.WritingSystems != nil {
		return nil
	}
	if e.Cfg == nil {
		return fmt.Errorf("configuration is not loaded")
	}

	log := e.Log
	if log == nil {
		log = zap.NewNop()
	}
	dir := wsys.New(e.Cfg.Styles.DefaultFamily, log)
	for _, ws := range e.Cfg.WritingSystems {
		if err := dir.Add(ws.ID, ws.Lang, ws.DefaultFont); err != nil {
			return fmt.Errorf("unable to prepare writing systems: %w", err)
		}
	}

	var workDir string
	if e.Rpt != nil {
		var err error
		if workDir, err = os.MkdirTemp("", misc.GetAppName()+"-trace-"); err != nil {
			return fmt.Errorf("unable to create trace directory: %w", err)
		}
		e.Rpt.StoreScratch("trace", workDir)
	}

	e.WritingSystems = dir
	e.Tracer = style.NewTracer(workDir)
	log.Debug("Writing systems prepared", zap.Int("count", dir.Len()), zap.Bool("trace", e.Tracer.IsEnabled()))
	return nil
}

// CatalogOptions returns catalog options derived from configuration.
func (e *LocalEnv) CatalogOptions() []style.Option {
	opts := []style.Option{style.WithTracer(e.Tracer)}
	if e.Cfg != nil {
		opts = append(opts, style.WithNormalStyle(e.Cfg.Styles.NormalStyle))
		if !e.Cfg.Styles.StrictCycles {
			opts = append(opts, style.WithCycleRepair())
		}
	}
	return opts
}
