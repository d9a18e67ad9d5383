// Package process implements stylecat subcommands: resolving style sheets
// into connected catalogs and working with font property blobs.
package process

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"stylecascade/config"
	"stylecascade/sheet"
	"stylecascade/state"
	"stylecascade/style"
)

// LoadCatalog reads the style sheet at path and returns the connected
// catalog. Definitions which cannot be converted fail the load unless
// lenient is set, in which case they are logged and skipped.
func LoadCatalog(env *state.LocalEnv, path string, lenient bool, log *zap.Logger) (*style.Catalog, error) {
	if err := env.PrepareStyles(); err != nil {
		return nil, err
	}
	if err := env.Rpt.StoreCopy("sheets/"+config.CleanFileName(filepath.Base(path)), path); err != nil {
		log.Warn("Unable to store style sheet in report", zap.String("path", path), zap.Error(err))
	}

	defs, err := sheet.LoadFile(path, log)
	if err != nil {
		return nil, err
	}
	cat, err := sheet.NewBuilder(env.WritingSystems, log, env.CatalogOptions()...).Build(defs)
	if err != nil {
		if !lenient {
			return nil, fmt.Errorf("unable to build styles from '%s': %w", path, err)
		}
		for _, e := range multierr.Errors(err) {
			log.Warn("Style skipped", zap.Error(e))
		}
	}

	err = cat.ConnectStyles()
	if name := env.Tracer.Flush(); name != "" {
		log.Debug("Style trace written", zap.String("file", name))
	}
	if err != nil {
		return nil, fmt.Errorf("unable to connect styles: %w", err)
	}
	log.Debug("Styles connected", zap.Int("count", cat.Len()), zap.String("normal", cat.NormalStyleName()))
	return cat, nil
}

// outputPath returns where to write results for source src. Empty dst means
// standard output, an existing directory receives a file named after src.
func outputPath(src, dst, ext string) string {
	if dst == "" {
		return ""
	}
	if info, err := os.Stat(dst); err == nil && info.IsDir() {
		stem := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
		return filepath.Join(dst, config.CleanFileName(stem)+ext)
	}
	return dst
}
