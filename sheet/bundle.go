package sheet

import (
	"archive/zip"
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"stylecascade/archive"
)

// LoadBundle reads every style sheet stored in the zip archive at path.
// Sheets are read in natural order of their names and their definitions
// concatenated, so a style defined twice is reported by Build. Problems in
// individual sheets are collected, the definitions which could be read are
// returned regardless.
func LoadBundle(path string, log *zap.Logger) ([]Definition, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("bundle")

	var (
		defs   []Definition
		errs   error
		sheets int
	)
	err := archive.Walk(path, isSheet, func(arc string, f *zip.File) error {
		data, err := archive.ReadFile(f)
		if err != nil {
			return err
		}
		sheets++
		more, err := decode(data, arc+"/"+f.Name, log)
		if err != nil {
			errs = multierr.Append(errs, err)
			return nil
		}
		log.Debug("Bundled style sheet loaded", zap.String("entry", f.Name), zap.Int("styles", len(more)))
		defs = append(defs, more...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("unable to read style sheet bundle: %w", err)
	}
	if sheets == 0 {
		log.Warn("Bundle has no style sheets", zap.String("path", path))
	}
	return defs, errs
}
