package sheet

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// yamlSheet is the top level of a YAML style sheet.
type yamlSheet struct {
	Styles []Definition `yaml:"styles"`
}

// LoadYAML reads definitions from a YAML document with a top level "styles"
// list. Unknown fields are errors.
func LoadYAML(r io.Reader, source string) ([]Definition, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc yamlSheet
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("unable to decode %s: %w", source, err)
	}
	for i := range doc.Styles {
		doc.Styles[i].Source = fmt.Sprintf("%s #%d", source, i+1)
	}
	return doc.Styles, nil
}

// LoadFile reads a style sheet choosing the loader by file extension:
// .yaml/.yml, .xml, .css or .zip for a bundle of sheets.
func LoadFile(path string, log *zap.Logger) ([]Definition, error) {
	if log == nil {
		log = zap.NewNop()
	}

	var (
		defs []Definition
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".css":
		defs, err = NewCSSLoader(log).Load(path)
	case ".zip":
		defs, err = LoadBundle(path, log)
	default:
		if !isSheet(path) {
			return nil, fmt.Errorf("unsupported style sheet format %q", ext)
		}
		var data []byte
		if data, err = os.ReadFile(path); err != nil {
			return nil, fmt.Errorf("unable to read style sheet: %w", err)
		}
		defs, err = decode(data, path, log)
	}
	if err != nil {
		return nil, err
	}
	log.Debug("Style sheet loaded", zap.String("path", path), zap.Int("styles", len(defs)))
	return defs, nil
}

func isSheet(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml", ".xml", ".css":
		return true
	}
	return false
}

// decode parses in-memory YAML, XML or CSS sheet, source names it and
// selects the format. CSS imports are not followed.
func decode(data []byte, source string, log *zap.Logger) ([]Definition, error) {
	switch strings.ToLower(path.Ext(source)) {
	case ".yaml", ".yml":
		return LoadYAML(bytes.NewReader(data), source)
	case ".xml":
		return LoadXML(bytes.NewReader(data), source, log)
	case ".css":
		return NewCSSLoader(log).Parse(data, source), nil
	}
	return nil, fmt.Errorf("unsupported style sheet format %q", path.Ext(source))
}
