package process

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"stylecascade/dump"
	"stylecascade/state"
	"stylecascade/style"
)

// Format selects how a resolved catalog is written.
type Format int

const (
	FormatTree Format = iota
	FormatCells
	FormatIon
	FormatIonBinary
	FormatCSS
)

var formatNames = []string{"tree", "cells", "ion", "ion-binary", "css"}

func (f Format) String() string {
	if int(f) < len(formatNames) {
		return formatNames[f]
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// Ext returns file extension used when output goes into a directory.
func (f Format) Ext() string {
	switch f {
	case FormatIon:
		return ".ion"
	case FormatIonBinary:
		return ".10n"
	case FormatCSS:
		return ".css"
	default:
		return ".txt"
	}
}

func ParseFormat(name string) (Format, error) {
	for i, n := range formatNames {
		if strings.EqualFold(n, name) {
			return Format(i), nil
		}
	}
	return FormatTree, fmt.Errorf("unknown output format %q", name)
}

// FormatNames lists supported output formats.
func FormatNames() []string {
	return append([]string(nil), formatNames...)
}

// Resolve loads a style sheet, connects it and writes the result.
func Resolve(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("resolve")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no style sheet has been specified")
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	format, err := ParseFormat(cmd.String("format"))
	if err != nil {
		log.Warn("Unknown output format requested, switching to tree", zap.Error(err))
		format = FormatTree
	}
	ws := cmd.Int("ws")
	if ws != 0 && format != FormatTree && format != FormatCells {
		log.Warn("Writing system fonts are only listed in text formats, ignoring", zap.Int("ws", ws), zap.Stringer("format", format))
		ws = 0
	}

	log.Info("Processing starting", zap.String("source", src), zap.Stringer("format", format))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	cat, err := LoadCatalog(env, src, cmd.Bool("lenient"), log)
	if err != nil {
		return err
	}
	data, err := render(env, cat, format, ws, log)
	if err != nil {
		return err
	}
	return writeOutput(cmd, outputPath(src, cmd.Args().Get(1), format.Ext()), data, log)
}

func render(env *state.LocalEnv, cat *style.Catalog, format Format, ws int, log *zap.Logger) ([]byte, error) {
	switch format {
	case FormatIon:
		return dump.MarshalIon(cat, false)
	case FormatIonBinary:
		return dump.MarshalIon(cat, true)
	case FormatCSS:
		return []byte(dump.CSS(cat, env.WritingSystems, log).String()), nil
	}
	out := dump.Tree(cat, format == FormatCells)
	if ws != 0 {
		out += dump.Fonts(cat, ws)
	}
	return []byte(out), nil
}

func writeOutput(cmd *cli.Command, fname string, data []byte, log *zap.Logger) error {
	var out io.Writer = cmd.Root().Writer
	if len(fname) > 0 {
		f, err := os.Create(fname)
		if err != nil {
			return fmt.Errorf("unable to create destination file '%s': %w", fname, err)
		}
		defer f.Close()
		out = f
	} else {
		fname = "STDOUT"
	}
	log.Debug("Writing results", zap.String("file", fname), zap.Int("bytes", len(data)))

	if _, err := out.Write(data); err != nil {
		return fmt.Errorf("unable to write results: %w", err)
	}
	return nil
}
