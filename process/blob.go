package process

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"stylecascade/dump"
	"stylecascade/font"
	"stylecascade/state"
)

// Encode prints the font property blob of a style as hex. With --ws the
// style's override for that writing system is encoded instead of its
// default font.
func Encode(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("encode")

	src, name := cmd.Args().Get(0), cmd.Args().Get(1)
	if len(src) == 0 || len(name) == 0 {
		return errors.New("style sheet and style name must be specified")
	}

	cat, err := LoadCatalog(env, src, cmd.Bool("lenient"), log)
	if err != nil {
		return err
	}
	s, err := cat.Get(name)
	if err != nil {
		return err
	}

	p := &s.DefaultFont
	if ws := cmd.Int("ws"); ws != 0 {
		o, ok := s.OverrideFor(ws)
		if !ok {
			return fmt.Errorf("style %q has no override for writing system %d", name, ws)
		}
		p = o
	}

	blob := font.Encode(*p)
	log.Debug("Font encoded", zap.String("style", name), zap.Int("explicit", p.ExplicitCount()), zap.Int("bytes", len(blob)))
	_, err = fmt.Fprintln(cmd.Root().Writer, hex.EncodeToString(blob))
	return err
}

// Decode parses a hex encoded font property blob and prints its cells
// together with the number of bytes the decoder consumed.
func Decode(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("decode")

	in := strings.Join(strings.Fields(strings.Join(cmd.Args().Slice(), "")), "")
	data, err := hex.DecodeString(in)
	if err != nil {
		return fmt.Errorf("unable to decode hex input: %w", err)
	}

	p, n := font.DecodeN(data)
	if n < len(data) {
		log.Warn("Font blob is truncated or malformed, trailing bytes ignored", zap.Int("consumed", n), zap.Int("size", len(data)))
	}

	w := cmd.Root().Writer
	if _, err := fmt.Fprintf(w, "consumed %d of %d bytes, %d explicit\n", n, len(data), p.ExplicitCount()); err != nil {
		return err
	}
	_, err = fmt.Fprint(w, dump.Font(&p))
	return err
}
