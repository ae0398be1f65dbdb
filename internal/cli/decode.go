package cli

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arloliu/flotsam/encoding"
	"github.com/arloliu/flotsam/endian"
	"github.com/arloliu/flotsam/internal/config"
)

func newDecodeCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "decode [file]",
		Short: "Decode flotsam text to numbers",
		Long: `Decode reads flotsam text from a file or stdin and prints the values, one
per line with --format text, or as packed IEEE-754 binary with --format raw.

A single trailing newline is ignored. Spaces are part of the encoding and are
never trimmed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecode(cmd, args, opts)
		},
	}
}

func runDecode(cmd *cobra.Command, args []string, opts *globalOptions) error {
	logger := setupLogger(cmd.ErrOrStderr(), opts.verbose)

	cfg, err := resolveConfig(cmd, opts)
	if err != nil {
		return err
	}

	data, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	engine, err := cfg.Engine()
	if err != nil {
		return err
	}

	text := trimNewline(string(data))
	out := bufio.NewWriter(cmd.OutOrStdout())

	var count int
	switch cfg.Width {
	case 32:
		count, err = decode32(out, text, cfg, engine)
	default:
		count, err = decode64(out, text, cfg, engine)
	}
	if err != nil {
		return err
	}

	if err := out.Flush(); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	logger.Debug("decoded values", "count", count, "width", cfg.Width, "strict", cfg.Strict, "format", cfg.Format)

	return nil
}

func decode64(w *bufio.Writer, text string, cfg *config.Config, engine endian.EndianEngine) (int, error) {
	dec, err := encoding.NewFloat64Decoder(encoding.WithStrict(cfg.Strict))
	if err != nil {
		return 0, err
	}

	values, err := dec.Decode(text)
	if err != nil {
		return 0, fmt.Errorf("decoding input: %w", err)
	}

	if cfg.Format == config.FormatRaw {
		_, err = w.Write(endian.AppendFloat64s(engine, nil, values))
		return len(values), err
	}

	buf := make([]byte, 0, 32)
	for _, v := range values {
		buf = strconv.AppendFloat(buf[:0], v, 'g', -1, 64)
		buf = append(buf, '\n')
		if _, err := w.Write(buf); err != nil {
			return 0, err
		}
	}

	return len(values), nil
}

func decode32(w *bufio.Writer, text string, cfg *config.Config, engine endian.EndianEngine) (int, error) {
	dec, err := encoding.NewFloat32Decoder(encoding.WithStrict(cfg.Strict))
	if err != nil {
		return 0, err
	}

	values, err := dec.Decode(text)
	if err != nil {
		return 0, fmt.Errorf("decoding input: %w", err)
	}

	if cfg.Format == config.FormatRaw {
		_, err = w.Write(endian.AppendFloat32s(engine, nil, values))
		return len(values), err
	}

	buf := make([]byte, 0, 32)
	for _, v := range values {
		buf = strconv.AppendFloat(buf[:0], float64(v), 'g', -1, 32)
		buf = append(buf, '\n')
		if _, err := w.Write(buf); err != nil {
			return 0, err
		}
	}

	return len(values), nil
}

// trimNewline removes one trailing "\n" or "\r\n".
func trimNewline(s string) string {
	if s, ok := strings.CutSuffix(s, "\n"); ok {
		return strings.TrimSuffix(s, "\r")
	}

	return s
}
