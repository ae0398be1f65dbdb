package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arloliu/flotsam/encoding"
	"github.com/arloliu/flotsam/endian"
	"github.com/arloliu/flotsam/internal/config"
)

func newEncodeCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "encode [file]",
		Short: "Encode numbers as flotsam text",
		Long: `Encode reads numbers from a file or stdin and prints their flotsam encoding
followed by a newline.

With --format text the input is whitespace-separated decimal numbers. With
--format raw it is packed IEEE-754 binary data in the configured byte order.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEncode(cmd, args, opts)
		},
	}
}

func runEncode(cmd *cobra.Command, args []string, opts *globalOptions) error {
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

	var (
		count int
		size  int
	)
	out := cmd.OutOrStdout()

	switch cfg.Width {
	case 32:
		count, size, err = encode32(out, data, cfg.Format, engine)
	default:
		count, size, err = encode64(out, data, cfg.Format, engine)
	}
	if err != nil {
		return err
	}

	if _, err := io.WriteString(out, "\n"); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	logger.Debug("encoded values", "count", count, "width", cfg.Width, "chars", size, "format", cfg.Format)

	return nil
}

func encode64(w io.Writer, data []byte, format string, engine endian.EndianEngine) (int, int, error) {
	var (
		values []float64
		err    error
	)
	if format == config.FormatRaw {
		values, err = endian.Float64s(engine, data)
	} else {
		values, err = parseNumbers(data, 64, func(v float64) float64 { return v })
	}
	if err != nil {
		return 0, 0, err
	}

	enc, err := encoding.NewFloat64Encoder(encoding.WithCapacity(len(values)))
	if err != nil {
		return 0, 0, err
	}
	defer enc.Finish()

	if err := enc.WriteSlice(values); err != nil {
		return 0, 0, fmt.Errorf("encoding input: %w", err)
	}

	if _, err := enc.WriteTo(w); err != nil {
		return 0, 0, fmt.Errorf("writing output: %w", err)
	}

	return enc.Len(), enc.Size(), nil
}

func encode32(w io.Writer, data []byte, format string, engine endian.EndianEngine) (int, int, error) {
	var (
		values []float32
		err    error
	)
	if format == config.FormatRaw {
		values, err = endian.Float32s(engine, data)
	} else {
		values, err = parseNumbers(data, 32, func(v float64) float32 { return float32(v) })
	}
	if err != nil {
		return 0, 0, err
	}

	enc, err := encoding.NewFloat32Encoder(encoding.WithCapacity(len(values)))
	if err != nil {
		return 0, 0, err
	}
	defer enc.Finish()

	if err := enc.WriteSlice(values); err != nil {
		return 0, 0, fmt.Errorf("encoding input: %w", err)
	}

	if _, err := enc.WriteTo(w); err != nil {
		return 0, 0, fmt.Errorf("writing output: %w", err)
	}

	return enc.Len(), enc.Size(), nil
}

// parseNumbers parses whitespace-separated decimal numbers at the given bit size.
func parseNumbers[T float32 | float64](data []byte, bitSize int, conv func(float64) T) ([]T, error) {
	fields := strings.Fields(string(data))
	values := make([]T, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, bitSize)
		if err != nil {
			return nil, fmt.Errorf("parsing number %d: %w", i, err)
		}
		values[i] = conv(v)
	}

	return values, nil
}
