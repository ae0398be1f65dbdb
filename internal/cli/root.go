// Package cli implements the flotsam command-line tool.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/arloliu/flotsam/internal/config"
)

// globalOptions holds the persistent flags shared by every subcommand.
type globalOptions struct {
	cfgFile   string
	verbose   bool
	width     int
	byteOrder string
	format    string
	strict    bool
}

// Execute runs the root command.
func Execute() error {
	return NewRootCommand().Execute()
}

// NewRootCommand builds the flotsam command tree.
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "flotsam",
		Short: "Encode float arrays as printable ASCII and back",
		Long: `Flotsam converts arrays of IEEE-754 floats to a fixed-width printable
ASCII text (10 characters per float64, 5 per float32) and decodes that text
back to the exact original bits.`,
		SilenceUsage: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.cfgFile, "config", "", "YAML config file with default settings")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output")
	pf.IntVarP(&opts.width, "width", "w", 64, "float width in bits: 32 or 64")
	pf.StringVar(&opts.byteOrder, "byte-order", "little", "byte order of raw binary data: little, big or native")
	pf.StringVarP(&opts.format, "format", "f", config.FormatText, "numeric side format: text or raw")
	pf.BoolVar(&opts.strict, "strict", false, "reject text that decodes to NaN or infinity")

	root.AddCommand(
		newEncodeCommand(opts),
		newDecodeCommand(opts),
		newVersionCommand(),
	)

	return root
}

// resolveConfig loads the config file, if any, and applies explicitly set flags on top.
func resolveConfig(cmd *cobra.Command, opts *globalOptions) (*config.Config, error) {
	cfg := config.Default()
	if opts.cfgFile != "" {
		loaded, err := config.Load(opts.cfgFile, false)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("width") {
		cfg.Width = opts.width
	}
	if flags.Changed("byte-order") {
		cfg.ByteOrder = opts.byteOrder
	}
	if flags.Changed("format") {
		cfg.Format = opts.format
	}
	if flags.Changed("strict") {
		cfg.Strict = opts.strict
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setupLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})

	return slog.New(handler)
}

// readInput reads the named file, or the command's stdin when no file is given.
func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}

		return data, nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}

	return data, nil
}
