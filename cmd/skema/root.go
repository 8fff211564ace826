package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/reoring/skema/ast"
	"github.com/reoring/skema/schemadoc"
)

var (
	// Global flags
	schemaFile string
	verbose    bool

	logger = zerolog.Nop()
)

// errInvalid is returned when at least one input fails validation. The
// failure itself has already been printed.
var errInvalid = errors.New("validation failed")

var rootCmd = &cobra.Command{
	Use:   "skema",
	Short: "Validate JSON and YAML documents against schema documents",
	Long: `skema decodes input documents against a schema written in YAML or JSON.

Examples:
  skema check -s user.yaml user.json
  skema describe -s user.yaml
  skema jsonschema -s user.yaml`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = newLogger(cmd.ErrOrStderr(), verbose)
	},
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errInvalid) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&schemaFile, "schema", "s", "", "schema document (YAML or JSON)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output")
}

func newLogger(w io.Writer, debug bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}
	cw := zerolog.ConsoleWriter{Out: w, NoColor: !isTerminal(w)}
	return zerolog.New(cw).Level(level).With().Timestamp().Logger()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

func loadSchema() (ast.Node, error) {
	if schemaFile == "" {
		return nil, errors.New("--schema is required")
	}
	data, err := os.ReadFile(schemaFile)
	if err != nil {
		return nil, err
	}
	n, err := schemadoc.Load(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", schemaFile, err)
	}
	logger.Debug().Str("schema", schemaFile).Str("type", ast.Describe(n)).Msg("schema loaded")
	return n, nil
}
