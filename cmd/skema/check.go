package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/reoring/skema"
	"github.com/reoring/skema/ast"
	"github.com/reoring/skema/source/gojson"
)

var checkCmd = &cobra.Command{
	Use:   "check [input...]",
	Short: "Decode input documents against the schema",
	Long: `Decode each input against the schema and report the result.

Inputs ending in .yaml or .yml are read as YAML, everything else as JSON.
With no input, or "-", stdin is read.

Examples:
  skema check -s user.yaml user.json
  cat user.json | skema check -s user.yaml --all-errors --tree
  skema check -s user.yaml --diff user.json`,
	RunE: runCheck,
}

type checkOptions struct {
	driver        string
	allErrors     bool
	maxDepth      int
	maxBytes      int64
	duplicateKeys string
	yaml          bool
	tree          bool
	diff          bool
}

var checkOpts checkOptions

func init() {
	rootCmd.AddCommand(checkCmd)

	f := checkCmd.Flags()
	f.StringVar(&checkOpts.driver, "driver", "std", "JSON driver: std or gojson")
	f.BoolVar(&checkOpts.allErrors, "all-errors", false, "report every failure instead of the first")
	f.IntVar(&checkOpts.maxDepth, "max-depth", 0, "maximum nesting depth (0 = unlimited)")
	f.Int64Var(&checkOpts.maxBytes, "max-bytes", 0, "maximum input size in bytes (0 = unlimited)")
	f.StringVar(&checkOpts.duplicateKeys, "duplicate-keys", "ignore", "duplicate JSON keys: ignore, warn or error")
	f.BoolVar(&checkOpts.yaml, "yaml", false, "read every input as YAML")
	f.BoolVar(&checkOpts.tree, "tree", false, "print failures as a tree")
	f.BoolVar(&checkOpts.diff, "diff", false, "show how decoding changed the input")
}

func runCheck(cmd *cobra.Command, args []string) error {
	n, err := loadSchema()
	if err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	ui := newPrinter(cmd.OutOrStdout())
	failed := false
	for _, name := range args {
		ok, err := checkOne(cmd.Context(), ui, n, name, cmd.InOrStdin(), checkOpts)
		if err != nil {
			return err
		}
		failed = failed || !ok
	}
	if failed {
		return errInvalid
	}
	return nil
}

// checkOne decodes a single input and prints its result. It reports false
// when the input failed, and an error only for unusable options.
func checkOne(ctx context.Context, ui *printer, n ast.Node, name string, stdin io.Reader, o checkOptions) (bool, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	data, err := readInput(name, stdin)
	if err != nil {
		return false, err
	}
	src, err := sourceFor(name, data, o)
	if err != nil {
		return false, err
	}
	dup, err := severity(o.duplicateKeys)
	if err != nil {
		return false, err
	}
	label := name
	if name == "-" {
		label = "<stdin>"
	}
	opt := skema.ParseOpt{
		Strictness: skema.Strictness{OnDuplicateKey: dup},
		MaxDepth:   o.maxDepth,
		MaxBytes:   o.maxBytes,
		AllErrors:  o.allErrors,
		OnIssue: func(iss skema.Issue) {
			logger.Warn().Str("input", label).Str("path", iss.Path).Str("code", iss.Code).Msg(iss.Message)
		},
	}
	logger.Debug().Str("input", label).Int("bytes", len(data)).Msg("decoding")
	res, err := skema.ParseFrom(ctx, n, src, opt)
	if err != nil {
		ui.fail(label)
		if iss, ok := skema.AsIssues(err); ok {
			for _, is := range iss {
				ui.line("  " + is.Code + " at " + is.Path + ": " + is.Message)
			}
		} else {
			ui.line("  " + err.Error())
		}
		return false, nil
	}
	switch res.Outcome() {
	case skema.Failure:
		ui.fail(label)
		if o.tree {
			ui.line(indent(res.Errors.Tree()))
		} else {
			for _, m := range res.Messages() {
				ui.line("  " + m)
			}
		}
		return false, nil
	case skema.Warning:
		ui.warn(label)
		for _, m := range res.Messages() {
			ui.line("  " + m)
		}
	default:
		ui.ok(label)
	}
	if o.diff {
		in, err := sourceFor(name, data, o)
		if err != nil {
			return false, err
		}
		before, err := skema.Materialize(in)
		if err != nil {
			return false, err
		}
		if err := ui.diff(before, res.Value); err != nil {
			return false, err
		}
	}
	return true, nil
}

func readInput(name string, stdin io.Reader) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(name)
}

func sourceFor(name string, data []byte, o checkOptions) (skema.Source, error) {
	ext := strings.ToLower(filepath.Ext(name))
	if o.yaml || ext == ".yaml" || ext == ".yml" {
		return skema.YAMLReader(bytes.NewReader(data)), nil
	}
	switch o.driver {
	case "std", "":
		return skema.JSONBytes(data), nil
	case "gojson":
		return gojson.Driver().NewBytes(data), nil
	}
	return nil, fmt.Errorf("unknown driver %q", o.driver)
}

func severity(s string) (skema.Severity, error) {
	switch s {
	case "ignore", "":
		return skema.Ignore, nil
	case "warn":
		return skema.Warn, nil
	case "error":
		return skema.Error, nil
	}
	return skema.Ignore, fmt.Errorf("unknown duplicate-keys mode %q", s)
}

func indent(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = "  " + l
	}
	return strings.Join(lines, "\n")
}
