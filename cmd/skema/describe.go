package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reoring/skema/ast"
)

var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Print the type a schema document denotes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := loadSchema()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ast.Describe(unwrapNamed(n)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
}

// unwrapNamed looks through the lazy reference a root `ref` produces so the
// structure is printed instead of the definition name.
func unwrapNamed(n ast.Node) ast.Node {
	if l, ok := n.(*ast.Lazy); ok {
		return l.Thunk()
	}
	return n
}
