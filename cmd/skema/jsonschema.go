package main

import (
	gojson "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/reoring/skema/jsonschema"
)

var jsonschemaCmd = &cobra.Command{
	Use:   "jsonschema",
	Short: "Project a schema document to JSON Schema (draft 2020-12)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := loadSchema()
		if err != nil {
			return err
		}
		s, err := jsonschema.FromAST(n)
		if err != nil {
			return err
		}
		out, err := gojson.MarshalIndent(s, "", "  ")
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(append(out, '\n'))
		return err
	},
}

func init() {
	rootCmd.AddCommand(jsonschemaCmd)
}
