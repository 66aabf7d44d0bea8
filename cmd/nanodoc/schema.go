package main

import (
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

func (cli *CLI) addSchemaCommand() {
	schemaCmd := &cobra.Command{
		Use:   "schema",
		Short: "Inspect collection schemas",
	}

	exportCmd := &cobra.Command{
		Use:   "export <collection>",
		Short: "Print the schema of a collection as a JSON Schema document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, s, err := cli.loadSchema("export schema", args[0])
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(s.JSONSchema(), "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode JSON Schema: %w", err)
			}
			_, err = fmt.Fprintln(cli.stdout, string(data))
			return err
		},
	}

	validateCmd := &cobra.Command{
		Use:   "validate <collection> <json|->",
		Short: "Check a document against the collection schema without storing it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, s, err := cli.loadSchema("validate document", args[0])
			if err != nil {
				return err
			}
			doc, err := cli.document("validate document", args[1])
			if err != nil {
				return err
			}
			if err := s.Validate(doc); err != nil {
				return WrapError("validate document", err)
			}
			return cli.print(s.ApplyDefaults(doc))
		},
	}

	schemaCmd.AddCommand(exportCmd, validateCmd)
	cli.rootCmd.AddCommand(schemaCmd)
}
