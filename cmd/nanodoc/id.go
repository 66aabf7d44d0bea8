package main

import (
	"github.com/arthur-debert/nanodoc/nanodoc/ids"
	"github.com/spf13/cobra"
)

func (cli *CLI) addIDCommand() {
	idCmd := &cobra.Command{
		Use:   "id",
		Short: "Generate or validate document identifiers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gen := ids.New(cli.viperInst.GetString("id-prefix"))

			if cmd.Flags().Changed("validate") {
				value, _ := cmd.Flags().GetString("validate")
				if _, err := gen.Parse(value); err != nil {
					return NewValidationError("validate identifier", "identifier", value,
						"Identifiers look like "+gen.Prefix()+":<uuid-v4>",
						"Use --id-prefix if the identifier has another prefix")
				}
				return cli.print(map[string]any{"id": value, "valid": true})
			}

			count, _ := cmd.Flags().GetInt("count")
			if count < 1 {
				return NewValidationError("generate identifiers", "count", cmd.Flag("count").Value.String())
			}
			out := make([]string, count)
			for i := range out {
				out[i] = gen.Generate()
			}
			if count == 1 {
				return cli.print(out[0])
			}
			return cli.print(out)
		},
	}
	idCmd.Flags().String("validate", "", "Identifier to validate instead of generating")
	idCmd.Flags().IntP("count", "n", 1, "Number of identifiers to generate")

	cli.rootCmd.AddCommand(idCmd)
}
