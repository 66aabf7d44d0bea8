package main

import (
	"github.com/spf13/cobra"
)

func (cli *CLI) addConfigCommand() {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cli.config()
			if err != nil {
				return err
			}
			return cli.print(cfg)
		},
	}
	cli.rootCmd.AddCommand(configCmd)
}
