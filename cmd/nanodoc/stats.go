package main

import (
	"errors"

	"github.com/arthur-debert/nanodoc/nanodoc/meta"
	"github.com/arthur-debert/nanodoc/types"
	"github.com/spf13/cobra"
)

// statsReport is printed by the stats command.
type statsReport struct {
	Interactions      meta.Interactions `json:"interactions" yaml:"interactions"`
	Uptime            float64           `json:"uptime" yaml:"uptime"`
	CountInteractions bool              `json:"countInteractions" yaml:"countInteractions"`
	TickSeconds       float64           `json:"tickSeconds" yaml:"tickSeconds"`
}

func (cli *CLI) addStatsCommand() {
	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show the interaction counters, uptime and settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := cli.open()
			if err != nil {
				return err
			}
			reset, _ := cmd.Flags().GetBool("reset-session")
			if reset {
				if err := db.Counters().ResetSession(); err != nil {
					return WrapError("reset session", err)
				}
			}

			in, err := db.Counters().Snapshot()
			if err != nil && !errors.Is(err, types.ErrMissingCollection) {
				return WrapError("read counters", err)
			}
			uptime, err := meta.Uptime(db.Store())
			if err != nil && !errors.Is(err, types.ErrMissingCollection) {
				return WrapError("read uptime", err)
			}
			settings := db.Settings()
			return cli.print(statsReport{
				Interactions:      in,
				Uptime:            uptime,
				CountInteractions: settings.CountInteractions,
				TickSeconds:       settings.TickInterval.Seconds(),
			})
		},
	}
	statsCmd.Flags().Bool("reset-session", false, "Zero the session counter first")

	cli.rootCmd.AddCommand(statsCmd)
}
