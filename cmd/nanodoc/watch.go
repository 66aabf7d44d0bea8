package main

import (
	"fmt"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

func (cli *CLI) addWatchCommand() {
	watchCmd := &cobra.Command{
		Use:   "watch <collection>",
		Short: "Print a line each time a collection file changes",
		Long: `Print a line each time a collection file changes, until interrupted.
The runtime ticker runs for as long as the command does.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := cli.open()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			changes := make(chan string, 16)
			err = db.Store().Watch(ctx, args[0], func(name string, op fsnotify.Op) {
				select {
				case changes <- fmt.Sprintf("%s %s", op, name):
				case <-ctx.Done():
				}
			})
			if err != nil {
				return WrapError("watch collection", err)
			}
			ticker := db.StartTicker(ctx)
			cli.logger.Info("watching", "collection", db.Store().ResolveName(args[0]))

			for {
				select {
				case <-ctx.Done():
					<-ticker
					return nil
				case line := <-changes:
					if _, err := fmt.Fprintln(cli.stdout, line); err != nil {
						return err
					}
				}
			}
		},
	}
	cli.rootCmd.AddCommand(watchCmd)
}
