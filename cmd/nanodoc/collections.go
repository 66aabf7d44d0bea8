package main

import (
	"github.com/spf13/cobra"
)

// collectionInfo is one line of the collections listing.
type collectionInfo struct {
	Name      string `json:"name" yaml:"name"`
	Documents int    `json:"documents" yaml:"documents"`
}

func (cli *CLI) addCollectionCommands() {
	collectionsCmd := &cobra.Command{
		Use:     "collections",
		Aliases: []string{"ls"},
		Short:   "List the collections in the data directory",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := cli.open()
			if err != nil {
				return err
			}
			store := db.Store()
			names, err := store.List()
			if err != nil {
				return WrapError("list collections", err, CommonSuggestions.CheckData)
			}
			infos := make([]collectionInfo, 0, len(names))
			for _, name := range names {
				docs, err := store.LoadExisting(name)
				if err != nil {
					return WrapError("list collections", err)
				}
				infos = append(infos, collectionInfo{Name: name, Documents: len(docs)})
			}
			return cli.print(infos)
		},
	}

	wipeCmd := &cobra.Command{
		Use:   "wipe <collection>",
		Short: "Empty a collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := cli.model("wipe collection", args[0])
			if err != nil {
				return err
			}
			ok, err := m.Wipe()
			if err != nil {
				return WrapError("wipe collection", err)
			}
			return cli.print(map[string]bool{"wiped": ok})
		},
	}

	dropCmd := &cobra.Command{
		Use:   "drop <collection>",
		Short: "Delete a collection file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := cli.open()
			if err != nil {
				return err
			}
			if err := db.Store().Delete(args[0]); err != nil {
				return WrapError("drop collection", err)
			}
			return cli.print(map[string]string{"dropped": db.Store().ResolveName(args[0])})
		},
	}

	cli.rootCmd.AddCommand(collectionsCmd, wipeCmd, dropCmd)
}
