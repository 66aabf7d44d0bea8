package main

import (
	"fmt"
	"os"
	"time"

	"github.com/arthur-debert/nanodoc/nanodoc/export"
	"github.com/spf13/cobra"
)

func (cli *CLI) addArchiveCommands() {
	exportCmd := &cobra.Command{
		Use:   "export [collection...]",
		Short: "Write collections to a zip archive",
		Long: `Write collections to a zip archive holding one <name>.col.json per
collection plus a manifest.json. Without names every user collection is
exported.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := cli.open()
			if err != nil {
				return err
			}
			out, _ := cmd.Flags().GetString("output")
			if out == "" {
				out = export.Filename(time.Now())
			}

			f, err := os.Create(out)
			if err != nil {
				return WrapError("export collections", fmt.Errorf("failed to create %s: %w", out, err),
					CommonSuggestions.CheckPerms)
			}
			manifest, err := export.Archive(db.Store(), args, f)
			if closeErr := f.Close(); err == nil && closeErr != nil {
				err = fmt.Errorf("failed to close %s: %w", out, closeErr)
			}
			if err != nil {
				_ = os.Remove(out)
				return WrapError("export collections", err)
			}
			cli.logger.Info("archive written", "path", out, "collections", len(manifest.Collections))
			return cli.print(map[string]any{"archive": out, "collections": manifest.Collections})
		},
	}
	exportCmd.Flags().StringP("output", "o", "", "Archive path (default nanodoc-export-<timestamp>.zip)")

	importCmd := &cobra.Command{
		Use:   "import <archive.zip>",
		Short: "Restore the collections of an archive, overwriting them",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := cli.open()
			if err != nil {
				return err
			}
			f, err := os.Open(args[0])
			if err != nil {
				return WrapError("import archive", err, CommonSuggestions.CheckPerms)
			}
			defer func() { _ = f.Close() }()
			info, err := f.Stat()
			if err != nil {
				return WrapError("import archive", err)
			}

			snap, err := export.Extract(f, info.Size())
			if err != nil {
				return WrapError("import archive", err)
			}
			restored, err := export.Restore(db.Store(), snap)
			if err != nil {
				return WrapError("import archive", err)
			}
			return cli.print(map[string]any{"restored": restored})
		},
	}

	cli.rootCmd.AddCommand(exportCmd, importCmd)
}
