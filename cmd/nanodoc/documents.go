package main

import (
	"github.com/arthur-debert/nanodoc/nanodoc/model"
	"github.com/arthur-debert/nanodoc/types"
	"github.com/spf13/cobra"
)

func (cli *CLI) addDocumentCommands() {
	createCmd := &cobra.Command{
		Use:   "create <collection> <json|->",
		Short: "Create a document, filling defaults and generating its _id",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := cli.model("create document", args[0])
			if err != nil {
				return err
			}
			doc, err := cli.document("create document", args[1])
			if err != nil {
				return err
			}
			h, err := m.Create(doc)
			if err != nil {
				return WrapError("create document", err)
			}
			return cli.print(h.Doc)
		},
	}

	findCmd := &cobra.Command{
		Use:   "find <collection> [json-match]",
		Short: "List documents whose fields equal the given ones",
		Long: `List documents matching an exact field mapping, in storage order.
Without a mapping every document is listed.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := cli.model("find documents", args[0])
			if err != nil {
				return err
			}
			pred, err := cli.matchArg("find documents", args[1:])
			if err != nil {
				return err
			}
			one, _ := cmd.Flags().GetBool("one")
			if one {
				h, err := m.FindOne(pred)
				if err != nil {
					return WrapError("find documents", err)
				}
				if h == nil {
					return cli.print(nil)
				}
				return cli.print(h.Doc)
			}
			docs, err := m.FindMany(pred)
			if err != nil {
				return WrapError("find documents", err)
			}
			return cli.print(docs)
		},
	}
	findCmd.Flags().Bool("one", false, "Print only the first match")

	getCmd := &cobra.Command{
		Use:   "get <collection> <id>",
		Short: "Print the document with the given _id",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := cli.model("get document", args[0])
			if err != nil {
				return err
			}
			h, err := m.FindByID(args[1])
			if err != nil {
				return WrapError("get document", err)
			}
			if h == nil {
				return NewNotFoundError("get document", m.Name(), args[1], CommonSuggestions.CheckID)
			}
			return cli.print(h.Doc)
		},
	}

	saveCmd := &cobra.Command{
		Use:   "save <collection> <json|->",
		Short: "Replace the document with the same _id, or append it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := cli.model("save document", args[0])
			if err != nil {
				return err
			}
			doc, err := cli.document("save document", args[1])
			if err != nil {
				return err
			}
			saved, err := m.Save(doc)
			if err != nil {
				return WrapError("save document", err)
			}
			return cli.print(saved)
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <collection> [json-match]",
		Short: "Delete the first matching document, or all of them with --all",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			all, _ := cmd.Flags().GetBool("all")
			if len(args) == 1 && !all {
				return NewValidationError("delete documents", "match", "",
					`Give a field mapping, e.g. '{"username": "ann"}'`,
					"Use --all to delete every document")
			}
			m, err := cli.model("delete documents", args[0])
			if err != nil {
				return err
			}
			pred, err := cli.matchArg("delete documents", args[1:])
			if err != nil {
				return err
			}
			deleted := 0
			if all {
				deleted, err = m.DeleteMany(pred)
			} else {
				var ok bool
				ok, err = m.DeleteOne(pred)
				if ok {
					deleted = 1
				}
			}
			if err != nil {
				return WrapError("delete documents", err)
			}
			return cli.print(map[string]int{"deleted": deleted})
		},
	}
	deleteCmd.Flags().Bool("all", false, "Delete every matching document")

	cli.rootCmd.AddCommand(createCmd, findCmd, getCmd, saveCmd, deleteCmd)
}

// matchArg turns an optional JSON mapping argument into a predicate.
func (cli *CLI) matchArg(operation string, args []string) (types.Predicate, error) {
	if len(args) == 0 {
		return model.All(), nil
	}
	fields, err := cli.document(operation, args[0])
	if err != nil {
		return nil, err
	}
	return model.Match(fields), nil
}
