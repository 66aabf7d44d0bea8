package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/nanodoc/nanodoc"
	"github.com/arthur-debert/nanodoc/nanodoc/model"
	"github.com/arthur-debert/nanodoc/nanodoc/schema"
	"github.com/arthur-debert/nanodoc/types"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// schemaSuffix names the per-collection schema files looked up in the data
// directory when --schema is not given.
const schemaSuffix = ".schema.yaml"

// CLI is the nanodoc command tree with its configuration and lazily opened
// database.
type CLI struct {
	rootCmd   *cobra.Command
	viperInst *viper.Viper

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	logger *slog.Logger
	db     *nanodoc.DB
}

// NewCLI builds the command tree.
func NewCLI(stdin io.Reader, stdout, stderr io.Writer) *CLI {
	cli := &CLI{
		viperInst: viper.New(),
		stdin:     stdin,
		stdout:    stdout,
		stderr:    stderr,
	}
	cli.createRootCommand()
	cli.addCommands()
	return cli
}

// Execute runs the command line args.
func (cli *CLI) Execute(ctx context.Context, args []string) error {
	cli.rootCmd.SetArgs(args)
	return cli.rootCmd.ExecuteContext(ctx)
}

func (cli *CLI) createRootCommand() {
	cli.rootCmd = &cobra.Command{
		Use:   "nanodoc",
		Short: "nanodoc - embedded JSON document store",
		Long: `nanodoc stores schema-validated JSON documents in one file per collection.

Configuration Sources (in order of precedence):
1. Command line flags
2. Environment variables (NANODOC_*)
3. Configuration file (--config, or ./nanodoc.yaml)

Schemas are YAML files. Without --schema, the schema of collection <name>
is read from <data>/<name>.schema.yaml.

Examples:
  nanodoc create users '{"username": "JohnDoe", "age": 25}'
  nanodoc find users '{"username": "JohnDoe"}'
  nanodoc get users nano:0b6f9a52-1d8e-4c3a-9f2e-5a7b8c9d0e1f
  NANODOC_FORMAT=yaml nanodoc find users`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return cli.initialize()
		},
	}
	cli.rootCmd.SetIn(cli.stdin)
	cli.rootCmd.SetOut(cli.stdout)
	cli.rootCmd.SetErr(cli.stderr)

	cli.addGlobalFlags()
}

func (cli *CLI) addGlobalFlags() {
	flags := cli.rootCmd.PersistentFlags()
	defaults := nanodoc.DefaultConfig()

	flags.String("config", "", "Configuration file (default ./nanodoc.yaml)")
	flags.StringP("data", "d", defaults.DataDir, "Data directory holding the collections")
	flags.String("meta", "", "Directory of the built-in collections (default <data>/.meta)")
	flags.StringP("schema", "s", "", "Schema file of the target collection")
	flags.StringP("format", "f", formatJSON, "Output format (json|yaml)")
	flags.String("log-level", "warn", "Log level (debug|info|warn|error)")
	flags.String("id-prefix", defaults.IDPrefix, "Prefix of generated identifiers")
	flags.Bool("atomic", false, "Write collection files through a temp file and rename")
	flags.Bool("strict", false, "Reject documents missing a required field")
	flags.Bool("no-counters", false, "Do not count interactions")
	flags.Duration("tick", 0, "Runtime tick interval (default from settings)")

	flags.VisitAll(func(f *pflag.Flag) {
		_ = cli.viperInst.BindPFlag(f.Name, f)
	})

	cli.viperInst.SetEnvPrefix("NANODOC")
	cli.viperInst.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	cli.viperInst.AutomaticEnv()
}

func (cli *CLI) addCommands() {
	cli.addDocumentCommands()
	cli.addCollectionCommands()
	cli.addSchemaCommand()
	cli.addArchiveCommands()
	cli.addWatchCommand()
	cli.addStatsCommand()
	cli.addIDCommand()
	cli.addConfigCommand()
}

// initialize reads the configuration file and sets up logging. The database
// is opened on first use.
func (cli *CLI) initialize() error {
	v := cli.viperInst
	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("nanodoc")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || v.GetString("config") != "" {
			return NewConfigError("read configuration", err.Error(), "Check the --config path and YAML syntax")
		}
	}

	logger, err := newLogger(cli.stderr, v.GetString("log-level"))
	if err != nil {
		return NewConfigError("set up logging", err.Error())
	}
	cli.logger = logger
	if used := v.ConfigFileUsed(); used != "" {
		logger.Debug("configuration loaded", "file", used)
	}
	return nil
}

// config returns the effective library configuration.
func (cli *CLI) config() (nanodoc.Config, error) {
	cfg := nanodoc.DefaultConfig()
	if err := cli.viperInst.Unmarshal(&cfg); err != nil {
		return cfg, NewConfigError("read configuration", err.Error())
	}
	return cfg, nil
}

// open returns the database, opening it on first use.
func (cli *CLI) open() (*nanodoc.DB, error) {
	if cli.db != nil {
		return cli.db, nil
	}
	cfg, err := cli.config()
	if err != nil {
		return nil, err
	}
	db, err := nanodoc.Open(cfg, cli.logger)
	if err != nil {
		return nil, WrapError("open data directory", err, CommonSuggestions.CheckData)
	}
	cli.db = db
	return db, nil
}

// schemaPath returns the schema file of a collection.
func (cli *CLI) schemaPath(db *nanodoc.DB, collection string) string {
	if path := cli.viperInst.GetString("schema"); path != "" {
		return path
	}
	return filepath.Join(db.Store().Root(), db.Store().ResolveName(collection)+schemaSuffix)
}

// loadSchema reads the schema of a collection.
func (cli *CLI) loadSchema(operation, collection string) (*nanodoc.DB, *schema.Schema, error) {
	db, err := cli.open()
	if err != nil {
		return nil, nil, err
	}
	path := cli.schemaPath(db, collection)
	if _, err := os.Stat(path); err != nil {
		return nil, nil, &CLIError{
			Operation: operation,
			Cause:     fmt.Sprintf("no schema for collection %q", collection),
			Details:   path,
			Suggestions: []string{
				fmt.Sprintf("Create %s describing the collection fields", path),
				"Pass the schema file with --schema",
			},
			Underlying: err,
		}
	}
	s, err := db.LoadSchema(path)
	if err != nil {
		return nil, nil, &CLIError{
			Operation:   operation,
			Cause:       "invalid schema file",
			Details:     err.Error(),
			Suggestions: []string{CommonSuggestions.RunHelp},
			Underlying:  err,
		}
	}
	return db, s, nil
}

// model returns the schema-bound model of a collection.
func (cli *CLI) model(operation, collection string) (*model.Model, error) {
	db, s, err := cli.loadSchema(operation, collection)
	if err != nil {
		return nil, err
	}
	m, err := db.Model(collection, s)
	if err != nil {
		return nil, WrapError(operation, err)
	}
	return m, nil
}

// print writes v in the configured output format.
func (cli *CLI) print(v any) error {
	return printValue(cli.stdout, cli.viperInst.GetString("format"), v)
}

// readArg returns arg, or stdin when arg is "-".
func (cli *CLI) readArg(arg string) (string, error) {
	if arg != "-" {
		return arg, nil
	}
	data, err := io.ReadAll(cli.stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}

// document parses a JSON document argument.
func (cli *CLI) document(operation, arg string) (types.Document, error) {
	raw, err := cli.readArg(arg)
	if err != nil {
		return nil, err
	}
	return parseDocument(operation, raw)
}
