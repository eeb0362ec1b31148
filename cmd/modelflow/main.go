package main

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/tordrt/modelflow/internal/config"
)

// app holds the state shared by all subcommands of one invocation.
type app struct {
	cfgFile string
	v       *viper.Viper
	cfg     *config.Config
	logger  *slog.Logger
}

// flagKeys maps config keys to the flags that can set them. Flags missing
// from a command are skipped.
var flagKeys = map[string]string{
	"log.level":              "log-level",
	"log.format":             "log-format",
	"output.format":          "format",
	"output.file":            "output",
	"output.dir":             "output-dir",
	"output.split_threshold": "split-threshold",
	"database.url":           "db-url",
	"database.schema":        "schema",
	"database.tables":        "tables",
	"database.exclude":       "exclude",
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "modelflow",
		Short: "Parse ERDL data models and import them from databases",
		Long: `modelflow reads data models written in ERDL, a line-oriented table/column
grammar, and imports existing PostgreSQL, MySQL or SQLite schemas into the
same model. Models are written as text, markdown, JSON, YAML or ERDL.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is ./modelflow.yaml)")
	flags.String("log-level", "info", "Log level: debug, info, warn or error")
	flags.String("log-format", "text", "Log format: text or json")
	flags.StringP("format", "f", "text", "Output format: text, markdown, json, yaml or erdl")
	flags.StringP("output", "o", "", "Output file (default: stdout)")
	flags.StringP("output-dir", "d", "", "Output directory for multi-file output (text or markdown)")
	flags.Int("split-threshold", 0, "Split into multiple files when table count exceeds this (requires --output-dir)")

	rootCmd.AddCommand(newParseCmd(a), newImportCmd(a), newSampleCmd())
	return rootCmd
}

// init loads .env and the config file, binds flags and builds the logger.
func (a *app) init(cmd *cobra.Command) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	a.v = config.NewViper(a.cfgFile)
	if err := config.ReadFile(a.v, a.cfgFile != ""); err != nil {
		return err
	}
	if err := bindFlags(a.v, cmd.Flags()); err != nil {
		return err
	}

	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = cfg.NewLogger(cmd.ErrOrStderr())

	if used := a.v.ConfigFileUsed(); used != "" {
		a.logger.Debug("using config file", "path", used)
	}
	return nil
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for key, name := range flagKeys {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
