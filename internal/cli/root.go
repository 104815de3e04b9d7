// Package cli implements the leximap operator command line.
package cli

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"leximap/internal/logging"
)

// Version is overridden at build time with -ldflags.
var Version = "dev"

type options struct {
	v       *viper.Viper
	cfgFile string
}

// NewRootCmd builds the leximap command tree. Every flag can also be set
// through a LEXIMAP_* environment variable or the optional config file.
func NewRootCmd() *cobra.Command {
	o := &options{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "leximap",
		Short: "LexiMap lexeme service tooling",
		Long: `leximap assembles lexeme records (senses, synonyms, antonyms) for English words.

Use it to load WordNet into Postgres for the postgres lexicon backend, or to
assemble a single lexeme locally without running the HTTP service.

Configuration hierarchy (highest to lowest priority):
1. CLI flags
2. Environment variables (LEXIMAP_*)
3. Config file (--config)
4. Defaults`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return o.initConfig()
		},
	}

	rootCmd.PersistentFlags().StringVar(&o.cfgFile, "config", "", "config file (yaml)")
	rootCmd.PersistentFlags().String("log-level", "warn", "log level (debug, info, warn, error)")
	_ = o.v.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.AddCommand(
		newImportCmd(o),
		newLookupCmd(o),
		newVersionCmd(),
	)
	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

func (o *options) initConfig() error {
	o.v.SetEnvPrefix("LEXIMAP")
	o.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	o.v.AutomaticEnv()

	if o.cfgFile == "" {
		return nil
	}
	o.v.SetConfigFile(o.cfgFile)
	if err := o.v.ReadInConfig(); err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	return nil
}

func (o *options) logger() *slog.Logger {
	return logging.New(o.v.GetString("log-level"), "text")
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "leximap %s\n", Version)
		},
	}
}
