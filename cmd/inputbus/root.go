package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/dshills/inputbus/internal/config"
	"github.com/dshills/inputbus/internal/logging"
)

// globalOptions holds flags shared by all subcommands.
type globalOptions struct {
	configPath string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:           "inputbus",
		Short:         "Synthesize semantic input events from raw key, button, wheel and pointer notifications",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to a toml, yaml or json config file")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Override log level (debug, info, warn, error, off)")

	root.AddCommand(newDemoCmd(opts), newReplayCmd(opts), newVersionCmd())
	return root
}

// loadConfig reads the config file when one is given, otherwise the
// defaults with environment overrides, then applies flag overrides.
func (o *globalOptions) loadConfig() (config.Config, error) {
	var cfg config.Config
	if o.configPath != "" {
		var err error
		cfg, err = config.Load(o.configPath)
		if err != nil {
			return cfg, err
		}
	} else {
		cfg = config.Default()
		cfg.ApplyEnv(os.LookupEnv)
	}

	if o.logLevel != "" {
		if !logging.ValidLevel(o.logLevel) {
			return cfg, fmt.Errorf("unknown log level %q", o.logLevel)
		}
		cfg.Log.Level = o.logLevel
	}
	return cfg, cfg.Validate()
}

// newLogger builds the command logger writing to out.
func newLogger(cfg config.Config, out io.Writer) zerolog.Logger {
	lc := cfg.LoggingConfig()
	lc.Output = out
	return logging.New(lc)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "inputbus %s (commit %s, built %s)\n", version, commit, date)
			return err
		},
	}
}
