package main

import (
	"fmt"

	"github.com/grahms/variantweaver"
	"github.com/grahms/variantweaver/internal/config"
	"github.com/grahms/variantweaver/internal/logging"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// app carries what every command needs once flags and config are resolved.
type app struct {
	cfg config.Config
	log zerolog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{log: logging.NewNop()}

	rootCmd := &cobra.Command{
		Use:   "variantweaver",
		Short: "Render variants of a tag-gated template",
		Long: `variantweaver turns one template into several documents, such as the
problem and the solution of an exercise, by switching tagged regions on and off.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Config file (default .variantweaver.yaml if present)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "console", "Log format: console or json")
	rootCmd.PersistentFlags().String("unclosed", "ignore", "Blocks left open at end of template: ignore, audit or strict")

	rootCmd.AddCommand(
		newRenderCmd(a),
		newBuildCmd(a),
		newCheckCmd(a),
		newVersionCmd(),
	)
	return rootCmd
}

func (a *app) setup(cmd *cobra.Command) error {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path, cmd.Flags())
	if err != nil {
		return err
	}
	log, err := logging.New(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = log
	return nil
}

// engine builds an Engine from the resolved config. opts are applied last.
func (a *app) engine(opts ...func(*variantweaver.Engine)) (*variantweaver.Engine, error) {
	policy, err := a.cfg.Policy()
	if err != nil {
		return nil, err
	}
	base := []func(*variantweaver.Engine){
		variantweaver.WithUnclosedPolicy(policy),
		variantweaver.WithLogger(a.log),
	}
	return variantweaver.NewEngine(append(base, opts...)...), nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of variantweaver",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "variantweaver version %s\n", variantweaver.Version)
		},
	}
}
