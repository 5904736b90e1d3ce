package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/grahms/variantweaver/internal/manifest"
	"github.com/grahms/variantweaver/internal/watch"
	"github.com/spf13/cobra"
)

func newBuildCmd(a *app) *cobra.Command {
	var (
		manifestPath string
		watchMode    bool
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Render every variant listed in a manifest",
		Long: `Reads a YAML manifest naming a template and its variants, renders the
variants concurrently and writes them. Nothing is written if any variant fails.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := a.engine()
			if err != nil {
				return err
			}

			buildOnce := func() error {
				m, err := manifest.Load(manifestPath)
				if err != nil {
					return err
				}
				results, err := manifest.Build(cmdContext(cmd), m, engine, a.cfg.Jobs)
				if err != nil {
					return err
				}
				for _, r := range results {
					a.log.Info().Str("variant", r.Name).Str("out", r.Out).Int("bytes", r.Bytes).Msg("rendered")
				}
				return nil
			}

			if err := buildOnce(); err != nil {
				if !watchMode {
					return err
				}
				a.log.Error().Err(err).Msg("build failed")
			}
			if !watchMode {
				return nil
			}

			m, err := manifest.Load(manifestPath)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmdContext(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()
			a.log.Info().Str("manifest", manifestPath).Msg("watching for changes")
			w := &watch.Watcher{Logger: a.log}
			return w.Run(ctx, []string{manifestPath, m.Template}, buildOnce)
		},
	}

	cmd.Flags().StringVarP(&manifestPath, "manifest", "m", "variants.yaml", "Manifest file")
	cmd.Flags().IntP("jobs", "j", 4, "Variants rendered in parallel")
	cmd.Flags().BoolVarP(&watchMode, "watch", "w", false, "Build again whenever the manifest or template changes")
	return cmd
}
