package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/grahms/variantweaver"
	"github.com/grahms/variantweaver/internal/manifest"
	"github.com/grahms/variantweaver/internal/watch"
	"github.com/spf13/cobra"
)

func newRenderCmd(a *app) *cobra.Command {
	var (
		templatePath string
		outPath      string
		activeTags   string
		watchMode    bool
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render one variant of a template",
		Long: `Renders the template with the given active tags and writes the result to --out.
Use --out - to write to stdout.`,
		Example: `  variantweaver render --template task.py.tmpl --out task.py --active-tags A,solved`,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := a.engine()
			if err != nil {
				return err
			}
			settings := variantweaver.ParseTagList(activeTags)

			renderOnce := func() error {
				f, err := os.Open(templatePath)
				if err != nil {
					return fmt.Errorf("cannot read template: %w", err)
				}
				defer f.Close()

				var buf bytes.Buffer
				if err := engine.ProcessStream(f, &buf, settings); err != nil {
					return fmt.Errorf("%s: %w", templatePath, err)
				}
				if outPath == "-" {
					_, err = cmd.OutOrStdout().Write(buf.Bytes())
					return err
				}
				if err := manifest.WriteFile(outPath, buf.String()); err != nil {
					return err
				}
				a.log.Info().
					Str("template", templatePath).
					Str("out", outPath).
					Stringer("tags", settings).
					Int("bytes", buf.Len()).
					Msg("rendered")
				return nil
			}

			if err := renderOnce(); err != nil {
				if !watchMode {
					return err
				}
				a.log.Error().Err(err).Msg("render failed")
			}
			if !watchMode {
				return nil
			}

			ctx, stop := signal.NotifyContext(cmdContext(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()
			a.log.Info().Str("template", templatePath).Msg("watching for changes")
			w := &watch.Watcher{Logger: a.log}
			return w.Run(ctx, []string{templatePath}, renderOnce)
		},
	}

	cmd.Flags().StringVar(&templatePath, "template", "", "Template file")
	cmd.Flags().StringVar(&outPath, "out", "", "Output file, or - for stdout")
	cmd.Flags().StringVar(&activeTags, "active-tags", "", "Comma separated list of active tags")
	cmd.Flags().BoolVarP(&watchMode, "watch", "w", false, "Render again whenever the template changes")
	_ = cmd.MarkFlagRequired("template")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
