package main

import (
	"fmt"
	"io"
	"os"

	"github.com/grahms/variantweaver"
	"github.com/grahms/variantweaver/internal/manifest"
	"github.com/spf13/cobra"
)

func newCheckCmd(a *app) *cobra.Command {
	var (
		templatePath string
		manifestPath string
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the directives of a template",
		Long: `Checks that every directive is well formed, every end has something to close,
every block is closed and every tag has a valid name. With --manifest, tags must
also be declared in the manifest's tags list.

Directives behave the same whatever tags are active, so one pass covers every variant.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			pattern, err := variantweaver.NewRegexTagValidator(variantweaver.DefaultTagPattern,
				"letters, digits, '_', '.' and '-'")
			if err != nil {
				return err
			}
			validators := variantweaver.TagValidators{pattern}

			if manifestPath != "" {
				m, err := manifest.Load(manifestPath)
				if err != nil {
					return err
				}
				if templatePath == "" {
					templatePath = m.Template
				}
				if len(m.Tags) > 0 {
					validators = append(validators, variantweaver.NewSetTagValidator(m.Tags...))
				}
			}
			if templatePath == "" {
				return fmt.Errorf("either --template or --manifest is required")
			}

			f, err := os.Open(templatePath)
			if err != nil {
				return fmt.Errorf("cannot read template: %w", err)
			}
			defer f.Close()

			engine := variantweaver.NewEngine(
				variantweaver.WithUnclosedPolicy(variantweaver.UnclosedStrict),
				variantweaver.WithTagValidator(validators),
				variantweaver.WithLogger(a.log),
			)
			if err := engine.ProcessStream(f, io.Discard, variantweaver.NewSettings()); err != nil {
				return fmt.Errorf("%s: %w", templatePath, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", templatePath)
			return nil
		},
	}

	cmd.Flags().StringVar(&templatePath, "template", "", "Template file")
	cmd.Flags().StringVarP(&manifestPath, "manifest", "m", "", "Manifest whose tags list is enforced")
	return cmd
}
