package manifest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/grahms/variantweaver"
	"golang.org/x/sync/errgroup"
)

// Result describes one written variant.
type Result struct {
	Name  string
	Out   string
	Bytes int
}

// Build renders every variant of m with engine, at most jobs at a time, and
// writes the outputs. Files are written only once all variants rendered.
// Results follow manifest order.
func Build(ctx context.Context, m *Manifest, engine *variantweaver.Engine, jobs int) ([]Result, error) {
	data, err := os.ReadFile(m.Template)
	if err != nil {
		return nil, fmt.Errorf("cannot read template: %w", err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("template %s is not valid UTF-8", m.Template)
	}
	template := string(data)

	rendered := make([]string, len(m.Variants))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(jobs, 1))
	for i, v := range m.Variants {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out, err := engine.Render(template, variantweaver.NewSettings(v.Tags...))
			if err != nil {
				return fmt.Errorf("variant %q: %w", v.Name, err)
			}
			rendered[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(m.Variants))
	for i, v := range m.Variants {
		if err := WriteFile(v.Out, rendered[i]); err != nil {
			return results, fmt.Errorf("variant %q: %w", v.Name, err)
		}
		results = append(results, Result{Name: v.Name, Out: v.Out, Bytes: len(rendered[i])})
	}
	return results, nil
}

// WriteFile writes content to path, creating parent directories.
func WriteFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("cannot create output directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("cannot write output: %w", err)
	}
	return nil
}
