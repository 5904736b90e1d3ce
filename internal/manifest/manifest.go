// Package manifest describes the variants rendered from one template and
// builds them together.
package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Manifest lists the variants of one template.
type Manifest struct {
	Template string    `yaml:"template"`
	Tags     []string  `yaml:"tags,omitempty"` // optional allow-list for if(...) tags
	Variants []Variant `yaml:"variants"`
}

// Variant is one rendering of the template.
type Variant struct {
	Name string   `yaml:"name"`
	Tags []string `yaml:"tags"`
	Out  string   `yaml:"out"`
}

// Load reads a manifest and resolves relative paths against its directory.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read manifest: %w", err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}
	m.resolve(filepath.Dir(path))
	return m, nil
}

// Parse decodes and validates a manifest. Unknown keys are rejected.
func Parse(data []byte) (*Manifest, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var m Manifest
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("cannot decode manifest: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks the manifest for missing fields and collisions.
func (m *Manifest) Validate() error {
	var errs []error
	if m.Template == "" {
		errs = append(errs, errors.New("template is required"))
	}
	if len(m.Variants) == 0 {
		errs = append(errs, errors.New("at least one variant is required"))
	}

	allowed := make(map[string]bool, len(m.Tags))
	for _, t := range m.Tags {
		allowed[t] = true
	}
	names := map[string]bool{}
	outs := map[string]bool{}
	for i, v := range m.Variants {
		switch {
		case v.Name == "":
			errs = append(errs, fmt.Errorf("variant #%d: name is required", i+1))
		case names[v.Name]:
			errs = append(errs, fmt.Errorf("variant %q: duplicate name", v.Name))
		}
		names[v.Name] = true

		switch {
		case v.Out == "":
			errs = append(errs, fmt.Errorf("variant %q: out is required", v.Name))
		case outs[filepath.Clean(v.Out)]:
			errs = append(errs, fmt.Errorf("variant %q: out %s is used twice", v.Name, v.Out))
		}
		outs[filepath.Clean(v.Out)] = true

		if len(m.Tags) > 0 {
			for _, t := range v.Tags {
				if !allowed[t] {
					errs = append(errs, fmt.Errorf("variant %q: tag %q is not declared", v.Name, t))
				}
			}
		}
	}
	return errors.Join(errs...)
}

func (m *Manifest) resolve(dir string) {
	m.Template = join(dir, m.Template)
	for i := range m.Variants {
		m.Variants[i].Out = join(dir, m.Variants[i].Out)
	}
}

func join(dir, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}
