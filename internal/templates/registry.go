package templates

import (
	"embed"
	"errors"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed assets
var assets embed.FS

// ErrTemplateNotFound means the requested document type has no registered
// template.
var ErrTemplateNotFound = errors.New("template not found")

// Definition is one registered document template. Definitions are loaded once
// at startup and never mutated.
type Definition struct {
	Type                string   `yaml:"type"`
	Name                string   `yaml:"name"`
	Description         string   `yaml:"description"`
	Version             int      `yaml:"version"`
	RequiresSignature   bool     `yaml:"requires_signature"`
	DefaultDeadlineDays int      `yaml:"default_deadline_days"`
	ExpectedPaths       []string `yaml:"expected_paths"`
	SourceFile          string   `yaml:"source"`
	Source              string   `yaml:"-"`
}

// Registry holds the D1..D10 template set. It is constructed once and handed
// to the document service; there is no package-level mutable state.
type Registry struct {
	defs map[string]*Definition
}

func New() (*Registry, error) {
	raw, err := assets.ReadFile("assets/manifest.yaml")
	if err != nil {
		return nil, fmt.Errorf("read template manifest: %w", err)
	}
	var manifest struct {
		Templates []*Definition `yaml:"templates"`
	}
	if err := yaml.Unmarshal(raw, &manifest); err != nil {
		return nil, fmt.Errorf("parse template manifest: %w", err)
	}
	defs := make(map[string]*Definition, len(manifest.Templates))
	for _, def := range manifest.Templates {
		if def.Type == "" || def.SourceFile == "" {
			return nil, fmt.Errorf("template manifest entry missing type or source: %+v", def)
		}
		if _, dup := defs[def.Type]; dup {
			return nil, fmt.Errorf("duplicate template type %q in manifest", def.Type)
		}
		src, err := assets.ReadFile("assets/" + def.SourceFile)
		if err != nil {
			return nil, fmt.Errorf("read template %s: %w", def.SourceFile, err)
		}
		def.Source = string(src)
		defs[def.Type] = def
	}
	return &Registry{defs: defs}, nil
}

// Get returns the definition for a document type code (D1..D10).
func (r *Registry) Get(docType string) (*Definition, error) {
	def, ok := r.defs[docType]
	if !ok {
		return nil, fmt.Errorf("document type %q: %w", docType, ErrTemplateNotFound)
	}
	return def, nil
}

// All returns every definition ordered by type code.
func (r *Registry) All() []*Definition {
	out := make([]*Definition, 0, len(r.defs))
	for _, def := range r.defs {
		out = append(out, def)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].Type, out[j].Type
		if len(a) != len(b) {
			return len(a) < len(b)
		}
		return a < b
	})
	return out
}
