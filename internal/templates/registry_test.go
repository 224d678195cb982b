package templates

import (
	"errors"
	"strings"
	"testing"

	"github.com/casalivre/casalivre-backend/internal/templating"
)

func TestNewLoadsAllTenTemplates(t *testing.T) {
	reg, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defs := reg.All()
	if len(defs) != 10 {
		t.Fatalf("template count: want=10 got=%d", len(defs))
	}
	for i, want := range []string{"D1", "D2", "D3", "D4", "D5", "D6", "D7", "D8", "D9", "D10"} {
		if defs[i].Type != want {
			t.Fatalf("order at %d: want=%q got=%q", i, want, defs[i].Type)
		}
	}
}

func TestGetUnknownTypeIsTemplateNotFound(t *testing.T) {
	reg, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_, err = reg.Get("D99")
	if !errors.Is(err, ErrTemplateNotFound) {
		t.Fatalf("Get(D99): want ErrTemplateNotFound got %v", err)
	}
}

func TestEveryDefinitionIsComplete(t *testing.T) {
	reg, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for _, def := range reg.All() {
		if def.Name == "" || def.Description == "" || def.Source == "" {
			t.Fatalf("%s: incomplete definition", def.Type)
		}
		if len(def.ExpectedPaths) == 0 {
			t.Fatalf("%s: no expected paths declared", def.Type)
		}
		if def.RequiresSignature && def.DefaultDeadlineDays <= 0 {
			t.Fatalf("%s: requires signature but no default deadline", def.Type)
		}
	}
}

// Declared paths and template text must not drift: the lint runs clean over
// the shipped registry.
func TestEveryTemplatePassesTheVariableLint(t *testing.T) {
	reg, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for _, def := range reg.All() {
		result := templating.Validate(def.Source, def.ExpectedPaths)
		if !result.Valid {
			t.Fatalf("%s: lint errors: %v", def.Type, result.Errors)
		}
	}
}

// The rendered artifact must stay self-contained: inline styles only, no
// external asset references (downstream previews render it with no network).
func TestTemplatesAreSelfContained(t *testing.T) {
	reg, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for _, def := range reg.All() {
		if !strings.Contains(def.Source, "<style>") {
			t.Fatalf("%s: missing inline style block", def.Type)
		}
		for _, forbidden := range []string{"<link", "<script src", "http://", "https://"} {
			if strings.Contains(def.Source, forbidden) {
				t.Fatalf("%s: external reference %q in template", def.Type, forbidden)
			}
		}
	}
}

func TestEveryTemplateParses(t *testing.T) {
	reg, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for _, def := range reg.All() {
		if _, err := templating.Interpolate(def.Source, templating.Data{}); err != nil {
			t.Fatalf("%s: template does not parse: %v", def.Type, err)
		}
	}
}
