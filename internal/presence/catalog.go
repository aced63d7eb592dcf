package presence

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// MinTemplates is the smallest catalog accepted from a file.
const MinTemplates = 10

var ErrCatalogTooSmall = errors.New("headline catalog has too few templates")

// Catalog is an immutable list of headline templates.
type Catalog struct {
	templates []string
}

type catalogFile struct {
	Templates []string `yaml:"templates"`
}

func DefaultCatalog() *Catalog {
	return &Catalog{templates: append([]string(nil), DefaultTemplates...)}
}

// NewCatalog validates templates and returns a Catalog holding a copy of them.
// Every template must reference both placeholders.
func NewCatalog(templates []string) (*Catalog, error) {
	if len(templates) < MinTemplates {
		return nil, fmt.Errorf("%w: got %d, need at least %d", ErrCatalogTooSmall, len(templates), MinTemplates)
	}

	out := make([]string, 0, len(templates))
	for i, t := range templates {
		t = strings.TrimSpace(t)
		if !strings.Contains(t, NamePlaceholder) || !strings.Contains(t, LocationPlaceholder) {
			return nil, fmt.Errorf("template %d %q must contain %s and %s", i, t, NamePlaceholder, LocationPlaceholder)
		}
		out = append(out, t)
	}
	return &Catalog{templates: out}, nil
}

// LoadCatalog reads a YAML file of the form:
//
//	templates:
//	  - "Why {name} is {location}'s Best Kept Secret"
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", path, err)
	}
	return NewCatalog(f.Templates)
}

func (c *Catalog) Len() int {
	return len(c.templates)
}

// Templates returns a copy of the templates.
func (c *Catalog) Templates() []string {
	return append([]string(nil), c.templates...)
}
