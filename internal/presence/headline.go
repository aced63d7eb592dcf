package presence

import (
	"context"
	"strings"
	"sync/atomic"
)

const (
	NamePlaceholder     = "{name}"
	LocationPlaceholder = "{location}"
)

// DefaultTemplates is the built-in headline catalog.
var DefaultTemplates = []string{
	"Why {name} is {location}'s Best Kept Secret in 2025",
	"Discover {name}: {location}'s Rising Star Business",
	"{name} - The {location} Gem Everyone's Talking About",
	"How {name} is Revolutionizing {location}'s Business Scene",
	"{name}: Your New Favorite Spot in {location}",
	"The Ultimate Guide to {name} in {location}",
	"{name} - Where {location} Meets Excellence",
	"Why {name} is Taking {location} by Storm",
	"Unlock the Magic of {name} in {location}",
	"{name}: The {location} Business That's Changing Everything",
}

// HeadlineWriter produces a headline for a business. Implementations other
// than HeadlineGenerator may fail; HeadlineGenerator never does.
type HeadlineWriter interface {
	WriteHeadline(ctx context.Context, name, location string) (string, error)
}

// HeadlineGenerator picks a template uniformly at random and fills it in.
// The catalog can be swapped at runtime, e.g. when the catalog file changes.
type HeadlineGenerator struct {
	rnd     Random
	catalog atomic.Pointer[Catalog]
}

func NewHeadlineGenerator(rnd Random, catalog *Catalog) *HeadlineGenerator {
	if rnd == nil {
		rnd = DefaultRandom()
	}
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	g := &HeadlineGenerator{rnd: rnd}
	g.catalog.Store(catalog)
	return g
}

// Catalog returns the catalog currently in use.
func (g *HeadlineGenerator) Catalog() *Catalog {
	return g.catalog.Load()
}

// SetCatalog replaces the catalog for subsequent calls.
func (g *HeadlineGenerator) SetCatalog(c *Catalog) {
	if c == nil || c.Len() == 0 {
		return
	}
	g.catalog.Store(c)
}

// Generate returns a headline for name and location. Both are trimmed;
// callers are expected to have rejected blank values already.
func (g *HeadlineGenerator) Generate(name, location string) string {
	templates := g.catalog.Load().templates
	tmpl := templates[g.rnd.IntN(len(templates))]
	return Fill(tmpl, name, location)
}

// WriteHeadline implements HeadlineWriter.
func (g *HeadlineGenerator) WriteHeadline(_ context.Context, name, location string) (string, error) {
	return g.Generate(name, location), nil
}

// Fill replaces every placeholder occurrence in tmpl. Placeholder tokens
// inside the values themselves are removed so they cannot leak into the output.
func Fill(tmpl, name, location string) string {
	r := strings.NewReplacer(
		NamePlaceholder, ScrubPlaceholders(name),
		LocationPlaceholder, ScrubPlaceholders(location),
	)
	return r.Replace(tmpl)
}

// HasPlaceholders reports whether s still contains a placeholder token.
func HasPlaceholders(s string) bool {
	return strings.Contains(s, NamePlaceholder) || strings.Contains(s, LocationPlaceholder)
}

// ScrubPlaceholders removes placeholder tokens from a user value and trims it.
// A value made only of tokens comes back empty.
func ScrubPlaceholders(s string) string {
	for HasPlaceholders(s) {
		s = strings.ReplaceAll(s, NamePlaceholder, "")
		s = strings.ReplaceAll(s, LocationPlaceholder, "")
	}
	return strings.TrimSpace(s)
}
