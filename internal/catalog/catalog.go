// Package catalog holds the demo copy: the demo list, drawer items, carousel
// cards and the confetti palette.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/olivier-w/springdeck/internal/render"
)

//go:embed catalog.yaml
var embedded []byte

// Demo IDs.
const (
	Heart    = "heart"
	Scale    = "scale"
	Drawer   = "drawer"
	Confetti = "confetti"
	Carousel = "carousel"
)

var knownDemos = map[string]bool{Heart: true, Scale: true, Drawer: true, Confetti: true, Carousel: true}

var ErrNoDemos = errors.New("catalog has no demos")

type Demo struct {
	ID          string `yaml:"id"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Icon        string `yaml:"icon"`
}

type Item struct {
	Glyph string `yaml:"glyph"`
	Label string `yaml:"label"`
	Color string `yaml:"color,omitempty"`
}

type Card struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Color       string `yaml:"color"`
}

// Catalog is the parsed content.
type Catalog struct {
	Title string `yaml:"title"`
	Demos []Demo `yaml:"demos"`
	Heart struct {
		Color string `yaml:"color"`
		Hint  string `yaml:"hint"`
	} `yaml:"heart"`
	Scale struct {
		Icons []Item `yaml:"icons"`
	} `yaml:"scale"`
	Drawer struct {
		Button string `yaml:"button"`
		Items  []Item `yaml:"items"`
	} `yaml:"drawer"`
	Confetti struct {
		Button string   `yaml:"button"`
		Colors []string `yaml:"colors"`
	} `yaml:"confetti"`
	Carousel struct {
		Cards []Card `yaml:"cards"`
	} `yaml:"carousel"`
}

// Load parses the embedded catalog.
func Load() (*Catalog, error) {
	return Parse(embedded)
}

// Parse decodes and validates catalog YAML.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	return &c, nil
}

// Validate checks demo IDs, colours and that every screen has content.
func (c *Catalog) Validate() error {
	if len(c.Demos) == 0 {
		return ErrNoDemos
	}
	seen := make(map[string]bool, len(c.Demos))
	for _, d := range c.Demos {
		if !knownDemos[d.ID] {
			return fmt.Errorf("unknown demo %q", d.ID)
		}
		if seen[d.ID] {
			return fmt.Errorf("duplicate demo %q", d.ID)
		}
		seen[d.ID] = true
		if d.Title == "" {
			return fmt.Errorf("demo %q has no title", d.ID)
		}
	}
	if _, err := render.ParseHex(c.Heart.Color); err != nil {
		return fmt.Errorf("heart: %w", err)
	}
	if len(c.Scale.Icons) == 0 {
		return fmt.Errorf("scale needs at least one icon")
	}
	for _, it := range c.Scale.Icons {
		if _, err := render.ParseHex(it.Color); err != nil {
			return fmt.Errorf("scale icon %q: %w", it.Label, err)
		}
	}
	if len(c.Carousel.Cards) == 0 {
		return fmt.Errorf("carousel needs at least one card")
	}
	for _, card := range c.Carousel.Cards {
		if _, err := render.ParseHex(card.Color); err != nil {
			return fmt.Errorf("card %q: %w", card.Title, err)
		}
	}
	if len(c.Confetti.Colors) == 0 {
		return fmt.Errorf("confetti needs at least one colour")
	}
	for _, col := range c.Confetti.Colors {
		if _, err := render.ParseHex(col); err != nil {
			return fmt.Errorf("confetti: %w", err)
		}
	}
	return nil
}

// Demo looks up a demo by ID.
func (c *Catalog) Demo(id string) (Demo, bool) {
	for _, d := range c.Demos {
		if d.ID == id {
			return d, true
		}
	}
	return Demo{}, false
}

// Palette returns the confetti colours. Validate has already checked them.
func (c *Catalog) Palette() []render.RGB {
	out := make([]render.RGB, 0, len(c.Confetti.Colors))
	for _, s := range c.Confetti.Colors {
		col, _ := render.ParseHex(s)
		out = append(out, col)
	}
	return out
}

// Color parses a validated colour string.
func Color(s string) render.RGB {
	col, _ := render.ParseHex(s)
	return col
}
