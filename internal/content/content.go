// Package content loads the lab's site content: FAQ, projects, opportunities and team.
package content

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"os"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"gopkg.in/yaml.v3"
)

//go:embed default.yml
var defaultContent []byte

// AllCategory is the filter value that matches every card.
const AllCategory = "all"

// Content is everything the interactive sections render.
type Content struct {
	FAQ           []FAQItem  `yaml:"faq"`
	Categories    []Category `yaml:"categories"`
	Projects      []Card     `yaml:"projects"`
	Opportunities []Card     `yaml:"opportunities"`
	Team          []Member   `yaml:"team"`
}

// FAQItem is one question; Answer is markdown.
type FAQItem struct {
	Question string `yaml:"question"`
	Answer   string `yaml:"answer"`
}

// Category is a filter button.
type Category struct {
	ID    string `yaml:"id"`
	Label string `yaml:"label"`
}

// Card is a project or opportunity with its tabs.
type Card struct {
	ID       string `yaml:"id"`
	Title    string `yaml:"title"`
	Category string `yaml:"category"`
	Summary  string `yaml:"summary"`
	Tabs     []Tab  `yaml:"tabs"`
}

// Tab is one section of a card; Body is markdown.
type Tab struct {
	ID    string `yaml:"id"`
	Label string `yaml:"label"`
	Body  string `yaml:"body"`
}

// Member is a team member. Photo may be empty.
type Member struct {
	Name    string `yaml:"name"`
	Role    string `yaml:"role"`
	Group   string `yaml:"group"`
	Photo   string `yaml:"photo"`
	Bio     string `yaml:"bio"`
	Email   string `yaml:"email,omitempty"`
	Website string `yaml:"website,omitempty"`
}

// Default returns the content bundled with the binary.
func Default() (*Content, error) {
	return Parse(defaultContent)
}

// Load reads content from a YAML file. An empty path means Default.
func Load(path string) (*Content, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading content file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and checks content YAML.
func Parse(data []byte) (*Content, error) {
	var c Content
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing content: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks that ids are present and unique where markup relies on them.
func (c *Content) Validate() error {
	for i, item := range c.FAQ {
		if strings.TrimSpace(item.Question) == "" {
			return fmt.Errorf("faq[%d]: question is required", i)
		}
	}

	categories := make(map[string]bool)
	for _, cat := range c.Categories {
		if cat.ID == "" || cat.ID == AllCategory {
			return fmt.Errorf("category id %q is reserved or empty", cat.ID)
		}
		categories[cat.ID] = true
	}

	tabIDs := make(map[string]string)
	for _, list := range [][]Card{c.Projects, c.Opportunities} {
		for _, card := range list {
			if card.ID == "" {
				return fmt.Errorf("card %q: id is required", card.Title)
			}
			if len(categories) > 0 && !categories[card.Category] {
				return fmt.Errorf("card %s: unknown category %q", card.ID, card.Category)
			}
			for _, tab := range card.Tabs {
				if owner, ok := tabIDs[tab.ID]; ok {
					return fmt.Errorf("card %s: tab id %q already used by %s", card.ID, tab.ID, owner)
				}
				tabIDs[tab.ID] = card.ID
			}
		}
	}

	for i, m := range c.Team {
		if strings.TrimSpace(m.Name) == "" {
			return fmt.Errorf("team[%d]: name is required", i)
		}
	}
	return nil
}

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// Markdown renders src to HTML. Raw HTML in src is not passed through.
func Markdown(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}
