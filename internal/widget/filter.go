package widget

import (
	"fmt"
	"html/template"

	"github.com/matsen/labsite/internal/content"
	"github.com/matsen/labsite/internal/theme"
)

// HideStyle is how filtered-out cards are hidden.
type HideStyle int

const (
	// HideDisplay removes hidden cards from the layout.
	HideDisplay HideStyle = iota
	// HideVisibility makes hidden cards invisible and takes them out of the flow.
	HideVisibility
)

var filterTemplate = template.Must(template.New("filter").Parse(`<div class="{{.Kind}}-section" data-theme="{{.Theme}}">
  <div class="filter-buttons">
    <button class="filter-btn{{if eq .Active "all"}} active{{end}}" data-filter="all">All</button>
  {{- range .Categories}}
    <button class="filter-btn{{if .Active}} active{{end}}" data-filter="{{.ID}}">{{.Label}}</button>
  {{- end}}
  </div>
  <div class="{{.Kind}}s-grid">
  {{- range .Cards}}
    <div class="{{$.Kind}}-card" id="{{.ID}}" data-category="{{.Category}}" style="{{.Style}}">
      <div class="{{$.Kind}}-content">
        <h3>{{.Title}}</h3>
        <p class="{{$.Kind}}-summary">{{.Summary}}</p>
        {{.Tabs}}
      </div>
    </div>
  {{- end}}
  </div>
</div>`))

// Filter is a filterable grid of cards (projects or opportunities), each with its own Tabs.
type Filter struct {
	theme      *theme.Context
	kind       string
	categories []content.Category
	cards      []content.Card
	tabs       []*Tabs
	hide       HideStyle
	active     string
}

// NewFilter builds a grid showing every card. kind prefixes the CSS classes
// ("project" gives .project-card).
func NewFilter(tc *theme.Context, kind string, categories []content.Category, cards []content.Card, hide HideStyle) (*Filter, error) {
	f := &Filter{
		theme:      tc,
		kind:       kind,
		categories: categories,
		cards:      cards,
		hide:       hide,
		active:     content.AllCategory,
	}
	for _, c := range cards {
		t, err := NewTabs(tc, c)
		if err != nil {
			return nil, err
		}
		f.tabs = append(f.tabs, t)
	}
	return f, nil
}

// Active returns the selected filter value.
func (f *Filter) Active() string { return f.active }

// Select shows only cards of category value; "all" shows every card.
func (f *Filter) Select(value string) error {
	if value != content.AllCategory && !f.hasCategory(value) {
		return fmt.Errorf("filter %q: %w", value, ErrUnknownTarget)
	}
	f.active = value
	return nil
}

func (f *Filter) hasCategory(id string) bool {
	for _, c := range f.categories {
		if c.ID == id {
			return true
		}
	}
	return false
}

// Visible reports whether card i passes the current filter.
func (f *Filter) Visible(i int) bool {
	return f.active == content.AllCategory || f.cards[i].Category == f.active
}

// Style returns the inline style of card i.
func (f *Filter) Style(i int) string {
	visible := f.Visible(i)
	switch f.hide {
	case HideVisibility:
		if visible {
			return "visibility: visible; opacity: 1; position: static"
		}
		return "visibility: hidden; opacity: 0; position: absolute"
	default:
		if visible {
			return "display: block"
		}
		return "display: none"
	}
}

// SelectTab activates tabID inside the card that owns it.
func (f *Filter) SelectTab(tabID string) error {
	for _, t := range f.tabs {
		if t.Has(tabID) {
			return t.Select(tabID)
		}
	}
	return fmt.Errorf("tab %q: %w", tabID, ErrUnknownTarget)
}

// Tabs returns the tab group of card i.
func (f *Filter) Tabs(i int) *Tabs { return f.tabs[i] }

// Apply handles Select (filter buttons) and SelectTab.
func (f *Filter) Apply(ev Event) error {
	switch ev.Kind {
	case Select:
		return f.Select(ev.Target)
	case SelectTab:
		return f.SelectTab(ev.Target)
	default:
		return unsupported("filter", ev)
	}
}

func (f *Filter) Render() (template.HTML, error) {
	type category struct {
		ID, Label string
		Active    bool
	}
	type card struct {
		ID, Category, Title, Summary string
		Style                        template.CSS
		Tabs                         template.HTML
	}
	data := struct {
		Kind, Theme, Active string
		Categories          []category
		Cards               []card
	}{Kind: f.kind, Theme: modeName(f.theme), Active: f.active}

	for _, c := range f.categories {
		data.Categories = append(data.Categories, category{ID: c.ID, Label: c.Label, Active: c.ID == f.active})
	}
	for i, c := range f.cards {
		tabs, err := f.tabs[i].Render()
		if err != nil {
			return "", err
		}
		data.Cards = append(data.Cards, card{
			ID:       c.ID,
			Category: c.Category,
			Title:    c.Title,
			Summary:  c.Summary,
			Style:    template.CSS(f.Style(i)),
			Tabs:     tabs,
		})
	}
	return execute(filterTemplate, data)
}
