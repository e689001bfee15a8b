package widget

import (
	"fmt"
	"html/template"

	"github.com/matsen/labsite/internal/content"
	"github.com/matsen/labsite/internal/theme"
)

var tabsTemplate = template.Must(template.New("tabs").Parse(`<div class="card-tabs" data-card="{{.Card}}" data-theme="{{.Theme}}">
  <div class="tab-buttons">
  {{- range .Tabs}}
    <button class="tab-btn{{if .Active}} active{{end}}" data-tab="{{.ID}}">{{.Label}}</button>
  {{- end}}
  </div>
{{- range .Tabs}}
  <div class="tab-content{{if .Active}} active{{end}}" id="{{.ID}}">{{.Body}}</div>
{{- end}}
</div>`))

type tab struct {
	id    string
	label string
	body  template.HTML
}

// Tabs is the tab group of one card. The first tab starts active.
// Selecting a tab only affects this card.
type Tabs struct {
	theme  *theme.Context
	card   string
	tabs   []tab
	active int
}

// NewTabs renders the card's tab bodies.
func NewTabs(tc *theme.Context, card content.Card) (*Tabs, error) {
	t := &Tabs{theme: tc, card: card.ID}
	for _, ct := range card.Tabs {
		body, err := content.Markdown(ct.Body)
		if err != nil {
			return nil, fmt.Errorf("card %s tab %s: %w", card.ID, ct.ID, err)
		}
		t.tabs = append(t.tabs, tab{id: ct.ID, label: ct.Label, body: body})
	}
	return t, nil
}

// Card returns the id of the owning card.
func (t *Tabs) Card() string { return t.card }

// Has reports whether tabID belongs to this card.
func (t *Tabs) Has(tabID string) bool {
	return t.index(tabID) >= 0
}

// Active returns the active tab id, or "" for a card without tabs.
func (t *Tabs) Active() string {
	if len(t.tabs) == 0 {
		return ""
	}
	return t.tabs[t.active].id
}

// Select activates tabID and deactivates the card's other tabs.
func (t *Tabs) Select(tabID string) error {
	i := t.index(tabID)
	if i < 0 {
		return fmt.Errorf("card %s tab %q: %w", t.card, tabID, ErrUnknownTarget)
	}
	t.active = i
	return nil
}

func (t *Tabs) index(tabID string) int {
	for i, tb := range t.tabs {
		if tb.id == tabID {
			return i
		}
	}
	return -1
}

// Apply handles SelectTab.
func (t *Tabs) Apply(ev Event) error {
	if ev.Kind != SelectTab {
		return unsupported("tabs", ev)
	}
	return t.Select(ev.Target)
}

func (t *Tabs) Render() (template.HTML, error) {
	type item struct {
		ID     string
		Label  string
		Body   template.HTML
		Active bool
	}
	data := struct {
		Card  string
		Theme string
		Tabs  []item
	}{Card: t.card, Theme: modeName(t.theme)}
	for i, tb := range t.tabs {
		data.Tabs = append(data.Tabs, item{ID: tb.id, Label: tb.label, Body: tb.body, Active: i == t.active})
	}
	return execute(tabsTemplate, data)
}
