package widget

import (
	"fmt"
	"html/template"

	"github.com/matsen/labsite/internal/content"
	"github.com/matsen/labsite/internal/theme"
)

var accordionTemplate = template.Must(template.New("accordion").Parse(`<div class="faq-container" data-theme="{{.Theme}}">
{{- range .Items}}
  <div class="faq-item{{if .Open}} active{{end}}">
    <button class="faq-question" aria-expanded="{{.Open}}" aria-controls="faq-{{.Index}}">{{.Question}}<span class="toggle-icon">{{.Icon}}</span></button>
    <div class="faq-answer" id="faq-{{.Index}}">{{.Answer}}</div>
  </div>
{{- end}}
</div>`))

type faqEntry struct {
	question string
	answer   template.HTML
}

// Accordion is the FAQ list. Every item starts closed.
type Accordion struct {
	theme *theme.Context
	items []faqEntry
	open  []bool
}

// NewAccordion renders each answer's markdown once.
func NewAccordion(tc *theme.Context, items []content.FAQItem) (*Accordion, error) {
	a := &Accordion{theme: tc, open: make([]bool, len(items))}
	for i, item := range items {
		answer, err := content.Markdown(item.Answer)
		if err != nil {
			return nil, fmt.Errorf("faq %d: %w", i, err)
		}
		a.items = append(a.items, faqEntry{question: item.Question, answer: answer})
	}
	return a, nil
}

// Len returns the number of items.
func (a *Accordion) Len() int { return len(a.items) }

// Toggle opens a closed item or closes an open one. Other items are unaffected.
func (a *Accordion) Toggle(i int) error {
	if i < 0 || i >= len(a.items) {
		return fmt.Errorf("faq item %d: %w", i, ErrUnknownTarget)
	}
	a.open[i] = !a.open[i]
	return nil
}

// IsOpen reports whether item i is expanded.
func (a *Accordion) IsOpen(i int) bool {
	return i >= 0 && i < len(a.open) && a.open[i]
}

// Icon returns the toggle glyph for item i.
func (a *Accordion) Icon(i int) string {
	if a.IsOpen(i) {
		return "-"
	}
	return "+"
}

// Apply handles Click on an item index.
func (a *Accordion) Apply(ev Event) error {
	if ev.Kind != Click {
		return unsupported("accordion", ev)
	}
	return a.Toggle(ev.Index)
}

func (a *Accordion) Render() (template.HTML, error) {
	type item struct {
		Index    int
		Question string
		Answer   template.HTML
		Open     bool
		Icon     string
	}
	data := struct {
		Theme string
		Items []item
	}{Theme: modeName(a.theme)}
	for i, e := range a.items {
		data.Items = append(data.Items, item{
			Index:    i,
			Question: e.question,
			Answer:   e.answer,
			Open:     a.open[i],
			Icon:     a.Icon(i),
		})
	}
	return execute(accordionTemplate, data)
}
