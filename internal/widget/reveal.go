package widget

import (
	"html/template"

	"github.com/matsen/labsite/internal/theme"
)

const (
	// RevealPoint is how far above the viewport bottom a section must be to show.
	RevealPoint = 150
	// RevealFraction is the viewport share a team section must be above to show.
	RevealFraction = 0.8
)

// Revealed reports whether a section whose top is at top (relative to the viewport)
// is inside the reveal area of a viewport of the given height.
func Revealed(top, viewport int) bool {
	return top < viewport-RevealPoint
}

// RevealedFraction is Revealed for team sections.
func RevealedFraction(top, viewport int) bool {
	return float64(top) < float64(viewport)*RevealFraction
}

// RevealMode selects the reveal rule and its class.
type RevealMode int

const (
	// RevealActive toggles "active" both ways as sections enter and leave.
	RevealActive RevealMode = iota
	// RevealOnce adds "reveal" the first time a section enters and keeps it.
	RevealOnce
)

var revealTemplate = template.Must(template.New("reveal").Parse(`
{{- range .Targets}}<div class="reveal-target{{if .Shown}} {{$.Class}}{{end}}" data-target="{{.ID}}" data-theme="{{$.Theme}}"></div>
{{end}}`))

// Reveal tracks which page sections have scrolled into view.
type Reveal struct {
	theme   *theme.Context
	mode    RevealMode
	targets []string
	shown   []bool
}

// NewReveal tracks the given section ids.
func NewReveal(tc *theme.Context, mode RevealMode, targets ...string) *Reveal {
	return &Reveal{theme: tc, mode: mode, targets: targets, shown: make([]bool, len(targets))}
}

// Class returns the class a shown section carries.
func (r *Reveal) Class() string {
	if r.mode == RevealOnce {
		return "reveal"
	}
	return "active"
}

// Shown reports whether target i currently carries the reveal class.
func (r *Reveal) Shown(i int) bool {
	return i >= 0 && i < len(r.shown) && r.shown[i]
}

// Update applies one scroll position. tops holds each target's top relative
// to the viewport; missing entries are left unchanged.
func (r *Reveal) Update(tops []int, viewport int) {
	for i := range r.targets {
		if i >= len(tops) {
			break
		}
		switch r.mode {
		case RevealOnce:
			if RevealedFraction(tops[i], viewport) {
				r.shown[i] = true
			}
		default:
			r.shown[i] = Revealed(tops[i], viewport)
		}
	}
}

// Apply handles Scroll using Tops and Height.
func (r *Reveal) Apply(ev Event) error {
	if ev.Kind != Scroll {
		return unsupported("reveal", ev)
	}
	r.Update(ev.Tops, ev.Height)
	return nil
}

// Render emits one marker element per target carrying its current class.
func (r *Reveal) Render() (template.HTML, error) {
	type target struct {
		ID    string
		Shown bool
	}
	data := struct {
		Class, Theme string
		Targets      []target
	}{Class: r.Class(), Theme: modeName(r.theme)}
	for i, id := range r.targets {
		data.Targets = append(data.Targets, target{ID: id, Shown: r.shown[i]})
	}
	return execute(revealTemplate, data)
}
