package widget

import (
	"context"
	"html/template"

	"github.com/matsen/labsite/internal/theme"
)

var themeSwitchTemplate = template.Must(template.New("theme-switch").Parse(`<label class="theme-switch-wrapper" for="theme-switch">
  <input type="checkbox" id="theme-switch"{{if .Checked}} checked{{end}}>
  <span class="slider"></span>
</label>`))

// ThemeSwitch is the dark mode checkbox.
type ThemeSwitch struct {
	theme *theme.Context
}

// NewThemeSwitch creates a switch bound to tc.
func NewThemeSwitch(tc *theme.Context) *ThemeSwitch {
	return &ThemeSwitch{theme: tc}
}

// Toggle applies the checkbox state and persists it.
func (s *ThemeSwitch) Toggle(ctx context.Context, checked bool) error {
	return s.theme.Toggle(ctx, checked)
}

// Apply handles Change.
func (s *ThemeSwitch) Apply(ev Event) error {
	if ev.Kind != Change {
		return unsupported("theme switch", ev)
	}
	return s.Toggle(context.Background(), ev.Checked)
}

func (s *ThemeSwitch) Render() (template.HTML, error) {
	checked := s.theme != nil && s.theme.Checked()
	return execute(themeSwitchTemplate, struct{ Checked bool }{checked})
}
