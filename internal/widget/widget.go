// Package widget renders the site's interactive sections and applies user
// events to them.
//
// Widgets keep their own state and are rendered with html/template; the
// same transitions a browser script would perform are expressed as Apply
// calls, so a page can be re-rendered server side after each event.
package widget

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"

	"github.com/matsen/labsite/internal/theme"
)

var (
	// ErrUnknownTarget is returned for events naming an item the widget does not have.
	ErrUnknownTarget = errors.New("unknown target")
	// ErrUnsupportedEvent is returned for event kinds a widget ignores.
	ErrUnsupportedEvent = errors.New("unsupported event")
)

// Widget is an interactive section.
type Widget interface {
	Render() (template.HTML, error)
	Apply(Event) error
}

// EventKind identifies a user interaction.
type EventKind int

const (
	Click EventKind = iota
	Select
	SelectTab
	Change
	Scroll
	Resize
	Intersect
)

func (k EventKind) String() string {
	switch k {
	case Click:
		return "click"
	case Select:
		return "select"
	case SelectTab:
		return "select_tab"
	case Change:
		return "change"
	case Scroll:
		return "scroll"
	case Resize:
		return "resize"
	case Intersect:
		return "intersect"
	default:
		return "unknown"
	}
}

// Event is one interaction. Only the fields relevant to Kind are read.
type Event struct {
	Kind    EventKind
	Index   int    // Click: item index
	Target  string // Select: filter value; SelectTab: tab id; Intersect: section id
	Checked bool   // Change
	Y       int    // Scroll: page offset in px
	Width   int    // Resize: viewport width in px
	Height  int    // Scroll: viewport height in px
	Tops    []int  // Scroll: target tops relative to the viewport
}

func unsupported(widget string, ev Event) error {
	return fmt.Errorf("%s: %w: %s", widget, ErrUnsupportedEvent, ev.Kind)
}

func modeName(tc *theme.Context) string {
	if tc == nil {
		return theme.Light.String()
	}
	return tc.Mode().String()
}

func execute(t *template.Template, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering %s: %w", t.Name(), err)
	}
	return template.HTML(buf.String()), nil
}
