package widget

import (
	"html/template"
	"strings"

	"github.com/matsen/labsite/internal/theme"
)

// Smart header thresholds, in px.
const (
	ScrollThreshold = 100
	HideThreshold   = 200
	MobileWidth     = 768
	ScrollJitter    = 5
)

// NavLink is one header navigation entry. Section names the page section
// the link is highlighted for; when empty, a "#id" Href supplies it.
type NavLink struct {
	Label   string
	Href    string
	Section string
}

func (l NavLink) section() string {
	if l.Section != "" {
		return l.Section
	}
	if strings.HasPrefix(l.Href, "#") {
		return l.Href[1:]
	}
	return ""
}

// DefaultNav is the single-page site navigation.
var DefaultNav = []NavLink{
	{Label: "Home", Href: "#home", Section: "home"},
	{Label: "Members", Href: "#team", Section: "team"},
	{Label: "Projects", Href: "#projects", Section: "projects"},
	{Label: "Publications", Href: "#publications", Section: "publications"},
	{Label: "Opportunities", Href: "#opportunities", Section: "opportunities"},
}

var headerTemplate = template.Must(template.New("header").Parse(`<header class="header{{if .Scrolled}} scrolled{{end}}{{if .Hidden}} header-hidden{{end}}" data-theme="{{.Theme}}">
  <nav class="nav">
  {{- range .Links}}
    <a class="nav-link{{if .Active}} active{{end}}" href="{{.Href}}">{{.Label}}</a>
  {{- end}}
  </nav>
  {{.Switch}}
</header>`))

// SmartHeader is the page header that condenses after scrolling and,
// on narrow viewports, hides while scrolling down.
type SmartHeader struct {
	theme    *theme.Context
	links    []NavLink
	lastY    int
	scrolled bool
	hidden   bool
	mobile   bool
	active   string
}

// NewSmartHeader creates a header for a viewport of the given width.
func NewSmartHeader(tc *theme.Context, links []NavLink, width int) *SmartHeader {
	return &SmartHeader{theme: tc, links: links, mobile: width <= MobileWidth}
}

// Scrolled reports whether the header carries the "scrolled" class.
func (h *SmartHeader) Scrolled() bool { return h.scrolled }

// Hidden reports whether the header is hidden.
func (h *SmartHeader) Hidden() bool { return h.hidden }

// Mobile reports whether the viewport is narrow.
func (h *SmartHeader) Mobile() bool { return h.mobile }

// ScrollTo applies a new page offset.
func (h *SmartHeader) ScrollTo(y int) {
	down := y > h.lastY
	h.scrolled = y > ScrollThreshold

	if h.mobile && abs(y-h.lastY) > ScrollJitter {
		switch {
		case down && y > HideThreshold && !h.hidden:
			h.hidden = true
		case !down && h.hidden && float64(y) < HideThreshold*0.8:
			h.hidden = false
		}
	}
	h.lastY = y
}

// Resize applies a new viewport width. Leaving mobile width shows the header.
func (h *SmartHeader) Resize(width int) {
	h.mobile = width <= MobileWidth
	if !h.mobile {
		h.hidden = false
	}
}

// SetActive highlights the nav link for section id ("team" or "#team").
func (h *SmartHeader) SetActive(id string) {
	h.active = strings.TrimPrefix(id, "#")
}

// Active returns the highlighted section id, or "".
func (h *SmartHeader) Active() string { return h.active }

// Apply handles Scroll (Y), Resize (Width) and Intersect (Target).
func (h *SmartHeader) Apply(ev Event) error {
	switch ev.Kind {
	case Scroll:
		h.ScrollTo(ev.Y)
	case Resize:
		h.Resize(ev.Width)
	case Intersect:
		h.SetActive(ev.Target)
	default:
		return unsupported("header", ev)
	}
	return nil
}

func (h *SmartHeader) Render() (template.HTML, error) {
	sw, err := NewThemeSwitch(h.theme).Render()
	if err != nil {
		return "", err
	}
	type link struct {
		NavLink
		Active bool
	}
	data := struct {
		Theme            string
		Scrolled, Hidden bool
		Links            []link
		Switch           template.HTML
	}{Theme: modeName(h.theme), Scrolled: h.scrolled, Hidden: h.hidden, Switch: sw}
	for _, l := range h.links {
		data.Links = append(data.Links, link{NavLink: l, Active: h.active != "" && l.section() == h.active})
	}
	return execute(headerTemplate, data)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
