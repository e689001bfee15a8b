package widget

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/matsen/labsite/internal/content"
	"github.com/matsen/labsite/internal/theme"
)

func render(t *testing.T, w Widget) *goquery.Document {
	t.Helper()
	html, err := w.Render()
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(html)))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc
}

func lightContext() *theme.Context {
	return theme.NewContext(theme.NewMemoryStore())
}

func darkContext(t *testing.T) *theme.Context {
	t.Helper()
	tc := lightContext()
	if err := tc.Toggle(context.Background(), true); err != nil {
		t.Fatal(err)
	}
	return tc
}

var testCategories = []content.Category{
	{ID: "research", Label: "Research"},
	{ID: "industry", Label: "Industry"},
}

var testCards = []content.Card{
	{ID: "p1", Title: "One", Category: "research", Tabs: []content.Tab{
		{ID: "p1-overview", Label: "Overview", Body: "first"},
		{ID: "p1-results", Label: "Results", Body: "second"},
	}},
	{ID: "p2", Title: "Two", Category: "industry", Tabs: []content.Tab{
		{ID: "p2-overview", Label: "Overview", Body: "first"},
		{ID: "p2-partners", Label: "Partners", Body: "second"},
	}},
}

func TestAccordion(t *testing.T) {
	a, err := NewAccordion(lightContext(), []content.FAQItem{
		{Question: "Q0", Answer: "**A0**"},
		{Question: "Q1", Answer: "A1"},
		{Question: "Q2", Answer: "A2"},
	})
	if err != nil {
		t.Fatal(err)
	}

	doc := render(t, a)
	if n := doc.Find(".faq-item.active").Length(); n != 0 {
		t.Errorf("open items at start = %d, want 0", n)
	}
	q := doc.Find(".faq-question").Eq(2)
	if v, _ := q.Attr("aria-controls"); v != "faq-2" {
		t.Errorf("aria-controls = %q, want faq-2", v)
	}
	if v, _ := q.Attr("aria-expanded"); v != "false" {
		t.Errorf("aria-expanded = %q, want false", v)
	}
	if doc.Find("#faq-0 strong").Text() != "A0" {
		t.Error("answer markdown not rendered")
	}

	if err := a.Apply(Event{Kind: Click, Index: 1}); err != nil {
		t.Fatal(err)
	}
	doc = render(t, a)
	item := doc.Find(".faq-item").Eq(1)
	if !item.HasClass("active") || item.Find(".toggle-icon").Text() != "-" {
		t.Errorf("item 1 not opened: %q", item.Text())
	}
	if v, _ := item.Find(".faq-question").Attr("aria-expanded"); v != "true" {
		t.Errorf("aria-expanded = %q, want true", v)
	}
	if a.IsOpen(0) || a.IsOpen(2) {
		t.Error("other items changed")
	}

	if err := a.Toggle(1); err != nil {
		t.Fatal(err)
	}
	if a.IsOpen(1) || a.Icon(1) != "+" {
		t.Error("second toggle should close the item")
	}

	if err := a.Toggle(3); !errors.Is(err, ErrUnknownTarget) {
		t.Errorf("Toggle(3) error = %v, want ErrUnknownTarget", err)
	}
	if err := a.Apply(Event{Kind: Scroll}); !errors.Is(err, ErrUnsupportedEvent) {
		t.Errorf("Apply(Scroll) error = %v, want ErrUnsupportedEvent", err)
	}
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name      string
		hide      HideStyle
		value     string
		wantShown []bool
		wantStyle []string
	}{
		{
			name:      "all",
			value:     "all",
			wantShown: []bool{true, true},
			wantStyle: []string{"display: block", "display: block"},
		},
		{
			name:      "display hides other categories",
			value:     "industry",
			wantShown: []bool{false, true},
			wantStyle: []string{"display: none", "display: block"},
		},
		{
			name:      "visibility keeps layout rules",
			hide:      HideVisibility,
			value:     "research",
			wantShown: []bool{true, false},
			wantStyle: []string{
				"visibility: visible; opacity: 1; position: static",
				"visibility: hidden; opacity: 0; position: absolute",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewFilter(lightContext(), "project", testCategories, testCards, tt.hide)
			if err != nil {
				t.Fatal(err)
			}
			if err := f.Apply(Event{Kind: Select, Target: tt.value}); err != nil {
				t.Fatal(err)
			}
			for i := range testCards {
				if f.Visible(i) != tt.wantShown[i] {
					t.Errorf("Visible(%d) = %v", i, f.Visible(i))
				}
				if f.Style(i) != tt.wantStyle[i] {
					t.Errorf("Style(%d) = %q, want %q", i, f.Style(i), tt.wantStyle[i])
				}
			}

			doc := render(t, f)
			active := doc.Find(".filter-btn.active")
			if v, _ := active.Attr("data-filter"); active.Length() != 1 || v != tt.value {
				t.Errorf("active filter button = %q (%d)", v, active.Length())
			}
			if doc.Find(".project-card").Length() != len(testCards) {
				t.Error("hidden cards must stay in the markup")
			}
		})
	}
}

func TestFilter_UnknownCategory(t *testing.T) {
	f, err := NewFilter(lightContext(), "project", testCategories, testCards, HideDisplay)
	if err != nil {
		t.Fatal(err)
	}
	if err := f.Select("nope"); !errors.Is(err, ErrUnknownTarget) {
		t.Errorf("Select() error = %v", err)
	}
	if f.Active() != "all" {
		t.Errorf("Active() = %q, want all", f.Active())
	}
}

func TestTabs_ScopedToCard(t *testing.T) {
	f, err := NewFilter(lightContext(), "opportunity", testCategories, testCards, HideVisibility)
	if err != nil {
		t.Fatal(err)
	}
	if f.Tabs(0).Active() != "p1-overview" || f.Tabs(1).Active() != "p2-overview" {
		t.Fatal("first tab should start active")
	}

	if err := f.Apply(Event{Kind: SelectTab, Target: "p2-partners"}); err != nil {
		t.Fatal(err)
	}
	if f.Tabs(1).Active() != "p2-partners" {
		t.Errorf("card 2 active = %q", f.Tabs(1).Active())
	}
	if f.Tabs(0).Active() != "p1-overview" {
		t.Errorf("card 1 changed to %q", f.Tabs(0).Active())
	}

	doc := render(t, f)
	card := doc.Find(`.card-tabs[data-card="p2"]`)
	if card.Find(".tab-btn.active").Length() != 1 || card.Find(".tab-content.active").AttrOr("id", "") != "p2-partners" {
		t.Error("card 2 markup does not show the selected tab")
	}
	if doc.Find(".tab-content.active").Length() != 2 {
		t.Errorf("active tab contents = %d, want one per card", doc.Find(".tab-content.active").Length())
	}

	if err := f.Tabs(0).Select("p2-partners"); !errors.Is(err, ErrUnknownTarget) {
		t.Errorf("selecting another card's tab error = %v", err)
	}
	if err := f.SelectTab("missing"); !errors.Is(err, ErrUnknownTarget) {
		t.Errorf("SelectTab(missing) error = %v", err)
	}
}

func TestTeamGrid(t *testing.T) {
	g := NewTeamGrid(lightContext(), []content.Member{
		{Name: "Sarah Johnson", Photo: "/img/s.jpg", Bio: "PI"},
		{Name: "Miguel  Chen", Bio: "Student"},
		{Name: "Ana Rodriguez"},
	})

	steps := []struct {
		click int
		want  int
	}{
		{0, 0},
		{1, 1},
		{1, -1},
		{2, 2},
	}
	for _, s := range steps {
		if err := g.Apply(Event{Kind: Click, Index: s.click}); err != nil {
			t.Fatal(err)
		}
		if g.Expanded() != s.want {
			t.Errorf("after click %d Expanded() = %d, want %d", s.click, g.Expanded(), s.want)
		}
	}

	doc := render(t, g)
	if n := doc.Find(".team-member.expanded").Length(); n != 1 {
		t.Errorf("expanded members = %d, want 1", n)
	}
	if got := doc.Find(".team-member").Eq(1).Find(".initials-placeholder").Text(); got != "MC" {
		t.Errorf("initials = %q, want MC", got)
	}
	if doc.Find(".team-member").Eq(0).Find("img").Length() != 1 {
		t.Error("member with photo should render an img")
	}

	if err := g.Click(5); !errors.Is(err, ErrUnknownTarget) {
		t.Errorf("Click(5) error = %v", err)
	}
}

func TestInitials(t *testing.T) {
	tests := map[string]string{
		"Sarah Johnson":   "SJ",
		" Ana  Rodriguez": "AR",
		"Émile Zola":      "ÉZ",
		"":                "",
	}
	for in, want := range tests {
		if got := Initials(in); got != want {
			t.Errorf("Initials(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRevealed(t *testing.T) {
	tests := []struct {
		top, viewport int
		want, frac    bool
	}{
		{top: 0, viewport: 800, want: true, frac: true},
		{top: 649, viewport: 800, want: true, frac: false},
		{top: 650, viewport: 800, want: false, frac: false},
		{top: 639, viewport: 800, want: true, frac: true},
		{top: 640, viewport: 800, want: true, frac: false},
	}
	for _, tt := range tests {
		if got := Revealed(tt.top, tt.viewport); got != tt.want {
			t.Errorf("Revealed(%d, %d) = %v", tt.top, tt.viewport, got)
		}
		if got := RevealedFraction(tt.top, tt.viewport); got != tt.frac {
			t.Errorf("RevealedFraction(%d, %d) = %v", tt.top, tt.viewport, got)
		}
	}
}

func TestReveal_Modes(t *testing.T) {
	active := NewReveal(lightContext(), RevealActive, "hero", "about")
	once := NewReveal(lightContext(), RevealOnce, "team")

	active.Update([]int{100, 900}, 800)
	once.Update([]int{100}, 800)
	if !active.Shown(0) || active.Shown(1) || !once.Shown(0) {
		t.Fatal("first scroll wrong")
	}

	if err := active.Apply(Event{Kind: Scroll, Tops: []int{900, 100}, Height: 800}); err != nil {
		t.Fatal(err)
	}
	once.Update([]int{900}, 800)
	if active.Shown(0) || !active.Shown(1) {
		t.Error("active mode should follow the scroll both ways")
	}
	if !once.Shown(0) {
		t.Error("once mode should keep the class")
	}

	doc := render(t, once)
	if !doc.Find(`[data-target="team"]`).HasClass("reveal") {
		t.Error("rendered target missing reveal class")
	}
}

func TestSmartHeader(t *testing.T) {
	h := NewSmartHeader(lightContext(), DefaultNav, 375)

	steps := []struct {
		y            int
		wantScrolled bool
		wantHidden   bool
	}{
		{50, false, false},
		{150, true, false},
		{250, true, true},
		{253, true, true},
		{170, true, true},
		{150, true, false},
		{0, false, false},
	}
	for _, s := range steps {
		h.Apply(Event{Kind: Scroll, Y: s.y})
		if h.Scrolled() != s.wantScrolled || h.Hidden() != s.wantHidden {
			t.Errorf("at y=%d scrolled=%v hidden=%v, want %v %v", s.y, h.Scrolled(), h.Hidden(), s.wantScrolled, s.wantHidden)
		}
	}
}

func TestSmartHeader_Desktop(t *testing.T) {
	h := NewSmartHeader(lightContext(), DefaultNav, 1280)
	h.ScrollTo(500)
	if h.Hidden() || !h.Scrolled() {
		t.Errorf("desktop header hidden=%v scrolled=%v", h.Hidden(), h.Scrolled())
	}

	h.Resize(600)
	h.ScrollTo(900)
	if !h.Hidden() {
		t.Fatal("mobile header should hide when scrolling down")
	}
	h.Apply(Event{Kind: Resize, Width: 1024})
	if h.Hidden() {
		t.Error("leaving mobile width should show the header")
	}
}

func TestSmartHeader_Render(t *testing.T) {
	h := NewSmartHeader(darkContext(t), []NavLink{{Label: "Publications", Href: "#publications"}, {Label: "FAQ", Href: "#faq"}}, 1280)
	h.ScrollTo(300)
	h.Apply(Event{Kind: Intersect, Target: "faq"})

	doc := render(t, h)
	header := doc.Find("header")
	if !header.HasClass("scrolled") || header.HasClass("header-hidden") {
		t.Errorf("header classes = %q", header.AttrOr("class", ""))
	}
	if header.AttrOr("data-theme", "") != "dark" {
		t.Errorf("data-theme = %q", header.AttrOr("data-theme", ""))
	}
	if doc.Find(".nav-link.active").Text() != "FAQ" {
		t.Errorf("active nav = %q", doc.Find(".nav-link.active").Text())
	}
	if _, ok := doc.Find("#theme-switch").Attr("checked"); !ok {
		t.Error("theme switch should be checked in dark mode")
	}
}

func TestSmartHeader_ActiveSection(t *testing.T) {
	tests := []struct {
		target string
		want   string
	}{
		{"publications", "Publications"},
		{"#team", "Members"},
		{"/publications", ""},
		{"nowhere", ""},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			h := NewSmartHeader(lightContext(), DefaultNav, 1280)
			if err := h.Apply(Event{Kind: Intersect, Target: tt.target}); err != nil {
				t.Fatal(err)
			}
			active := render(t, h).Find(".nav-link.active")
			if got := active.Text(); got != tt.want {
				t.Errorf("active nav = %q, want %q", got, tt.want)
			}
			if tt.want != "" && active.Length() != 1 {
				t.Errorf("active links = %d, want 1", active.Length())
			}
		})
	}
}

func TestTeamGrid_BioMarkdown(t *testing.T) {
	g := NewTeamGrid(lightContext(), []content.Member{
		{Name: "Sarah Johnson", Bio: "Leads **systems** work."},
		{Name: "Ana Rodriguez", Bio: "<script>x</script>"},
	})

	if err := g.Click(0); err != nil {
		t.Fatal(err)
	}
	doc := render(t, g)
	if got := doc.Find(".member-bio strong").Text(); got != "systems" {
		t.Errorf("bio emphasis = %q, want systems", got)
	}
	if doc.Find(".member-bio").Length() != 1 {
		t.Error("only the expanded member shows a bio")
	}

	if err := g.Click(1); err != nil {
		t.Fatal(err)
	}
	if doc := render(t, g); doc.Find(".member-bio script").Length() != 0 {
		t.Error("raw HTML in bio was passed through")
	}
}

func TestThemeSwitch(t *testing.T) {
	tc := lightContext()
	s := NewThemeSwitch(tc)

	doc := render(t, s)
	if _, ok := doc.Find("#theme-switch").Attr("checked"); ok {
		t.Error("light mode switch should not be checked")
	}

	if err := s.Apply(Event{Kind: Change, Checked: true}); err != nil {
		t.Fatal(err)
	}
	if tc.Mode() != theme.Dark {
		t.Error("switch did not update the shared context")
	}
	doc = render(t, s)
	if _, ok := doc.Find("#theme-switch").Attr("checked"); !ok {
		t.Error("dark mode switch should be checked")
	}
}

func TestWidgetsShareTheme(t *testing.T) {
	tc := lightContext()
	g := NewTeamGrid(tc, []content.Member{{Name: "A B"}})
	if err := NewThemeSwitch(tc).Toggle(context.Background(), true); err != nil {
		t.Fatal(err)
	}
	doc := render(t, g)
	if doc.Find(".team-container").AttrOr("data-theme", "") != "dark" {
		t.Error("team grid did not pick up the theme change")
	}
}
