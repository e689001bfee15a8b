package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/matsen/labsite/internal/widget"
)

// intList parses "0,2" into indices. Empty input gives none.
func intList(raw string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

// renderWidget writes w's markup, mapping event errors to 400.
func (s *Server) renderWidget(rw http.ResponseWriter, w widget.Widget, events []widget.Event) {
	for _, ev := range events {
		if err := w.Apply(ev); err != nil {
			if errors.Is(err, widget.ErrUnknownTarget) || errors.Is(err, widget.ErrUnsupportedEvent) {
				http.Error(rw, err.Error(), http.StatusBadRequest)
				return
			}
			s.logger.WithError(err).Error("applying widget event")
			http.Error(rw, "internal error", http.StatusInternalServerError)
			return
		}
	}

	html, err := w.Render()
	if err != nil {
		s.logger.WithError(err).Error("rendering widget")
		http.Error(rw, "internal error", http.StatusInternalServerError)
		return
	}
	writeHTML(rw, http.StatusOK, html)
}

func (s *Server) handleFAQ(w http.ResponseWriter, r *http.Request) {
	open, err := intList(r.URL.Query().Get("open"))
	if err != nil {
		http.Error(w, "open must be a list of item numbers", http.StatusBadRequest)
		return
	}

	acc, err := widget.NewAccordion(s.themeFor(r), s.content.FAQ)
	if err != nil {
		s.logger.WithError(err).Error("building faq")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	var events []widget.Event
	for _, i := range open {
		events = append(events, widget.Event{Kind: widget.Click, Index: i})
	}
	s.renderWidget(w, acc, events)
}

func (s *Server) handleCards(kind string, hide widget.HideStyle) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cards := s.content.Projects
		if kind == "opportunity" {
			cards = s.content.Opportunities
		}

		f, err := widget.NewFilter(s.themeFor(r), kind, s.content.Categories, cards, hide)
		if err != nil {
			s.logger.WithError(err).Error("building card grid")
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		q := r.URL.Query()
		var events []widget.Event
		if v := q.Get("filter"); v != "" {
			events = append(events, widget.Event{Kind: widget.Select, Target: v})
		}
		for _, tab := range q["tab"] {
			events = append(events, widget.Event{Kind: widget.SelectTab, Target: tab})
		}
		s.renderWidget(w, f, events)
	}
}

func (s *Server) handleTeam(w http.ResponseWriter, r *http.Request) {
	g := widget.NewTeamGrid(s.themeFor(r), s.content.Team)

	var events []widget.Event
	if v := r.URL.Query().Get("expanded"); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, "expanded must be a member number", http.StatusBadRequest)
			return
		}
		events = append(events, widget.Event{Kind: widget.Click, Index: i})
	}
	s.renderWidget(w, g, events)
}

func (s *Server) handleHeader(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	width := 1280
	if v := q.Get("width"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			http.Error(w, "width must be a positive number", http.StatusBadRequest)
			return
		}
		width = n
	}

	h := widget.NewSmartHeader(s.themeFor(r), widget.DefaultNav, width)
	var events []widget.Event
	if v := q.Get("active"); v != "" {
		events = append(events, widget.Event{Kind: widget.Intersect, Target: v})
	}
	s.renderWidget(w, h, events)
}
