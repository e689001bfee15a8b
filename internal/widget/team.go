package widget

import (
	"fmt"
	"html/template"
	"strings"
	"unicode/utf8"

	"github.com/matsen/labsite/internal/content"
	"github.com/matsen/labsite/internal/theme"
)

var teamTemplate = template.Must(template.New("team").Parse(`<div class="team-container" data-theme="{{.Theme}}">
{{- range .Members}}
  <div class="team-member{{if .Expanded}} expanded{{end}}" data-index="{{.Index}}">
    <div class="member-img">
    {{- if .Photo}}
      <img src="{{.Photo}}" alt="{{.Name}}">
    {{- else}}
      <div class="initials-placeholder">{{.Initials}}</div>
    {{- end}}
    </div>
    <h3 class="member-name">{{.Name}}</h3>
    <p class="member-role">{{.Role}}</p>
    {{- if .Expanded}}
    <div class="member-bio">{{.Bio}}</div>
    {{- end}}
  </div>
{{- end}}
</div>`))

// TeamGrid is the team member grid. At most one member is expanded.
type TeamGrid struct {
	theme    *theme.Context
	members  []content.Member
	expanded int
}

// NewTeamGrid creates a grid with every member collapsed.
func NewTeamGrid(tc *theme.Context, members []content.Member) *TeamGrid {
	return &TeamGrid{theme: tc, members: members, expanded: -1}
}

// Click toggles member i and collapses every other member.
func (g *TeamGrid) Click(i int) error {
	if i < 0 || i >= len(g.members) {
		return fmt.Errorf("team member %d: %w", i, ErrUnknownTarget)
	}
	if g.expanded == i {
		g.expanded = -1
	} else {
		g.expanded = i
	}
	return nil
}

// Expanded returns the expanded member index, or -1.
func (g *TeamGrid) Expanded() int { return g.expanded }

// Apply handles Click on a member index.
func (g *TeamGrid) Apply(ev Event) error {
	if ev.Kind != Click {
		return unsupported("team", ev)
	}
	return g.Click(ev.Index)
}

// Initials returns the first letter of each word of name.
func Initials(name string) string {
	var b strings.Builder
	for _, word := range strings.Fields(name) {
		r, _ := utf8.DecodeRuneInString(word)
		b.WriteRune(r)
	}
	return b.String()
}

func (g *TeamGrid) Render() (template.HTML, error) {
	type member struct {
		Index                       int
		Name, Role, Photo, Initials string
		Bio                         template.HTML
		Expanded                    bool
	}
	data := struct {
		Theme   string
		Members []member
	}{Theme: modeName(g.theme)}
	for i, m := range g.members {
		var bio template.HTML
		if i == g.expanded && m.Bio != "" {
			var err error
			if bio, err = content.Markdown(m.Bio); err != nil {
				return "", fmt.Errorf("member %q bio: %w", m.Name, err)
			}
		}
		data.Members = append(data.Members, member{
			Index:    i,
			Name:     m.Name,
			Role:     m.Role,
			Photo:    m.Photo,
			Bio:      bio,
			Initials: Initials(m.Name),
			Expanded: i == g.expanded,
		})
	}
	return execute(teamTemplate, data)
}
