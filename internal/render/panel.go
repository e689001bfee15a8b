package render

import (
	"bytes"
	"html/template"

	"github.com/matsen/labsite/internal/orcid"
	"github.com/matsen/labsite/internal/publication"
)

// DefaultSampleAction is where the no-results panel sends the sample-data request.
const DefaultSampleAction = "/fragments/publications/sample"

// PanelState is what the publications container currently shows.
type PanelState int

const (
	StateIdle PanelState = iota
	StateLoading
	StateListing
	StateEmpty
	StateNoResults
)

func (s PanelState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateListing:
		return "listing"
	case StateEmpty:
		return "empty"
	case StateNoResults:
		return "no_results"
	default:
		return "unknown"
	}
}

// Header is the section heading naming the ORCID record shown.
type Header struct {
	ORCID      string
	ProfileURL string
}

// Panel is the publications section of one page.
// Every Show* call replaces the whole container body; the header is created at most once.
type Panel struct {
	header            *Header
	body              template.HTML
	state             PanelState
	shown             []publication.Publication
	sampleAction      string
	searchAction      string
	searchValue       string
	validationMessage string
	bodyClass         string
}

// PanelOption configures a Panel.
type PanelOption func(*Panel)

// WithSampleAction sets the URL of the "Add Sample Publications" action.
func WithSampleAction(action string) PanelOption {
	return func(p *Panel) {
		p.sampleAction = action
	}
}

// WithSearchForm adds the manual ORCID search form submitting to action.
func WithSearchForm(action string) PanelOption {
	return func(p *Panel) {
		p.searchAction = action
	}
}

// WithBodyClass adds a class to the section element (the theme class).
func WithBodyClass(class string) PanelOption {
	return func(p *Panel) {
		p.bodyClass = class
	}
}

// NewPanel creates an empty panel.
func NewPanel(opts ...PanelOption) *Panel {
	p := &Panel{sampleAction: DefaultSampleAction}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ShowLoading replaces the container with the loading indicator.
func (p *Panel) ShowLoading() {
	p.replace(StateLoading, template.HTML(loadingHTML), nil)
}

// ShowPublications sorts, groups and renders pubs into the container.
func (p *Panel) ShowPublications(pubs []publication.Publication) error {
	if len(pubs) == 0 {
		p.replace(StateEmpty, template.HTML(emptyListHTML), nil)
		return nil
	}

	groups := Group(pubs)
	var buf bytes.Buffer
	if err := listTemplate.Execute(&buf, groups); err != nil {
		return err
	}
	p.replace(StateListing, template.HTML(buf.String()), Flatten(groups))
	return nil
}

// ShowNoResults renders the informational panel offering sample data.
func (p *Panel) ShowNoResults() error {
	var buf bytes.Buffer
	if err := noResultsTemplate.Execute(&buf, p.sampleAction); err != nil {
		return err
	}
	p.replace(StateNoResults, template.HTML(buf.String()), nil)
	return nil
}

// LoadSamples renders the fixed sample publications.
func (p *Panel) LoadSamples() error {
	return p.ShowPublications(publication.Samples())
}

// SetHeader adds the heading for orcidID if the section has none yet.
// It returns true only for the call that created the heading.
func (p *Panel) SetHeader(orcidID string) bool {
	if p.header != nil {
		return false
	}
	p.header = &Header{ORCID: orcidID, ProfileURL: orcid.ProfileURL(orcidID)}
	return true
}

// SetSearchInput records the manual search input and its validation message.
func (p *Panel) SetSearchInput(value, message string) {
	p.searchValue = value
	p.validationMessage = message
}

// Header returns the section heading, or nil if none was set.
func (p *Panel) Header() *Header { return p.header }

// State returns what the container currently shows.
func (p *Panel) State() PanelState { return p.state }

// Body returns the container contents.
func (p *Panel) Body() template.HTML { return p.body }

// Shown returns the publications in the order they are displayed.
func (p *Panel) Shown() []publication.Publication { return p.shown }

// SearchValue returns the search input; after a valid search it is the normalized iD.
func (p *Panel) SearchValue() string { return p.searchValue }

// ValidationMessage returns the message shown under the search form, if any.
func (p *Panel) ValidationMessage() string { return p.validationMessage }

// HTML renders the whole section: header, search form and container.
func (p *Panel) HTML() (template.HTML, error) {
	data := sectionData{
		Header:            p.header,
		SearchAction:      p.searchAction,
		SearchValue:       p.searchValue,
		ValidationMessage: p.validationMessage,
		BodyClass:         p.bodyClass,
		Body:              p.body,
	}
	var buf bytes.Buffer
	if err := sectionTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

func (p *Panel) replace(state PanelState, body template.HTML, shown []publication.Publication) {
	p.state = state
	p.body = body
	p.shown = shown
}
