package render

import "html/template"

// Templates are parsed at init time to fail fast on template errors.
var (
	listTemplate      = template.Must(template.New("list").Parse(listHTML))
	noResultsTemplate = template.Must(template.New("no-results").Parse(noResultsHTML))
	sectionTemplate   = template.Must(template.New("section").Parse(sectionHTML))
)

const listHTML = `{{range .}}<div class="pub-year-group" data-year="{{.Label}}">
{{range .Publications}}<div class="publication-item">
  <div class="pub-year">{{.Year}}</div>
  <div class="pub-details">
    <h4>{{.Title}}</h4>
    <p class="pub-authors">{{.Authors}}</p>
    <p class="pub-venue">{{.Venue}}</p>
    <a class="pub-link" href="{{.URL}}" target="_blank" rel="noopener noreferrer">View Paper</a>
  </div>
</div>
{{end}}</div>
{{end}}`

const noResultsHTML = `<div class="no-publications">
  <p>No publications found for this identifier across multiple academic databases.</p>
  <p>This could be because:</p>
  <ul>
    <li>The publications are not indexed in the databases we're searching</li>
    <li>The ORCID ID might not be linked to publications in these databases</li>
    <li>There might be temporary API access issues</li>
  </ul>
  <form method="get" action="{{.}}">
    <button type="submit" id="manually-add-pubs" class="add-pubs-btn">Add Sample Publications</button>
  </form>
</div>`

const emptyListHTML = `<p class="no-publications">No publications found for this identifier.</p>`

const loadingHTML = `<div class="loading">Loading publications...</div>`

const sectionHTML = `<section class="publications-section{{if .BodyClass}} {{.BodyClass}}{{end}}" id="publications">
  <div class="section-header">
    {{- with .Header}}
    <h2>Publications - ORCID: {{.ORCID}} <a href="{{.ProfileURL}}" target="_blank" rel="noopener noreferrer" class="orcid-link"><i class="fa-brands fa-orcid"></i></a></h2>
    {{- end}}
    {{- if .SearchAction}}
    <form class="orcid-search" method="get" action="{{.SearchAction}}">
      <div class="search-container">
        <input type="text" id="orcid-search" name="orcid" value="{{.SearchValue}}" placeholder="Enter ORCID ID (e.g., 0000-0003-0796-6265)">
        <button id="search-button" type="submit">Search</button>
      </div>
      {{- if .ValidationMessage}}
      <p class="validation-message" role="alert">{{.ValidationMessage}}</p>
      {{- end}}
    </form>
    {{- end}}
  </div>
  <div class="publications-list">{{.Body}}</div>
</section>
`

// sectionData holds data for the section template.
type sectionData struct {
	Header            *Header
	SearchAction      string
	SearchValue       string
	ValidationMessage string
	BodyClass         string
	Body              template.HTML
}
