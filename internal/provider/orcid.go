package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/matsen/labsite/internal/orcid"
	"github.com/matsen/labsite/internal/publication"
)

// ORCIDBaseURL is the ORCID public API v3.0 base URL.
const ORCIDBaseURL = "https://pub.orcid.org/v3.0"

// ORCID fetches works from the ORCID public API.
type ORCID struct {
	client  *Client
	baseURL string
}

// NewORCID creates the ORCID provider. An empty baseURL selects ORCIDBaseURL.
func NewORCID(client *Client, baseURL string) *ORCID {
	if baseURL == "" {
		baseURL = ORCIDBaseURL
	}
	return &ORCID{client: client, baseURL: strings.TrimRight(baseURL, "/")}
}

// Name returns "orcid".
func (p *ORCID) Name() string { return "orcid" }

// URL returns the works endpoint for an ORCID iD.
func (p *ORCID) URL(orcidID string) string {
	return fmt.Sprintf("%s/%s/works", p.baseURL, orcidID)
}

// Fetch returns the first summary of every work group in the record.
func (p *ORCID) Fetch(ctx context.Context, orcidID string) ([]publication.Publication, error) {
	var resp orcidWorksResponse
	if err := p.client.getJSON(ctx, p.URL(orcidID), &resp); err != nil {
		return nil, wrap(p.Name(), err)
	}
	if resp.Group == nil {
		return nil, wrap(p.Name(), fmt.Errorf("%w: missing group", ErrDecode))
	}

	pubs := make([]publication.Publication, 0, len(*resp.Group))
	for _, g := range *resp.Group {
		var summary orcidWorkSummary
		if len(g.WorkSummary) > 0 {
			summary = g.WorkSummary[0]
		}
		pubs = append(pubs, normalizeORCID(summary, orcidID))
	}
	return pubs, nil
}

// normalizeORCID maps one ORCID work summary to a Publication.
// Work summaries do not list authors, so Authors is always AuthorsInPaper.
func normalizeORCID(w orcidWorkSummary, orcidID string) publication.Publication {
	putCode := publication.FirstNonEmpty(string(w.PutCode), string(w.PutCodeCamel))

	var workPage string
	if putCode != "" && orcidID != "" {
		workPage = orcid.WorkURL(orcidID, putCode)
	}

	link := publication.FirstNonEmpty(
		publication.DOIURL(orcidDOI(w.ExternalIDs.ExternalID)),
		workPage,
		string(w.URL.Value),
	)

	return publication.Publication{
		Title:   publication.Or(string(w.Title.Title.Value), publication.UntitledTitle),
		Authors: publication.AuthorsInPaper,
		Venue:   publication.Or(string(w.JournalTitle.Value), publication.UnknownVenue),
		Year:    publication.Or(string(w.PublicationDate.Year.Value), publication.UnknownYear),
		URL:     publication.Or(link, publication.PlaceholderURL),
	}
}

// orcidDOI returns the first DOI among a work's external identifiers.
func orcidDOI(ids []orcidExternalID) string {
	for _, id := range ids {
		if strings.EqualFold(string(id.Type), "doi") && strings.TrimSpace(string(id.Value)) != "" {
			return strings.TrimSpace(string(id.Value))
		}
	}
	return ""
}
