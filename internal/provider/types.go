package provider

import (
	"bytes"
	"encoding/json"
)

// text holds a JSON scalar as display text.
// Strings are kept verbatim, numbers keep their literal form, and null,
// booleans, objects and arrays become empty so odd records never fail decoding.
type text string

func (t *text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	*t = ""
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = text(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		*t = text(n.String())
	}
	return nil
}

// valueField is the {"value": ...} wrapper ORCID puts around most scalars.
type valueField struct {
	Value text `json:"value"`
}

// ORCID v3.0 /works response.
type orcidWorksResponse struct {
	Group *[]orcidGroup `json:"group"`
}

type orcidGroup struct {
	WorkSummary []orcidWorkSummary `json:"work-summary"`
}

type orcidWorkSummary struct {
	PutCode      text `json:"put-code"`
	PutCodeCamel text `json:"putCode"`
	Title        struct {
		Title valueField `json:"title"`
	} `json:"title"`
	PublicationDate struct {
		Year valueField `json:"year"`
	} `json:"publication-date"`
	JournalTitle valueField `json:"journal-title"`
	ExternalIDs  struct {
		ExternalID []orcidExternalID `json:"external-id"`
	} `json:"external-ids"`
	URL valueField `json:"url"`
}

type orcidExternalID struct {
	Type  text `json:"external-id-type"`
	Value text `json:"external-id-value"`
}

// Crossref /works response.
type crossrefResponse struct {
	Message *struct {
		Items *[]crossrefItem `json:"items"`
	} `json:"message"`
}

type crossrefItem struct {
	Title  []text `json:"title"`
	Author []struct {
		Given  text `json:"given"`
		Family text `json:"family"`
		Name   text `json:"name"`
	} `json:"author"`
	Published struct {
		DateParts [][]text `json:"date-parts"`
	} `json:"published"`
	Issued struct {
		DateParts [][]text `json:"date-parts"`
	} `json:"issued"`
	ContainerTitle []text `json:"container-title"`
	Publisher      text   `json:"publisher"`
	URL            text   `json:"URL"`
	DOI            text   `json:"DOI"`
}

// OpenAlex /works response.
type openAlexResponse struct {
	Results *[]openAlexWork `json:"results"`
}

type openAlexWork struct {
	ID          text `json:"id"`
	Title       text `json:"title"`
	DisplayName text `json:"display_name"`
	Authorships []struct {
		Author struct {
			DisplayName text `json:"display_name"`
		} `json:"author"`
	} `json:"authorships"`
	PublicationYear text `json:"publication_year"`
	HostVenue       struct {
		DisplayName text `json:"display_name"`
	} `json:"host_venue"`
	PrimaryLocation struct {
		Source struct {
			DisplayName text `json:"display_name"`
		} `json:"source"`
	} `json:"primary_location"`
	DOI text `json:"doi"`
	URL text `json:"url"`
}
