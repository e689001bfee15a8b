package provider

// Endpoints overrides provider base URLs. Empty fields select the public APIs.
type Endpoints struct {
	ORCID    string
	Crossref string
	OpenAlex string
}

// Default returns the providers in fallback order: ORCID, Crossref, OpenAlex.
func Default(client *Client, endpoints Endpoints) []Provider {
	return []Provider{
		NewORCID(client, endpoints.ORCID),
		NewCrossref(client, endpoints.Crossref),
		NewOpenAlex(client, endpoints.OpenAlex),
	}
}
