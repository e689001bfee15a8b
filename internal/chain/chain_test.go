package chain

import (
	"context"
	"errors"
	"fmt"
	"io"
	"reflect"
	"testing"
	"time"

	"github.com/matsen/labsite/internal/provider"
	"github.com/matsen/labsite/internal/publication"
	"github.com/sirupsen/logrus"
)

const testORCID = "0000-0003-0796-6265"

// fakeProvider returns a fixed result and records calls into a shared log.
type fakeProvider struct {
	name  string
	pubs  []publication.Publication
	err   error
	delay time.Duration
	calls *[]string
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Fetch(ctx context.Context, orcidID string) ([]publication.Publication, error) {
	*f.calls = append(*f.calls, f.name)
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", provider.ErrNetwork, ctx.Err())
		}
	}
	return f.pubs, f.err
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func pubs(titles ...string) []publication.Publication {
	out := make([]publication.Publication, len(titles))
	for i, title := range titles {
		out[i] = publication.Publication{Title: title, Year: "2020"}
	}
	return out
}

func newFakes(calls *[]string, orcidPubs, crossrefPubs, openAlexPubs []publication.Publication, orcidErr, crossrefErr, openAlexErr error) []provider.Provider {
	return []provider.Provider{
		&fakeProvider{name: "orcid", pubs: orcidPubs, err: orcidErr, calls: calls},
		&fakeProvider{name: "crossref", pubs: crossrefPubs, err: crossrefErr, calls: calls},
		&fakeProvider{name: "openalex", pubs: openAlexPubs, err: openAlexErr, calls: calls},
	}
}

func TestRun_Fallback(t *testing.T) {
	networkErr := &provider.ProviderError{Provider: "x", Err: provider.ErrNetwork}
	statusErr := &provider.ProviderError{Provider: "x", Err: &provider.HTTPStatusError{StatusCode: 500}}
	decodeErr := &provider.ProviderError{Provider: "x", Err: provider.ErrDecode}

	tests := []struct {
		name         string
		orcid        []publication.Publication
		crossref     []publication.Publication
		openAlex     []publication.Publication
		orcidErr     error
		crossrefErr  error
		openAlexErr  error
		wantCalls    []string
		wantState    State
		wantProvider string
		wantTitles   []string
		wantTrace    []State
	}{
		{
			name:         "orcid has works",
			orcid:        pubs("A"),
			crossref:     pubs("B"),
			openAlex:     pubs("C"),
			wantCalls:    []string{"orcid"},
			wantState:    Rendered,
			wantProvider: "orcid",
			wantTitles:   []string{"A"},
			wantTrace:    []State{TryOrcid, Rendered},
		},
		{
			name:         "orcid empty falls to crossref",
			crossref:     pubs("B1", "B2"),
			openAlex:     pubs("C"),
			wantCalls:    []string{"orcid", "crossref"},
			wantState:    Rendered,
			wantProvider: "crossref",
			wantTitles:   []string{"B1", "B2"},
			wantTrace:    []State{TryOrcid, TryCrossref, Rendered},
		},
		{
			name:         "orcid error falls to crossref",
			orcidErr:     statusErr,
			crossref:     pubs("B"),
			wantCalls:    []string{"orcid", "crossref"},
			wantState:    Rendered,
			wantProvider: "crossref",
			wantTitles:   []string{"B"},
			wantTrace:    []State{TryOrcid, TryCrossref, Rendered},
		},
		{
			name:         "orcid and crossref fail, openalex has works",
			orcidErr:     networkErr,
			crossrefErr:  decodeErr,
			openAlex:     pubs("C"),
			wantCalls:    []string{"orcid", "crossref", "openalex"},
			wantState:    Rendered,
			wantProvider: "openalex",
			wantTitles:   []string{"C"},
			wantTrace:    []State{TryOrcid, TryCrossref, TryOpenAlex, Rendered},
		},
		{
			name:      "all empty",
			wantCalls: []string{"orcid", "crossref", "openalex"},
			wantState: NoResultsFound,
			wantTrace: []State{TryOrcid, TryCrossref, TryOpenAlex, NoResultsFound},
		},
		{
			name:        "all fail",
			orcidErr:    networkErr,
			crossrefErr: statusErr,
			openAlexErr: decodeErr,
			wantCalls:   []string{"orcid", "crossref", "openalex"},
			wantState:   NoResultsFound,
			wantTrace:   []State{TryOrcid, TryCrossref, TryOpenAlex, NoResultsFound},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls []string
			c := New(
				newFakes(&calls, tt.orcid, tt.crossref, tt.openAlex, tt.orcidErr, tt.crossrefErr, tt.openAlexErr),
				WithLogger(quietLogger()),
			)

			res := c.Run(context.Background(), testORCID)

			if !reflect.DeepEqual(calls, tt.wantCalls) {
				t.Errorf("calls = %v, want %v", calls, tt.wantCalls)
			}
			if res.State != tt.wantState {
				t.Errorf("State = %s, want %s", res.State, tt.wantState)
			}
			if res.Provider != tt.wantProvider {
				t.Errorf("Provider = %q, want %q", res.Provider, tt.wantProvider)
			}
			var titles []string
			for _, p := range res.Publications {
				titles = append(titles, p.Title)
			}
			if !reflect.DeepEqual(titles, tt.wantTitles) {
				t.Errorf("titles = %v, want %v", titles, tt.wantTitles)
			}
			if !reflect.DeepEqual(res.Trace, tt.wantTrace) {
				t.Errorf("Trace = %v, want %v", res.Trace, tt.wantTrace)
			}
			if len(res.Stages) != len(tt.wantCalls) {
				t.Errorf("len(Stages) = %d, want %d", len(res.Stages), len(tt.wantCalls))
			}
			if !res.State.Terminal() {
				t.Errorf("final state %s is not terminal", res.State)
			}
		})
	}
}

func TestRun_StageKinds(t *testing.T) {
	var calls []string
	failure := &provider.ProviderError{Provider: "orcid", Err: provider.ErrDecode}
	c := New(newFakes(&calls, nil, []publication.Publication{}, pubs("C"), failure, nil, nil), WithLogger(quietLogger()))

	res := c.Run(context.Background(), testORCID)

	wantKinds := []Kind{Failed, Empty, Success}
	for i, stage := range res.Stages {
		if stage.Kind != wantKinds[i] {
			t.Errorf("Stages[%d].Kind = %s, want %s", i, stage.Kind, wantKinds[i])
		}
	}
	if !errors.Is(res.Stages[0].Err, provider.ErrDecode) {
		t.Errorf("Stages[0].Err = %v, want ErrDecode", res.Stages[0].Err)
	}
	if res.Stages[0].Error == "" {
		t.Error("Stages[0].Error should carry the message")
	}
	if res.Stages[2].Count != 1 {
		t.Errorf("Stages[2].Count = %d, want 1", res.Stages[2].Count)
	}
}

func TestRun_StageTimeout(t *testing.T) {
	var calls []string
	providers := []provider.Provider{
		&fakeProvider{name: "orcid", pubs: pubs("slow"), delay: time.Second, calls: &calls},
		&fakeProvider{name: "crossref", pubs: pubs("B"), calls: &calls},
	}
	c := New(providers, WithStageTimeout(20*time.Millisecond), WithLogger(quietLogger()))

	res := c.Run(context.Background(), testORCID)

	if res.Provider != "crossref" {
		t.Errorf("Provider = %q, want crossref after orcid timed out", res.Provider)
	}
	if res.Stages[0].Kind != Failed || !provider.IsNetwork(res.Stages[0].Err) {
		t.Errorf("Stages[0] = %+v, want network failure", res.Stages[0])
	}
}

func TestRun_CanceledContext(t *testing.T) {
	var calls []string
	c := New(newFakes(&calls, pubs("A"), nil, nil, nil, nil, nil), WithLogger(quietLogger()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := c.Run(ctx, testORCID)

	if len(calls) != 0 {
		t.Errorf("calls = %v, want none", calls)
	}
	if res.State != NoResultsFound || !res.Canceled {
		t.Errorf("result = %+v, want canceled NoResultsFound", res)
	}
	if !errors.Is(res.Err, context.Canceled) {
		t.Errorf("Err = %v, want context.Canceled", res.Err)
	}
}

func TestStateNames(t *testing.T) {
	if TryOrcid.String() != "try_orcid" || NoResultsFound.String() != "no_results_found" {
		t.Error("unexpected state names")
	}
	if StateFor("crossref") != TryCrossref || StateFor("other").String() != "unknown" {
		t.Error("StateFor mapping wrong")
	}
	if TryCrossref.Terminal() || !Rendered.Terminal() {
		t.Error("Terminal() wrong")
	}
}

func TestProviders(t *testing.T) {
	var calls []string
	c := New(newFakes(&calls, nil, nil, nil, nil, nil, nil))
	if got := c.Providers(); !reflect.DeepEqual(got, []string{"orcid", "crossref", "openalex"}) {
		t.Errorf("Providers() = %v", got)
	}
}
