package render

import (
	"context"

	"github.com/matsen/labsite/internal/chain"
	"github.com/matsen/labsite/internal/orcid"
)

// Loader drives a Panel through one publications load.
type Loader struct {
	runner chain.Runner
}

// NewLoader creates a loader that fetches through runner.
func NewLoader(runner chain.Runner) *Loader {
	return &Loader{runner: runner}
}

// Load fetches publications for an already validated iD into panel.
// On success the panel lists the publications and gets its header;
// otherwise it shows the no-results panel.
func (l *Loader) Load(ctx context.Context, panel *Panel, orcidID string) (chain.Result, error) {
	panel.ShowLoading()

	res := l.runner.Run(ctx, orcidID)
	if res.State != chain.Rendered {
		return res, panel.ShowNoResults()
	}

	if err := panel.ShowPublications(res.Publications); err != nil {
		return res, err
	}
	panel.SetHeader(orcidID)
	return res, nil
}

// Search validates user input and loads it. Invalid input leaves the
// container untouched, sets the validation message and returns
// orcid.ErrInvalidID without contacting any provider.
func (l *Loader) Search(ctx context.Context, panel *Panel, input string) (chain.Result, error) {
	id, err := orcid.Validate(input)
	if err != nil {
		panel.SetSearchInput(input, err.Error())
		return chain.Result{}, err
	}
	panel.SetSearchInput(id, "")
	return l.Load(ctx, panel, id)
}
