// Package chain runs the publication providers in fallback order.
//
// Providers are queried one at a time. The first one that returns at least one
// publication wins and no later provider is contacted. Errors and empty results
// are logged and treated alike: the chain advances to the next provider.
package chain

import (
	"context"
	"time"

	"github.com/matsen/labsite/internal/provider"
	"github.com/matsen/labsite/internal/publication"
	"github.com/sirupsen/logrus"
)

// DefaultStageTimeout bounds one provider request/response cycle.
const DefaultStageTimeout = 10 * time.Second

// State is a node of the fallback state machine.
type State int

const (
	TryOrcid State = iota
	TryCrossref
	TryOpenAlex
	Rendered
	NoResultsFound
)

var stateNames = map[State]string{
	TryOrcid:       "try_orcid",
	TryCrossref:    "try_crossref",
	TryOpenAlex:    "try_openalex",
	Rendered:       "rendered",
	NoResultsFound: "no_results_found",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// MarshalText encodes the state by name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Terminal reports whether s ends the chain.
func (s State) Terminal() bool {
	return s == Rendered || s == NoResultsFound
}

// StateFor returns the Try state for a provider name, or -1 ("unknown") for other providers.
func StateFor(providerName string) State {
	switch providerName {
	case "orcid":
		return TryOrcid
	case "crossref":
		return TryCrossref
	case "openalex":
		return TryOpenAlex
	default:
		return -1
	}
}

// Kind tags the outcome of one stage.
type Kind int

const (
	Success Kind = iota
	Empty
	Failed
)

func (k Kind) String() string {
	switch k {
	case Success:
		return "success"
	case Empty:
		return "empty"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// StageResult is the tagged outcome of querying one provider.
type StageResult struct {
	Provider     string                    `json:"provider"`
	Kind         Kind                      `json:"kind"`
	Publications []publication.Publication `json:"-"`
	Count        int                       `json:"count"`
	Err          error                     `json:"-"`
	Error        string                    `json:"error,omitempty"`
	Duration     time.Duration             `json:"duration_ns"`
}

// Result is the outcome of a whole chain run.
// Provider names the stage whose data was used. Trace lists the states visited,
// ending in a terminal state. Err is set when the caller's context ended the run.
type Result struct {
	State        State                     `json:"state"`
	Provider     string                    `json:"provider,omitempty"`
	Publications []publication.Publication `json:"publications"`
	Stages       []StageResult             `json:"stages"`
	Trace        []State                   `json:"trace"`
	Err          error                     `json:"-"`
	Canceled     bool                      `json:"canceled,omitempty"`
}

// Chain queries providers sequentially until one has data.
type Chain struct {
	providers []provider.Provider
	timeout   time.Duration
	logger    logrus.FieldLogger
}

// Option configures a Chain.
type Option func(*Chain)

// WithStageTimeout sets the per-provider deadline. Zero disables it.
func WithStageTimeout(d time.Duration) Option {
	return func(c *Chain) {
		c.timeout = d
	}
}

// WithLogger sets the logger that receives provider failures.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(c *Chain) {
		c.logger = logger
	}
}

// New creates a chain over providers, queried in slice order.
func New(providers []provider.Provider, opts ...Option) *Chain {
	c := &Chain{
		providers: providers,
		timeout:   DefaultStageTimeout,
		logger:    logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Providers returns the provider names in query order.
func (c *Chain) Providers() []string {
	names := make([]string, len(c.providers))
	for i, p := range c.providers {
		names[i] = p.Name()
	}
	return names
}

// Run executes the fallback chain for an already validated ORCID iD.
func (c *Chain) Run(ctx context.Context, orcidID string) Result {
	res := Result{State: NoResultsFound}

	for _, p := range c.providers {
		if err := ctx.Err(); err != nil {
			res.Err = err
			res.Canceled = true
			break
		}

		res.Trace = append(res.Trace, StateFor(p.Name()))
		stage := c.runStage(ctx, p, orcidID)
		res.Stages = append(res.Stages, stage)

		log := c.logger.WithFields(logrus.Fields{
			"provider": stage.Provider,
			"orcid":    orcidID,
			"duration": stage.Duration,
		})

		switch stage.Kind {
		case Success:
			log.WithField("count", stage.Count).Info("publications found")
			res.State = Rendered
			res.Provider = stage.Provider
			res.Publications = stage.Publications
			res.Trace = append(res.Trace, Rendered)
			return res
		case Empty:
			log.Info("provider returned no publications, trying next")
		case Failed:
			log.WithError(stage.Err).Warn("provider failed, trying next")
		}
	}

	if res.Err == nil && ctx.Err() != nil {
		res.Err = ctx.Err()
		res.Canceled = true
	}
	res.Trace = append(res.Trace, NoResultsFound)
	return res
}

// runStage queries one provider under the stage deadline and tags the outcome.
func (c *Chain) runStage(ctx context.Context, p provider.Provider, orcidID string) StageResult {
	stageCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		stageCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	pubs, err := p.Fetch(stageCtx, orcidID)
	stage := StageResult{
		Provider: p.Name(),
		Duration: time.Since(start),
	}

	switch {
	case err != nil:
		stage.Kind = Failed
		stage.Err = err
		stage.Error = err.Error()
	case len(pubs) == 0:
		stage.Kind = Empty
	default:
		stage.Kind = Success
		stage.Publications = pubs
		stage.Count = len(pubs)
	}
	return stage
}
