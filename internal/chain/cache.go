package chain

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
)

// Runner runs a lookup for one ORCID iD.
type Runner interface {
	Run(ctx context.Context, orcidID string) Result
}

// CachedRunner remembers rendered results per ORCID iD.
// No-results and canceled runs are never cached so a later visit retries the providers.
type CachedRunner struct {
	next   Runner
	cache  *cache.Cache
	logger logrus.FieldLogger
}

// NewCachedRunner wraps next with an in-memory cache whose entries live for ttl.
func NewCachedRunner(next Runner, ttl time.Duration, logger logrus.FieldLogger) *CachedRunner {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &CachedRunner{
		next:   next,
		cache:  cache.New(ttl, 2*ttl),
		logger: logger,
	}
}

// Run returns a cached rendered result or delegates to the wrapped runner.
func (c *CachedRunner) Run(ctx context.Context, orcidID string) Result {
	if v, ok := c.cache.Get(orcidID); ok {
		if res, ok := v.(Result); ok {
			c.logger.WithField("orcid", orcidID).Debug("publications served from cache")
			return res
		}
	}

	res := c.next.Run(ctx, orcidID)
	if res.State == Rendered {
		c.cache.SetDefault(orcidID, res)
	}
	return res
}

// Forget drops the cached result for orcidID.
func (c *CachedRunner) Forget(orcidID string) {
	c.cache.Delete(orcidID)
}

// Len returns the number of cached results, including expired ones not yet purged.
func (c *CachedRunner) Len() int {
	return c.cache.ItemCount()
}
