// Package resolver classifies raw user input, dispatches it to the matching
// source resolver and runs the cascading fallback protocol over bibliographic
// providers.
package resolver

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/citekit/citekit/schema/citation"
)

// Error taxonomy of the pipeline. Chain-internal failures are recovered
// locally and never surface past the chain boundary except as ErrNotFound
// after exhaustion.
var (
	// ErrUnrecognized means no classification rule matched the input. A
	// user-visible, non-fatal outcome.
	ErrUnrecognized = errors.New("unrecognized input")
	// ErrProviderUnavailable is a transport or HTTP failure talking to a
	// source.
	ErrProviderUnavailable = errors.New("provider unavailable")
	// ErrNotFound means a valid request yielded no record, or a chain was
	// exhausted.
	ErrNotFound = errors.New("not found")
	// ErrParse means a provider responded with an unexpected shape.
	ErrParse = errors.New("unexpected response shape")
	// ErrInvalidIdentifier flags malformed identifiers before any network
	// call is made.
	ErrInvalidIdentifier = errors.New("invalid identifier")
)

// Resolver resolves one class of input into a citation record.
type Resolver interface {
	// Name identifies the resolver in logs and registries.
	Name() string
	// Accepts reports whether the resolver can handle the input.
	Accepts(input string) bool
	// Resolve turns input into a record. The record must be resolved in the
	// citation.Record sense, otherwise an error is returned.
	Resolve(ctx context.Context, input string) (*citation.Record, error)
}

// provider is one bibliographic database inside a cascading chain.
type provider interface {
	name() string
	resolve(ctx context.Context, id string) (*citation.Record, error)
}

// chain tries providers in priority order. Transport failures, missing
// records and malformed responses all advance to the next provider; the
// first structurally valid record wins verbatim, with no field merging
// across providers.
type chain struct {
	providers []provider
}

func (c *chain) resolve(ctx context.Context, id string) (*citation.Record, error) {
	for _, p := range c.providers {
		rec, err := p.resolve(ctx, id)
		switch {
		case err != nil:
			logrus.WithFields(logrus.Fields{
				"provider": p.name(),
				"id":       id,
			}).WithError(err).Info("chain: advancing to next provider")
			continue
		case !rec.Resolved():
			logrus.WithFields(logrus.Fields{
				"provider": p.name(),
				"id":       id,
			}).Info("chain: structurally invalid record, advancing")
			continue
		}
		return rec, nil
	}
	return nil, ErrNotFound
}

// resolveConcurrent queries all providers at once with first-success-wins
// semantics. The fallback ordering contract is preserved: among successful
// providers the one with the lowest declared priority index wins, not the
// first arrival. Remaining in-flight attempts are cancelled.
func (c *chain) resolveConcurrent(ctx context.Context, id string) (*citation.Record, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	type result struct {
		index int
		rec   *citation.Record
	}
	results := make(chan result, len(c.providers))
	for i, p := range c.providers {
		go func(i int, p provider) {
			rec, err := p.resolve(ctx, id)
			if err != nil || !rec.Resolved() {
				results <- result{index: i}
				return
			}
			results <- result{index: i, rec: rec}
		}(i, p)
	}
	best := result{index: len(c.providers)}
	for range c.providers {
		r := <-results
		if r.rec == nil {
			continue
		}
		if r.index < best.index {
			best = r
		}
		if best.index == 0 {
			break // highest priority answered, nothing can outrank it
		}
	}
	if best.rec == nil {
		return nil, ErrNotFound
	}
	return best.rec, nil
}

// Registry is the read-only set of resolvers, constructed once at startup.
type Registry struct {
	resolvers []Resolver
	byName    map[string]Resolver
}

// NewRegistry builds a registry; order determines dispatch priority.
func NewRegistry(resolvers ...Resolver) *Registry {
	r := &Registry{byName: make(map[string]Resolver)}
	for _, res := range resolvers {
		r.resolvers = append(r.resolvers, res)
		r.byName[res.Name()] = res
	}
	return r
}

// Lookup returns a resolver by name.
func (r *Registry) Lookup(name string) (Resolver, bool) {
	res, ok := r.byName[name]
	return res, ok
}
