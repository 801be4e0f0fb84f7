// Package dispatch resolves arbitrary runtime names against a static registry,
// re-entering the resolver chain with an optional live source on a miss.
package dispatch

import (
	"context"
	"time"

	"icon-registry/internal/common/logger"
	"icon-registry/internal/common/metrics"
	"icon-registry/internal/icons/catalogue"
	"icon-registry/internal/icons/resolver"
)

// Result is the outcome of one dispatch. Name is the matched raw name, or the
// input when nothing in the registry matched.
type Result struct {
	Name    string        `json:"name"`
	Content string        `json:"content"`
	Matched bool          `json:"matched"`
	Tier    resolver.Tier `json:"tier"`
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLive sets the source consulted for names absent from the registry.
func WithLive(src catalogue.Source) Option {
	return func(d *Dispatcher) {
		d.live = src
	}
}

// WithLiveTimeout bounds each live lookup. Zero disables the bound.
func WithLiveTimeout(timeout time.Duration) Option {
	return func(d *Dispatcher) {
		d.liveTimeout = timeout
	}
}

func WithLogger(log logger.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger.OrNoOp(log)
	}
}

// Dispatcher is safe for concurrent use; it holds no mutable state.
type Dispatcher struct {
	static      catalogue.Source
	live        catalogue.Source
	liveTimeout time.Duration
	resolver    *resolver.Resolver
	logger      logger.Logger
}

// New returns a Dispatcher over static, typically a *registry.Registry or the
// bundled fallback set.
func New(static catalogue.Source, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		static: static,
		logger: logger.NewNoOpLogger(),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.resolver = resolver.New(d.logger)
	return d
}

// Dispatch always yields content. An exact registry hit is returned as
// stored; anything else goes through the live source, the fallback set and
// finally the placeholder.
func (d *Dispatcher) Dispatch(ctx context.Context, name string) Result {
	if d.static != nil && name != "" {
		if content, ok := d.static.Lookup(ctx, name); ok {
			metrics.IconDispatchTotal.WithLabelValues(resolver.TierRegistry.String()).Inc()
			return Result{Name: name, Content: content, Matched: true, Tier: resolver.TierRegistry}
		}
	}

	content, tier := d.resolveMiss(ctx, name)
	metrics.IconDispatchTotal.WithLabelValues(tier.String()).Inc()
	return Result{Name: name, Content: content, Tier: tier}
}

func (d *Dispatcher) resolveMiss(ctx context.Context, name string) (string, resolver.Tier) {
	if d.live == nil || name == "" {
		return d.resolver.Resolve(ctx, name, nil)
	}

	lookupCtx := ctx
	if d.liveTimeout > 0 {
		var cancel context.CancelFunc
		lookupCtx, cancel = context.WithTimeout(ctx, d.liveTimeout)
		defer cancel()
	}

	return d.resolver.Resolve(lookupCtx, name, d.live)
}
