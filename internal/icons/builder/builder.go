// Package builder assembles a Registry from a catalogue in one deterministic
// pass.
package builder

import (
	"context"

	"icon-registry/internal/common/logger"
	"icon-registry/internal/icons/catalogue"
	"icon-registry/internal/icons/identifier"
	"icon-registry/internal/icons/resolver"
	"icon-registry/pkg/registry"
)

// Builder turns catalogues into registries.
type Builder struct {
	resolver *resolver.Resolver
	logger   logger.Logger
}

func New(log logger.Logger) *Builder {
	log = logger.OrNoOp(log)
	return &Builder{
		resolver: resolver.New(log),
		logger:   log,
	}
}

// Build resolves every catalogue entry in lexicographic name order and
// assigns identifiers against a set local to this call. An empty catalogue
// yields an empty registry.
func (b *Builder) Build(ctx context.Context, cat catalogue.Catalogue) *registry.Registry {
	names := cat.Names()
	used := identifier.NewSet()
	tiers := make(map[resolver.Tier]int)

	entries := make([]registry.Entry, 0, len(names))
	for _, name := range names {
		content, tier := b.resolver.Resolve(ctx, name, cat)
		tiers[tier]++
		entries = append(entries, registry.Entry{
			RawName:    name,
			Identifier: identifier.Synthesize(name, used),
			Content:    content,
		})
	}

	reg := registry.New(entries)

	b.logger.Info("registry built", map[string]interface{}{
		"entries":     reg.Count(),
		"source":      tiers[resolver.TierSource],
		"fallback":    tiers[resolver.TierFallback],
		"placeholder": tiers[resolver.TierPlaceholder],
	})
	return reg
}

// Build runs a Builder that does not log.
func Build(ctx context.Context, cat catalogue.Catalogue) *registry.Registry {
	return New(nil).Build(ctx, cat)
}
