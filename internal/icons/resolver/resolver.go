// Package resolver implements the three-tier content resolution used both by
// the registry builder and by runtime dispatch: the supplied source, then the
// bundled fallback set, then the placeholder. Every call yields content.
package resolver

import (
	"context"
	"strings"

	apperrors "icon-registry/internal/common/errors"
	"icon-registry/internal/common/logger"
	"icon-registry/internal/icons/catalogue"
	"icon-registry/internal/icons/fallback"
)

// Tier names the stage that produced a piece of content.
type Tier string

const (
	TierRegistry    Tier = "registry"
	TierSource      Tier = "source"
	TierFallback    Tier = "fallback"
	TierPlaceholder Tier = "placeholder"
)

func (t Tier) String() string {
	return string(t)
}

const (
	svgOpen  = "<svg"
	svgClose = "</svg>"
)

// Resolver resolves names through the fallback chain. The zero value is not
// usable; construct with New.
type Resolver struct {
	fallback catalogue.Source
	logger   logger.Logger
}

// New returns a Resolver backed by the bundled fallback set.
func New(log logger.Logger) *Resolver {
	return &Resolver{
		fallback: fallback.Set{},
		logger:   logger.OrNoOp(log),
	}
}

// Resolve returns content for name. src may be nil, in which case the first
// tier is skipped.
func (r *Resolver) Resolve(ctx context.Context, name string, src catalogue.Source) (string, Tier) {
	if src != nil {
		if raw, ok := src.Lookup(ctx, name); ok && strings.TrimSpace(raw) != "" {
			content, err := Extract(name, raw)
			if err == nil {
				return content, TierSource
			}
			r.logger.Debug("source content rejected", map[string]interface{}{
				"name":      name,
				"errorCode": apperrors.CodeOf(err),
				"error":     err.Error(),
			})
		} else {
			r.logger.Debug("source has no data", map[string]interface{}{
				"name": name,
			})
		}
	}

	if content, ok := r.fallback.Lookup(ctx, name); ok {
		return content, TierFallback
	}

	r.logger.Debug("name unresolved, using placeholder", map[string]interface{}{
		"name":      name,
		"errorCode": apperrors.ErrCodeUnknownName,
	})
	return fallback.Placeholder, TierPlaceholder
}

var defaultResolver = New(nil)

// Resolve runs the chain with a resolver that does not log.
func Resolve(ctx context.Context, name string, src catalogue.Source) (string, Tier) {
	return defaultResolver.Resolve(ctx, name, src)
}

// Extract reduces a stored value to its inner fragment. A value that has no
// <svg root is already a fragment and is returned unchanged. Otherwise the
// fragment is the text between the first '>' after "<svg" and the last
// "</svg>".
func Extract(name, raw string) (string, error) {
	open := strings.Index(raw, svgOpen)
	if open < 0 {
		return raw, nil
	}

	gt := strings.IndexByte(raw[open:], '>')
	if gt < 0 {
		return "", apperrors.NewExtractionFailureError(name, "unterminated <svg tag")
	}
	start := open + gt + 1

	end := strings.LastIndex(raw, svgClose)
	if end < 0 {
		return "", apperrors.NewExtractionFailureError(name, "missing </svg>")
	}
	if end < start {
		return "", apperrors.NewExtractionFailureError(name, "closing tag precedes content start")
	}

	return raw[start:end], nil
}
