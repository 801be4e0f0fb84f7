// Package catalogue defines the content-source capability shared by every
// tier of icon resolution, and the in-memory catalogue handed to the builder.
package catalogue

import (
	"context"
	"sort"
)

// Source yields icon content by exact name. ok is false when the source has
// no data for name; implementations never return partial records.
type Source interface {
	Lookup(ctx context.Context, name string) (content string, ok bool)
}

// SourceFunc adapts a plain function to Source.
type SourceFunc func(ctx context.Context, name string) (string, bool)

func (f SourceFunc) Lookup(ctx context.Context, name string) (string, bool) {
	return f(ctx, name)
}

// Record is a single named asset as obtained from a supplier.
type Record struct {
	RawName string `json:"raw_name"`
	Content string `json:"content"`
}

// Catalogue maps raw names to content. It is treated as read-only once
// handed to a consumer.
type Catalogue map[string]string

// Lookup implements Source.
func (c Catalogue) Lookup(_ context.Context, name string) (string, bool) {
	content, ok := c[name]
	return content, ok
}

// Names returns the catalogue keys in lexicographic byte order.
func (c Catalogue) Names() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Records returns the catalogue as records ordered by name.
func (c Catalogue) Records() []Record {
	names := c.Names()
	out := make([]Record, 0, len(names))
	for _, name := range names {
		out = append(out, Record{RawName: name, Content: c[name]})
	}
	return out
}

// FromRecords builds a Catalogue. A later record with the same name wins.
func FromRecords(records []Record) Catalogue {
	cat := make(Catalogue, len(records))
	for _, r := range records {
		cat[r.RawName] = r.Content
	}
	return cat
}

// Chain tries each source in order and returns the first hit.
type Chain []Source

func (c Chain) Lookup(ctx context.Context, name string) (string, bool) {
	for _, src := range c {
		if src == nil {
			continue
		}
		if content, ok := src.Lookup(ctx, name); ok {
			return content, true
		}
		if ctx.Err() != nil {
			return "", false
		}
	}
	return "", false
}
