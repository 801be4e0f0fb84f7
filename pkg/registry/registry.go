// pkg/registry/registry.go
package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	apperrors "icon-registry/internal/common/errors"
	"icon-registry/internal/icons/identifier"
)

// Registry is an ordered, immutable table of generated icon entries. It is
// safe for concurrent use by any number of readers.
type Registry struct {
	entries []Entry
	index   map[string]int
	count   int
}

// New copies entries into a Registry. When raw names repeat, Lookup returns
// the first; Validate reports the duplicate.
func New(entries []Entry) *Registry {
	return newRegistry(entries, len(entries))
}

func newRegistry(entries []Entry, count int) *Registry {
	r := &Registry{
		entries: make([]Entry, len(entries)),
		index:   make(map[string]int, len(entries)),
		count:   count,
	}
	copy(r.entries, entries)
	for i, e := range r.entries {
		if _, dup := r.index[e.RawName]; !dup {
			r.index[e.RawName] = i
		}
	}
	return r
}

// Lookup returns the stored content for an exact raw name.
func (r *Registry) Lookup(_ context.Context, name string) (string, bool) {
	e, ok := r.Entry(name)
	return e.Content, ok
}

func (r *Registry) Entry(name string) (Entry, bool) {
	if r == nil {
		return Entry{}, false
	}
	i, ok := r.index[name]
	if !ok {
		return Entry{}, false
	}
	return r.entries[i], true
}

func (r *Registry) At(i int) Entry {
	return r.entries[i]
}

func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.entries)
}

// Count is the total recorded alongside the entries.
func (r *Registry) Count() int {
	if r == nil {
		return 0
	}
	return r.count
}

// Entries returns a copy of the entries in registry order.
func (r *Registry) Entries() []Entry {
	if r == nil {
		return nil
	}
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Names returns raw names in registry order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	out := make([]string, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.RawName
	}
	return out
}

// Validate checks that identifiers and raw names are pairwise unique, that
// every identifier is a valid exported name, and that the count matches.
func (r *Registry) Validate() error {
	var problems []string

	if r.Count() != r.Len() {
		problems = append(problems, fmt.Sprintf("count %d does not match %d entries", r.Count(), r.Len()))
	}

	ids := make(map[string]string, r.Len())
	names := make(map[string]struct{}, r.Len())
	for i := 0; i < r.Len(); i++ {
		e := r.entries[i]
		if _, dup := names[e.RawName]; dup {
			problems = append(problems, fmt.Sprintf("duplicate raw name %q", e.RawName))
		}
		names[e.RawName] = struct{}{}

		if prev, dup := ids[e.Identifier]; dup {
			problems = append(problems, fmt.Sprintf("identifier %q assigned to both %q and %q", e.Identifier, prev, e.RawName))
		}
		ids[e.Identifier] = e.RawName

		if !identifier.Valid(e.Identifier) {
			problems = append(problems, fmt.Sprintf("invalid identifier %q for %q", e.Identifier, e.RawName))
		}
	}

	if len(problems) > 0 {
		return apperrors.NewRegistryInvalidError(strings.Join(problems, "; "))
	}
	return nil
}

// Document returns the serialisable form.
func (r *Registry) Document() Document {
	entries := r.Entries()
	if entries == nil {
		entries = []Entry{}
	}
	return Document{Count: r.Count(), Entries: entries}
}

// Marshal encodes the registry deterministically. Markup is not HTML-escaped.
func Marshal(r *Registry) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r.Document()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes a registry document. The recorded count is kept as-is.
func Unmarshal(data []byte) (*Registry, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return newRegistry(doc.Entries, doc.Count), nil
}

func LoadRegistry(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Unmarshal(data)
}

func SaveRegistry(r *Registry, path string) error {
	data, err := Marshal(r)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}
