// Package fallback holds the bundled icon set shipped with the binary and the
// placeholder used when nothing else resolves.
package fallback

import (
	"context"

	"icon-registry/internal/icons/catalogue"
)

// Placeholder is returned when no tier has content for a name.
const Placeholder = `<path d="M12 2L2 7l10 5 10-5-10-5zM2 17l10 5 10-5M2 12l10 5 10-5"></path>`

var bundled = map[string]string{
	"home":   `<path d="m3 9 9-7 9 7v11a2 2 0 0 1-2 2H5a2 2 0 0 1-2-2z"></path><polyline points="9,22 9,12 15,12 15,22"></polyline>`,
	"user":   `<path d="M20 21v-2a4 4 0 0 0-4-4H8a4 4 0 0 0-4 4v2"></path><circle cx="12" cy="7" r="4"></circle>`,
	"heart":  `<path d="M20.84 4.61a5.5 5.5 0 0 0-7.78 0L12 5.67l-1.06-1.06a5.5 5.5 0 0 0-7.78 7.78l1.06 1.06L12 21.23l7.78-7.78 1.06-1.06a5.5 5.5 0 0 0 0-7.78z"></path>`,
	"star":   `<polygon points="12,2 15.09,8.26 22,9.27 17,14.14 18.18,21.02 12,17.77 5.82,21.02 7,14.14 2,9.27 8.91,8.26"></polygon>`,
	"search": `<circle cx="11" cy="11" r="8"></circle><path d="M21 21l-4.35-4.35"></path>`,
}

// Set is the read-only bundled fallback source.
type Set struct{}

// Lookup implements catalogue.Source.
func (Set) Lookup(_ context.Context, name string) (string, bool) {
	content, ok := bundled[name]
	return content, ok
}

// Bundled returns a copy of the bundled set as a Catalogue.
func Bundled() catalogue.Catalogue {
	out := make(catalogue.Catalogue, len(bundled))
	for name, content := range bundled {
		out[name] = content
	}
	return out
}
