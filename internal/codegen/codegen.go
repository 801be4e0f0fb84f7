// Package codegen emits a Go package with one accessor per registry entry.
package codegen

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"mvdan.cc/gofumpt/format"

	apperrors "icon-registry/internal/common/errors"
	"icon-registry/internal/icons/fallback"
	"icon-registry/pkg/registry"
)

// ModulePath is the import prefix of the packages the generated code uses.
const ModulePath = "icon-registry"

type Options struct {
	PackageName string
	// Generator is named in the DO NOT EDIT header.
	Generator  string
	ModulePath string
}

type templateData struct {
	Options
	Count       int
	Placeholder string
	Entries     []indexedEntry
}

type indexedEntry struct {
	registry.Entry
	Index int
}

var funcs = template.FuncMap{
	"quote": func(s string) string { return fmt.Sprintf("%q", s) },
}

var fileTemplate = template.Must(template.New("icons").Funcs(funcs).Parse(`// Code generated by {{ .Generator }}. DO NOT EDIT.

// Package {{ .PackageName }} exposes one function per bundled icon.
package {{ .PackageName }}

import (
	"{{ .ModulePath }}/pkg/registry"
	"{{ .ModulePath }}/pkg/render"
)

// Count is the number of icons in this package.
const Count = {{ .Count }}

// Placeholder is rendered for names this package does not know.
const Placeholder = {{ quote .Placeholder }}

var table = registry.New([]registry.Entry{
{{- range .Entries }}
	{RawName: {{ quote .RawName }}, Identifier: {{ quote .Identifier }}, Content: {{ quote .Content }}},
{{- end }}
})

// Registry returns the table backing this package.
func Registry() *registry.Registry { return table }

// Entries returns a copy of every entry in name order.
func Entries() []registry.Entry { return table.Entries() }

// Names returns every raw icon name in order.
func Names() []string { return table.Names() }

// Lookup returns the inner content stored for name.
func Lookup(name string) (string, bool) {
	e, ok := table.Entry(name)
	return e.Content, ok
}

// Render renders the named icon, or the placeholder when name is unknown.
func Render(name string, opts ...render.Option) string {
	if e, ok := table.Entry(name); ok {
		return render.SVG(e.RawName, e.Content, opts...)
	}
	return render.SVG(name, Placeholder, opts...)
}
{{ range .Entries }}
// {{ .Identifier }} renders the {{ quote .RawName }} icon.
func {{ .Identifier }}(opts ...render.Option) string {
	return render.SVG({{ quote .RawName }}, table.At({{ .Index }}).Content, opts...)
}
{{ end }}`))

// Generate renders reg as gofumpt-formatted Go source.
func Generate(reg *registry.Registry, opts Options) ([]byte, error) {
	if opts.PackageName == "" {
		opts.PackageName = "lucide"
	}
	if opts.Generator == "" {
		opts.Generator = "icongen"
	}
	if opts.ModulePath == "" {
		opts.ModulePath = ModulePath
	}

	if err := reg.Validate(); err != nil {
		return nil, apperrors.NewCodegenFailedError(err)
	}

	data := templateData{
		Options:     opts,
		Count:       reg.Count(),
		Placeholder: fallback.Placeholder,
		Entries:     make([]indexedEntry, reg.Len()),
	}
	for i := 0; i < reg.Len(); i++ {
		data.Entries[i] = indexedEntry{Entry: reg.At(i), Index: i}
	}

	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, data); err != nil {
		return nil, apperrors.NewCodegenFailedError(err)
	}

	formatted, err := format.Source(buf.Bytes(), format.Options{})
	if err != nil {
		return nil, apperrors.NewCodegenFailedError(err)
	}
	return formatted, nil
}

// WriteFile generates the package source into dir/file and returns the path.
func WriteFile(reg *registry.Registry, dir, file string, opts Options) (string, error) {
	src, err := Generate(reg, opts)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", apperrors.NewCodegenFailedError(err)
	}
	path := filepath.Join(dir, file)
	if err := os.WriteFile(path, src, 0o644); err != nil {
		return "", apperrors.NewCodegenFailedError(err)
	}
	return path, nil
}
