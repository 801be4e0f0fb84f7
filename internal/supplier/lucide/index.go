package lucide

import (
	"fmt"
	"html"
	"sort"
	"strings"

	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"

	"icon-registry/internal/icons/catalogue"
)

var (
	svgPath   = jp.MustParseString("$.svg")
	pathsPath = jp.MustParseString("$.paths[*]")
)

// ParseIndex decodes an upstream index. The top level must be an object keyed
// by icon name. Each value may be
//
//	{"svg": "<svg ...>...</svg>"}
//	{"paths": ["M3 9l9-7 9 7", ...]}
//	[["path", {"d": "..."}], ["circle", {"cx": "12", ...}]]
//
// Entries of any other shape are skipped and returned by name.
func ParseIndex(data []byte) (catalogue.Catalogue, []string, error) {
	root, err := oj.Parse(data)
	if err != nil {
		return nil, nil, fmt.Errorf("parse index: %w", err)
	}

	obj, ok := root.(map[string]any)
	if !ok {
		return nil, nil, fmt.Errorf("parse index: expected object, got %T", root)
	}

	cat := make(catalogue.Catalogue, len(obj))
	var skipped []string
	for name, value := range obj {
		content, ok := entryContent(value)
		if !ok {
			skipped = append(skipped, name)
			continue
		}
		cat[name] = content
	}
	sort.Strings(skipped)
	return cat, skipped, nil
}

func entryContent(value any) (string, bool) {
	switch v := value.(type) {
	case map[string]any:
		if hits := svgPath.Get(v); len(hits) > 0 {
			if s, ok := hits[0].(string); ok && strings.TrimSpace(s) != "" {
				return s, true
			}
		}
		if _, has := v["paths"]; has {
			return pathsContent(pathsPath.Get(v))
		}
	case []any:
		return nodesContent(v)
	}
	return "", false
}

func pathsContent(paths []any) (string, bool) {
	var b strings.Builder
	for _, p := range paths {
		d, ok := p.(string)
		if !ok {
			return "", false
		}
		fmt.Fprintf(&b, `<path d="%s"></path>`, html.EscapeString(d))
	}
	return b.String(), b.Len() > 0
}

func nodesContent(nodes []any) (string, bool) {
	var b strings.Builder
	for _, n := range nodes {
		node, ok := n.([]any)
		if !ok || len(node) == 0 {
			return "", false
		}
		tag, ok := node[0].(string)
		if !ok || !validTag(tag) {
			return "", false
		}

		b.WriteString("<")
		b.WriteString(tag)
		if len(node) > 1 {
			attrs, ok := node[1].(map[string]any)
			if !ok {
				return "", false
			}
			keys := make([]string, 0, len(attrs))
			for k := range attrs {
				if k == "key" || !validTag(k) {
					continue
				}
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				fmt.Fprintf(&b, ` %s="%s"`, k, html.EscapeString(fmt.Sprint(attrs[k])))
			}
		}
		b.WriteString("></")
		b.WriteString(tag)
		b.WriteString(">")
	}
	return b.String(), b.Len() > 0
}

func validTag(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '-' || r == ':') {
			return false
		}
	}
	return true
}
