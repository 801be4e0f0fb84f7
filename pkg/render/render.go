// Package render wraps inner icon fragments in the Lucide <svg> element and
// optional wrapper markup.
package render

import (
	"fmt"
	"html"
	"strings"
	"unicode"
)

// Wrapper elements accepted by WithWrapper.
const (
	WrapperNone   = ""
	WrapperDiv    = "div"
	WrapperSpan   = "span"
	WrapperButton = "button"
)

const defaultSize = 24

// Options mirrors the attributes a caller may set on a rendered icon.
type Options struct {
	Class       string
	Style       string
	Size        int
	StrokeWidth float64
	Stroke      string
	Fill        string
	Wrapper     string
}

type Option func(*Options)

func WithClass(class string) Option {
	return func(o *Options) { o.Class = class }
}

func WithStyle(style string) Option {
	return func(o *Options) { o.Style = style }
}

// WithSize sets width and height in pixels. Non-positive values are ignored.
func WithSize(size int) Option {
	return func(o *Options) {
		if size > 0 {
			o.Size = size
		}
	}
}

func WithStrokeWidth(width float64) Option {
	return func(o *Options) {
		if width > 0 {
			o.StrokeWidth = width
		}
	}
}

func WithStroke(color string) Option {
	return func(o *Options) { o.Stroke = color }
}

func WithFill(color string) Option {
	return func(o *Options) { o.Fill = color }
}

// WithWrapper wraps the svg in a div, span or button. Unknown values fall
// back to div.
func WithWrapper(element string) Option {
	return func(o *Options) {
		switch element {
		case WrapperNone, WrapperDiv, WrapperSpan, WrapperButton:
			o.Wrapper = element
		default:
			o.Wrapper = WrapperDiv
		}
	}
}

// Defaults returns the Lucide attribute defaults.
func Defaults() Options {
	return Options{
		Size:        defaultSize,
		StrokeWidth: 2,
		Stroke:      "currentColor",
		Fill:        "none",
	}
}

func apply(opts []Option) Options {
	o := Defaults()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// SVG renders inner as a complete icon. The wrapper, if any, is applied.
func SVG(name, inner string, opts ...Option) string {
	o := apply(opts)

	class := "lucide-icon"
	if o.Class != "" && o.Wrapper == WrapperNone {
		class += " " + o.Class
	}

	var b strings.Builder
	b.Grow(len(inner) + 320)
	b.WriteString(`<svg`)
	attr(&b, "class", class)
	attr(&b, "xmlns", "http://www.w3.org/2000/svg")
	attr(&b, "width", fmt.Sprint(o.Size))
	attr(&b, "height", fmt.Sprint(o.Size))
	attr(&b, "viewBox", "0 0 24 24")
	attr(&b, "fill", o.Fill)
	attr(&b, "stroke", o.Stroke)
	attr(&b, "stroke-width", formatFloat(o.StrokeWidth))
	attr(&b, "stroke-linecap", "round")
	attr(&b, "stroke-linejoin", "round")
	if o.Style != "" && o.Wrapper == WrapperNone {
		attr(&b, "style", o.Style)
	}
	attr(&b, "data-lucide", Kebab(name))
	b.WriteString(">")
	b.WriteString(inner)
	b.WriteString("</svg>")

	if o.Wrapper == WrapperNone {
		return b.String()
	}
	return wrap(b.String(), o)
}

// Wrap places an already rendered svg inside the wrapper element. A div is
// used when no wrapper was chosen.
func Wrap(svg string, opts ...Option) string {
	o := apply(opts)
	if o.Wrapper == WrapperNone {
		o.Wrapper = WrapperDiv
	}
	return wrap(svg, o)
}

func wrap(svg string, o Options) string {
	class := strings.TrimSpace("lucide-wrapper " + o.Class)
	style := fmt.Sprintf("width: %dpx; height: %dpx;", o.Size, o.Size)
	if o.Style != "" {
		style += " " + o.Style
	}

	var b strings.Builder
	b.WriteString("<")
	b.WriteString(o.Wrapper)
	if o.Wrapper == WrapperButton {
		attr(&b, "type", "button")
	}
	attr(&b, "class", class)
	attr(&b, "style", style)
	b.WriteString(">")
	b.WriteString(svg)
	b.WriteString("</")
	b.WriteString(o.Wrapper)
	b.WriteString(">")
	return b.String()
}

func attr(b *strings.Builder, key, value string) {
	b.WriteString(" ")
	b.WriteString(key)
	b.WriteString(`="`)
	b.WriteString(html.EscapeString(value))
	b.WriteString(`"`)
}

func formatFloat(f float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.3f", f), "0"), ".")
}

// Kebab lower-cases name and joins its words with hyphens. Camel-case
// boundaries, spaces and underscores all become a single hyphen.
func Kebab(name string) string {
	var b strings.Builder
	b.Grow(len(name) + 4)
	runes := []rune(name)
	pendingHyphen := false
	for i, r := range runes {
		switch {
		case r == '-' || r == '_' || unicode.IsSpace(r):
			pendingHyphen = b.Len() > 0
			continue
		case unicode.IsUpper(r):
			if i > 0 && b.Len() > 0 {
				prev := runes[i-1]
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
					pendingHyphen = true
				}
			}
			r = unicode.ToLower(r)
		}
		if pendingHyphen {
			b.WriteByte('-')
			pendingHyphen = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
