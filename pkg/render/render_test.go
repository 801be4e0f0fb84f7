package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const testInner = `<circle cx="12" cy="12" r="4"></circle>`

func TestSVG_Defaults(t *testing.T) {
	got := SVG("arrow-left", testInner)

	expected := `<svg class="lucide-icon" xmlns="http://www.w3.org/2000/svg" width="24" height="24" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2" stroke-linecap="round" stroke-linejoin="round" data-lucide="arrow-left">` +
		testInner + `</svg>`
	assert.Equal(t, expected, got)
}

func TestSVG_Options(t *testing.T) {
	got := SVG("Home", testInner,
		WithClass("text-blue-500"),
		WithSize(32),
		WithStroke("#ff0000"),
		WithStrokeWidth(1.5),
		WithFill("red"),
		WithStyle("opacity: 0.5"),
	)

	assert.Contains(t, got, `class="lucide-icon text-blue-500"`)
	assert.Contains(t, got, `width="32" height="32"`)
	assert.Contains(t, got, `stroke="#ff0000"`)
	assert.Contains(t, got, `stroke-width="1.5"`)
	assert.Contains(t, got, `fill="red"`)
	assert.Contains(t, got, `style="opacity: 0.5"`)
	assert.Contains(t, got, `data-lucide="home"`)
}

func TestSVG_IgnoresInvalidNumbers(t *testing.T) {
	got := SVG("x", "", WithSize(-4), WithStrokeWidth(0))
	assert.Contains(t, got, `width="24"`)
	assert.Contains(t, got, `stroke-width="2"`)
}

func TestSVG_EscapesAttributes(t *testing.T) {
	got := SVG("x", "", WithClass(`a" onload="alert(1)`), WithStroke("<red>"))

	assert.NotContains(t, got, `onload="alert`)
	assert.Contains(t, got, `&#34; onload=&#34;alert(1)`)
	assert.Contains(t, got, `stroke="&lt;red&gt;"`)
}

func TestSVG_WithWrapper(t *testing.T) {
	tests := []struct {
		name     string
		wrapper  string
		expected string
	}{
		{"div", WrapperDiv, "div"},
		{"span", WrapperSpan, "span"},
		{"button", WrapperButton, "button"},
		{"unknown falls back to div", "section", "div"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SVG("home", testInner, WithWrapper(tt.wrapper), WithClass("big"), WithSize(48), WithStyle("color: red"))

			assert.True(t, strings.HasPrefix(got, "<"+tt.expected))
			assert.True(t, strings.HasSuffix(got, "</svg></"+tt.expected+">"))
			assert.Contains(t, got, `class="lucide-wrapper big"`)
			assert.Contains(t, got, `style="width: 48px; height: 48px; color: red"`)
			assert.Contains(t, got, `<svg class="lucide-icon" `, "class and style move to the wrapper")
		})
	}
}

func TestWrap(t *testing.T) {
	got := Wrap("<svg></svg>")
	assert.Equal(t, `<div class="lucide-wrapper" style="width: 24px; height: 24px;"><svg></svg></div>`, got)

	got = Wrap("<svg></svg>", WithWrapper(WrapperButton))
	assert.Equal(t, `<button type="button" class="lucide-wrapper" style="width: 24px; height: 24px;"><svg></svg></button>`, got)
}

func TestKebab(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"home", "home"},
		{"arrow-left", "arrow-left"},
		{"ArrowLeft", "arrow-left"},
		{"arrow left", "arrow-left"},
		{"snake_case", "snake-case"},
		{"HTMLParser", "html-parser"},
		{"Icon2dRotate", "icon2d-rotate"},
		{"--edge--", "edge"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.expected, Kebab(tt.in))
		})
	}
}
