package catalogue

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCatalogue_Names_Sorted(t *testing.T) {
	cat := Catalogue{
		"search":     "s",
		"arrow-left": "a",
		"Zap":        "z",
		"home":       "h",
	}

	assert.Equal(t, []string{"Zap", "arrow-left", "home", "search"}, cat.Names())
}

func TestCatalogue_Lookup(t *testing.T) {
	cat := Catalogue{"home": "<path/>"}

	content, ok := cat.Lookup(context.Background(), "home")
	assert.True(t, ok)
	assert.Equal(t, "<path/>", content)

	_, ok = cat.Lookup(context.Background(), "Home")
	assert.False(t, ok, "lookup is exact-match")
}

func TestCatalogue_Records_RoundTrip(t *testing.T) {
	cat := Catalogue{"b": "2", "a": "1"}

	records := cat.Records()
	assert.Equal(t, []Record{{RawName: "a", Content: "1"}, {RawName: "b", Content: "2"}}, records)
	assert.Equal(t, cat, FromRecords(records))
}

func TestChain_Lookup(t *testing.T) {
	calls := 0
	counting := SourceFunc(func(_ context.Context, name string) (string, bool) {
		calls++
		return "", false
	})

	tests := []struct {
		name     string
		chain    Chain
		lookup   string
		expected string
		found    bool
	}{
		{
			name:     "first source wins",
			chain:    Chain{Catalogue{"x": "first"}, Catalogue{"x": "second"}},
			lookup:   "x",
			expected: "first",
			found:    true,
		},
		{
			name:     "falls through misses",
			chain:    Chain{counting, nil, Catalogue{"x": "second"}},
			lookup:   "x",
			expected: "second",
			found:    true,
		},
		{
			name:   "empty chain",
			chain:  Chain{},
			lookup: "x",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content, ok := tt.chain.Lookup(context.Background(), tt.lookup)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.expected, content)
		})
	}
	assert.Equal(t, 1, calls)
}

func TestChain_StopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	reached := false
	chain := Chain{
		Catalogue{},
		SourceFunc(func(context.Context, string) (string, bool) {
			reached = true
			return "late", true
		}),
	}

	_, ok := chain.Lookup(ctx, "x")
	assert.False(t, ok)
	assert.False(t, reached)
}
