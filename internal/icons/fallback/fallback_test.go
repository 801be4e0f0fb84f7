package fallback

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet_Lookup(t *testing.T) {
	for _, name := range []string{"home", "user", "heart", "star", "search"} {
		t.Run(name, func(t *testing.T) {
			content, ok := Set{}.Lookup(context.Background(), name)
			assert.True(t, ok)
			assert.NotEmpty(t, content)
			assert.False(t, strings.Contains(content, "<svg"), "bundled content is already a fragment")
		})
	}

	_, ok := Set{}.Lookup(context.Background(), "rocket")
	assert.False(t, ok)
}

func TestBundled_ReturnsCopy(t *testing.T) {
	cat := Bundled()
	assert.Len(t, cat, 5)

	cat["home"] = "mutated"
	delete(cat, "star")

	content, _ := Set{}.Lookup(context.Background(), "home")
	assert.NotEqual(t, "mutated", content)
	assert.Len(t, Bundled(), 5)
}

func TestPlaceholder_NotInSet(t *testing.T) {
	for _, content := range Bundled() {
		assert.NotEqual(t, Placeholder, content)
	}
}
