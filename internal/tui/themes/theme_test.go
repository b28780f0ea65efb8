package themes

import (
	"testing"

	"github.com/Veraticus/spent/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestLookup(t *testing.T) {
	for _, name := range []string{"default", "ocean", "mono"} {
		_, ok := Lookup(name)
		assert.True(t, ok, name)
	}

	_, ok := Lookup("neon")
	assert.False(t, ok)
	assert.Equal(t, []string{"default", "mono", "ocean"}, Names())
}

func TestCategoryIcon(t *testing.T) {
	seen := map[string]bool{}
	for _, c := range model.Categories() {
		icon := CategoryIcon(c)
		assert.NotEmpty(t, icon)
		seen[icon] = true
	}
	assert.Len(t, seen, len(model.Categories()))
	assert.Equal(t, CategoryIcon(model.CategoryOther), CategoryIcon("Gifts"))
}
