package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVisibilityMarkClearIdempotent(t *testing.T) {
	f := NewVisibilityFilter()

	assert.False(t, f.IsSuppressed("buyer1", "o1"))

	f.Mark("buyer1", "o1")
	f.Mark("buyer1", "o1")
	assert.True(t, f.IsSuppressed("buyer1", "o1"))
	assert.False(t, f.IsSuppressed("buyer2", "o1"), "marks are per buyer")
	assert.False(t, f.IsSuppressed("buyer1", "o2"), "marks are per offer")

	f.Clear("buyer1", "o1")
	assert.False(t, f.IsSuppressed("buyer1", "o1"))

	// Clearing again or clearing something never marked is a no-op.
	f.Clear("buyer1", "o1")
	f.Clear("buyer2", "o9")
	assert.False(t, f.IsSuppressed("buyer1", "o1"))
}
