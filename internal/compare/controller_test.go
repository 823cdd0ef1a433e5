package compare

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestController(t *testing.T) {
	f := newFixture(t, WithLimit(3))
	c := NewController(f.m)

	assert.Equal(t, 3, c.Limit())
	assert.Same(t, f.m, c.Manager())
	assert.False(t, c.ShowCompareButton("A"))

	c.AddToCompare("A", "Course A")
	c.AddToCompare("B", "Course B")
	c.AddToCompare("C", "Course C")
	assert.True(t, c.ShowCompareButton("A"))
	assert.Equal(t, 3, c.TotalCompareItems())

	c.RemoveAt(1)
	assert.Equal(t, []string{"A", "C"}, ids(c.ItemsCompare()))

	c.RemoveFromCompare("A")
	assert.False(t, c.ShowCompareButton("A"))

	require.NoError(t, c.Clear())
	assert.Equal(t, 0, c.TotalCompareItems())
}
