// Package storetest holds the conformance checks every store.Medium passes.
package storetest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/compare/internal/store"
)

// RunMedium exercises m through the Medium contract. newMedium must return
// an empty medium on every call.
func RunMedium(t *testing.T, newMedium func(t *testing.T) store.Medium) {
	t.Run("missing key", func(t *testing.T) {
		m := newMedium(t)
		v, ok, err := m.GetItem("compare")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, v)
	})

	t.Run("set then get", func(t *testing.T) {
		m := newMedium(t)
		require.NoError(t, m.SetItem("compare", `{"items":[]}`))
		v, ok, err := m.GetItem("compare")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, `{"items":[]}`, v)
	})

	t.Run("overwrite", func(t *testing.T) {
		m := newMedium(t)
		require.NoError(t, m.SetItem("compare", "one"))
		require.NoError(t, m.SetItem("compare", "two"))
		v, _, err := m.GetItem("compare")
		require.NoError(t, err)
		assert.Equal(t, "two", v)
	})

	t.Run("keys are independent", func(t *testing.T) {
		m := newMedium(t)
		require.NoError(t, m.SetItem("a", "1"))
		require.NoError(t, m.SetItem("b", "2"))
		require.NoError(t, m.RemoveItem("a"))
		_, okA, err := m.GetItem("a")
		require.NoError(t, err)
		v, okB, err := m.GetItem("b")
		require.NoError(t, err)
		assert.False(t, okA)
		assert.True(t, okB)
		assert.Equal(t, "2", v)
	})

	t.Run("remove missing", func(t *testing.T) {
		m := newMedium(t)
		assert.NoError(t, m.RemoveItem("compare"))
	})

	t.Run("adapter round trip", func(t *testing.T) {
		a := store.New(newMedium(t))
		type rec struct {
			Items []string `json:"items"`
		}
		raw, err := a.Set("compare", rec{Items: []string{"A", "D"}})
		require.NoError(t, err)
		assert.JSONEq(t, `{"items":["A","D"]}`, raw)

		var got rec
		ok, err := a.Get("compare", &got)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, []string{"A", "D"}, got.Items)

		raw, err = a.Set("compare", nil)
		require.NoError(t, err)
		assert.Empty(t, raw)
		ok, err = a.Get("compare", &got)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
