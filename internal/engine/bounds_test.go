package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inamate/geokernel/internal/document"
	"github.com/inamate/geokernel/internal/geom"
)

func TestPackedSubtreeBoundingRect(t *testing.T) {
	doc := document.PackedDocument{
		Scene: document.PackedScene{Children: []string{"a", "b"}},
		Nodes: map[string]document.PackedNode{
			"a": {Left: 10, Top: 10, Width: 20, Height: 20},
			"b": {Left: 40, Top: 40, Width: 20, Height: 20},
		},
	}
	got, err := PackedSubtreeBoundingRect(doc)
	require.NoError(t, err)
	assert.Equal(t, geom.Rect{X: 10, Y: 10, Width: 50, Height: 50}, got)
}

func TestPackedSubtreeFollowsChildren(t *testing.T) {
	doc := document.PackedDocument{
		Scene: document.PackedScene{Children: []string{"group"}},
		Nodes: map[string]document.PackedNode{
			"group":       {Left: 0, Top: 0, Width: 10, Height: 10, Children: []string{"child"}},
			"child":       {Left: -5, Top: 2, Width: 30, Height: 4, Children: []string{"grandchild"}},
			"grandchild":  {Left: 0, Top: 90, Width: 0, Height: 0},
			"unreachable": {Left: 1000, Top: 1000, Width: 1, Height: 1},
		},
	}
	got, err := PackedSubtreeBoundingRect(doc)
	require.NoError(t, err)
	assert.Equal(t, geom.Rect{X: -5, Y: 0, Width: 30, Height: 90}, got)
}

func TestPackedSubtreeToleratesCyclesAndDanglingIDs(t *testing.T) {
	doc := document.PackedDocument{
		Scene: document.PackedScene{Children: []string{"a", "missing", "a"}},
		Nodes: map[string]document.PackedNode{
			"a": {Left: 1, Top: 1, Width: 1, Height: 1, Children: []string{"b"}},
			"b": {Left: 3, Top: 3, Width: 1, Height: 1, Children: []string{"a"}},
		},
	}
	got, err := PackedSubtreeBoundingRect(doc)
	require.NoError(t, err)
	assert.Equal(t, geom.Rect{X: 1, Y: 1, Width: 3, Height: 3}, got)
}

func TestPackedSubtreeEmpty(t *testing.T) {
	_, err := PackedSubtreeBoundingRect(document.PackedDocument{})
	assert.ErrorIs(t, err, ErrEmptySubtree)
	assert.ErrorIs(t, err, geom.ErrInvalidArgument)

	_, err = PackedSubtreeBoundingRect(document.PackedDocument{
		Scene: document.PackedScene{Children: []string{"nope"}},
	})
	assert.ErrorIs(t, err, ErrEmptySubtree)
}

func TestPackedSubtreeSingleZeroSizeNode(t *testing.T) {
	got, err := PackedSubtreeBoundingRect(document.PackedDocument{
		Scene: document.PackedScene{Children: []string{"dot"}},
		Nodes: map[string]document.PackedNode{"dot": {Left: 7, Top: 8}},
	})
	require.NoError(t, err)
	assert.Equal(t, geom.Rect{X: 7, Y: 8}, got)
}

func TestPackedSubtreeRejectsNegativeSize(t *testing.T) {
	doc := document.PackedDocument{
		Scene: document.PackedScene{Children: []string{"a"}},
		Nodes: map[string]document.PackedNode{
			"a": {Left: 0, Top: 0, Width: 10, Height: 10, Children: []string{"b"}},
			"b": {Left: 5, Top: 5, Width: 10, Height: -3},
		},
	}
	_, err := PackedSubtreeBoundingRect(doc)
	assert.ErrorIs(t, err, geom.ErrInvalidArgument)
	assert.Contains(t, err.Error(), `"b"`)
}
