package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deptweb/site-api/model"
)

func int64Ptr(v int64) *int64 { return &v }

func countNodes(nodes []*model.NavItem) int {
	total := 0
	for _, node := range nodes {
		total += 1 + countNodes(node.Children)
	}
	return total
}

func TestBuildNavigationTree(t *testing.T) {
	t.Run("nests children under their parent", func(t *testing.T) {
		items := []model.NavItem{
			{ID: 1, Label: "Teaching", SortOrder: 0},
			{ID: 2, Label: "Courses", ParentID: int64Ptr(1), SortOrder: 0},
			{ID: 3, Label: "Labs", ParentID: int64Ptr(1), SortOrder: 1},
		}

		roots := BuildNavigationTree(items)

		require.Len(t, roots, 1)
		require.Len(t, roots[0].Children, 2)
		assert.Equal(t, "Courses", roots[0].Children[0].Label)
		assert.Equal(t, "Labs", roots[0].Children[1].Label)
	})

	t.Run("orphan parent promotes to root", func(t *testing.T) {
		items := []model.NavItem{
			{ID: 1, Label: "Home", SortOrder: 0},
			{ID: 2, Label: "Lost", ParentID: int64Ptr(99), SortOrder: 1},
		}

		roots := BuildNavigationTree(items)

		require.Len(t, roots, 2)
		assert.Equal(t, "Lost", roots[1].Label)
	})

	t.Run("self reference promotes to root instead of looping", func(t *testing.T) {
		items := []model.NavItem{
			{ID: 1, Label: "Twisted", ParentID: int64Ptr(1), SortOrder: 0},
		}

		roots := BuildNavigationTree(items)

		require.Len(t, roots, 1)
		assert.Empty(t, roots[0].Children)
	})

	t.Run("every row appears exactly once", func(t *testing.T) {
		items := []model.NavItem{
			{ID: 1, Label: "A"},
			{ID: 2, Label: "B", ParentID: int64Ptr(1)},
			{ID: 3, Label: "C", ParentID: int64Ptr(2)},
			{ID: 4, Label: "D", ParentID: int64Ptr(42)},
			{ID: 5, Label: "E"},
		}

		roots := BuildNavigationTree(items)

		assert.Equal(t, len(items), countNodes(roots))
	})

	t.Run("children re-sorted by sort order within each parent", func(t *testing.T) {
		// Input is deliberately out of per-parent order: globally sorted
		// fetch order does not guarantee it.
		items := []model.NavItem{
			{ID: 1, Label: "Root", SortOrder: 0},
			{ID: 4, Label: "Third", ParentID: int64Ptr(1), SortOrder: 5},
			{ID: 2, Label: "First", ParentID: int64Ptr(1), SortOrder: 1},
			{ID: 3, Label: "Second", ParentID: int64Ptr(1), SortOrder: 3},
		}

		roots := BuildNavigationTree(items)

		require.Len(t, roots, 1)
		require.Len(t, roots[0].Children, 3)
		assert.Equal(t, "First", roots[0].Children[0].Label)
		assert.Equal(t, "Second", roots[0].Children[1].Label)
		assert.Equal(t, "Third", roots[0].Children[2].Label)
	})

	t.Run("sort order ties break by id", func(t *testing.T) {
		items := []model.NavItem{
			{ID: 9, Label: "Later", SortOrder: 1},
			{ID: 2, Label: "Earlier", SortOrder: 1},
		}

		roots := BuildNavigationTree(items)

		require.Len(t, roots, 2)
		assert.Equal(t, "Earlier", roots[0].Label)
		assert.Equal(t, "Later", roots[1].Label)
	})

	t.Run("empty input yields empty root list", func(t *testing.T) {
		roots := BuildNavigationTree(nil)
		assert.NotNil(t, roots)
		assert.Empty(t, roots)
	})
}
