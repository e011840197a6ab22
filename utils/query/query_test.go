package queryHelper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildUpdate(t *testing.T) {
	t.Run("single field", func(t *testing.T) {
		diff := NewFieldDiff().Set("title", "Hello")

		query, values := BuildUpdate("news", diff, "id", int64(7), "id, title")

		assert.Equal(t, "UPDATE news SET title=$1 WHERE id=$2 RETURNING id, title", query)
		assert.Equal(t, []interface{}{"Hello", int64(7)}, values)
	})

	t.Run("placeholders numbered in call order", func(t *testing.T) {
		diff := NewFieldDiff().
			Set("title", "Hello").
			Set("slug", "hello").
			Set("is_published", false)

		query, values := BuildUpdate("news", diff, "id", int64(3), "id")

		assert.Equal(t, "UPDATE news SET title=$1, slug=$2, is_published=$3 WHERE id=$4 RETURNING id", query)
		assert.Equal(t, []interface{}{"Hello", "hello", false, int64(3)}, values)
	})

	t.Run("raw expression binds no value", func(t *testing.T) {
		diff := NewFieldDiff().
			Set("title", "Hello").
			SetExpr("updated_at", "now()")

		query, values := BuildUpdate("news", diff, "id", int64(3), "id")

		assert.Equal(t, "UPDATE news SET title=$1, updated_at=now() WHERE id=$2 RETURNING id", query)
		assert.Equal(t, []interface{}{"Hello", int64(3)}, values)
	})

	t.Run("raw expression before bound fields keeps numbering sequential", func(t *testing.T) {
		diff := NewFieldDiff().
			SetExpr("updated_at", "now()").
			Set("title", "Hello")

		query, values := BuildUpdate("news", diff, "id", int64(3), "id")

		assert.Equal(t, "UPDATE news SET updated_at=now(), title=$1 WHERE id=$2 RETURNING id", query)
		assert.Equal(t, []interface{}{"Hello", int64(3)}, values)
	})
}

func TestFieldDiffEmpty(t *testing.T) {
	diff := NewFieldDiff()
	assert.True(t, diff.Empty())
	assert.Equal(t, 0, diff.Len())

	diff.Set("title", "x")
	assert.False(t, diff.Empty())
	assert.Equal(t, 1, diff.Len())
}
