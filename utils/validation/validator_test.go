package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSlug(t *testing.T) {
	t.Run("accepts valid slugs", func(t *testing.T) {
		for _, slug := range []string{"valid-slug_1", "a", "2024-news", "about_us"} {
			ok, msg := ValidateSlug(slug)
			assert.True(t, ok, "expected %q to be valid", slug)
			assert.Empty(t, msg)
		}
	})

	t.Run("rejects invalid slugs", func(t *testing.T) {
		for _, slug := range []string{"Invalid Slug", "UPPERCASE", "special@chars!", "", "   "} {
			ok, msg := ValidateSlug(slug)
			assert.False(t, ok, "expected %q to be rejected", slug)
			assert.Contains(t, msg, "Slug")
		}
	})
}

func TestRequireString(t *testing.T) {
	ok, msg := RequireString("", "Title")
	assert.False(t, ok)
	assert.Contains(t, msg, "Title is required")

	ok, msg = RequireString("   ", "Title")
	assert.False(t, ok)
	assert.Contains(t, msg, "Title is required")

	ok, msg = RequireString("Hello", "Title")
	assert.True(t, ok)
	assert.Empty(t, msg)
}

func TestForbiddenField(t *testing.T) {
	t.Run("reports first forbidden field present", func(t *testing.T) {
		body := []byte(`{"title": "T", "id": 4, "viewCount": 9}`)
		field, found := ForbiddenField(body, "id", "createdAt", "updatedAt", "viewCount")
		assert.True(t, found)
		assert.Equal(t, "id", field)
	})

	t.Run("null value still counts as present", func(t *testing.T) {
		body := []byte(`{"updatedAt": null}`)
		field, found := ForbiddenField(body, "id", "updatedAt")
		assert.True(t, found)
		assert.Equal(t, "updatedAt", field)
	})

	t.Run("clean body passes", func(t *testing.T) {
		body := []byte(`{"title": "T", "slug": "t"}`)
		_, found := ForbiddenField(body, "id", "createdAt", "updatedAt")
		assert.False(t, found)
	})

	t.Run("non-object body passes through", func(t *testing.T) {
		_, found := ForbiddenField([]byte(`not json`), "id")
		assert.False(t, found)
	})
}

func TestValidateEmail(t *testing.T) {
	assert.True(t, ValidateEmail("user@example.com"))
	assert.False(t, ValidateEmail("not-an-email"))
	assert.False(t, ValidateEmail(""))
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "hello", SanitizeString("  hello\x00  "))
}
