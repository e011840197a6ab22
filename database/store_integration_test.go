package database

import (
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests hit a real PostgreSQL instance. They require the DB_*
// environment variables and are skipped unless integration mode is on.
func newIntegrationStore(t *testing.T) *PostgreSQLStore {
	t.Helper()

	if os.Getenv("RUN_INTEGRATION_TESTS") != "true" {
		t.Skip("Skipping integration test. Set RUN_INTEGRATION_TESTS=true to run")
	}

	store, err := Start()
	require.NoError(t, err)
	require.NoError(t, store.Init())

	t.Cleanup(func() { store.Close() })
	return store
}

func uniqueSlug(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}

func TestNewsRoundTrip(t *testing.T) {
	store := newIntegrationStore(t)

	slug := uniqueSlug("round-trip")
	summary := "Short summary"

	created, err := store.CreateNews(NewsCreate{
		Title:   "Round trip",
		Slug:    slug,
		Content: "Body",
		Summary: &summary,
		Tags:    []string{"events", "admissions"},
	})
	require.NoError(t, err)
	t.Cleanup(func() { store.DeleteNews(created.ID) })

	assert.NotZero(t, created.ID)
	assert.True(t, created.IsPublished)
	assert.Equal(t, int64(0), created.ViewCount)

	fetched, err := store.GetNewsByID(created.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched)
	assert.Equal(t, created.Title, fetched.Title)
	assert.Equal(t, created.Slug, fetched.Slug)
	require.NotNil(t, fetched.Summary)
	assert.Equal(t, summary, *fetched.Summary)
	assert.Equal(t, []string{"events", "admissions"}, fetched.Tags)
}

func TestNewsDuplicateSlug(t *testing.T) {
	store := newIntegrationStore(t)

	slug := uniqueSlug("dup")
	first, err := store.CreateNews(NewsCreate{Title: "First", Slug: slug, Content: "C"})
	require.NoError(t, err)
	t.Cleanup(func() { store.DeleteNews(first.ID) })

	_, err = store.CreateNews(NewsCreate{Title: "Second", Slug: slug, Content: "C"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicate))
}

func TestNewsEmptyUpdateKeepsTimestamp(t *testing.T) {
	store := newIntegrationStore(t)

	created, err := store.CreateNews(NewsCreate{Title: "T", Slug: uniqueSlug("noop"), Content: "C"})
	require.NoError(t, err)
	t.Cleanup(func() { store.DeleteNews(created.ID) })

	updated, err := store.UpdateNews(created.ID, NewsUpdate{})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, created.UpdatedAt, updated.UpdatedAt)
}

func TestNewsPaginationWindow(t *testing.T) {
	store := newIntegrationStore(t)

	category := uniqueSlug("page-cat")
	for i := 0; i < 10; i++ {
		created, err := store.CreateNews(NewsCreate{
			Title:    fmt.Sprintf("Item %d", i),
			Slug:     uniqueSlug(fmt.Sprintf("page-%d", i)),
			Content:  "C",
			Category: &category,
		})
		require.NoError(t, err)
		id := created.ID
		t.Cleanup(func() { store.DeleteNews(id) })
	}

	page, err := store.ListNews(NewsFilter{Category: category, Page: 1, PageSize: 6})
	require.NoError(t, err)
	assert.Len(t, page.Items, 6)
	assert.Equal(t, int64(10), page.Total)
	assert.Equal(t, 2, page.TotalPages)

	// Window past the last page: no items, total survives
	page, err = store.ListNews(NewsFilter{Category: category, Page: 3, PageSize: 6})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, int64(10), page.Total)
}

func TestNewsDeleteAbsent(t *testing.T) {
	store := newIntegrationStore(t)

	deleted, err := store.DeleteNews(999999999)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestNewsViewCountIncrement(t *testing.T) {
	store := newIntegrationStore(t)

	created, err := store.CreateNews(NewsCreate{Title: "T", Slug: uniqueSlug("views"), Content: "C"})
	require.NoError(t, err)
	t.Cleanup(func() { store.DeleteNews(created.ID) })

	require.NoError(t, store.IncrementNewsViewCount(created.ID))
	require.NoError(t, store.IncrementNewsViewCount(created.ID))

	fetched, err := store.GetNewsByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), fetched.ViewCount)
}

func TestPageContentUpsert(t *testing.T) {
	store := newIntegrationStore(t)

	slug := uniqueSlug("page")
	t.Cleanup(func() { store.DeletePageContent(slug) })

	first, err := store.UpsertPageContent(slug, PageContentWrite{Title: "First", Content: "Body"})
	require.NoError(t, err)
	assert.Equal(t, "First", first.Title)

	second, err := store.UpsertPageContent(slug, PageContentWrite{Title: "Second", Content: "Body 2"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Second", second.Title)
}

func TestFacultyCategoryFilter(t *testing.T) {
	store := newIntegrationStore(t)

	category := uniqueSlug("prof")
	created, err := store.CreateFaculty(FacultyCreate{Name: "Ada", Title: "Professor", Category: category})
	require.NoError(t, err)
	t.Cleanup(func() { store.DeleteFaculty(created.ID) })

	members, err := store.ListFaculty(FacultyFilter{Category: category})
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "Ada", members[0].Name)
}
