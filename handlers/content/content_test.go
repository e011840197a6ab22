package content

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deptweb/site-api/database"
	"github.com/deptweb/site-api/model"
)

type fakeStore struct {
	database.Storage

	nextID int64
	pages  map[string]*model.PageContent
}

func newFakeStore() *fakeStore {
	return &fakeStore{nextID: 1, pages: map[string]*model.PageContent{}}
}

func (f *fakeStore) ListPageContent() ([]model.PageContent, error) {
	pages := []model.PageContent{}
	for _, page := range f.pages {
		pages = append(pages, *page)
	}
	return pages, nil
}

func (f *fakeStore) GetPageContent(slug string) (*model.PageContent, error) {
	page, ok := f.pages[slug]
	if !ok {
		return nil, nil
	}
	copied := *page
	return &copied, nil
}

func (f *fakeStore) UpsertPageContent(slug string, in database.PageContentWrite) (*model.PageContent, error) {
	page, ok := f.pages[slug]
	if !ok {
		page = &model.PageContent{ID: f.nextID, Slug: slug}
		f.nextID++
		f.pages[slug] = page
	}
	page.Title = in.Title
	page.Content = in.Content
	page.MetaDescription = in.MetaDescription
	page.UpdatedBy = in.UpdatedBy
	page.UpdatedAt = time.Now()
	copied := *page
	return &copied, nil
}

func (f *fakeStore) DeletePageContent(slug string) (bool, error) {
	if _, ok := f.pages[slug]; !ok {
		return false, nil
	}
	delete(f.pages, slug)
	return true, nil
}

func newTestApp(store database.Storage) *fiber.App {
	app := fiber.New()
	h := NewContentHandler(store)
	app.Get("/api/v1/content", h.ListContent)
	app.Get("/api/v1/content/:slug", h.GetContent)
	app.Put("/api/v1/content/:slug", h.UpsertContent)
	app.Delete("/api/v1/content/:slug", h.DeleteContent)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]interface{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

func TestUpsertContent(t *testing.T) {
	t.Run("creates missing page", func(t *testing.T) {
		app := newTestApp(newFakeStore())

		resp, body := doJSON(t, app, "PUT", "/api/v1/content/about", map[string]interface{}{
			"title":   "About",
			"content": "The department.",
		})

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "about", body["slug"])
		assert.Equal(t, "About", body["title"])
	})

	t.Run("replaces existing page under the same slug", func(t *testing.T) {
		store := newFakeStore()
		app := newTestApp(store)

		_, err := store.UpsertPageContent("about", database.PageContentWrite{Title: "Old", Content: "Old"})
		require.NoError(t, err)

		resp, body := doJSON(t, app, "PUT", "/api/v1/content/about", map[string]interface{}{
			"title":   "New",
			"content": "New body",
		})

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "New", body["title"])
		require.Len(t, store.pages, 1)
	})

	t.Run("rejects malformed slug", func(t *testing.T) {
		app := newTestApp(newFakeStore())

		resp, body := doJSON(t, app, "PUT", "/api/v1/content/UPPER", map[string]interface{}{
			"title":   "T",
			"content": "C",
		})

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, body["error"], "Slug")
	})

	t.Run("requires title", func(t *testing.T) {
		app := newTestApp(newFakeStore())

		resp, body := doJSON(t, app, "PUT", "/api/v1/content/about", map[string]interface{}{
			"content": "C",
		})

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, body["error"], "Title is required")
	})

	t.Run("slug in body is rejected", func(t *testing.T) {
		app := newTestApp(newFakeStore())

		resp, body := doJSON(t, app, "PUT", "/api/v1/content/about", map[string]interface{}{
			"title":   "T",
			"content": "C",
			"slug":    "other",
		})

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, body["error"], "slug")
	})
}

func TestGetContent(t *testing.T) {
	t.Run("missing slug yields 404", func(t *testing.T) {
		app := newTestApp(newFakeStore())

		resp, body := doJSON(t, app, "GET", "/api/v1/content/absent", nil)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Contains(t, body["error"], "not found")
	})

	t.Run("returns stored page", func(t *testing.T) {
		store := newFakeStore()
		app := newTestApp(store)

		_, err := store.UpsertPageContent("about", database.PageContentWrite{Title: "About", Content: "C"})
		require.NoError(t, err)

		resp, body := doJSON(t, app, "GET", "/api/v1/content/about", nil)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "About", body["title"])
	})
}

func TestDeleteContent(t *testing.T) {
	store := newFakeStore()
	app := newTestApp(store)

	_, err := store.UpsertPageContent("about", database.PageContentWrite{Title: "T", Content: "C"})
	require.NoError(t, err)

	resp, _ := doJSON(t, app, "DELETE", "/api/v1/content/about", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, "DELETE", "/api/v1/content/about", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
