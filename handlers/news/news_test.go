package news

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

// fakeStore implements the news operations in memory. Unused Storage
// methods panic through the embedded nil interface.
type fakeStore struct {
	database.Storage

	nextID int64
	items  map[int64]*model.NewsItem
}

func newFakeStore() *fakeStore {
	return &fakeStore{nextID: 1, items: map[int64]*model.NewsItem{}}
}

func (f *fakeStore) slugTaken(slug string, exceptID int64) bool {
	for _, item := range f.items {
		if item.Slug == slug && item.ID != exceptID {
			return true
		}
	}
	return false
}

func (f *fakeStore) ListNews(filter database.NewsFilter) (*model.NewsPage, error) {
	items := []model.NewsItem{}
	for _, item := range f.items {
		if !filter.IncludeUnpublished && !item.IsPublished {
			continue
		}
		items = append(items, *item)
	}
	total := int64(len(items))
	totalPages := (len(items) + filter.PageSize - 1) / filter.PageSize
	return &model.NewsPage{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: totalPages,
	}, nil
}

func (f *fakeStore) GetNewsByID(id int64) (*model.NewsItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, nil
	}
	copied := *item
	return &copied, nil
}

func (f *fakeStore) CreateNews(in database.NewsCreate) (*model.NewsItem, error) {
	if f.slugTaken(in.Slug, 0) {
		return nil, &database.DatabaseError{Message: "news insert failed", Err: database.ErrDuplicate}
	}

	isPublished := true
	if in.IsPublished != nil {
		isPublished = *in.IsPublished
	}
	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}

	item := &model.NewsItem{
		ID:          f.nextID,
		Title:       in.Title,
		Slug:        in.Slug,
		Content:     in.Content,
		Summary:     in.Summary,
		Author:      in.Author,
		Category:    in.Category,
		PublishedAt: time.Now(),
		UpdatedAt:   time.Now(),
		IsPublished: isPublished,
		Tags:        tags,
	}
	f.nextID++
	f.items[item.ID] = item
	copied := *item
	return &copied, nil
}

func (f *fakeStore) UpdateNews(id int64, diff database.NewsUpdate) (*model.NewsItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, nil
	}
	if diff.Slug != nil {
		if f.slugTaken(*diff.Slug, id) {
			return nil, &database.DatabaseError{Message: "news update failed", Err: database.ErrDuplicate}
		}
		item.Slug = *diff.Slug
	}
	if diff.Title != nil {
		item.Title = *diff.Title
	}
	if diff.Content != nil {
		item.Content = *diff.Content
	}
	copied := *item
	return &copied, nil
}

func (f *fakeStore) DeleteNews(id int64) (bool, error) {
	if _, ok := f.items[id]; !ok {
		return false, nil
	}
	delete(f.items, id)
	return true, nil
}

func (f *fakeStore) IncrementNewsViewCount(id int64) error {
	if item, ok := f.items[id]; ok {
		item.ViewCount++
	}
	return nil
}

func newTestApp(store database.Storage) *fiber.App {
	app := fiber.New()
	h := NewNewsHandler(store)
	app.Get("/api/v1/news", h.ListNews)
	app.Get("/api/v1/news/:id", h.GetNews)
	app.Post("/api/v1/news/:id/view", h.IncrementViewCount)
	app.Post("/api/v1/news", h.CreateNews)
	app.Put("/api/v1/news/:id", h.UpdateNews)
	app.Delete("/api/v1/news/:id", h.DeleteNews)
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

func TestCreateNews(t *testing.T) {
	t.Run("empty body reports missing title first", func(t *testing.T) {
		app := newTestApp(newFakeStore())

		resp, body := doJSON(t, app, "POST", "/api/v1/news", map[string]interface{}{})

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, body["error"], "Title is required")
	})

	t.Run("malformed slug rejected", func(t *testing.T) {
		app := newTestApp(newFakeStore())

		resp, body := doJSON(t, app, "POST", "/api/v1/news", map[string]interface{}{
			"title":   "T",
			"slug":    "Bad Slug",
			"content": "C",
		})

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, body["error"], "Slug")
	})

	t.Run("valid payload returns created record", func(t *testing.T) {
		app := newTestApp(newFakeStore())

		resp, body := doJSON(t, app, "POST", "/api/v1/news", map[string]interface{}{
			"title":   "Open day",
			"slug":    "open-day",
			"content": "Visit us.",
		})

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.NotNil(t, body["id"])
		assert.Equal(t, "Open day", body["title"])
		assert.Equal(t, true, body["isPublished"])
		assert.Equal(t, float64(0), body["viewCount"])
	})

	t.Run("duplicate slug maps to conflict", func(t *testing.T) {
		app := newTestApp(newFakeStore())
		payload := map[string]interface{}{"title": "T", "slug": "taken", "content": "C"}

		resp, _ := doJSON(t, app, "POST", "/api/v1/news", payload)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		resp, body := doJSON(t, app, "POST", "/api/v1/news", payload)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		assert.Contains(t, body["error"], "already exists")
	})

	t.Run("server-owned field rejected", func(t *testing.T) {
		app := newTestApp(newFakeStore())

		resp, body := doJSON(t, app, "POST", "/api/v1/news", map[string]interface{}{
			"title":     "T",
			"slug":      "t",
			"content":   "C",
			"viewCount": 50,
		})

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, body["error"], "viewCount")
	})
}

func TestGetNews(t *testing.T) {
	t.Run("missing id yields 404", func(t *testing.T) {
		app := newTestApp(newFakeStore())

		resp, body := doJSON(t, app, "GET", "/api/v1/news/999", nil)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Contains(t, body["error"], "not found")
	})

	t.Run("non-numeric id yields 400", func(t *testing.T) {
		app := newTestApp(newFakeStore())

		resp, body := doJSON(t, app, "GET", "/api/v1/news/abc", nil)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, body["error"], "Invalid news ID")
	})
}

func TestListNews(t *testing.T) {
	t.Run("page zero rejected", func(t *testing.T) {
		app := newTestApp(newFakeStore())

		resp, _ := doJSON(t, app, "GET", "/api/v1/news?page=0", nil)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("oversized page size rejected", func(t *testing.T) {
		app := newTestApp(newFakeStore())

		resp, _ := doJSON(t, app, "GET", "/api/v1/news?pageSize=101", nil)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("returns page shape", func(t *testing.T) {
		store := newFakeStore()
		app := newTestApp(store)

		for _, slug := range []string{"a", "b", "c"} {
			_, err := store.CreateNews(database.NewsCreate{Title: "T", Slug: slug, Content: "C"})
			require.NoError(t, err)
		}

		resp, body := doJSON(t, app, "GET", "/api/v1/news", nil)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, float64(3), body["total"])
		assert.Equal(t, float64(1), body["page"])
		assert.Len(t, body["items"], 3)
	})
}

func TestListNewsDraftVisibility(t *testing.T) {
	store := newFakeStore()
	app := fiber.New()
	h := NewNewsHandler(store)

	// Mirrors the route wiring: the public list carries no auth, the
	// admin list sits behind a gate that fills in the caller's role.
	asAdmin := func(c *fiber.Ctx) error {
		c.Locals("user_role", "admin")
		return c.Next()
	}
	app.Get("/api/v1/news", h.ListNews)
	app.Get("/api/v1/admin/news", asAdmin, h.ListNews)

	published := true
	draft := false
	_, err := store.CreateNews(database.NewsCreate{Title: "Live", Slug: "live", Content: "C", IsPublished: &published})
	require.NoError(t, err)
	_, err = store.CreateNews(database.NewsCreate{Title: "Draft", Slug: "draft", Content: "C", IsPublished: &draft})
	require.NoError(t, err)

	t.Run("public list never includes drafts", func(t *testing.T) {
		resp, body := doJSON(t, app, "GET", "/api/v1/news?includeUnpublished=true", nil)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, float64(1), body["total"])
		assert.Len(t, body["items"], 1)
	})

	t.Run("admin list includes drafts on request", func(t *testing.T) {
		resp, body := doJSON(t, app, "GET", "/api/v1/admin/news?includeUnpublished=true", nil)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, float64(2), body["total"])
		assert.Len(t, body["items"], 2)
	})

	t.Run("admin list defaults to published only", func(t *testing.T) {
		resp, body := doJSON(t, app, "GET", "/api/v1/admin/news", nil)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, float64(1), body["total"])
	})
}

func TestUpdateNews(t *testing.T) {
	t.Run("empty update returns current record", func(t *testing.T) {
		store := newFakeStore()
		app := newTestApp(store)

		created, err := store.CreateNews(database.NewsCreate{Title: "T", Slug: "t", Content: "C"})
		require.NoError(t, err)

		resp, body := doJSON(t, app, "PUT", "/api/v1/news/1", map[string]interface{}{})

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, created.Title, body["title"])
	})

	t.Run("forbidden field rejected", func(t *testing.T) {
		store := newFakeStore()
		app := newTestApp(store)

		_, err := store.CreateNews(database.NewsCreate{Title: "T", Slug: "t", Content: "C"})
		require.NoError(t, err)

		resp, body := doJSON(t, app, "PUT", "/api/v1/news/1", map[string]interface{}{
			"publishedAt": "2024-01-01T00:00:00Z",
		})

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, body["error"], "publishedAt")
	})

	t.Run("missing id yields 404", func(t *testing.T) {
		app := newTestApp(newFakeStore())

		resp, _ := doJSON(t, app, "PUT", "/api/v1/news/12", map[string]interface{}{"title": "New"})

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestDeleteNews(t *testing.T) {
	t.Run("removes existing record", func(t *testing.T) {
		store := newFakeStore()
		app := newTestApp(store)

		_, err := store.CreateNews(database.NewsCreate{Title: "T", Slug: "t", Content: "C"})
		require.NoError(t, err)

		resp, body := doJSON(t, app, "DELETE", "/api/v1/news/1", nil)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, body["message"], "deleted")
	})

	t.Run("missing id yields 404", func(t *testing.T) {
		app := newTestApp(newFakeStore())

		resp, _ := doJSON(t, app, "DELETE", "/api/v1/news/999", nil)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestIncrementViewCount(t *testing.T) {
	store := newFakeStore()
	app := newTestApp(store)

	created, err := store.CreateNews(database.NewsCreate{Title: "T", Slug: "t", Content: "C"})
	require.NoError(t, err)

	resp, _ := doJSON(t, app, "POST", "/api/v1/news/1/view", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	item, err := store.GetNewsByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), item.ViewCount)
}
