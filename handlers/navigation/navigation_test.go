package navigation

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deptweb/site-api/database"
	"github.com/deptweb/site-api/model"
)

type fakeStore struct {
	database.Storage

	items   []model.NavItem
	listErr error
}

func (f *fakeStore) ListNavigation() ([]model.NavItem, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.items, nil
}

func int64Ptr(v int64) *int64 { return &v }

func getTree(t *testing.T, store database.Storage, fallback []*model.NavItem) (*http.Response, []map[string]interface{}) {
	t.Helper()

	app := fiber.New()
	h := NewNavigationHandler(store, nil, fallback)
	app.Get("/api/v1/navigation", h.GetTree)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/navigation", nil), -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded []map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	return resp, decoded
}

func TestGetTree(t *testing.T) {
	t.Run("assembles hierarchy from flat rows", func(t *testing.T) {
		store := &fakeStore{items: []model.NavItem{
			{ID: 1, Label: "Teaching", SortOrder: 0, IsVisible: true},
			{ID: 2, Label: "Courses", ParentID: int64Ptr(1), SortOrder: 0, IsVisible: true},
		}}

		resp, tree := getTree(t, store, DefaultFallback())

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		require.Len(t, tree, 1)
		assert.Equal(t, "Teaching", tree[0]["label"])

		children, ok := tree[0]["children"].([]interface{})
		require.True(t, ok)
		require.Len(t, children, 1)
	})

	t.Run("store failure serves the injected fallback", func(t *testing.T) {
		store := &fakeStore{listErr: errors.New("connection refused")}
		fallback := []*model.NavItem{
			{ID: 1, Label: "Home", URL: "/", IsVisible: true},
		}

		resp, tree := getTree(t, store, fallback)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		require.Len(t, tree, 1)
		assert.Equal(t, "Home", tree[0]["label"])
	})
}
