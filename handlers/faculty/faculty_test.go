package faculty

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
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

	nextID  int64
	members map[int64]*model.FacultyMember
}

func newFakeStore() *fakeStore {
	return &fakeStore{nextID: 1, members: map[int64]*model.FacultyMember{}}
}

func (f *fakeStore) ListFaculty(filter database.FacultyFilter) ([]model.FacultyMember, error) {
	members := []model.FacultyMember{}
	for _, member := range f.members {
		if !filter.IncludeHidden && !member.IsVisible {
			continue
		}
		if filter.Category != "" && member.Category != filter.Category {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(member.Name), strings.ToLower(filter.Search)) {
			continue
		}
		members = append(members, *member)
	}
	return members, nil
}

func (f *fakeStore) GetFacultyByID(id int64) (*model.FacultyMember, error) {
	member, ok := f.members[id]
	if !ok {
		return nil, nil
	}
	copied := *member
	return &copied, nil
}

func (f *fakeStore) CreateFaculty(in database.FacultyCreate) (*model.FacultyMember, error) {
	isVisible := true
	if in.IsVisible != nil {
		isVisible = *in.IsVisible
	}
	interests := in.ResearchInterests
	if interests == nil {
		interests = []string{}
	}

	member := &model.FacultyMember{
		ID:                f.nextID,
		Name:              in.Name,
		Title:             in.Title,
		Category:          in.Category,
		NameEn:            in.NameEn,
		Email:             in.Email,
		ResearchInterests: interests,
		IsVisible:         isVisible,
		CreatedAt:         time.Now(),
		UpdatedAt:         time.Now(),
	}
	f.nextID++
	f.members[member.ID] = member
	copied := *member
	return &copied, nil
}

func (f *fakeStore) DeleteFaculty(id int64) (bool, error) {
	if _, ok := f.members[id]; !ok {
		return false, nil
	}
	delete(f.members, id)
	return true, nil
}

func newTestApp(store database.Storage) *fiber.App {
	app := fiber.New()
	h := NewFacultyHandler(store)
	app.Get("/api/v1/faculty", h.ListFaculty)
	app.Get("/api/v1/faculty/:id", h.GetFaculty)
	app.Post("/api/v1/faculty", h.CreateFaculty)
	app.Delete("/api/v1/faculty/:id", h.DeleteFaculty)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) (*http.Response, []byte) {
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
	return resp, raw
}

func TestCreateFaculty(t *testing.T) {
	t.Run("missing name reported first", func(t *testing.T) {
		app := newTestApp(newFakeStore())

		resp, raw := doJSON(t, app, "POST", "/api/v1/faculty", map[string]interface{}{
			"title": "Professor", "category": "professor",
		})

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, string(raw), "Name is required")
	})

	t.Run("invalid email rejected", func(t *testing.T) {
		app := newTestApp(newFakeStore())

		resp, raw := doJSON(t, app, "POST", "/api/v1/faculty", map[string]interface{}{
			"name": "Ada", "title": "Professor", "category": "professor",
			"email": "not-an-email",
		})

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, string(raw), "email")
	})

	t.Run("valid payload returns created record", func(t *testing.T) {
		app := newTestApp(newFakeStore())

		resp, raw := doJSON(t, app, "POST", "/api/v1/faculty", map[string]interface{}{
			"name": "Ada", "title": "Professor", "category": "professor",
			"researchInterests": []string{"compilers"},
		})

		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var member model.FacultyMember
		require.NoError(t, json.Unmarshal(raw, &member))
		assert.NotZero(t, member.ID)
		assert.True(t, member.IsVisible)
		assert.Equal(t, []string{"compilers"}, member.ResearchInterests)
	})
}

func TestListFaculty(t *testing.T) {
	store := newFakeStore()
	app := newTestApp(store)

	_, err := store.CreateFaculty(database.FacultyCreate{Name: "Ada", Title: "Professor", Category: "professor"})
	require.NoError(t, err)
	_, err = store.CreateFaculty(database.FacultyCreate{Name: "Bob", Title: "Lecturer", Category: "lecturer"})
	require.NoError(t, err)

	t.Run("category filter applies", func(t *testing.T) {
		resp, raw := doJSON(t, app, "GET", "/api/v1/faculty?category=professor", nil)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var members []model.FacultyMember
		require.NoError(t, json.Unmarshal(raw, &members))
		require.Len(t, members, 1)
		assert.Equal(t, "Ada", members[0].Name)
	})

	t.Run("search filter applies", func(t *testing.T) {
		resp, raw := doJSON(t, app, "GET", "/api/v1/faculty?search=bob", nil)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var members []model.FacultyMember
		require.NoError(t, json.Unmarshal(raw, &members))
		require.Len(t, members, 1)
		assert.Equal(t, "Bob", members[0].Name)
	})
}

func TestListFacultyHiddenVisibility(t *testing.T) {
	store := newFakeStore()
	app := fiber.New()
	h := NewFacultyHandler(store)

	// Mirrors the route wiring: the public list carries no auth, the
	// admin list sits behind a gate that fills in the caller's role.
	asAdmin := func(c *fiber.Ctx) error {
		c.Locals("user_role", "admin")
		return c.Next()
	}
	app.Get("/api/v1/faculty", h.ListFaculty)
	app.Get("/api/v1/admin/faculty", asAdmin, h.ListFaculty)

	hidden := false
	_, err := store.CreateFaculty(database.FacultyCreate{Name: "Ada", Title: "Professor", Category: "professor"})
	require.NoError(t, err)
	_, err = store.CreateFaculty(database.FacultyCreate{Name: "Eve", Title: "Emerita", Category: "professor", IsVisible: &hidden})
	require.NoError(t, err)

	t.Run("public list never includes hidden members", func(t *testing.T) {
		resp, raw := doJSON(t, app, "GET", "/api/v1/faculty?includeHidden=true", nil)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var members []model.FacultyMember
		require.NoError(t, json.Unmarshal(raw, &members))
		require.Len(t, members, 1)
		assert.Equal(t, "Ada", members[0].Name)
	})

	t.Run("admin list includes hidden members on request", func(t *testing.T) {
		resp, raw := doJSON(t, app, "GET", "/api/v1/admin/faculty?includeHidden=true", nil)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var members []model.FacultyMember
		require.NoError(t, json.Unmarshal(raw, &members))
		assert.Len(t, members, 2)
	})
}

func TestDeleteFaculty(t *testing.T) {
	app := newTestApp(newFakeStore())

	resp, raw := doJSON(t, app, "DELETE", "/api/v1/faculty/5", nil)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, string(raw), "not found")
}
