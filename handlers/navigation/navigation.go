package navigation

import (
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/deptweb/site-api/database"
	"github.com/deptweb/site-api/model"
	"github.com/deptweb/site-api/utils/cache"
	"github.com/deptweb/site-api/utils/response"
	"github.com/deptweb/site-api/utils/validation"
)

// NavigationHandler serves the navigation tree and its admin CRUD.
// The fallback tree is injected at startup and served when the store is
// unreachable; the public tree endpoint never fails.
type NavigationHandler struct {
	store    database.Storage
	cache    *cache.RedisCache
	fallback []*model.NavItem
}

// NewNavigationHandler creates a new navigation handler. cache may be
// nil; fallback is served verbatim on store failure.
func NewNavigationHandler(store database.Storage, redisCache *cache.RedisCache, fallback []*model.NavItem) *NavigationHandler {
	return &NavigationHandler{
		store:    store,
		cache:    redisCache,
		fallback: fallback,
	}
}

// DefaultFallback is the minimal tree served when the store is down and
// nothing configured a richer one.
func DefaultFallback() []*model.NavItem {
	return []*model.NavItem{
		{ID: 1, Label: "Home", URL: "/", SortOrder: 0, IsVisible: true},
		{ID: 2, Label: "News", URL: "/news", SortOrder: 1, IsVisible: true},
		{ID: 3, Label: "Faculty", URL: "/faculty", SortOrder: 2, IsVisible: true},
		{ID: 4, Label: "Teaching", URL: "/teaching", SortOrder: 3, IsVisible: true},
	}
}

// CreateNavItemRequest represents the request body for creating an entry
type CreateNavItemRequest struct {
	Label       string  `json:"label"`
	URL         string  `json:"url"`
	ParentID    *int64  `json:"parentId"`
	Icon        *string `json:"icon"`
	Description *string `json:"description"`
	SortOrder   *int    `json:"sortOrder"`
	IsVisible   *bool   `json:"isVisible"`
}

// UpdateNavItemRequest represents the request body for a partial update
type UpdateNavItemRequest struct {
	Label       *string `json:"label"`
	URL         *string `json:"url"`
	ParentID    *int64  `json:"parentId"`
	Icon        *string `json:"icon"`
	Description *string `json:"description"`
	SortOrder   *int    `json:"sortOrder"`
	IsVisible   *bool   `json:"isVisible"`
}

func parseNavID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

// GetTree handles GET /api/v1/navigation. Served from cache when warm;
// on store failure the injected fallback tree goes out with a 200.
func (h *NavigationHandler) GetTree(c *fiber.Ctx) error {
	if h.cache != nil {
		var cached []*model.NavItem
		if err := h.cache.GetJSON(c.Context(), cache.NavigationTreeKey, &cached); err == nil {
			return response.Success(c, cached)
		}
	}

	items, err := h.store.ListNavigation()
	if err != nil {
		log.Printf("[NAV] list failed, serving fallback: %v", err)
		return response.Success(c, h.fallback)
	}

	tree := database.BuildNavigationTree(items)

	if h.cache != nil {
		if err := h.cache.SetJSON(c.Context(), cache.NavigationTreeKey, tree, cache.NavigationTreeTTL); err != nil {
			log.Printf("[NAV] cache write failed: %v", err)
		}
	}

	return response.Success(c, tree)
}

// ListItems handles GET /api/v1/admin/navigation: the flat row set, no
// tree assembly, for the editing UI.
func (h *NavigationHandler) ListItems(c *fiber.Ctx) error {
	items, err := h.store.ListNavigation()
	if err != nil {
		log.Printf("[NAV] list failed: %v", err)
		return response.InternalServerError(c, "")
	}

	return response.Success(c, items)
}

// GetItem handles GET /api/v1/admin/navigation/:id
func (h *NavigationHandler) GetItem(c *fiber.Ctx) error {
	id, ok := parseNavID(c)
	if !ok {
		return response.BadRequest(c, "Invalid navigation ID")
	}

	item, err := h.store.GetNavItemByID(id)
	if err != nil {
		log.Printf("[NAV] get %d failed: %v", id, err)
		return response.InternalServerError(c, "")
	}
	if item == nil {
		return response.NotFound(c, "Navigation item not found")
	}

	return response.Success(c, item)
}

// CreateItem handles POST /api/v1/admin/navigation
func (h *NavigationHandler) CreateItem(c *fiber.Ctx) error {
	var req CreateNavItemRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if ok, msg := validation.RequireString(req.Label, "Label"); !ok {
		return response.BadRequest(c, msg)
	}
	if ok, msg := validation.RequireString(req.URL, "Url"); !ok {
		return response.BadRequest(c, msg)
	}
	if req.ParentID != nil && *req.ParentID < 1 {
		return response.BadRequest(c, "Invalid parent ID")
	}
	if field, found := validation.ForbiddenField(c.Body(), "id", "children"); found {
		return response.BadRequest(c, field+" cannot be set by the client")
	}

	item, err := h.store.CreateNavItem(database.NavItemCreate{
		Label:       req.Label,
		URL:         req.URL,
		ParentID:    req.ParentID,
		Icon:        req.Icon,
		Description: req.Description,
		SortOrder:   req.SortOrder,
		IsVisible:   req.IsVisible,
	})
	if err != nil {
		log.Printf("[NAV] create failed: %v", err)
		return response.InternalServerError(c, "")
	}

	h.invalidateCache(c)
	return response.Created(c, item)
}

// UpdateItem handles PUT /api/v1/admin/navigation/:id
func (h *NavigationHandler) UpdateItem(c *fiber.Ctx) error {
	id, ok := parseNavID(c)
	if !ok {
		return response.BadRequest(c, "Invalid navigation ID")
	}

	var req UpdateNavItemRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Label != nil {
		if ok, msg := validation.RequireString(*req.Label, "Label"); !ok {
			return response.BadRequest(c, msg)
		}
	}
	if req.URL != nil {
		if ok, msg := validation.RequireString(*req.URL, "Url"); !ok {
			return response.BadRequest(c, msg)
		}
	}
	if req.ParentID != nil && *req.ParentID == id {
		return response.BadRequest(c, "Navigation item cannot be its own parent")
	}
	if field, found := validation.ForbiddenField(c.Body(), "id", "children"); found {
		return response.BadRequest(c, field+" cannot be set by the client")
	}

	item, err := h.store.UpdateNavItem(id, database.NavItemUpdate{
		Label:       req.Label,
		URL:         req.URL,
		ParentID:    req.ParentID,
		Icon:        req.Icon,
		Description: req.Description,
		SortOrder:   req.SortOrder,
		IsVisible:   req.IsVisible,
	})
	if err != nil {
		log.Printf("[NAV] update %d failed: %v", id, err)
		return response.InternalServerError(c, "")
	}
	if item == nil {
		return response.NotFound(c, "Navigation item not found")
	}

	h.invalidateCache(c)
	return response.Success(c, item)
}

// DeleteItem handles DELETE /api/v1/admin/navigation/:id. Children of a
// deleted entry have parent_id nulled by the store and surface as roots.
func (h *NavigationHandler) DeleteItem(c *fiber.Ctx) error {
	id, ok := parseNavID(c)
	if !ok {
		return response.BadRequest(c, "Invalid navigation ID")
	}

	deleted, err := h.store.DeleteNavItem(id)
	if err != nil {
		log.Printf("[NAV] delete %d failed: %v", id, err)
		return response.InternalServerError(c, "")
	}
	if !deleted {
		return response.NotFound(c, "Navigation item not found")
	}

	h.invalidateCache(c)
	return response.SuccessWithMessage(c, "Navigation item deleted successfully")
}

func (h *NavigationHandler) invalidateCache(c *fiber.Ctx) {
	if h.cache == nil {
		return
	}
	if err := h.cache.Delete(c.Context(), cache.NavigationTreeKey); err != nil {
		log.Printf("[NAV] cache invalidation failed: %v", err)
	}
}
