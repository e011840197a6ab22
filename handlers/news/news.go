package news

import (
	"errors"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/deptweb/site-api/database"
	"github.com/deptweb/site-api/utils/response"
	"github.com/deptweb/site-api/utils/validation"
)

// NewsHandler handles news-related requests
type NewsHandler struct {
	store database.Storage
}

// NewNewsHandler creates a new news handler
func NewNewsHandler(store database.Storage) *NewsHandler {
	return &NewsHandler{store: store}
}

// CreateNewsRequest represents the request body for creating a news item
type CreateNewsRequest struct {
	Title        string   `json:"title"`
	Slug         string   `json:"slug"`
	Content      string   `json:"content"`
	Summary      *string  `json:"summary"`
	ThumbnailURL *string  `json:"thumbnailUrl"`
	Author       *string  `json:"author"`
	Category     *string  `json:"category"`
	IsPublished  *bool    `json:"isPublished"`
	Tags         []string `json:"tags"`
}

// UpdateNewsRequest represents the request body for updating a news item.
// Absent fields are left unchanged.
type UpdateNewsRequest struct {
	Title        *string   `json:"title"`
	Slug         *string   `json:"slug"`
	Summary      *string   `json:"summary"`
	Content      *string   `json:"content"`
	ThumbnailURL *string   `json:"thumbnailUrl"`
	Author       *string   `json:"author"`
	Category     *string   `json:"category"`
	IsPublished  *bool     `json:"isPublished"`
	Tags         *[]string `json:"tags"`
}

func parseNewsID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

// ListNews handles GET /api/v1/news
func (h *NewsHandler) ListNews(c *fiber.Ctx) error {
	page := 1
	if raw := c.Query("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return response.BadRequest(c, "Page must be a positive integer")
		}
		page = parsed
	}

	pageSize := 10
	if raw := c.Query("pageSize"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 100 {
			return response.BadRequest(c, "PageSize must be an integer between 1 and 100")
		}
		pageSize = parsed
	}

	// Unpublished items are listable only through the admin routes.
	includeUnpublished := c.Query("includeUnpublished") == "true" &&
		c.Locals("user_role") == "admin"

	result, err := h.store.ListNews(database.NewsFilter{
		Category:           c.Query("category"),
		Search:             c.Query("search"),
		Page:               page,
		PageSize:           pageSize,
		IncludeUnpublished: includeUnpublished,
	})
	if err != nil {
		log.Printf("[NEWS] list failed: %v", err)
		return response.InternalServerError(c, "")
	}

	return response.Success(c, result)
}

// GetNews handles GET /api/v1/news/:id
func (h *NewsHandler) GetNews(c *fiber.Ctx) error {
	id, ok := parseNewsID(c)
	if !ok {
		return response.BadRequest(c, "Invalid news ID")
	}

	item, err := h.store.GetNewsByID(id)
	if err != nil {
		log.Printf("[NEWS] get %d failed: %v", id, err)
		return response.InternalServerError(c, "")
	}
	if item == nil {
		return response.NotFound(c, "News item not found")
	}

	return response.Success(c, item)
}

// GetNewsBySlug handles GET /api/v1/news/slug/:slug
func (h *NewsHandler) GetNewsBySlug(c *fiber.Ctx) error {
	slug := c.Params("slug")
	if ok, msg := validation.ValidateSlug(slug); !ok {
		return response.BadRequest(c, msg)
	}

	item, err := h.store.GetNewsBySlug(slug)
	if err != nil {
		log.Printf("[NEWS] get slug %q failed: %v", slug, err)
		return response.InternalServerError(c, "")
	}
	if item == nil {
		return response.NotFound(c, "News item not found")
	}

	return response.Success(c, item)
}

// IncrementViewCount handles POST /api/v1/news/:id/view. The counter is
// bumped at the store, so concurrent views never lose increments.
func (h *NewsHandler) IncrementViewCount(c *fiber.Ctx) error {
	id, ok := parseNewsID(c)
	if !ok {
		return response.BadRequest(c, "Invalid news ID")
	}

	item, err := h.store.GetNewsByID(id)
	if err != nil {
		log.Printf("[NEWS] view %d failed: %v", id, err)
		return response.InternalServerError(c, "")
	}
	if item == nil {
		return response.NotFound(c, "News item not found")
	}

	if err := h.store.IncrementNewsViewCount(id); err != nil {
		log.Printf("[NEWS] increment view count %d failed: %v", id, err)
		return response.InternalServerError(c, "")
	}

	return response.SuccessWithMessage(c, "View count incremented")
}

// CreateNews handles POST /api/v1/news
func (h *NewsHandler) CreateNews(c *fiber.Ctx) error {
	var req CreateNewsRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if ok, msg := validation.RequireString(req.Title, "Title"); !ok {
		return response.BadRequest(c, msg)
	}
	if ok, msg := validation.ValidateSlug(req.Slug); !ok {
		return response.BadRequest(c, msg)
	}
	if ok, msg := validation.RequireString(req.Content, "Content"); !ok {
		return response.BadRequest(c, msg)
	}
	if field, found := validation.ForbiddenField(c.Body(), "id", "createdAt", "updatedAt", "viewCount"); found {
		return response.BadRequest(c, field+" cannot be set by the client")
	}

	item, err := h.store.CreateNews(database.NewsCreate{
		Title:        req.Title,
		Slug:         req.Slug,
		Content:      req.Content,
		Summary:      req.Summary,
		ThumbnailURL: req.ThumbnailURL,
		Author:       req.Author,
		Category:     req.Category,
		IsPublished:  req.IsPublished,
		Tags:         req.Tags,
	})
	if err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return response.Conflict(c, "News item with this slug already exists")
		}
		log.Printf("[NEWS] create failed: %v", err)
		return response.InternalServerError(c, "")
	}

	return response.Created(c, item)
}

// UpdateNews handles PUT /api/v1/news/:id
func (h *NewsHandler) UpdateNews(c *fiber.Ctx) error {
	id, ok := parseNewsID(c)
	if !ok {
		return response.BadRequest(c, "Invalid news ID")
	}

	var req UpdateNewsRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Title != nil {
		if ok, msg := validation.RequireString(*req.Title, "Title"); !ok {
			return response.BadRequest(c, msg)
		}
	}
	if req.Slug != nil {
		if ok, msg := validation.ValidateSlug(*req.Slug); !ok {
			return response.BadRequest(c, msg)
		}
	}
	if req.Content != nil {
		if ok, msg := validation.RequireString(*req.Content, "Content"); !ok {
			return response.BadRequest(c, msg)
		}
	}
	if field, found := validation.ForbiddenField(c.Body(), "id", "createdAt", "updatedAt", "publishedAt", "viewCount"); found {
		return response.BadRequest(c, field+" cannot be set by the client")
	}

	item, err := h.store.UpdateNews(id, database.NewsUpdate{
		Title:        req.Title,
		Slug:         req.Slug,
		Summary:      req.Summary,
		Content:      req.Content,
		ThumbnailURL: req.ThumbnailURL,
		Author:       req.Author,
		Category:     req.Category,
		IsPublished:  req.IsPublished,
		Tags:         req.Tags,
	})
	if err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return response.Conflict(c, "News item with this slug already exists")
		}
		log.Printf("[NEWS] update %d failed: %v", id, err)
		return response.InternalServerError(c, "")
	}
	if item == nil {
		return response.NotFound(c, "News item not found")
	}

	return response.Success(c, item)
}

// DeleteNews handles DELETE /api/v1/news/:id
func (h *NewsHandler) DeleteNews(c *fiber.Ctx) error {
	id, ok := parseNewsID(c)
	if !ok {
		return response.BadRequest(c, "Invalid news ID")
	}

	deleted, err := h.store.DeleteNews(id)
	if err != nil {
		log.Printf("[NEWS] delete %d failed: %v", id, err)
		return response.InternalServerError(c, "")
	}
	if !deleted {
		return response.NotFound(c, "News item not found")
	}

	return response.SuccessWithMessage(c, "News item deleted successfully")
}
