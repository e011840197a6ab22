package content

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/deptweb/site-api/database"
	"github.com/deptweb/site-api/utils/response"
	"github.com/deptweb/site-api/utils/validation"
)

// ContentHandler handles page content requests
type ContentHandler struct {
	store database.Storage
}

// NewContentHandler creates a new page content handler
func NewContentHandler(store database.Storage) *ContentHandler {
	return &ContentHandler{store: store}
}

// UpsertContentRequest represents the request body for writing a page.
// The slug comes from the path, never from the body.
type UpsertContentRequest struct {
	Title           string  `json:"title"`
	Content         string  `json:"content"`
	MetaDescription *string `json:"metaDescription"`
	MetaKeywords    *string `json:"metaKeywords"`
	SidebarContent  *string `json:"sidebarContent"`
}

// ListContent handles GET /api/v1/content
func (h *ContentHandler) ListContent(c *fiber.Ctx) error {
	pages, err := h.store.ListPageContent()
	if err != nil {
		log.Printf("[CONTENT] list failed: %v", err)
		return response.InternalServerError(c, "")
	}

	return response.Success(c, pages)
}

// GetContent handles GET /api/v1/content/:slug
func (h *ContentHandler) GetContent(c *fiber.Ctx) error {
	slug := c.Params("slug")
	if ok, msg := validation.ValidateSlug(slug); !ok {
		return response.BadRequest(c, msg)
	}

	page, err := h.store.GetPageContent(slug)
	if err != nil {
		log.Printf("[CONTENT] get %q failed: %v", slug, err)
		return response.InternalServerError(c, "")
	}
	if page == nil {
		return response.NotFound(c, "Page content not found")
	}

	return response.Success(c, page)
}

// UpsertContent handles PUT /api/v1/content/:slug. An existing page is
// replaced, a missing one is created; both return 200 with the stored
// page.
func (h *ContentHandler) UpsertContent(c *fiber.Ctx) error {
	slug := c.Params("slug")
	if ok, msg := validation.ValidateSlug(slug); !ok {
		return response.BadRequest(c, msg)
	}

	var req UpsertContentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if ok, msg := validation.RequireString(req.Title, "Title"); !ok {
		return response.BadRequest(c, msg)
	}
	if ok, msg := validation.RequireString(req.Content, "Content"); !ok {
		return response.BadRequest(c, msg)
	}
	if field, found := validation.ForbiddenField(c.Body(), "id", "slug", "updatedAt", "updatedBy"); found {
		return response.BadRequest(c, field+" cannot be set by the client")
	}

	var updatedBy *string
	if email, ok := c.Locals("user_email").(string); ok && email != "" {
		updatedBy = &email
	}

	page, err := h.store.UpsertPageContent(slug, database.PageContentWrite{
		Title:           req.Title,
		Content:         req.Content,
		MetaDescription: req.MetaDescription,
		MetaKeywords:    req.MetaKeywords,
		SidebarContent:  req.SidebarContent,
		UpdatedBy:       updatedBy,
	})
	if err != nil {
		log.Printf("[CONTENT] upsert %q failed: %v", slug, err)
		return response.InternalServerError(c, "")
	}

	return response.Success(c, page)
}

// DeleteContent handles DELETE /api/v1/content/:slug
func (h *ContentHandler) DeleteContent(c *fiber.Ctx) error {
	slug := c.Params("slug")
	if ok, msg := validation.ValidateSlug(slug); !ok {
		return response.BadRequest(c, msg)
	}

	deleted, err := h.store.DeletePageContent(slug)
	if err != nil {
		log.Printf("[CONTENT] delete %q failed: %v", slug, err)
		return response.InternalServerError(c, "")
	}
	if !deleted {
		return response.NotFound(c, "Page content not found")
	}

	return response.SuccessWithMessage(c, "Page content deleted successfully")
}
