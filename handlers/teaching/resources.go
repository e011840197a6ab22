package teaching

import (
	"errors"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/deptweb/site-api/database"
	"github.com/deptweb/site-api/utils/response"
	"github.com/deptweb/site-api/utils/validation"
)

// CreateResourceRequest represents the request body for creating a resource
type CreateResourceRequest struct {
	Title       string  `json:"title"`
	DownloadURL string  `json:"downloadUrl"`
	Description *string `json:"description"`
	FileType    *string `json:"fileType"`
	FileSize    *int64  `json:"fileSize"`
	CourseID    *int64  `json:"courseId"`
	SortOrder   *int    `json:"sortOrder"`
	IsVisible   *bool   `json:"isVisible"`
}

// UpdateResourceRequest represents the request body for a partial update
type UpdateResourceRequest struct {
	Title       *string `json:"title"`
	DownloadURL *string `json:"downloadUrl"`
	Description *string `json:"description"`
	FileType    *string `json:"fileType"`
	FileSize    *int64  `json:"fileSize"`
	CourseID    *int64  `json:"courseId"`
	SortOrder   *int    `json:"sortOrder"`
	IsVisible   *bool   `json:"isVisible"`
}

// ListResources handles GET /api/v1/resources
func (h *TeachingHandler) ListResources(c *fiber.Ctx) error {
	var courseID int64
	if raw := c.Query("courseId"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 1 {
			return response.BadRequest(c, "Invalid course ID")
		}
		courseID = parsed
	}

	resources, err := h.store.ListResources(database.ResourceFilter{
		Search:        c.Query("search"),
		CourseID:      courseID,
		IncludeHidden: h.includeHidden(c),
	})
	if err != nil {
		log.Printf("[TEACHING] list resources failed: %v", err)
		return response.InternalServerError(c, "")
	}

	return response.Success(c, resources)
}

// GetResource handles GET /api/v1/resources/:id
func (h *TeachingHandler) GetResource(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return response.BadRequest(c, "Invalid resource ID")
	}

	resource, err := h.store.GetResourceByID(id)
	if err != nil {
		log.Printf("[TEACHING] get resource %d failed: %v", id, err)
		return response.InternalServerError(c, "")
	}
	if resource == nil {
		return response.NotFound(c, "Resource not found")
	}

	return response.Success(c, resource)
}

// CreateResource handles POST /api/v1/resources
func (h *TeachingHandler) CreateResource(c *fiber.Ctx) error {
	var req CreateResourceRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if ok, msg := validation.RequireString(req.Title, "Title"); !ok {
		return response.BadRequest(c, msg)
	}
	if ok, msg := validation.RequireString(req.DownloadURL, "DownloadUrl"); !ok {
		return response.BadRequest(c, msg)
	}
	if req.CourseID != nil && *req.CourseID < 1 {
		return response.BadRequest(c, "Invalid course ID")
	}
	if field, found := validation.ForbiddenField(c.Body(), "id", "createdAt", "updatedAt"); found {
		return response.BadRequest(c, field+" cannot be set by the client")
	}

	resource, err := h.store.CreateResource(database.ResourceCreate{
		Title:       req.Title,
		DownloadURL: req.DownloadURL,
		Description: req.Description,
		FileType:    req.FileType,
		FileSize:    req.FileSize,
		CourseID:    req.CourseID,
		SortOrder:   req.SortOrder,
		IsVisible:   req.IsVisible,
	})
	if err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return response.Conflict(c, "Resource already exists")
		}
		log.Printf("[TEACHING] create resource failed: %v", err)
		return response.InternalServerError(c, "")
	}

	return response.Created(c, resource)
}

// UpdateResource handles PUT /api/v1/resources/:id
func (h *TeachingHandler) UpdateResource(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return response.BadRequest(c, "Invalid resource ID")
	}

	var req UpdateResourceRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Title != nil {
		if ok, msg := validation.RequireString(*req.Title, "Title"); !ok {
			return response.BadRequest(c, msg)
		}
	}
	if req.DownloadURL != nil {
		if ok, msg := validation.RequireString(*req.DownloadURL, "DownloadUrl"); !ok {
			return response.BadRequest(c, msg)
		}
	}
	if req.CourseID != nil && *req.CourseID < 1 {
		return response.BadRequest(c, "Invalid course ID")
	}
	if field, found := validation.ForbiddenField(c.Body(), "id", "createdAt", "updatedAt"); found {
		return response.BadRequest(c, field+" cannot be set by the client")
	}

	resource, err := h.store.UpdateResource(id, database.ResourceUpdate{
		Title:       req.Title,
		DownloadURL: req.DownloadURL,
		Description: req.Description,
		FileType:    req.FileType,
		FileSize:    req.FileSize,
		CourseID:    req.CourseID,
		SortOrder:   req.SortOrder,
		IsVisible:   req.IsVisible,
	})
	if err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return response.Conflict(c, "Resource already exists")
		}
		log.Printf("[TEACHING] update resource %d failed: %v", id, err)
		return response.InternalServerError(c, "")
	}
	if resource == nil {
		return response.NotFound(c, "Resource not found")
	}

	return response.Success(c, resource)
}

// DeleteResource handles DELETE /api/v1/resources/:id
func (h *TeachingHandler) DeleteResource(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return response.BadRequest(c, "Invalid resource ID")
	}

	deleted, err := h.store.DeleteResource(id)
	if err != nil {
		log.Printf("[TEACHING] delete resource %d failed: %v", id, err)
		return response.InternalServerError(c, "")
	}
	if !deleted {
		return response.NotFound(c, "Resource not found")
	}

	return response.SuccessWithMessage(c, "Resource deleted successfully")
}
