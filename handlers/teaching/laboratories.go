package teaching

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/deptweb/site-api/database"
	"github.com/deptweb/site-api/utils/response"
	"github.com/deptweb/site-api/utils/validation"
)

// CreateLaboratoryRequest represents the request body for creating a lab
type CreateLaboratoryRequest struct {
	Name         string  `json:"name"`
	Location     string  `json:"location"`
	Equipment    string  `json:"equipment"`
	OpeningHours string  `json:"openingHours"`
	Description  *string `json:"description"`
	Director     *string `json:"director"`
	SortOrder    *int    `json:"sortOrder"`
	IsVisible    *bool   `json:"isVisible"`
}

// UpdateLaboratoryRequest represents the request body for a partial update
type UpdateLaboratoryRequest struct {
	Name         *string `json:"name"`
	Location     *string `json:"location"`
	Equipment    *string `json:"equipment"`
	OpeningHours *string `json:"openingHours"`
	Description  *string `json:"description"`
	Director     *string `json:"director"`
	SortOrder    *int    `json:"sortOrder"`
	IsVisible    *bool   `json:"isVisible"`
}

// ListLaboratories handles GET /api/v1/laboratories
func (h *TeachingHandler) ListLaboratories(c *fiber.Ctx) error {
	labs, err := h.store.ListLaboratories(database.TeachingFilter{
		Search:        c.Query("search"),
		IncludeHidden: h.includeHidden(c),
	})
	if err != nil {
		log.Printf("[TEACHING] list laboratories failed: %v", err)
		return response.InternalServerError(c, "")
	}

	return response.Success(c, labs)
}

// GetLaboratory handles GET /api/v1/laboratories/:id
func (h *TeachingHandler) GetLaboratory(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return response.BadRequest(c, "Invalid laboratory ID")
	}

	lab, err := h.store.GetLaboratoryByID(id)
	if err != nil {
		log.Printf("[TEACHING] get laboratory %d failed: %v", id, err)
		return response.InternalServerError(c, "")
	}
	if lab == nil {
		return response.NotFound(c, "Laboratory not found")
	}

	return response.Success(c, lab)
}

// CreateLaboratory handles POST /api/v1/laboratories
func (h *TeachingHandler) CreateLaboratory(c *fiber.Ctx) error {
	var req CreateLaboratoryRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if ok, msg := validation.RequireString(req.Name, "Name"); !ok {
		return response.BadRequest(c, msg)
	}
	if ok, msg := validation.RequireString(req.Location, "Location"); !ok {
		return response.BadRequest(c, msg)
	}
	if ok, msg := validation.RequireString(req.Equipment, "Equipment"); !ok {
		return response.BadRequest(c, msg)
	}
	if ok, msg := validation.RequireString(req.OpeningHours, "OpeningHours"); !ok {
		return response.BadRequest(c, msg)
	}
	if field, found := validation.ForbiddenField(c.Body(), "id", "createdAt", "updatedAt"); found {
		return response.BadRequest(c, field+" cannot be set by the client")
	}

	lab, err := h.store.CreateLaboratory(database.LaboratoryCreate{
		Name:         req.Name,
		Location:     req.Location,
		Equipment:    req.Equipment,
		OpeningHours: req.OpeningHours,
		Description:  req.Description,
		Director:     req.Director,
		SortOrder:    req.SortOrder,
		IsVisible:    req.IsVisible,
	})
	if err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return response.Conflict(c, "Laboratory already exists")
		}
		log.Printf("[TEACHING] create laboratory failed: %v", err)
		return response.InternalServerError(c, "")
	}

	return response.Created(c, lab)
}

// UpdateLaboratory handles PUT /api/v1/laboratories/:id
func (h *TeachingHandler) UpdateLaboratory(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return response.BadRequest(c, "Invalid laboratory ID")
	}

	var req UpdateLaboratoryRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	for _, check := range []struct {
		value *string
		field string
	}{
		{req.Name, "Name"},
		{req.Location, "Location"},
		{req.Equipment, "Equipment"},
		{req.OpeningHours, "OpeningHours"},
	} {
		if check.value != nil {
			if ok, msg := validation.RequireString(*check.value, check.field); !ok {
				return response.BadRequest(c, msg)
			}
		}
	}
	if field, found := validation.ForbiddenField(c.Body(), "id", "createdAt", "updatedAt"); found {
		return response.BadRequest(c, field+" cannot be set by the client")
	}

	lab, err := h.store.UpdateLaboratory(id, database.LaboratoryUpdate{
		Name:         req.Name,
		Location:     req.Location,
		Equipment:    req.Equipment,
		OpeningHours: req.OpeningHours,
		Description:  req.Description,
		Director:     req.Director,
		SortOrder:    req.SortOrder,
		IsVisible:    req.IsVisible,
	})
	if err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return response.Conflict(c, "Laboratory already exists")
		}
		log.Printf("[TEACHING] update laboratory %d failed: %v", id, err)
		return response.InternalServerError(c, "")
	}
	if lab == nil {
		return response.NotFound(c, "Laboratory not found")
	}

	return response.Success(c, lab)
}

// DeleteLaboratory handles DELETE /api/v1/laboratories/:id
func (h *TeachingHandler) DeleteLaboratory(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return response.BadRequest(c, "Invalid laboratory ID")
	}

	deleted, err := h.store.DeleteLaboratory(id)
	if err != nil {
		log.Printf("[TEACHING] delete laboratory %d failed: %v", id, err)
		return response.InternalServerError(c, "")
	}
	if !deleted {
		return response.NotFound(c, "Laboratory not found")
	}

	return response.SuccessWithMessage(c, "Laboratory deleted successfully")
}
