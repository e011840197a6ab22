package faculty

import (
	"errors"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/deptweb/site-api/database"
	"github.com/deptweb/site-api/utils/response"
	"github.com/deptweb/site-api/utils/validation"
)

// FacultyHandler handles faculty-related requests
type FacultyHandler struct {
	store database.Storage
}

// NewFacultyHandler creates a new faculty handler
func NewFacultyHandler(store database.Storage) *FacultyHandler {
	return &FacultyHandler{store: store}
}

// CreateFacultyRequest represents the request body for creating a member
type CreateFacultyRequest struct {
	Name              string   `json:"name"`
	Title             string   `json:"title"`
	Category          string   `json:"category"`
	NameEn            *string  `json:"nameEn"`
	PhotoURL          *string  `json:"photoUrl"`
	Email             *string  `json:"email"`
	Phone             *string  `json:"phone"`
	Office            *string  `json:"office"`
	ResearchInterests []string `json:"researchInterests"`
	Education         *string  `json:"education"`
	Biography         *string  `json:"biography"`
	Publications      *string  `json:"publications"`
	Projects          *string  `json:"projects"`
	Awards            *string  `json:"awards"`
	SortOrder         *int     `json:"sortOrder"`
	IsVisible         *bool    `json:"isVisible"`
}

// UpdateFacultyRequest represents the request body for a partial update
type UpdateFacultyRequest struct {
	Name              *string   `json:"name"`
	NameEn            *string   `json:"nameEn"`
	Title             *string   `json:"title"`
	Category          *string   `json:"category"`
	PhotoURL          *string   `json:"photoUrl"`
	Email             *string   `json:"email"`
	Phone             *string   `json:"phone"`
	Office            *string   `json:"office"`
	ResearchInterests *[]string `json:"researchInterests"`
	Education         *string   `json:"education"`
	Biography         *string   `json:"biography"`
	Publications      *string   `json:"publications"`
	Projects          *string   `json:"projects"`
	Awards            *string   `json:"awards"`
	SortOrder         *int      `json:"sortOrder"`
	IsVisible         *bool     `json:"isVisible"`
}

func parseFacultyID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

// ListFaculty handles GET /api/v1/faculty
func (h *FacultyHandler) ListFaculty(c *fiber.Ctx) error {
	includeHidden := c.Query("includeHidden") == "true" &&
		c.Locals("user_role") == "admin"

	members, err := h.store.ListFaculty(database.FacultyFilter{
		Category:      c.Query("category"),
		Search:        c.Query("search"),
		IncludeHidden: includeHidden,
	})
	if err != nil {
		log.Printf("[FACULTY] list failed: %v", err)
		return response.InternalServerError(c, "")
	}

	return response.Success(c, members)
}

// GetFaculty handles GET /api/v1/faculty/:id
func (h *FacultyHandler) GetFaculty(c *fiber.Ctx) error {
	id, ok := parseFacultyID(c)
	if !ok {
		return response.BadRequest(c, "Invalid faculty ID")
	}

	member, err := h.store.GetFacultyByID(id)
	if err != nil {
		log.Printf("[FACULTY] get %d failed: %v", id, err)
		return response.InternalServerError(c, "")
	}
	if member == nil {
		return response.NotFound(c, "Faculty member not found")
	}

	return response.Success(c, member)
}

// CreateFaculty handles POST /api/v1/faculty
func (h *FacultyHandler) CreateFaculty(c *fiber.Ctx) error {
	var req CreateFacultyRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if ok, msg := validation.RequireString(req.Name, "Name"); !ok {
		return response.BadRequest(c, msg)
	}
	if ok, msg := validation.RequireString(req.Title, "Title"); !ok {
		return response.BadRequest(c, msg)
	}
	if ok, msg := validation.RequireString(req.Category, "Category"); !ok {
		return response.BadRequest(c, msg)
	}
	if req.Email != nil && *req.Email != "" && !validation.ValidateEmail(*req.Email) {
		return response.BadRequest(c, "Invalid email format")
	}
	if field, found := validation.ForbiddenField(c.Body(), "id", "createdAt", "updatedAt"); found {
		return response.BadRequest(c, field+" cannot be set by the client")
	}

	member, err := h.store.CreateFaculty(database.FacultyCreate{
		Name:              req.Name,
		Title:             req.Title,
		Category:          req.Category,
		NameEn:            req.NameEn,
		PhotoURL:          req.PhotoURL,
		Email:             req.Email,
		Phone:             req.Phone,
		Office:            req.Office,
		ResearchInterests: req.ResearchInterests,
		Education:         req.Education,
		Biography:         req.Biography,
		Publications:      req.Publications,
		Projects:          req.Projects,
		Awards:            req.Awards,
		SortOrder:         req.SortOrder,
		IsVisible:         req.IsVisible,
	})
	if err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return response.Conflict(c, "Faculty member already exists")
		}
		log.Printf("[FACULTY] create failed: %v", err)
		return response.InternalServerError(c, "")
	}

	return response.Created(c, member)
}

// UpdateFaculty handles PUT /api/v1/faculty/:id
func (h *FacultyHandler) UpdateFaculty(c *fiber.Ctx) error {
	id, ok := parseFacultyID(c)
	if !ok {
		return response.BadRequest(c, "Invalid faculty ID")
	}

	var req UpdateFacultyRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Name != nil {
		if ok, msg := validation.RequireString(*req.Name, "Name"); !ok {
			return response.BadRequest(c, msg)
		}
	}
	if req.Title != nil {
		if ok, msg := validation.RequireString(*req.Title, "Title"); !ok {
			return response.BadRequest(c, msg)
		}
	}
	if req.Category != nil {
		if ok, msg := validation.RequireString(*req.Category, "Category"); !ok {
			return response.BadRequest(c, msg)
		}
	}
	if req.Email != nil && *req.Email != "" && !validation.ValidateEmail(*req.Email) {
		return response.BadRequest(c, "Invalid email format")
	}
	if field, found := validation.ForbiddenField(c.Body(), "id", "createdAt", "updatedAt"); found {
		return response.BadRequest(c, field+" cannot be set by the client")
	}

	member, err := h.store.UpdateFaculty(id, database.FacultyUpdate{
		Name:              req.Name,
		NameEn:            req.NameEn,
		Title:             req.Title,
		Category:          req.Category,
		PhotoURL:          req.PhotoURL,
		Email:             req.Email,
		Phone:             req.Phone,
		Office:            req.Office,
		ResearchInterests: req.ResearchInterests,
		Education:         req.Education,
		Biography:         req.Biography,
		Publications:      req.Publications,
		Projects:          req.Projects,
		Awards:            req.Awards,
		SortOrder:         req.SortOrder,
		IsVisible:         req.IsVisible,
	})
	if err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return response.Conflict(c, "Faculty member already exists")
		}
		log.Printf("[FACULTY] update %d failed: %v", id, err)
		return response.InternalServerError(c, "")
	}
	if member == nil {
		return response.NotFound(c, "Faculty member not found")
	}

	return response.Success(c, member)
}

// DeleteFaculty handles DELETE /api/v1/faculty/:id
func (h *FacultyHandler) DeleteFaculty(c *fiber.Ctx) error {
	id, ok := parseFacultyID(c)
	if !ok {
		return response.BadRequest(c, "Invalid faculty ID")
	}

	deleted, err := h.store.DeleteFaculty(id)
	if err != nil {
		log.Printf("[FACULTY] delete %d failed: %v", id, err)
		return response.InternalServerError(c, "")
	}
	if !deleted {
		return response.NotFound(c, "Faculty member not found")
	}

	return response.SuccessWithMessage(c, "Faculty member deleted successfully")
}
