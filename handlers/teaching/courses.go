package teaching

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/deptweb/site-api/database"
	"github.com/deptweb/site-api/utils/response"
	"github.com/deptweb/site-api/utils/validation"
)

// CreateCourseRequest represents the request body for creating a course
type CreateCourseRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Schedule    string  `json:"schedule"`
	Instructor  string  `json:"instructor"`
	Code        *string `json:"code"`
	Credits     *int    `json:"credits"`
	Semester    *string `json:"semester"`
	SortOrder   *int    `json:"sortOrder"`
	IsVisible   *bool   `json:"isVisible"`
}

// UpdateCourseRequest represents the request body for a partial update
type UpdateCourseRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Schedule    *string `json:"schedule"`
	Instructor  *string `json:"instructor"`
	Code        *string `json:"code"`
	Credits     *int    `json:"credits"`
	Semester    *string `json:"semester"`
	SortOrder   *int    `json:"sortOrder"`
	IsVisible   *bool   `json:"isVisible"`
}

// ListCourses handles GET /api/v1/courses
func (h *TeachingHandler) ListCourses(c *fiber.Ctx) error {
	courses, err := h.store.ListCourses(database.TeachingFilter{
		Search:        c.Query("search"),
		IncludeHidden: h.includeHidden(c),
	})
	if err != nil {
		log.Printf("[TEACHING] list courses failed: %v", err)
		return response.InternalServerError(c, "")
	}

	return response.Success(c, courses)
}

// GetCourse handles GET /api/v1/courses/:id
func (h *TeachingHandler) GetCourse(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return response.BadRequest(c, "Invalid course ID")
	}

	course, err := h.store.GetCourseByID(id)
	if err != nil {
		log.Printf("[TEACHING] get course %d failed: %v", id, err)
		return response.InternalServerError(c, "")
	}
	if course == nil {
		return response.NotFound(c, "Course not found")
	}

	return response.Success(c, course)
}

// CreateCourse handles POST /api/v1/courses
func (h *TeachingHandler) CreateCourse(c *fiber.Ctx) error {
	var req CreateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if ok, msg := validation.RequireString(req.Name, "Name"); !ok {
		return response.BadRequest(c, msg)
	}
	if ok, msg := validation.RequireString(req.Description, "Description"); !ok {
		return response.BadRequest(c, msg)
	}
	if ok, msg := validation.RequireString(req.Schedule, "Schedule"); !ok {
		return response.BadRequest(c, msg)
	}
	if ok, msg := validation.RequireString(req.Instructor, "Instructor"); !ok {
		return response.BadRequest(c, msg)
	}
	if field, found := validation.ForbiddenField(c.Body(), "id", "createdAt", "updatedAt"); found {
		return response.BadRequest(c, field+" cannot be set by the client")
	}

	course, err := h.store.CreateCourse(database.CourseCreate{
		Name:        req.Name,
		Description: req.Description,
		Schedule:    req.Schedule,
		Instructor:  req.Instructor,
		Code:        req.Code,
		Credits:     req.Credits,
		Semester:    req.Semester,
		SortOrder:   req.SortOrder,
		IsVisible:   req.IsVisible,
	})
	if err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return response.Conflict(c, "Course already exists")
		}
		log.Printf("[TEACHING] create course failed: %v", err)
		return response.InternalServerError(c, "")
	}

	return response.Created(c, course)
}

// UpdateCourse handles PUT /api/v1/courses/:id
func (h *TeachingHandler) UpdateCourse(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return response.BadRequest(c, "Invalid course ID")
	}

	var req UpdateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	for _, check := range []struct {
		value *string
		field string
	}{
		{req.Name, "Name"},
		{req.Description, "Description"},
		{req.Schedule, "Schedule"},
		{req.Instructor, "Instructor"},
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

	course, err := h.store.UpdateCourse(id, database.CourseUpdate{
		Name:        req.Name,
		Description: req.Description,
		Schedule:    req.Schedule,
		Instructor:  req.Instructor,
		Code:        req.Code,
		Credits:     req.Credits,
		Semester:    req.Semester,
		SortOrder:   req.SortOrder,
		IsVisible:   req.IsVisible,
	})
	if err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return response.Conflict(c, "Course already exists")
		}
		log.Printf("[TEACHING] update course %d failed: %v", id, err)
		return response.InternalServerError(c, "")
	}
	if course == nil {
		return response.NotFound(c, "Course not found")
	}

	return response.Success(c, course)
}

// DeleteCourse handles DELETE /api/v1/courses/:id
func (h *TeachingHandler) DeleteCourse(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return response.BadRequest(c, "Invalid course ID")
	}

	deleted, err := h.store.DeleteCourse(id)
	if err != nil {
		log.Printf("[TEACHING] delete course %d failed: %v", id, err)
		return response.InternalServerError(c, "")
	}
	if !deleted {
		return response.NotFound(c, "Course not found")
	}

	return response.SuccessWithMessage(c, "Course deleted successfully")
}
