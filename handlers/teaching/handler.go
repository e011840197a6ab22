package teaching

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/deptweb/site-api/database"
)

// TeachingHandler handles courses, laboratories and teaching resources
type TeachingHandler struct {
	store database.Storage
}

// NewTeachingHandler creates a new teaching handler
func NewTeachingHandler(store database.Storage) *TeachingHandler {
	return &TeachingHandler{store: store}
}

func parseID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

func (h *TeachingHandler) includeHidden(c *fiber.Ctx) bool {
	return c.Query("includeHidden") == "true" && c.Locals("user_role") == "admin"
}
