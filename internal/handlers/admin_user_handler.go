package handlers

import (
	"vocabulary/internal/pipeline"

	"github.com/gofiber/fiber/v2"
)

// AdminUserHandler handles HTTP requests for admin users.
type AdminUserHandler struct {
	pipeline *pipeline.AdminUserPipeline
}

func NewAdminUserHandler(p *pipeline.AdminUserPipeline) *AdminUserHandler {
	return &AdminUserHandler{pipeline: p}
}

// RegisterRoutes registers the admin user routes under /admin/users.
func (h *AdminUserHandler) RegisterRoutes(router fiber.Router) {
	adminRoutes := router.Group("/admin/users")
	adminRoutes.Get("/", h.HandleGetAdminUsers)
	adminRoutes.Get("/:adminUserId", h.HandleGetAdminUserByID)
	adminRoutes.Post("/", h.HandleCreateAdminUser)
	adminRoutes.Patch("/:adminUserId", h.HandleUpdateAdminUser)
	adminRoutes.Delete("/:adminUserId", h.HandleDeleteAdminUser)
}

func (h *AdminUserHandler) HandleGetAdminUsers(c *fiber.Ctx) error {
	return respond(c, h.pipeline.List(c.UserContext()))
}

func (h *AdminUserHandler) HandleGetAdminUserByID(c *fiber.Ctx) error {
	return respond(c, h.pipeline.Get(c.UserContext(), c.Params("adminUserId")))
}

func (h *AdminUserHandler) HandleCreateAdminUser(c *fiber.Ctx) error {
	return respond(c, h.pipeline.Create(c.UserContext(), c.Body()))
}

func (h *AdminUserHandler) HandleUpdateAdminUser(c *fiber.Ctx) error {
	return respond(c, h.pipeline.Update(c.UserContext(), c.Params("adminUserId"), c.Body()))
}

func (h *AdminUserHandler) HandleDeleteAdminUser(c *fiber.Ctx) error {
	return respond(c, h.pipeline.Delete(c.UserContext(), c.Params("adminUserId")))
}
