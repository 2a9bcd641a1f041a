package handlers

import (
	"vocabulary/internal/pipeline"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for users.
type UserHandler struct {
	pipeline *pipeline.UserPipeline
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(p *pipeline.UserPipeline) *UserHandler {
	return &UserHandler{pipeline: p}
}

// RegisterRoutes registers the user routes with the Fiber router.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	userRoutes := router.Group("/users")
	userRoutes.Get("/", h.HandleGetUsers)
	userRoutes.Get("/:userId", h.HandleGetUserByID)
	userRoutes.Post("/", h.HandleCreateUser)
	userRoutes.Patch("/:userId", h.HandleUpdateUser)
	userRoutes.Delete("/:userId", h.HandleDeleteUser)
}

func (h *UserHandler) HandleGetUsers(c *fiber.Ctx) error {
	return respond(c, h.pipeline.List(c.UserContext()))
}

func (h *UserHandler) HandleGetUserByID(c *fiber.Ctx) error {
	return respond(c, h.pipeline.Get(c.UserContext(), c.Params("userId")))
}

func (h *UserHandler) HandleCreateUser(c *fiber.Ctx) error {
	return respond(c, h.pipeline.Create(c.UserContext(), c.Body()))
}

// HandleUpdateUser applies a partial update; only the fields in the body change.
func (h *UserHandler) HandleUpdateUser(c *fiber.Ctx) error {
	return respond(c, h.pipeline.Update(c.UserContext(), c.Params("userId"), c.Body()))
}

// HandleDeleteUser deletes a user and answers with the removed record.
func (h *UserHandler) HandleDeleteUser(c *fiber.Ctx) error {
	return respond(c, h.pipeline.Delete(c.UserContext(), c.Params("userId")))
}
