package handlers

import (
	"vocabulary/internal/dto"
	vgraphql "vocabulary/internal/graphql"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"
)

// GraphQLHandler serves POST /graphql.
type GraphQLHandler struct {
	schema graphql.Schema
}

func NewGraphQLHandler(schema graphql.Schema) *GraphQLHandler {
	return &GraphQLHandler{schema: schema}
}

// RegisterRoutes registers POST /graphql behind the given middleware.
func (h *GraphQLHandler) RegisterRoutes(router fiber.Router, middleware ...fiber.Handler) {
	router.Post("/graphql", append(middleware, h.HandleGraphQL)...)
}

func (h *GraphQLHandler) HandleGraphQL(c *fiber.Ctx) error {
	var req vgraphql.Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("Invalid request: " + err.Error()))
	}
	if req.Query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("Invalid request: missing query"))
	}

	ctx := c.UserContext()
	if hub := sentryfiber.GetHubFromContext(c); hub != nil {
		ctx = sentry.SetHubOnContext(ctx, hub)
	}
	return c.JSON(vgraphql.Execute(ctx, h.schema, req))
}
