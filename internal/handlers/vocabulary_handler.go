package handlers

import (
	"vocabulary/internal/pipeline"

	"github.com/gofiber/fiber/v2"
)

// VocabularyHandler handles HTTP requests for vocabulary entries.
type VocabularyHandler struct {
	pipeline *pipeline.VocabularyPipeline
}

func NewVocabularyHandler(p *pipeline.VocabularyPipeline) *VocabularyHandler {
	return &VocabularyHandler{pipeline: p}
}

// RegisterRoutes registers the vocabulary routes with the Fiber router.
func (h *VocabularyHandler) RegisterRoutes(router fiber.Router) {
	vocabRoutes := router.Group("/vocabularies")
	vocabRoutes.Get("/", h.HandleGetVocabularies)
	vocabRoutes.Get("/user/:userId", h.HandleGetVocabulariesByUser)
	vocabRoutes.Get("/:vocabularyId", h.HandleGetVocabularyByID)
	vocabRoutes.Post("/", h.HandleCreateVocabulary)
	vocabRoutes.Patch("/:vocabularyId", h.HandleUpdateVocabulary)
	vocabRoutes.Delete("/:vocabularyId", h.HandleDeleteVocabulary)
}

func (h *VocabularyHandler) HandleGetVocabularies(c *fiber.Ctx) error {
	return respond(c, h.pipeline.List(c.UserContext()))
}

// HandleGetVocabulariesByUser lists the entries owned by one user.
func (h *VocabularyHandler) HandleGetVocabulariesByUser(c *fiber.Ctx) error {
	return respond(c, h.pipeline.ListByUser(c.UserContext(), c.Params("userId")))
}

func (h *VocabularyHandler) HandleGetVocabularyByID(c *fiber.Ctx) error {
	return respond(c, h.pipeline.Get(c.UserContext(), c.Params("vocabularyId")))
}

func (h *VocabularyHandler) HandleCreateVocabulary(c *fiber.Ctx) error {
	return respond(c, h.pipeline.Create(c.UserContext(), c.Body()))
}

func (h *VocabularyHandler) HandleUpdateVocabulary(c *fiber.Ctx) error {
	return respond(c, h.pipeline.Update(c.UserContext(), c.Params("vocabularyId"), c.Body()))
}

func (h *VocabularyHandler) HandleDeleteVocabulary(c *fiber.Ctx) error {
	return respond(c, h.pipeline.Delete(c.UserContext(), c.Params("vocabularyId")))
}
