package controller

import (
	"retail-assistant-be/internal/dto"
	"retail-assistant-be/internal/pkg/serverutils"
	"retail-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IKnowledgeController interface {
	RegisterRoutes(r fiber.Router)
	Ingest(ctx *fiber.Ctx) error
	GetAll(ctx *fiber.Ctx) error
	Search(ctx *fiber.Ctx) error
}

type knowledgeController struct {
	service service.IKnowledgeService
}

func NewKnowledgeController(service service.IKnowledgeService) IKnowledgeController {
	return &knowledgeController{service: service}
}

func (c *knowledgeController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/knowledge/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("/chunks", c.Ingest)
	h.Get("/chunks", c.GetAll)
	h.Post("/search", c.Search)
}

func (c *knowledgeController) Ingest(ctx *fiber.Ctx) error {
	var req dto.IngestChunksRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.IngestChunks(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success ingest chunks", res))
}

func (c *knowledgeController) GetAll(ctx *fiber.Ctx) error {
	source := ctx.Query("source")

	res, err := c.service.GetChunks(ctx.Context(), source)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get chunks", res))
}

func (c *knowledgeController) Search(ctx *fiber.Ctx) error {
	var req dto.SearchKnowledgeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Search(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success search knowledge", res))
}
