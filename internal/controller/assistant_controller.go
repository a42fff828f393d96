package controller

import (
	"retail-assistant-be/internal/dto"
	"retail-assistant-be/internal/pkg/serverutils"
	"retail-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAssistantController interface {
	RegisterRoutes(r fiber.Router)
	CreateSession(ctx *fiber.Ctx) error
	SendMessage(ctx *fiber.Ctx) error
	GetHistory(ctx *fiber.Ctx) error
	GetAllSessions(ctx *fiber.Ctx) error
	GetCustomer(ctx *fiber.Ctx) error
}

type assistantController struct {
	service service.IAssistantService
}

func NewAssistantController(service service.IAssistantService) IAssistantController {
	return &assistantController{service: service}
}

func (c *assistantController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/assistant/v1")
	h.Post("/session", c.CreateSession)
	h.Post("/session/:id/message", c.SendMessage)
	h.Get("/session/:id/history", c.GetHistory)

	// Ops only
	h.Get("/sessions", serverutils.JwtMiddleware, c.GetAllSessions)
	h.Get("/customers/:identificacion", serverutils.JwtMiddleware, c.GetCustomer)
}

func (c *assistantController) CreateSession(ctx *fiber.Ctx) error {
	res, err := c.service.CreateSession(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create session", res))
}

func (c *assistantController) SendMessage(ctx *fiber.Ctx) error {
	sessionId := ctx.Params("id")

	var req dto.SendMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.SendMessage(ctx.Context(), sessionId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success send message", res))
}

func (c *assistantController) GetHistory(ctx *fiber.Ctx) error {
	sessionId := ctx.Params("id")

	res, err := c.service.GetChatHistory(ctx.Context(), sessionId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get history", res))
}

func (c *assistantController) GetAllSessions(ctx *fiber.Ctx) error {
	res, err := c.service.GetAllSessions(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get all sessions", res))
}

func (c *assistantController) GetCustomer(ctx *fiber.Ctx) error {
	identificacion := ctx.Params("identificacion")

	res, err := c.service.GetCustomer(ctx.Context(), identificacion)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get customer", res))
}
