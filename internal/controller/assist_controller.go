package controller

import (
	"lexi-chat-be/internal/dto"
	"lexi-chat-be/internal/pkg/serverutils"
	"lexi-chat-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAssistController interface {
	RegisterRoutes(r fiber.Router)
	Explain(ctx *fiber.Ctx) error
	Suggestions(ctx *fiber.Ctx) error
}

type assistController struct {
	assist service.IAssistService
}

func NewAssistController(assist service.IAssistService) IAssistController {
	return &assistController{assist: assist}
}

func (c *assistController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/assist/v1")
	h.Post("/explain", c.Explain)
	h.Get("/suggestions", c.Suggestions)
}

func (c *assistController) Explain(ctx *fiber.Ctx) error {
	var req dto.ExplainRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.assist.Explain(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success explain content", res))
}

func (c *assistController) Suggestions(ctx *fiber.Ctx) error {
	res := c.assist.Suggestions(ctx.Context())
	return ctx.JSON(serverutils.SuccessResponse("Success get suggestions", res))
}
