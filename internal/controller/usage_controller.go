package controller

import (
	"lexi-chat-be/internal/pkg/serverutils"
	"lexi-chat-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IUsageController interface {
	RegisterRoutes(r fiber.Router)
	ThinkLonger(ctx *fiber.Ctx) error
}

type usageController struct {
	usage service.IUsageService
}

func NewUsageController(usage service.IUsageService) IUsageController {
	return &usageController{usage: usage}
}

func (c *usageController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/usage/v1")
	h.Get("/think-longer", c.ThinkLonger)
}

func (c *usageController) ThinkLonger(ctx *fiber.Ctx) error {
	res := c.usage.GetUsage(ctx.Context(), clientId(ctx))
	return ctx.JSON(serverutils.SuccessResponse("Success get think-longer usage", res))
}
