package controller

import (
	"lexi-chat-be/internal/dto"
	"lexi-chat-be/internal/pkg/serverutils"
	"lexi-chat-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// DefaultClientId stands in when the browser does not send a profile header.
// Each browser profile is an independent quota owner.
const DefaultClientId = "default"

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	GetAll(ctx *fiber.Ctx) error
	Active(ctx *fiber.Ctx) error
	SetActive(ctx *fiber.Ctx) error
	History(ctx *fiber.Ctx) error
	Send(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Clear(ctx *fiber.Ctx) error
	GetPrivacy(ctx *fiber.Ctx) error
	SetPrivacy(ctx *fiber.Ctx) error
}

type chatController struct {
	sessions service.ISessionService
	chat     service.IChatService
}

func NewChatController(sessions service.ISessionService, chat service.IChatService) IChatController {
	return &chatController{
		sessions: sessions,
		chat:     chat,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Post("", c.Create)
	h.Get("/sessions", c.GetAll)
	h.Get("/active", c.Active)
	h.Put("/active", c.SetActive)
	h.Get("/privacy", c.GetPrivacy)
	h.Put("/privacy", c.SetPrivacy)
	h.Get("/history/:id", c.History)
	h.Post("/send", c.Send)
	h.Delete("", c.Clear)
	h.Delete(":id", c.Delete)
}

func (c *chatController) Create(ctx *fiber.Ctx) error {
	res := c.sessions.CreateNewChat(ctx.Context())
	return ctx.JSON(serverutils.SuccessResponse("Success create chat session", res))
}

func (c *chatController) GetAll(ctx *fiber.Ctx) error {
	res := c.sessions.GetAllSessions(ctx.Context())
	return ctx.JSON(serverutils.SuccessResponse("Success get all chat sessions", res))
}

func (c *chatController) Active(ctx *fiber.Ctx) error {
	res := c.sessions.ActiveChat(ctx.Context())
	return ctx.JSON(serverutils.SuccessResponse("Success get active chat", res))
}

func (c *chatController) SetActive(ctx *fiber.Ctx) error {
	var req dto.SetActiveChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.sessions.SetActiveChat(ctx.Context(), req.ChatSessionId); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success set active chat", nil))
}

func (c *chatController) History(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid session id")
	}

	res, err := c.sessions.GetChatHistory(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get chat history", res))
}

func (c *chatController) Send(ctx *fiber.Ctx) error {
	var req dto.SendChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}
	if req.Message == "" && len(req.Attachments) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Message or attachments required")
	}

	res, err := c.chat.SendChat(ctx.Context(), clientId(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success send chat", res))
}

func (c *chatController) Delete(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid session id")
	}

	if err := c.sessions.DeleteChat(ctx.Context(), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete chat session", nil))
}

func (c *chatController) Clear(ctx *fiber.Ctx) error {
	c.sessions.ClearAllChats(ctx.Context())
	return ctx.JSON(serverutils.SuccessResponse[any]("Success clear chat sessions", nil))
}

func (c *chatController) GetPrivacy(ctx *fiber.Ctx) error {
	res := dto.PrivacyModeResponse{Enabled: c.sessions.PrivacyMode()}
	return ctx.JSON(serverutils.SuccessResponse("Success get privacy mode", res))
}

func (c *chatController) SetPrivacy(ctx *fiber.Ctx) error {
	var req dto.SetPrivacyModeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	c.sessions.SetPrivacyMode(ctx.Context(), req.Enabled)
	res := dto.PrivacyModeResponse{Enabled: req.Enabled}
	return ctx.JSON(serverutils.SuccessResponse("Success set privacy mode", res))
}

func clientId(ctx *fiber.Ctx) string {
	if id := ctx.Get("X-Client-Id"); id != "" {
		return id
	}
	return DefaultClientId
}
