package handler

import (
	"lexi-chat-be/internal/pkg/logger"
	internalWS "lexi-chat-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// EventHandler exposes the session event feed over a websocket.
type EventHandler struct {
	hub    *internalWS.Hub
	logger logger.ILogger
}

func NewEventHandler(hub *internalWS.Hub, log logger.ILogger) *EventHandler {
	return &EventHandler{
		hub:    hub,
		logger: log,
	}
}

func (h *EventHandler) RegisterRoutes(r fiber.Router) {
	g := r.Group("/events/v1")
	g.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	g.Get("/ws", websocket.New(func(conn *websocket.Conn) {
		internalWS.ServeWs(h.hub, conn)
	}))
}
