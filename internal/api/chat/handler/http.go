package chatHandler

import (
	chatService "ChiTieuBackend/internal/api/chat/service"
	"ChiTieuBackend/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type ChatHandler struct {
	log         *logrus.Logger
	validator   *validator.Validate
	middleware  middleware.Middleware
	chatService chatService.IChatService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	chatService chatService.IChatService,
) *ChatHandler {
	return &ChatHandler{
		log:         log,
		validator:   validate,
		middleware:  middleware,
		chatService: chatService,
	}
}

func (h *ChatHandler) Start(srv fiber.Router) {
	chats := srv.Group("/chat")

	chats.Post("/messages", h.middleware.NewTokenMiddleware, h.SendMessage)
	chats.Get("/messages", h.middleware.NewTokenMiddleware, h.GetHistory)
	chats.Delete("/conversation", h.middleware.NewTokenMiddleware, h.ClearConversation)
}
