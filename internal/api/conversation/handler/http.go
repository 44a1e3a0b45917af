package conversationHandler

import (
	conversationService "RomiioBot/internal/api/conversation/service"
	"RomiioBot/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type ConversationHandler struct {
	log                 *logrus.Logger
	validator           *validator.Validate
	middleware          middleware.Middleware
	conversationService conversationService.IConversationService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	cs conversationService.IConversationService,
) *ConversationHandler {
	return &ConversationHandler{
		log:                 log,
		validator:           validate,
		middleware:          middleware,
		conversationService: cs,
	}
}

func (h *ConversationHandler) Start(srv fiber.Router) {
	conversations := srv.Group("/conversations")

	// development tooling, hidden in production
	conversations.Use(h.middleware.NewDevelopmentOnly)
	conversations.Use(h.middleware.NewRateLimiter)

	conversations.Post("/simulate", h.Simulate)
	conversations.Get("/sessions/:customer_id", h.GetSession)
	conversations.Delete("/sessions/:customer_id", h.EndSession)
}
