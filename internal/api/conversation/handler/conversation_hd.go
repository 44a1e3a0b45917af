package conversationHandler

import (
	"RomiioBot/internal/api/conversation"
	contextPkg "RomiioBot/pkg/context"
	"RomiioBot/pkg/handlerUtil"
	"RomiioBot/pkg/log"
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

const requestTimeout = 10 * time.Second

func (h *ConversationHandler) Simulate(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), requestTimeout)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var req conversation.SimulateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}
	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"customer":   req.CustomerID,
	}).Debug("Simulating inbound message")

	if !h.middleware.AllowMessage(req.CustomerID) {
		return errHandler.Handle(ctx, requestID, conversation.ErrRateLimitExceeded, ctx.Path(), "simulate_message")
	}

	result, err := h.conversationService.HandleMessage(c, conversation.InboundMessage{
		MessageID:  requestID,
		CustomerID: req.CustomerID,
		Text:       req.Text,
		HasMedia:   req.HasMedia || req.MediaType != "",
		MediaType:  req.MediaType,
		ReceivedAt: time.Now(),
	})
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "simulate_message")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, conversation.SimulateResponse{
			Reply:     result.Reply,
			Silent:    result.Silent,
			Rule:      result.Rule,
			Phase:     result.Phase,
			Step:      result.Step,
			Category:  result.Category,
			Package:   result.Package,
			BookingID: result.BookingID,
		})
	}
}

func (h *ConversationHandler) GetSession(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), requestTimeout)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	session, err := h.conversationService.GetSession(c, ctx.Params("customer_id"))
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_session")
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, session)
}

func (h *ConversationHandler) EndSession(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), requestTimeout)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	if err := h.conversationService.EndSession(c, ctx.Params("customer_id")); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "end_session")
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusNoContent, nil)
}
