package conversationHandler

import (
	"RomiioBot/internal/api/conversation"
	conversationService "RomiioBot/internal/api/conversation/service"
	"RomiioBot/internal/middleware"
	contextPkg "RomiioBot/pkg/context"
	"RomiioBot/pkg/log"
	"RomiioBot/pkg/metrics"
	"RomiioBot/pkg/response"
	"RomiioBot/pkg/whatsapp"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// WhatsappHandler feeds inbound WhatsApp messages through the conversation
// service and sends the replies back to the same chat.
type WhatsappHandler struct {
	log                 *logrus.Logger
	middleware          middleware.Middleware
	conversationService conversationService.IConversationService
	sender              whatsapp.IWhatsappSender
	metrics             *metrics.Metrics
	timeout             time.Duration
	wg                  sync.WaitGroup
}

func NewWhatsappHandler(
	log *logrus.Logger,
	middleware middleware.Middleware,
	cs conversationService.IConversationService,
	sender whatsapp.IWhatsappSender,
	metrics *metrics.Metrics,
) *WhatsappHandler {
	return &WhatsappHandler{
		log:                 log,
		middleware:          middleware,
		conversationService: cs,
		sender:              sender,
		metrics:             metrics,
		timeout:             30 * time.Second,
	}
}

func (h *WhatsappHandler) Start() {
	h.sender.OnMessage(h.HandleMessage)
}

// HandleMessage processes every message in its own goroutine so a slow send
// only holds up that customer.
func (h *WhatsappHandler) HandleMessage(msg whatsapp.Message) {
	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		h.process(msg)
	}()
}

// Wait blocks until in-flight messages finish or ctx ends.
func (h *WhatsappHandler) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		h.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (h *WhatsappHandler) process(msg whatsapp.Message) {
	ctx, cancel := context.WithTimeout(contextPkg.WithRequestID(context.Background(), msg.ID), h.timeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			h.metrics.HandlerFaults.Inc()
			log.ErrorWithTraceID(log.Fields{
				"request_id": msg.ID,
				"customer":   msg.Chat,
				"error":      fmt.Sprint(r),
			}, "[WhatsappHandler.process] recovered from panic")
			h.send(ctx, msg, conversation.ApologyText)
		}
	}()

	h.metrics.MessagesReceived.WithLabelValues("whatsapp").Inc()

	if !h.middleware.AllowMessage(msg.Chat) {
		h.metrics.RateLimited.Inc()
		h.log.WithFields(logrus.Fields{
			"request_id": msg.ID,
			"customer":   msg.Chat,
		}).Warn("Dropping message over the rate limit")
		return
	}

	h.log.WithFields(logrus.Fields{
		"request_id": msg.ID,
		"customer":   msg.Chat,
		"has_media":  msg.HasMedia,
	}).Debug("Received WhatsApp message")

	result, err := h.conversationService.HandleMessage(ctx, conversation.InboundMessage{
		MessageID:  msg.ID,
		CustomerID: msg.Chat,
		Text:       msg.Text,
		HasMedia:   msg.HasMedia,
		MediaType:  msg.MediaType,
		ReceivedAt: msg.ReceivedAt,
	})
	if err != nil {
		if errors.Is(err, conversation.ErrInvalidMessage) {
			return
		}
		h.log.WithFields(logrus.Fields{
			"request_id": msg.ID,
			"customer":   msg.Chat,
			"status":     response.StatusOf(err, 500),
			"error":      err.Error(),
		}).Warn("Conversation failed, sending apology")
		h.send(ctx, msg, conversation.ApologyText)
		return
	}

	if result.Silent || result.Reply == "" {
		return
	}
	h.send(ctx, msg, result.Reply)
}

func (h *WhatsappHandler) send(ctx context.Context, msg whatsapp.Message, text string) {
	if err := h.sender.SendMessage(ctx, msg.Chat, text); err != nil {
		h.metrics.RepliesFailed.Inc()
		h.log.WithFields(logrus.Fields{
			"request_id": msg.ID,
			"customer":   msg.Chat,
			"error":      err.Error(),
		}).Error("Failed to send WhatsApp reply")
		return
	}
	h.metrics.RepliesSent.Inc()
}
