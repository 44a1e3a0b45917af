package conversationService

import (
	"RomiioBot/internal/api/conversation"
	"RomiioBot/internal/entity"
	contextPkg "RomiioBot/pkg/context"
	"RomiioBot/pkg/log"
	"RomiioBot/pkg/session"
	"RomiioBot/pkg/telemetry"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

func (s *conversationService) HandleMessage(ctx context.Context, msg conversation.InboundMessage) (*conversation.Result, error) {
	requestID := contextPkg.GetRequestID(ctx)
	start := time.Now()
	defer func() {
		s.metrics.ProcessingTime.Observe(time.Since(start).Seconds())
	}()

	if strings.TrimSpace(msg.CustomerID) == "" {
		return nil, conversation.ErrInvalidMessage
	}

	unlock := s.locks.Lock(msg.CustomerID)
	defer unlock()

	now := s.now()
	in := Input{
		Raw:        msg.Text,
		Normalized: s.engine.Normalize(msg.Text),
		HasMedia:   msg.HasMedia,
		Now:        now,
	}

	s.telemetry.Log(telemetry.Event{
		"event":      "message_received",
		"customer":   msg.CustomerID,
		"message_id": msg.MessageID,
		"text":       msg.Text,
		"has_media":  msg.HasMedia,
		"media_type": msg.MediaType,
	})

	var outcome Outcome
	state, err := s.store.Update(ctx, msg.CustomerID, now, func(st *entity.ConversationState) error {
		out, err := s.step(st, in)
		if err != nil {
			return err
		}
		outcome = out
		return nil
	})
	if err != nil {
		if errors.Is(err, conversation.ErrHandlerFault) {
			s.metrics.HandlerFaults.Inc()
			traceID := log.ErrorWithTraceID(log.Fields{
				"request_id": requestID,
				"customer":   msg.CustomerID,
				"error":      err.Error(),
			}, "[conversationService.HandleMessage] failed to handle message")
			return nil, fmt.Errorf("%w (trace %s)", err, traceID)
		}

		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"customer":   msg.CustomerID,
			"error":      err.Error(),
		}).Error("Failed to update conversation state")
		return nil, fmt.Errorf("%w: %v", conversation.ErrSessionUnavailable, err)
	}

	s.metrics.Transitions.WithLabelValues(outcome.Rule).Inc()
	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"customer":   msg.CustomerID,
		"rule":       outcome.Rule,
		"phase":      state.Phase.String(),
		"step":       state.Step.String(),
	}).Debug("Conversation step handled")

	s.dispatch(ctx, state, outcome.Events)

	result := &conversation.Result{
		Reply:     outcome.Reply,
		Silent:    outcome.Silent,
		Rule:      outcome.Rule,
		Phase:     state.Phase.String(),
		Category:  string(state.Category),
		Package:   string(state.Package),
		BookingID: state.BookingID,
	}
	if state.Step != entity.StepNone {
		result.Step = state.Step.String()
	}
	return result, nil
}

// step runs the engine and turns a panic into a handler fault so the store
// discards the partially mutated state.
func (s *conversationService) step(st *entity.ConversationState, in Input) (out Outcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: panic: %v", conversation.ErrHandlerFault, r)
		}
	}()

	out, err = s.engine.Step(st, in)
	if err != nil {
		return Outcome{}, fmt.Errorf("%w: %v", conversation.ErrHandlerFault, err)
	}
	return out, nil
}

func (s *conversationService) GetSession(ctx context.Context, customerID string) (*conversation.SessionResponse, error) {
	state, err := s.store.Get(ctx, customerID)
	if errors.Is(err, session.ErrSessionNotFound) {
		return nil, conversation.ErrSessionNotFound
	}
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"customer":   customerID,
			"error":      err.Error(),
		}).Error("Failed to load conversation state")
		return nil, fmt.Errorf("%w: %v", conversation.ErrSessionUnavailable, err)
	}
	return toSessionResponse(state), nil
}

func (s *conversationService) EndSession(ctx context.Context, customerID string) error {
	unlock := s.locks.Lock(customerID)
	defer unlock()

	if _, err := s.store.Get(ctx, customerID); err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			return conversation.ErrSessionNotFound
		}
		return fmt.Errorf("%w: %v", conversation.ErrSessionUnavailable, err)
	}
	if err := s.store.Delete(ctx, customerID); err != nil {
		return fmt.Errorf("%w: %v", conversation.ErrSessionUnavailable, err)
	}
	return nil
}

// dispatch fans the committed events out to telemetry, metrics and booking
// records. Failures here never reach the customer.
func (s *conversationService) dispatch(ctx context.Context, state *entity.ConversationState, events []Event) {
	for _, ev := range events {
		s.metrics.BookingEvents.WithLabelValues(string(ev.Type)).Inc()

		record := telemetry.Event{
			"event":      string(ev.Type),
			"customer":   state.CustomerID,
			"category":   string(ev.Category),
			"package":    string(ev.Package),
			"booking_id": ev.BookingID,
		}
		if ev.Booking != nil {
			record["price"] = ev.Booking.Price
			record["date"] = ev.Booking.Info.Date
			record["time"] = ev.Booking.Info.Time
			record["city"] = ev.Booking.Info.City
		}
		s.telemetry.Log(record)

		s.recordBooking(ctx, ev)
	}
}

func (s *conversationService) recordBooking(ctx context.Context, ev Event) {
	if s.bookingRepo == nil || ev.BookingID == "" {
		return
	}

	var status entity.BookingStatus
	switch ev.Type {
	case EventDetailsCaptured:
	case EventPaymentAck:
		status = entity.BookingStatusVerifying
	case EventBookingConfirmed:
		status = entity.BookingStatusConfirmed
	default:
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.sideEffects)
	defer cancel()

	repo, err := s.bookingRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"error":      err.Error(),
		}).Warn("Failed to create repository client")
		return
	}

	if ev.Type == EventDetailsCaptured && ev.Booking != nil {
		err = repo.Bookings.CreateBooking(ctx, *ev.Booking)
	} else {
		err = repo.Bookings.UpdateBookingStatus(ctx, ev.BookingID, status)
	}
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"booking_id": ev.BookingID,
			"event":      string(ev.Type),
			"error":      err.Error(),
		}).Warn("Failed to record booking")
	}
}
