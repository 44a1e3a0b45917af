package conversationService

import (
	"RomiioBot/internal/api/conversation"
	conversationRepository "RomiioBot/internal/api/conversation/repository"
	"RomiioBot/internal/entity"
	"RomiioBot/pkg/metrics"
	"RomiioBot/pkg/session"
	"RomiioBot/pkg/telemetry"
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

type IConversationService interface {
	HandleMessage(ctx context.Context, msg conversation.InboundMessage) (*conversation.Result, error)
	GetSession(ctx context.Context, customerID string) (*conversation.SessionResponse, error)
	EndSession(ctx context.Context, customerID string) error
}

type conversationService struct {
	log         *logrus.Logger
	store       session.Store
	engine      *Engine
	bookingRepo conversationRepository.Repository
	telemetry   telemetry.ILogger
	metrics     *metrics.Metrics
	locks       *keyedMutex
	now         func() time.Time
	sideEffects time.Duration
}

type Option func(*conversationService)

func WithClock(now func() time.Time) Option {
	return func(s *conversationService) {
		s.now = now
	}
}

// WithBookingRepository enables booking records. Without it bookings only
// live in the conversation state.
func WithBookingRepository(repo conversationRepository.Repository) Option {
	return func(s *conversationService) {
		s.bookingRepo = repo
	}
}

func NewConversationService(
	log *logrus.Logger,
	store session.Store,
	engine *Engine,
	telemetry telemetry.ILogger,
	metrics *metrics.Metrics,
	opts ...Option,
) IConversationService {
	s := &conversationService{
		log:         log,
		store:       store,
		engine:      engine,
		telemetry:   telemetry,
		metrics:     metrics,
		locks:       newKeyedMutex(),
		now:         time.Now,
		sideEffects: 5 * time.Second,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func toSessionResponse(state *entity.ConversationState) *conversation.SessionResponse {
	info := map[string]string{}
	for k, v := range map[string]string{
		"date":            state.Info.Date,
		"time":            state.Info.Time,
		"city":            state.Info.City,
		"pickup_location": state.Info.PickupLocation,
		"cinema_details":  state.Info.CinemaDetails,
		"travel_from":     state.Info.TravelFrom,
		"travel_to":       state.Info.TravelTo,
	} {
		if v != "" {
			info[k] = v
		}
	}

	resp := &conversation.SessionResponse{
		CustomerID:       state.CustomerID,
		Phase:            state.Phase.String(),
		Category:         string(state.Category),
		Package:          string(state.Package),
		BookingID:        state.BookingID,
		BookingInfo:      info,
		FinalMessageSent: state.FinalMessageSent,
		LastActivity:     state.LastActivity,
	}
	if state.Step != entity.StepNone {
		resp.Step = state.Step.String()
	}
	return resp
}
