package conversationService

import (
	"RomiioBot/internal/entity"
	"RomiioBot/pkg/catalog"
	"RomiioBot/pkg/nlp"
	"time"
)

type EventType string

const (
	EventCategorySelected EventType = "category_selected"
	EventBookingStarted   EventType = "booking_started"
	EventDetailsCaptured  EventType = "booking_details_captured"
	EventPaymentAck       EventType = "payment_acknowledged"
	EventBookingConfirmed EventType = "booking_confirmed"
)

// Event is a domain fact produced by a transition. The service turns events
// into telemetry, booking records and metrics after the state is committed.
type Event struct {
	Type      EventType
	Category  catalog.Category
	Package   catalog.PackageKey
	BookingID string
	Booking   *entity.Booking
}

type Input struct {
	Raw        string
	Normalized string
	HasMedia   bool
	Now        time.Time
}

type Outcome struct {
	Reply  string
	Silent bool
	Rule   string
	Events []Event
}

type IDGenerator func(t time.Time) (string, error)

type rule struct {
	name   string
	guard  func(s *entity.ConversationState, in Input) bool
	handle func(s *entity.ConversationState, in Input) (Outcome, error)
}

// Engine maps one inbound message and the current state to a reply. It
// mutates the state in place and never touches storage or transport.
type Engine struct {
	classifier nlp.IClassifier
	renderer   *Renderer
	newID      IDGenerator
	rules      []rule
}

func NewEngine(classifier nlp.IClassifier, renderer *Renderer, newID IDGenerator) *Engine {
	e := &Engine{
		classifier: classifier,
		renderer:   renderer,
		newID:      newID,
	}
	e.rules = e.buildRules()
	return e
}

// Step evaluates the rules in order and runs the first one whose guard holds.
// The last rule always matches.
func (e *Engine) Step(s *entity.ConversationState, in Input) (Outcome, error) {
	for _, r := range e.rules {
		if !r.guard(s, in) {
			continue
		}

		out, err := r.handle(s, in)
		if err != nil {
			return Outcome{}, err
		}
		if out.Rule == "" {
			out.Rule = r.name
		}
		s.Touch(in.Now)
		return out, nil
	}

	s.Touch(in.Now)
	return Outcome{Reply: e.renderer.Help(), Rule: "help"}, nil
}

func (e *Engine) Normalize(text string) string {
	return e.classifier.Normalize(text)
}

func reply(text string) (Outcome, error) {
	return Outcome{Reply: text}, nil
}
