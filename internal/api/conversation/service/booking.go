package conversationService

import (
	"RomiioBot/internal/entity"
	"RomiioBot/pkg/catalog"
	"strings"
)

func (e *Engine) collectBookingInfo(s *entity.ConversationState, in Input) (Outcome, error) {
	text := strings.TrimSpace(in.Raw)

	switch s.Step {
	case entity.StepDate:
		date, ok := ParseFutureDate(text, in.Now)
		if !ok {
			return reply(textInvalidDate)
		}
		s.Info.Date = date.Format(dateLayout)
		s.AdvanceTo(entity.StepTime)
		return reply(textAskTime)

	case entity.StepTime:
		if !hasMinLength(text, minTimeLength) {
			return reply(textAskTime)
		}
		s.Info.Time = text
		if catalog.SkipsCity(s.Category) {
			return e.finishBookingInfo(s, in)
		}
		s.AdvanceTo(entity.StepCity)
		return reply(e.renderer.AskCity())

	case entity.StepCity:
		city, ok := MatchCity(text)
		if !ok {
			return reply(textInvalidCity)
		}
		s.Info.City = city
		return e.finishBookingInfo(s, in)
	}

	return reply(textMissingInfo)
}

func (e *Engine) finishBookingInfo(s *entity.ConversationState, in Input) (Outcome, error) {
	booking := newBooking(s, in)
	s.AwaitPaymentAck()

	return Outcome{
		Reply:  textPaymentQR,
		Events: []Event{detailsCaptured(booking)},
	}, nil
}

func newBooking(s *entity.ConversationState, in Input) *entity.Booking {
	booking := &entity.Booking{
		ID:         s.BookingID,
		CustomerID: s.CustomerID,
		Category:   s.Category,
		PackageKey: s.Package,
		Info:       s.Info,
		Status:     entity.BookingStatusAwaitingPayment,
		CreatedAt:  in.Now,
		UpdatedAt:  in.Now,
	}
	if pkg, ok := s.SelectedPackage(); ok {
		booking.PackageName = pkg.Name
		booking.Price = pkg.Price
	}
	return booking
}

func detailsCaptured(b *entity.Booking) Event {
	return Event{
		Type:      EventDetailsCaptured,
		Category:  b.Category,
		Package:   b.PackageKey,
		BookingID: b.ID,
		Booking:   b,
	}
}
