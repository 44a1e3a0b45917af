package conversationService

import (
	"RomiioBot/internal/entity"
	"RomiioBot/pkg/catalog"
	"strings"
)

// specializedStart returns the first step and prompt of a special package.
func specializedStart(key catalog.PackageKey) (entity.Step, string) {
	switch key {
	case catalog.PackageBike:
		return entity.StepBikeLocation, textAskBikeLocation
	case catalog.PackageMovie:
		return entity.StepMovieDate, textAskMovieDate
	case catalog.PackageTravel:
		return entity.StepTravelStart, textAskTravelStart
	default:
		return entity.StepWeekendDate, textAskWeekendDate
	}
}

func (e *Engine) collectSpecializedInfo(s *entity.ConversationState, in Input) (Outcome, error) {
	text := strings.TrimSpace(in.Raw)

	switch s.Step {
	case entity.StepBikeLocation:
		if !hasMinLength(text, minPickupLength) {
			return reply(textBikeLocation)
		}
		s.Info.PickupLocation = text
		s.AdvanceTo(entity.StepBikeDate)
		return reply(textAskBikeDate)

	case entity.StepBikeDate:
		if !hasMinLength(text, minDetailsLength) {
			return reply(textAskBikeDate)
		}
		s.Info.Date = text
		return e.finishSpecialized(s, in)

	case entity.StepMovieDate:
		if !hasMinLength(text, minDetailsLength) {
			return reply(textAskMovieDate)
		}
		s.Info.Date = text
		s.AdvanceTo(entity.StepMovieDetails)
		return reply(textAskMovieDetails)

	case entity.StepMovieDetails:
		if !hasMinLength(text, minDetailsLength) {
			return reply(textAskMovieDetails)
		}
		s.Info.CinemaDetails = text
		return e.finishSpecialized(s, in)

	case entity.StepTravelStart:
		if !hasMinLength(text, minDetailsLength) {
			return reply(textAskTravelStart)
		}
		s.Info.TravelFrom = text
		s.AdvanceTo(entity.StepTravelEnd)
		return reply(textAskTravelEnd)

	case entity.StepTravelEnd:
		if !hasMinLength(text, minDetailsLength) {
			return reply(textAskTravelEnd)
		}
		s.Info.TravelTo = text
		return e.finishSpecialized(s, in)

	case entity.StepWeekendDate:
		if !hasMinLength(text, minDetailsLength) {
			return reply(textAskWeekendDate)
		}
		s.Info.Date = text
		s.AdvanceTo(entity.StepWeekendTime)
		return reply(textAskWeekendTime)

	case entity.StepWeekendTime:
		if !hasMinLength(text, minDetailsLength) {
			return reply(textAskWeekendTime)
		}
		s.Info.Time = text
		return e.finishSpecialized(s, in)
	}

	return reply(textMissingInfo)
}

func (e *Engine) finishSpecialized(s *entity.ConversationState, in Input) (Outcome, error) {
	booking := newBooking(s, in)
	summary := e.renderer.SpecializedSummary(s)
	s.AwaitPayment()

	return Outcome{
		Reply:  summary,
		Events: []Event{detailsCaptured(booking)},
	}, nil
}
