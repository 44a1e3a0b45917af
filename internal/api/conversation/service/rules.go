package conversationService

import (
	"RomiioBot/internal/entity"
	"RomiioBot/pkg/catalog"
	"RomiioBot/pkg/nlp"
	"fmt"
)

const (
	RuleDoneRepeat      = "done_repeat"
	RulePaymentAck      = "payment_ack"
	RuleBookingInfo     = "booking_info"
	RuleSpecializedInfo = "specialized_info"
	RulePaymentConfirm  = "payment_confirm"
	RuleMainMenu        = "main_menu"
	RuleShortcut        = "shortcut"
	RulePackageSelect   = "package_select"
	RuleCommand         = "command"
	RuleCategorySelect  = "category_select"
	RuleHelp            = "help"
)

func (e *Engine) buildRules() []rule {
	return []rule{
		{name: RuleDoneRepeat, guard: e.isRepeatedDone, handle: e.ignore},
		{name: RulePaymentAck, guard: e.isPaymentAck, handle: e.acknowledgePayment},
		{name: RuleBookingInfo, guard: inPhase(entity.PhaseCollectingBookingInfo), handle: e.collectBookingInfo},
		{name: RuleSpecializedInfo, guard: inPhase(entity.PhaseCollectingSpecializedInfo), handle: e.collectSpecializedInfo},
		{name: RulePaymentConfirm, guard: e.isPaymentConfirmation, handle: e.confirmPayment},
		{name: RuleMainMenu, guard: e.isMenuRequest, handle: e.showMainMenu},
		{name: RuleShortcut, guard: isShortcut, handle: e.showShortcut},
		{name: RulePackageSelect, guard: e.hasSelectedCategory, handle: e.selectPackage},
		{name: RuleCommand, guard: e.isInfoCommand, handle: e.runCommand},
		{name: RuleCategorySelect, guard: e.isCategoryChoice, handle: e.selectCategory},
		{name: RuleHelp, guard: always, handle: e.showHelp},
	}
}

func inPhase(phases ...entity.Phase) func(*entity.ConversationState, Input) bool {
	return func(s *entity.ConversationState, _ Input) bool {
		for _, p := range phases {
			if s.Phase == p {
				return true
			}
		}
		return false
	}
}

func always(*entity.ConversationState, Input) bool { return true }

func (e *Engine) isDone(in Input) bool {
	return e.classifier.HasWord(in.Normalized, "done")
}

func (e *Engine) isRepeatedDone(s *entity.ConversationState, in Input) bool {
	return s.FinalMessageSent && e.isDone(in)
}

func (e *Engine) isPaymentAck(s *entity.ConversationState, in Input) bool {
	if e.isDone(in) && inPhase(entity.PhaseAwaitingPaymentAck, entity.PhasePaymentPending)(s, in) {
		return true
	}
	// a payment screenshot counts as an acknowledgment
	return s.Phase == entity.PhaseAwaitingPaymentAck && in.HasMedia
}

func (e *Engine) isPaymentConfirmation(s *entity.ConversationState, in Input) bool {
	return s.Phase == entity.PhasePaymentPending && e.classifier.IsPaymentMention(in.Normalized)
}

func (e *Engine) isMenuRequest(_ *entity.ConversationState, in Input) bool {
	if e.classifier.IsGreeting(in.Normalized) {
		return true
	}
	intent, ok := e.classifier.DetectCommand(in.Normalized)
	return ok && intent == nlp.IntentMenu
}

func isShortcut(_ *entity.ConversationState, in Input) bool {
	switch in.Normalized {
	case "5", "6", "7":
		return true
	}
	return false
}

func (e *Engine) hasSelectedCategory(s *entity.ConversationState, _ Input) bool {
	return s.Phase == entity.PhaseCategorySelected && s.HasCategory()
}

func (e *Engine) isInfoCommand(_ *entity.ConversationState, in Input) bool {
	intent, ok := e.classifier.DetectCommand(in.Normalized)
	return ok && intent != nlp.IntentMenu
}

func (e *Engine) isCategoryChoice(s *entity.ConversationState, in Input) bool {
	if s.Phase != entity.PhaseMain {
		return false
	}
	_, ok := e.classifier.DetectCategory(in.Normalized)
	return ok
}

func (e *Engine) ignore(*entity.ConversationState, Input) (Outcome, error) {
	return Outcome{Silent: true}, nil
}

func (e *Engine) acknowledgePayment(s *entity.ConversationState, _ Input) (Outcome, error) {
	ev := Event{
		Type:      EventPaymentAck,
		Category:  s.Category,
		Package:   s.Package,
		BookingID: s.BookingID,
	}
	s.AcknowledgePayment()

	return Outcome{
		Reply:  textVerifyingPayment,
		Events: []Event{ev},
	}, nil
}

func (e *Engine) confirmPayment(s *entity.ConversationState, _ Input) (Outcome, error) {
	ev := Event{
		Type:      EventBookingConfirmed,
		Category:  s.Category,
		Package:   s.Package,
		BookingID: s.BookingID,
	}
	s.Complete()

	return Outcome{
		Reply:  textPaymentConfirmed,
		Events: []Event{ev},
	}, nil
}

func (e *Engine) showMainMenu(s *entity.ConversationState, _ Input) (Outcome, error) {
	s.Reset()
	return reply(e.renderer.MainMenu())
}

func (e *Engine) showShortcut(_ *entity.ConversationState, in Input) (Outcome, error) {
	switch in.Normalized {
	case "5":
		return reply(e.renderer.About())
	case "6":
		return reply(e.renderer.Contact())
	default:
		return reply(e.renderer.QuickBooking())
	}
}

func (e *Engine) runCommand(_ *entity.ConversationState, in Input) (Outcome, error) {
	intent, _ := e.classifier.DetectCommand(in.Normalized)
	switch intent {
	case nlp.IntentAbout:
		return reply(e.renderer.About())
	case nlp.IntentContact:
		return reply(e.renderer.Contact())
	case nlp.IntentBook:
		return reply(e.renderer.QuickBooking())
	}
	return reply(e.renderer.Help())
}

func (e *Engine) selectCategory(s *entity.ConversationState, in Input) (Outcome, error) {
	category, _ := e.classifier.DetectCategory(in.Normalized)
	s.SelectCategory(category)

	return Outcome{
		Reply:  e.renderer.Packages(category),
		Events: []Event{{Type: EventCategorySelected, Category: category}},
	}, nil
}

func (e *Engine) selectPackage(s *entity.ConversationState, in Input) (Outcome, error) {
	key := e.classifier.MapPackageKey(in.Normalized, s.Category)
	pkg, ok := catalog.Lookup(s.Category, key)
	if !ok {
		return Outcome{Reply: textInvalidOption, Rule: "package_invalid"}, nil
	}

	bookingID, err := e.newID(in.Now)
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to generate booking id: %w", err)
	}

	first, prompt := entity.StepDate, textAskDate
	if catalog.IsSpecialized(s.Category) {
		first, prompt = specializedStart(pkg.Key)
	}
	s.StartBooking(pkg.Key, bookingID, first)

	return Outcome{
		Reply: prompt,
		Events: []Event{{
			Type:      EventBookingStarted,
			Category:  s.Category,
			Package:   pkg.Key,
			BookingID: bookingID,
		}},
	}, nil
}

func (e *Engine) showHelp(*entity.ConversationState, Input) (Outcome, error) {
	return reply(e.renderer.Help())
}
