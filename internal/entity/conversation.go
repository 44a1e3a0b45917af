package entity

import (
	"RomiioBot/pkg/catalog"
	"time"
)

type Phase uint8

const (
	PhaseMain                      Phase = 0
	PhaseCategorySelected          Phase = 1
	PhaseCollectingBookingInfo     Phase = 2
	PhaseCollectingSpecializedInfo Phase = 3
	PhaseAwaitingPaymentAck        Phase = 4
	PhasePaymentPending            Phase = 5
	PhaseCompleted                 Phase = 6
)

var PhaseMap = map[Phase]string{
	PhaseMain:                      "main",
	PhaseCategorySelected:          "category_selected",
	PhaseCollectingBookingInfo:     "collecting_booking_info",
	PhaseCollectingSpecializedInfo: "collecting_specialized_info",
	PhaseAwaitingPaymentAck:        "awaiting_payment_ack",
	PhasePaymentPending:            "payment_pending",
	PhaseCompleted:                 "completed",
}

func (p Phase) String() string {
	if s, ok := PhaseMap[p]; ok {
		return s
	}
	return "unknown"
}

func (p Phase) Value() uint8 {
	return uint8(p)
}

// Step is the sub-phase of the two collecting phases.
type Step uint8

const (
	StepNone         Step = 0
	StepDate         Step = 1
	StepTime         Step = 2
	StepCity         Step = 3
	StepBikeLocation Step = 4
	StepBikeDate     Step = 5
	StepMovieDate    Step = 6
	StepMovieDetails Step = 7
	StepTravelStart  Step = 8
	StepTravelEnd    Step = 9
	StepWeekendDate  Step = 10
	StepWeekendTime  Step = 11
)

var StepMap = map[Step]string{
	StepNone:         "none",
	StepDate:         "date",
	StepTime:         "time",
	StepCity:         "city",
	StepBikeLocation: "bike_location",
	StepBikeDate:     "bike_date",
	StepMovieDate:    "movie_date",
	StepMovieDetails: "movie_details",
	StepTravelStart:  "travel_start",
	StepTravelEnd:    "travel_end",
	StepWeekendDate:  "weekend_date",
	StepWeekendTime:  "weekend_time",
}

func (s Step) String() string {
	if v, ok := StepMap[s]; ok {
		return v
	}
	return "unknown"
}

func (s Step) Specialized() bool {
	return s >= StepBikeLocation
}

type BookingInfo struct {
	Date           string `json:"date,omitempty"`
	Time           string `json:"time,omitempty"`
	City           string `json:"city,omitempty"`
	PickupLocation string `json:"pickup_location,omitempty"`
	CinemaDetails  string `json:"cinema_details,omitempty"`
	TravelFrom     string `json:"travel_from,omitempty"`
	TravelTo       string `json:"travel_to,omitempty"`
}

// ConversationState is the per customer booking conversation. Callers move it
// between phases through its methods only; each method keeps category,
// package and booking info consistent with the phase it enters.
type ConversationState struct {
	CustomerID       string             `json:"customer_id"`
	Phase            Phase              `json:"phase"`
	Step             Step               `json:"step"`
	Category         catalog.Category   `json:"category,omitempty"`
	Package          catalog.PackageKey `json:"package,omitempty"`
	BookingID        string             `json:"booking_id,omitempty"`
	Info             BookingInfo        `json:"info"`
	FinalMessageSent bool               `json:"final_message_sent"`
	CreatedAt        time.Time          `json:"created_at"`
	LastActivity     time.Time          `json:"last_activity"`
}

func NewConversationState(customerID string, now time.Time) *ConversationState {
	return &ConversationState{
		CustomerID:   customerID,
		Phase:        PhaseMain,
		CreatedAt:    now,
		LastActivity: now,
	}
}

func (s *ConversationState) Clone() *ConversationState {
	c := *s
	return &c
}

func (s *ConversationState) HasCategory() bool {
	return s.Category != ""
}

// SelectedPackage resolves the package reference against the catalog.
func (s *ConversationState) SelectedPackage() (catalog.Package, bool) {
	if s.Category == "" || s.Package == "" {
		return catalog.Package{}, false
	}
	return catalog.Lookup(s.Category, s.Package)
}

// Reset returns to the main phase and clears the booking cycle and the latch.
func (s *ConversationState) Reset() {
	s.clearBooking()
	s.FinalMessageSent = false
}

// AcknowledgePayment ends the booking cycle after the customer reported the
// payment. The latch stays set so repeated acknowledgments stay silent.
func (s *ConversationState) AcknowledgePayment() {
	s.clearBooking()
	s.FinalMessageSent = true
}

func (s *ConversationState) SelectCategory(category catalog.Category) {
	s.clearBooking()
	s.Phase = PhaseCategorySelected
	s.Category = category
}

// StartBooking enters the collection flow for a package of the selected
// category. first is StepDate for the plain flow or the first specialized step.
func (s *ConversationState) StartBooking(pkg catalog.PackageKey, bookingID string, first Step) {
	s.Package = pkg
	s.BookingID = bookingID
	s.Info = BookingInfo{}
	s.FinalMessageSent = false
	s.Step = first
	if first.Specialized() {
		s.Phase = PhaseCollectingSpecializedInfo
	} else {
		s.Phase = PhaseCollectingBookingInfo
	}
}

// AdvanceTo moves to a later step of the active collection flow. Steps never
// move backwards.
func (s *ConversationState) AdvanceTo(next Step) bool {
	if next <= s.Step {
		return false
	}
	s.Step = next
	return true
}

func (s *ConversationState) AwaitPaymentAck() {
	s.Phase = PhaseAwaitingPaymentAck
	s.Step = StepNone
}

func (s *ConversationState) AwaitPayment() {
	s.Phase = PhasePaymentPending
	s.Step = StepNone
}

func (s *ConversationState) Complete() {
	s.Phase = PhaseCompleted
	s.Step = StepNone
}

func (s *ConversationState) Touch(now time.Time) {
	s.LastActivity = now
}

func (s *ConversationState) clearBooking() {
	s.Phase = PhaseMain
	s.Step = StepNone
	s.Category = ""
	s.Package = ""
	s.BookingID = ""
	s.Info = BookingInfo{}
}
