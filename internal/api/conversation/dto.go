package conversation

import "time"

// ApologyText is sent when handling a message fails unexpectedly.
const ApologyText = "Sorry, something went wrong while processing your input. Please try again."

type InboundMessage struct {
	MessageID  string    `validate:"omitempty,max=128"`
	CustomerID string    `validate:"required,max=128"`
	Text       string    `validate:"max=65536"`
	HasMedia   bool      `validate:"-"`
	MediaType  string    `validate:"omitempty,max=32"`
	ReceivedAt time.Time `validate:"-"`
}

type Result struct {
	Reply     string
	Silent    bool
	Rule      string
	Phase     string
	Step      string
	Category  string
	Package   string
	BookingID string
}

type SimulateRequest struct {
	CustomerID string `json:"customer_id" validate:"required,min=3,max=64"`
	Text       string `json:"text" validate:"max=4096"`
	HasMedia   bool   `json:"has_media"`
	MediaType  string `json:"media_type" validate:"omitempty,oneof=image video document audio sticker"`
}

type SimulateResponse struct {
	Reply     string `json:"reply"`
	Silent    bool   `json:"silent"`
	Rule      string `json:"rule"`
	Phase     string `json:"phase"`
	Step      string `json:"step,omitempty"`
	Category  string `json:"category,omitempty"`
	Package   string `json:"package,omitempty"`
	BookingID string `json:"booking_id,omitempty"`
}

type SessionResponse struct {
	CustomerID       string            `json:"customer_id"`
	Phase            string            `json:"phase"`
	Step             string            `json:"step,omitempty"`
	Category         string            `json:"category,omitempty"`
	Package          string            `json:"package,omitempty"`
	BookingID        string            `json:"booking_id,omitempty"`
	BookingInfo      map[string]string `json:"booking_info,omitempty"`
	FinalMessageSent bool              `json:"final_message_sent"`
	LastActivity     time.Time         `json:"last_activity"`
}
