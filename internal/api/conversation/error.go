package conversation

import "RomiioBot/pkg/response"

var (
	ErrInvalidMessage     = response.NewError(400, "invalid inbound message")
	ErrSessionNotFound    = response.NewError(404, "session not found")
	ErrBookingNotFound    = response.NewError(404, "booking not found")
	ErrRateLimitExceeded  = response.NewError(429, "message rate limit exceeded")
	ErrHandlerFault       = response.NewError(500, "failed to process message")
	ErrSessionUnavailable = response.NewError(503, "session store unavailable")
)
