package session

import (
	"RomiioBot/internal/entity"
	"context"
	"errors"
	"time"
)

var ErrSessionNotFound = errors.New("session not found")

// UpdateFunc mutates a session in place. Returning an error discards every
// change made by the call.
type UpdateFunc func(state *entity.ConversationState) error

// Store owns the conversation state of every customer.
type Store interface {
	Get(ctx context.Context, customerID string) (*entity.ConversationState, error)
	GetOrCreate(ctx context.Context, customerID string, now time.Time) (*entity.ConversationState, error)
	// Update applies fn atomically to the session of customerID, creating it
	// first when missing, and returns a copy of the committed state.
	Update(ctx context.Context, customerID string, now time.Time, fn UpdateFunc) (*entity.ConversationState, error)
	Delete(ctx context.Context, customerID string) error
	Close() error
}

type Options struct {
	// TTL evicts sessions idle for longer than the duration. Zero keeps
	// sessions for the lifetime of the process.
	TTL time.Duration
	// SweepInterval is how often the memory store looks for idle sessions.
	SweepInterval time.Duration
}

func (o Options) sweepInterval() time.Duration {
	if o.SweepInterval > 0 {
		return o.SweepInterval
	}
	if o.TTL > 0 && o.TTL/2 < time.Minute {
		return o.TTL / 2
	}
	return time.Minute
}
