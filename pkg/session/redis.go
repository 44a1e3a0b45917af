package session

import (
	"RomiioBot/internal/entity"
	redisPkg "RomiioBot/pkg/redis"
	"context"
	"errors"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
)

const keyPrefix = "romiio:session:"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type redisStore struct {
	client redisPkg.IRedis
	ttl    time.Duration
}

// NewRedisStore keeps sessions as JSON documents in Redis. The TTL is applied
// as key expiry and refreshed on every update.
func NewRedisStore(client redisPkg.IRedis, opts Options) Store {
	return &redisStore{
		client: client,
		ttl:    opts.TTL,
	}
}

func (r *redisStore) Get(ctx context.Context, customerID string) (*entity.ConversationState, error) {
	raw, err := r.client.Get(ctx, key(customerID))
	if errors.Is(err, redisPkg.ErrKeyNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return decode(raw)
}

func (r *redisStore) GetOrCreate(ctx context.Context, customerID string, now time.Time) (*entity.ConversationState, error) {
	return r.Update(ctx, customerID, now, func(*entity.ConversationState) error { return nil })
}

func (r *redisStore) Update(ctx context.Context, customerID string, now time.Time, fn UpdateFunc) (*entity.ConversationState, error) {
	var committed *entity.ConversationState

	err := r.client.CompareAndSwap(ctx, key(customerID), r.ttl, func(current []byte, exists bool) ([]byte, error) {
		state := entity.NewConversationState(customerID, now)
		if exists {
			decoded, err := decode(current)
			if err != nil {
				return nil, err
			}
			state = decoded
		}

		if err := fn(state); err != nil {
			return nil, err
		}

		raw, err := json.Marshal(state)
		if err != nil {
			return nil, fmt.Errorf("failed to encode session: %w", err)
		}
		committed = state
		return raw, nil
	})
	if err != nil {
		return nil, err
	}

	return committed.Clone(), nil
}

func (r *redisStore) Delete(ctx context.Context, customerID string) error {
	return r.client.Delete(ctx, key(customerID))
}

func (r *redisStore) Close() error {
	return r.client.Close()
}

func key(customerID string) string {
	return keyPrefix + customerID
}

func decode(raw []byte) (*entity.ConversationState, error) {
	var state entity.ConversationState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &state, nil
}
