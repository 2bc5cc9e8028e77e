package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/angelmondragon/mahalaxmi-storefront/pkg/redis"
)

const flashTTL = 5 * time.Minute

// FlashKind picks the notice styling.
type FlashKind string

const (
	FlashSuccess FlashKind = "success"
	FlashError   FlashKind = "error"
	FlashInfo    FlashKind = "info"
)

// Flash is a one-shot notice shown on the next rendered page.
type Flash struct {
	Kind    FlashKind `json:"kind"`
	Message string    `json:"message"`
}

type flashStore interface {
	Get(ctx context.Context, key string) (string, error)
	GetDel(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	FlashKey(sessionID string) string
}

// Flashes queues notices per browser session.
type Flashes struct {
	kv flashStore
}

func NewFlashes(kv flashStore) (*Flashes, error) {
	if kv == nil {
		return nil, fmt.Errorf("flash store is required")
	}
	return &Flashes{kv: kv}, nil
}

// Add appends a notice to the session queue.
func (f *Flashes) Add(ctx context.Context, sessionID string, kind FlashKind, message string) error {
	key := f.kv.FlashKey(sessionID)
	queued, err := decodeFlashes(f.kv.Get(ctx, key))
	if err != nil {
		return err
	}
	queued = append(queued, Flash{Kind: kind, Message: message})
	payload, err := json.Marshal(queued)
	if err != nil {
		return err
	}
	return f.kv.Set(ctx, key, string(payload), flashTTL)
}

// Pop returns the queued notices and empties the queue.
func (f *Flashes) Pop(ctx context.Context, sessionID string) ([]Flash, error) {
	return decodeFlashes(f.kv.GetDel(ctx, f.kv.FlashKey(sessionID)))
}

func decodeFlashes(raw string, err error) ([]Flash, error) {
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var out []Flash
	if jsonErr := json.Unmarshal([]byte(raw), &out); jsonErr != nil {
		return nil, nil
	}
	return out, nil
}
