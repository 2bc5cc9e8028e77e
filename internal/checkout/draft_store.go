package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	pkgerrors "github.com/angelmondragon/mahalaxmi-storefront/pkg/errors"
	"github.com/angelmondragon/mahalaxmi-storefront/pkg/redis"
)

type draftKV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	CheckoutKey(sessionID string) string
}

// DraftStore persists checkout drafts in Redis per browser session.
type DraftStore struct {
	kv  draftKV
	ttl time.Duration
}

func NewDraftStore(kv draftKV, ttl time.Duration) (*DraftStore, error) {
	if kv == nil {
		return nil, fmt.Errorf("draft store requires redis")
	}
	return &DraftStore{kv: kv, ttl: ttl}, nil
}

// Load returns the stored draft, or a fresh one when none exists.
func (s *DraftStore) Load(ctx context.Context, sessionID string) (Draft, error) {
	raw, err := s.kv.Get(ctx, s.kv.CheckoutKey(sessionID))
	if errors.Is(err, redis.Nil) {
		return NewDraft(), nil
	}
	if err != nil {
		return Draft{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load checkout draft")
	}
	var d Draft
	if err := json.Unmarshal([]byte(raw), &d); err != nil || d.Step < StepShipping || d.Step > StepConfirmed {
		return NewDraft(), nil
	}
	return d, nil
}

func (s *DraftStore) Save(ctx context.Context, sessionID string, d Draft) error {
	payload, err := json.Marshal(d)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode checkout draft")
	}
	if err := s.kv.Set(ctx, s.kv.CheckoutKey(sessionID), string(payload), s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store checkout draft")
	}
	return nil
}

func (s *DraftStore) Reset(ctx context.Context, sessionID string) error {
	return s.kv.Del(ctx, s.kv.CheckoutKey(sessionID))
}
