package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	pkgerrors "github.com/angelmondragon/mahalaxmi-storefront/pkg/errors"
	"github.com/angelmondragon/mahalaxmi-storefront/pkg/redis"
)

// Command names the cart operation whose response produced a snapshot.
type Command string

const (
	CommandFetch  Command = "fetch"
	CommandAdd    Command = "add"
	CommandUpdate Command = "update"
	CommandRemove Command = "remove"
	CommandClear  Command = "clear"
)

// Snapshot is the last cart the backend returned for a browser session.
type Snapshot struct {
	Cart      *Cart     `json:"cart"`
	Version   int64     `json:"version"`
	Command   Command   `json:"command"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ItemCount is what the header badge shows.
func (s *Snapshot) ItemCount() int {
	if s == nil || s.Cart == nil {
		return 0
	}
	return s.Cart.ItemCount
}

// Apply folds a backend response into the previous snapshot.
//
// Ordering policy is last response wins: whichever response is applied last replaces
// the cart wholesale, even when it answers an older request. Version only counts
// applications; it does not order requests.
func Apply(prev Snapshot, cmd Command, resp *Cart, at time.Time) Snapshot {
	return Snapshot{
		Cart:      resp,
		Version:   prev.Version + 1,
		Command:   cmd,
		UpdatedAt: at,
	}
}

type snapshotStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	CartKey(sessionID string) string
}

// Store keeps cart snapshots per browser session in Redis and routes every mutation
// through the backend.
type Store struct {
	svc Service
	kv  snapshotStore
	ttl time.Duration
	now func() time.Time
}

func NewStore(svc Service, kv snapshotStore, ttl time.Duration) (*Store, error) {
	if svc == nil {
		return nil, fmt.Errorf("cart service is required")
	}
	if kv == nil {
		return nil, fmt.Errorf("snapshot store is required")
	}
	return &Store{svc: svc, kv: kv, ttl: ttl, now: time.Now}, nil
}

// Current returns the stored snapshot without calling the backend.
func (s *Store) Current(ctx context.Context, sessionID string) (Snapshot, error) {
	raw, err := s.kv.Get(ctx, s.kv.CartKey(sessionID))
	if errors.Is(err, redis.Nil) {
		return Snapshot{}, nil
	}
	if err != nil {
		return Snapshot{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart snapshot")
	}
	var snap Snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		return Snapshot{}, nil
	}
	return snap, nil
}

func (s *Store) Fetch(ctx context.Context, sessionID string) (Snapshot, error) {
	resp, err := s.svc.Get(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	return s.save(ctx, sessionID, CommandFetch, resp)
}

// Add puts quantity units of a product in the cart. A negative stock means the bound is unknown.
func (s *Store) Add(ctx context.Context, sessionID string, productID int64, quantity, stock int) (Snapshot, error) {
	if quantity < 1 {
		return Snapshot{}, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}
	if stock >= 0 && quantity > stock {
		return Snapshot{}, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("only %d in stock", stock))
	}
	resp, err := s.svc.AddItem(ctx, AddItemRequest{ProductID: productID, Quantity: quantity})
	if err != nil {
		return Snapshot{}, err
	}
	return s.save(ctx, sessionID, CommandAdd, resp)
}

// Update sets a line's quantity. Quantities below 1 or above the product's stock are
// rejected before any request is made.
func (s *Store) Update(ctx context.Context, sessionID string, itemID int64, quantity int) (Snapshot, error) {
	if quantity < 1 {
		return Snapshot{}, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}
	current, err := s.Current(ctx, sessionID)
	if err != nil {
		return Snapshot{}, err
	}
	if item, ok := current.Cart.FindItem(itemID); ok && quantity > item.Product.StockQuantity {
		return Snapshot{}, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("only %d in stock", item.Product.StockQuantity))
	}
	resp, err := s.svc.UpdateItem(ctx, itemID, quantity)
	if err != nil {
		return Snapshot{}, err
	}
	return s.save(ctx, sessionID, CommandUpdate, resp)
}

func (s *Store) Remove(ctx context.Context, sessionID string, itemID int64) (Snapshot, error) {
	resp, err := s.svc.RemoveItem(ctx, itemID)
	if err != nil {
		return Snapshot{}, err
	}
	return s.save(ctx, sessionID, CommandRemove, resp)
}

func (s *Store) Clear(ctx context.Context, sessionID string) (Snapshot, error) {
	resp, err := s.svc.Clear(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	return s.save(ctx, sessionID, CommandClear, resp)
}

// Forget drops the local snapshot only, e.g. after an order is placed or on logout.
func (s *Store) Forget(ctx context.Context, sessionID string) error {
	return s.kv.Del(ctx, s.kv.CartKey(sessionID))
}

func (s *Store) save(ctx context.Context, sessionID string, cmd Command, resp *Cart) (Snapshot, error) {
	prev, err := s.Current(ctx, sessionID)
	if err != nil {
		return Snapshot{}, err
	}
	next := Apply(prev, cmd, resp, s.now())
	payload, err := json.Marshal(next)
	if err != nil {
		return Snapshot{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode cart snapshot")
	}
	if err := s.kv.Set(ctx, s.kv.CartKey(sessionID), string(payload), s.ttl); err != nil {
		return Snapshot{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store cart snapshot")
	}
	return next, nil
}
