package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/angelmondragon/mahalaxmi-storefront/internal/cart"
	"github.com/angelmondragon/mahalaxmi-storefront/internal/orders"
	"github.com/angelmondragon/mahalaxmi-storefront/pkg/enums"
	pkgerrors "github.com/angelmondragon/mahalaxmi-storefront/pkg/errors"
	"github.com/angelmondragon/mahalaxmi-storefront/pkg/logger"
	"github.com/shopspring/decimal"
)

type orderCreator interface {
	Create(ctx context.Context, req orders.CreateOrderRequest) (*orders.Order, error)
}

type cartClearer interface {
	Clear(ctx context.Context, sessionID string) (cart.Snapshot, error)
	Forget(ctx context.Context, sessionID string) error
}

// Flow runs order placement for a draft.
type Flow struct {
	drafts *DraftStore
	orders orderCreator
	carts  cartClearer
	logg   *logger.Logger
	now    func() time.Time
}

func NewFlow(drafts *DraftStore, orderSvc orderCreator, carts cartClearer, logg *logger.Logger) (*Flow, error) {
	if drafts == nil {
		return nil, fmt.Errorf("draft store is required")
	}
	if orderSvc == nil {
		return nil, fmt.Errorf("order service is required")
	}
	if carts == nil {
		return nil, fmt.Errorf("cart store is required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &Flow{drafts: drafts, orders: orderSvc, carts: carts, logg: logg, now: time.Now}, nil
}

// Drafts exposes the underlying draft store to the handlers.
func (f *Flow) Drafts() *DraftStore {
	return f.drafts
}

// Place submits the order once. On success the cart is cleared and the draft becomes
// confirmed. On a backend failure the draft stays on payment with the error recorded;
// an Unauthorized failure is returned unchanged so the caller can end the session.
// subtotal is the cart total at submission time.
func (f *Flow) Place(ctx context.Context, sessionID string, draft Draft, method enums.PaymentMethod, subtotal decimal.Decimal) (Draft, *orders.Order, error) {
	ready, err := draft.ReadyToPlace(method, subtotal)
	if err != nil {
		return draft, nil, err
	}

	order, err := f.orders.Create(ctx, ready.Request())
	if err != nil {
		if pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized) {
			return ready, nil, err
		}
		failed := ready.Fail(placeFailureMessage(err))
		if saveErr := f.drafts.Save(ctx, sessionID, failed); saveErr != nil {
			f.logg.Error(ctx, "checkout.save_failed_draft", saveErr)
		}
		return failed, nil, err
	}

	if _, clearErr := f.carts.Clear(ctx, sessionID); clearErr != nil {
		f.logg.Warn(f.logg.WithField(ctx, "error", clearErr.Error()), "checkout.cart_clear_failed")
		if forgetErr := f.carts.Forget(ctx, sessionID); forgetErr != nil {
			f.logg.Error(ctx, "checkout.cart_forget_failed", forgetErr)
		}
	}

	confirmed := ready.Confirm(order.OrderNumber, f.now())
	if err := f.drafts.Save(ctx, sessionID, confirmed); err != nil {
		return confirmed, order, err
	}
	return confirmed, order, nil
}

func placeFailureMessage(err error) string {
	if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeValidation && typed.Message() != "" {
		return "Failed to place order: " + typed.Message()
	}
	return "Failed to place order. Please try again."
}
