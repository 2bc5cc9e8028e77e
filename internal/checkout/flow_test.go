package checkout

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/angelmondragon/mahalaxmi-storefront/internal/cart"
	"github.com/angelmondragon/mahalaxmi-storefront/internal/orders"
	"github.com/angelmondragon/mahalaxmi-storefront/pkg/enums"
	pkgerrors "github.com/angelmondragon/mahalaxmi-storefront/pkg/errors"
	"github.com/angelmondragon/mahalaxmi-storefront/pkg/redis/redistest"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOrders struct {
	order *orders.Order
	err   error
	reqs  []orders.CreateOrderRequest
}

func (f *fakeOrders) Create(_ context.Context, req orders.CreateOrderRequest) (*orders.Order, error) {
	f.reqs = append(f.reqs, req)
	if f.err != nil {
		return nil, f.err
	}
	return f.order, nil
}

type fakeCarts struct {
	clearErr error
	cleared  int
	forgot   int
}

func (f *fakeCarts) Clear(context.Context, string) (cart.Snapshot, error) {
	f.cleared++
	return cart.Snapshot{}, f.clearErr
}

func (f *fakeCarts) Forget(context.Context, string) error {
	f.forgot++
	return nil
}

func newFlow(t *testing.T, o *fakeOrders, c *fakeCarts) *Flow {
	t.Helper()
	kv, _ := redistest.New(t)
	drafts, err := NewDraftStore(kv, time.Hour)
	require.NoError(t, err)
	flow, err := NewFlow(drafts, o, c, nil)
	require.NoError(t, err)
	return flow
}

func paymentDraft(t *testing.T) Draft {
	t.Helper()
	d, err := NewDraft().SubmitShipping(validAddress(), enums.ShippingMethodExpress, decimal.NewFromInt(1000))
	require.NoError(t, err)
	return d
}

func TestPlaceSuccessClearsCartAndConfirms(t *testing.T) {
	ctx := context.Background()
	o := &fakeOrders{order: &orders.Order{ID: 9, OrderNumber: "ORD-9"}}
	c := &fakeCarts{}
	flow := newFlow(t, o, c)

	d, order, err := flow.Place(ctx, "s1", paymentDraft(t), enums.PaymentMethodUPI, decimal.NewFromInt(1000))
	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, StepConfirmed, d.Step)
	assert.Equal(t, "ORD-9", d.OrderNumber)
	assert.Equal(t, 1, c.cleared)
	assert.Zero(t, c.forgot)

	require.Len(t, o.reqs, 1)
	assert.Equal(t, enums.PaymentMethodUPI, o.reqs[0].PaymentMethod)
	assert.Equal(t, enums.ShippingMethodExpress, o.reqs[0].ShippingMethod)

	stored, err := flow.Drafts().Load(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, stored.Confirmed())
}

func TestPlaceFailureStaysOnPayment(t *testing.T) {
	ctx := context.Background()
	o := &fakeOrders{err: pkgerrors.New(pkgerrors.CodeDependency, "backend down")}
	c := &fakeCarts{}
	flow := newFlow(t, o, c)

	d, order, err := flow.Place(ctx, "s1", paymentDraft(t), enums.PaymentMethodCashOnDelivery, decimal.NewFromInt(1000))
	require.Error(t, err)
	assert.Nil(t, order)
	assert.Equal(t, StepPayment, d.Step)
	assert.Equal(t, "Failed to place order. Please try again.", d.Error)
	assert.Zero(t, c.cleared)

	stored, err := flow.Drafts().Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, StepPayment, stored.Step)
	assert.NotEmpty(t, stored.Error)
}

func TestPlaceUnauthorizedIsReturnedAsIs(t *testing.T) {
	o := &fakeOrders{err: pkgerrors.New(pkgerrors.CodeUnauthorized, "expired")}
	flow := newFlow(t, o, &fakeCarts{})

	d, _, err := flow.Place(context.Background(), "s1", paymentDraft(t), enums.PaymentMethodCashOnDelivery, decimal.NewFromInt(1000))
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized))
	assert.Empty(t, d.Error)
}

func TestPlaceForgetsSnapshotWhenClearFails(t *testing.T) {
	o := &fakeOrders{order: &orders.Order{OrderNumber: "ORD-1"}}
	c := &fakeCarts{clearErr: errors.New("boom")}
	flow := newFlow(t, o, c)

	d, _, err := flow.Place(context.Background(), "s1", paymentDraft(t), enums.PaymentMethodCashOnDelivery, decimal.NewFromInt(1000))
	require.NoError(t, err)
	assert.True(t, d.Confirmed())
	assert.Equal(t, 1, c.forgot)
}

func TestPlaceRejectsConfirmedDraftWithoutSubmitting(t *testing.T) {
	o := &fakeOrders{order: &orders.Order{OrderNumber: "ORD-1"}}
	flow := newFlow(t, o, &fakeCarts{})

	confirmed := paymentDraft(t).Confirm("ORD-1", time.Now())
	_, _, err := flow.Place(context.Background(), "s1", confirmed, enums.PaymentMethodCashOnDelivery, decimal.NewFromInt(1000))
	assert.ErrorIs(t, err, ErrConfirmed)
	assert.Empty(t, o.reqs)
}

func TestDraftStoreLoadsFreshDraftWhenMissing(t *testing.T) {
	kv, _ := redistest.New(t)
	store, err := NewDraftStore(kv, time.Minute)
	require.NoError(t, err)

	d, err := store.Load(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Equal(t, NewDraft(), d)

	require.NoError(t, store.Save(context.Background(), "s2", paymentDraft(t)))
	require.NoError(t, store.Reset(context.Background(), "s2"))
	d, err = store.Load(context.Background(), "s2")
	require.NoError(t, err)
	assert.Equal(t, StepShipping, d.Step)
}

func TestPlaceSubmitsTheShippingMethodThatWasQuoted(t *testing.T) {
	ctx := context.Background()
	o := &fakeOrders{order: &orders.Order{OrderNumber: "ORD-3"}}
	flow := newFlow(t, o, &fakeCarts{})

	d, err := NewDraft().SubmitShipping(validAddress(), enums.ShippingMethodFree, decimal.NewFromInt(60000))
	require.NoError(t, err)

	_, _, err = flow.Place(ctx, "s1", d, enums.PaymentMethodCashOnDelivery, decimal.NewFromInt(20000))
	require.NoError(t, err)
	require.Len(t, o.reqs, 1)
	assert.Equal(t, enums.ShippingMethodStandard, o.reqs[0].ShippingMethod)
}
