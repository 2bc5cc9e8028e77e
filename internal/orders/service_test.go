package orders

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/angelmondragon/mahalaxmi-storefront/internal/apiclient"
	"github.com/angelmondragon/mahalaxmi-storefront/pkg/config"
	"github.com/angelmondragon/mahalaxmi-storefront/pkg/enums"
	"github.com/angelmondragon/mahalaxmi-storefront/pkg/pagination"
	"github.com/angelmondragon/mahalaxmi-storefront/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHTTPService(t *testing.T, handler http.HandlerFunc) Service {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client, err := apiclient.New(config.BackendConfig{URL: srv.URL})
	require.NoError(t, err)
	svc, err := NewService(client)
	require.NoError(t, err)
	return svc
}

func TestCreateSendsOrderWithoutIdempotencyKey(t *testing.T) {
	var body map[string]any
	svc := newHTTPService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/orders", r.URL.Path)
		assert.Empty(t, r.Header.Get("Idempotency-Key"))
		_ = json.NewDecoder(r.Body).Decode(&body)
		_, _ = w.Write([]byte(`{"id":1,"orderNumber":"ORD-1","status":"PENDING","createdAt":"2024-05-01T09:30:00"}`))
	})

	order, err := svc.Create(context.Background(), CreateOrderRequest{
		ShippingAddress: ShippingAddress{Street: "1 MG Road", City: "Pune", State: "MH", PostalCode: "411001", Country: "India"},
		PaymentMethod:   enums.PaymentMethodUPI,
		ShippingMethod:  enums.ShippingMethodExpress,
	})
	require.NoError(t, err)
	assert.Equal(t, "ORD-1", order.OrderNumber)
	assert.Equal(t, 2024, order.CreatedAt.Year())

	assert.Equal(t, "UPI", body["paymentMethod"])
	assert.Equal(t, "express", body["shippingMethod"])
	address := body["shippingAddress"].(map[string]any)
	assert.Equal(t, "411001", address["postalCode"])
}

func TestMineUsesPagedOrdersEndpoint(t *testing.T) {
	svc := newHTTPService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		assert.Equal(t, "10", r.URL.Query().Get("size"))
		_ = json.NewEncoder(w).Encode(types.Page[Order]{Content: []Order{{ID: 3}}, TotalPages: 2, Number: 1})
	})
	page, err := svc.Mine(context.Background(), pagination.Params{Page: 1})
	require.NoError(t, err)
	require.Len(t, page.Content, 1)
}

func TestByNumberEscapesPath(t *testing.T) {
	svc := newHTTPService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders/number/ORD-2024-7", r.URL.Path)
		_ = json.NewEncoder(w).Encode(Order{OrderNumber: "ORD-2024-7"})
	})
	order, err := svc.ByNumber(context.Background(), "ORD-2024-7")
	require.NoError(t, err)
	assert.Equal(t, "ORD-2024-7", order.OrderNumber)
}
