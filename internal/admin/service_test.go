package admin

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/angelmondragon/mahalaxmi-storefront/internal/apiclient"
	"github.com/angelmondragon/mahalaxmi-storefront/internal/orders"
	"github.com/angelmondragon/mahalaxmi-storefront/pkg/config"
	"github.com/angelmondragon/mahalaxmi-storefront/pkg/enums"
	pkgerrors "github.com/angelmondragon/mahalaxmi-storefront/pkg/errors"
	"github.com/angelmondragon/mahalaxmi-storefront/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const emptyPage = `{"content":[],"totalElements":0,"totalPages":0,"size":10,"number":0,"first":true,"last":true}`

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

func TestStatsDecodesDashboard(t *testing.T) {
	svc := newHTTPService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/admin/dashboard/stats", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"totalProducts": 40, "totalOrders": 12, "totalUsers": 7, "totalRevenue": 250000.5,
			"ordersToday": 2, "revenueToday": 1999, "ordersThisMonth": 9, "revenueThisMonth": 180000,
			"ordersByStatus": {"PENDING": 3, "DELIVERED": 9},
			"dailySales": [{"date": "Mon", "orders": 1, "revenue": 1000}],
			"topProducts": [{"productId": 4, "productName": "Xeon Server", "quantitySold": 2, "totalRevenue": 90000}],
			"salesByCategory": {"Servers": 90000}
		}`))
	})

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(40), stats.TotalProducts)
	assert.Equal(t, "250000.5", stats.TotalRevenue.String())
	assert.Equal(t, int64(3), stats.OrdersByStatus["PENDING"])
	require.Len(t, stats.TopProducts, 1)
	assert.Equal(t, "Xeon Server", stats.TopProducts[0].ProductName)
}

func TestLoadOrdersPrefersStatusOverKeyword(t *testing.T) {
	var paths []string
	svc := newHTTPService(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path+"?"+r.URL.RawQuery)
		_, _ = w.Write([]byte(emptyPage))
	})
	ctx := context.Background()

	_, err := LoadOrders(ctx, svc, OrderQuery{Status: enums.OrderStatusShipped, Keyword: "ORD", Page: 1})
	require.NoError(t, err)
	_, err = LoadOrders(ctx, svc, OrderQuery{Keyword: " ORD-7 "})
	require.NoError(t, err)
	_, err = LoadOrders(ctx, svc, OrderQuery{})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"/admin/orders/status/SHIPPED?page=1&size=10",
		"/admin/orders/search?keyword=ORD-7&page=0&size=10",
		"/admin/orders?page=0&size=10",
	}, paths)
}

func TestUpdateOrderStatusPutsBody(t *testing.T) {
	svc := newHTTPService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/admin/orders/5/status", r.URL.Path)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "SHIPPED", body["status"])
		assert.Equal(t, "TRK1", body["trackingNumber"])
		_, _ = w.Write([]byte(`{"id":5,"status":"SHIPPED"}`))
	})

	order, err := svc.UpdateOrderStatus(context.Background(), 5, orders.UpdateStatusRequest{
		Status:         enums.OrderStatusShipped,
		TrackingNumber: "TRK1",
	})
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusShipped, order.Status)
}

func TestUpdateOrderStatusRejectsUnknownStatusLocally(t *testing.T) {
	called := false
	svc := newHTTPService(t, func(w http.ResponseWriter, r *http.Request) { called = true })

	_, err := svc.UpdateOrderStatus(context.Background(), 5, orders.UpdateStatusRequest{Status: "LOST"})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
	assert.False(t, called)
}

func TestUsersForbiddenMapsToForbidden(t *testing.T) {
	svc := newHTTPService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	_, err := svc.Users(context.Background(), pagination.Params{})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeForbidden))
}

func TestUserParsedRole(t *testing.T) {
	assert.Equal(t, enums.RoleAdmin, User{Role: "ROLE_ADMIN"}.ParsedRole())
	assert.Equal(t, enums.RoleCustomer, User{Role: "manager"}.ParsedRole())
	assert.Equal(t, "Asha Rao", User{FirstName: "Asha", LastName: "Rao"}.FullName())
}
