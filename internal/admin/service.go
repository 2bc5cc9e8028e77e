package admin

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/angelmondragon/mahalaxmi-storefront/internal/apiclient"
	"github.com/angelmondragon/mahalaxmi-storefront/internal/orders"
	"github.com/angelmondragon/mahalaxmi-storefront/pkg/enums"
	pkgerrors "github.com/angelmondragon/mahalaxmi-storefront/pkg/errors"
	"github.com/angelmondragon/mahalaxmi-storefront/pkg/pagination"
	"github.com/angelmondragon/mahalaxmi-storefront/pkg/types"
)

// Service wraps the /admin endpoints. Every call needs an ADMIN token on the context.
type Service interface {
	Stats(ctx context.Context) (*DashboardStats, error)
	Orders(ctx context.Context, page pagination.Params) (*types.Page[orders.Order], error)
	OrdersByStatus(ctx context.Context, status enums.OrderStatus, page pagination.Params) (*types.Page[orders.Order], error)
	SearchOrders(ctx context.Context, keyword string, page pagination.Params) (*types.Page[orders.Order], error)
	Order(ctx context.Context, id int64) (*orders.Order, error)
	UpdateOrderStatus(ctx context.Context, id int64, req orders.UpdateStatusRequest) (*orders.Order, error)
	Users(ctx context.Context, page pagination.Params) (*types.Page[User], error)
}

type service struct {
	api apiclient.API
}

func NewService(api apiclient.API) (Service, error) {
	if api == nil {
		return nil, fmt.Errorf("backend api client is required")
	}
	return &service{api: api}, nil
}

func (s *service) Stats(ctx context.Context) (*DashboardStats, error) {
	var out DashboardStats
	if err := s.api.Get(ctx, "/admin/dashboard/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *service) Orders(ctx context.Context, page pagination.Params) (*types.Page[orders.Order], error) {
	return getPage[orders.Order](ctx, s.api, "/admin/orders", pageQuery(page))
}

func (s *service) OrdersByStatus(ctx context.Context, status enums.OrderStatus, page pagination.Params) (*types.Page[orders.Order], error) {
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown order status %q", status))
	}
	return getPage[orders.Order](ctx, s.api, "/admin/orders/status/"+string(status), pageQuery(page))
}

func (s *service) SearchOrders(ctx context.Context, keyword string, page pagination.Params) (*types.Page[orders.Order], error) {
	query := pageQuery(page)
	query.Set("keyword", strings.TrimSpace(keyword))
	return getPage[orders.Order](ctx, s.api, "/admin/orders/search", query)
}

func (s *service) Order(ctx context.Context, id int64) (*orders.Order, error) {
	var out orders.Order
	if err := s.api.Get(ctx, orderPath(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *service) UpdateOrderStatus(ctx context.Context, id int64, req orders.UpdateStatusRequest) (*orders.Order, error) {
	if !req.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "choose a valid order status").
			WithDetails(map[string]string{"status": "is invalid"})
	}
	var out orders.Order
	if err := s.api.Put(ctx, orderPath(id)+"/status", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *service) Users(ctx context.Context, page pagination.Params) (*types.Page[User], error) {
	return getPage[User](ctx, s.api, "/admin/users", pageQuery(page))
}

// LoadOrders applies the admin filter precedence: status, then search keyword, then all orders.
func LoadOrders(ctx context.Context, svc Service, q OrderQuery) (*types.Page[orders.Order], error) {
	page := pagination.Params{Page: q.Page, Size: pagination.AdminPageSize}
	switch {
	case q.Status != "":
		return svc.OrdersByStatus(ctx, q.Status, page)
	case strings.TrimSpace(q.Keyword) != "":
		return svc.SearchOrders(ctx, q.Keyword, page)
	default:
		return svc.Orders(ctx, page)
	}
}

func getPage[T any](ctx context.Context, api apiclient.API, path string, query url.Values) (*types.Page[T], error) {
	var out types.Page[T]
	if err := api.Get(ctx, path, query, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func pageQuery(page pagination.Params) url.Values {
	query := url.Values{}
	query.Set("page", strconv.Itoa(max(page.Page, 0)))
	query.Set("size", strconv.Itoa(pagination.NormalizeSize(page.Size, pagination.AdminPageSize)))
	return query
}

func orderPath(id int64) string {
	return "/admin/orders/" + strconv.FormatInt(id, 10)
}
