package orders

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/angelmondragon/mahalaxmi-storefront/internal/apiclient"
	"github.com/angelmondragon/mahalaxmi-storefront/pkg/pagination"
	"github.com/angelmondragon/mahalaxmi-storefront/pkg/types"
)

// Service wraps the shopper facing order endpoints.
type Service interface {
	Create(ctx context.Context, req CreateOrderRequest) (*Order, error)
	Mine(ctx context.Context, page pagination.Params) (*types.Page[Order], error)
	Get(ctx context.Context, id int64) (*Order, error)
	ByNumber(ctx context.Context, orderNumber string) (*Order, error)
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

// Create places an order. No idempotency key is sent, so a retried submission may
// create a second order.
func (s *service) Create(ctx context.Context, req CreateOrderRequest) (*Order, error) {
	var out Order
	if err := s.api.Post(ctx, "/orders", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *service) Mine(ctx context.Context, page pagination.Params) (*types.Page[Order], error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(max(page.Page, 0)))
	query.Set("size", strconv.Itoa(pagination.NormalizeSize(page.Size, pagination.AdminPageSize)))
	var out types.Page[Order]
	if err := s.api.Get(ctx, "/orders", query, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *service) Get(ctx context.Context, id int64) (*Order, error) {
	var out Order
	if err := s.api.Get(ctx, "/orders/"+strconv.FormatInt(id, 10), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *service) ByNumber(ctx context.Context, orderNumber string) (*Order, error) {
	var out Order
	if err := s.api.Get(ctx, "/orders/number/"+url.PathEscape(orderNumber), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
