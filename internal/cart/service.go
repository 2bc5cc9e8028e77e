package cart

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/angelmondragon/mahalaxmi-storefront/internal/apiclient"
)

// Service wraps the backend cart endpoints. All calls need the shopper's token on ctx.
type Service interface {
	Get(ctx context.Context) (*Cart, error)
	AddItem(ctx context.Context, req AddItemRequest) (*Cart, error)
	UpdateItem(ctx context.Context, itemID int64, quantity int) (*Cart, error)
	RemoveItem(ctx context.Context, itemID int64) (*Cart, error)
	Clear(ctx context.Context) (*Cart, error)
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

func (s *service) Get(ctx context.Context) (*Cart, error) {
	var out Cart
	if err := s.api.Get(ctx, "/cart", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *service) AddItem(ctx context.Context, req AddItemRequest) (*Cart, error) {
	var out Cart
	if err := s.api.Post(ctx, "/cart/items", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *service) UpdateItem(ctx context.Context, itemID int64, quantity int) (*Cart, error) {
	var out Cart
	query := url.Values{"quantity": {strconv.Itoa(quantity)}}
	if err := s.api.Put(ctx, itemPath(itemID), query, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *service) RemoveItem(ctx context.Context, itemID int64) (*Cart, error) {
	var out Cart
	if err := s.api.Delete(ctx, itemPath(itemID), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *service) Clear(ctx context.Context) (*Cart, error) {
	var out Cart
	if err := s.api.Delete(ctx, "/cart", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func itemPath(itemID int64) string {
	return "/cart/items/" + strconv.FormatInt(itemID, 10)
}
