package categories

import (
	"context"
	"fmt"
	"strconv"

	"github.com/angelmondragon/mahalaxmi-storefront/internal/apiclient"
	"github.com/angelmondragon/mahalaxmi-storefront/pkg/types"
)

// Service wraps the backend category endpoints.
type Service interface {
	List(ctx context.Context) ([]types.Category, error)
	Roots(ctx context.Context) ([]types.Category, error)
	Get(ctx context.Context, id int64) (*types.Category, error)
	Subcategories(ctx context.Context, parentID int64) ([]types.Category, error)
	Create(ctx context.Context, input CategoryInput) (*types.Category, error)
	Update(ctx context.Context, id int64, input CategoryInput) (*types.Category, error)
	Delete(ctx context.Context, id int64) error
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

func (s *service) List(ctx context.Context) ([]types.Category, error) {
	return s.getList(ctx, "/categories")
}

func (s *service) Roots(ctx context.Context) ([]types.Category, error) {
	return s.getList(ctx, "/categories/root")
}

func (s *service) Get(ctx context.Context, id int64) (*types.Category, error) {
	var out types.Category
	if err := s.api.Get(ctx, categoryPath(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *service) Subcategories(ctx context.Context, parentID int64) ([]types.Category, error) {
	return s.getList(ctx, categoryPath(parentID)+"/subcategories")
}

func (s *service) Create(ctx context.Context, input CategoryInput) (*types.Category, error) {
	var out types.Category
	if err := s.api.Post(ctx, "/categories", input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *service) Update(ctx context.Context, id int64, input CategoryInput) (*types.Category, error) {
	var out types.Category
	if err := s.api.Put(ctx, categoryPath(id), nil, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	return s.api.Delete(ctx, categoryPath(id), nil)
}

func (s *service) getList(ctx context.Context, path string) ([]types.Category, error) {
	var out []types.Category
	if err := s.api.Get(ctx, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func categoryPath(id int64) string {
	return "/categories/" + strconv.FormatInt(id, 10)
}
