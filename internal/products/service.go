package products

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/angelmondragon/mahalaxmi-storefront/internal/apiclient"
	"github.com/angelmondragon/mahalaxmi-storefront/pkg/enums"
	"github.com/angelmondragon/mahalaxmi-storefront/pkg/pagination"
	"github.com/angelmondragon/mahalaxmi-storefront/pkg/types"
)

// Sort is the backend sort field and direction for the default listing.
type Sort struct {
	Field     string
	Direction string
}

// Service wraps the backend catalog endpoints.
type Service interface {
	List(ctx context.Context, page pagination.Params, sort Sort) (*types.Page[types.Product], error)
	Get(ctx context.Context, id int64) (*types.Product, error)
	Search(ctx context.Context, keyword string, page pagination.Params) (*types.Page[types.Product], error)
	ByCategory(ctx context.Context, categoryID int64, page pagination.Params) (*types.Page[types.Product], error)
	ByType(ctx context.Context, productType enums.ProductType, page pagination.Params) (*types.Page[types.Product], error)
	Featured(ctx context.Context, page pagination.Params) (*types.Page[types.Product], error)
	Brands(ctx context.Context) ([]string, error)
	Create(ctx context.Context, input ProductInput) (*types.Product, error)
	Update(ctx context.Context, id int64, input ProductInput) (*types.Product, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	api apiclient.API
}

// NewService constructs the catalog service.
func NewService(api apiclient.API) (Service, error) {
	if api == nil {
		return nil, fmt.Errorf("backend api client is required")
	}
	return &service{api: api}, nil
}

func (s *service) List(ctx context.Context, page pagination.Params, sort Sort) (*types.Page[types.Product], error) {
	query := pageQuery(page)
	if sort.Field != "" {
		query.Set("sortBy", sort.Field)
	}
	if sort.Direction != "" {
		query.Set("direction", sort.Direction)
	}
	return s.getPage(ctx, "/products", query)
}

func (s *service) Get(ctx context.Context, id int64) (*types.Product, error) {
	var out types.Product
	if err := s.api.Get(ctx, "/products/"+strconv.FormatInt(id, 10), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *service) Search(ctx context.Context, keyword string, page pagination.Params) (*types.Page[types.Product], error) {
	query := pageQuery(page)
	query.Set("keyword", strings.TrimSpace(keyword))
	return s.getPage(ctx, "/products/search", query)
}

func (s *service) ByCategory(ctx context.Context, categoryID int64, page pagination.Params) (*types.Page[types.Product], error) {
	return s.getPage(ctx, "/products/category/"+strconv.FormatInt(categoryID, 10), pageQuery(page))
}

func (s *service) ByType(ctx context.Context, productType enums.ProductType, page pagination.Params) (*types.Page[types.Product], error) {
	return s.getPage(ctx, "/products/type/"+url.PathEscape(productType.String()), pageQuery(page))
}

func (s *service) Featured(ctx context.Context, page pagination.Params) (*types.Page[types.Product], error) {
	return s.getPage(ctx, "/products/featured", pageQuery(page))
}

func (s *service) Brands(ctx context.Context) ([]string, error) {
	var out []string
	if err := s.api.Get(ctx, "/products/brands", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *service) Create(ctx context.Context, input ProductInput) (*types.Product, error) {
	var out types.Product
	if err := s.api.Post(ctx, "/products", input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *service) Update(ctx context.Context, id int64, input ProductInput) (*types.Product, error) {
	var out types.Product
	if err := s.api.Put(ctx, "/products/"+strconv.FormatInt(id, 10), nil, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	return s.api.Delete(ctx, "/products/"+strconv.FormatInt(id, 10), nil)
}

func (s *service) getPage(ctx context.Context, path string, query url.Values) (*types.Page[types.Product], error) {
	var out types.Page[types.Product]
	if err := s.api.Get(ctx, path, query, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func pageQuery(page pagination.Params) url.Values {
	query := url.Values{}
	query.Set("page", strconv.Itoa(max(page.Page, 0)))
	query.Set("size", strconv.Itoa(pagination.NormalizeSize(page.Size, pagination.StorefrontPageSize)))
	return query
}
