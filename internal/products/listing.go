package products

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/angelmondragon/mahalaxmi-storefront/pkg/enums"
	"github.com/angelmondragon/mahalaxmi-storefront/pkg/pagination"
	"github.com/angelmondragon/mahalaxmi-storefront/pkg/types"
	"github.com/shopspring/decimal"
)

// SortOption is the sort selector on the product grid.
type SortOption string

const (
	SortNewest    SortOption = "newest"
	SortPriceAsc  SortOption = "price-asc"
	SortPriceDesc SortOption = "price-desc"
	SortNameAsc   SortOption = "name-asc"
	SortNameDesc  SortOption = "name-desc"
)

// SortOptions lists the selector entries in display order.
var SortOptions = []struct {
	Value SortOption
	Label string
}{
	{SortNewest, "Newest First"},
	{SortPriceAsc, "Price: Low to High"},
	{SortPriceDesc, "Price: High to Low"},
	{SortNameAsc, "Name: A to Z"},
	{SortNameDesc, "Name: Z to A"},
}

// Backend returns the sortBy/direction pair for the default listing.
func (s SortOption) Backend() Sort {
	direction := "DESC"
	if strings.HasSuffix(string(s), "-asc") {
		direction = "ASC"
	}
	switch s {
	case SortPriceAsc, SortPriceDesc:
		return Sort{Field: "price", Direction: direction}
	case SortNameAsc, SortNameDesc:
		return Sort{Field: "name", Direction: direction}
	default:
		return Sort{Field: "createdAt", Direction: "DESC"}
	}
}

func parseSortOption(raw string) SortOption {
	for _, opt := range SortOptions {
		if string(opt.Value) == raw {
			return opt.Value
		}
	}
	return SortNewest
}

// PrimaryFilter is the one server side filter a listing request uses.
type PrimaryFilter int

const (
	FilterDefault PrimaryFilter = iota
	FilterSearch
	FilterType
	FilterCategory
)

// ListingQuery is the product grid state carried in the URL.
type ListingQuery struct {
	Search      string
	Type        enums.ProductType
	CategoryID  int64
	Brand       string
	InStockOnly bool
	MinPrice    *decimal.Decimal
	MaxPrice    *decimal.Decimal
	Sort        SortOption
	Page        int
}

// ParseListingQuery reads grid state from query parameters. Unknown values are dropped.
func ParseListingQuery(values url.Values) ListingQuery {
	q := ListingQuery{
		Search: strings.TrimSpace(values.Get("search")),
		Brand:  strings.TrimSpace(values.Get("brand")),
		Sort:   parseSortOption(values.Get("sort")),
		Page:   pagination.ParsePage(values.Get("page")),
	}
	if pt, err := enums.ParseProductType(values.Get("type")); err == nil {
		q.Type = pt
	}
	if id, err := strconv.ParseInt(values.Get("category"), 10, 64); err == nil && id > 0 {
		q.CategoryID = id
	}
	switch strings.ToLower(values.Get("inStock")) {
	case "1", "true", "on":
		q.InStockOnly = true
	}
	q.MinPrice = parsePrice(values.Get("minPrice"))
	q.MaxPrice = parsePrice(values.Get("maxPrice"))
	return q
}

func parsePrice(raw string) *decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil
	}
	return &d
}

// Primary resolves which server side filter applies: search, then type, then category.
func (q ListingQuery) Primary() PrimaryFilter {
	switch {
	case q.Search != "":
		return FilterSearch
	case q.Type != "":
		return FilterType
	case q.CategoryID > 0:
		return FilterCategory
	default:
		return FilterDefault
	}
}

// HasActiveFilters reports whether the "clear all" control should show.
func (q ListingQuery) HasActiveFilters() bool {
	return q.Search != "" || q.Type != "" || q.CategoryID > 0 || q.Brand != ""
}

// Values encodes the query back into URL parameters, optionally moving to another page.
func (q ListingQuery) Values(page int) url.Values {
	v := url.Values{}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.Type != "" {
		v.Set("type", q.Type.String())
	}
	if q.CategoryID > 0 {
		v.Set("category", strconv.FormatInt(q.CategoryID, 10))
	}
	if q.Brand != "" {
		v.Set("brand", q.Brand)
	}
	if q.InStockOnly {
		v.Set("inStock", "true")
	}
	if q.MinPrice != nil {
		v.Set("minPrice", q.MinPrice.String())
	}
	if q.MaxPrice != nil {
		v.Set("maxPrice", q.MaxPrice.String())
	}
	if q.Sort != "" && q.Sort != SortNewest {
		v.Set("sort", string(q.Sort))
	}
	if page > 0 {
		v.Set("page", strconv.Itoa(page))
	}
	return v
}

// Matches applies the secondary filters to one product.
func (q ListingQuery) Matches(p types.Product) bool {
	if q.Brand != "" && p.Brand != q.Brand {
		return false
	}
	if q.InStockOnly && p.StockQuantity <= 0 {
		return false
	}
	if q.MinPrice != nil && p.Price.LessThan(*q.MinPrice) {
		return false
	}
	if q.MaxPrice != nil && p.Price.GreaterThan(*q.MaxPrice) {
		return false
	}
	return true
}

// Listing is one rendered product grid.
//
// Secondary filters only narrow Visible, the rows of the page the backend returned.
// Result still carries the unfiltered totals, so counts and the pager describe the
// primary result, not the filtered one.
type Listing struct {
	Query   ListingQuery
	Filter  PrimaryFilter
	Result  types.Page[types.Product]
	Visible []types.Product
	Pager   pagination.Window
}

// LoadListing fetches one page using the primary filter and narrows it with the secondary filters.
func LoadListing(ctx context.Context, svc Service, q ListingQuery) (*Listing, error) {
	page := pagination.Params{Page: q.Page, Size: pagination.StorefrontPageSize}

	var (
		result *types.Page[types.Product]
		err    error
	)
	filter := q.Primary()
	switch filter {
	case FilterSearch:
		result, err = svc.Search(ctx, q.Search, page)
	case FilterType:
		result, err = svc.ByType(ctx, q.Type, page)
	case FilterCategory:
		result, err = svc.ByCategory(ctx, q.CategoryID, page)
	default:
		result, err = svc.List(ctx, page, q.Sort.Backend())
	}
	if err != nil {
		return nil, err
	}

	return &Listing{
		Query:   q,
		Filter:  filter,
		Result:  *result,
		Visible: ApplySecondaryFilters(result.Content, q),
		Pager:   pagination.NewWindow(result.Number, result.TotalPages),
	}, nil
}

// ApplySecondaryFilters keeps the products matching brand, stock and price filters.
func ApplySecondaryFilters(items []types.Product, q ListingQuery) []types.Product {
	out := make([]types.Product, 0, len(items))
	for _, p := range items {
		if q.Matches(p) {
			out = append(out, p)
		}
	}
	return out
}

// Related picks up to limit products from the same category, excluding the product itself.
func Related(items []types.Product, current types.Product, limit int) []types.Product {
	out := make([]types.Product, 0, limit)
	for _, p := range items {
		if len(out) == limit {
			break
		}
		if p.ID == current.ID {
			continue
		}
		out = append(out, p)
	}
	return out
}
