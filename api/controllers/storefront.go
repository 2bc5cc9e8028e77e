package controllers

import (
	"net/http"

	"github.com/angelmondragon/mahalaxmi-storefront/api/responses"
	"github.com/angelmondragon/mahalaxmi-storefront/api/validators"
	"github.com/angelmondragon/mahalaxmi-storefront/internal/categories"
	"github.com/angelmondragon/mahalaxmi-storefront/internal/products"
	"github.com/angelmondragon/mahalaxmi-storefront/pkg/enums"
	"github.com/angelmondragon/mahalaxmi-storefront/pkg/logger"
	"github.com/angelmondragon/mahalaxmi-storefront/pkg/pagination"
	"github.com/angelmondragon/mahalaxmi-storefront/pkg/types"
	"github.com/angelmondragon/mahalaxmi-storefront/web"
)

const (
	featuredCount = 8
	relatedCount  = 4
)

type homePage struct {
	Featured   []types.Product
	Categories []types.Category
}

// Home renders featured products and the top level categories.
func Home(rs *responses.Responder, productSvc products.Service, categorySvc categories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		featured, err := productSvc.Featured(ctx, pagination.Params{Page: 0, Size: featuredCount})
		if err != nil {
			rs.FailPage(w, r, err)
			return
		}
		roots, err := categorySvc.Roots(ctx)
		if err != nil {
			logg.Warn(logg.WithField(ctx, "error", err.Error()), "home.categories_failed")
		}
		rs.Render(w, r, http.StatusOK, "home", responses.Page{
			Title: "Home",
			Data:  homePage{Featured: featured.Content, Categories: roots},
		})
	}
}

type productsPage struct {
	Listing     *products.Listing
	Categories  []*categories.Node
	Types       []enums.ProductType
	Brands      []string
	SortOptions any
	Pager       web.Pager
}

// Products renders the product grid with its filter sidebar.
func Products(rs *responses.Responder, productSvc products.Service, categorySvc categories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		q := products.ParseListingQuery(r.URL.Query())

		listing, err := products.LoadListing(ctx, productSvc, q)
		if err != nil {
			rs.FailPage(w, r, err)
			return
		}

		brands, err := productSvc.Brands(ctx)
		if err != nil {
			logg.Warn(logg.WithField(ctx, "error", err.Error()), "products.brands_failed")
		}
		var nodes []*categories.Node
		if list, err := categorySvc.List(ctx); err != nil {
			logg.Warn(logg.WithField(ctx, "error", err.Error()), "products.categories_failed")
		} else {
			nodes = categories.Flatten(categories.BuildTree(list))
		}

		title := "Products"
		if q.Search != "" {
			title = "Search: " + q.Search
		}
		rs.Render(w, r, http.StatusOK, "products", responses.Page{
			Title: title,
			Data: productsPage{
				Listing:     listing,
				Categories:  nodes,
				Types:       enums.ProductTypes(),
				Brands:      brands,
				SortOptions: products.SortOptions,
				Pager:       web.Pager{Window: listing.Pager, Path: "/products", Query: q.Values(0)},
			},
		})
	}
}

type productPage struct {
	Product types.Product
	Related []types.Product
}

// ProductDetail renders one product with up to four related products from its category.
func ProductDetail(rs *responses.Responder, productSvc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id, err := validators.PathID(r, "id")
		if err != nil {
			rs.FailPage(w, r, err)
			return
		}
		product, err := productSvc.Get(ctx, id)
		if err != nil {
			rs.FailPage(w, r, err)
			return
		}

		var related []types.Product
		if categoryID := product.CategoryID(); categoryID > 0 {
			page, err := productSvc.ByCategory(ctx, categoryID, pagination.Params{Page: 0, Size: relatedCount + 1})
			if err != nil {
				logg.Warn(logg.WithField(ctx, "error", err.Error()), "product.related_failed")
			} else {
				related = products.Related(page.Content, *product, relatedCount)
			}
		}

		rs.Render(w, r, http.StatusOK, "product", responses.Page{
			Title: product.Name,
			Data:  productPage{Product: *product, Related: related},
		})
	}
}

func About(rs *responses.Responder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rs.Render(w, r, http.StatusOK, "about", responses.Page{Title: "About us"})
	}
}
