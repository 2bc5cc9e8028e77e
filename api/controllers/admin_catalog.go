package controllers

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/angelmondragon/mahalaxmi-storefront/api/responses"
	"github.com/angelmondragon/mahalaxmi-storefront/api/validators"
	"github.com/angelmondragon/mahalaxmi-storefront/internal/categories"
	"github.com/angelmondragon/mahalaxmi-storefront/internal/products"
	"github.com/angelmondragon/mahalaxmi-storefront/internal/session"
	"github.com/angelmondragon/mahalaxmi-storefront/pkg/enums"
	pkgerrors "github.com/angelmondragon/mahalaxmi-storefront/pkg/errors"
	"github.com/angelmondragon/mahalaxmi-storefront/pkg/logger"
	"github.com/angelmondragon/mahalaxmi-storefront/pkg/pagination"
	"github.com/angelmondragon/mahalaxmi-storefront/pkg/types"
	"github.com/angelmondragon/mahalaxmi-storefront/web"
)

const (
	adminProductsPath   = "/admin/products"
	adminCategoriesPath = "/admin/categories"
)

// adminSort lists the newest records first.
var adminSort = products.Sort{Field: "id", Direction: "DESC"}

// inlineFailure reports whether a backend rejection of a form should be shown on the form.
// Session problems and missing records take the usual error path instead.
func inlineFailure(err error) bool {
	switch codeOf(err) {
	case pkgerrors.CodeValidation, pkgerrors.CodeConflict, pkgerrors.CodeDependency, pkgerrors.CodeInternal, pkgerrors.CodeRateLimit:
		return true
	}
	return false
}

type adminProductsPage struct {
	Result *types.Page[types.Product]
	Search string
	Pager  web.Pager
}

// AdminProducts pages through the catalogue newest first, or the search results.
func AdminProducts(rs *responses.Responder, productSvc products.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		search := validators.SanitizeString(r.URL.Query().Get("search"), 100)
		page := pagination.Params{Page: validators.QueryPage(r), Size: pagination.AdminPageSize}

		var (
			result *types.Page[types.Product]
			err    error
		)
		if search != "" {
			result, err = productSvc.Search(ctx, search, page)
		} else {
			result, err = productSvc.List(ctx, page, adminSort)
		}
		if err != nil {
			rs.FailPage(w, r, err)
			return
		}

		keep := url.Values{}
		if search != "" {
			keep.Set("search", search)
		}
		rs.Render(w, r, http.StatusOK, "admin_products", responses.Page{
			Title: "Products",
			Data: adminProductsPage{
				Result: result,
				Search: search,
				Pager:  web.Pager{Window: pagination.NewWindow(result.Number, result.TotalPages), Path: adminProductsPath, Query: keep},
			},
		})
	}
}

type productFormPage struct {
	ID         int64
	Action     string
	Message    string
	Form       products.Form
	Types      []enums.ProductType
	Categories []*categories.Node
	Errors     map[string]string
}

func renderProductForm(rs *responses.Responder, w http.ResponseWriter, r *http.Request, status int, categorySvc categories.Service, logg *logger.Logger, data productFormPage) {
	ctx := r.Context()
	if list, err := categorySvc.List(ctx); err != nil {
		logg.Warn(logg.WithField(ctx, "error", err.Error()), "admin.product_categories_failed")
	} else {
		data.Categories = categories.Flatten(categories.BuildTree(list))
	}
	data.Types = enums.ProductTypes()
	if data.Errors == nil {
		data.Errors = map[string]string{}
	}
	data.Action = adminProductsPath
	title := "Add product"
	if data.ID > 0 {
		data.Action = fmt.Sprintf("%s/%d", adminProductsPath, data.ID)
		title = "Edit product"
	}
	rs.Render(w, r, status, "admin_product_form", responses.Page{Title: title, Data: data})
}

func productFormFrom(r *http.Request) products.Form {
	return products.Form{
		Name:           validators.FormString(r, "name"),
		Description:    validators.FormText(r, "description"),
		Price:          validators.FormString(r, "price"),
		StockQuantity:  validators.FormString(r, "stockQuantity"),
		Brand:          validators.FormString(r, "brand"),
		Model:          validators.FormString(r, "model"),
		Type:           validators.FormString(r, "type"),
		CategoryID:     validators.FormInt64(r, "categoryId"),
		ImageURLs:      validators.FormText(r, "imageUrls"),
		Specifications: validators.FormText(r, "specifications"),
		Active:         validators.FormBool(r, "active"),
		Featured:       validators.FormBool(r, "featured"),
	}
}

func AdminProductNew(rs *responses.Responder, categorySvc categories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		renderProductForm(rs, w, r, http.StatusOK, categorySvc, logg, productFormPage{Form: products.NewForm()})
	}
}

func AdminProductEdit(rs *responses.Responder, productSvc products.Service, categorySvc categories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathID(r, "id")
		if err != nil {
			rs.FailPage(w, r, err)
			return
		}
		product, err := productSvc.Get(r.Context(), id)
		if err != nil {
			rs.FailPage(w, r, err)
			return
		}
		renderProductForm(rs, w, r, http.StatusOK, categorySvc, logg, productFormPage{ID: id, Form: products.FormFrom(*product)})
	}
}

// AdminProductSave creates a product, or updates one when the route carries an id.
func AdminProductSave(rs *responses.Responder, productSvc products.Service, categorySvc categories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var id int64
		if hasRouteParam(r, "id") {
			parsed, err := validators.PathID(r, "id")
			if err != nil {
				rs.FailPage(w, r, err)
				return
			}
			id = parsed
		}

		data := productFormPage{ID: id, Form: productFormFrom(r)}
		input, err := data.Form.Input()
		if err != nil {
			data.Errors = fieldErrors(err)
			renderProductForm(rs, w, r, http.StatusUnprocessableEntity, categorySvc, logg, data)
			return
		}

		if id > 0 {
			_, err = productSvc.Update(ctx, id, input)
		} else {
			_, err = productSvc.Create(ctx, input)
		}
		if err != nil {
			if !inlineFailure(err) {
				rs.Fail(w, r, err, adminProductsPath)
				return
			}
			data.Errors = fieldErrors(err)
			data.Message = responses.PublicMessage(err)
			renderProductForm(rs, w, r, statusOf(err), categorySvc, logg, data)
			return
		}

		message := "Product created successfully"
		if id > 0 {
			message = "Product updated successfully"
		}
		logg.Info(logg.WithFields(ctx, map[string]any{"product_id": id, "product_name": input.Name}), "admin.product_saved")
		rs.Notice(r, session.FlashSuccess, message)
		rs.Redirect(w, r, adminProductsPath)
	}
}

type confirmDeletePage struct {
	Kind   string
	Name   string
	Action string
	Back   string
}

func AdminProductConfirmDelete(rs *responses.Responder, productSvc products.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathID(r, "id")
		if err != nil {
			rs.FailPage(w, r, err)
			return
		}
		product, err := productSvc.Get(r.Context(), id)
		if err != nil {
			rs.FailPage(w, r, err)
			return
		}
		rs.Render(w, r, http.StatusOK, "admin_confirm_delete", responses.Page{
			Title: "Delete product",
			Data: confirmDeletePage{
				Kind:   "product",
				Name:   product.Name,
				Action: fmt.Sprintf("%s/%d/delete", adminProductsPath, id),
				Back:   adminProductsPath,
			},
		})
	}
}

func AdminProductDelete(rs *responses.Responder, productSvc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id, err := validators.PathID(r, "id")
		if err != nil {
			rs.Fail(w, r, err, adminProductsPath)
			return
		}
		if err := productSvc.Delete(ctx, id); err != nil {
			rs.Fail(w, r, err, adminProductsPath)
			return
		}
		logg.Info(logg.WithField(ctx, "product_id", id), "admin.product_deleted")
		rs.Notice(r, session.FlashSuccess, "Product deleted successfully")
		rs.Redirect(w, r, adminProductsPath)
	}
}

type adminCategoriesPage struct {
	Nodes       []*categories.Node
	ParentNames map[int64]string
}

// AdminCategories shows every category as an indented tree.
func AdminCategories(rs *responses.Responder, categorySvc categories.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := categorySvc.List(r.Context())
		if err != nil {
			rs.FailPage(w, r, err)
			return
		}
		rs.Render(w, r, http.StatusOK, "admin_categories", responses.Page{
			Title: "Categories",
			Data: adminCategoriesPage{
				Nodes:       categories.Flatten(categories.BuildTree(list)),
				ParentNames: categories.NameByID(list),
			},
		})
	}
}

type categoryFormPage struct {
	ID       int64
	Action   string
	Message  string
	Form     categories.CategoryInput
	Parents  []*categories.Node
	ParentID int64
	Errors   map[string]string
}

func renderCategoryForm(rs *responses.Responder, w http.ResponseWriter, r *http.Request, status int, list []types.Category, data categoryFormPage) {
	data.Parents = categories.ParentOptions(list, data.ID)
	data.ParentID = 0
	if data.Form.ParentID != nil {
		data.ParentID = *data.Form.ParentID
	}
	if data.Errors == nil {
		data.Errors = map[string]string{}
	}
	data.Action = adminCategoriesPath
	title := "Add category"
	if data.ID > 0 {
		data.Action = fmt.Sprintf("%s/%d", adminCategoriesPath, data.ID)
		title = "Edit category"
	}
	rs.Render(w, r, status, "admin_category_form", responses.Page{Title: title, Data: data})
}

func categoryInputFrom(r *http.Request) categories.CategoryInput {
	input := categories.CategoryInput{
		Name:        validators.FormString(r, "name"),
		Description: validators.FormText(r, "description"),
		ImageURL:    validators.FormString(r, "imageUrl"),
		Active:      validators.FormBool(r, "active"),
	}
	if parentID := validators.FormInt64(r, "parentId"); parentID > 0 {
		input.ParentID = &parentID
	}
	return input
}

func AdminCategoryNew(rs *responses.Responder, categorySvc categories.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := categorySvc.List(r.Context())
		if err != nil {
			rs.FailPage(w, r, err)
			return
		}
		renderCategoryForm(rs, w, r, http.StatusOK, list, categoryFormPage{Form: categories.CategoryInput{Active: true}})
	}
}

func AdminCategoryEdit(rs *responses.Responder, categorySvc categories.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id, err := validators.PathID(r, "id")
		if err != nil {
			rs.FailPage(w, r, err)
			return
		}
		category, err := categorySvc.Get(ctx, id)
		if err != nil {
			rs.FailPage(w, r, err)
			return
		}
		list, err := categorySvc.List(ctx)
		if err != nil {
			rs.FailPage(w, r, err)
			return
		}
		renderCategoryForm(rs, w, r, http.StatusOK, list, categoryFormPage{ID: id, Form: categories.InputFrom(*category)})
	}
}

// AdminCategorySave creates or updates a category. A category can never become its own
// ancestor.
func AdminCategorySave(rs *responses.Responder, categorySvc categories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var id int64
		if hasRouteParam(r, "id") {
			parsed, err := validators.PathID(r, "id")
			if err != nil {
				rs.FailPage(w, r, err)
				return
			}
			id = parsed
		}

		list, err := categorySvc.List(ctx)
		if err != nil {
			rs.Fail(w, r, err, adminCategoriesPath)
			return
		}

		data := categoryFormPage{ID: id, Form: categoryInputFrom(r)}
		errs := map[string]string{}
		if err := validators.Validate(data.Form); err != nil {
			errs = fieldErrors(err)
		}
		if data.Form.ParentID != nil && !validParent(list, id, *data.Form.ParentID) {
			errs["parentId"] = "is not a valid parent"
		}
		if len(errs) > 0 {
			data.Errors = errs
			renderCategoryForm(rs, w, r, http.StatusUnprocessableEntity, list, data)
			return
		}

		if id > 0 {
			_, err = categorySvc.Update(ctx, id, data.Form)
		} else {
			_, err = categorySvc.Create(ctx, data.Form)
		}
		if err != nil {
			if !inlineFailure(err) {
				rs.Fail(w, r, err, adminCategoriesPath)
				return
			}
			data.Errors = fieldErrors(err)
			data.Message = responses.PublicMessage(err)
			renderCategoryForm(rs, w, r, statusOf(err), list, data)
			return
		}

		message := "Category created successfully"
		if id > 0 {
			message = "Category updated successfully"
		}
		logg.Info(logg.WithFields(ctx, map[string]any{"category_id": id, "category_name": data.Form.Name}), "admin.category_saved")
		rs.Notice(r, session.FlashSuccess, message)
		rs.Redirect(w, r, adminCategoriesPath)
	}
}

func validParent(list []types.Category, editingID, parentID int64) bool {
	for _, n := range categories.ParentOptions(list, editingID) {
		if n.Category.ID == parentID {
			return true
		}
	}
	return false
}

func AdminCategoryConfirmDelete(rs *responses.Responder, categorySvc categories.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathID(r, "id")
		if err != nil {
			rs.FailPage(w, r, err)
			return
		}
		category, err := categorySvc.Get(r.Context(), id)
		if err != nil {
			rs.FailPage(w, r, err)
			return
		}
		rs.Render(w, r, http.StatusOK, "admin_confirm_delete", responses.Page{
			Title: "Delete category",
			Data: confirmDeletePage{
				Kind:   "category",
				Name:   category.Name,
				Action: fmt.Sprintf("%s/%d/delete", adminCategoriesPath, id),
				Back:   adminCategoriesPath,
			},
		})
	}
}

func AdminCategoryDelete(rs *responses.Responder, categorySvc categories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id, err := validators.PathID(r, "id")
		if err != nil {
			rs.Fail(w, r, err, adminCategoriesPath)
			return
		}
		if err := categorySvc.Delete(ctx, id); err != nil {
			rs.Fail(w, r, err, adminCategoriesPath)
			return
		}
		logg.Info(logg.WithField(ctx, "category_id", id), "admin.category_deleted")
		rs.Notice(r, session.FlashSuccess, "Category deleted successfully")
		rs.Redirect(w, r, adminCategoriesPath)
	}
}
