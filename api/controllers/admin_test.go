package controllers

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/mahalaxmi-storefront/internal/admin"
	"github.com/angelmondragon/mahalaxmi-storefront/internal/categories"
	"github.com/angelmondragon/mahalaxmi-storefront/internal/orders"
	"github.com/angelmondragon/mahalaxmi-storefront/internal/products"
	"github.com/angelmondragon/mahalaxmi-storefront/pkg/enums"
	pkgerrors "github.com/angelmondragon/mahalaxmi-storefront/pkg/errors"
	"github.com/angelmondragon/mahalaxmi-storefront/pkg/pagination"
	"github.com/angelmondragon/mahalaxmi-storefront/pkg/types"
)

type fakeAdminService struct {
	admin.Service
	page     *types.Page[orders.Order]
	err      error
	called   string
	status   enums.OrderStatus
	keyword  string
	updateID int64
	update   orders.UpdateStatusRequest
}

func (f *fakeAdminService) Orders(context.Context, pagination.Params) (*types.Page[orders.Order], error) {
	f.called = "orders"
	return f.page, f.err
}

func (f *fakeAdminService) OrdersByStatus(_ context.Context, status enums.OrderStatus, _ pagination.Params) (*types.Page[orders.Order], error) {
	f.called = "status"
	f.status = status
	return f.page, f.err
}

func (f *fakeAdminService) SearchOrders(_ context.Context, keyword string, _ pagination.Params) (*types.Page[orders.Order], error) {
	f.called = "search"
	f.keyword = keyword
	return f.page, f.err
}

func (f *fakeAdminService) UpdateOrderStatus(_ context.Context, id int64, req orders.UpdateStatusRequest) (*orders.Order, error) {
	f.updateID = id
	f.update = req
	if f.err != nil {
		return nil, f.err
	}
	return &orders.Order{ID: id, Status: req.Status}, nil
}

type fakeCatalog struct {
	products.Service
	created *products.ProductInput
	updated int64
	saveErr error
}

func (f *fakeCatalog) Create(_ context.Context, input products.ProductInput) (*types.Product, error) {
	f.created = &input
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	return &types.Product{ID: 40, Name: input.Name}, nil
}

func (f *fakeCatalog) Update(_ context.Context, id int64, input products.ProductInput) (*types.Product, error) {
	f.updated = id
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	return &types.Product{ID: id, Name: input.Name}, nil
}

type fakeCategoryService struct {
	categories.Service
	list    []types.Category
	created *categories.CategoryInput
	updated int64
}

func (f *fakeCategoryService) List(context.Context) ([]types.Category, error) {
	return f.list, nil
}

func (f *fakeCategoryService) Create(_ context.Context, input categories.CategoryInput) (*types.Category, error) {
	f.created = &input
	return &types.Category{ID: 9, Name: input.Name}, nil
}

func (f *fakeCategoryService) Update(_ context.Context, id int64, input categories.CategoryInput) (*types.Category, error) {
	f.updated = id
	return &types.Category{ID: id, Name: input.Name}, nil
}

func ptr(v int64) *int64 { return &v }

// servers > rack > 2U
func categoryTree() []types.Category {
	return []types.Category{
		{ID: 1, Name: "Servers", Active: true},
		{ID: 2, Name: "Rack", ParentID: ptr(1), Active: true},
		{ID: 3, Name: "2U", ParentID: ptr(2), Active: true},
		{ID: 4, Name: "Laptops", Active: true},
	}
}

func TestAdminOrdersIgnoresUnknownStatus(t *testing.T) {
	h := newHarness(t)
	svc := &fakeAdminService{page: &types.Page[orders.Order]{TotalPages: 1}}

	rec := serve(AdminOrders(h.rs, svc), getRequest("/admin/orders?status=LOST&search=ORD-12", signedIn(enums.RoleAdmin)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "search", svc.called)
	assert.Equal(t, "ORD-12", svc.keyword)
	data := h.views.page.Data.(adminOrdersPage)
	assert.Empty(t, data.Status)
	assert.Equal(t, "ORD-12", data.Pager.Query.Get("search"))
	assert.Empty(t, data.Pager.Query.Get("status"))
}

func TestAdminOrdersFiltersByStatus(t *testing.T) {
	h := newHarness(t)
	svc := &fakeAdminService{page: &types.Page[orders.Order]{TotalPages: 1}}

	serve(AdminOrders(h.rs, svc), getRequest("/admin/orders?status=SHIPPED", signedIn(enums.RoleAdmin)))

	assert.Equal(t, "status", svc.called)
	assert.Equal(t, enums.OrderStatusShipped, svc.status)
	assert.Len(t, h.views.page.Data.(adminOrdersPage).Statuses, 7)
}

func TestAdminOrderStatusUpdate(t *testing.T) {
	h := newHarness(t)
	svc := &fakeAdminService{}

	form := url.Values{
		"status":         {"SHIPPED"},
		"trackingNumber": {"BLR123"},
		"back":           {"/admin/orders/5"},
	}
	req := withParam(postRequest("/admin/orders/5/status", form, signedIn(enums.RoleAdmin)), "id", "5")
	rec := serve(AdminOrderStatus(h.rs, svc, h.logg), req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/orders/5", rec.Header().Get("Location"))
	assert.Equal(t, int64(5), svc.updateID)
	assert.Equal(t, enums.OrderStatusShipped, svc.update.Status)
	assert.Equal(t, "BLR123", svc.update.TrackingNumber)
	assert.Equal(t, []string{"Order status updated"}, h.flashes.messages(testSID))
}

func TestAdminOrderStatusKeepsBackInsideAdmin(t *testing.T) {
	h := newHarness(t)
	svc := &fakeAdminService{}

	form := url.Values{"status": {"DELIVERED"}, "back": {"/profile"}}
	req := withParam(postRequest("/admin/orders/5/status", form, signedIn(enums.RoleAdmin)), "id", "5")
	rec := serve(AdminOrderStatus(h.rs, svc, h.logg), req)

	assert.Equal(t, adminOrdersPath, rec.Header().Get("Location"))
}

func TestAdminOrderStatusRejectsUnknownStatus(t *testing.T) {
	h := newHarness(t)
	svc := &fakeAdminService{}

	form := url.Values{"status": {"LOST"}}
	req := withParam(postRequest("/admin/orders/5/status", form, signedIn(enums.RoleAdmin)), "id", "5")
	rec := serve(AdminOrderStatus(h.rs, svc, h.logg), req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Zero(t, svc.updateID)
	assert.Equal(t, []string{"Invalid order status"}, h.flashes.messages(testSID))
}

func productValues() url.Values {
	return url.Values{
		"name":          {"PowerEdge R750"},
		"price":         {"245000.00"},
		"stockQuantity": {"3"},
		"brand":         {"Dell"},
		"type":          {"SERVER"},
		"categoryId":    {"2"},
		"active":        {"on"},
	}
}

func TestAdminProductSaveShowsFieldErrors(t *testing.T) {
	h := newHarness(t)
	svc := &fakeCatalog{}
	cats := &fakeCategoryService{list: categoryTree()}
	form := productValues()
	form.Set("price", "-4")
	form.Set("brand", "")

	rec := serve(AdminProductSave(h.rs, svc, cats, h.logg), postRequest("/admin/products", form, signedIn(enums.RoleAdmin)))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	data := h.views.page.Data.(productFormPage)
	assert.Equal(t, "must be greater than 0", data.Errors["price"])
	assert.Contains(t, data.Errors, "brand")
	assert.Len(t, data.Categories, 4)
	assert.Equal(t, adminProductsPath, data.Action)
	assert.Nil(t, svc.created)
}

func TestAdminProductCreate(t *testing.T) {
	h := newHarness(t)
	svc := &fakeCatalog{}
	cats := &fakeCategoryService{list: categoryTree()}

	rec := serve(AdminProductSave(h.rs, svc, cats, h.logg), postRequest("/admin/products", productValues(), signedIn(enums.RoleAdmin)))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, adminProductsPath, rec.Header().Get("Location"))
	require.NotNil(t, svc.created)
	assert.Equal(t, "PowerEdge R750", svc.created.Name)
	assert.Equal(t, []string{"Product created successfully"}, h.flashes.messages(testSID))
}

func TestAdminProductUpdateUsesRouteID(t *testing.T) {
	h := newHarness(t)
	svc := &fakeCatalog{}
	cats := &fakeCategoryService{list: categoryTree()}

	req := withParam(postRequest("/admin/products/12", productValues(), signedIn(enums.RoleAdmin)), "id", "12")
	serve(AdminProductSave(h.rs, svc, cats, h.logg), req)

	assert.Equal(t, int64(12), svc.updated)
	assert.Equal(t, []string{"Product updated successfully"}, h.flashes.messages(testSID))
}

func TestAdminProductBackendRejectionStaysOnForm(t *testing.T) {
	h := newHarness(t)
	svc := &fakeCatalog{saveErr: pkgerrors.New(pkgerrors.CodeConflict, "Product name already exists")}
	cats := &fakeCategoryService{list: categoryTree()}

	rec := serve(AdminProductSave(h.rs, svc, cats, h.logg), postRequest("/admin/products", productValues(), signedIn(enums.RoleAdmin)))

	assert.Equal(t, http.StatusConflict, rec.Code)
	data := h.views.page.Data.(productFormPage)
	assert.Equal(t, "Product name already exists", data.Message)
	assert.Equal(t, "PowerEdge R750", data.Form.Name)
}

func TestAdminCategorySaveRejectsDescendantParent(t *testing.T) {
	h := newHarness(t)
	cats := &fakeCategoryService{list: categoryTree()}

	form := url.Values{"name": {"Servers"}, "parentId": {"3"}, "active": {"on"}}
	req := withParam(postRequest("/admin/categories/1", form, signedIn(enums.RoleAdmin)), "id", "1")
	rec := serve(AdminCategorySave(h.rs, cats, h.logg), req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	data := h.views.page.Data.(categoryFormPage)
	assert.Equal(t, "is not a valid parent", data.Errors["parentId"])
	assert.Zero(t, cats.updated)
	for _, n := range data.Parents {
		assert.NotContains(t, []int64{1, 2, 3}, n.Category.ID)
	}
}

func TestAdminCategoryCreateUnderParent(t *testing.T) {
	h := newHarness(t)
	cats := &fakeCategoryService{list: categoryTree()}

	form := url.Values{"name": {"Gaming"}, "parentId": {"4"}, "active": {"on"}}
	rec := serve(AdminCategorySave(h.rs, cats, h.logg), postRequest("/admin/categories", form, signedIn(enums.RoleAdmin)))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	require.NotNil(t, cats.created)
	assert.Equal(t, int64(4), *cats.created.ParentID)
	assert.Equal(t, []string{"Category created successfully"}, h.flashes.messages(testSID))
}
