package controllers

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/angelmondragon/mahalaxmi-storefront/api/responses"
	"github.com/angelmondragon/mahalaxmi-storefront/api/validators"
	"github.com/angelmondragon/mahalaxmi-storefront/internal/admin"
	"github.com/angelmondragon/mahalaxmi-storefront/internal/orders"
	"github.com/angelmondragon/mahalaxmi-storefront/internal/session"
	"github.com/angelmondragon/mahalaxmi-storefront/pkg/enums"
	pkgerrors "github.com/angelmondragon/mahalaxmi-storefront/pkg/errors"
	"github.com/angelmondragon/mahalaxmi-storefront/pkg/logger"
	"github.com/angelmondragon/mahalaxmi-storefront/pkg/pagination"
	"github.com/angelmondragon/mahalaxmi-storefront/pkg/types"
	"github.com/angelmondragon/mahalaxmi-storefront/web"
)

const adminOrdersPath = "/admin/orders"

type dashboardPage struct {
	Stats      *admin.DashboardStats
	Daily      []admin.Bar
	Categories []admin.Bar
	Statuses   []admin.StatusCount
}

// AdminDashboard renders the stat cards and charts from a single stats call.
func AdminDashboard(rs *responses.Responder, adminSvc admin.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := adminSvc.Stats(r.Context())
		if err != nil {
			rs.FailPage(w, r, err)
			return
		}
		rs.Render(w, r, http.StatusOK, "admin_dashboard", responses.Page{
			Title: "Dashboard",
			Data: dashboardPage{
				Stats:      stats,
				Daily:      admin.DailyBars(stats.DailySales),
				Categories: admin.CategoryBars(stats.SalesByCategory),
				Statuses:   admin.StatusBreakdown(stats.OrdersByStatus),
			},
		})
	}
}

type adminOrdersPage struct {
	Search   string
	Status   enums.OrderStatus
	Statuses []enums.OrderStatus
	Result   *types.Page[orders.Order]
	Pager    web.Pager
}

// AdminOrders lists orders filtered by status or order number search. An unknown status
// value is treated as no filter.
func AdminOrders(rs *responses.Responder, adminSvc admin.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		status, _ := enums.ParseOrderStatus(strings.TrimSpace(query.Get("status")))
		q := admin.OrderQuery{
			Status:  status,
			Keyword: validators.SanitizeString(query.Get("search"), 100),
			Page:    validators.QueryPage(r),
		}

		result, err := admin.LoadOrders(r.Context(), adminSvc, q)
		if err != nil {
			rs.FailPage(w, r, err)
			return
		}

		keep := url.Values{}
		if q.Status != "" {
			keep.Set("status", string(q.Status))
		}
		if q.Keyword != "" {
			keep.Set("search", q.Keyword)
		}
		rs.Render(w, r, http.StatusOK, "admin_orders", responses.Page{
			Title: "Orders",
			Data: adminOrdersPage{
				Search:   q.Keyword,
				Status:   q.Status,
				Statuses: enums.OrderStatuses(),
				Result:   result,
				Pager:    web.Pager{Window: pagination.NewWindow(result.Number, result.TotalPages), Path: adminOrdersPath, Query: keep},
			},
		})
	}
}

type adminOrderPage struct {
	Order    *orders.Order
	Statuses []enums.OrderStatus
}

func AdminOrder(rs *responses.Responder, adminSvc admin.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathID(r, "id")
		if err != nil {
			rs.FailPage(w, r, err)
			return
		}
		order, err := adminSvc.Order(r.Context(), id)
		if err != nil {
			rs.FailPage(w, r, err)
			return
		}
		rs.Render(w, r, http.StatusOK, "admin_order", responses.Page{
			Title: "Order " + order.OrderNumber,
			Data:  adminOrderPage{Order: order, Statuses: enums.OrderStatuses()},
		})
	}
}

// AdminOrderStatus changes an order status from either the list or the detail page and
// returns to where the form was posted from.
func AdminOrderStatus(rs *responses.Responder, adminSvc admin.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		back := validators.FormString(r, "back")
		if !strings.HasPrefix(back, adminOrdersPath) {
			back = adminOrdersPath
		}

		id, err := validators.PathID(r, "id")
		if err != nil {
			rs.Fail(w, r, err, back)
			return
		}
		status, err := enums.ParseOrderStatus(validators.FormString(r, "status"))
		if err != nil {
			rs.Fail(w, r, pkgerrors.New(pkgerrors.CodeValidation, "Invalid order status"), back)
			return
		}

		req := orders.UpdateStatusRequest{
			Status:         status,
			TrackingNumber: validators.FormString(r, "trackingNumber"),
			Notes:          validators.FormText(r, "notes"),
		}
		if _, err := adminSvc.UpdateOrderStatus(ctx, id, req); err != nil {
			rs.Fail(w, r, err, back)
			return
		}
		logg.Info(logg.WithFields(ctx, map[string]any{"order_id": id, "status": string(status)}), "admin.order_status_updated")
		rs.Notice(r, session.FlashSuccess, "Order status updated")
		rs.Redirect(w, r, back)
	}
}

type adminUsersPage struct {
	Result *types.Page[admin.User]
	Pager  web.Pager
}

func AdminUsers(rs *responses.Responder, adminSvc admin.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := adminSvc.Users(r.Context(), pagination.Params{Page: validators.QueryPage(r), Size: pagination.AdminPageSize})
		if err != nil {
			rs.FailPage(w, r, err)
			return
		}
		rs.Render(w, r, http.StatusOK, "admin_users", responses.Page{
			Title: "Users",
			Data: adminUsersPage{
				Result: result,
				Pager:  web.Pager{Window: pagination.NewWindow(result.Number, result.TotalPages), Path: "/admin/users"},
			},
		})
	}
}
