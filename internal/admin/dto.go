package admin

import (
	"strings"

	"github.com/angelmondragon/mahalaxmi-storefront/pkg/enums"
	"github.com/angelmondragon/mahalaxmi-storefront/pkg/types"
	"github.com/shopspring/decimal"
)

// DashboardStats is the payload of GET /admin/dashboard/stats.
type DashboardStats struct {
	TotalProducts    int64                      `json:"totalProducts"`
	TotalOrders      int64                      `json:"totalOrders"`
	TotalUsers       int64                      `json:"totalUsers"`
	TotalRevenue     decimal.Decimal            `json:"totalRevenue"`
	OrdersToday      int64                      `json:"ordersToday"`
	RevenueToday     decimal.Decimal            `json:"revenueToday"`
	OrdersThisMonth  int64                      `json:"ordersThisMonth"`
	RevenueThisMonth decimal.Decimal            `json:"revenueThisMonth"`
	OrdersByStatus   map[string]int64           `json:"ordersByStatus"`
	DailySales       []DailySales               `json:"dailySales"`
	TopProducts      []TopProduct               `json:"topProducts"`
	SalesByCategory  map[string]decimal.Decimal `json:"salesByCategory"`
}

// DailySales is one day of the last-seven-days trend.
type DailySales struct {
	Date    string          `json:"date"`
	Orders  int64           `json:"orders"`
	Revenue decimal.Decimal `json:"revenue"`
}

type TopProduct struct {
	ProductID    int64           `json:"productId"`
	ProductName  string          `json:"productName"`
	QuantitySold int64           `json:"quantitySold"`
	TotalRevenue decimal.Decimal `json:"totalRevenue"`
}

// User is a row of the admin users table.
type User struct {
	ID          int64           `json:"id"`
	FirstName   string          `json:"firstName"`
	LastName    string          `json:"lastName"`
	Email       string          `json:"email"`
	Phone       string          `json:"phone"`
	Role        string          `json:"role"`
	Enabled     bool            `json:"enabled"`
	CreatedAt   types.Timestamp `json:"createdAt"`
	TotalOrders int64           `json:"totalOrders"`
}

func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// ParsedRole falls back to customer for anything the backend sends that is not a known role.
func (u User) ParsedRole() enums.Role {
	role, err := enums.ParseRole(u.Role)
	if err != nil {
		return enums.RoleCustomer
	}
	return role
}

// OrderQuery selects which admin order listing to load.
type OrderQuery struct {
	Status  enums.OrderStatus
	Keyword string
	Page    int
}
