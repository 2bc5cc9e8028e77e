package routes

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/mahalaxmi-storefront/api/controllers"
	"github.com/angelmondragon/mahalaxmi-storefront/api/middleware"
	"github.com/angelmondragon/mahalaxmi-storefront/api/responses"
	"github.com/angelmondragon/mahalaxmi-storefront/internal/admin"
	"github.com/angelmondragon/mahalaxmi-storefront/internal/auth"
	"github.com/angelmondragon/mahalaxmi-storefront/internal/cart"
	"github.com/angelmondragon/mahalaxmi-storefront/internal/categories"
	"github.com/angelmondragon/mahalaxmi-storefront/internal/checkout"
	"github.com/angelmondragon/mahalaxmi-storefront/internal/orders"
	"github.com/angelmondragon/mahalaxmi-storefront/internal/products"
	"github.com/angelmondragon/mahalaxmi-storefront/internal/session"
	"github.com/angelmondragon/mahalaxmi-storefront/pkg/config"
	"github.com/angelmondragon/mahalaxmi-storefront/pkg/enums"
	"github.com/angelmondragon/mahalaxmi-storefront/pkg/logger"
	"github.com/angelmondragon/mahalaxmi-storefront/pkg/redis"
	"github.com/angelmondragon/mahalaxmi-storefront/web"
)

// Params carries everything the router wires into handlers.
type Params struct {
	Config    *config.Config
	Logger    *logger.Logger
	Redis     *redis.Client
	Gatherer  prometheus.Gatherer
	Responder *responses.Responder

	Sessions *session.Store
	Carts    *cart.Store
	Drafts   *checkout.DraftStore
	Checkout *checkout.Flow

	Auth       auth.Service
	Products   products.Service
	Categories categories.Service
	Orders     orders.Service
	Admin      admin.Service
}

func (p Params) validate() error {
	switch {
	case p.Config == nil:
		return errors.New("config is required")
	case p.Logger == nil:
		return errors.New("logger is required")
	case p.Redis == nil:
		return errors.New("redis client is required")
	case p.Responder == nil:
		return errors.New("responder is required")
	case p.Sessions == nil || p.Carts == nil || p.Drafts == nil || p.Checkout == nil:
		return errors.New("session, cart and checkout stores are required")
	case p.Auth == nil || p.Products == nil || p.Categories == nil || p.Orders == nil || p.Admin == nil:
		return errors.New("backend services are required")
	}
	return nil
}

func NewRouter(p Params) (http.Handler, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	cfg, logg, rs := p.Config, p.Logger, p.Responder

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg, rs.FailBack),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)
	r.NotFound(rs.NotFound)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Handle("/static/*", web.Static())
	if p.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(p.Gatherer, promhttp.HandlerOpts{}))
	}
	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, p.Redis))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.Session(cfg.Session, p.Sessions, logg))

		r.Get("/", controllers.Home(rs, p.Products, p.Categories, logg))
		r.Get("/products", controllers.Products(rs, p.Products, p.Categories, logg))
		r.Get("/products/{id}", controllers.ProductDetail(rs, p.Products, logg))
		r.Get("/about", controllers.About(rs))
		r.Get("/contact", controllers.ContactPage(rs))
		r.Post("/contact", controllers.Contact(rs, logg))

		r.Get("/login", controllers.LoginPage(rs))
		r.With(middleware.AuthRateLimit(loginPolicy, p.Redis, logg, rs.FailBack)).
			Post("/login", controllers.Login(rs, p.Auth, p.Sessions, p.Carts, logg))
		r.Get("/register", controllers.RegisterPage(rs))
		r.With(middleware.AuthRateLimit(registerPolicy, p.Redis, logg, rs.FailBack)).
			Post("/register", controllers.Register(rs, p.Auth, p.Sessions, p.Carts, logg))
		r.Post("/logout", controllers.Logout(rs, p.Sessions, logg))

		// Anonymous shoppers get a login prompt from the handler rather than a redirect.
		r.Post("/cart/items", controllers.CartAdd(rs, p.Carts, p.Products))

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth())

			r.Get("/cart", controllers.CartPage(rs, p.Carts))
			r.Post("/cart/items/{itemID}/quantity", controllers.CartUpdate(rs, p.Carts))
			r.Post("/cart/items/{itemID}/remove", controllers.CartRemove(rs, p.Carts))
			r.Post("/cart/clear", controllers.CartClear(rs, p.Carts))

			r.Route("/checkout", func(r chi.Router) {
				r.Get("/", controllers.CheckoutPage(rs, p.Drafts, p.Carts))
				r.Post("/shipping", controllers.CheckoutShipping(rs, p.Drafts, p.Carts))
				r.Post("/back", controllers.CheckoutBack(rs, p.Drafts))
				r.Post("/place", controllers.CheckoutPlace(rs, p.Drafts, p.Carts, p.Checkout, logg))
				r.Get("/confirmation", controllers.CheckoutConfirmation(rs, p.Drafts, confirmationDelay(cfg), logg))
			})

			r.Get("/profile", controllers.ProfilePage(rs, p.Orders, logg))
			r.Post("/profile", controllers.ProfileSave(rs, p.Auth, p.Sessions, logg))
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireRole(enums.RoleAdmin, logg))

			r.Get("/", controllers.AdminDashboard(rs, p.Admin))

			r.Route("/products", func(r chi.Router) {
				r.Get("/", controllers.AdminProducts(rs, p.Products))
				r.Get("/new", controllers.AdminProductNew(rs, p.Categories, logg))
				r.Post("/", controllers.AdminProductSave(rs, p.Products, p.Categories, logg))
				r.Get("/{id}/edit", controllers.AdminProductEdit(rs, p.Products, p.Categories, logg))
				r.Post("/{id}", controllers.AdminProductSave(rs, p.Products, p.Categories, logg))
				r.Get("/{id}/delete", controllers.AdminProductConfirmDelete(rs, p.Products))
				r.Post("/{id}/delete", controllers.AdminProductDelete(rs, p.Products, logg))
			})

			r.Route("/categories", func(r chi.Router) {
				r.Get("/", controllers.AdminCategories(rs, p.Categories))
				r.Get("/new", controllers.AdminCategoryNew(rs, p.Categories))
				r.Post("/", controllers.AdminCategorySave(rs, p.Categories, logg))
				r.Get("/{id}/edit", controllers.AdminCategoryEdit(rs, p.Categories))
				r.Post("/{id}", controllers.AdminCategorySave(rs, p.Categories, logg))
				r.Get("/{id}/delete", controllers.AdminCategoryConfirmDelete(rs, p.Categories))
				r.Post("/{id}/delete", controllers.AdminCategoryDelete(rs, p.Categories, logg))
			})

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.AdminOrders(rs, p.Admin))
				r.Get("/{id}", controllers.AdminOrder(rs, p.Admin))
				r.Post("/{id}/status", controllers.AdminOrderStatus(rs, p.Admin, logg))
			})

			r.Get("/users", controllers.AdminUsers(rs, p.Admin))
		})
	})

	return r, nil
}

func confirmationDelay(cfg *config.Config) time.Duration {
	if cfg.Checkout.ConfirmationRedirectDelay > 0 {
		return cfg.Checkout.ConfirmationRedirectDelay
	}
	return 3 * time.Second
}
