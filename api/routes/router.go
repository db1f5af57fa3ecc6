package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/greenpharma/greenpharma-backend/api/controllers"
	"github.com/greenpharma/greenpharma-backend/api/middleware"
	accountssvc "github.com/greenpharma/greenpharma-backend/internal/accounts"
	authsvc "github.com/greenpharma/greenpharma-backend/internal/auth"
	cartsvc "github.com/greenpharma/greenpharma-backend/internal/cart"
	catalogsvc "github.com/greenpharma/greenpharma-backend/internal/catalog"
	checkoutsvc "github.com/greenpharma/greenpharma-backend/internal/checkout"
	orderssvc "github.com/greenpharma/greenpharma-backend/internal/orders"
	"github.com/greenpharma/greenpharma-backend/pkg/auth/session"
	"github.com/greenpharma/greenpharma-backend/pkg/config"
	"github.com/greenpharma/greenpharma-backend/pkg/enums"
	"github.com/greenpharma/greenpharma-backend/pkg/logger"
)

// Services bundles everything the router wires into controllers.
type Services struct {
	Auth     authsvc.Service
	Accounts accountssvc.Service
	Catalog  catalogsvc.Service
	Cart     cartsvc.Service
	Checkout checkoutsvc.Service
	Orders   orderssvc.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP controllers.Pinger,
	redisP controllers.Pinger,
	sessions session.AccessSessionChecker,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/register", controllers.AuthRegister(svcs.Auth, logg))
		r.Post("/login", controllers.AuthLogin(svcs.Auth, logg))
		r.Post("/refresh", controllers.AuthRefresh(svcs.Auth, logg))
		r.With(middleware.Auth(cfg.JWT, sessions, logg)).Post("/logout", controllers.AuthLogout(svcs.Auth, logg))
	})

	// Public catalog browsing needs no credentials.
	r.Route("/api/v1/catalog", func(r chi.Router) {
		r.Get("/products", controllers.ListProducts(svcs.Catalog, cfg, logg))
		r.Get("/products/{productId}", controllers.ProductDetail(svcs.Catalog, logg))
		r.Get("/categories", controllers.ListCategories(svcs.Catalog, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessions, logg))

		r.Get("/profile/me", controllers.ProfileFetch(svcs.Accounts, logg))
		r.Patch("/profile/me", controllers.ProfileUpdate(svcs.Accounts, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(string(enums.UserRoleCustomer), logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartFetch(svcs.Cart, logg))
				r.Post("/items/{productId}", controllers.CartAddItem(svcs.Cart, logg))
				r.Post("/items/{productId}/increment", controllers.CartIncrementItem(svcs.Cart, logg))
				r.Post("/items/{productId}/decrement", controllers.CartDecrementItem(svcs.Cart, logg))
				r.Delete("/items/{productId}", controllers.CartRemoveItem(svcs.Cart, logg))
			})

			r.Post("/checkout", controllers.Checkout(svcs.Checkout, logg))

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.MyOrders(svcs.Orders, logg))
				r.Get("/{orderId}", controllers.OrderDetail(svcs.Orders, logg))
			})
		})

		r.Route("/seller", func(r chi.Router) {
			r.Use(middleware.RequireRole(string(enums.UserRoleSeller), logg))

			r.Get("/products", controllers.SellerListProducts(svcs.Catalog, logg))
			r.Post("/products", controllers.SellerCreateProduct(svcs.Catalog, logg))
			r.Patch("/products/{productId}", controllers.SellerUpdateProduct(svcs.Catalog, logg))
			r.Delete("/products/{productId}", controllers.SellerDeleteProduct(svcs.Catalog, logg))
			r.Post("/license", controllers.SellerSubmitLicense(svcs.Accounts, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessions, logg))
		r.Use(middleware.RequireRole(string(enums.UserRoleAdmin), logg))

		r.Get("/sellers", controllers.AdminListSellers(svcs.Accounts, logg))
		r.Post("/sellers/{sellerId}/license-status", controllers.AdminSetLicenseStatus(svcs.Accounts, logg))

		r.Post("/categories", controllers.AdminCreateCategory(svcs.Catalog, logg))

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.AdminListOrders(svcs.Orders, logg))
			r.Get("/{orderId}", controllers.OrderDetail(svcs.Orders, logg))
			r.Post("/{orderId}/status", controllers.AdminAdvanceOrderStatus(svcs.Orders, logg))
		})
	})

	return r
}
