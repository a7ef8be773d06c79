package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Devaraju89/OneKart-sub000/api/controllers"
	"github.com/Devaraju89/OneKart-sub000/api/middleware"
	"github.com/Devaraju89/OneKart-sub000/internal/identity"
	"github.com/Devaraju89/OneKart-sub000/internal/inquiries"
	"github.com/Devaraju89/OneKart-sub000/internal/orders"
	"github.com/Devaraju89/OneKart-sub000/internal/payments"
	"github.com/Devaraju89/OneKart-sub000/pkg/config"
	"github.com/Devaraju89/OneKart-sub000/pkg/db"
	"github.com/Devaraju89/OneKart-sub000/pkg/enums"
	"github.com/Devaraju89/OneKart-sub000/pkg/logger"
	"github.com/Devaraju89/OneKart-sub000/pkg/redis"
)

// NewRouter wires every HTTP route. Authentication and the role gate are
// middleware; record-level ownership stays inside the services.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	resolver identity.Resolver,
	identityService identity.Service,
	orderService orders.Service,
	paymentService payments.Service,
	inquiryService inquiries.Service,
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
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/register", controllers.RegisterCustomer(identityService, logg))
		r.Post("/login", controllers.Login(identityService, logg, enums.RoleCustomer))
		r.Route("/seller", func(r chi.Router) {
			r.Post("/register", controllers.RegisterSeller(identityService, logg))
			r.Post("/login", controllers.Login(identityService, logg, enums.RoleFarmer))
		})
		r.Post("/admin/login", controllers.Login(identityService, logg, enums.RoleAdmin))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(resolver, logg))

		r.Route("/admin/sellers", func(r chi.Router) {
			r.Use(middleware.RequireRoles(logg, enums.RoleAdmin))
			r.Put("/{sellerId}/status", controllers.UpdateSellerStatus(identityService, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.With(middleware.RequireRoles(logg, enums.RoleCustomer)).Post("/", controllers.CreateOrder(orderService, logg))
			r.Get("/", controllers.ListOrders(orderService, logg))
			r.With(middleware.RequireRoles(logg, enums.RoleCustomer)).Get("/mine", controllers.ListMyOrders(orderService, logg))
			r.Get("/{orderId}", controllers.GetOrder(orderService, logg))
			r.With(middleware.RequireRoles(logg, enums.RoleCustomer, enums.RoleAdmin)).Put("/{orderId}/pay", controllers.PayOrder(orderService, logg))
			r.With(middleware.RequireRoles(logg, enums.RoleFarmer, enums.RoleAdmin)).Put("/{orderId}/status", controllers.UpdateOrderStatus(orderService, logg))
			r.With(middleware.RequireRoles(logg, enums.RoleCustomer, enums.RoleAdmin)).Put("/{orderId}/cancel", controllers.CancelOrder(orderService, logg))
			r.With(middleware.RequireRoles(logg, enums.RoleFarmer, enums.RoleAdmin)).Put("/{orderId}/refund-status", controllers.UpdateRefundStatus(orderService, logg))
		})

		r.Route("/payments", func(r chi.Router) {
			r.Use(middleware.RequireRoles(logg, enums.RoleCustomer))
			r.Post("/create-order", controllers.CreatePaymentOrder(paymentService, logg))
			r.Post("/verify", controllers.VerifyPayment(paymentService, logg))
		})

		r.Route("/inquiries", func(r chi.Router) {
			r.Post("/", controllers.CreateInquiry(inquiryService, logg))
			r.Get("/", controllers.ListInquiries(inquiryService, logg))
			r.Put("/{inquiryId}/read", controllers.MarkInquiryRead(inquiryService, logg))
		})
	})

	return r
}
