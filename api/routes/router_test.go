package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/Devaraju89/OneKart-sub000/internal/identity"
	"github.com/Devaraju89/OneKart-sub000/internal/inquiries"
	"github.com/Devaraju89/OneKart-sub000/internal/orders"
	"github.com/Devaraju89/OneKart-sub000/internal/payments"
	"github.com/Devaraju89/OneKart-sub000/pkg/config"
	"github.com/Devaraju89/OneKart-sub000/pkg/enums"
	pkgerrors "github.com/Devaraju89/OneKart-sub000/pkg/errors"
)

type fakeResolver struct {
	identity *identity.Identity
}

func (f *fakeResolver) Resolve(ctx context.Context, token string) (*identity.Identity, error) {
	if f.identity == nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid token")
	}
	return f.identity, nil
}

type fakeIdentityService struct{}

func (fakeIdentityService) RegisterCustomer(ctx context.Context, req identity.RegisterRequest) (*identity.Profile, error) {
	return &identity.Profile{ID: uuid.New(), Role: enums.RoleCustomer}, nil
}
func (fakeIdentityService) RegisterSeller(ctx context.Context, req identity.RegisterRequest) (*identity.Profile, error) {
	return &identity.Profile{ID: uuid.New(), Role: enums.RoleFarmer}, nil
}
func (fakeIdentityService) Login(ctx context.Context, role enums.Role, req identity.LoginRequest) (*identity.LoginResponse, error) {
	return &identity.LoginResponse{AccessToken: "token"}, nil
}
func (fakeIdentityService) SetSellerStatus(ctx context.Context, sellerID uuid.UUID, status enums.SellerStatus) error {
	return nil
}

type fakeOrderService struct{}

func (fakeOrderService) Create(ctx context.Context, actor *identity.Identity, req orders.CreateOrderRequest) (*orders.OrderResponse, error) {
	return &orders.OrderResponse{ID: uuid.New()}, nil
}
func (fakeOrderService) Get(ctx context.Context, actor *identity.Identity, id uuid.UUID) (*orders.OrderResponse, error) {
	return &orders.OrderResponse{ID: id}, nil
}
func (fakeOrderService) List(ctx context.Context, actor *identity.Identity) ([]orders.OrderResponse, error) {
	return []orders.OrderResponse{}, nil
}
func (fakeOrderService) ListMine(ctx context.Context, actor *identity.Identity) ([]orders.OrderResponse, error) {
	return []orders.OrderResponse{}, nil
}
func (fakeOrderService) RecordPayment(ctx context.Context, actor *identity.Identity, id uuid.UUID, req orders.RecordPaymentRequest) (*orders.OrderResponse, error) {
	return &orders.OrderResponse{ID: id}, nil
}
func (fakeOrderService) AdvanceStatus(ctx context.Context, actor *identity.Identity, id uuid.UUID, req orders.AdvanceStatusRequest) (*orders.OrderResponse, error) {
	return &orders.OrderResponse{ID: id}, nil
}
func (fakeOrderService) Cancel(ctx context.Context, actor *identity.Identity, id uuid.UUID, req orders.CancelOrderRequest) (*orders.OrderResponse, error) {
	return &orders.OrderResponse{ID: id}, nil
}
func (fakeOrderService) UpdateRefundStatus(ctx context.Context, actor *identity.Identity, id uuid.UUID, req orders.UpdateRefundStatusRequest) (*orders.OrderResponse, error) {
	return &orders.OrderResponse{ID: id}, nil
}

type fakePaymentService struct{}

func (fakePaymentService) CreateIntent(ctx context.Context, req payments.CreateIntentRequest) (*payments.IntentResponse, error) {
	return &payments.IntentResponse{GatewayOrderID: "order_G1"}, nil
}
func (fakePaymentService) VerifyCallback(ctx context.Context, req payments.VerifyRequest) (*payments.VerifyResponse, error) {
	return &payments.VerifyResponse{Capability: "cap"}, nil
}
func (fakePaymentService) ConsumeCapability(ctx context.Context, gatewayOrderID string) (payments.CapabilityGrant, error) {
	return payments.CapabilityGrant{Token: "cap"}, nil
}

type fakeInquiryService struct{}

func (fakeInquiryService) Create(ctx context.Context, actor *identity.Identity, req inquiries.CreateInquiryRequest) (*inquiries.InquiryResponse, error) {
	return &inquiries.InquiryResponse{ID: uuid.New()}, nil
}
func (fakeInquiryService) List(ctx context.Context, actor *identity.Identity) ([]inquiries.InquiryResponse, error) {
	return []inquiries.InquiryResponse{}, nil
}
func (fakeInquiryService) MarkRead(ctx context.Context, actor *identity.Identity, id uuid.UUID) (*inquiries.InquiryResponse, error) {
	return &inquiries.InquiryResponse{ID: id, IsRead: true}, nil
}

func newTestRouter(resolved *identity.Identity) http.Handler {
	cfg := &config.Config{}
	cfg.App.Env = "test"
	return NewRouter(
		cfg,
		nil,
		nil,
		nil,
		&fakeResolver{identity: resolved},
		fakeIdentityService{},
		fakeOrderService{},
		fakePaymentService{},
		fakeInquiryService{},
	)
}

func TestHealthLive(t *testing.T) {
	router := newTestRouter(nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if env := rec.Header().Get("X-OneKart-Env"); env != "test" {
		t.Fatalf("env header = %q", env)
	}
}

func TestMetricsExposed(t *testing.T) {
	router := newTestRouter(nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestOrdersRequireAuthentication(t *testing.T) {
	router := newTestRouter(nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestOrdersListAuthenticated(t *testing.T) {
	router := newTestRouter(&identity.Identity{ID: uuid.New(), Role: enums.RoleCustomer})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	req.Header.Set("Authorization", "Bearer token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}
}

func TestPaymentsRejectNonCustomerRole(t *testing.T) {
	router := newTestRouter(&identity.Identity{ID: uuid.New(), Role: enums.RoleFarmer})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/create-order", nil)
	req.Header.Set("Authorization", "Bearer token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestAdminSellerStatusRequiresAdmin(t *testing.T) {
	router := newTestRouter(&identity.Identity{ID: uuid.New(), Role: enums.RoleCustomer})

	req := httptest.NewRequest(http.MethodPut, "/api/v1/admin/sellers/"+uuid.NewString()+"/status", nil)
	req.Header.Set("Authorization", "Bearer token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d", rec.Code)
	}
}
