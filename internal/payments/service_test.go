package payments

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Devaraju89/OneKart-sub000/pkg/config"
	pkgerrors "github.com/Devaraju89/OneKart-sub000/pkg/errors"
	pkgredis "github.com/Devaraju89/OneKart-sub000/pkg/redis"
)

type stubGateway struct {
	lastAmount   int64
	lastCurrency string
	lastReceipt  string
	fail         error
}

func (s *stubGateway) CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (*GatewayOrder, error) {
	if s.fail != nil {
		return nil, s.fail
	}
	s.lastAmount = amountMinor
	s.lastCurrency = currency
	s.lastReceipt = receipt
	return &GatewayOrder{ID: "order_G1", Amount: amountMinor, Currency: currency, Status: "created"}, nil
}

type stubCapabilityStore struct {
	values map[string]string
}

func newStubCapabilityStore() *stubCapabilityStore {
	return &stubCapabilityStore{values: map[string]string{}}
}

func (s *stubCapabilityStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	s.values[key] = value.(string)
	return nil
}

func (s *stubCapabilityStore) GetDel(ctx context.Context, key string) (string, error) {
	value, ok := s.values[key]
	if !ok {
		return "", pkgredis.Nil
	}
	delete(s.values, key)
	return value, nil
}

func testGatewayConfig() config.GatewayConfig {
	return config.GatewayConfig{
		BaseURL:       "https://gateway.test",
		KeyID:         "key_test",
		Secret:        "secret_test",
		Currency:      "INR",
		Timeout:       5 * time.Second,
		CapabilityTTL: time.Minute,
	}
}

func newTestService(t *testing.T, gw Gateway, store CapabilityStore) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{Gateway: gw, Capabilities: store, Config: testGatewayConfig()})
	if err != nil {
		t.Fatalf("service constructor failed: %v", err)
	}
	return svc
}

func TestCreateIntentConvertsToMinorUnits(t *testing.T) {
	gw := &stubGateway{}
	store := newStubCapabilityStore()
	svc := newTestService(t, gw, store)

	orderID := uuid.New()
	resp, err := svc.CreateIntent(context.Background(), CreateIntentRequest{
		OrderID: orderID,
		Amount:  decimal.RequireFromString("787.50"),
		Receipt: "rcpt-1",
	})
	if err != nil {
		t.Fatalf("create intent failed: %v", err)
	}
	if resp.AmountMinor != 78750 {
		t.Fatalf("amount minor = %d", resp.AmountMinor)
	}
	if gw.lastAmount != 78750 || gw.lastCurrency != "INR" || gw.lastReceipt != "rcpt-1" {
		t.Fatalf("gateway call = %+v", gw)
	}
	if resp.GatewayOrderID != "order_G1" || resp.KeyID != "key_test" {
		t.Fatalf("response = %+v", resp)
	}

	intent, ok := store.values[pkgredis.IntentKey("order_G1")]
	if !ok {
		t.Fatal("expected pending intent recorded")
	}
	if !strings.Contains(intent, orderID.String()) {
		t.Fatalf("intent not bound to order: %s", intent)
	}
}

func TestCreateIntentRejectsNonPositiveAmount(t *testing.T) {
	svc := newTestService(t, &stubGateway{}, newStubCapabilityStore())

	for _, amount := range []string{"0", "-10"} {
		_, err := svc.CreateIntent(context.Background(), CreateIntentRequest{OrderID: uuid.New(), Amount: decimal.RequireFromString(amount)})
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("amount %s: expected validation error got %v", amount, err)
		}
	}
}

func TestCreateIntentRequiresOrderID(t *testing.T) {
	svc := newTestService(t, &stubGateway{}, newStubCapabilityStore())

	_, err := svc.CreateIntent(context.Background(), CreateIntentRequest{Amount: decimal.RequireFromString("100")})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error got %v", err)
	}
}

func TestCreateIntentPropagatesUpstreamError(t *testing.T) {
	gw := &stubGateway{fail: pkgerrors.New(pkgerrors.CodeUpstream, "payment gateway returned 503")}
	svc := newTestService(t, gw, newStubCapabilityStore())

	_, err := svc.CreateIntent(context.Background(), CreateIntentRequest{OrderID: uuid.New(), Amount: decimal.RequireFromString("100")})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUpstream {
		t.Fatalf("expected upstream error got %v", err)
	}
}

func TestVerifyCallbackRoundTrip(t *testing.T) {
	store := newStubCapabilityStore()
	svc := newTestService(t, &stubGateway{}, store)

	orderID := uuid.New()
	if _, err := svc.CreateIntent(context.Background(), CreateIntentRequest{OrderID: orderID, Amount: decimal.RequireFromString("260")}); err != nil {
		t.Fatalf("create intent failed: %v", err)
	}

	signature := SignPayment("secret_test", "order_G1", "pay_G1")
	resp, err := svc.VerifyCallback(context.Background(), VerifyRequest{
		GatewayOrderID:   "order_G1",
		GatewayPaymentID: "pay_G1",
		Signature:        signature,
	})
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if resp.Capability == "" {
		t.Fatal("expected capability token")
	}

	grant, err := svc.ConsumeCapability(context.Background(), "order_G1")
	if err != nil {
		t.Fatalf("consume failed: %v", err)
	}
	if grant.Token != resp.Capability {
		t.Fatalf("consumed token %q != minted %q", grant.Token, resp.Capability)
	}
	if grant.OrderID != orderID {
		t.Fatalf("grant order = %s want %s", grant.OrderID, orderID)
	}
	if grant.AmountMinor != 26000 {
		t.Fatalf("grant amount = %d", grant.AmountMinor)
	}

	// Single use.
	_, err = svc.ConsumeCapability(context.Background(), "order_G1")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden on second consume got %v", err)
	}
}

func TestVerifyCallbackWithoutIntent(t *testing.T) {
	store := newStubCapabilityStore()
	svc := newTestService(t, &stubGateway{}, store)

	signature := SignPayment("secret_test", "order_G1", "pay_G1")
	_, err := svc.VerifyCallback(context.Background(), VerifyRequest{
		GatewayOrderID:   "order_G1",
		GatewayPaymentID: "pay_G1",
		Signature:        signature,
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden without intent got %v", err)
	}
	if len(store.values) != 0 {
		t.Fatal("no capability may be minted without an intent")
	}
}

func TestVerifyCallbackSingleCharacterTamper(t *testing.T) {
	store := newStubCapabilityStore()
	svc := newTestService(t, &stubGateway{}, store)

	signature := SignPayment("secret_test", "order_G1", "pay_G1")
	tampered := []byte(signature)
	if tampered[0] == 'a' {
		tampered[0] = 'b'
	} else {
		tampered[0] = 'a'
	}

	_, err := svc.VerifyCallback(context.Background(), VerifyRequest{
		GatewayOrderID:   "order_G1",
		GatewayPaymentID: "pay_G1",
		Signature:        string(tampered),
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeSignatureInvalid {
		t.Fatalf("expected signature invalid got %v", err)
	}
	if len(store.values) != 0 {
		t.Fatal("no capability may be minted on mismatch")
	}
}

func TestVerifyCallbackWrongPaymentID(t *testing.T) {
	svc := newTestService(t, &stubGateway{}, newStubCapabilityStore())

	signature := SignPayment("secret_test", "order_G1", "pay_G1")
	_, err := svc.VerifyCallback(context.Background(), VerifyRequest{
		GatewayOrderID:   "order_G1",
		GatewayPaymentID: "pay_G2",
		Signature:        signature,
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeSignatureInvalid {
		t.Fatalf("expected signature invalid got %v", err)
	}
}
