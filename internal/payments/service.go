package payments

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Devaraju89/OneKart-sub000/pkg/config"
	pkgerrors "github.com/Devaraju89/OneKart-sub000/pkg/errors"
	"github.com/Devaraju89/OneKart-sub000/pkg/logger"
	"github.com/Devaraju89/OneKart-sub000/pkg/metrics"
	pkgredis "github.com/Devaraju89/OneKart-sub000/pkg/redis"
)

// CapabilityStore persists single-use verification capabilities. Satisfied
// by pkg/redis.Client.
type CapabilityStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	GetDel(ctx context.Context, key string) (string, error)
}

type CreateIntentRequest struct {
	OrderID uuid.UUID       `json:"orderId" validate:"required"`
	Amount  decimal.Decimal `json:"amount" validate:"required"`
	Receipt string          `json:"receipt"`
}

// IntentResponse hands the client what it needs to open the gateway
// checkout. KeyID is public; the secret never leaves the server.
type IntentResponse struct {
	GatewayOrderID string `json:"gatewayOrderId"`
	AmountMinor    int64  `json:"amountMinor"`
	Currency       string `json:"currency"`
	KeyID          string `json:"keyId"`
}

type VerifyRequest struct {
	GatewayOrderID   string `json:"gatewayOrderId" validate:"required"`
	GatewayPaymentID string `json:"gatewayPaymentId" validate:"required"`
	Signature        string `json:"signature" validate:"required"`
}

// VerifyResponse carries the single-use capability the client must present
// when marking the order paid.
type VerifyResponse struct {
	GatewayOrderID   string `json:"gatewayOrderId"`
	GatewayPaymentID string `json:"gatewayPaymentId"`
	Capability       string `json:"capability"`
}

// CapabilityGrant is what a consumed capability proves: a verified gateway
// payment for this aggregate order at this amount. The token alone is not
// enough to mark an order paid.
type CapabilityGrant struct {
	Token       string    `json:"token"`
	OrderID     uuid.UUID `json:"orderId"`
	AmountMinor int64     `json:"amountMinor"`
}

// paymentIntent is the pending checkout recorded when an intent is opened,
// keyed by gateway order ID until the callback verifies.
type paymentIntent struct {
	OrderID     uuid.UUID `json:"orderId"`
	AmountMinor int64     `json:"amountMinor"`
}

// Service is the payment bridge: order intents upstream, signature
// verification downstream.
type Service interface {
	CreateIntent(ctx context.Context, req CreateIntentRequest) (*IntentResponse, error)
	VerifyCallback(ctx context.Context, req VerifyRequest) (*VerifyResponse, error)
	ConsumeCapability(ctx context.Context, gatewayOrderID string) (CapabilityGrant, error)
}

// ServiceParams bundles the dependencies required to build the service.
type ServiceParams struct {
	Gateway      Gateway
	Capabilities CapabilityStore
	Config       config.GatewayConfig
	Logger       *logger.Logger
}

type service struct {
	gateway      Gateway
	capabilities CapabilityStore
	cfg          config.GatewayConfig
	logg         *logger.Logger
}

// NewService validates the wiring and returns the payment service.
func NewService(params ServiceParams) (Service, error) {
	if params.Gateway == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "payment gateway required")
	}
	if params.Capabilities == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "capability store required")
	}
	if err := params.Config.Validate(); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "gateway config")
	}
	return &service{
		gateway:      params.Gateway,
		capabilities: params.Capabilities,
		cfg:          params.Config,
		logg:         params.Logger,
	}, nil
}

// MinorUnits converts a major-unit amount to the gateway's minor units.
// 787.50 becomes 78750 paise.
func MinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// CreateIntent opens an order upstream and records which aggregate order
// and amount the checkout is for. The capability minted later inherits
// that binding.
func (s *service) CreateIntent(ctx context.Context, req CreateIntentRequest) (*IntentResponse, error) {
	if req.OrderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if !req.Amount.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount must be positive")
	}

	amountMinor := MinorUnits(req.Amount)
	order, err := s.gateway.CreateOrder(ctx, amountMinor, s.cfg.Currency, req.Receipt)
	if err != nil {
		return nil, err
	}

	intent, err := json.Marshal(paymentIntent{OrderID: req.OrderID, AmountMinor: amountMinor})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode intent")
	}
	if err := s.capabilities.Set(ctx, pkgredis.IntentKey(order.ID), string(intent), s.cfg.CapabilityTTL); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store intent")
	}

	if s.logg != nil {
		s.logg.Info(s.logg.WithOrderID(s.logg.WithField(ctx, "gateway_order_id", order.ID), req.OrderID.String()), "payment intent created")
	}
	return &IntentResponse{
		GatewayOrderID: order.ID,
		AmountMinor:    amountMinor,
		Currency:       s.cfg.Currency,
		KeyID:          s.cfg.KeyID,
	}, nil
}

// VerifyCallback checks the gateway's HMAC over "orderID|paymentID". On a
// match it redeems the pending intent and mints a single-use capability
// bound to that intent's order and amount; on a mismatch nothing is
// written.
func (s *service) VerifyCallback(ctx context.Context, req VerifyRequest) (*VerifyResponse, error) {
	expected := SignPayment(s.cfg.Secret, req.GatewayOrderID, req.GatewayPaymentID)
	if !hmac.Equal([]byte(expected), []byte(req.Signature)) {
		metrics.PaymentVerifications.WithLabelValues("rejected").Inc()
		if s.logg != nil {
			s.logg.Warn(s.logg.WithField(ctx, "gateway_order_id", req.GatewayOrderID), "payment signature rejected")
		}
		return nil, pkgerrors.New(pkgerrors.CodeSignatureInvalid, "payment signature verification failed")
	}

	raw, err := s.capabilities.GetDel(ctx, pkgredis.IntentKey(req.GatewayOrderID))
	if err != nil {
		if errors.Is(err, pkgredis.Nil) {
			metrics.PaymentVerifications.WithLabelValues("rejected").Inc()
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "payment intent missing or expired")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load intent")
	}
	var intent paymentIntent
	if err := json.Unmarshal([]byte(raw), &intent); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decode intent")
	}

	token, err := mintCapability()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint capability")
	}
	grant, err := json.Marshal(CapabilityGrant{Token: token, OrderID: intent.OrderID, AmountMinor: intent.AmountMinor})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode capability")
	}
	key := pkgredis.CapabilityKey(req.GatewayOrderID)
	if err := s.capabilities.Set(ctx, key, string(grant), s.cfg.CapabilityTTL); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store capability")
	}

	metrics.PaymentVerifications.WithLabelValues("verified").Inc()
	if s.logg != nil {
		s.logg.Info(s.logg.WithField(ctx, "gateway_order_id", req.GatewayOrderID), "payment signature verified")
	}
	return &VerifyResponse{
		GatewayOrderID:   req.GatewayOrderID,
		GatewayPaymentID: req.GatewayPaymentID,
		Capability:       token,
	}, nil
}

// ConsumeCapability redeems and removes the capability for a gateway order.
// A second consume for the same order always fails.
func (s *service) ConsumeCapability(ctx context.Context, gatewayOrderID string) (CapabilityGrant, error) {
	raw, err := s.capabilities.GetDel(ctx, pkgredis.CapabilityKey(gatewayOrderID))
	if err != nil {
		if errors.Is(err, pkgredis.Nil) {
			return CapabilityGrant{}, pkgerrors.New(pkgerrors.CodeForbidden, "payment verification capability missing or expired")
		}
		return CapabilityGrant{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "consume capability")
	}
	var grant CapabilityGrant
	if err := json.Unmarshal([]byte(raw), &grant); err != nil {
		return CapabilityGrant{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decode capability")
	}
	return grant, nil
}

// SignPayment computes the hex HMAC-SHA256 the gateway sends back after a
// successful checkout.
func SignPayment(secret, gatewayOrderID, gatewayPaymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(gatewayOrderID + "|" + gatewayPaymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func mintCapability() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
