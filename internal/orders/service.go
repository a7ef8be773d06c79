package orders

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Devaraju89/OneKart-sub000/internal/identity"
	"github.com/Devaraju89/OneKart-sub000/internal/payments"
	"github.com/Devaraju89/OneKart-sub000/pkg/db"
	"github.com/Devaraju89/OneKart-sub000/pkg/db/models"
	"github.com/Devaraju89/OneKart-sub000/pkg/enums"
	pkgerrors "github.com/Devaraju89/OneKart-sub000/pkg/errors"
	"github.com/Devaraju89/OneKart-sub000/pkg/logger"
	"github.com/Devaraju89/OneKart-sub000/pkg/metrics"
)

// CapabilityConsumer redeems the single-use payment verification capability
// minted by the callback verification path. Consuming removes the token, so
// a capability can mark at most one order paid. The grant names the order
// and amount the verified checkout was opened for.
type CapabilityConsumer interface {
	ConsumeCapability(ctx context.Context, gatewayOrderID string) (payments.CapabilityGrant, error)
}

// Service is the order aggregate's operation surface.
type Service interface {
	Create(ctx context.Context, actor *identity.Identity, req CreateOrderRequest) (*OrderResponse, error)
	Get(ctx context.Context, actor *identity.Identity, id uuid.UUID) (*OrderResponse, error)
	List(ctx context.Context, actor *identity.Identity) ([]OrderResponse, error)
	ListMine(ctx context.Context, actor *identity.Identity) ([]OrderResponse, error)
	RecordPayment(ctx context.Context, actor *identity.Identity, id uuid.UUID, req RecordPaymentRequest) (*OrderResponse, error)
	AdvanceStatus(ctx context.Context, actor *identity.Identity, id uuid.UUID, req AdvanceStatusRequest) (*OrderResponse, error)
	Cancel(ctx context.Context, actor *identity.Identity, id uuid.UUID, req CancelOrderRequest) (*OrderResponse, error)
	UpdateRefundStatus(ctx context.Context, actor *identity.Identity, id uuid.UUID, req UpdateRefundStatusRequest) (*OrderResponse, error)
}

// ServiceParams bundles the dependencies required to build the service.
type ServiceParams struct {
	Repo              Repository
	Tx                db.TxRunner
	Pricing           *Pricing
	Capabilities      CapabilityConsumer
	StrictTransitions bool
	Logger            *logger.Logger
}

type service struct {
	repo         Repository
	tx           db.TxRunner
	pricing      *Pricing
	capabilities CapabilityConsumer
	strict       bool
	logg         *logger.Logger
}

// NewService validates the wiring and returns the order service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "order repository required")
	}
	if params.Tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "transaction runner required")
	}
	if params.Pricing == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "pricing rules required")
	}
	if params.Capabilities == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "capability consumer required")
	}
	return &service{
		repo:         params.Repo,
		tx:           params.Tx,
		pricing:      params.Pricing,
		capabilities: params.Capabilities,
		strict:       params.StrictTransitions,
		logg:         params.Logger,
	}, nil
}

func (s *service) Create(ctx context.Context, actor *identity.Identity, req CreateOrderRequest) (*OrderResponse, error) {
	if len(req.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order must contain at least one item")
	}
	for _, item := range req.Items {
		if item.Qty <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "item quantity must be positive")
		}
		if item.UnitPrice.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "item unit price cannot be negative")
		}
	}

	quote := s.pricing.QuoteItems(req.Items)

	order := &models.Order{
		ID:              uuid.New(),
		CustomerID:      actor.ID,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		ItemsPrice:      quote.ItemsPrice,
		TaxPrice:        quote.TaxPrice,
		ShippingPrice:   quote.ShippingPrice,
		TotalPrice:      quote.TotalPrice,
		Status:          enums.OrderStatusPending,
		RefundStatus:    enums.RefundStatusNotApplicable,
	}
	for _, item := range req.Items {
		order.Items = append(order.Items, models.OrderItem{
			ID:        uuid.New(),
			OrderID:   order.ID,
			ProductID: item.ProductID,
			SellerID:  item.SellerID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Qty:       item.Qty,
			Image:     item.Image,
		})
	}

	if err := s.repo.Create(ctx, order); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
	}

	metrics.OrdersCreated.Inc()
	if s.logg != nil {
		s.logg.Info(s.logg.WithOrderID(ctx, order.ID.String()), "order created")
	}
	return toOrderResponse(order), nil
}

func (s *service) Get(ctx context.Context, actor *identity.Identity, id uuid.UUID) (*OrderResponse, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err)
	}
	if !canView(actor, order) {
		// Outsiders cannot distinguish "not yours" from "does not exist".
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return toOrderResponse(order), nil
}

func (s *service) List(ctx context.Context, actor *identity.Identity) ([]OrderResponse, error) {
	var (
		orderList []models.Order
		err       error
	)
	switch {
	case actor.IsAdmin():
		orderList, err = s.repo.ListAll(ctx)
	case actor.IsFarmer():
		orderList, err = s.repo.ListBySeller(ctx, actor.ID)
	default:
		orderList, err = s.repo.ListByCustomer(ctx, actor.ID)
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return toOrderResponses(orderList), nil
}

func (s *service) ListMine(ctx context.Context, actor *identity.Identity) ([]OrderResponse, error) {
	orderList, err := s.repo.ListByCustomer(ctx, actor.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return toOrderResponses(orderList), nil
}

// RecordPayment marks the order paid from a verified gateway result. The
// caller must present the capability minted by the verification endpoint,
// and the capability must have been minted for this order at its total;
// it is consumed even when the order is already paid.
func (s *service) RecordPayment(ctx context.Context, actor *identity.Identity, id uuid.UUID, req RecordPaymentRequest) (*OrderResponse, error) {
	var out *OrderResponse
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		order, err := repo.FindByID(ctx, id)
		if err != nil {
			return lookupError(err)
		}
		if order.CustomerID != actor.ID && !actor.IsAdmin() {
			return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}

		grant, err := s.capabilities.ConsumeCapability(ctx, req.GatewayOrderID)
		if err != nil {
			return err
		}
		if grant.Token != req.Capability {
			return pkgerrors.New(pkgerrors.CodeForbidden, "payment verification capability mismatch")
		}
		if grant.OrderID != order.ID {
			return pkgerrors.New(pkgerrors.CodeForbidden, "capability was minted for a different order")
		}
		if grant.AmountMinor != payments.MinorUnits(order.TotalPrice) {
			return pkgerrors.New(pkgerrors.CodeForbidden, "capability amount does not match the order total")
		}

		if order.IsPaid {
			out = toOrderResponse(order)
			return nil
		}

		now := time.Now().UTC()
		order.IsPaid = true
		order.PaidAt = &now
		order.PaymentResult = &models.PaymentResult{
			TransactionID: req.GatewayPaymentID,
			Status:        "captured",
			UpdateTime:    &now,
			PayerEmail:    req.PayerEmail,
		}
		if err := repo.Save(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save order payment")
		}
		out = toOrderResponse(order)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if s.logg != nil {
		s.logg.Info(s.logg.WithOrderID(ctx, id.String()), "order payment recorded")
	}
	return out, nil
}

func (s *service) AdvanceStatus(ctx context.Context, actor *identity.Identity, id uuid.UUID, req AdvanceStatusRequest) (*OrderResponse, error) {
	target, err := enums.ParseOrderStatus(req.Status)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}
	if target == enums.OrderStatusCancelled {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cancellation has its own endpoint")
	}

	var out *OrderResponse
	txErr := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		order, err := repo.FindByID(ctx, id)
		if err != nil {
			return lookupError(err)
		}
		if err := requireFulfilmentActor(actor, order); err != nil {
			return err
		}
		if order.Status.IsTerminal() {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "order is in a terminal state")
		}
		if !order.Status.CanAdvanceTo(target, s.strict) {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "status cannot move from "+order.Status.String()+" to "+target.String())
		}

		order.Status = target
		if req.TrackingNumber != nil && *req.TrackingNumber != "" {
			order.TrackingNumber = req.TrackingNumber
		}
		if target == enums.OrderStatusDelivered {
			now := time.Now().UTC()
			order.IsDelivered = true
			order.DeliveredAt = &now
		}
		if err := repo.Save(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save order status")
		}
		out = toOrderResponse(order)
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return out, nil
}

func (s *service) Cancel(ctx context.Context, actor *identity.Identity, id uuid.UUID, req CancelOrderRequest) (*OrderResponse, error) {
	var out *OrderResponse
	var refundBranch string
	txErr := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		order, err := repo.FindByID(ctx, id)
		if err != nil {
			return lookupError(err)
		}
		if order.CustomerID != actor.ID && !actor.IsAdmin() {
			return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		if order.Status.IsTerminal() {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "order is in a terminal state")
		}

		order.Status = enums.OrderStatusCancelled
		order.CancellationReason = &req.Reason
		if isCOD(order.PaymentMethod) {
			order.RefundStatus = enums.RefundStatusNotApplicable
			refundBranch = "not_applicable"
		} else {
			order.RefundStatus = enums.RefundStatusProcessing
			if req.UPIID != nil && *req.UPIID != "" {
				order.UPIID = req.UPIID
			}
			refundBranch = "processing"
		}

		if err := repo.Save(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save order cancellation")
		}
		out = toOrderResponse(order)
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	metrics.OrdersCancelled.WithLabelValues(refundBranch).Inc()
	if s.logg != nil {
		s.logg.Info(s.logg.WithOrderID(ctx, id.String()), "order cancelled")
	}
	return out, nil
}

func (s *service) UpdateRefundStatus(ctx context.Context, actor *identity.Identity, id uuid.UUID, req UpdateRefundStatusRequest) (*OrderResponse, error) {
	target, err := enums.ParseRefundStatus(req.Status)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}

	var out *OrderResponse
	txErr := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		order, err := repo.FindByID(ctx, id)
		if err != nil {
			return lookupError(err)
		}
		if err := requireFulfilmentActor(actor, order); err != nil {
			return err
		}
		if order.Status != enums.OrderStatusCancelled {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "refund status applies to cancelled orders only")
		}
		if isCOD(order.PaymentMethod) {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "cash orders have no refund pipeline")
		}

		order.RefundStatus = target
		if err := repo.Save(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save refund status")
		}
		out = toOrderResponse(order)
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return out, nil
}

// canView grants read access to the owning customer, any admin, and any
// seller holding at least one line item.
func canView(actor *identity.Identity, order *models.Order) bool {
	if actor.IsAdmin() || order.CustomerID == actor.ID {
		return true
	}
	if actor.IsFarmer() {
		return sellerHasItem(actor.ID, order)
	}
	return false
}

// requireFulfilmentActor admits admins and sellers owning a line item on the
// order. Sellers with no stake get Forbidden rather than NotFound: they
// reached a mutation endpoint, so hiding existence buys nothing.
func requireFulfilmentActor(actor *identity.Identity, order *models.Order) error {
	if actor.IsAdmin() {
		return nil
	}
	if actor.IsFarmer() && sellerHasItem(actor.ID, order) {
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeForbidden, "not a fulfilment party on this order")
}

func sellerHasItem(sellerID uuid.UUID, order *models.Order) bool {
	for _, item := range order.Items {
		if item.SellerID == sellerID {
			return true
		}
	}
	return false
}

func isCOD(method string) bool {
	return strings.EqualFold(strings.TrimSpace(method), PaymentMethodCOD)
}

func lookupError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
}
