package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Devaraju89/OneKart-sub000/pkg/db/models"
	"github.com/Devaraju89/OneKart-sub000/pkg/enums"
	"github.com/Devaraju89/OneKart-sub000/pkg/types"
)

// PaymentMethodCOD is the cash sentinel. Orders paid this way never enter
// the refund pipeline.
const PaymentMethodCOD = "COD"

type CreateOrderItem struct {
	ProductID uuid.UUID       `json:"productId" validate:"required"`
	SellerID  uuid.UUID       `json:"sellerId" validate:"required"`
	Name      string          `json:"name" validate:"required"`
	UnitPrice decimal.Decimal `json:"unitPrice" validate:"required"`
	Qty       int             `json:"qty" validate:"required,gt=0"`
	Image     string          `json:"image"`
}

type CreateOrderRequest struct {
	Items           []CreateOrderItem     `json:"items" validate:"required,min=1,dive"`
	ShippingAddress types.ShippingAddress `json:"shippingAddress" validate:"required"`
	PaymentMethod   string                `json:"paymentMethod" validate:"required"`
}

// RecordPaymentRequest carries the gateway identifiers plus the single-use
// capability minted by the verification endpoint. Without a live capability
// the order is never marked paid.
type RecordPaymentRequest struct {
	GatewayOrderID   string `json:"gatewayOrderId" validate:"required"`
	GatewayPaymentID string `json:"gatewayPaymentId" validate:"required"`
	Capability       string `json:"capability" validate:"required"`
	PayerEmail       string `json:"payerEmail"`
}

type AdvanceStatusRequest struct {
	Status         string  `json:"status" validate:"required"`
	TrackingNumber *string `json:"trackingNumber"`
}

type CancelOrderRequest struct {
	Reason string  `json:"reason" validate:"required"`
	UPIID  *string `json:"upiId"`
}

type UpdateRefundStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type OrderItemResponse struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"productId"`
	SellerID  uuid.UUID       `json:"sellerId"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Qty       int             `json:"qty"`
	Image     string          `json:"image,omitempty"`
}

type OrderResponse struct {
	ID                 uuid.UUID             `json:"id"`
	CustomerID         uuid.UUID             `json:"customerId"`
	Items              []OrderItemResponse   `json:"items"`
	ShippingAddress    types.ShippingAddress `json:"shippingAddress"`
	PaymentMethod      string                `json:"paymentMethod"`
	ItemsPrice         decimal.Decimal       `json:"itemsPrice"`
	TaxPrice           decimal.Decimal       `json:"taxPrice"`
	ShippingPrice      decimal.Decimal       `json:"shippingPrice"`
	TotalPrice         decimal.Decimal       `json:"totalPrice"`
	IsPaid             bool                  `json:"isPaid"`
	PaidAt             *time.Time            `json:"paidAt,omitempty"`
	PaymentResult      *models.PaymentResult `json:"paymentResult,omitempty"`
	IsDelivered        bool                  `json:"isDelivered"`
	DeliveredAt        *time.Time            `json:"deliveredAt,omitempty"`
	Status             enums.OrderStatus     `json:"status"`
	RefundStatus       enums.RefundStatus    `json:"refundStatus"`
	CancellationReason *string               `json:"cancellationReason,omitempty"`
	TrackingNumber     *string               `json:"trackingNumber,omitempty"`
	UPIID              *string               `json:"upiId,omitempty"`
	CreatedAt          time.Time             `json:"createdAt"`
	UpdatedAt          time.Time             `json:"updatedAt"`
}

func toOrderResponse(order *models.Order) *OrderResponse {
	items := make([]OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			SellerID:  item.SellerID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Qty:       item.Qty,
			Image:     item.Image,
		})
	}
	return &OrderResponse{
		ID:                 order.ID,
		CustomerID:         order.CustomerID,
		Items:              items,
		ShippingAddress:    order.ShippingAddress,
		PaymentMethod:      order.PaymentMethod,
		ItemsPrice:         order.ItemsPrice,
		TaxPrice:           order.TaxPrice,
		ShippingPrice:      order.ShippingPrice,
		TotalPrice:         order.TotalPrice,
		IsPaid:             order.IsPaid,
		PaidAt:             order.PaidAt,
		PaymentResult:      order.PaymentResult,
		IsDelivered:        order.IsDelivered,
		DeliveredAt:        order.DeliveredAt,
		Status:             order.Status,
		RefundStatus:       order.RefundStatus,
		CancellationReason: order.CancellationReason,
		TrackingNumber:     order.TrackingNumber,
		UPIID:              order.UPIID,
		CreatedAt:          order.CreatedAt,
		UpdatedAt:          order.UpdatedAt,
	}
}

func toOrderResponses(orderList []models.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orderList))
	for i := range orderList {
		out = append(out, *toOrderResponse(&orderList[i]))
	}
	return out
}
