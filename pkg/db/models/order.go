package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Devaraju89/OneKart-sub000/pkg/enums"
	"github.com/Devaraju89/OneKart-sub000/pkg/types"
)

// PaymentResult snapshots the gateway's view of a settled payment. Written
// only by the payment reconciliation path, never from a client claim.
type PaymentResult struct {
	TransactionID string     `json:"transactionId" gorm:"column:transaction_id"`
	Status        string     `json:"status" gorm:"column:status"`
	UpdateTime    *time.Time `json:"updateTime,omitempty" gorm:"column:update_time"`
	PayerEmail    string     `json:"payerEmail,omitempty" gorm:"column:payer_email"`
}

// Order is the aggregate root for the order lifecycle. Orders are owned by
// exactly one customer and are never physically deleted.
type Order struct {
	ID                 uuid.UUID             `gorm:"column:id;type:uuid;primaryKey"`
	CustomerID         uuid.UUID             `gorm:"column:customer_id;type:uuid;not null;index"`
	Items              []OrderItem           `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	ShippingAddress    types.ShippingAddress `gorm:"embedded;embeddedPrefix:shipping_"`
	PaymentMethod      string                `gorm:"column:payment_method;not null"`
	ItemsPrice         decimal.Decimal       `gorm:"column:items_price;type:numeric;not null"`
	TaxPrice           decimal.Decimal       `gorm:"column:tax_price;type:numeric;not null"`
	ShippingPrice      decimal.Decimal       `gorm:"column:shipping_price;type:numeric;not null"`
	TotalPrice         decimal.Decimal       `gorm:"column:total_price;type:numeric;not null"`
	IsPaid             bool                  `gorm:"column:is_paid;not null;default:false"`
	PaidAt             *time.Time            `gorm:"column:paid_at"`
	PaymentResult      *PaymentResult        `gorm:"embedded;embeddedPrefix:payment_result_"`
	IsDelivered        bool                  `gorm:"column:is_delivered;not null;default:false"`
	DeliveredAt        *time.Time            `gorm:"column:delivered_at"`
	Status             enums.OrderStatus     `gorm:"column:status;type:text;not null;default:'Pending'"`
	RefundStatus       enums.RefundStatus    `gorm:"column:refund_status;type:text;not null;default:'Not Applicable'"`
	CancellationReason *string               `gorm:"column:cancellation_reason"`
	TrackingNumber     *string               `gorm:"column:tracking_number"`
	UPIID              *string               `gorm:"column:upi_id"`
	CreatedAt          time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
