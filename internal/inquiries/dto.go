package inquiries

import (
	"time"

	"github.com/google/uuid"

	"github.com/Devaraju89/OneKart-sub000/pkg/db/models"
	"github.com/Devaraju89/OneKart-sub000/pkg/enums"
)

type CreateInquiryRequest struct {
	RecipientID   uuid.UUID  `json:"recipientId" validate:"required"`
	RecipientRole string     `json:"recipientRole"`
	Subject       string     `json:"subject" validate:"required"`
	Body          string     `json:"body" validate:"required"`
	ProductID     *uuid.UUID `json:"productId"`
	OrderID       *uuid.UUID `json:"orderId"`
	RepliedTo     *uuid.UUID `json:"repliedTo"`
}

type InquiryResponse struct {
	ID             uuid.UUID        `json:"id"`
	SenderID       uuid.UUID        `json:"senderId"`
	SenderModel    enums.PartyModel `json:"senderModel"`
	SenderRole     enums.Role       `json:"senderRole"`
	RecipientID    uuid.UUID        `json:"recipientId"`
	RecipientModel enums.PartyModel `json:"recipientModel"`
	RecipientRole  enums.Role       `json:"recipientRole"`
	Subject        string           `json:"subject"`
	Body           string           `json:"body"`
	ProductID      *uuid.UUID       `json:"productId,omitempty"`
	OrderID        *uuid.UUID       `json:"orderId,omitempty"`
	RepliedTo      *uuid.UUID       `json:"repliedTo,omitempty"`
	IsRead         bool             `json:"isRead"`
	CreatedAt      time.Time        `json:"createdAt"`
}

func toInquiryResponse(inquiry *models.Inquiry) *InquiryResponse {
	return &InquiryResponse{
		ID:             inquiry.ID,
		SenderID:       inquiry.SenderID,
		SenderModel:    inquiry.SenderModel,
		SenderRole:     inquiry.SenderRole,
		RecipientID:    inquiry.RecipientID,
		RecipientModel: inquiry.RecipientModel,
		RecipientRole:  inquiry.RecipientRole,
		Subject:        inquiry.Subject,
		Body:           inquiry.Body,
		ProductID:      inquiry.ProductID,
		OrderID:        inquiry.OrderID,
		RepliedTo:      inquiry.RepliedTo,
		IsRead:         inquiry.IsRead,
		CreatedAt:      inquiry.CreatedAt,
	}
}
