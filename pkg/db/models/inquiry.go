package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/Devaraju89/OneKart-sub000/pkg/enums"
)

// Inquiry carries a message between any two of the three identity
// collections. Sender and recipient are polymorphic references, each paired
// with a model tag naming the collection and a role tag. New writes always
// carry both tags; legacy rows missing them are repaired lazily on read.
type Inquiry struct {
	ID             uuid.UUID        `gorm:"column:id;type:uuid;primaryKey"`
	SenderID       uuid.UUID        `gorm:"column:sender_id;type:uuid;not null;index"`
	SenderModel    enums.PartyModel `gorm:"column:sender_model;type:text"`
	SenderRole     enums.Role       `gorm:"column:sender_role;type:text"`
	RecipientID    uuid.UUID        `gorm:"column:recipient_id;type:uuid;not null;index"`
	RecipientModel enums.PartyModel `gorm:"column:recipient_model;type:text"`
	RecipientRole  enums.Role       `gorm:"column:recipient_role;type:text"`
	Subject        string           `gorm:"column:subject;not null"`
	Body           string           `gorm:"column:body;not null"`
	ProductID      *uuid.UUID       `gorm:"column:product_id;type:uuid"`
	OrderID        *uuid.UUID       `gorm:"column:order_id;type:uuid"`
	RepliedTo      *uuid.UUID       `gorm:"column:replied_to;type:uuid"`
	IsRead         bool             `gorm:"column:is_read;not null;default:false"`
	CreatedAt      time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
