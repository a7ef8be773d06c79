package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/Devaraju89/OneKart-sub000/pkg/enums"
)

// Seller is the farmer-side identity record. The role column is persisted
// even though the issued credential is authoritative, so the record
// self-describes its collection.
type Seller struct {
	ID           uuid.UUID          `gorm:"column:id;type:uuid;primaryKey"`
	Name         string             `gorm:"column:name;not null"`
	Email        string             `gorm:"column:email;not null;uniqueIndex"`
	PasswordHash string             `gorm:"column:password_hash;not null"`
	Role         enums.Role         `gorm:"column:role;type:text;not null;default:'farmer'"`
	Status       enums.SellerStatus `gorm:"column:status;type:text;not null;default:'pending'"`
	FarmName     *string            `gorm:"column:farm_name"`
	CreatedAt    time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
