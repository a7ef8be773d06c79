package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/Devaraju89/OneKart-sub000/pkg/enums"
)

// Customer is the buyer-side identity record. Email is unique within this
// collection only; the cross-collection uniqueness invariant is checked at
// registration, not enforced by the database.
type Customer struct {
	ID           uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	Name         string     `gorm:"column:name;not null"`
	Email        string     `gorm:"column:email;not null;uniqueIndex"`
	PasswordHash string     `gorm:"column:password_hash;not null"`
	Role         enums.Role `gorm:"column:role;type:text;not null;default:'customer'"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
