package identity

import (
	"github.com/google/uuid"

	"github.com/Devaraju89/OneKart-sub000/pkg/enums"
)

// Identity is a resolved, authenticated actor. Role comes from the issued
// credential, never re-derived from the stored record.
type Identity struct {
	ID           uuid.UUID
	Role         enums.Role
	Name         string
	Email        string
	SellerStatus *enums.SellerStatus
}

// IsAdmin reports whether the actor is an operator.
func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == enums.RoleAdmin
}

// IsFarmer reports whether the actor is a seller.
func (i *Identity) IsFarmer() bool {
	return i != nil && i.Role == enums.RoleFarmer
}

// RegisterRequest carries a customer or seller registration.
type RegisterRequest struct {
	Name     string  `json:"name" validate:"required,min=2"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8"`
	FarmName *string `json:"farmName,omitempty"`
}

// LoginRequest carries credentials for any of the three collections.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Profile is the public view of an identity record.
type Profile struct {
	ID           uuid.UUID           `json:"id"`
	Name         string              `json:"name"`
	Email        string              `json:"email"`
	Role         enums.Role          `json:"role"`
	SellerStatus *enums.SellerStatus `json:"sellerStatus,omitempty"`
}

// LoginResponse returns the bearer credential plus the profile.
type LoginResponse struct {
	AccessToken string  `json:"accessToken"`
	Profile     Profile `json:"profile"`
}
