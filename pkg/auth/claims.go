package auth

import (
	"github.com/Devaraju89/OneKart-sub000/pkg/enums"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	SubjectID uuid.UUID
	Role      enums.Role
	Email     string
}

// AccessTokenClaims represents the typed JWT issued to clients. The role is
// authoritative here: seller and admin records are looked up by it and it is
// never re-derived from the stored record.
type AccessTokenClaims struct {
	SubjectID uuid.UUID  `json:"subject_id"`
	Role      enums.Role `json:"role"`
	Email     string     `json:"email,omitempty"`
	jwt.RegisteredClaims
}
