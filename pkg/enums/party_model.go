package enums

import "fmt"

// PartyModel tags which identity collection a polymorphic inquiry reference
// points into. Required at write time; legacy rows without it are repaired
// on read.
type PartyModel string

const (
	PartyModelUser   PartyModel = "User"
	PartyModelSeller PartyModel = "Seller"
	PartyModelAdmin  PartyModel = "Admin"
)

var validPartyModels = []PartyModel{
	PartyModelUser,
	PartyModelSeller,
	PartyModelAdmin,
}

// String implements fmt.Stringer.
func (p PartyModel) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PartyModel.
func (p PartyModel) IsValid() bool {
	for _, candidate := range validPartyModels {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePartyModel converts raw input into a PartyModel.
func ParsePartyModel(value string) (PartyModel, error) {
	for _, candidate := range validPartyModels {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid party model %q", value)
}

// PartyModelForRole maps an account role onto the collection its records
// live in.
func PartyModelForRole(role Role) PartyModel {
	switch role {
	case RoleFarmer:
		return PartyModelSeller
	case RoleAdmin:
		return PartyModelAdmin
	default:
		return PartyModelUser
	}
}

// RoleForPartyModel is the inverse of PartyModelForRole.
func RoleForPartyModel(model PartyModel) Role {
	switch model {
	case PartyModelSeller:
		return RoleFarmer
	case PartyModelAdmin:
		return RoleAdmin
	default:
		return RoleCustomer
	}
}
