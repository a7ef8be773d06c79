package inquiries

import (
	"github.com/Devaraju89/OneKart-sub000/internal/identity"
	"github.com/Devaraju89/OneKart-sub000/pkg/db/models"
	"github.com/Devaraju89/OneKart-sub000/pkg/enums"
)

// repairInquiry backfills missing party tags on a legacy row and reports
// whether anything changed. This is a read-path backfill only; new writes
// always carry both tags.
//
// Inference order: the caller's own side is authoritative when the caller
// appears on it. A surviving role tag is the next best witness: the missing
// model is derived from it. Only a side with both tags gone falls back to
// heuristics: an unknown sender is assumed to be a customer, an unknown
// recipient a seller when the inquiry is product-linked, otherwise a
// customer. The fallback is best effort and can mislabel old rows; the tags
// it writes are never trusted for authorization.
func repairInquiry(inquiry *models.Inquiry, caller *identity.Identity) bool {
	changed := false

	if inquiry.SenderModel == "" {
		switch {
		case caller != nil && inquiry.SenderID == caller.ID:
			inquiry.SenderModel = enums.PartyModelForRole(caller.Role)
			inquiry.SenderRole = caller.Role
		case inquiry.SenderRole != "":
			inquiry.SenderModel = enums.PartyModelForRole(inquiry.SenderRole)
		default:
			inquiry.SenderModel = enums.PartyModelUser
			inquiry.SenderRole = enums.RoleCustomer
		}
		changed = true
	} else if inquiry.SenderRole == "" {
		inquiry.SenderRole = enums.RoleForPartyModel(inquiry.SenderModel)
		changed = true
	}

	if inquiry.RecipientModel == "" {
		switch {
		case caller != nil && inquiry.RecipientID == caller.ID:
			inquiry.RecipientModel = enums.PartyModelForRole(caller.Role)
			inquiry.RecipientRole = caller.Role
		case inquiry.RecipientRole != "":
			inquiry.RecipientModel = enums.PartyModelForRole(inquiry.RecipientRole)
		case inquiry.ProductID != nil:
			inquiry.RecipientModel = enums.PartyModelSeller
			inquiry.RecipientRole = enums.RoleFarmer
		default:
			inquiry.RecipientModel = enums.PartyModelUser
			inquiry.RecipientRole = enums.RoleCustomer
		}
		changed = true
	} else if inquiry.RecipientRole == "" {
		inquiry.RecipientRole = enums.RoleForPartyModel(inquiry.RecipientModel)
		changed = true
	}

	return changed
}
