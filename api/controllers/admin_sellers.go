package controllers

import (
	"net/http"

	"github.com/Devaraju89/OneKart-sub000/api/responses"
	"github.com/Devaraju89/OneKart-sub000/api/validators"
	"github.com/Devaraju89/OneKart-sub000/internal/identity"
	"github.com/Devaraju89/OneKart-sub000/pkg/enums"
	pkgerrors "github.com/Devaraju89/OneKart-sub000/pkg/errors"
	"github.com/Devaraju89/OneKart-sub000/pkg/logger"
)

type sellerStatusPayload struct {
	Status string `json:"status" validate:"required"`
}

// UpdateSellerStatus approves or rejects a seller account.
func UpdateSellerStatus(svc identity.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		sellerID, err := validators.ParseUUIDParam(r, "sellerId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload sellerStatusPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		status, err := enums.ParseSellerStatus(payload.Status)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, err.Error()))
			return
		}

		if err := svc.SetSellerStatus(ctx, sellerID, status); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{
			"sellerId": sellerID.String(),
			"status":   string(status),
		})
	}
}
