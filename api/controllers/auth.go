package controllers

import (
	"net/http"

	"github.com/Devaraju89/OneKart-sub000/api/responses"
	"github.com/Devaraju89/OneKart-sub000/api/validators"
	"github.com/Devaraju89/OneKart-sub000/internal/identity"
	"github.com/Devaraju89/OneKart-sub000/pkg/enums"
	"github.com/Devaraju89/OneKart-sub000/pkg/logger"
)

// RegisterCustomer creates a customer account.
func RegisterCustomer(svc identity.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req identity.RegisterRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		profile, err := svc.RegisterCustomer(ctx, req)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, profile)
	}
}

// RegisterSeller creates a seller account in pending status.
func RegisterSeller(svc identity.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req identity.RegisterRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		profile, err := svc.RegisterSeller(ctx, req)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, profile)
	}
}

// Login authenticates against a fixed collection per route.
func Login(svc identity.Service, logg *logger.Logger, role enums.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req identity.LoginRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		resp, err := svc.Login(ctx, role, req)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, resp)
	}
}
