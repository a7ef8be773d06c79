package identity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgauth "github.com/Devaraju89/OneKart-sub000/pkg/auth"
	"github.com/Devaraju89/OneKart-sub000/pkg/config"
	"github.com/Devaraju89/OneKart-sub000/pkg/db/models"
	"github.com/Devaraju89/OneKart-sub000/pkg/enums"
	pkgerrors "github.com/Devaraju89/OneKart-sub000/pkg/errors"
	"github.com/Devaraju89/OneKart-sub000/pkg/security"
)

const invalidCredentialsMessage = "invalid credentials"

// Service defines account registration, login and seller approval.
type Service interface {
	RegisterCustomer(ctx context.Context, req RegisterRequest) (*Profile, error)
	RegisterSeller(ctx context.Context, req RegisterRequest) (*Profile, error)
	Login(ctx context.Context, role enums.Role, req LoginRequest) (*LoginResponse, error)
	SetSellerStatus(ctx context.Context, sellerID uuid.UUID, status enums.SellerStatus) error
}

type service struct {
	repo        Repository
	jwtCfg      config.JWTConfig
	passwordCfg config.PasswordConfig
}

// ServiceParams bundles the dependencies required to build the service.
type ServiceParams struct {
	Repo        Repository
	JWTConfig   config.JWTConfig
	PasswordCfg config.PasswordConfig
}

// NewService constructs the identity service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "identity repository required")
	}
	return &service{
		repo:        params.Repo,
		jwtCfg:      params.JWTConfig,
		passwordCfg: params.PasswordCfg,
	}, nil
}

func (s *service) RegisterCustomer(ctx context.Context, req RegisterRequest) (*Profile, error) {
	email, err := s.claimEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}

	hash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	customer := &models.Customer{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: hash,
		Role:         enums.RoleCustomer,
	}
	if err := s.repo.CreateCustomer(ctx, customer); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create customer")
	}

	return &Profile{ID: customer.ID, Name: customer.Name, Email: customer.Email, Role: enums.RoleCustomer}, nil
}

// RegisterSeller creates a pending seller. The account cannot log in or
// sell until an admin flips it to active.
func (s *service) RegisterSeller(ctx context.Context, req RegisterRequest) (*Profile, error) {
	email, err := s.claimEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}

	hash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	seller := &models.Seller{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: hash,
		Role:         enums.RoleFarmer,
		Status:       enums.SellerStatusPending,
		FarmName:     req.FarmName,
	}
	if err := s.repo.CreateSeller(ctx, seller); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create seller")
	}

	status := seller.Status
	return &Profile{ID: seller.ID, Name: seller.Name, Email: seller.Email, Role: enums.RoleFarmer, SellerStatus: &status}, nil
}

func (s *service) Login(ctx context.Context, role enums.Role, req LoginRequest) (*LoginResponse, error) {
	email := normalizeEmail(req.Email)

	var profile Profile
	var passwordHash string

	switch role {
	case enums.RoleAdmin:
		admin, err := s.repo.FindAdminByEmail(ctx, email)
		if err != nil {
			return nil, loginLookupError(err)
		}
		profile = Profile{ID: admin.ID, Name: admin.Name, Email: admin.Email, Role: enums.RoleAdmin}
		passwordHash = admin.PasswordHash
	case enums.RoleFarmer:
		seller, err := s.repo.FindSellerByEmail(ctx, email)
		if err != nil {
			return nil, loginLookupError(err)
		}
		if seller.Status != enums.SellerStatusActive {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "seller account is not active")
		}
		status := seller.Status
		profile = Profile{ID: seller.ID, Name: seller.Name, Email: seller.Email, Role: enums.RoleFarmer, SellerStatus: &status}
		passwordHash = seller.PasswordHash
	default:
		customer, err := s.repo.FindCustomerByEmail(ctx, email)
		if err != nil {
			return nil, loginLookupError(err)
		}
		profile = Profile{ID: customer.ID, Name: customer.Name, Email: customer.Email, Role: enums.RoleCustomer}
		passwordHash = customer.PasswordHash
	}

	ok, err := security.VerifyPassword(req.Password, passwordHash)
	if err != nil || !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	token, err := pkgauth.MintAccessToken(s.jwtCfg, time.Now(), pkgauth.AccessTokenPayload{
		SubjectID: profile.ID,
		Role:      profile.Role,
		Email:     profile.Email,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}

	return &LoginResponse{AccessToken: token, Profile: profile}, nil
}

func (s *service) SetSellerStatus(ctx context.Context, sellerID uuid.UUID, status enums.SellerStatus) error {
	if !status.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid seller status")
	}
	if err := s.repo.UpdateSellerStatus(ctx, sellerID, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "seller not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update seller status")
	}
	return nil
}

// claimEmail normalizes the address and enforces the cross-collection
// uniqueness invariant at registration time.
func (s *service) claimEmail(ctx context.Context, raw string) (string, error) {
	email := normalizeEmail(raw)
	taken, err := s.repo.EmailTaken(ctx, email)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check email")
	}
	if taken {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "email already registered")
	}
	return email, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func loginLookupError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load account")
}
