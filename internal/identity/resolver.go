package identity

import (
	"context"
	"errors"

	"gorm.io/gorm"

	pkgauth "github.com/Devaraju89/OneKart-sub000/pkg/auth"
	"github.com/Devaraju89/OneKart-sub000/pkg/config"
	"github.com/Devaraju89/OneKart-sub000/pkg/enums"
	pkgerrors "github.com/Devaraju89/OneKart-sub000/pkg/errors"
)

// Resolver maps a bearer credential to one of the three identity kinds.
type Resolver interface {
	Resolve(ctx context.Context, token string) (*Identity, error)
}

type resolver struct {
	repo   Repository
	jwtCfg config.JWTConfig
}

// NewResolver builds the credential-to-identity resolver.
func NewResolver(repo Repository, jwtCfg config.JWTConfig) (Resolver, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "identity repository required")
	}
	return &resolver{repo: repo, jwtCfg: jwtCfg}, nil
}

// Resolve verifies the token and loads the record the token points at. The
// role in the token decides which collection is consulted: admin looks in
// admins, farmer in sellers, anything else in customers. A missing record
// fails closed, so deleting an account revokes its outstanding tokens.
func (r *resolver) Resolve(ctx context.Context, token string) (*Identity, error) {
	claims, err := pkgauth.ParseAccessToken(r.jwtCfg, token)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token")
	}

	switch claims.Role {
	case enums.RoleAdmin:
		admin, err := r.repo.FindAdminByID(ctx, claims.SubjectID)
		if err != nil {
			return nil, recordLookupError(err)
		}
		return &Identity{ID: admin.ID, Role: claims.Role, Name: admin.Name, Email: admin.Email}, nil
	case enums.RoleFarmer:
		seller, err := r.repo.FindSellerByID(ctx, claims.SubjectID)
		if err != nil {
			return nil, recordLookupError(err)
		}
		if seller.Status != enums.SellerStatusActive {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "seller account is not active")
		}
		status := seller.Status
		return &Identity{ID: seller.ID, Role: claims.Role, Name: seller.Name, Email: seller.Email, SellerStatus: &status}, nil
	default:
		customer, err := r.repo.FindCustomerByID(ctx, claims.SubjectID)
		if err != nil {
			return nil, recordLookupError(err)
		}
		return &Identity{ID: customer.ID, Role: enums.RoleCustomer, Name: customer.Name, Email: customer.Email}, nil
	}
}

func recordLookupError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "account no longer exists")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load identity record")
}
