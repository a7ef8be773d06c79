package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Devaraju89/OneKart-sub000/pkg/db/models"
	"github.com/Devaraju89/OneKart-sub000/pkg/enums"
)

// Repository defines persistence over the three disjoint identity
// collections.
type Repository interface {
	CreateCustomer(ctx context.Context, customer *models.Customer) error
	CreateSeller(ctx context.Context, seller *models.Seller) error
	CreateAdmin(ctx context.Context, admin *models.Admin) error
	FindCustomerByID(ctx context.Context, id uuid.UUID) (*models.Customer, error)
	FindSellerByID(ctx context.Context, id uuid.UUID) (*models.Seller, error)
	FindAdminByID(ctx context.Context, id uuid.UUID) (*models.Admin, error)
	FindCustomerByEmail(ctx context.Context, email string) (*models.Customer, error)
	FindSellerByEmail(ctx context.Context, email string) (*models.Seller, error)
	FindAdminByEmail(ctx context.Context, email string) (*models.Admin, error)
	UpdateSellerStatus(ctx context.Context, id uuid.UUID, status enums.SellerStatus) error
	EmailTaken(ctx context.Context, email string) (bool, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds an identity repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateCustomer(ctx context.Context, customer *models.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

func (r *repository) CreateSeller(ctx context.Context, seller *models.Seller) error {
	return r.db.WithContext(ctx).Create(seller).Error
}

func (r *repository) CreateAdmin(ctx context.Context, admin *models.Admin) error {
	return r.db.WithContext(ctx).Create(admin).Error
}

func (r *repository) FindCustomerByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&customer).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *repository) FindSellerByID(ctx context.Context, id uuid.UUID) (*models.Seller, error) {
	var seller models.Seller
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&seller).Error; err != nil {
		return nil, err
	}
	return &seller, nil
}

func (r *repository) FindAdminByID(ctx context.Context, id uuid.UUID) (*models.Admin, error) {
	var admin models.Admin
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

// FindCustomerByEmail returns the oldest match so legacy duplicate emails
// inside one collection still resolve deterministically.
func (r *repository) FindCustomerByEmail(ctx context.Context, email string) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.WithContext(ctx).Where("email = ?", email).Order("created_at ASC").First(&customer).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *repository) FindSellerByEmail(ctx context.Context, email string) (*models.Seller, error) {
	var seller models.Seller
	if err := r.db.WithContext(ctx).Where("email = ?", email).Order("created_at ASC").First(&seller).Error; err != nil {
		return nil, err
	}
	return &seller, nil
}

func (r *repository) FindAdminByEmail(ctx context.Context, email string) (*models.Admin, error) {
	var admin models.Admin
	if err := r.db.WithContext(ctx).Where("email = ?", email).Order("created_at ASC").First(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *repository) UpdateSellerStatus(ctx context.Context, id uuid.UUID, status enums.SellerStatus) error {
	res := r.db.WithContext(ctx).Model(&models.Seller{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// EmailTaken checks all three collections. The invariant is checked at
// registration only; reads elsewhere tolerate legacy data that violated it.
func (r *repository) EmailTaken(ctx context.Context, email string) (bool, error) {
	if _, err := r.FindCustomerByEmail(ctx, email); err == nil {
		return true, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}
	if _, err := r.FindSellerByEmail(ctx, email); err == nil {
		return true, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}
	if _, err := r.FindAdminByEmail(ctx, email); err == nil {
		return true, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}
	return false, nil
}
