package inquiries

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Devaraju89/OneKart-sub000/pkg/db/models"
)

// Repository defines persistence for inquiries.
type Repository interface {
	Create(ctx context.Context, inquiry *models.Inquiry) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Inquiry, error)
	ListByParty(ctx context.Context, partyID uuid.UUID) ([]models.Inquiry, error)
	Save(ctx context.Context, inquiry *models.Inquiry) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds an inquiry repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, inquiry *models.Inquiry) error {
	return r.db.WithContext(ctx).Create(inquiry).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Inquiry, error) {
	var inquiry models.Inquiry
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&inquiry).Error; err != nil {
		return nil, err
	}
	return &inquiry, nil
}

// ListByParty returns inquiries where the party appears on either side.
func (r *repository) ListByParty(ctx context.Context, partyID uuid.UUID) ([]models.Inquiry, error) {
	var out []models.Inquiry
	if err := r.db.WithContext(ctx).
		Where("sender_id = ? OR recipient_id = ?", partyID, partyID).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repository) Save(ctx context.Context, inquiry *models.Inquiry) error {
	return r.db.WithContext(ctx).Save(inquiry).Error
}
