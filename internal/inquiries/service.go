package inquiries

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Devaraju89/OneKart-sub000/internal/identity"
	"github.com/Devaraju89/OneKart-sub000/pkg/db/models"
	"github.com/Devaraju89/OneKart-sub000/pkg/enums"
	pkgerrors "github.com/Devaraju89/OneKart-sub000/pkg/errors"
	"github.com/Devaraju89/OneKart-sub000/pkg/logger"
)

// Service resolves messaging between the three identity collections.
type Service interface {
	Create(ctx context.Context, actor *identity.Identity, req CreateInquiryRequest) (*InquiryResponse, error)
	List(ctx context.Context, actor *identity.Identity) ([]InquiryResponse, error)
	MarkRead(ctx context.Context, actor *identity.Identity, id uuid.UUID) (*InquiryResponse, error)
}

type service struct {
	repo Repository
	logg *logger.Logger
}

// NewService validates the wiring and returns the inquiry service.
func NewService(repo Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "inquiry repository required")
	}
	return &service{repo: repo, logg: logg}, nil
}

// Create derives the sender tags from the authenticated role and the
// recipient tags from the declared recipient role. Recipient existence is
// not checked: a message to a deleted account is stored and never surfaces.
func (s *service) Create(ctx context.Context, actor *identity.Identity, req CreateInquiryRequest) (*InquiryResponse, error) {
	recipientRole := enums.RoleFarmer
	if req.RecipientRole != "" {
		parsed, err := enums.ParseRole(req.RecipientRole)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
		}
		recipientRole = parsed
	}

	inquiry := &models.Inquiry{
		ID:             uuid.New(),
		SenderID:       actor.ID,
		SenderModel:    enums.PartyModelForRole(actor.Role),
		SenderRole:     actor.Role,
		RecipientID:    req.RecipientID,
		RecipientModel: enums.PartyModelForRole(recipientRole),
		RecipientRole:  recipientRole,
		Subject:        req.Subject,
		Body:           req.Body,
		ProductID:      req.ProductID,
		OrderID:        req.OrderID,
		RepliedTo:      req.RepliedTo,
	}
	if err := s.repo.Create(ctx, inquiry); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create inquiry")
	}
	return toInquiryResponse(inquiry), nil
}

// List returns inquiries the actor sent or received. Legacy rows missing
// party tags run through the repair pass first; repaired rows are persisted
// best effort before returning.
func (s *service) List(ctx context.Context, actor *identity.Identity) ([]InquiryResponse, error) {
	inquiryList, err := s.repo.ListByParty(ctx, actor.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list inquiries")
	}

	out := make([]InquiryResponse, 0, len(inquiryList))
	for i := range inquiryList {
		inquiry := &inquiryList[i]
		if repairInquiry(inquiry, actor) {
			if err := s.repo.Save(ctx, inquiry); err != nil && s.logg != nil {
				s.logg.Warn(s.logg.WithField(ctx, "inquiry_id", inquiry.ID.String()), "persisting repaired inquiry failed")
			}
		}
		out = append(out, *toInquiryResponse(inquiry))
	}
	return out, nil
}

// MarkRead flips the read flag. Recipient only; the sender cannot mark
// their own message read.
func (s *service) MarkRead(ctx context.Context, actor *identity.Identity, id uuid.UUID) (*InquiryResponse, error) {
	inquiry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "inquiry not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load inquiry")
	}
	if inquiry.RecipientID != actor.ID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only the recipient can mark an inquiry read")
	}
	if !inquiry.IsRead {
		inquiry.IsRead = true
		if err := s.repo.Save(ctx, inquiry); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save inquiry")
		}
	}
	return toInquiryResponse(inquiry), nil
}
