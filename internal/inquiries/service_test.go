package inquiries

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Devaraju89/OneKart-sub000/internal/identity"
	"github.com/Devaraju89/OneKart-sub000/pkg/db/models"
	"github.com/Devaraju89/OneKart-sub000/pkg/enums"
	pkgerrors "github.com/Devaraju89/OneKart-sub000/pkg/errors"
)

type stubInquiryRepo struct {
	inquiries map[uuid.UUID]*models.Inquiry
	saves     int
}

func newStubInquiryRepo() *stubInquiryRepo {
	return &stubInquiryRepo{inquiries: map[uuid.UUID]*models.Inquiry{}}
}

func (s *stubInquiryRepo) Create(ctx context.Context, inquiry *models.Inquiry) error {
	s.inquiries[inquiry.ID] = inquiry
	return nil
}

func (s *stubInquiryRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Inquiry, error) {
	if inquiry, ok := s.inquiries[id]; ok {
		copied := *inquiry
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubInquiryRepo) ListByParty(ctx context.Context, partyID uuid.UUID) ([]models.Inquiry, error) {
	var out []models.Inquiry
	for _, inquiry := range s.inquiries {
		if inquiry.SenderID == partyID || inquiry.RecipientID == partyID {
			out = append(out, *inquiry)
		}
	}
	return out, nil
}

func (s *stubInquiryRepo) Save(ctx context.Context, inquiry *models.Inquiry) error {
	copied := *inquiry
	s.inquiries[inquiry.ID] = &copied
	s.saves++
	return nil
}

func newTestService(t *testing.T, repo Repository) Service {
	t.Helper()
	svc, err := NewService(repo, nil)
	if err != nil {
		t.Fatalf("service constructor failed: %v", err)
	}
	return svc
}

func actor(id uuid.UUID, role enums.Role) *identity.Identity {
	return &identity.Identity{ID: id, Role: role}
}

func TestCreateDerivesModelTags(t *testing.T) {
	repo := newStubInquiryRepo()
	svc := newTestService(t, repo)

	customerID := uuid.New()
	sellerID := uuid.New()

	resp, err := svc.Create(context.Background(), actor(customerID, enums.RoleCustomer), CreateInquiryRequest{
		RecipientID: sellerID,
		Subject:     "Is this batch organic?",
		Body:        "Asking about the tomatoes listed yesterday.",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if resp.SenderModel != enums.PartyModelUser || resp.SenderRole != enums.RoleCustomer {
		t.Fatalf("sender tags = %s/%s", resp.SenderModel, resp.SenderRole)
	}
	// Recipient defaults to the seller collection.
	if resp.RecipientModel != enums.PartyModelSeller || resp.RecipientRole != enums.RoleFarmer {
		t.Fatalf("recipient tags = %s/%s", resp.RecipientModel, resp.RecipientRole)
	}
}

func TestCreateExplicitRecipientRole(t *testing.T) {
	repo := newStubInquiryRepo()
	svc := newTestService(t, repo)

	resp, err := svc.Create(context.Background(), actor(uuid.New(), enums.RoleFarmer), CreateInquiryRequest{
		RecipientID:   uuid.New(),
		RecipientRole: "admin",
		Subject:       "Payout delay",
		Body:          "Last week's payout has not arrived.",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if resp.SenderModel != enums.PartyModelSeller {
		t.Fatalf("sender model = %s", resp.SenderModel)
	}
	if resp.RecipientModel != enums.PartyModelAdmin || resp.RecipientRole != enums.RoleAdmin {
		t.Fatalf("recipient tags = %s/%s", resp.RecipientModel, resp.RecipientRole)
	}
}

func TestCreateRejectsUnknownRecipientRole(t *testing.T) {
	svc := newTestService(t, newStubInquiryRepo())

	_, err := svc.Create(context.Background(), actor(uuid.New(), enums.RoleCustomer), CreateInquiryRequest{
		RecipientID:   uuid.New(),
		RecipientRole: "moderator",
		Subject:       "s",
		Body:          "b",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error got %v", err)
	}
}

func TestListRepairsCallerSide(t *testing.T) {
	repo := newStubInquiryRepo()
	svc := newTestService(t, repo)

	sellerID := uuid.New()
	legacy := &models.Inquiry{
		ID:          uuid.New(),
		SenderID:    sellerID,
		RecipientID: uuid.New(),
		Subject:     "legacy",
		Body:        "row without tags",
	}
	repo.inquiries[legacy.ID] = legacy

	out, err := svc.List(context.Background(), actor(sellerID, enums.RoleFarmer))
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("list len = %d", len(out))
	}
	// Caller is the sender, so the sender side is repaired from the caller's
	// role rather than the customer fallback.
	if out[0].SenderModel != enums.PartyModelSeller || out[0].SenderRole != enums.RoleFarmer {
		t.Fatalf("sender tags = %s/%s", out[0].SenderModel, out[0].SenderRole)
	}
	if repo.saves != 1 {
		t.Fatalf("expected repaired row persisted, saves = %d", repo.saves)
	}
	stored := repo.inquiries[legacy.ID]
	if stored.SenderModel != enums.PartyModelSeller {
		t.Fatalf("persisted sender model = %s", stored.SenderModel)
	}
}

func TestListRepairHeuristicsForStrangers(t *testing.T) {
	repo := newStubInquiryRepo()
	svc := newTestService(t, repo)

	recipientID := uuid.New()
	productID := uuid.New()

	productLinked := &models.Inquiry{
		ID:          uuid.New(),
		SenderID:    uuid.New(),
		RecipientID: recipientID,
		ProductID:   &productID,
		Subject:     "product question",
		Body:        "legacy",
	}
	plain := &models.Inquiry{
		ID:          uuid.New(),
		SenderID:    recipientID,
		RecipientID: uuid.New(),
		Subject:     "general",
		Body:        "legacy",
	}
	repo.inquiries[productLinked.ID] = productLinked
	repo.inquiries[plain.ID] = plain

	out, err := svc.List(context.Background(), actor(recipientID, enums.RoleCustomer))
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	byID := map[uuid.UUID]InquiryResponse{}
	for _, inquiry := range out {
		byID[inquiry.ID] = inquiry
	}

	// Unknown sender falls back to customer; the caller fixes the recipient.
	got := byID[productLinked.ID]
	if got.SenderModel != enums.PartyModelUser || got.RecipientModel != enums.PartyModelUser {
		t.Fatalf("product-linked tags = %s/%s", got.SenderModel, got.RecipientModel)
	}

	// Unknown recipient with no product link falls back to customer.
	got = byID[plain.ID]
	if got.RecipientModel != enums.PartyModelUser || got.RecipientRole != enums.RoleCustomer {
		t.Fatalf("plain recipient tags = %s/%s", got.RecipientModel, got.RecipientRole)
	}
}

func TestRepairDerivesModelFromSurvivingRole(t *testing.T) {
	// The row lost its model tags but kept both role tags. Neither party is
	// the caller, so without the roles the heuristics would tag both sides
	// as customers.
	inquiry := &models.Inquiry{
		ID:            uuid.New(),
		SenderID:      uuid.New(),
		SenderRole:    enums.RoleFarmer,
		RecipientID:   uuid.New(),
		RecipientRole: enums.RoleAdmin,
	}

	if !repairInquiry(inquiry, nil) {
		t.Fatal("expected repair to report changes")
	}
	if inquiry.SenderModel != enums.PartyModelSeller || inquiry.SenderRole != enums.RoleFarmer {
		t.Fatalf("sender tags = %s/%s", inquiry.SenderModel, inquiry.SenderRole)
	}
	if inquiry.RecipientModel != enums.PartyModelAdmin || inquiry.RecipientRole != enums.RoleAdmin {
		t.Fatalf("recipient tags = %s/%s", inquiry.RecipientModel, inquiry.RecipientRole)
	}
}

func TestRepairProductLinkedRecipientDefaultsToSeller(t *testing.T) {
	productID := uuid.New()
	inquiry := &models.Inquiry{
		ID:          uuid.New(),
		SenderID:    uuid.New(),
		RecipientID: uuid.New(),
		ProductID:   &productID,
	}

	if !repairInquiry(inquiry, nil) {
		t.Fatal("expected repair to report changes")
	}
	if inquiry.RecipientModel != enums.PartyModelSeller || inquiry.RecipientRole != enums.RoleFarmer {
		t.Fatalf("recipient tags = %s/%s", inquiry.RecipientModel, inquiry.RecipientRole)
	}
	if inquiry.SenderModel != enums.PartyModelUser {
		t.Fatalf("sender model = %s", inquiry.SenderModel)
	}
}

func TestRepairLeavesTaggedRowsAlone(t *testing.T) {
	inquiry := &models.Inquiry{
		ID:             uuid.New(),
		SenderID:       uuid.New(),
		SenderModel:    enums.PartyModelAdmin,
		SenderRole:     enums.RoleAdmin,
		RecipientID:    uuid.New(),
		RecipientModel: enums.PartyModelSeller,
		RecipientRole:  enums.RoleFarmer,
	}

	if repairInquiry(inquiry, nil) {
		t.Fatal("fully tagged row must not be touched")
	}
}

func TestMarkReadRecipientOnly(t *testing.T) {
	repo := newStubInquiryRepo()
	svc := newTestService(t, repo)

	senderID := uuid.New()
	recipientID := uuid.New()
	inquiry := &models.Inquiry{
		ID:          uuid.New(),
		SenderID:    senderID,
		RecipientID: recipientID,
		Subject:     "s",
		Body:        "b",
	}
	repo.inquiries[inquiry.ID] = inquiry

	_, err := svc.MarkRead(context.Background(), actor(senderID, enums.RoleCustomer), inquiry.ID)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden for sender got %v", err)
	}

	resp, err := svc.MarkRead(context.Background(), actor(recipientID, enums.RoleFarmer), inquiry.ID)
	if err != nil {
		t.Fatalf("mark read failed: %v", err)
	}
	if !resp.IsRead {
		t.Fatal("expected read flag set")
	}

	_, err = svc.MarkRead(context.Background(), actor(recipientID, enums.RoleFarmer), uuid.New())
	typed = pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found got %v", err)
	}
}
