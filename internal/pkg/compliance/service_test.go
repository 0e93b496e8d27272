package compliance

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/vendorvault/VendorVault/app/models"
	"github.com/vendorvault/VendorVault/internal/pkg/audit"
)

// fakeRepository backs the service with in-memory maps. UpdateDocumentIfPending
// mirrors the conditional-update semantics of the real store; the mutex stands
// in for the row-level atomicity a real database gives the conditional UPDATE.
type fakeRepository struct {
	mu        sync.Mutex
	vendors   map[uint]*models.Vendor
	types     map[uint]*models.DocumentType
	documents map[uint]*models.VendorDocument
	nextDocID uint
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		vendors:   map[uint]*models.Vendor{},
		types:     map[uint]*models.DocumentType{},
		documents: map[uint]*models.VendorDocument{},
		nextDocID: 1,
	}
}

func (f *fakeRepository) GetVendor(id uint) (*models.Vendor, error) {
	if v, ok := f.vendors[id]; ok {
		return v, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepository) GetDocumentType(id uint) (*models.DocumentType, error) {
	if dt, ok := f.types[id]; ok {
		return dt, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepository) ListDocumentTypes() ([]models.DocumentType, error) {
	out := make([]models.DocumentType, 0, len(f.types))
	for _, dt := range f.types {
		out = append(out, *dt)
	}
	return out, nil
}

func (f *fakeRepository) GetDocument(id uint) (*models.VendorDocument, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if d, ok := f.documents[id]; ok {
		copied := *d
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepository) ListDocumentsByVendor(vendorID uint) ([]models.VendorDocument, error) {
	out := []models.VendorDocument{}
	for _, d := range f.documents {
		if d.VendorID == vendorID {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (f *fakeRepository) CreateDocument(doc *models.VendorDocument) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc.ID = f.nextDocID
	f.nextDocID++
	stored := *doc
	f.documents[doc.ID] = &stored
	return nil
}

func (f *fakeRepository) UpdateDocumentIfPending(id uint, updates map[string]interface{}) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, ok := f.documents[id]
	if !ok || doc.Status != models.DOC_STATUS_PENDING {
		return 0, nil
	}
	if v, ok := updates["status"]; ok {
		doc.Status = v.(string)
	}
	if v, ok := updates["approved_by"]; ok {
		doc.ApprovedBy = v.(string)
	}
	if v, ok := updates["approved_at"]; ok {
		t := v.(time.Time)
		doc.ApprovedAt = &t
	}
	if v, ok := updates["rejection_reason"]; ok {
		doc.RejectionReason = v.(string)
	}
	if v, ok := updates["notes"]; ok {
		doc.Notes = v.(string)
	}
	return 1, nil
}

func newTestService(repo Repository) *Service {
	return NewService(repo, audit.Discard{})
}

func seedVendorAndType(repo *fakeRepository) {
	repo.vendors[1] = &models.Vendor{ID: 1, Name: "Acme Steel", Category: "Manufacturing"}
	days := 365
	repo.types[10] = &models.DocumentType{
		ID:                   10,
		Name:                 "ISO 9001",
		IsRequired:           true,
		ExpiryRequired:       true,
		DefaultValidityDays:  &days,
		ApplicableCategories: models.StringArray{"Manufacturing"},
	}
}

func TestUploadCreatesPendingDocument(t *testing.T) {
	repo := newFakeRepository()
	seedVendorAndType(repo)
	svc := newTestService(repo)

	doc, err := svc.Upload(context.Background(), UploadInput{
		VendorID:       1,
		DocumentTypeID: 10,
		FileName:       "iso9001.pdf",
		FilePath:       "uploads/iso9001.pdf",
		FileSize:       1024,
		ActorID:        "user@example.com",
		ActorType:      models.ACTOR_TYPE_USER,
	})
	require.NoError(t, err)
	assert.Equal(t, models.DOC_STATUS_PENDING, doc.Status)
	assert.Equal(t, "user@example.com", doc.UploadedBy)
	assert.NotNil(t, doc.UploadedAt)
}

func TestUploadRejectsInapplicableType(t *testing.T) {
	repo := newFakeRepository()
	seedVendorAndType(repo)
	repo.vendors[2] = &models.Vendor{ID: 2, Name: "FastShip", Category: "Logistics"}
	svc := newTestService(repo)

	_, err := svc.Upload(context.Background(), UploadInput{VendorID: 2, DocumentTypeID: 10})
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
}

func TestUploadUnknownVendorAndType(t *testing.T) {
	repo := newFakeRepository()
	seedVendorAndType(repo)
	svc := newTestService(repo)

	_, err := svc.Upload(context.Background(), UploadInput{VendorID: 99, DocumentTypeID: 10})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Upload(context.Background(), UploadInput{VendorID: 1, DocumentTypeID: 99})
	assert.True(t, IsValidationError(err))
}

func TestUploadDerivesExpiryFromDefaultValidity(t *testing.T) {
	repo := newFakeRepository()
	seedVendorAndType(repo)
	svc := newTestService(repo)

	issued := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	doc, err := svc.Upload(context.Background(), UploadInput{
		VendorID:       1,
		DocumentTypeID: 10,
		IssueDate:      &issued,
	})
	require.NoError(t, err)
	require.NotNil(t, doc.ExpiryDate)
	assert.Equal(t, issued.AddDate(0, 0, 365), *doc.ExpiryDate)
}

func TestUploadKeepsExplicitExpiry(t *testing.T) {
	repo := newFakeRepository()
	seedVendorAndType(repo)
	svc := newTestService(repo)

	issued := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	explicit := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
	doc, err := svc.Upload(context.Background(), UploadInput{
		VendorID:       1,
		DocumentTypeID: 10,
		IssueDate:      &issued,
		ExpiryDate:     &explicit,
	})
	require.NoError(t, err)
	require.NotNil(t, doc.ExpiryDate)
	assert.Equal(t, explicit, *doc.ExpiryDate)
}

func TestApproveTransitionsPendingDocument(t *testing.T) {
	repo := newFakeRepository()
	seedVendorAndType(repo)
	svc := newTestService(repo)

	doc, err := svc.Upload(context.Background(), UploadInput{VendorID: 1, DocumentTypeID: 10})
	require.NoError(t, err)

	approved, err := svc.Approve(context.Background(), doc.ID, "reviewer@example.com", "looks good")
	require.NoError(t, err)
	assert.Equal(t, models.DOC_STATUS_APPROVED, approved.Status)
	assert.Equal(t, "reviewer@example.com", approved.ApprovedBy)
	assert.NotNil(t, approved.ApprovedAt)
	assert.Equal(t, "looks good", approved.Notes)
}

func TestApproveTwiceFailsWithInvalidState(t *testing.T) {
	repo := newFakeRepository()
	seedVendorAndType(repo)
	svc := newTestService(repo)

	doc, err := svc.Upload(context.Background(), UploadInput{VendorID: 1, DocumentTypeID: 10})
	require.NoError(t, err)

	_, err = svc.Approve(context.Background(), doc.ID, "first@example.com", "")
	require.NoError(t, err)

	_, err = svc.Approve(context.Background(), doc.ID, "second@example.com", "")
	assert.ErrorIs(t, err, ErrInvalidState)

	// The first reviewer's decision stands.
	stored, err := repo.GetDocument(doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "first@example.com", stored.ApprovedBy)
}

func TestConcurrentApproveHasExactlyOneWinner(t *testing.T) {
	repo := newFakeRepository()
	seedVendorAndType(repo)
	svc := newTestService(repo)

	doc, err := svc.Upload(context.Background(), UploadInput{VendorID: 1, DocumentTypeID: 10})
	require.NoError(t, err)

	const reviewers = 2
	results := make(chan error, reviewers)
	var wg sync.WaitGroup
	for i := 0; i < reviewers; i++ {
		wg.Add(1)
		go func(reviewer string) {
			defer wg.Done()
			_, err := svc.Approve(context.Background(), doc.ID, reviewer, "")
			results <- err
		}(fmt.Sprintf("reviewer-%d@example.com", i))
	}
	wg.Wait()
	close(results)

	wins, losses := 0, 0
	for err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, ErrInvalidState):
			losses++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, 1, losses)

	stored, err := repo.GetDocument(doc.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DOC_STATUS_APPROVED, stored.Status)
}

func TestRejectRequiresReason(t *testing.T) {
	repo := newFakeRepository()
	seedVendorAndType(repo)
	svc := newTestService(repo)

	doc, err := svc.Upload(context.Background(), UploadInput{VendorID: 1, DocumentTypeID: 10})
	require.NoError(t, err)

	_, err = svc.Reject(context.Background(), doc.ID, "   ", "reviewer@example.com")
	assert.True(t, IsValidationError(err))

	rejected, err := svc.Reject(context.Background(), doc.ID, "document is illegible", "reviewer@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.DOC_STATUS_REJECTED, rejected.Status)
	assert.Equal(t, "document is illegible", rejected.RejectionReason)
}

func TestRejectAfterApproveFails(t *testing.T) {
	repo := newFakeRepository()
	seedVendorAndType(repo)
	svc := newTestService(repo)

	doc, err := svc.Upload(context.Background(), UploadInput{VendorID: 1, DocumentTypeID: 10})
	require.NoError(t, err)

	_, err = svc.Approve(context.Background(), doc.ID, "reviewer@example.com", "")
	require.NoError(t, err)

	_, err = svc.Reject(context.Background(), doc.ID, "changed my mind", "reviewer@example.com")
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestApproveUnknownDocument(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo)

	_, err := svc.Approve(context.Background(), 42, "reviewer@example.com", "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestVendorSummary(t *testing.T) {
	repo := newFakeRepository()
	seedVendorAndType(repo)
	svc := newTestService(repo)

	doc, err := svc.Upload(context.Background(), UploadInput{VendorID: 1, DocumentTypeID: 10})
	require.NoError(t, err)

	summary, err := svc.VendorSummary(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.TotalRequired)
	assert.Equal(t, 0, summary.ApprovedCount)

	_, err = svc.Approve(context.Background(), doc.ID, "reviewer@example.com", "")
	require.NoError(t, err)

	summary, err = svc.VendorSummary(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.ApprovedCount)
	assert.Equal(t, 100, summary.Percentage)
}

func TestVendorSummaryNoRequirements(t *testing.T) {
	repo := newFakeRepository()
	repo.vendors[5] = &models.Vendor{ID: 5, Name: "FastShip", Category: "Logistics"}
	svc := newTestService(repo)

	summary, err := svc.VendorSummary(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.TotalRequired)
	assert.Equal(t, 100, summary.Percentage)
}
