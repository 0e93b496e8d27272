package compliance

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/vendorvault/VendorVault/app/models"
	"github.com/vendorvault/VendorVault/internal/pkg/audit"
)

// Service implements the document lifecycle: upload, review transitions and
// vendor compliance rollups. All expiry handling is lazy; nothing here ever
// writes an expired status.
type Service struct {
	repo    Repository
	auditor audit.Recorder
	now     func() time.Time
}

// NewService creates a compliance service from an injected repository and
// audit recorder.
func NewService(repo Repository, auditor audit.Recorder) *Service {
	return &Service{repo: repo, auditor: auditor, now: time.Now}
}

// NewServiceFromDB creates a compliance service from a GORM DB handle.
func NewServiceFromDB(db *gorm.DB) *Service {
	return NewService(NewRepository(db), audit.NewRecorder(db))
}

// UploadInput carries everything needed to register uploaded evidence. File
// content has already been persisted by the storage collaborator; FilePath is
// its stable reference.
type UploadInput struct {
	VendorID       uint
	DocumentTypeID uint
	FileName       string
	FilePath       string
	FileSize       int64
	IssueDate      *time.Time
	ExpiryDate     *time.Time
	Notes          string
	ActorID        string
	ActorType      string
}

// Upload creates a pending document for the vendor. The document type must be
// applicable to the vendor's category; the UI pre-filters, but the engine
// re-validates. When the type requires an expiry and none was supplied, the
// expiry is derived from the issue date plus the type's default validity.
func (s *Service) Upload(ctx context.Context, in UploadInput) (*models.VendorDocument, error) {
	_ = ctx
	vendor, err := s.repo.GetVendor(in.VendorID)
	if err != nil {
		return nil, translateNotFound(err)
	}

	dt, err := s.repo.GetDocumentType(in.DocumentTypeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newValidationError("document_type_id", "unknown document type")
		}
		return nil, err
	}
	if !dt.AppliesTo(vendor.Category) {
		return nil, newValidationError("document_type_id",
			fmt.Sprintf("document type %q is not applicable to category %q", dt.Name, vendor.Category))
	}

	expiry := in.ExpiryDate
	if expiry == nil && dt.ExpiryRequired && in.IssueDate != nil && dt.DefaultValidityDays != nil {
		derived := in.IssueDate.AddDate(0, 0, *dt.DefaultValidityDays)
		expiry = &derived
	}

	now := s.now()
	doc := &models.VendorDocument{
		VendorID:       vendor.ID,
		DocumentTypeID: dt.ID,
		Status:         models.DOC_STATUS_PENDING,
		FileName:       in.FileName,
		FilePath:       in.FilePath,
		FileSize:       in.FileSize,
		IssueDate:      in.IssueDate,
		ExpiryDate:     expiry,
		UploadedBy:     in.ActorID,
		UploadedAt:     &now,
		Notes:          in.Notes,
	}
	if err := s.repo.CreateDocument(doc); err != nil {
		return nil, err
	}

	s.auditor.Record(audit.Entry{
		VendorID:         &vendor.ID,
		VendorDocumentID: &doc.ID,
		ActionType:       models.ACTION_UPLOADED,
		ActorID:          in.ActorID,
		ActorType:        in.ActorType,
		Description:      fmt.Sprintf("Document uploaded: %s", in.FileName),
	})
	return doc, nil
}

// Approve moves a pending document to approved and records the approver. The
// transition is a conditional update keyed on (id, status=pending): a document
// that already left pending fails with ErrInvalidState, including a repeated
// approval.
func (s *Service) Approve(ctx context.Context, documentID uint, actorID, notes string) (*models.VendorDocument, error) {
	_ = ctx
	if _, err := s.repo.GetDocument(documentID); err != nil {
		return nil, translateNotFound(err)
	}

	now := s.now()
	updates := map[string]interface{}{
		"status":      models.DOC_STATUS_APPROVED,
		"approved_by": actorID,
		"approved_at": now,
		"updated_at":  now,
	}
	if strings.TrimSpace(notes) != "" {
		updates["notes"] = notes
	}

	rows, err := s.repo.UpdateDocumentIfPending(documentID, updates)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrInvalidState
	}

	doc, err := s.repo.GetDocument(documentID)
	if err != nil {
		return nil, translateNotFound(err)
	}

	s.auditor.Record(audit.Entry{
		VendorID:         &doc.VendorID,
		VendorDocumentID: &doc.ID,
		ActionType:       models.ACTION_APPROVED,
		ActorID:          actorID,
		ActorType:        models.ACTOR_TYPE_USER,
		Description:      "Document approved",
	})
	return doc, nil
}

// Reject moves a pending document to rejected with a mandatory reason. Same
// single-winner rule as Approve.
func (s *Service) Reject(ctx context.Context, documentID uint, reason, actorID string) (*models.VendorDocument, error) {
	_ = ctx
	if strings.TrimSpace(reason) == "" {
		return nil, newValidationError("rejection_reason", "rejection reason is required")
	}
	if _, err := s.repo.GetDocument(documentID); err != nil {
		return nil, translateNotFound(err)
	}

	updates := map[string]interface{}{
		"status":           models.DOC_STATUS_REJECTED,
		"rejection_reason": reason,
		"updated_at":       s.now(),
	}
	rows, err := s.repo.UpdateDocumentIfPending(documentID, updates)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrInvalidState
	}

	doc, err := s.repo.GetDocument(documentID)
	if err != nil {
		return nil, translateNotFound(err)
	}

	s.auditor.Record(audit.Entry{
		VendorID:         &doc.VendorID,
		VendorDocumentID: &doc.ID,
		ActionType:       models.ACTION_REJECTED,
		ActorID:          actorID,
		ActorType:        models.ACTOR_TYPE_USER,
		Description:      fmt.Sprintf("Document rejected: %s", reason),
	})
	return doc, nil
}

// VendorSummary resolves the vendor's requirements against its documents and
// returns the compliance rollup as of now.
func (s *Service) VendorSummary(ctx context.Context, vendorID uint) (Summary, error) {
	_ = ctx
	vendor, err := s.repo.GetVendor(vendorID)
	if err != nil {
		return Summary{}, translateNotFound(err)
	}
	types, err := s.repo.ListDocumentTypes()
	if err != nil {
		return Summary{}, err
	}
	docs, err := s.repo.ListDocumentsByVendor(vendor.ID)
	if err != nil {
		return Summary{}, err
	}
	required := RequiredDocumentTypes(vendor.Category, types)
	return VendorCompliance(required, docs, s.now()), nil
}

func translateNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
