package audit

import (
	"log"

	"gorm.io/gorm"

	"github.com/vendorvault/VendorVault/app/models"
)

// Entry describes one state-changing action.
type Entry struct {
	VendorID         *uint
	VendorDocumentID *uint
	ActionType       string
	ActorID          string
	ActorType        string
	Description      string
}

// Recorder appends audit entries. Recording is fire-and-forget: failures are
// logged and never surfaced to the operation that triggered them.
type Recorder interface {
	Record(entry Entry)
}

type dbRecorder struct {
	db *gorm.DB
}

// NewRecorder creates a recorder writing to the audit_logs table.
func NewRecorder(db *gorm.DB) Recorder {
	return &dbRecorder{db: db}
}

func (r *dbRecorder) Record(entry Entry) {
	actorType := entry.ActorType
	if actorType == "" {
		actorType = models.ACTOR_TYPE_SYSTEM
	}
	row := &models.AuditLog{
		VendorID:         entry.VendorID,
		VendorDocumentID: entry.VendorDocumentID,
		ActionType:       entry.ActionType,
		ActorID:          entry.ActorID,
		ActorType:        actorType,
		Description:      entry.Description,
	}
	if err := r.db.Create(row).Error; err != nil {
		log.Printf("audit: failed to record %s: %v", entry.ActionType, err)
	}
}

// Discard is a no-op recorder for tests and tooling.
type Discard struct{}

func (Discard) Record(Entry) {}
