package portal

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/vendorvault/VendorVault/app/models"
)

// DefaultValidityDays is how long a portal link stays usable when the caller
// does not pick a validity.
const DefaultValidityDays = 30

// Grant is an issued portal credential.
type Grant struct {
	Token  string    `json:"token"`
	Expiry time.Time `json:"expiry"`
}

// Repository provides the vendor-token storage operations. Both writes and
// reads treat token and expiry as one unit; a torn write of either alone is a
// bug.
type Repository interface {
	// SetPortalToken overwrites token and expiry together in a single update
	// and returns the number of matched vendor rows.
	SetPortalToken(vendorID uint, token string, expiry time.Time) (int64, error)
	// FindVendorByToken returns the vendor whose stored token matches and
	// whose expiry is not before now, or gorm.ErrRecordNotFound.
	FindVendorByToken(token string, now time.Time) (*models.Vendor, error)
}

// Gate issues and resolves portal tokens. A resolved token scopes the caller
// to exactly one vendor's record and documents: reads plus document uploads,
// nothing else.
type Gate struct {
	repo Repository
	now  func() time.Time
}

// NewGate creates a portal token gate from an injected repository.
func NewGate(repo Repository) *Gate {
	return &Gate{repo: repo, now: time.Now}
}

// NewGateFromDB creates a portal token gate from a GORM DB handle.
func NewGateFromDB(db *gorm.DB) *Gate {
	return NewGate(NewRepository(db))
}

// Issue generates a fresh opaque token for the vendor, replacing whatever
// token existed before. Prior links die immediately; a vendor has at most one
// valid token. validityDays <= 0 selects the default.
func (g *Gate) Issue(vendorID uint, validityDays int) (*Grant, error) {
	if validityDays <= 0 {
		validityDays = DefaultValidityDays
	}

	token, err := generateToken()
	if err != nil {
		return nil, err
	}
	expiry := g.now().AddDate(0, 0, validityDays)

	rows, err := g.repo.SetPortalToken(vendorID, token, expiry)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &Grant{Token: token, Expiry: expiry}, nil
}

// Resolve maps a presented token to its vendor. Unknown and expired tokens
// both come back as (nil, nil) so callers cannot tell whether a token ever
// existed. A matched token stays valid for repeated use until expiry or
// reissuance; there is no burn-after-read.
func (g *Gate) Resolve(token string) (*models.Vendor, error) {
	if token == "" {
		return nil, nil
	}
	vendor, err := g.repo.FindVendorByToken(token, g.now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return vendor, nil
}

func generateToken() (string, error) {
	b := make([]byte, 24)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a portal repository backed by GORM.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) SetPortalToken(vendorID uint, token string, expiry time.Time) (int64, error) {
	result := r.db.Model(&models.Vendor{}).
		Where("id = ?", vendorID).
		Updates(map[string]interface{}{
			"portal_token":        token,
			"portal_token_expiry": expiry,
		})
	return result.RowsAffected, result.Error
}

func (r *gormRepository) FindVendorByToken(token string, now time.Time) (*models.Vendor, error) {
	var vendor models.Vendor
	err := r.db.
		Where("portal_token = ? AND portal_token_expiry >= ?", token, now).
		First(&vendor).Error
	if err != nil {
		return nil, err
	}
	return &vendor, nil
}
