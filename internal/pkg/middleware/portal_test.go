package middleware

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/vendorvault/VendorVault/app/models"
	"github.com/vendorvault/VendorVault/internal/pkg/portal"
)

type staticTokenRepo struct {
	token  string
	vendor *models.Vendor
}

func (r *staticTokenRepo) SetPortalToken(vendorID uint, token string, expiry time.Time) (int64, error) {
	return 1, nil
}

func (r *staticTokenRepo) FindVendorByToken(token string, now time.Time) (*models.Vendor, error) {
	if token == r.token {
		return r.vendor, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func newPortalTestApp(repo portal.Repository) *fiber.App {
	app := fiber.New()
	app.Get("/portal/:token", PortalTokenAuth(portal.NewGate(repo)), func(c *fiber.Ctx) error {
		vendor := PortalVendor(c)
		return c.JSON(fiber.Map{"vendor": vendor.Name})
	})
	return app
}

func TestPortalTokenAuthValidToken(t *testing.T) {
	app := newPortalTestApp(&staticTokenRepo{
		token:  "valid-token",
		vendor: &models.Vendor{ID: 1, Name: "Acme Steel"},
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/portal/valid-token", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "Acme Steel")
}

func TestPortalTokenAuthUnknownToken(t *testing.T) {
	app := newPortalTestApp(&staticTokenRepo{
		token:  "valid-token",
		vendor: &models.Vendor{ID: 1, Name: "Acme Steel"},
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/portal/other-token", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	// Unknown and expired tokens share this exact message.
	assert.Contains(t, string(body), "Invalid or expired portal link")
}
