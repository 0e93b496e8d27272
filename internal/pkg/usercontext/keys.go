package usercontext

// Shared Locals/session keys used across controllers and middlewares
const (
	KeyUserContext   = "USER_CONTEXT"
	KeyUserID        = "user_id"
	KeyUserEmail     = "user_email"
	KeyOrgID         = "org_id"
	KeyRole          = "role"
	KeyFromProtected = "from_protected"
	KeyPortalVendor  = "PORTAL_VENDOR"
)
