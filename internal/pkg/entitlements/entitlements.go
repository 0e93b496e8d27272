package entitlements

// Plan is the subscription tier of an organization.
type Plan string

const (
	PlanFree    Plan = "free"
	PlanPro     Plan = "pro"
	PlanProPlus Plan = "pro_plus"
)

// Unlimited marks a ceiling with no cap.
const Unlimited = -1

// Limits are the hard ceilings a plan imposes on an organization.
type Limits struct {
	MaxUsers     int
	MaxVendors   int
	MaxDocuments int
}

// PlanLimits returns the ceilings for a given plan. Unknown plans get the
// free tier.
func PlanLimits(plan Plan) Limits {
	switch plan {
	case PlanProPlus:
		return Limits{MaxUsers: Unlimited, MaxVendors: Unlimited, MaxDocuments: Unlimited}
	case PlanPro:
		return Limits{MaxUsers: 10, MaxVendors: 100, MaxDocuments: 1000}
	default:
		return Limits{MaxUsers: 2, MaxVendors: 10, MaxDocuments: 50}
	}
}

func withinLimit(current int64, limit int) bool {
	return limit == Unlimited || current < int64(limit)
}

// CanAddUser reports whether the organization may create another user.
func CanAddUser(plan Plan, currentUsers int64) bool {
	return withinLimit(currentUsers, PlanLimits(plan).MaxUsers)
}

// CanAddVendor reports whether the organization may register another vendor.
func CanAddVendor(plan Plan, currentVendors int64) bool {
	return withinLimit(currentVendors, PlanLimits(plan).MaxVendors)
}

// CanAddDocument reports whether the organization may store another document.
func CanAddDocument(plan Plan, currentDocuments int64) bool {
	return withinLimit(currentDocuments, PlanLimits(plan).MaxDocuments)
}
