package entitlements

import "testing"

func TestPlanLimits(t *testing.T) {
	free := PlanLimits(PlanFree)
	if free.MaxUsers != 2 || free.MaxVendors != 10 || free.MaxDocuments != 50 {
		t.Fatalf("unexpected free limits: %+v", free)
	}

	pro := PlanLimits(PlanPro)
	if pro.MaxUsers != 10 || pro.MaxVendors != 100 || pro.MaxDocuments != 1000 {
		t.Fatalf("unexpected pro limits: %+v", pro)
	}

	proPlus := PlanLimits(PlanProPlus)
	if proPlus.MaxUsers != Unlimited || proPlus.MaxVendors != Unlimited || proPlus.MaxDocuments != Unlimited {
		t.Fatalf("unexpected pro_plus limits: %+v", proPlus)
	}
}

func TestUnknownPlanFallsBackToFree(t *testing.T) {
	if PlanLimits(Plan("enterprise")) != PlanLimits(PlanFree) {
		t.Fatalf("unknown plan should get free limits")
	}
}

func TestCanAddVendor(t *testing.T) {
	tests := []struct {
		plan    Plan
		current int64
		want    bool
	}{
		{PlanFree, 0, true},
		{PlanFree, 9, true},
		{PlanFree, 10, false},
		{PlanPro, 99, true},
		{PlanPro, 100, false},
		{PlanProPlus, 1000000, true},
	}
	for _, tt := range tests {
		if got := CanAddVendor(tt.plan, tt.current); got != tt.want {
			t.Fatalf("CanAddVendor(%s, %d) = %t, want %t", tt.plan, tt.current, got, tt.want)
		}
	}
}

func TestCanAddUserAndDocument(t *testing.T) {
	if !CanAddUser(PlanFree, 1) || CanAddUser(PlanFree, 2) {
		t.Fatalf("free plan should allow up to 2 users")
	}
	if !CanAddDocument(PlanFree, 49) || CanAddDocument(PlanFree, 50) {
		t.Fatalf("free plan should allow up to 50 documents")
	}
	if !CanAddUser(PlanProPlus, 1<<40) {
		t.Fatalf("pro_plus should never cap users")
	}
}
