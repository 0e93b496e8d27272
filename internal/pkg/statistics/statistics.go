package statistics

import (
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/vendorvault/VendorVault/app/models"
	"github.com/vendorvault/VendorVault/app/repository"
	"github.com/vendorvault/VendorVault/internal/pkg/cache"
	"github.com/vendorvault/VendorVault/internal/pkg/compliance"
)

const (
	cacheKeyCompliance = "statistics:compliance:%d"  // org id
	cacheKeyByCategory = "statistics:by-category:%d" // org id
	cacheExpiration    = 5 * time.Minute

	// Vendors below this percentage count as at risk regardless of their
	// configured risk level.
	atRiskThreshold = 50
)

// ComplianceStats is the dashboard headline block.
type ComplianceStats struct {
	OverallCompliance int `json:"overall_compliance"`
	VendorsAtRisk     int `json:"vendors_at_risk"`
	ExpiringThisMonth int `json:"expiring_this_month"`
	TotalVendors      int `json:"total_vendors"`
}

// CategoryStat is one bar of the per-category compliance chart.
type CategoryStat struct {
	Category   string `json:"category"`
	Percentage int    `json:"percentage"`
}

type vendorSummary struct {
	vendor  models.Vendor
	summary compliance.Summary
}

// GetComplianceStats computes (or serves from cache) the organization-wide
// headline numbers. Only active vendors participate.
func GetComplianceStats(repos *repository.Repositories, orgID uint, now time.Time) (*ComplianceStats, error) {
	key := fmt.Sprintf(cacheKeyCompliance, orgID)
	if cached, err := cache.Get(key); err == nil && cached != "" {
		var stats ComplianceStats
		if err := json.Unmarshal([]byte(cached), &stats); err == nil {
			return &stats, nil
		}
	}

	entries, err := vendorSummaries(repos, orgID, now)
	if err != nil {
		return nil, err
	}

	all := make([]compliance.Summary, 0, len(entries))
	atRisk := 0
	for _, e := range entries {
		all = append(all, e.summary)
		if e.vendor.RiskLevel == models.RISK_HIGH || e.summary.Percentage < atRiskThreshold {
			atRisk++
		}
	}

	stats := &ComplianceStats{
		OverallCompliance: compliance.OverallCompliance(all),
		VendorsAtRisk:     atRisk,
		TotalVendors:      len(entries),
	}

	endOfMonth := time.Date(now.Year(), now.Month()+1, 1, 0, 0, 0, 0, now.Location()).Add(-time.Second)
	expiring, err := repos.VendorDocument.GetExpiring(orgID, now, int(endOfMonth.Sub(now).Hours()/24)+1)
	if err != nil {
		return nil, err
	}
	for _, doc := range expiring {
		if doc.ExpiryDate != nil && !doc.ExpiryDate.After(endOfMonth) {
			stats.ExpiringThisMonth++
		}
	}

	cachePut(key, stats)
	return stats, nil
}

// GetComplianceByCategory computes (or serves from cache) average vendor
// compliance per category.
func GetComplianceByCategory(repos *repository.Repositories, orgID uint, now time.Time) ([]CategoryStat, error) {
	key := fmt.Sprintf(cacheKeyByCategory, orgID)
	if cached, err := cache.Get(key); err == nil && cached != "" {
		var stats []CategoryStat
		if err := json.Unmarshal([]byte(cached), &stats); err == nil {
			return stats, nil
		}
	}

	entries, err := vendorSummaries(repos, orgID, now)
	if err != nil {
		return nil, err
	}

	stats := categoryStats(entries)
	cachePut(key, stats)
	return stats, nil
}

// categoryStats groups vendor summaries by category and averages them. The
// result is ordered by category name so the dashboard (and the cached copy)
// stay stable across reloads.
func categoryStats(entries []vendorSummary) []CategoryStat {
	grouped := make(map[string][]compliance.Summary)
	for _, e := range entries {
		grouped[e.vendor.Category] = append(grouped[e.vendor.Category], e.summary)
	}

	byCategory := compliance.CategoryCompliance(grouped)
	stats := make([]CategoryStat, 0, len(byCategory))
	for category, pct := range byCategory {
		stats = append(stats, CategoryStat{Category: category, Percentage: pct})
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Category < stats[j].Category })
	return stats
}

// InvalidateOrg drops the cached statistics of an organization, e.g. after a
// review decision.
func InvalidateOrg(orgID uint) {
	_ = cache.Delete(fmt.Sprintf(cacheKeyCompliance, orgID))
	_ = cache.Delete(fmt.Sprintf(cacheKeyByCategory, orgID))
}

func vendorSummaries(repos *repository.Repositories, orgID uint, now time.Time) ([]vendorSummary, error) {
	vendors, err := repos.Vendor.ListActiveByOrganization(orgID)
	if err != nil {
		return nil, err
	}
	types, err := repos.DocumentType.GetAll()
	if err != nil {
		return nil, err
	}

	entries := make([]vendorSummary, 0, len(vendors))
	for _, vendor := range vendors {
		docs, err := repos.VendorDocument.GetByVendor(vendor.ID)
		if err != nil {
			return nil, err
		}
		required := compliance.RequiredDocumentTypes(vendor.Category, types)
		entries = append(entries, vendorSummary{
			vendor:  vendor,
			summary: compliance.VendorCompliance(required, docs, now),
		})
	}
	return entries, nil
}

func cachePut(key string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := cache.Set(key, string(data), cacheExpiration); err != nil {
		log.Printf("statistics: failed to cache %s: %v", key, err)
	}
}
