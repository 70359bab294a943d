package service

import (
	"strings"

	"custrisk-service/internal/analysis/model"
)

// ActivityTier buckets recency of the last sale.
func ActivityTier(daysSinceSale *int) string {
	switch {
	case daysSinceSale == nil:
		return model.NoSalesRecord
	case *daysSinceSale <= 30:
		return model.Active30
	case *daysSinceSale <= 90:
		return model.Active90
	case *daysSinceSale <= 180:
		return model.Active180
	default:
		return model.Dormant
	}
}

// persistentTrend — the ledgers tag persistent debtors "持续欠款"; some
// exports carry the bare english word.
func persistentTrend(trend string) bool {
	t := strings.TrimSpace(trend)
	return t == "persistent" || strings.Contains(t, "持续")
}

func isActive(tier string) bool {
	return tier == model.Active30 || tier == model.Active90 || tier == model.Active180
}

// CustomerTier walks the grading decision tree. The guards are ordered and
// deliberately not mutually exclusive — evaluation order decides boundary
// values (ratio exactly 20% or 50%), so keep it a chain, not a table.
func CustomerTier(r *model.MergedRecord) string {
	hasDebt := r.Debt2025 > 0
	hasSales := r.TotalAmount > 0
	anyDebt := r.Debt2023 > 0 || r.Debt2024 > 0 || r.Debt2025 > 0

	if r.Department == "" && !hasSales && !anyDebt {
		return "incomplete-data"
	}

	if !hasDebt {
		switch {
		case !hasSales:
			return "D-no-sales-no-debt"
		case r.TotalAmount > 50000:
			if isActive(r.ActivityTier) {
				return "A-premium-large"
			}
			return "B-dormant-large"
		case r.TotalAmount > 10000:
			if isActive(r.ActivityTier) {
				return "A-premium-active"
			}
			return "B-general"
		default:
			return "C-small"
		}
	}

	if !hasSales {
		return "E-debt-only"
	}

	switch {
	case r.DebtRatio < 20:
		if r.ActivityTier == model.Active30 {
			return "B1-low-risk-active-debt"
		}
		return "B2-low-risk-debt"
	case r.DebtRatio <= 50:
		if persistentTrend(r.DebtTrend) {
			return "C1-medium-risk-persistent"
		}
		return "C2-medium-risk-debt"
	default:
		if persistentTrend(r.DebtTrend) {
			return "D1-high-risk-persistent"
		}
		return "D2-high-risk-debt"
	}
}

// RiskScore starts at 100 and applies monotonic deductions, clamped to
// [0..100]. SALES_ONLY is the only credit.
func RiskScore(r *model.MergedRecord) int {
	score := 100

	switch {
	case r.Debt2025 > 50000:
		score -= 30
	case r.Debt2025 > 10000:
		score -= 20
	case r.Debt2025 > 0:
		score -= 10
	}

	switch r.ActivityTier {
	case model.Dormant:
		score -= 15
	case model.NoSalesRecord:
		score -= 25
	}

	switch {
	case r.DebtRatio > 50:
		score -= 25
	case r.DebtRatio > 20:
		score -= 15
	}

	if persistentTrend(r.DebtTrend) {
		score -= 10
	}

	switch r.MatchType {
	case model.MatchDebtOnly:
		score -= 5
	case model.MatchSalesOnly:
		score += 5
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}

// RiskLevel buckets a score into five levels.
func RiskLevel(score int) string {
	switch {
	case score >= 80:
		return model.RiskLow
	case score >= 60:
		return model.RiskModerateLow
	case score >= 40:
		return model.RiskModerate
	case score >= 20:
		return model.RiskModerateHigh
	default:
		return model.RiskHigh
	}
}

// Classify fills the derived grading fields in place.
func Classify(r *model.MergedRecord) {
	r.CustomerTier = CustomerTier(r)
	r.RiskScore = RiskScore(r)
	r.RiskLevel = RiskLevel(r.RiskScore)
}
