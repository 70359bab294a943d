package service

import (
	"testing"

	"custrisk-service/internal/analysis/model"
)

func intp(v int) *int { return &v }

func TestActivityTier(t *testing.T) {
	tests := []struct {
		days *int
		want string
	}{
		{nil, model.NoSalesRecord},
		{intp(0), model.Active30},
		{intp(30), model.Active30},
		{intp(31), model.Active90},
		{intp(90), model.Active90},
		{intp(91), model.Active180},
		{intp(180), model.Active180},
		{intp(181), model.Dormant},
	}
	for _, tt := range tests {
		if got := ActivityTier(tt.days); got != tt.want {
			t.Errorf("ActivityTier(%v) = %s, want %s", tt.days, got, tt.want)
		}
	}
}

func TestCustomerTier(t *testing.T) {
	tests := []struct {
		name string
		rec  model.MergedRecord
		want string
	}{
		{"incomplete data", model.MergedRecord{ActivityTier: model.NoSalesRecord}, "incomplete-data"},
		{"no sales no debt", model.MergedRecord{Department: "古建", ActivityTier: model.NoSalesRecord}, "D-no-sales-no-debt"},
		{"premium large", model.MergedRecord{TotalAmount: 60000, ActivityTier: model.Active30}, "A-premium-large"},
		{"dormant large", model.MergedRecord{TotalAmount: 60000, ActivityTier: model.Dormant}, "B-dormant-large"},
		{"premium active", model.MergedRecord{TotalAmount: 20000, ActivityTier: model.Active90}, "A-premium-active"},
		{"general", model.MergedRecord{TotalAmount: 20000, ActivityTier: model.Dormant}, "B-general"},
		{"small", model.MergedRecord{TotalAmount: 10000, ActivityTier: model.Active30}, "C-small"},
		{"debt only", model.MergedRecord{Debt2025: 5000, ActivityTier: model.NoSalesRecord}, "E-debt-only"},
		{"low risk active", model.MergedRecord{TotalAmount: 100000, Debt2025: 10000, DebtRatio: 10, ActivityTier: model.Active30}, "B1-low-risk-active-debt"},
		{"low risk not 30d", model.MergedRecord{TotalAmount: 100000, Debt2025: 10000, DebtRatio: 10, ActivityTier: model.Active90}, "B2-low-risk-debt"},
		{"medium persistent", model.MergedRecord{TotalAmount: 60000, Debt2025: 20000, DebtRatio: 33.3, DebtTrend: "持续欠款", ActivityTier: model.Active30}, "C1-medium-risk-persistent"},
		{"medium plain", model.MergedRecord{TotalAmount: 60000, Debt2025: 20000, DebtRatio: 33.3, ActivityTier: model.Active30}, "C2-medium-risk-debt"},
		{"high persistent", model.MergedRecord{TotalAmount: 10000, Debt2025: 6000, DebtRatio: 60, DebtTrend: "持续欠款", ActivityTier: model.Active30}, "D1-high-risk-persistent"},
		{"high plain", model.MergedRecord{TotalAmount: 10000, Debt2025: 6000, DebtRatio: 60, ActivityTier: model.Active30}, "D2-high-risk-debt"},

		// boundary values: exactly 20% stays in the medium band, exactly
		// 50% too — only >50% is high
		{"ratio exactly 20", model.MergedRecord{TotalAmount: 50000, Debt2025: 10000, DebtRatio: 20, ActivityTier: model.Active30}, "C2-medium-risk-debt"},
		{"ratio exactly 50", model.MergedRecord{TotalAmount: 20000, Debt2025: 10000, DebtRatio: 50, ActivityTier: model.Active30}, "C2-medium-risk-debt"},
		{"ratio just over 50", model.MergedRecord{TotalAmount: 19999, Debt2025: 10001, DebtRatio: 50.01, ActivityTier: model.Active30}, "D2-high-risk-debt"},

		// threshold bands on sales: exactly 50000 is not "large",
		// exactly 10000 is still "small"
		{"sales exactly 50000", model.MergedRecord{TotalAmount: 50000, ActivityTier: model.Active30}, "A-premium-active"},
		{"sales exactly 10000", model.MergedRecord{TotalAmount: 10000, ActivityTier: model.Active30}, "C-small"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CustomerTier(&tt.rec); got != tt.want {
				t.Errorf("CustomerTier = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestRiskScore(t *testing.T) {
	tests := []struct {
		name string
		rec  model.MergedRecord
		want int
	}{
		{"clean sales only clamps at 100",
			model.MergedRecord{MatchType: model.MatchSalesOnly, TotalAmount: 80000, ActivityTier: model.Active30}, 100},
		{"debt only no sales",
			model.MergedRecord{MatchType: model.MatchDebtOnly, Debt2025: 5000, ActivityTier: model.NoSalesRecord}, 60},
		{"large debt dormant persistent ratio",
			// 100 -30 -15 -25 -10 = 20
			model.MergedRecord{MatchType: model.MatchExact, Debt2025: 60000, DebtRatio: 80, DebtTrend: "持续欠款", ActivityTier: model.Dormant}, 20},
		{"mid debt band",
			model.MergedRecord{MatchType: model.MatchExact, Debt2025: 20000, ActivityTier: model.Active30}, 80},
		{"small debt band",
			model.MergedRecord{MatchType: model.MatchExact, Debt2025: 100, ActivityTier: model.Active30}, 90},
		{"maximum deductions",
			// 100 -30 -25 -25 -10 -5 = 5
			model.MergedRecord{MatchType: model.MatchDebtOnly, Debt2025: 60000, DebtRatio: 80, DebtTrend: "持续欠款", ActivityTier: model.NoSalesRecord}, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RiskScore(&tt.rec)
			if got != tt.want {
				t.Errorf("RiskScore = %d, want %d", got, tt.want)
			}
			if got < 0 || got > 100 {
				t.Errorf("score out of bounds: %d", got)
			}
		})
	}
}

func TestRiskLevel(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{100, model.RiskLow},
		{80, model.RiskLow},
		{79, model.RiskModerateLow},
		{60, model.RiskModerateLow},
		{59, model.RiskModerate},
		{40, model.RiskModerate},
		{39, model.RiskModerateHigh},
		{20, model.RiskModerateHigh},
		{19, model.RiskHigh},
		{0, model.RiskHigh},
	}
	for _, tt := range tests {
		if got := RiskLevel(tt.score); got != tt.want {
			t.Errorf("RiskLevel(%d) = %s, want %s", tt.score, got, tt.want)
		}
	}
}
