package service

import (
	"custrisk-service/internal/analysis/model"
)

// debtToSalesRatio — debt_2025 over total sales, as a percentage. Zero
// sales means zero ratio, never a division.
func debtToSalesRatio(debt2025, totalAmount float64) float64 {
	if totalAmount <= 0 {
		return 0
	}
	return debt2025 / totalAmount * 100
}

// mergeMatched builds the record for a debt row with a consumed aggregate.
func mergeMatched(d model.DebtRecord, a model.SalesAggregate, matchType string) model.MergedRecord {
	return model.MergedRecord{
		FinanceID:     d.FinanceID,
		CustomerName:  d.CustomerName,
		Department:    d.Department,
		MatchType:     matchType,
		TotalAmount:   a.TotalAmount,
		TotalQty:      a.TotalQty,
		UniqueProduct: a.UniqueProduct,
		TxCount:       a.TxCount,
		LastSaleDate:  a.LastSaleDate,
		DaysSinceSale: a.DaysSinceSale,
		ActivityTier:  a.ActivityTier,
		Debt2023:      d.Debt2023,
		Debt2024:      d.Debt2024,
		Debt2025:      d.Debt2025,
		DebtTrend:     d.DebtTrend,
		DebtRatio:     debtToSalesRatio(d.Debt2025, a.TotalAmount),
	}
}

// mergeDebtOnly builds the record for a debt row with no sales history;
// every sales metric is zeroed.
func mergeDebtOnly(d model.DebtRecord) model.MergedRecord {
	return model.MergedRecord{
		FinanceID:    d.FinanceID,
		CustomerName: d.CustomerName,
		Department:   d.Department,
		MatchType:    model.MatchDebtOnly,
		ActivityTier: model.NoSalesRecord,
		Debt2023:     d.Debt2023,
		Debt2024:     d.Debt2024,
		Debt2025:     d.Debt2025,
		DebtTrend:    d.DebtTrend,
	}
}

// mergeSalesOnly builds the record for an aggregate no debt row consumed;
// every debt field is zeroed.
func mergeSalesOnly(a model.SalesAggregate) model.MergedRecord {
	return model.MergedRecord{
		FinanceID:     a.FinanceID,
		CustomerName:  a.CustomerName,
		MatchType:     model.MatchSalesOnly,
		TotalAmount:   a.TotalAmount,
		TotalQty:      a.TotalQty,
		UniqueProduct: a.UniqueProduct,
		TxCount:       a.TxCount,
		LastSaleDate:  a.LastSaleDate,
		DaysSinceSale: a.DaysSinceSale,
		ActivityTier:  a.ActivityTier,
	}
}
