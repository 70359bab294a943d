package service

import (
	"custrisk-service/internal/analysis/model"
)

// Aggregate reduces raw sales rows to one summary per (finance_id,
// customer_name) pair. Output order is first-seen input order — the matcher's
// tie-breaks depend on it, so a plain map iteration is not enough here.
func Aggregate(sales []model.SaleRow, st *Standardizer, opt model.Options) []model.SalesAggregate {
	type acc struct {
		agg      model.SalesAggregate
		products map[string]struct{}
	}
	type key struct{ id, name string }

	byKey := make(map[key]*acc)
	order := make([]key, 0, len(sales))

	for _, row := range sales {
		k := key{row.FinanceID, row.CustomerName}
		a, ok := byKey[k]
		if !ok {
			a = &acc{
				agg: model.SalesAggregate{
					FinanceID:    row.FinanceID,
					CustomerName: row.CustomerName,
					StdName:      st.Standardize(row.CustomerName),
				},
				products: make(map[string]struct{}),
			}
			byKey[k] = a
			order = append(order, k)
		}
		a.agg.TotalAmount += row.Amount
		a.agg.TotalQty += row.Qty
		a.agg.TxCount++
		if row.ProductName != "" {
			a.products[row.ProductName] = struct{}{}
		}
		if d := row.Date(); !d.IsZero() {
			if a.agg.LastSaleDate == nil || d.After(*a.agg.LastSaleDate) {
				dd := d
				a.agg.LastSaleDate = &dd
			}
		}
	}

	out := make([]model.SalesAggregate, 0, len(order))
	for _, k := range order {
		a := byKey[k]
		a.agg.UniqueProduct = len(a.products)
		if a.agg.LastSaleDate != nil {
			days := int(opt.Now.Sub(*a.agg.LastSaleDate).Hours() / 24)
			if days < 0 {
				days = 0
			}
			a.agg.DaysSinceSale = &days
		}
		a.agg.ActivityTier = ActivityTier(a.agg.DaysSinceSale)
		out = append(out, a.agg)
	}
	return out
}
