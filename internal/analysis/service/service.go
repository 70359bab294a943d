package service

import (
	"time"

	"custrisk-service/internal/analysis/model"
)

// Run — the full pipeline: aggregate sales, resolve every debt row through
// the matching cascade, merge, classify. Pure and deterministic for a given
// input snapshot; all matching state lives inside this call.
func Run(sales []model.SaleRow, debts []model.DebtRecord, opt model.Options) model.Result {
	if opt.Threshold <= 0 {
		opt.Threshold = DefaultThreshold
	}
	if opt.Now.IsZero() {
		opt.Now = time.Now().UTC()
	}

	st := NewStandardizer(opt.Prefixes)
	sc := NewScorer(st)

	aggs := Aggregate(sales, st, opt)

	for i := range debts {
		debts[i].StdName = st.Standardize(debts[i].CustomerName)
	}

	hits := matchDebts(debts, aggs, st, sc, opt)

	res := model.Result{Records: make([]model.MergedRecord, 0, len(debts)+len(aggs))}
	consumed := make([]bool, len(aggs))

	for i, d := range debts {
		var rec model.MergedRecord
		if h := hits[i]; h.aggIdx >= 0 {
			consumed[h.aggIdx] = true
			rec = mergeMatched(d, aggs[h.aggIdx], h.matchType)
			res.Matched++
		} else {
			rec = mergeDebtOnly(d)
			res.DebtOnly++
		}
		Classify(&rec)
		res.Records = append(res.Records, rec)
	}

	for i, a := range aggs {
		if consumed[i] {
			continue
		}
		rec := mergeSalesOnly(a)
		Classify(&rec)
		res.Records = append(res.Records, rec)
		res.SalesOnly++
	}

	return res
}
