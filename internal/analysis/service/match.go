package service

import (
	"sort"
	"strings"

	"custrisk-service/internal/analysis/model"
)

// matchHit is the outcome of resolving one debt row: the index of the
// consumed aggregate (or -1) and the strategy that produced it.
type matchHit struct {
	aggIdx    int
	matchType string
}

// matchDebts resolves every debt row against the aggregate arena using the
// strategy cascade: exact -> name_contains -> keyword -> finance_id_only.
// The first strategy that yields an unused candidate wins and consumes it;
// each aggregate is consumed at most once per invocation. The used set lives
// only for this call.
func matchDebts(debts []model.DebtRecord, aggs []model.SalesAggregate, st *Standardizer, sc *Scorer, opt model.Options) []matchHit {
	byID := make(map[string][]int, len(aggs))
	for i, a := range aggs {
		byID[a.FinanceID] = append(byID[a.FinanceID], i)
	}

	used := make([]bool, len(aggs))

	// keyword sets are needed repeatedly; compute once per aggregate
	aggKW := make([]map[string]struct{}, len(aggs))
	for i, a := range aggs {
		aggKW[i] = st.Keywords(a.CustomerName)
	}

	hits := make([]matchHit, len(debts))
	for di, d := range debts {
		cands := byID[d.FinanceID]
		hits[di] = matchHit{aggIdx: -1, matchType: model.MatchDebtOnly}
		if len(cands) == 0 {
			continue
		}

		// (1) exact: finance id + standardized name
		if idx := firstUnused(cands, used, func(i int) bool {
			return aggs[i].StdName == d.StdName && d.StdName != ""
		}); idx >= 0 {
			used[idx] = true
			hits[di] = matchHit{aggIdx: idx, matchType: model.MatchExact}
			continue
		}

		// (2) containment either way, or similarity
		if idx := firstUnused(cands, used, func(i int) bool {
			as, ds := aggs[i].StdName, d.StdName
			if as != "" && ds != "" && (strings.Contains(as, ds) || strings.Contains(ds, as)) {
				return true
			}
			return sc.IsSimilar(d.CustomerName, aggs[i].CustomerName, opt.Threshold)
		}); idx >= 0 {
			used[idx] = true
			hits[di] = matchHit{aggIdx: idx, matchType: model.MatchNameContains}
			continue
		}

		// (3) keyword overlap
		dkw := st.Keywords(d.CustomerName)
		if len(dkw) > 0 {
			if idx := firstUnused(cands, used, func(i int) bool {
				return keywordsIntersect(dkw, aggKW[i])
			}); idx >= 0 {
				used[idx] = true
				hits[di] = matchHit{aggIdx: idx, matchType: model.MatchKeyword}
				continue
			}
		}

		// (4) finance id alone: prefer the most transacted, most recently
		// active candidate under that id
		if idx := bestByActivity(cands, used, aggs); idx >= 0 {
			used[idx] = true
			hits[di] = matchHit{aggIdx: idx, matchType: model.MatchFinanceIDOnly}
		}
	}
	return hits
}

// firstUnused returns the first candidate index (input order) passing the
// predicate, or -1.
func firstUnused(cands []int, used []bool, ok func(int) bool) int {
	for _, i := range cands {
		if used[i] {
			continue
		}
		if ok(i) {
			return i
		}
	}
	return -1
}

// bestByActivity sorts unused candidates by transaction count (desc), then
// days since last sale (asc, never-sold last) and returns the top.
func bestByActivity(cands []int, used []bool, aggs []model.SalesAggregate) int {
	pool := make([]int, 0, len(cands))
	for _, i := range cands {
		if !used[i] {
			pool = append(pool, i)
		}
	}
	if len(pool) == 0 {
		return -1
	}
	days := func(i int) int {
		if aggs[i].DaysSinceSale == nil {
			return 1 << 30
		}
		return *aggs[i].DaysSinceSale
	}
	sort.SliceStable(pool, func(x, y int) bool {
		a, b := pool[x], pool[y]
		if aggs[a].TxCount != aggs[b].TxCount {
			return aggs[a].TxCount > aggs[b].TxCount
		}
		return days(a) < days(b)
	})
	return pool[0]
}
