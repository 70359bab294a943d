package service

import (
	"regexp"
	"strings"
	"time"

	"custrisk-service/internal/analysis/model"
)

// Pure identifier terms (digits and hyphens only) go through the exact
// finance-id path first.
var reIdentifier = regexp.MustCompile(`^[0-9-]+$`)

// Lookup resolves a free-text search term to the underlying customer
// identities and returns their full sales and debt history. An identifier
// term that hits at least one sales row short-circuits name resolution
// entirely; otherwise the term is matched against every distinct customer
// name by standardized equality, containment or keyword overlap. Empty terms
// and unresolvable terms return the empty shape, never an error.
func Lookup(term string, sales []model.SaleRow, debts []model.DebtRecord, opt model.Options) model.LookupResult {
	res := model.LookupResult{
		SalesRecords: []model.SaleRow{},
		DebtRecords:  []model.DebtRecord{},
		MatchedIDs:   []string{},
		MatchedNames: []string{},
	}
	term = strings.TrimSpace(term)
	if term == "" {
		return res
	}
	if opt.Now.IsZero() {
		opt.Now = time.Now().UTC()
	}
	if opt.RecentDays <= 0 {
		opt.RecentDays = 90
	}

	st := NewStandardizer(opt.Prefixes)

	if reIdentifier.MatchString(term) {
		var hit bool
		for _, s := range sales {
			if s.FinanceID == term {
				res.SalesRecords = append(res.SalesRecords, s)
				hit = true
			}
		}
		if hit {
			for _, d := range debts {
				if d.FinanceID == term {
					res.DebtRecords = append(res.DebtRecords, d)
				}
			}
			finish(&res, opt)
			return res
		}
		// no sales row carries this id — fall through to name resolution
	}

	// name-based resolution over every distinct customer name in either table
	stdTerm := st.Standardize(term)
	kwTerm := st.Keywords(term)

	accepted := make(map[string]struct{})
	seen := make(map[string]struct{})
	consider := func(name string) {
		if name == "" {
			return
		}
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		stdName := st.Standardize(name)
		if stdName == "" {
			return
		}
		switch {
		case stdTerm != "" && stdName == stdTerm:
		case stdTerm != "" && (strings.Contains(stdName, stdTerm) || strings.Contains(stdTerm, stdName)):
		case keywordsIntersect(kwTerm, st.Keywords(name)):
		default:
			return
		}
		accepted[name] = struct{}{}
	}
	for _, s := range sales {
		consider(s.CustomerName)
	}
	for _, d := range debts {
		consider(d.CustomerName)
	}

	for _, s := range sales {
		if _, ok := accepted[s.CustomerName]; ok {
			res.SalesRecords = append(res.SalesRecords, s)
		}
	}
	for _, d := range debts {
		if _, ok := accepted[d.CustomerName]; ok {
			res.DebtRecords = append(res.DebtRecords, d)
		}
	}
	finish(&res, opt)
	return res
}

// finish derives the totals and the id/name unions from the retrieved rows.
// The unions can be broader than the accepted-name set: one customer may
// appear under several aliases in the raw data.
func finish(res *model.LookupResult, opt model.Options) {
	ids := make(map[string]struct{})
	names := make(map[string]struct{})
	cutoff := opt.Now.AddDate(0, 0, -opt.RecentDays)

	for _, s := range res.SalesRecords {
		res.TotalSales += s.Amount
		if d := s.Date(); !d.IsZero() && !d.Before(cutoff) {
			res.RecentTxCount++
		}
		addOnce(&res.MatchedIDs, ids, s.FinanceID)
		addOnce(&res.MatchedNames, names, s.CustomerName)
	}
	for _, d := range res.DebtRecords {
		addOnce(&res.MatchedIDs, ids, d.FinanceID)
		addOnce(&res.MatchedNames, names, d.CustomerName)
	}
}

func addOnce(dst *[]string, seen map[string]struct{}, v string) {
	if v == "" {
		return
	}
	if _, ok := seen[v]; ok {
		return
	}
	seen[v] = struct{}{}
	*dst = append(*dst, v)
}
