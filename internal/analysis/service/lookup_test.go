package service

import (
	"reflect"
	"testing"

	"custrisk-service/internal/analysis/model"
)

func lookupFixtures() ([]model.SaleRow, []model.DebtRecord) {
	sales := []model.SaleRow{
		{FinanceID: "413-001", CustomerName: "九方昌盛门市", Amount: 1000, Year: 2025, Month: 8, Day: 10},
		{FinanceID: "413-001", CustomerName: "九方昌盛门市", Amount: 2000, Year: 2025, Month: 3, Day: 1},
		{FinanceID: "413-009", CustomerName: "九方昌盛门市（分店）", Amount: 500, Year: 2025, Month: 8, Day: 1},
		{FinanceID: "500", CustomerName: "天天商行", Amount: 700, Year: 2025, Month: 8, Day: 5},
	}
	debts := []model.DebtRecord{
		{FinanceID: "413-001", CustomerName: "鑫帅辉-九方昌盛门市", Department: "古建", Debt2025: 300},
		{FinanceID: "500", CustomerName: "天天商行", Department: "陶瓷", Debt2025: 50},
	}
	return sales, debts
}

func TestLookupEmptyTerm(t *testing.T) {
	sales, debts := lookupFixtures()
	res := Lookup("   ", sales, debts, model.Options{Now: testNow})
	if len(res.SalesRecords) != 0 || len(res.DebtRecords) != 0 ||
		res.TotalSales != 0 || res.RecentTxCount != 0 ||
		len(res.MatchedIDs) != 0 || len(res.MatchedNames) != 0 {
		t.Errorf("empty term must return the empty shape: %+v", res)
	}
}

func TestLookupByIdentifier(t *testing.T) {
	sales, debts := lookupFixtures()
	res := Lookup("413-001", sales, debts, model.Options{Now: testNow, RecentDays: 90})

	if len(res.SalesRecords) != 2 {
		t.Fatalf("sales records = %d, want 2", len(res.SalesRecords))
	}
	if len(res.DebtRecords) != 1 {
		t.Fatalf("debt records = %d, want 1", len(res.DebtRecords))
	}
	if res.TotalSales != 3000 {
		t.Errorf("total sales = %v, want 3000", res.TotalSales)
	}
	if res.RecentTxCount != 1 {
		t.Errorf("recent tx = %d, want 1 (only the August sale is within 90 days)", res.RecentTxCount)
	}
	if !reflect.DeepEqual(res.MatchedIDs, []string{"413-001"}) {
		t.Errorf("matched ids = %v", res.MatchedIDs)
	}
	// the union of names spans both tables: the sales alias and the
	// dealer-tagged ledger alias
	if !reflect.DeepEqual(res.MatchedNames, []string{"九方昌盛门市", "鑫帅辉-九方昌盛门市"}) {
		t.Errorf("matched names = %v", res.MatchedNames)
	}
}

func TestLookupIdentifierShortCircuitsNames(t *testing.T) {
	// "413-009" names a customer whose name is fuzzily similar to others;
	// the identifier path must not pull those in
	sales, debts := lookupFixtures()
	res := Lookup("413-009", sales, debts, model.Options{Now: testNow})

	if len(res.SalesRecords) != 1 || res.SalesRecords[0].FinanceID != "413-009" {
		t.Fatalf("identifier path must return only exact id rows: %+v", res.SalesRecords)
	}
	if len(res.DebtRecords) != 0 {
		t.Errorf("no debt rows carry 413-009: %+v", res.DebtRecords)
	}
}

func TestLookupIdentifierFallsBackToNames(t *testing.T) {
	// digits-only term with no finance-id hit falls through to name matching
	sales := []model.SaleRow{
		{FinanceID: "900", CustomerName: "123商行", Amount: 100, Year: 2025, Month: 8, Day: 1},
	}
	res := Lookup("123", sales, nil, model.Options{Now: testNow})
	if len(res.SalesRecords) != 1 {
		t.Fatalf("expected name fallback to hit, got %+v", res)
	}
	if !reflect.DeepEqual(res.MatchedIDs, []string{"900"}) {
		t.Errorf("matched ids = %v", res.MatchedIDs)
	}
}

func TestLookupByName(t *testing.T) {
	sales, debts := lookupFixtures()
	res := Lookup("九方昌盛门市", sales, debts, model.Options{Now: testNow})

	// containment accepts the branch store and the dealer-tagged alias too
	if len(res.SalesRecords) != 3 {
		t.Fatalf("sales records = %d, want 3", len(res.SalesRecords))
	}
	if len(res.DebtRecords) != 1 {
		t.Fatalf("debt records = %d, want 1", len(res.DebtRecords))
	}
	if !reflect.DeepEqual(res.MatchedIDs, []string{"413-001", "413-009"}) {
		t.Errorf("matched ids = %v", res.MatchedIDs)
	}
	if len(res.MatchedNames) != 3 {
		t.Errorf("matched names = %v, want 3 aliases", res.MatchedNames)
	}
}

func TestLookupUnresolvable(t *testing.T) {
	sales, debts := lookupFixtures()
	res := Lookup("不存在的客户", sales, debts, model.Options{Now: testNow})
	if len(res.SalesRecords) != 0 || len(res.DebtRecords) != 0 {
		t.Errorf("unresolvable term must return the empty shape: %+v", res)
	}
}
