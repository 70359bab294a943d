package model

import "time"

// Match types — which strategy produced a merged record.
const (
	MatchExact         = "exact"
	MatchNameContains  = "name_contains"
	MatchKeyword       = "keyword"
	MatchFinanceIDOnly = "finance_id_only"
	MatchDebtOnly      = "debt_only"
	MatchSalesOnly     = "sales_only"
)

// Activity tiers — recency buckets over days_since_last_sale.
const (
	Active30      = "active_30d"
	Active90      = "active_90d"
	Active180     = "active_180d"
	Dormant       = "dormant"
	NoSalesRecord = "no_sales_record"
)

// Risk levels — five buckets over the 0..100 risk score.
const (
	RiskLow          = "low"
	RiskModerateLow  = "moderate-low"
	RiskModerate     = "moderate"
	RiskModerateHigh = "moderate-high"
	RiskHigh         = "high"
)

type Options struct {
	Threshold  float64   // similarity threshold for name matching (0..1)
	Prefixes   []string  // organizational prefixes stripped before comparison
	RecentDays int       // window for the lookup's recent-transaction count
	Now        time.Time // "now" used to derive days_since_last_sale
}

// SaleRow is one raw sales transaction as supplied by the source table.
type SaleRow struct {
	FinanceID    string  `json:"financeId"`
	CustomerName string  `json:"customerName"`
	ProductName  string  `json:"productName"`
	Amount       float64 `json:"amount"`
	Qty          float64 `json:"qty"`
	Year         int     `json:"year"`
	Month        int     `json:"month"`
	Day          int     `json:"day"`
}

// Date returns the transaction date, or zero time if the row carries none.
func (s SaleRow) Date() time.Time {
	if s.Year == 0 {
		return time.Time{}
	}
	m := s.Month
	if m == 0 {
		m = 1
	}
	d := s.Day
	if d == 0 {
		d = 1
	}
	return time.Date(s.Year, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

// DebtRecord is one accounts-receivable ledger row. Debt amounts are
// authoritative; missing values are coerced to 0 upstream.
type DebtRecord struct {
	FinanceID    string  `json:"financeId"`
	CustomerName string  `json:"customerName"`
	Department   string  `json:"department"`
	StdName      string  `json:"-"` // derived, comparison only
	Debt2023     float64 `json:"debt2023"`
	Debt2024     float64 `json:"debt2024"`
	Debt2025     float64 `json:"debt2025"`
	DebtTrend    string  `json:"debtTrend"`
}

// SalesAggregate is one summary row per (finance_id, customer_name) pair,
// produced by aggregation and consumed at most once by the matcher.
type SalesAggregate struct {
	FinanceID     string     `json:"financeId"`
	CustomerName  string     `json:"customerName"`
	StdName       string     `json:"-"`
	TotalAmount   float64    `json:"totalAmount"`
	TotalQty      float64    `json:"totalQty"`
	UniqueProduct int        `json:"uniqueProductCount"`
	TxCount       int        `json:"transactionCount"`
	LastSaleDate  *time.Time `json:"lastSaleDate,omitempty"`
	DaysSinceSale *int       `json:"daysSinceLastSale,omitempty"`
	ActivityTier  string     `json:"activityTier"`
}

// MergedRecord is the unified classified output row: exactly one per debt
// row, plus one per sales aggregate no debt row consumed.
type MergedRecord struct {
	FinanceID     string     `json:"financeId"`
	CustomerName  string     `json:"customerName"`
	Department    string     `json:"department"`
	MatchType     string     `json:"matchType"`
	TotalAmount   float64    `json:"totalAmount"`
	TotalQty      float64    `json:"totalQty"`
	UniqueProduct int        `json:"uniqueProductCount"`
	TxCount       int        `json:"transactionCount"`
	LastSaleDate  *time.Time `json:"lastSaleDate,omitempty"`
	DaysSinceSale *int       `json:"daysSinceLastSale,omitempty"`
	ActivityTier  string     `json:"activityTier"`
	Debt2023      float64    `json:"debt2023"`
	Debt2024      float64    `json:"debt2024"`
	Debt2025      float64    `json:"debt2025"`
	DebtTrend     string     `json:"debtTrend"`
	DebtRatio     float64    `json:"debtToSalesRatio"` // debt_2025 / total_amount, percent
	CustomerTier  string     `json:"customerTier"`
	RiskScore     int        `json:"riskScore"`
	RiskLevel     string     `json:"riskLevel"`
}

// Result is the full analysis output.
type Result struct {
	Records   []MergedRecord `json:"records"`
	Matched   int            `json:"matched"`
	DebtOnly  int            `json:"debtOnly"`
	SalesOnly int            `json:"salesOnly"`
}

// LookupResult is the single-customer drill-down shape.
type LookupResult struct {
	SalesRecords  []SaleRow    `json:"salesRecords"`
	DebtRecords   []DebtRecord `json:"debtRecords"`
	TotalSales    float64      `json:"totalSales"`
	RecentTxCount int          `json:"recentTransactionCount"`
	MatchedIDs    []string     `json:"matchedFinanceIds"`
	MatchedNames  []string     `json:"matchedCustomerNames"`
}
