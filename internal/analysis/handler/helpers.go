package handler

import (
	"errors"
	"math"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"custrisk-service/internal/analysis/model"
	"custrisk-service/internal/config"
	"custrisk-service/internal/fileio"
	"custrisk-service/internal/utils"
)

// salesMapping / debtMapping name the columns in each upload. Every key
// supports "|" alternatives ("客户名称|客户").
type salesMapping struct {
	FinanceKey string
	NameKey    string
	ProductKey string
	AmountKey  string
	QtyKey     string
	DateKey    string
	HeaderRow  int
}

type debtMapping struct {
	FinanceKey string
	NameKey    string
	DeptKey    string
	Y2023Key   string
	Y2024Key   string
	Y2025Key   string
	TrendKey   string
	HeaderRow  int
}

// parseInput reads both multipart uploads, resolves column mappings and
// converts rows into model inputs. Data-quality problems (blank amounts,
// typos) are coerced, never returned as errors; only unreadable uploads fail.
func parseInput(r *http.Request, cfg config.Config) ([]model.SaleRow, []model.DebtRecord, model.Options, error) {
	var opt model.Options
	if err := r.ParseMultipartForm(int64(cfg.MaxUploadMB) << 20); err != nil {
		return nil, nil, opt, errors.New("bad multipart form: " + err.Error())
	}

	opt = model.Options{
		Threshold:  toFloat(r.FormValue("threshold"), cfg.Threshold),
		Prefixes:   cfg.NamePrefixes,
		RecentDays: cfg.RecentDays,
		Now:        time.Now().UTC(),
	}

	salesFile, salesHdr, err := r.FormFile("sales")
	if err != nil {
		return nil, nil, opt, errors.New("missing sales file: " + err.Error())
	}
	defer salesFile.Close()

	debtsFile, debtsHdr, err := r.FormFile("debts")
	if err != nil {
		return nil, nil, opt, errors.New("missing debts file: " + err.Error())
	}
	defer debtsFile.Close()

	sm := salesMapping{
		FinanceKey: orDefault(r.FormValue("sales_finance_id"), "财务编号|财务号|编号"),
		NameKey:    orDefault(r.FormValue("sales_name"), "客户名称|客户|往来单位"),
		ProductKey: orDefault(r.FormValue("sales_product"), "产品名称|产品|品名"),
		AmountKey:  orDefault(r.FormValue("sales_amount"), "金额|销售金额|开单金额"),
		QtyKey:     orDefault(r.FormValue("sales_qty"), "数量|销售数量|开单数量"),
		DateKey:    orDefault(r.FormValue("sales_date"), "日期|销售日期|开单日期"),
		HeaderRow:  atoi(r.FormValue("sales_header_row"), 1),
	}
	dm := debtMapping{
		FinanceKey: orDefault(r.FormValue("debts_finance_id"), "财务编号|财务号|编号"),
		NameKey:    orDefault(r.FormValue("debts_name"), "客户名称|客户|往来单位"),
		DeptKey:    orDefault(r.FormValue("debts_dept"), "部门|部门名称"),
		Y2023Key:   orDefault(r.FormValue("debts_2023"), "2023年欠款|2023欠款|2023"),
		Y2024Key:   orDefault(r.FormValue("debts_2024"), "2024年欠款|2024欠款|2024"),
		Y2025Key:   orDefault(r.FormValue("debts_2025"), "2025年欠款|2025欠款|2025"),
		TrendKey:   orDefault(r.FormValue("debts_trend"), "欠款趋势|趋势"),
		HeaderRow:  atoi(r.FormValue("debts_header_row"), 1),
	}

	rawSales, err := fileio.ReadAnyMaps(salesFile, salesHdr.Filename, sm.HeaderRow)
	if err != nil {
		return nil, nil, opt, errors.New("failed to read sales: " + err.Error())
	}
	rawDebts, err := fileio.ReadAnyMaps(debtsFile, debtsHdr.Filename, dm.HeaderRow)
	if err != nil {
		return nil, nil, opt, errors.New("failed to read debts: " + err.Error())
	}

	return rowsToSales(rawSales, sm), rowsToDebts(rawDebts, dm), opt, nil
}

func rowsToSales(maps []map[string]string, m salesMapping) []model.SaleRow {
	rows := make([]model.SaleRow, 0, len(maps))
	for _, rec := range maps {
		name := strings.TrimSpace(rec[resolveKey(rec, m.NameKey)])
		id := strings.TrimSpace(rec[resolveKey(rec, m.FinanceKey)])
		if name == "" && id == "" {
			continue
		}
		y, mo, d := parseDate(rec[resolveKey(rec, m.DateKey)])
		rows = append(rows, model.SaleRow{
			FinanceID:    id,
			CustomerName: name,
			ProductName:  strings.TrimSpace(rec[resolveKey(rec, m.ProductKey)]),
			Amount:       toNumber(rec[resolveKey(rec, m.AmountKey)]),
			Qty:          toNumber(rec[resolveKey(rec, m.QtyKey)]),
			Year:         y,
			Month:        mo,
			Day:          d,
		})
	}
	return rows
}

func rowsToDebts(maps []map[string]string, m debtMapping) []model.DebtRecord {
	rows := make([]model.DebtRecord, 0, len(maps))
	for _, rec := range maps {
		name := strings.TrimSpace(rec[resolveKey(rec, m.NameKey)])
		id := strings.TrimSpace(rec[resolveKey(rec, m.FinanceKey)])
		if name == "" && id == "" {
			continue
		}
		rows = append(rows, model.DebtRecord{
			FinanceID:    id,
			CustomerName: name,
			Department:   strings.TrimSpace(rec[resolveKey(rec, m.DeptKey)]),
			Debt2023:     toNumber(rec[resolveKey(rec, m.Y2023Key)]),
			Debt2024:     toNumber(rec[resolveKey(rec, m.Y2024Key)]),
			Debt2025:     toNumber(rec[resolveKey(rec, m.Y2025Key)]),
			DebtTrend:    strings.TrimSpace(rec[resolveKey(rec, m.TrendKey)]),
		})
	}
	return rows
}

// normHeaderKey normalizes a column name for comparison: lowercase, strip
// non-letter/digit runs, collapse spacing.
func normHeaderKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer(" ", " ", " ", " ", "　", " ").Replace(s)
	s = regexp.MustCompile(`[^\p{L}\p{N}]+`).ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(s), " ")
}

// resolveKey finds the actual column key in a record for a wanted name.
// Alternatives are separated by "|". Tries exact, then normalized-exact,
// then containment either way ("金额（元）" still binds "金额"), preferring
// the longest normalized overlap.
func resolveKey(rec map[string]string, want string) string {
	want = strings.TrimSpace(want)
	if want == "" {
		return ""
	}
	alts := strings.Split(want, "|")
	for i := range alts {
		alts[i] = strings.TrimSpace(alts[i])
	}

	for _, a := range alts {
		if _, ok := rec[a]; ok {
			return a
		}
	}

	var nWantAll []string
	for _, a := range alts {
		nWantAll = append(nWantAll, normHeaderKey(a))
	}

	bestKey := ""
	bestScore := 0
	for k := range rec {
		nk := normHeaderKey(k)
		for _, n := range nWantAll {
			if nk == n && n != "" {
				return k
			}
		}
		score := 0
		for _, n := range nWantAll {
			if n == "" {
				continue
			}
			if strings.Contains(nk, n) || strings.Contains(n, nk) {
				if l := len(n); l > score {
					score = l
				}
			}
		}
		if score > bestScore {
			bestScore, bestKey = score, k
		}
	}
	return bestKey
}

// date layouts seen in the exports; anything else falls through to the
// digit-run scan
var dateLayouts = []string{
	"2006-01-02", "2006/01/02", "2006.01.02", "2006-1-2", "2006/1/2",
	"2006年01月02日", "2006年1月2日", "2006-01-02 15:04:05",
}

var reDateDigits = regexp.MustCompile(`(\d{4})\D+(\d{1,2})\D+(\d{1,2})`)

// parseDate decomposes a raw cell into year/month/day; (0,0,0) when the
// cell carries no recognizable date.
func parseDate(s string) (int, int, int) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, 0, 0
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Year(), int(t.Month()), t.Day()
		}
	}
	if m := reDateDigits.FindStringSubmatch(s); m != nil {
		y, _ := strconv.Atoi(m[1])
		mo, _ := strconv.Atoi(m[2])
		d, _ := strconv.Atoi(m[3])
		if mo >= 1 && mo <= 12 && d >= 1 && d <= 31 {
			return y, mo, d
		}
	}
	return 0, 0, 0
}

func toNumber(s string) float64 {
	v, _ := utils.ParseAmount(s)
	return v
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func atoi(s string, def int) int {
	if s == "" {
		return def
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

func toFloat(s string, def float64) float64 {
	if s == "" {
		return def
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return def
	}
	return f
}
