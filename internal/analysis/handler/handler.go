package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	excelize "github.com/xuri/excelize/v2"

	"custrisk-service/internal/analysis/model"
	anlSvc "custrisk-service/internal/analysis/service"
	"custrisk-service/internal/config"
)

// Analyze accepts the two ledgers as multipart uploads ("sales", "debts"),
// runs the matching/classification pipeline and returns the classified
// table as JSON. Empty inputs produce an empty-but-valid result, HTTP 200.
func Analyze(cfg config.Config, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log := requestLogger(logger, r)

		sales, debts, opt, err := parseInput(r, cfg)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		res := anlSvc.Run(sales, debts, opt)

		writeJSON(w, log, res)
		log.Info().
			Int("sales_rows", len(sales)).
			Int("debt_rows", len(debts)).
			Int("records", len(res.Records)).
			Int("matched", res.Matched).
			Int("debt_only", res.DebtOnly).
			Int("sales_only", res.SalesOnly).
			Dur("elapsed", time.Since(start)).
			Msg("analyze done")
	}
}

// AnalyzeExport runs the same pipeline and responds with a single-sheet
// .xlsx of the classified table.
func AnalyzeExport(cfg config.Config, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log := requestLogger(logger, r)

		sales, debts, opt, err := parseInput(r, cfg)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		res := anlSvc.Run(sales, debts, opt)

		f, err := buildWorkbook(res.Records)
		if err != nil {
			log.Error().Err(err).Msg("build workbook")
			http.Error(w, "export failed", http.StatusInternalServerError)
			return
		}
		defer f.Close()

		w.Header().Set("Content-Type",
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition",
			fmt.Sprintf(`attachment; filename="customer-risk-%s.xlsx"`, time.Now().Format("20060102")))
		if err := f.Write(w); err != nil {
			log.Error().Err(err).Msg("write workbook")
			return
		}

		log.Info().
			Int("records", len(res.Records)).
			Dur("elapsed", time.Since(start)).
			Msg("export done")
	}
}

// CustomerDetail resolves a free-text term ("q") against the same two
// uploads and returns the drill-down history shape.
func CustomerDetail(cfg config.Config, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log := requestLogger(logger, r)

		sales, debts, opt, err := parseInput(r, cfg)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		term := r.FormValue("q")

		res := anlSvc.Lookup(term, sales, debts, opt)

		writeJSON(w, log, res)
		log.Info().
			Str("term", term).
			Int("sales_hits", len(res.SalesRecords)).
			Int("debt_hits", len(res.DebtRecords)).
			Dur("elapsed", time.Since(start)).
			Msg("customer detail done")
	}
}

func requestLogger(logger zerolog.Logger, r *http.Request) zerolog.Logger {
	if reqID := r.Header.Get("X-Request-ID"); reqID != "" {
		return logger.With().Str("req_id", reqID).Logger()
	}
	return logger
}

func writeJSON(w http.ResponseWriter, log zerolog.Logger, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		log.Error().Err(err).Msg("write json")
	}
}

var exportHeaders = []string{
	"财务编号", "客户名称", "部门", "匹配类型",
	"销售总额", "销售数量", "产品数", "交易次数", "最后销售日期", "距上次销售天数", "活跃度",
	"2023年欠款", "2024年欠款", "2025年欠款", "欠款趋势",
	"欠款销售比%", "客户等级", "风险评分", "风险等级",
}

func buildWorkbook(records []model.MergedRecord) (*excelize.File, error) {
	f := excelize.NewFile()
	const sheet = "Sheet1"

	for i, h := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}
	for i, rec := range records {
		lastSale := ""
		if rec.LastSaleDate != nil {
			lastSale = rec.LastSaleDate.Format("2006-01-02")
		}
		days := any("")
		if rec.DaysSinceSale != nil {
			days = *rec.DaysSinceSale
		}
		row := []any{
			rec.FinanceID, rec.CustomerName, rec.Department, rec.MatchType,
			rec.TotalAmount, rec.TotalQty, rec.UniqueProduct, rec.TxCount, lastSale, days, rec.ActivityTier,
			rec.Debt2023, rec.Debt2024, rec.Debt2025, rec.DebtTrend,
			rec.DebtRatio, rec.CustomerTier, rec.RiskScore, rec.RiskLevel,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}
	return f, nil
}
