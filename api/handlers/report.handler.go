package api

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/fopmanager/fop-api/internal/dbrepo"
	"github.com/fopmanager/fop-api/internal/ledger"
	"github.com/fopmanager/fop-api/internal/models"
	"github.com/fopmanager/fop-api/internal/utils"
)

type ReportHandler struct {
	DB       *dbrepo.ReportRepo
	TxDB     *dbrepo.TransactionRepo
	Settings *dbrepo.SettingsRepo
	infoLog  *log.Logger
	errorLog *log.Logger
}

func NewReportHandler(db *dbrepo.ReportRepo, txDB *dbrepo.TransactionRepo, settings *dbrepo.SettingsRepo, infoLog *log.Logger, errorLog *log.Logger) *ReportHandler {
	return &ReportHandler{
		DB:       db,
		TxDB:     txDB,
		Settings: settings,
		infoLog:  infoLog,
		errorLog: errorLog,
	}
}

func (rp *ReportHandler) rangeParams(r *http.Request) (string, string, error) {
	startDate := strings.TrimSpace(r.URL.Query().Get("start_date"))
	endDate := strings.TrimSpace(r.URL.Query().Get("end_date"))
	if startDate == "" || endDate == "" {
		return "", "", errors.New("start_date and end_date are required")
	}
	if endDate < startDate {
		return "", "", errors.New("end_date must not precede start_date")
	}
	return startDate, endDate, nil
}

// GeneratePeriodReport reconciles a range without persisting anything.
// The seller previews the totals and the salary here, then saves.
func (rp *ReportHandler) GeneratePeriodReport(w http.ResponseWriter, r *http.Request) {
	startDate, endDate, err := rp.rangeParams(r)
	if err != nil {
		utils.BadRequest(w, err)
		return
	}
	workedDays, err := parseWorkedDays(r.URL.Query().Get("worked_days"))
	if err != nil {
		utils.BadRequest(w, err)
		return
	}

	summary, err := rp.generate(r, startDate, endDate)
	if err != nil {
		rp.respondGenerateError(w, err)
		return
	}

	settings, err := rp.Settings.GetSalarySettings(r.Context())
	if err != nil {
		rp.errorLog.Println("ERROR_02_GeneratePeriodReport:", err)
		utils.ServerError(w, err)
		return
	}
	salary := ledger.ComputeSalary(settings, workedDays, summary.Totals.Income, decimal.Zero, decimal.Zero)

	resp := struct {
		Error   bool                  `json:"error"`
		Message string                `json:"message"`
		Summary *ledger.PeriodSummary `json:"summary"`
		Salary  decimal.Decimal       `json:"salary"`
	}{
		Error:   false,
		Message: "Period report generated successfully",
		Summary: summary,
		Salary:  salary,
	}

	utils.WriteJSON(w, http.StatusOK, resp)
}

// SavePeriodReport persists a generated report as pending. The range is
// re-validated at save time; transactions may have changed since preview.
func (rp *ReportHandler) SavePeriodReport(w http.ResponseWriter, r *http.Request) {
	var req struct {
		StartDate  string `json:"start_date" validate:"required,datetime=2006-01-02"`
		EndDate    string `json:"end_date" validate:"required,datetime=2006-01-02"`
		WorkedDays int    `json:"worked_days" validate:"gte=0"`
	}
	if err := utils.ReadJSON(w, r, &req); err != nil {
		rp.errorLog.Println("ERROR_01_SavePeriodReport:", err)
		utils.BadRequest(w, err)
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		rp.errorLog.Println("ERROR_02_SavePeriodReport:", err)
		utils.BadRequest(w, err)
		return
	}

	summary, err := rp.generate(r, req.StartDate, req.EndDate)
	if err != nil {
		rp.respondGenerateError(w, err)
		return
	}

	settings, err := rp.Settings.GetSalarySettings(r.Context())
	if err != nil {
		rp.errorLog.Println("ERROR_03_SavePeriodReport:", err)
		utils.ServerError(w, err)
		return
	}

	report := &models.PeriodReport{
		MemoNo:      utils.GenerateMemoNo(),
		StartDate:   summary.StartDate,
		EndDate:     summary.EndDate,
		Income:      summary.Totals.Income,
		Expense:     summary.Totals.Expense,
		Writeoff:    summary.Totals.Writeoff,
		WorkedDays:  req.WorkedDays,
		Bonus:       decimal.Zero,
		Fine:        decimal.Zero,
		TotalSalary: ledger.ComputeSalary(settings, req.WorkedDays, summary.Totals.Income, decimal.Zero, decimal.Zero),
		AuthorID:    actorID(r),
	}

	if err := rp.DB.CreatePeriodReport(r.Context(), report); err != nil {
		rp.errorLog.Println("ERROR_04_SavePeriodReport:", err)
		utils.BadRequest(w, err)
		return
	}

	resp := struct {
		Error   bool                 `json:"error"`
		Message string               `json:"message"`
		Report  *models.PeriodReport `json:"report"`
	}{
		Error:   false,
		Message: "Period report saved successfully",
		Report:  report,
	}

	utils.WriteJSON(w, http.StatusCreated, resp)
}

func (rp *ReportHandler) generate(r *http.Request, startDate, endDate string) (*ledger.PeriodSummary, error) {
	transactions, err := rp.TxDB.ListTransactions(r.Context(), dbrepo.TransactionFilter{
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		return nil, err
	}
	return ledger.GeneratePeriod(transactions, startDate, endDate)
}

func (rp *ReportHandler) respondGenerateError(w http.ResponseWriter, err error) {
	var vErr *ledger.ValidationError
	if errors.As(err, &vErr) {
		utils.WriteJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"error":   true,
			"status":  "validation_failed",
			"message": vErr.Error(),
			"dates":   vErr.Dates,
		})
		return
	}
	rp.errorLog.Println("ERROR_01_GeneratePeriodReport:", err)
	utils.BadRequest(w, err)
}

func (rp *ReportHandler) ListPeriodReports(w http.ResponseWriter, r *http.Request) {
	reports, err := rp.DB.ListPeriodReports(r.Context())
	if err != nil {
		rp.errorLog.Println("ERROR_01_ListPeriodReports:", err)
		utils.BadRequest(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"error":   false,
		"status":  "success",
		"reports": reports,
	})
}

// ApprovePeriodReport finalizes a pending report with the admin's bonus
// and fine; the salary is recomputed server-side from current settings.
func (rp *ReportHandler) ApprovePeriodReport(w http.ResponseWriter, r *http.Request) {
	id, err := reportID(r)
	if err != nil {
		utils.BadRequest(w, err)
		return
	}

	var req struct {
		Bonus decimal.Decimal `json:"bonus"`
		Fine  decimal.Decimal `json:"fine"`
		Note  string          `json:"note"`
	}
	if err := utils.ReadJSON(w, r, &req); err != nil {
		rp.errorLog.Println("ERROR_01_ApprovePeriodReport:", err)
		utils.BadRequest(w, err)
		return
	}
	if req.Bonus.IsNegative() || req.Fine.IsNegative() {
		utils.BadRequest(w, errors.New("bonus and fine must not be negative"))
		return
	}

	report, err := rp.DB.GetPeriodReport(r.Context(), id)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			utils.NotFound(w, err)
			return
		}
		rp.errorLog.Println("ERROR_02_ApprovePeriodReport:", err)
		utils.BadRequest(w, err)
		return
	}

	settings, err := rp.Settings.GetSalarySettings(r.Context())
	if err != nil {
		rp.errorLog.Println("ERROR_03_ApprovePeriodReport:", err)
		utils.ServerError(w, err)
		return
	}

	totalSalary := ledger.ComputeSalary(settings, report.WorkedDays, report.Income, req.Bonus, req.Fine)
	if err := rp.DB.ApprovePeriodReport(r.Context(), id, req.Bonus, req.Fine, totalSalary, req.Note); err != nil {
		rp.errorLog.Println("ERROR_04_ApprovePeriodReport:", err)
		utils.BadRequest(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"error":        false,
		"status":       "success",
		"message":      "Report approved",
		"total_salary": totalSalary,
	})
}

// PaySalary pays out an approved report: flips is_paid and posts the
// matching cash expense to the ledger. A failure between the two steps
// is reported distinctly so the books can be reconciled by hand.
func (rp *ReportHandler) PaySalary(w http.ResponseWriter, r *http.Request) {
	id, err := reportID(r)
	if err != nil {
		utils.BadRequest(w, err)
		return
	}

	report, err := rp.DB.GetPeriodReport(r.Context(), id)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			utils.NotFound(w, err)
			return
		}
		rp.errorLog.Println("ERROR_01_PaySalary:", err)
		utils.BadRequest(w, err)
		return
	}
	if report.Status != models.ReportStatusApproved {
		utils.BadRequest(w, errors.New("report is not approved"))
		return
	}

	store := payoutStore{reports: rp.DB, transactions: rp.TxDB}
	payout, err := ledger.ExecutePayout(r.Context(), store, report)
	if err != nil {
		var pErr *ledger.PartialPayoutError
		switch {
		case errors.As(err, &pErr):
			rp.errorLog.Println("ERROR_02_PaySalary: RECONCILE MANUALLY:", pErr)
			utils.WriteJSON(w, http.StatusInternalServerError, map[string]interface{}{
				"error":     true,
				"status":    "partial_payout_failure",
				"message":   pErr.Error(),
				"report_id": pErr.ReportID,
			})
		case errors.Is(err, ledger.ErrAlreadyPaid):
			utils.WriteJSON(w, http.StatusConflict, models.Response{
				Error:   true,
				Status:  "failed",
				Message: err.Error(),
			})
		default:
			rp.errorLog.Println("ERROR_03_PaySalary:", err)
			utils.BadRequest(w, err)
		}
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"error":       false,
		"status":      "success",
		"message":     "Salary paid out",
		"report":      report,
		"transaction": payout,
	})
}

// payoutStore adapts the two repos to the payout workflow's store slice
type payoutStore struct {
	reports      *dbrepo.ReportRepo
	transactions *dbrepo.TransactionRepo
}

func (s payoutStore) MarkReportPaid(ctx context.Context, id int64) error {
	return s.reports.MarkReportPaid(ctx, id)
}

func (s payoutStore) RevertReportPaid(ctx context.Context, id int64) error {
	return s.reports.RevertReportPaid(ctx, id)
}

func (s payoutStore) CreateTransaction(ctx context.Context, tx *models.Transaction) error {
	return s.transactions.CreateTransaction(ctx, tx)
}

// parseWorkedDays mirrors the save path's gte=0 rule for the preview's
// query parameter; absent means zero worked days
func parseWorkedDays(val string) (int, error) {
	val = strings.TrimSpace(val)
	if val == "" {
		return 0, nil
	}
	days, err := strconv.Atoi(val)
	if err != nil || days < 0 {
		return 0, errors.New("worked_days must be a non-negative integer")
	}
	return days, nil
}

func reportID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, errors.New("invalid report id")
	}
	return id, nil
}
