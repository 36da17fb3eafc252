package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/fopmanager/fop-api/internal/dbrepo"
	"github.com/fopmanager/fop-api/internal/ledger"
	"github.com/fopmanager/fop-api/internal/models"
	"github.com/fopmanager/fop-api/internal/utils"
)

type TransactionHandler struct {
	DB       *dbrepo.TransactionRepo
	infoLog  *log.Logger
	errorLog *log.Logger
}

func NewTransactionHandler(db *dbrepo.TransactionRepo, infoLog *log.Logger, errorLog *log.Logger) *TransactionHandler {
	return &TransactionHandler{
		DB:       db,
		infoLog:  infoLog,
		errorLog: errorLog,
	}
}

func (t *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var tx models.Transaction
	if err := utils.ReadJSON(w, r, &tx); err != nil {
		t.errorLog.Println("ERROR_01_CreateTransaction:", err)
		utils.BadRequest(w, err)
		return
	}
	if err := utils.ValidateStruct(&tx); err != nil {
		t.errorLog.Println("ERROR_02_CreateTransaction:", err)
		utils.BadRequest(w, err)
		return
	}

	if user := utils.GetUser(r); user != nil {
		tx.AuthorID = int64(user.ID)
	}

	if err := t.DB.CreateTransaction(r.Context(), &tx); err != nil {
		t.errorLog.Println("ERROR_03_CreateTransaction:", err)
		utils.BadRequest(w, err)
		return
	}

	var resp struct {
		Error       bool                  `json:"error"`
		Status      string                `json:"status"`
		Message     string                `json:"message"`
		Transaction *models.Transaction   `json:"transaction"`
		Class       ledger.Classification `json:"classification"`
	}
	resp.Error = false
	resp.Status = "success"
	resp.Message = "Transaction added successfully"
	resp.Transaction = &tx
	resp.Class = ledger.Classify(&tx)

	utils.WriteJSON(w, http.StatusCreated, resp)
}

func (t *TransactionHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	filter := dbrepo.TransactionFilter{
		Date:      strings.TrimSpace(r.URL.Query().Get("date")),
		StartDate: strings.TrimSpace(r.URL.Query().Get("start_date")),
		EndDate:   strings.TrimSpace(r.URL.Query().Get("end_date")),
		// display filter for audits, not an access control: the data is
		// always there and any client may drop the flag
		OfficialOnly: r.URL.Query().Get("official") == "true",
	}
	if (filter.StartDate == "") != (filter.EndDate == "") {
		utils.BadRequest(w, errors.New("start_date and end_date must be provided together"))
		return
	}

	transactions, err := t.DB.ListTransactions(r.Context(), filter)
	if err != nil {
		t.errorLog.Println("ERROR_01_ListTransactions:", err)
		utils.BadRequest(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"error":        false,
		"status":       "success",
		"transactions": transactions,
	})
}

// GetDailyView presents one calendar day for till reconciliation: the
// records created that day plus the debts settled that day, with cash
// totals and per-record margins.
func (t *TransactionHandler) GetDailyView(w http.ResponseWriter, r *http.Request) {
	viewDate := strings.TrimSpace(r.URL.Query().Get("date"))
	if viewDate == "" {
		utils.BadRequest(w, errors.New("date is required"))
		return
	}

	transactions, err := t.DB.ListTransactionsInRange(r.Context(), viewDate, viewDate)
	if err != nil {
		t.errorLog.Println("ERROR_01_GetDailyView:", err)
		utils.BadRequest(w, err)
		return
	}

	entries := ledger.ResolveDailyView(transactions, viewDate)
	totals := ledger.DayCashTotals(entries)

	type viewEntry struct {
		ledger.DayEntry
		Markup ledger.Markup `json:"markup"`
	}
	viewEntries := make([]viewEntry, 0, len(entries))
	for _, e := range entries {
		viewEntries = append(viewEntries, viewEntry{DayEntry: e, Markup: ledger.TransactionMarkup(e.Tx)})
	}

	resp := struct {
		Error   bool          `json:"error"`
		Date    string        `json:"date"`
		Totals  ledger.Totals `json:"totals"`
		Markup  ledger.Markup `json:"markup"`
		Entries []viewEntry   `json:"entries"`
	}{
		Error:   false,
		Date:    viewDate,
		Totals:  totals,
		Markup:  ledger.ComputeMarkup(totals.Income, totals.Expense, totals.Writeoff),
		Entries: viewEntries,
	}

	utils.WriteJSON(w, http.StatusOK, resp)
}

func (t *TransactionHandler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	var tx models.Transaction
	if err := utils.ReadJSON(w, r, &tx); err != nil {
		t.errorLog.Println("ERROR_01_UpdateTransaction:", err)
		utils.BadRequest(w, err)
		return
	}
	if tx.ID == 0 {
		t.errorLog.Println("ERROR_02_UpdateTransaction: missing transaction ID")
		utils.BadRequest(w, errors.New("missing transaction ID"))
		return
	}
	if err := utils.ValidateStruct(&tx); err != nil {
		t.errorLog.Println("ERROR_03_UpdateTransaction:", err)
		utils.BadRequest(w, err)
		return
	}

	if err := t.DB.UpdateTransaction(r.Context(), &tx, actorID(r)); err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			utils.NotFound(w, err)
			return
		}
		t.errorLog.Println("ERROR_04_UpdateTransaction:", err)
		utils.BadRequest(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"error":       false,
		"status":      "success",
		"message":     "Transaction updated successfully",
		"transaction": &tx,
	})
}

// UpdateAdminCheck confirms or flags a transaction (admin only)
func (t *TransactionHandler) UpdateAdminCheck(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID     int64  `json:"id" validate:"required"`
		Status string `json:"status" validate:"required,oneof=pending valid issue"`
	}
	if err := utils.ReadJSON(w, r, &req); err != nil {
		t.errorLog.Println("ERROR_01_UpdateAdminCheck:", err)
		utils.BadRequest(w, err)
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		t.errorLog.Println("ERROR_02_UpdateAdminCheck:", err)
		utils.BadRequest(w, err)
		return
	}

	if err := t.DB.UpdateAdminCheck(r.Context(), req.ID, req.Status, actorID(r)); err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			utils.NotFound(w, err)
			return
		}
		t.errorLog.Println("ERROR_03_UpdateAdminCheck:", err)
		utils.BadRequest(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, models.Response{
		Error:   false,
		Status:  "success",
		Message: "Transaction status updated",
	})
}

// RepayDebt settles an unpaid transaction on its actual payment day
func (t *TransactionHandler) RepayDebt(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID          int64  `json:"id" validate:"required"`
		PaymentDate string `json:"payment_date" validate:"required,datetime=2006-01-02"`
		Payer       string `json:"payer"`
	}
	if err := utils.ReadJSON(w, r, &req); err != nil {
		t.errorLog.Println("ERROR_01_RepayDebt:", err)
		utils.BadRequest(w, err)
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		t.errorLog.Println("ERROR_02_RepayDebt:", err)
		utils.BadRequest(w, err)
		return
	}

	if req.Payer == "" {
		if user := utils.GetUser(r); user != nil {
			req.Payer = user.Name
		}
	}

	tx, err := t.DB.RepayDebt(r.Context(), req.ID, req.PaymentDate, req.Payer, actorID(r))
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			utils.NotFound(w, err)
			return
		}
		t.errorLog.Println("ERROR_03_RepayDebt:", err)
		utils.BadRequest(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"error":       false,
		"status":      "success",
		"message":     "Debt repaid successfully",
		"transaction": tx,
	})
}

func (t *TransactionHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	idParam := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil {
		t.errorLog.Println("ERROR_01_DeleteTransaction: invalid id")
		utils.BadRequest(w, errors.New("invalid transaction id"))
		return
	}

	if err := t.DB.DeleteTransaction(r.Context(), id, actorID(r)); err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			utils.NotFound(w, err)
			return
		}
		t.errorLog.Println("ERROR_02_DeleteTransaction:", err)
		utils.BadRequest(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, models.Response{
		Error:   false,
		Status:  "success",
		Message: "Transaction deleted",
	})
}

func actorID(r *http.Request) int64 {
	if user := utils.GetUser(r); user != nil {
		return int64(user.ID)
	}
	return 0
}
