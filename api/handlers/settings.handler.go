package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/fopmanager/fop-api/internal/dbrepo"
	"github.com/fopmanager/fop-api/internal/models"
	"github.com/fopmanager/fop-api/internal/utils"
)

type SettingsHandler struct {
	DB       *dbrepo.SettingsRepo
	infoLog  *log.Logger
	errorLog *log.Logger
}

func NewSettingsHandler(db *dbrepo.SettingsRepo, infoLog *log.Logger, errorLog *log.Logger) *SettingsHandler {
	return &SettingsHandler{
		DB:       db,
		infoLog:  infoLog,
		errorLog: errorLog,
	}
}

func (s *SettingsHandler) GetSalarySettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.DB.GetSalarySettings(r.Context())
	if err != nil {
		s.errorLog.Println("ERROR_01_GetSalarySettings:", err)
		utils.ServerError(w, err)
		return
	}

	resp := struct {
		Error    bool                   `json:"error"`
		Status   string                 `json:"status"`
		Settings *models.SalarySettings `json:"settings"`
	}{
		Error:    false,
		Status:   "success",
		Settings: settings,
	}

	utils.WriteJSON(w, http.StatusOK, resp)
}

func (s *SettingsHandler) UpdateSalarySettings(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DailyRate   decimal.Decimal `json:"daily_rate"`
		PercentRate decimal.Decimal `json:"percent_rate"`
	}
	if err := utils.ReadJSON(w, r, &req); err != nil {
		s.errorLog.Println("ERROR_01_UpdateSalarySettings:", err)
		utils.BadRequest(w, err)
		return
	}
	if req.DailyRate.IsNegative() || req.PercentRate.IsNegative() {
		utils.BadRequest(w, errors.New("rates must not be negative"))
		return
	}

	settings := &models.SalarySettings{
		DailyRate:   req.DailyRate,
		PercentRate: req.PercentRate,
	}
	if err := s.DB.UpdateSalarySettings(r.Context(), settings); err != nil {
		s.errorLog.Println("ERROR_02_UpdateSalarySettings:", err)
		utils.BadRequest(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, models.Response{
		Error:   false,
		Status:  "success",
		Message: "Salary settings updated",
	})
}
