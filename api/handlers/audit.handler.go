package api

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/fopmanager/fop-api/internal/dbrepo"
	"github.com/fopmanager/fop-api/internal/utils"
)

type AuditHandler struct {
	DB       *dbrepo.AuditRepo
	infoLog  *log.Logger
	errorLog *log.Logger
}

func NewAuditHandler(db *dbrepo.AuditRepo, infoLog *log.Logger, errorLog *log.Logger) *AuditHandler {
	return &AuditHandler{
		DB:       db,
		infoLog:  infoLog,
		errorLog: errorLog,
	}
}

func (a *AuditHandler) ListAuditLogs(w http.ResponseWriter, r *http.Request) {
	entity := strings.TrimSpace(r.URL.Query().Get("entity"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	logs, err := a.DB.ListAuditLogs(r.Context(), entity, limit)
	if err != nil {
		a.errorLog.Println("ERROR_01_ListAuditLogs:", err)
		utils.BadRequest(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"error":  false,
		"status": "success",
		"logs":   logs,
	})
}
