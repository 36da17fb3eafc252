package api

import (
	"log"

	"github.com/fopmanager/fop-api/internal/dbrepo"
	"github.com/fopmanager/fop-api/internal/models"
)

type HandlerRepo struct {
	Auth        AuthHandler
	User        UserHandler
	Transaction TransactionHandler
	Report      *ReportHandler
	Settings    *SettingsHandler
	Audit       *AuditHandler
}

func NewHandlerRepo(db *dbrepo.DBRepository, JWT models.JWTConfig, infoLog *log.Logger, errorLog *log.Logger) *HandlerRepo {
	return &HandlerRepo{
		Auth:        *NewAuthHandler(db, JWT, infoLog, errorLog),
		User:        *NewUserHandler(db.UserRepo, infoLog, errorLog),
		Transaction: *NewTransactionHandler(db.TransactionRepo, infoLog, errorLog),
		Report:      NewReportHandler(db.ReportRepo, db.TransactionRepo, db.SettingsRepo, infoLog, errorLog),
		Settings:    NewSettingsHandler(db.SettingsRepo, infoLog, errorLog),
		Audit:       NewAuditHandler(db.AuditRepo, infoLog, errorLog),
	}
}
