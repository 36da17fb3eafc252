package dbrepo

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// DBRepository contains all individual repositories
type DBRepository struct {
	UserRepo        *UserRepo
	TransactionRepo *TransactionRepo
	ReportRepo      *ReportRepo
	SettingsRepo    *SettingsRepo
	AuditRepo       *AuditRepo
}

// NewDBRepository initializes all repositories with a shared connection pool
func NewDBRepository(db *pgxpool.Pool) *DBRepository {
	return &DBRepository{
		UserRepo:        NewUserRepo(db),
		TransactionRepo: NewTransactionRepo(db),
		ReportRepo:      NewReportRepo(db),
		SettingsRepo:    NewSettingsRepo(db),
		AuditRepo:       NewAuditRepo(db),
	}
}
