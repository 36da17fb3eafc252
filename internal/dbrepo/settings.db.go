package dbrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fopmanager/fop-api/internal/models"
)

type SettingsRepo struct {
	db *pgxpool.Pool
}

func NewSettingsRepo(db *pgxpool.Pool) *SettingsRepo {
	return &SettingsRepo{db: db}
}

// GetSalarySettings reads the singleton configuration row. A fresh
// database without the row yields zero rates, not an error.
func (s *SettingsRepo) GetSalarySettings(ctx context.Context) (*models.SalarySettings, error) {
	var settings models.SalarySettings
	err := s.db.QueryRow(ctx, `
		SELECT daily_rate, percent_rate, updated_at
		FROM salary_settings
		WHERE id=1
	`).Scan(&settings.DailyRate, &settings.PercentRate, &settings.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return &models.SalarySettings{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get salary settings: %w", err)
	}
	return &settings, nil
}

// UpdateSalarySettings upserts the singleton configuration row
func (s *SettingsRepo) UpdateSalarySettings(ctx context.Context, settings *models.SalarySettings) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO salary_settings (id, daily_rate, percent_rate, updated_at)
		VALUES (1, $1, $2, CURRENT_TIMESTAMP)
		ON CONFLICT (id) DO UPDATE SET
			daily_rate   = EXCLUDED.daily_rate,
			percent_rate = EXCLUDED.percent_rate,
			updated_at   = CURRENT_TIMESTAMP
	`, settings.DailyRate, settings.PercentRate)
	if err != nil {
		return fmt.Errorf("update salary settings: %w", err)
	}
	return nil
}
