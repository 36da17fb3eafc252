package dbrepo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fopmanager/fop-api/internal/models"
)

type AuditRepo struct {
	db *pgxpool.Pool
}

func NewAuditRepo(db *pgxpool.Pool) *AuditRepo {
	return &AuditRepo{db: db}
}

// insertAuditTx writes an audit entry inside the caller's transaction so
// the mutation and its trail commit or roll back together.
func insertAuditTx(ctx context.Context, tx pgx.Tx, entity string, entityID int64, action string, actorID int64, oldValue, newValue interface{}) error {
	oldJSON, err := marshalOrNil(oldValue)
	if err != nil {
		return fmt.Errorf("marshal old value: %w", err)
	}
	newJSON, err := marshalOrNil(newValue)
	if err != nil {
		return fmt.Errorf("marshal new value: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO audit_logs (entity, entity_id, action, actor_id, old_value, new_value, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,CURRENT_TIMESTAMP)
	`, entity, entityID, action, actorID, oldJSON, newJSON)
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}

func marshalOrNil(v interface{}) (*string, error) {
	if v == nil {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	s := string(b)
	return &s, nil
}

// ListAuditLogs returns the newest entries first, optionally filtered by entity
func (a *AuditRepo) ListAuditLogs(ctx context.Context, entity string, limit int) ([]*models.AuditLog, error) {
	if limit <= 0 {
		limit = 100
	}

	query := `
		SELECT id, entity, entity_id, action, actor_id,
		       COALESCE(old_value::text, ''), COALESCE(new_value::text, ''), created_at
		FROM audit_logs
	`
	args := []interface{}{}
	if entity != "" {
		query += ` WHERE entity=$1 ORDER BY created_at DESC LIMIT $2`
		args = append(args, entity, limit)
	} else {
		query += ` ORDER BY created_at DESC LIMIT $1`
		args = append(args, limit)
	}

	rows, err := a.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*models.AuditLog
	for rows.Next() {
		var l models.AuditLog
		if err := rows.Scan(&l.ID, &l.Entity, &l.EntityID, &l.Action, &l.ActorID, &l.OldValue, &l.NewValue, &l.CreatedAt); err != nil {
			return nil, err
		}
		logs = append(logs, &l)
	}

	return logs, nil
}
