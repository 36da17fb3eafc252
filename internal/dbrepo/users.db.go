package dbrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fopmanager/fop-api/internal/ledger"
	"github.com/fopmanager/fop-api/internal/models"
)

type UserRepo struct {
	db *pgxpool.Pool
}

func NewUserRepo(db *pgxpool.Pool) *UserRepo {
	return &UserRepo{db: db}
}

// CreateUser inserts a seller or admin account
func (u *UserRepo) CreateUser(ctx context.Context, user *models.User) error {
	if user.Role == "" {
		user.Role = models.RoleSeller
	}
	if user.Status == "" {
		user.Status = "active"
	}

	err := u.db.QueryRow(ctx, `
		INSERT INTO users (name, email, password, role, status, mobile, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,CURRENT_TIMESTAMP,CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at
	`, user.Name, user.Email, user.Password, user.Role, user.Status, user.Mobile,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetUser fetches a user by id
func (u *UserRepo) GetUser(ctx context.Context, id int) (*models.User, error) {
	var user models.User
	err := u.db.QueryRow(ctx, `
		SELECT id, name, email, password, role, status, mobile, created_at, updated_at
		FROM users
		WHERE id=$1
	`, id).Scan(&user.ID, &user.Name, &user.Email, &user.Password, &user.Role, &user.Status, &user.Mobile, &user.CreatedAt, &user.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ledger.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return &user, nil
}

// GetUserByEmail fetches a user by email, used by sign-in
func (u *UserRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := u.db.QueryRow(ctx, `
		SELECT id, name, email, password, role, status, mobile, created_at, updated_at
		FROM users
		WHERE email=$1
	`, email).Scan(&user.ID, &user.Name, &user.Email, &user.Password, &user.Role, &user.Status, &user.Mobile, &user.CreatedAt, &user.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ledger.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &user, nil
}

// ListUsers returns all accounts ordered by id
func (u *UserRepo) ListUsers(ctx context.Context) ([]*models.User, error) {
	rows, err := u.db.Query(ctx, `
		SELECT id, name, email, password, role, status, mobile, created_at, updated_at
		FROM users
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Name, &user.Email, &user.Password, &user.Role, &user.Status, &user.Mobile, &user.CreatedAt, &user.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, &user)
	}

	return users, nil
}

// UpdateUserRole changes a user's role and status (admin only)
func (u *UserRepo) UpdateUserRole(ctx context.Context, id int, role, status string) error {
	tag, err := u.db.Exec(ctx, `
		UPDATE users
		SET role=$1, status=$2, updated_at=CURRENT_TIMESTAMP
		WHERE id=$3
	`, role, status, id)
	if err != nil {
		return fmt.Errorf("update user role: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ledger.ErrNotFound
	}
	return nil
}
