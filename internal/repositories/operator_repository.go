package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	intdb "cmsadmin/internal/db"
	"cmsadmin/internal/domain"
	"cmsadmin/internal/domain/models"
)

const operatorsTable = "operators"

const operatorsDDL = `
CREATE TABLE IF NOT EXISTS operators (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	name VARCHAR(120) NOT NULL,
	username VARCHAR(64) NOT NULL UNIQUE,
	email VARCHAR(190) NOT NULL UNIQUE,
	password_hash VARCHAR(100) NOT NULL,
	role VARCHAR(16) NOT NULL DEFAULT 'editor',
	status VARCHAR(16) NOT NULL DEFAULT 'active',
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
)`

// OperatorRepository stores dashboard accounts in MySQL.
type OperatorRepository struct {
	DB *sql.DB
}

// EnsureSchema creates the operators table when it is missing. Tables
// created before accounts could be disabled get the status column added.
func (r OperatorRepository) EnsureSchema(ctx context.Context) error {
	if r.DB == nil {
		return domain.InternalError{Msg: "database is not configured"}
	}
	if !intdb.HasTable(ctx, r.DB, operatorsTable) {
		if _, err := r.DB.ExecContext(ctx, operatorsDDL); err != nil {
			return fmt.Errorf("create %s: %w", operatorsTable, err)
		}
		return nil
	}
	if intdb.HasColumn(ctx, r.DB, operatorsTable, "status") {
		return nil
	}
	if _, err := r.DB.ExecContext(ctx, `ALTER TABLE operators ADD COLUMN status VARCHAR(16) NOT NULL DEFAULT 'active' AFTER role`); err != nil {
		return fmt.Errorf("add %s.status: %w", operatorsTable, err)
	}
	return nil
}

// FindByLogin looks an operator up by email or username.
func (r OperatorRepository) FindByLogin(ctx context.Context, login string) (models.Operator, error) {
	login = strings.TrimSpace(login)
	if login == "" {
		return models.Operator{}, domain.ValidationError{Field: "login", Msg: "login is required"}
	}
	var o models.Operator
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, name, username, email, password_hash, role, status, created_at, updated_at
		FROM operators
		WHERE email = ? OR username = ?
		LIMIT 1`, login, login).Scan(
		&o.ID,
		&o.Name,
		&o.Username,
		&o.Email,
		&o.PasswordHash,
		&o.Role,
		&o.Status,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if intdb.IsNoRows(err) {
		return models.Operator{}, domain.NotFoundError{Resource: "operator"}
	}
	if err != nil {
		return models.Operator{}, fmt.Errorf("query operator: %w", err)
	}
	return o, nil
}

// Exists reports whether email or username is already taken.
func (r OperatorRepository) Exists(ctx context.Context, email, username string) (bool, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM operators
		WHERE email = ? OR username = ?`, email, username).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("count operators: %w", err)
	}
	return n > 0, nil
}

// Create inserts o and returns it with its new id.
func (r OperatorRepository) Create(ctx context.Context, o models.Operator) (models.Operator, error) {
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO operators (name, username, email, password_hash, role, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		o.Name, o.Username, o.Email, o.PasswordHash, o.Role, o.Status, o.CreatedAt, o.UpdatedAt)
	if err != nil {
		return models.Operator{}, fmt.Errorf("insert operator: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Operator{}, fmt.Errorf("insert operator: %w", err)
	}
	o.ID = id
	return o, nil
}
