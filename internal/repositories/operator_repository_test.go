package repositories

import (
	"context"
	"regexp"
	"testing"
	"time"

	"cmsadmin/internal/domain"
	"cmsadmin/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOperatorRepositoryFindByLogin(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "name", "username", "email", "password_hash", "role", "status", "created_at", "updated_at"}).
		AddRow(int64(3), "Lan", "lan", "lan@example.com", "hash", "admin", "active", now, now)
	mock.ExpectQuery(regexp.QuoteMeta("FROM operators")).
		WithArgs("lan", "lan").
		WillReturnRows(rows)

	op, err := OperatorRepository{DB: db}.FindByLogin(context.Background(), " lan ")
	require.NoError(t, err)
	assert.Equal(t, int64(3), op.ID)
	assert.Equal(t, "hash", op.PasswordHash)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOperatorRepositoryFindByLoginNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM operators")).
		WithArgs("ghost", "ghost").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err = OperatorRepository{DB: db}.FindByLogin(context.Background(), "ghost")
	assert.True(t, domain.IsNotFound(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOperatorRepositoryExistsAndCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*)")).
		WithArgs("lan@example.com", "lan").
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO operators")).
		WillReturnResult(sqlmock.NewResult(9, 1))

	repo := OperatorRepository{DB: db}
	exists, err := repo.Exists(context.Background(), "lan@example.com", "lan")
	require.NoError(t, err)
	assert.False(t, exists)

	now := time.Now()
	op, err := repo.Create(context.Background(), models.Operator{Name: "Lan", Username: "lan", Email: "lan@example.com", PasswordHash: "h", Role: models.RoleEditor, Status: models.StatusActive, CreatedAt: now, UpdatedAt: now})
	require.NoError(t, err)
	assert.Equal(t, int64(9), op.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOperatorRepositoryEnsureSchema(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM information_schema.tables")).
		WithArgs("operators").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}))
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS operators")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, OperatorRepository{DB: db}.EnsureSchema(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOperatorRepositoryEnsureSchemaExisting(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM information_schema.tables")).
		WithArgs("operators").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("operators"))
	mock.ExpectQuery(regexp.QuoteMeta("FROM information_schema.columns")).
		WithArgs("operators", "status").
		WillReturnRows(sqlmock.NewRows([]string{"column_name"}).AddRow("status"))

	require.NoError(t, OperatorRepository{DB: db}.EnsureSchema(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOperatorRepositoryEnsureSchemaAddsStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM information_schema.tables")).
		WithArgs("operators").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("operators"))
	mock.ExpectQuery(regexp.QuoteMeta("FROM information_schema.columns")).
		WithArgs("operators", "status").
		WillReturnRows(sqlmock.NewRows([]string{"column_name"}))
	mock.ExpectExec(regexp.QuoteMeta("ALTER TABLE operators ADD COLUMN status")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, OperatorRepository{DB: db}.EnsureSchema(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}
