package documents

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingService/pkg/psqlbuilder"
)

const documentsTable = "documents"

// PostgresStore хранилище документов в таблице documents (key text PRIMARY KEY, value jsonb)
type PostgresStore struct {
	db dbmetrics.DBExecutor
}

// NewPostgresStore создает хранилище поверх *sql.DB или *dbmetrics.DB
func NewPostgresStore(db dbmetrics.DBExecutor) *PostgresStore {
	return &PostgresStore{db: db}
}

// Load получает документ по ключу
func (s *PostgresStore) Load(ctx context.Context, key string) ([]byte, error) {
	query, args, err := psqlbuilder.Select("value").
		From(documentsTable).
		Where(squirrel.Eq{"key": key}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Load - build select query: %v", ErrBuildQuery, err)
	}

	var raw []byte
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Load - scan key=%s: %v", ErrExecQuery, key, err)
	}

	return raw, nil
}

// Save создает или перезаписывает документ целиком
func (s *PostgresStore) Save(ctx context.Context, key string, value []byte) error {
	query, args, err := psqlbuilder.Insert(documentsTable).
		Columns("key", "value", "updated_at").
		Values(key, string(value), squirrel.Expr("NOW()")).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Save - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Save - execute upsert key=%s: %v", ErrExecQuery, key, err)
	}

	return nil
}
