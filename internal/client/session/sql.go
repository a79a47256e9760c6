package session

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/sessionkeeper/internal/client/repositories/kv"
	"github.com/dmitrijs2005/sessionkeeper/internal/dbx"
)

// SQLStorage persists session values in the kv table of the local database.
type SQLStorage struct {
	db   *sql.DB
	repo kv.Repository
}

var _ BatchStorage = (*SQLStorage)(nil)

// NewSQLStorage expects a database already migrated by
// repositories.InitDatabase.
func NewSQLStorage(db *sql.DB) *SQLStorage {
	return &SQLStorage{db: db, repo: kv.NewSQLiteRepository(db)}
}

func (s *SQLStorage) Get(ctx context.Context, key string) (string, bool, error) {
	return s.repo.Get(ctx, key)
}

func (s *SQLStorage) Set(ctx context.Context, key, value string) error {
	return s.repo.Set(ctx, key, value)
}

func (s *SQLStorage) Delete(ctx context.Context, key string) error {
	return s.repo.Delete(ctx, key)
}

// SetMany writes all values in one transaction.
func (s *SQLStorage) SetMany(ctx context.Context, values map[string]string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := kv.NewSQLiteRepository(tx)
		for k, v := range values {
			if err := repo.Set(ctx, k, v); err != nil {
				return err
			}
		}
		return nil
	})
}
