package avatars

import (
	"context"
	"database/sql"

	"github.com/avorobyov/taskkeeper/internal/server/repositories/repomanager"
)

// PostgresStore keeps the avatar blob in the users table, the way the
// original single-database deployment works.
type PostgresStore struct {
	db *sql.DB
	rm repomanager.RepositoryManager
}

func NewPostgresStore(db *sql.DB, rm repomanager.RepositoryManager) *PostgresStore {
	return &PostgresStore{db: db, rm: rm}
}

func (s *PostgresStore) Put(ctx context.Context, userID string, data []byte) error {
	return s.rm.Users(s.db).SetAvatar(ctx, userID, data)
}

func (s *PostgresStore) Get(ctx context.Context, userID string) ([]byte, error) {
	return s.rm.Users(s.db).GetAvatar(ctx, userID)
}

func (s *PostgresStore) Delete(ctx context.Context, userID string) error {
	return s.rm.Users(s.db).SetAvatar(ctx, userID, nil)
}
