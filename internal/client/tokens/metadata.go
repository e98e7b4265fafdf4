package tokens

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/jobtracker/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/jobtracker/internal/common"
)

// MetadataStore persists the credential pair in the local SQLite metadata
// table, so a session survives restarts of the CLI.
type MetadataStore struct {
	repo metadata.Repository
}

func NewMetadataStore(db *sql.DB) *MetadataStore {
	return &MetadataStore{repo: metadata.NewSQLiteRepository(db)}
}

func (s *MetadataStore) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.repo.Get(ctx, key)
	if err != nil {
		return "", false, err
	}
	if v == nil {
		return "", false, nil
	}
	return string(v), true, nil
}

func (s *MetadataStore) Set(ctx context.Context, key, value string) error {
	return s.repo.Put(ctx, map[string][]byte{key: []byte(value)})
}

func (s *MetadataStore) Remove(ctx context.Context, key string) error {
	return s.repo.Delete(ctx, key)
}

// SetPair writes both tokens in one statement. An empty refresh token leaves
// the stored one in place.
func (s *MetadataStore) SetPair(ctx context.Context, p Pair) error {
	entries := map[string][]byte{common.AccessTokenKey: []byte(p.AccessToken)}
	if p.RefreshToken != "" {
		entries[common.RefreshTokenKey] = []byte(p.RefreshToken)
	}
	return s.repo.Put(ctx, entries)
}

func (s *MetadataStore) ClearPair(ctx context.Context) error {
	return s.repo.Delete(ctx, common.AccessTokenKey, common.RefreshTokenKey)
}
