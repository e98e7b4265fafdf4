package applications

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/dmitrijs2005/jobtracker/internal/client/models"
	"github.com/dmitrijs2005/jobtracker/internal/dbx"
)

const table = "applications"

// SQLiteRepository implements Repository over a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
	qb sq.StatementBuilderType
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{
		db: db,
		qb: sq.StatementBuilder.PlaceholderFormat(sq.Question),
	}
}

func (r *SQLiteRepository) Upsert(ctx context.Context, app models.Application, cachedAt time.Time) error {
	payload, err := json.Marshal(app)
	if err != nil {
		return fmt.Errorf("failed to encode application %d: %w", app.ID, err)
	}

	query, args, err := r.qb.
		Insert(table).
		Columns("id", "company_name", "position", "platform", "status", "applied_at", "payload", "cached_at").
		Values(app.ID, app.CompanyName, app.Position, app.Platform, string(app.Status), app.AppliedAt, payload, cachedAt.Unix()).
		Suffix(`ON CONFLICT(id) DO UPDATE SET
			company_name = excluded.company_name,
			position = excluded.position,
			platform = excluded.platform,
			status = excluded.status,
			applied_at = excluded.applied_at,
			payload = excluded.payload,
			cached_at = excluded.cached_at`).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to upsert application %d: %w", app.ID, err)
	}
	return nil
}

func (r *SQLiteRepository) Get(ctx context.Context, id int64) (*models.Application, error) {
	query, args, err := r.qb.Select("payload").From(table).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}

	var payload []byte
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get application %d: %w", id, err)
	}

	var app models.Application
	if err := json.Unmarshal(payload, &app); err != nil {
		return nil, fmt.Errorf("failed to decode application %d: %w", id, err)
	}
	return &app, nil
}

func (r *SQLiteRepository) List(ctx context.Context, status models.Status) ([]models.Application, error) {
	b := r.qb.Select("payload").From(table).OrderBy("applied_at DESC", "id DESC")
	if status != "" {
		b = b.Where(sq.Eq{"status": string(status)})
	}
	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select applications: %w", err)
	}
	defer rows.Close()

	var result []models.Application
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan application row: %w", err)
		}
		var app models.Application
		if err := json.Unmarshal(payload, &app); err != nil {
			return nil, fmt.Errorf("failed to decode cached application: %w", err)
		}
		result = append(result, app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate application rows: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := r.qb.Delete(table).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to delete application %d: %w", id, err)
	}
	return nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	query, args, err := r.qb.Delete(table).ToSql()
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to clear applications: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) SyncedAt(ctx context.Context) (time.Time, error) {
	query, args, err := r.qb.Select("MAX(cached_at)").From(table).ToSql()
	if err != nil {
		return time.Time{}, err
	}

	var ts sql.NullInt64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&ts); err != nil {
		return time.Time{}, fmt.Errorf("failed to read cache time: %w", err)
	}
	if !ts.Valid {
		return time.Time{}, nil
	}
	return time.Unix(ts.Int64, 0), nil
}
