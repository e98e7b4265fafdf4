package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/jobtracker/internal/client/models"
	"github.com/dmitrijs2005/jobtracker/internal/client/repositories/applications"
	"github.com/dmitrijs2005/jobtracker/internal/common"
	"github.com/dmitrijs2005/jobtracker/internal/dbx"
)

// Listing is a list of applications and where it came from. Cached is set
// when the API was unreachable and the list was read from the local cache.
type Listing struct {
	Items    []models.Application
	Cached   bool
	SyncedAt time.Time
}

type ApplicationService interface {
	List(ctx context.Context) (*Listing, error)
	Get(ctx context.Context, id int64) (*models.Application, bool, error)
	Create(ctx context.Context, in models.ApplicationInput) (*models.Application, error)
	Update(ctx context.Context, id int64, in models.ApplicationInput) (*models.Application, error)
	ChangeStatus(ctx context.Context, id int64, status models.Status) (*models.Application, error)
	Stats(ctx context.Context) (*models.ApplicationStats, error)
	Delete(ctx context.Context, id int64) error
}

type applicationService struct {
	api API
	db  *sql.DB
	now func() time.Time
}

// NewApplicationService returns the service. With a non-nil db every answer
// of the API is mirrored into the local cache, which List and Get fall back
// to while the API is unreachable.
func NewApplicationService(api API, db *sql.DB) ApplicationService {
	return &applicationService{api: api, db: db, now: time.Now}
}

func (s *applicationService) cache() applications.Repository {
	if s.db == nil {
		return nil
	}
	return applications.NewSQLiteRepository(s.db)
}

func (s *applicationService) List(ctx context.Context) (*Listing, error) {
	items, err := decode[[]models.Application](s.api.Get(ctx, "/applications"))
	if err == nil {
		if err := s.replaceCache(ctx, items); err != nil {
			return nil, err
		}
		return &Listing{Items: items, SyncedAt: s.now()}, nil
	}

	cache := s.cache()
	if cache == nil || !Offline(err) {
		return nil, err
	}
	cached, cerr := cache.List(ctx, "")
	if cerr != nil {
		return nil, fmt.Errorf("cache reading error: %w", cerr)
	}
	if len(cached) == 0 {
		return nil, err
	}
	at, cerr := cache.SyncedAt(ctx)
	if cerr != nil {
		return nil, fmt.Errorf("cache reading error: %w", cerr)
	}
	return &Listing{Items: cached, Cached: true, SyncedAt: at}, nil
}

// replaceCache swaps the cached list for items in one transaction.
func (s *applicationService) replaceCache(ctx context.Context, items []models.Application) error {
	if s.db == nil {
		return nil
	}
	now := s.now()
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := applications.NewSQLiteRepository(tx)
		if err := repo.Clear(ctx); err != nil {
			return err
		}
		for _, a := range items {
			if err := repo.Upsert(ctx, a, now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("cache saving error: %w", err)
	}
	return nil
}

func (s *applicationService) remember(ctx context.Context, a models.Application) error {
	if cache := s.cache(); cache != nil {
		if err := cache.Upsert(ctx, a, s.now()); err != nil {
			return fmt.Errorf("cache saving error: %w", err)
		}
	}
	return nil
}

// Get returns the application; the bool is true when it came from the cache.
func (s *applicationService) Get(ctx context.Context, id int64) (*models.Application, bool, error) {
	app, err := decode[models.Application](s.api.Get(ctx, fmt.Sprintf("/applications/%d", id)))
	if err == nil {
		if err := s.remember(ctx, app); err != nil {
			return nil, false, err
		}
		return &app, false, nil
	}

	cache := s.cache()
	if cache == nil || !Offline(err) {
		return nil, false, err
	}
	cached, cerr := cache.Get(ctx, id)
	if cerr != nil {
		return nil, false, fmt.Errorf("cache reading error: %w", cerr)
	}
	if cached == nil {
		return nil, false, fmt.Errorf("%w: %w", common.ErrNotCached, err)
	}
	return cached, true, nil
}

func validateInput(in models.ApplicationInput, create bool) error {
	if create && strings.TrimSpace(in.CompanyName) == "" {
		return fmt.Errorf("company %w", common.ErrMissingName)
	}
	if in.Status != "" && !in.Status.Valid() {
		return fmt.Errorf("%w: %q", common.ErrInvalidStatus, in.Status)
	}
	return nil
}

func (s *applicationService) Create(ctx context.Context, in models.ApplicationInput) (*models.Application, error) {
	if err := validateInput(in, true); err != nil {
		return nil, err
	}
	if in.Status == "" {
		in.Status = models.StatusApplied
	}
	app, err := decode[models.Application](s.api.Post(ctx, "/applications", in))
	if err != nil {
		return nil, err
	}
	return &app, s.remember(ctx, app)
}

func (s *applicationService) Update(ctx context.Context, id int64, in models.ApplicationInput) (*models.Application, error) {
	if err := validateInput(in, false); err != nil {
		return nil, err
	}
	app, err := decode[models.Application](s.api.Put(ctx, fmt.Sprintf("/applications/%d", id), in))
	if err != nil {
		return nil, err
	}
	return &app, s.remember(ctx, app)
}

func (s *applicationService) ChangeStatus(ctx context.Context, id int64, status models.Status) (*models.Application, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", common.ErrInvalidStatus, status)
	}
	app, err := decode[models.Application](s.api.Patch(ctx, fmt.Sprintf("/applications/%d/status", id), map[string]models.Status{"status": status}))
	if err != nil {
		return nil, err
	}
	return &app, s.remember(ctx, app)
}

func (s *applicationService) Stats(ctx context.Context) (*models.ApplicationStats, error) {
	st, err := decode[models.ApplicationStats](s.api.Get(ctx, "/applications/stats"))
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func (s *applicationService) Delete(ctx context.Context, id int64) error {
	if _, err := s.api.Delete(ctx, fmt.Sprintf("/applications/%d", id)); err != nil {
		return err
	}
	if cache := s.cache(); cache != nil {
		if err := cache.Delete(ctx, id); err != nil {
			return fmt.Errorf("cache saving error: %w", err)
		}
	}
	return nil
}
