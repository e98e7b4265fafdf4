package cli

import (
	"bufio"
	"context"
	"database/sql"
	"io"
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/jobtracker/internal/client/client"
	"github.com/dmitrijs2005/jobtracker/internal/client/config"
	"github.com/dmitrijs2005/jobtracker/internal/client/models"
	"github.com/dmitrijs2005/jobtracker/internal/client/navigation"
	"github.com/dmitrijs2005/jobtracker/internal/client/repositories/applications"
	"github.com/dmitrijs2005/jobtracker/internal/client/services"
	"github.com/dmitrijs2005/jobtracker/internal/client/tokens"
	"github.com/dmitrijs2005/jobtracker/internal/common"
	"github.com/dmitrijs2005/jobtracker/internal/filex"
	"github.com/dmitrijs2005/jobtracker/internal/logging"
)

type Mode string

const (
	ModeOffline  Mode = "offline"
	ModeOnline   Mode = "online"
	ModeDisabled Mode = "disabled"
)

type App struct {
	config  *config.Config
	auth    services.AuthService
	apps    services.ApplicationService
	budget  services.BudgetService
	savings services.SavingsService
	nav     *navigation.Router
	db      *sql.DB

	mu   sync.RWMutex
	mode Mode
	user *models.User

	reader *bufio.Reader
	out    io.Writer
	now    func() time.Time
}

// NewApp opens the session database and builds the API client and services
// on top of it.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	if err := filex.EnsureParentDir(c.DBPath); err != nil {
		log.Printf("error preparing database directory: %s", err.Error())
		return nil, err
	}

	db, err := client.InitDatabase(ctx, c.DBPath)
	if err != nil {
		log.Printf("error initializing database: %s", err.Error())
		return nil, err
	}

	nav := navigation.NewRouter(common.LoginPath)
	store := tokens.NewMetadataStore(db)
	logger := logging.NewTextLogger(os.Stderr, c.SlogLevel())

	api := client.New(c.APIURL, store, nav,
		client.WithHTTPClient(&http.Client{Timeout: c.RequestTimeout}),
		client.WithLogger(logger),
	)

	return &App{
		config:  c,
		auth:    services.NewAuthService(api, store, applications.NewSQLiteRepository(db)),
		apps:    services.NewApplicationService(api, db),
		budget:  services.NewBudgetService(api),
		savings: services.NewSavingsService(api),
		nav:     nav,
		db:      db,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
		now:     time.Now,
	}, nil
}

func (a *App) Run(ctx context.Context) {
	if a.db != nil {
		defer a.db.Close()
	}
	a.Root(ctx)
}

func (a *App) Mode() Mode {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.mode
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		log.Printf("Switched to %s mode\n", mode)
	}
}

func (a *App) currentUser() *models.User {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.user
}

func (a *App) setUser(u *models.User) {
	a.mu.Lock()
	a.user = u
	a.mu.Unlock()
}

func (a *App) isLoggedIn() bool {
	return a.currentUser() != nil
}

// StartOnlineStatusWatcher pings the API every interval and flips the mode
// between online and offline. It returns when ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
			err := a.auth.Ping(pctx)
			cancel()

			if err != nil {
				if a.Mode() != ModeOffline {
					a.setMode(ModeOffline)
				}
			} else {
				if a.Mode() != ModeOnline {
					a.setMode(ModeOnline)
				}
			}

		case <-ctx.Done():
			return
		}
	}
}
