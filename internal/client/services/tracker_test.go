package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/jobtracker/internal/client/client"
	"github.com/dmitrijs2005/jobtracker/internal/client/models"
	"github.com/dmitrijs2005/jobtracker/internal/client/navigation"
	"github.com/dmitrijs2005/jobtracker/internal/client/tokens"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

// tracker is an in-memory stand-in for the tracker API.
type tracker struct {
	srv *httptest.Server

	mu             sync.Mutex
	access         string
	refresh        string
	refreshCalls   int
	verifiedSignup bool
	user           models.User
	apps           map[int64]models.Application
	nextID         int64
	budget         models.Budget
	goals          []models.Goal
	savings        models.SavingsBudget
	lastBody       map[string]any
}

func newTracker(t *testing.T) *tracker {
	t.Helper()
	tr := &tracker{
		access:  "A1",
		refresh: "R1",
		user:    models.User{ID: 1, Email: "jan@example.com", FirstName: "Jan", LastName: "Kowalski", IsVerified: true},
		apps:    map[int64]models.Application{},
		nextID:  1,
		budget:  models.Budget{ID: 1, Balance: "500.00", TotalDeposits: "700.00", TotalWithdrawals: "200.00", VacationMonths: 10},
		goals:   []models.Goal{{ID: 1, Name: "Flights", TargetAmount: "1500.00"}},
		savings: models.SavingsBudget{ID: 1, Balance: "40.00", TotalDeposits: "40.00", TotalWithdrawals: "0.00"},
	}

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Post("/login", tr.login)
		r.Post("/register", tr.register)
		r.Get("/verify-email", tr.verifyEmail)
		r.Post("/refresh", tr.renew)

		r.Group(func(r chi.Router) {
			r.Use(tr.authenticated)
			r.Get("/me", func(w http.ResponseWriter, _ *http.Request) { tr.reply(w, http.StatusOK, tr.user) })

			r.Get("/applications", tr.listApps)
			r.Post("/applications", tr.createApp)
			r.Get("/applications/stats", tr.appStats)
			r.Get("/applications/{id}", tr.getApp)
			r.Put("/applications/{id}", tr.updateApp)
			r.Patch("/applications/{id}/status", tr.changeStatus)
			r.Delete("/applications/{id}", tr.deleteApp)

			r.Get("/budget", func(w http.ResponseWriter, _ *http.Request) { tr.reply(w, http.StatusOK, tr.budget) })
			r.Get("/budget/transactions", tr.echoList(`[{"id":1,"type":"deposit","amount":"700.00","createdAt":"2024-01-01"}]`))
			r.Post("/budget/transactions", tr.recordAndReply(http.StatusCreated, `{"id":2,"type":"deposit","amount":"25.00"}`))
			r.Get("/budget/goals", func(w http.ResponseWriter, _ *http.Request) { tr.reply(w, http.StatusOK, tr.goals) })
			r.Post("/budget/goals", tr.recordAndReply(http.StatusCreated, `{"id":2,"name":"Hotel","targetAmount":"900.00"}`))
			r.Put("/budget/goals/{id}", tr.recordAndReply(http.StatusOK, `{"id":1,"name":"Flights","targetAmount":"1500.00","isCompleted":true}`))
			r.Delete("/budget/goals/{id}", tr.recordAndReply(http.StatusNoContent, ``))
			r.Put("/budget/vacation-months", tr.recordAndReply(http.StatusOK, `{"id":1,"balance":"500.00","vacationMonths":6}`))

			r.Get("/savings", func(w http.ResponseWriter, _ *http.Request) { tr.reply(w, http.StatusOK, tr.savings) })
			r.Get("/savings/stats", tr.echoList(`{"balance":"40.00","weekly":"10.00","monthly":"40.00","yearly":"40.00"}`))
			r.Get("/savings/transactions", tr.echoList(`[{"id":3,"type":"deposit","amount":"5.00","description":"energy drink"}]`))
			r.Delete("/savings/transactions/{id}", tr.recordAndReply(http.StatusNoContent, ``))
			r.Post("/savings/energy-drink", tr.recordAndReply(http.StatusOK, `{"id":1,"balance":"45.00"}`))
			r.Post("/savings/withdrawal", tr.recordAndReply(http.StatusOK, `{"id":1,"balance":"30.00"}`))
			r.Post("/savings/transfer-to-vacation", tr.recordAndReply(http.StatusOK,
				`{"savingsBudget":{"id":1,"balance":"20.00"},"vacationBudget":{"id":1,"balance":"520.00"}}`))
		})
	})

	tr.srv = httptest.NewServer(r)
	t.Cleanup(tr.srv.Close)
	return tr
}

func (tr *tracker) baseURL() string { return tr.srv.URL + "/api" }

// expire invalidates the current access token, as if it had timed out.
func (tr *tracker) expire() {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	tr.access = "A-expired-" + strconv.Itoa(tr.refreshCalls)
}

func (tr *tracker) refreshes() int {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	return tr.refreshCalls
}

func (tr *tracker) body() map[string]any {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	return tr.lastBody
}

func (tr *tracker) reply(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (tr *tracker) fail(w http.ResponseWriter, status int, msg string) {
	tr.reply(w, status, map[string]string{"error": msg})
}

func (tr *tracker) authenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tr.mu.Lock()
		ok := r.Header.Get("Authorization") == "Bearer "+tr.access
		tr.mu.Unlock()
		if !ok {
			tr.fail(w, http.StatusUnauthorized, "token expired")
			return
		}
		tr.mu.Lock()
		defer tr.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (tr *tracker) login(w http.ResponseWriter, r *http.Request) {
	var c models.Credentials
	_ = json.NewDecoder(r.Body).Decode(&c)
	if c.Email != tr.user.Email || c.Password != "secret1" {
		tr.fail(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	tr.mu.Lock()
	defer tr.mu.Unlock()
	tr.reply(w, http.StatusOK, models.AuthResponse{Token: tr.access, RefreshToken: tr.refresh, User: tr.user})
}

func (tr *tracker) register(w http.ResponseWriter, r *http.Request) {
	var reg models.Registration
	_ = json.NewDecoder(r.Body).Decode(&reg)
	tr.mu.Lock()
	defer tr.mu.Unlock()
	u := models.User{ID: 2, Email: reg.Email, FirstName: reg.FirstName, LastName: reg.LastName, IsVerified: tr.verifiedSignup}
	tr.reply(w, http.StatusCreated, models.AuthResponse{Token: tr.access, RefreshToken: tr.refresh, User: u})
}

func (tr *tracker) verifyEmail(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("token") != "abc+def" {
		tr.fail(w, http.StatusBadRequest, "invalid verification token")
		return
	}
	tr.reply(w, http.StatusOK, models.VerifyEmailResponse{Message: "Email verified", User: tr.user})
}

func (tr *tracker) renew(w http.ResponseWriter, r *http.Request) {
	var body struct {
		RefreshToken string `json:"refreshToken"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)

	tr.mu.Lock()
	defer tr.mu.Unlock()
	tr.refreshCalls++
	if body.RefreshToken != tr.refresh {
		tr.fail(w, http.StatusUnauthorized, "invalid refresh token")
		return
	}
	tr.access = fmt.Sprintf("A%d", tr.refreshCalls+1)
	tr.refresh = fmt.Sprintf("R%d", tr.refreshCalls+1)
	tr.reply(w, http.StatusOK, map[string]string{"token": tr.access, "refreshToken": tr.refresh})
}

// Handlers below run under tr.mu, taken by authenticated.

func (tr *tracker) idParam(w http.ResponseWriter, r *http.Request) (models.Application, bool) {
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	a, ok := tr.apps[id]
	if !ok {
		tr.fail(w, http.StatusNotFound, "application not found")
	}
	return a, ok
}

func (tr *tracker) listApps(w http.ResponseWriter, _ *http.Request) {
	out := []models.Application{}
	for id := int64(1); id < tr.nextID; id++ {
		if a, ok := tr.apps[id]; ok {
			out = append(out, a)
		}
	}
	tr.reply(w, http.StatusOK, out)
}

func (tr *tracker) createApp(w http.ResponseWriter, r *http.Request) {
	var in models.ApplicationInput
	_ = json.NewDecoder(r.Body).Decode(&in)
	if in.AppliedAt == "" {
		in.AppliedAt = "2024-03-01T10:00:00Z"
	}
	a := models.Application{
		ID:            tr.nextID,
		CompanyName:   in.CompanyName,
		Position:      in.Position,
		Platform:      in.Platform,
		Status:        in.Status,
		AppliedAt:     in.AppliedAt,
		CreatedAt:     in.AppliedAt,
		StatusHistory: []models.StatusHistory{},
	}
	tr.apps[a.ID] = a
	tr.nextID++
	tr.reply(w, http.StatusCreated, a)
}

func (tr *tracker) appStats(w http.ResponseWriter, _ *http.Request) {
	tr.reply(w, http.StatusOK, models.ApplicationStats{Weekly: len(tr.apps), Monthly: len(tr.apps), Latest: []models.Application{}})
}

func (tr *tracker) getApp(w http.ResponseWriter, r *http.Request) {
	if a, ok := tr.idParam(w, r); ok {
		tr.reply(w, http.StatusOK, a)
	}
}

func (tr *tracker) updateApp(w http.ResponseWriter, r *http.Request) {
	a, ok := tr.idParam(w, r)
	if !ok {
		return
	}
	var in models.ApplicationInput
	_ = json.NewDecoder(r.Body).Decode(&in)
	if in.CompanyName != "" {
		a.CompanyName = in.CompanyName
	}
	if in.Position != "" {
		a.Position = in.Position
	}
	if in.Platform != "" {
		a.Platform = in.Platform
	}
	tr.apps[a.ID] = a
	tr.reply(w, http.StatusOK, a)
}

func (tr *tracker) changeStatus(w http.ResponseWriter, r *http.Request) {
	a, ok := tr.idParam(w, r)
	if !ok {
		return
	}
	var in struct {
		Status models.Status `json:"status"`
	}
	_ = json.NewDecoder(r.Body).Decode(&in)
	a.StatusHistory = append(a.StatusHistory, models.StatusHistory{OldStatus: a.Status, NewStatus: in.Status, ChangedAt: "2024-03-02T10:00:00Z"})
	a.Status = in.Status
	tr.apps[a.ID] = a
	tr.reply(w, http.StatusOK, a)
}

func (tr *tracker) deleteApp(w http.ResponseWriter, r *http.Request) {
	if a, ok := tr.idParam(w, r); ok {
		delete(tr.apps, a.ID)
		w.WriteHeader(http.StatusNoContent)
	}
}

func (tr *tracker) echoList(raw string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(raw))
	}
}

// recordAndReply keeps the decoded request body (with the request path under
// "_path") and answers with raw.
func (tr *tracker) recordAndReply(status int, raw string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := map[string]any{}
		_ = json.NewDecoder(r.Body).Decode(&body)
		body["_path"] = r.URL.Path
		tr.lastBody = body
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(raw))
	}
}

// session is a client wired to the tracker with a logged-in user.
type session struct {
	api   *client.Client
	store *tokens.MemoryStore
	nav   *navigation.Router
}

func newSession(t *testing.T, tr *tracker, loggedIn bool) *session {
	t.Helper()
	store := tokens.NewMemoryStore()
	if loggedIn {
		require.NoError(t, tokens.SavePair(context.Background(), store, tokens.Pair{AccessToken: "A1", RefreshToken: "R1"}))
	}
	nav := navigation.NewRouter("/dashboard")
	return &session{
		api:   client.New(tr.baseURL(), store, nav, client.WithHTTPClient(&http.Client{Timeout: 5 * time.Second})),
		store: store,
		nav:   nav,
	}
}

func openCacheDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "jobtracker.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}
