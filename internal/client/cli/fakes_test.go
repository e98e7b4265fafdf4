package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/jobtracker/internal/client/models"
	"github.com/dmitrijs2005/jobtracker/internal/client/navigation"
	"github.com/dmitrijs2005/jobtracker/internal/client/services"
	"github.com/dmitrijs2005/jobtracker/internal/common"
)

// stubInputs answers getSimpleText prompts from answers in order and
// getPassword with password. Prompts past the answers read as EOF.
func stubInputs(t *testing.T, password []byte, answers ...string) *[]string {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	var prompts []string
	getSimpleText = func(_ *bufio.Reader, prompt string, _ io.Writer) (string, error) {
		prompts = append(prompts, prompt)
		if len(answers) == 0 {
			return "", io.EOF
		}
		a := answers[0]
		answers = answers[1:]
		return a, nil
	}
	getPassword = func(_ io.Writer) ([]byte, error) { return password, nil }
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
	return &prompts
}

func silencePrintln(t *testing.T) *[]string {
	t.Helper()
	orig := printlnFn
	var lines []string
	printlnFn = func(a ...any) (int, error) {
		parts := make([]string, len(a))
		for i, v := range a {
			parts[i] = strings.TrimSpace(toString(v))
		}
		lines = append(lines, strings.Join(parts, " "))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

type testApp struct {
	*App
	out     *bytes.Buffer
	auth    *fakeAuth
	apps    *fakeApps
	budget  *fakeBudget
	savings *fakeSavings
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	out := &bytes.Buffer{}
	ta := &testApp{
		out:     out,
		auth:    &fakeAuth{},
		apps:    &fakeApps{},
		budget:  &fakeBudget{budget: models.Budget{Balance: "100.00"}},
		savings: &fakeSavings{jar: models.SavingsBudget{Balance: "20.00"}},
	}
	ta.App = &App{
		auth:    ta.auth,
		apps:    ta.apps,
		budget:  ta.budget,
		savings: ta.savings,
		nav:     navigation.NewRouter(common.LoginPath),
		reader:  bufio.NewReader(strings.NewReader("")),
		out:     out,
		now:     func() time.Time { return time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC) },
	}
	return ta
}

func (ta *testApp) login() {
	ta.setUser(&models.User{ID: 1, Email: "ann@example.org", FirstName: "Ann", IsVerified: true})
}

type fakeAuth struct {
	loginEmail string
	loginPass  []byte
	loginUser  *models.User
	loginErr   error

	regArgs []string
	regResp *models.AuthResponse
	regErr  error

	logoutCalled bool
	logoutErr    error

	me    *models.User
	meErr error

	verifyToken string
	verifyResp  *models.VerifyEmailResponse
	verifyErr   error

	loggedIn bool
	expiry   time.Time

	pingErr error
	pings   int
}

func (f *fakeAuth) Login(_ context.Context, email string, pass []byte) (*models.User, error) {
	f.loginEmail, f.loginPass = email, append([]byte(nil), pass...)
	return f.loginUser, f.loginErr
}

func (f *fakeAuth) Register(_ context.Context, email string, pass []byte, first, last string) (*models.AuthResponse, error) {
	f.regArgs = []string{email, string(pass), first, last}
	return f.regResp, f.regErr
}

func (f *fakeAuth) Logout(context.Context) error {
	f.logoutCalled = true
	return f.logoutErr
}

func (f *fakeAuth) CurrentUser(context.Context) (*models.User, error) { return f.me, f.meErr }

func (f *fakeAuth) VerifyEmail(_ context.Context, token string) (*models.VerifyEmailResponse, error) {
	f.verifyToken = token
	return f.verifyResp, f.verifyErr
}

func (f *fakeAuth) IsLoggedIn(context.Context) (bool, error) { return f.loggedIn, nil }

func (f *fakeAuth) SessionExpiry(context.Context) (time.Time, bool) {
	return f.expiry, !f.expiry.IsZero()
}

func (f *fakeAuth) Ping(context.Context) error {
	f.pings++
	return f.pingErr
}

type fakeApps struct {
	listing *services.Listing
	listErr error

	got       *models.Application
	gotCached bool
	getErr    error

	created *models.ApplicationInput
	updated *models.ApplicationInput

	statusID int64
	status   models.Status

	deleted []int64

	stats *models.ApplicationStats
}

func (f *fakeApps) List(context.Context) (*services.Listing, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	if f.listing == nil {
		return &services.Listing{}, nil
	}
	return f.listing, nil
}

func (f *fakeApps) Get(_ context.Context, id int64) (*models.Application, bool, error) {
	if f.getErr != nil {
		return nil, false, f.getErr
	}
	return f.got, f.gotCached, nil
}

func (f *fakeApps) Create(_ context.Context, in models.ApplicationInput) (*models.Application, error) {
	f.created = &in
	return &models.Application{ID: 7, CompanyName: in.CompanyName, Status: in.Status}, nil
}

func (f *fakeApps) Update(_ context.Context, id int64, in models.ApplicationInput) (*models.Application, error) {
	f.updated = &in
	return &models.Application{ID: id, CompanyName: in.CompanyName, Status: in.Status}, nil
}

func (f *fakeApps) ChangeStatus(_ context.Context, id int64, st models.Status) (*models.Application, error) {
	f.statusID, f.status = id, st
	return &models.Application{ID: id, CompanyName: "Acme", Status: st}, nil
}

func (f *fakeApps) Stats(context.Context) (*models.ApplicationStats, error) {
	if f.stats == nil {
		return &models.ApplicationStats{}, nil
	}
	return f.stats, nil
}

func (f *fakeApps) Delete(_ context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeBudget struct {
	budget models.Budget
	goals  []models.Goal
	txs    []models.Transaction

	added   []models.TransactionInput
	goalIn  *models.GoalInput
	goalID  int64
	months  int
	getErr  error
	deleted []int64
}

func (f *fakeBudget) Get(context.Context) (*models.Budget, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	b := f.budget
	return &b, nil
}

func (f *fakeBudget) Transactions(context.Context) ([]models.Transaction, error) { return f.txs, nil }

func (f *fakeBudget) AddTransaction(_ context.Context, typ models.TransactionType, amount, desc string) (*models.Transaction, error) {
	norm, err := models.NormalizeAmount(amount)
	if err != nil {
		return nil, err
	}
	f.added = append(f.added, models.TransactionInput{Type: typ, Amount: norm, Description: desc})
	return &models.Transaction{ID: int64(len(f.added)), Type: typ, Amount: norm, Description: desc}, nil
}

func (f *fakeBudget) Goals(context.Context) ([]models.Goal, error) { return f.goals, nil }

func (f *fakeBudget) AddGoal(_ context.Context, name, target string) (*models.Goal, error) {
	f.goalIn = &models.GoalInput{Name: name, TargetAmount: target}
	return &models.Goal{ID: 3, Name: name, TargetAmount: target}, nil
}

func (f *fakeBudget) UpdateGoal(_ context.Context, id int64, in models.GoalInput) (*models.Goal, error) {
	f.goalID, f.goalIn = id, &in
	return &models.Goal{ID: id, Name: "Flights", IsCompleted: in.IsCompleted != nil && *in.IsCompleted}, nil
}

func (f *fakeBudget) DeleteGoal(_ context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeBudget) UpdateVacationMonths(_ context.Context, months int) (*models.Budget, error) {
	if months <= 0 {
		return nil, common.ErrInvalidMonths
	}
	f.months = months
	b := f.budget
	b.VacationMonths = months
	return &b, nil
}

type fakeSavings struct {
	jar   models.SavingsBudget
	stats models.SavingsStats
	txs   []models.SavingsTransaction

	drinks      int
	withdrawn   []string
	transferred []string
	deleted     []int64
}

func (f *fakeSavings) Get(context.Context) (*models.SavingsBudget, error) {
	j := f.jar
	return &j, nil
}

func (f *fakeSavings) Stats(context.Context) (*models.SavingsStats, error) {
	s := f.stats
	return &s, nil
}

func (f *fakeSavings) Transactions(context.Context) ([]models.SavingsTransaction, error) {
	return f.txs, nil
}

func (f *fakeSavings) AddEnergyDrink(context.Context) (*models.SavingsBudget, error) {
	f.drinks++
	return &models.SavingsBudget{Balance: "25.00"}, nil
}

func (f *fakeSavings) Withdraw(_ context.Context, amount, desc string) (*models.SavingsBudget, error) {
	f.withdrawn = append(f.withdrawn, amount+"|"+desc)
	return &models.SavingsBudget{Balance: "15.00"}, nil
}

func (f *fakeSavings) TransferToVacation(_ context.Context, amount string) (*models.TransferResult, error) {
	f.transferred = append(f.transferred, amount)
	return &models.TransferResult{
		SavingsBudget:  models.SavingsBudget{Balance: "10.00"},
		VacationBudget: models.Budget{Balance: "110.00"},
	}, nil
}

func (f *fakeSavings) DeleteTransaction(_ context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return nil
}
