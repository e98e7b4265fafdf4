package cli

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/dmitrijs2005/jobtracker/internal/client/models"
	"github.com/dmitrijs2005/jobtracker/internal/client/services"
	"github.com/dmitrijs2005/jobtracker/internal/common"
)

func (a *App) getStatus() string {
	s := ""
	if u := a.currentUser(); u != nil {
		s = u.DisplayName() + " "
	}
	if m := a.Mode(); m != "" {
		s = s + string(m) + " "
	}
	if a.nav != nil {
		s = s + a.nav.CurrentPath()
	}
	s = strings.TrimSpace(s)
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// Root restores the stored session if there is one, starts the connectivity
// watcher and blocks in the REPL until the user leaves.
func (a *App) Root(ctx context.Context) {
	log.Println("Welcome to jobtracker CLI (type 'help' for commands)")

	a.restoreSession(ctx)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, bufio.NewScanner(a.reader))
}

// restoreSession picks up the tokens left by a previous run. The user is
// only fetched when a token is stored; if the API is unreachable the session
// is kept under a placeholder user so cached applications stay readable. Any
// answer from the API other than the user leaves the REPL logged out.
func (a *App) restoreSession(ctx context.Context) {
	ok, err := a.auth.IsLoggedIn(ctx)
	if err != nil {
		log.Printf("Could not read stored session: %s", err.Error())
		return
	}
	if !ok {
		a.nav.Go(common.LoginPath)
		return
	}

	u, err := a.auth.CurrentUser(ctx)
	switch {
	case err == nil:
		a.setUser(u)
		a.setMode(ModeOnline)
		a.nav.Go(common.DashboardPath)
		log.Printf("Welcome back, %s", u.DisplayName())
	case services.Offline(err):
		log.Printf("Server unavailable, continuing with the stored session")
		a.setUser(&models.User{Email: "stored session"})
		a.setMode(ModeOffline)
		a.nav.Go(common.ApplicationsPath)
	default:
		// a rejected session was already cleared by the client
		log.Printf("Could not restore session: %s", describeError(err))
		a.nav.Go(common.LoginPath)
	}
}

// commands is the REPL's command table.
func (a *App) commands() []command {
	return []command{
		{name: "register", usage: "register", run: a.Register},
		{name: "login", usage: "login", run: a.Login},
		{name: "verify", usage: "verify <token>", run: a.VerifyEmail},

		{name: "logout", usage: "logout", private: true, run: a.Logout},
		{name: "me", usage: "me", private: true, run: a.Me},
		{name: "dashboard", usage: "dashboard", private: true, run: a.Dashboard},

		{name: "apps", usage: "apps [status] [search text]", private: true, run: a.ListApplications},
		{name: "app", usage: "app <id>", private: true, run: a.ShowApplication},
		{name: "addapp", usage: "addapp", private: true, run: a.AddApplication},
		{name: "editapp", usage: "editapp <id>", private: true, run: a.EditApplication},
		{name: "status", usage: "status <id> <status>", private: true, run: a.ChangeStatus},
		{name: "delapp", usage: "delapp <id>", private: true, run: a.DeleteApplication},
		{name: "stats", usage: "stats", private: true, run: a.Stats},

		{name: "budget", usage: "budget", private: true, run: a.Budget},
		{name: "tx", usage: "tx", private: true, run: a.Transactions},
		{name: "deposit", usage: "deposit [amount] [description]", private: true, run: a.Deposit},
		{name: "withdraw", usage: "withdraw [amount] [description]", private: true, run: a.Withdraw},
		{name: "goals", usage: "goals", private: true, run: a.Goals},
		{name: "addgoal", usage: "addgoal", private: true, run: a.AddGoal},
		{name: "done", usage: "done <goal id>", private: true, run: a.CompleteGoal},
		{name: "delgoal", usage: "delgoal <goal id>", private: true, run: a.DeleteGoal},
		{name: "months", usage: "months <n>", private: true, run: a.VacationMonths},

		{name: "savings", usage: "savings", private: true, run: a.Savings},
		{name: "stx", usage: "stx", private: true, run: a.SavingsTransactions},
		{name: "energy", usage: "energy", private: true, run: a.EnergyDrink},
		{name: "swithdraw", usage: "swithdraw [amount] [description]", private: true, run: a.SavingsWithdraw},
		{name: "transfer", usage: "transfer [amount]", private: true, run: a.Transfer},
		{name: "sdel", usage: "sdel <transaction id>", private: true, run: a.DeleteSavingsTransaction},
	}
}

func (a *App) redirects() <-chan string {
	return a.nav.Redirects()
}

// sessionEnded reacts to a redirect issued outside the REPL. Only the login
// screen means anything: the stored session is gone.
func (a *App) sessionEnded(path string) {
	if path != common.LoginPath || !a.isLoggedIn() {
		return
	}
	a.setUser(nil)
	printlnFn("Your session has expired. Please log in again.")
}
