package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/jobtracker/internal/client/services"
	"github.com/dmitrijs2005/jobtracker/internal/common"
)

// Dashboard loads the landing screen. Its four requests run concurrently,
// so an expired session is renewed once for all of them.
func (a *App) Dashboard(ctx context.Context, _ []string) error {
	a.nav.Go(common.DashboardPath)

	d, err := services.LoadDashboard(ctx, a.apps, a.budget, a.savings)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Applications: %d this week, %d this month\n", d.Stats.Weekly, d.Stats.Monthly)
	a.printBudget(d.Budget, d.Goals)
	fmt.Fprintf(a.out, "Savings jar: %s\n", money(d.Savings.Balance))
	return nil
}
