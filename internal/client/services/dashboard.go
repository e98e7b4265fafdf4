package services

import (
	"context"

	"github.com/dmitrijs2005/jobtracker/internal/client/models"
	"golang.org/x/sync/errgroup"
)

// Dashboard is the landing screen: application stats, the vacation budget
// with its goals, and the savings jar.
type Dashboard struct {
	Stats   *models.ApplicationStats
	Budget  *models.Budget
	Goals   []models.Goal
	Savings *models.SavingsBudget
}

// Coverage and Plan are derived from the budget and its goals.
func (d *Dashboard) Coverage() float64 { return models.Coverage(*d.Budget, d.Goals) }

func (d *Dashboard) Plan() models.MonthlyPlan { return models.PlanMonthly(*d.Budget, d.Goals) }

// LoadDashboard fetches the four parts concurrently. The first failure
// cancels the rest and is returned.
func LoadDashboard(ctx context.Context, apps ApplicationService, budget BudgetService, savings SavingsService) (*Dashboard, error) {
	var d Dashboard
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		d.Stats, err = apps.Stats(ctx)
		return err
	})
	g.Go(func() (err error) {
		d.Budget, err = budget.Get(ctx)
		return err
	})
	g.Go(func() (err error) {
		d.Goals, err = budget.Goals(ctx)
		return err
	})
	g.Go(func() (err error) {
		d.Savings, err = savings.Get(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &d, nil
}
