package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/jobtracker/internal/client/models"
	"github.com/dmitrijs2005/jobtracker/internal/common"
)

// Budget prints the vacation budget, how far it covers the goals and the
// monthly saving plan.
func (a *App) Budget(ctx context.Context, _ []string) error {
	a.nav.Go(common.BudgetPath)

	b, err := a.budget.Get(ctx)
	if err != nil {
		return err
	}
	goals, err := a.budget.Goals(ctx)
	if err != nil {
		return err
	}
	a.printBudget(b, goals)
	return nil
}

func (a *App) printBudget(b *models.Budget, goals []models.Goal) {
	tw := newTable(a.out)
	fmt.Fprintf(tw, "Balance:\t%s\n", money(b.Balance))
	fmt.Fprintf(tw, "Deposits:\t%s\n", money(b.TotalDeposits))
	fmt.Fprintf(tw, "Withdrawals:\t%s\n", money(b.TotalWithdrawals))
	fmt.Fprintf(tw, "Goals:\t%d (%.2f total, %.0f%% covered)\n",
		len(goals), models.GoalsTotal(goals), models.Coverage(*b, goals))

	p := models.PlanMonthly(*b, goals)
	if p.Remaining > 0 {
		fmt.Fprintf(tw, "Plan:\t%.2f a month for %d months\n", p.Payment, p.Months)
		if p.Shortage > 0 {
			fmt.Fprintf(tw, "\t%.2f left over after the last payment\n", p.Shortage)
		}
	}
	tw.Flush()
}

func (a *App) Transactions(ctx context.Context, _ []string) error {
	a.nav.Go(common.BudgetPath + "/transactions")

	txs, err := a.budget.Transactions(ctx)
	if err != nil {
		return err
	}
	if len(txs) == 0 {
		fmt.Fprintln(a.out, "No transactions")
		return nil
	}

	tw := newTable(a.out)
	fmt.Fprintln(tw, "ID\tDATE\tTYPE\tAMOUNT\tDESCRIPTION")
	for _, tx := range txs {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", tx.ID, day(tx.CreatedAt), tx.Type, money(tx.Amount), tx.Description)
	}
	return tw.Flush()
}

// readAmount takes the amount and description from args or, when missing,
// from prompts.
func (a *App) readAmount(args []string) (string, string, error) {
	if len(args) > 0 {
		return args[0], strings.Join(args[1:], " "), nil
	}
	amount, err := getSimpleText(a.reader, "Amount", a.out)
	if err != nil {
		return "", "", err
	}
	desc, err := getSimpleText(a.reader, "Description (optional)", a.out)
	if err != nil {
		return "", "", err
	}
	return amount, desc, nil
}

func (a *App) Deposit(ctx context.Context, args []string) error {
	amount, desc, err := a.readAmount(args)
	if err != nil {
		return err
	}
	tx, err := a.budget.AddTransaction(ctx, models.Deposit, amount, desc)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Deposited %s\n", money(tx.Amount))
	return nil
}

// Withdraw takes money out of the vacation budget. The amount is checked
// against the current balance before the API is asked.
func (a *App) Withdraw(ctx context.Context, args []string) error {
	amount, desc, err := a.readAmount(args)
	if err != nil {
		return err
	}
	b, err := a.budget.Get(ctx)
	if err != nil {
		return err
	}
	if _, err := models.CheckWithdrawal(amount, b.Balance); err != nil {
		return err
	}

	tx, err := a.budget.AddTransaction(ctx, models.Withdrawal, amount, desc)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Withdrew %s\n", money(tx.Amount))
	return nil
}

func (a *App) Goals(ctx context.Context, _ []string) error {
	a.nav.Go(common.BudgetPath + "/goals")

	goals, err := a.budget.Goals(ctx)
	if err != nil {
		return err
	}
	if len(goals) == 0 {
		fmt.Fprintln(a.out, "No goals")
		return nil
	}

	tw := newTable(a.out)
	fmt.Fprintln(tw, "ID\tNAME\tTARGET\tDONE")
	for _, g := range goals {
		done := ""
		if g.IsCompleted {
			done = "yes"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", g.ID, g.Name, money(g.TargetAmount), done)
	}
	return tw.Flush()
}

func (a *App) AddGoal(ctx context.Context, _ []string) error {
	name, err := getSimpleText(a.reader, "Goal name", a.out)
	if err != nil {
		return err
	}
	target, err := getSimpleText(a.reader, "Target amount", a.out)
	if err != nil {
		return err
	}

	g, err := a.budget.AddGoal(ctx, name, target)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Added goal %d: %s (%s)\n", g.ID, g.Name, money(g.TargetAmount))
	return nil
}

// CompleteGoal marks a goal as reached.
func (a *App) CompleteGoal(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("done <goal id>")
	}
	id, err := parseID(args[0], "done <goal id>")
	if err != nil {
		return err
	}

	done := true
	g, err := a.budget.UpdateGoal(ctx, id, models.GoalInput{IsCompleted: &done})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Goal %s completed\n", g.Name)
	return nil
}

func (a *App) DeleteGoal(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("delgoal <goal id>")
	}
	id, err := parseID(args[0], "delgoal <goal id>")
	if err != nil {
		return err
	}
	if err := a.budget.DeleteGoal(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Deleted goal %d\n", id)
	return nil
}

// VacationMonths sets how many months are left to save for the vacation.
func (a *App) VacationMonths(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("months <n>")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return common.ErrInvalidMonths
	}

	b, err := a.budget.UpdateVacationMonths(ctx, n)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Saving over %d months\n", b.VacationMonths)
	return nil
}
