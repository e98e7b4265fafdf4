package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/jobtracker/internal/client/models"
	"github.com/dmitrijs2005/jobtracker/internal/common"
)

// Savings prints the savings jar balance and what went into it lately.
func (a *App) Savings(ctx context.Context, _ []string) error {
	a.nav.Go(common.SavingsPath)

	st, err := a.savings.Stats(ctx)
	if err != nil {
		return err
	}

	tw := newTable(a.out)
	fmt.Fprintf(tw, "Balance:\t%s\n", money(st.Balance))
	fmt.Fprintf(tw, "Deposits:\t%s\n", money(st.TotalDeposits))
	fmt.Fprintf(tw, "Withdrawals:\t%s\n", money(st.TotalWithdrawals))
	fmt.Fprintf(tw, "Saved this week:\t%s\n", money(st.Weekly))
	fmt.Fprintf(tw, "Saved this month:\t%s\n", money(st.Monthly))
	fmt.Fprintf(tw, "Saved this year:\t%s\n", money(st.Yearly))
	return tw.Flush()
}

func (a *App) SavingsTransactions(ctx context.Context, _ []string) error {
	a.nav.Go(common.SavingsPath + "/transactions")

	txs, err := a.savings.Transactions(ctx)
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

// EnergyDrink puts the price of a skipped energy drink into the jar.
func (a *App) EnergyDrink(ctx context.Context, _ []string) error {
	b, err := a.savings.AddEnergyDrink(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Saved! Jar balance: %s\n", money(b.Balance))
	return nil
}

func (a *App) SavingsWithdraw(ctx context.Context, args []string) error {
	amount, desc, err := a.readAmount(args)
	if err != nil {
		return err
	}
	if err := a.checkJar(ctx, amount); err != nil {
		return err
	}

	b, err := a.savings.Withdraw(ctx, amount, desc)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Jar balance: %s\n", money(b.Balance))
	return nil
}

// Transfer moves money from the jar to the vacation budget.
func (a *App) Transfer(ctx context.Context, args []string) error {
	amount, _, err := a.readAmount(firstOnly(args))
	if err != nil {
		return err
	}
	if err := a.checkJar(ctx, amount); err != nil {
		return err
	}

	r, err := a.savings.TransferToVacation(ctx, amount)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Jar balance: %s\nVacation balance: %s\n",
		money(r.SavingsBudget.Balance), money(r.VacationBudget.Balance))
	return nil
}

func (a *App) checkJar(ctx context.Context, amount string) error {
	jar, err := a.savings.Get(ctx)
	if err != nil {
		return err
	}
	_, err = models.CheckWithdrawal(amount, jar.Balance)
	return err
}

func firstOnly(args []string) []string {
	if len(args) > 1 {
		return args[:1]
	}
	return args
}

func (a *App) DeleteSavingsTransaction(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("sdel <transaction id>")
	}
	id, err := parseID(args[0], "sdel <transaction id>")
	if err != nil {
		return err
	}
	if err := a.savings.DeleteTransaction(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Deleted transaction %d\n", id)
	return nil
}
