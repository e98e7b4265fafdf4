package models

import (
	"math"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/jobtracker/internal/common"
)

type TransactionType string

const (
	Deposit    TransactionType = "deposit"
	Withdrawal TransactionType = "withdrawal"
)

func (t TransactionType) Valid() bool { return t == Deposit || t == Withdrawal }

type Transaction struct {
	ID          int64           `json:"id"`
	Type        TransactionType `json:"type"`
	Amount      string          `json:"amount"`
	Description string          `json:"description,omitempty"`
	CreatedAt   string          `json:"createdAt"`
}

type TransactionInput struct {
	Type        TransactionType `json:"type"`
	Amount      string          `json:"amount"`
	Description string          `json:"description,omitempty"`
}

type Goal struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	TargetAmount string `json:"targetAmount"`
	IsCompleted  bool   `json:"isCompleted"`
	CompletedAt  string `json:"completedAt,omitempty"`
}

// GoalInput is the create/update payload of a goal. IsCompleted is a pointer
// so an update can leave it untouched.
type GoalInput struct {
	Name         string `json:"name,omitempty"`
	TargetAmount string `json:"targetAmount,omitempty"`
	IsCompleted  *bool  `json:"isCompleted,omitempty"`
}

type Budget struct {
	ID               int64  `json:"id"`
	Balance          string `json:"balance"`
	TotalDeposits    string `json:"totalDeposits"`
	TotalWithdrawals string `json:"totalWithdrawals"`
	GoalsCount       int    `json:"goalsCount"`
	VacationMonths   int    `json:"vacationMonths,omitempty"`
}

// DefaultVacationMonths is assumed when the budget has none set.
const DefaultVacationMonths = 12

// ParseAmount reads a decimal string, accepting ',' as the decimal separator.
// Empty input reads as zero.
func ParseAmount(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, common.ErrInvalidAmount
	}
	return v, nil
}

// NormalizeAmount validates a user supplied amount and renders it the way
// the API expects it: positive, two decimals, '.' separator.
func NormalizeAmount(s string) (string, error) {
	v, err := ParseAmount(s)
	if err != nil || v <= 0 {
		return "", common.ErrInvalidAmount
	}
	return strconv.FormatFloat(v, 'f', 2, 64), nil
}

// CheckWithdrawal validates amount against an available balance.
func CheckWithdrawal(amount, balance string) (string, error) {
	norm, err := NormalizeAmount(amount)
	if err != nil {
		return "", err
	}
	a, _ := ParseAmount(norm)
	b, err := ParseAmount(balance)
	if err != nil {
		return "", err
	}
	if a > b {
		return "", common.ErrInsufficientFund
	}
	return norm, nil
}

// FormatAmount renders a decimal string with two decimals; unparsable input
// is returned as is.
func FormatAmount(s string) string {
	v, err := ParseAmount(s)
	if err != nil {
		return s
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// GoalsTotal sums the target amounts of goals, skipping unparsable ones.
func GoalsTotal(goals []Goal) float64 {
	var sum float64
	for _, g := range goals {
		if v, err := ParseAmount(g.TargetAmount); err == nil {
			sum += v
		}
	}
	return sum
}

// Coverage is the balance as a percentage of all goal targets, capped at 100.
func Coverage(b Budget, goals []Goal) float64 {
	total := GoalsTotal(goals)
	if total <= 0 {
		return 0
	}
	bal, _ := ParseAmount(b.Balance)
	return math.Min(100, bal/total*100)
}

// MonthlyPlan is how much to put aside each month to reach every goal.
type MonthlyPlan struct {
	Months    int
	Remaining float64
	Payment   float64
	Shortage  float64
}

// PlanMonthly spreads what is still missing (goal targets minus deposits so
// far) over the vacation months in whole units; the remainder that whole
// payments leave uncovered is the shortage.
func PlanMonthly(b Budget, goals []Goal) MonthlyPlan {
	months := b.VacationMonths
	if months == 0 {
		months = DefaultVacationMonths
	}
	p := MonthlyPlan{Months: months}
	if len(goals) == 0 || months <= 0 {
		return p
	}
	deposits, _ := ParseAmount(b.TotalDeposits)
	p.Remaining = math.Max(0, GoalsTotal(goals)-deposits)
	p.Payment = math.Floor(p.Remaining / float64(months))
	p.Shortage = p.Remaining - p.Payment*float64(months)
	return p
}
