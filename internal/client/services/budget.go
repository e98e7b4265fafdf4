package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/jobtracker/internal/client/models"
	"github.com/dmitrijs2005/jobtracker/internal/common"
)

type BudgetService interface {
	Get(ctx context.Context) (*models.Budget, error)
	Transactions(ctx context.Context) ([]models.Transaction, error)
	AddTransaction(ctx context.Context, typ models.TransactionType, amount, description string) (*models.Transaction, error)
	Goals(ctx context.Context) ([]models.Goal, error)
	AddGoal(ctx context.Context, name, targetAmount string) (*models.Goal, error)
	UpdateGoal(ctx context.Context, id int64, in models.GoalInput) (*models.Goal, error)
	DeleteGoal(ctx context.Context, id int64) error
	UpdateVacationMonths(ctx context.Context, months int) (*models.Budget, error)
}

type budgetService struct {
	api API
}

func NewBudgetService(api API) BudgetService {
	return &budgetService{api: api}
}

func (s *budgetService) Get(ctx context.Context) (*models.Budget, error) {
	b, err := decode[models.Budget](s.api.Get(ctx, "/budget"))
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *budgetService) Transactions(ctx context.Context) ([]models.Transaction, error) {
	return decode[[]models.Transaction](s.api.Get(ctx, "/budget/transactions"))
}

func (s *budgetService) AddTransaction(ctx context.Context, typ models.TransactionType, amount, description string) (*models.Transaction, error) {
	if !typ.Valid() {
		return nil, common.ErrInvalidTxType
	}
	norm, err := models.NormalizeAmount(amount)
	if err != nil {
		return nil, err
	}
	tx, err := decode[models.Transaction](s.api.Post(ctx, "/budget/transactions", models.TransactionInput{
		Type:        typ,
		Amount:      norm,
		Description: strings.TrimSpace(description),
	}))
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

func (s *budgetService) Goals(ctx context.Context) ([]models.Goal, error) {
	return decode[[]models.Goal](s.api.Get(ctx, "/budget/goals"))
}

func (s *budgetService) AddGoal(ctx context.Context, name, targetAmount string) (*models.Goal, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("goal %w", common.ErrMissingName)
	}
	norm, err := models.NormalizeAmount(targetAmount)
	if err != nil {
		return nil, err
	}
	g, err := decode[models.Goal](s.api.Post(ctx, "/budget/goals", models.GoalInput{Name: name, TargetAmount: norm}))
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (s *budgetService) UpdateGoal(ctx context.Context, id int64, in models.GoalInput) (*models.Goal, error) {
	if in.TargetAmount != "" {
		norm, err := models.NormalizeAmount(in.TargetAmount)
		if err != nil {
			return nil, err
		}
		in.TargetAmount = norm
	}
	in.Name = strings.TrimSpace(in.Name)
	g, err := decode[models.Goal](s.api.Put(ctx, fmt.Sprintf("/budget/goals/%d", id), in))
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (s *budgetService) DeleteGoal(ctx context.Context, id int64) error {
	_, err := s.api.Delete(ctx, fmt.Sprintf("/budget/goals/%d", id))
	return err
}

func (s *budgetService) UpdateVacationMonths(ctx context.Context, months int) (*models.Budget, error) {
	if months <= 0 {
		return nil, common.ErrInvalidMonths
	}
	b, err := decode[models.Budget](s.api.Put(ctx, "/budget/vacation-months", map[string]int{"vacationMonths": months}))
	if err != nil {
		return nil, err
	}
	return &b, nil
}
