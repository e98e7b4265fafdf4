package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/jobtracker/internal/client/models"
)

type SavingsService interface {
	Get(ctx context.Context) (*models.SavingsBudget, error)
	Stats(ctx context.Context) (*models.SavingsStats, error)
	Transactions(ctx context.Context) ([]models.SavingsTransaction, error)
	AddEnergyDrink(ctx context.Context) (*models.SavingsBudget, error)
	Withdraw(ctx context.Context, amount, description string) (*models.SavingsBudget, error)
	TransferToVacation(ctx context.Context, amount string) (*models.TransferResult, error)
	DeleteTransaction(ctx context.Context, id int64) error
}

type savingsService struct {
	api API
}

func NewSavingsService(api API) SavingsService {
	return &savingsService{api: api}
}

func (s *savingsService) Get(ctx context.Context) (*models.SavingsBudget, error) {
	b, err := decode[models.SavingsBudget](s.api.Get(ctx, "/savings"))
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *savingsService) Stats(ctx context.Context) (*models.SavingsStats, error) {
	st, err := decode[models.SavingsStats](s.api.Get(ctx, "/savings/stats"))
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func (s *savingsService) Transactions(ctx context.Context) ([]models.SavingsTransaction, error) {
	return decode[[]models.SavingsTransaction](s.api.Get(ctx, "/savings/transactions"))
}

// AddEnergyDrink records the fixed amount saved by skipping one energy drink;
// the API decides the amount.
func (s *savingsService) AddEnergyDrink(ctx context.Context) (*models.SavingsBudget, error) {
	b, err := decode[models.SavingsBudget](s.api.Post(ctx, "/savings/energy-drink", nil))
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *savingsService) Withdraw(ctx context.Context, amount, description string) (*models.SavingsBudget, error) {
	norm, err := models.NormalizeAmount(amount)
	if err != nil {
		return nil, err
	}
	body := struct {
		Amount      string `json:"amount"`
		Description string `json:"description,omitempty"`
	}{norm, strings.TrimSpace(description)}

	b, err := decode[models.SavingsBudget](s.api.Post(ctx, "/savings/withdrawal", body))
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *savingsService) TransferToVacation(ctx context.Context, amount string) (*models.TransferResult, error) {
	norm, err := models.NormalizeAmount(amount)
	if err != nil {
		return nil, err
	}
	r, err := decode[models.TransferResult](s.api.Post(ctx, "/savings/transfer-to-vacation", map[string]string{"amount": norm}))
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *savingsService) DeleteTransaction(ctx context.Context, id int64) error {
	_, err := s.api.Delete(ctx, fmt.Sprintf("/savings/transactions/%d", id))
	return err
}
