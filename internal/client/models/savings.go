package models

type SavingsBudget struct {
	ID               int64  `json:"id"`
	Balance          string `json:"balance"`
	TotalDeposits    string `json:"totalDeposits"`
	TotalWithdrawals string `json:"totalWithdrawals"`
}

type SavingsTransaction struct {
	ID          int64           `json:"id"`
	Type        TransactionType `json:"type"`
	Amount      string          `json:"amount"`
	Description string          `json:"description,omitempty"`
	CreatedAt   string          `json:"createdAt"`
}

type SavingsStats struct {
	Balance          string `json:"balance"`
	TotalDeposits    string `json:"totalDeposits"`
	TotalWithdrawals string `json:"totalWithdrawals"`
	Weekly           string `json:"weekly"`
	Monthly          string `json:"monthly"`
	Yearly           string `json:"yearly"`
}

// TransferResult is the answer of a savings to vacation transfer.
type TransferResult struct {
	SavingsBudget  SavingsBudget `json:"savingsBudget"`
	VacationBudget Budget        `json:"vacationBudget"`
}
