package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/hermanas/caja/internal/domain"
	"github.com/hermanas/caja/internal/usecase"
)

// CreateEventRequest represents a request to create an event.
type CreateEventRequest struct {
	ClientName       string          `json:"client_name"`
	ClientPhone      string          `json:"client_phone,omitempty"`
	EventType        string          `json:"event_type"`
	EventDate        time.Time       `json:"event_date"`
	TotalBudgetNoIVA decimal.Decimal `json:"total_budget_no_iva"`
	IVAAmount        decimal.Decimal `json:"iva_amount"`
	FinalBudget      decimal.Decimal `json:"final_budget"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateEventRequest) ToUseCaseInput() usecase.CreateEventInput {
	return usecase.CreateEventInput{
		ClientName:       r.ClientName,
		ClientPhone:      r.ClientPhone,
		EventType:        r.EventType,
		EventDate:        r.EventDate,
		TotalBudgetNoIVA: r.TotalBudgetNoIVA,
		IVAAmount:        r.IVAAmount,
		FinalBudget:      r.FinalBudget,
	}
}

// AppendLedgerEntryRequest represents a request to append a movement to
// an event's ledger.
type AppendLedgerEntryRequest struct {
	Date            time.Time       `json:"date"`
	PaymentMethod   string          `json:"payment_method"`
	Detail          string          `json:"detail"`
	IncomeARS       decimal.Decimal `json:"income_ars"`
	IncomeUSD       decimal.Decimal `json:"income_usd"`
	ExpenseARS      decimal.Decimal `json:"expense_ars"`
	ExpenseUSD      decimal.Decimal `json:"expense_usd"`
	ProviderID      string          `json:"provider_id,omitempty"`
	CategoryID      string          `json:"category_id,omitempty"`
	IsClientPayment bool            `json:"is_client_payment"`
}

// ToUseCaseInput converts to use case input.
func (r *AppendLedgerEntryRequest) ToUseCaseInput(eventID string, actor domain.Actor) (usecase.AppendLedgerEntryInput, error) {
	income, err := domain.NewMoneyPair(r.IncomeARS, r.IncomeUSD)
	if err != nil {
		return usecase.AppendLedgerEntryInput{}, err
	}
	expense, err := domain.NewMoneyPair(r.ExpenseARS, r.ExpenseUSD)
	if err != nil {
		return usecase.AppendLedgerEntryInput{}, err
	}

	return usecase.AppendLedgerEntryInput{
		EventID:         eventID,
		Date:            r.Date,
		PaymentMethod:   domain.PaymentMethod(r.PaymentMethod),
		Detail:          r.Detail,
		Income:          income,
		Expense:         expense,
		ProviderID:      r.ProviderID,
		CategoryID:      r.CategoryID,
		IsClientPayment: r.IsClientPayment,
		Actor:           actor,
	}, nil
}

// CreateRegisterEntryRequest represents a request to record a cash
// register movement.
type CreateRegisterEntryRequest struct {
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	IncomeARS   decimal.Decimal `json:"income_ars"`
	IncomeUSD   decimal.Decimal `json:"income_usd"`
	ExpenseARS  decimal.Decimal `json:"expense_ars"`
	ExpenseUSD  decimal.Decimal `json:"expense_usd"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateRegisterEntryRequest) ToUseCaseInput(register domain.RegisterKind, actor domain.Actor) (usecase.CreateEntryInput, error) {
	income, err := domain.NewMoneyPair(r.IncomeARS, r.IncomeUSD)
	if err != nil {
		return usecase.CreateEntryInput{}, err
	}
	expense, err := domain.NewMoneyPair(r.ExpenseARS, r.ExpenseUSD)
	if err != nil {
		return usecase.CreateEntryInput{}, err
	}

	return usecase.CreateEntryInput{
		Register:    register,
		Date:        r.Date,
		Description: r.Description,
		Income:      income,
		Expense:     expense,
		Actor:       actor,
	}, nil
}

// RecordSaleRequest represents a request to record a shop sale.
type RecordSaleRequest struct {
	Date       time.Time       `json:"date"`
	SKU        string          `json:"sku"`
	Quantity   int             `json:"quantity"`
	Client     string          `json:"client,omitempty"`
	Provider   string          `json:"provider,omitempty"`
	ProviderID string          `json:"provider_id,omitempty"`
	CostARS    decimal.Decimal `json:"cost_ars"`
	SoldARS    decimal.Decimal `json:"sold_amount_ars"`
	SoldUSD    decimal.Decimal `json:"sold_amount_usd"`
}

// ToUseCaseInput converts to use case input.
func (r *RecordSaleRequest) ToUseCaseInput(actor domain.Actor) usecase.RecordSaleInput {
	return usecase.RecordSaleInput{
		Date:       r.Date,
		SKU:        r.SKU,
		Quantity:   r.Quantity,
		Client:     r.Client,
		Provider:   r.Provider,
		ProviderID: r.ProviderID,
		CostARS:    r.CostARS,
		SoldARS:    r.SoldARS,
		SoldUSD:    r.SoldUSD,
		Actor:      actor,
	}
}

// ApproveEntryRequest represents an approval action on a register entry.
type ApproveEntryRequest struct {
	Role string `json:"role"`
}

// CreateCashCountRequest represents a request to record a cash count.
type CreateCashCountRequest struct {
	Register    string           `json:"register,omitempty"`
	ScopeRef    string           `json:"scope_ref"`
	CountDate   time.Time        `json:"count_date"`
	CountType   string           `json:"count_type"`
	CountedARS  decimal.Decimal  `json:"cash_ars_counted"`
	CountedUSD  decimal.Decimal  `json:"cash_usd_counted"`
	ExpectedARS *decimal.Decimal `json:"expected_ars,omitempty"`
	ExpectedUSD *decimal.Decimal `json:"expected_usd,omitempty"`
	PeriodFrom  time.Time        `json:"period_from,omitempty"`
	PeriodTo    time.Time        `json:"period_to,omitempty"`
	Notes       string           `json:"notes,omitempty"`
}

// ToUseCaseInput converts to use case input. An expected total is taken
// as an override only when at least one expected field is present.
func (r *CreateCashCountRequest) ToUseCaseInput(actor domain.Actor) (usecase.CreateCashCountInput, error) {
	counted, err := domain.NewMoneyPair(r.CountedARS, r.CountedUSD)
	if err != nil {
		return usecase.CreateCashCountInput{}, err
	}

	input := usecase.CreateCashCountInput{
		Register:   domain.RegisterKind(r.Register),
		ScopeRef:   r.ScopeRef,
		CountDate:  r.CountDate,
		CountType:  domain.CountType(r.CountType),
		Counted:    counted,
		PeriodFrom: r.PeriodFrom,
		PeriodTo:   r.PeriodTo,
		Notes:      r.Notes,
		Actor:      actor,
	}

	if r.ExpectedARS != nil || r.ExpectedUSD != nil {
		ars := decimal.Zero
		usd := decimal.Zero
		if r.ExpectedARS != nil {
			ars = *r.ExpectedARS
		}
		if r.ExpectedUSD != nil {
			usd = *r.ExpectedUSD
		}
		expected, err := domain.NewMoneyPair(ars, usd)
		if err != nil {
			return usecase.CreateCashCountInput{}, err
		}
		input.Expected = &expected
	}

	return input, nil
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CreateUserRequest represents a request to create a user.
type CreateUserRequest struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateUserRequest) ToUseCaseInput() usecase.CreateUserInput {
	return usecase.CreateUserInput{
		Username: r.Username,
		Name:     r.Name,
		Password: r.Password,
		Role:     domain.Role(r.Role),
	}
}
