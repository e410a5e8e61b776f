package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/hermanas/caja/internal/domain"
	"github.com/hermanas/caja/internal/usecase"
)

// MoneyPairResponse represents a dual-currency amount.
type MoneyPairResponse struct {
	ARS decimal.Decimal `json:"ars"`
	USD decimal.Decimal `json:"usd"`
}

func moneyPair(m domain.MoneyPair) MoneyPairResponse {
	return MoneyPairResponse{ARS: m.ARS, USD: m.USD}
}

// SignedPairResponse represents a signed dual-currency balance.
type SignedPairResponse struct {
	ARS decimal.Decimal `json:"ars"`
	USD decimal.Decimal `json:"usd"`
}

func signedPair(s domain.SignedPair) SignedPairResponse {
	return SignedPairResponse{ARS: s.ARS, USD: s.USD}
}

// PaymentStatusResponse represents the installment standing of an event.
type PaymentStatusResponse struct {
	TotalBudget      decimal.Decimal `json:"total_budget"`
	AnticipoReceived decimal.Decimal `json:"anticipo_received"`
	SegundoPago      decimal.Decimal `json:"segundo_pago"`
	TercerPago       decimal.Decimal `json:"tercer_pago"`
	TotalReceived    decimal.Decimal `json:"total_received"`
	BalanceDue       decimal.Decimal `json:"balance_due"`
}

// PaymentStatusFromDomain converts a payment status to a response.
func PaymentStatusFromDomain(p domain.PaymentStatus) PaymentStatusResponse {
	return PaymentStatusResponse{
		TotalBudget:      p.TotalBudget,
		AnticipoReceived: p.AnticipoReceived,
		SegundoPago:      p.SegundoPago,
		TercerPago:       p.TercerPago,
		TotalReceived:    p.TotalReceived(),
		BalanceDue:       p.BalanceDue(),
	}
}

// AllocationResponse represents one waterfall bucket allocation.
type AllocationResponse struct {
	Bucket  string          `json:"bucket"`
	Applied decimal.Decimal `json:"applied"`
	Dropped decimal.Decimal `json:"dropped"`
}

// AllocationsFromDomain converts allocations to responses.
func AllocationsFromDomain(allocations []domain.Allocation) []AllocationResponse {
	result := make([]AllocationResponse, len(allocations))
	for i, a := range allocations {
		result[i] = AllocationResponse{
			Bucket:  string(a.Bucket),
			Applied: a.Applied,
			Dropped: a.Dropped,
		}
	}
	return result
}

// LedgerEntryResponse represents an event ledger entry.
type LedgerEntryResponse struct {
	ID              string            `json:"id"`
	Date            time.Time         `json:"date"`
	PaymentMethod   string            `json:"payment_method"`
	Detail          string            `json:"detail"`
	Income          MoneyPairResponse `json:"income"`
	Expense         MoneyPairResponse `json:"expense"`
	ProviderID      string            `json:"provider_id,omitempty"`
	CategoryID      string            `json:"category_id,omitempty"`
	IsClientPayment bool              `json:"is_client_payment"`
	CreatedBy       string            `json:"created_by,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
}

// LedgerEntryFromDomain converts a ledger entry to a response.
func LedgerEntryFromDomain(e *domain.LedgerEntry) *LedgerEntryResponse {
	return &LedgerEntryResponse{
		ID:              e.ID,
		Date:            e.Date,
		PaymentMethod:   string(e.PaymentMethod),
		Detail:          e.Detail,
		Income:          moneyPair(e.Income),
		Expense:         moneyPair(e.Expense),
		ProviderID:      e.ProviderID,
		CategoryID:      e.CategoryID,
		IsClientPayment: e.IsClientPayment,
		CreatedBy:       e.CreatedBy,
		CreatedAt:       e.CreatedAt,
	}
}

// EventResponse represents an event in API responses.
type EventResponse struct {
	ID               string                `json:"id"`
	ClientName       string                `json:"client_name"`
	ClientPhone      string                `json:"client_phone,omitempty"`
	EventType        string                `json:"event_type"`
	EventDate        time.Time             `json:"event_date"`
	TotalBudgetNoIVA decimal.Decimal       `json:"total_budget_no_iva"`
	IVAAmount        decimal.Decimal       `json:"iva_amount"`
	FinalBudget      decimal.Decimal       `json:"final_budget"`
	PaymentStatus    PaymentStatusResponse `json:"payment_status"`
	EntryCount       int                   `json:"entry_count"`
	Version          int64                 `json:"version"`
	CreatedAt        time.Time             `json:"created_at"`
	UpdatedAt        time.Time             `json:"updated_at"`
}

// EventFromDomain converts a domain event to a response.
func EventFromDomain(e *domain.Event) *EventResponse {
	return &EventResponse{
		ID:               e.ID,
		ClientName:       e.Header.ClientName,
		ClientPhone:      e.Header.ClientPhone,
		EventType:        e.Header.EventType,
		EventDate:        e.Header.EventDate,
		TotalBudgetNoIVA: e.Header.TotalBudgetNoIVA,
		IVAAmount:        e.Header.IVAAmount,
		FinalBudget:      e.Header.FinalBudget,
		PaymentStatus:    PaymentStatusFromDomain(e.PaymentStatus),
		EntryCount:       len(e.Entries),
		Version:          e.Version,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
}

// EventsFromDomain converts domain events to responses.
func EventsFromDomain(events []*domain.Event) []*EventResponse {
	result := make([]*EventResponse, len(events))
	for i, e := range events {
		result[i] = EventFromDomain(e)
	}
	return result
}

// AppendEntryResponse represents the outcome of a ledger append.
type AppendEntryResponse struct {
	Entry         *LedgerEntryResponse  `json:"entry"`
	Allocations   []AllocationResponse  `json:"allocations"`
	Balance       BalanceResponse       `json:"balance"`
	PaymentStatus PaymentStatusResponse `json:"payment_status"`
}

// AppendEntryFromResult converts a use case append result to a response.
func AppendEntryFromResult(r *usecase.AppendLedgerEntryResult) *AppendEntryResponse {
	return &AppendEntryResponse{
		Entry:         LedgerEntryFromDomain(r.Entry),
		Allocations:   AllocationsFromDomain(r.Allocations),
		Balance:       BalanceFromDomain(r.Balance),
		PaymentStatus: PaymentStatusFromDomain(r.PaymentStatus),
	}
}

// BalanceResponse represents a derived ledger balance.
type BalanceResponse struct {
	TotalIncome  MoneyPairResponse  `json:"total_income"`
	TotalExpense MoneyPairResponse  `json:"total_expense"`
	Net          SignedPairResponse `json:"net"`
}

// BalanceFromDomain converts a balance to a response.
func BalanceFromDomain(b domain.Balance) BalanceResponse {
	return BalanceResponse{
		TotalIncome:  moneyPair(b.TotalIncome),
		TotalExpense: moneyPair(b.TotalExpense),
		Net:          signedPair(b.Net),
	}
}

// EventSummaryResponse represents an event financial summary.
type EventSummaryResponse struct {
	EventID       string                `json:"event_id"`
	Balance       BalanceResponse       `json:"balance"`
	PaymentStatus PaymentStatusResponse `json:"payment_status"`
	BalanceDue    decimal.Decimal       `json:"balance_due"`
	EntryCount    int                   `json:"entry_count"`
}

// EventSummaryFromUseCase converts a use case summary to a response.
func EventSummaryFromUseCase(s *usecase.EventSummary) *EventSummaryResponse {
	return &EventSummaryResponse{
		EventID:       s.EventID,
		Balance:       BalanceFromDomain(s.Balance),
		PaymentStatus: PaymentStatusFromDomain(s.PaymentStatus),
		BalanceDue:    s.BalanceDue,
		EntryCount:    s.EntryCount,
	}
}

// ApprovalRecordResponse represents one role's sign-off.
type ApprovalRecordResponse struct {
	Role       string    `json:"role"`
	ApprovedBy string    `json:"approved_by"`
	ApprovedAt time.Time `json:"approved_at"`
}

// SaleDetailsResponse represents shop-sale fields of a register entry.
type SaleDetailsResponse struct {
	SKU        string          `json:"sku"`
	Quantity   int             `json:"quantity"`
	Client     string          `json:"client,omitempty"`
	Provider   string          `json:"provider,omitempty"`
	ProviderID string          `json:"provider_id,omitempty"`
	CostARS    decimal.Decimal `json:"cost_ars"`
}

// RegisterEntryResponse represents a cash register entry.
type RegisterEntryResponse struct {
	ID             string                   `json:"id"`
	Register       string                   `json:"register"`
	Date           time.Time                `json:"date"`
	Description    string                   `json:"description"`
	Income         MoneyPairResponse        `json:"income"`
	Expense        MoneyPairResponse        `json:"expense"`
	ApprovalStatus string                   `json:"approval_status"`
	Approvals      []ApprovalRecordResponse `json:"approvals,omitempty"`
	Sale           *SaleDetailsResponse     `json:"sale,omitempty"`
	CreatedBy      string                   `json:"created_by,omitempty"`
	CreatedAt      time.Time                `json:"created_at"`
	UpdatedAt      time.Time                `json:"updated_at"`
	Version        int64                    `json:"version"`
}

// RegisterEntryFromDomain converts a register entry to a response.
func RegisterEntryFromDomain(e *domain.CashRegisterEntry) *RegisterEntryResponse {
	resp := &RegisterEntryResponse{
		ID:             e.ID,
		Register:       string(e.Register),
		Date:           e.Date,
		Description:    e.Description,
		Income:         moneyPair(e.Income),
		Expense:        moneyPair(e.Expense),
		ApprovalStatus: string(e.ApprovalStatus),
		CreatedBy:      e.CreatedBy,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
		Version:        e.Version,
	}

	for _, role := range []domain.ApproverRole{domain.RoleFede, domain.RoleSisters} {
		if record, ok := e.Approvals[role]; ok {
			resp.Approvals = append(resp.Approvals, ApprovalRecordResponse{
				Role:       string(role),
				ApprovedBy: record.ApprovedBy,
				ApprovedAt: record.ApprovedAt,
			})
		}
	}

	if e.Sale != nil {
		resp.Sale = &SaleDetailsResponse{
			SKU:        e.Sale.SKU,
			Quantity:   e.Sale.Quantity,
			Client:     e.Sale.Client,
			Provider:   e.Sale.Provider,
			ProviderID: e.Sale.ProviderID,
			CostARS:    e.Sale.CostARS,
		}
	}

	return resp
}

// RegisterEntriesFromDomain converts register entries to responses.
func RegisterEntriesFromDomain(entries []*domain.CashRegisterEntry) []*RegisterEntryResponse {
	result := make([]*RegisterEntryResponse, len(entries))
	for i, e := range entries {
		result[i] = RegisterEntryFromDomain(e)
	}
	return result
}

// RegisterSummaryResponse represents a register balance summary.
type RegisterSummaryResponse struct {
	Register     string             `json:"register"`
	TotalIncome  MoneyPairResponse  `json:"total_income"`
	TotalExpense MoneyPairResponse  `json:"total_expense"`
	Net          SignedPairResponse `json:"net"`
	EntryCount   int                `json:"entry_count"`
	PendingCount int                `json:"pending_count"`
}

// RegisterSummaryFromUseCase converts a use case summary to a response.
func RegisterSummaryFromUseCase(s *usecase.RegisterSummary) *RegisterSummaryResponse {
	return &RegisterSummaryResponse{
		Register:     string(s.Register),
		TotalIncome:  moneyPair(s.TotalIncome),
		TotalExpense: moneyPair(s.TotalExpense),
		Net:          signedPair(s.Net),
		EntryCount:   s.EntryCount,
		PendingCount: s.PendingCount,
	}
}

// CashCountResponse represents a cash count in API responses.
type CashCountResponse struct {
	ID                string              `json:"id"`
	ScopeRef          string              `json:"scope_ref"`
	CountDate         time.Time           `json:"count_date"`
	CountType         string              `json:"count_type"`
	Counted           MoneyPairResponse   `json:"counted"`
	Expected          *MoneyPairResponse  `json:"expected,omitempty"`
	Discrepancy       *SignedPairResponse `json:"discrepancy,omitempty"`
	DiscrepancyPctARS *decimal.Decimal    `json:"discrepancy_pct_ars,omitempty"`
	DiscrepancyPctUSD *decimal.Decimal    `json:"discrepancy_pct_usd,omitempty"`
	Status            string              `json:"status"`
	Notes             string              `json:"notes,omitempty"`
	CreatedBy         string              `json:"created_by,omitempty"`
	CreatedAt         time.Time           `json:"created_at"`
}

// CashCountFromDomain converts a cash count to a response.
func CashCountFromDomain(c *domain.CashCount) *CashCountResponse {
	resp := &CashCountResponse{
		ID:                c.ID,
		ScopeRef:          c.ScopeRef,
		CountDate:         c.CountDate,
		CountType:         string(c.CountType),
		Counted:           moneyPair(c.Counted),
		DiscrepancyPctARS: c.DiscrepancyPctARS,
		DiscrepancyPctUSD: c.DiscrepancyPctUSD,
		Status:            string(c.Status),
		Notes:             c.Notes,
		CreatedBy:         c.CreatedBy,
		CreatedAt:         c.CreatedAt,
	}

	if c.Expected != nil {
		expected := moneyPair(*c.Expected)
		resp.Expected = &expected
	}
	if c.Discrepancy != nil {
		discrepancy := signedPair(*c.Discrepancy)
		resp.Discrepancy = &discrepancy
	}

	return resp
}

// CashCountsFromDomain converts cash counts to responses.
func CashCountsFromDomain(counts []*domain.CashCount) []*CashCountResponse {
	result := make([]*CashCountResponse, len(counts))
	for i, c := range counts {
		result[i] = CashCountFromDomain(c)
	}
	return result
}

// UserResponse represents a user in API responses.
type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name,omitempty"`
	Role     string `json:"role"`
	Active   bool   `json:"active"`
}

// UserFromDomain converts a user to a response.
func UserFromDomain(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:       u.ID,
		Username: u.Username,
		Name:     u.Name,
		Role:     string(u.Role),
		Active:   u.Active,
	}
}

// LoginResponse represents a login response.
type LoginResponse struct {
	Token string        `json:"access_token"`
	Type  string        `json:"token_type"`
	User  *UserResponse `json:"user"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
