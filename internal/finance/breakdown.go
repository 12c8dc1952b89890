// Package finance computes the derived financial figures for races and the
// photographer ranking. Everything in here is a pure function over rows the
// caller already fetched: no I/O, no shared state.
package finance

import (
	"github.com/racedesk/backend/internal/money"
	"github.com/shopspring/decimal"
)

// CurrencyARS and CurrencyUSD are the only currencies sale types can use.
const (
	CurrencyARS = "ARS"
	CurrencyUSD = "USD"
)

// SaleRow is the slice of a sale type row the computation needs.
type SaleRow struct {
	Currency      string
	PriceCents    int64
	Quantity      int64
	CommissionPct *decimal.Decimal
}

// FeeSchedule holds the five percentage fees of a race.
//
// All five apply to ARS revenue only. Fees are charged in the domestic
// processing currency, USD revenue is never a fee base.
type FeeSchedule struct {
	Payment       decimal.Decimal // payment processor
	GrossReceipts decimal.Decimal // provincial gross receipts tax
	VAT           decimal.Decimal
	Provider      decimal.Decimal
	DebitCredit   decimal.Decimal // debit/credit card tax
}

// Breakdown is the full cost breakdown for one race. Every intermediate
// figure is exposed so clients can render the whole table, not just totals.
type Breakdown struct {
	RevenueARSCents int64 `json:"revenueARSCents"`
	RevenueUSDCents int64 `json:"revenueUSDCents"`

	PhotographerCostCents  int64 `json:"photographerCostCents"`
	PaymentCostCents       int64 `json:"paymentCostCents"`
	GrossReceiptsCostCents int64 `json:"grossReceiptsCostCents"`
	VATCostCents           int64 `json:"vatCostCents"`
	ProviderCostCents      int64 `json:"providerCostCents"`
	DebitCreditCostCents   int64 `json:"debitCreditCostCents"`

	// The pre/post-event organizer commissions are no longer charged.
	// They stay in the payload as zeroes so existing clients keep working.
	OrganizerPreCostCents  int64 `json:"organizerPreCostCents"`
	OrganizerPostCostCents int64 `json:"organizerPostCostCents"`

	CommissionARSCents int64 `json:"commissionARSCents"`
	CommissionUSDCents int64 `json:"commissionUSDCents"`
	ExpenseCostCents   int64 `json:"expenseCostCents"`

	TotalCostARSCents int64 `json:"totalCostARSCents"`
	TotalCostUSDCents int64 `json:"totalCostUSDCents"`
	NetARSCents       int64 `json:"netARSCents"`
	NetUSDCents       int64 `json:"netUSDCents"`

	// Legacy single-currency figures, kept for the current frontend.
	CommissionCostCents int64 `json:"commissionCostCents"` // ARS + USD commissions
	TotalCostCents      int64 `json:"totalCostCents"`      // same as TotalCostARSCents
	NetCents            int64 `json:"netCents"`            // same as NetARSCents

	TotalOrders int64 `json:"totalOrders"`
}

// Revenue sums the sale subtotals per currency.
func Revenue(sales []SaleRow) (ars, usd int64) {
	for _, s := range sales {
		subtotal := s.PriceCents * s.Quantity
		if s.Currency == CurrencyUSD {
			usd += subtotal
		} else {
			ars += subtotal
		}
	}
	return ars, usd
}

// commissions returns the order count and the per-currency sale type
// commissions. Rows without a commission percentage still count as orders.
func commissions(sales []SaleRow) (orders, ars, usd int64) {
	for _, s := range sales {
		orders += s.Quantity

		if s.CommissionPct == nil {
			continue
		}

		subtotal := s.PriceCents * s.Quantity
		c := money.ApplyPercent(subtotal, *s.CommissionPct)
		if s.Currency == CurrencyUSD {
			usd += c
		} else {
			ars += c
		}
	}
	return orders, ars, usd
}

// Compute derives the complete breakdown for one race from its sale rows,
// its summed photographer cost, its summed specific expenses and its fee
// schedule. Both the detail endpoint and the race list use this, so the two
// always agree on every figure.
func Compute(sales []SaleRow, photographerCostCents, expenseCostCents int64, fees FeeSchedule) Breakdown {
	revenueARS, revenueUSD := Revenue(sales)
	orders, commissionARS, commissionUSD := commissions(sales)

	b := Breakdown{
		RevenueARSCents: revenueARS,
		RevenueUSDCents: revenueUSD,

		PhotographerCostCents:  photographerCostCents,
		PaymentCostCents:       money.ApplyPercent(revenueARS, fees.Payment),
		GrossReceiptsCostCents: money.ApplyPercent(revenueARS, fees.GrossReceipts),
		VATCostCents:           money.ApplyPercent(revenueARS, fees.VAT),
		ProviderCostCents:      money.ApplyPercent(revenueARS, fees.Provider),
		DebitCreditCostCents:   money.ApplyPercent(revenueARS, fees.DebitCredit),

		CommissionARSCents: commissionARS,
		CommissionUSDCents: commissionUSD,
		ExpenseCostCents:   expenseCostCents,

		TotalOrders: orders,
	}

	b.TotalCostARSCents = b.PhotographerCostCents +
		b.PaymentCostCents +
		b.GrossReceiptsCostCents +
		b.VATCostCents +
		b.ProviderCostCents +
		b.DebitCreditCostCents +
		b.CommissionARSCents +
		b.ExpenseCostCents
	b.TotalCostUSDCents = b.CommissionUSDCents

	b.NetARSCents = b.RevenueARSCents - b.TotalCostARSCents
	b.NetUSDCents = b.RevenueUSDCents - b.TotalCostUSDCents

	b.CommissionCostCents = b.CommissionARSCents + b.CommissionUSDCents
	b.TotalCostCents = b.TotalCostARSCents
	b.NetCents = b.NetARSCents

	return b
}
