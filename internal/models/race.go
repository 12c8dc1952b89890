package models

import (
	"regexp"
	"strings"
	"time"

	"github.com/racedesk/backend/internal/finance"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Default fee percentages, substituted for omitted values when a race is
// created. Updates never substitute defaults.
var (
	DefaultPaymentPct       = decimal.NewFromInt(2)
	DefaultGrossReceiptsPct = decimal.NewFromInt(4)
	DefaultVATPct           = decimal.RequireFromString("10.5")
	DefaultProviderPct      = decimal.NewFromInt(17)
	DefaultDebitCreditPct   = decimal.RequireFromString("1.2")
)

// Race is one race event being financially tracked.
//
// The two revenue fields are recomputed from the sale type rows every time
// those are replaced.
type Race struct {
	DefaultModel
	Name         string    `json:"name"`
	Date         time.Time `json:"date"`
	Venue        string    `json:"venue"`
	Kind         string    `json:"kind"`
	Runners      int64     `json:"runners"`
	Accesses     int64     `json:"accesses"`
	BaseCurrency string    `json:"baseCurrency" gorm:"default:ARS"`

	RevenueARSCents int64 `json:"revenueARSCents"`
	RevenueUSDCents int64 `json:"revenueUSDCents"`

	PaymentPct       decimal.Decimal `json:"paymentPct" gorm:"type:DECIMAL(8,4)"`
	GrossReceiptsPct decimal.Decimal `json:"grossReceiptsPct" gorm:"type:DECIMAL(8,4)"`
	VATPct           decimal.Decimal `json:"vatPct" gorm:"type:DECIMAL(8,4)"`
	ProviderPct      decimal.Decimal `json:"providerPct" gorm:"type:DECIMAL(8,4)"`
	DebitCreditPct   decimal.Decimal `json:"debitCreditPct" gorm:"type:DECIMAL(8,4)"`
}

func (r *Race) BeforeSave(_ *gorm.DB) error {
	r.Name = strings.TrimSpace(r.Name)
	r.Venue = strings.TrimSpace(r.Venue)

	if r.BaseCurrency == "" {
		r.BaseCurrency = finance.CurrencyARS
	}

	return nil
}

// Fees returns the race's fee schedule for the financial computation.
func (r Race) Fees() finance.FeeSchedule {
	return finance.FeeSchedule{
		Payment:       r.PaymentPct,
		GrossReceipts: r.GrossReceiptsPct,
		VAT:           r.VATPct,
		Provider:      r.ProviderPct,
		DebitCredit:   r.DebitCreditPct,
	}
}

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ParseDate parses a strict YYYY-MM-DD string into a midnight-local
// timestamp. Non-calendar dates like 2023-02-31 are rejected.
func ParseDate(s string) (time.Time, error) {
	if !datePattern.MatchString(s) {
		return time.Time{}, ErrInvalidDate
	}

	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}

	return t, nil
}
