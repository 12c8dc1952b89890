package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/racedesk/backend/internal/finance"
	"gorm.io/gorm"
)

// Ledger entry kinds.
const (
	LedgerIncome   = "income"
	LedgerExpense  = "expense"
	LedgerTransfer = "transfer"
	LedgerOpening  = "opening" // global ledger only
)

// Ledger entry status defaults.
const (
	StatusPending        = "pending"
	InvoiceNotApplicable = "not_applicable"
	LedgerEntryTypeScope = "global"
)

// LedgerEntryType is a catalog entry classifying ledger movements. The
// catalog is seeded at startup, never on a read path.
type LedgerEntryType struct {
	ID    string `json:"id" gorm:"primaryKey"`
	Name  string `json:"name"`
	Group string `json:"group"`
	Scope string `json:"scope"`
	Timestamps
}

// defaultLedgerTypes is the fixed global catalog.
var defaultLedgerTypes = []LedgerEntryType{
	{ID: "fixed_cost", Name: "Fixed cost", Group: "fixed", Scope: LedgerEntryTypeScope},
	{ID: "operating_cost", Name: "Operating cost", Group: "variable", Scope: LedgerEntryTypeScope},
	{ID: "investment", Name: "Investment", Group: "investment", Scope: LedgerEntryTypeScope},
	{ID: "partner_advance", Name: "Partner advance", Group: "debt", Scope: LedgerEntryTypeScope},
	{ID: "debt", Name: "Debt / loan", Group: "debt", Scope: LedgerEntryTypeScope},
}

// SeedLedgerTypes creates the global ledger type catalog. It is idempotent
// and is called once at startup so that reads never have to create rows.
func SeedLedgerTypes(db *gorm.DB) error {
	for _, t := range defaultLedgerTypes {
		err := db.Where(LedgerEntryType{ID: t.ID}).
			Assign(LedgerEntryType{Name: t.Name, Group: t.Group, Scope: t.Scope}).
			FirstOrCreate(&LedgerEntryType{}).Error
		if err != nil {
			return err
		}
	}

	return nil
}

// LedgerEntry is one cash movement. Entries with a RaceID belong to that
// race's accounting and can only be changed there; entries without one make
// up the global ledger.
type LedgerEntry struct {
	DefaultModel
	Race   *Race      `json:"-"`
	RaceID *uuid.UUID `json:"raceId"`

	Date time.Time `json:"date"`
	Kind string    `json:"kind"`

	Type   LedgerEntryType `json:"type"`
	TypeID string          `json:"typeId"`
	Group  string          `json:"group"` // copied from the type on write

	AmountCents   int64  `json:"amountCents"`
	Currency      string `json:"currency"`
	Subtype       string `json:"subtype"`
	Status        string `json:"status"`
	InvoiceStatus string `json:"invoiceStatus"`
	Note          string `json:"note"`

	AccountFromID *int64 `json:"accountFromId"`
	AccountToID   *int64 `json:"accountToId"`
}

// Global reports whether the entry belongs to the global ledger.
func (e LedgerEntry) Global() bool {
	return e.RaceID == nil
}

// BeforeSave validates and normalizes the entry: currency is upper-cased
// and defaults to the home currency, the kind must be in the fixed set, and
// opening entries must be global.
func (e *LedgerEntry) BeforeSave(_ *gorm.DB) error {
	e.Currency = strings.ToUpper(strings.TrimSpace(e.Currency))
	if e.Currency == "" {
		e.Currency = finance.CurrencyARS
	}

	e.Note = strings.TrimSpace(e.Note)
	e.Subtype = strings.TrimSpace(e.Subtype)

	if e.Status == "" {
		e.Status = StatusPending
	}
	if e.InvoiceStatus == "" {
		e.InvoiceStatus = InvoiceNotApplicable
	}

	switch e.Kind {
	case "", LedgerIncome, LedgerExpense, LedgerTransfer:
	case LedgerOpening:
		if !e.Global() {
			return ErrOpeningNotGlobal
		}
	default:
		return ErrInvalidLedgerKind
	}

	return nil
}
