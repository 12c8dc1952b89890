package v1

import (
	"errors"
	"strings"

	"github.com/racedesk/backend/internal/models"
	"github.com/racedesk/backend/internal/money"
	"gorm.io/gorm"
)

// LedgerEntryEditable are the fields clients can set on a global ledger
// entry. The amount is a free-form string fed to the money codec; on
// updates, an empty amount leaves the stored value alone.
type LedgerEntryEditable struct {
	Date          *string `json:"date" example:"2024-09-01"` // YYYY-MM-DD
	Kind          *string `json:"kind" example:"expense"`    // income, expense, transfer, opening
	TypeID        *string `json:"typeId" example:"fixed_cost"`
	Amount        *string `json:"amount" example:"150.000,00"`
	Currency      *string `json:"currency" example:"ARS"`
	Subtype       *string `json:"subtype" example:"alquiler"`
	Status        *string `json:"status" example:"pending"`
	InvoiceStatus *string `json:"invoiceStatus" example:"not_applicable"`
	Note          *string `json:"note" example:"Oficina septiembre"`
	AccountFromID *int64  `json:"accountFromId"`
	AccountToID   *int64  `json:"accountToId"`
}

// lookupLedgerType loads the referenced catalog type. A missing reference is
// a client error, not a lookup miss.
func lookupLedgerType(db *gorm.DB, id string) (models.LedgerEntryType, error) {
	var entryType models.LedgerEntryType
	err := db.First(&entryType, "id = ?", id).Error
	if errors.Is(err, models.ErrResourceNotFound) {
		return models.LedgerEntryType{}, models.ErrUnknownLedgerType
	}

	return entryType, err
}

// model returns the database resource for a global ledger entry creation.
// The group is copied from the catalog type so that entries keep their
// grouping even if the catalog changes later.
func (editable LedgerEntryEditable) model(db *gorm.DB) (models.LedgerEntry, error) {
	if editable.Date == nil {
		return models.LedgerEntry{}, errDateRequired
	}

	date, err := models.ParseDate(*editable.Date)
	if err != nil {
		return models.LedgerEntry{}, err
	}

	if editable.TypeID == nil || strings.TrimSpace(*editable.TypeID) == "" {
		return models.LedgerEntry{}, errTypeRequired
	}

	entryType, err := lookupLedgerType(db, *editable.TypeID)
	if err != nil {
		return models.LedgerEntry{}, err
	}

	return models.LedgerEntry{
		Date:   date,
		Kind:   strVal(editable.Kind),
		TypeID: entryType.ID,
		Group:  entryType.Group,

		AmountCents:   money.ParseCents(strVal(editable.Amount)),
		Currency:      strVal(editable.Currency),
		Subtype:       strVal(editable.Subtype),
		Status:        strVal(editable.Status),
		InvoiceStatus: strVal(editable.InvoiceStatus),
		Note:          strVal(editable.Note),

		AccountFromID: editable.AccountFromID,
		AccountToID:   editable.AccountToID,
	}, nil
}

// updates returns the column updates for a partial ledger entry update.
func (editable LedgerEntryEditable) updates(db *gorm.DB) (map[string]any, error) {
	u := make(map[string]any)

	if editable.Date != nil {
		date, err := models.ParseDate(*editable.Date)
		if err != nil {
			return nil, err
		}
		u["date"] = date
	}

	if editable.Kind != nil {
		switch *editable.Kind {
		case models.LedgerIncome, models.LedgerExpense, models.LedgerTransfer, models.LedgerOpening:
			u["kind"] = *editable.Kind
		default:
			return nil, models.ErrInvalidLedgerKind
		}
	}

	if editable.TypeID != nil {
		entryType, err := lookupLedgerType(db, *editable.TypeID)
		if err != nil {
			return nil, err
		}
		u["type_id"] = entryType.ID
		u["group"] = entryType.Group
	}

	if editable.Amount != nil && strings.TrimSpace(*editable.Amount) != "" {
		u["amount_cents"] = money.ParseCents(*editable.Amount)
	}

	if editable.Currency != nil {
		if currency := strings.ToUpper(strings.TrimSpace(*editable.Currency)); currency != "" {
			u["currency"] = currency
		}
	}

	set := func(column string, value *string) {
		if value != nil {
			u[column] = strings.TrimSpace(*value)
		}
	}
	set("subtype", editable.Subtype)
	set("status", editable.Status)
	set("invoice_status", editable.InvoiceStatus)
	set("note", editable.Note)

	if editable.AccountFromID != nil {
		u["account_from_id"] = *editable.AccountFromID
	}

	if editable.AccountToID != nil {
		u["account_to_id"] = *editable.AccountToID
	}

	if len(u) == 0 {
		return nil, errNoFieldsSet
	}

	return u, nil
}

type LedgerEntryTypeListResponse struct {
	Data  []models.LedgerEntryType `json:"data"`                                                          // The ledger entry type catalog
	Error *string                  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type LedgerEntryListResponse struct {
	Data  []models.LedgerEntry `json:"data"`                                                          // The global ledger entries, newest first
	Error *string              `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type LedgerEntryResponse struct {
	Data  *models.LedgerEntry `json:"data"`                                                          // The ledger entry
	Error *string             `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}
