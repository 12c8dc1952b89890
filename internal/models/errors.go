package models

import "errors"

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")

	// ErrInvalidDate is returned for dates that are not real YYYY-MM-DD
	// calendar dates.
	ErrInvalidDate = errors.New("the date must be a valid date in YYYY-MM-DD format")

	// ErrInvalidCurrency is returned when a sale type uses a currency
	// other than ARS or USD.
	ErrInvalidCurrency = errors.New("the currency must be one of ARS, USD")

	// ErrNegativeQuantity is returned for sale types with a negative quantity.
	ErrNegativeQuantity = errors.New("the quantity cannot be negative")

	// ErrInvalidLedgerKind is returned when a ledger entry kind is outside
	// the fixed set.
	ErrInvalidLedgerKind = errors.New("the kind must be one of income, expense, transfer, opening")

	// ErrOpeningNotGlobal is returned for opening entries tied to a race.
	// Opening balances exist in the global ledger only.
	ErrOpeningNotGlobal = errors.New("an opening entry cannot belong to a race")

	// ErrUnknownLedgerType is returned when an entry references a ledger
	// entry type that is not in the catalog.
	ErrUnknownLedgerType = errors.New("there is no ledger entry type with this id")
)
