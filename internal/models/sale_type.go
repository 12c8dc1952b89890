package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/racedesk/backend/internal/finance"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RaceSaleType is one ticket type sold for a race, e.g. "Preventa 1" or a
// photo pack. The full set for a race is replaced atomically on update.
type RaceSaleType struct {
	DefaultModel
	Race   Race      `json:"-"`
	RaceID uuid.UUID `json:"raceId"`

	Name          string           `json:"name"`
	Kind          string           `json:"kind"` // PREVENTA, PACK, UNIDAD, OTRO
	Currency      string           `json:"currency"`
	PriceCents    int64            `json:"priceCents"`
	Quantity      int64            `json:"quantity"`
	CommissionPct *decimal.Decimal `json:"commissionPct" gorm:"type:DECIMAL(8,4)"`
}

func (s *RaceSaleType) BeforeSave(_ *gorm.DB) error {
	s.Name = strings.TrimSpace(s.Name)

	if s.Currency != finance.CurrencyARS && s.Currency != finance.CurrencyUSD {
		return ErrInvalidCurrency
	}

	if s.Quantity < 0 {
		return ErrNegativeQuantity
	}

	return nil
}

// SaleRows converts sale types into the rows the finance package computes
// over.
func SaleRows(sales []RaceSaleType) []finance.SaleRow {
	rows := make([]finance.SaleRow, 0, len(sales))
	for _, s := range sales {
		rows = append(rows, finance.SaleRow{
			Currency:      s.Currency,
			PriceCents:    s.PriceCents,
			Quantity:      s.Quantity,
			CommissionPct: s.CommissionPct,
		})
	}
	return rows
}

// SalesForRaces returns the sale types for all passed races in one query,
// keyed by race.
func SalesForRaces(db *gorm.DB, raceIDs []uuid.UUID) (map[uuid.UUID][]RaceSaleType, error) {
	var sales []RaceSaleType
	err := db.Where("race_id IN ?", raceIDs).Order("created_at ASC").Find(&sales).Error
	if err != nil {
		return nil, err
	}

	byRace := make(map[uuid.UUID][]RaceSaleType, len(raceIDs))
	for _, s := range sales {
		byRace[s.RaceID] = append(byRace[s.RaceID], s)
	}
	return byRace, nil
}
