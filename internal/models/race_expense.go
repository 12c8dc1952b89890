package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RaceExpense is a specific expense of one race, e.g. accreditation or
// transport. Amounts are ARS. The full set for a race is replaced
// atomically on update.
type RaceExpense struct {
	DefaultModel
	Race   Race      `json:"-"`
	RaceID uuid.UUID `json:"raceId"`

	Name        string `json:"name"`
	Kind        string `json:"kind"`
	AmountCents int64  `json:"amountCents"`
	Paid        bool   `json:"paid"`
	Invoiced    bool   `json:"invoiced"`
}

func (e *RaceExpense) BeforeSave(_ *gorm.DB) error {
	e.Name = strings.TrimSpace(e.Name)
	return nil
}

// ExpenseSumByRace sums specific expenses grouped by race, for the race
// list.
func ExpenseSumByRace(db *gorm.DB) (map[uuid.UUID]int64, error) {
	var rows []struct {
		RaceID      uuid.UUID
		AmountCents int64
	}

	err := db.Model(&RaceExpense{}).
		Select("race_id, SUM(amount_cents) AS amount_cents").
		Group("race_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	sums := make(map[uuid.UUID]int64, len(rows))
	for _, r := range rows {
		sums[r.RaceID] = r.AmountCents
	}
	return sums, nil
}
