package models

import (
	"github.com/google/uuid"
	"github.com/racedesk/backend/internal/finance"
	"gorm.io/gorm"
)

// RacePhotographer assigns a photographer to a race, with the cost and the
// performance numbers for that race. Costs are ARS.
//
// The full set for a race is replaced atomically on update; every row must
// already be resolved to an existing photographer when it is saved.
type RacePhotographer struct {
	DefaultModel
	Race           Race         `json:"-"`
	RaceID         uuid.UUID    `json:"raceId"`
	Photographer   Photographer `json:"-"`
	PhotographerID uuid.UUID    `json:"photographerId"`

	Name            string  `json:"name"` // denormalized from Photographer
	CostCents       int64   `json:"costCents"`
	PhotosTaken     int64   `json:"photosTaken"`
	Downloads       int64   `json:"downloads"`
	UniqueDownloads int64   `json:"uniqueDownloads"`
	HoursWorked     float64 `json:"hoursWorked"`
	Invoiced        bool    `json:"invoiced"`
	Paid            bool    `json:"paid"`
	Role            string  `json:"role"`
}

// PhotographerCostByRace sums assignment costs grouped by race, for the
// race list. One query regardless of how many races there are.
func PhotographerCostByRace(db *gorm.DB) (map[uuid.UUID]int64, error) {
	var rows []struct {
		RaceID    uuid.UUID
		CostCents int64
	}

	err := db.Model(&RacePhotographer{}).
		Select("race_id, SUM(cost_cents) AS cost_cents").
		Group("race_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	costs := make(map[uuid.UUID]int64, len(rows))
	for _, r := range rows {
		costs[r.RaceID] = r.CostCents
	}
	return costs, nil
}

// AssignmentKPIs are the per-photographer sums over all assignment rows.
type AssignmentKPIs struct {
	PhotographerID  uuid.UUID
	Races           int64
	PhotosTaken     int64
	Downloads       int64
	UniqueDownloads int64
	CostCents       int64
}

// KPIsByPhotographer sums assignment rows grouped by photographer, for the
// photographer list. One query regardless of how many photographers there
// are.
func KPIsByPhotographer(db *gorm.DB) (map[uuid.UUID]AssignmentKPIs, error) {
	var rows []AssignmentKPIs

	err := db.Model(&RacePhotographer{}).
		Select("photographer_id, COUNT(DISTINCT race_id) AS races, " +
			"SUM(photos_taken) AS photos_taken, " +
			"SUM(downloads) AS downloads, " +
			"SUM(unique_downloads) AS unique_downloads, " +
			"SUM(cost_cents) AS cost_cents").
		Group("photographer_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	kpis := make(map[uuid.UUID]AssignmentKPIs, len(rows))
	for _, r := range rows {
		kpis[r.PhotographerID] = r
	}
	return kpis, nil
}

// RankingTotals sums the performance numbers per photographer, optionally
// restricted to one race. Photographers without matching assignment rows do
// not appear.
func RankingTotals(db *gorm.DB, raceID *uuid.UUID) ([]finance.PhotographerTotals, error) {
	q := db.Model(&RacePhotographer{}).
		Select("race_photographers.photographer_id, photographers.name, " +
			"SUM(race_photographers.photos_taken) AS photos_taken, " +
			"SUM(race_photographers.downloads) AS downloads, " +
			"SUM(race_photographers.unique_downloads) AS unique_downloads").
		Joins("JOIN photographers ON photographers.id = race_photographers.photographer_id AND photographers.deleted_at IS NULL").
		Group("race_photographers.photographer_id, photographers.name")

	if raceID != nil {
		q = q.Where("race_photographers.race_id = ?", *raceID)
	}

	var totals []finance.PhotographerTotals
	err := q.Scan(&totals).Error
	if err != nil {
		return nil, err
	}

	return totals, nil
}
