package v1

import (
	"time"

	"github.com/racedesk/backend/internal/models"
)

// BackupData is the full database content. The field order is the restore
// order: parents come before the rows referencing them.
type BackupData struct {
	Photographers    []models.Photographer    `json:"photographers"`
	Races            []models.Race            `json:"races"`
	LedgerEntryTypes []models.LedgerEntryType `json:"ledgerEntryTypes"`

	SaleTypes         []models.RaceSaleType     `json:"saleTypes"`
	RacePhotographers []models.RacePhotographer `json:"racePhotographers"`
	Expenses          []models.RaceExpense      `json:"expenses"`
	LedgerEntries     []models.LedgerEntry      `json:"ledgerEntries"`
}

type ExportResponse struct {
	Version      string      `json:"version" example:"1.4.0"`                                       // The backend version that created the export
	CreationTime time.Time   `json:"creationTime" example:"2024-09-01T10:11:12.691561Z"`            // When the export was created
	Data         *BackupData `json:"data"`                                                          // The exported resources
	Error        *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// ImportRequest is the body for a restore. It has the same shape as an
// export, so a dump file can be posted back unchanged.
type ImportRequest struct {
	Data BackupData `json:"data"`
}
