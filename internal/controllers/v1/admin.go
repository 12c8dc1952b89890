package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/racedesk/backend/internal/httputil"
	"github.com/racedesk/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var backendVersion string

// RegisterAdminRoutes registers the routes for exports and restores with
// the RouterGroup that is passed.
func RegisterAdminRoutes(r *gin.RouterGroup, version string) {
	backendVersion = version

	{
		r.OPTIONS("/export", OptionsExport)
		r.GET("/export", GetExport)

		r.OPTIONS("/import", OptionsImport)
		r.POST("/import", ImportBackup)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Admin
// @Success		204
// @Router			/v1/admin/export [options]
func OptionsExport(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Admin
// @Success		204
// @Router			/v1/admin/import [options]
func OptionsImport(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Export
// @Description	Exports all resources for the instance
// @Tags			Admin
// @Produce		json
// @Success		200	{object}	ExportResponse
// @Failure		500	{object}	ExportResponse
// @Router			/v1/admin/export [get]
func GetExport(c *gin.Context) {
	var data BackupData

	for _, dest := range []any{
		&data.Photographers,
		&data.Races,
		&data.LedgerEntryTypes,
		&data.SaleTypes,
		&data.RacePhotographers,
		&data.Expenses,
		&data.LedgerEntries,
	} {
		err := models.DB.Order("created_at ASC").Find(dest).Error
		if err != nil {
			s := err.Error()
			c.JSON(status(err), ExportResponse{Error: &s})
			return
		}
	}

	c.JSON(http.StatusOK, ExportResponse{
		Version:      backendVersion,
		CreationTime: time.Now(),
		Data:         &data,
	})
}

// @Summary		Import
// @Description	Wipes the instance and restores a previously exported backup. Resource IDs are kept.
// @Tags			Admin
// @Accept			json
// @Success		204
// @Failure		400		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			backup	body		ImportRequest	true	"Backup"
// @Router			/v1/admin/import [post]
func ImportBackup(c *gin.Context) {
	var request ImportRequest
	err := httputil.BindData(c, &request)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		err := wipe(tx)
		if err != nil {
			return err
		}

		data := request.Data
		for _, create := range []func(*gorm.DB) error{
			createAll(data.Photographers),
			createAll(data.Races),
			createAll(data.LedgerEntryTypes),
			createAll(data.SaleTypes),
			createAll(data.RacePhotographers),
			createAll(data.Expenses),
			createAll(data.LedgerEntries),
		} {
			err := create(tx)
			if err != nil {
				return err
			}
		}

		// Backups from before the catalog was fixed may not contain it
		return models.SeedLedgerTypes(tx)
	})
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// createAll inserts the rows one by one so that model hooks run for each.
func createAll[T any](rows []T) func(*gorm.DB) error {
	return func(tx *gorm.DB) error {
		for i := range rows {
			err := tx.Omit(clause.Associations).Create(&rows[i]).Error
			if err != nil {
				return err
			}
		}

		return nil
	}
}

// wipe permanently deletes all rows from all tables. The order matters,
// rows referencing others go first.
func wipe(tx *gorm.DB) error {
	for _, m := range []any{
		&models.LedgerEntry{},
		&models.RaceSaleType{},
		&models.RacePhotographer{},
		&models.RaceExpense{},
		&models.LedgerEntryType{},
		&models.Race{},
		&models.Photographer{},
	} {
		err := tx.Unscoped().Where("true").Delete(m).Error
		if err != nil {
			return err
		}
	}

	return nil
}
