package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/racedesk/backend/internal/models"
	"gorm.io/gorm"
)

// @Summary		Delete everything
// @Description	Permanently deletes all resources and re-seeds the ledger type catalog
// @Tags			v1
// @Success		204
// @Failure		400		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			confirm	query		string	false	"Confirmation to delete all resources. Must have the value 'yes-please-delete-everything'"
// @Router			/v1 [delete]
func Cleanup(c *gin.Context) {
	var params struct {
		Confirm string `form:"confirm"`
	}

	err := c.Bind(&params)
	if err != nil || params.Confirm != "yes-please-delete-everything" {
		c.JSON(http.StatusBadRequest, httpError{
			Error: errCleanupConfirmation.Error(),
		})
		return
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		err := wipe(tx)
		if err != nil {
			return err
		}

		return models.SeedLedgerTypes(tx)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
