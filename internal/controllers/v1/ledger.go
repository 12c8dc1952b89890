package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/racedesk/backend/internal/httputil"
	"github.com/racedesk/backend/internal/models"
)

// RegisterLedgerRoutes registers the routes for the global cash ledger with
// the RouterGroup that is passed.
func RegisterLedgerRoutes(r *gin.RouterGroup) {
	// Type catalog
	{
		r.OPTIONS("/types", OptionsLedgerTypes)
		r.GET("/types", GetLedgerTypes)
	}

	// Entries
	{
		r.OPTIONS("/entries", OptionsLedgerEntryList)
		r.GET("/entries", GetLedgerEntries)
		r.POST("/entries", CreateLedgerEntry)

		r.OPTIONS("/entries/:id", OptionsLedgerEntryDetail)
		r.PATCH("/entries/:id", UpdateLedgerEntry)
		r.DELETE("/entries/:id", DeleteLedgerEntry)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Ledger
// @Success		204
// @Router			/v1/ledger/types [options]
func OptionsLedgerTypes(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Ledger
// @Success		204
// @Router			/v1/ledger/entries [options]
func OptionsLedgerEntryList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Ledger
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ID of the ledger entry"
// @Router			/v1/ledger/entries/{id} [options]
func OptionsLedgerEntryDetail(c *gin.Context) {
	_, err := getGlobalLedgerEntry(c)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.Header("allow", "OPTIONS, PATCH, DELETE")
	c.Status(http.StatusNoContent)
}

// @Summary		List ledger entry types
// @Description	Returns the ledger entry type catalog
// @Tags			Ledger
// @Produce		json
// @Success		200	{object}	LedgerEntryTypeListResponse
// @Failure		500	{object}	LedgerEntryTypeListResponse
// @Router			/v1/ledger/types [get]
func GetLedgerTypes(c *gin.Context) {
	var types []models.LedgerEntryType
	err := models.DB.Order("id ASC").Find(&types).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), LedgerEntryTypeListResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, LedgerEntryTypeListResponse{Data: types})
}

// @Summary		List ledger entries
// @Description	Returns all global ledger entries, newest first. Entries that belong to a race are managed through the race and not listed here.
// @Tags			Ledger
// @Produce		json
// @Success		200	{object}	LedgerEntryListResponse
// @Failure		500	{object}	LedgerEntryListResponse
// @Router			/v1/ledger/entries [get]
func GetLedgerEntries(c *gin.Context) {
	var entries []models.LedgerEntry
	err := models.DB.
		Preload("Type").
		Where("race_id IS NULL").
		Order("date DESC, created_at DESC").
		Find(&entries).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), LedgerEntryListResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, LedgerEntryListResponse{Data: entries})
}

// @Summary		Create ledger entry
// @Description	Creates a new global ledger entry
// @Tags			Ledger
// @Accept			json
// @Produce		json
// @Success		201		{object}	LedgerEntryResponse
// @Failure		400		{object}	LedgerEntryResponse
// @Failure		500		{object}	LedgerEntryResponse
// @Param			entry	body		LedgerEntryEditable	true	"Ledger entry"
// @Router			/v1/ledger/entries [post]
func CreateLedgerEntry(c *gin.Context) {
	var editable LedgerEntryEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), LedgerEntryResponse{Error: &s})
		return
	}

	entry, err := editable.model(models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), LedgerEntryResponse{Error: &s})
		return
	}

	err = models.DB.Omit("Type").Create(&entry).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), LedgerEntryResponse{Error: &s})
		return
	}

	err = models.DB.First(&entry.Type, "id = ?", entry.TypeID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), LedgerEntryResponse{Error: &s})
		return
	}

	c.JSON(http.StatusCreated, LedgerEntryResponse{Data: &entry})
}

// @Summary		Update ledger entry
// @Description	Update an existing global ledger entry. Only values to be updated need to be specified. Entries that belong to a race cannot be changed here.
// @Tags			Ledger
// @Accept			json
// @Produce		json
// @Success		200		{object}	LedgerEntryResponse
// @Failure		400		{object}	LedgerEntryResponse
// @Failure		404		{object}	LedgerEntryResponse
// @Failure		500		{object}	LedgerEntryResponse
// @Param			id		path		URIID				true	"ID of the ledger entry"
// @Param			entry	body		LedgerEntryEditable	true	"Ledger entry"
// @Router			/v1/ledger/entries/{id} [patch]
func UpdateLedgerEntry(c *gin.Context) {
	entry, err := getGlobalLedgerEntry(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), LedgerEntryResponse{Error: &s})
		return
	}

	var editable LedgerEntryEditable
	err = httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), LedgerEntryResponse{Error: &s})
		return
	}

	updates, err := editable.updates(models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), LedgerEntryResponse{Error: &s})
		return
	}

	err = models.DB.Model(&entry).Omit("Type").Updates(updates).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), LedgerEntryResponse{Error: &s})
		return
	}

	err = models.DB.First(&entry.Type, "id = ?", entry.TypeID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), LedgerEntryResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, LedgerEntryResponse{Data: &entry})
}

// @Summary		Delete ledger entry
// @Description	Deletes a global ledger entry. Entries that belong to a race cannot be deleted here.
// @Tags			Ledger
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ID of the ledger entry"
// @Router			/v1/ledger/entries/{id} [delete]
func DeleteLedgerEntry(c *gin.Context) {
	entry, err := getGlobalLedgerEntry(c)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.Delete(&entry).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// getGlobalLedgerEntry binds the URI and loads the referenced entry,
// rejecting entries that belong to a race.
func getGlobalLedgerEntry(c *gin.Context) (models.LedgerEntry, error) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		return models.LedgerEntry{}, err
	}

	var entry models.LedgerEntry
	err = models.DB.First(&entry, "id = ?", uri.ID.UUID).Error
	if err != nil {
		return models.LedgerEntry{}, err
	}

	if !entry.Global() {
		return models.LedgerEntry{}, errRaceScopedEntry
	}

	return entry, nil
}
