package v1

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/racedesk/backend/internal/finance"
	"github.com/racedesk/backend/internal/httputil"
	"github.com/racedesk/backend/internal/models"
	"gorm.io/gorm"
)

// RegisterRaceRoutes registers the routes for races with
// the RouterGroup that is passed.
func RegisterRaceRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsRaceList)
		r.GET("", GetRaces)
		r.POST("", CreateRace)
	}

	// Race with ID
	{
		r.OPTIONS("/:id", OptionsRaceDetail)
		r.GET("/:id", GetRace)
		r.PATCH("/:id", UpdateRace)
		r.DELETE("/:id", DeleteRace)
	}

	// Child collections, replaced as a whole
	{
		r.OPTIONS("/:id/sales", OptionsRaceChildren)
		r.GET("/:id/sales", GetRaceSales)
		r.PUT("/:id/sales", ReplaceRaceSales)

		r.OPTIONS("/:id/photographers", OptionsRaceChildren)
		r.GET("/:id/photographers", GetRacePhotographers)
		r.PUT("/:id/photographers", ReplaceRacePhotographers)

		r.OPTIONS("/:id/expenses", OptionsRaceChildren)
		r.GET("/:id/expenses", GetRaceExpenses)
		r.PUT("/:id/expenses", ReplaceRaceExpenses)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Races
// @Success		204
// @Router			/v1/races [options]
func OptionsRaceList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Races
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ID of the race"
// @Router			/v1/races/{id} [options]
func OptionsRaceDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.First(&models.Race{}, "id = ?", uri.ID.UUID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Races
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ID of the race"
// @Router			/v1/races/{id}/sales [options]
func OptionsRaceChildren(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.First(&models.Race{}, "id = ?", uri.ID.UUID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsGetPut(c)
}

// @Summary		List races
// @Description	Returns all races with their derived financial figures
// @Tags			Races
// @Produce		json
// @Success		200	{object}	RaceListResponse
// @Failure		500	{object}	RaceListResponse
// @Router			/v1/races [get]
func GetRaces(c *gin.Context) {
	var races []models.Race
	err := models.DB.Order("date DESC, name ASC").Find(&races).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RaceListResponse{Error: &s})
		return
	}

	data := make([]RaceListItem, 0, len(races))
	if len(races) == 0 {
		c.JSON(http.StatusOK, RaceListResponse{Data: data})
		return
	}

	ids := make([]uuid.UUID, 0, len(races))
	for _, race := range races {
		ids = append(ids, race.ID)
	}

	sales, err := models.SalesForRaces(models.DB, ids)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RaceListResponse{Error: &s})
		return
	}

	photographerCosts, err := models.PhotographerCostByRace(models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RaceListResponse{Error: &s})
		return
	}

	expenseSums, err := models.ExpenseSumByRace(models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RaceListResponse{Error: &s})
		return
	}

	for _, race := range races {
		data = append(data, RaceListItem{
			Race: newRace(c, race),
			Figures: finance.Compute(
				models.SaleRows(sales[race.ID]),
				photographerCosts[race.ID],
				expenseSums[race.ID],
				race.Fees(),
			),
		})
	}

	c.JSON(http.StatusOK, RaceListResponse{Data: data})
}

// @Summary		Create race
// @Description	Creates a new race. Percentages that are not set get the business defaults.
// @Tags			Races
// @Accept			json
// @Produce		json
// @Success		201		{object}	RaceResponse
// @Failure		400		{object}	RaceResponse
// @Failure		500		{object}	RaceResponse
// @Param			race	body		RaceEditable	true	"Race"
// @Router			/v1/races [post]
func CreateRace(c *gin.Context) {
	var editable RaceEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RaceResponse{Error: &s})
		return
	}

	race, err := editable.model()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RaceResponse{Error: &s})
		return
	}

	err = models.DB.Create(&race).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RaceResponse{Error: &s})
		return
	}

	data := newRace(c, race)
	c.JSON(http.StatusCreated, RaceResponse{Data: &data})
}

// @Summary		Get race
// @Description	Returns a race with its sale types, photographers, expenses and derived figures
// @Tags			Races
// @Produce		json
// @Success		200	{object}	RaceDetailResponse
// @Failure		400	{object}	RaceDetailResponse
// @Failure		404	{object}	RaceDetailResponse
// @Failure		500	{object}	RaceDetailResponse
// @Param			id	path		URIID	true	"ID of the race"
// @Router			/v1/races/{id} [get]
func GetRace(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RaceDetailResponse{Error: &s})
		return
	}

	var race models.Race
	err = models.DB.First(&race, "id = ?", uri.ID.UUID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RaceDetailResponse{Error: &s})
		return
	}

	var sales []models.RaceSaleType
	err = models.DB.Where("race_id = ?", race.ID).Order("created_at ASC").Find(&sales).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RaceDetailResponse{Error: &s})
		return
	}

	var photographers []models.RacePhotographer
	err = models.DB.Where("race_id = ?", race.ID).Order("created_at ASC").Find(&photographers).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RaceDetailResponse{Error: &s})
		return
	}

	var expenses []models.RaceExpense
	err = models.DB.Where("race_id = ?", race.ID).Order("created_at ASC").Find(&expenses).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RaceDetailResponse{Error: &s})
		return
	}

	var photographerCost, expenseSum int64
	for _, p := range photographers {
		photographerCost += p.CostCents
	}
	for _, e := range expenses {
		expenseSum += e.AmountCents
	}

	data := RaceDetail{
		Race:          newRace(c, race),
		Sales:         sales,
		Photographers: photographers,
		Expenses:      expenses,
		Figures:       finance.Compute(models.SaleRows(sales), photographerCost, expenseSum, race.Fees()),
	}

	c.JSON(http.StatusOK, RaceDetailResponse{Data: &data})
}

// @Summary		Update race
// @Description	Update an existing race. Only values to be updated need to be specified. Empty money or percentage strings leave the stored value alone.
// @Tags			Races
// @Accept			json
// @Produce		json
// @Success		200		{object}	RaceResponse
// @Failure		400		{object}	RaceResponse
// @Failure		404		{object}	RaceResponse
// @Failure		500		{object}	RaceResponse
// @Param			id		path		URIID			true	"ID of the race"
// @Param			race	body		RaceEditable	true	"Race"
// @Router			/v1/races/{id} [patch]
func UpdateRace(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RaceResponse{Error: &s})
		return
	}

	var race models.Race
	err = models.DB.First(&race, "id = ?", uri.ID.UUID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RaceResponse{Error: &s})
		return
	}

	var editable RaceEditable
	err = httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RaceResponse{Error: &s})
		return
	}

	updates, err := editable.updates()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RaceResponse{Error: &s})
		return
	}

	err = models.DB.Model(&race).Updates(updates).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RaceResponse{Error: &s})
		return
	}

	data := newRace(c, race)
	c.JSON(http.StatusOK, RaceResponse{Data: &data})
}

// @Summary		Delete race
// @Description	Deletes a race with its sale types, photographer assignments, specific expenses and race-scoped ledger entries
// @Tags			Races
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ID of the race"
// @Router			/v1/races/{id} [delete]
func DeleteRace(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var race models.Race
	err = models.DB.First(&race, "id = ?", uri.ID.UUID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		for _, m := range []any{
			&models.RaceSaleType{},
			&models.RacePhotographer{},
			&models.RaceExpense{},
			&models.LedgerEntry{},
		} {
			err := tx.Where("race_id = ?", race.ID).Delete(m).Error
			if err != nil {
				return err
			}
		}

		return tx.Delete(&race).Error
	})
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// @Summary		Get sale types
// @Description	Returns the sale types of a race
// @Tags			Races
// @Produce		json
// @Success		200	{object}	RaceSaleTypeListResponse
// @Failure		400	{object}	RaceSaleTypeListResponse
// @Failure		404	{object}	RaceSaleTypeListResponse
// @Failure		500	{object}	RaceSaleTypeListResponse
// @Param			id	path		URIID	true	"ID of the race"
// @Router			/v1/races/{id}/sales [get]
func GetRaceSales(c *gin.Context) {
	race, err := getRace(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RaceSaleTypeListResponse{Error: &s})
		return
	}

	var sales []models.RaceSaleType
	err = models.DB.Where("race_id = ?", race.ID).Order("created_at ASC").Find(&sales).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RaceSaleTypeListResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, RaceSaleTypeListResponse{Data: sales})
}

// @Summary		Replace sale types
// @Description	Replaces all sale types of a race and recomputes the race's revenue fields in the same transaction
// @Tags			Races
// @Accept			json
// @Produce		json
// @Success		200		{object}	RaceSaleTypeListResponse
// @Failure		400		{object}	RaceSaleTypeListResponse
// @Failure		404		{object}	RaceSaleTypeListResponse
// @Failure		500		{object}	RaceSaleTypeListResponse
// @Param			id		path		URIID					true	"ID of the race"
// @Param			sales	body		[]RaceSaleTypeEditable	true	"Sale types"
// @Router			/v1/races/{id}/sales [put]
func ReplaceRaceSales(c *gin.Context) {
	race, err := getRace(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RaceSaleTypeListResponse{Error: &s})
		return
	}

	var editables []RaceSaleTypeEditable
	err = httputil.BindData(c, &editables)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RaceSaleTypeListResponse{Error: &s})
		return
	}

	sales := make([]models.RaceSaleType, 0, len(editables))
	for _, editable := range editables {
		sales = append(sales, editable.model(race.ID))
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("race_id = ?", race.ID).Delete(&models.RaceSaleType{}).Error
		if err != nil {
			return err
		}

		for i := range sales {
			err := tx.Create(&sales[i]).Error
			if err != nil {
				return err
			}
		}

		ars, usd := finance.Revenue(models.SaleRows(sales))
		return tx.Model(&race).Updates(map[string]any{
			"revenue_ars_cents": ars,
			"revenue_usd_cents": usd,
		}).Error
	})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RaceSaleTypeListResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, RaceSaleTypeListResponse{Data: sales})
}

// @Summary		Get photographer assignments
// @Description	Returns the photographer assignments of a race
// @Tags			Races
// @Produce		json
// @Success		200	{object}	RacePhotographerListResponse
// @Failure		400	{object}	RacePhotographerListResponse
// @Failure		404	{object}	RacePhotographerListResponse
// @Failure		500	{object}	RacePhotographerListResponse
// @Param			id	path		URIID	true	"ID of the race"
// @Router			/v1/races/{id}/photographers [get]
func GetRacePhotographers(c *gin.Context) {
	race, err := getRace(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RacePhotographerListResponse{Error: &s})
		return
	}

	var photographers []models.RacePhotographer
	err = models.DB.Where("race_id = ?", race.ID).Order("created_at ASC").Find(&photographers).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RacePhotographerListResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, RacePhotographerListResponse{Data: photographers})
}

// @Summary		Replace photographer assignments
// @Description	Replaces all photographer assignments of a race. Rows are resolved to photographers by ID, then by name; unknown names create the photographer and unresolvable rows are dropped. A non-empty assignment list is never replaced by an empty one.
// @Tags			Races
// @Accept			json
// @Produce		json
// @Success		200				{object}	RacePhotographerListResponse
// @Failure		400				{object}	RacePhotographerListResponse
// @Failure		404				{object}	RacePhotographerListResponse
// @Failure		500				{object}	RacePhotographerListResponse
// @Param			id				path		URIID						true	"ID of the race"
// @Param			photographers	body		[]RacePhotographerEditable	true	"Assignments"
// @Router			/v1/races/{id}/photographers [put]
func ReplaceRacePhotographers(c *gin.Context) {
	race, err := getRace(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RacePhotographerListResponse{Error: &s})
		return
	}

	var editables []RacePhotographerEditable
	err = httputil.BindData(c, &editables)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RacePhotographerListResponse{Error: &s})
		return
	}

	var assignments []models.RacePhotographer
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		assignments = make([]models.RacePhotographer, 0, len(editables))
		for _, editable := range editables {
			photographer, err := resolvePhotographer(tx, editable)
			if err != nil {
				return err
			}

			// Rows that resolve to no photographer are dropped
			if photographer == nil {
				continue
			}

			assignments = append(assignments, editable.model(race.ID, *photographer))
		}

		if len(assignments) == 0 {
			var count int64
			err := tx.Model(&models.RacePhotographer{}).Where("race_id = ?", race.ID).Count(&count).Error
			if err != nil {
				return err
			}

			if count > 0 {
				return errEmptyReplacement
			}
		}

		err := tx.Where("race_id = ?", race.ID).Delete(&models.RacePhotographer{}).Error
		if err != nil {
			return err
		}

		for i := range assignments {
			err := tx.Create(&assignments[i]).Error
			if err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RacePhotographerListResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, RacePhotographerListResponse{Data: assignments})
}

// @Summary		Get expenses
// @Description	Returns the specific expenses of a race
// @Tags			Races
// @Produce		json
// @Success		200	{object}	RaceExpenseListResponse
// @Failure		400	{object}	RaceExpenseListResponse
// @Failure		404	{object}	RaceExpenseListResponse
// @Failure		500	{object}	RaceExpenseListResponse
// @Param			id	path		URIID	true	"ID of the race"
// @Router			/v1/races/{id}/expenses [get]
func GetRaceExpenses(c *gin.Context) {
	race, err := getRace(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RaceExpenseListResponse{Error: &s})
		return
	}

	var expenses []models.RaceExpense
	err = models.DB.Where("race_id = ?", race.ID).Order("created_at ASC").Find(&expenses).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RaceExpenseListResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, RaceExpenseListResponse{Data: expenses})
}

// @Summary		Replace expenses
// @Description	Replaces all specific expenses of a race. Rows without a name are dropped.
// @Tags			Races
// @Accept			json
// @Produce		json
// @Success		200			{object}	RaceExpenseListResponse
// @Failure		400			{object}	RaceExpenseListResponse
// @Failure		404			{object}	RaceExpenseListResponse
// @Failure		500			{object}	RaceExpenseListResponse
// @Param			id			path		URIID					true	"ID of the race"
// @Param			expenses	body		[]RaceExpenseEditable	true	"Expenses"
// @Router			/v1/races/{id}/expenses [put]
func ReplaceRaceExpenses(c *gin.Context) {
	race, err := getRace(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RaceExpenseListResponse{Error: &s})
		return
	}

	var editables []RaceExpenseEditable
	err = httputil.BindData(c, &editables)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RaceExpenseListResponse{Error: &s})
		return
	}

	expenses := make([]models.RaceExpense, 0, len(editables))
	for _, editable := range editables {
		if strings.TrimSpace(editable.Name) == "" {
			continue
		}

		expenses = append(expenses, editable.model(race.ID))
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("race_id = ?", race.ID).Delete(&models.RaceExpense{}).Error
		if err != nil {
			return err
		}

		for i := range expenses {
			err := tx.Create(&expenses[i]).Error
			if err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RaceExpenseListResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, RaceExpenseListResponse{Data: expenses})
}

// getRace binds the URI and loads the referenced race.
func getRace(c *gin.Context) (models.Race, error) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		return models.Race{}, err
	}

	var race models.Race
	err = models.DB.First(&race, "id = ?", uri.ID.UUID).Error
	if err != nil {
		return models.Race{}, err
	}

	return race, nil
}

// resolvePhotographer resolves an assignment row to a photographer: by ID
// when one is set, by name otherwise, creating the photographer when the
// name is unknown. A nil result means the row cannot be resolved.
func resolvePhotographer(tx *gorm.DB, editable RacePhotographerEditable) (*models.Photographer, error) {
	if editable.PhotographerID != nil && *editable.PhotographerID != uuid.Nil {
		var photographer models.Photographer
		err := tx.First(&photographer, "id = ?", *editable.PhotographerID).Error
		if err == nil {
			return &photographer, nil
		}

		if !errors.Is(err, models.ErrResourceNotFound) {
			return nil, err
		}
	}

	name := strings.TrimSpace(editable.Name)
	if name == "" {
		return nil, nil
	}

	var photographer models.Photographer
	err := tx.First(&photographer, "name = ?", name).Error
	if err == nil {
		return &photographer, nil
	}

	if !errors.Is(err, models.ErrResourceNotFound) {
		return nil, err
	}

	photographer = models.Photographer{Name: name}
	err = tx.Create(&photographer).Error
	if err != nil {
		return nil, err
	}

	return &photographer, nil
}
