package v1

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/racedesk/backend/internal/finance"
	"github.com/racedesk/backend/internal/httputil"
	"github.com/racedesk/backend/internal/models"
	"gorm.io/gorm"
)

// RegisterPhotographerRoutes registers the routes for photographers with
// the RouterGroup that is passed.
func RegisterPhotographerRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsPhotographerList)
		r.GET("", GetPhotographers)
		r.POST("", CreatePhotographer)
	}

	// Ranking
	{
		r.OPTIONS("/ranking", OptionsRanking)
		r.GET("/ranking", GetRanking)
	}

	// Photographer with ID
	{
		r.OPTIONS("/:id", OptionsPhotographerDetail)
		r.GET("/:id", GetPhotographer)
		r.PATCH("/:id", UpdatePhotographer)
		r.DELETE("/:id", DeletePhotographer)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Photographers
// @Success		204
// @Router			/v1/photographers [options]
func OptionsPhotographerList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Photographers
// @Success		204
// @Router			/v1/photographers/ranking [options]
func OptionsRanking(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Photographers
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ID of the photographer"
// @Router			/v1/photographers/{id} [options]
func OptionsPhotographerDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.First(&models.Photographer{}, "id = ?", uri.ID.UUID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		List photographers
// @Description	Returns all photographers with their summed assignment numbers
// @Tags			Photographers
// @Produce		json
// @Success		200	{object}	PhotographerListResponse
// @Failure		500	{object}	PhotographerListResponse
// @Router			/v1/photographers [get]
func GetPhotographers(c *gin.Context) {
	var photographers []models.Photographer
	err := models.DB.Order("name ASC").Find(&photographers).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PhotographerListResponse{Error: &s})
		return
	}

	kpis, err := models.KPIsByPhotographer(models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PhotographerListResponse{Error: &s})
		return
	}

	data := make([]PhotographerListItem, 0, len(photographers))
	for _, photographer := range photographers {
		data = append(data, PhotographerListItem{
			Photographer: newPhotographer(c, photographer),
			KPIs:         newPhotographerKPIs(kpis[photographer.ID]),
		})
	}

	c.JSON(http.StatusOK, PhotographerListResponse{Data: data})
}

// @Summary		Photographer ranking
// @Description	Returns photographers scored over their assignment numbers, best first. Only photographers with at least one assignment take part.
// @Tags			Photographers
// @Produce		json
// @Success		200			{object}	RankingResponse
// @Failure		400			{object}	RankingResponse
// @Failure		500			{object}	RankingResponse
// @Param			race		query		string	false	"Only rank assignments of this race"
// @Param			volume		query		string	false	"Set to 0 or false to disable the volume component"
// @Param			downloads	query		string	false	"Set to 0 or false to disable the downloads component"
// @Param			efficiency	query		string	false	"Set to 0 or false to disable the efficiency component"
// @Param			reach		query		string	false	"Set to 0 or false to disable the reach component"
// @Router			/v1/photographers/ranking [get]
func GetRanking(c *gin.Context) {
	var params struct {
		Race       string `form:"race"`
		Volume     string `form:"volume"`
		Downloads  string `form:"downloads"`
		Efficiency string `form:"efficiency"`
		Reach      string `form:"reach"`
	}

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&params)

	var raceID *uuid.UUID
	if params.Race != "" {
		id, err := uuid.Parse(params.Race)
		if err != nil {
			s := errRaceParameterInvalid.Error()
			c.JSON(http.StatusBadRequest, RankingResponse{Error: &s})
			return
		}
		raceID = &id
	}

	disabled := func(v string) bool {
		return v == "0" || strings.EqualFold(v, "false")
	}

	components := finance.AllComponents()
	components.Volume = !disabled(params.Volume)
	components.Downloads = !disabled(params.Downloads)
	components.Efficiency = !disabled(params.Efficiency)
	components.Reach = !disabled(params.Reach)

	totals, err := models.RankingTotals(models.DB, raceID)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RankingResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, RankingResponse{Data: finance.Rank(totals, components)})
}

// @Summary		Create photographer
// @Description	Creates a new photographer
// @Tags			Photographers
// @Accept			json
// @Produce		json
// @Success		201				{object}	PhotographerResponse
// @Failure		400				{object}	PhotographerResponse
// @Failure		500				{object}	PhotographerResponse
// @Param			photographer	body		PhotographerEditable	true	"Photographer"
// @Router			/v1/photographers [post]
func CreatePhotographer(c *gin.Context) {
	var editable PhotographerEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PhotographerResponse{Error: &s})
		return
	}

	photographer, err := editable.model()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PhotographerResponse{Error: &s})
		return
	}

	err = models.DB.Create(&photographer).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PhotographerResponse{Error: &s})
		return
	}

	data := newPhotographer(c, photographer)
	c.JSON(http.StatusCreated, PhotographerResponse{Data: &data})
}

// @Summary		Get photographer
// @Description	Returns a photographer with their per-race assignments and summed numbers
// @Tags			Photographers
// @Produce		json
// @Success		200	{object}	PhotographerDetailResponse
// @Failure		400	{object}	PhotographerDetailResponse
// @Failure		404	{object}	PhotographerDetailResponse
// @Failure		500	{object}	PhotographerDetailResponse
// @Param			id	path		URIID	true	"ID of the photographer"
// @Router			/v1/photographers/{id} [get]
func GetPhotographer(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PhotographerDetailResponse{Error: &s})
		return
	}

	var photographer models.Photographer
	err = models.DB.First(&photographer, "id = ?", uri.ID.UUID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PhotographerDetailResponse{Error: &s})
		return
	}

	var assignments []models.RacePhotographer
	err = models.DB.Where("photographer_id = ?", photographer.ID).Order("created_at ASC").Find(&assignments).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PhotographerDetailResponse{Error: &s})
		return
	}

	raceIDs := make([]uuid.UUID, 0, len(assignments))
	for _, a := range assignments {
		raceIDs = append(raceIDs, a.RaceID)
	}

	races := make(map[uuid.UUID]models.Race, len(raceIDs))
	if len(raceIDs) > 0 {
		var raceRows []models.Race
		err = models.DB.Where("id IN ?", raceIDs).Find(&raceRows).Error
		if err != nil {
			s := err.Error()
			c.JSON(status(err), PhotographerDetailResponse{Error: &s})
			return
		}

		for _, race := range raceRows {
			races[race.ID] = race
		}
	}

	rows := make([]PhotographerRaceRow, 0, len(assignments))
	kpis := models.AssignmentKPIs{Races: int64(len(races))}
	for _, a := range assignments {
		race := races[a.RaceID]
		rows = append(rows, PhotographerRaceRow{
			RacePhotographer: a,
			RaceName:         race.Name,
			RaceDate:         race.Date,
		})

		kpis.PhotosTaken += a.PhotosTaken
		kpis.Downloads += a.Downloads
		kpis.UniqueDownloads += a.UniqueDownloads
		kpis.CostCents += a.CostCents
	}

	data := PhotographerDetail{
		Photographer: newPhotographer(c, photographer),
		Races:        rows,
		KPIs:         newPhotographerKPIs(kpis),
	}

	c.JSON(http.StatusOK, PhotographerDetailResponse{Data: &data})
}

// @Summary		Update photographer
// @Description	Update an existing photographer. Only values to be updated need to be specified.
// @Tags			Photographers
// @Accept			json
// @Produce		json
// @Success		200				{object}	PhotographerResponse
// @Failure		400				{object}	PhotographerResponse
// @Failure		404				{object}	PhotographerResponse
// @Failure		500				{object}	PhotographerResponse
// @Param			id				path		URIID					true	"ID of the photographer"
// @Param			photographer	body		PhotographerEditable	true	"Photographer"
// @Router			/v1/photographers/{id} [patch]
func UpdatePhotographer(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PhotographerResponse{Error: &s})
		return
	}

	var photographer models.Photographer
	err = models.DB.First(&photographer, "id = ?", uri.ID.UUID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PhotographerResponse{Error: &s})
		return
	}

	var editable PhotographerEditable
	err = httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PhotographerResponse{Error: &s})
		return
	}

	updates, err := editable.updates()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PhotographerResponse{Error: &s})
		return
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&photographer).Updates(updates).Error
		if err != nil {
			return err
		}

		// Keep the denormalized name on assignment rows in sync
		if name, ok := updates["name"]; ok {
			return tx.Model(&models.RacePhotographer{}).
				Where("photographer_id = ?", photographer.ID).
				Update("name", name).Error
		}

		return nil
	})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PhotographerResponse{Error: &s})
		return
	}

	data := newPhotographer(c, photographer)
	c.JSON(http.StatusOK, PhotographerResponse{Data: &data})
}

// @Summary		Delete photographer
// @Description	Deletes a photographer and their race assignments
// @Tags			Photographers
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ID of the photographer"
// @Router			/v1/photographers/{id} [delete]
func DeletePhotographer(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var photographer models.Photographer
	err = models.DB.First(&photographer, "id = ?", uri.ID.UUID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("photographer_id = ?", photographer.ID).Delete(&models.RacePhotographer{}).Error
		if err != nil {
			return err
		}

		return tx.Delete(&photographer).Error
	})
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
