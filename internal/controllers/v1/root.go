package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/racedesk/backend/internal/models"
)

type Response struct {
	Links Links `json:"links"`
}

type Links struct {
	Races         string `json:"races" example:"https://example.com/api/v1/races"`
	Photographers string `json:"photographers" example:"https://example.com/api/v1/photographers"`
	Ranking       string `json:"ranking" example:"https://example.com/api/v1/photographers/ranking"`
	Ledger        string `json:"ledger" example:"https://example.com/api/v1/ledger/entries"`
	Export        string `json:"export" example:"https://example.com/api/v1/admin/export"`
}

// RegisterRootRoutes registers the routes for the API root.
func RegisterRootRoutes(r *gin.RouterGroup) {
	r.GET("", Get)
	r.OPTIONS("", Options)
	r.DELETE("", Cleanup)
}

// @Summary		v1 API
// @Description	Returns the links for the v1 API
// @Tags			v1
// @Success		200	{object}	Response
// @Router			/v1 [get]
func Get(c *gin.Context) {
	url := c.GetString(string(models.ContextURL))

	c.JSON(http.StatusOK, Response{
		Links: Links{
			Races:         url + "/v1/races",
			Photographers: url + "/v1/photographers",
			Ranking:       url + "/v1/photographers/ranking",
			Ledger:        url + "/v1/ledger/entries",
			Export:        url + "/v1/admin/export",
		},
	})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			v1
// @Success		204
// @Router			/v1 [options]
func Options(c *gin.Context) {
	c.Header("allow", "OPTIONS, GET, DELETE")
	c.Status(http.StatusNoContent)
}
