package v1

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/racedesk/backend/internal/finance"
	"github.com/racedesk/backend/internal/models"
)

// PhotographerEditable are the fields clients can set on a photographer.
type PhotographerEditable struct {
	Name        *string `json:"name" example:"Ana Suárez"`
	Email       *string `json:"email" example:"ana@example.com"`
	Phone       *string `json:"phone" example:"+54 9 11 5555-5555"`
	Location    *string `json:"location" example:"CABA"`
	TaxID       *string `json:"taxId" example:"27-12345678-3"`
	NationalID  *string `json:"nationalId" example:"12345678"`
	BankAccount *string `json:"bankAccount" example:"0000003100010000000001"`
	BankAlias   *string `json:"bankAlias" example:"ana.suarez.mp"`
	BillingType *string `json:"billingType" example:"monotributo"`
	Notes       *string `json:"notes" example:"Covers trail races only"`
}

// model returns the database resource for a photographer creation.
func (editable PhotographerEditable) model() (models.Photographer, error) {
	if editable.Name == nil || strings.TrimSpace(*editable.Name) == "" {
		return models.Photographer{}, errNameRequired
	}

	return models.Photographer{
		Name:        *editable.Name,
		Email:       strVal(editable.Email),
		Phone:       strVal(editable.Phone),
		Location:    strVal(editable.Location),
		TaxID:       strVal(editable.TaxID),
		NationalID:  strVal(editable.NationalID),
		BankAccount: strVal(editable.BankAccount),
		BankAlias:   strVal(editable.BankAlias),
		BillingType: strVal(editable.BillingType),
		Notes:       strVal(editable.Notes),
	}, nil
}

// updates returns the column updates for a partial photographer update.
func (editable PhotographerEditable) updates() (map[string]any, error) {
	u := make(map[string]any)

	if editable.Name != nil {
		name := strings.TrimSpace(*editable.Name)
		if name == "" {
			return nil, errNameRequired
		}
		u["name"] = name
	}

	set := func(column string, value *string) {
		if value != nil {
			u[column] = strings.TrimSpace(*value)
		}
	}
	set("email", editable.Email)
	set("phone", editable.Phone)
	set("location", editable.Location)
	set("tax_id", editable.TaxID)
	set("national_id", editable.NationalID)
	set("bank_account", editable.BankAccount)
	set("bank_alias", editable.BankAlias)
	set("billing_type", editable.BillingType)
	set("notes", editable.Notes)

	if len(u) == 0 {
		return nil, errNoFieldsSet
	}

	return u, nil
}

// PhotographerKPIs are the derived numbers shown next to a photographer.
type PhotographerKPIs struct {
	Races           int64 `json:"races" example:"4"`
	PhotosTaken     int64 `json:"photosTaken" example:"10400"`
	Downloads       int64 `json:"downloads" example:"1850"`
	UniqueDownloads int64 `json:"uniqueDownloads" example:"920"`
	CostCents       int64 `json:"costCents" example:"20000000"`

	DownloadRate         float64 `json:"downloadRate" example:"0.178"`       // downloads per photo taken
	Reach                float64 `json:"reach" example:"0.497"`              // unique downloads per download
	CostPerDownloadCents int64   `json:"costPerDownloadCents" example:"108"` // cost divided by downloads
}

func newPhotographerKPIs(k models.AssignmentKPIs) PhotographerKPIs {
	kpis := PhotographerKPIs{
		Races:           k.Races,
		PhotosTaken:     k.PhotosTaken,
		Downloads:       k.Downloads,
		UniqueDownloads: k.UniqueDownloads,
		CostCents:       k.CostCents,
	}

	if k.PhotosTaken > 0 {
		kpis.DownloadRate = float64(k.Downloads) / float64(k.PhotosTaken)
	}

	if k.Downloads > 0 {
		kpis.Reach = float64(k.UniqueDownloads) / float64(k.Downloads)
		kpis.CostPerDownloadCents = k.CostCents / k.Downloads
	}

	return kpis
}

type PhotographerLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/photographers/af892e10-7e0a-4fb8-b1bc-4b6d88401ed7"`
}

// Photographer is the API representation of a photographer.
type Photographer struct {
	models.Photographer
	Links PhotographerLinks `json:"links"`
}

func newPhotographer(c *gin.Context, model models.Photographer) Photographer {
	url := c.GetString(string(models.ContextURL))

	return Photographer{
		Photographer: model,
		Links: PhotographerLinks{
			Self: fmt.Sprintf("%s/v1/photographers/%s", url, model.ID),
		},
	}
}

// PhotographerListItem is one photographer in the list, with the summed
// numbers over all their assignments.
type PhotographerListItem struct {
	Photographer
	KPIs PhotographerKPIs `json:"kpis"`
}

// PhotographerRaceRow is one assignment in a photographer's detail, with the
// race's name and date resolved.
type PhotographerRaceRow struct {
	models.RacePhotographer
	RaceName string    `json:"raceName" example:"Maratón de la Ciudad"`
	RaceDate time.Time `json:"raceDate" example:"2024-09-15T00:00:00Z"`
}

// PhotographerDetail is the full photographer: the photographer, their
// per-race rows and the summed numbers.
type PhotographerDetail struct {
	Photographer
	Races []PhotographerRaceRow `json:"races"`
	KPIs  PhotographerKPIs      `json:"kpis"`
}

type PhotographerListResponse struct {
	Data  []PhotographerListItem `json:"data"`                                                          // List of photographers
	Error *string                `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type PhotographerResponse struct {
	Data  *Photographer `json:"data"`                                                          // The photographer
	Error *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type PhotographerDetailResponse struct {
	Data  *PhotographerDetail `json:"data"`                                                          // The photographer with assignments and KPIs
	Error *string             `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type RankingResponse struct {
	Data  []finance.RankingEntry `json:"data"`                                                    // The scored ranking, best first
	Error *string                `json:"error" example:"the race parameter must be a valid UUID"` // The error, if any occurred
}
