package v1

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/racedesk/backend/internal/finance"
	"github.com/racedesk/backend/internal/models"
	"github.com/racedesk/backend/internal/money"
	"github.com/shopspring/decimal"
)

// RaceEditable are the fields clients can set on a race. Money and
// percentage fields are free-form strings fed to the money codec; on
// updates, an empty string leaves the stored value alone.
type RaceEditable struct {
	Name     *string `json:"name" example:"Maratón de la Ciudad"`
	Date     *string `json:"date" example:"2024-09-15"` // YYYY-MM-DD
	Venue    *string `json:"venue" example:"Palermo"`
	Kind     *string `json:"kind" example:"CALLE"`
	Runners  *int64  `json:"runners" example:"1200"`
	Accesses *int64  `json:"accesses" example:"5400"`

	RevenueARS *string `json:"revenueARS" example:"1.234,56"`
	RevenueUSD *string `json:"revenueUSD" example:"100"`

	PaymentPct       *string `json:"paymentPct" example:"2"`
	GrossReceiptsPct *string `json:"grossReceiptsPct" example:"4"`
	VATPct           *string `json:"vatPct" example:"10,5"`
	ProviderPct      *string `json:"providerPct" example:"17"`
	DebitCreditPct   *string `json:"debitCreditPct" example:"1,2"`
}

// model returns the database resource for a race creation. Omitted
// percentages get the business defaults, omitted money fields are zero.
func (editable RaceEditable) model() (models.Race, error) {
	if editable.Name == nil || strings.TrimSpace(*editable.Name) == "" {
		return models.Race{}, errNameRequired
	}

	if editable.Date == nil {
		return models.Race{}, errDateRequired
	}

	date, err := models.ParseDate(*editable.Date)
	if err != nil {
		return models.Race{}, err
	}

	return models.Race{
		Name:     *editable.Name,
		Date:     date,
		Venue:    strVal(editable.Venue),
		Kind:     strVal(editable.Kind),
		Runners:  intVal(editable.Runners),
		Accesses: intVal(editable.Accesses),

		RevenueARSCents: money.ParseCents(strVal(editable.RevenueARS)),
		RevenueUSDCents: money.ParseCents(strVal(editable.RevenueUSD)),

		PaymentPct:       money.ParsePercentOrDefault(strVal(editable.PaymentPct), models.DefaultPaymentPct),
		GrossReceiptsPct: money.ParsePercentOrDefault(strVal(editable.GrossReceiptsPct), models.DefaultGrossReceiptsPct),
		VATPct:           money.ParsePercentOrDefault(strVal(editable.VATPct), models.DefaultVATPct),
		ProviderPct:      money.ParsePercentOrDefault(strVal(editable.ProviderPct), models.DefaultProviderPct),
		DebitCreditPct:   money.ParsePercentOrDefault(strVal(editable.DebitCreditPct), models.DefaultDebitCreditPct),
	}, nil
}

// updates returns the column updates for a partial race update. Only fields
// present in the request are touched; money and percentage fields are also
// skipped when they are present but empty, so that clearing a text input
// never zeroes a stored amount.
func (editable RaceEditable) updates() (map[string]any, error) {
	u := make(map[string]any)

	if editable.Name != nil {
		name := strings.TrimSpace(*editable.Name)
		if name == "" {
			return nil, errNameRequired
		}
		u["name"] = name
	}

	if editable.Date != nil {
		date, err := models.ParseDate(*editable.Date)
		if err != nil {
			return nil, err
		}
		u["date"] = date
	}

	if editable.Venue != nil {
		u["venue"] = strings.TrimSpace(*editable.Venue)
	}

	if editable.Kind != nil {
		u["kind"] = *editable.Kind
	}

	if editable.Runners != nil {
		u["runners"] = *editable.Runners
	}

	if editable.Accesses != nil {
		u["accesses"] = *editable.Accesses
	}

	setCents := func(column string, value *string) {
		if value != nil && strings.TrimSpace(*value) != "" {
			u[column] = money.ParseCents(*value)
		}
	}
	setCents("revenue_ars_cents", editable.RevenueARS)
	setCents("revenue_usd_cents", editable.RevenueUSD)

	setPct := func(column string, value *string) {
		if value == nil {
			return
		}
		if p, ok := money.ParsePercent(*value); ok {
			u[column] = p
		}
	}
	setPct("payment_pct", editable.PaymentPct)
	setPct("gross_receipts_pct", editable.GrossReceiptsPct)
	setPct("vat_pct", editable.VATPct)
	setPct("provider_pct", editable.ProviderPct)
	setPct("debit_credit_pct", editable.DebitCreditPct)

	if len(u) == 0 {
		return nil, errNoFieldsSet
	}

	return u, nil
}

type RaceLinks struct {
	Self          string `json:"self" example:"https://example.com/api/v1/races/d1b5c5e3-35a0-4ba9-ae2f-fa19318a1f1e"`
	Sales         string `json:"sales" example:"https://example.com/api/v1/races/d1b5c5e3-35a0-4ba9-ae2f-fa19318a1f1e/sales"`
	Photographers string `json:"photographers" example:"https://example.com/api/v1/races/d1b5c5e3-35a0-4ba9-ae2f-fa19318a1f1e/photographers"`
	Expenses      string `json:"expenses" example:"https://example.com/api/v1/races/d1b5c5e3-35a0-4ba9-ae2f-fa19318a1f1e/expenses"`
}

// Race is the API representation of a race.
type Race struct {
	models.Race
	Links RaceLinks `json:"links"`
}

func newRace(c *gin.Context, model models.Race) Race {
	url := c.GetString(string(models.ContextURL))
	self := fmt.Sprintf("%s/v1/races/%s", url, model.ID)

	return Race{
		Race: model,
		Links: RaceLinks{
			Self:          self,
			Sales:         self + "/sales",
			Photographers: self + "/photographers",
			Expenses:      self + "/expenses",
		},
	}
}

// RaceListItem is one race in the executive list: the race plus the same
// derived figures the detail endpoint returns.
type RaceListItem struct {
	Race
	Figures finance.Breakdown `json:"figures"`
}

// RaceDetail is the full race: the race, its child rows and the derived
// figures.
type RaceDetail struct {
	Race
	Sales         []models.RaceSaleType     `json:"sales"`
	Photographers []models.RacePhotographer `json:"photographers"`
	Expenses      []models.RaceExpense      `json:"expenses"`
	Figures       finance.Breakdown         `json:"figures"`
}

type RaceListResponse struct {
	Data  []RaceListItem `json:"data"`                                                          // List of races
	Error *string        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type RaceResponse struct {
	Data  *Race   `json:"data"`                                                          // The race
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type RaceDetailResponse struct {
	Data  *RaceDetail `json:"data"`                                                          // The race with children and figures
	Error *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// RaceSaleTypeEditable is one sale type row in a replace request. The price
// is a free-form amount string.
type RaceSaleTypeEditable struct {
	Name          string  `json:"name" example:"Preventa 1"`
	Kind          string  `json:"kind" example:"PREVENTA"` // PREVENTA, PACK, UNIDAD, OTRO
	Currency      string  `json:"currency" example:"ARS"`
	Price         string  `json:"price" example:"1.500,00"`
	Quantity      int64   `json:"quantity" example:"100"`
	CommissionPct *string `json:"commissionPct" example:"20"`
}

func (editable RaceSaleTypeEditable) model(raceID uuid.UUID) models.RaceSaleType {
	currency := strings.ToUpper(strings.TrimSpace(editable.Currency))
	if currency == "" {
		currency = finance.CurrencyARS
	}

	var commission *decimal.Decimal
	if editable.CommissionPct != nil {
		if p, ok := money.ParsePercent(*editable.CommissionPct); ok {
			commission = &p
		}
	}

	return models.RaceSaleType{
		RaceID:        raceID,
		Name:          editable.Name,
		Kind:          editable.Kind,
		Currency:      currency,
		PriceCents:    money.ParseCents(editable.Price),
		Quantity:      editable.Quantity,
		CommissionPct: commission,
	}
}

type RaceSaleTypeListResponse struct {
	Data  []models.RaceSaleType `json:"data"`                                                          // The race's sale types
	Error *string               `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// RacePhotographerEditable is one assignment row in a replace request. Rows
// are resolved to a photographer by ID first, then by name; a row matching
// neither with a non-empty name creates the photographer, anything else is
// dropped.
type RacePhotographerEditable struct {
	PhotographerID *uuid.UUID `json:"photographerId"`
	Name           string     `json:"name" example:"Ana Suárez"`

	Cost            string  `json:"cost" example:"50.000"`
	PhotosTaken     int64   `json:"photosTaken" example:"2500"`
	Downloads       int64   `json:"downloads" example:"430"`
	UniqueDownloads int64   `json:"uniqueDownloads" example:"210"`
	HoursWorked     float64 `json:"hoursWorked" example:"6.5"`
	Invoiced        bool    `json:"invoiced" example:"true"`
	Paid            bool    `json:"paid" example:"false"`
	Role            string  `json:"role" example:"principal"`
}

func (editable RacePhotographerEditable) model(raceID uuid.UUID, photographer models.Photographer) models.RacePhotographer {
	return models.RacePhotographer{
		RaceID:         raceID,
		PhotographerID: photographer.ID,
		Name:           photographer.Name,

		CostCents:       money.ParseCents(editable.Cost),
		PhotosTaken:     editable.PhotosTaken,
		Downloads:       editable.Downloads,
		UniqueDownloads: editable.UniqueDownloads,
		HoursWorked:     editable.HoursWorked,
		Invoiced:        editable.Invoiced,
		Paid:            editable.Paid,
		Role:            editable.Role,
	}
}

type RacePhotographerListResponse struct {
	Data  []models.RacePhotographer `json:"data"`                                                          // The race's photographer assignments
	Error *string                   `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// RaceExpenseEditable is one specific expense row in a replace request.
type RaceExpenseEditable struct {
	Name     string `json:"name" example:"Acreditaciones"`
	Kind     string `json:"kind" example:"LOGISTICA"`
	Amount   string `json:"amount" example:"12.000"`
	Paid     bool   `json:"paid" example:"true"`
	Invoiced bool   `json:"invoiced" example:"false"`
}

func (editable RaceExpenseEditable) model(raceID uuid.UUID) models.RaceExpense {
	return models.RaceExpense{
		RaceID:      raceID,
		Name:        editable.Name,
		Kind:        editable.Kind,
		AmountCents: money.ParseCents(editable.Amount),
		Paid:        editable.Paid,
		Invoiced:    editable.Invoiced,
	}
}

type RaceExpenseListResponse struct {
	Data  []models.RaceExpense `json:"data"`                                                          // The race's specific expenses
	Error *string              `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func strVal(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func intVal(i *int64) int64 {
	if i == nil {
		return 0
	}
	return *i
}
