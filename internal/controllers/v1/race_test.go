package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	v1 "github.com/racedesk/backend/internal/controllers/v1"
	"github.com/racedesk/backend/internal/models"
	"github.com/racedesk/backend/test"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestRaceCreate() {
	t := suite.T()

	race := suite.createTestRace(t, v1.RaceEditable{
		Name:    strPtr("Maratón de la Ciudad"),
		Date:    strPtr("2024-09-15"),
		Venue:   strPtr("Palermo"),
		Runners: intPtr(1200),
	})

	suite.Assert().Equal("Maratón de la Ciudad", race.Data.Name)
	suite.Assert().Equal(int64(1200), race.Data.Runners)
	suite.Assert().Equal("ARS", race.Data.BaseCurrency)
	suite.Assert().Equal(int64(0), race.Data.RevenueARSCents)

	// Omitted percentages get the business defaults
	suite.Assert().True(race.Data.PaymentPct.Equal(decimal.NewFromInt(2)), "paymentPct is %s", race.Data.PaymentPct)
	suite.Assert().True(race.Data.GrossReceiptsPct.Equal(decimal.NewFromInt(4)), "grossReceiptsPct is %s", race.Data.GrossReceiptsPct)
	suite.Assert().True(race.Data.VATPct.Equal(decimal.RequireFromString("10.5")), "vatPct is %s", race.Data.VATPct)
	suite.Assert().True(race.Data.ProviderPct.Equal(decimal.NewFromInt(17)), "providerPct is %s", race.Data.ProviderPct)
	suite.Assert().True(race.Data.DebitCreditPct.Equal(decimal.RequireFromString("1.2")), "debitCreditPct is %s", race.Data.DebitCreditPct)
}

func (suite *TestSuiteStandard) TestRaceCreateExplicitPercentages() {
	t := suite.T()

	race := suite.createTestRace(t, v1.RaceEditable{
		PaymentPct: strPtr("0"),
		VATPct:     strPtr("21"),
		RevenueARS: strPtr("1.234,56"),
	})

	// An explicit zero is not an omitted value
	suite.Assert().True(race.Data.PaymentPct.IsZero(), "paymentPct is %s", race.Data.PaymentPct)
	suite.Assert().True(race.Data.VATPct.Equal(decimal.NewFromInt(21)), "vatPct is %s", race.Data.VATPct)
	suite.Assert().Equal(int64(123456), race.Data.RevenueARSCents)
}

func (suite *TestSuiteStandard) TestRaceCreateFails() {
	tests := []struct {
		name string
		body any
	}{
		{"no body", ""},
		{"missing name", v1.RaceEditable{Date: strPtr("2024-09-15")}},
		{"missing date", v1.RaceEditable{Name: strPtr("No Date")}},
		{"malformed date", map[string]string{"name": "Bad Date", "date": "15/09/2024"}},
		{"impossible date", map[string]string{"name": "Bad Date", "date": "2024-02-31"}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := test.Request(t, http.MethodPost, "http://example.com/v1/races", tt.body)
			test.AssertHTTPStatus(t, &recorder, http.StatusBadRequest)
		})
	}
}

func (suite *TestSuiteStandard) TestRaceGetNotFound() {
	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/races/2a52667c-897b-4f41-ae27-b2b3bd38d854", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)

	recorder = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/races/not-a-uuid", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestRaceUpdate() {
	t := suite.T()
	race := suite.createTestRace(t, v1.RaceEditable{RevenueARS: strPtr("100,00")})

	recorder := test.Request(t, http.MethodPatch, race.Data.Links.Self, v1.RaceEditable{Name: strPtr("Renamed Race")})
	test.AssertHTTPStatus(t, &recorder, http.StatusOK)

	var updated v1.RaceResponse
	test.DecodeResponse(t, &recorder, &updated)
	suite.Assert().Equal("Renamed Race", updated.Data.Name)

	// An empty money string leaves the stored value alone
	recorder = test.Request(t, http.MethodPatch, race.Data.Links.Self, map[string]string{"revenueARS": "", "venue": "Costanera"})
	test.AssertHTTPStatus(t, &recorder, http.StatusOK)
	test.DecodeResponse(t, &recorder, &updated)
	suite.Assert().Equal(int64(10000), updated.Data.RevenueARSCents)
	suite.Assert().Equal("Costanera", updated.Data.Venue)

	recorder = test.Request(t, http.MethodPatch, race.Data.Links.Self, map[string]string{"revenueARS": "250,50"})
	test.AssertHTTPStatus(t, &recorder, http.StatusOK)
	test.DecodeResponse(t, &recorder, &updated)
	suite.Assert().Equal(int64(25050), updated.Data.RevenueARSCents)

	// A request that does not touch any field is an error
	recorder = test.Request(t, http.MethodPatch, race.Data.Links.Self, map[string]string{"revenueARS": ""})
	test.AssertHTTPStatus(t, &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestRaceSalesReplaceRecomputesRevenue() {
	t := suite.T()
	race := suite.createTestRace(t, v1.RaceEditable{})

	sales := []v1.RaceSaleTypeEditable{
		{Name: "Preventa 1", Kind: "PREVENTA", Currency: "ARS", Price: "100,00", Quantity: 3},
		{Name: "Pack Internacional", Kind: "PACK", Currency: "USD", Price: "50,00", Quantity: 2},
	}

	// Replacing twice with the same rows must give the same result
	for i := 0; i < 2; i++ {
		response := suite.replaceTestSales(t, race.Data.Links.Self, sales)
		suite.Assert().Len(response.Data, 2)

		recorder := test.Request(t, http.MethodGet, race.Data.Links.Self, "")
		test.AssertHTTPStatus(t, &recorder, http.StatusOK)

		var detail v1.RaceDetailResponse
		test.DecodeResponse(t, &recorder, &detail)

		suite.Assert().Equal(int64(30000), detail.Data.RevenueARSCents)
		suite.Assert().Equal(int64(10000), detail.Data.RevenueUSDCents)
		suite.Assert().Len(detail.Data.Sales, 2)
	}

	// Clearing the sale types zeroes the revenue
	response := suite.replaceTestSales(t, race.Data.Links.Self, []v1.RaceSaleTypeEditable{})
	suite.Assert().Len(response.Data, 0)

	recorder := test.Request(t, http.MethodGet, race.Data.Links.Self, "")
	var detail v1.RaceDetailResponse
	test.DecodeResponse(t, &recorder, &detail)
	suite.Assert().Equal(int64(0), detail.Data.RevenueARSCents)
	suite.Assert().Equal(int64(0), detail.Data.RevenueUSDCents)
}

func (suite *TestSuiteStandard) TestRaceSalesInvalidCurrency() {
	t := suite.T()
	race := suite.createTestRace(t, v1.RaceEditable{})

	recorder := test.Request(t, http.MethodPut, race.Data.Links.Self+"/sales", []v1.RaceSaleTypeEditable{
		{Name: "Euro Pack", Currency: "EUR", Price: "10,00", Quantity: 1},
	})
	test.AssertHTTPStatus(t, &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestRaceFigures() {
	t := suite.T()
	race := suite.createTestRace(t, v1.RaceEditable{})

	suite.replaceTestSales(t, race.Data.Links.Self, []v1.RaceSaleTypeEditable{
		{Name: "Preventa 1", Currency: "ARS", Price: "100,00", Quantity: 3, CommissionPct: strPtr("10")},
	})
	suite.replaceTestPhotographers(t, race.Data.Links.Self, []v1.RacePhotographerEditable{
		{Name: "Ana Suárez", Cost: "50,00", PhotosTaken: 100, Downloads: 40, UniqueDownloads: 20},
	})
	suite.replaceTestExpenses(t, race.Data.Links.Self, []v1.RaceExpenseEditable{
		{Name: "Acreditaciones", Amount: "20,00"},
	})

	recorder := test.Request(t, http.MethodGet, race.Data.Links.Self, "")
	test.AssertHTTPStatus(t, &recorder, http.StatusOK)

	var detail v1.RaceDetailResponse
	test.DecodeResponse(t, &recorder, &detail)

	figures := detail.Data.Figures
	suite.Assert().Equal(int64(30000), figures.RevenueARSCents)
	suite.Assert().Equal(int64(600), figures.PaymentCostCents)         // 2%
	suite.Assert().Equal(int64(1200), figures.GrossReceiptsCostCents)  // 4%
	suite.Assert().Equal(int64(3150), figures.VATCostCents)            // 10.5%
	suite.Assert().Equal(int64(5100), figures.ProviderCostCents)       // 17%
	suite.Assert().Equal(int64(360), figures.DebitCreditCostCents)     // 1.2%
	suite.Assert().Equal(int64(3000), figures.CommissionARSCents)      // 10% of 30000
	suite.Assert().Equal(int64(5000), figures.PhotographerCostCents)
	suite.Assert().Equal(int64(2000), figures.ExpenseCostCents)
	suite.Assert().Equal(int64(0), figures.OrganizerPreCostCents)
	suite.Assert().Equal(int64(0), figures.OrganizerPostCostCents)
	suite.Assert().Equal(int64(3), figures.TotalOrders)

	wantTotal := int64(600 + 1200 + 3150 + 5100 + 360 + 3000 + 5000 + 2000)
	suite.Assert().Equal(wantTotal, figures.TotalCostARSCents)
	suite.Assert().Equal(int64(30000)-wantTotal, figures.NetARSCents)
	suite.Assert().Equal(figures.NetARSCents, figures.NetCents)
}

func (suite *TestSuiteStandard) TestRaceListMatchesDetail() {
	t := suite.T()

	first := suite.createTestRace(t, v1.RaceEditable{Name: strPtr("First Race"), Date: strPtr("2024-03-01")})
	_ = suite.createTestRace(t, v1.RaceEditable{Name: strPtr("Second Race"), Date: strPtr("2024-06-01")})

	suite.replaceTestSales(t, first.Data.Links.Self, []v1.RaceSaleTypeEditable{
		{Name: "Preventa", Currency: "ARS", Price: "123,45", Quantity: 7, CommissionPct: strPtr("12,5")},
		{Name: "Pack USD", Currency: "USD", Price: "10,00", Quantity: 2, CommissionPct: strPtr("5")},
	})
	suite.replaceTestPhotographers(t, first.Data.Links.Self, []v1.RacePhotographerEditable{
		{Name: "Ana Suárez", Cost: "1.000,00", PhotosTaken: 10, Downloads: 5, UniqueDownloads: 2},
	})
	suite.replaceTestExpenses(t, first.Data.Links.Self, []v1.RaceExpenseEditable{
		{Name: "Transporte", Amount: "333,33"},
	})

	recorder := test.Request(t, http.MethodGet, "http://example.com/v1/races", "")
	test.AssertHTTPStatus(t, &recorder, http.StatusOK)

	var list v1.RaceListResponse
	test.DecodeResponse(t, &recorder, &list)
	suite.Require().Len(list.Data, 2)

	// Newest first
	suite.Assert().Equal("Second Race", list.Data[0].Name)
	suite.Assert().Equal("First Race", list.Data[1].Name)

	for _, item := range list.Data {
		recorder := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/races/%s", item.ID), "")
		test.AssertHTTPStatus(t, &recorder, http.StatusOK)

		var detail v1.RaceDetailResponse
		test.DecodeResponse(t, &recorder, &detail)

		// Every figure in the list is the same as in the detail
		suite.Assert().Equal(detail.Data.Figures, item.Figures, "figures differ for race %s", item.Name)
	}
}

func (suite *TestSuiteStandard) TestRacePhotographersEmptyReplacementGuard() {
	t := suite.T()
	race := suite.createTestRace(t, v1.RaceEditable{})

	suite.replaceTestPhotographers(t, race.Data.Links.Self, []v1.RacePhotographerEditable{
		{Name: "Ana Suárez", Cost: "100,00"},
	})

	// Replacing a non-empty set with an empty one is rejected
	recorder := test.Request(t, http.MethodPut, race.Data.Links.Self+"/photographers", []v1.RacePhotographerEditable{})
	test.AssertHTTPStatus(t, &recorder, http.StatusBadRequest)

	// A list where every row is dropped counts as empty too
	recorder = test.Request(t, http.MethodPut, race.Data.Links.Self+"/photographers", []v1.RacePhotographerEditable{{Name: "   "}})
	test.AssertHTTPStatus(t, &recorder, http.StatusBadRequest)

	// The previous assignments are still there
	recorder = test.Request(t, http.MethodGet, race.Data.Links.Self+"/photographers", "")
	test.AssertHTTPStatus(t, &recorder, http.StatusOK)

	var assignments v1.RacePhotographerListResponse
	test.DecodeResponse(t, &recorder, &assignments)
	suite.Require().Len(assignments.Data, 1)
	suite.Assert().Equal("Ana Suárez", assignments.Data[0].Name)
}

func (suite *TestSuiteStandard) TestRacePhotographersResolution() {
	t := suite.T()
	race := suite.createTestRace(t, v1.RaceEditable{})
	existing := suite.createTestPhotographer(t, v1.PhotographerEditable{Name: strPtr("Bruno Díaz")})

	response := suite.replaceTestPhotographers(t, race.Data.Links.Self, []v1.RacePhotographerEditable{
		{PhotographerID: &existing.Data.ID, Name: "ignored, the ID wins", Cost: "10,00"},
		{Name: "Bruno Díaz", Cost: "20,00"},        // resolves to the same photographer by name
		{Name: "Carla Nueva", Cost: "30,00"},       // created on the fly
		{Name: "", Cost: "40,00"},                  // dropped
	})

	suite.Require().Len(response.Data, 3)
	suite.Assert().Equal("Bruno Díaz", response.Data[0].Name)
	suite.Assert().Equal(existing.Data.ID, response.Data[0].PhotographerID)
	suite.Assert().Equal(existing.Data.ID, response.Data[1].PhotographerID)
	suite.Assert().Equal("Carla Nueva", response.Data[2].Name)

	// The created photographer is now a global resource
	recorder := test.Request(t, http.MethodGet, "http://example.com/v1/photographers", "")
	test.AssertHTTPStatus(t, &recorder, http.StatusOK)

	var photographers v1.PhotographerListResponse
	test.DecodeResponse(t, &recorder, &photographers)
	suite.Assert().Len(photographers.Data, 2)
}

func (suite *TestSuiteStandard) TestRaceExpensesReplace() {
	t := suite.T()
	race := suite.createTestRace(t, v1.RaceEditable{})

	response := suite.replaceTestExpenses(t, race.Data.Links.Self, []v1.RaceExpenseEditable{
		{Name: "Acreditaciones", Kind: "LOGISTICA", Amount: "12.000,00", Paid: true},
		{Name: "", Amount: "99,99"}, // dropped
	})

	suite.Require().Len(response.Data, 1)
	suite.Assert().Equal(int64(1200000), response.Data[0].AmountCents)
	suite.Assert().True(response.Data[0].Paid)

	// Expenses can be cleared, there is no guard here
	response = suite.replaceTestExpenses(t, race.Data.Links.Self, []v1.RaceExpenseEditable{})
	suite.Assert().Len(response.Data, 0)
}

func (suite *TestSuiteStandard) TestRaceDeleteCascades() {
	t := suite.T()
	race := suite.createTestRace(t, v1.RaceEditable{})

	suite.replaceTestSales(t, race.Data.Links.Self, []v1.RaceSaleTypeEditable{
		{Name: "Preventa", Currency: "ARS", Price: "100,00", Quantity: 1},
	})
	suite.replaceTestPhotographers(t, race.Data.Links.Self, []v1.RacePhotographerEditable{
		{Name: "Ana Suárez", Cost: "100,00"},
	})

	// A race-scoped ledger entry goes away with the race, a global one stays
	scoped := models.LedgerEntry{RaceID: &race.Data.ID, Kind: models.LedgerExpense, TypeID: "operating_cost", AmountCents: 100}
	suite.Require().NoError(models.DB.Create(&scoped).Error)
	suite.createTestLedgerEntry(t, v1.LedgerEntryEditable{Amount: strPtr("50,00")})

	recorder := test.Request(t, http.MethodDelete, race.Data.Links.Self, "")
	test.AssertHTTPStatus(t, &recorder, http.StatusNoContent)

	recorder = test.Request(t, http.MethodGet, race.Data.Links.Self, "")
	test.AssertHTTPStatus(t, &recorder, http.StatusNotFound)

	var count int64
	suite.Require().NoError(models.DB.Model(&models.RaceSaleType{}).Count(&count).Error)
	suite.Assert().Equal(int64(0), count)
	suite.Require().NoError(models.DB.Model(&models.RacePhotographer{}).Count(&count).Error)
	suite.Assert().Equal(int64(0), count)
	suite.Require().NoError(models.DB.Model(&models.LedgerEntry{}).Count(&count).Error)
	suite.Assert().Equal(int64(1), count)

	// The photographer itself survives the race
	recorder = test.Request(t, http.MethodGet, "http://example.com/v1/photographers", "")
	var photographers v1.PhotographerListResponse
	test.DecodeResponse(t, &recorder, &photographers)
	suite.Assert().Len(photographers.Data, 1)
}
