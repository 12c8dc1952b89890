package v1_test

import (
	"net/http"
	"testing"

	v1 "github.com/racedesk/backend/internal/controllers/v1"
	"github.com/racedesk/backend/test"
)

func (suite *TestSuiteStandard) TestCleanup() {
	t := suite.T()

	race := suite.createTestRace(t, v1.RaceEditable{})
	suite.replaceTestSales(t, race.Data.Links.Self, []v1.RaceSaleTypeEditable{
		{Name: "Preventa", Currency: "ARS", Price: "100,00", Quantity: 1},
	})
	suite.replaceTestPhotographers(t, race.Data.Links.Self, []v1.RacePhotographerEditable{
		{Name: "Ana Suárez", Cost: "100,00"},
	})
	suite.createTestLedgerEntry(t, v1.LedgerEntryEditable{Amount: strPtr("50,00")})

	recorder := test.Request(t, http.MethodDelete, "http://example.com/v1?confirm=yes-please-delete-everything", "")
	test.AssertHTTPStatus(t, &recorder, http.StatusNoContent)

	for _, tt := range []string{
		"http://example.com/v1/races",
		"http://example.com/v1/photographers",
		"http://example.com/v1/ledger/entries",
	} {
		suite.T().Run(tt, func(t *testing.T) {
			recorder := test.Request(t, http.MethodGet, tt, "")
			test.AssertHTTPStatus(t, &recorder, http.StatusOK)

			var response struct {
				Data []any `json:"data"`
			}
			test.DecodeResponse(t, &recorder, &response)
			assertLen := len(response.Data)
			if assertLen != 0 {
				t.Errorf("list %s is not empty after cleanup, got %d resources", tt, assertLen)
			}
		})
	}

	// The ledger type catalog is re-seeded
	recorder = test.Request(t, http.MethodGet, "http://example.com/v1/ledger/types", "")
	var types v1.LedgerEntryTypeListResponse
	test.DecodeResponse(t, &recorder, &types)
	suite.Assert().Len(types.Data, 5)
}

func (suite *TestSuiteStandard) TestCleanupFails() {
	t := suite.T()
	suite.createTestRace(t, v1.RaceEditable{})

	for _, tt := range []string{
		"http://example.com/v1",
		"http://example.com/v1?confirm=",
		"http://example.com/v1?confirm=yes-please-delete-my-data",
	} {
		recorder := test.Request(t, http.MethodDelete, tt, "")
		test.AssertHTTPStatus(t, &recorder, http.StatusBadRequest)
	}

	// Nothing was deleted
	recorder := test.Request(t, http.MethodGet, "http://example.com/v1/races", "")
	var races v1.RaceListResponse
	test.DecodeResponse(t, &recorder, &races)
	suite.Assert().Len(races.Data, 1)
}

func (suite *TestSuiteStandard) TestExportImportRoundTrip() {
	t := suite.T()

	race := suite.createTestRace(t, v1.RaceEditable{Name: strPtr("Backup Race")})
	suite.replaceTestSales(t, race.Data.Links.Self, []v1.RaceSaleTypeEditable{
		{Name: "Preventa", Currency: "ARS", Price: "100,00", Quantity: 3, CommissionPct: strPtr("10")},
		{Name: "Pack USD", Currency: "USD", Price: "5,00", Quantity: 2},
	})
	suite.replaceTestPhotographers(t, race.Data.Links.Self, []v1.RacePhotographerEditable{
		{Name: "Ana Suárez", Cost: "1.000,00", PhotosTaken: 10},
	})
	suite.replaceTestExpenses(t, race.Data.Links.Self, []v1.RaceExpenseEditable{
		{Name: "Transporte", Amount: "50,00"},
	})
	suite.createTestLedgerEntry(t, v1.LedgerEntryEditable{Amount: strPtr("99,99")})

	// Export
	recorder := test.Request(t, http.MethodGet, "http://example.com/v1/admin/export", "")
	test.AssertHTTPStatus(t, &recorder, http.StatusOK)

	var export v1.ExportResponse
	test.DecodeResponse(t, &recorder, &export)
	suite.Require().NotNil(export.Data)
	suite.Assert().Len(export.Data.Races, 1)
	suite.Assert().Len(export.Data.SaleTypes, 2)
	suite.Assert().Len(export.Data.RacePhotographers, 1)
	suite.Assert().Len(export.Data.Expenses, 1)
	suite.Assert().Len(export.Data.LedgerEntries, 1)
	suite.Assert().Len(export.Data.LedgerEntryTypes, 5)
	dump := recorder.Body.String()

	// Wipe
	recorder = test.Request(t, http.MethodDelete, "http://example.com/v1?confirm=yes-please-delete-everything", "")
	test.AssertHTTPStatus(t, &recorder, http.StatusNoContent)

	// Restore the dump unchanged
	recorder = test.Request(t, http.MethodPost, "http://example.com/v1/admin/import", dump)
	test.AssertHTTPStatus(t, &recorder, http.StatusNoContent)

	// Same race, same ID, same figures
	recorder = test.Request(t, http.MethodGet, race.Data.Links.Self, "")
	test.AssertHTTPStatus(t, &recorder, http.StatusOK)

	var detail v1.RaceDetailResponse
	test.DecodeResponse(t, &recorder, &detail)
	suite.Assert().Equal(race.Data.ID, detail.Data.ID)
	suite.Assert().Equal("Backup Race", detail.Data.Name)
	suite.Assert().Equal(int64(30000), detail.Data.RevenueARSCents)
	suite.Assert().Equal(int64(1000), detail.Data.RevenueUSDCents)
	suite.Require().Len(detail.Data.Sales, 2)
	suite.Require().Len(detail.Data.Photographers, 1)
	suite.Require().Len(detail.Data.Expenses, 1)
	suite.Assert().Equal(int64(3000), detail.Data.Figures.CommissionARSCents)

	recorder = test.Request(t, http.MethodGet, "http://example.com/v1/ledger/entries", "")
	var entries v1.LedgerEntryListResponse
	test.DecodeResponse(t, &recorder, &entries)
	suite.Require().Len(entries.Data, 1)
	suite.Assert().Equal(int64(9999), entries.Data[0].AmountCents)
}

func (suite *TestSuiteStandard) TestImportFails() {
	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/admin/import", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)

	recorder = test.Request(suite.T(), http.MethodPost, "http://example.com/v1/admin/import", `{ "data": broken`)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}
