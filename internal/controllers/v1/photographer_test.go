package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	v1 "github.com/racedesk/backend/internal/controllers/v1"
	"github.com/racedesk/backend/test"
)

func (suite *TestSuiteStandard) TestPhotographerCreate() {
	t := suite.T()

	photographer := suite.createTestPhotographer(t, v1.PhotographerEditable{
		Name:  strPtr("Ana Suárez"),
		Email: strPtr("ana@example.com"),
		TaxID: strPtr("27-12345678-3"),
		Notes: strPtr("Covers trail races only"),
	})

	suite.Assert().Equal("Ana Suárez", photographer.Data.Name)
	suite.Assert().Equal("ana@example.com", photographer.Data.Email)
	suite.Assert().Equal("27-12345678-3", photographer.Data.TaxID)
}

func (suite *TestSuiteStandard) TestPhotographerCreateFails() {
	tests := []struct {
		name string
		body any
	}{
		{"no body", ""},
		{"missing name", v1.PhotographerEditable{Email: strPtr("nobody@example.com")}},
		{"blank name", v1.PhotographerEditable{Name: strPtr("   ")}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := test.Request(t, http.MethodPost, "http://example.com/v1/photographers", tt.body)
			test.AssertHTTPStatus(t, &recorder, http.StatusBadRequest)
		})
	}
}

func (suite *TestSuiteStandard) TestPhotographerListKPIs() {
	t := suite.T()

	first := suite.createTestRace(t, v1.RaceEditable{Name: strPtr("First Race"), Date: strPtr("2024-03-01")})
	second := suite.createTestRace(t, v1.RaceEditable{Name: strPtr("Second Race"), Date: strPtr("2024-06-01")})

	suite.replaceTestPhotographers(t, first.Data.Links.Self, []v1.RacePhotographerEditable{
		{Name: "Ana Suárez", Cost: "100,00", PhotosTaken: 1000, Downloads: 200, UniqueDownloads: 100},
	})
	suite.replaceTestPhotographers(t, second.Data.Links.Self, []v1.RacePhotographerEditable{
		{Name: "Ana Suárez", Cost: "200,00", PhotosTaken: 3000, Downloads: 400, UniqueDownloads: 200},
	})

	recorder := test.Request(t, http.MethodGet, "http://example.com/v1/photographers", "")
	test.AssertHTTPStatus(t, &recorder, http.StatusOK)

	var list v1.PhotographerListResponse
	test.DecodeResponse(t, &recorder, &list)
	suite.Require().Len(list.Data, 1)

	kpis := list.Data[0].KPIs
	suite.Assert().Equal(int64(2), kpis.Races)
	suite.Assert().Equal(int64(4000), kpis.PhotosTaken)
	suite.Assert().Equal(int64(600), kpis.Downloads)
	suite.Assert().Equal(int64(300), kpis.UniqueDownloads)
	suite.Assert().Equal(int64(30000), kpis.CostCents)
	suite.Assert().InDelta(0.15, kpis.DownloadRate, 1e-9)
	suite.Assert().InDelta(0.5, kpis.Reach, 1e-9)
	suite.Assert().Equal(int64(50), kpis.CostPerDownloadCents)
}

func (suite *TestSuiteStandard) TestPhotographerDetail() {
	t := suite.T()

	race := suite.createTestRace(t, v1.RaceEditable{Name: strPtr("Detail Race"), Date: strPtr("2024-05-05")})
	assignments := suite.replaceTestPhotographers(t, race.Data.Links.Self, []v1.RacePhotographerEditable{
		{Name: "Ana Suárez", Cost: "100,00", PhotosTaken: 500, Downloads: 100, UniqueDownloads: 60, Role: "principal"},
	})
	suite.Require().Len(assignments.Data, 1)

	url := fmt.Sprintf("http://example.com/v1/photographers/%s", assignments.Data[0].PhotographerID)
	recorder := test.Request(t, http.MethodGet, url, "")
	test.AssertHTTPStatus(t, &recorder, http.StatusOK)

	var detail v1.PhotographerDetailResponse
	test.DecodeResponse(t, &recorder, &detail)

	suite.Assert().Equal("Ana Suárez", detail.Data.Name)
	suite.Require().Len(detail.Data.Races, 1)
	suite.Assert().Equal("Detail Race", detail.Data.Races[0].RaceName)
	suite.Assert().Equal("principal", detail.Data.Races[0].Role)
	suite.Assert().Equal(int64(1), detail.Data.KPIs.Races)
	suite.Assert().Equal(int64(100), detail.Data.KPIs.CostPerDownloadCents)
}

func (suite *TestSuiteStandard) TestPhotographerUpdateSyncsAssignments() {
	t := suite.T()

	race := suite.createTestRace(t, v1.RaceEditable{})
	assignments := suite.replaceTestPhotographers(t, race.Data.Links.Self, []v1.RacePhotographerEditable{
		{Name: "Ana Suárez", Cost: "100,00"},
	})
	suite.Require().Len(assignments.Data, 1)

	url := fmt.Sprintf("http://example.com/v1/photographers/%s", assignments.Data[0].PhotographerID)
	recorder := test.Request(t, http.MethodPatch, url, v1.PhotographerEditable{Name: strPtr("Ana Suárez de Paz")})
	test.AssertHTTPStatus(t, &recorder, http.StatusOK)

	recorder = test.Request(t, http.MethodGet, race.Data.Links.Self+"/photographers", "")
	var rows v1.RacePhotographerListResponse
	test.DecodeResponse(t, &recorder, &rows)
	suite.Require().Len(rows.Data, 1)
	suite.Assert().Equal("Ana Suárez de Paz", rows.Data[0].Name)

	// No fields at all is an error
	recorder = test.Request(t, http.MethodPatch, url, map[string]string{})
	test.AssertHTTPStatus(t, &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestPhotographerDeleteCascades() {
	t := suite.T()

	race := suite.createTestRace(t, v1.RaceEditable{})
	assignments := suite.replaceTestPhotographers(t, race.Data.Links.Self, []v1.RacePhotographerEditable{
		{Name: "Ana Suárez", Cost: "100,00", PhotosTaken: 10},
	})
	suite.Require().Len(assignments.Data, 1)

	url := fmt.Sprintf("http://example.com/v1/photographers/%s", assignments.Data[0].PhotographerID)
	recorder := test.Request(t, http.MethodDelete, url, "")
	test.AssertHTTPStatus(t, &recorder, http.StatusNoContent)

	recorder = test.Request(t, http.MethodGet, race.Data.Links.Self+"/photographers", "")
	var rows v1.RacePhotographerListResponse
	test.DecodeResponse(t, &recorder, &rows)
	suite.Assert().Len(rows.Data, 0)

	// Nobody left to rank
	recorder = test.Request(t, http.MethodGet, "http://example.com/v1/photographers/ranking", "")
	var ranking v1.RankingResponse
	test.DecodeResponse(t, &recorder, &ranking)
	suite.Assert().Len(ranking.Data, 0)
}

func (suite *TestSuiteStandard) TestRanking() {
	t := suite.T()

	race := suite.createTestRace(t, v1.RaceEditable{})
	suite.replaceTestPhotographers(t, race.Data.Links.Self, []v1.RacePhotographerEditable{
		{Name: "Ana", Cost: "1,00", PhotosTaken: 1000, Downloads: 200, UniqueDownloads: 100},
		{Name: "Bruno", Cost: "1,00", PhotosTaken: 500, Downloads: 100, UniqueDownloads: 50},
	})

	recorder := test.Request(t, http.MethodGet, "http://example.com/v1/photographers/ranking", "")
	test.AssertHTTPStatus(t, &recorder, http.StatusOK)

	var ranking v1.RankingResponse
	test.DecodeResponse(t, &recorder, &ranking)
	suite.Require().Len(ranking.Data, 2)

	// Ana leads every component, so her composite score is 1
	suite.Assert().Equal("Ana", ranking.Data[0].Name)
	suite.Assert().InDelta(1.0, ranking.Data[0].Score, 1e-9)
	suite.Assert().Equal("Bruno", ranking.Data[1].Name)

	// Both have the same efficiency and reach, so with volume and downloads
	// disabled they tie and order falls back to the name
	recorder = test.Request(t, http.MethodGet, "http://example.com/v1/photographers/ranking?volume=0&downloads=false", "")
	test.DecodeResponse(t, &recorder, &ranking)
	suite.Require().Len(ranking.Data, 2)
	suite.Assert().InDelta(ranking.Data[0].Score, ranking.Data[1].Score, 1e-9)
	suite.Assert().Equal("Ana", ranking.Data[0].Name)
}

func (suite *TestSuiteStandard) TestRankingRaceFilter() {
	t := suite.T()

	first := suite.createTestRace(t, v1.RaceEditable{Name: strPtr("First Race"), Date: strPtr("2024-03-01")})
	second := suite.createTestRace(t, v1.RaceEditable{Name: strPtr("Second Race"), Date: strPtr("2024-06-01")})

	suite.replaceTestPhotographers(t, first.Data.Links.Self, []v1.RacePhotographerEditable{
		{Name: "Ana", PhotosTaken: 1000, Downloads: 100, UniqueDownloads: 50},
	})
	suite.replaceTestPhotographers(t, second.Data.Links.Self, []v1.RacePhotographerEditable{
		{Name: "Bruno", PhotosTaken: 2000, Downloads: 200, UniqueDownloads: 100},
	})

	url := fmt.Sprintf("http://example.com/v1/photographers/ranking?race=%s", first.Data.ID)
	recorder := test.Request(t, http.MethodGet, url, "")
	test.AssertHTTPStatus(t, &recorder, http.StatusOK)

	var ranking v1.RankingResponse
	test.DecodeResponse(t, &recorder, &ranking)
	suite.Require().Len(ranking.Data, 1)
	suite.Assert().Equal("Ana", ranking.Data[0].Name)

	recorder = test.Request(t, http.MethodGet, "http://example.com/v1/photographers/ranking?race=not-a-uuid", "")
	test.AssertHTTPStatus(t, &recorder, http.StatusBadRequest)
}
