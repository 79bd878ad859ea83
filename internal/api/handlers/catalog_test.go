package handlers_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/dom/esports-stats-ledger/internal/domain"
	"github.com/dom/esports-stats-ledger/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTeamHandler_Lifecycle(t *testing.T) {
	ts := testutil.NewTestServer(t)
	adminToken := ts.TokenFor(t, domain.RoleAdmin)
	userToken := ts.TokenFor(t, domain.RoleUser)

	do := func(method, path string, body interface{}, token string) *http.Response {
		req := testutil.CreateAuthenticatedRequest(t, method, ts.APIURL(path), body, token)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		t.Cleanup(func() { resp.Body.Close() })
		return resp
	}

	resp := do("POST", "/teams", map[string]string{"name": "Cloud9"}, userToken)
	testutil.AssertStatusCode(t, resp, http.StatusForbidden)

	resp = do("POST", "/teams", map[string]string{"name": ""}, adminToken)
	testutil.AssertStatusCode(t, resp, http.StatusBadRequest)

	resp = do("POST", "/teams", map[string]string{"name": "Cloud9"}, adminToken)
	var team domain.Team
	testutil.AssertStatusCode(t, resp, http.StatusCreated)
	testutil.AssertJSONResponse(t, resp, &team)
	assert.Equal(t, "Cloud9", team.Name)
	assert.Equal(t, domain.TeamStats{}, team.Stats)

	resp = do("POST", "/teams", map[string]string{"name": "Cloud9"}, adminToken)
	testutil.AssertStatusCode(t, resp, http.StatusConflict)

	resp = do("POST", "/players", map[string]interface{}{"name": "leaf", "team": team.ID.String()}, adminToken)
	testutil.AssertStatusCode(t, resp, http.StatusCreated)

	resp = do("GET", "/teams/"+team.ID.String(), nil, userToken)
	var fetched domain.Team
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	testutil.AssertJSONResponse(t, resp, &fetched)
	require.Len(t, fetched.Players, 1)
	assert.Equal(t, "leaf", fetched.Players[0].Name)

	resp = do("DELETE", "/teams/"+team.ID.String(), nil, adminToken)
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	resp = do("GET", "/teams/"+team.ID.String(), nil, userToken)
	testutil.AssertStatusCode(t, resp, http.StatusNotFound)
}

func TestStatsHandler_RebuildIsAdminOnly(t *testing.T) {
	ts := testutil.NewTestServer(t)
	f := seedSeries(t, ts)

	_, err := ts.Services.Ledger.CreateMatch(context.Background(), f.builder().Build())
	require.NoError(t, err)
	_, err = ts.Services.Ledger.ResetPlayerStats(context.Background())
	require.NoError(t, err)

	req := testutil.CreateAuthenticatedRequest(t, "POST", ts.APIURL("/stats/rebuild"), nil, ts.TokenFor(t, domain.RoleUser))
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	testutil.AssertStatusCode(t, resp, http.StatusForbidden)
	resp.Body.Close()

	req = testutil.CreateAuthenticatedRequest(t, "POST", ts.APIURL("/stats/rebuild"), nil, ts.TokenFor(t, domain.RoleAdmin))
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var result struct {
		Matches         int `json:"matches"`
		PlayersRepaired int `json:"playersRepaired"`
	}
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	testutil.AssertJSONResponse(t, resp, &result)
	assert.Equal(t, 1, result.Matches)
	assert.Equal(t, 2, result.PlayersRepaired)
	assert.Equal(t, domain.PlayerStats{Kills: 60, Deaths: 30, Assists: 15}, testutil.ReloadPlayer(t, ts.DB.DB, f.a[0]))
}
