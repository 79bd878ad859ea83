package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/dom/esports-stats-ledger/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// AssertStatusCode verifies the HTTP response status code
func AssertStatusCode(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	assert.Equal(t, expected, resp.StatusCode, "unexpected status code")
}

// AssertJSONResponse decodes JSON response into v and verifies success
func AssertJSONResponse(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")

	err = json.Unmarshal(body, v)
	require.NoError(t, err, "failed to unmarshal response: %s", string(body))
}

// AssertErrorResponse verifies error response with expected status and message
func AssertErrorResponse(t *testing.T, resp *http.Response, expectedStatus int, expectedMessage string) {
	t.Helper()

	assert.Equal(t, expectedStatus, resp.StatusCode, "unexpected status code")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")

	// Error responses are plain text in this API
	assert.Contains(t, string(body), expectedMessage, "error message mismatch")
}

// ReloadTeam reads a team's stored aggregates
func ReloadTeam(t *testing.T, db *gorm.DB, team *domain.Team) domain.TeamStats {
	t.Helper()

	var fresh domain.Team
	require.NoError(t, db.First(&fresh, "id = ?", team.ID).Error)
	return fresh.Stats
}

// ReloadPlayer reads a player's stored aggregates
func ReloadPlayer(t *testing.T, db *gorm.DB, player *domain.Player) domain.PlayerStats {
	t.Helper()

	var fresh domain.Player
	require.NoError(t, db.First(&fresh, "id = ?", player.ID).Error)
	return fresh.Stats
}

// AssertTeamInvariant checks totalGames == wins + losses
func AssertTeamInvariant(t *testing.T, stats domain.TeamStats) {
	t.Helper()
	assert.Equal(t, stats.Wins+stats.Losses, stats.TotalGames, "totalGames must equal wins + losses")
}
