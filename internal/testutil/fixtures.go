package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/dom/esports-stats-ledger/internal/domain"
	"github.com/dom/esports-stats-ledger/internal/service"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	displayName string
	password    string
	role        domain.Role
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		displayName: fmt.Sprintf("testuser_%s", uuid.New().String()[:8]),
		password:    "testpassword123",
		role:        domain.RoleUser,
	}
}

// WithDisplayName sets the display name
func (b *UserBuilder) WithDisplayName(name string) *UserBuilder {
	b.displayName = name
	return b
}

// WithPassword sets the password
func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

// WithRole sets the role
func (b *UserBuilder) WithRole(role domain.Role) *UserBuilder {
	b.role = role
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		DisplayName:  b.displayName,
		PasswordHash: string(hashedPassword),
		Role:         b.role,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// AuthResponse matches the API auth response
type AuthResponse struct {
	User struct {
		ID          string `json:"id"`
		DisplayName string `json:"displayName"`
		Role        string `json:"role"`
	} `json:"user"`
	AccessToken string `json:"accessToken"`
}

// BuildAndAuthenticate registers a user via the API and returns the user and access token
func (b *UserBuilder) BuildAndAuthenticate(t *testing.T, ts *TestServer) (*domain.User, string) {
	t.Helper()

	reqBody := map[string]string{
		"displayName": b.displayName,
		"password":    b.password,
	}
	body, _ := json.Marshal(reqBody)

	resp, err := http.Post(ts.APIURL("/auth/register"), "application/json", bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("failed to register user: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status code: %d", resp.StatusCode)
	}

	var authResp AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&authResp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	userID, _ := uuid.Parse(authResp.User.ID)
	user := &domain.User{
		ID:          userID,
		DisplayName: authResp.User.DisplayName,
		Role:        domain.Role(authResp.User.Role),
	}

	return user, authResp.AccessToken
}

// TeamBuilder creates test teams with a builder pattern
type TeamBuilder struct {
	name  string
	stats domain.TeamStats
}

// NewTeamBuilder creates a new TeamBuilder with a unique name
func NewTeamBuilder() *TeamBuilder {
	return &TeamBuilder{
		name: fmt.Sprintf("team_%s", uuid.New().String()[:8]),
	}
}

func (b *TeamBuilder) WithName(name string) *TeamBuilder {
	b.name = name
	return b
}

// WithStats seeds the team's aggregates
func (b *TeamBuilder) WithStats(stats domain.TeamStats) *TeamBuilder {
	b.stats = stats
	return b
}

func (b *TeamBuilder) Build(t *testing.T, db *gorm.DB) *domain.Team {
	t.Helper()

	team := &domain.Team{
		ID:        uuid.New(),
		Name:      b.name,
		Stats:     b.stats,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := db.Omit("Players").Create(team).Error; err != nil {
		t.Fatalf("failed to create team: %v", err)
	}

	return team
}

// PlayerBuilder creates test players with a builder pattern
type PlayerBuilder struct {
	name   string
	teamID *uuid.UUID
	stats  domain.PlayerStats
}

func NewPlayerBuilder() *PlayerBuilder {
	return &PlayerBuilder{
		name: fmt.Sprintf("player_%s", uuid.New().String()[:8]),
	}
}

func (b *PlayerBuilder) WithName(name string) *PlayerBuilder {
	b.name = name
	return b
}

func (b *PlayerBuilder) WithTeam(team *domain.Team) *PlayerBuilder {
	b.teamID = &team.ID
	return b
}

func (b *PlayerBuilder) WithStats(stats domain.PlayerStats) *PlayerBuilder {
	b.stats = stats
	return b
}

func (b *PlayerBuilder) Build(t *testing.T, db *gorm.DB) *domain.Player {
	t.Helper()

	player := &domain.Player{
		ID:        uuid.New(),
		Name:      b.name,
		TeamID:    b.teamID,
		Stats:     b.stats,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := db.Omit("Team").Create(player).Error; err != nil {
		t.Fatalf("failed to create player: %v", err)
	}

	return player
}

// BuildRoster creates a team with count players in roster order
func BuildRoster(t *testing.T, db *gorm.DB, name string, count int) (*domain.Team, []*domain.Player) {
	t.Helper()

	team := NewTeamBuilder().WithName(name).Build(t, db)
	players := make([]*domain.Player, count)
	for i := range players {
		players[i] = NewPlayerBuilder().
			WithName(fmt.Sprintf("%s_p%d", name, i+1)).
			WithTeam(team).
			Build(t, db)
		// Roster order follows created_at.
		time.Sleep(time.Millisecond)
	}
	return team, players
}

func NewAgent(t *testing.T, db *gorm.DB, name string) *domain.Agent {
	t.Helper()

	agent := &domain.Agent{ID: uuid.New(), Name: name, Icon: name + ".png"}
	if err := db.Create(agent).Error; err != nil {
		t.Fatalf("failed to create agent: %v", err)
	}
	return agent
}

func NewMap(t *testing.T, db *gorm.DB, name string) *domain.Map {
	t.Helper()

	m := &domain.Map{ID: uuid.New(), Name: name}
	if err := db.Create(m).Error; err != nil {
		t.Fatalf("failed to create map: %v", err)
	}
	return m
}

// MatchInputBuilder assembles ledger input map by map
type MatchInputBuilder struct {
	input service.MatchInput
}

func NewMatchInputBuilder(team1, team2 *domain.Team) *MatchInputBuilder {
	return &MatchInputBuilder{
		input: service.MatchInput{Team1ID: team1.ID, Team2ID: team2.ID},
	}
}

// WithMap appends a map result; stats may be nil.
func (b *MatchInputBuilder) WithMap(m *domain.Map, team1Score, team2Score int, stats map[uuid.UUID]domain.StatInput) *MatchInputBuilder {
	b.input.Maps = append(b.input.Maps, domain.MapInput{
		MapID:      m.ID,
		Team1Score: team1Score,
		Team2Score: team2Score,
		Stats:      stats,
	})
	return b
}

func (b *MatchInputBuilder) Build() service.MatchInput {
	return b.input
}

// Payload renders the input as the HTTP match write body
func (b *MatchInputBuilder) Payload() map[string]interface{} {
	maps := make([]map[string]interface{}, len(b.input.Maps))
	for i, m := range b.input.Maps {
		stats := make(map[string]interface{}, len(m.Stats))
		for playerID, s := range m.Stats {
			stat := map[string]interface{}{
				"kills":   s.Kills,
				"deaths":  s.Deaths,
				"assists": s.Assists,
			}
			if s.AgentID != nil {
				stat["agent"] = s.AgentID.String()
			}
			stats[playerID.String()] = stat
		}
		maps[i] = map[string]interface{}{
			"mapId":      m.MapID.String(),
			"team1Score": m.Team1Score,
			"team2Score": m.Team2Score,
			"stats":      stats,
		}
	}
	return map[string]interface{}{
		"team1": b.input.Team1ID.String(),
		"team2": b.input.Team2ID.String(),
		"maps":  maps,
	}
}

// CreateAuthenticatedRequest creates an HTTP request with auth header
func CreateAuthenticatedRequest(t *testing.T, method, url string, body interface{}, token string) *http.Request {
	t.Helper()

	var bodyReader *bytes.Buffer
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		bodyReader = bytes.NewBuffer(jsonBody)
	} else {
		bodyReader = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, url, bodyReader)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req
}
