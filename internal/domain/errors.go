package domain

import (
	"errors"
	"fmt"
)

// Error categories. Every error below wraps exactly one of them.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
)

// Lookup errors
var (
	ErrTeamNotFound   = fmt.Errorf("team %w", ErrNotFound)
	ErrPlayerNotFound = fmt.Errorf("player %w", ErrNotFound)
	ErrAgentNotFound  = fmt.Errorf("agent %w", ErrNotFound)
	ErrMapNotFound    = fmt.Errorf("map %w", ErrNotFound)
	ErrMatchNotFound  = fmt.Errorf("match %w", ErrNotFound)
	ErrUserNotFound   = fmt.Errorf("user %w", ErrNotFound)
)

// Match write errors
var (
	ErrInvalidMapCount = fmt.Errorf("%w: a match must have exactly %d maps", ErrValidation, MapsPerMatch)
	ErrInvalidTeams    = fmt.Errorf("%w: the provided teams are not valid", ErrValidation)
	ErrSameTeam        = fmt.Errorf("%w: a team cannot play against itself", ErrValidation)
	ErrEmptyRoster     = fmt.Errorf("%w: both teams need at least one player", ErrValidation)
	ErrDrawnSeries     = fmt.Errorf("%w: map wins are tied, the series has no winner", ErrValidation)
	ErrUnknownPlayer   = fmt.Errorf("%w: stats reference a player on neither roster", ErrValidation)
	ErrUnknownMap      = fmt.Errorf("%w: unknown map", ErrValidation)
	ErrUnknownAgent    = fmt.Errorf("%w: unknown agent", ErrValidation)
	ErrNegativeValue   = fmt.Errorf("%w: scores and stats must be non-negative", ErrValidation)
)

// Catalog errors
var (
	ErrInvalidName       = fmt.Errorf("%w: name is required", ErrValidation)
	ErrNameTaken         = fmt.Errorf("%w: name already exists", ErrConflict)
	ErrTeamHasMatches    = fmt.Errorf("%w: team has recorded matches", ErrConflict)
	ErrMapInUse          = fmt.Errorf("%w: map is referenced by recorded matches", ErrConflict)
	ErrAgentInUse        = fmt.Errorf("%w: agent is referenced by recorded matches", ErrConflict)
	ErrDisplayNameExists = fmt.Errorf("%w: display name already exists", ErrConflict)
	ErrInvalidRole       = fmt.Errorf("%w: invalid role", ErrValidation)
)
