package domain

import (
	"time"

	"github.com/google/uuid"
)

type Player struct {
	ID        uuid.UUID   `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name      string      `json:"name" gorm:"not null"`
	TeamID    *uuid.UUID  `json:"teamId" gorm:"type:uuid;index"`
	Stats     PlayerStats `json:"stats" gorm:"embedded;embeddedPrefix:stats_"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`

	// Relations
	Team *Team `json:"team,omitempty" gorm:"foreignKey:TeamID;constraint:OnDelete:SET NULL"`
}
