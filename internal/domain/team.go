package domain

import (
	"time"

	"github.com/google/uuid"
)

// Team owns no membership data itself; its roster is every Player whose
// TeamID points at it.
type Team struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null"`
	Stats     TeamStats `json:"stats" gorm:"embedded;embeddedPrefix:stats_"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Relations
	Players []Player `json:"players,omitempty" gorm:"foreignKey:TeamID;constraint:OnDelete:SET NULL"`
}
