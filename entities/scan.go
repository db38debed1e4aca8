package entities

import (
	"github.com/google/uuid"
)

// Scan is one completed ingredient-extraction-plus-analysis event.
// Rows are append-only; nothing updates or deletes them. UserID is a weak
// reference: anonymous assessments are never persisted, but the column
// stays nullable so older rows without an owner still load.
type Scan struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	UserID       *uuid.UUID `gorm:"index" json:"user_id,omitempty"`
	Ingredients  string     `gorm:"type:text" json:"ingredients"`
	AnalysisJSON string     `gorm:"type:text" json:"analysis_json"`
	ImageURL     string     `json:"image_url,omitempty"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}
