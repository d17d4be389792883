package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Question is one multiple-choice item inside a Review. Options is an
// ordered list; CorrectValue stores the correct answer as the option's
// value string, never as a positional letter or index. A submitted letter
// must always be resolved through this question's own option list.
type Question struct {
	ID           uint                        `gorm:"primarykey" json:"id"`
	ReviewID     uint                        `json:"review_id" gorm:"not null;index"`
	Prompt       string                      `json:"prompt" gorm:"type:text;not null"`
	Options      datatypes.JSONSlice[string] `json:"options" gorm:"type:jsonb;not null"`
	CorrectValue string                      `json:"correct_value" gorm:"not null"`
	Explanation  string                      `json:"explanation,omitempty" gorm:"type:text"`
	Hint         *string                     `json:"hint,omitempty"`
	Position     int                         `json:"position" gorm:"not null"`
	CreatedAt    time.Time                   `json:"created_at"`
	UpdatedAt    time.Time                   `json:"updated_at"`
	DeletedAt    gorm.DeletedAt              `gorm:"index" json:"-"`
}
