package model

import (
	"time"

	"gorm.io/gorm"
)

// Review is the content container an Assessment is generated from. It owns
// the ordered question set and is treated as immutable once any assessment
// referencing it has been sent to learners.
type Review struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Title     string         `json:"title" gorm:"not null"`
	Subject   string         `json:"subject" gorm:"not null;index"`
	Grade     string         `json:"grade" gorm:"not null;index"`
	Questions []Question     `json:"questions,omitempty" gorm:"foreignKey:ReviewID"`
	CreatedBy uint           `json:"created_by" gorm:"not null;index"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
