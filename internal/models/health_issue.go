package models

import (
	"time"

	"gorm.io/datatypes"
)

type HealthIssue struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	Name          string          `gorm:"size:150;not null;index" json:"name"`
	Description   string          `gorm:"type:text" json:"description"`
	DiagnosisDate datatypes.Date  `gorm:"not null;index" json:"diagnosis_date"`
	RecoveryDate  *datatypes.Date `json:"recovery_date"`
	Treatment     string          `gorm:"type:text" json:"treatment"`
	AnimalID      uint            `gorm:"not null;index" json:"animal_id"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
