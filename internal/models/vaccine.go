package models

import (
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrVaccineAlreadyApplied = errors.New("vaccine is already applied")
	ErrVaccineCorruptState   = errors.New("vaccine must have exactly one of application date or expiration date")
)

type VaccineState string

const (
	VaccinePending VaccineState = "PENDING"
	VaccineApplied VaccineState = "APPLIED"
)

// Vaccine is Pending while only ExpirationDate is set and Applied once only
// ApplicationDate is set. A stored row never has both or neither.
type Vaccine struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	Name            string          `gorm:"size:100;not null" json:"name"`
	Description     string          `gorm:"type:text" json:"description"`
	ApplicationDate *datatypes.Date `gorm:"index;check:chk_vaccines_state,(application_date IS NULL) <> (expiration_date IS NULL)" json:"application_date"`
	ExpirationDate  *datatypes.Date `gorm:"index" json:"expiration_date"`
	AnimalID        uint            `gorm:"not null;index" json:"animal_id"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func (v *Vaccine) State() VaccineState {
	if v.ApplicationDate != nil {
		return VaccineApplied
	}
	return VaccinePending
}

// Apply moves a pending vaccine to applied on the given day.
func (v *Vaccine) Apply(on time.Time) error {
	if v.ApplicationDate != nil {
		return ErrVaccineAlreadyApplied
	}
	v.ApplicationDate = DayPtr(on)
	v.ExpirationDate = nil
	return nil
}

// Reschedule puts the vaccine back in pending shape with a new expiration.
func (v *Vaccine) Reschedule(expires time.Time) {
	v.ApplicationDate = nil
	v.ExpirationDate = DayPtr(expires)
}

func (v *Vaccine) BeforeSave(tx *gorm.DB) error {
	if (v.ApplicationDate == nil) == (v.ExpirationDate == nil) {
		return ErrVaccineCorruptState
	}
	return nil
}
