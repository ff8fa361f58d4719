package models

import (
	"strings"
	"time"

	"gorm.io/datatypes"
)

type AnimalType string

const (
	AnimalTypeDog     AnimalType = "DOG"
	AnimalTypeCat     AnimalType = "CAT"
	AnimalTypeBird    AnimalType = "BIRD"
	AnimalTypeReptile AnimalType = "REPTILE"
	AnimalTypeFish    AnimalType = "FISH"
	AnimalTypeRodent  AnimalType = "RODENT"
	AnimalTypeOther   AnimalType = "OTHER"
)

var AnimalTypes = []AnimalType{
	AnimalTypeDog, AnimalTypeCat, AnimalTypeBird, AnimalTypeReptile,
	AnimalTypeFish, AnimalTypeRodent, AnimalTypeOther,
}

// ParseAnimalType matches s against the known tags, ignoring case.
func ParseAnimalType(s string) (AnimalType, bool) {
	for _, t := range AnimalTypes {
		if strings.EqualFold(s, string(t)) {
			return t, true
		}
	}
	return "", false
}

// Animal is the shared base record. The variant payload lives in Traits and
// is interpreted according to AnimalType, which never changes after creation.
type Animal struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	Name             string          `gorm:"size:100;not null;index" json:"name"`
	BirthDate        datatypes.Date  `gorm:"not null;index" json:"birth_date"`
	RegistrationDate datatypes.Date  `gorm:"not null" json:"registration_date"`
	WeightKg         *float64        `json:"weight_kg"`
	Color            string          `gorm:"size:50" json:"color"`
	Gender           string          `gorm:"size:20;not null" json:"gender"`
	Notes            string          `gorm:"type:text" json:"notes"`
	Diet             string          `gorm:"type:text" json:"diet"`
	Neutered         bool            `gorm:"not null;default:false" json:"neutered"`
	LastDeworming    *datatypes.Date `json:"last_deworming"`
	AnimalType       AnimalType      `gorm:"size:20;not null;index" json:"animal_type"`
	Traits           Traits          `gorm:"embedded" json:"traits"`
	OwnerID          uint            `gorm:"not null;index" json:"owner_id"`
	Owner            User            `gorm:"foreignKey:OwnerID" json:"-"`
	Vaccines         []Vaccine       `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	HealthIssues     []HealthIssue   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// AgeYears is the calendar-year difference between now and the birth date.
// It does not account for whether the birthday has passed this year.
func (a *Animal) AgeYears(now time.Time) int {
	return now.Year() - time.Time(a.BirthDate).Year()
}
