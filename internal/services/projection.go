package services

import (
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/petcare-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/petcare-backend/internal/models"
	"gorm.io/gorm"
)

type DetailLevel string

const (
	DetailBasic DetailLevel = "BASIC"
	DetailFull  DetailLevel = "FULL"
)

// ParseDetailLevel accepts BASIC or FULL in any case; "" yields fallback.
func ParseDetailLevel(s string, fallback DetailLevel) (DetailLevel, error) {
	switch strings.ToUpper(s) {
	case "":
		return fallback, nil
	case string(DetailBasic):
		return DetailBasic, nil
	case string(DetailFull):
		return DetailFull, nil
	default:
		return "", FieldError("detailLevel", "Detail level must be BASIC or FULL")
	}
}

// withDetail loads the associations a FULL projection reads.
func withDetail(level DetailLevel) scope {
	return func(db *gorm.DB) *gorm.DB {
		if level != DetailFull {
			return db
		}
		return db.Preload("Owner").Preload("HealthIssues", func(db *gorm.DB) *gorm.DB {
			return db.Order("diagnosis_date DESC, id ASC")
		})
	}
}

// projectAnimal renders an animal at the given detail level. BASIC never
// carries notes, diet, owner, health issues or variant fields.
func projectAnimal(a *models.Animal, level DetailLevel, now time.Time) dto.AnimalResponse {
	out := dto.AnimalResponse{
		ID:               a.ID,
		Name:             a.Name,
		BirthDate:        models.FormatDay(a.BirthDate),
		RegistrationDate: models.FormatDay(a.RegistrationDate),
		WeightKg:         a.WeightKg,
		Color:            a.Color,
		Gender:           a.Gender,
		AnimalType:       string(a.AnimalType),
	}
	if level != DetailFull {
		return out
	}

	age := a.AgeYears(now)
	neutered := a.Neutered
	out.AgeYears = &age
	out.Notes = a.Notes
	out.Diet = a.Diet
	out.Neutered = &neutered
	out.LastDeworming = models.FormatDayPtr(a.LastDeworming)
	if a.Owner.ID != 0 {
		owner := projectUser(&a.Owner)
		out.Owner = &owner
	}
	for i := range a.HealthIssues {
		out.HealthIssues = append(out.HealthIssues, projectHealthIssue(&a.HealthIssues[i]))
	}
	out.SpecificFields = a.Traits.Fields(a.AnimalType)
	return out
}

func projectUser(u *models.User) dto.UserResponse {
	return dto.UserResponse{ID: u.ID, Name: u.Name, Surname: u.Surname, Email: u.Email}
}

func projectHealthIssue(h *models.HealthIssue) dto.HealthIssueResponse {
	return dto.HealthIssueResponse{
		ID:            h.ID,
		Name:          h.Name,
		DiagnosisDate: models.FormatDay(h.DiagnosisDate),
		RecoveryDate:  models.FormatDayPtr(h.RecoveryDate),
		Description:   h.Description,
		Treatment:     h.Treatment,
		AnimalID:      h.AnimalID,
	}
}

func projectVaccine(v *models.Vaccine) dto.VaccineResponse {
	return dto.VaccineResponse{
		ID:              v.ID,
		Name:            v.Name,
		Status:          string(v.State()),
		ApplicationDate: models.FormatDayPtr(v.ApplicationDate),
		ExpirationDate:  models.FormatDayPtr(v.ExpirationDate),
		Description:     v.Description,
		AnimalID:        v.AnimalID,
	}
}
