package services

import (
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/petcare-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/petcare-backend/internal/models"
	"gorm.io/gorm"
)

// EarliestDate replaces a missing start bound of a date range.
var EarliestDate = time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC)

// DateRange is an inclusive range of calendar days.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// ResolveDateRange returns nil when neither bound is given. A single bound is
// completed with EarliestDate or today. Both bounds given out of order is an
// error; a filled-in range is used as is.
func ResolveDateRange(start, end *time.Time, today time.Time) (*DateRange, error) {
	if start == nil && end == nil {
		return nil, nil
	}
	if start != nil && end != nil && start.After(*end) {
		return nil, FieldError("startDate", "Start date must be before or equal to end date")
	}

	r := &DateRange{Start: EarliestDate, End: models.Midnight(today)}
	if start != nil {
		r.Start = models.Midnight(*start)
	}
	if end != nil {
		r.End = models.Midnight(*end)
	}
	return r, nil
}

func (r *DateRange) scope(column string) scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(column+" BETWEEN ? AND ?", r.Start, r.End)
	}
}

// filterKey records which optional filters a listing request carried. Each
// of the possible combinations resolves to exactly one query shape.
type filterKey uint8

const (
	byName filterKey = 1 << iota
	byType
	byDates
)

func (k filterKey) String() string {
	if k == 0 {
		return "none"
	}
	var parts []string
	if k&byName != 0 {
		parts = append(parts, "name")
	}
	if k&byType != 0 {
		parts = append(parts, "type")
	}
	if k&byDates != 0 {
		parts = append(parts, "dates")
	}
	return strings.Join(parts, "+")
}

// AnimalFilter holds the optional animal filters. A nil field was not
// supplied; a non-nil empty Name still filters (and matches every name).
type AnimalFilter struct {
	Name  *string
	Type  *models.AnimalType
	Start *time.Time
	End   *time.Time
}

func (f AnimalFilter) IsEmpty() bool {
	return f.Name == nil && f.Type == nil && f.Start == nil && f.End == nil
}

func (f AnimalFilter) resolve(userID uint, today time.Time) (scope, filterKey, error) {
	dates, err := ResolveDateRange(f.Start, f.End, today)
	if err != nil {
		return nil, 0, err
	}

	scopes := []scope{identity.OwnedBy(userID)}
	var key filterKey
	if f.Name != nil {
		key |= byName
		scopes = append(scopes, nameContains("animals.name", *f.Name))
	}
	if f.Type != nil {
		key |= byType
		kind := *f.Type
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			return db.Where("animals.animal_type = ?", kind)
		})
	}
	if dates != nil {
		key |= byDates
		scopes = append(scopes, dates.scope("animals.birth_date"))
	}
	return chain(scopes...), key, nil
}

type HealthIssueFilter struct {
	Name  *string
	Start *time.Time
	End   *time.Time
}

func (f HealthIssueFilter) IsEmpty() bool {
	return f.Name == nil && f.Start == nil && f.End == nil
}

func (f HealthIssueFilter) resolve(animalID uint, today time.Time) (scope, filterKey, error) {
	dates, err := ResolveDateRange(f.Start, f.End, today)
	if err != nil {
		return nil, 0, err
	}

	scopes := []scope{identity.OfAnimal(animalID)}
	var key filterKey
	if f.Name != nil {
		key |= byName
		scopes = append(scopes, nameContains("name", *f.Name))
	}
	if dates != nil {
		key |= byDates
		scopes = append(scopes, dates.scope("diagnosis_date"))
	}
	return chain(scopes...), key, nil
}

type VaccineDateType string

const (
	DateTypeApplication VaccineDateType = "application"
	DateTypeExpiration  VaccineDateType = "expiration"
)

// ParseVaccineDateType accepts either value in any case; "" is application.
func ParseVaccineDateType(s string) (VaccineDateType, error) {
	switch strings.ToLower(s) {
	case "", string(DateTypeApplication):
		return DateTypeApplication, nil
	case string(DateTypeExpiration):
		return DateTypeExpiration, nil
	default:
		return "", FieldError("dateType", "Invalid date type. Must be 'application' or 'expiration'")
	}
}

func (t VaccineDateType) column() string {
	if t == DateTypeExpiration {
		return "expiration_date"
	}
	return "application_date"
}

type VaccineFilter struct {
	DateType VaccineDateType
	Start    *time.Time
	End      *time.Time
}

func (f VaccineFilter) resolve(animalID uint, today time.Time) (scope, filterKey, error) {
	dates, err := ResolveDateRange(f.Start, f.End, today)
	if err != nil {
		return nil, 0, err
	}
	if dates == nil {
		return identity.OfAnimal(animalID), 0, nil
	}
	return chain(identity.OfAnimal(animalID), dates.scope(f.DateType.column())), byDates, nil
}

func nameContains(column, name string) scope {
	pattern := "%" + escapeLike(strings.ToLower(name)) + "%"
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("LOWER("+column+") LIKE ? ESCAPE '\\'", pattern)
	}
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// chain applies scopes in order inside a single scope.
func chain(scopes ...scope) scope {
	return func(db *gorm.DB) *gorm.DB {
		for _, s := range scopes {
			db = s(db)
		}
		return db
	}
}
