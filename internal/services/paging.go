package services

import (
	"strings"

	"github.com/ahmetcoskunkizilkaya/petcare-backend/internal/dto"
	"gorm.io/gorm"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// PageRequest is a zero-based page of a listing. Empty SortBy and Direction
// fall back to the listing's defaults.
type PageRequest struct {
	Page      int
	Size      int
	SortBy    string
	Direction string
}

type scope = func(*gorm.DB) *gorm.DB

// sortFields whitelists the sortable JSON fields of one entity.
type sortFields struct {
	columns   map[string]string
	field     string
	direction string
	tiebreak  string
}

var (
	animalSorts = sortFields{
		columns: map[string]string{
			"id":               "animals.id",
			"name":             "animals.name",
			"birthDate":        "animals.birth_date",
			"registrationDate": "animals.registration_date",
			"weightKg":         "animals.weight_kg",
			"color":            "animals.color",
			"gender":           "animals.gender",
			"animalType":       "animals.animal_type",
		},
		field: "name", direction: "ASC", tiebreak: "animals.id ASC",
	}
	healthIssueSorts = sortFields{
		columns: map[string]string{
			"id":            "id",
			"name":          "name",
			"diagnosisDate": "diagnosis_date",
			"recoveryDate":  "recovery_date",
		},
		field: "diagnosisDate", direction: "DESC", tiebreak: "id ASC",
	}
	vaccineSorts = sortFields{
		columns: map[string]string{
			"id":              "id",
			"name":            "name",
			"applicationDate": "application_date",
			"expirationDate":  "expiration_date",
		},
		field: "applicationDate", direction: "DESC", tiebreak: "id ASC",
	}
)

func (s sortFields) orderBy(req PageRequest) (string, error) {
	field := req.SortBy
	if field == "" {
		field = s.field
	}
	column, ok := s.columns[field]
	if !ok {
		return "", FieldError("sortBy", "Unsupported sort field: "+field)
	}

	direction := s.direction
	if req.Direction != "" {
		direction = strings.ToUpper(req.Direction)
		if direction != "ASC" && direction != "DESC" {
			return "", FieldError("direction", "Sort direction must be ASC or DESC")
		}
	}
	return column + " " + direction, nil
}

func (r PageRequest) check() error {
	ve := &ValidationError{Message: "Invalid pagination parameters"}
	if r.Page < 0 {
		ve.add("page", "must not be negative")
	}
	if r.Size <= 0 {
		ve.add("size", "must be greater than 0")
	} else if r.Size > MaxPageSize {
		ve.add("size", "must be at most 100")
	}
	return ve.orNil()
}

func totalPages(total int64, size int) int {
	return int((total + int64(size) - 1) / int64(size))
}

// lastPage keeps the page index inside [0, totalPages-1].
func lastPage(page int, total int64, size int) int {
	pages := totalPages(total, size)
	if pages == 0 {
		return 0
	}
	if page > pages-1 {
		return pages - 1
	}
	return page
}

type pageResult[T any] struct {
	rows  []T
	total int64
	page  int
}

// paginate counts the rows matched by where and fetches one ordered page.
// fetch adds preloads to the row query only.
func paginate[T any](db *gorm.DB, req PageRequest, sorts sortFields, where scope, fetch scope) (*pageResult[T], error) {
	if err := req.check(); err != nil {
		return nil, err
	}
	order, err := sorts.orderBy(req)
	if err != nil {
		return nil, err
	}

	var total int64
	if err := db.Model(new(T)).Scopes(where).Count(&total).Error; err != nil {
		return nil, err
	}

	page := lastPage(req.Page, total, req.Size)
	rows := make([]T, 0, req.Size)
	if total > 0 {
		q := db.Model(new(T)).Scopes(where)
		if fetch != nil {
			q = q.Scopes(fetch)
		}
		err := q.Order(order).Order(sorts.tiebreak).
			Limit(req.Size).
			Offset(page * req.Size).
			Find(&rows).Error
		if err != nil {
			return nil, err
		}
	}
	return &pageResult[T]{rows: rows, total: total, page: page}, nil
}

func toPage[T, R any](key string, size int, res *pageResult[T], project func(*T) R) *dto.Page[R] {
	items := make([]R, 0, len(res.rows))
	for i := range res.rows {
		items = append(items, project(&res.rows[i]))
	}
	return &dto.Page[R]{
		Key:         key,
		Items:       items,
		CurrentPage: res.page,
		TotalItems:  res.total,
		TotalPages:  totalPages(res.total, size),
	}
}
