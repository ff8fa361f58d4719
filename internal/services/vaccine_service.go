package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/petcare-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/petcare-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/petcare-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/petcare-backend/internal/models"
	"gorm.io/gorm"
)

// VaccineService drives the pending/applied lifecycle. New and updated
// vaccines are always pending; only Apply produces an applied vaccine.
type VaccineService struct {
	db      *gorm.DB
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewVaccineService(db *gorm.DB, m *metrics.Metrics) *VaccineService {
	return &VaccineService{db: db, metrics: m, now: time.Now}
}

// List pages through an animal's vaccines, optionally restricted to a range
// over the application or expiration date.
func (s *VaccineService) List(userID, animalID uint, filter VaccineFilter, req PageRequest) (*dto.Page[dto.VaccineResponse], error) {
	if _, err := findOwnedAnimal(s.db, userID, animalID); err != nil {
		return nil, err
	}
	where, key, err := filter.resolve(animalID, s.now())
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveFilter("vaccine", key.String())
	return s.page(req, where)
}

// ListNonExpired pages through pending vaccines expiring today or later.
func (s *VaccineService) ListNonExpired(userID, animalID uint, req PageRequest) (*dto.Page[dto.VaccineResponse], error) {
	if _, err := findOwnedAnimal(s.db, userID, animalID); err != nil {
		return nil, err
	}
	today := models.Midnight(s.now())
	where := chain(identity.OfAnimal(animalID), func(db *gorm.DB) *gorm.DB {
		return db.Where("expiration_date >= ?", today)
	})
	s.metrics.ObserveFilter("vaccine", "non-expired")
	return s.page(req, where)
}

// ListConfirmed pages through applied vaccines.
func (s *VaccineService) ListConfirmed(userID, animalID uint, req PageRequest) (*dto.Page[dto.VaccineResponse], error) {
	if _, err := findOwnedAnimal(s.db, userID, animalID); err != nil {
		return nil, err
	}
	where := chain(identity.OfAnimal(animalID), func(db *gorm.DB) *gorm.DB {
		return db.Where("application_date IS NOT NULL")
	})
	s.metrics.ObserveFilter("vaccine", "confirmed")
	return s.page(req, where)
}

func (s *VaccineService) page(req PageRequest, where scope) (*dto.Page[dto.VaccineResponse], error) {
	res, err := paginate[models.Vaccine](s.db, req, vaccineSorts, where, nil)
	if err != nil {
		return nil, err
	}
	return toPage("vaccines", req.Size, res, projectVaccine), nil
}

func (s *VaccineService) Get(userID, animalID, vaccineID uint) (*dto.VaccineResponse, error) {
	if _, err := findOwnedAnimal(s.db, userID, animalID); err != nil {
		return nil, err
	}
	vaccine, err := findVaccine(s.db, animalID, vaccineID)
	if err != nil {
		return nil, err
	}
	resp := projectVaccine(vaccine)
	return &resp, nil
}

// Create stores a pending vaccine. An application date in the request is
// rejected and an expiration date is required.
func (s *VaccineService) Create(userID, animalID uint, req *dto.VaccineRequest) (*dto.VaccineResponse, error) {
	if err := s.checkVaccine(req); err != nil {
		return nil, err
	}
	if req.ExpirationDate == "" {
		return nil, FieldError("expirationDate", "Expiration date is required")
	}
	expires, err := s.expiration(req.ExpirationDate)
	if err != nil {
		return nil, err
	}

	var vaccine models.Vaccine
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := findOwnedAnimal(tx, userID, animalID); err != nil {
			return err
		}
		vaccine = models.Vaccine{
			Name:        strings.TrimSpace(req.Name),
			Description: req.Description,
			AnimalID:    animalID,
		}
		vaccine.Reschedule(expires)
		return tx.Create(&vaccine).Error
	})
	if err != nil {
		return nil, lifecycleError(err)
	}

	slog.Info("vaccine created", "user_id", userID, "animal_id", animalID, "vaccine_id", vaccine.ID, "action", "vaccine.create")
	resp := projectVaccine(&vaccine)
	return &resp, nil
}

// Update changes name, description and expiration and always leaves the
// vaccine pending, whatever its state before. Without a new expiration date
// the current one is kept; an applied vaccine has none, so one is required.
func (s *VaccineService) Update(userID, animalID, vaccineID uint, req *dto.VaccineRequest) (*dto.VaccineResponse, error) {
	if err := s.checkVaccine(req); err != nil {
		return nil, err
	}
	var expires *time.Time
	if req.ExpirationDate != "" {
		e, err := s.expiration(req.ExpirationDate)
		if err != nil {
			return nil, err
		}
		expires = &e
	}

	var vaccine *models.Vaccine
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := findOwnedAnimal(tx, userID, animalID); err != nil {
			return err
		}
		found, err := findVaccine(tx, animalID, vaccineID)
		if err != nil {
			return err
		}

		if expires == nil {
			if found.ExpirationDate == nil {
				return FieldError("expirationDate", "Expiration date is required")
			}
			e := time.Time(*found.ExpirationDate)
			expires = &e
		}
		found.Name = strings.TrimSpace(req.Name)
		found.Description = req.Description
		found.Reschedule(*expires)

		if err := updateAll(tx, found); err != nil {
			return notFound(err, "Vaccine", vaccineID)
		}
		vaccine = found
		return nil
	})
	if err != nil {
		return nil, lifecycleError(err)
	}

	slog.Info("vaccine updated", "user_id", userID, "animal_id", animalID, "vaccine_id", vaccineID, "action", "vaccine.update")
	resp := projectVaccine(vaccine)
	return &resp, nil
}

// Apply moves a pending vaccine to applied with today's date. Applying an
// applied vaccine is rejected and leaves the row untouched.
func (s *VaccineService) Apply(userID, animalID, vaccineID uint) (*dto.VaccineResponse, error) {
	var vaccine *models.Vaccine
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := findOwnedAnimal(tx, userID, animalID); err != nil {
			return err
		}
		found, err := findVaccine(tx, animalID, vaccineID)
		if err != nil {
			return err
		}

		if err := found.Apply(s.now()); err != nil {
			return alreadyApplied(found)
		}

		// the pending guard makes a concurrent second apply a no-op
		res := tx.Model(found).
			Select("ApplicationDate", "ExpirationDate", "UpdatedAt").
			Where("application_date IS NULL").
			Updates(found)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			current, err := findVaccine(tx, animalID, vaccineID)
			if err != nil {
				return err
			}
			return alreadyApplied(current)
		}
		vaccine = found
		return nil
	})
	if err != nil {
		return nil, lifecycleError(err)
	}

	s.metrics.IncrementVaccinesApplied()
	slog.Info("vaccine applied", "user_id", userID, "animal_id", animalID, "vaccine_id", vaccineID, "action", "vaccine.apply")
	resp := projectVaccine(vaccine)
	return &resp, nil
}

func (s *VaccineService) Delete(userID, animalID, vaccineID uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := findOwnedAnimal(tx, userID, animalID); err != nil {
			return err
		}
		vaccine, err := findVaccine(tx, animalID, vaccineID)
		if err != nil {
			return err
		}
		return tx.Delete(vaccine).Error
	})
	if err != nil {
		return err
	}

	slog.Info("vaccine deleted", "user_id", userID, "animal_id", animalID, "vaccine_id", vaccineID, "action", "vaccine.delete")
	return nil
}

func (s *VaccineService) checkVaccine(req *dto.VaccineRequest) error {
	if err := validateStruct(req); err != nil {
		return err
	}
	if req.ApplicationDate != nil {
		return FieldError("applicationDate", "Application date cannot be set directly")
	}
	return nil
}

func (s *VaccineService) expiration(value string) (time.Time, error) {
	ve := &ValidationError{Message: "Validation failed"}
	expires := dateField(ve, "expirationDate", value)
	if err := ve.orNil(); err != nil {
		return time.Time{}, err
	}
	if expires.Before(models.Midnight(s.now())) {
		return time.Time{}, FieldError("expirationDate", "Expiration date must be today or in the future")
	}
	return expires, nil
}

func alreadyApplied(v *models.Vaccine) error {
	return &StateError{Message: fmt.Sprintf("Vaccine is already applied on %s", models.FormatDayPtr(v.ApplicationDate))}
}

// lifecycleError surfaces a broken date invariant as a state error.
func lifecycleError(err error) error {
	if errors.Is(err, models.ErrVaccineCorruptState) || errors.Is(err, gorm.ErrCheckConstraintViolated) {
		return &StateError{Message: err.Error()}
	}
	return err
}
