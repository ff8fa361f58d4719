package services

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/petcare-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/petcare-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/petcare-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/petcare-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AnimalService struct {
	db      *gorm.DB
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewAnimalService(db *gorm.DB, m *metrics.Metrics) *AnimalService {
	return &AnimalService{db: db, metrics: m, now: time.Now}
}

// ListAll returns every animal of the owner, unpaged and ordered by name.
func (s *AnimalService) ListAll(userID uint, level DetailLevel) ([]dto.AnimalResponse, error) {
	var animals []models.Animal
	err := s.db.Scopes(identity.OwnedBy(userID), withDetail(level)).
		Order("animals.name ASC").Order("animals.id ASC").
		Find(&animals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list animals: %w", err)
	}

	now := s.now()
	out := make([]dto.AnimalResponse, 0, len(animals))
	for i := range animals {
		out = append(out, projectAnimal(&animals[i], level, now))
	}
	return out, nil
}

// List applies whichever filters are set and returns one page.
func (s *AnimalService) List(userID uint, filter AnimalFilter, req PageRequest, level DetailLevel) (*dto.Page[dto.AnimalResponse], error) {
	now := s.now()
	where, key, err := filter.resolve(userID, now)
	if err != nil {
		return nil, err
	}
	slog.Debug("animal filter resolved", "user_id", userID, "variant", key.String())
	s.metrics.ObserveFilter("animal", key.String())

	res, err := paginate[models.Animal](s.db, req, animalSorts, where, withDetail(level))
	if err != nil {
		return nil, err
	}
	return toPage("animals", req.Size, res, func(a *models.Animal) dto.AnimalResponse {
		return projectAnimal(a, level, now)
	}), nil
}

// ListWithPendingVaccines pages through the owner's animals that have at
// least one pending vaccine which has not expired yet.
func (s *AnimalService) ListWithPendingVaccines(userID uint, req PageRequest, level DetailLevel) (*dto.Page[dto.AnimalResponse], error) {
	now := s.now()
	today := models.Midnight(now)
	where := chain(identity.OwnedBy(userID), func(db *gorm.DB) *gorm.DB {
		return db.Where(`EXISTS (SELECT 1 FROM vaccines v WHERE v.animal_id = animals.id
			AND v.application_date IS NULL AND v.expiration_date >= ?)`, today)
	})
	s.metrics.ObserveFilter("animal", "pending-vaccines")

	res, err := paginate[models.Animal](s.db, req, animalSorts, where, withDetail(level))
	if err != nil {
		return nil, err
	}
	return toPage("animals", req.Size, res, func(a *models.Animal) dto.AnimalResponse {
		return projectAnimal(a, level, now)
	}), nil
}

func (s *AnimalService) Get(userID, animalID uint, level DetailLevel) (*dto.AnimalResponse, error) {
	animal, err := findOwnedAnimal(s.db.Scopes(withDetail(level)), userID, animalID)
	if err != nil {
		return nil, err
	}
	resp := projectAnimal(animal, level, s.now())
	return &resp, nil
}

func (s *AnimalService) Create(userID uint, req *dto.AnimalRequest) (*dto.AnimalResponse, error) {
	fields, err := s.checkAnimal(req)
	if err != nil {
		return nil, err
	}

	var animal models.Animal
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var owner models.User
		if err := tx.First(&owner, userID).Error; err != nil {
			return notFound(err, "User", userID)
		}

		animal = models.Animal{
			RegistrationDate: models.Day(s.now()),
			AnimalType:       fields.kind,
			OwnerID:          owner.ID,
		}
		fields.applyTo(&animal)
		return tx.Omit(clause.Associations).Create(&animal).Error
	})
	if err != nil {
		return nil, err
	}

	slog.Info("animal created", "user_id", userID, "animal_id", animal.ID, "action", "animal.create")
	return s.Get(userID, animal.ID, DetailFull)
}

// Update rewrites the common and variant fields. The animal type and the
// registration date never change.
func (s *AnimalService) Update(userID, animalID uint, req *dto.AnimalRequest) (*dto.AnimalResponse, error) {
	fields, err := s.checkAnimal(req)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		animal, err := findOwnedAnimal(tx, userID, animalID)
		if err != nil {
			return err
		}
		if animal.AnimalType != fields.kind {
			return FieldError("animalType", "Cannot change animal type")
		}

		fields.applyTo(animal)
		if err := updateAll(tx, animal); err != nil {
			return notFound(err, "Animal", animalID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("animal updated", "user_id", userID, "animal_id", animalID, "action", "animal.update")
	return s.Get(userID, animalID, DetailFull)
}

// Delete removes the animal together with its vaccines and health issues.
func (s *AnimalService) Delete(userID, animalID uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		animal, err := findOwnedAnimal(tx, userID, animalID)
		if err != nil {
			return err
		}
		if err := tx.Scopes(identity.OfAnimal(animal.ID)).Delete(&models.Vaccine{}).Error; err != nil {
			return err
		}
		if err := tx.Scopes(identity.OfAnimal(animal.ID)).Delete(&models.HealthIssue{}).Error; err != nil {
			return err
		}
		return tx.Delete(animal).Error
	})
	if err != nil {
		return err
	}

	slog.Info("animal deleted", "user_id", userID, "animal_id", animalID, "action", "animal.delete")
	return nil
}

type animalFields struct {
	req           *dto.AnimalRequest
	kind          models.AnimalType
	birthDate     time.Time
	lastDeworming *time.Time
}

func (s *AnimalService) checkAnimal(req *dto.AnimalRequest) (*animalFields, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	ve := &ValidationError{Message: "Validation failed"}
	kind, _ := models.ParseAnimalType(req.AnimalType)
	fields := &animalFields{req: req, kind: kind}

	today := s.now()
	fields.birthDate = dateField(ve, "birthDate", req.BirthDate)
	notAfterToday(ve, "birthDate", fields.birthDate, today)
	if req.LastDeworming != "" {
		d := dateField(ve, "lastDeworming", req.LastDeworming)
		notAfterToday(ve, "lastDeworming", d, today)
		fields.lastDeworming = &d
	}
	if err := ve.orNil(); err != nil {
		return nil, err
	}
	return fields, nil
}

func (f *animalFields) applyTo(a *models.Animal) {
	r := f.req
	a.Name = strings.TrimSpace(r.Name)
	a.BirthDate = models.Day(f.birthDate)
	a.WeightKg = r.WeightKg
	a.Color = r.Color
	a.Gender = r.Gender
	a.Notes = r.Notes
	a.Diet = r.Diet
	a.Neutered = r.Neutered
	a.LastDeworming = nil
	if f.lastDeworming != nil {
		a.LastDeworming = models.DayPtr(*f.lastDeworming)
	}
	a.Traits = models.Traits{
		Breed:                   r.Breed,
		Size:                    r.Size,
		CoatType:                r.CoatType,
		Pedigree:                r.Pedigree,
		IndoorOnly:              r.IndoorOnly,
		Species:                 r.Species,
		ClippedWings:            r.ClippedWings,
		TalkingAbility:          r.TalkingAbility,
		HabitatType:             r.HabitatType,
		TemperatureRequirements: r.TemperatureRequirements,
		Venomous:                r.Venomous,
		WaterType:               r.WaterType,
		WaterTemperature:        r.WaterTemperature,
		PhLevel:                 r.PhLevel,
		SocialBehavior:          r.SocialBehavior,
		CageTrained:             r.CageTrained,
		LifespanYears:           r.LifespanYears,
		TeethCondition:          r.TeethCondition,
	}.For(a.AnimalType)
}
