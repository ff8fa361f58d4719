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
)

type HealthIssueService struct {
	db      *gorm.DB
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewHealthIssueService(db *gorm.DB, m *metrics.Metrics) *HealthIssueService {
	return &HealthIssueService{db: db, metrics: m, now: time.Now}
}

func (s *HealthIssueService) ListAll(userID, animalID uint) ([]dto.HealthIssueResponse, error) {
	if _, err := findOwnedAnimal(s.db, userID, animalID); err != nil {
		return nil, err
	}

	var issues []models.HealthIssue
	err := s.db.Scopes(identity.OfAnimal(animalID)).
		Order("diagnosis_date DESC").Order("id ASC").
		Find(&issues).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list health issues: %w", err)
	}

	out := make([]dto.HealthIssueResponse, 0, len(issues))
	for i := range issues {
		out = append(out, projectHealthIssue(&issues[i]))
	}
	return out, nil
}

func (s *HealthIssueService) List(userID, animalID uint, filter HealthIssueFilter, req PageRequest) (*dto.Page[dto.HealthIssueResponse], error) {
	if _, err := findOwnedAnimal(s.db, userID, animalID); err != nil {
		return nil, err
	}
	where, key, err := filter.resolve(animalID, s.now())
	if err != nil {
		return nil, err
	}
	slog.Debug("health issue filter resolved", "user_id", userID, "animal_id", animalID, "variant", key.String())
	s.metrics.ObserveFilter("health_issue", key.String())

	res, err := paginate[models.HealthIssue](s.db, req, healthIssueSorts, where, nil)
	if err != nil {
		return nil, err
	}
	return toPage("healthIssues", req.Size, res, projectHealthIssue), nil
}

func (s *HealthIssueService) Get(userID, animalID, issueID uint) (*dto.HealthIssueResponse, error) {
	if _, err := findOwnedAnimal(s.db, userID, animalID); err != nil {
		return nil, err
	}
	issue, err := findHealthIssue(s.db, animalID, issueID)
	if err != nil {
		return nil, err
	}
	resp := projectHealthIssue(issue)
	return &resp, nil
}

func (s *HealthIssueService) Create(userID, animalID uint, req *dto.HealthIssueRequest) (*dto.HealthIssueResponse, error) {
	diagnosed, recovered, err := s.checkIssue(req)
	if err != nil {
		return nil, err
	}

	var issue models.HealthIssue
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := findOwnedAnimal(tx, userID, animalID); err != nil {
			return err
		}
		issue = models.HealthIssue{AnimalID: animalID}
		applyIssueFields(&issue, req, diagnosed, recovered)
		return tx.Create(&issue).Error
	})
	if err != nil {
		return nil, err
	}

	slog.Info("health issue created", "user_id", userID, "animal_id", animalID, "health_issue_id", issue.ID, "action", "health_issue.create")
	resp := projectHealthIssue(&issue)
	return &resp, nil
}

func (s *HealthIssueService) Update(userID, animalID, issueID uint, req *dto.HealthIssueRequest) (*dto.HealthIssueResponse, error) {
	diagnosed, recovered, err := s.checkIssue(req)
	if err != nil {
		return nil, err
	}

	var issue *models.HealthIssue
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := findOwnedAnimal(tx, userID, animalID); err != nil {
			return err
		}
		found, err := findHealthIssue(tx, animalID, issueID)
		if err != nil {
			return err
		}
		applyIssueFields(found, req, diagnosed, recovered)
		if err := updateAll(tx, found); err != nil {
			return notFound(err, "HealthIssue", issueID)
		}
		issue = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("health issue updated", "user_id", userID, "animal_id", animalID, "health_issue_id", issueID, "action", "health_issue.update")
	resp := projectHealthIssue(issue)
	return &resp, nil
}

func (s *HealthIssueService) Delete(userID, animalID, issueID uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := findOwnedAnimal(tx, userID, animalID); err != nil {
			return err
		}
		issue, err := findHealthIssue(tx, animalID, issueID)
		if err != nil {
			return err
		}
		return tx.Delete(issue).Error
	})
	if err != nil {
		return err
	}

	slog.Info("health issue deleted", "user_id", userID, "animal_id", animalID, "health_issue_id", issueID, "action", "health_issue.delete")
	return nil
}

func (s *HealthIssueService) checkIssue(req *dto.HealthIssueRequest) (time.Time, *time.Time, error) {
	if err := validateStruct(req); err != nil {
		return time.Time{}, nil, err
	}

	ve := &ValidationError{Message: "Validation failed"}
	diagnosed := dateField(ve, "diagnosisDate", req.DiagnosisDate)
	notAfterToday(ve, "diagnosisDate", diagnosed, s.now())

	var recovered *time.Time
	if req.RecoveryDate != "" {
		r := dateField(ve, "recoveryDate", req.RecoveryDate)
		if r.Before(diagnosed) {
			ve.add("recoveryDate", "must not be before the diagnosis date")
		}
		recovered = &r
	}
	if err := ve.orNil(); err != nil {
		return time.Time{}, nil, err
	}
	return diagnosed, recovered, nil
}

func applyIssueFields(issue *models.HealthIssue, req *dto.HealthIssueRequest, diagnosed time.Time, recovered *time.Time) {
	issue.Name = strings.TrimSpace(req.Name)
	issue.Description = req.Description
	issue.Treatment = req.Treatment
	issue.DiagnosisDate = models.Day(diagnosed)
	issue.RecoveryDate = nil
	if recovered != nil {
		issue.RecoveryDate = models.DayPtr(*recovered)
	}
}
