package services

import (
	"testing"

	"github.com/ahmetcoskunkizilkaya/petcare-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/petcare-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestHealthIssueService(t *testing.T) (*HealthIssueService, *gorm.DB, models.User, models.Animal) {
	t.Helper()
	db := setupTestDB(t)
	svc := NewHealthIssueService(db, nil)
	svc.now = clock
	owner := seedUser(t, db, "ana@example.com")
	rex := seedAnimal(t, db, owner.ID, "Rex", models.AnimalTypeDog, date(2020, 1, 1))
	return svc, db, owner, rex
}

func createIssue(t *testing.T, svc *HealthIssueService, userID, animalID uint, name, diagnosed string) *dto.HealthIssueResponse {
	t.Helper()
	got, err := svc.Create(userID, animalID, &dto.HealthIssueRequest{Name: name, DiagnosisDate: diagnosed})
	require.NoError(t, err)
	return got
}

func TestHealthIssueCRUD(t *testing.T) {
	svc, _, owner, rex := newTestHealthIssueService(t)

	created, err := svc.Create(owner.ID, rex.ID, &dto.HealthIssueRequest{
		Name:          "  Otitis ",
		DiagnosisDate: "2026-05-02",
		Treatment:     "drops",
	})
	require.NoError(t, err)
	assert.Equal(t, "Otitis", created.Name)
	assert.Equal(t, "2026-05-02", created.DiagnosisDate)
	assert.Empty(t, created.RecoveryDate)

	updated, err := svc.Update(owner.ID, rex.ID, created.ID, &dto.HealthIssueRequest{
		Name:          "Otitis",
		DiagnosisDate: "2026-05-02",
		RecoveryDate:  "2026-05-20",
	})
	require.NoError(t, err)
	assert.Equal(t, "2026-05-20", updated.RecoveryDate)
	assert.Empty(t, updated.Treatment)

	got, err := svc.Get(owner.ID, rex.ID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, *updated, *got)

	require.NoError(t, svc.Delete(owner.ID, rex.ID, created.ID))
	_, err = svc.Get(owner.ID, rex.ID, created.ID)
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "HealthIssue", nf.Entity)
}

func TestHealthIssueDateRules(t *testing.T) {
	svc, _, owner, rex := newTestHealthIssueService(t)

	tests := []struct {
		name  string
		req   dto.HealthIssueRequest
		field string
	}{
		{"missing diagnosis", dto.HealthIssueRequest{Name: "Otitis"}, "diagnosisDate"},
		{"future diagnosis", dto.HealthIssueRequest{Name: "Otitis", DiagnosisDate: "2026-06-16"}, "diagnosisDate"},
		{"recovery before diagnosis", dto.HealthIssueRequest{Name: "Otitis", DiagnosisDate: "2026-05-02", RecoveryDate: "2026-05-01"}, "recoveryDate"},
		{"missing name", dto.HealthIssueRequest{DiagnosisDate: "2026-05-02"}, "name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			_, err := svc.Create(owner.ID, rex.ID, &req)

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Contains(t, ve.Fields, tt.field)
		})
	}
}

func TestHealthIssueOwnership(t *testing.T) {
	svc, db, owner, rex := newTestHealthIssueService(t)
	bob := seedUser(t, db, "bob@example.com")
	issue := createIssue(t, svc, owner.ID, rex.ID, "Otitis", "2026-05-02")

	_, err := svc.Get(bob.ID, rex.ID, issue.ID)
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "Animal", nf.Entity)
	assert.Equal(t, rex.ID, nf.ID)

	_, err = svc.Update(bob.ID, rex.ID, issue.ID, &dto.HealthIssueRequest{Name: "x", DiagnosisDate: "2026-05-02"})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.Delete(bob.ID, rex.ID, issue.ID), ErrNotFound)
	_, err = svc.ListAll(bob.ID, rex.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := svc.Get(owner.ID, rex.ID, issue.ID)
	require.NoError(t, err)
	assert.Equal(t, "Otitis", got.Name)
}

func TestHealthIssueListChecksOwnershipBeforeFilter(t *testing.T) {
	svc, db, owner, rex := newTestHealthIssueService(t)
	bob := seedUser(t, db, "bob@example.com")
	inverted := HealthIssueFilter{Start: datePtr(2026, 5, 1), End: datePtr(2026, 1, 1)}

	_, err := svc.List(bob.ID, rex.ID, inverted, PageRequest{Size: 10})
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "Animal", nf.Entity)

	_, err = svc.List(owner.ID, rex.ID, inverted, PageRequest{Size: 10})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "startDate")
}

func TestHealthIssueListing(t *testing.T) {
	svc, _, owner, rex := newTestHealthIssueService(t)
	createIssue(t, svc, owner.ID, rex.ID, "Otitis externa", "2025-03-01")
	createIssue(t, svc, owner.ID, rex.ID, "Dermatitis", "2026-02-10")
	createIssue(t, svc, owner.ID, rex.ID, "OTITIS media", "2026-05-02")

	all, err := svc.ListAll(owner.ID, rex.ID)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "OTITIS media", all[0].Name, "newest diagnosis first")

	tests := []struct {
		name   string
		filter HealthIssueFilter
		want   []string
	}{
		{"name only", HealthIssueFilter{Name: strPtr("otitis")}, []string{"OTITIS media", "Otitis externa"}},
		{"dates only", HealthIssueFilter{Start: datePtr(2026, 1, 1)}, []string{"OTITIS media", "Dermatitis"}},
		{"name and dates", HealthIssueFilter{Name: strPtr("otitis"), Start: datePtr(2026, 1, 1)}, []string{"OTITIS media"}},
		{"no filter", HealthIssueFilter{}, []string{"OTITIS media", "Dermatitis", "Otitis externa"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := svc.List(owner.ID, rex.ID, tt.filter, PageRequest{Size: 10})
			require.NoError(t, err)

			var names []string
			for _, item := range page.Items {
				names = append(names, item.Name)
			}
			assert.Equal(t, tt.want, names)
			assert.Equal(t, int64(len(tt.want)), page.TotalItems)
		})
	}

	_, err = svc.List(owner.ID, rex.ID, HealthIssueFilter{}, PageRequest{Size: 10, SortBy: "treatment"})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "sortBy")
}
