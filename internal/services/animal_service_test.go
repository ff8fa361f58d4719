package services

import (
	"encoding/json"
	"sort"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/petcare-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/petcare-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestAnimalService(t *testing.T) (*AnimalService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	svc := NewAnimalService(db, nil)
	svc.now = clock
	return svc, db
}

func dogRequest(name string) *dto.AnimalRequest {
	weight := 12.5
	return &dto.AnimalRequest{
		Name:       name,
		BirthDate:  "2020-03-01",
		WeightKg:   &weight,
		Color:      "brown",
		Gender:     "male",
		Notes:      "likes walks",
		Diet:       "kibble",
		AnimalType: "DOG",
		Breed:      "Beagle",
		Size:       "medium",
		Species:    "ignored for dogs",
		Venomous:   true,
	}
}

func TestCreateAnimalReturnsFullProjection(t *testing.T) {
	svc, db := newTestAnimalService(t)
	owner := seedUser(t, db, "ana@example.com")

	got, err := svc.Create(owner.ID, dogRequest("Rex"))
	require.NoError(t, err)

	assert.Equal(t, "Rex", got.Name)
	assert.Equal(t, "DOG", got.AnimalType)
	assert.Equal(t, "2026-06-15", got.RegistrationDate)
	assert.Equal(t, "likes walks", got.Notes)
	require.NotNil(t, got.AgeYears)
	assert.Equal(t, 6, *got.AgeYears)
	require.NotNil(t, got.Owner)
	assert.Equal(t, "ana@example.com", got.Owner.Email)
	assert.Equal(t, map[string]any{"breed": "Beagle", "size": "medium", "pedigree": false}, got.SpecificFields)

	var stored models.Animal
	require.NoError(t, db.First(&stored, got.ID).Error)
	assert.Empty(t, stored.Traits.Species)
	assert.False(t, stored.Traits.Venomous)
}

func TestCreateAnimalValidation(t *testing.T) {
	svc, db := newTestAnimalService(t)
	owner := seedUser(t, db, "ana@example.com")

	req := dogRequest("")
	req.BirthDate = "2030-01-01"
	req.AnimalType = "DRAGON"

	_, err := svc.Create(owner.ID, req)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "name")
	assert.Contains(t, ve.Fields, "animalType")

	req = dogRequest("Rex")
	req.BirthDate = "2030-01-01"
	_, err = svc.Create(owner.ID, req)
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, []string{"must not be in the future"}, ve.Fields["birthDate"])
}

func TestCreateAnimalForMissingUser(t *testing.T) {
	svc, _ := newTestAnimalService(t)

	_, err := svc.Create(99, dogRequest("Rex"))
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "User", nf.Entity)
}

func TestUpdateAnimalCannotChangeType(t *testing.T) {
	svc, db := newTestAnimalService(t)
	owner := seedUser(t, db, "ana@example.com")
	created, err := svc.Create(owner.ID, dogRequest("Rex"))
	require.NoError(t, err)

	req := dogRequest("Rex")
	req.AnimalType = "CAT"
	_, err = svc.Update(owner.ID, created.ID, req)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Cannot change animal type", ve.Message)
}

func TestUpdateAnimalKeepsRegistrationDate(t *testing.T) {
	svc, db := newTestAnimalService(t)
	owner := seedUser(t, db, "ana@example.com")
	created, err := svc.Create(owner.ID, dogRequest("Rex"))
	require.NoError(t, err)

	svc.now = func() time.Time { return fixedNow.AddDate(0, 2, 0) }
	req := dogRequest("Rex II")
	req.Breed = "Collie"
	req.Notes = ""
	updated, err := svc.Update(owner.ID, created.ID, req)
	require.NoError(t, err)

	assert.Equal(t, "Rex II", updated.Name)
	assert.Equal(t, "2026-06-15", updated.RegistrationDate)
	assert.Empty(t, updated.Notes)
	assert.Equal(t, "Collie", updated.SpecificFields["breed"])
}

func TestAnimalsOfAnotherOwnerAreNotFound(t *testing.T) {
	svc, db := newTestAnimalService(t)
	ana := seedUser(t, db, "ana@example.com")
	bob := seedUser(t, db, "bob@example.com")
	rex := seedAnimal(t, db, ana.ID, "Rex", models.AnimalTypeDog, date(2020, 1, 1))

	_, err := svc.Get(bob.ID, rex.ID, DetailBasic)
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "Animal not found with id: "+itoa(rex.ID), nf.Error())

	_, err = svc.Update(bob.ID, rex.ID, dogRequest("Stolen"))
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.Delete(bob.ID, rex.ID), ErrNotFound)

	got, err := svc.Get(ana.ID, rex.ID, DetailBasic)
	require.NoError(t, err)
	assert.Equal(t, "Rex", got.Name)
}

func TestDeleteAnimalCascades(t *testing.T) {
	svc, db := newTestAnimalService(t)
	owner := seedUser(t, db, "ana@example.com")
	rex := seedAnimal(t, db, owner.ID, "Rex", models.AnimalTypeDog, date(2020, 1, 1))
	seedVaccine(t, db, rex.ID, "Rabies", nil, datePtr(2027, 1, 1))
	require.NoError(t, db.Create(&models.HealthIssue{Name: "Otitis", DiagnosisDate: models.Day(date(2025, 1, 1)), AnimalID: rex.ID}).Error)

	require.NoError(t, svc.Delete(owner.ID, rex.ID))

	var vaccines, issues, animals int64
	db.Model(&models.Vaccine{}).Count(&vaccines)
	db.Model(&models.HealthIssue{}).Count(&issues)
	db.Model(&models.Animal{}).Count(&animals)
	assert.Zero(t, vaccines)
	assert.Zero(t, issues)
	assert.Zero(t, animals)
}

func TestListAllIsOwnerScopedAndOrdered(t *testing.T) {
	svc, db := newTestAnimalService(t)
	ana := seedUser(t, db, "ana@example.com")
	bob := seedUser(t, db, "bob@example.com")
	seedAnimal(t, db, ana.ID, "Zeus", models.AnimalTypeCat, date(2019, 1, 1))
	seedAnimal(t, db, ana.ID, "Alba", models.AnimalTypeDog, date(2021, 1, 1))
	seedAnimal(t, db, bob.ID, "Bobby", models.AnimalTypeDog, date(2021, 1, 1))

	got, err := svc.ListAll(ana.ID, DetailBasic)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Alba", got[0].Name)
	assert.Equal(t, "Zeus", got[1].Name)
}

// Every combination of filters must return the intersection of what each
// filter returns on its own.
func TestListFilterCombinationsIntersect(t *testing.T) {
	svc, db := newTestAnimalService(t)
	owner := seedUser(t, db, "ana@example.com")
	other := seedUser(t, db, "bob@example.com")

	seedAnimal(t, db, owner.ID, "Rex", models.AnimalTypeDog, date(2018, 5, 1))
	seedAnimal(t, db, owner.ID, "Rexina", models.AnimalTypeCat, date(2021, 5, 1))
	seedAnimal(t, db, owner.ID, "Max", models.AnimalTypeDog, date(2021, 7, 1))
	seedAnimal(t, db, owner.ID, "T-REX", models.AnimalTypeReptile, date(2022, 1, 1))
	seedAnimal(t, db, owner.ID, "Tom", models.AnimalTypeCat, date(2017, 1, 1))
	seedAnimal(t, db, other.ID, "Rex", models.AnimalTypeDog, date(2021, 5, 1))

	name := strPtr("rex")
	kind := typePtr(models.AnimalTypeDog)
	start, end := datePtr(2020, 1, 1), datePtr(2021, 12, 31)

	ids := func(f AnimalFilter) []uint {
		page, err := svc.List(owner.ID, f, PageRequest{Size: MaxPageSize}, DetailBasic)
		require.NoError(t, err)
		out := make([]uint, 0, len(page.Items))
		for _, a := range page.Items {
			out = append(out, a.ID)
		}
		sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
		return out
	}
	intersect := func(sets ...[]uint) []uint {
		counts := map[uint]int{}
		for _, s := range sets {
			for _, id := range s {
				counts[id]++
			}
		}
		out := []uint{}
		for id, n := range counts {
			if n == len(sets) {
				out = append(out, id)
			}
		}
		sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
		return out
	}

	all := ids(AnimalFilter{})
	require.Len(t, all, 5)
	byNameOnly := ids(AnimalFilter{Name: name})
	byTypeOnly := ids(AnimalFilter{Type: kind})
	byDatesOnly := ids(AnimalFilter{Start: start, End: end})
	assert.Len(t, byNameOnly, 3)
	assert.Len(t, byTypeOnly, 2)
	assert.Len(t, byDatesOnly, 2)

	for mask := 0; mask < 8; mask++ {
		f := AnimalFilter{}
		sets := [][]uint{all}
		if mask&1 != 0 {
			f.Name = name
			sets = append(sets, byNameOnly)
		}
		if mask&2 != 0 {
			f.Type = kind
			sets = append(sets, byTypeOnly)
		}
		if mask&4 != 0 {
			f.Start, f.End = start, end
			sets = append(sets, byDatesOnly)
		}
		assert.Equal(t, intersect(sets...), ids(f), "filter mask %03b", mask)
	}
}

func TestListPartialDateRangeIsFilled(t *testing.T) {
	svc, db := newTestAnimalService(t)
	owner := seedUser(t, db, "ana@example.com")
	seedAnimal(t, db, owner.ID, "Old", models.AnimalTypeDog, date(1950, 1, 1))
	seedAnimal(t, db, owner.ID, "Young", models.AnimalTypeDog, date(2025, 1, 1))
	seedAnimal(t, db, owner.ID, "Ancient", models.AnimalTypeReptile, date(1899, 12, 31))

	page, err := svc.List(owner.ID, AnimalFilter{End: datePtr(2000, 1, 1)}, PageRequest{Size: 10}, DetailBasic)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Old", page.Items[0].Name)

	page, err = svc.List(owner.ID, AnimalFilter{Start: datePtr(2000, 1, 1)}, PageRequest{Size: 10}, DetailBasic)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Young", page.Items[0].Name)

	_, err = svc.List(owner.ID, AnimalFilter{Start: datePtr(2021, 1, 1), End: datePtr(2020, 1, 1)}, PageRequest{Size: 10}, DetailBasic)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "startDate")
}

func TestListNameFilterEscapesWildcards(t *testing.T) {
	svc, db := newTestAnimalService(t)
	owner := seedUser(t, db, "ana@example.com")
	seedAnimal(t, db, owner.ID, "100% Good Boy", models.AnimalTypeDog, date(2020, 1, 1))
	seedAnimal(t, db, owner.ID, "1000 Lives", models.AnimalTypeCat, date(2020, 1, 1))

	page, err := svc.List(owner.ID, AnimalFilter{Name: strPtr("0%")}, PageRequest{Size: 10}, DetailBasic)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "100% Good Boy", page.Items[0].Name)

	page, err = svc.List(owner.ID, AnimalFilter{Name: strPtr("")}, PageRequest{Size: 10}, DetailBasic)
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
}

func TestListNameFilterFoldsAccents(t *testing.T) {
	svc, db := newTestAnimalService(t)
	owner := seedUser(t, db, "ana@example.com")
	seedAnimal(t, db, owner.ID, "Émile", models.AnimalTypeDog, date(2020, 1, 1))
	seedAnimal(t, db, owner.ID, "Emil", models.AnimalTypeDog, date(2020, 1, 1))

	for _, term := range []string{"émile", "ÉMILE", "mil"} {
		page, err := svc.List(owner.ID, AnimalFilter{Name: strPtr(term)}, PageRequest{Size: 10}, DetailBasic)
		require.NoError(t, err)
		var names []string
		for _, item := range page.Items {
			names = append(names, item.Name)
		}
		assert.Contains(t, names, "Émile", term)
	}

	page, err := svc.List(owner.ID, AnimalFilter{Name: strPtr("émile")}, PageRequest{Size: 10}, DetailBasic)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, int64(1), page.TotalItems)
}

func TestListPaginationEnvelope(t *testing.T) {
	svc, db := newTestAnimalService(t)
	owner := seedUser(t, db, "ana@example.com")
	for _, name := range []string{"A", "B", "C", "D", "E"} {
		seedAnimal(t, db, owner.ID, name, models.AnimalTypeDog, date(2020, 1, 1))
	}

	page, err := svc.List(owner.ID, AnimalFilter{}, PageRequest{Page: 1, Size: 2, SortBy: "name", Direction: "desc"}, DetailBasic)
	require.NoError(t, err)
	assert.Equal(t, 1, page.CurrentPage)
	assert.Equal(t, int64(5), page.TotalItems)
	assert.Equal(t, 3, page.TotalPages)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "C", page.Items[0].Name)
	assert.Equal(t, "B", page.Items[1].Name)

	page, err = svc.List(owner.ID, AnimalFilter{}, PageRequest{Page: 7, Size: 2}, DetailBasic)
	require.NoError(t, err)
	assert.Equal(t, 2, page.CurrentPage)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "E", page.Items[0].Name)

	_, err = svc.List(owner.ID, AnimalFilter{}, PageRequest{Size: 2, Direction: "sideways"}, DetailBasic)
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.List(owner.ID, AnimalFilter{}, PageRequest{Size: 2, SortBy: "password"}, DetailBasic)
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.List(owner.ID, AnimalFilter{}, PageRequest{Size: 0}, DetailBasic)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestListWithPendingVaccines(t *testing.T) {
	svc, db := newTestAnimalService(t)
	owner := seedUser(t, db, "ana@example.com")
	other := seedUser(t, db, "bob@example.com")

	pending := seedAnimal(t, db, owner.ID, "Pending", models.AnimalTypeDog, date(2020, 1, 1))
	applied := seedAnimal(t, db, owner.ID, "Applied", models.AnimalTypeDog, date(2020, 1, 1))
	expired := seedAnimal(t, db, owner.ID, "Expired", models.AnimalTypeDog, date(2020, 1, 1))
	foreign := seedAnimal(t, db, other.ID, "Foreign", models.AnimalTypeDog, date(2020, 1, 1))

	seedVaccine(t, db, pending.ID, "Rabies", nil, datePtr(2026, 6, 15))
	seedVaccine(t, db, pending.ID, "Parvo", nil, datePtr(2027, 1, 1))
	seedVaccine(t, db, applied.ID, "Rabies", datePtr(2026, 1, 1), nil)
	seedVaccine(t, db, expired.ID, "Rabies", nil, datePtr(2026, 6, 14))
	seedVaccine(t, db, foreign.ID, "Rabies", nil, datePtr(2027, 1, 1))

	page, err := svc.ListWithPendingVaccines(owner.ID, PageRequest{Size: 10}, DetailFull)
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.TotalItems)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Pending", page.Items[0].Name)
	assert.NotNil(t, page.Items[0].Owner)
}

func TestBasicProjectionHidesDetailForEveryVariant(t *testing.T) {
	svc, db := newTestAnimalService(t)
	owner := seedUser(t, db, "ana@example.com")

	for _, kind := range models.AnimalTypes {
		req := dogRequest("Pet " + string(kind))
		req.AnimalType = string(kind)
		req.Species = "some species"
		req.LastDeworming = "2026-01-01"
		created, err := svc.Create(owner.ID, req)
		require.NoError(t, err)

		basic, err := svc.Get(owner.ID, created.ID, DetailBasic)
		require.NoError(t, err)
		raw, err := json.Marshal(basic)
		require.NoError(t, err)

		var fields map[string]any
		require.NoError(t, json.Unmarshal(raw, &fields))
		for _, hidden := range []string{"notes", "diet", "neutered", "lastDeworming", "owner", "healthIssues", "specificFields", "ageYears"} {
			assert.NotContains(t, fields, hidden, "%s BASIC leaked %s", kind, hidden)
		}
		assert.Equal(t, string(kind), fields["animalType"])
	}
}
