package services

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/petcare-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/petcare-backend/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	dbSeq    atomic.Int64
	fixedNow = time.Date(2026, 6, 15, 10, 30, 0, 0, time.UTC)
)

func clock() time.Time { return fixedNow }

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:services-%d-%d?mode=memory&cache=shared&_foreign_keys=on", time.Now().UnixNano(), dbSeq.Add(1))
	gdb, err := gorm.Open(database.SQLiteDialector(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err, "open test db")

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(gdb), "migrate test db")
	return gdb
}

func seedUser(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()
	user := models.User{Name: "Owner", Surname: "Test", Email: email, Password: "x"}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedAnimal(t *testing.T, db *gorm.DB, ownerID uint, name string, kind models.AnimalType, birth time.Time) models.Animal {
	t.Helper()
	animal := models.Animal{
		Name:             name,
		BirthDate:        models.Day(birth),
		RegistrationDate: models.Day(fixedNow),
		Gender:           "female",
		AnimalType:       kind,
		OwnerID:          ownerID,
	}
	require.NoError(t, db.Omit("Owner").Create(&animal).Error)
	return animal
}

func seedVaccine(t *testing.T, db *gorm.DB, animalID uint, name string, applied, expires *time.Time) models.Vaccine {
	t.Helper()
	v := models.Vaccine{Name: name, AnimalID: animalID}
	if applied != nil {
		v.ApplicationDate = models.DayPtr(*applied)
	}
	if expires != nil {
		v.ExpirationDate = models.DayPtr(*expires)
	}
	require.NoError(t, db.Create(&v).Error)
	return v
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func strPtr(s string) *string { return &s }

func typePtr(k models.AnimalType) *models.AnimalType { return &k }

func itoa(id uint) string { return fmt.Sprint(id) }
