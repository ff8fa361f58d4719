//go:build integration

package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/petcare-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/petcare-backend/internal/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

func startPostgres(t *testing.T) *config.Config {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("petcare_test"),
		tcpostgres.WithUsername("vet"),
		tcpostgres.WithPassword("vet"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	return &config.Config{
		DBDriver:   "postgres",
		DBHost:     host,
		DBPort:     port.Port(),
		DBUser:     "vet",
		DBPassword: "vet",
		DBName:     "petcare_test",
		DBSSLMode:  "disable",
	}
}

func TestPostgresSchema(t *testing.T) {
	db, err := Open(startPostgres(t))
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	owner := models.User{Name: "Ana", Surname: "Diaz", Email: "ana@example.com", Password: "x"}
	require.NoError(t, db.Create(&owner).Error)

	t.Run("duplicate email is a unique violation", func(t *testing.T) {
		err := db.Create(&models.User{Name: "B", Surname: "C", Email: "ana@example.com", Password: "x"}).Error
		require.Error(t, err)

		var pgErr *pgconn.PgError
		assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey) || (errors.As(err, &pgErr) && pgErr.Code == "23505"))
	})

	t.Run("vaccine check constraint", func(t *testing.T) {
		animal := models.Animal{
			Name: "Rex", BirthDate: models.Day(time.Now()), RegistrationDate: models.Day(time.Now()),
			Gender: "male", AnimalType: models.AnimalTypeDog, OwnerID: owner.ID,
		}
		require.NoError(t, db.Omit("Owner").Create(&animal).Error)

		err := db.Exec("INSERT INTO vaccines (name, animal_id, created_at, updated_at) VALUES (?, ?, now(), now())", "Rabies", animal.ID).Error
		require.Error(t, err)
		var pgErr *pgconn.PgError
		assert.True(t, errors.Is(err, gorm.ErrCheckConstraintViolated) || (errors.As(err, &pgErr) && pgErr.Code == "23514"))
	})

	t.Run("deleting an owner cascades", func(t *testing.T) {
		require.NoError(t, db.Delete(&owner).Error)
		var count int64
		require.NoError(t, db.Model(&models.Animal{}).Where("owner_id = ?", owner.ID).Count(&count).Error)
		assert.Zero(t, count)
	})
}
