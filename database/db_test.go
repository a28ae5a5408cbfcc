package database

import (
	"path/filepath"
	"testing"
	"time"

	"taskpro/api/config"
	"taskpro/api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm/logger"
)

func openMemory(t *testing.T) *Database {
	t.Helper()
	database, err := Open(sqlite.Open(":memory:"), logger.Silent)
	require.NoError(t, err)
	t.Cleanup(database.Close)
	return database
}

func TestClose(t *testing.T) {
	database := openMemory(t)

	assert.NotPanics(t, func() {
		database.Close()
	})
	assert.NotPanics(t, func() {
		(&Database{}).Close()
	})
}

func TestPing(t *testing.T) {
	database := openMemory(t)
	assert.NoError(t, database.Ping())
	assert.Error(t, (&Database{}).Ping())
}

func TestMigrationsEnforceConstraints(t *testing.T) {
	database := openMemory(t)
	require.NoError(t, RunMigrations(database.DB))

	owner := models.User{Username: "owner", PasswordHash: "hash"}
	other := models.User{Username: "other", PasswordHash: "hash"}
	require.NoError(t, database.DB.Create(&owner).Error)
	require.NoError(t, database.DB.Create(&other).Error)

	now := time.Now().UTC()
	for _, task := range []models.Task{
		{Date: now, Name: "first", Priority: 1, Deadline: now, UserID: owner.ID},
		{Date: now, Name: "second", Priority: 3, Deadline: now, UserID: owner.ID},
		{Date: now, Name: "kept", Priority: 2, Deadline: now, UserID: other.ID},
	} {
		require.NoError(t, database.DB.Create(&task).Error)
	}

	t.Run("Unique username", func(t *testing.T) {
		err := database.DB.Create(&models.User{Username: "owner", PasswordHash: "hash"}).Error
		assert.Error(t, err)
	})

	t.Run("Priority range", func(t *testing.T) {
		err := database.DB.Create(&models.Task{Date: now, Name: "bad", Priority: 5, Deadline: now, UserID: owner.ID}).Error
		assert.Error(t, err)
	})

	t.Run("Owner must exist", func(t *testing.T) {
		err := database.DB.Create(&models.Task{Date: now, Name: "orphan", Priority: 1, Deadline: now, UserID: 999}).Error
		assert.Error(t, err)
	})

	t.Run("Deleting a user cascades to its tasks only", func(t *testing.T) {
		require.NoError(t, database.DB.Exec("DELETE FROM users WHERE id = ?", owner.ID).Error)

		var remaining []models.Task
		require.NoError(t, database.DB.Find(&remaining).Error)
		require.Len(t, remaining, 1)
		assert.Equal(t, "kept", remaining[0].Name)
	})
}

func TestSetupSQLite(t *testing.T) {
	cfg := config.Config{
		AppEnv:   "production",
		DBDriver: DriverSQLite,
		DBPath:   filepath.Join(t.TempDir(), "taskpro.db"),
	}

	database, err := Setup(cfg)
	require.NoError(t, err)
	defer database.Close()

	assert.True(t, database.DB.Migrator().HasTable(&models.User{}))
	assert.True(t, database.DB.Migrator().HasTable(&models.Task{}))
}

func TestSetupUnsupportedDriver(t *testing.T) {
	_, err := Setup(config.Config{DBDriver: "oracle"})
	assert.ErrorContains(t, err, "unsupported database driver")
}
