// Package testutil provides shared test fixtures.
package testutil

import (
	"testing"

	"github.com/ecopledge-dev/ecopledge/db"
	"github.com/ecopledge-dev/ecopledge/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// SetupDB opens an in-memory sqlite store, migrates the schema, and installs
// it as the package-global handle for the duration of the test.
func SetupDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)

	// A fresh connection would see a fresh :memory: database
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, gdb.AutoMigrate(
		&models.User{},
		&models.CarbonEntry{},
		&models.Pledge{},
		&models.PledgeLike{},
	))

	prev := db.DB
	db.DB = gdb
	t.Cleanup(func() {
		db.DB = prev
		sqlDB.Close()
	})

	return gdb
}

// CreateUser inserts a minimal user row.
func CreateUser(t *testing.T, name, email string) models.User {
	t.Helper()

	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: "x",
		Avatar:       "https://example.com/" + name + ".png",
	}
	require.NoError(t, db.DB.Create(&user).Error)

	return user
}
