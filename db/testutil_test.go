package db

import (
	"context"
	"testing"

	"equiptrack/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupTestRepo(t *testing.T) *Repo {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, Migrate(conn))
	return NewRepo(conn)
}

func seedAdmin(t *testing.T, r *Repo) *models.Admin {
	t.Helper()
	a, err := r.CreateAdmin(context.Background(), "admin-"+uuid.NewString()[:8], uuid.NewString()[:8]+"@example.com", "correct horse battery")
	require.NoError(t, err)
	return a
}

func seedEquipment(t *testing.T, r *Repo, serial, category string, status models.EquipmentStatus) *models.Equipment {
	t.Helper()
	eq := &models.Equipment{
		Name:         "Equipment " + serial,
		SerialNumber: serial,
		Category:     category,
		Status:       status,
	}
	require.NoError(t, r.CreateEquipment(context.Background(), eq))
	return eq
}
