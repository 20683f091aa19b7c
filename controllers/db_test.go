package controllers

import (
	"path/filepath"
	"testing"

	"cleanops-backend/config"
	"cleanops-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB swaps config.DB for a throwaway sqlite database so handlers
// can be exercised directly.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Client{},
		&models.Professional{},
		&models.Job{},
		&models.JobProfessional{},
		&models.Invoice{},
		&models.InvoiceJob{},
		&models.PaymentRun{},
		&models.PaymentRunItem{},
	))

	previous := config.DB
	config.DB = db
	t.Cleanup(func() { config.DB = previous })
	return db
}

func seedClient(t *testing.T, db *gorm.DB) *models.Client {
	t.Helper()
	client := &models.Client{
		Name:         "Test Client",
		Phone:        "+447700900001",
		PricePerHour: 20,
		Status:       models.ClientActive,
	}
	require.NoError(t, db.Create(client).Error)
	return client
}

func seedProfessional(t *testing.T, db *gorm.DB) *models.Professional {
	t.Helper()
	pro := &models.Professional{
		Name:           "Ana",
		Phone:          "+447700900002",
		RatePerHour:    12,
		Status:         models.ProfessionalActive,
		WorksMonday:    true,
		WorksTuesday:   true,
		WorksWednesday: true,
		WorksThursday:  true,
		WorksFriday:    true,
		WorksSaturday:  true,
		WorksSunday:    true,
	}
	require.NoError(t, db.Create(pro).Error)
	return pro
}
