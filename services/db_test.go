package services

import (
	"path/filepath"
	"testing"

	"cleanops-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

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
	return db
}

func floatPtr(v float64) *float64 {
	return &v
}

func seedClient(t *testing.T, db *gorm.DB, rate float64, deepRate *float64) *models.Client {
	t.Helper()
	client := &models.Client{
		Name:                  "Test Client",
		Phone:                 "+447700900001",
		PricePerHour:          rate,
		DeepCleanPricePerHour: deepRate,
		Status:                models.ClientActive,
	}
	require.NoError(t, db.Create(client).Error)
	return client
}

func seedProfessional(t *testing.T, db *gorm.DB, name string, rate float64, deepRate *float64) *models.Professional {
	t.Helper()
	pro := &models.Professional{
		Name:                 name,
		Phone:                "+447700900002",
		RatePerHour:          rate,
		DeepCleanRatePerHour: deepRate,
		Status:               models.ProfessionalActive,
		WorksMonday:          true,
		WorksTuesday:         true,
		WorksWednesday:       true,
		WorksThursday:        true,
		WorksFriday:          true,
		WorksSaturday:        true,
		WorksSunday:          true,
	}
	require.NoError(t, db.Create(pro).Error)
	return pro
}

func seedCompletedJob(t *testing.T, db *gorm.DB, client *models.Client, date string, pros []*models.Professional, duration float64) *models.Job {
	t.Helper()
	ids := make([]uuid.UUID, 0, len(pros))
	for _, p := range pros {
		ids = append(ids, p.ID)
	}
	job, err := CreateJob(db, JobInput{
		ClientID:        client.ID,
		ProfessionalIDs: ids,
		Date:            date,
		StartTime:       "09:00",
		DurationHours:   duration,
		Type:            models.JobOneTime,
		ServiceKind:     models.ServiceRegular,
		Status:          models.JobCompleted,
	})
	require.NoError(t, err)
	return job
}
