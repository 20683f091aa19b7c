package services

import (
	"testing"
	"time"

	"cleanops-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateJobSnapshotsFinancials(t *testing.T) {
	db := openTestDB(t)
	client := seedClient(t, db, 20, nil)
	pro := seedProfessional(t, db, "Ana", 12, nil)

	job, err := CreateJob(db, JobInput{
		ClientID:        client.ID,
		ProfessionalIDs: []uuid.UUID{pro.ID},
		Date:            "2025-03-03",
		StartTime:       "09:00",
		DurationHours:   2,
		Type:            models.JobOneTime,
		ServiceKind:     models.ServiceRegular,
	})
	require.NoError(t, err)

	assert.Equal(t, models.JobScheduled, job.Status)
	assert.Equal(t, 40.00, job.TotalPrice)
	assert.Equal(t, 24.00, job.Cost)
	require.Len(t, job.ProfessionalCosts, 1)
	assert.Equal(t, pro.ID, job.ProfessionalCosts[0].ProfessionalID)
	require.Len(t, job.Assignments, 1)
}

func TestCreateJobScheduleValidation(t *testing.T) {
	db := openTestDB(t)
	client := seedClient(t, db, 20, nil)

	// Available Mondays only.
	weekdayPro := &models.Professional{
		Name:        "Mon Only",
		Phone:       "+447700900003",
		RatePerHour: 12,
		Status:      models.ProfessionalActive,
		WorksMonday: true,
	}
	require.NoError(t, db.Create(weekdayPro).Error)

	base := JobInput{
		ClientID:        client.ID,
		ProfessionalIDs: []uuid.UUID{weekdayPro.ID},
		DurationHours:   2,
		Type:            models.JobOneTime,
		ServiceKind:     models.ServiceRegular,
	}

	// 2025-03-03 is a Monday, 2025-03-04 is not.
	in := base
	in.Date = "2025-03-03"
	_, err := CreateJob(db, in)
	require.NoError(t, err)

	var vErr *ValidationError
	in.Date = "2025-03-04"
	_, err = CreateJob(db, in)
	require.ErrorAs(t, err, &vErr)

	in.Date = "2025-03-03"
	in.StartTime = "25:00"
	_, err = CreateJob(db, in)
	require.ErrorAs(t, err, &vErr)

	in.StartTime = ""
	in.ProfessionalIDs = nil
	_, err = CreateJob(db, in)
	require.ErrorAs(t, err, &vErr)

	// Inactive clients cannot be scheduled.
	require.NoError(t, db.Model(client).Update("status", models.ClientInactive).Error)
	in = base
	in.Date = "2025-03-03"
	_, err = CreateJob(db, in)
	require.ErrorAs(t, err, &vErr)
}

func TestUpdateJobRecomputeRules(t *testing.T) {
	db := openTestDB(t)
	client := seedClient(t, db, 20, nil)
	pro := seedProfessional(t, db, "Ana", 12, nil)

	job, err := CreateJob(db, JobInput{
		ClientID:        client.ID,
		ProfessionalIDs: []uuid.UUID{pro.ID},
		Date:            "2025-03-03",
		DurationHours:   2,
		Type:            models.JobOneTime,
		ServiceKind:     models.ServiceRegular,
	})
	require.NoError(t, err)
	require.Equal(t, 40.00, job.TotalPrice)

	// Rates change after the job was booked.
	require.NoError(t, db.Model(client).Update("price_per_hour", 30.0).Error)

	// Status and notes edits keep the original snapshot.
	status := models.JobCompleted
	notes := "left keys under the mat"
	updated, err := UpdateJob(db, job.ID, JobUpdate{Status: &status, Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, models.JobCompleted, updated.Status)
	assert.Equal(t, 40.00, updated.TotalPrice)
	assert.Equal(t, 24.00, updated.Cost)

	// A duration change re-prices the whole job at today's rates.
	duration := 3.0
	updated, err = UpdateJob(db, job.ID, JobUpdate{DurationHours: &duration})
	require.NoError(t, err)
	assert.Equal(t, 90.00, updated.TotalPrice)
	assert.Equal(t, 36.00, updated.Cost)
}

func TestUpdateJobReplacesAssignments(t *testing.T) {
	db := openTestDB(t)
	client := seedClient(t, db, 20, nil)
	ana := seedProfessional(t, db, "Ana", 12, nil)
	bea := seedProfessional(t, db, "Bea", 15, nil)

	job, err := CreateJob(db, JobInput{
		ClientID:        client.ID,
		ProfessionalIDs: []uuid.UUID{ana.ID},
		Date:            "2025-03-03",
		DurationHours:   2,
		Type:            models.JobOneTime,
		ServiceKind:     models.ServiceRegular,
	})
	require.NoError(t, err)

	ids := []uuid.UUID{ana.ID, bea.ID}
	updated, err := UpdateJob(db, job.ID, JobUpdate{ProfessionalIDs: &ids})
	require.NoError(t, err)

	// Revenue doubles with the second cleaner, cost adds her rate.
	assert.Equal(t, 80.00, updated.TotalPrice)
	assert.Equal(t, 54.00, updated.Cost)
	require.Len(t, updated.Assignments, 2)
	assert.Equal(t, ana.ID, updated.Assignments[0].ProfessionalID)
	assert.Equal(t, bea.ID, updated.Assignments[1].ProfessionalID)

	var rows int64
	require.NoError(t, db.Model(&models.JobProfessional{}).Where("job_id = ?", job.ID).Count(&rows).Error)
	assert.EqualValues(t, 2, rows)
}

func TestDeleteJobRejectsInvoiced(t *testing.T) {
	db := openTestDB(t)
	client := seedClient(t, db, 20, nil)
	pro := seedProfessional(t, db, "Ana", 12, nil)
	job := seedCompletedJob(t, db, client, "2025-03-03", []*models.Professional{pro}, 2)

	inv, err := GenerateInvoice(db, client.ID, "2025-03-01", "2025-03-31", InvoiceOptions{}, time.Now())
	require.NoError(t, err)
	require.Len(t, inv.Jobs, 1)

	var vErr *ValidationError
	err = DeleteJob(db, job.ID)
	require.ErrorAs(t, err, &vErr)

	_, err = RemoveJobFromInvoice(db, inv.ID, job.ID)
	require.NoError(t, err)
	require.NoError(t, DeleteJob(db, job.ID))

	var nfErr *NotFoundError
	err = DeleteJob(db, job.ID)
	require.ErrorAs(t, err, &nfErr)
}
