package services

import (
	"testing"
	"time"

	"cleanops-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccumulateProfessionalTotals(t *testing.T) {
	ana := uuid.New()
	bea := uuid.New()

	jobs := []models.Job{
		{
			Cost: 65,
			ProfessionalCosts: models.ProfessionalCostList{
				{ProfessionalID: ana, Cost: 40},
				{ProfessionalID: bea, Cost: 25},
			},
		},
		{
			Cost: 30,
			ProfessionalCosts: models.ProfessionalCostList{
				{ProfessionalID: ana, Cost: 30},
			},
		},
	}

	totals := AccumulateProfessionalTotals(jobs)
	assert.Equal(t, 70.00, totals[ana])
	assert.Equal(t, 25.00, totals[bea])
}

func TestAccumulateProfessionalTotalsLegacyEvenSplit(t *testing.T) {
	ana := uuid.New()
	bea := uuid.New()

	// Imported job without a breakdown: aggregate cost split evenly.
	jobs := []models.Job{
		{
			Cost: 50,
			Assignments: []models.JobProfessional{
				{ProfessionalID: ana, Position: 0},
				{ProfessionalID: bea, Position: 1},
			},
		},
	}

	totals := AccumulateProfessionalTotals(jobs)
	assert.Equal(t, 25.00, totals[ana])
	assert.Equal(t, 25.00, totals[bea])
}

func TestGeneratePaymentRun(t *testing.T) {
	db := openTestDB(t)
	client := seedClient(t, db, 20, nil)
	ana := seedProfessional(t, db, "Ana", 12, nil)
	bea := seedProfessional(t, db, "Bea", 15, nil)

	// 2h x (12+15): Ana earns 24, Bea 30. Second job adds 24 for Ana.
	seedCompletedJob(t, db, client, "2025-03-03", []*models.Professional{ana, bea}, 2)
	seedCompletedJob(t, db, client, "2025-03-10", []*models.Professional{ana}, 2)
	// Outside the period.
	seedCompletedJob(t, db, client, "2025-04-01", []*models.Professional{bea}, 2)

	now := time.Date(2025, 4, 2, 9, 0, 0, 0, time.UTC)
	run, err := GeneratePaymentRun(db, "2025-03-01", "2025-03-31", now)
	require.NoError(t, err)
	require.Len(t, run.Items, 2)

	byPro := map[uuid.UUID]models.PaymentRunItem{}
	for _, item := range run.Items {
		byPro[item.ProfessionalID] = item
	}
	assert.Equal(t, 48.00, byPro[ana.ID].Amount)
	assert.Equal(t, 30.00, byPro[bea.ID].Amount)
	for _, item := range run.Items {
		assert.Equal(t, models.PaymentItemPending, item.Status)
		assert.Nil(t, item.PaidAt)
	}
}

func TestGeneratePaymentRunDuplicatePeriod(t *testing.T) {
	db := openTestDB(t)
	now := time.Now()

	_, err := GeneratePaymentRun(db, "2025-03-01", "2025-03-31", now)
	require.NoError(t, err)

	// Exact same period is rejected.
	var vErr *ValidationError
	_, err = GeneratePaymentRun(db, "2025-03-01", "2025-03-31", now)
	require.ErrorAs(t, err, &vErr)

	// Overlapping but different period is allowed.
	_, err = GeneratePaymentRun(db, "2025-03-15", "2025-04-15", now)
	require.NoError(t, err)
}

func TestMarkPaymentRunItemPaid(t *testing.T) {
	db := openTestDB(t)
	client := seedClient(t, db, 20, nil)
	ana := seedProfessional(t, db, "Ana", 12, nil)
	seedCompletedJob(t, db, client, "2025-03-03", []*models.Professional{ana}, 2)

	run, err := GeneratePaymentRun(db, "2025-03-01", "2025-03-31", time.Now())
	require.NoError(t, err)
	require.Len(t, run.Items, 1)

	paidAt := time.Date(2025, 4, 5, 12, 0, 0, 0, time.UTC)
	item, err := MarkPaymentRunItemPaid(db, run.Items[0].ID, paidAt)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentItemPaid, item.Status)
	require.NotNil(t, item.PaidAt)
	assert.True(t, item.PaidAt.Equal(paidAt))

	// Second call is a no-op: same amount, PaidAt untouched.
	later := paidAt.AddDate(0, 0, 3)
	again, err := MarkPaymentRunItemPaid(db, run.Items[0].ID, later)
	require.NoError(t, err)
	assert.Equal(t, item.Amount, again.Amount)
	require.NotNil(t, again.PaidAt)
	assert.True(t, again.PaidAt.Equal(paidAt))

	var nfErr *NotFoundError
	_, err = MarkPaymentRunItemPaid(db, uuid.New(), later)
	require.ErrorAs(t, err, &nfErr)
}
