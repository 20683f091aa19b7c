package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"cleanops-backend/config"
	"cleanops-backend/models"
	"cleanops-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetJobCompletedOccurrences(t *testing.T) {
	db := openTestDB(t)
	client := seedClient(t, db)
	pro := seedProfessional(t, db)

	// Weekly Mondays from 2025-01-06, completed by default; the 13th
	// cancelled by override.
	job, err := services.CreateJob(config.DB, services.JobInput{
		ClientID:        client.ID,
		ProfessionalIDs: []uuid.UUID{pro.ID},
		Date:            "2025-01-06",
		DurationHours:   2,
		Type:            models.JobRecurring,
		ServiceKind:     models.ServiceRegular,
		Status:          models.JobCompleted,
	})
	require.NoError(t, err)
	_, err = services.SetOccurrenceStatus(config.DB, job.ID, "2025-01-13", models.JobCancelled)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: job.ID.String()}}
	c.Request = httptest.NewRequest(http.MethodGet,
		"/api/jobs/"+job.ID.String()+"/occurrences/completed?before=2025-01-21", nil)

	GetJobCompletedOccurrences(c)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Before      string `json:"before"`
		Occurrences []struct {
			Date   string `json:"date"`
			Status string `json:"status"`
		} `json:"occurrences"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "2025-01-21", body.Before)
	require.Len(t, body.Occurrences, 2)
	assert.Equal(t, "2025-01-06", body.Occurrences[0].Date)
	assert.Equal(t, "2025-01-20", body.Occurrences[1].Date)
}

func TestGetJobCompletedOccurrencesNotFound(t *testing.T) {
	openTestDB(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}
	c.Request = httptest.NewRequest(http.MethodGet, "/api/jobs/x/occurrences/completed", nil)

	GetJobCompletedOccurrences(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
