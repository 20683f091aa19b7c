package controllers

import (
	"bytes"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"cleanops-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDashboardOverviewSkipsAndLogsMalformedJob(t *testing.T) {
	db := openTestDB(t)
	client := seedClient(t, db)

	// A row with a corrupted anchor date must not break the dashboard,
	// but the skip has to leave a trace in the log.
	bad := models.Job{
		ID:            uuid.New(),
		ClientID:      client.ID,
		Date:          "not-a-date",
		DurationHours: 2,
		Type:          models.JobOneTime,
		ServiceKind:   models.ServiceRegular,
		Status:        models.JobScheduled,
		TotalPrice:    40,
		Cost:          24,
	}
	require.NoError(t, db.Create(&bad).Error)

	var buf bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&buf)
	defer log.SetOutput(prev)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)

	GetDashboardOverview(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, buf.String(), bad.ID.String())
	assert.Contains(t, buf.String(), "skipping job")
}
