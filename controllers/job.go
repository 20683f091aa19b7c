package controllers

import (
	"errors"
	"net/http"
	"time"

	"cleanops-backend/config"
	"cleanops-backend/models"
	"cleanops-backend/services"
	"cleanops-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateJobInput defines the expected JSON structure for creating a job
type CreateJobInput struct {
	ClientID        uuid.UUID          `json:"clientId" binding:"required"`
	ProfessionalIDs []uuid.UUID        `json:"professionalIds" binding:"required,min=1"`
	Date            string             `json:"date" binding:"required"`
	StartTime       string             `json:"startTime"`
	DurationHours   float64            `json:"durationHours" binding:"required,min=0.5"`
	Type            models.JobType     `json:"type" binding:"required,oneof=one_time recurring"`
	ServiceKind     models.ServiceKind `json:"serviceKind" binding:"omitempty,oneof=regular deep_clean"`
	Status          models.JobStatus   `json:"status" binding:"omitempty,oneof=scheduled in_progress completed cancelled"`
	Notes           string             `json:"notes"`
}

// UpdateJobInput defines the expected JSON structure for updating a job
type UpdateJobInput struct {
	ClientID        *uuid.UUID          `json:"clientId"`
	ProfessionalIDs *[]uuid.UUID        `json:"professionalIds"`
	Date            *string             `json:"date"`
	StartTime       *string             `json:"startTime"`
	DurationHours   *float64            `json:"durationHours" binding:"omitempty,min=0.5"`
	ServiceKind     *models.ServiceKind `json:"serviceKind" binding:"omitempty,oneof=regular deep_clean"`
	Status          *models.JobStatus   `json:"status" binding:"omitempty,oneof=scheduled in_progress completed cancelled"`
	Notes           *string             `json:"notes"`
}

// CreateJob creates a job with its financial snapshot
func CreateJob(c *gin.Context) {
	var input CreateJobInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	kind := input.ServiceKind
	if kind == "" {
		kind = models.ServiceRegular
	}

	job, err := services.CreateJob(config.DB, services.JobInput{
		ClientID:        input.ClientID,
		ProfessionalIDs: input.ProfessionalIDs,
		Date:            input.Date,
		StartTime:       input.StartTime,
		DurationHours:   input.DurationHours,
		Type:            input.Type,
		ServiceKind:     kind,
		Status:          input.Status,
		Notes:           input.Notes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, job)
}

// GetJobs retrieves jobs, optionally filtered by client, status and
// anchor-date range
func GetJobs(c *gin.Context) {
	query := config.DB.Preload("Assignments", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	})

	if clientID := c.Query("clientId"); clientID != "" {
		query = query.Where("client_id = ?", clientID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if from := c.Query("from"); from != "" {
		query = query.Where("date >= ?", from)
	}
	if to := c.Query("to"); to != "" {
		query = query.Where("date <= ?", to)
	}

	var jobs []models.Job
	if err := query.Order("date ASC, start_time ASC").Find(&jobs).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve jobs")
		return
	}

	c.JSON(http.StatusOK, jobs)
}

// GetJob retrieves a specific job by ID
func GetJob(c *gin.Context) {
	jobUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid job ID format")
		return
	}

	var job models.Job
	if err := config.DB.Preload("Assignments", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).First(&job, "id = ?", jobUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Job not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, job)
}

// UpdateJob applies a partial update; financial fields trigger a
// snapshot recomputation at current rates
func UpdateJob(c *gin.Context) {
	jobUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid job ID format")
		return
	}

	var input UpdateJobInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	job, err := services.UpdateJob(config.DB, jobUUID, services.JobUpdate{
		ClientID:        input.ClientID,
		ProfessionalIDs: input.ProfessionalIDs,
		Date:            input.Date,
		StartTime:       input.StartTime,
		DurationHours:   input.DurationHours,
		ServiceKind:     input.ServiceKind,
		Status:          input.Status,
		Notes:           input.Notes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, job)
}

// DeleteJob removes a job unless it has been invoiced
func DeleteJob(c *gin.Context) {
	jobUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid job ID format")
		return
	}

	if err := services.DeleteJob(config.DB, jobUUID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Job deleted successfully"})
}

// JobOccurrenceView is one calendar entry of the schedule.
type JobOccurrenceView struct {
	JobID     uuid.UUID        `json:"jobId"`
	ClientID  uuid.UUID        `json:"clientId"`
	Date      string           `json:"date"`
	StartTime string           `json:"startTime"`
	Status    models.JobStatus `json:"status"`
}

// GetJobOccurrences expands all jobs into calendar occurrences for the
// requested range; defaults to the current week
func GetJobOccurrences(c *gin.Context) {
	now := time.Now()
	from := c.Query("from")
	to := c.Query("to")
	if from == "" {
		from = utils.DateKey(utils.StartOfWeek(now))
	}
	if to == "" {
		start, err := utils.ParseDateKey(from)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid from date")
			return
		}
		to = utils.DateKey(start.AddDate(0, 0, 6))
	}

	query := config.DB
	if clientID := c.Query("clientId"); clientID != "" {
		query = query.Where("client_id = ?", clientID)
	}

	var jobs []models.Job
	if err := query.Find(&jobs).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve jobs")
		return
	}

	views := make([]JobOccurrenceView, 0)
	for i := range jobs {
		occs, err := services.ExpandOccurrences(&jobs[i], from, to)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		for _, o := range occs {
			views = append(views, JobOccurrenceView{
				JobID:     jobs[i].ID,
				ClientID:  jobs[i].ClientID,
				Date:      o.Date,
				StartTime: jobs[i].StartTime,
				Status:    o.Status,
			})
		}
	}

	c.JSON(http.StatusOK, gin.H{"from": from, "to": to, "occurrences": views})
}

// GetJobCompletedOccurrences lists the job's occurrences before today
// whose effective status resolves to completed; these are the dates that
// feed invoicing
func GetJobCompletedOccurrences(c *gin.Context) {
	jobUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid job ID format")
		return
	}

	var job models.Job
	if err := config.DB.First(&job, "id = ?", jobUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Job not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	before := c.Query("before")
	if before == "" {
		before = utils.DateKey(time.Now())
	}

	occs, err := services.PastCompletedOccurrences(&job, before)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"jobId": job.ID, "before": before, "occurrences": occs})
}

// SetOccurrenceStatusInput carries the per-date status override.
type SetOccurrenceStatusInput struct {
	Status models.JobStatus `json:"status" binding:"required,oneof=scheduled in_progress completed cancelled"`
}

// SetJobOccurrenceStatus overrides a recurring job's status for one date
func SetJobOccurrenceStatus(c *gin.Context) {
	jobUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid job ID format")
		return
	}

	var input SetOccurrenceStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	job, err := services.SetOccurrenceStatus(config.DB, jobUUID, c.Param("date"), input.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, job)
}
