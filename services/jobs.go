package services

import (
	"errors"
	"regexp"

	"cleanops-backend/models"
	"cleanops-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JobInput carries everything needed to create a job.
type JobInput struct {
	ClientID        uuid.UUID
	ProfessionalIDs []uuid.UUID
	Date            string
	StartTime       string
	DurationHours   float64
	Type            models.JobType
	ServiceKind     models.ServiceKind
	Status          models.JobStatus
	Notes           string
}

// JobUpdate is a partial update; nil fields are left untouched. Changes
// to duration, client, assignees or service kind recompute the financial
// snapshot with the rates in effect now; changes to status, notes, date
// or start time must not.
type JobUpdate struct {
	ClientID        *uuid.UUID
	ProfessionalIDs *[]uuid.UUID
	Date            *string
	StartTime       *string
	DurationHours   *float64
	ServiceKind     *models.ServiceKind
	Status          *models.JobStatus
	Notes           *string
}

var startTimePattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

func validateStartTime(s string) error {
	if s != "" && !startTimePattern.MatchString(s) {
		return validationErrorf("start time %q must be HH:MM", s)
	}
	return nil
}

func fetchActiveClient(db *gorm.DB, clientID uuid.UUID) (*models.Client, error) {
	var client models.Client
	if err := db.First(&client, "id = ?", clientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "client", ID: clientID.String()}
		}
		return nil, storeError("fetch", "client", clientID.String(), err)
	}
	if client.Status != models.ClientActive {
		return nil, validationErrorf("client %s is not active", client.Name)
	}
	return &client, nil
}

// fetchSchedulableProfessionals loads the assignees in the supplied
// order and checks each can work the job's weekday.
func fetchSchedulableProfessionals(db *gorm.DB, ids []uuid.UUID, dateKey string) ([]models.Professional, error) {
	date, err := utils.ParseDateKey(dateKey)
	if err != nil {
		return nil, validationErrorf("job date %q must be YYYY-MM-DD", dateKey)
	}

	pros := make([]models.Professional, 0, len(ids))
	for _, id := range ids {
		var pro models.Professional
		if err := db.First(&pro, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, &NotFoundError{Entity: "professional", ID: id.String()}
			}
			return nil, storeError("fetch", "professional", id.String(), err)
		}
		if pro.Status != models.ProfessionalActive {
			return nil, validationErrorf("professional %s is not active", pro.Name)
		}
		if !pro.AvailableOn(date.Weekday()) {
			return nil, validationErrorf("professional %s is not available on %ss", pro.Name, date.Weekday())
		}
		pros = append(pros, pro)
	}
	return pros, nil
}

// CreateJob validates the schedule, snapshots the financials at today's
// rates and persists the job with its assignment rows in one
// transaction, so a failed assignee write never leaves a dangling job.
func CreateJob(db *gorm.DB, in JobInput) (*models.Job, error) {
	if !in.Type.Valid() {
		return nil, validationErrorf("invalid job type %q", in.Type)
	}
	if !in.ServiceKind.Valid() {
		return nil, validationErrorf("invalid service kind %q", in.ServiceKind)
	}
	if in.Status == "" {
		in.Status = models.JobScheduled
	}
	if !in.Status.Valid() {
		return nil, validationErrorf("invalid job status %q", in.Status)
	}
	if !utils.ValidDateKey(in.Date) {
		return nil, validationErrorf("job date %q must be YYYY-MM-DD", in.Date)
	}
	if err := validateStartTime(in.StartTime); err != nil {
		return nil, err
	}
	if len(in.ProfessionalIDs) == 0 {
		return nil, &ValidationError{Message: "at least one cleaner required"}
	}

	client, err := fetchActiveClient(db, in.ClientID)
	if err != nil {
		return nil, err
	}
	pros, err := fetchSchedulableProfessionals(db, in.ProfessionalIDs, in.Date)
	if err != nil {
		return nil, err
	}

	fin, err := ComputeJobFinancials(client, pros, in.DurationHours, in.ServiceKind)
	if err != nil {
		return nil, err
	}

	job := models.Job{
		ID:                 uuid.New(),
		ClientID:           in.ClientID,
		Date:               in.Date,
		StartTime:          in.StartTime,
		DurationHours:      in.DurationHours,
		Type:               in.Type,
		ServiceKind:        in.ServiceKind,
		Status:             in.Status,
		TotalPrice:         fin.TotalPrice,
		Cost:               fin.Cost,
		ProfessionalCosts:  fin.ProfessionalCosts,
		OccurrenceStatuses: models.OccurrenceStatusMap{},
		Notes:              in.Notes,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&job).Error; err != nil {
			return storeError("create", "job", job.ID.String(), err)
		}
		for i, id := range in.ProfessionalIDs {
			a := models.JobProfessional{
				ID:             uuid.New(),
				JobID:          job.ID,
				ProfessionalID: id,
				Position:       i,
			}
			if err := tx.Create(&a).Error; err != nil {
				return storeError("assign", "professional", id.String(), err)
			}
			job.Assignments = append(job.Assignments, a)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func sameIDs(a, b []uuid.UUID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// UpdateJob applies a partial update, recomputing the financial snapshot
// only when a financial field actually changed.
func UpdateJob(db *gorm.DB, jobID uuid.UUID, upd JobUpdate) (*models.Job, error) {
	var job models.Job
	if err := db.Preload("Assignments", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).First(&job, "id = ?", jobID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "job", ID: jobID.String()}
		}
		return nil, storeError("fetch", "job", jobID.String(), err)
	}

	financialChanged := false
	scheduleChanged := false

	if upd.ClientID != nil && *upd.ClientID != job.ClientID {
		job.ClientID = *upd.ClientID
		financialChanged = true
	}
	if upd.DurationHours != nil && *upd.DurationHours != job.DurationHours {
		job.DurationHours = *upd.DurationHours
		financialChanged = true
	}
	if upd.ServiceKind != nil && *upd.ServiceKind != job.ServiceKind {
		if !upd.ServiceKind.Valid() {
			return nil, validationErrorf("invalid service kind %q", *upd.ServiceKind)
		}
		job.ServiceKind = *upd.ServiceKind
		financialChanged = true
	}
	if upd.Date != nil && *upd.Date != job.Date {
		if !utils.ValidDateKey(*upd.Date) {
			return nil, validationErrorf("job date %q must be YYYY-MM-DD", *upd.Date)
		}
		job.Date = *upd.Date
		scheduleChanged = true
	}
	if upd.StartTime != nil {
		if err := validateStartTime(*upd.StartTime); err != nil {
			return nil, err
		}
		job.StartTime = *upd.StartTime
	}
	if upd.Status != nil {
		if !upd.Status.Valid() {
			return nil, validationErrorf("invalid job status %q", *upd.Status)
		}
		job.Status = *upd.Status
	}
	if upd.Notes != nil {
		job.Notes = *upd.Notes
	}

	proIDs := job.ProfessionalIDs()
	if upd.ProfessionalIDs != nil && !sameIDs(*upd.ProfessionalIDs, proIDs) {
		if len(*upd.ProfessionalIDs) == 0 {
			return nil, &ValidationError{Message: "at least one cleaner required"}
		}
		proIDs = *upd.ProfessionalIDs
		financialChanged = true
		scheduleChanged = true
	}

	if financialChanged || scheduleChanged {
		client, err := fetchActiveClient(db, job.ClientID)
		if err != nil {
			return nil, err
		}
		pros, err := fetchSchedulableProfessionals(db, proIDs, job.Date)
		if err != nil {
			return nil, err
		}
		if financialChanged {
			fin, err := ComputeJobFinancials(client, pros, job.DurationHours, job.ServiceKind)
			if err != nil {
				return nil, err
			}
			job.TotalPrice = fin.TotalPrice
			job.Cost = fin.Cost
			job.ProfessionalCosts = fin.ProfessionalCosts
		}
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if upd.ProfessionalIDs != nil {
			if err := tx.Where("job_id = ?", job.ID).Delete(&models.JobProfessional{}).Error; err != nil {
				return storeError("unassign", "job", job.ID.String(), err)
			}
			job.Assignments = nil
			for i, id := range proIDs {
				a := models.JobProfessional{
					ID:             uuid.New(),
					JobID:          job.ID,
					ProfessionalID: id,
					Position:       i,
				}
				if err := tx.Create(&a).Error; err != nil {
					return storeError("assign", "professional", id.String(), err)
				}
				job.Assignments = append(job.Assignments, a)
			}
		}
		if err := tx.Omit("Assignments").Save(&job).Error; err != nil {
			return storeError("update", "job", job.ID.String(), err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// DeleteJob removes a job and its assignment rows. Invoiced jobs cannot
// be deleted, otherwise invoice subtotals would drift from their links.
func DeleteJob(db *gorm.DB, jobID uuid.UUID) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var job models.Job
		if err := tx.First(&job, "id = ?", jobID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "job", ID: jobID.String()}
			}
			return storeError("fetch", "job", jobID.String(), err)
		}

		var linked int64
		if err := tx.Model(&models.InvoiceJob{}).Where("job_id = ?", jobID).Count(&linked).Error; err != nil {
			return storeError("scan", "invoice links", jobID.String(), err)
		}
		if linked > 0 {
			return &ValidationError{Message: "job is linked to an invoice"}
		}

		if err := tx.Where("job_id = ?", jobID).Delete(&models.JobProfessional{}).Error; err != nil {
			return storeError("unassign", "job", jobID.String(), err)
		}
		if err := tx.Delete(&job).Error; err != nil {
			return storeError("delete", "job", jobID.String(), err)
		}
		return nil
	})
}
