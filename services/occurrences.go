package services

import (
	"errors"

	"cleanops-backend/models"
	"cleanops-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Occurrence is one calendar-date instance of a (possibly recurring) job.
type Occurrence struct {
	Date   string           `json:"date"`
	Status models.JobStatus `json:"status"`
}

// ExpandOccurrences produces the job's occurrences inside the inclusive
// range. One-time jobs yield at most one occurrence on their anchor date.
// Recurring jobs yield one occurrence per date that shares the anchor's
// weekday and is on or after the anchor. All date handling goes through
// YYYY-MM-DD calendar keys; ISO date strings compare lexicographically in
// date order, so no timezone conversion ever touches the arithmetic.
func ExpandOccurrences(job *models.Job, rangeStart, rangeEnd string) ([]Occurrence, error) {
	anchor, err := utils.ParseDateKey(job.Date)
	if err != nil {
		return nil, validationErrorf("job %s has malformed date %q", job.ID, job.Date)
	}
	if !utils.ValidDateKey(rangeStart) || !utils.ValidDateKey(rangeEnd) {
		return nil, &ValidationError{Message: "range dates must be YYYY-MM-DD"}
	}
	if rangeEnd < rangeStart {
		return nil, &ValidationError{Message: "range end before range start"}
	}

	if job.Type == models.JobOneTime {
		if job.Date < rangeStart || job.Date > rangeEnd {
			return nil, nil
		}
		return []Occurrence{{Date: job.Date, Status: job.Status}}, nil
	}

	// Walk weekly from the anchor or the first matching weekday at/after
	// rangeStart, whichever is later.
	cur := anchor
	if job.Date < rangeStart {
		start, _ := utils.ParseDateKey(rangeStart)
		cur = start
		for cur.Weekday() != anchor.Weekday() {
			cur = cur.AddDate(0, 0, 1)
		}
	}

	var out []Occurrence
	for {
		key := utils.DateKey(cur)
		if key > rangeEnd {
			break
		}
		if key >= rangeStart {
			out = append(out, Occurrence{Date: key, Status: effectiveStatus(job, key)})
		}
		cur = cur.AddDate(0, 0, 7)
	}
	return out, nil
}

func effectiveStatus(job *models.Job, dateKey string) models.JobStatus {
	if s, ok := job.OccurrenceStatuses[dateKey]; ok {
		return s
	}
	return job.Status
}

// PastCompletedOccurrences walks weekly from the anchor while the date is
// strictly before today and keeps occurrences whose effective status
// resolves to completed.
func PastCompletedOccurrences(job *models.Job, today string) ([]Occurrence, error) {
	anchor, err := utils.ParseDateKey(job.Date)
	if err != nil {
		return nil, validationErrorf("job %s has malformed date %q", job.ID, job.Date)
	}
	if !utils.ValidDateKey(today) {
		return nil, &ValidationError{Message: "today must be YYYY-MM-DD"}
	}

	if job.Type == models.JobOneTime {
		if job.Date < today && job.Status == models.JobCompleted {
			return []Occurrence{{Date: job.Date, Status: job.Status}}, nil
		}
		return nil, nil
	}

	var out []Occurrence
	for cur := anchor; utils.DateKey(cur) < today; cur = cur.AddDate(0, 0, 7) {
		key := utils.DateKey(cur)
		if effectiveStatus(job, key) == models.JobCompleted {
			out = append(out, Occurrence{Date: key, Status: models.JobCompleted})
		}
	}
	return out, nil
}

// SetOccurrenceStatus overrides a recurring job's status for one calendar
// date. The date must be a real occurrence of the job.
func SetOccurrenceStatus(db *gorm.DB, jobID uuid.UUID, dateKey string, status models.JobStatus) (*models.Job, error) {
	if !status.Valid() {
		return nil, validationErrorf("invalid status %q", status)
	}
	date, err := utils.ParseDateKey(dateKey)
	if err != nil {
		return nil, validationErrorf("invalid occurrence date %q", dateKey)
	}

	var job models.Job
	if err := db.Preload("Assignments").First(&job, "id = ?", jobID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "job", ID: jobID.String()}
		}
		return nil, storeError("fetch", "job", jobID.String(), err)
	}

	if job.Type != models.JobRecurring {
		return nil, &ValidationError{Message: "occurrence overrides only apply to recurring jobs"}
	}
	anchor, err := utils.ParseDateKey(job.Date)
	if err != nil {
		return nil, validationErrorf("job %s has malformed date %q", job.ID, job.Date)
	}
	if date.Weekday() != anchor.Weekday() || dateKey < job.Date {
		return nil, validationErrorf("%s is not an occurrence of this job", dateKey)
	}

	if job.OccurrenceStatuses == nil {
		job.OccurrenceStatuses = models.OccurrenceStatusMap{}
	}
	job.OccurrenceStatuses[dateKey] = status

	if err := db.Model(&job).Update("occurrence_statuses", job.OccurrenceStatuses).Error; err != nil {
		return nil, storeError("update", "job", jobID.String(), err)
	}
	return &job, nil
}
