package services

import (
	"reflect"
	"testing"
	"time"

	"cleanops-backend/models"

	"github.com/google/uuid"
)

// 2025-01-06 is a Monday.
func weeklyJob(status models.JobStatus) *models.Job {
	return &models.Job{
		ID:                 uuid.New(),
		Type:               models.JobRecurring,
		Date:               "2025-01-06",
		Status:             status,
		OccurrenceStatuses: models.OccurrenceStatusMap{},
	}
}

func TestExpandOccurrencesOneTime(t *testing.T) {
	job := &models.Job{
		ID:     uuid.New(),
		Type:   models.JobOneTime,
		Date:   "2025-01-06",
		Status: models.JobScheduled,
	}

	occs, err := ExpandOccurrences(job, "2025-01-01", "2025-01-31")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(occs) != 1 || occs[0].Date != "2025-01-06" || occs[0].Status != models.JobScheduled {
		t.Fatalf("unexpected occurrences: %+v", occs)
	}

	occs, err = ExpandOccurrences(job, "2025-02-01", "2025-02-28")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(occs) != 0 {
		t.Fatalf("expected no occurrences outside range, got %+v", occs)
	}
}

func TestExpandOccurrencesRecurring(t *testing.T) {
	job := weeklyJob(models.JobScheduled)

	occs, err := ExpandOccurrences(job, "2025-01-01", "2025-01-31")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"2025-01-06", "2025-01-13", "2025-01-20", "2025-01-27"}
	if len(occs) != len(want) {
		t.Fatalf("expected %d occurrences got %d: %+v", len(want), len(occs), occs)
	}
	for i, w := range want {
		if occs[i].Date != w {
			t.Fatalf("occurrence %d: expected %s got %s", i, w, occs[i].Date)
		}
		if occs[i].Status != models.JobScheduled {
			t.Fatalf("occurrence %d: unexpected status %s", i, occs[i].Status)
		}
	}
}

func TestExpandOccurrencesNoDatesBeforeAnchor(t *testing.T) {
	job := weeklyJob(models.JobScheduled)

	// Range starts well before the anchor; the anchor is the first
	// occurrence allowed.
	occs, err := ExpandOccurrences(job, "2024-12-01", "2025-01-10")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(occs) != 1 || occs[0].Date != "2025-01-06" {
		t.Fatalf("unexpected occurrences: %+v", occs)
	}
}

func TestExpandOccurrencesStatusOverrides(t *testing.T) {
	job := weeklyJob(models.JobScheduled)
	job.OccurrenceStatuses["2025-01-13"] = models.JobCancelled
	job.OccurrenceStatuses["2025-01-20"] = models.JobCompleted

	occs, err := ExpandOccurrences(job, "2025-01-06", "2025-01-27")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[string]models.JobStatus{
		"2025-01-06": models.JobScheduled,
		"2025-01-13": models.JobCancelled,
		"2025-01-20": models.JobCompleted,
		"2025-01-27": models.JobScheduled,
	}
	for _, o := range occs {
		if want[o.Date] != o.Status {
			t.Fatalf("date %s: expected %s got %s", o.Date, want[o.Date], o.Status)
		}
	}
}

func TestExpandOccurrencesIdempotentAndTimezoneInvariant(t *testing.T) {
	job := weeklyJob(models.JobScheduled)
	job.OccurrenceStatuses["2025-01-13"] = models.JobCompleted

	first, err := ExpandOccurrences(job, "2025-01-01", "2025-02-28")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Expansion works purely on calendar-date strings, so a hostile
	// host timezone must not change the result.
	original := time.Local
	defer func() { time.Local = original }()
	for _, zone := range []*time.Location{
		time.UTC,
		time.FixedZone("UTC+13", 13*60*60),
		time.FixedZone("UTC-11", -11*60*60),
	} {
		time.Local = zone
		again, err := ExpandOccurrences(job, "2025-01-01", "2025-02-28")
		if err != nil {
			t.Fatalf("unexpected error in zone %v: %v", zone, err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("expansion differs in zone %v:\nfirst: %+v\nagain: %+v", zone, first, again)
		}
	}
}

func TestPastCompletedOccurrences(t *testing.T) {
	job := weeklyJob(models.JobCompleted)
	job.OccurrenceStatuses["2025-01-13"] = models.JobCancelled

	occs, err := PastCompletedOccurrences(job, "2025-01-21")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 06 and 20 completed (template default), 13 cancelled by override,
	// 21 onwards not yet in the past.
	want := []string{"2025-01-06", "2025-01-20"}
	if len(occs) != len(want) {
		t.Fatalf("expected %d occurrences got %d: %+v", len(want), len(occs), occs)
	}
	for i, w := range want {
		if occs[i].Date != w {
			t.Fatalf("occurrence %d: expected %s got %s", i, w, occs[i].Date)
		}
	}
}

func TestSetOccurrenceStatus(t *testing.T) {
	db := openTestDB(t)
	client := seedClient(t, db, 20, nil)
	pro := seedProfessional(t, db, "Ana", 12, nil)

	job, err := CreateJob(db, JobInput{
		ClientID:        client.ID,
		ProfessionalIDs: []uuid.UUID{pro.ID},
		Date:            "2025-01-06",
		DurationHours:   2,
		Type:            models.JobRecurring,
		ServiceKind:     models.ServiceRegular,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	updated, err := SetOccurrenceStatus(db, job.ID, "2025-01-20", models.JobCompleted)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.OccurrenceStatuses["2025-01-20"] != models.JobCompleted {
		t.Fatalf("override not recorded: %+v", updated.OccurrenceStatuses)
	}

	// Not an occurrence: wrong weekday.
	if _, err := SetOccurrenceStatus(db, job.ID, "2025-01-21", models.JobCompleted); err == nil {
		t.Fatal("expected error for non-occurrence date")
	}
	// Not an occurrence: before the anchor.
	if _, err := SetOccurrenceStatus(db, job.ID, "2024-12-30", models.JobCompleted); err == nil {
		t.Fatal("expected error for date before anchor")
	}
}
