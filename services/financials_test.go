package services

import (
	"errors"
	"testing"

	"cleanops-backend/models"

	"github.com/google/uuid"
)

func TestComputeJobFinancials(t *testing.T) {
	p1 := models.Professional{ID: uuid.New(), RatePerHour: 12}
	p2 := models.Professional{ID: uuid.New(), RatePerHour: 15}
	client := models.Client{PricePerHour: 20}

	// Revenue bills each professional-slot at the client rate for the
	// full duration: 2h x £20 x 2 cleaners.
	fin, err := ComputeJobFinancials(&client, []models.Professional{p1, p2}, 2, models.ServiceRegular)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fin.TotalPrice != 80.00 {
		t.Fatalf("expected total price 80.00 got %.2f", fin.TotalPrice)
	}
	if fin.Cost != 54.00 {
		t.Fatalf("expected cost 54.00 got %.2f", fin.Cost)
	}
	if len(fin.ProfessionalCosts) != 2 {
		t.Fatalf("expected 2 cost lines got %d", len(fin.ProfessionalCosts))
	}
	if fin.ProfessionalCosts[0].ProfessionalID != p1.ID || fin.ProfessionalCosts[0].Cost != 24.00 {
		t.Fatalf("unexpected first cost line: %+v", fin.ProfessionalCosts[0])
	}
	if fin.ProfessionalCosts[1].ProfessionalID != p2.ID || fin.ProfessionalCosts[1].Cost != 30.00 {
		t.Fatalf("unexpected second cost line: %+v", fin.ProfessionalCosts[1])
	}

	// Aggregate cost always equals the sum of the breakdown.
	var sum float64
	for _, pc := range fin.ProfessionalCosts {
		sum += pc.Cost
	}
	if fin.Cost != sum {
		t.Fatalf("cost %.2f does not equal breakdown sum %.2f", fin.Cost, sum)
	}
}

func TestComputeJobFinancialsDeepClean(t *testing.T) {
	deepPrice := 30.0
	deepRate := 18.0
	client := models.Client{PricePerHour: 20, DeepCleanPricePerHour: &deepPrice}
	pro := models.Professional{ID: uuid.New(), RatePerHour: 12, DeepCleanRatePerHour: &deepRate}

	fin, err := ComputeJobFinancials(&client, []models.Professional{pro}, 3, models.ServiceDeepClean)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fin.TotalPrice != 90.00 {
		t.Fatalf("expected total price 90.00 got %.2f", fin.TotalPrice)
	}
	if fin.Cost != 54.00 {
		t.Fatalf("expected cost 54.00 got %.2f", fin.Cost)
	}
}

func TestComputeJobFinancialsValidation(t *testing.T) {
	client := models.Client{PricePerHour: 20}
	pro := models.Professional{ID: uuid.New(), RatePerHour: 12}

	t.Run("deep clean requires client rate", func(t *testing.T) {
		_, err := ComputeJobFinancials(&client, []models.Professional{pro}, 2, models.ServiceDeepClean)
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError got %v", err)
		}
		if vErr.Message != "client has no deep-clean rate configured" {
			t.Fatalf("unexpected message %q", vErr.Message)
		}
	})

	t.Run("at least one cleaner", func(t *testing.T) {
		_, err := ComputeJobFinancials(&client, nil, 2, models.ServiceRegular)
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError got %v", err)
		}
		if vErr.Message != "at least one cleaner required" {
			t.Fatalf("unexpected message %q", vErr.Message)
		}
	})

	t.Run("minimum duration", func(t *testing.T) {
		_, err := ComputeJobFinancials(&client, []models.Professional{pro}, 0.25, models.ServiceRegular)
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError got %v", err)
		}
	})

	t.Run("zero deep-clean override is not configured", func(t *testing.T) {
		zero := 0.0
		c := models.Client{PricePerHour: 20, DeepCleanPricePerHour: &zero}
		_, err := ComputeJobFinancials(&c, []models.Professional{pro}, 2, models.ServiceDeepClean)
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError got %v", err)
		}
	})
}

func TestComputeJobFinancialsRounding(t *testing.T) {
	client := models.Client{PricePerHour: 19.99}
	pro := models.Professional{ID: uuid.New(), RatePerHour: 11.11}

	fin, err := ComputeJobFinancials(&client, []models.Professional{pro}, 1.5, models.ServiceRegular)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fin.TotalPrice != 29.99 {
		t.Fatalf("expected total price 29.99 got %.2f", fin.TotalPrice)
	}
	if fin.Cost != 16.67 {
		t.Fatalf("expected cost 16.67 got %.2f", fin.Cost)
	}
}
