package core

import (
	"context"
	"strings"
	"testing"

	"suinocore/pkg/domain"
)

func mustRegisterGilt(t *testing.T, svc *Service, ident string) Gilt {
	t.Helper()
	gilt, _, err := svc.RegisterGilt(context.Background(), Gilt{
		Identification: ident,
		BirthDate:      date(2024, 9, 1),
		Origin:         "Própria",
		Genetics:       "DB90",
	})
	if err != nil {
		t.Fatalf("register gilt %s: %v", ident, err)
	}
	return gilt
}

func TestRegisterGiltDefaults(t *testing.T) {
	svc := newTestService(t)
	gilt := mustRegisterGilt(t, svc, "LE-001")
	if gilt.Status != domain.GiltRegistered {
		t.Fatalf("status = %s, want %s", gilt.Status, domain.GiltRegistered)
	}
	if _, _, err := svc.RegisterGilt(context.Background(), Gilt{Identification: "LE-001", BirthDate: date(2024, 9, 2)}); err == nil {
		t.Fatal("duplicate identification must fail")
	}
	if _, _, err := svc.RegisterGilt(context.Background(), Gilt{Identification: "LE-002"}); err == nil {
		t.Fatal("missing birth date must fail")
	}
}

func TestEvaluateGiltSelects(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	gilt := mustRegisterGilt(t, svc, "LE-001")

	eval, _, err := svc.EvaluateGilt(ctx, gilt.ID, EvaluationParams{
		EvaluationDate: date(2025, 2, 20),
		Measurements:   GiltMeasurements{WeightKg: 135, AgeDays: 172, TeatCount: 14, OverallScore: 8},
		Recommendation: domain.GiltSelected,
		Reason:         "Conformação adequada",
		Technician:     "Ana",
	})
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if eval.Recommendation != domain.GiltSelected {
		t.Fatalf("recommendation = %s", eval.Recommendation)
	}

	err = svc.Store().View(ctx, func(view domain.RuleView) error {
		updated, _ := view.FindGilt(gilt.ID)
		if updated.Status != domain.GiltSelected {
			t.Fatalf("gilt status = %s, want %s", updated.Status, domain.GiltSelected)
		}
		if updated.SelectionWeightKg == nil || *updated.SelectionWeightKg != 135 {
			t.Fatalf("selection weight = %v, want 135", updated.SelectionWeightKg)
		}
		if len(view.ListGiltDiscards()) != 0 {
			t.Fatal("selecting evaluation must not create a discard")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("view: %v", err)
	}
}

func TestEvaluateGiltRejectionCreatesDiscard(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	gilt := mustRegisterGilt(t, svc, "LE-001")

	if _, _, err := svc.EvaluateGilt(ctx, gilt.ID, EvaluationParams{
		EvaluationDate: date(2025, 2, 20),
		Measurements:   GiltMeasurements{WeightKg: 110, AgeDays: 172, TeatCount: 11},
		Recommendation: domain.GiltDiscarded,
		Reason:         "Número de tetos insuficiente",
		Technician:     "Ana",
	}); err != nil {
		t.Fatalf("evaluate: %v", err)
	}

	err := svc.Store().View(ctx, func(view domain.RuleView) error {
		updated, _ := view.FindGilt(gilt.ID)
		if updated.Status != domain.GiltDiscarded {
			t.Fatalf("gilt status = %s, want %s", updated.Status, domain.GiltDiscarded)
		}
		discards := view.ListGiltDiscards()
		if len(discards) != 1 {
			t.Fatalf("discards = %d, want 1", len(discards))
		}
		if discards[0].Destination != domain.DestinationUnspecified {
			t.Fatalf("destination = %s, want %s", discards[0].Destination, domain.DestinationUnspecified)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("view: %v", err)
	}

	if _, _, err := svc.EvaluateGilt(ctx, gilt.ID, EvaluationParams{
		Recommendation: domain.GiltSelected,
	}); err == nil {
		t.Fatal("discarded gilt must not be evaluated again")
	} else {
		wantStateError(t, err)
	}
}

func TestEvaluateGiltRejectsBadRecommendation(t *testing.T) {
	svc := newTestService(t)
	gilt := mustRegisterGilt(t, svc, "LE-001")
	if _, _, err := svc.EvaluateGilt(context.Background(), gilt.ID, EvaluationParams{
		Recommendation: domain.GiltRegistered,
	}); err == nil {
		t.Fatal("recommendation outside Selecionada/Descartada must fail")
	} else {
		wantValidationError(t, err)
	}
}

func TestDiscardGilt(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	gilt := mustRegisterGilt(t, svc, "LE-001")

	discard, _, err := svc.DiscardGilt(ctx, gilt.ID, DiscardParams{
		DiscardDate:   date(2025, 3, 1),
		WeightKg:      120,
		PrimaryReason: "Aprumos",
		Destination:   domain.DestinationSlaughter,
		Technician:    "Ana",
	})
	if err != nil {
		t.Fatalf("discard: %v", err)
	}
	if discard.AgeDays != daysBetween(date(2024, 9, 1), date(2025, 3, 1)) {
		t.Fatalf("age days = %d", discard.AgeDays)
	}

	err = svc.Store().View(ctx, func(view domain.RuleView) error {
		updated, _ := view.FindGilt(gilt.ID)
		if updated.Status != domain.GiltDiscarded {
			t.Fatalf("status = %s, want %s", updated.Status, domain.GiltDiscarded)
		}
		if !strings.Contains(updated.Observation, "[2025-03-01] Descartada: Aprumos (Abate)") {
			t.Fatalf("observation missing audit line: %q", updated.Observation)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("view: %v", err)
	}

	if _, _, err := svc.DiscardGilt(ctx, gilt.ID, DiscardParams{PrimaryReason: "Aprumos"}); err == nil {
		t.Fatal("second discard must fail")
	} else {
		wantStateError(t, err)
	}
	if _, _, err := svc.DiscardGilt(ctx, "missing", DiscardParams{PrimaryReason: "X"}); err == nil {
		t.Fatal("unknown gilt must fail")
	} else {
		wantNotFound(t, err)
	}
}

func TestGiltStatistics(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	a := mustRegisterGilt(t, svc, "LE-001")
	b := mustRegisterGilt(t, svc, "LE-002")
	mustRegisterGilt(t, svc, "LE-003")

	if _, _, err := svc.EvaluateGilt(ctx, a.ID, EvaluationParams{
		EvaluationDate: date(2025, 2, 20),
		Measurements:   GiltMeasurements{WeightKg: 140, AgeDays: 170},
		Recommendation: domain.GiltSelected,
	}); err != nil {
		t.Fatalf("evaluate a: %v", err)
	}
	if _, _, err := svc.EvaluateGilt(ctx, b.ID, EvaluationParams{
		EvaluationDate: date(2025, 2, 21),
		Measurements:   GiltMeasurements{WeightKg: 100, AgeDays: 171},
		Recommendation: domain.GiltDiscarded,
		Reason:         "Peso baixo",
	}); err != nil {
		t.Fatalf("evaluate b: %v", err)
	}

	stats, err := svc.GiltStatistics(ctx)
	if err != nil {
		t.Fatalf("statistics: %v", err)
	}
	if stats.Total != 3 {
		t.Fatalf("total = %d, want 3", stats.Total)
	}
	if stats.Evaluated != 2 {
		t.Fatalf("evaluated = %d, want 2", stats.Evaluated)
	}
	if stats.SelectionRate != 0.5 {
		t.Fatalf("selection rate = %v, want 0.5", stats.SelectionRate)
	}
	if stats.DiscardReasons["Peso baixo"] != 1 {
		t.Fatalf("discard reasons = %v", stats.DiscardReasons)
	}
	if stats.ByStatus[string(domain.GiltRegistered)] != 1 {
		t.Fatalf("by status = %v", stats.ByStatus)
	}

	available, err := svc.AvailableGilts(ctx)
	if err != nil {
		t.Fatalf("available: %v", err)
	}
	if len(available) != 2 {
		t.Fatalf("available = %d, want 2 (discarded excluded)", len(available))
	}
}
