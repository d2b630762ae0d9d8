package core

import (
	"context"
	"testing"

	"suinocore/pkg/domain"
)

func TestRegisterAnimalValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	mustRegisterSow(t, svc, "MA-001")

	if _, _, err := svc.RegisterAnimal(ctx, Animal{Identification: "MA-001", Sex: domain.SexFemale}); err == nil {
		t.Fatal("duplicate identification must fail")
	}
	if _, _, err := svc.RegisterAnimal(ctx, Animal{Identification: "MA-002", Sex: "?"}); err == nil {
		t.Fatal("unknown sex must fail")
	} else {
		wantValidationError(t, err)
	}

	future := date(2026, 1, 1)
	if _, _, err := svc.RegisterAnimal(ctx, Animal{
		Identification: "MA-003",
		Sex:            domain.SexFemale,
		BirthDate:      &future,
	}); err == nil {
		t.Fatal("birth after registration must fail")
	} else {
		wantValidationError(t, err)
	}
}

func TestRegisterAnimalDefaultsRegistrationDate(t *testing.T) {
	svc := newTestService(t)
	animal, _, err := svc.RegisterAnimal(context.Background(), Animal{
		Identification: "MA-001",
		Sex:            domain.SexFemale,
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if !animal.RegisteredAt.Equal(date(2025, 3, 10)) {
		t.Fatalf("registered at = %s", animal.RegisteredAt)
	}
}

func TestRecordWeightValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	sow := mustRegisterSow(t, svc, "MA-001")

	if _, _, err := svc.RecordWeight(ctx, WeightRecord{AnimalID: sow.ID, RecordDate: date(2025, 3, 5), WeightKg: 0}); err == nil {
		t.Fatal("zero weight must fail")
	} else {
		wantValidationError(t, err)
	}
	if _, _, err := svc.RecordWeight(ctx, WeightRecord{AnimalID: "missing", RecordDate: date(2025, 3, 5), WeightKg: 180}); err == nil {
		t.Fatal("unknown animal must fail")
	} else {
		wantNotFound(t, err)
	}
	if _, _, err := svc.RecordWeight(ctx, WeightRecord{AnimalID: sow.ID, RecordDate: date(2025, 3, 5), WeightKg: 180}); err != nil {
		t.Fatalf("record weight: %v", err)
	}
}

func TestRecordVaccinationValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	sow := mustRegisterSow(t, svc, "MA-001")

	if _, _, err := svc.RecordVaccination(ctx, VaccinationRecord{AnimalID: sow.ID, ApplicationDate: date(2025, 3, 1)}); err == nil {
		t.Fatal("missing vaccine name must fail")
	}
	early := date(2025, 2, 1)
	if _, _, err := svc.RecordVaccination(ctx, VaccinationRecord{
		AnimalID:        sow.ID,
		VaccineName:     "Parvovirose",
		ApplicationDate: date(2025, 3, 1),
		NextDoseDate:    &early,
	}); err == nil {
		t.Fatal("next dose before application must fail")
	} else {
		wantValidationError(t, err)
	}
}

func TestRecordMortalityFillsDerivedFieldsAndClosesAllocation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	sow := mustRegisterSow(t, svc, "MA-001")
	pen := mustRegisterPen(t, svc, "GE-01", "Gestação", 4)
	alloc := mustAllocate(t, svc, sow.ID, pen.ID)

	record, _, err := svc.RecordMortality(ctx, MortalityRecord{
		AnimalID:  sow.ID,
		DeathDate: date(2025, 3, 8),
		Cause:     "Torção intestinal",
	})
	if err != nil {
		t.Fatalf("record mortality: %v", err)
	}
	if record.Category != domain.CategorySow {
		t.Fatalf("category = %s, want %s", record.Category, domain.CategorySow)
	}
	if record.AgeDays == nil || *record.AgeDays != daysBetween(date(2024, 1, 15), date(2025, 3, 8)) {
		t.Fatalf("age days = %v", record.AgeDays)
	}

	err = svc.Store().View(ctx, func(view domain.RuleView) error {
		closed, _ := view.FindPenAllocation(alloc.ID)
		if closed.Open() {
			t.Fatal("open allocation must be closed on death")
		}
		if closed.ExitReason == nil || *closed.ExitReason != "Óbito" {
			t.Fatalf("exit reason = %v", closed.ExitReason)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("view: %v", err)
	}
}

func TestRecordHeatOpensNumberedCycles(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	sow := mustRegisterSow(t, svc, "MA-001")
	boar := mustRegisterAnimal(t, svc, "RE-001", domain.CategoryBoar, domain.SexMale)

	if _, _, err := svc.RecordHeat(ctx, HeatRecord{AnimalID: boar.ID, DetectionDate: date(2025, 1, 5)}); err == nil {
		t.Fatal("heat record on a male must fail")
	} else {
		wantValidationError(t, err)
	}

	for i, day := range []int{5, 26, 47} {
		_, _, err := svc.RecordHeat(ctx, HeatRecord{
			AnimalID:      sow.ID,
			DetectionDate: date(2025, 1, day),
			Intensity:     domain.HeatStrong,
		})
		if err != nil {
			t.Fatalf("heat %d: %v", i+1, err)
		}
	}

	err := svc.Store().View(ctx, func(view domain.RuleView) error {
		numbers := map[int]bool{}
		for _, cycle := range view.ListBreedingCycles() {
			if cycle.AnimalID != sow.ID {
				continue
			}
			if cycle.Status != domain.CycleWaiting {
				t.Fatalf("cycle status = %s", cycle.Status)
			}
			numbers[cycle.CycleNumber] = true
		}
		for want := 1; want <= 3; want++ {
			if !numbers[want] {
				t.Fatalf("missing cycle number %d (have %v)", want, numbers)
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("view: %v", err)
	}
}

func TestRegisterGestationProjectsExpectedDate(t *testing.T) {
	svc := newTestService(t)
	sow := mustRegisterSow(t, svc, "MA-001")

	gestation, _, err := svc.RegisterGestation(context.Background(), Gestation{
		AnimalID:       sow.ID,
		ConceptionDate: date(2025, 1, 10),
	})
	if err != nil {
		t.Fatalf("register gestation: %v", err)
	}
	want := date(2025, 1, 10).AddDate(0, 0, domain.GestationDays)
	if !gestation.ExpectedDate.Equal(want) {
		t.Fatalf("expected date = %s, want %s", gestation.ExpectedDate, want)
	}
	if gestation.Status != domain.GestationOngoing {
		t.Fatalf("status = %s", gestation.Status)
	}
}

func TestRecordCaliperScoreDerivesCondition(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	sow := mustRegisterSow(t, svc, "MA-001")

	score, _, err := svc.RecordCaliperScore(ctx, CaliperScore{
		AnimalID:    sow.ID,
		MeasureDate: date(2025, 3, 5),
		P1MM:        14,
		P2MM:        15,
		P3MM:        16,
	})
	if err != nil {
		t.Fatalf("record caliper score: %v", err)
	}
	if score.Score != 3 {
		t.Fatalf("score = %d, want 3", score.Score)
	}
	if score.Condition != "Ideal" {
		t.Fatalf("condition = %q", score.Condition)
	}

	if _, _, err := svc.RecordCaliperScore(ctx, CaliperScore{
		AnimalID: sow.ID, MeasureDate: date(2025, 3, 5), P1MM: 14, P2MM: 0, P3MM: 16,
	}); err == nil {
		t.Fatal("zero probe must fail")
	} else {
		wantValidationError(t, err)
	}
	if _, _, err := svc.RecordCaliperScore(ctx, CaliperScore{
		AnimalID: sow.ID, MeasureDate: date(2025, 3, 5), P1MM: 14, P2MM: 51, P3MM: 16,
	}); err == nil {
		t.Fatal("probe above 50 mm must fail")
	} else {
		wantValidationError(t, err)
	}
}
