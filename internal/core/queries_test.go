package core

import (
	"context"
	"testing"

	"suinocore/pkg/domain"
)

func TestBodyConditionScale(t *testing.T) {
	cases := []struct {
		p2    float64
		score int
		label string
	}{
		{5, 1, "Muito Magra"},
		{9.9, 1, "Muito Magra"},
		{10, 2, "Magra"},
		{13.9, 2, "Magra"},
		{14, 3, "Ideal"},
		{19.9, 3, "Ideal"},
		{20, 4, "Gorda"},
		{25, 4, "Gorda"},
		{25.1, 5, "Muito Gorda"},
		{50, 5, "Muito Gorda"},
	}
	for _, tc := range cases {
		got, err := BodyCondition(tc.p2)
		if err != nil {
			t.Fatalf("BodyCondition(%v): %v", tc.p2, err)
		}
		if got.Score != tc.score || got.Label != tc.label {
			t.Fatalf("BodyCondition(%v) = %d %q, want %d %q", tc.p2, got.Score, got.Label, tc.score, tc.label)
		}
	}
	for _, bad := range []float64{0, -1, 50.1} {
		if _, err := BodyCondition(bad); err == nil {
			t.Fatalf("BodyCondition(%v) must fail", bad)
		}
	}
}

func TestAgeDaysClampsFutureBirth(t *testing.T) {
	if got := AgeDays(date(2025, 3, 1), date(2025, 3, 10)); got != 9 {
		t.Fatalf("age = %d, want 9", got)
	}
	if got := AgeDays(date(2025, 4, 1), date(2025, 3, 10)); got != 0 {
		t.Fatalf("future birth age = %d, want 0", got)
	}
}

func TestDailyGain(t *testing.T) {
	gain, err := DailyGain(10, date(2025, 3, 1), 17, date(2025, 3, 11))
	if err != nil {
		t.Fatalf("daily gain: %v", err)
	}
	if gain != 0.7 {
		t.Fatalf("gain = %v, want 0.7", gain)
	}
	if _, err := DailyGain(10, date(2025, 3, 11), 17, date(2025, 3, 11)); err == nil {
		t.Fatal("same-day weighings must fail")
	}
	if _, err := DailyGain(10, date(2025, 3, 11), 17, date(2025, 3, 1)); err == nil {
		t.Fatal("reversed weighings must fail")
	}
}

func TestAnimalAgeDays(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	sow := mustRegisterSow(t, svc, "MA-001")

	age, err := svc.AnimalAgeDays(ctx, sow.ID, date(2025, 1, 15))
	if err != nil {
		t.Fatalf("age: %v", err)
	}
	if age != 366 {
		t.Fatalf("age = %d, want 366", age)
	}
	if _, err := svc.AnimalAgeDays(ctx, "missing", testNow); err == nil {
		t.Fatal("unknown animal must fail")
	} else {
		wantNotFound(t, err)
	}

	noBirth, _, err := svc.RegisterAnimal(ctx, Animal{Identification: "MA-002", Sex: domain.SexFemale})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.AnimalAgeDays(ctx, noBirth.ID, testNow); err == nil {
		t.Fatal("animal without birth date must fail")
	} else {
		wantValidationError(t, err)
	}
}

func TestPredictNextHeat(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	sow := mustRegisterSow(t, svc, "MA-001")

	if _, err := svc.PredictNextHeat(ctx, sow.ID); err == nil {
		t.Fatal("no heat history must fail")
	} else {
		wantNotFound(t, err)
	}

	for _, day := range []int{5, 26} {
		if _, _, err := svc.RecordHeat(ctx, HeatRecord{
			AnimalID:      sow.ID,
			DetectionDate: date(2025, 1, day),
			Intensity:     domain.HeatMedium,
		}); err != nil {
			t.Fatalf("record heat: %v", err)
		}
	}

	predicted, err := svc.PredictNextHeat(ctx, sow.ID)
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	want := date(2025, 1, 26).AddDate(0, 0, domain.HeatCycleDays)
	if !predicted.Equal(want) {
		t.Fatalf("predicted = %s, want %s", predicted, want)
	}
}

func TestMortalityStatistics(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	sow := mustRegisterSow(t, svc, "MA-001")
	piglet := mustRegisterAnimal(t, svc, "LT-001", domain.CategoryPiglet, domain.SexMale)

	deaths := []MortalityRecord{
		{AnimalID: sow.ID, DeathDate: date(2025, 2, 1), Cause: "Torção", Location: "Gestação"},
		{AnimalID: piglet.ID, DeathDate: date(2025, 2, 10), Cause: "Esmagamento", Location: "Maternidade"},
		{AnimalID: piglet.ID, DeathDate: date(2025, 3, 5), Cause: "Esmagamento", Location: "Maternidade"},
	}
	for i, record := range deaths {
		if _, _, err := svc.RecordMortality(ctx, record); err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
	}

	stats, err := svc.MortalityStatistics(ctx, MortalityFilter{})
	if err != nil {
		t.Fatalf("statistics: %v", err)
	}
	if stats.TotalDeaths != 3 {
		t.Fatalf("total = %d, want 3", stats.TotalDeaths)
	}
	if stats.ByCause["Esmagamento"] != 2 {
		t.Fatalf("by cause = %v", stats.ByCause)
	}
	if stats.ByCategory[string(domain.CategoryPiglet)] != 2 {
		t.Fatalf("by category = %v", stats.ByCategory)
	}
	if stats.AvgAgeDays <= 0 {
		t.Fatalf("avg age = %v", stats.AvgAgeDays)
	}

	from := date(2025, 3, 1)
	filtered, err := svc.MortalityStatistics(ctx, MortalityFilter{From: &from})
	if err != nil {
		t.Fatalf("filtered statistics: %v", err)
	}
	if filtered.TotalDeaths != 1 {
		t.Fatalf("filtered total = %d, want 1", filtered.TotalDeaths)
	}
	category := domain.CategorySow
	byCategory, err := svc.MortalityStatistics(ctx, MortalityFilter{Category: &category})
	if err != nil {
		t.Fatalf("category statistics: %v", err)
	}
	if byCategory.TotalDeaths != 1 {
		t.Fatalf("category total = %d, want 1", byCategory.TotalDeaths)
	}
}

func TestActiveMaternitySows(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	pen := mustRegisterPen(t, svc, "MA-01", "Maternidade", 2)
	first := mustRegisterSow(t, svc, "MA-001")
	second := mustRegisterSow(t, svc, "MA-002")

	if _, _, err := svc.MaternityEntry(ctx, first.ID, pen.ID, date(2025, 3, 1), ""); err != nil {
		t.Fatalf("entry first: %v", err)
	}
	stay, _, err := svc.MaternityEntry(ctx, second.ID, pen.ID, date(2025, 3, 2), "")
	if err != nil {
		t.Fatalf("entry second: %v", err)
	}
	if _, _, err := svc.MaternityExit(ctx, stay.ID, date(2025, 3, 8)); err != nil {
		t.Fatalf("exit: %v", err)
	}

	active, err := svc.ActiveMaternitySows(ctx)
	if err != nil {
		t.Fatalf("active: %v", err)
	}
	if len(active) != 1 {
		t.Fatalf("active = %d, want 1", len(active))
	}
	if active[0].Identification != "MA-001" {
		t.Fatalf("identification = %q", active[0].Identification)
	}
}
