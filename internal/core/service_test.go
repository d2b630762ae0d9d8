package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"suinocore/internal/infra/persistence/memory"
	"suinocore/pkg/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, opts ...ServiceOption) *Service {
	t.Helper()
	store := memory.NewStore(NewDefaultRulesEngine())
	base := []ServiceOption{
		WithClock(ClockFunc(func() time.Time { return testNow })),
		WithRandSeed(42),
	}
	return NewService(store, append(base, opts...)...)
}

func mustRegisterAnimal(t *testing.T, svc *Service, ident string, category domain.AnimalCategory, sex domain.Sex) Animal {
	t.Helper()
	birth := date(2024, 1, 15)
	animal, _, err := svc.RegisterAnimal(context.Background(), Animal{
		Identification: ident,
		Category:       category,
		Sex:            sex,
		BirthDate:      &birth,
	})
	if err != nil {
		t.Fatalf("register animal %s: %v", ident, err)
	}
	return animal
}

func mustRegisterSow(t *testing.T, svc *Service, ident string) Animal {
	t.Helper()
	return mustRegisterAnimal(t, svc, ident, domain.CategorySow, domain.SexFemale)
}

func mustRegisterPen(t *testing.T, svc *Service, ident, sector string, capacity int) Pen {
	t.Helper()
	pen, _, err := svc.RegisterPen(context.Background(), Pen{
		Identification: ident,
		Sector:         sector,
		Capacity:       capacity,
		WidthM:         2,
		LengthM:        3,
	})
	if err != nil {
		t.Fatalf("register pen %s: %v", ident, err)
	}
	return pen
}

func mustAllocate(t *testing.T, svc *Service, animalID, penID string) PenAllocation {
	t.Helper()
	alloc, _, err := svc.Allocate(context.Background(), animalID, penID, date(2025, 3, 1), "")
	if err != nil {
		t.Fatalf("allocate %s to %s: %v", animalID, penID, err)
	}
	return alloc
}

func wantStateError(t *testing.T, err error) domain.StateError {
	t.Helper()
	var stateErr domain.StateError
	if !errors.As(err, &stateErr) {
		t.Fatalf("want StateError, got %T: %v", err, err)
	}
	return stateErr
}

func wantValidationError(t *testing.T, err error) domain.ValidationError {
	t.Helper()
	var valErr domain.ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("want ValidationError, got %T: %v", err, err)
	}
	return valErr
}

func wantNotFound(t *testing.T, err error) {
	t.Helper()
	var nf domain.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("want NotFoundError, got %T: %v", err, err)
	}
}
