package core

import (
	"context"
	"testing"

	"suinocore/pkg/domain"
)

func TestAllocateRejectsFullPen(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	pen := mustRegisterPen(t, svc, "BA-01", "Gestação", 2)
	a := mustRegisterSow(t, svc, "SW-001")
	b := mustRegisterSow(t, svc, "SW-002")
	c := mustRegisterSow(t, svc, "SW-003")

	mustAllocate(t, svc, a.ID, pen.ID)
	mustAllocate(t, svc, b.ID, pen.ID)

	if _, _, err := svc.Allocate(ctx, c.ID, pen.ID, date(2025, 3, 2), ""); err == nil {
		t.Fatal("third allocation into a 2-head pen must fail")
	} else {
		wantStateError(t, err)
	}

	occ, err := svc.CurrentOccupancy(ctx, pen.ID)
	if err != nil {
		t.Fatalf("occupancy: %v", err)
	}
	if occ != 2 {
		t.Fatalf("occupancy = %d, want 2", occ)
	}
}

func TestAllocateRejectsDoubleHousing(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	pen1 := mustRegisterPen(t, svc, "BA-01", "Gestação", 4)
	pen2 := mustRegisterPen(t, svc, "BA-02", "Gestação", 4)
	sow := mustRegisterSow(t, svc, "SW-001")

	mustAllocate(t, svc, sow.ID, pen1.ID)
	if _, _, err := svc.Allocate(ctx, sow.ID, pen2.ID, date(2025, 3, 2), ""); err == nil {
		t.Fatal("animal with an open allocation must not be housed twice")
	} else {
		wantStateError(t, err)
	}
}

func TestReleaseClosesAllocationOnce(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	pen := mustRegisterPen(t, svc, "BA-01", "Gestação", 2)
	sow := mustRegisterSow(t, svc, "SW-001")
	alloc := mustAllocate(t, svc, sow.ID, pen.ID)

	released, _, err := svc.Release(ctx, alloc.ID, date(2025, 3, 5), "Desmame", "")
	if err != nil {
		t.Fatalf("release: %v", err)
	}
	if released.Open() {
		t.Fatal("released allocation still open")
	}
	if released.Status != domain.AllocationInactive {
		t.Fatalf("status = %s, want %s", released.Status, domain.AllocationInactive)
	}
	if released.ExitReason == nil || *released.ExitReason != "Desmame" {
		t.Fatalf("exit reason = %v, want Desmame", released.ExitReason)
	}

	if _, _, err := svc.Release(ctx, alloc.ID, date(2025, 3, 6), "Desmame", ""); err == nil {
		t.Fatal("second release must fail")
	} else {
		wantStateError(t, err)
	}
}

func TestReleaseRejectsExitBeforeEntry(t *testing.T) {
	svc := newTestService(t)
	pen := mustRegisterPen(t, svc, "BA-01", "Gestação", 2)
	sow := mustRegisterSow(t, svc, "SW-001")
	alloc := mustAllocate(t, svc, sow.ID, pen.ID)

	if _, _, err := svc.Release(context.Background(), alloc.ID, date(2025, 2, 20), "Erro", ""); err == nil {
		t.Fatal("exit before entry must fail")
	} else {
		wantValidationError(t, err)
	}
}

func TestTransferIsAtomic(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	src := mustRegisterPen(t, svc, "BA-01", "Gestação", 2)
	dst := mustRegisterPen(t, svc, "BA-02", "Gestação", 1)
	sow := mustRegisterSow(t, svc, "SW-001")
	blocker := mustRegisterSow(t, svc, "SW-002")

	alloc := mustAllocate(t, svc, sow.ID, src.ID)
	mustAllocate(t, svc, blocker.ID, dst.ID)

	if _, _, err := svc.Transfer(ctx, alloc.ID, dst.ID, date(2025, 3, 5), ""); err == nil {
		t.Fatal("transfer into a full pen must fail")
	}

	var current PenAllocation
	found := false
	err := svc.Store().View(ctx, func(view domain.RuleView) error {
		for _, a := range view.ListPenAllocations() {
			if a.ID == alloc.ID {
				current = a
				found = true
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	if !found {
		t.Fatal("original allocation missing")
	}
	if !current.Open() {
		t.Fatal("failed transfer must leave the original allocation open")
	}
}

func TestTransferMovesAnimal(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	src := mustRegisterPen(t, svc, "BA-01", "Gestação", 2)
	dst := mustRegisterPen(t, svc, "BA-02", "Gestação", 2)
	sow := mustRegisterSow(t, svc, "SW-001")
	alloc := mustAllocate(t, svc, sow.ID, src.ID)

	moved, _, err := svc.Transfer(ctx, alloc.ID, dst.ID, date(2025, 3, 5), "")
	if err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if moved.PenID != dst.ID || !moved.Open() {
		t.Fatalf("new allocation pen=%s open=%v, want pen=%s open", moved.PenID, moved.Open(), dst.ID)
	}

	srcOcc, _ := svc.CurrentOccupancy(ctx, src.ID)
	dstOcc, _ := svc.CurrentOccupancy(ctx, dst.ID)
	if srcOcc != 0 || dstOcc != 1 {
		t.Fatalf("occupancy src=%d dst=%d, want 0 and 1", srcOcc, dstOcc)
	}
}

func TestRegisterPenDerivesArea(t *testing.T) {
	svc := newTestService(t)
	pen := mustRegisterPen(t, svc, "BA-07", "Creche", 10)
	if pen.AreaM2 != 6 {
		t.Fatalf("area = %v, want 6 (2x3)", pen.AreaM2)
	}
	if _, _, err := svc.RegisterPen(context.Background(), Pen{Identification: "BA-07", Sector: "Creche", Capacity: 5}); err == nil {
		t.Fatal("duplicate pen identification must fail")
	}
}

func TestAvailablePensFiltersBySector(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	nursery := mustRegisterPen(t, svc, "CR-01", "Creche", 1)
	mustRegisterPen(t, svc, "GE-01", "Gestação", 2)

	piglet := mustRegisterAnimal(t, svc, "LT-900", domain.CategoryPiglet, domain.SexMale)

	category := domain.CategoryPiglet
	pens, err := svc.AvailablePens(ctx, &category)
	if err != nil {
		t.Fatalf("available pens: %v", err)
	}
	if len(pens) != 1 || pens[0].ID != nursery.ID {
		t.Fatalf("piglet category must match only the Creche pen, got %d", len(pens))
	}

	mustAllocate(t, svc, piglet.ID, nursery.ID)
	pens, err = svc.AvailablePens(ctx, &category)
	if err != nil {
		t.Fatalf("available pens: %v", err)
	}
	if len(pens) != 0 {
		t.Fatalf("full pen must not be listed, got %d", len(pens))
	}
}
