package core

import (
	"context"
	"errors"
	"testing"

	"suinocore/pkg/domain"
)

func sisterFixture(t *testing.T) (*Service, []string) {
	t.Helper()
	svc := newTestService(t)
	ids := make([]string, 0, 3)
	for _, ident := range []string{"SW-001", "SW-002", "SW-003"} {
		ids = append(ids, mustRegisterSow(t, svc, ident).ID)
	}
	return svc, ids
}

func groupCycles(t *testing.T, svc *Service, heatDate string) map[string]BreedingCycle {
	t.Helper()
	out := map[string]BreedingCycle{}
	err := svc.Store().View(context.Background(), func(view domain.RuleView) error {
		for _, c := range view.ListBreedingCycles() {
			if len(c.SisterIDs) > 0 && c.HeatDate.Format("2006-01-02") == heatDate {
				out[c.AnimalID] = c
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	return out
}

func cyclesFor(t *testing.T, svc *Service, animalID string) []BreedingCycle {
	t.Helper()
	var out []BreedingCycle
	err := svc.Store().View(context.Background(), func(view domain.RuleView) error {
		for _, c := range view.ListBreedingCycles() {
			if c.AnimalID == animalID {
				out = append(out, c)
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	return out
}

func TestFormSisterGroupSymmetry(t *testing.T) {
	svc, ids := sisterFixture(t)
	ctx := context.Background()
	heat := date(2025, 3, 9)

	cycles, _, err := svc.FormSisterGroup(ctx, ids, heat, "Lote 7", "sincronizadas")
	if err != nil {
		t.Fatalf("form group: %v", err)
	}
	if len(cycles) != 3 {
		t.Fatalf("cycles = %d, want 3", len(cycles))
	}
	for _, c := range cycles {
		if c.SisterCount != 2 || len(c.SisterIDs) != 2 {
			t.Fatalf("cycle for %s has %d sisters, want 2", c.AnimalID, len(c.SisterIDs))
		}
		if containsID(c.SisterIDs, c.AnimalID) {
			t.Fatalf("cycle for %s lists itself as sister", c.AnimalID)
		}
		if want := "Grupo de irmãs de cio: Lote 7. sincronizadas"; c.Observation != want {
			t.Fatalf("observation = %q, want %q", c.Observation, want)
		}
	}
}

func TestFormSisterGroupRejectsSmallAndDuplicate(t *testing.T) {
	svc, ids := sisterFixture(t)
	ctx := context.Background()
	heat := date(2025, 3, 9)

	if _, _, err := svc.FormSisterGroup(ctx, ids[:1], heat, "", ""); err == nil {
		t.Fatal("group of one must fail")
	} else {
		wantValidationError(t, err)
	}
	if _, _, err := svc.FormSisterGroup(ctx, []string{ids[0], ids[0]}, heat, "", ""); err == nil {
		t.Fatal("duplicate member must fail")
	}

	if _, _, err := svc.FormSisterGroup(ctx, ids[:2], heat, "", ""); err != nil {
		t.Fatalf("form group: %v", err)
	}
	if _, _, err := svc.FormSisterGroup(ctx, []string{ids[0], ids[2]}, heat, "", ""); err == nil {
		t.Fatal("member already grouped on the date must fail")
	}
}

func TestAddToGroupMaintainsSymmetry(t *testing.T) {
	svc, ids := sisterFixture(t)
	ctx := context.Background()
	heat := date(2025, 3, 9)

	if _, _, err := svc.FormSisterGroup(ctx, ids[:2], heat, "Lote 7", ""); err != nil {
		t.Fatalf("form group: %v", err)
	}
	newcomer, _, err := svc.AddToGroup(ctx, heat, ids[2])
	if err != nil {
		t.Fatalf("add to group: %v", err)
	}
	if newcomer.SisterCount != 2 {
		t.Fatalf("newcomer sister count = %d, want 2", newcomer.SisterCount)
	}
	if want := "Grupo de irmãs de cio: Lote 7."; newcomer.Observation != want {
		t.Fatalf("newcomer observation = %q, want %q", newcomer.Observation, want)
	}

	cycles := groupCycles(t, svc, "2025-03-09")
	if len(cycles) != 3 {
		t.Fatalf("group size = %d, want 3", len(cycles))
	}
	for animalID, c := range cycles {
		if c.SisterCount != 2 {
			t.Fatalf("cycle for %s count = %d, want 2", animalID, c.SisterCount)
		}
		for _, sister := range c.SisterIDs {
			mirror, ok := cycles[sister]
			if !ok {
				t.Fatalf("sister %s of %s has no cycle", sister, animalID)
			}
			if !containsID(mirror.SisterIDs, animalID) {
				t.Fatalf("cycle of %s does not name %s back", sister, animalID)
			}
		}
	}

	if _, _, err := svc.AddToGroup(ctx, heat, ids[0]); err == nil {
		t.Fatal("adding an existing member must fail")
	} else {
		wantStateError(t, err)
	}
}

func TestRemoveFromGroup(t *testing.T) {
	svc, ids := sisterFixture(t)
	ctx := context.Background()
	heat := date(2025, 3, 9)

	if _, _, err := svc.FormSisterGroup(ctx, ids, heat, "", ""); err != nil {
		t.Fatalf("form group: %v", err)
	}
	if _, err := svc.RemoveFromGroup(ctx, heat, ids[2]); err != nil {
		t.Fatalf("remove: %v", err)
	}

	cycles := groupCycles(t, svc, "2025-03-09")
	if len(cycles) != 2 {
		t.Fatalf("group size = %d, want 2", len(cycles))
	}
	for animalID, c := range cycles {
		if c.SisterCount != 1 || containsID(c.SisterIDs, ids[2]) {
			t.Fatalf("cycle for %s still references removed member", animalID)
		}
	}

	if _, err := svc.RemoveFromGroup(ctx, heat, ids[0]); err == nil {
		t.Fatal("removal below 2 members must fail")
	} else {
		wantStateError(t, err)
	}

	if _, err := svc.RemoveFromGroup(ctx, heat, ids[2]); err == nil {
		t.Fatal("removing a non-member must fail")
	}
}

func TestGroupRemovalSurvivesLaterHeat(t *testing.T) {
	svc, ids := sisterFixture(t)
	ctx := context.Background()
	heat := date(2025, 3, 9)

	if _, _, err := svc.FormSisterGroup(ctx, ids, heat, "", ""); err != nil {
		t.Fatalf("form group: %v", err)
	}
	if _, _, err := svc.RecordHeat(ctx, HeatRecord{AnimalID: ids[0], DetectionDate: date(2025, 3, 30)}); err != nil {
		t.Fatalf("later heat: %v", err)
	}

	if _, err := svc.RemoveFromGroup(ctx, heat, ids[0]); err != nil {
		t.Fatalf("remove after later heat: %v", err)
	}
	cycles := groupCycles(t, svc, "2025-03-09")
	if len(cycles) != 2 {
		t.Fatalf("group size = %d, want 2", len(cycles))
	}
	if _, stays := cycles[ids[0]]; stays {
		t.Fatalf("removed member still in group")
	}

	remaining := cyclesFor(t, svc, ids[0])
	if len(remaining) != 1 || remaining[0].CycleNumber != 2 {
		t.Fatalf("remaining cycles for removed member = %+v, want single cycle number 2", remaining)
	}
}

func TestDeleteGroupSurvivesLaterHeat(t *testing.T) {
	svc, ids := sisterFixture(t)
	ctx := context.Background()
	heat := date(2025, 3, 9)

	if _, _, err := svc.FormSisterGroup(ctx, ids[:2], heat, "", ""); err != nil {
		t.Fatalf("form group: %v", err)
	}
	if _, _, err := svc.RecordHeat(ctx, HeatRecord{AnimalID: ids[1], DetectionDate: date(2025, 3, 30)}); err != nil {
		t.Fatalf("later heat: %v", err)
	}

	if _, err := svc.DeleteGroup(ctx, heat); err != nil {
		t.Fatalf("delete after later heat: %v", err)
	}
	if cycles := groupCycles(t, svc, "2025-03-09"); len(cycles) != 0 {
		t.Fatalf("group size after delete = %d, want 0", len(cycles))
	}
}

func TestDuplicateCycleNumberIsBlocked(t *testing.T) {
	svc, ids := sisterFixture(t)
	ctx := context.Background()

	_, err := svc.Store().RunInTransaction(ctx, func(tx domain.Transaction) error {
		for _, day := range []int{5, 5} {
			if _, err := tx.CreateBreedingCycle(domain.BreedingCycle{
				AnimalID:    ids[0],
				CycleNumber: 1,
				HeatDate:    date(2025, 1, day),
				Status:      domain.CycleWaiting,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	var violation domain.RuleViolationError
	if !errors.As(err, &violation) {
		t.Fatalf("want RuleViolationError, got %v", err)
	}
}

func TestDeleteGroup(t *testing.T) {
	svc, ids := sisterFixture(t)
	ctx := context.Background()
	heat := date(2025, 3, 9)

	if _, _, err := svc.FormSisterGroup(ctx, ids, heat, "", ""); err != nil {
		t.Fatalf("form group: %v", err)
	}
	if _, err := svc.DeleteGroup(ctx, heat); err != nil {
		t.Fatalf("delete group: %v", err)
	}
	if cycles := groupCycles(t, svc, "2025-03-09"); len(cycles) != 0 {
		t.Fatalf("group size after delete = %d, want 0", len(cycles))
	}
}
