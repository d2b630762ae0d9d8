package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"suinocore/pkg/domain"
)

func frozenStore(engine *domain.RulesEngine) *Store {
	store := NewStore(engine)
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	store.SetNowFunc(func() time.Time { return now })
	return store
}

func TestCreateUpdateDelete(t *testing.T) {
	store := frozenStore(nil)
	ctx := context.Background()

	var created domain.Animal
	if _, err := store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		var err error
		created, err = tx.CreateAnimal(domain.Animal{Identification: "MA-001", Sex: domain.SexFemale})
		return err
	}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" || created.CreatedAt.IsZero() {
		t.Fatalf("created = %+v", created)
	}

	if _, err := store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		_, err := tx.UpdateAnimal(created.ID, func(a *domain.Animal) error {
			a.Category = domain.CategorySow
			return nil
		})
		return err
	}); err != nil {
		t.Fatalf("update: %v", err)
	}

	err := store.View(ctx, func(view domain.RuleView) error {
		animal, ok := view.FindAnimal(created.ID)
		if !ok {
			t.Fatal("animal not found after update")
		}
		if animal.Category != domain.CategorySow {
			t.Fatalf("category = %s", animal.Category)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("view: %v", err)
	}

	if _, err := store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		_, err := tx.UpdateAnimal("missing", func(*domain.Animal) error { return nil })
		return err
	}); err == nil {
		t.Fatal("updating a missing animal must fail")
	} else {
		var nf domain.NotFoundError
		if !errors.As(err, &nf) {
			t.Fatalf("want NotFoundError, got %T: %v", err, err)
		}
	}
}

func TestCreateRejectsDuplicateID(t *testing.T) {
	store := frozenStore(nil)
	ctx := context.Background()

	if _, err := store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		if _, err := tx.CreateAnimal(domain.Animal{Base: domain.Base{ID: "fixed"}, Identification: "A"}); err != nil {
			return err
		}
		_, err := tx.CreateAnimal(domain.Animal{Base: domain.Base{ID: "fixed"}, Identification: "B"})
		return err
	}); err == nil {
		t.Fatal("duplicate id must fail")
	} else {
		var dup domain.DuplicateKeyError
		if !errors.As(err, &dup) {
			t.Fatalf("want DuplicateKeyError, got %T: %v", err, err)
		}
	}

	if len(store.ExportState().Animals) != 0 {
		t.Fatal("failed transaction must not leak state")
	}
}

type vetoRule struct{}

func (vetoRule) Name() string { return "veto" }

func (vetoRule) Evaluate(_ context.Context, _ domain.RuleView, changes []domain.Change) (domain.Result, error) {
	res := domain.Result{}
	for range changes {
		res.Violations = append(res.Violations, domain.Violation{
			Rule:     "veto",
			Severity: domain.SeverityBlock,
			Message:  "all mutations refused",
		})
	}
	return res, nil
}

func TestBlockingViolationRollsBack(t *testing.T) {
	engine := domain.NewRulesEngine()
	engine.Register(vetoRule{})
	store := frozenStore(engine)

	res, err := store.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		_, err := tx.CreateAnimal(domain.Animal{Identification: "MA-001", Sex: domain.SexFemale})
		return err
	})
	if err == nil {
		t.Fatal("blocked commit must fail")
	}
	var ruleErr domain.RuleViolationError
	if !errors.As(err, &ruleErr) {
		t.Fatalf("want RuleViolationError, got %T: %v", err, err)
	}
	if !res.HasBlocking() {
		t.Fatalf("result = %+v", res)
	}
	if len(store.ExportState().Animals) != 0 {
		t.Fatal("blocked transaction must leave state untouched")
	}
}

func TestCallbackErrorRollsBack(t *testing.T) {
	store := frozenStore(nil)
	boom := errors.New("boom")

	_, err := store.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		if _, err := tx.CreateAnimal(domain.Animal{Identification: "MA-001", Sex: domain.SexFemale}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
	if len(store.ExportState().Animals) != 0 {
		t.Fatal("aborted transaction must leave state untouched")
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	source := frozenStore(nil)
	ctx := context.Background()

	if _, err := source.RunInTransaction(ctx, func(tx domain.Transaction) error {
		animal, err := tx.CreateAnimal(domain.Animal{Identification: "MA-001", Sex: domain.SexFemale, Category: domain.CategorySow})
		if err != nil {
			return err
		}
		if _, err := tx.CreatePen(domain.Pen{Identification: "GE-01", Sector: "Gestação", Capacity: 4}); err != nil {
			return err
		}
		_, err = tx.CreateWeightRecord(domain.WeightRecord{AnimalID: animal.ID, WeightKg: 180})
		return err
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	snap := source.ExportState()
	target := frozenStore(nil)
	target.ImportState(snap)

	err := target.View(ctx, func(view domain.RuleView) error {
		if len(view.ListAnimals()) != 1 || len(view.ListPens()) != 1 || len(view.ListWeightRecords()) != 1 {
			t.Fatalf("imported counts = %d/%d/%d", len(view.ListAnimals()), len(view.ListPens()), len(view.ListWeightRecords()))
		}
		return nil
	})
	if err != nil {
		t.Fatalf("view: %v", err)
	}

	snap.Animals = nil
	if err := target.View(ctx, func(view domain.RuleView) error {
		if len(view.ListAnimals()) != 1 {
			t.Fatal("imported state must not alias the snapshot maps")
		}
		return nil
	}); err != nil {
		t.Fatalf("view: %v", err)
	}
}

func TestViewIsolation(t *testing.T) {
	store := frozenStore(nil)
	ctx := context.Background()

	if _, err := store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		_, err := tx.CreateAnimal(domain.Animal{Base: domain.Base{ID: "a1"}, Identification: "MA-001"})
		return err
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	err := store.View(ctx, func(view domain.RuleView) error {
		animal, _ := view.FindAnimal("a1")
		animal.Identification = "mutado"
		return nil
	})
	if err != nil {
		t.Fatalf("view: %v", err)
	}

	err = store.View(ctx, func(view domain.RuleView) error {
		animal, _ := view.FindAnimal("a1")
		if animal.Identification != "MA-001" {
			t.Fatalf("identification = %q, view mutations must not persist", animal.Identification)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("view: %v", err)
	}
}
