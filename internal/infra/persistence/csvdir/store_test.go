package csvdir

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"suinocore/pkg/domain"
)

func birth() *time.Time {
	t := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	return &t
}

func seedStore(t *testing.T, store *Store) domain.Animal {
	t.Helper()
	var animal domain.Animal
	_, err := store.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		var err error
		animal, err = tx.CreateAnimal(domain.Animal{
			Identification: "MA-001",
			Category:       domain.CategorySow,
			Sex:            domain.SexFemale,
			BirthDate:      birth(),
			RegisteredAt:   time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		})
		if err != nil {
			return err
		}
		if _, err := tx.CreatePen(domain.Pen{Identification: "GE-01", Sector: "Gestação", Capacity: 4, AreaM2: 6}); err != nil {
			return err
		}
		_, err = tx.CreateWeightRecord(domain.WeightRecord{
			AnimalID:   animal.ID,
			RecordDate: time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC),
			WeightKg:   182.5,
		})
		return err
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	return animal
}

func TestRoundTripThroughFiles(t *testing.T) {
	dir := t.TempDir()
	first, err := NewStore(dir, nil, Options{})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	animal := seedStore(t, first)

	if _, err := os.Stat(filepath.Join(dir, "animals.csv")); err != nil {
		t.Fatalf("animals.csv not written: %v", err)
	}

	second, err := NewStore(dir, nil, Options{})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	err = second.View(context.Background(), func(view domain.RuleView) error {
		loaded, ok := view.FindAnimal(animal.ID)
		if !ok {
			t.Fatal("animal not reloaded from disk")
		}
		if loaded.Identification != "MA-001" || loaded.Category != domain.CategorySow {
			t.Fatalf("loaded = %+v", loaded)
		}
		if loaded.BirthDate == nil || !loaded.BirthDate.Equal(*birth()) {
			t.Fatalf("birth date = %v", loaded.BirthDate)
		}
		if len(view.ListPens()) != 1 || len(view.ListWeightRecords()) != 1 {
			t.Fatalf("reloaded counts = %d pens, %d weights", len(view.ListPens()), len(view.ListWeightRecords()))
		}
		if view.ListWeightRecords()[0].WeightKg != 182.5 {
			t.Fatalf("weight = %v", view.ListWeightRecords()[0].WeightKg)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("view: %v", err)
	}
}

func TestMissingFilesYieldEmptyTables(t *testing.T) {
	store, err := NewStore(t.TempDir(), nil, Options{})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	err = store.View(context.Background(), func(view domain.RuleView) error {
		if len(view.ListAnimals()) != 0 || len(view.ListPens()) != 0 {
			t.Fatal("empty directory must hydrate empty tables")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("view: %v", err)
	}
}

func TestHeaderMismatchIsSchemaError(t *testing.T) {
	dir := t.TempDir()
	bad := "id_animal,identidade,brinco,tatuagem,nome,categoria,sexo,raca,origem,data_nascimento,data_cadastro,criado_em,atualizado_em\n"
	if err := os.WriteFile(filepath.Join(dir, "animals.csv"), []byte(bad), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	_, err := NewStore(dir, nil, Options{})
	if err == nil {
		t.Fatal("renamed column must fail")
	}
	var schemaErr SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("want SchemaError, got %T: %v", err, err)
	}
	if schemaErr.Table != "animals" || schemaErr.Column != "identificacao" {
		t.Fatalf("schema error = %+v", schemaErr)
	}
}

func TestLockConflict(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir, nil, Options{
		LockTimeout: 10 * time.Millisecond,
		LockPoll:    2 * time.Millisecond,
		LockRetries: 2,
	})
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, ".lock"), []byte("999\n"), 0o640); err != nil {
		t.Fatalf("plant lock: %v", err)
	}

	_, err = store.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		_, err := tx.CreateAnimal(domain.Animal{Identification: "MA-001", Sex: domain.SexFemale})
		return err
	})
	if err == nil {
		t.Fatal("held lock must fail the transaction")
	}
	var conflict domain.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("want ConflictError, got %T: %v", err, err)
	}
	if conflict.Attempts != 2 {
		t.Fatalf("attempts = %d, want 2", conflict.Attempts)
	}

	if err := os.Remove(filepath.Join(dir, ".lock")); err != nil {
		t.Fatalf("remove lock: %v", err)
	}
	if _, err := store.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		_, err := tx.CreateAnimal(domain.Animal{Identification: "MA-001", Sex: domain.SexFemale})
		return err
	}); err != nil {
		t.Fatalf("transaction after release: %v", err)
	}
}

func TestGenerationTriggersReload(t *testing.T) {
	dir := t.TempDir()
	first, err := NewStore(dir, nil, Options{})
	if err != nil {
		t.Fatalf("open first: %v", err)
	}
	second, err := NewStore(dir, nil, Options{})
	if err != nil {
		t.Fatalf("open second: %v", err)
	}

	seedStore(t, first)

	// second still has the empty state it hydrated at open time; its next
	// transaction must notice the generation change and reload before writing.
	_, err = second.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		if len(tx.Snapshot().ListAnimals()) != 1 {
			t.Fatal("stale store must reload the other writer's commit")
		}
		_, err := tx.CreatePen(domain.Pen{Identification: "MA-01", Sector: "Maternidade", Capacity: 2})
		return err
	})
	if err != nil {
		t.Fatalf("second transaction: %v", err)
	}

	_, err = first.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		if len(tx.Snapshot().ListPens()) != 2 {
			t.Fatalf("first store must see both pens, got %d", len(tx.Snapshot().ListPens()))
		}
		return nil
	})
	if err != nil {
		t.Fatalf("first reload: %v", err)
	}
}

func TestRenderKnownAndUnknownTables(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir, nil, Options{})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	seedStore(t, store)

	header, rows, err := Render("animals", store.ExportState())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if header[0] != "id_animal" || header[1] != "identificacao" {
		t.Fatalf("header = %v", header)
	}
	if len(rows) != 1 || rows[0][1] != "MA-001" {
		t.Fatalf("rows = %v", rows)
	}

	if _, _, err := Render("nope", store.ExportState()); err == nil {
		t.Fatal("unknown table must fail")
	} else {
		var schemaErr SchemaError
		if !errors.As(err, &schemaErr) {
			t.Fatalf("want SchemaError, got %T: %v", err, err)
		}
	}

	names := TableNames()
	if len(names) != 17 {
		t.Fatalf("tables = %d, want 17", len(names))
	}
}
