package core

import (
	"context"
	"fmt"

	"suinocore/pkg/domain"
)

// RegisterAnimal persists a new animal in the herd register.
func (s *Service) RegisterAnimal(ctx context.Context, animal Animal) (Animal, Result, error) {
	var created Animal
	res, err := s.run(ctx, "register_animal", func(tx domain.Transaction) error {
		if animal.Identification == "" {
			return domain.ValidationError{Field: "identification", Reason: "required"}
		}
		if animal.Sex != domain.SexMale && animal.Sex != domain.SexFemale {
			return domain.ValidationError{Field: "sex", Reason: fmt.Sprintf("unknown value %q", animal.Sex)}
		}
		for _, existing := range tx.Snapshot().ListAnimals() {
			if existing.Identification == animal.Identification {
				return domain.DuplicateKeyError{Entity: domain.EntityAnimal, Key: animal.Identification}
			}
		}
		if animal.RegisteredAt.IsZero() {
			animal.RegisteredAt = s.today()
		}
		if animal.BirthDate != nil && animal.BirthDate.After(animal.RegisteredAt) {
			return domain.ValidationError{Field: "birth_date", Reason: "after registration date"}
		}
		var err error
		created, err = tx.CreateAnimal(animal)
		return err
	})
	return created, res, err
}

// RecordWeight appends a weighing record for an existing animal.
func (s *Service) RecordWeight(ctx context.Context, record WeightRecord) (WeightRecord, Result, error) {
	var created WeightRecord
	res, err := s.run(ctx, "record_weight", func(tx domain.Transaction) error {
		if record.WeightKg <= 0 {
			return domain.ValidationError{Field: "weight_kg", Reason: "must be positive"}
		}
		if _, ok := tx.Snapshot().FindAnimal(record.AnimalID); !ok {
			return domain.NotFoundError{Entity: domain.EntityAnimal, Key: record.AnimalID}
		}
		var err error
		created, err = tx.CreateWeightRecord(record)
		return err
	})
	return created, res, err
}

// RecordVaccination appends a vaccine application record.
func (s *Service) RecordVaccination(ctx context.Context, record VaccinationRecord) (VaccinationRecord, Result, error) {
	var created VaccinationRecord
	res, err := s.run(ctx, "record_vaccination", func(tx domain.Transaction) error {
		if record.VaccineName == "" {
			return domain.ValidationError{Field: "vaccine_name", Reason: "required"}
		}
		if _, ok := tx.Snapshot().FindAnimal(record.AnimalID); !ok {
			return domain.NotFoundError{Entity: domain.EntityAnimal, Key: record.AnimalID}
		}
		if record.NextDoseDate != nil && record.NextDoseDate.Before(record.ApplicationDate) {
			return domain.ValidationError{Field: "next_dose_date", Reason: "before application date"}
		}
		var err error
		created, err = tx.CreateVaccinationRecord(record)
		return err
	})
	return created, res, err
}

// RecordMortality registers a death. The animal's open pen allocation, when
// one exists, is closed in the same transaction with exit reason "Óbito".
func (s *Service) RecordMortality(ctx context.Context, record MortalityRecord) (MortalityRecord, Result, error) {
	var created MortalityRecord
	res, err := s.run(ctx, "record_mortality", func(tx domain.Transaction) error {
		snapshot := tx.Snapshot()
		animal, ok := snapshot.FindAnimal(record.AnimalID)
		if !ok {
			return domain.NotFoundError{Entity: domain.EntityAnimal, Key: record.AnimalID}
		}
		if record.Cause == "" {
			return domain.ValidationError{Field: "cause", Reason: "required"}
		}
		if record.Category == "" {
			record.Category = animal.Category
		}
		if record.AgeDays == nil && animal.BirthDate != nil {
			age := daysBetween(*animal.BirthDate, record.DeathDate)
			if age < 0 {
				age = 0
			}
			record.AgeDays = &age
		}

		for _, alloc := range snapshot.ListPenAllocations() {
			if alloc.AnimalID != record.AnimalID || !alloc.Open() {
				continue
			}
			exitDate := record.DeathDate
			reason := "Óbito"
			if _, err := tx.UpdatePenAllocation(alloc.ID, func(a *PenAllocation) error {
				a.ExitDate = &exitDate
				a.ExitReason = &reason
				a.Status = domain.AllocationInactive
				return nil
			}); err != nil {
				return err
			}
		}

		var err error
		created, err = tx.CreateMortalityRecord(record)
		return err
	})
	return created, res, err
}

// RecordHeat appends a heat detection record and opens the female's next
// numbered breeding cycle in the same transaction.
func (s *Service) RecordHeat(ctx context.Context, record HeatRecord) (HeatRecord, Result, error) {
	var created HeatRecord
	res, err := s.run(ctx, "record_heat", func(tx domain.Transaction) error {
		snapshot := tx.Snapshot()
		animal, ok := snapshot.FindAnimal(record.AnimalID)
		if !ok {
			return domain.NotFoundError{Entity: domain.EntityAnimal, Key: record.AnimalID}
		}
		if animal.Sex != domain.SexFemale {
			return domain.ValidationError{Field: "animal_id", Reason: "heat records require a female"}
		}
		var err error
		created, err = tx.CreateHeatRecord(record)
		if err != nil {
			return err
		}
		_, err = tx.CreateBreedingCycle(BreedingCycle{
			AnimalID:    record.AnimalID,
			CycleNumber: nextCycleNumber(snapshot, record.AnimalID),
			HeatDate:    record.DetectionDate,
			Intensity:   record.Intensity,
			Status:      domain.CycleWaiting,
			Observation: record.Observation,
		})
		return err
	})
	return created, res, err
}

// RegisterGestation records a confirmed service. The expected farrowing date
// is projected from the conception date plus the gestation constant.
func (s *Service) RegisterGestation(ctx context.Context, gestation Gestation) (Gestation, Result, error) {
	var created Gestation
	res, err := s.run(ctx, "register_gestation", func(tx domain.Transaction) error {
		animal, ok := tx.Snapshot().FindAnimal(gestation.AnimalID)
		if !ok {
			return domain.NotFoundError{Entity: domain.EntityAnimal, Key: gestation.AnimalID}
		}
		if animal.Sex != domain.SexFemale {
			return domain.ValidationError{Field: "animal_id", Reason: "gestation requires a female"}
		}
		if gestation.ConceptionDate.IsZero() {
			return domain.ValidationError{Field: "conception_date", Reason: "required"}
		}
		if gestation.ExpectedDate.IsZero() {
			gestation.ExpectedDate = gestation.ConceptionDate.AddDate(0, 0, domain.GestationDays)
		}
		if gestation.Status == "" {
			gestation.Status = domain.GestationOngoing
		}
		var err error
		created, err = tx.CreateGestation(gestation)
		return err
	})
	return created, res, err
}

// RecordCaliperScore validates a P1/P2/P3 caliper measurement, derives the
// body condition classification from P2, and stores the record.
func (s *Service) RecordCaliperScore(ctx context.Context, score CaliperScore) (CaliperScore, Result, error) {
	var created CaliperScore
	res, err := s.run(ctx, "record_caliper_score", func(tx domain.Transaction) error {
		if _, ok := tx.Snapshot().FindAnimal(score.AnimalID); !ok {
			return domain.NotFoundError{Entity: domain.EntityAnimal, Key: score.AnimalID}
		}
		for _, probe := range []struct {
			field string
			value float64
		}{
			{"p1_mm", score.P1MM},
			{"p2_mm", score.P2MM},
			{"p3_mm", score.P3MM},
		} {
			if probe.value <= 0 || probe.value > 50 {
				return domain.ValidationError{Field: probe.field, Reason: "must be in (0, 50] mm"}
			}
		}
		condition, err := BodyCondition(score.P2MM)
		if err != nil {
			return err
		}
		score.Condition = condition.Label
		score.Score = condition.Score
		created, err = tx.CreateCaliperScore(score)
		return err
	})
	return created, res, err
}

// nextCycleNumber returns 1 plus the highest recorded cycle number of the
// animal, or 1 for its first cycle.
func nextCycleNumber(view domain.RuleView, animalID string) int {
	highest := 0
	for _, cycle := range view.ListBreedingCycles() {
		if cycle.AnimalID == animalID && cycle.CycleNumber > highest {
			highest = cycle.CycleNumber
		}
	}
	return highest + 1
}
