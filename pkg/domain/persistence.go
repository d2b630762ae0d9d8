package domain

import "context"

// Transaction exposes the mutations a persistence implementation must support
// within an atomic scope. Append-only tables expose Create only.
type Transaction interface {
	Snapshot() RuleView

	CreateAnimal(Animal) (Animal, error)
	UpdateAnimal(id string, mutator func(*Animal) error) (Animal, error)

	CreateBreedingCycle(BreedingCycle) (BreedingCycle, error)
	UpdateBreedingCycle(id string, mutator func(*BreedingCycle) error) (BreedingCycle, error)
	DeleteBreedingCycle(id string) error

	CreateGestation(Gestation) (Gestation, error)
	UpdateGestation(id string, mutator func(*Gestation) error) (Gestation, error)

	CreateWeightRecord(WeightRecord) (WeightRecord, error)
	CreateHeatRecord(HeatRecord) (HeatRecord, error)
	CreateVaccinationRecord(VaccinationRecord) (VaccinationRecord, error)
	CreateMortalityRecord(MortalityRecord) (MortalityRecord, error)
	CreateCaliperScore(CaliperScore) (CaliperScore, error)

	CreateEmployee(Employee) (Employee, error)
	UpdateEmployee(id string, mutator func(*Employee) error) (Employee, error)

	CreatePen(Pen) (Pen, error)
	UpdatePen(id string, mutator func(*Pen) error) (Pen, error)

	CreatePenAllocation(PenAllocation) (PenAllocation, error)
	UpdatePenAllocation(id string, mutator func(*PenAllocation) error) (PenAllocation, error)

	CreateMaternityStay(MaternityStay) (MaternityStay, error)
	UpdateMaternityStay(id string, mutator func(*MaternityStay) error) (MaternityStay, error)

	CreateLitter(Litter) (Litter, error)
	UpdateLitter(id string, mutator func(*Litter) error) (Litter, error)

	CreatePiglet(Piglet) (Piglet, error)
	UpdatePiglet(id string, mutator func(*Piglet) error) (Piglet, error)

	CreateGilt(Gilt) (Gilt, error)
	UpdateGilt(id string, mutator func(*Gilt) error) (Gilt, error)

	CreateGiltEvaluation(GiltEvaluation) (GiltEvaluation, error)
	CreateGiltDiscard(GiltDiscard) (GiltDiscard, error)
}

// PersistentStore is a minimal abstraction over durable backends. Writes go
// through RunInTransaction; reads either through View (consistent snapshot)
// or the convenience listers (committed state, may trail an in-flight write).
type PersistentStore interface {
	RunInTransaction(ctx context.Context, fn func(Transaction) error) (Result, error)
	View(ctx context.Context, fn func(RuleView) error) error

	ListAnimals() []Animal
	ListBreedingCycles() []BreedingCycle
	ListGestations() []Gestation
	ListWeightRecords() []WeightRecord
	ListHeatRecords() []HeatRecord
	ListVaccinationRecords() []VaccinationRecord
	ListMortalityRecords() []MortalityRecord
	ListEmployees() []Employee
	ListPens() []Pen
	ListPenAllocations() []PenAllocation
	ListMaternityStays() []MaternityStay
	ListLitters() []Litter
	ListPiglets() []Piglet
	ListGilts() []Gilt
	ListGiltEvaluations() []GiltEvaluation
	ListGiltDiscards() []GiltDiscard
	ListCaliperScores() []CaliperScore
}
