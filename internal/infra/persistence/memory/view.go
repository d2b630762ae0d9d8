package memory

import "suinocore/pkg/domain"

// view exposes a read-only snapshot of a state to rules and service
// precondition checks.
type view struct {
	state *state
}

func newView(st *state) domain.RuleView {
	return view{state: st}
}

func listOf[T any](m map[string]T, clone func(T) T) []T {
	out := make([]T, 0, len(m))
	for _, v := range m {
		out = append(out, clone(v))
	}
	return out
}

func findIn[T any](m map[string]T, id string, clone func(T) T) (T, bool) {
	v, ok := m[id]
	if !ok {
		var zero T
		return zero, false
	}
	return clone(v), true
}

// ListAnimals returns all animals within the snapshot.
func (v view) ListAnimals() []domain.Animal { return listOf(v.state.animals, cloneAnimal) }

// ListBreedingCycles returns all breeding cycles.
func (v view) ListBreedingCycles() []domain.BreedingCycle {
	return listOf(v.state.cycles, cloneCycle)
}

// ListGestations returns all gestation records.
func (v view) ListGestations() []domain.Gestation { return listOf(v.state.gestations, cloneGestation) }

// ListWeightRecords returns all weighing records.
func (v view) ListWeightRecords() []domain.WeightRecord {
	return listOf(v.state.weights, cloneWeight)
}

// ListHeatRecords returns all heat detection records.
func (v view) ListHeatRecords() []domain.HeatRecord { return listOf(v.state.heats, cloneHeat) }

// ListVaccinationRecords returns all vaccine application records.
func (v view) ListVaccinationRecords() []domain.VaccinationRecord {
	return listOf(v.state.vaccinations, cloneVaccination)
}

// ListMortalityRecords returns all death records.
func (v view) ListMortalityRecords() []domain.MortalityRecord {
	return listOf(v.state.mortality, cloneMortality)
}

// ListEmployees returns all employees.
func (v view) ListEmployees() []domain.Employee { return listOf(v.state.employees, cloneEmployee) }

// ListPens returns all pens.
func (v view) ListPens() []domain.Pen { return listOf(v.state.pens, clonePen) }

// ListPenAllocations returns all pen allocations, open and closed.
func (v view) ListPenAllocations() []domain.PenAllocation {
	return listOf(v.state.allocations, cloneAllocation)
}

// ListMaternityStays returns all maternity stays.
func (v view) ListMaternityStays() []domain.MaternityStay {
	return listOf(v.state.maternity, cloneMaternity)
}

// ListLitters returns all litters.
func (v view) ListLitters() []domain.Litter { return listOf(v.state.litters, cloneLitter) }

// ListPiglets returns all piglets.
func (v view) ListPiglets() []domain.Piglet { return listOf(v.state.piglets, clonePiglet) }

// ListGilts returns all gilts.
func (v view) ListGilts() []domain.Gilt { return listOf(v.state.gilts, cloneGilt) }

// ListGiltEvaluations returns all gilt evaluation records.
func (v view) ListGiltEvaluations() []domain.GiltEvaluation {
	return listOf(v.state.evaluations, cloneEvaluation)
}

// ListGiltDiscards returns all gilt discard records.
func (v view) ListGiltDiscards() []domain.GiltDiscard {
	return listOf(v.state.discards, cloneDiscard)
}

// ListCaliperScores returns all caliper measurement records.
func (v view) ListCaliperScores() []domain.CaliperScore {
	return listOf(v.state.calipers, cloneCaliper)
}

// FindAnimal retrieves an animal by ID from the snapshot.
func (v view) FindAnimal(id string) (domain.Animal, bool) {
	return findIn(v.state.animals, id, cloneAnimal)
}

// FindPen retrieves a pen by ID from the snapshot.
func (v view) FindPen(id string) (domain.Pen, bool) {
	return findIn(v.state.pens, id, clonePen)
}

// FindPenAllocation retrieves an allocation by ID from the snapshot.
func (v view) FindPenAllocation(id string) (domain.PenAllocation, bool) {
	return findIn(v.state.allocations, id, cloneAllocation)
}

// FindMaternityStay retrieves a maternity stay by ID from the snapshot.
func (v view) FindMaternityStay(id string) (domain.MaternityStay, bool) {
	return findIn(v.state.maternity, id, cloneMaternity)
}

// FindLitter retrieves a litter by ID from the snapshot.
func (v view) FindLitter(id string) (domain.Litter, bool) {
	return findIn(v.state.litters, id, cloneLitter)
}

// FindPiglet retrieves a piglet by ID from the snapshot.
func (v view) FindPiglet(id string) (domain.Piglet, bool) {
	return findIn(v.state.piglets, id, clonePiglet)
}

// FindGilt retrieves a gilt by ID from the snapshot.
func (v view) FindGilt(id string) (domain.Gilt, bool) {
	return findIn(v.state.gilts, id, cloneGilt)
}

// FindEmployeeByMatricula retrieves an employee by matricula from the snapshot.
func (v view) FindEmployeeByMatricula(matricula string) (domain.Employee, bool) {
	for _, e := range v.state.employees {
		if e.Matricula == matricula {
			return cloneEmployee(e), true
		}
	}
	return domain.Employee{}, false
}
