package memory

import "suinocore/pkg/domain"

func withViewList[T any](s *Store, list func(domain.RuleView) []T) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return list(newView(&s.state))
}

// ListAnimals returns all committed animals.
func (s *Store) ListAnimals() []domain.Animal {
	return withViewList(s, domain.RuleView.ListAnimals)
}

// ListBreedingCycles returns all committed breeding cycles.
func (s *Store) ListBreedingCycles() []domain.BreedingCycle {
	return withViewList(s, domain.RuleView.ListBreedingCycles)
}

// ListGestations returns all committed gestation records.
func (s *Store) ListGestations() []domain.Gestation {
	return withViewList(s, domain.RuleView.ListGestations)
}

// ListWeightRecords returns all committed weighing records.
func (s *Store) ListWeightRecords() []domain.WeightRecord {
	return withViewList(s, domain.RuleView.ListWeightRecords)
}

// ListHeatRecords returns all committed heat detection records.
func (s *Store) ListHeatRecords() []domain.HeatRecord {
	return withViewList(s, domain.RuleView.ListHeatRecords)
}

// ListVaccinationRecords returns all committed vaccine application records.
func (s *Store) ListVaccinationRecords() []domain.VaccinationRecord {
	return withViewList(s, domain.RuleView.ListVaccinationRecords)
}

// ListMortalityRecords returns all committed death records.
func (s *Store) ListMortalityRecords() []domain.MortalityRecord {
	return withViewList(s, domain.RuleView.ListMortalityRecords)
}

// ListEmployees returns all committed employee records.
func (s *Store) ListEmployees() []domain.Employee {
	return withViewList(s, domain.RuleView.ListEmployees)
}

// ListPens returns all committed pens.
func (s *Store) ListPens() []domain.Pen {
	return withViewList(s, domain.RuleView.ListPens)
}

// ListPenAllocations returns all committed pen allocations.
func (s *Store) ListPenAllocations() []domain.PenAllocation {
	return withViewList(s, domain.RuleView.ListPenAllocations)
}

// ListMaternityStays returns all committed maternity stays.
func (s *Store) ListMaternityStays() []domain.MaternityStay {
	return withViewList(s, domain.RuleView.ListMaternityStays)
}

// ListLitters returns all committed litters.
func (s *Store) ListLitters() []domain.Litter {
	return withViewList(s, domain.RuleView.ListLitters)
}

// ListPiglets returns all committed piglets.
func (s *Store) ListPiglets() []domain.Piglet {
	return withViewList(s, domain.RuleView.ListPiglets)
}

// ListGilts returns all committed gilts.
func (s *Store) ListGilts() []domain.Gilt {
	return withViewList(s, domain.RuleView.ListGilts)
}

// ListGiltEvaluations returns all committed gilt evaluations.
func (s *Store) ListGiltEvaluations() []domain.GiltEvaluation {
	return withViewList(s, domain.RuleView.ListGiltEvaluations)
}

// ListGiltDiscards returns all committed gilt discard records.
func (s *Store) ListGiltDiscards() []domain.GiltDiscard {
	return withViewList(s, domain.RuleView.ListGiltDiscards)
}

// ListCaliperScores returns all committed caliper measurements.
func (s *Store) ListCaliperScores() []domain.CaliperScore {
	return withViewList(s, domain.RuleView.ListCaliperScores)
}
