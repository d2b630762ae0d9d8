package memory

import "suinocore/pkg/domain"

// Entities holding only value fields and pointers-to-immutables copy by
// assignment; slices are duplicated.

func cloneAnimal(a domain.Animal) domain.Animal                       { return a }
func cloneGestation(g domain.Gestation) domain.Gestation              { return g }
func cloneWeight(w domain.WeightRecord) domain.WeightRecord           { return w }
func cloneHeat(h domain.HeatRecord) domain.HeatRecord                 { return h }
func cloneVaccination(v domain.VaccinationRecord) domain.VaccinationRecord {
	return v
}
func cloneMortality(m domain.MortalityRecord) domain.MortalityRecord { return m }
func cloneEmployee(e domain.Employee) domain.Employee                { return e }
func clonePen(p domain.Pen) domain.Pen                               { return p }
func cloneAllocation(a domain.PenAllocation) domain.PenAllocation    { return a }
func cloneMaternity(m domain.MaternityStay) domain.MaternityStay     { return m }
func cloneLitter(l domain.Litter) domain.Litter                      { return l }
func clonePiglet(p domain.Piglet) domain.Piglet                      { return p }
func cloneGilt(g domain.Gilt) domain.Gilt                            { return g }
func cloneEvaluation(e domain.GiltEvaluation) domain.GiltEvaluation  { return e }
func cloneCaliper(c domain.CaliperScore) domain.CaliperScore         { return c }

func cloneCycle(c domain.BreedingCycle) domain.BreedingCycle {
	cp := c
	cp.SisterIDs = append([]string(nil), c.SisterIDs...)
	return cp
}

func cloneDiscard(d domain.GiltDiscard) domain.GiltDiscard {
	cp := d
	cp.SecondaryReasons = append([]string(nil), d.SecondaryReasons...)
	return cp
}
