package core

import (
	"context"
	"fmt"

	"suinocore/pkg/domain"
)

// NewOpenAllocationRule returns the rule enforcing the single-residence
// constraint: an animal holds at most one open pen allocation and one open
// maternity stay at a time, and open maternity stays belong to females.
func NewOpenAllocationRule() domain.Rule {
	return openAllocationRule{}
}

type openAllocationRule struct{}

func (openAllocationRule) Name() string { return "open_allocation" }

func (openAllocationRule) Evaluate(_ context.Context, view domain.RuleView, _ []domain.Change) (domain.Result, error) {
	res := domain.Result{}

	openAllocs := make(map[string]int)
	for _, alloc := range view.ListPenAllocations() {
		if alloc.Open() {
			openAllocs[alloc.AnimalID]++
		}
	}
	for animalID, count := range openAllocs {
		if count > 1 {
			res.Violations = append(res.Violations, domain.Violation{
				Rule:     "open_allocation",
				Severity: domain.SeverityBlock,
				Message:  fmt.Sprintf("animal %s holds %d open pen allocations", animalID, count),
				Entity:   domain.EntityPenAllocation,
				EntityID: animalID,
			})
		}
	}

	openStays := make(map[string]int)
	for _, stay := range view.ListMaternityStays() {
		if !stay.Open() {
			continue
		}
		openStays[stay.AnimalID]++
		if animal, ok := view.FindAnimal(stay.AnimalID); ok && animal.Sex != domain.SexFemale {
			res.Violations = append(res.Violations, domain.Violation{
				Rule:     "open_allocation",
				Severity: domain.SeverityBlock,
				Message:  fmt.Sprintf("maternity stay %s references non-female animal %s", stay.ID, stay.AnimalID),
				Entity:   domain.EntityMaternityStay,
				EntityID: stay.ID,
			})
		}
	}
	for animalID, count := range openStays {
		if count > 1 {
			res.Violations = append(res.Violations, domain.Violation{
				Rule:     "open_allocation",
				Severity: domain.SeverityBlock,
				Message:  fmt.Sprintf("animal %s holds %d open maternity stays", animalID, count),
				Entity:   domain.EntityMaternityStay,
				EntityID: animalID,
			})
		}
	}
	return res, nil
}
