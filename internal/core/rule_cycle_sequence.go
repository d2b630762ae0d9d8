package core

import (
	"context"
	"fmt"

	"suinocore/pkg/domain"
)

// NewCycleSequenceRule returns the rule enforcing per-animal breeding cycle
// numbering: every cycle number is positive and unique for its animal. Gaps
// are legal; deleting a cycle (group removal) must not force renumbering of
// the cycles that remain.
func NewCycleSequenceRule() domain.Rule {
	return cycleSequenceRule{}
}

type cycleSequenceRule struct{}

func (cycleSequenceRule) Name() string { return "cycle_sequence" }

func (cycleSequenceRule) Evaluate(_ context.Context, view domain.RuleView, _ []domain.Change) (domain.Result, error) {
	seen := make(map[string]map[int]bool)

	res := domain.Result{}
	for _, cycle := range view.ListBreedingCycles() {
		if cycle.CycleNumber < 1 {
			res.Violations = append(res.Violations, domain.Violation{
				Rule:     "cycle_sequence",
				Severity: domain.SeverityBlock,
				Message:  fmt.Sprintf("animal %s has cycle number %d, want >= 1", cycle.AnimalID, cycle.CycleNumber),
				Entity:   domain.EntityBreedingCycle,
				EntityID: cycle.ID,
			})
			continue
		}
		numbers := seen[cycle.AnimalID]
		if numbers == nil {
			numbers = make(map[int]bool)
			seen[cycle.AnimalID] = numbers
		}
		if numbers[cycle.CycleNumber] {
			res.Violations = append(res.Violations, domain.Violation{
				Rule:     "cycle_sequence",
				Severity: domain.SeverityBlock,
				Message:  fmt.Sprintf("animal %s has duplicate cycle number %d", cycle.AnimalID, cycle.CycleNumber),
				Entity:   domain.EntityBreedingCycle,
				EntityID: cycle.ID,
			})
		}
		numbers[cycle.CycleNumber] = true
	}
	return res, nil
}
