package core

import (
	"context"
	"fmt"

	"suinocore/pkg/domain"
)

// NewSisterSymmetryRule returns the rule checking heat-sister groups: every
// cycle naming sisters must be mirrored by a cycle for each named sister on
// the same heat date, with the symmetric membership set.
func NewSisterSymmetryRule() domain.Rule {
	return sisterSymmetryRule{}
}

type sisterSymmetryRule struct{}

func (sisterSymmetryRule) Name() string { return "sister_symmetry" }

func (sisterSymmetryRule) Evaluate(_ context.Context, view domain.RuleView, _ []domain.Change) (domain.Result, error) {
	res := domain.Result{}

	// Cycles with sisters, indexed by heat date then animal.
	byDate := make(map[string]map[string]domain.BreedingCycle)
	for _, cycle := range view.ListBreedingCycles() {
		if len(cycle.SisterIDs) == 0 {
			continue
		}
		day := cycle.HeatDate.Format("2006-01-02")
		if byDate[day] == nil {
			byDate[day] = make(map[string]domain.BreedingCycle)
		}
		byDate[day][cycle.AnimalID] = cycle
	}

	for day, group := range byDate {
		for animalID, cycle := range group {
			if cycle.SisterCount != len(cycle.SisterIDs) {
				res.Violations = append(res.Violations, domain.Violation{
					Rule:     "sister_symmetry",
					Severity: domain.SeverityBlock,
					Message:  fmt.Sprintf("cycle %s sister_count %d disagrees with %d sisters", cycle.ID, cycle.SisterCount, len(cycle.SisterIDs)),
					Entity:   domain.EntityBreedingCycle,
					EntityID: cycle.ID,
				})
			}
			for _, sisterID := range cycle.SisterIDs {
				mirror, ok := group[sisterID]
				if !ok {
					res.Violations = append(res.Violations, domain.Violation{
						Rule:     "sister_symmetry",
						Severity: domain.SeverityBlock,
						Message:  fmt.Sprintf("animal %s names sister %s on %s but no mirror cycle exists", animalID, sisterID, day),
						Entity:   domain.EntityBreedingCycle,
						EntityID: cycle.ID,
					})
					continue
				}
				if !containsID(mirror.SisterIDs, animalID) {
					res.Violations = append(res.Violations, domain.Violation{
						Rule:     "sister_symmetry",
						Severity: domain.SeverityBlock,
						Message:  fmt.Sprintf("sister set asymmetric on %s: %s names %s but not vice versa", day, animalID, sisterID),
						Entity:   domain.EntityBreedingCycle,
						EntityID: mirror.ID,
					})
				}
			}
		}
	}
	return res, nil
}

func containsID(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
