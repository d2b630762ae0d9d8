package core

import (
	"context"
	"fmt"

	"suinocore/pkg/domain"
)

// NewLitterTotalsRule returns the rule checking litter accounting: counts sum
// to total_born, at most one litter per maternity stay, litters only for stays
// with a recorded birth date, and piglet birth dates never precede the litter.
func NewLitterTotalsRule() domain.Rule {
	return litterTotalsRule{}
}

type litterTotalsRule struct{}

func (litterTotalsRule) Name() string { return "litter_totals" }

func (litterTotalsRule) Evaluate(_ context.Context, view domain.RuleView, _ []domain.Change) (domain.Result, error) {
	res := domain.Result{}

	littersPerStay := make(map[string]int)
	for _, litter := range view.ListLitters() {
		littersPerStay[litter.MaternityID]++

		if litter.BornAlive+litter.Stillborn+litter.Mummified != litter.TotalBorn {
			res.Violations = append(res.Violations, domain.Violation{
				Rule:     "litter_totals",
				Severity: domain.SeverityBlock,
				Message:  fmt.Sprintf("litter %s counts disagree: %d alive + %d stillborn + %d mummified != %d total", litter.ID, litter.BornAlive, litter.Stillborn, litter.Mummified, litter.TotalBorn),
				Entity:   domain.EntityLitter,
				EntityID: litter.ID,
			})
		}

		stay, ok := view.FindMaternityStay(litter.MaternityID)
		if !ok || stay.BirthDate == nil {
			res.Violations = append(res.Violations, domain.Violation{
				Rule:     "litter_totals",
				Severity: domain.SeverityBlock,
				Message:  fmt.Sprintf("litter %s belongs to maternity stay %s without a recorded parturition", litter.ID, litter.MaternityID),
				Entity:   domain.EntityLitter,
				EntityID: litter.ID,
			})
		}
	}
	for stayID, count := range littersPerStay {
		if count > 1 {
			res.Violations = append(res.Violations, domain.Violation{
				Rule:     "litter_totals",
				Severity: domain.SeverityBlock,
				Message:  fmt.Sprintf("maternity stay %s has %d litters", stayID, count),
				Entity:   domain.EntityMaternityStay,
				EntityID: stayID,
			})
		}
	}

	for _, piglet := range view.ListPiglets() {
		litter, ok := view.FindLitter(piglet.LitterID)
		if !ok {
			continue
		}
		if piglet.BirthDate.Before(litter.BirthDate) {
			res.Violations = append(res.Violations, domain.Violation{
				Rule:     "litter_totals",
				Severity: domain.SeverityBlock,
				Message:  fmt.Sprintf("piglet %s born before its litter %s", piglet.ID, litter.ID),
				Entity:   domain.EntityPiglet,
				EntityID: piglet.ID,
			})
		}
	}
	return res, nil
}
