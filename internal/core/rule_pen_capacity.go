package core

import (
	"context"
	"fmt"

	"suinocore/pkg/domain"
)

// NewPenCapacityRule returns the default in-transaction rule enforcing pen
// capacity constraints: open allocations per pen never exceed capacity.
func NewPenCapacityRule() domain.Rule {
	return penCapacityRule{}
}

type penCapacityRule struct{}

func (penCapacityRule) Name() string { return "pen_capacity" }

func (penCapacityRule) Evaluate(_ context.Context, view domain.RuleView, _ []domain.Change) (domain.Result, error) {
	occupancy := make(map[string]int)
	for _, alloc := range view.ListPenAllocations() {
		if !alloc.Open() {
			continue
		}
		occupancy[alloc.PenID]++
	}

	res := domain.Result{}
	for _, pen := range view.ListPens() {
		count := occupancy[pen.ID]
		if count > pen.Capacity {
			res.Violations = append(res.Violations, domain.Violation{
				Rule:     "pen_capacity",
				Severity: domain.SeverityBlock,
				Message:  fmt.Sprintf("pen %s (%s) over capacity: %d/%d occupants", pen.Identification, pen.ID, count, pen.Capacity),
				Entity:   domain.EntityPen,
				EntityID: pen.ID,
			})
		}
	}
	return res, nil
}
