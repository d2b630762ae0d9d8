package core

import (
	"context"
	"fmt"

	"suinocore/pkg/domain"
)

// NewDiscardStatusRule returns the rule keeping gilt discard records and gilt
// status coherent: exactly one discard row per Descartada gilt, and no discard
// row for a gilt in any other status.
func NewDiscardStatusRule() domain.Rule {
	return discardStatusRule{}
}

type discardStatusRule struct{}

func (discardStatusRule) Name() string { return "discard_status" }

func (discardStatusRule) Evaluate(_ context.Context, view domain.RuleView, _ []domain.Change) (domain.Result, error) {
	discards := make(map[string]int)
	for _, discard := range view.ListGiltDiscards() {
		discards[discard.GiltID]++
	}

	res := domain.Result{}
	for _, gilt := range view.ListGilts() {
		count := discards[gilt.ID]
		switch {
		case gilt.Status == domain.GiltDiscarded && count != 1:
			res.Violations = append(res.Violations, domain.Violation{
				Rule:     "discard_status",
				Severity: domain.SeverityBlock,
				Message:  fmt.Sprintf("gilt %s is Descartada with %d discard records", gilt.Identification, count),
				Entity:   domain.EntityGilt,
				EntityID: gilt.ID,
			})
		case gilt.Status != domain.GiltDiscarded && count > 0:
			res.Violations = append(res.Violations, domain.Violation{
				Rule:     "discard_status",
				Severity: domain.SeverityBlock,
				Message:  fmt.Sprintf("gilt %s has a discard record but status %s", gilt.Identification, gilt.Status),
				Entity:   domain.EntityGilt,
				EntityID: gilt.ID,
			})
		}
	}
	return res, nil
}
