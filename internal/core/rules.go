package core

import "suinocore/pkg/domain"

// NewDefaultRulesEngine builds a rules engine with the built-in policy set.
// Every transaction against a store constructed by this package is checked
// against these rules before commit.
func NewDefaultRulesEngine() *domain.RulesEngine {
	engine := domain.NewRulesEngine()
	engine.Register(NewPenCapacityRule())
	engine.Register(NewOpenAllocationRule())
	engine.Register(NewLitterTotalsRule())
	engine.Register(NewSisterSymmetryRule())
	engine.Register(NewCycleSequenceRule())
	engine.Register(NewDiscardStatusRule())
	engine.Register(StatusTransitionRule())
	return engine
}
