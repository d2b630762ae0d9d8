package domain

import "context"

// RuleView provides read-only access to a consistent snapshot of domain
// entities for rule evaluation and in-transaction precondition checks.
type RuleView interface {
	ListAnimals() []Animal
	ListBreedingCycles() []BreedingCycle
	ListGestations() []Gestation
	ListWeightRecords() []WeightRecord
	ListHeatRecords() []HeatRecord
	ListVaccinationRecords() []VaccinationRecord
	ListMortalityRecords() []MortalityRecord
	ListEmployees() []Employee
	ListPens() []Pen
	ListPenAllocations() []PenAllocation
	ListMaternityStays() []MaternityStay
	ListLitters() []Litter
	ListPiglets() []Piglet
	ListGilts() []Gilt
	ListGiltEvaluations() []GiltEvaluation
	ListGiltDiscards() []GiltDiscard
	ListCaliperScores() []CaliperScore

	FindAnimal(id string) (Animal, bool)
	FindPen(id string) (Pen, bool)
	FindPenAllocation(id string) (PenAllocation, bool)
	FindMaternityStay(id string) (MaternityStay, bool)
	FindLitter(id string) (Litter, bool)
	FindPiglet(id string) (Piglet, bool)
	FindGilt(id string) (Gilt, bool)
	FindEmployeeByMatricula(matricula string) (Employee, bool)
}

// Rule defines an evaluation executed within a transaction boundary.
type Rule interface {
	Name() string
	Evaluate(ctx context.Context, view RuleView, changes []Change) (Result, error)
}

// RulesEngine orchestrates rule evaluation.
type RulesEngine struct {
	rules []Rule
}

// NewRulesEngine constructs an engine instance.
func NewRulesEngine() *RulesEngine {
	return &RulesEngine{}
}

// Register appends a rule to the engine.
func (e *RulesEngine) Register(rule Rule) {
	e.rules = append(e.rules, rule)
}

// Evaluate executes all registered rules and aggregates their results.
func (e *RulesEngine) Evaluate(ctx context.Context, view RuleView, changes []Change) (Result, error) {
	var combined Result
	for _, rule := range e.rules {
		res, err := rule.Evaluate(ctx, view, changes)
		if err != nil {
			return Result{}, err
		}
		combined.Merge(res)
	}
	return combined, nil
}
