package core

import (
	"context"
	"fmt"

	"suinocore/pkg/domain"
)

// StatusTransitionRule blocks illegal state transitions on stateful entities.
func StatusTransitionRule() domain.Rule {
	return statusTransitionRule{}
}

type statusTransitionRule struct{}

type statusMachine struct {
	entity    domain.EntityType
	label     string
	terminal  map[string]struct{}
	valid     map[string]struct{}
	extractor func(payload any) (id string, state string, ok bool)
}

var statusMachines = map[domain.EntityType]statusMachine{
	domain.EntityGilt: {
		entity:   domain.EntityGilt,
		label:    "gilt",
		terminal: toSet(string(domain.GiltDiscarded)),
		valid: toSet(
			string(domain.GiltRegistered),
			string(domain.GiltUnderEvaluation),
			string(domain.GiltSelected),
			string(domain.GiltDiscarded),
		),
		extractor: func(payload any) (string, string, bool) {
			gilt, ok := decodeChange[domain.Gilt](payload)
			if !ok {
				return "", "", false
			}
			return gilt.ID, string(gilt.Status), true
		},
	},
	domain.EntityPiglet: {
		entity:   domain.EntityPiglet,
		label:    "piglet",
		terminal: toSet(string(domain.PigletDead)),
		valid: toSet(
			string(domain.PigletAlive),
			string(domain.PigletDead),
			string(domain.PigletWeaned),
			string(domain.PigletTransferred),
		),
		extractor: func(payload any) (string, string, bool) {
			piglet, ok := decodeChange[domain.Piglet](payload)
			if !ok {
				return "", "", false
			}
			return piglet.ID, string(piglet.Status), true
		},
	},
	domain.EntityMaternityStay: {
		entity:   domain.EntityMaternityStay,
		label:    "maternity stay",
		terminal: toSet(string(domain.MaternityClosed)),
		valid: toSet(
			string(domain.MaternityActive),
			string(domain.MaternityClosed),
		),
		extractor: func(payload any) (string, string, bool) {
			stay, ok := decodeChange[domain.MaternityStay](payload)
			if !ok {
				return "", "", false
			}
			return stay.ID, string(stay.Status), true
		},
	},
	domain.EntityPenAllocation: {
		entity:   domain.EntityPenAllocation,
		label:    "pen allocation",
		terminal: toSet(string(domain.AllocationInactive)),
		valid: toSet(
			string(domain.AllocationActive),
			string(domain.AllocationInactive),
		),
		extractor: func(payload any) (string, string, bool) {
			alloc, ok := decodeChange[domain.PenAllocation](payload)
			if !ok {
				return "", "", false
			}
			return alloc.ID, string(alloc.Status), true
		},
	},
	domain.EntityGestation: {
		entity:   domain.EntityGestation,
		label:    "gestation",
		terminal: toSet(string(domain.GestationDelivered), string(domain.GestationLost)),
		valid: toSet(
			string(domain.GestationOngoing),
			string(domain.GestationDelivered),
			string(domain.GestationLost),
		),
		extractor: func(payload any) (string, string, bool) {
			gestation, ok := decodeChange[domain.Gestation](payload)
			if !ok {
				return "", "", false
			}
			return gestation.ID, string(gestation.Status), true
		},
	},
	domain.EntityBreedingCycle: {
		entity:   domain.EntityBreedingCycle,
		label:    "breeding cycle",
		terminal: toSet(string(domain.CycleClosed)),
		valid: toSet(
			string(domain.CycleWaiting),
			string(domain.CycleInseminado),
			string(domain.CycleClosed),
		),
		extractor: func(payload any) (string, string, bool) {
			cycle, ok := decodeChange[domain.BreedingCycle](payload)
			if !ok {
				return "", "", false
			}
			return cycle.ID, string(cycle.Status), true
		},
	},
	domain.EntityEmployee: {
		entity:   domain.EntityEmployee,
		label:    "employee",
		terminal: map[string]struct{}{},
		valid: toSet(
			string(domain.EmployeeActive),
			string(domain.EmployeeInactive),
			string(domain.EmployeeVacation),
			string(domain.EmployeeAway),
		),
		extractor: func(payload any) (string, string, bool) {
			employee, ok := decodeChange[domain.Employee](payload)
			if !ok {
				return "", "", false
			}
			return employee.ID, string(employee.Status), true
		},
	},
}

func (statusTransitionRule) Name() string { return "status_transition" }

func (statusTransitionRule) Evaluate(_ context.Context, _ domain.RuleView, changes []domain.Change) (domain.Result, error) {
	res := domain.Result{}
	for _, change := range changes {
		machine, ok := statusMachines[change.Entity]
		if !ok {
			continue
		}

		afterID, newState, ok := machine.extractor(change.After)
		if ok {
			if _, valid := machine.valid[newState]; !valid {
				res.Violations = append(res.Violations, domain.Violation{
					Rule:     "status_transition",
					Severity: domain.SeverityBlock,
					Message:  fmt.Sprintf("%s %s is set to invalid state %s", machine.label, afterID, newState),
					Entity:   machine.entity,
					EntityID: afterID,
				})
				continue
			}
		}

		beforeID, beforeState, ok := machine.extractor(change.Before)
		if !ok {
			continue
		}
		if _, ok := machine.terminal[beforeState]; !ok {
			continue
		}
		afterID, afterState, ok := machine.extractor(change.After)
		if !ok {
			continue
		}
		if afterState != beforeState {
			res.Violations = append(res.Violations, domain.Violation{
				Rule:     "status_transition",
				Severity: domain.SeverityBlock,
				Message:  fmt.Sprintf("cannot move %s %s from terminal state %s to %s", machine.label, beforeID, beforeState, afterState),
				Entity:   machine.entity,
				EntityID: afterID,
			})
		}
	}
	return res, nil
}

func decodeChange[T any](payload any) (T, bool) {
	value, ok := payload.(T)
	return value, ok
}

func toSet(values ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
