package core

import "suinocore/pkg/domain"

type (
	EntityType         = domain.EntityType
	Severity           = domain.Severity
	Base               = domain.Base
	Animal             = domain.Animal
	BreedingCycle      = domain.BreedingCycle
	Gestation          = domain.Gestation
	WeightRecord       = domain.WeightRecord
	HeatRecord         = domain.HeatRecord
	VaccinationRecord  = domain.VaccinationRecord
	MortalityRecord    = domain.MortalityRecord
	Employee           = domain.Employee
	Pen                = domain.Pen
	PenAllocation      = domain.PenAllocation
	MaternityStay      = domain.MaternityStay
	Litter             = domain.Litter
	Piglet             = domain.Piglet
	Gilt               = domain.Gilt
	GiltMeasurements   = domain.GiltMeasurements
	GiltEvaluation     = domain.GiltEvaluation
	GiltDiscard        = domain.GiltDiscard
	CaliperScore       = domain.CaliperScore
	Change             = domain.Change
	Action             = domain.Action
	Violation          = domain.Violation
	Result             = domain.Result
	Rule               = domain.Rule
	RulesEngine        = domain.RulesEngine
	RuleViolationError = domain.RuleViolationError
)

const (
	EntityAnimal            = domain.EntityAnimal
	EntityBreedingCycle     = domain.EntityBreedingCycle
	EntityGestation         = domain.EntityGestation
	EntityWeightRecord      = domain.EntityWeightRecord
	EntityHeatRecord        = domain.EntityHeatRecord
	EntityVaccinationRecord = domain.EntityVaccinationRecord
	EntityMortalityRecord   = domain.EntityMortalityRecord
	EntityEmployee          = domain.EntityEmployee
	EntityPen               = domain.EntityPen
	EntityPenAllocation     = domain.EntityPenAllocation
	EntityMaternityStay     = domain.EntityMaternityStay
	EntityLitter            = domain.EntityLitter
	EntityPiglet            = domain.EntityPiglet
	EntityGilt              = domain.EntityGilt
	EntityGiltEvaluation    = domain.EntityGiltEvaluation
	EntityGiltDiscard       = domain.EntityGiltDiscard
	EntityCaliperScore      = domain.EntityCaliperScore
)

const (
	SeverityBlock = domain.SeverityBlock
	SeverityWarn  = domain.SeverityWarn
	SeverityLog   = domain.SeverityLog
)

const (
	ActionCreate = domain.ActionCreate
	ActionUpdate = domain.ActionUpdate
	ActionDelete = domain.ActionDelete
)
