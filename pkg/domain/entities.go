// Package domain defines the persistent entities, enumerations, error
// taxonomy, and rule evaluation primitives of the swine production core.
package domain

import "time"

// EntityType identifies the type of record stored in the core domain.
type EntityType string

// Supported entity type identifiers used in Change records and persistence buckets.
const (
	// EntityAnimal identifies an individual animal record.
	EntityAnimal EntityType = "animal"
	// EntityBreedingCycle identifies a recorded heat cycle of a female.
	EntityBreedingCycle EntityType = "breeding_cycle"
	// EntityGestation identifies a confirmed gestation record.
	EntityGestation EntityType = "gestation"
	// EntityWeightRecord identifies a weighing record.
	EntityWeightRecord EntityType = "weight_record"
	// EntityHeatRecord identifies a heat detection record.
	EntityHeatRecord EntityType = "heat_record"
	// EntityVaccinationRecord identifies a vaccine application record.
	EntityVaccinationRecord EntityType = "vaccination_record"
	// EntityMortalityRecord identifies a death record.
	EntityMortalityRecord EntityType = "mortality_record"
	// EntityEmployee identifies a farm employee record.
	EntityEmployee EntityType = "employee"
	// EntityPen identifies a physical pen record.
	EntityPen EntityType = "pen"
	// EntityPenAllocation identifies an animal-to-pen allocation record.
	EntityPenAllocation EntityType = "pen_allocation"
	// EntityMaternityStay identifies a sow's stay in a maternity pen.
	EntityMaternityStay EntityType = "maternity_stay"
	// EntityLitter identifies a litter born during a maternity stay.
	EntityLitter EntityType = "litter"
	// EntityPiglet identifies an individual piglet record.
	EntityPiglet EntityType = "piglet"
	// EntityGilt identifies a replacement gilt record.
	EntityGilt EntityType = "gilt"
	// EntityGiltEvaluation identifies a gilt selection evaluation record.
	EntityGiltEvaluation EntityType = "gilt_evaluation"
	// EntityGiltDiscard identifies a gilt discard record.
	EntityGiltDiscard EntityType = "gilt_discard"
	// EntityCaliperScore identifies a back-fat caliper measurement record.
	EntityCaliperScore EntityType = "caliper_score"
)

// Sex enumerates animal sexes using the farm vocabulary.
type Sex string

// Recognised sexes.
const (
	SexMale   Sex = "Macho"
	SexFemale Sex = "Fêmea"
)

// AnimalCategory classifies an animal's productive role.
type AnimalCategory string

// Canonical animal categories. A sow entering maternity becomes
// CategoryLactatingSow until weaning.
const (
	CategorySow          AnimalCategory = "Matriz"
	CategoryGilt         AnimalCategory = "Leitoa"
	CategoryBoar         AnimalCategory = "Reprodutor"
	CategoryLactatingSow AnimalCategory = "Matriz Lactante"
	CategoryPiglet       AnimalCategory = "Leitão"
)

// EmployeeStatus enumerates employment states. Only Ativo employees authenticate.
type EmployeeStatus string

// Canonical employee statuses.
const (
	EmployeeActive   EmployeeStatus = "Ativo"
	EmployeeInactive EmployeeStatus = "Inativo"
	EmployeeVacation EmployeeStatus = "Férias"
	EmployeeAway     EmployeeStatus = "Afastado"
)

// AllocationStatus tracks whether a pen allocation is open or closed.
type AllocationStatus string

// Allocation lifecycle states.
const (
	AllocationActive   AllocationStatus = "Ativo"
	AllocationInactive AllocationStatus = "Inativo"
)

// MaternityStatus tracks the lifecycle of a maternity stay.
type MaternityStatus string

// Maternity stay states.
const (
	MaternityActive MaternityStatus = "Ativa"
	MaternityClosed MaternityStatus = "Finalizada"
)

// CycleStatus tracks the state of a breeding cycle.
type CycleStatus string

// Breeding cycle states.
const (
	CycleWaiting    CycleStatus = "Aguardando"
	CycleInseminado CycleStatus = "Inseminada"
	CycleClosed     CycleStatus = "Finalizado"
)

// GestationStatus tracks a gestation from service to outcome.
type GestationStatus string

// Gestation states.
const (
	GestationOngoing   GestationStatus = "Em Andamento"
	GestationDelivered GestationStatus = "Concluída"
	GestationLost      GestationStatus = "Perdida"
)

// PigletStatus enumerates piglet states; Morto is terminal.
type PigletStatus string

// Piglet lifecycle states.
const (
	PigletAlive       PigletStatus = "Vivo"
	PigletDead        PigletStatus = "Morto"
	PigletWeaned      PigletStatus = "Desmamado"
	PigletTransferred PigletStatus = "Transferido"
)

// GiltStatus enumerates gilt states; Descartada is terminal.
type GiltStatus string

// Gilt lifecycle states.
const (
	GiltRegistered      GiltStatus = "Cadastrada"
	GiltUnderEvaluation GiltStatus = "Em Avaliação"
	GiltSelected        GiltStatus = "Selecionada"
	GiltDiscarded       GiltStatus = "Descartada"
)

// HeatIntensity grades an observed heat.
type HeatIntensity string

// Heat intensity grades.
const (
	HeatStrong HeatIntensity = "Forte"
	HeatMedium HeatIntensity = "Médio"
	HeatWeak   HeatIntensity = "Fraco"
)

// DiscardDestination enumerates where a discarded gilt goes.
type DiscardDestination string

// Discard destinations. DestinationUnspecified is recorded when a discard is
// created implicitly by a rejecting evaluation.
const (
	DestinationSlaughter   DiscardDestination = "Abate"
	DestinationSale        DiscardDestination = "Venda"
	DestinationOther       DiscardDestination = "Outro"
	DestinationUnspecified DiscardDestination = "Não especificado"
)

// GestationDays is the expected gestation length used to project farrowing dates.
const GestationDays = 114

// HeatCycleDays is the average interval between heats used for predictions.
const HeatCycleDays = 21

// Base contains common fields for all domain records.
type Base struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Animal represents an individual animal in the herd register.
type Animal struct {
	Base
	Identification string         `json:"identification"`
	EarTag         *string        `json:"ear_tag,omitempty"`
	Tattoo         *string        `json:"tattoo,omitempty"`
	Name           *string        `json:"name,omitempty"`
	Category       AnimalCategory `json:"category"`
	Sex            Sex            `json:"sex"`
	Breed          *string        `json:"breed,omitempty"`
	Origin         *string        `json:"origin,omitempty"`
	BirthDate      *time.Time     `json:"birth_date,omitempty"`
	RegisteredAt   time.Time      `json:"registered_at"`
}

// BreedingCycle records one numbered heat event of a female, optionally
// grouped with synchronised "heat sister" females. SisterIDs never contains
// the cycle's own animal.
type BreedingCycle struct {
	Base
	AnimalID    string        `json:"animal_id"`
	CycleNumber int           `json:"cycle_number"`
	HeatDate    time.Time     `json:"heat_date"`
	Intensity   HeatIntensity `json:"intensity"`
	SisterIDs   []string      `json:"sister_ids"`
	SisterCount int           `json:"sister_count"`
	Status      CycleStatus   `json:"status"`
	Observation string        `json:"observation"`
}

// Gestation tracks a confirmed service through to farrowing.
type Gestation struct {
	Base
	AnimalID       string          `json:"animal_id"`
	ConceptionDate time.Time       `json:"conception_date"`
	ExpectedDate   time.Time       `json:"expected_date"`
	PartumDate     *time.Time      `json:"partum_date,omitempty"`
	PigletCount    *int            `json:"piglet_count,omitempty"`
	Status         GestationStatus `json:"status"`
	Observation    string          `json:"observation"`
}

// WeightRecord is one weighing of an animal. Append-only.
type WeightRecord struct {
	Base
	AnimalID    string    `json:"animal_id"`
	RecordDate  time.Time `json:"record_date"`
	WeightKg    float64   `json:"weight_kg"`
	Observation string    `json:"observation"`
}

// HeatRecord is one detected heat event. Append-only.
type HeatRecord struct {
	Base
	AnimalID      string        `json:"animal_id"`
	DetectionDate time.Time     `json:"detection_date"`
	Intensity     HeatIntensity `json:"intensity"`
	Behavior      string        `json:"behavior"`
	Confirmed     bool          `json:"confirmed"`
	Responsible   string        `json:"responsible"`
	Observation   string        `json:"observation"`
}

// VaccinationRecord is one vaccine application. Append-only.
type VaccinationRecord struct {
	Base
	AnimalID        string     `json:"animal_id"`
	VaccineName     string     `json:"vaccine_name"`
	ApplicationDate time.Time  `json:"application_date"`
	Dose            string     `json:"dose"`
	Route           string     `json:"route"`
	Batch           string     `json:"batch"`
	NextDoseDate    *time.Time `json:"next_dose_date,omitempty"`
	Site            string     `json:"site"`
	Reaction        *string    `json:"reaction,omitempty"`
	Responsible     string     `json:"responsible"`
	Observation     string     `json:"observation"`
}

// MortalityRecord documents a death and logically retires the animal.
// Append-only.
type MortalityRecord struct {
	Base
	AnimalID       string         `json:"animal_id"`
	DeathDate      time.Time      `json:"death_date"`
	Cause          string         `json:"cause"`
	Category       AnimalCategory `json:"category"`
	AgeDays        *int           `json:"age_days,omitempty"`
	WeightKg       *float64       `json:"weight_kg,omitempty"`
	Location       string         `json:"location"`
	Necropsy       bool           `json:"necropsy"`
	NecropsyResult *string        `json:"necropsy_result,omitempty"`
	Measures       string         `json:"measures"`
	Responsible    string         `json:"responsible"`
	Observation    string         `json:"observation"`
}

// Employee is a farm staff member. Matricula is the unique external key used
// for authentication.
type Employee struct {
	Base
	Name          string         `json:"name"`
	Matricula     string         `json:"matricula"`
	Role          string         `json:"role"`
	Sector        string         `json:"sector"`
	AdmissionDate time.Time      `json:"admission_date"`
	Status        EmployeeStatus `json:"status"`
	LastAccess    *time.Time     `json:"last_access,omitempty"`
	Observation   string         `json:"observation"`
}

// Pen is a physical pen with bounded capacity. AreaM2 is derived from the
// declared dimensions at registration time.
type Pen struct {
	Base
	Identification string  `json:"identification"`
	Sector         string  `json:"sector"`
	Capacity       int     `json:"capacity"`
	WidthM         float64 `json:"width_m"`
	LengthM        float64 `json:"length_m"`
	AreaM2         float64 `json:"area_m2"`
	FloorType      string  `json:"floor_type"`
	Observation    string  `json:"observation"`
}

// PenAllocation places an animal in a pen for a period. An open allocation
// has no exit date and status Ativo.
type PenAllocation struct {
	Base
	PenID       string           `json:"pen_id"`
	AnimalID    string           `json:"animal_id"`
	EntryDate   time.Time        `json:"entry_date"`
	ExitDate    *time.Time       `json:"exit_date,omitempty"`
	ExitReason  *string          `json:"exit_reason,omitempty"`
	Status      AllocationStatus `json:"status"`
	Observation string           `json:"observation"`
}

// Open reports whether the allocation is still current.
func (a PenAllocation) Open() bool { return a.ExitDate == nil }

// MaternityStay tracks a sow in a maternity pen from entry through farrowing
// to exit.
type MaternityStay struct {
	Base
	AnimalID    string          `json:"animal_id"`
	PenID       string          `json:"pen_id"`
	EntryDate   time.Time       `json:"entry_date"`
	BirthDate   *time.Time      `json:"birth_date,omitempty"`
	ExitDate    *time.Time      `json:"exit_date,omitempty"`
	Status      MaternityStatus `json:"status"`
	Observation string          `json:"observation"`
}

// Open reports whether the stay is still current.
func (m MaternityStay) Open() bool { return m.ExitDate == nil }

// Litter aggregates the outcome of one parturition. At most one litter exists
// per maternity stay.
type Litter struct {
	Base
	MaternityID   string    `json:"maternity_id"`
	AnimalID      string    `json:"animal_id"`
	BirthDate     time.Time `json:"birth_date"`
	TotalBorn     int       `json:"total_born"`
	BornAlive     int       `json:"born_alive"`
	Stillborn     int       `json:"stillborn"`
	Mummified     int       `json:"mummified"`
	TotalWeightKg float64   `json:"total_weight_kg"`
	AvgWeightKg   float64   `json:"avg_weight_kg"`
	AdjustedSize  int       `json:"adjusted_size"`
	Observation   string    `json:"observation"`
}

// Piglet is an individual piglet belonging to a litter. Identification is
// unique across all piglets.
type Piglet struct {
	Base
	LitterID        string       `json:"litter_id"`
	DamID           string       `json:"dam_id"`
	FosterDamID     *string      `json:"foster_dam_id,omitempty"`
	Identification  string       `json:"identification"`
	Sex             Sex          `json:"sex"`
	BirthDate       time.Time    `json:"birth_date"`
	BirthWeightKg   float64      `json:"birth_weight_kg"`
	CurrentWeightKg *float64     `json:"current_weight_kg,omitempty"`
	Status          PigletStatus `json:"status"`
	StatusDate      time.Time    `json:"status_date"`
	DeathCause      *string      `json:"death_cause,omitempty"`
	Observation     string       `json:"observation"`
}

// Gilt is a replacement female candidate tracked from registration through
// selection or discard.
type Gilt struct {
	Base
	Identification    string     `json:"identification"`
	EarTag            *string    `json:"ear_tag,omitempty"`
	Tattoo            *string    `json:"tattoo,omitempty"`
	Chip              *string    `json:"chip,omitempty"`
	BirthDate         time.Time  `json:"birth_date"`
	Origin            string     `json:"origin"`
	Genetics          string     `json:"genetics"`
	DamID             *string    `json:"dam_id,omitempty"`
	SireID            *string    `json:"sire_id,omitempty"`
	SelectionDate     *time.Time `json:"selection_date,omitempty"`
	SelectionWeightKg *float64   `json:"selection_weight_kg,omitempty"`
	SelectionAgeDays  *int       `json:"selection_age_days,omitempty"`
	Status            GiltStatus `json:"status"`
	FirstHeatDate     *time.Time `json:"first_heat_date,omitempty"`
	Observation       string     `json:"observation"`
}

// GiltMeasurements is the measurement block captured during a gilt evaluation.
type GiltMeasurements struct {
	WeightKg        float64 `json:"weight_kg"`
	AgeDays         int     `json:"age_days"`
	BackfatMM       float64 `json:"backfat_mm"`
	LoinDepthMM     float64 `json:"loin_depth_mm"`
	BodyLengthCM    float64 `json:"body_length_cm"`
	ShoulderWidthCM float64 `json:"shoulder_width_cm"`
	HipWidthCM      float64 `json:"hip_width_cm"`
	RearHeightCM    float64 `json:"rear_height_cm"`
	TeatCount       int     `json:"teat_count"`
	InvertedTeats   int     `json:"inverted_teats"`
	LegsQuality     string  `json:"legs_quality"`
	Temperament     string  `json:"temperament"`
	VisualScore     string  `json:"visual_score"`
	OverallScore    int     `json:"overall_score"`
}

// GiltEvaluation is the append-only record of one selection evaluation.
type GiltEvaluation struct {
	Base
	GiltID         string           `json:"gilt_id"`
	EvaluationDate time.Time        `json:"evaluation_date"`
	Measurements   GiltMeasurements `json:"measurements"`
	Recommendation GiltStatus       `json:"recommendation"`
	Reason         string           `json:"reason"`
	Technician     string           `json:"technician"`
	Observation    string           `json:"observation"`
}

// GiltDiscard documents the removal of a gilt from the breeding pool. At most
// one discard exists per gilt.
type GiltDiscard struct {
	Base
	GiltID           string             `json:"gilt_id"`
	DiscardDate      time.Time          `json:"discard_date"`
	WeightKg         float64            `json:"weight_kg"`
	AgeDays          int                `json:"age_days"`
	PrimaryReason    string             `json:"primary_reason"`
	SecondaryReasons []string           `json:"secondary_reasons"`
	Destination      DiscardDestination `json:"destination"`
	SaleValue        *float64           `json:"sale_value,omitempty"`
	Technician       string             `json:"technician"`
	Observation      string             `json:"observation"`
}

// CaliperScore is one back-fat caliper measurement. P2 (last rib) determines
// the body condition score.
type CaliperScore struct {
	Base
	AnimalID    string    `json:"animal_id"`
	MeasureDate time.Time `json:"measure_date"`
	P1MM        float64   `json:"p1_mm"`
	P2MM        float64   `json:"p2_mm"`
	P3MM        float64   `json:"p3_mm"`
	Score       int       `json:"score"`
	Condition   string    `json:"condition"`
	Technician  string    `json:"technician"`
	Observation string    `json:"observation"`
}

// Change describes a mutation applied to an entity during a transaction.
type Change struct {
	Entity EntityType
	Action Action
	Before any
	After  any
}

// Action indicates the type of modification performed.
type Action string

// Change actions enumerate supported mutations captured for rule evaluation.
const (
	// ActionCreate indicates an entity was created.
	ActionCreate Action = "create"
	// ActionUpdate indicates an entity was updated.
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Severity captures rule outcomes.
type Severity string

// Rule evaluation severities determine commit behavior.
const (
	// SeverityBlock blocks transaction commit.
	SeverityBlock Severity = "block"
	// SeverityWarn logs a warning but allows commit.
	SeverityWarn Severity = "warn"
	SeverityLog  Severity = "log"
)

// Violation reports a failed rule evaluation.
type Violation struct {
	Rule     string
	Severity Severity
	Message  string
	Entity   EntityType
	EntityID string
}

// Result aggregates violations from the rules engine.
type Result struct {
	Violations []Violation
}

// Merge appends violations from another result.
func (r *Result) Merge(other Result) {
	if len(other.Violations) == 0 {
		return
	}
	r.Violations = append(r.Violations, other.Violations...)
}

// HasBlocking returns true if the result contains blocking violations.
func (r Result) HasBlocking() bool {
	for _, v := range r.Violations {
		if v.Severity == SeverityBlock {
			return true
		}
	}
	return false
}
