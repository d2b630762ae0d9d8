// Package memory provides the transactional in-memory store backing every
// durable persistence driver. Mutations run against a cloned state that is
// committed only after the rules engine reports no blocking violation.
package memory

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"

	"suinocore/pkg/domain"
)

type state struct {
	animals      map[string]domain.Animal
	cycles       map[string]domain.BreedingCycle
	gestations   map[string]domain.Gestation
	weights      map[string]domain.WeightRecord
	heats        map[string]domain.HeatRecord
	vaccinations map[string]domain.VaccinationRecord
	mortality    map[string]domain.MortalityRecord
	employees    map[string]domain.Employee
	pens         map[string]domain.Pen
	allocations  map[string]domain.PenAllocation
	maternity    map[string]domain.MaternityStay
	litters      map[string]domain.Litter
	piglets      map[string]domain.Piglet
	gilts        map[string]domain.Gilt
	evaluations  map[string]domain.GiltEvaluation
	discards     map[string]domain.GiltDiscard
	calipers     map[string]domain.CaliperScore
}

func newState() state {
	return state{
		animals:      make(map[string]domain.Animal),
		cycles:       make(map[string]domain.BreedingCycle),
		gestations:   make(map[string]domain.Gestation),
		weights:      make(map[string]domain.WeightRecord),
		heats:        make(map[string]domain.HeatRecord),
		vaccinations: make(map[string]domain.VaccinationRecord),
		mortality:    make(map[string]domain.MortalityRecord),
		employees:    make(map[string]domain.Employee),
		pens:         make(map[string]domain.Pen),
		allocations:  make(map[string]domain.PenAllocation),
		maternity:    make(map[string]domain.MaternityStay),
		litters:      make(map[string]domain.Litter),
		piglets:      make(map[string]domain.Piglet),
		gilts:        make(map[string]domain.Gilt),
		evaluations:  make(map[string]domain.GiltEvaluation),
		discards:     make(map[string]domain.GiltDiscard),
		calipers:     make(map[string]domain.CaliperScore),
	}
}

func cloneMap[T any](src map[string]T, clone func(T) T) map[string]T {
	dst := make(map[string]T, len(src))
	for k, v := range src {
		dst[k] = clone(v)
	}
	return dst
}

func (s state) clone() state {
	return state{
		animals:      cloneMap(s.animals, cloneAnimal),
		cycles:       cloneMap(s.cycles, cloneCycle),
		gestations:   cloneMap(s.gestations, cloneGestation),
		weights:      cloneMap(s.weights, cloneWeight),
		heats:        cloneMap(s.heats, cloneHeat),
		vaccinations: cloneMap(s.vaccinations, cloneVaccination),
		mortality:    cloneMap(s.mortality, cloneMortality),
		employees:    cloneMap(s.employees, cloneEmployee),
		pens:         cloneMap(s.pens, clonePen),
		allocations:  cloneMap(s.allocations, cloneAllocation),
		maternity:    cloneMap(s.maternity, cloneMaternity),
		litters:      cloneMap(s.litters, cloneLitter),
		piglets:      cloneMap(s.piglets, clonePiglet),
		gilts:        cloneMap(s.gilts, cloneGilt),
		evaluations:  cloneMap(s.evaluations, cloneEvaluation),
		discards:     cloneMap(s.discards, cloneDiscard),
		calipers:     cloneMap(s.calipers, cloneCaliper),
	}
}

// Snapshot is the serializable form of the full store state, keyed by entity
// ID per bucket. Durable drivers persist and hydrate snapshots wholesale.
type Snapshot struct {
	Animals      map[string]domain.Animal            `json:"animals"`
	Cycles       map[string]domain.BreedingCycle     `json:"breeding_cycles"`
	Gestations   map[string]domain.Gestation         `json:"gestations"`
	Weights      map[string]domain.WeightRecord      `json:"weight_records"`
	Heats        map[string]domain.HeatRecord        `json:"heat_records"`
	Vaccinations map[string]domain.VaccinationRecord `json:"vaccination_records"`
	Mortality    map[string]domain.MortalityRecord   `json:"mortality_records"`
	Employees    map[string]domain.Employee          `json:"employees"`
	Pens         map[string]domain.Pen               `json:"pens"`
	Allocations  map[string]domain.PenAllocation     `json:"pen_allocations"`
	Maternity    map[string]domain.MaternityStay     `json:"maternity_stays"`
	Litters      map[string]domain.Litter            `json:"litters"`
	Piglets      map[string]domain.Piglet            `json:"piglets"`
	Gilts        map[string]domain.Gilt              `json:"gilts"`
	Evaluations  map[string]domain.GiltEvaluation    `json:"gilt_evaluations"`
	Discards     map[string]domain.GiltDiscard       `json:"gilt_discards"`
	Calipers     map[string]domain.CaliperScore      `json:"caliper_scores"`
}

func snapshotFromState(s state) Snapshot {
	return Snapshot{
		Animals:      cloneMap(s.animals, cloneAnimal),
		Cycles:       cloneMap(s.cycles, cloneCycle),
		Gestations:   cloneMap(s.gestations, cloneGestation),
		Weights:      cloneMap(s.weights, cloneWeight),
		Heats:        cloneMap(s.heats, cloneHeat),
		Vaccinations: cloneMap(s.vaccinations, cloneVaccination),
		Mortality:    cloneMap(s.mortality, cloneMortality),
		Employees:    cloneMap(s.employees, cloneEmployee),
		Pens:         cloneMap(s.pens, clonePen),
		Allocations:  cloneMap(s.allocations, cloneAllocation),
		Maternity:    cloneMap(s.maternity, cloneMaternity),
		Litters:      cloneMap(s.litters, cloneLitter),
		Piglets:      cloneMap(s.piglets, clonePiglet),
		Gilts:        cloneMap(s.gilts, cloneGilt),
		Evaluations:  cloneMap(s.evaluations, cloneEvaluation),
		Discards:     cloneMap(s.discards, cloneDiscard),
		Calipers:     cloneMap(s.calipers, cloneCaliper),
	}
}

func stateFromSnapshot(snap Snapshot) state {
	st := newState()
	for k, v := range snap.Animals {
		st.animals[k] = cloneAnimal(v)
	}
	for k, v := range snap.Cycles {
		st.cycles[k] = cloneCycle(v)
	}
	for k, v := range snap.Gestations {
		st.gestations[k] = cloneGestation(v)
	}
	for k, v := range snap.Weights {
		st.weights[k] = cloneWeight(v)
	}
	for k, v := range snap.Heats {
		st.heats[k] = cloneHeat(v)
	}
	for k, v := range snap.Vaccinations {
		st.vaccinations[k] = cloneVaccination(v)
	}
	for k, v := range snap.Mortality {
		st.mortality[k] = cloneMortality(v)
	}
	for k, v := range snap.Employees {
		st.employees[k] = cloneEmployee(v)
	}
	for k, v := range snap.Pens {
		st.pens[k] = clonePen(v)
	}
	for k, v := range snap.Allocations {
		st.allocations[k] = cloneAllocation(v)
	}
	for k, v := range snap.Maternity {
		st.maternity[k] = cloneMaternity(v)
	}
	for k, v := range snap.Litters {
		st.litters[k] = cloneLitter(v)
	}
	for k, v := range snap.Piglets {
		st.piglets[k] = clonePiglet(v)
	}
	for k, v := range snap.Gilts {
		st.gilts[k] = cloneGilt(v)
	}
	for k, v := range snap.Evaluations {
		st.evaluations[k] = cloneEvaluation(v)
	}
	for k, v := range snap.Discards {
		st.discards[k] = cloneDiscard(v)
	}
	for k, v := range snap.Calipers {
		st.calipers[k] = cloneCaliper(v)
	}
	return st
}

// Store provides an in-memory transactional store for the swine domain.
type Store struct {
	mu     sync.RWMutex
	state  state
	engine *domain.RulesEngine
	nowFn  func() time.Time
}

// NewStore constructs an in-memory store backed by the provided rules engine.
func NewStore(engine *domain.RulesEngine) *Store {
	if engine == nil {
		engine = domain.NewRulesEngine()
	}
	return &Store{
		state:  newState(),
		engine: engine,
		nowFn:  func() time.Time { return time.Now().UTC() },
	}
}

func (s *Store) newID() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b[:])
}

// ExportState clones the current store state for external persistence.
func (s *Store) ExportState() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshotFromState(s.state)
}

// ImportState replaces the store state with the provided snapshot.
func (s *Store) ImportState(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = stateFromSnapshot(snap)
}

// RulesEngine exposes the currently configured engine.
func (s *Store) RulesEngine() *domain.RulesEngine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.engine
}

// SetNowFunc overrides the time provider. Intended for deterministic tests.
func (s *Store) SetNowFunc(fn func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if fn != nil {
		s.nowFn = fn
	}
}

// transaction represents a mutation set applied to the store state.
type transaction struct {
	store   *Store
	state   state
	changes []domain.Change
	now     time.Time
}

// RunInTransaction executes fn within a transactional copy of the store state.
func (s *Store) RunInTransaction(ctx context.Context, fn func(tx domain.Transaction) error) (domain.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &transaction{
		store: s,
		state: s.state.clone(),
		now:   s.nowFn(),
	}

	if err := fn(tx); err != nil {
		return domain.Result{}, err
	}

	var result domain.Result
	if s.engine != nil {
		view := newView(&tx.state)
		res, err := s.engine.Evaluate(ctx, view, tx.changes)
		if err != nil {
			return domain.Result{}, err
		}
		result = res
		if res.HasBlocking() {
			return res, domain.RuleViolationError{Result: res}
		}
	}

	s.state = tx.state
	return result, nil
}

// View executes fn against a read-only snapshot of the store state.
func (s *Store) View(_ context.Context, fn func(domain.RuleView) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := s.state.clone()
	return fn(newView(&snapshot))
}

func (tx *transaction) recordChange(change domain.Change) {
	tx.changes = append(tx.changes, change)
}

// Snapshot returns a read-only view over the transactional state.
func (tx *transaction) Snapshot() domain.RuleView {
	return newView(&tx.state)
}
