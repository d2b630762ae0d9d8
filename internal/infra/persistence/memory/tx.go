package memory

import "suinocore/pkg/domain"

// CreateAnimal stores a new animal within the transaction.
func (tx *transaction) CreateAnimal(a domain.Animal) (domain.Animal, error) {
	if a.ID == "" {
		a.ID = tx.store.newID()
	}
	if _, exists := tx.state.animals[a.ID]; exists {
		return domain.Animal{}, domain.DuplicateKeyError{Entity: domain.EntityAnimal, Key: a.ID}
	}
	a.CreatedAt = tx.now
	a.UpdatedAt = tx.now
	tx.state.animals[a.ID] = cloneAnimal(a)
	tx.recordChange(domain.Change{Entity: domain.EntityAnimal, Action: domain.ActionCreate, After: cloneAnimal(a)})
	return cloneAnimal(a), nil
}

// UpdateAnimal mutates an animal using the provided mutator function.
func (tx *transaction) UpdateAnimal(id string, mutator func(*domain.Animal) error) (domain.Animal, error) {
	current, ok := tx.state.animals[id]
	if !ok {
		return domain.Animal{}, domain.NotFoundError{Entity: domain.EntityAnimal, Key: id}
	}
	before := cloneAnimal(current)
	if err := mutator(&current); err != nil {
		return domain.Animal{}, err
	}
	current.ID = id
	current.UpdatedAt = tx.now
	tx.state.animals[id] = cloneAnimal(current)
	tx.recordChange(domain.Change{Entity: domain.EntityAnimal, Action: domain.ActionUpdate, Before: before, After: cloneAnimal(current)})
	return cloneAnimal(current), nil
}

// CreateBreedingCycle stores a new breeding cycle.
func (tx *transaction) CreateBreedingCycle(c domain.BreedingCycle) (domain.BreedingCycle, error) {
	if c.ID == "" {
		c.ID = tx.store.newID()
	}
	if _, exists := tx.state.cycles[c.ID]; exists {
		return domain.BreedingCycle{}, domain.DuplicateKeyError{Entity: domain.EntityBreedingCycle, Key: c.ID}
	}
	c.CreatedAt = tx.now
	c.UpdatedAt = tx.now
	tx.state.cycles[c.ID] = cloneCycle(c)
	tx.recordChange(domain.Change{Entity: domain.EntityBreedingCycle, Action: domain.ActionCreate, After: cloneCycle(c)})
	return cloneCycle(c), nil
}

// UpdateBreedingCycle mutates an existing breeding cycle.
func (tx *transaction) UpdateBreedingCycle(id string, mutator func(*domain.BreedingCycle) error) (domain.BreedingCycle, error) {
	current, ok := tx.state.cycles[id]
	if !ok {
		return domain.BreedingCycle{}, domain.NotFoundError{Entity: domain.EntityBreedingCycle, Key: id}
	}
	before := cloneCycle(current)
	current = cloneCycle(current)
	if err := mutator(&current); err != nil {
		return domain.BreedingCycle{}, err
	}
	current.ID = id
	current.UpdatedAt = tx.now
	tx.state.cycles[id] = cloneCycle(current)
	tx.recordChange(domain.Change{Entity: domain.EntityBreedingCycle, Action: domain.ActionUpdate, Before: before, After: cloneCycle(current)})
	return cloneCycle(current), nil
}

// DeleteBreedingCycle removes a breeding cycle from the transaction state.
func (tx *transaction) DeleteBreedingCycle(id string) error {
	current, ok := tx.state.cycles[id]
	if !ok {
		return domain.NotFoundError{Entity: domain.EntityBreedingCycle, Key: id}
	}
	delete(tx.state.cycles, id)
	tx.recordChange(domain.Change{Entity: domain.EntityBreedingCycle, Action: domain.ActionDelete, Before: cloneCycle(current)})
	return nil
}

// CreateGestation stores a new gestation record.
func (tx *transaction) CreateGestation(g domain.Gestation) (domain.Gestation, error) {
	if g.ID == "" {
		g.ID = tx.store.newID()
	}
	if _, exists := tx.state.gestations[g.ID]; exists {
		return domain.Gestation{}, domain.DuplicateKeyError{Entity: domain.EntityGestation, Key: g.ID}
	}
	g.CreatedAt = tx.now
	g.UpdatedAt = tx.now
	tx.state.gestations[g.ID] = g
	tx.recordChange(domain.Change{Entity: domain.EntityGestation, Action: domain.ActionCreate, After: g})
	return g, nil
}

// UpdateGestation mutates an existing gestation record.
func (tx *transaction) UpdateGestation(id string, mutator func(*domain.Gestation) error) (domain.Gestation, error) {
	current, ok := tx.state.gestations[id]
	if !ok {
		return domain.Gestation{}, domain.NotFoundError{Entity: domain.EntityGestation, Key: id}
	}
	before := current
	if err := mutator(&current); err != nil {
		return domain.Gestation{}, err
	}
	current.ID = id
	current.UpdatedAt = tx.now
	tx.state.gestations[id] = current
	tx.recordChange(domain.Change{Entity: domain.EntityGestation, Action: domain.ActionUpdate, Before: before, After: current})
	return current, nil
}

// CreateWeightRecord appends a weighing record.
func (tx *transaction) CreateWeightRecord(w domain.WeightRecord) (domain.WeightRecord, error) {
	if w.ID == "" {
		w.ID = tx.store.newID()
	}
	if _, exists := tx.state.weights[w.ID]; exists {
		return domain.WeightRecord{}, domain.DuplicateKeyError{Entity: domain.EntityWeightRecord, Key: w.ID}
	}
	w.CreatedAt = tx.now
	w.UpdatedAt = tx.now
	tx.state.weights[w.ID] = w
	tx.recordChange(domain.Change{Entity: domain.EntityWeightRecord, Action: domain.ActionCreate, After: w})
	return w, nil
}

// CreateHeatRecord appends a heat detection record.
func (tx *transaction) CreateHeatRecord(h domain.HeatRecord) (domain.HeatRecord, error) {
	if h.ID == "" {
		h.ID = tx.store.newID()
	}
	if _, exists := tx.state.heats[h.ID]; exists {
		return domain.HeatRecord{}, domain.DuplicateKeyError{Entity: domain.EntityHeatRecord, Key: h.ID}
	}
	h.CreatedAt = tx.now
	h.UpdatedAt = tx.now
	tx.state.heats[h.ID] = h
	tx.recordChange(domain.Change{Entity: domain.EntityHeatRecord, Action: domain.ActionCreate, After: h})
	return h, nil
}

// CreateVaccinationRecord appends a vaccine application record.
func (tx *transaction) CreateVaccinationRecord(v domain.VaccinationRecord) (domain.VaccinationRecord, error) {
	if v.ID == "" {
		v.ID = tx.store.newID()
	}
	if _, exists := tx.state.vaccinations[v.ID]; exists {
		return domain.VaccinationRecord{}, domain.DuplicateKeyError{Entity: domain.EntityVaccinationRecord, Key: v.ID}
	}
	v.CreatedAt = tx.now
	v.UpdatedAt = tx.now
	tx.state.vaccinations[v.ID] = v
	tx.recordChange(domain.Change{Entity: domain.EntityVaccinationRecord, Action: domain.ActionCreate, After: v})
	return v, nil
}

// CreateMortalityRecord appends a death record.
func (tx *transaction) CreateMortalityRecord(m domain.MortalityRecord) (domain.MortalityRecord, error) {
	if m.ID == "" {
		m.ID = tx.store.newID()
	}
	if _, exists := tx.state.mortality[m.ID]; exists {
		return domain.MortalityRecord{}, domain.DuplicateKeyError{Entity: domain.EntityMortalityRecord, Key: m.ID}
	}
	m.CreatedAt = tx.now
	m.UpdatedAt = tx.now
	tx.state.mortality[m.ID] = m
	tx.recordChange(domain.Change{Entity: domain.EntityMortalityRecord, Action: domain.ActionCreate, After: m})
	return m, nil
}

// CreateCaliperScore appends a caliper measurement record.
func (tx *transaction) CreateCaliperScore(c domain.CaliperScore) (domain.CaliperScore, error) {
	if c.ID == "" {
		c.ID = tx.store.newID()
	}
	if _, exists := tx.state.calipers[c.ID]; exists {
		return domain.CaliperScore{}, domain.DuplicateKeyError{Entity: domain.EntityCaliperScore, Key: c.ID}
	}
	c.CreatedAt = tx.now
	c.UpdatedAt = tx.now
	tx.state.calipers[c.ID] = c
	tx.recordChange(domain.Change{Entity: domain.EntityCaliperScore, Action: domain.ActionCreate, After: c})
	return c, nil
}

// CreateEmployee stores a new employee record.
func (tx *transaction) CreateEmployee(e domain.Employee) (domain.Employee, error) {
	if e.ID == "" {
		e.ID = tx.store.newID()
	}
	if _, exists := tx.state.employees[e.ID]; exists {
		return domain.Employee{}, domain.DuplicateKeyError{Entity: domain.EntityEmployee, Key: e.ID}
	}
	e.CreatedAt = tx.now
	e.UpdatedAt = tx.now
	tx.state.employees[e.ID] = e
	tx.recordChange(domain.Change{Entity: domain.EntityEmployee, Action: domain.ActionCreate, After: e})
	return e, nil
}

// UpdateEmployee mutates an existing employee record.
func (tx *transaction) UpdateEmployee(id string, mutator func(*domain.Employee) error) (domain.Employee, error) {
	current, ok := tx.state.employees[id]
	if !ok {
		return domain.Employee{}, domain.NotFoundError{Entity: domain.EntityEmployee, Key: id}
	}
	before := current
	if err := mutator(&current); err != nil {
		return domain.Employee{}, err
	}
	current.ID = id
	current.UpdatedAt = tx.now
	tx.state.employees[id] = current
	tx.recordChange(domain.Change{Entity: domain.EntityEmployee, Action: domain.ActionUpdate, Before: before, After: current})
	return current, nil
}

// CreatePen stores new pen metadata.
func (tx *transaction) CreatePen(p domain.Pen) (domain.Pen, error) {
	if p.ID == "" {
		p.ID = tx.store.newID()
	}
	if _, exists := tx.state.pens[p.ID]; exists {
		return domain.Pen{}, domain.DuplicateKeyError{Entity: domain.EntityPen, Key: p.ID}
	}
	if p.Capacity <= 0 {
		return domain.Pen{}, domain.ValidationError{Field: "capacity", Reason: "must be positive"}
	}
	p.CreatedAt = tx.now
	p.UpdatedAt = tx.now
	tx.state.pens[p.ID] = p
	tx.recordChange(domain.Change{Entity: domain.EntityPen, Action: domain.ActionCreate, After: p})
	return p, nil
}

// UpdatePen mutates an existing pen.
func (tx *transaction) UpdatePen(id string, mutator func(*domain.Pen) error) (domain.Pen, error) {
	current, ok := tx.state.pens[id]
	if !ok {
		return domain.Pen{}, domain.NotFoundError{Entity: domain.EntityPen, Key: id}
	}
	before := current
	if err := mutator(&current); err != nil {
		return domain.Pen{}, err
	}
	if current.Capacity <= 0 {
		return domain.Pen{}, domain.ValidationError{Field: "capacity", Reason: "must be positive"}
	}
	current.ID = id
	current.UpdatedAt = tx.now
	tx.state.pens[id] = current
	tx.recordChange(domain.Change{Entity: domain.EntityPen, Action: domain.ActionUpdate, Before: before, After: current})
	return current, nil
}

// CreatePenAllocation stores a new pen allocation.
func (tx *transaction) CreatePenAllocation(a domain.PenAllocation) (domain.PenAllocation, error) {
	if a.ID == "" {
		a.ID = tx.store.newID()
	}
	if _, exists := tx.state.allocations[a.ID]; exists {
		return domain.PenAllocation{}, domain.DuplicateKeyError{Entity: domain.EntityPenAllocation, Key: a.ID}
	}
	a.CreatedAt = tx.now
	a.UpdatedAt = tx.now
	tx.state.allocations[a.ID] = a
	tx.recordChange(domain.Change{Entity: domain.EntityPenAllocation, Action: domain.ActionCreate, After: a})
	return a, nil
}

// UpdatePenAllocation mutates an existing pen allocation.
func (tx *transaction) UpdatePenAllocation(id string, mutator func(*domain.PenAllocation) error) (domain.PenAllocation, error) {
	current, ok := tx.state.allocations[id]
	if !ok {
		return domain.PenAllocation{}, domain.NotFoundError{Entity: domain.EntityPenAllocation, Key: id}
	}
	before := current
	if err := mutator(&current); err != nil {
		return domain.PenAllocation{}, err
	}
	current.ID = id
	current.UpdatedAt = tx.now
	tx.state.allocations[id] = current
	tx.recordChange(domain.Change{Entity: domain.EntityPenAllocation, Action: domain.ActionUpdate, Before: before, After: current})
	return current, nil
}

// CreateMaternityStay stores a new maternity stay.
func (tx *transaction) CreateMaternityStay(m domain.MaternityStay) (domain.MaternityStay, error) {
	if m.ID == "" {
		m.ID = tx.store.newID()
	}
	if _, exists := tx.state.maternity[m.ID]; exists {
		return domain.MaternityStay{}, domain.DuplicateKeyError{Entity: domain.EntityMaternityStay, Key: m.ID}
	}
	m.CreatedAt = tx.now
	m.UpdatedAt = tx.now
	tx.state.maternity[m.ID] = m
	tx.recordChange(domain.Change{Entity: domain.EntityMaternityStay, Action: domain.ActionCreate, After: m})
	return m, nil
}

// UpdateMaternityStay mutates an existing maternity stay.
func (tx *transaction) UpdateMaternityStay(id string, mutator func(*domain.MaternityStay) error) (domain.MaternityStay, error) {
	current, ok := tx.state.maternity[id]
	if !ok {
		return domain.MaternityStay{}, domain.NotFoundError{Entity: domain.EntityMaternityStay, Key: id}
	}
	before := current
	if err := mutator(&current); err != nil {
		return domain.MaternityStay{}, err
	}
	current.ID = id
	current.UpdatedAt = tx.now
	tx.state.maternity[id] = current
	tx.recordChange(domain.Change{Entity: domain.EntityMaternityStay, Action: domain.ActionUpdate, Before: before, After: current})
	return current, nil
}

// CreateLitter stores a new litter record.
func (tx *transaction) CreateLitter(l domain.Litter) (domain.Litter, error) {
	if l.ID == "" {
		l.ID = tx.store.newID()
	}
	if _, exists := tx.state.litters[l.ID]; exists {
		return domain.Litter{}, domain.DuplicateKeyError{Entity: domain.EntityLitter, Key: l.ID}
	}
	l.CreatedAt = tx.now
	l.UpdatedAt = tx.now
	tx.state.litters[l.ID] = l
	tx.recordChange(domain.Change{Entity: domain.EntityLitter, Action: domain.ActionCreate, After: l})
	return l, nil
}

// UpdateLitter mutates an existing litter record.
func (tx *transaction) UpdateLitter(id string, mutator func(*domain.Litter) error) (domain.Litter, error) {
	current, ok := tx.state.litters[id]
	if !ok {
		return domain.Litter{}, domain.NotFoundError{Entity: domain.EntityLitter, Key: id}
	}
	before := current
	if err := mutator(&current); err != nil {
		return domain.Litter{}, err
	}
	current.ID = id
	current.UpdatedAt = tx.now
	tx.state.litters[id] = current
	tx.recordChange(domain.Change{Entity: domain.EntityLitter, Action: domain.ActionUpdate, Before: before, After: current})
	return current, nil
}

// CreatePiglet stores a new piglet record.
func (tx *transaction) CreatePiglet(p domain.Piglet) (domain.Piglet, error) {
	if p.ID == "" {
		p.ID = tx.store.newID()
	}
	if _, exists := tx.state.piglets[p.ID]; exists {
		return domain.Piglet{}, domain.DuplicateKeyError{Entity: domain.EntityPiglet, Key: p.ID}
	}
	p.CreatedAt = tx.now
	p.UpdatedAt = tx.now
	tx.state.piglets[p.ID] = p
	tx.recordChange(domain.Change{Entity: domain.EntityPiglet, Action: domain.ActionCreate, After: p})
	return p, nil
}

// UpdatePiglet mutates an existing piglet record.
func (tx *transaction) UpdatePiglet(id string, mutator func(*domain.Piglet) error) (domain.Piglet, error) {
	current, ok := tx.state.piglets[id]
	if !ok {
		return domain.Piglet{}, domain.NotFoundError{Entity: domain.EntityPiglet, Key: id}
	}
	before := current
	if err := mutator(&current); err != nil {
		return domain.Piglet{}, err
	}
	current.ID = id
	current.UpdatedAt = tx.now
	tx.state.piglets[id] = current
	tx.recordChange(domain.Change{Entity: domain.EntityPiglet, Action: domain.ActionUpdate, Before: before, After: current})
	return current, nil
}

// CreateGilt stores a new gilt record.
func (tx *transaction) CreateGilt(g domain.Gilt) (domain.Gilt, error) {
	if g.ID == "" {
		g.ID = tx.store.newID()
	}
	if _, exists := tx.state.gilts[g.ID]; exists {
		return domain.Gilt{}, domain.DuplicateKeyError{Entity: domain.EntityGilt, Key: g.ID}
	}
	g.CreatedAt = tx.now
	g.UpdatedAt = tx.now
	tx.state.gilts[g.ID] = g
	tx.recordChange(domain.Change{Entity: domain.EntityGilt, Action: domain.ActionCreate, After: g})
	return g, nil
}

// UpdateGilt mutates an existing gilt record.
func (tx *transaction) UpdateGilt(id string, mutator func(*domain.Gilt) error) (domain.Gilt, error) {
	current, ok := tx.state.gilts[id]
	if !ok {
		return domain.Gilt{}, domain.NotFoundError{Entity: domain.EntityGilt, Key: id}
	}
	before := current
	if err := mutator(&current); err != nil {
		return domain.Gilt{}, err
	}
	current.ID = id
	current.UpdatedAt = tx.now
	tx.state.gilts[id] = current
	tx.recordChange(domain.Change{Entity: domain.EntityGilt, Action: domain.ActionUpdate, Before: before, After: current})
	return current, nil
}

// CreateGiltEvaluation appends a gilt evaluation record.
func (tx *transaction) CreateGiltEvaluation(e domain.GiltEvaluation) (domain.GiltEvaluation, error) {
	if e.ID == "" {
		e.ID = tx.store.newID()
	}
	if _, exists := tx.state.evaluations[e.ID]; exists {
		return domain.GiltEvaluation{}, domain.DuplicateKeyError{Entity: domain.EntityGiltEvaluation, Key: e.ID}
	}
	e.CreatedAt = tx.now
	e.UpdatedAt = tx.now
	tx.state.evaluations[e.ID] = e
	tx.recordChange(domain.Change{Entity: domain.EntityGiltEvaluation, Action: domain.ActionCreate, After: e})
	return e, nil
}

// CreateGiltDiscard appends a gilt discard record.
func (tx *transaction) CreateGiltDiscard(d domain.GiltDiscard) (domain.GiltDiscard, error) {
	if d.ID == "" {
		d.ID = tx.store.newID()
	}
	if _, exists := tx.state.discards[d.ID]; exists {
		return domain.GiltDiscard{}, domain.DuplicateKeyError{Entity: domain.EntityGiltDiscard, Key: d.ID}
	}
	d.CreatedAt = tx.now
	d.UpdatedAt = tx.now
	tx.state.discards[d.ID] = cloneDiscard(d)
	tx.recordChange(domain.Change{Entity: domain.EntityGiltDiscard, Action: domain.ActionCreate, After: cloneDiscard(d)})
	return cloneDiscard(d), nil
}
