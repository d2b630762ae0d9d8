package core

import (
	"context"
	"time"

	"suinocore/pkg/domain"
)

// DefaultCategorySectors maps animal categories to the pen sector that houses
// them. Categories without an entry match pens of any sector.
func DefaultCategorySectors() map[domain.AnimalCategory]string {
	return map[domain.AnimalCategory]string{
		domain.CategoryPiglet:       "Creche",
		domain.CategorySow:          "Gestação",
		domain.CategoryBoar:         "Reprodução",
		domain.CategoryLactatingSow: "Maternidade",
	}
}

// RegisterPen persists a new pen. The floor area is derived from the declared
// width and length when not supplied.
func (s *Service) RegisterPen(ctx context.Context, pen Pen) (Pen, Result, error) {
	var created Pen
	res, err := s.run(ctx, "register_pen", func(tx domain.Transaction) error {
		if pen.Identification == "" {
			return domain.ValidationError{Field: "identification", Reason: "required"}
		}
		if pen.Capacity < 1 {
			return domain.ValidationError{Field: "capacity", Reason: "must be at least 1"}
		}
		for _, existing := range tx.Snapshot().ListPens() {
			if existing.Identification == pen.Identification {
				return domain.DuplicateKeyError{Entity: domain.EntityPen, Key: pen.Identification}
			}
		}
		if pen.AreaM2 == 0 {
			pen.AreaM2 = pen.WidthM * pen.LengthM
		}
		var err error
		created, err = tx.CreatePen(pen)
		return err
	})
	return created, res, err
}

// Allocate places an animal in a pen, opening a new allocation row. The
// animal must not already hold an open allocation and the pen must have room.
func (s *Service) Allocate(ctx context.Context, animalID, penID string, entryDate time.Time, observation string) (PenAllocation, Result, error) {
	var created PenAllocation
	res, err := s.run(ctx, "allocate", func(tx domain.Transaction) error {
		var err error
		created, err = allocateInTx(tx, animalID, penID, entryDate, observation)
		return err
	})
	return created, res, err
}

// allocateInTx performs the allocation preconditions and write. It is shared
// by Allocate, Transfer and MaternityEntry so every entry path enforces the
// same occupancy accounting.
func allocateInTx(tx domain.Transaction, animalID, penID string, entryDate time.Time, observation string) (PenAllocation, error) {
	snapshot := tx.Snapshot()
	if _, ok := snapshot.FindAnimal(animalID); !ok {
		return PenAllocation{}, domain.NotFoundError{Entity: domain.EntityAnimal, Key: animalID}
	}
	pen, ok := snapshot.FindPen(penID)
	if !ok {
		return PenAllocation{}, domain.NotFoundError{Entity: domain.EntityPen, Key: penID}
	}
	if open, exists := openAllocationFor(snapshot, animalID); exists {
		return PenAllocation{}, domain.StateError{Entity: domain.EntityPenAllocation, ID: open.ID, Reason: "animal already allocated"}
	}
	if openCountFor(snapshot, penID) >= pen.Capacity {
		return PenAllocation{}, domain.StateError{Entity: domain.EntityPen, ID: penID, Reason: "pen is at capacity"}
	}
	return tx.CreatePenAllocation(PenAllocation{
		PenID:       penID,
		AnimalID:    animalID,
		EntryDate:   entryDate,
		Status:      domain.AllocationActive,
		Observation: observation,
	})
}

// Release closes an open allocation. Releasing an already closed allocation
// fails with a StateError rather than succeeding silently.
func (s *Service) Release(ctx context.Context, allocationID string, exitDate time.Time, reason, observation string) (PenAllocation, Result, error) {
	var updated PenAllocation
	res, err := s.run(ctx, "release", func(tx domain.Transaction) error {
		var err error
		updated, err = releaseInTx(tx, allocationID, exitDate, reason, observation)
		return err
	})
	return updated, res, err
}

func releaseInTx(tx domain.Transaction, allocationID string, exitDate time.Time, reason, observation string) (PenAllocation, error) {
	alloc, ok := tx.Snapshot().FindPenAllocation(allocationID)
	if !ok {
		return PenAllocation{}, domain.NotFoundError{Entity: domain.EntityPenAllocation, Key: allocationID}
	}
	if !alloc.Open() {
		return PenAllocation{}, domain.StateError{Entity: domain.EntityPenAllocation, ID: allocationID, Reason: "allocation already closed"}
	}
	if exitDate.Before(alloc.EntryDate) {
		return PenAllocation{}, domain.ValidationError{Field: "exit_date", Reason: "before entry date"}
	}
	return tx.UpdatePenAllocation(allocationID, func(a *PenAllocation) error {
		a.ExitDate = &exitDate
		if reason != "" {
			a.ExitReason = &reason
		}
		a.Status = domain.AllocationInactive
		if observation != "" {
			if a.Observation != "" {
				a.Observation += "\n"
			}
			a.Observation += observation
		}
		return nil
	})
}

// Transfer atomically closes an allocation and opens a new one in another
// pen. Either both mutations commit or neither is persisted.
func (s *Service) Transfer(ctx context.Context, allocationID, newPenID string, date time.Time, observation string) (PenAllocation, Result, error) {
	var created PenAllocation
	res, err := s.run(ctx, "transfer", func(tx domain.Transaction) error {
		closed, err := releaseInTx(tx, allocationID, date, "Transferência", "")
		if err != nil {
			return err
		}
		created, err = allocateInTx(tx, closed.AnimalID, newPenID, date, observation)
		return err
	})
	return created, res, err
}

// CurrentOccupancy counts the open allocations of a pen.
func (s *Service) CurrentOccupancy(ctx context.Context, penID string) (int, error) {
	count := 0
	err := s.view(ctx, "current_occupancy", func(view domain.RuleView) error {
		if _, ok := view.FindPen(penID); !ok {
			return domain.NotFoundError{Entity: domain.EntityPen, Key: penID}
		}
		count = openCountFor(view, penID)
		return nil
	})
	return count, err
}

// AvailablePens lists pens with free capacity. When a category is supplied
// and it maps to a sector, only pens of that sector are returned.
func (s *Service) AvailablePens(ctx context.Context, category *domain.AnimalCategory) ([]Pen, error) {
	var out []Pen
	err := s.view(ctx, "available_pens", func(view domain.RuleView) error {
		sector := ""
		if category != nil {
			sector = s.sectors[*category]
		}
		for _, pen := range view.ListPens() {
			if sector != "" && pen.Sector != sector {
				continue
			}
			if openCountFor(view, pen.ID) < pen.Capacity {
				out = append(out, pen)
			}
		}
		return nil
	})
	return out, err
}

func openAllocationFor(view domain.RuleView, animalID string) (PenAllocation, bool) {
	for _, alloc := range view.ListPenAllocations() {
		if alloc.AnimalID == animalID && alloc.Open() {
			return alloc, true
		}
	}
	return PenAllocation{}, false
}

func openCountFor(view domain.RuleView, penID string) int {
	count := 0
	for _, alloc := range view.ListPenAllocations() {
		if alloc.PenID == penID && alloc.Open() {
			count++
		}
	}
	return count
}
