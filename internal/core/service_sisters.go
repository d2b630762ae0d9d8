package core

import (
	"context"
	"fmt"
	"time"

	"suinocore/pkg/domain"
)

// sisterGroupOn collects the cycles forming the heat-sister group of a
// calendar date, keyed by animal.
func sisterGroupOn(view domain.RuleView, heatDate time.Time) map[string]BreedingCycle {
	day := heatDate.Format("2006-01-02")
	group := make(map[string]BreedingCycle)
	for _, cycle := range view.ListBreedingCycles() {
		if len(cycle.SisterIDs) > 0 && cycle.HeatDate.Format("2006-01-02") == day {
			group[cycle.AnimalID] = cycle
		}
	}
	return group
}

func validateSisterCandidate(view domain.RuleView, animalID string) error {
	animal, ok := view.FindAnimal(animalID)
	if !ok {
		return domain.NotFoundError{Entity: domain.EntityAnimal, Key: animalID}
	}
	if animal.Sex != domain.SexFemale {
		return domain.ValidationError{Field: "member_ids", Reason: "sister group members must be female"}
	}
	if animal.Category != domain.CategorySow && animal.Category != domain.CategoryGilt {
		return domain.ValidationError{Field: "member_ids", Reason: "sister group members must be Matriz or Leitoa"}
	}
	return nil
}

func sistersExcluding(memberIDs []string, self string) []string {
	out := make([]string, 0, len(memberIDs)-1)
	for _, id := range memberIDs {
		if id != self {
			out = append(out, id)
		}
	}
	return out
}

// FormSisterGroup registers a synchronised heat for two or more females. Each
// member receives a breeding cycle with its next cycle number and the mirror
// sister set. All appends commit atomically. An optional group name is folded
// into every member's observation; when absent the heat date stands in so the
// group stays traceable.
func (s *Service) FormSisterGroup(ctx context.Context, memberIDs []string, heatDate time.Time, groupName, observation string) ([]BreedingCycle, Result, error) {
	if groupName == "" {
		groupName = "grupo-" + heatDate.Format("2006-01-02")
	}
	note := fmt.Sprintf("Grupo de irmãs de cio: %s.", groupName)
	if observation != "" {
		note += " " + observation
	}
	var createdCycles []BreedingCycle
	res, err := s.run(ctx, "form_sister_group", func(tx domain.Transaction) error {
		createdCycles = nil
		snapshot := tx.Snapshot()
		if len(memberIDs) < 2 {
			return domain.ValidationError{Field: "member_ids", Reason: "a sister group needs at least 2 members"}
		}
		seen := make(map[string]struct{}, len(memberIDs))
		for _, id := range memberIDs {
			if _, dup := seen[id]; dup {
				return domain.ValidationError{Field: "member_ids", Reason: "duplicate member"}
			}
			seen[id] = struct{}{}
			if err := validateSisterCandidate(snapshot, id); err != nil {
				return err
			}
		}
		if existing := sisterGroupOn(snapshot, heatDate); len(existing) > 0 {
			for _, id := range memberIDs {
				if _, ok := existing[id]; ok {
					return domain.StateError{Entity: domain.EntityBreedingCycle, ID: id, Reason: "animal already grouped on this heat date"}
				}
			}
		}

		for _, id := range memberIDs {
			cycle, err := tx.CreateBreedingCycle(BreedingCycle{
				AnimalID:    id,
				CycleNumber: nextCycleNumber(snapshot, id),
				HeatDate:    heatDate,
				SisterIDs:   sistersExcluding(memberIDs, id),
				SisterCount: len(memberIDs) - 1,
				Status:      domain.CycleWaiting,
				Observation: note,
			})
			if err != nil {
				return err
			}
			createdCycles = append(createdCycles, cycle)
		}
		return nil
	})
	if err != nil {
		return nil, res, err
	}
	return createdCycles, res, err
}

// AddToGroup joins a new female to the sister group of a heat date, rewriting
// every existing member's sister set to include her. The group note on the
// existing cycles is carried onto her cycle.
func (s *Service) AddToGroup(ctx context.Context, heatDate time.Time, newMemberID string) (BreedingCycle, Result, error) {
	var created BreedingCycle
	res, err := s.run(ctx, "add_to_sister_group", func(tx domain.Transaction) error {
		snapshot := tx.Snapshot()
		group := sisterGroupOn(snapshot, heatDate)
		if len(group) == 0 {
			return domain.NotFoundError{Entity: domain.EntityBreedingCycle, Key: heatDate.Format("2006-01-02")}
		}
		if _, ok := group[newMemberID]; ok {
			return domain.StateError{Entity: domain.EntityBreedingCycle, ID: newMemberID, Reason: "animal already in the group"}
		}
		if err := validateSisterCandidate(snapshot, newMemberID); err != nil {
			return err
		}

		existingIDs := make([]string, 0, len(group))
		groupNote := ""
		for id, cycle := range group {
			existingIDs = append(existingIDs, id)
			if groupNote == "" {
				groupNote = cycle.Observation
			}
		}
		for _, cycle := range group {
			if _, err := tx.UpdateBreedingCycle(cycle.ID, func(c *BreedingCycle) error {
				c.SisterIDs = append(c.SisterIDs, newMemberID)
				c.SisterCount = len(c.SisterIDs)
				return nil
			}); err != nil {
				return err
			}
		}
		var err error
		created, err = tx.CreateBreedingCycle(BreedingCycle{
			AnimalID:    newMemberID,
			CycleNumber: nextCycleNumber(snapshot, newMemberID),
			HeatDate:    heatDate,
			SisterIDs:   existingIDs,
			SisterCount: len(existingIDs),
			Status:      domain.CycleWaiting,
			Observation: groupNote,
		})
		return err
	})
	return created, res, err
}

// RemoveFromGroup drops a member from the sister group of a heat date. The
// removal is forbidden when fewer than two members would remain; callers must
// delete the whole group instead.
func (s *Service) RemoveFromGroup(ctx context.Context, heatDate time.Time, memberID string) (Result, error) {
	return s.run(ctx, "remove_from_sister_group", func(tx domain.Transaction) error {
		group := sisterGroupOn(tx.Snapshot(), heatDate)
		cycle, ok := group[memberID]
		if !ok {
			return domain.NotFoundError{Entity: domain.EntityBreedingCycle, Key: memberID}
		}
		if len(group)-1 < 2 {
			return domain.StateError{Entity: domain.EntityBreedingCycle, ID: cycle.ID, Reason: "sister group would drop below 2 members"}
		}

		if err := tx.DeleteBreedingCycle(cycle.ID); err != nil {
			return err
		}
		for id, remaining := range group {
			if id == memberID {
				continue
			}
			if _, err := tx.UpdateBreedingCycle(remaining.ID, func(c *BreedingCycle) error {
				c.SisterIDs = sistersExcluding(c.SisterIDs, memberID)
				c.SisterCount = len(c.SisterIDs)
				return nil
			}); err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteGroup removes every cycle row of the sister group on a heat date.
func (s *Service) DeleteGroup(ctx context.Context, heatDate time.Time) (Result, error) {
	return s.run(ctx, "delete_sister_group", func(tx domain.Transaction) error {
		group := sisterGroupOn(tx.Snapshot(), heatDate)
		if len(group) == 0 {
			return domain.NotFoundError{Entity: domain.EntityBreedingCycle, Key: heatDate.Format("2006-01-02")}
		}
		for _, cycle := range group {
			if err := tx.DeleteBreedingCycle(cycle.ID); err != nil {
				return err
			}
		}
		return nil
	})
}
