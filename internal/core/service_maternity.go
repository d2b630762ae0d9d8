package core

import (
	"context"
	"fmt"
	"math"
	"time"

	"suinocore/pkg/domain"
)

// MaternityEntry moves a sow into a maternity pen. The maternity stay, the
// pen allocation and the sow's category change to "Matriz Lactante" commit
// together or not at all.
func (s *Service) MaternityEntry(ctx context.Context, sowID, penID string, entryDate time.Time, observation string) (MaternityStay, Result, error) {
	var created MaternityStay
	res, err := s.run(ctx, "maternity_entry", func(tx domain.Transaction) error {
		snapshot := tx.Snapshot()
		sow, ok := snapshot.FindAnimal(sowID)
		if !ok {
			return domain.NotFoundError{Entity: domain.EntityAnimal, Key: sowID}
		}
		if sow.Sex != domain.SexFemale {
			return domain.ValidationError{Field: "animal_id", Reason: "maternity entry requires a female"}
		}
		for _, stay := range snapshot.ListMaternityStays() {
			if stay.AnimalID == sowID && stay.Open() {
				return domain.StateError{Entity: domain.EntityMaternityStay, ID: stay.ID, Reason: "animal already in maternity"}
			}
		}

		if _, err := allocateInTx(tx, sowID, penID, entryDate, observation); err != nil {
			return err
		}
		if _, err := tx.UpdateAnimal(sowID, func(a *Animal) error {
			a.Category = domain.CategoryLactatingSow
			return nil
		}); err != nil {
			return err
		}
		var err error
		created, err = tx.CreateMaternityStay(MaternityStay{
			AnimalID:    sowID,
			PenID:       penID,
			EntryDate:   entryDate,
			Status:      domain.MaternityActive,
			Observation: observation,
		})
		return err
	})
	return created, res, err
}

// ParturitionParams carries the outcome of a farrowing.
type ParturitionParams struct {
	BirthDate     time.Time
	TotalBorn     int
	BornAlive     int
	Stillborn     int
	Mummified     int
	TotalWeightKg float64
	Observation   string
}

// RegisterParturition records the farrowing of an open maternity stay and
// creates the stay's single litter. A second call for the same stay fails.
func (s *Service) RegisterParturition(ctx context.Context, maternityID string, params ParturitionParams) (Litter, Result, error) {
	var created Litter
	res, err := s.run(ctx, "register_parturition", func(tx domain.Transaction) error {
		snapshot := tx.Snapshot()
		stay, ok := snapshot.FindMaternityStay(maternityID)
		if !ok {
			return domain.NotFoundError{Entity: domain.EntityMaternityStay, Key: maternityID}
		}
		if !stay.Open() {
			return domain.StateError{Entity: domain.EntityMaternityStay, ID: maternityID, Reason: "stay already closed"}
		}
		if stay.BirthDate != nil {
			return domain.StateError{Entity: domain.EntityMaternityStay, ID: maternityID, Reason: "litter already exists"}
		}
		for _, litter := range snapshot.ListLitters() {
			if litter.MaternityID == maternityID {
				return domain.StateError{Entity: domain.EntityLitter, ID: litter.ID, Reason: "litter already exists"}
			}
		}
		if params.BirthDate.Before(stay.EntryDate) {
			return domain.ValidationError{Field: "birth_date", Reason: "before maternity entry"}
		}
		if params.TotalBorn < 0 || params.BornAlive < 0 || params.Stillborn < 0 || params.Mummified < 0 {
			return domain.ValidationError{Field: "counts", Reason: "must be non-negative"}
		}
		if params.BornAlive+params.Stillborn+params.Mummified != params.TotalBorn {
			return domain.ValidationError{Field: "total_born", Reason: "alive + stillborn + mummified must equal total born"}
		}

		birthDate := params.BirthDate
		if _, err := tx.UpdateMaternityStay(maternityID, func(m *MaternityStay) error {
			m.BirthDate = &birthDate
			return nil
		}); err != nil {
			return err
		}

		avg := 0.0
		if params.BornAlive > 0 {
			avg = params.TotalWeightKg / float64(params.BornAlive)
		}
		var err error
		created, err = tx.CreateLitter(Litter{
			MaternityID:   maternityID,
			AnimalID:      stay.AnimalID,
			BirthDate:     params.BirthDate,
			TotalBorn:     params.TotalBorn,
			BornAlive:     params.BornAlive,
			Stillborn:     params.Stillborn,
			Mummified:     params.Mummified,
			TotalWeightKg: params.TotalWeightKg,
			AvgWeightKg:   avg,
			AdjustedSize:  params.BornAlive,
			Observation:   params.Observation,
		})
		return err
	})
	return created, res, err
}

// RegisterPiglet appends one piglet to a litter. The identification must be
// unique among all piglets.
func (s *Service) RegisterPiglet(ctx context.Context, piglet Piglet) (Piglet, Result, error) {
	var created Piglet
	res, err := s.run(ctx, "register_piglet", func(tx domain.Transaction) error {
		snapshot := tx.Snapshot()
		litter, ok := snapshot.FindLitter(piglet.LitterID)
		if !ok {
			return domain.NotFoundError{Entity: domain.EntityLitter, Key: piglet.LitterID}
		}
		if piglet.Identification == "" {
			return domain.ValidationError{Field: "identification", Reason: "required"}
		}
		if piglet.BirthWeightKg <= 0 {
			return domain.ValidationError{Field: "birth_weight_kg", Reason: "must be positive"}
		}
		natives := 0
		for _, existing := range snapshot.ListPiglets() {
			if existing.Identification == piglet.Identification {
				return domain.DuplicateKeyError{Entity: domain.EntityPiglet, Key: piglet.Identification}
			}
			if existing.LitterID == piglet.LitterID && existing.FosterDamID == nil {
				natives++
			}
		}
		if piglet.FosterDamID == nil && natives >= litter.BornAlive {
			return domain.StateError{Entity: domain.EntityLitter, ID: litter.ID, Reason: "litter already holds all live-born piglets"}
		}
		if piglet.BirthDate.IsZero() {
			piglet.BirthDate = litter.BirthDate
		}
		if piglet.DamID == "" {
			piglet.DamID = litter.AnimalID
		}
		if piglet.Status == "" {
			piglet.Status = domain.PigletAlive
		}
		if piglet.StatusDate.IsZero() {
			piglet.StatusDate = piglet.BirthDate
		}
		var err error
		created, err = tx.CreatePiglet(piglet)
		return err
	})
	return created, res, err
}

// PigletBatchParams drives the batch creation of a litter's piglets.
type PigletBatchParams struct {
	Count              int
	IDPrefix           string
	StartNumber        int
	MaleFraction       float64
	MeanWeightKg       float64
	WeightVariationPct float64
	BirthDate          time.Time
}

// minBirthWeightKg floors sampled batch weights.
const minBirthWeightKg = 0.3

// RegisterPigletsBatch creates Count piglets with sequential identifications,
// weights sampled around the mean, and sexes shuffled to honour the requested
// male fraction. The whole batch is validated before any piglet is written;
// either all are added or none.
func (s *Service) RegisterPigletsBatch(ctx context.Context, litterID string, params PigletBatchParams) ([]Piglet, Result, error) {
	var createdBatch []Piglet
	res, err := s.run(ctx, "register_piglets_batch", func(tx domain.Transaction) error {
		createdBatch = nil
		snapshot := tx.Snapshot()
		litter, ok := snapshot.FindLitter(litterID)
		if !ok {
			return domain.NotFoundError{Entity: domain.EntityLitter, Key: litterID}
		}
		if params.Count <= 0 {
			return domain.ValidationError{Field: "count", Reason: "must be positive"}
		}
		if params.MeanWeightKg <= 0 {
			return domain.ValidationError{Field: "mean_weight_kg", Reason: "must be positive"}
		}
		if params.WeightVariationPct < 0 || params.WeightVariationPct >= 100 {
			return domain.ValidationError{Field: "weight_variation_pct", Reason: "must be in [0, 100)"}
		}
		if params.MaleFraction < 0 || params.MaleFraction > 1 {
			return domain.ValidationError{Field: "male_fraction", Reason: "must be in [0, 1]"}
		}

		ids := make([]string, params.Count)
		for i := range ids {
			ids[i] = fmt.Sprintf("%s%d", params.IDPrefix, params.StartNumber+i)
		}
		taken := make(map[string]struct{})
		natives := 0
		for _, existing := range snapshot.ListPiglets() {
			taken[existing.Identification] = struct{}{}
			if existing.LitterID == litterID && existing.FosterDamID == nil {
				natives++
			}
		}
		for _, id := range ids {
			if _, dup := taken[id]; dup {
				return domain.DuplicateKeyError{Entity: domain.EntityPiglet, Key: id}
			}
		}
		if natives+params.Count > litter.BornAlive {
			return domain.StateError{Entity: domain.EntityLitter, ID: litter.ID, Reason: "batch exceeds live-born count"}
		}

		birthDate := params.BirthDate
		if birthDate.IsZero() {
			birthDate = litter.BirthDate
		}

		maleCount := int(math.Round(float64(params.Count) * params.MaleFraction))
		sexes := make([]domain.Sex, params.Count)
		for i := range sexes {
			if i < maleCount {
				sexes[i] = domain.SexMale
			} else {
				sexes[i] = domain.SexFemale
			}
		}
		s.shuffle(len(sexes), func(i, j int) { sexes[i], sexes[j] = sexes[j], sexes[i] })

		spread := params.WeightVariationPct / 100
		for i := 0; i < params.Count; i++ {
			weight := params.MeanWeightKg * (1 + s.float64InRange(-spread, spread))
			if weight < minBirthWeightKg {
				weight = minBirthWeightKg
			}
			piglet, err := tx.CreatePiglet(Piglet{
				LitterID:       litterID,
				DamID:          litter.AnimalID,
				Identification: ids[i],
				Sex:            sexes[i],
				BirthDate:      birthDate,
				BirthWeightKg:  weight,
				Status:         domain.PigletAlive,
				StatusDate:     birthDate,
			})
			if err != nil {
				return err
			}
			createdBatch = append(createdBatch, piglet)
		}
		return nil
	})
	if err != nil {
		return nil, res, err
	}
	return createdBatch, res, err
}

// UpdatePigletStatus transitions a piglet's status, stamps the status date,
// and appends a dated audit note to the observation field.
func (s *Service) UpdatePigletStatus(ctx context.Context, pigletID string, newStatus domain.PigletStatus, date time.Time, cause, note string) (Piglet, Result, error) {
	var updated Piglet
	res, err := s.run(ctx, "update_piglet_status", func(tx domain.Transaction) error {
		piglet, ok := tx.Snapshot().FindPiglet(pigletID)
		if !ok {
			return domain.NotFoundError{Entity: domain.EntityPiglet, Key: pigletID}
		}
		if piglet.Status == domain.PigletDead {
			return domain.StateError{Entity: domain.EntityPiglet, ID: pigletID, Reason: "piglet status is terminal"}
		}
		audit := fmt.Sprintf("[%s] Status: %s → %s", date.Format("2006-01-02"), piglet.Status, newStatus)
		if note != "" {
			audit += ". " + note
		}
		var err error
		updated, err = tx.UpdatePiglet(pigletID, func(p *Piglet) error {
			p.Status = newStatus
			p.StatusDate = date
			if newStatus == domain.PigletDead && cause != "" {
				p.DeathCause = &cause
			}
			if p.Observation != "" {
				p.Observation += "\n"
			}
			p.Observation += audit
			return nil
		})
		return err
	})
	return updated, res, err
}

// MaternityExit closes an open maternity stay. The sow's pen allocation is
// released with reason "Saída Maternidade" and her category returns to
// "Matriz" in the same transaction.
func (s *Service) MaternityExit(ctx context.Context, maternityID string, exitDate time.Time) (MaternityStay, Result, error) {
	var updated MaternityStay
	res, err := s.run(ctx, "maternity_exit", func(tx domain.Transaction) error {
		stay, ok := tx.Snapshot().FindMaternityStay(maternityID)
		if !ok {
			return domain.NotFoundError{Entity: domain.EntityMaternityStay, Key: maternityID}
		}
		if !stay.Open() {
			return domain.StateError{Entity: domain.EntityMaternityStay, ID: maternityID, Reason: "stay already closed"}
		}
		if exitDate.Before(stay.EntryDate) {
			return domain.ValidationError{Field: "exit_date", Reason: "before entry date"}
		}

		for _, alloc := range tx.Snapshot().ListPenAllocations() {
			if alloc.AnimalID != stay.AnimalID || alloc.PenID != stay.PenID || !alloc.Open() {
				continue
			}
			if _, err := releaseInTx(tx, alloc.ID, exitDate, "Saída Maternidade", ""); err != nil {
				return err
			}
		}
		if _, err := tx.UpdateAnimal(stay.AnimalID, func(a *Animal) error {
			if a.Category == domain.CategoryLactatingSow {
				a.Category = domain.CategorySow
			}
			return nil
		}); err != nil {
			return err
		}
		var err error
		updated, err = tx.UpdateMaternityStay(maternityID, func(m *MaternityStay) error {
			m.ExitDate = &exitDate
			m.Status = domain.MaternityClosed
			return nil
		})
		return err
	})
	return updated, res, err
}
