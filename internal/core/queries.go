package core

import (
	"context"
	"time"

	"suinocore/pkg/domain"
)

// daysBetween returns the whole calendar days from a to b.
func daysBetween(a, b time.Time) int {
	a = time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	b = time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

// AgeDays computes an age in whole days at the reference date, clamped to
// zero for future birth dates.
func AgeDays(birthDate, reference time.Time) int {
	age := daysBetween(birthDate, reference)
	if age < 0 {
		return 0
	}
	return age
}

// AnimalAgeDays resolves an animal's age at the reference date from its
// recorded birth date.
func (s *Service) AnimalAgeDays(ctx context.Context, animalID string, reference time.Time) (int, error) {
	age := 0
	err := s.view(ctx, "animal_age_days", func(view domain.RuleView) error {
		animal, ok := view.FindAnimal(animalID)
		if !ok {
			return domain.NotFoundError{Entity: domain.EntityAnimal, Key: animalID}
		}
		if animal.BirthDate == nil {
			return domain.ValidationError{Field: "birth_date", Reason: "animal has no recorded birth date"}
		}
		age = AgeDays(*animal.BirthDate, reference)
		return nil
	})
	return age, err
}

// DailyGain computes the average daily weight gain between two weighings.
// The second weighing must be strictly later than the first.
func DailyGain(firstKg float64, firstDate time.Time, secondKg float64, secondDate time.Time) (float64, error) {
	days := daysBetween(firstDate, secondDate)
	if days <= 0 {
		return 0, domain.ValidationError{Field: "record_date", Reason: "second weighing must be after the first"}
	}
	return (secondKg - firstKg) / float64(days), nil
}

// BodyConditionResult is the classification of a P2 back-fat measurement.
type BodyConditionResult struct {
	Score int
	Label string
}

// BodyCondition classifies a P2 back-fat measurement in millimetres into the
// 1-5 body condition scale. Valid inputs lie in (0, 50].
func BodyCondition(p2MM float64) (BodyConditionResult, error) {
	if p2MM <= 0 || p2MM > 50 {
		return BodyConditionResult{}, domain.ValidationError{Field: "p2_mm", Reason: "must be in (0, 50] mm"}
	}
	switch {
	case p2MM < 10:
		return BodyConditionResult{Score: 1, Label: "Muito Magra"}, nil
	case p2MM < 14:
		return BodyConditionResult{Score: 2, Label: "Magra"}, nil
	case p2MM < 20:
		return BodyConditionResult{Score: 3, Label: "Ideal"}, nil
	case p2MM <= 25:
		return BodyConditionResult{Score: 4, Label: "Gorda"}, nil
	default:
		return BodyConditionResult{Score: 5, Label: "Muito Gorda"}, nil
	}
}

// MortalityFilter narrows mortality statistics to a period or category.
type MortalityFilter struct {
	From     *time.Time
	To       *time.Time
	Category *domain.AnimalCategory
}

// MortalityStats summarises death records.
type MortalityStats struct {
	TotalDeaths int
	AvgAgeDays  float64
	ByCause     map[string]int
	ByCategory  map[string]int
	ByLocation  map[string]int
}

// MortalityStatistics aggregates the death records matching the filter.
func (s *Service) MortalityStatistics(ctx context.Context, filter MortalityFilter) (MortalityStats, error) {
	stats := MortalityStats{
		ByCause:    make(map[string]int),
		ByCategory: make(map[string]int),
		ByLocation: make(map[string]int),
	}
	err := s.view(ctx, "mortality_statistics", func(view domain.RuleView) error {
		ageSum := 0
		aged := 0
		for _, record := range view.ListMortalityRecords() {
			if filter.From != nil && record.DeathDate.Before(*filter.From) {
				continue
			}
			if filter.To != nil && record.DeathDate.After(*filter.To) {
				continue
			}
			if filter.Category != nil && record.Category != *filter.Category {
				continue
			}
			stats.TotalDeaths++
			stats.ByCause[record.Cause]++
			stats.ByCategory[string(record.Category)]++
			stats.ByLocation[record.Location]++
			if record.AgeDays != nil {
				ageSum += *record.AgeDays
				aged++
			}
		}
		if aged > 0 {
			stats.AvgAgeDays = float64(ageSum) / float64(aged)
		}
		return nil
	})
	return stats, err
}

// MaternitySow joins an open maternity stay with its sow's identification.
type MaternitySow struct {
	Stay           MaternityStay
	Identification string
	Name           *string
}

// ActiveMaternitySows lists open maternity stays with sow identification.
func (s *Service) ActiveMaternitySows(ctx context.Context) ([]MaternitySow, error) {
	var out []MaternitySow
	err := s.view(ctx, "active_maternity_sows", func(view domain.RuleView) error {
		for _, stay := range view.ListMaternityStays() {
			if !stay.Open() {
				continue
			}
			row := MaternitySow{Stay: stay}
			if animal, ok := view.FindAnimal(stay.AnimalID); ok {
				row.Identification = animal.Identification
				row.Name = animal.Name
			}
			out = append(out, row)
		}
		return nil
	})
	return out, err
}

// AvailableGilts lists gilts still in the breeding pool (status not
// Descartada).
func (s *Service) AvailableGilts(ctx context.Context) ([]Gilt, error) {
	var out []Gilt
	err := s.view(ctx, "available_gilts", func(view domain.RuleView) error {
		for _, gilt := range view.ListGilts() {
			if gilt.Status != domain.GiltDiscarded {
				out = append(out, gilt)
			}
		}
		return nil
	})
	return out, err
}

// PredictNextHeat projects the next expected heat of a female from her most
// recent detection plus the average cycle interval.
func (s *Service) PredictNextHeat(ctx context.Context, animalID string) (time.Time, error) {
	var predicted time.Time
	err := s.view(ctx, "predict_next_heat", func(view domain.RuleView) error {
		if _, ok := view.FindAnimal(animalID); !ok {
			return domain.NotFoundError{Entity: domain.EntityAnimal, Key: animalID}
		}
		var last time.Time
		found := false
		for _, record := range view.ListHeatRecords() {
			if record.AnimalID == animalID && record.DetectionDate.After(last) {
				last = record.DetectionDate
				found = true
			}
		}
		for _, cycle := range view.ListBreedingCycles() {
			if cycle.AnimalID == animalID && cycle.HeatDate.After(last) {
				last = cycle.HeatDate
				found = true
			}
		}
		if !found {
			return domain.NotFoundError{Entity: domain.EntityHeatRecord, Key: animalID}
		}
		predicted = last.AddDate(0, 0, domain.HeatCycleDays)
		return nil
	})
	return predicted, err
}

// GiltStats summarises the gilt selection pipeline.
type GiltStats struct {
	Total                int
	ByStatus             map[string]int
	Evaluated            int
	SelectionRate        float64
	DiscardReasons       map[string]int
	AvgSelectionAgeDays  float64
	AvgSelectionWeightKg float64
}

// GiltStatistics aggregates the gilt register, evaluations and discards.
func (s *Service) GiltStatistics(ctx context.Context) (GiltStats, error) {
	stats := GiltStats{
		ByStatus:       make(map[string]int),
		DiscardReasons: make(map[string]int),
	}
	err := s.view(ctx, "gilt_statistics", func(view domain.RuleView) error {
		selected := 0
		ageSum, weightSum := 0, 0.0
		withSelection := 0
		for _, gilt := range view.ListGilts() {
			stats.Total++
			stats.ByStatus[string(gilt.Status)]++
			if gilt.Status == domain.GiltSelected {
				selected++
			}
			if gilt.SelectionAgeDays != nil {
				ageSum += *gilt.SelectionAgeDays
				withSelection++
			}
			if gilt.SelectionWeightKg != nil {
				weightSum += *gilt.SelectionWeightKg
			}
		}
		stats.Evaluated = len(view.ListGiltEvaluations())
		if stats.Evaluated > 0 {
			stats.SelectionRate = float64(selected) / float64(stats.Evaluated)
		}
		if withSelection > 0 {
			stats.AvgSelectionAgeDays = float64(ageSum) / float64(withSelection)
			stats.AvgSelectionWeightKg = weightSum / float64(withSelection)
		}
		for _, discard := range view.ListGiltDiscards() {
			stats.DiscardReasons[discard.PrimaryReason]++
		}
		return nil
	})
	return stats, err
}
