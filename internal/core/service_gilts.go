package core

import (
	"context"
	"fmt"
	"time"

	"suinocore/pkg/domain"
)

// RegisterGilt persists a new replacement gilt candidate.
func (s *Service) RegisterGilt(ctx context.Context, gilt Gilt) (Gilt, Result, error) {
	var created Gilt
	res, err := s.run(ctx, "register_gilt", func(tx domain.Transaction) error {
		if gilt.Identification == "" {
			return domain.ValidationError{Field: "identification", Reason: "required"}
		}
		if gilt.BirthDate.IsZero() {
			return domain.ValidationError{Field: "birth_date", Reason: "required"}
		}
		for _, existing := range tx.Snapshot().ListGilts() {
			if existing.Identification == gilt.Identification {
				return domain.DuplicateKeyError{Entity: domain.EntityGilt, Key: gilt.Identification}
			}
		}
		if gilt.Status == "" {
			gilt.Status = domain.GiltRegistered
		}
		var err error
		created, err = tx.CreateGilt(gilt)
		return err
	})
	return created, res, err
}

// EvaluationParams carries one selection evaluation of a gilt.
type EvaluationParams struct {
	EvaluationDate time.Time
	Measurements   GiltMeasurements
	Recommendation domain.GiltStatus
	Reason         string
	Technician     string
	Observation    string
}

// EvaluateGilt appends an evaluation record and advances the gilt to the
// recommended status. A rejecting evaluation also creates the discard record
// with destination "Não especificado". All effects commit atomically.
func (s *Service) EvaluateGilt(ctx context.Context, giltID string, params EvaluationParams) (GiltEvaluation, Result, error) {
	var created GiltEvaluation
	res, err := s.run(ctx, "evaluate_gilt", func(tx domain.Transaction) error {
		gilt, ok := tx.Snapshot().FindGilt(giltID)
		if !ok {
			return domain.NotFoundError{Entity: domain.EntityGilt, Key: giltID}
		}
		if gilt.Status == domain.GiltDiscarded {
			return domain.StateError{Entity: domain.EntityGilt, ID: giltID, Reason: "gilt already discarded"}
		}
		if params.Recommendation != domain.GiltSelected && params.Recommendation != domain.GiltDiscarded {
			return domain.ValidationError{Field: "recommendation", Reason: "must be Selecionada or Descartada"}
		}
		evaluationDate := params.EvaluationDate
		if evaluationDate.IsZero() {
			evaluationDate = s.today()
		}
		if evaluationDate.Before(gilt.BirthDate) {
			return domain.ValidationError{Field: "evaluation_date", Reason: "before birth date"}
		}

		var err error
		created, err = tx.CreateGiltEvaluation(GiltEvaluation{
			GiltID:         giltID,
			EvaluationDate: evaluationDate,
			Measurements:   params.Measurements,
			Recommendation: params.Recommendation,
			Reason:         params.Reason,
			Technician:     params.Technician,
			Observation:    params.Observation,
		})
		if err != nil {
			return err
		}

		weight := params.Measurements.WeightKg
		age := params.Measurements.AgeDays
		if _, err := tx.UpdateGilt(giltID, func(g *Gilt) error {
			g.Status = params.Recommendation
			g.SelectionDate = &evaluationDate
			g.SelectionWeightKg = &weight
			g.SelectionAgeDays = &age
			return nil
		}); err != nil {
			return err
		}

		if params.Recommendation == domain.GiltDiscarded {
			_, err = tx.CreateGiltDiscard(GiltDiscard{
				GiltID:        giltID,
				DiscardDate:   evaluationDate,
				WeightKg:      weight,
				AgeDays:       age,
				PrimaryReason: params.Reason,
				Destination:   domain.DestinationUnspecified,
				Technician:    params.Technician,
			})
			return err
		}
		return nil
	})
	return created, res, err
}

// DiscardParams carries an explicit gilt discard.
type DiscardParams struct {
	DiscardDate      time.Time
	WeightKg         float64
	PrimaryReason    string
	SecondaryReasons []string
	Destination      domain.DiscardDestination
	SaleValue        *float64
	Technician       string
	Observation      string
}

// DiscardGilt removes a gilt from the breeding pool regardless of whether she
// was previously selected. The discard record, the status change and the
// audit note on the gilt commit atomically.
func (s *Service) DiscardGilt(ctx context.Context, giltID string, params DiscardParams) (GiltDiscard, Result, error) {
	var created GiltDiscard
	res, err := s.run(ctx, "discard_gilt", func(tx domain.Transaction) error {
		gilt, ok := tx.Snapshot().FindGilt(giltID)
		if !ok {
			return domain.NotFoundError{Entity: domain.EntityGilt, Key: giltID}
		}
		if gilt.Status == domain.GiltDiscarded {
			return domain.StateError{Entity: domain.EntityGilt, ID: giltID, Reason: "gilt already discarded"}
		}
		if params.PrimaryReason == "" {
			return domain.ValidationError{Field: "primary_reason", Reason: "required"}
		}
		discardDate := params.DiscardDate
		if discardDate.IsZero() {
			discardDate = s.today()
		}
		if discardDate.Before(gilt.BirthDate) {
			return domain.ValidationError{Field: "discard_date", Reason: "before birth date"}
		}
		destination := params.Destination
		if destination == "" {
			destination = domain.DestinationUnspecified
		}

		age := daysBetween(gilt.BirthDate, discardDate)
		var err error
		created, err = tx.CreateGiltDiscard(GiltDiscard{
			GiltID:           giltID,
			DiscardDate:      discardDate,
			WeightKg:         params.WeightKg,
			AgeDays:          age,
			PrimaryReason:    params.PrimaryReason,
			SecondaryReasons: params.SecondaryReasons,
			Destination:      destination,
			SaleValue:        params.SaleValue,
			Technician:       params.Technician,
			Observation:      params.Observation,
		})
		if err != nil {
			return err
		}

		audit := fmt.Sprintf("[%s] Descartada: %s (%s)", discardDate.Format("2006-01-02"), params.PrimaryReason, destination)
		_, err = tx.UpdateGilt(giltID, func(g *Gilt) error {
			g.Status = domain.GiltDiscarded
			if g.Observation != "" {
				g.Observation += "\n"
			}
			g.Observation += audit
			return nil
		})
		return err
	})
	return created, res, err
}
