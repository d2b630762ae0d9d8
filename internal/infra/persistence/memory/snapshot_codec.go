package memory

import (
	"encoding/json"

	"suinocore/pkg/domain"
)

// BucketCodec binds one named snapshot bucket to its JSON representation.
// The SQL-backed drivers persist each bucket as a single payload row.
type BucketCodec struct {
	Name      string
	Marshal   func(Snapshot) ([]byte, error)
	Unmarshal func([]byte, *Snapshot) error
}

func bucketOf[T any](name string, field func(*Snapshot) *map[string]T) BucketCodec {
	return BucketCodec{
		Name: name,
		Marshal: func(snap Snapshot) ([]byte, error) {
			return json.Marshal(*field(&snap))
		},
		Unmarshal: func(data []byte, snap *Snapshot) error {
			return json.Unmarshal(data, field(snap))
		},
	}
}

// Buckets enumerates every snapshot bucket with its codec.
func Buckets() []BucketCodec {
	return []BucketCodec{
		bucketOf("animals", func(s *Snapshot) *map[string]domain.Animal { return &s.Animals }),
		bucketOf("breeding_cycles", func(s *Snapshot) *map[string]domain.BreedingCycle { return &s.Cycles }),
		bucketOf("gestations", func(s *Snapshot) *map[string]domain.Gestation { return &s.Gestations }),
		bucketOf("weight_records", func(s *Snapshot) *map[string]domain.WeightRecord { return &s.Weights }),
		bucketOf("heat_records", func(s *Snapshot) *map[string]domain.HeatRecord { return &s.Heats }),
		bucketOf("vaccination_records", func(s *Snapshot) *map[string]domain.VaccinationRecord { return &s.Vaccinations }),
		bucketOf("mortality_records", func(s *Snapshot) *map[string]domain.MortalityRecord { return &s.Mortality }),
		bucketOf("employees", func(s *Snapshot) *map[string]domain.Employee { return &s.Employees }),
		bucketOf("pens", func(s *Snapshot) *map[string]domain.Pen { return &s.Pens }),
		bucketOf("pen_allocations", func(s *Snapshot) *map[string]domain.PenAllocation { return &s.Allocations }),
		bucketOf("maternity_stays", func(s *Snapshot) *map[string]domain.MaternityStay { return &s.Maternity }),
		bucketOf("litters", func(s *Snapshot) *map[string]domain.Litter { return &s.Litters }),
		bucketOf("piglets", func(s *Snapshot) *map[string]domain.Piglet { return &s.Piglets }),
		bucketOf("gilts", func(s *Snapshot) *map[string]domain.Gilt { return &s.Gilts }),
		bucketOf("gilt_evaluations", func(s *Snapshot) *map[string]domain.GiltEvaluation { return &s.Evaluations }),
		bucketOf("gilt_discards", func(s *Snapshot) *map[string]domain.GiltDiscard { return &s.Discards }),
		bucketOf("caliper_scores", func(s *Snapshot) *map[string]domain.CaliperScore { return &s.Calipers }),
	}
}
