package csvdir

import (
	"sort"

	"suinocore/internal/infra/persistence/memory"
	"suinocore/pkg/domain"
)

// table declares one CSV file: its column set in file order plus the codecs
// translating between rows and a snapshot bucket. Column names follow the
// farm's established spreadsheet vocabulary so existing files stay readable.
type table struct {
	name    string
	columns []string
	encode  func(memory.Snapshot) [][]string
	decode  func(record, *memory.Snapshot) error
}

func (t table) fileName() string { return t.name + ".csv" }

func rowsOf[T any](bucket map[string]T, encode func(T) []string) [][]string {
	ids := make([]string, 0, len(bucket))
	for id := range bucket {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	rows := make([][]string, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, encode(bucket[id]))
	}
	return rows
}

func emptySnapshot() memory.Snapshot {
	return memory.Snapshot{
		Animals:      map[string]domain.Animal{},
		Cycles:       map[string]domain.BreedingCycle{},
		Gestations:   map[string]domain.Gestation{},
		Weights:      map[string]domain.WeightRecord{},
		Heats:        map[string]domain.HeatRecord{},
		Vaccinations: map[string]domain.VaccinationRecord{},
		Mortality:    map[string]domain.MortalityRecord{},
		Employees:    map[string]domain.Employee{},
		Pens:         map[string]domain.Pen{},
		Allocations:  map[string]domain.PenAllocation{},
		Maternity:    map[string]domain.MaternityStay{},
		Litters:      map[string]domain.Litter{},
		Piglets:      map[string]domain.Piglet{},
		Gilts:        map[string]domain.Gilt{},
		Evaluations:  map[string]domain.GiltEvaluation{},
		Discards:     map[string]domain.GiltDiscard{},
		Calipers:     map[string]domain.CaliperScore{},
	}
}

func decodeBase(rec record, idCol string) (domain.Base, error) {
	id := rec.str(idCol)
	if id == "" {
		return domain.Base{}, SchemaError{Table: rec.table, Column: idCol, Reason: "missing record id"}
	}
	created, err := rec.dateTime("criado_em")
	if err != nil {
		return domain.Base{}, err
	}
	updated, err := rec.dateTime("atualizado_em")
	if err != nil {
		return domain.Base{}, err
	}
	return domain.Base{ID: id, CreatedAt: created, UpdatedAt: updated}, nil
}

func baseCells(b domain.Base) (string, string) {
	return fmtDateTime(b.CreatedAt), fmtDateTime(b.UpdatedAt)
}

func tables() []table {
	return []table{
		animalsTable(),
		cyclesTable(),
		gestationTable(),
		weightsTable(),
		heatsTable(),
		vaccinationsTable(),
		mortalityTable(),
		employeesTable(),
		pensTable(),
		allocationsTable(),
		maternityTable(),
		littersTable(),
		pigletsTable(),
		giltsTable(),
		evaluationsTable(),
		discardsTable(),
		calipersTable(),
	}
}

func animalsTable() table {
	return table{
		name: "animals",
		columns: []string{
			"id_animal", "identificacao", "brinco", "tatuagem", "nome",
			"categoria", "sexo", "raca", "origem", "data_nascimento",
			"data_cadastro", "criado_em", "atualizado_em",
		},
		encode: func(snap memory.Snapshot) [][]string {
			return rowsOf(snap.Animals, func(a domain.Animal) []string {
				created, updated := baseCells(a.Base)
				return []string{
					a.ID, a.Identification, fmtOptStr(a.EarTag), fmtOptStr(a.Tattoo), fmtOptStr(a.Name),
					string(a.Category), string(a.Sex), fmtOptStr(a.Breed), fmtOptStr(a.Origin), fmtOptDate(a.BirthDate),
					fmtDate(a.RegisteredAt), created, updated,
				}
			})
		},
		decode: func(rec record, snap *memory.Snapshot) error {
			base, err := decodeBase(rec, "id_animal")
			if err != nil {
				return err
			}
			birth, err := rec.optDate("data_nascimento")
			if err != nil {
				return err
			}
			registered, err := rec.date("data_cadastro")
			if err != nil {
				return err
			}
			snap.Animals[base.ID] = domain.Animal{
				Base:           base,
				Identification: rec.str("identificacao"),
				EarTag:         rec.optStr("brinco"),
				Tattoo:         rec.optStr("tatuagem"),
				Name:           rec.optStr("nome"),
				Category:       domain.AnimalCategory(rec.str("categoria")),
				Sex:            domain.Sex(rec.str("sexo")),
				Breed:          rec.optStr("raca"),
				Origin:         rec.optStr("origem"),
				BirthDate:      birth,
				RegisteredAt:   registered,
			}
			return nil
		},
	}
}

func cyclesTable() table {
	return table{
		name: "breeding_cycles",
		columns: []string{
			"id_ciclo", "id_animal", "numero_ciclo", "data_cio", "intensidade_cio",
			"irmas_cio", "quantidade_irmas_cio", "status", "observacao",
			"criado_em", "atualizado_em",
		},
		encode: func(snap memory.Snapshot) [][]string {
			return rowsOf(snap.Cycles, func(c domain.BreedingCycle) []string {
				created, updated := baseCells(c.Base)
				return []string{
					c.ID, c.AnimalID, fmtInt(c.CycleNumber), fmtDate(c.HeatDate), string(c.Intensity),
					fmtList(c.SisterIDs), fmtInt(c.SisterCount), string(c.Status), c.Observation,
					created, updated,
				}
			})
		},
		decode: func(rec record, snap *memory.Snapshot) error {
			base, err := decodeBase(rec, "id_ciclo")
			if err != nil {
				return err
			}
			number, err := rec.intval("numero_ciclo")
			if err != nil {
				return err
			}
			heatDate, err := rec.date("data_cio")
			if err != nil {
				return err
			}
			count, err := rec.intval("quantidade_irmas_cio")
			if err != nil {
				return err
			}
			snap.Cycles[base.ID] = domain.BreedingCycle{
				Base:        base,
				AnimalID:    rec.str("id_animal"),
				CycleNumber: number,
				HeatDate:    heatDate,
				Intensity:   domain.HeatIntensity(rec.str("intensidade_cio")),
				SisterIDs:   rec.list("irmas_cio"),
				SisterCount: count,
				Status:      domain.CycleStatus(rec.str("status")),
				Observation: rec.str("observacao"),
			}
			return nil
		},
	}
}

func gestationTable() table {
	return table{
		name: "gestation",
		columns: []string{
			"id_gestacao", "id_animal", "data_cobertura", "data_prevista_parto",
			"data_parto", "quantidade_leitoes", "status", "observacao",
			"criado_em", "atualizado_em",
		},
		encode: func(snap memory.Snapshot) [][]string {
			return rowsOf(snap.Gestations, func(g domain.Gestation) []string {
				created, updated := baseCells(g.Base)
				return []string{
					g.ID, g.AnimalID, fmtDate(g.ConceptionDate), fmtDate(g.ExpectedDate),
					fmtOptDate(g.PartumDate), fmtOptInt(g.PigletCount), string(g.Status), g.Observation,
					created, updated,
				}
			})
		},
		decode: func(rec record, snap *memory.Snapshot) error {
			base, err := decodeBase(rec, "id_gestacao")
			if err != nil {
				return err
			}
			conception, err := rec.date("data_cobertura")
			if err != nil {
				return err
			}
			expected, err := rec.date("data_prevista_parto")
			if err != nil {
				return err
			}
			partum, err := rec.optDate("data_parto")
			if err != nil {
				return err
			}
			count, err := rec.optInt("quantidade_leitoes")
			if err != nil {
				return err
			}
			snap.Gestations[base.ID] = domain.Gestation{
				Base:           base,
				AnimalID:       rec.str("id_animal"),
				ConceptionDate: conception,
				ExpectedDate:   expected,
				PartumDate:     partum,
				PigletCount:    count,
				Status:         domain.GestationStatus(rec.str("status")),
				Observation:    rec.str("observacao"),
			}
			return nil
		},
	}
}

func weightsTable() table {
	return table{
		name: "weight_records",
		columns: []string{
			"id_registro", "id_animal", "data_registro", "peso", "observacao",
			"criado_em", "atualizado_em",
		},
		encode: func(snap memory.Snapshot) [][]string {
			return rowsOf(snap.Weights, func(w domain.WeightRecord) []string {
				created, updated := baseCells(w.Base)
				return []string{
					w.ID, w.AnimalID, fmtDate(w.RecordDate), fmtFloat(w.WeightKg), w.Observation,
					created, updated,
				}
			})
		},
		decode: func(rec record, snap *memory.Snapshot) error {
			base, err := decodeBase(rec, "id_registro")
			if err != nil {
				return err
			}
			recordDate, err := rec.date("data_registro")
			if err != nil {
				return err
			}
			weight, err := rec.floatval("peso")
			if err != nil {
				return err
			}
			snap.Weights[base.ID] = domain.WeightRecord{
				Base:        base,
				AnimalID:    rec.str("id_animal"),
				RecordDate:  recordDate,
				WeightKg:    weight,
				Observation: rec.str("observacao"),
			}
			return nil
		},
	}
}

func heatsTable() table {
	return table{
		name: "heat_records",
		columns: []string{
			"id_registro", "id_matriz", "data_deteccao", "intensidade_cio",
			"comportamento", "confirmado", "responsavel", "observacao",
			"criado_em", "atualizado_em",
		},
		encode: func(snap memory.Snapshot) [][]string {
			return rowsOf(snap.Heats, func(h domain.HeatRecord) []string {
				created, updated := baseCells(h.Base)
				return []string{
					h.ID, h.AnimalID, fmtDate(h.DetectionDate), string(h.Intensity),
					h.Behavior, fmtBool(h.Confirmed), h.Responsible, h.Observation,
					created, updated,
				}
			})
		},
		decode: func(rec record, snap *memory.Snapshot) error {
			base, err := decodeBase(rec, "id_registro")
			if err != nil {
				return err
			}
			detection, err := rec.date("data_deteccao")
			if err != nil {
				return err
			}
			snap.Heats[base.ID] = domain.HeatRecord{
				Base:          base,
				AnimalID:      rec.str("id_matriz"),
				DetectionDate: detection,
				Intensity:     domain.HeatIntensity(rec.str("intensidade_cio")),
				Behavior:      rec.str("comportamento"),
				Confirmed:     rec.boolval("confirmado"),
				Responsible:   rec.str("responsavel"),
				Observation:   rec.str("observacao"),
			}
			return nil
		},
	}
}

func vaccinationsTable() table {
	return table{
		name: "vaccination_records",
		columns: []string{
			"id_vacinacao", "id_animal", "nome_vacina", "data_aplicacao",
			"dose_aplicada", "via_aplicacao", "lote_vacina", "data_proxima_dose",
			"local_aplicacao", "reacao", "responsavel", "observacao",
			"criado_em", "atualizado_em",
		},
		encode: func(snap memory.Snapshot) [][]string {
			return rowsOf(snap.Vaccinations, func(v domain.VaccinationRecord) []string {
				created, updated := baseCells(v.Base)
				return []string{
					v.ID, v.AnimalID, v.VaccineName, fmtDate(v.ApplicationDate),
					v.Dose, v.Route, v.Batch, fmtOptDate(v.NextDoseDate),
					v.Site, fmtOptStr(v.Reaction), v.Responsible, v.Observation,
					created, updated,
				}
			})
		},
		decode: func(rec record, snap *memory.Snapshot) error {
			base, err := decodeBase(rec, "id_vacinacao")
			if err != nil {
				return err
			}
			applied, err := rec.date("data_aplicacao")
			if err != nil {
				return err
			}
			nextDose, err := rec.optDate("data_proxima_dose")
			if err != nil {
				return err
			}
			snap.Vaccinations[base.ID] = domain.VaccinationRecord{
				Base:            base,
				AnimalID:        rec.str("id_animal"),
				VaccineName:     rec.str("nome_vacina"),
				ApplicationDate: applied,
				Dose:            rec.str("dose_aplicada"),
				Route:           rec.str("via_aplicacao"),
				Batch:           rec.str("lote_vacina"),
				NextDoseDate:    nextDose,
				Site:            rec.str("local_aplicacao"),
				Reaction:        rec.optStr("reacao"),
				Responsible:     rec.str("responsavel"),
				Observation:     rec.str("observacao"),
			}
			return nil
		},
	}
}

func mortalityTable() table {
	return table{
		name: "mortality_records",
		columns: []string{
			"id_morte", "id_animal", "data_morte", "causa_morte", "categoria",
			"idade_dias", "peso_morte", "local_morte", "necropsia",
			"resultado_necropsia", "medidas_preventivas", "responsavel", "observacao",
			"criado_em", "atualizado_em",
		},
		encode: func(snap memory.Snapshot) [][]string {
			return rowsOf(snap.Mortality, func(m domain.MortalityRecord) []string {
				created, updated := baseCells(m.Base)
				return []string{
					m.ID, m.AnimalID, fmtDate(m.DeathDate), m.Cause, string(m.Category),
					fmtOptInt(m.AgeDays), fmtOptFloat(m.WeightKg), m.Location, fmtBool(m.Necropsy),
					fmtOptStr(m.NecropsyResult), m.Measures, m.Responsible, m.Observation,
					created, updated,
				}
			})
		},
		decode: func(rec record, snap *memory.Snapshot) error {
			base, err := decodeBase(rec, "id_morte")
			if err != nil {
				return err
			}
			death, err := rec.date("data_morte")
			if err != nil {
				return err
			}
			age, err := rec.optInt("idade_dias")
			if err != nil {
				return err
			}
			weight, err := rec.optFloat("peso_morte")
			if err != nil {
				return err
			}
			snap.Mortality[base.ID] = domain.MortalityRecord{
				Base:           base,
				AnimalID:       rec.str("id_animal"),
				DeathDate:      death,
				Cause:          rec.str("causa_morte"),
				Category:       domain.AnimalCategory(rec.str("categoria")),
				AgeDays:        age,
				WeightKg:       weight,
				Location:       rec.str("local_morte"),
				Necropsy:       rec.boolval("necropsia"),
				NecropsyResult: rec.optStr("resultado_necropsia"),
				Measures:       rec.str("medidas_preventivas"),
				Responsible:    rec.str("responsavel"),
				Observation:    rec.str("observacao"),
			}
			return nil
		},
	}
}

func employeesTable() table {
	return table{
		name: "employees",
		columns: []string{
			"id_colaborador", "nome", "matricula", "cargo", "setor",
			"data_admissao", "status", "ultimo_acesso", "observacao",
			"criado_em", "atualizado_em",
		},
		encode: func(snap memory.Snapshot) [][]string {
			return rowsOf(snap.Employees, func(e domain.Employee) []string {
				created, updated := baseCells(e.Base)
				return []string{
					e.ID, e.Name, e.Matricula, e.Role, e.Sector,
					fmtDate(e.AdmissionDate), string(e.Status), fmtOptDateTime(e.LastAccess), e.Observation,
					created, updated,
				}
			})
		},
		decode: func(rec record, snap *memory.Snapshot) error {
			base, err := decodeBase(rec, "id_colaborador")
			if err != nil {
				return err
			}
			admission, err := rec.date("data_admissao")
			if err != nil {
				return err
			}
			lastAccess, err := rec.optDateTime("ultimo_acesso")
			if err != nil {
				return err
			}
			snap.Employees[base.ID] = domain.Employee{
				Base:          base,
				Name:          rec.str("nome"),
				Matricula:     rec.str("matricula"),
				Role:          rec.str("cargo"),
				Sector:        rec.str("setor"),
				AdmissionDate: admission,
				Status:        domain.EmployeeStatus(rec.str("status")),
				LastAccess:    lastAccess,
				Observation:   rec.str("observacao"),
			}
			return nil
		},
	}
}

func pensTable() table {
	return table{
		name: "pens",
		columns: []string{
			"id_baia", "identificacao", "setor", "capacidade", "largura",
			"comprimento", "area", "tipo_piso", "observacao",
			"criado_em", "atualizado_em",
		},
		encode: func(snap memory.Snapshot) [][]string {
			return rowsOf(snap.Pens, func(p domain.Pen) []string {
				created, updated := baseCells(p.Base)
				return []string{
					p.ID, p.Identification, p.Sector, fmtInt(p.Capacity), fmtFloat(p.WidthM),
					fmtFloat(p.LengthM), fmtFloat(p.AreaM2), p.FloorType, p.Observation,
					created, updated,
				}
			})
		},
		decode: func(rec record, snap *memory.Snapshot) error {
			base, err := decodeBase(rec, "id_baia")
			if err != nil {
				return err
			}
			capacity, err := rec.intval("capacidade")
			if err != nil {
				return err
			}
			width, err := rec.floatval("largura")
			if err != nil {
				return err
			}
			length, err := rec.floatval("comprimento")
			if err != nil {
				return err
			}
			area, err := rec.floatval("area")
			if err != nil {
				return err
			}
			snap.Pens[base.ID] = domain.Pen{
				Base:           base,
				Identification: rec.str("identificacao"),
				Sector:         rec.str("setor"),
				Capacity:       capacity,
				WidthM:         width,
				LengthM:        length,
				AreaM2:         area,
				FloorType:      rec.str("tipo_piso"),
				Observation:    rec.str("observacao"),
			}
			return nil
		},
	}
}

func allocationsTable() table {
	return table{
		name: "pen_allocations",
		columns: []string{
			"id_alocacao", "id_baia", "id_animal", "data_entrada", "data_saida",
			"motivo_saida", "status", "observacao",
			"criado_em", "atualizado_em",
		},
		encode: func(snap memory.Snapshot) [][]string {
			return rowsOf(snap.Allocations, func(a domain.PenAllocation) []string {
				created, updated := baseCells(a.Base)
				return []string{
					a.ID, a.PenID, a.AnimalID, fmtDate(a.EntryDate), fmtOptDate(a.ExitDate),
					fmtOptStr(a.ExitReason), string(a.Status), a.Observation,
					created, updated,
				}
			})
		},
		decode: func(rec record, snap *memory.Snapshot) error {
			base, err := decodeBase(rec, "id_alocacao")
			if err != nil {
				return err
			}
			entry, err := rec.date("data_entrada")
			if err != nil {
				return err
			}
			exit, err := rec.optDate("data_saida")
			if err != nil {
				return err
			}
			snap.Allocations[base.ID] = domain.PenAllocation{
				Base:        base,
				PenID:       rec.str("id_baia"),
				AnimalID:    rec.str("id_animal"),
				EntryDate:   entry,
				ExitDate:    exit,
				ExitReason:  rec.optStr("motivo_saida"),
				Status:      domain.AllocationStatus(rec.str("status")),
				Observation: rec.str("observacao"),
			}
			return nil
		},
	}
}

func maternityTable() table {
	return table{
		name: "maternity",
		columns: []string{
			"id_maternidade", "id_animal", "id_baia", "data_entrada", "data_parto",
			"data_saida", "status", "observacao",
			"criado_em", "atualizado_em",
		},
		encode: func(snap memory.Snapshot) [][]string {
			return rowsOf(snap.Maternity, func(m domain.MaternityStay) []string {
				created, updated := baseCells(m.Base)
				return []string{
					m.ID, m.AnimalID, m.PenID, fmtDate(m.EntryDate), fmtOptDate(m.BirthDate),
					fmtOptDate(m.ExitDate), string(m.Status), m.Observation,
					created, updated,
				}
			})
		},
		decode: func(rec record, snap *memory.Snapshot) error {
			base, err := decodeBase(rec, "id_maternidade")
			if err != nil {
				return err
			}
			entry, err := rec.date("data_entrada")
			if err != nil {
				return err
			}
			birth, err := rec.optDate("data_parto")
			if err != nil {
				return err
			}
			exit, err := rec.optDate("data_saida")
			if err != nil {
				return err
			}
			snap.Maternity[base.ID] = domain.MaternityStay{
				Base:        base,
				AnimalID:    rec.str("id_animal"),
				PenID:       rec.str("id_baia"),
				EntryDate:   entry,
				BirthDate:   birth,
				ExitDate:    exit,
				Status:      domain.MaternityStatus(rec.str("status")),
				Observation: rec.str("observacao"),
			}
			return nil
		},
	}
}

func littersTable() table {
	return table{
		name: "litters",
		columns: []string{
			"id_leitegada", "id_maternidade", "id_animal", "data_parto",
			"total_nascidos", "nascidos_vivos", "natimortos", "mumificados",
			"peso_total", "peso_medio", "tamanho_leitegada_ajustado", "observacao",
			"criado_em", "atualizado_em",
		},
		encode: func(snap memory.Snapshot) [][]string {
			return rowsOf(snap.Litters, func(l domain.Litter) []string {
				created, updated := baseCells(l.Base)
				return []string{
					l.ID, l.MaternityID, l.AnimalID, fmtDate(l.BirthDate),
					fmtInt(l.TotalBorn), fmtInt(l.BornAlive), fmtInt(l.Stillborn), fmtInt(l.Mummified),
					fmtFloat(l.TotalWeightKg), fmtFloat(l.AvgWeightKg), fmtInt(l.AdjustedSize), l.Observation,
					created, updated,
				}
			})
		},
		decode: func(rec record, snap *memory.Snapshot) error {
			base, err := decodeBase(rec, "id_leitegada")
			if err != nil {
				return err
			}
			birth, err := rec.date("data_parto")
			if err != nil {
				return err
			}
			totalBorn, err := rec.intval("total_nascidos")
			if err != nil {
				return err
			}
			bornAlive, err := rec.intval("nascidos_vivos")
			if err != nil {
				return err
			}
			stillborn, err := rec.intval("natimortos")
			if err != nil {
				return err
			}
			mummified, err := rec.intval("mumificados")
			if err != nil {
				return err
			}
			totalWeight, err := rec.floatval("peso_total")
			if err != nil {
				return err
			}
			avgWeight, err := rec.floatval("peso_medio")
			if err != nil {
				return err
			}
			adjusted, err := rec.intval("tamanho_leitegada_ajustado")
			if err != nil {
				return err
			}
			snap.Litters[base.ID] = domain.Litter{
				Base:          base,
				MaternityID:   rec.str("id_maternidade"),
				AnimalID:      rec.str("id_animal"),
				BirthDate:     birth,
				TotalBorn:     totalBorn,
				BornAlive:     bornAlive,
				Stillborn:     stillborn,
				Mummified:     mummified,
				TotalWeightKg: totalWeight,
				AvgWeightKg:   avgWeight,
				AdjustedSize:  adjusted,
				Observation:   rec.str("observacao"),
			}
			return nil
		},
	}
}

func pigletsTable() table {
	return table{
		name: "piglets",
		columns: []string{
			"id_leitao", "id_leitegada", "id_animal_mae", "id_animal_adotiva",
			"identificacao", "sexo", "data_nascimento", "peso_nascimento",
			"peso_atual", "status_atual", "data_status", "causa_morte", "observacao",
			"criado_em", "atualizado_em",
		},
		encode: func(snap memory.Snapshot) [][]string {
			return rowsOf(snap.Piglets, func(p domain.Piglet) []string {
				created, updated := baseCells(p.Base)
				return []string{
					p.ID, p.LitterID, p.DamID, fmtOptStr(p.FosterDamID),
					p.Identification, string(p.Sex), fmtDate(p.BirthDate), fmtFloat(p.BirthWeightKg),
					fmtOptFloat(p.CurrentWeightKg), string(p.Status), fmtDate(p.StatusDate), fmtOptStr(p.DeathCause), p.Observation,
					created, updated,
				}
			})
		},
		decode: func(rec record, snap *memory.Snapshot) error {
			base, err := decodeBase(rec, "id_leitao")
			if err != nil {
				return err
			}
			birth, err := rec.date("data_nascimento")
			if err != nil {
				return err
			}
			birthWeight, err := rec.floatval("peso_nascimento")
			if err != nil {
				return err
			}
			currentWeight, err := rec.optFloat("peso_atual")
			if err != nil {
				return err
			}
			statusDate, err := rec.date("data_status")
			if err != nil {
				return err
			}
			snap.Piglets[base.ID] = domain.Piglet{
				Base:            base,
				LitterID:        rec.str("id_leitegada"),
				DamID:           rec.str("id_animal_mae"),
				FosterDamID:     rec.optStr("id_animal_adotiva"),
				Identification:  rec.str("identificacao"),
				Sex:             domain.Sex(rec.str("sexo")),
				BirthDate:       birth,
				BirthWeightKg:   birthWeight,
				CurrentWeightKg: currentWeight,
				Status:          domain.PigletStatus(rec.str("status_atual")),
				StatusDate:      statusDate,
				DeathCause:      rec.optStr("causa_morte"),
				Observation:     rec.str("observacao"),
			}
			return nil
		},
	}
}

func giltsTable() table {
	return table{
		name: "gilts",
		columns: []string{
			"id_leitoa", "identificacao", "brinco", "tatuagem", "chip",
			"data_nascimento", "origem", "genetica", "mae", "pai",
			"data_selecao", "peso_selecao", "idade_selecao", "status",
			"data_primeiro_cio", "observacao",
			"criado_em", "atualizado_em",
		},
		encode: func(snap memory.Snapshot) [][]string {
			return rowsOf(snap.Gilts, func(g domain.Gilt) []string {
				created, updated := baseCells(g.Base)
				return []string{
					g.ID, g.Identification, fmtOptStr(g.EarTag), fmtOptStr(g.Tattoo), fmtOptStr(g.Chip),
					fmtDate(g.BirthDate), g.Origin, g.Genetics, fmtOptStr(g.DamID), fmtOptStr(g.SireID),
					fmtOptDate(g.SelectionDate), fmtOptFloat(g.SelectionWeightKg), fmtOptInt(g.SelectionAgeDays), string(g.Status),
					fmtOptDate(g.FirstHeatDate), g.Observation,
					created, updated,
				}
			})
		},
		decode: func(rec record, snap *memory.Snapshot) error {
			base, err := decodeBase(rec, "id_leitoa")
			if err != nil {
				return err
			}
			birth, err := rec.date("data_nascimento")
			if err != nil {
				return err
			}
			selectionDate, err := rec.optDate("data_selecao")
			if err != nil {
				return err
			}
			selectionWeight, err := rec.optFloat("peso_selecao")
			if err != nil {
				return err
			}
			selectionAge, err := rec.optInt("idade_selecao")
			if err != nil {
				return err
			}
			firstHeat, err := rec.optDate("data_primeiro_cio")
			if err != nil {
				return err
			}
			snap.Gilts[base.ID] = domain.Gilt{
				Base:              base,
				Identification:    rec.str("identificacao"),
				EarTag:            rec.optStr("brinco"),
				Tattoo:            rec.optStr("tatuagem"),
				Chip:              rec.optStr("chip"),
				BirthDate:         birth,
				Origin:            rec.str("origem"),
				Genetics:          rec.str("genetica"),
				DamID:             rec.optStr("mae"),
				SireID:            rec.optStr("pai"),
				SelectionDate:     selectionDate,
				SelectionWeightKg: selectionWeight,
				SelectionAgeDays:  selectionAge,
				Status:            domain.GiltStatus(rec.str("status")),
				FirstHeatDate:     firstHeat,
				Observation:       rec.str("observacao"),
			}
			return nil
		},
	}
}

func evaluationsTable() table {
	return table{
		name: "gilts_selection",
		columns: []string{
			"id_selecao", "id_leitoa", "data_selecao", "peso", "idade",
			"espessura_toucinho", "profundidade_lombo", "comprimento_corporal",
			"largura_ombros", "largura_quadril", "altura_posterior",
			"numero_tetos", "tetos_invertidos", "qualidade_aprumos", "temperamento",
			"avaliacao_visual", "escore_geral", "recomendacao", "motivo_recomendacao",
			"tecnico_responsavel", "observacao",
			"criado_em", "atualizado_em",
		},
		encode: func(snap memory.Snapshot) [][]string {
			return rowsOf(snap.Evaluations, func(e domain.GiltEvaluation) []string {
				created, updated := baseCells(e.Base)
				m := e.Measurements
				return []string{
					e.ID, e.GiltID, fmtDate(e.EvaluationDate), fmtFloat(m.WeightKg), fmtInt(m.AgeDays),
					fmtFloat(m.BackfatMM), fmtFloat(m.LoinDepthMM), fmtFloat(m.BodyLengthCM),
					fmtFloat(m.ShoulderWidthCM), fmtFloat(m.HipWidthCM), fmtFloat(m.RearHeightCM),
					fmtInt(m.TeatCount), fmtInt(m.InvertedTeats), m.LegsQuality, m.Temperament,
					m.VisualScore, fmtInt(m.OverallScore), string(e.Recommendation), e.Reason,
					e.Technician, e.Observation,
					created, updated,
				}
			})
		},
		decode: func(rec record, snap *memory.Snapshot) error {
			base, err := decodeBase(rec, "id_selecao")
			if err != nil {
				return err
			}
			evalDate, err := rec.date("data_selecao")
			if err != nil {
				return err
			}
			weight, err := rec.floatval("peso")
			if err != nil {
				return err
			}
			age, err := rec.intval("idade")
			if err != nil {
				return err
			}
			backfat, err := rec.floatval("espessura_toucinho")
			if err != nil {
				return err
			}
			loin, err := rec.floatval("profundidade_lombo")
			if err != nil {
				return err
			}
			bodyLength, err := rec.floatval("comprimento_corporal")
			if err != nil {
				return err
			}
			shoulder, err := rec.floatval("largura_ombros")
			if err != nil {
				return err
			}
			hip, err := rec.floatval("largura_quadril")
			if err != nil {
				return err
			}
			rearHeight, err := rec.floatval("altura_posterior")
			if err != nil {
				return err
			}
			teats, err := rec.intval("numero_tetos")
			if err != nil {
				return err
			}
			inverted, err := rec.intval("tetos_invertidos")
			if err != nil {
				return err
			}
			overall, err := rec.intval("escore_geral")
			if err != nil {
				return err
			}
			snap.Evaluations[base.ID] = domain.GiltEvaluation{
				Base:           base,
				GiltID:         rec.str("id_leitoa"),
				EvaluationDate: evalDate,
				Measurements: domain.GiltMeasurements{
					WeightKg:        weight,
					AgeDays:         age,
					BackfatMM:       backfat,
					LoinDepthMM:     loin,
					BodyLengthCM:    bodyLength,
					ShoulderWidthCM: shoulder,
					HipWidthCM:      hip,
					RearHeightCM:    rearHeight,
					TeatCount:       teats,
					InvertedTeats:   inverted,
					LegsQuality:     rec.str("qualidade_aprumos"),
					Temperament:     rec.str("temperamento"),
					VisualScore:     rec.str("avaliacao_visual"),
					OverallScore:    overall,
				},
				Recommendation: domain.GiltStatus(rec.str("recomendacao")),
				Reason:         rec.str("motivo_recomendacao"),
				Technician:     rec.str("tecnico_responsavel"),
				Observation:    rec.str("observacao"),
			}
			return nil
		},
	}
}

func discardsTable() table {
	return table{
		name: "gilts_discard",
		columns: []string{
			"id_descarte", "id_leitoa", "data_descarte", "peso_descarte",
			"idade_descarte", "motivo_principal", "motivos_secundarios",
			"destino", "valor_venda", "tecnico_responsavel", "observacao",
			"criado_em", "atualizado_em",
		},
		encode: func(snap memory.Snapshot) [][]string {
			return rowsOf(snap.Discards, func(d domain.GiltDiscard) []string {
				created, updated := baseCells(d.Base)
				return []string{
					d.ID, d.GiltID, fmtDate(d.DiscardDate), fmtFloat(d.WeightKg),
					fmtInt(d.AgeDays), d.PrimaryReason, fmtList(d.SecondaryReasons),
					string(d.Destination), fmtOptFloat(d.SaleValue), d.Technician, d.Observation,
					created, updated,
				}
			})
		},
		decode: func(rec record, snap *memory.Snapshot) error {
			base, err := decodeBase(rec, "id_descarte")
			if err != nil {
				return err
			}
			discardDate, err := rec.date("data_descarte")
			if err != nil {
				return err
			}
			weight, err := rec.floatval("peso_descarte")
			if err != nil {
				return err
			}
			age, err := rec.intval("idade_descarte")
			if err != nil {
				return err
			}
			saleValue, err := rec.optFloat("valor_venda")
			if err != nil {
				return err
			}
			snap.Discards[base.ID] = domain.GiltDiscard{
				Base:             base,
				GiltID:           rec.str("id_leitoa"),
				DiscardDate:      discardDate,
				WeightKg:         weight,
				AgeDays:          age,
				PrimaryReason:    rec.str("motivo_principal"),
				SecondaryReasons: rec.list("motivos_secundarios"),
				Destination:      domain.DiscardDestination(rec.str("destino")),
				SaleValue:        saleValue,
				Technician:       rec.str("tecnico_responsavel"),
				Observation:      rec.str("observacao"),
			}
			return nil
		},
	}
}

func calipersTable() table {
	return table{
		name: "caliber_scores",
		columns: []string{
			"id_score", "id_animal", "data_medicao", "medida_p1", "medida_p2",
			"medida_p3", "score_calculado", "condicao_corporal", "tecnico", "observacao",
			"criado_em", "atualizado_em",
		},
		encode: func(snap memory.Snapshot) [][]string {
			return rowsOf(snap.Calipers, func(c domain.CaliperScore) []string {
				created, updated := baseCells(c.Base)
				return []string{
					c.ID, c.AnimalID, fmtDate(c.MeasureDate), fmtFloat(c.P1MM), fmtFloat(c.P2MM),
					fmtFloat(c.P3MM), fmtInt(c.Score), c.Condition, c.Technician, c.Observation,
					created, updated,
				}
			})
		},
		decode: func(rec record, snap *memory.Snapshot) error {
			base, err := decodeBase(rec, "id_score")
			if err != nil {
				return err
			}
			measured, err := rec.date("data_medicao")
			if err != nil {
				return err
			}
			p1, err := rec.floatval("medida_p1")
			if err != nil {
				return err
			}
			p2, err := rec.floatval("medida_p2")
			if err != nil {
				return err
			}
			p3, err := rec.floatval("medida_p3")
			if err != nil {
				return err
			}
			score, err := rec.intval("score_calculado")
			if err != nil {
				return err
			}
			snap.Calipers[base.ID] = domain.CaliperScore{
				Base:        base,
				AnimalID:    rec.str("id_animal"),
				MeasureDate: measured,
				P1MM:        p1,
				P2MM:        p2,
				P3MM:        p3,
				Score:       score,
				Condition:   rec.str("condicao_corporal"),
				Technician:  rec.str("tecnico"),
				Observation: rec.str("observacao"),
			}
			return nil
		},
	}
}
