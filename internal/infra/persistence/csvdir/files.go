package csvdir

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"suinocore/internal/infra/persistence/memory"
	"suinocore/pkg/domain"
)

// readTable loads one table file into the snapshot. A missing file is an
// empty table. The header must match the declared column set exactly.
func readTable(dir string, t table, snap *memory.Snapshot) error {
	path := filepath.Join(dir, t.fileName())
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return domain.StorageError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = len(t.columns)
	rows, err := reader.ReadAll()
	if err != nil {
		return domain.StorageError{Op: "read", Path: path, Err: err}
	}
	if len(rows) == 0 {
		return nil
	}
	if err := matchHeader(t, rows[0]); err != nil {
		return err
	}
	for _, row := range rows[1:] {
		rec := record{table: t.name, values: make(map[string]string, len(t.columns))}
		for i, col := range t.columns {
			rec.values[col] = row[i]
		}
		if err := t.decode(rec, snap); err != nil {
			return err
		}
	}
	return nil
}

func matchHeader(t table, header []string) error {
	if len(header) != len(t.columns) {
		return SchemaError{Table: t.name, Reason: fmt.Sprintf("header has %d columns, schema declares %d", len(header), len(t.columns))}
	}
	for i, col := range t.columns {
		if header[i] != col {
			return SchemaError{Table: t.name, Column: col, Reason: fmt.Sprintf("header position %d holds %q", i, header[i])}
		}
	}
	return nil
}

// writeTable rewrites one table file through a temp file in the same
// directory followed by a rename, so readers never see a partial file.
func writeTable(dir string, t table, snap memory.Snapshot) error {
	path := filepath.Join(dir, t.fileName())
	tmp, err := os.CreateTemp(dir, t.name+"-*.tmp")
	if err != nil {
		return domain.StorageError{Op: "create", Path: path, Err: err}
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	writer := csv.NewWriter(tmp)
	if err := writer.Write(t.columns); err != nil {
		tmp.Close()
		return domain.StorageError{Op: "write", Path: path, Err: err}
	}
	for _, row := range t.encode(snap) {
		if err := writer.Write(row); err != nil {
			tmp.Close()
			return domain.StorageError{Op: "write", Path: path, Err: err}
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		tmp.Close()
		return domain.StorageError{Op: "write", Path: path, Err: err}
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return domain.StorageError{Op: "sync", Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return domain.StorageError{Op: "close", Path: path, Err: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		return domain.StorageError{Op: "rename", Path: path, Err: err}
	}
	return nil
}

func loadSnapshot(dir string) (memory.Snapshot, error) {
	snap := emptySnapshot()
	for _, t := range tables() {
		if err := readTable(dir, t, &snap); err != nil {
			return memory.Snapshot{}, err
		}
	}
	return snap, nil
}

func persistSnapshot(dir string, snap memory.Snapshot) error {
	for _, t := range tables() {
		if err := writeTable(dir, t, snap); err != nil {
			return err
		}
	}
	return nil
}
