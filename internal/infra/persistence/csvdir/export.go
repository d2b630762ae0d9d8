package csvdir

import (
	"suinocore/internal/infra/persistence/memory"
)

// TableNames returns the table names in declaration order.
func TableNames() []string {
	all := tables()
	names := make([]string, len(all))
	for i, t := range all {
		names[i] = t.name
	}
	return names
}

// Render returns the column header and encoded data rows for one table,
// rows ordered by record ID. Used by the export adapter to build artifacts
// in the same column vocabulary as the data directory files.
func Render(name string, snap memory.Snapshot) ([]string, [][]string, error) {
	for _, t := range tables() {
		if t.name == name {
			return t.columns, t.encode(snap), nil
		}
	}
	return nil, nil, SchemaError{Table: name, Reason: "unknown table"}
}
