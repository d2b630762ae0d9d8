package csvdir

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = time.RFC3339
)

// SchemaError reports a table file that disagrees with its declared schema.
type SchemaError struct {
	Table  string
	Column string
	Reason string
}

func (e SchemaError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("table %s: %s", e.Table, e.Reason)
	}
	return fmt.Sprintf("table %s, column %s: %s", e.Table, e.Column, e.Reason)
}

// record is one decoded CSV row, keyed by declared column name. The typed
// getters surface SchemaErrors carrying table and column context.
type record struct {
	table  string
	values map[string]string
}

func (r record) str(col string) string {
	return r.values[col]
}

func (r record) optStr(col string) *string {
	v := r.values[col]
	if v == "" {
		return nil
	}
	return &v
}

func (r record) date(col string) (time.Time, error) {
	v := r.values[col]
	if v == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return time.Time{}, SchemaError{Table: r.table, Column: col, Reason: fmt.Sprintf("invalid date %q", v)}
	}
	return t, nil
}

func (r record) optDate(col string) (*time.Time, error) {
	if r.values[col] == "" {
		return nil, nil
	}
	t, err := r.date(col)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r record) dateTime(col string) (time.Time, error) {
	v := r.values[col]
	if v == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dateTimeLayout, v)
	if err != nil {
		return time.Time{}, SchemaError{Table: r.table, Column: col, Reason: fmt.Sprintf("invalid timestamp %q", v)}
	}
	return t, nil
}

func (r record) optDateTime(col string) (*time.Time, error) {
	if r.values[col] == "" {
		return nil, nil
	}
	t, err := r.dateTime(col)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r record) intval(col string) (int, error) {
	v := r.values[col]
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, SchemaError{Table: r.table, Column: col, Reason: fmt.Sprintf("invalid integer %q", v)}
	}
	return n, nil
}

func (r record) optInt(col string) (*int, error) {
	if r.values[col] == "" {
		return nil, nil
	}
	n, err := r.intval(col)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r record) floatval(col string) (float64, error) {
	v := r.values[col]
	if v == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, SchemaError{Table: r.table, Column: col, Reason: fmt.Sprintf("invalid decimal %q", v)}
	}
	return f, nil
}

func (r record) optFloat(col string) (*float64, error) {
	if r.values[col] == "" {
		return nil, nil
	}
	f, err := r.floatval(col)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r record) boolval(col string) bool {
	switch strings.ToLower(r.values[col]) {
	case "true", "1", "sim":
		return true
	default:
		return false
	}
}

func (r record) list(col string) []string {
	v := r.values[col]
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func fmtDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

func fmtOptDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return fmtDate(*t)
}

func fmtDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateTimeLayout)
}

func fmtOptDateTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return fmtDateTime(*t)
}

func fmtOptStr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func fmtInt(n int) string {
	return strconv.Itoa(n)
}

func fmtOptInt(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}

func fmtFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func fmtOptFloat(f *float64) string {
	if f == nil {
		return ""
	}
	return fmtFloat(*f)
}

func fmtBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

func fmtList(values []string) string {
	return strings.Join(values, ",")
}
