package data

import "sort"

// IDColumn is the reserved column holding a row's identifier.
const IDColumn = "_id"

type ColumnType string

const (
	Count       ColumnType = "count"
	Categorical ColumnType = "categorical"
	Real        ColumnType = "real"
	Boolean     ColumnType = "boolean"
)

func (t ColumnType) Valid() bool {
	switch t {
	case Count, Categorical, Real, Boolean:
		return true
	}
	return false
}

type Column struct {
	Type ColumnType `yaml:"type" json:"type"`
}

// Schema maps column names to their types.
type Schema map[string]Column

// Columns returns the schema's column names in sorted order.
func (s Schema) Columns() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Row holds one record. Values are strings until cleaned against a schema,
// after which they are int64, float64, bool or string. Missing values are absent keys.
type Row map[string]interface{}

func (r Row) ID() string {
	id, _ := r[IDColumn].(string)
	return id
}

func (r Row) Copy() Row {
	c := make(Row, len(r))
	for k, v := range r {
		c[k] = v
	}
	return c
}

// ValuesEqual compares two cleaned or decoded values.
// Numbers compare by value regardless of their Go type.
func ValuesEqual(a, b interface{}) bool {
	af, aNum := toFloat(a)
	bf, bNum := toFloat(b)
	if aNum || bNum {
		return aNum && bNum && af == bf
	}
	return a == b
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case float32:
		return float64(n), true
	}
	return 0, false
}
