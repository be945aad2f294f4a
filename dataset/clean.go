package dataset

import (
	"math"
	"strconv"
	"strings"

	"github.com/jbeshir/moonbird-bankdata/data"
	"github.com/pkg/errors"
)

// Clean converts every row's string values to the types given by the schema, in place.
// Columns the schema doesn't name are dropped, except _id.
func Clean(rows []data.Row, schema data.Schema) error {
	for name, column := range schema {
		if !column.Type.Valid() {
			return errors.Errorf("clean got unknown type %q for column %s", column.Type, name)
		}
	}

	for _, row := range rows {
		for name, value := range row {
			if name == data.IDColumn {
				continue
			}

			column, ok := schema[name]
			if !ok {
				delete(row, name)
				continue
			}

			s, ok := value.(string)
			if !ok {
				continue
			}

			converted, err := convert(s, column.Type)
			if err != nil {
				return errors.Wrapf(err, "clean couldn't convert column %s of row %s", name, row.ID())
			}
			row[name] = converted
		}
	}

	return nil
}

func convert(s string, t data.ColumnType) (interface{}, error) {
	s = strings.TrimSpace(s)
	switch t {
	case data.Count:
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			// Counts are sometimes exported as whole floats.
			f, ferr := strconv.ParseFloat(s, 64)
			if ferr != nil || f != math.Trunc(f) || math.Abs(f) >= math.MaxInt64 {
				return nil, errors.Errorf("invalid count %q", s)
			}
			n = int64(f)
		}
		if n < 0 {
			return nil, errors.Errorf("negative count %q", s)
		}
		return n, nil
	case data.Real:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, errors.Errorf("invalid real %q", s)
		}
		return f, nil
	case data.Boolean:
		switch strings.ToLower(s) {
		case "true", "yes", "y", "1":
			return true, nil
		case "false", "no", "n", "0":
			return false, nil
		}
		return nil, errors.Errorf("invalid boolean %q", s)
	default:
		return s, nil
	}
}
