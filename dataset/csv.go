package dataset

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/jbeshir/moonbird-bankdata/data"
	"github.com/pkg/errors"
)

// ReadCSV reads rows from CSV with a header line. All values are left as strings
// and empty cells are omitted. Rows without an _id column are numbered from 0.
func ReadCSV(r io.Reader) ([]data.Row, error) {
	csvReader := csv.NewReader(r)
	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "readCSV couldn't parse input")
	}
	if len(records) == 0 {
		return nil, errors.New("readCSV got no header line")
	}

	header := records[0]
	hasID := false
	for _, name := range header {
		if name == data.IDColumn {
			hasID = true
		}
	}

	rows := make([]data.Row, 0, len(records)-1)
	for i, record := range records[1:] {
		row := make(data.Row, len(header)+1)
		for j, value := range record {
			if value == "" {
				continue
			}
			row[header[j]] = value
		}
		if !hasID {
			row[data.IDColumn] = strconv.Itoa(i)
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// WriteCSV writes cleaned rows with _id first and the schema's columns after it.
func WriteCSV(w io.Writer, rows []data.Row, schema data.Schema) error {
	columns := append([]string{data.IDColumn}, schema.Columns()...)

	csvWriter := csv.NewWriter(w)
	_ = csvWriter.Write(columns)
	for _, row := range rows {
		record := make([]string, len(columns))
		for i, c := range columns {
			record[i] = formatValue(row[c])
		}
		_ = csvWriter.Write(record)
	}
	csvWriter.Flush()
	return csvWriter.Error()
}

func formatValue(v interface{}) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return ""
}
