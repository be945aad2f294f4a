package dataset

import (
	"io"

	"github.com/jbeshir/moonbird-bankdata/data"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// BankSchema is the schema of the bank marketing dataset.
func BankSchema() data.Schema {
	return data.Schema{
		"age":         {Type: data.Count},
		"sex":         {Type: data.Categorical},
		"region":      {Type: data.Categorical},
		"income":      {Type: data.Real},
		"married":     {Type: data.Boolean},
		"children":    {Type: data.Count},
		"car":         {Type: data.Boolean},
		"save_act":    {Type: data.Boolean},
		"current_act": {Type: data.Boolean},
		"mortgage":    {Type: data.Boolean},
		"pep":         {Type: data.Boolean},
	}
}

// LoadSchema reads a schema in the form:
//
//	age:
//	  type: count
//	region:
//	  type: categorical
func LoadSchema(r io.Reader) (data.Schema, error) {
	var schema data.Schema
	if err := yaml.NewDecoder(r).Decode(&schema); err != nil {
		return nil, errors.Wrap(err, "loadSchema couldn't decode YAML")
	}
	if len(schema) == 0 {
		return nil, errors.New("loadSchema got an empty schema")
	}
	for name, column := range schema {
		if name == data.IDColumn {
			return nil, errors.Errorf("loadSchema got reserved column name %s", name)
		}
		if !column.Type.Valid() {
			return nil, errors.Errorf("loadSchema got unknown type %q for column %s", column.Type, name)
		}
	}
	return schema, nil
}
