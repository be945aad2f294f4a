package dataset

import (
	"strings"
	"testing"

	"github.com/jbeshir/moonbird-bankdata/data"
)

func TestLoadSchema(t *testing.T) {
	t.Parallel()

	schema, err := LoadSchema(strings.NewReader("age:\n  type: count\nregion:\n  type: categorical\n"))
	if err != nil {
		t.Fatalf("Unexpected error from LoadSchema: %s", err)
	}
	if len(schema) != 2 {
		t.Errorf("Expected %d columns, got %d", 2, len(schema))
	}
	if schema["age"].Type != data.Count {
		t.Errorf("Expected age to be %s, was %s", data.Count, schema["age"].Type)
	}
}

func TestLoadSchema_Invalid(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"age:\n  type: integer\n",
		"_id:\n  type: categorical\n",
		"age: [",
	}
	for _, input := range inputs {
		if _, err := LoadSchema(strings.NewReader(input)); err == nil {
			t.Errorf("Expected error loading %q, got nil error", input)
		}
	}
}
