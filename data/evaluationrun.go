package data

import (
	"time"

	"github.com/jbeshir/moonbird-bankdata/evaluation"
)

// EvaluationRun is the stored result of predicting every test row once.
// Reports can be recomputed from it for any set of thresholds.
type EvaluationRun struct {
	TableID    string
	AnalysisID string
	Target     string
	Created    time.Time
	Outcomes   []evaluation.Outcome
}
