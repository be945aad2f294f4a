package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/jbeshir/moonbird-bankdata/data"
)

type ContextMaker interface {
	MakeContext(r *http.Request) (context.Context, error)
}

type DatasetLoader interface {
	LoadRows(ctx context.Context) (training, test []data.Row, err error)
}

type TableStore interface {
	TableExists(ctx context.Context, tableID string) (bool, error)
	DeleteTable(ctx context.Context, tableID string) error
	UploadRows(ctx context.Context, tableID string, rows []data.Row, schema data.Schema) error
}

type Analyzer interface {
	CreateAnalysis(ctx context.Context, tableID, analysisID string, schema data.Schema, now time.Time) (*data.Analysis, error)
	Wait(ctx context.Context, analysis *data.Analysis) error
}

type PredictionMaker interface {
	Predict(ctx context.Context, analysis *data.Analysis, row data.Row, target string) (estimate interface{}, uncertainty float64, err error)
}

type PersistentStore interface {
	GetOpaque(ctx context.Context, kind, key string, v interface{}) error
	SetOpaque(ctx context.Context, kind, key string, v interface{}) error
}
