package controllers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/jbeshir/moonbird-bankdata/data"
	"github.com/jbeshir/moonbird-bankdata/evaluation"
)

type testDatasetLoader struct {
	LoadRowsFunc func(ctx context.Context) ([]data.Row, []data.Row, error)
}

func newTestDatasetLoader(t *testing.T) *testDatasetLoader {
	return &testDatasetLoader{
		LoadRowsFunc: func(ctx context.Context) ([]data.Row, []data.Row, error) {
			t.Error("LoadRows should not be called")
			return nil, nil, nil
		},
	}
}

func (dl *testDatasetLoader) LoadRows(ctx context.Context) ([]data.Row, []data.Row, error) {
	return dl.LoadRowsFunc(ctx)
}

type testTableStore struct {
	TableExistsFunc func(ctx context.Context, tableID string) (bool, error)
	DeleteTableFunc func(ctx context.Context, tableID string) error
	UploadRowsFunc  func(ctx context.Context, tableID string, rows []data.Row, schema data.Schema) error
}

func newTestTableStore(t *testing.T) *testTableStore {
	return &testTableStore{
		TableExistsFunc: func(ctx context.Context, tableID string) (bool, error) {
			t.Error("TableExists should not be called")
			return false, nil
		},
		DeleteTableFunc: func(ctx context.Context, tableID string) error {
			t.Error("DeleteTable should not be called")
			return nil
		},
		UploadRowsFunc: func(ctx context.Context, tableID string, rows []data.Row, schema data.Schema) error {
			t.Error("UploadRows should not be called")
			return nil
		},
	}
}

func (ts *testTableStore) TableExists(ctx context.Context, tableID string) (bool, error) {
	return ts.TableExistsFunc(ctx, tableID)
}

func (ts *testTableStore) DeleteTable(ctx context.Context, tableID string) error {
	return ts.DeleteTableFunc(ctx, tableID)
}

func (ts *testTableStore) UploadRows(ctx context.Context, tableID string, rows []data.Row, schema data.Schema) error {
	return ts.UploadRowsFunc(ctx, tableID, rows, schema)
}

type testAnalyzer struct {
	CreateAnalysisFunc func(ctx context.Context, tableID, analysisID string, schema data.Schema, now time.Time) (*data.Analysis, error)
	WaitFunc           func(ctx context.Context, analysis *data.Analysis) error
}

func newTestAnalyzer(t *testing.T) *testAnalyzer {
	return &testAnalyzer{
		CreateAnalysisFunc: func(ctx context.Context, tableID, analysisID string, schema data.Schema, now time.Time) (*data.Analysis, error) {
			t.Error("CreateAnalysis should not be called")
			return nil, nil
		},
		WaitFunc: func(ctx context.Context, analysis *data.Analysis) error {
			t.Error("Wait should not be called")
			return nil
		},
	}
}

func (a *testAnalyzer) CreateAnalysis(ctx context.Context, tableID, analysisID string, schema data.Schema, now time.Time) (*data.Analysis, error) {
	return a.CreateAnalysisFunc(ctx, tableID, analysisID, schema, now)
}

func (a *testAnalyzer) Wait(ctx context.Context, analysis *data.Analysis) error {
	return a.WaitFunc(ctx, analysis)
}

type testPredictionMaker struct {
	PredictFunc func(ctx context.Context, analysis *data.Analysis, row data.Row, target string) (interface{}, float64, error)
}

func newTestPredictionMaker(t *testing.T) *testPredictionMaker {
	return &testPredictionMaker{
		PredictFunc: func(ctx context.Context, analysis *data.Analysis, row data.Row, target string) (interface{}, float64, error) {
			t.Error("Predict should not be called")
			return nil, 0, nil
		},
	}
}

func (pm *testPredictionMaker) Predict(ctx context.Context, analysis *data.Analysis, row data.Row, target string) (interface{}, float64, error) {
	return pm.PredictFunc(ctx, analysis, row, target)
}

type testEvaluateProgress struct {
	Events []string
}

func (p *testEvaluateProgress) OnDeletingTable(tableID string) {
	p.Events = append(p.Events, "delete "+tableID)
}

func (p *testEvaluateProgress) OnUploadingTable(tableID string) {
	p.Events = append(p.Events, "upload "+tableID)
}

func (p *testEvaluateProgress) OnAnalyzing(analysisID string) {
	p.Events = append(p.Events, "analyze "+analysisID)
}

func (p *testEvaluateProgress) OnPredicting() {
	p.Events = append(p.Events, "predict")
}

type testWebIndexResponder struct {
	OnContextErrorFunc func(w http.ResponseWriter, err error)
	OnResultFunc       func(w http.ResponseWriter, r *IndexResult)
}

func newTestWebIndexResponder(t *testing.T) *testWebIndexResponder {
	return &testWebIndexResponder{
		OnContextErrorFunc: func(w http.ResponseWriter, err error) {
			t.Error("OnContextError should not be called")
		},
		OnResultFunc: func(w http.ResponseWriter, r *IndexResult) {
			t.Error("OnResult should not be called")
		},
	}
}

func (r *testWebIndexResponder) OnContextError(w http.ResponseWriter, err error) {
	r.OnContextErrorFunc(w, err)
}

func (r *testWebIndexResponder) OnResult(w http.ResponseWriter, result *IndexResult) {
	r.OnResultFunc(w, result)
}

type testWebEvaluateResponder struct {
	OnContextErrorFunc func(w http.ResponseWriter, err error)
	OnErrorFunc        func(ctx context.Context, w http.ResponseWriter, err error)
	OnSuccessFunc      func(w http.ResponseWriter, run *data.EvaluationRun, reports []evaluation.Report)
}

func newTestWebEvaluateResponder(t *testing.T) *testWebEvaluateResponder {
	return &testWebEvaluateResponder{
		OnContextErrorFunc: func(w http.ResponseWriter, err error) {
			t.Error("OnContextError should not be called")
		},
		OnErrorFunc: func(ctx context.Context, w http.ResponseWriter, err error) {
			t.Error("OnError should not be called")
		},
		OnSuccessFunc: func(w http.ResponseWriter, run *data.EvaluationRun, reports []evaluation.Report) {
			t.Error("OnSuccess should not be called")
		},
	}
}

func (r *testWebEvaluateResponder) OnContextError(w http.ResponseWriter, err error) {
	r.OnContextErrorFunc(w, err)
}

func (r *testWebEvaluateResponder) OnError(ctx context.Context, w http.ResponseWriter, err error) {
	r.OnErrorFunc(ctx, w, err)
}

func (r *testWebEvaluateResponder) OnSuccess(w http.ResponseWriter, run *data.EvaluationRun, reports []evaluation.Report) {
	r.OnSuccessFunc(w, run, reports)
}
