package controllers

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"reflect"
	"testing"

	"github.com/jbeshir/moonbird-bankdata/data"
	"github.com/jbeshir/moonbird-bankdata/evaluation"
	"github.com/jbeshir/moonbird-bankdata/testhelpers"
)

var testRun = data.EvaluationRun{
	TableID:    "bank-data-example",
	AnalysisID: "main-analysis",
	Target:     "pep",
	Outcomes: []evaluation.Outcome{
		{IsCorrect: true, Uncertainty: 0.1},
		{IsCorrect: false, Uncertainty: 0.2},
		{IsCorrect: true, Uncertainty: 0.6},
	},
}

func newIndexFixture(t *testing.T, thresholdsStr string, onResult func(result *IndexResult)) (*Index, http.HandlerFunc, *http.Request, *bool) {
	ps := testhelpers.NewPersistentStore(t)
	ps.GetOpaqueFunc = func(ctx context.Context, kind, key string, v interface{}) error {
		if kind != storeRunKind {
			t.Errorf("Reading from wrong store kind; expected %s, was %s", storeRunKind, kind)
		}
		if key != storeRunKey {
			t.Errorf("Reading from wrong store key; expected %s, was %s", storeRunKey, key)
		}

		run, valid := v.(*data.EvaluationRun)
		if !valid {
			t.Errorf("Store reading wrong type; expected *data.EvaluationRun")
		} else {
			*run = testRun
		}
		return nil
	}

	calledOnResult := false
	r := newTestWebIndexResponder(t)
	r.OnResultFunc = func(w http.ResponseWriter, result *IndexResult) {
		calledOnResult = true
		onResult(result)
	}

	cm := testhelpers.NewContextMaker(t)
	cm.MakeContextFunc = func(r *http.Request) (context.Context, error) {
		return context.Background(), nil
	}

	c := &Index{
		PersistentStore:   ps,
		DefaultThresholds: []float64{0.5, 0.1},
	}

	formValues := make(url.Values)
	formValues.Add("thresholds", thresholdsStr)
	return c, c.HandleFunc(cm, r), &http.Request{Form: formValues}, &calledOnResult
}

func TestIndex_HandleFunc_DefaultThresholds(t *testing.T) {
	t.Parallel()

	_, handler, req, calledOnResult := newIndexFixture(t, "", func(result *IndexResult) {
		if result.RunErr != nil || result.ReportsErr != nil {
			t.Errorf("Unexpected errors in result: %v, %v", result.RunErr, result.ReportsErr)
		}
		if result.Run == nil || result.Run.Target != "pep" {
			t.Errorf("Result should carry the stored run, was %+v", result.Run)
		}

		want := []evaluation.Report{
			{Threshold: 0.5, KnownCount: 2, KnownCorrectCount: 1, UnknownCount: 1},
			{Threshold: 0.1, KnownCount: 1, KnownCorrectCount: 1, UnknownCount: 2},
		}
		if !reflect.DeepEqual(result.Reports, want) {
			t.Errorf("Incorrect reports; expected %+v, was %+v", want, result.Reports)
		}
	})
	handler(nil, req)

	if !*calledOnResult {
		t.Error("Expected responder's OnResult method to be called, was not called")
	}
}

func TestIndex_HandleFunc_RequestedThresholds(t *testing.T) {
	t.Parallel()

	_, handler, req, calledOnResult := newIndexFixture(t, "0.6, 0.2", func(result *IndexResult) {
		if result.ThresholdsStr != "0.6, 0.2" {
			t.Errorf("Result ThresholdsStr should be '%s', was '%s'", "0.6, 0.2", result.ThresholdsStr)
		}

		want := []evaluation.Report{
			{Threshold: 0.6, KnownCount: 3, KnownCorrectCount: 2, UnknownCount: 0},
			{Threshold: 0.2, KnownCount: 2, KnownCorrectCount: 1, UnknownCount: 1},
		}
		if !reflect.DeepEqual(result.Reports, want) {
			t.Errorf("Incorrect reports; expected %+v, was %+v", want, result.Reports)
		}
	})
	handler(nil, req)

	if !*calledOnResult {
		t.Error("Expected responder's OnResult method to be called, was not called")
	}
}

func TestIndex_HandleFunc_JunkThresholds(t *testing.T) {
	t.Parallel()

	_, handler, req, calledOnResult := newIndexFixture(t, "bluh", func(result *IndexResult) {
		if result.Run == nil {
			t.Error("Result should carry the stored run, was nil")
		}
		if result.Reports != nil {
			t.Errorf("Result Reports should be nil, was %+v", result.Reports)
		}
		if result.ReportsErr == nil {
			t.Error("Result ReportsErr should be non-nil, was nil")
		}
	})
	handler(nil, req)

	if !*calledOnResult {
		t.Error("Expected responder's OnResult method to be called, was not called")
	}
}

func TestIndex_HandleFunc_StoreErr(t *testing.T) {
	t.Parallel()

	ps := testhelpers.NewPersistentStore(t)
	ps.GetOpaqueFunc = func(ctx context.Context, kind, key string, v interface{}) error {
		return errors.New("nope")
	}

	calledOnResult := false
	r := newTestWebIndexResponder(t)
	r.OnResultFunc = func(w http.ResponseWriter, result *IndexResult) {
		calledOnResult = true
		if result.RunErr == nil {
			t.Error("Result RunErr should be non-nil, was nil")
		}
		if result.Run != nil || result.Reports != nil {
			t.Error("Result should carry no run or reports")
		}
	}

	cm := testhelpers.NewContextMaker(t)
	cm.MakeContextFunc = func(r *http.Request) (context.Context, error) {
		return context.Background(), nil
	}

	c := &Index{PersistentStore: ps}
	c.HandleFunc(cm, r)(nil, &http.Request{Form: make(url.Values)})

	if !calledOnResult {
		t.Error("Expected responder's OnResult method to be called, was not called")
	}
}

func TestIndex_HandleFunc_ContextErr(t *testing.T) {
	t.Parallel()

	calledOnContextError := false
	r := newTestWebIndexResponder(t)
	r.OnContextErrorFunc = func(w http.ResponseWriter, err error) {
		calledOnContextError = true
	}

	cm := testhelpers.NewContextMaker(t)
	cm.MakeContextFunc = func(r *http.Request) (context.Context, error) {
		return nil, errors.New("nope")
	}

	c := &Index{PersistentStore: testhelpers.NewPersistentStore(t)}
	c.HandleFunc(cm, r)(nil, &http.Request{})

	if !calledOnContextError {
		t.Error("Expected responder's OnContextError method to be called, was not called")
	}
}
