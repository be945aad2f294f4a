package controllers

import (
	"context"
	"net/http"

	"github.com/jbeshir/moonbird-auth-frontend/ctxlogrus"
	"github.com/jbeshir/moonbird-bankdata/data"
	"github.com/jbeshir/moonbird-bankdata/evaluation"
	"github.com/sirupsen/logrus"
)

// Index reports on the latest stored run at thresholds chosen by the request.
type Index struct {
	PersistentStore   PersistentStore
	DefaultThresholds []float64
}

type IndexInput struct {
	ThresholdsStr string
}

type IndexResult struct {
	ThresholdsStr string
	Run           *data.EvaluationRun
	RunErr        error
	Reports       []evaluation.Report
	ReportsErr    error
}

type WebIndexResponder interface {
	OnContextError(w http.ResponseWriter, err error)
	OnResult(w http.ResponseWriter, r *IndexResult)
}

func (c *Index) HandleFunc(cm ContextMaker, resp WebIndexResponder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, err := cm.MakeContext(r)
		if err != nil {
			resp.OnContextError(w, err)
			return
		}

		input := &IndexInput{ThresholdsStr: r.FormValue("thresholds")}
		result := c.handle(ctx, input)
		resp.OnResult(w, result)
	}
}

func (c *Index) handle(ctx context.Context, input *IndexInput) *IndexResult {
	ctx = ctxlogrus.WithFields(ctx, logrus.Fields{
		"controller": "Index",
	})
	l := ctxlogrus.Get(ctx)

	result := &IndexResult{ThresholdsStr: input.ThresholdsStr}

	run := new(data.EvaluationRun)
	err := c.PersistentStore.GetOpaque(ctx, storeRunKind, storeRunKey, run)
	if err != nil {
		l.Errorf("Unable to get latest evaluation run: %s", err)
		result.RunErr = err
		return result
	}
	result.Run = run

	thresholds, err := ParseThresholds(input.ThresholdsStr)
	if err == nil && len(thresholds) == 0 {
		thresholds = c.DefaultThresholds
	}
	if err == nil {
		result.Reports, err = evaluation.Evaluate(run.Outcomes, thresholds)
	}
	if err != nil {
		l.Infof("Unable to report on latest evaluation run: %s", err)
		result.ReportsErr = err
	}

	return result
}
