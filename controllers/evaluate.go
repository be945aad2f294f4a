package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/jbeshir/moonbird-auth-frontend/ctxlogrus"
	"github.com/jbeshir/moonbird-bankdata/data"
	"github.com/jbeshir/moonbird-bankdata/evaluation"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const storeRunKind = "EvaluationRun"
const storeRunKey = "latest"

// Evaluate trains an analysis on the training rows and measures how well it
// predicts Target for the test rows.
type Evaluate struct {
	DatasetLoader   DatasetLoader
	TableStore      TableStore
	Analyzer        Analyzer
	PredictionMaker PredictionMaker
	PersistentStore PersistentStore

	Schema     data.Schema
	Target     string
	TableID    string
	AnalysisID string
	Thresholds []float64
}

type EvaluateProgress interface {
	OnDeletingTable(tableID string)
	OnUploadingTable(tableID string)
	OnAnalyzing(analysisID string)
	OnPredicting()
}

type WebEvaluateResponder interface {
	OnContextError(w http.ResponseWriter, err error)
	OnError(ctx context.Context, w http.ResponseWriter, err error)
	OnSuccess(w http.ResponseWriter, run *data.EvaluationRun, reports []evaluation.Report)
}

func (c *Evaluate) HandleFunc(cm ContextMaker, resp WebEvaluateResponder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, err := cm.MakeContext(r)
		if err != nil {
			resp.OnContextError(w, err)
			return
		}

		run, reports, err := c.Run(ctx, time.Now(), &logProgress{ctx: ctx})
		if err != nil {
			resp.OnError(ctx, w, err)
		} else {
			resp.OnSuccess(w, run, reports)
		}
	}
}

// Run performs a full evaluation, stores its outcomes as the latest run,
// and reports on them at each of the configured thresholds.
func (c *Evaluate) Run(ctx context.Context, now time.Time, progress EvaluateProgress) (*data.EvaluationRun, []evaluation.Report, error) {
	ctx = ctxlogrus.WithFields(ctx, logrus.Fields{
		"controller": "Evaluate",
		"table":      c.TableID,
		"analysis":   c.AnalysisID,
	})
	l := ctxlogrus.Get(ctx)

	if _, ok := c.Schema[c.Target]; !ok {
		return nil, nil, errors.Errorf("target column %s is not in the schema", c.Target)
	}

	trainingRows, testRows, err := c.DatasetLoader.LoadRows(ctx)
	if err != nil {
		return nil, nil, errors.Wrap(err, "evaluate couldn't load rows")
	}
	l.Infof("Loaded %d training rows and %d test rows", len(trainingRows), len(testRows))

	exists, err := c.TableStore.TableExists(ctx, c.TableID)
	if err != nil {
		return nil, nil, err
	}
	if exists {
		progress.OnDeletingTable(c.TableID)
		if err := c.TableStore.DeleteTable(ctx, c.TableID); err != nil {
			return nil, nil, err
		}
	}

	progress.OnUploadingTable(c.TableID)
	if err := c.TableStore.UploadRows(ctx, c.TableID, trainingRows, c.Schema); err != nil {
		return nil, nil, err
	}

	progress.OnAnalyzing(c.AnalysisID)
	analysis, err := c.Analyzer.CreateAnalysis(ctx, c.TableID, c.AnalysisID, c.Schema, now)
	if err != nil {
		return nil, nil, err
	}
	if err := c.Analyzer.Wait(ctx, analysis); err != nil {
		return nil, nil, err
	}

	progress.OnPredicting()
	run := &data.EvaluationRun{
		TableID:    c.TableID,
		AnalysisID: c.AnalysisID,
		Target:     c.Target,
		Created:    now,
	}
	for _, testRow := range testRows {
		actual, ok := testRow[c.Target]
		if !ok {
			l.Warnf("Skipping test row %s with no %s value", testRow.ID(), c.Target)
			continue
		}

		request := testRow.Copy()
		delete(request, data.IDColumn)

		estimate, uncertainty, err := c.PredictionMaker.Predict(ctx, analysis, request, c.Target)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "evaluate couldn't predict test row %s", testRow.ID())
		}

		run.Outcomes = append(run.Outcomes, evaluation.Outcome{
			IsCorrect:   data.ValuesEqual(estimate, actual),
			Uncertainty: uncertainty,
		})
	}

	err = c.PersistentStore.SetOpaque(ctx, storeRunKind, storeRunKey, run)
	if err != nil {
		return nil, nil, errors.Wrap(err, "evaluate couldn't store run")
	}

	reports, err := evaluation.Evaluate(run.Outcomes, c.Thresholds)
	if err != nil {
		return run, nil, err
	}

	return run, reports, nil
}

type logProgress struct {
	ctx context.Context
}

func (p *logProgress) OnDeletingTable(tableID string) {
	ctxlogrus.Get(p.ctx).Infof("Deleting old table '%s'", tableID)
}

func (p *logProgress) OnUploadingTable(tableID string) {
	ctxlogrus.Get(p.ctx).Infof("Creating table '%s' and uploading rows", tableID)
}

func (p *logProgress) OnAnalyzing(analysisID string) {
	ctxlogrus.Get(p.ctx).Infof("Creating analysis '%s' and waiting for it to complete", analysisID)
}

func (p *logProgress) OnPredicting() {
	ctxlogrus.Get(p.ctx).Info("Making predictions")
}
