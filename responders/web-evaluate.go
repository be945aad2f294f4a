package responders

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jbeshir/moonbird-auth-frontend/ctxlogrus"
	"github.com/jbeshir/moonbird-bankdata/data"
	"github.com/jbeshir/moonbird-bankdata/evaluation"
)

// WebEvaluateResponder answers the evaluation task endpoint in plain text,
// one report line per configured threshold.
type WebEvaluateResponder struct {
	ExposeErrors bool
}

func (r *WebEvaluateResponder) OnContextError(w http.ResponseWriter, err error) {
	r.writeError(w, err)
}

func (r *WebEvaluateResponder) OnError(ctx context.Context, w http.ResponseWriter, err error) {
	ctxlogrus.Get(ctx).Error(err)
	r.writeError(w, err)
}

func (r *WebEvaluateResponder) OnSuccess(w http.ResponseWriter, run *data.EvaluationRun, reports []evaluation.Report) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "Evaluated %d predictions from analysis %s\n", len(run.Outcomes), run.AnalysisID)
	for _, report := range reports {
		fmt.Fprintln(w, FormatReport(run.Target, report))
	}
}

func (r *WebEvaluateResponder) writeError(w http.ResponseWriter, err error) {
	if r.ExposeErrors {
		http.Error(w, fmt.Sprintf("Evaluation failed: %s", err), http.StatusInternalServerError)
	} else {
		http.Error(w, "Evaluation failed", http.StatusInternalServerError)
	}
}
