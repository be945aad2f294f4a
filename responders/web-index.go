package responders

import (
	"html/template"
	"net/http"

	"github.com/jbeshir/moonbird-bankdata/controllers"
	"github.com/jbeshir/moonbird-bankdata/evaluation"
)

var indexTemplate = template.Must(template.New("index").Funcs(template.FuncMap{
	"Accuracy": func(r evaluation.Report) string {
		if accuracy, ok := r.Accuracy(); ok {
			return formatPercent(accuracy)
		}
		return "n/a"
	},
	"Percent": formatPercent,
}).Parse(
	`<html>
<head>
	<link href="https://fonts.googleapis.com/css?family=Roboto|Roboto+Slab" rel="stylesheet">
</head>
<body class="report-page">
<h1>Bank Data Predictor</h1>
<form id="threshold-form" action="/">
	<div>Input a comma-separated series of maximum uncertainties to see how accurate the latest analysis' predictions are when less certain predictions are ignored.</div>
	<input type="text" placeholder="Thresholds go here..." name="thresholds" value="{{.ThresholdsStr}}" class="threshold-text-input"></input>
</form>
{{if .Run}}<div class="run-summary">Predictions for <span class="run-target">{{.Run.Target}}</span> from analysis <span class="run-analysis">{{.Run.AnalysisID}}</span> of table <span class="run-table">{{.Run.TableID}}</span></div>{{end}}
{{if .Reports}}<div class="report-list">
	<div class="report-headers">
		<div class="report-header">Maximum Uncertainty</div>
		<div class="report-header">Correct</div>
		<div class="report-header">Ignored</div>
	</div>
	{{range .Reports}}
		<div class="report">
			<span class="report-threshold">{{.Threshold}}</span>
			<span class="report-accuracy">{{Accuracy .}} ({{.KnownCorrectCount}}/{{.KnownCount}})</span>
			<span class="report-ignored">{{Percent .IgnoredFraction}} ({{.UnknownCount}}/{{.Total}})</span>
		</div>
	{{end}}
</div>{{end}}
{{if .ReportsErr}}<div class="report-fault-msg">Fault reporting using given thresholds!<div id="report-fault">{{.ReportsErr}}</div></div>{{end}}
{{if .RunErr}}<div class="run-fault-msg">{{.RunErr}}</div>{{end}}
</body>
</html>`))

type WebIndexResponder struct{}

func (_ *WebIndexResponder) OnContextError(w http.ResponseWriter, err error) {
	http.Error(w, "Internal Server Error", 500)
}

func (_ *WebIndexResponder) OnResult(w http.ResponseWriter, r *controllers.IndexResult) {
	indexTemplate.Execute(w, r)
}
