package responders

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jbeshir/moonbird-bankdata/evaluation"
)

// TextResponder writes evaluation progress and reports as plain lines.
type TextResponder struct {
	W io.Writer
}

func (r *TextResponder) OnDeletingTable(tableID string) {
	fmt.Fprintf(r.W, "Deleting old table '%s'\n", tableID)
}

func (r *TextResponder) OnUploadingTable(tableID string) {
	fmt.Fprintf(r.W, "Creating table '%s' and uploading rows\n", tableID)
}

func (r *TextResponder) OnAnalyzing(analysisID string) {
	fmt.Fprintf(r.W, "Creating analysis '%s' and waiting for it to complete\n", analysisID)
}

func (r *TextResponder) OnPredicting() {
	fmt.Fprintln(r.W, "Making predictions")
}

func (r *TextResponder) OnReports(target string, reports []evaluation.Report) {
	for _, report := range reports {
		fmt.Fprintln(r.W, FormatReport(target, report))
	}
}

// FormatReport describes a report in a single line, e.g.
// "Predictions for pep are 72% (18/25) correct with 10% (5/50) ignored using a maximum uncertainty of 0.5".
func FormatReport(target string, report evaluation.Report) string {
	accuracyStr := "n/a"
	if accuracy, ok := report.Accuracy(); ok {
		accuracyStr = formatPercent(accuracy)
	}

	return fmt.Sprintf("Predictions for %s are %s (%d/%d) correct with %s (%d/%d) ignored using a maximum uncertainty of %s",
		target,
		accuracyStr,
		report.KnownCorrectCount,
		report.KnownCount,
		formatPercent(report.IgnoredFraction()),
		report.UnknownCount,
		report.Total(),
		strconv.FormatFloat(report.Threshold, 'g', -1, 64))
}

func formatPercent(f float64) string {
	return fmt.Sprintf("%.0f%%", f*100)
}
