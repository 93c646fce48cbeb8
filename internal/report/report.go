package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/hurou927/spam-graph/internal/analysis"
)

// Writer writes an analysis result as a plain-text report.
type Writer struct {
	w   io.Writer
	err error
}

// NewWriter creates a new report writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Write writes every section of res and returns the first write error.
func (rw *Writer) Write(res *analysis.Result) error {
	rw.WriteComponents(res)
	rw.WriteQuickStats(res)
	rw.WriteSweep(res)
	rw.WriteBestSpammers(res)
	return rw.err
}

// WriteComponents writes the component counts at the primary threshold.
func (rw *Writer) WriteComponents(res *analysis.Result) {
	rw.printf("Num graphs (all nodes included), threshold %g: %d\n", res.Threshold, res.FullComponents)
	rw.printf("Num graphs in the spam-only network, threshold %g: %d\n", res.Threshold, res.SpamOnlyComponents)
}

// WriteQuickStats writes the user and comment totals.
func (rw *Writer) WriteQuickStats(res *analysis.Result) {
	rw.printf("\nSome quick stats:\n")
	rw.printf("Number of total unique users: %d\n", res.TotalUsers)
	rw.printf("Number of unique spam users: %d\n", res.SpamUsers)
	rw.printf("Number of spam comments in dataset: %d\n\n", res.SpamComments)
}

// WriteSweep writes one spam-only component count per sweep threshold.
func (rw *Writer) WriteSweep(res *analysis.Result) {
	for _, s := range res.Sweep {
		rw.printf("Num graphs in the spam-only network, threshold %g: %d (%d edges)\n",
			s.Threshold, s.Components, s.Edges)
	}
}

// WriteBestSpammers writes the best spammers and the words they used.
func (rw *Writer) WriteBestSpammers(res *analysis.Result) {
	rw.printf("\nThere was/were %d best spammer(s) (who had the most similarities with other spammers, degree %d).\n",
		len(res.BestSpammers), res.BestDegree)
	if len(res.BestSpammers) == 0 {
		return
	}
	rw.printf("They were: %s\n", strings.Join(quoteAll(res.BestSpammers), ", "))
	rw.printf("They used the following words: %s\n", strings.Join(res.BestWords, " "))
}

func (rw *Writer) printf(format string, args ...any) {
	if rw.err != nil {
		return
	}
	_, rw.err = fmt.Fprintf(rw.w, format, args...)
}

func quoteAll(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = fmt.Sprintf("%q", s)
	}
	return out
}
