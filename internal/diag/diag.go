// Package diag formats and emits severity-tagged diagnostic reports,
// optionally printing the offending source range underneath the message.
package diag

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	"golang.org/x/text/width"

	"github.com/opal-lang/opal/internal/source"
)

// Severity is one of the four levels spec §4.9 names.
type Severity int

const (
	Verbose Severity = iota
	Comment
	Caution
	Failure
)

func (s Severity) String() string {
	switch s {
	case Verbose:
		return "verbose"
	case Comment:
		return "comment"
	case Caution:
		return "caution"
	case Failure:
		return "failure"
	}
	return "unknown"
}

// Report is one diagnostic: a severity, an optional source+range, and a
// rendered message.
type Report struct {
	Severity Severity
	Source   *source.Source // nil if the report has no source location
	Range    source.Range
	Message  string
}

// Sink accumulates Reports for one compile unit and renders them to an
// io.Writer in the text format of spec §7:
//
//	<path>[<beg>-<end>|<row>,<col>]: <severity>: <message>
//	\t<offending source slice>
//	\t<'^' underline of the slice>
//
// Every Sink is tagged with a compile-unit UUID so driver-level tooling
// processing several sources in one process can correlate reports back
// to the parse that produced them.
type Sink struct {
	UnitID uuid.UUID
	out    io.Writer

	reports    []Report
	errorCount int

	tokenCount int
	nodeCount  int
}

// New constructs a Sink writing rendered reports to out.
func New(out io.Writer) *Sink {
	return &Sink{UnitID: uuid.New(), out: out}
}

// Report records and immediately renders r.
func (s *Sink) Report(r Report) {
	s.reports = append(s.reports, r)
	if r.Severity == Failure {
		s.errorCount++
	}
	s.render(r)
}

// Verbosef, Commentf, Cautionf, and Failuref are convenience wrappers
// over Report for the four severities, formatting msg/args with fmt.
func (s *Sink) Verbosef(src *source.Source, rng source.Range, msg string, args ...any) {
	s.Report(Report{Severity: Verbose, Source: src, Range: rng, Message: fmt.Sprintf(msg, args...)})
}

func (s *Sink) Commentf(src *source.Source, rng source.Range, msg string, args ...any) {
	s.Report(Report{Severity: Comment, Source: src, Range: rng, Message: fmt.Sprintf(msg, args...)})
}

func (s *Sink) Cautionf(src *source.Source, rng source.Range, msg string, args ...any) {
	s.Report(Report{Severity: Caution, Source: src, Range: rng, Message: fmt.Sprintf(msg, args...)})
}

func (s *Sink) Failuref(src *source.Source, rng source.Range, msg string, args ...any) {
	s.Report(Report{Severity: Failure, Source: src, Range: rng, Message: fmt.Sprintf(msg, args...)})
}

// HasFailure reports whether any Failure-severity report was recorded.
func (s *Sink) HasFailure() bool { return s.errorCount > 0 }

// Reports returns every recorded report, in emission order.
func (s *Sink) Reports() []Report { return s.reports }

// RecordToken and RecordNode are the Sink's telemetry counters, mirroring
// the teacher's ParseTelemetry token/event counts.
func (s *Sink) RecordToken() { s.tokenCount++ }
func (s *Sink) RecordNode()  { s.nodeCount++ }

// TokenCount and NodeCount report the telemetry counters.
func (s *Sink) TokenCount() int { return s.tokenCount }
func (s *Sink) NodeCount() int  { return s.nodeCount }

func (s *Sink) render(r Report) {
	if r.Source == nil {
		fmt.Fprintf(s.out, "%s: %s\n", r.Severity, r.Message)
		return
	}
	fmt.Fprintf(s.out, "%s[%d-%d|%d,%d]: %s: %s\n",
		r.Source.Path(), r.Range.Beg, r.Range.End, r.Range.Row, r.Range.Column, r.Severity, r.Message)

	slice := r.Source.Slice(r.Range.Beg, r.Range.End)
	fmt.Fprintf(s.out, "\t%s\n", slice)
	fmt.Fprintf(s.out, "\t%s\n", underline(slice))
}

// underline draws a run of '^' under slice, one per display column. It
// counts runes, not bytes, and width.LookupRune gives East-Asian wide and
// fullwidth runes two columns; every other rune, combining runes included,
// counts as one column.
func underline(slice []byte) string {
	out := make([]byte, 0, len(slice))
	for _, r := range string(slice) {
		cols := 1
		if width.LookupRune(r).Kind() == width.EastAsianWide || width.LookupRune(r).Kind() == width.EastAsianFullwidth {
			cols = 2
		}
		for i := 0; i < cols; i++ {
			out = append(out, '^')
		}
	}
	return string(out)
}
