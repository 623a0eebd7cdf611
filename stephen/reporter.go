package stephen

import (
	"fmt"
	"io"
	"time"
)

// Reporter emits plain-text progress lines to a configurable sink at most
// once per interval, tracking active-node count, rules scanned, and
// coincidences drained across a run. The zero value is a no-op reporter
// (Sink is nil).
//
// Grounded on the teacher's functional-options idiom (dfs/types.go's
// WithContext) generalised to an injected io.Writer rather than a logging
// framework — the pack carries no logging library for any repo that also
// has a graph-shaped core, so plain injected collaborators are the idiom to
// extend here (see DESIGN.md ambient stack).
type Reporter struct {
	Sink     io.Writer
	Interval time.Duration

	last time.Time
}

// DefaultReporter reports to w at most once per second.
func DefaultReporter(w io.Writer) *Reporter {
	return &Reporter{Sink: w, Interval: time.Second}
}

func (r *Reporter) maybeReport(now time.Time, activeNodes, rulesScanned, coincidencesDrained int) {
	if r == nil || r.Sink == nil {
		return
	}
	if !r.last.IsZero() && now.Sub(r.last) < r.Interval {
		return
	}
	r.last = now
	fmt.Fprintf(r.Sink, "stephen: active_nodes=%d rules_scanned=%d coincidences_drained=%d\n",
		activeNodes, rulesScanned, coincidencesDrained)
}
