package oracle

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"github.com/elektrokombinacija/gridpath/internal/core"
)

// Verdict classifies one case.
type Verdict int

const (
	VerdictOK Verdict = iota
	VerdictMismatch
	VerdictError // the query could not be searched at all
)

func (v Verdict) String() string {
	switch v {
	case VerdictOK:
		return "ok"
	case VerdictMismatch:
		return "mismatch"
	default:
		return "error"
	}
}

// Outcome is the result of one case.
type Outcome struct {
	Case       core.Case
	Computed   int // core.NoPath when no path was found
	Iterations int
	Cached     bool
	Duration   time.Duration
	Verdict    Verdict
	Err        error // set for VerdictError
}

// Report collects the outcomes of a run in case order.
type Report struct {
	RunID    string
	Digest   string
	Outcomes []Outcome
	Elapsed  time.Duration
}

// Failed counts cases that did not match.
func (r *Report) Failed() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Verdict != VerdictOK {
			n++
		}
	}
	return n
}

// Passed counts matching cases.
func (r *Report) Passed() int {
	return len(r.Outcomes) - r.Failed()
}

// WriteTo prints one line per case:
//
//	OK : (xs ys) => (xd yd) parcours N
//	ERROR : (xs ys) => (xd yd) should be E, computed C
func (r *Report) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var total int64
	for _, o := range r.Outcomes {
		c := o.Case
		var n int
		if o.Verdict == VerdictOK {
			n, _ = fmt.Fprintf(bw, "OK : (%d %d) => (%d %d) parcours %d\n",
				c.Start.X, c.Start.Y, c.Goal.X, c.Goal.Y, o.Computed)
		} else {
			n, _ = fmt.Fprintf(bw, "ERROR : (%d %d) => (%d %d) should be %d, computed %d\n",
				c.Start.X, c.Start.Y, c.Goal.X, c.Goal.Y, c.Expected, o.Computed)
		}
		total += int64(n)
	}
	return total, bw.Flush()
}
