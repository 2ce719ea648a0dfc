package solver

import (
	"fmt"
	"time"

	"github.com/roach88/limitbreak/internal/ir"
)

// Outcome is the raw result of the counter.
type Outcome struct {
	Count    int64
	Strategy Strategy
}

// Report is the packaged result of one solve.
type Report struct {
	ID        string        `json:"id"`
	ProblemID string        `json:"problem_id"`
	OutcomeID string        `json:"outcome_id"`
	Problem   Problem       `json:"problem"`
	Count     int64         `json:"count"`
	Overflow  bool          `json:"overflow"`
	ErrCode   ErrorCode     `json:"error_code,omitempty"`
	ErrMsg    string        `json:"error,omitempty"`
	Strategy  Strategy      `json:"strategy,omitempty"`
	Elapsed   time.Duration `json:"elapsed_ns"`

	// Err is the structured error behind ErrCode, nil on success.
	Err error `json:"-"`
}

// OK reports whether the solve produced a count.
func (r Report) OK() bool { return r.ErrCode == "" && r.ErrMsg == "" }

// ElapsedMillis renders the elapsed time as fractional milliseconds.
func (r Report) ElapsedMillis() string {
	return fmt.Sprintf("%.2f ms", float64(r.Elapsed.Microseconds())/1000)
}

// Reporter packages counter outcomes. It performs no computation beyond
// stamping IDs.
type Reporter struct {
	ids IDGenerator
}

// NewReporter returns a Reporter drawing report IDs from ids.
func NewReporter(ids IDGenerator) *Reporter {
	return &Reporter{ids: ids}
}

// Report builds the Report for one solve. When err is non-nil the count is
// zeroed and the error code recorded; a zero count with an empty code always
// means no combination exists.
func (r *Reporter) Report(p Problem, o Outcome, err error, elapsed time.Duration) Report {
	rep := Report{
		ID:        r.ids.Generate(),
		ProblemID: ir.ProblemID(p.Target, p.MaxCoins, p.Coins),
		Problem:   p,
		Count:     o.Count,
		Strategy:  o.Strategy,
		Elapsed:   elapsed,
	}
	if err != nil {
		rep.Count = 0
		rep.Err = err
		rep.ErrCode = CodeOf(err)
		rep.ErrMsg = err.Error()
		rep.Overflow = rep.ErrCode == CodeCountOverflow
	}
	rep.OutcomeID = ir.OutcomeID(rep.ProblemID, rep.Count, string(rep.ErrCode))
	return rep
}
