package count

import (
	"time"

	"github.com/crillab/circuitcount/cnf"
	"github.com/crillab/circuitcount/sat"
)

// ExactResult is the outcome of a bounded exact enumeration: either a
// definite count, a saturation (count exceeded pivot), or a timeout.
type ExactResult struct {
	Count      uint64
	Saturated  bool
	TimedOut   bool
	SolveCalls int
}

// ExactCount enumerates distinct projected models by blocking-clause
// search: solve, read off the projected assignment, add a clause
// forbidding exactly that assignment, repeat until Unsat or the count
// exceeds pivot. A negative pivot means no cap. deadline, if non-zero,
// is checked before every call to solver.Solve.
func ExactCount(solver sat.Solver, projection []cnf.Var, pivot int, deadline time.Time) (ExactResult, error) {
	var res ExactResult
	hasDeadline := !deadline.IsZero()
	for {
		if hasDeadline && !time.Now().Before(deadline) {
			res.TimedOut = true
			return res, nil
		}

		result, err := solver.Solve()
		res.SolveCalls++
		if err != nil {
			return res, err
		}
		if result.Status == sat.Unsat {
			return res, nil
		}

		res.Count++
		if pivot >= 0 && int(res.Count) > pivot {
			res.Saturated = true
			return res, nil
		}

		block := make(cnf.Clause, len(projection))
		for i, v := range projection {
			val := int(v) < len(result.Model) && result.Model[v]
			block[i] = v.SignedLit(val)
		}
		solver.AddClause(block)
	}
}
