package count

import (
	"fmt"
	"time"

	"github.com/crillab/circuitcount/aig"
	"github.com/crillab/circuitcount/circuit"
	"github.com/crillab/circuitcount/cnf"
	"github.com/crillab/circuitcount/sat"
)

// Count loads the circuit at path, restricts it to the outIdx-th
// declared output's fan-in cone, Tseitin-encodes it, and runs an exact
// projected model count, falling back to an ApproxMC-style estimate
// when the exact enumeration saturates its pivot. opts.TimeoutMs, if
// nonzero, bounds the whole counting phase (parsing is not bounded by
// it).
func Count(path string, outIdx int, opts Options) (*Report, error) {
	if opts.Trials < 1 {
		return nil, &Error{Kind: ErrSolver, Msg: "trials must be >= 1"}
	}
	if opts.Pivot < 1 {
		return nil, &Error{Kind: ErrSolver, Msg: "pivot must be >= 1"}
	}
	if opts.R < 1 {
		return nil, &Error{Kind: ErrSolver, Msg: "r must be >= 1"}
	}
	if !(opts.P > 0 && opts.P <= 1) {
		return nil, &Error{Kind: ErrSolver, Msg: fmt.Sprintf("p must be in (0,1], got %v", opts.P)}
	}

	circ, err := circuit.Load(path, opts.Format)
	if err != nil {
		if circuit.ErrUnsupportedSequential(err) {
			return nil, &Error{Kind: ErrUnsupportedSequential, Msg: err.Error()}
		}
		return nil, &Error{Kind: ErrParse, Msg: err.Error()}
	}

	outLit, err := circ.Output(outIdx)
	if err != nil {
		return nil, &Error{Kind: ErrInvalidOutputIndex, Msg: err.Error()}
	}

	coneStats := aig.Cone(circ, outLit)
	simplified, simpleOut := aig.Simplify(circ, outLit)

	var deadline time.Time
	if opts.TimeoutMs > 0 {
		deadline = time.Now().Add(time.Duration(opts.TimeoutMs) * time.Millisecond)
	}

	report := &Report{
		InputsCOI: len(coneStats.Inputs),
		Ands:      coneStats.Ands,
		Pivot:     opts.Pivot,
		Trials:    opts.Trials,
		Backend:   opts.Backend,
		R:         opts.R,
	}

	// A tautology or contradiction needs no solver call at all: the
	// projected count is either 2^0 (one trivial model, the empty
	// assignment) or 0.
	if simpleOut.IsConst() {
		report.Mode = ModeExact
		if simpleOut == aig.TrueLit {
			report.Result = 1
		}
		return report, nil
	}

	enc, err := cnf.EncodeAIG(simplified, simpleOut)
	if err != nil {
		return nil, &Error{Kind: ErrSolver, Msg: err.Error()}
	}
	enc.CNF.AddClause(cnf.Clause{enc.OutputLit})

	report.Vars = int(enc.CNF.NumVars)
	report.Clauses = len(enc.CNF.Clauses)

	newSolver := solverFactory(opts.Backend)
	solver := newSolver(enc.CNF)

	exact, err := ExactCount(solver, enc.ProjectionVars, opts.Pivot, deadline)
	if err != nil {
		return nil, &Error{Kind: ErrSolver, Msg: err.Error()}
	}
	report.SolveCalls += exact.SolveCalls
	if !exact.Saturated {
		report.Mode = ModeExact
		report.Result = exact.Count
		report.TimedOut = exact.TimedOut
		return report, nil
	}

	hc, err := HashCellCount(enc.CNF, enc.ProjectionVars, opts, newSolver, deadline)
	if err != nil {
		return nil, &Error{Kind: ErrSolver, Msg: err.Error()}
	}
	report.SolveCalls += hc.SolveCalls
	report.Mode = ModeHashCell
	report.Result = hc.Estimate
	report.M = hc.SelectedM
	report.TimedOut = hc.TimedOut
	report.Saturated = hc.Saturated
	return report, nil
}

func solverFactory(backend Backend) func(*cnf.CNF) sat.Solver {
	switch backend {
	case BackendDPLL:
		return sat.NewDPLL
	default:
		return sat.NewCDCL
	}
}
