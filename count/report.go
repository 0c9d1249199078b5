package count

import (
	"fmt"
	"io"
)

// Mode records which counting algorithm produced the result.
type Mode string

const (
	ModeExact    Mode = "exact"
	ModeHashCell Mode = "hash-cell"
)

// ErrorKind classifies why a count failed outright.
type ErrorKind int

const (
	ErrParse ErrorKind = iota
	ErrUnsupportedSequential
	ErrInvalidOutputIndex
	ErrSolver
)

func (k ErrorKind) String() string {
	switch k {
	case ErrParse:
		return "ParseError"
	case ErrUnsupportedSequential:
		return "UnsupportedSequential"
	case ErrInvalidOutputIndex:
		return "InvalidOutputIndex"
	case ErrSolver:
		return "SolverError"
	default:
		return "UnknownError"
	}
}

// Error is the error type Count returns for every ErrorKind except
// timeouts and pivot saturation, which are non-fatal statuses carried
// on Report instead.
type Error struct {
	Kind ErrorKind
	Msg  string
}

func (e *Error) Error() string { return fmt.Sprintf("%s: %s", e.Kind, e.Msg) }

// Report summarizes a single counting query: the cone size that fed the
// solver, the resulting CNF size, which algorithm and backend ran, how
// many times the solver was invoked, and the resulting count or
// estimate.
type Report struct {
	InputsCOI  int
	Ands       int
	Vars       int
	Clauses    int
	Pivot      int
	Trials     int
	Backend    Backend
	SolveCalls int
	Mode       Mode
	Result     uint64
	M          int // selected XOR-layer count (hash-cell mode only)
	R          int

	TimedOut  bool
	Saturated bool
}

// Println writes the two-line summary format: cone/CNF sizing on the
// first line, solver and result details on the second.
func (r *Report) Println(w io.Writer) {
	fmt.Fprintf(w, "inputs_coi=%d ands=%d vars=%d clauses=%d pivot=%d trials=%d\n",
		r.InputsCOI, r.Ands, r.Vars, r.Clauses, r.Pivot, r.Trials)
	fmt.Fprintf(w, "backend=%s solve_calls=%d mode=%s result=%d m=%d trials=%d r=%d\n",
		r.Backend, r.SolveCalls, r.Mode, r.Result, r.M, r.Trials, r.R)
}
