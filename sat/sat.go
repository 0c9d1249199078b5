// Package sat defines a small SAT-solver capability — add a clause,
// solve, reset or clone — behind a common interface with two
// interchangeable backends: a reference DPLL (sat.DPLL) and a
// watched-literal CDCL-style engine (sat.CDCL).
package sat

import "github.com/crillab/circuitcount/cnf"

// Status is the outcome of a Solve call.
type Status int

const (
	Unsat Status = iota
	Sat
)

func (s Status) String() string {
	if s == Sat {
		return "SAT"
	}
	return "UNSAT"
}

// Result is what Solve returns: a status and, when Sat, a model indexed
// by cnf.Var. Variables the solver never assigned default to false.
type Result struct {
	Status Status
	Model  []bool
}

// Stats tracks per-solver bookkeeping. count.Report does not read it;
// the count package tallies its own solve calls.
type Stats struct {
	SolveCalls int
}

// ErrorKind classifies a solver failure.
type ErrorKind int

const (
	// ErrInternal means the solver reached an inconsistent internal state.
	ErrInternal ErrorKind = iota
)

// Error reports a solver failure.
type Error struct {
	Kind ErrorKind
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

// Solver is the capability consumed by the count package: append a
// clause, allocate a fresh variable, and solve the current clause set.
type Solver interface {
	AddClause(clause cnf.Clause)
	Fresh() cnf.Var
	Solve() (Result, error)
	// ResetOrFresh returns a new solver seeded with the same clause set
	// the receiver was constructed with — not clauses added afterwards.
	ResetOrFresh() Solver
	Stats() Stats
}
