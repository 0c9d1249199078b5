package sat

import "github.com/crillab/circuitcount/cnf"

// DPLL is a reference backend: a recursive unit-propagation-and-branch
// search with no clause learning. It re-derives its search from scratch
// on every Solve call, which keeps it simple enough to trust as an
// oracle for testing the CDCL backend against.
type DPLL struct {
	base    *cnf.CNF
	clauses []cnf.Clause
	numVars int
	stats   Stats
}

// NewDPLL returns a DPLL-backed solver seeded with c's clauses.
func NewDPLL(c *cnf.CNF) Solver {
	clauses := make([]cnf.Clause, len(c.Clauses))
	copy(clauses, c.Clauses)
	return &DPLL{base: c, clauses: clauses, numVars: int(c.NumVars)}
}

func (d *DPLL) AddClause(clause cnf.Clause) {
	d.clauses = append(d.clauses, clause)
	if n := int(maxVar(clause)) + 1; n > d.numVars {
		d.numVars = n
	}
}

// maxVar returns the highest-numbered variable the clause mentions, or -1
// if it is empty.
func maxVar(clause cnf.Clause) cnf.Var {
	m := cnf.Var(-1)
	for _, l := range clause {
		if v := l.Var(); v > m {
			m = v
		}
	}
	return m
}

func (d *DPLL) Fresh() cnf.Var {
	v := cnf.Var(d.numVars)
	d.numVars++
	return v
}

func (d *DPLL) ResetOrFresh() Solver { return NewDPLL(d.base) }

func (d *DPLL) Stats() Stats { return d.stats }

func (d *DPLL) Solve() (Result, error) {
	d.stats.SolveCalls++
	assignment := make([]int8, d.numVars) // 0 unassigned, 1 true, -1 false
	if search(d.clauses, assignment) {
		model := make([]bool, d.numVars)
		for i, a := range assignment {
			model[i] = a > 0
		}
		return Result{Status: Sat, Model: model}, nil
	}
	return Result{Status: Unsat}, nil
}

func search(clauses []cnf.Clause, assignment []int8) bool {
	if !unitPropagate(clauses, assignment) {
		return false
	}
	switch evalPartial(clauses, assignment) {
	case 1:
		return true
	case -1:
		return false
	}

	v := firstUnassigned(assignment)
	if v < 0 {
		return false
	}

	tryTrue := make([]int8, len(assignment))
	copy(tryTrue, assignment)
	tryTrue[v] = 1
	if search(clauses, tryTrue) {
		copy(assignment, tryTrue)
		return true
	}

	tryFalse := make([]int8, len(assignment))
	copy(tryFalse, assignment)
	tryFalse[v] = -1
	if search(clauses, tryFalse) {
		copy(assignment, tryFalse)
		return true
	}
	return false
}

// litValue returns 1/−1/0 for true/false/unassigned under assignment.
func litValue(l cnf.Lit, assignment []int8) int8 {
	a := assignment[l.Var()]
	if a == 0 {
		return 0
	}
	if l.IsPositive() {
		return a
	}
	return -a
}

// unitPropagate repeatedly resolves unit clauses until a fixed point, or
// reports false on an empty (falsified) clause.
func unitPropagate(clauses []cnf.Clause, assignment []int8) bool {
	for {
		changed := false
		for _, clause := range clauses {
			openCount := 0
			var lastOpen cnf.Lit
			hasTrue := false
			for _, l := range clause {
				switch litValue(l, assignment) {
				case 1:
					hasTrue = true
				case 0:
					openCount++
					lastOpen = l
				}
				if hasTrue {
					break
				}
			}
			if hasTrue {
				continue
			}
			if openCount == 0 {
				return false
			}
			if openCount == 1 {
				v := lastOpen.Var()
				want := int8(1)
				if !lastOpen.IsPositive() {
					want = -1
				}
				if assignment[v] != 0 {
					if assignment[v] != want {
						return false
					}
					continue
				}
				assignment[v] = want
				changed = true
			}
		}
		if !changed {
			return true
		}
	}
}

// evalPartial returns 1 if every clause is satisfied, -1 if some clause is
// falsified, 0 if the formula's value is still undetermined.
func evalPartial(clauses []cnf.Clause, assignment []int8) int {
	allSat := true
	for _, clause := range clauses {
		sat := false
		openAny := false
		for _, l := range clause {
			switch litValue(l, assignment) {
			case 1:
				sat = true
			case 0:
				openAny = true
			}
		}
		if sat {
			continue
		}
		if !openAny {
			return -1
		}
		allSat = false
	}
	if allSat {
		return 1
	}
	return 0
}

func firstUnassigned(assignment []int8) int {
	for i, a := range assignment {
		if a == 0 {
			return i
		}
	}
	return -1
}
