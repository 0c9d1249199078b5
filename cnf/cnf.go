// Package cnf provides the conjunctive-normal-form representation shared
// by the Tseitin encoder and the sat package, plus a DIMACS text writer
// (ToDIMACS) that nothing else in the module calls.
package cnf

import (
	"fmt"
	"strings"
)

// Var identifies a CNF variable. Variables start at 0, so CNF variable 1
// is encoded as Var(0).
type Var int32

// Lit is a signed literal: even values are positive, the sign is the
// last bit. CNF literal -3 is encoded as 2*(3-1)+1 = 5.
type Lit int32

// IntToLit converts a signed DIMACS-style literal to a Lit.
func IntToLit(i int) Lit {
	if i < 0 {
		return Lit(2*(-i-1) + 1)
	}
	return Lit(2 * (i - 1))
}

// IntToVar converts a 1-based DIMACS variable number to a Var.
func IntToVar(i int32) Var { return Var(i - 1) }

// Lit returns the positive literal for v.
func (v Var) Lit() Lit { return Lit(v * 2) }

// SignedLit returns the (possibly negated) literal for v.
func (v Var) SignedLit(negated bool) Lit {
	if negated {
		return Lit(v*2) + 1
	}
	return Lit(v * 2)
}

// Var returns the variable l refers to.
func (l Lit) Var() Var { return Var(l / 2) }

// Int returns the signed DIMACS-style literal equivalent to l.
func (l Lit) Int() int32 {
	neg := l&1 == 1
	res := int32(l/2 + 1)
	if neg {
		return -res
	}
	return res
}

// IsPositive reports whether l is the unnegated form of its variable.
func (l Lit) IsPositive() bool { return l%2 == 0 }

// Negate returns the complement of l.
func (l Lit) Negate() Lit { return l ^ 1 }

func (l Lit) String() string { return fmt.Sprintf("%d", l.Int()) }

// Clause is an ordered disjunction of literals.
type Clause []Lit

// CNF is a conjunction of clauses over variables 1..NumVars (1-based in
// DIMACS terms; internally every Lit/Var above is 0-based).
type CNF struct {
	NumVars uint32
	Clauses []Clause
}

// NewCNF returns an empty CNF over the given number of variables.
func NewCNF(numVars uint32) *CNF {
	return &CNF{NumVars: numVars}
}

// AddClause appends a clause. Clause ordering is preserved across calls.
func (c *CNF) AddClause(clause Clause) {
	c.Clauses = append(c.Clauses, clause)
}

// FreshVar allocates and returns a new variable. The returned Var is
// 0-based; its 1-based DIMACS number is the updated NumVars.
func (c *CNF) FreshVar() Var {
	c.NumVars++
	return Var(c.NumVars - 1)
}

// Clone returns a deep copy, used by the hash-cell counter to build a
// fresh augmented CNF at each XOR level without touching the base CNF.
func (c *CNF) Clone() *CNF {
	out := &CNF{NumVars: c.NumVars, Clauses: make([]Clause, len(c.Clauses))}
	for i, cl := range c.Clauses {
		cp := make(Clause, len(cl))
		copy(cp, cl)
		out.Clauses[i] = cp
	}
	return out
}

// ToDIMACS renders c in DIMACS CNF text format.
func ToDIMACS(c *CNF) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "p cnf %d %d\n", c.NumVars, len(c.Clauses))
	for _, clause := range c.Clauses {
		for _, lit := range clause {
			fmt.Fprintf(&sb, "%d ", lit.Int())
		}
		sb.WriteString("0\n")
	}
	return sb.String()
}
