package xor

import "github.com/crillab/circuitcount/cnf"

// AppendConstraint expands a parity constraint into a binary XOR-tree
// Tseitin chain and appends its clauses to c, following
// xor::encode::append_xor_block's unchained (non-activation-literal)
// path: one fresh auxiliary variable and four clauses per additional
// variable in the constraint, then a single unit clause fixing the
// chain's final value to rhs.
func AppendConstraint(c *cnf.CNF, constraint Constraint) {
	if len(constraint.Vars) == 0 {
		if constraint.RHS {
			c.AddClause(cnf.Clause{}) // parity of an empty set is 0; asserting 1 is unsatisfiable
		}
		return
	}
	if len(constraint.Vars) == 1 {
		c.AddClause(cnf.Clause{constraint.Vars[0].SignedLit(!constraint.RHS)})
		return
	}

	acc := constraint.Vars[0]
	for _, next := range constraint.Vars[1:] {
		out := c.FreshVar()
		appendXor3(c, acc, next, out)
		acc = out
	}
	c.AddClause(cnf.Clause{acc.SignedLit(!constraint.RHS)})
}

// appendXor3 emits the four clauses asserting z == x XOR y.
func appendXor3(c *cnf.CNF, x, y, z cnf.Var) {
	c.AddClause(cnf.Clause{x.SignedLit(false), y.SignedLit(false), z.SignedLit(true)})
	c.AddClause(cnf.Clause{x.SignedLit(true), y.SignedLit(true), z.SignedLit(true)})
	c.AddClause(cnf.Clause{x.SignedLit(false), y.SignedLit(true), z.SignedLit(false)})
	c.AddClause(cnf.Clause{x.SignedLit(true), y.SignedLit(false), z.SignedLit(false)})
}
