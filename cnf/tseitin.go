package cnf

import (
	"fmt"

	"github.com/crillab/circuitcount/aig"
)

// Encoding is the result of Tseitin-encoding a simplified AIG: the CNF
// itself, the projection variables (one per cone input, preserving their
// AIG declaration order), and the CNF literal corresponding to the AIG's
// chosen output.
type Encoding struct {
	CNF            *CNF
	ProjectionVars []Var
	OutputLit      Lit
}

// EncodeAIG Tseitin-encodes a, assigning CNF variables 1..k to cone
// inputs in AIG primary-input order, then one auxiliary variable per
// retained AND gate in topological order, with each gate emitting the
// three standard Tseitin clauses. out must already be a literal over a
// simplified, cone-restricted AIG and must not be one of the two AIG
// constants — callers short-circuit constant outputs before ever
// reaching the encoder.
func EncodeAIG(a *aig.AIG, out aig.Lit) (*Encoding, error) {
	if out.IsConst() {
		return nil, fmt.Errorf("cnf: cannot Tseitin-encode a constant output literal")
	}

	nodeVar := make(map[uint32]Var, len(a.Inputs)+len(a.Gates))
	projection := make([]Var, 0, len(a.Inputs))

	c := NewCNF(0)
	for _, id := range a.Inputs {
		v := c.FreshVar()
		nodeVar[id] = v
		projection = append(projection, v)
	}
	for _, g := range a.Gates {
		v := c.FreshVar()
		nodeVar[g.ID] = v
	}

	litFor := func(l aig.Lit) (Lit, error) {
		v, ok := nodeVar[l.ID()]
		if !ok {
			return 0, fmt.Errorf("cnf: AIG literal %v references an id outside the encoded graph", l)
		}
		return v.SignedLit(l.Inverted()), nil
	}

	for _, g := range a.Gates {
		gv := nodeVar[g.ID]
		av, err := litFor(g.A)
		if err != nil {
			return nil, err
		}
		bv, err := litFor(g.B)
		if err != nil {
			return nil, err
		}
		gLit := gv.Lit()
		c.AddClause(Clause{gLit.Negate(), av})
		c.AddClause(Clause{gLit.Negate(), bv})
		c.AddClause(Clause{gLit, av.Negate(), bv.Negate()})
	}

	outLit, err := litFor(out)
	if err != nil {
		return nil, err
	}

	return &Encoding{CNF: c, ProjectionVars: projection, OutputLit: outLit}, nil
}
