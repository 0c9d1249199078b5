package aig

// ConeStats summarizes the fan-in cone of a chosen output: the primary
// inputs it depends on (in original declaration order) and how many AND
// gates it retains.
type ConeStats struct {
	Inputs []uint32
	Ands   int
}

// Cone walks the fan-in of out transitively and reports the cone's
// primary inputs and AND-gate count, computed on the original graph
// before any simplification. This stays meaningful even when Simplify
// later folds the output to a constant.
func Cone(a *AIG, out Lit) ConeStats {
	inCone, andIDs := coneNodes(a, out)

	// Re-order inputs to match their declaration order rather than DFS
	// discovery order, so cone inputs take CNF variables in a stable,
	// predictable sequence.
	ordered := make([]uint32, 0, len(inCone))
	for _, id := range a.Inputs {
		if inCone[id] {
			ordered = append(ordered, id)
		}
	}
	return ConeStats{Inputs: ordered, Ands: len(andIDs)}
}

// coneNodes returns the set of cone input ids and the set of cone AND
// gate ids reachable from out.
func coneNodes(a *AIG, out Lit) (inputs, ands map[uint32]bool) {
	visited := make(map[uint32]bool)
	inputs = make(map[uint32]bool)
	ands = make(map[uint32]bool)

	var walk func(id uint32)
	walk = func(id uint32) {
		if id == 0 || visited[id] {
			return
		}
		visited[id] = true
		if a.IsInput(id) {
			inputs[id] = true
			return
		}
		g, ok := a.GateAt(id)
		if !ok {
			return
		}
		ands[id] = true
		walk(g.A.ID())
		walk(g.B.ID())
	}
	walk(out.ID())
	return inputs, ands
}

// Simplify rebuilds a new AIG restricted to out's fan-in cone, folding
// constants along the way by routing every retained gate back through
// Builder.MkAnd. The returned literal is the simplified output; it may be
// FalseLit or TrueLit if the cone is a tautology or contradiction.
func Simplify(a *AIG, out Lit) (*AIG, Lit) {
	inCone, andIDs := coneNodes(a, out)
	coneInputs := make([]uint32, 0, len(inCone))
	for _, id := range a.Inputs {
		if inCone[id] {
			coneInputs = append(coneInputs, id)
		}
	}

	b := NewBuilder()
	memo := make(map[uint32]Lit, len(coneInputs))
	for _, id := range coneInputs {
		memo[id] = b.FreshInput()
	}

	resolve := func(l Lit) Lit {
		if l.ID() == 0 {
			if l == TrueLit {
				return TrueLit
			}
			return FalseLit
		}
		base := memo[l.ID()]
		if l.Inverted() {
			return base.Negate()
		}
		return base
	}

	// Gates are stored in topological (increasing id) order, so both
	// operands of any gate have already been resolved by the time we
	// reach it.
	for _, g := range a.Gates {
		if !andIDs[g.ID] {
			continue
		}
		na := resolve(g.A)
		nb := resolve(g.B)
		memo[g.ID] = b.MkAnd(na, nb)
	}

	simplifiedOut := resolve(out)
	simplified := b.Finish([]Lit{simplifiedOut})
	return simplified, simplifiedOut
}
