package circuit

import (
	"fmt"

	"github.com/crillab/circuitcount/aig"
)

// Lower builds an *aig.AIG from a RawNetlist, routing every gate through
// the builder's structurally-hashing gate constructors regardless of
// which front-end produced the netlist.
func Lower(n *RawNetlist) (*aig.AIG, error) {
	b := aig.NewBuilder()
	for _, name := range n.Inputs {
		if _, err := b.Input(name); err != nil {
			return nil, &ParseError{Msg: err.Error()}
		}
	}

	order, err := topoOrder(n)
	if err != nil {
		return nil, err
	}
	for _, idx := range order {
		g := n.Gates[idx]
		rhs, err := evalGate(b, g)
		if err != nil {
			return nil, err
		}
		if err := b.Set(g.LHS, rhs); err != nil {
			return nil, &ParseError{Msg: err.Error()}
		}
	}

	outs := make([]aig.Lit, 0, len(n.Outputs))
	for _, name := range n.Outputs {
		lit, err := resolveRef(b, name)
		if err != nil {
			return nil, &ParseError{Msg: fmt.Sprintf("output references undefined signal %q", name)}
		}
		outs = append(outs, lit)
	}
	return b.Finish(outs), nil
}

// resolveRef resolves a raw operand/output name (possibly '~'-prefixed,
// or the "0"/"1" constants) to an aig.Lit.
func resolveRef(b *aig.Builder, name string) (aig.Lit, error) {
	negated := false
	if len(name) > 0 && name[0] == '~' {
		negated = true
		name = name[1:]
	}
	var lit aig.Lit
	switch name {
	case "0":
		lit = aig.FalseLit
	case "1":
		lit = aig.TrueLit
	default:
		l, err := b.Get(name)
		if err != nil {
			return 0, err
		}
		lit = l
	}
	if negated {
		return lit.Negate(), nil
	}
	return lit, nil
}

func evalGate(b *aig.Builder, g RawGate) (aig.Lit, error) {
	args := make([]aig.Lit, len(g.Args))
	for i, a := range g.Args {
		lit, err := resolveRef(b, a)
		if err != nil {
			return 0, &ParseError{Msg: fmt.Sprintf("signal %q: %v", g.LHS, err)}
		}
		args[i] = lit
	}
	switch g.Kind {
	case GateAnd:
		if len(args) < 1 {
			return 0, &ParseError{Msg: fmt.Sprintf("%s: AND needs at least one operand", g.LHS)}
		}
		return b.AndAll(args), nil
	case GateOr:
		if len(args) < 1 {
			return 0, &ParseError{Msg: fmt.Sprintf("%s: OR needs at least one operand", g.LHS)}
		}
		return b.OrAll(args), nil
	case GateNand:
		if len(args) < 1 {
			return 0, &ParseError{Msg: fmt.Sprintf("%s: NAND needs at least one operand", g.LHS)}
		}
		return b.Not(b.AndAll(args)), nil
	case GateNor:
		if len(args) < 1 {
			return 0, &ParseError{Msg: fmt.Sprintf("%s: NOR needs at least one operand", g.LHS)}
		}
		return b.Not(b.OrAll(args)), nil
	case GateXor:
		if len(args) < 1 {
			return 0, &ParseError{Msg: fmt.Sprintf("%s: XOR needs at least one operand", g.LHS)}
		}
		return b.XorAll(args), nil
	case GateXnor:
		if len(args) < 1 {
			return 0, &ParseError{Msg: fmt.Sprintf("%s: XNOR needs at least one operand", g.LHS)}
		}
		return b.Not(b.XorAll(args)), nil
	case GateNot:
		if len(args) != 1 {
			return 0, &ParseError{Msg: fmt.Sprintf("%s: NOT takes exactly one operand", g.LHS)}
		}
		return b.Not(args[0]), nil
	case GateBuf:
		if len(args) != 1 {
			return 0, &ParseError{Msg: fmt.Sprintf("%s: BUF takes exactly one operand", g.LHS)}
		}
		return args[0], nil
	default:
		return 0, &ParseError{Msg: fmt.Sprintf("unsupported gate kind %q", g.Kind)}
	}
}

// topoOrder orders n.Gates so every gate's arguments are defined before
// it runs, via Kahn's algorithm over the LHS-dependency graph. AIGER
// input already satisfies this order by construction, so this is a
// cheap pass-through for it.
func topoOrder(n *RawNetlist) ([]int, error) {
	lhsToIdx := make(map[string]int, len(n.Gates))
	for i, g := range n.Gates {
		lhsToIdx[g.LHS] = i
	}
	inputSet := make(map[string]bool, len(n.Inputs))
	for _, name := range n.Inputs {
		inputSet[name] = true
	}

	indeg := make([]int, len(n.Gates))
	uses := make([][]int, len(n.Gates))
	for i, g := range n.Gates {
		for _, arg := range g.Args {
			ref := arg
			if len(ref) > 0 && ref[0] == '~' {
				ref = ref[1:]
			}
			if ref == "0" || ref == "1" || inputSet[ref] {
				continue
			}
			dep, ok := lhsToIdx[ref]
			if !ok {
				return nil, &ParseError{Msg: fmt.Sprintf("undefined signal %q used in assignment %q", ref, g.LHS)}
			}
			indeg[i]++
			uses[dep] = append(uses[dep], i)
		}
	}

	queue := make([]int, 0, len(n.Gates))
	for i, d := range indeg {
		if d == 0 {
			queue = append(queue, i)
		}
	}
	order := make([]int, 0, len(n.Gates))
	for len(queue) > 0 {
		idx := queue[0]
		queue = queue[1:]
		order = append(order, idx)
		for _, next := range uses[idx] {
			indeg[next]--
			if indeg[next] == 0 {
				queue = append(queue, next)
			}
		}
	}
	if len(order) != len(n.Gates) {
		return nil, &ParseError{Msg: "cycle detected in assignments"}
	}
	return order, nil
}
