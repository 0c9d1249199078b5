package cnf

import (
	"testing"

	"github.com/crillab/circuitcount/aig"
)

// satisfies reports whether assignment (indexed by CNF Var) satisfies clause.
func satisfies(clause Clause, assign map[Var]bool) bool {
	for _, l := range clause {
		v := assign[l.Var()]
		if l.IsPositive() == v {
			return true
		}
	}
	return false
}

func evalEncoding(enc *Encoding, projBits []bool) bool {
	assign := make(map[Var]bool, len(enc.CNF.Clauses))
	for i, v := range enc.ProjectionVars {
		assign[v] = projBits[i]
	}
	// Propagate gate variables forward: clauses are emitted in topological
	// order, three per gate, so a fixed point in one forward pass suffices
	// once every operand variable is already assigned.
	for {
		progress := false
		for i := 0; i+2 < len(enc.CNF.Clauses); i += 3 {
			// clause i = (-g, a), clause i+1 = (-g, b), clause i+2 = (g, -a, -b)
			gLit := enc.CNF.Clauses[i][0].Negate()
			gv := gLit.Var()
			if _, ok := assign[gv]; ok {
				continue
			}
			aLit := enc.CNF.Clauses[i][1]
			bLit := enc.CNF.Clauses[i+1][1]
			av, aok := assign[aLit.Var()]
			bv, bok := assign[bLit.Var()]
			if !aok || !bok {
				continue
			}
			if !aLit.IsPositive() {
				av = !av
			}
			if !bLit.IsPositive() {
				bv = !bv
			}
			assign[gv] = av && bv
			progress = true
		}
		if !progress {
			break
		}
	}
	ov := assign[enc.OutputLit.Var()]
	if !enc.OutputLit.IsPositive() {
		ov = !ov
	}
	return ov
}

func TestEncodeAIGSoundness(t *testing.T) {
	b := aig.NewBuilder()
	x, _ := b.Input("x")
	y, _ := b.Input("y")
	z, _ := b.Input("z")
	out := b.Or(b.MkAnd(x, y), b.Not(z))
	built := b.Finish([]aig.Lit{out})

	enc, err := EncodeAIG(built, out)
	if err != nil {
		t.Fatalf("EncodeAIG: %v", err)
	}
	if len(enc.ProjectionVars) != 3 {
		t.Fatalf("expected 3 projection vars, got %d", len(enc.ProjectionVars))
	}

	for a0 := 0; a0 < 2; a0++ {
		for a1 := 0; a1 < 2; a1++ {
			for a2 := 0; a2 < 2; a2++ {
				bits := []bool{a0 == 1, a1 == 1, a2 == 1}
				want := built.Eval(bits)[0]
				got := evalEncoding(enc, bits)
				if want != got {
					t.Errorf("bits=%v: circuit=%v cnf=%v", bits, want, got)
				}

				// Every clause must also be satisfied by the full
				// assignment that makes the forward evaluation consistent.
				assign := map[Var]bool{}
				for i, v := range enc.ProjectionVars {
					assign[v] = bits[i]
				}
				fillGateVars(enc, assign)
				for _, cl := range enc.CNF.Clauses {
					if !satisfies(cl, assign) {
						t.Errorf("bits=%v: clause %v unsatisfied by gate-consistent assignment", bits, cl)
					}
				}
			}
		}
	}
}

func fillGateVars(enc *Encoding, assign map[Var]bool) {
	for {
		progress := false
		for i := 0; i+2 < len(enc.CNF.Clauses); i += 3 {
			gLit := enc.CNF.Clauses[i][0].Negate()
			gv := gLit.Var()
			if _, ok := assign[gv]; ok {
				continue
			}
			aLit := enc.CNF.Clauses[i][1]
			bLit := enc.CNF.Clauses[i+1][1]
			av, aok := assign[aLit.Var()]
			bv, bok := assign[bLit.Var()]
			if !aok || !bok {
				continue
			}
			if !aLit.IsPositive() {
				av = !av
			}
			if !bLit.IsPositive() {
				bv = !bv
			}
			assign[gv] = av && bv
			progress = true
		}
		if !progress {
			return
		}
	}
}

func TestEncodeAIGRejectsConstantOutput(t *testing.T) {
	b := aig.NewBuilder()
	built := b.Finish([]aig.Lit{})
	if _, err := EncodeAIG(built, aig.TrueLit); err == nil {
		t.Fatalf("expected error encoding a constant output")
	}
}
