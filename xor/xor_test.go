package xor

import (
	"math/rand/v2"
	"testing"

	"github.com/crillab/circuitcount/cnf"
	"github.com/crillab/circuitcount/sat"
)

func evalXor(vars []cnf.Var, rhs bool, model []bool) bool {
	parity := false
	for _, v := range vars {
		if int(v) < len(model) && model[v] {
			parity = !parity
		}
	}
	return parity == rhs
}

func TestAppendConstraintSoundness(t *testing.T) {
	base := cnf.NewCNF(3)
	v0, v1, v2 := cnf.Var(0), cnf.Var(1), cnf.Var(2)

	for _, rhs := range []bool{true, false} {
		c := base.Clone()
		AppendConstraint(c, Constraint{Vars: []cnf.Var{v0, v1, v2}, RHS: rhs})

		solver := sat.NewCDCL(c)
		res, err := solver.Solve()
		if err != nil {
			t.Fatalf("solve: %v", err)
		}
		if res.Status != sat.Sat {
			t.Fatalf("rhs=%v: expected a satisfying assignment to exist", rhs)
		}
		if !evalXor([]cnf.Var{v0, v1, v2}, rhs, res.Model) {
			t.Errorf("rhs=%v: model %v does not satisfy the parity constraint", rhs, res.Model)
		}
	}
}

func TestAppendConstraintExactlyHalvesModelCount(t *testing.T) {
	base := cnf.NewCNF(3)
	vars := []cnf.Var{0, 1, 2}
	c := base.Clone()
	AppendConstraint(c, Constraint{Vars: vars, RHS: true})

	solver := sat.NewCDCL(c)
	found := 0
	for {
		res, err := solver.Solve()
		if err != nil {
			t.Fatalf("solve: %v", err)
		}
		if res.Status != sat.Sat {
			break
		}
		if !evalXor(vars, true, res.Model) {
			t.Fatalf("model %v violates the parity constraint", res.Model)
		}
		found++
		block := make(cnf.Clause, len(vars))
		for i, v := range vars {
			block[i] = v.SignedLit(res.Model[v])
		}
		solver.AddClause(block)
		if found > 10 {
			t.Fatalf("enumeration did not terminate")
		}
	}
	if found != 4 { // exactly half of the 8 assignments over 3 free vars
		t.Errorf("expected 4 satisfying assignments, got %d", found)
	}
}

func TestSampleRejectsInvalidSparsity(t *testing.T) {
	rng := rand.New(rand.NewChaCha8([32]byte{}))
	if _, err := Sample(rng, []cnf.Var{0, 1}, 1, 0); err == nil {
		t.Fatalf("expected an error for p=0")
	}
	if _, err := Sample(rng, []cnf.Var{0, 1}, 1, 1.5); err == nil {
		t.Fatalf("expected an error for p>1")
	}
}

func TestSampleIsReproducibleForAFixedSeed(t *testing.T) {
	vars := []cnf.Var{0, 1, 2, 3}
	var seed [32]byte
	seed[0] = 7

	rng1 := rand.New(rand.NewChaCha8(seed))
	got1, err := Sample(rng1, vars, 5, 0.5)
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	rng2 := rand.New(rand.NewChaCha8(seed))
	got2, err := Sample(rng2, vars, 5, 0.5)
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	if len(got1) != len(got2) {
		t.Fatalf("lengths differ: %d vs %d", len(got1), len(got2))
	}
	for i := range got1 {
		if got1[i].RHS != got2[i].RHS || len(got1[i].Vars) != len(got2[i].Vars) {
			t.Fatalf("constraint %d differs between identically-seeded runs", i)
		}
		for j := range got1[i].Vars {
			if got1[i].Vars[j] != got2[i].Vars[j] {
				t.Fatalf("constraint %d var %d differs between identically-seeded runs", i, j)
			}
		}
	}
}
