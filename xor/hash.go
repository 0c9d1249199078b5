// Package xor builds the random parity ("XOR hash") constraints the
// ApproxMC-style hash-cell counter layers on top of a base CNF.
package xor

import (
	"fmt"
	"math/rand/v2"
	"sort"

	"github.com/crillab/circuitcount/cnf"
)

// Constraint is a random subset of projection variables paired with a
// target parity bit: it asserts XOR(vars) == rhs.
type Constraint struct {
	Vars []cnf.Var
	RHS  bool
}

// Sample draws m independent parity constraints over vars, including
// each variable in a constraint independently with probability p. An
// empty pick is replaced by a single uniformly-chosen variable so a
// constraint is never vacuous.
func Sample(rng *rand.Rand, vars []cnf.Var, m int, p float64) ([]Constraint, error) {
	if len(vars) == 0 {
		return nil, nil
	}
	if !(p > 0 && p <= 1) {
		return nil, fmt.Errorf("xor: sparsity p must be in (0,1], got %v", p)
	}

	out := make([]Constraint, 0, m)
	for i := 0; i < m; i++ {
		picked := make([]cnf.Var, 0, len(vars))
		for _, v := range vars {
			if rng.Float64() < p {
				picked = append(picked, v)
			}
		}
		if len(picked) == 0 {
			picked = append(picked, vars[rng.IntN(len(vars))])
		}
		sort.Slice(picked, func(a, b int) bool { return picked[a] < picked[b] })

		out = append(out, Constraint{Vars: picked, RHS: rng.IntN(2) == 1})
	}
	return out, nil
}
