package count

import (
	"encoding/binary"
	"math/rand/v2"
	"sort"
	"time"

	"github.com/crillab/circuitcount/cnf"
	"github.com/crillab/circuitcount/sat"
	"github.com/crillab/circuitcount/xor"
)

// HashCellResult is the outcome of an approximate count: an estimate,
// the XOR-layer count that produced it, and the solve calls summed over
// every repetition.
type HashCellResult struct {
	Estimate   uint64
	SelectedM  int
	SolveCalls int
	TimedOut   bool
	// Saturated is true when every repetition exhausted its trials
	// without finding a conclusive layer.
	Saturated bool
}

// HashCellCount runs an ApproxMC-style approximate count: r independent
// repetitions, each scanning XOR-layer counts m = 1, 2, ... until the
// exact enumerator reports a cell of size <= pivot/2, with up to
// opts.Trials inner retries per repetition when every layer saturates.
// The repetition estimates are aggregated by integer median. newSolver
// constructs a fresh solver over an augmented CNF; deadline, if
// non-zero, is checked before each new XOR level.
func HashCellCount(base *cnf.CNF, projection []cnf.Var, opts Options, newSolver func(*cnf.CNF) sat.Solver, deadline time.Time) (HashCellResult, error) {
	type trialEstimate struct {
		estimate uint64
		m        int
	}

	var estimates []trialEstimate
	var totalSolveCalls int

	for rep := 0; rep < opts.R; rep++ {
		seed := deriveSeed(opts.Seed, rep)
		rng := rand.New(rand.NewChaCha8(seed))

		est, m, solveCalls, saturated, timedOut, err := runRepetition(base, projection, opts, rng, newSolver, deadline)
		totalSolveCalls += solveCalls
		if err != nil {
			return HashCellResult{SolveCalls: totalSolveCalls}, err
		}
		if timedOut {
			return HashCellResult{SolveCalls: totalSolveCalls, TimedOut: true}, nil
		}
		if saturated {
			continue
		}
		estimates = append(estimates, trialEstimate{estimate: est, m: m})
	}

	if len(estimates) == 0 {
		return HashCellResult{SolveCalls: totalSolveCalls, Saturated: true}, nil
	}

	sort.Slice(estimates, func(i, j int) bool { return estimates[i].estimate < estimates[j].estimate })
	median := estimates[(len(estimates)-1)/2]
	return HashCellResult{
		Estimate:   median.estimate,
		SelectedM:  median.m,
		SolveCalls: totalSolveCalls,
	}, nil
}

// runRepetition scans XOR-layer counts looking for one whose exact cell
// count is <= pivot/2, retrying up to opts.Trials times (each retry
// continuing to draw from the same PRNG stream, so randomness is fresh
// but reproducible for a fixed seed) before giving up on this repetition.
func runRepetition(
	base *cnf.CNF,
	projection []cnf.Var,
	opts Options,
	rng *rand.Rand,
	newSolver func(*cnf.CNF) sat.Solver,
	deadline time.Time,
) (estimate uint64, selectedM, solveCalls int, saturated, timedOut bool, err error) {
	k := len(projection)
	hasDeadline := !deadline.IsZero()

	for attempt := 0; attempt < opts.Trials; attempt++ {
		for level := 1; level <= k; level++ {
			if hasDeadline && !time.Now().Before(deadline) {
				return 0, 0, solveCalls, false, true, nil
			}

			constraints, serr := xor.Sample(rng, projection, level, opts.P)
			if serr != nil {
				return 0, 0, solveCalls, false, false, serr
			}
			augmented := base.Clone()
			for _, c := range constraints {
				xor.AppendConstraint(augmented, c)
			}

			solver := newSolver(augmented)
			exact, eerr := ExactCount(solver, projection, opts.Pivot, deadline)
			solveCalls += exact.SolveCalls
			if eerr != nil {
				return 0, 0, solveCalls, false, false, eerr
			}
			if exact.TimedOut {
				return 0, 0, solveCalls, false, true, nil
			}
			if !exact.Saturated && int(exact.Count) <= opts.Pivot/2 {
				return scaleByLevel(exact.Count, level), level, solveCalls, false, false, nil
			}
		}
	}
	return 0, 0, solveCalls, true, false, nil
}

// scaleByLevel computes n * 2^level, saturating at MaxUint64 rather than
// wrapping if level is implausibly large for the observed cone size.
func scaleByLevel(n uint64, level int) uint64 {
	if level >= 64 {
		return ^uint64(0)
	}
	scale := uint64(1) << uint(level)
	if n != 0 && scale > (^uint64(0))/n {
		return ^uint64(0)
	}
	return n * scale
}

// deriveSeed expands a small integer seed plus a repetition index into a
// full ChaCha8 key via splitmix64, so that repetitions are independent
// but the whole run is bit-identical for a fixed seed.
func deriveSeed(seed uint64, rep int) [32]byte {
	var out [32]byte
	x := seed + uint64(rep)*0x9E3779B97F4A7C15
	for i := 0; i < 4; i++ {
		x += 0x9E3779B97F4A7C15
		z := x
		z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
		z = (z ^ (z >> 27)) * 0x94D049BB133111EB
		z = z ^ (z >> 31)
		binary.LittleEndian.PutUint64(out[i*8:], z)
	}
	return out
}
