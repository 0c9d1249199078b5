// Package count implements exact and ApproxMC-style approximate
// projected model counters over and-inverter graphs, and the
// orchestrator that ties circuit parsing, CNF encoding, and a SAT
// backend together into a single counting query.
package count

import "github.com/crillab/circuitcount/circuit"

// Backend selects which sat.Solver implementation a count uses.
type Backend string

const (
	BackendDPLL Backend = "dpll"
	// BackendVarisat names the CDCL-style two-watched-literal backend.
	BackendVarisat Backend = "varisat"
)

// Format selects the circuit file format, or auto-detection from the
// file extension. It is an alias of circuit.Format so callers can pass
// an Options value straight through to circuit.Load.
type Format = circuit.Format

const (
	FormatAAG   = circuit.FormatAAG
	FormatBench = circuit.FormatBench
	FormatAuto  = circuit.FormatAuto
)

// Options configures a counting query.
type Options struct {
	Seed      uint64
	Pivot     int
	Trials    int
	P         float64
	R         int
	Backend   Backend
	Format    Format
	TimeoutMs int // 0 means no timeout
}

// DefaultOptions returns an Options value with the defaults
// cmd/circuitcount falls back to when a flag is omitted (cmd/benchdataset
// uses its own flag defaults).
func DefaultOptions() Options {
	return Options{
		Pivot:   1000,
		Trials:  3,
		P:       0.5,
		R:       5,
		Backend: BackendVarisat,
		Format:  FormatAuto,
	}
}
