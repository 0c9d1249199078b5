// Package circuit parses combinational circuit descriptions — AIGER
// ASCII (.aag) and the BENCH gate-list format — into and-inverter
// graphs, lowering both front-ends into a shared raw gate-list shape
// before handing off to the aig package's builder.
package circuit

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/crillab/circuitcount/aig"
)

// GateKind enumerates the gate primitives both front-ends can emit.
type GateKind string

const (
	GateAnd  GateKind = "AND"
	GateOr   GateKind = "OR"
	GateNand GateKind = "NAND"
	GateNor  GateKind = "NOR"
	GateXor  GateKind = "XOR"
	GateXnor GateKind = "XNOR"
	GateNot  GateKind = "NOT"
	GateBuf  GateKind = "BUF"
)

// RawGate is one assignment in the shared (gate_kind, output_name,
// operand_names) shape both front-ends produce. Operand names "0"/"1"
// are the AIG constants; a leading '~' negates the reference.
type RawGate struct {
	Kind GateKind
	LHS  string
	Args []string
}

// RawNetlist is a circuit front-end's common output shape, before
// lowering to an AIG: declared inputs and outputs by name, plus the gate
// assignments that define every non-input signal. Outputs may themselves
// carry a leading '~' for an inverted output literal.
type RawNetlist struct {
	Inputs  []string
	Outputs []string
	Gates   []RawGate
}

// ParseErrorKind distinguishes why a front-end rejected its input.
type ParseErrorKind int

const (
	ParseErrSyntax ParseErrorKind = iota
	ParseErrUnsupportedSequential
)

// ParseError reports why a front-end rejected its input, optionally
// addressed to a specific source line.
type ParseError struct {
	Kind ParseErrorKind
	Line int // 0 when not line-addressable
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
	}
	return e.Msg
}

// ErrUnsupportedSequential reports whether err is a ParseError flagging
// latches or other sequential constructs, which this package rejects.
func ErrUnsupportedSequential(err error) bool {
	pe, ok := err.(*ParseError)
	return ok && pe.Kind == ParseErrUnsupportedSequential
}

// Format selects a front-end, or auto-detection from the file extension.
type Format string

const (
	FormatAAG   Format = "aag"
	FormatBench Format = "bench"
	FormatAuto  Format = "auto"
)

// Load reads path, detects or honors format, parses it, and lowers the
// result to an immutable *aig.AIG.
func Load(path string, format Format) (*aig.AIG, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	resolved := format
	if resolved == FormatAuto || resolved == "" {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".aag":
			resolved = FormatAAG
		case ".bench":
			resolved = FormatBench
		default:
			return nil, &ParseError{Kind: ParseErrSyntax, Msg: fmt.Sprintf("unrecognized extension for format=auto: %s", path)}
		}
	}

	var netlist *RawNetlist
	switch resolved {
	case FormatAAG:
		netlist, err = ParseAAG(f)
	case FormatBench:
		netlist, err = ParseBench(f)
	default:
		return nil, &ParseError{Kind: ParseErrSyntax, Msg: fmt.Sprintf("unknown format %q", resolved)}
	}
	if err != nil {
		return nil, err
	}
	return Lower(netlist)
}

// readAllLines reads r fully and splits it into lines without trailing
// newlines, the shape both front-ends parse line-by-line.
func readAllLines(r io.Reader) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	text := string(data)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines, nil
}
