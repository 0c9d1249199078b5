package aig

import "fmt"

// pairKey is the normalized structural-hash key for an AND gate: its two
// operand literals with the smaller one first.
type pairKey struct {
	lo, hi Lit
}

// Builder incrementally constructs an AIG, structurally hashing AND gates
// so that no two gates share the same unordered operand pair.
type Builder struct {
	nextID uint32
	names  map[string]Lit
	order  []string
	inputs []uint32
	gates  []AndGate
	hash   map[pairKey]uint32
	gateAt map[uint32]*AndGate
	isIn   map[uint32]bool
}

// NewBuilder returns an empty Builder. Node id 0 is reserved for the
// constant literals.
func NewBuilder() *Builder {
	return &Builder{
		nextID: 1,
		names:  make(map[string]Lit),
		hash:   make(map[pairKey]uint32),
		gateAt: make(map[uint32]*AndGate),
		isIn:   make(map[uint32]bool),
	}
}

func (b *Builder) alloc() uint32 {
	id := b.nextID
	b.nextID++
	return id
}

// Input declares a new named primary input.
func (b *Builder) Input(name string) (Lit, error) {
	if _, ok := b.names[name]; ok {
		return 0, fmt.Errorf("aig: name already defined: %s", name)
	}
	id := b.alloc()
	lit := MkLit(id, false)
	b.names[name] = lit
	b.order = append(b.order, name)
	b.inputs = append(b.inputs, id)
	b.isIn[id] = true
	return lit, nil
}

// FreshInput allocates an unnamed primary input, used when rebuilding a
// simplified AIG where original signal names are no longer meaningful.
func (b *Builder) FreshInput() Lit {
	id := b.alloc()
	b.inputs = append(b.inputs, id)
	b.isIn[id] = true
	return MkLit(id, false)
}

// Get looks up a previously declared or assigned signal by name.
func (b *Builder) Get(name string) (Lit, error) {
	lit, ok := b.names[name]
	if !ok {
		return 0, fmt.Errorf("aig: unknown signal: %s", name)
	}
	return lit, nil
}

// Set binds name to an already-computed literal (used for the left-hand
// side of a BENCH assignment).
func (b *Builder) Set(name string, lit Lit) error {
	if _, ok := b.names[name]; ok {
		return fmt.Errorf("aig: name already defined: %s", name)
	}
	b.names[name] = lit
	return nil
}

// Not returns the complement of x. It never allocates a node.
func (b *Builder) Not(x Lit) Lit {
	return x.Negate()
}

// MkAnd implements the five-case AND-folding contract: constant
// absorption, identity, idempotence, complementation, and otherwise
// structural-hash-consed allocation of a fresh node.
func (b *Builder) MkAnd(a, c Lit) Lit {
	if a == FalseLit || c == FalseLit {
		return FalseLit
	}
	if a == TrueLit {
		return c
	}
	if c == TrueLit {
		return a
	}
	if a == c {
		return a
	}
	if a == c.Negate() {
		return FalseLit
	}

	lo, hi := a, c
	if lo > hi {
		lo, hi = hi, lo
	}
	key := pairKey{lo, hi}
	if id, ok := b.hash[key]; ok {
		return MkLit(id, false)
	}

	id := b.alloc()
	g := AndGate{ID: id, A: lo, B: hi}
	b.gates = append(b.gates, g)
	gp := &b.gates[len(b.gates)-1]
	b.gateAt[id] = gp
	b.hash[key] = id
	return MkLit(id, false)
}

// Or, Xor, Nand, Nor, and Xnor are all derived from MkAnd/Not.
func (b *Builder) Or(a, c Lit) Lit  { return b.Not(b.MkAnd(b.Not(a), b.Not(c))) }
func (b *Builder) Nand(a, c Lit) Lit { return b.Not(b.MkAnd(a, c)) }
func (b *Builder) Nor(a, c Lit) Lit  { return b.Not(b.Or(a, c)) }
func (b *Builder) Xor(a, c Lit) Lit {
	return b.Or(b.MkAnd(a, b.Not(c)), b.MkAnd(b.Not(a), c))
}
func (b *Builder) Xnor(a, c Lit) Lit { return b.Not(b.Xor(a, c)) }

// AndAll, OrAll, and XorAll fold a 2+-ary gate pairwise left-to-right
// through the corresponding two-input primitive.
func (b *Builder) AndAll(args []Lit) Lit { return b.foldLeft(args, b.MkAnd) }
func (b *Builder) OrAll(args []Lit) Lit  { return b.foldLeft(args, b.Or) }
func (b *Builder) XorAll(args []Lit) Lit { return b.foldLeft(args, b.Xor) }

func (b *Builder) foldLeft(args []Lit, op func(Lit, Lit) Lit) Lit {
	acc := args[0]
	for _, v := range args[1:] {
		acc = op(acc, v)
	}
	return acc
}

// Finish freezes the builder into an immutable AIG with the given outputs.
func (b *Builder) Finish(outputs []Lit) *AIG {
	maxID := uint32(0)
	if b.nextID > 0 {
		maxID = b.nextID - 1
	}
	gates := make([]AndGate, len(b.gates))
	copy(gates, b.gates)
	gateAt := make(map[uint32]*AndGate, len(gates))
	for i := range gates {
		gateAt[gates[i].ID] = &gates[i]
	}
	isInput := make(map[uint32]bool, len(b.inputs))
	for _, id := range b.inputs {
		isInput[id] = true
	}
	inputs := make([]uint32, len(b.inputs))
	copy(inputs, b.inputs)
	outs := make([]Lit, len(outputs))
	copy(outs, outputs)
	return &AIG{
		MaxID:   maxID,
		Inputs:  inputs,
		Outputs: outs,
		Gates:   gates,
		isInput: isInput,
		gateAt:  gateAt,
	}
}
