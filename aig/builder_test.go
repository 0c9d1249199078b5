package aig

import "testing"

func TestMkAndConstantAbsorption(t *testing.T) {
	b := NewBuilder()
	a, _ := b.Input("a")
	if got := b.MkAnd(FalseLit, a); got != FalseLit {
		t.Errorf("AND with false: expected FalseLit, got %v", got)
	}
	if got := b.MkAnd(a, FalseLit); got != FalseLit {
		t.Errorf("AND with false (rhs): expected FalseLit, got %v", got)
	}
	if got := b.MkAnd(TrueLit, a); got != a {
		t.Errorf("AND with true: expected %v, got %v", a, got)
	}
}

func TestMkAndIdempotenceAndComplement(t *testing.T) {
	b := NewBuilder()
	a, _ := b.Input("a")
	if got := b.MkAnd(a, a); got != a {
		t.Errorf("AND(a,a): expected %v, got %v", a, got)
	}
	if got := b.MkAnd(a, b.Not(a)); got != FalseLit {
		t.Errorf("AND(a,!a): expected FalseLit, got %v", got)
	}
}

func TestMkAndStructuralHashing(t *testing.T) {
	b := NewBuilder()
	x, _ := b.Input("x")
	y, _ := b.Input("y")

	n1 := b.MkAnd(x, y)
	n2 := b.MkAnd(y, x) // same unordered pair, same polarities
	if n1 != n2 {
		t.Errorf("expected structural hashing to collapse AND(x,y) and AND(y,x), got %v and %v", n1, n2)
	}

	n3 := b.MkAnd(b.Not(x), y) // different polarity on x: must be a distinct node
	if n3 == n1 {
		t.Errorf("AND(!x,y) must not collapse with AND(x,y)")
	}

	aig := b.Finish([]Lit{n1, n3})
	if aig.NumAnds() != 2 {
		t.Errorf("expected exactly 2 AND nodes after hash-consing, got %d", aig.NumAnds())
	}
}

func TestTopologicalOrder(t *testing.T) {
	b := NewBuilder()
	x, _ := b.Input("x")
	y, _ := b.Input("y")
	n1 := b.MkAnd(x, y)
	n2 := b.MkAnd(n1, x)
	aig := b.Finish([]Lit{n2})
	for _, g := range aig.Gates {
		if g.A.ID() >= g.ID || g.B.ID() >= g.ID {
			t.Errorf("gate %d violates topological order: operands %d, %d", g.ID, g.A.ID(), g.B.ID())
		}
	}
}

func TestOrXorDerivedGates(t *testing.T) {
	b := NewBuilder()
	x, _ := b.Input("x")
	y, _ := b.Input("y")
	aig := b.Finish([]Lit{b.Or(x, y), b.Xor(x, y), b.Nand(x, y), b.Nor(x, y), b.Xnor(x, y)})

	for a0 := 0; a0 < 2; a0++ {
		for a1 := 0; a1 < 2; a1++ {
			bits := []bool{a0 == 1, a1 == 1}
			got := aig.Eval(bits)
			want := []bool{
				bits[0] || bits[1],
				bits[0] != bits[1],
				!(bits[0] && bits[1]),
				!(bits[0] || bits[1]),
				bits[0] == bits[1],
			}
			for i := range want {
				if got[i] != want[i] {
					t.Errorf("bits=%v output %d: got %v, want %v", bits, i, got[i], want[i])
				}
			}
		}
	}
}
