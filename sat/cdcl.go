package sat

import "github.com/crillab/circuitcount/cnf"

// cdclClause is a clause tracked by two watched-literal positions into
// lits, without learned-clause or activity machinery: this backend
// backtracks chronologically rather than learning conflict clauses.
type cdclClause struct {
	lits   cnf.Clause
	w0, w1 int
}

// CDCL is the watched-literal backend meant to stand in for a production
// SAT engine. It is a decision-stack search with unit propagation driven
// by per-literal watch lists instead of full clause scans.
type CDCL struct {
	base    *cnf.CNF
	numVars int
	clauses []*cdclClause
	assign  []int8 // per Var: 0 unassigned, 1 true, -1 false
	watches map[cnf.Lit][]*cdclClause
	trail   []cnf.Lit
	qHead   int

	// trailLim[i] is the trail length at the start of decision level i;
	// trailLim[0] == 0 always. levelDecisionLit/levelFlipped have one
	// entry per decision level (index level-1).
	trailLim         []int
	levelDecisionLit []cnf.Lit
	levelFlipped     []bool

	unsat bool
	stats Stats
}

// NewCDCL returns a CDCL-backed solver seeded with c's clauses.
func NewCDCL(c *cnf.CNF) Solver {
	s := &CDCL{
		base:     c,
		numVars:  int(c.NumVars),
		assign:   make([]int8, c.NumVars),
		watches:  make(map[cnf.Lit][]*cdclClause),
		trailLim: []int{0},
	}
	for _, cl := range c.Clauses {
		s.addClauseInternal(cl)
	}
	return s
}

func (s *CDCL) ResetOrFresh() Solver { return NewCDCL(s.base) }

func (s *CDCL) Stats() Stats { return s.stats }

func (s *CDCL) Fresh() cnf.Var {
	v := cnf.Var(s.numVars)
	s.numVars++
	s.assign = append(s.assign, 0)
	return v
}

// AddClause appends a clause to the live problem. It always rewinds to
// decision level 0 first, since the fresh unit propagation it may trigger
// is only sound as a permanent fact, not one tied to a decision branch
// the search might later undo.
func (s *CDCL) AddClause(clause cnf.Clause) {
	s.backtrackToLevel(0)
	if v := maxVar(clause); int(v) >= s.numVars {
		extra := int(v) + 1 - s.numVars
		s.numVars += extra
		s.assign = append(s.assign, make([]int8, extra)...)
	}
	s.addClauseInternal(clause)
}

func (s *CDCL) addClauseInternal(lits cnf.Clause) {
	if s.unsat {
		return
	}
	if len(lits) == 0 {
		s.unsat = true
		return
	}
	cl := &cdclClause{lits: append(cnf.Clause{}, lits...)}

	slots := make([]int, 0, 2)
	for i, l := range cl.lits {
		if s.litValue(l) != -1 {
			slots = append(slots, i)
			if len(slots) == 2 {
				break
			}
		}
	}
	switch len(slots) {
	case 0:
		s.unsat = true
	case 1:
		cl.w0, cl.w1 = slots[0], slots[0]
		s.clauses = append(s.clauses, cl)
		watched := cl.lits[cl.w0]
		s.watches[watched] = append(s.watches[watched], cl)
		if s.litValue(watched) == 0 {
			if !s.enqueueFact(watched) || !s.propagate() {
				s.unsat = true
			}
		}
	default:
		cl.w0, cl.w1 = slots[0], slots[1]
		s.clauses = append(s.clauses, cl)
		s.watches[cl.lits[cl.w0]] = append(s.watches[cl.lits[cl.w0]], cl)
		s.watches[cl.lits[cl.w1]] = append(s.watches[cl.lits[cl.w1]], cl)
	}
}

func (s *CDCL) litValue(l cnf.Lit) int8 {
	a := s.assign[l.Var()]
	if a == 0 {
		return 0
	}
	if l.IsPositive() {
		return a
	}
	return -a
}

func (s *CDCL) enqueueFact(lit cnf.Lit) bool {
	v := lit.Var()
	want := int8(1)
	if !lit.IsPositive() {
		want = -1
	}
	cur := s.assign[v]
	if cur != 0 {
		return cur == want
	}
	s.assign[v] = want
	s.trail = append(s.trail, lit)
	return true
}

// propagate drains the trail queue, updating watch lists and enqueueing
// newly-forced facts. It returns false as soon as a clause is falsified.
func (s *CDCL) propagate() bool {
	for s.qHead < len(s.trail) {
		lit := s.trail[s.qHead]
		s.qHead++
		falseLit := lit.Negate()
		watchers := s.watches[falseLit]
		s.watches[falseLit] = nil
		for i, cl := range watchers {
			if !s.handleWatch(cl, falseLit) {
				s.watches[falseLit] = append(s.watches[falseLit], watchers[i+1:]...)
				return false
			}
		}
	}
	return true
}

// handleWatch re-examines a clause that was watching falseLit, now that
// falseLit has become false. It always leaves the clause correctly
// attached to some literal's watch list — falseLit's if it still watches
// it, or the new literal's if the watch moved — before returning.
func (s *CDCL) handleWatch(cl *cdclClause, falseLit cnf.Lit) bool {
	var watchIdx, otherIdx int
	if cl.lits[cl.w0] == falseLit {
		watchIdx, otherIdx = cl.w0, cl.w1
	} else {
		watchIdx, otherIdx = cl.w1, cl.w0
	}
	other := cl.lits[otherIdx]
	if s.litValue(other) == 1 {
		s.watches[falseLit] = append(s.watches[falseLit], cl)
		return true
	}
	for idx, l := range cl.lits {
		if idx == cl.w0 || idx == cl.w1 {
			continue
		}
		if s.litValue(l) != -1 {
			if watchIdx == cl.w0 {
				cl.w0 = idx
			} else {
				cl.w1 = idx
			}
			s.watches[l] = append(s.watches[l], cl)
			return true
		}
	}
	s.watches[falseLit] = append(s.watches[falseLit], cl)
	if s.litValue(other) == -1 {
		return false
	}
	return s.enqueueFact(other)
}

func (s *CDCL) pickUnassignedVar() int {
	for v := 0; v < s.numVars; v++ {
		if s.assign[v] == 0 {
			return v
		}
	}
	return -1
}

func (s *CDCL) decide(v int) {
	lit := cnf.Var(v).SignedLit(false)
	s.trailLim = append(s.trailLim, len(s.trail))
	s.levelDecisionLit = append(s.levelDecisionLit, lit)
	s.levelFlipped = append(s.levelFlipped, false)
	s.enqueueFact(lit)
}

func (s *CDCL) undoTo(lim int) {
	for len(s.trail) > lim {
		lit := s.trail[len(s.trail)-1]
		s.trail = s.trail[:len(s.trail)-1]
		s.assign[lit.Var()] = 0
	}
	if s.qHead > len(s.trail) {
		s.qHead = len(s.trail)
	}
}

func (s *CDCL) backtrackToLevel(lvl int) {
	for len(s.trailLim)-1 > lvl {
		top := len(s.trailLim) - 1
		s.undoTo(s.trailLim[top])
		s.trailLim = s.trailLim[:top]
		s.levelDecisionLit = s.levelDecisionLit[:top-1]
		s.levelFlipped = s.levelFlipped[:top-1]
	}
}

// backtrackAndFlip undoes decision levels until it finds one whose other
// polarity hasn't been tried, tries it, and returns true; it returns
// false once every decision (down to level 0) has been exhausted, which
// means the problem is unsatisfiable.
func (s *CDCL) backtrackAndFlip() bool {
	for len(s.trailLim) > 1 {
		top := len(s.trailLim) - 1
		flipped := s.levelFlipped[top-1]
		decLit := s.levelDecisionLit[top-1]
		s.undoTo(s.trailLim[top])
		s.trailLim = s.trailLim[:top]
		s.levelDecisionLit = s.levelDecisionLit[:top-1]
		s.levelFlipped = s.levelFlipped[:top-1]
		if !flipped {
			negLit := decLit.Negate()
			s.trailLim = append(s.trailLim, len(s.trail))
			s.levelDecisionLit = append(s.levelDecisionLit, negLit)
			s.levelFlipped = append(s.levelFlipped, true)
			s.enqueueFact(negLit)
			return true
		}
	}
	return false
}

func (s *CDCL) modelSnapshot() []bool {
	model := make([]bool, s.numVars)
	for i, a := range s.assign {
		model[i] = a > 0
	}
	return model
}

func (s *CDCL) Solve() (Result, error) {
	s.stats.SolveCalls++
	if s.unsat {
		return Result{Status: Unsat}, nil
	}
	s.backtrackToLevel(0)
	s.qHead = 0
	if !s.propagate() {
		s.unsat = true
		return Result{Status: Unsat}, nil
	}
	for {
		v := s.pickUnassignedVar()
		if v < 0 {
			return Result{Status: Sat, Model: s.modelSnapshot()}, nil
		}
		s.decide(v)
		for !s.propagate() {
			if !s.backtrackAndFlip() {
				s.unsat = true
				return Result{Status: Unsat}, nil
			}
		}
	}
}
