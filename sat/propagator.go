package sat

// DecisionRef pairs a decision literal with the decision level it was made
// at, as returned by the reason-graph queries.
type DecisionRef struct {
	Level int32
	Lit   Lit
}

// Propagator is a two-watched-literal unit-propagation engine: it maintains
// a trail, decision levels, and the clause database, and can detect
// conflicts, derive conflict clauses (first-UIP with redundancy
// minimization), and backjump non-chronologically.
//
// A Propagator is single-threaded and synchronous: no method suspends or is
// cancellable mid-call, and all state is owned by the instance. Concurrent
// mutation from multiple goroutines is not supported and is not detected.
type Propagator struct {
	// -------- FORMULA DATA --------
	unaryClauses  []Lit
	binaryClauses [][]Lit // indexed by literal: partners q s.t. {l, q} is a clause
	clauseDB      []Lit   // contiguous long-clause store; clauseDB[ref-1] is the length header
	numVars       Var

	// -------- VARIABLE/LITERAL STATE --------
	variables []variableState
	watchers  [][]watcher // indexed by literal

	// -------- TRAIL --------
	trailLits      []Lit
	trailReasons   []Reason
	levels         []levelInfo
	trailQueueHead int

	// -------- CONFLICT STATE --------
	conflictReason Reason
	conflictLit    Lit
	stampCounter   uint32
	conflicting    bool

	// -------- AUXILIARY BUFFERS (reused across calls to avoid reallocating) --------
	learnBuffer              []Lit
	supportingDecisionBuffer []DecisionRef
}

// NewPropagator creates a propagator with no clauses or variables: level 0,
// empty trail.
func NewPropagator() *Propagator {
	return &Propagator{
		levels:      []levelInfo{newLevelInfo(0)},
		conflictLit: NIL,
	}
}

// NewPropagatorFromModel creates a propagator from a completed model
// builder: it copies the unary and binary clauses, flattens the longer
// clauses into the contiguous store, installs watches, and propagates the
// formula to a fixed point (or to a level-0 conflict, for an
// already-unsatisfiable formula).
func NewPropagatorFromModel(model *ModelBuilder) *Propagator {
	p := &Propagator{
		unaryClauses:  append([]Lit(nil), model.unaryClauses...),
		binaryClauses: copyBinaryClauses(model.binaryClauses),
		numVars:       model.currentLit.Var(),
		conflictLit:   NIL,
	}
	p.variables = make([]variableState, p.numVars)
	for i := range p.variables {
		p.variables[i] = newVariableState()
	}
	p.levels = []levelInfo{newLevelInfo(0)}

	p.processShortClauses()
	p.importLargeClauses(model.longerClauses)
	p.initWatches()
	if !p.conflicting {
		p.Propagate()
	}
	return p
}

func copyBinaryClauses(src [][]Lit) [][]Lit {
	dst := make([][]Lit, len(src))
	for i, l := range src {
		dst[i] = append([]Lit(nil), l...)
	}
	return dst
}

// -------- ACCESS OF CLAUSES AND LITERALS --------

// LitsOf returns the literals of the long clause referred to by clause.
// Implements ClauseStore.
func (p *Propagator) LitsOf(clause ClauseRef) []Lit {
	length := p.clauseDB[clause-1]
	return p.clauseDB[clause : clause+length]
}

func (p *Propagator) mutLitsOf(clause ClauseRef) []Lit {
	return p.LitsOf(clause)
}

// ClauseLength returns the length of the long clause referred to by clause.
func (p *Propagator) ClauseLength(clause ClauseRef) ClauseLen {
	return p.clauseDB[clause-1]
}

// NextClause returns the clause reference immediately after clause.
func (p *Propagator) NextClause(clause ClauseRef) ClauseRef {
	return clause + p.clauseDB[clause-1] + 1
}

// UnaryClauses returns the literals forced by unary clauses.
func (p *Propagator) UnaryClauses() []Lit { return p.unaryClauses }

// BinaryPartnersOf returns the literals that occur together with l in a
// binary clause.
func (p *Propagator) BinaryPartnersOf(l Lit) []Lit { return p.binaryClauses[l] }

// FirstLongerClause returns the ClauseRef of the first clause of length > 2.
func (p *Propagator) FirstLongerClause() ClauseRef { return 1 }

// LongerClauseEnd returns the ClauseRef one past the last long clause.
func (p *Propagator) LongerClauseEnd() ClauseRef { return Lit(len(p.clauseDB)) + 1 }

// AllLiterals returns every literal 0..2*NumVars()-1.
func (p *Propagator) AllLiterals() []Lit {
	all := make([]Lit, 2*p.numVars)
	for i := range all {
		all[i] = Lit(i)
	}
	return all
}

// NumVars returns the number of variables in the formula.
func (p *Propagator) NumVars() Var { return p.numVars }

// -------- STATE QUERY --------

// ValueOf returns the truth value of literal, or (false, false) if it is
// open -- use the second return value to distinguish "false" from "open".
func (p *Propagator) ValueOf(literal Lit) (value bool, known bool) {
	s := p.variables[literal.Var()].state(literal)
	if s < 0 {
		return false, false
	}
	return s == 1, true
}

// IsTrue reports whether literal is currently assigned true.
func (p *Propagator) IsTrue(literal Lit) bool {
	return p.variables[literal.Var()].isLitTrue(literal)
}

// IsFalse reports whether literal is currently assigned false.
func (p *Propagator) IsFalse(literal Lit) bool {
	return p.variables[literal.Var()].isLitFalse(literal)
}

// IsOpenOrTrue reports whether literal is open or true.
func (p *Propagator) IsOpenOrTrue(literal Lit) bool {
	return p.variables[literal.Var()].isLitOpenOrTrue(literal)
}

// IsOpen reports whether literal's variable is unassigned.
func (p *Propagator) IsOpen(literal Lit) bool {
	return p.variables[literal.Var()].isOpen()
}

// GetTrail returns the literals currently assigned true, in chronological
// order. The returned slice is only valid until the next mutating call.
func (p *Propagator) GetTrail() []Lit { return p.trailLits }

// IsConflicting reports whether the propagator currently has an unresolved
// conflict.
func (p *Propagator) IsConflicting() bool { return p.conflicting }

// -------- ADVANCED STATE QUERY --------

// IsDecision reports whether the given non-open literal was assigned as a
// decision.
func (p *Propagator) IsDecision(literal Lit) bool {
	tpos := p.variables[literal.Var()].getTrailPos()
	return p.trailReasons[tpos].IsDecision()
}

// GetDecisionLevel returns the decision level of literal, or a negative
// value if it is open.
func (p *Propagator) GetDecisionLevel(literal Lit) int32 {
	return p.variables[literal.Var()].getLevel()
}

// GetReason returns the reason for literal; undefined if literal is open.
func (p *Propagator) GetReason(literal Lit) Reason {
	tpos := p.variables[literal.Var()].getTrailPos()
	return p.trailReasons[tpos]
}

// GetReasons returns the reasons of every literal currently on the trail,
// parallel to GetTrail.
func (p *Propagator) GetReasons() []Reason { return p.trailReasons }

// GetDecisions returns every decision literal currently on the trail.
func (p *Propagator) GetDecisions() []Lit {
	result := make([]Lit, 0, len(p.levels)-1)
	for _, lvl := range p.levels[1:] {
		result = append(result, p.trailLits[lvl.levelBegin()])
	}
	return result
}

// GetCurrentLevel returns the current decision level.
func (p *Propagator) GetCurrentLevel() int32 { return int32(len(p.levels) - 1) }

// CurrentLevelBegin returns the trail index at which the current level
// begins.
func (p *Propagator) CurrentLevelBegin() int { return int(p.levels[len(p.levels)-1].levelBegin()) }

// LevelBegin returns the trail index at which the given level begins.
func (p *Propagator) LevelBegin(level int32) int { return int(p.levels[level].levelBegin()) }

// LevelEnd returns the trail index at which the given level ends (i.e. the
// start of the next level, or the trail's length for the last level).
func (p *Propagator) LevelEnd(level int32) int {
	if int(level) >= len(p.levels)-1 {
		return len(p.trailLits)
	}
	return int(p.levels[level+1].levelBegin())
}

// GetTrailIndex returns the trail index of literal; undefined if it is
// open.
func (p *Propagator) GetTrailIndex(literal Lit) int {
	return int(p.variables[literal.Var()].getTrailPos())
}

// -------- CONFLICT INFORMATION --------

// GetConflict returns the conflict literal and reason.
func (p *Propagator) GetConflict() (Lit, Reason) { return p.conflictLit, p.conflictReason }

// -------- RESULT EXTRACTION --------

// ExtractAssignment returns a full bit-vector assignment, where result[v]
// means variable v is true. Requires a complete trail (num_vars literals).
func (p *Propagator) ExtractAssignment() []bool {
	if Var(len(p.trailLits)) != p.numVars {
		misuse(ErrIncompleteTrail, "trail is incomplete")
	}
	result := make([]bool, p.numVars)
	for _, l := range p.trailLits {
		if l.IsPositive() {
			result[l.Var()] = true
		}
	}
	return result
}

// Copy returns a deep copy of the propagator.
func (p *Propagator) Copy() *Propagator {
	cp := *p
	cp.unaryClauses = append([]Lit(nil), p.unaryClauses...)
	cp.binaryClauses = copyBinaryClauses(p.binaryClauses)
	cp.clauseDB = append([]Lit(nil), p.clauseDB...)
	cp.variables = append([]variableState(nil), p.variables...)
	cp.watchers = make([][]watcher, len(p.watchers))
	for i, ws := range p.watchers {
		cp.watchers[i] = append([]watcher(nil), ws...)
	}
	cp.trailLits = append([]Lit(nil), p.trailLits...)
	cp.trailReasons = append([]Reason(nil), p.trailReasons...)
	cp.levels = append([]levelInfo(nil), p.levels...)
	cp.learnBuffer = nil
	cp.supportingDecisionBuffer = nil
	return &cp
}
