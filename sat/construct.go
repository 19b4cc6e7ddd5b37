package sat

import "sort"

// assignAt0 assigns forcedTrue to true at decision level 0. Returns false
// (and sets conflicting) if the variable was already assigned to the
// opposite value.
func (p *Propagator) assignAt0(forcedTrue Lit) bool {
	vstate := &p.variables[forcedTrue.Var()]
	if vstate.isOpen() {
		vstate.assign(uint32(len(p.trailLits)), forcedTrue, 0)
		p.trailLits = append(p.trailLits, forcedTrue)
		p.trailReasons = append(p.trailReasons, UnaryReason(forcedTrue))
		return true
	}
	if vstate.isLitFalse(forcedTrue) {
		p.conflicting = true
		return false
	}
	return true
}

// assignAt assigns literal to true at the given level with the given
// reason.
func (p *Propagator) assignAt(vstate *variableState, level int32, literal Lit, reason Reason) {
	vstate.assign(uint32(len(p.trailLits)), literal, level)
	p.trailLits = append(p.trailLits, literal)
	p.trailReasons = append(p.trailReasons, reason)
}

// initUnaries assigns every unary clause's literal at level 0.
func (p *Propagator) initUnaries() {
	for _, forcedTrue := range p.unaryClauses {
		if !p.assignAt0(forcedTrue) {
			p.conflicting = true
			return
		}
	}
}

// initBinaryWatches closes the trail under the binary clauses: every
// literal already on the trail (from unary clauses) is used to force its
// binary partners, and those forced literals are in turn used to force
// more, until the binary clauses alone can derive nothing further.
func (p *Propagator) initBinaryWatches() {
	for head := 0; head < len(p.trailLits); head++ {
		falseLit := p.trailLits[head].Negate()
		if !p.propagateThroughBinaries(falseLit) {
			return
		}
	}
}

// newLongClauseOnConstruction classifies a long clause at construction time
// as satisfied-at-0 (dropped), conflicting-at-0 (conflict), forcing-at-0
// (added as a unary), or needing two watches -- in which case two
// unassigned literals are moved to positions 0 and 1 and watchers are
// registered.
func (p *Propagator) newLongClauseOnConstruction(ref ClauseRef, literals []Lit) {
	var newFirst [2]int
	nws := 0
	for i, l := range literals {
		vstate := &p.variables[l.Var()]
		switch vstate.state(l) {
		case -1:
			if nws < 2 {
				newFirst[nws] = i
				nws++
			}
		case 1:
			nws = -1
		}
		if nws == -1 {
			break
		}
	}
	switch {
	case nws == -1:
		// satisfied at level 0 - ignored, not watched.
		return
	case nws == 0:
		// violated at level 0 - conflict, UNSAT.
		p.conflicting = true
		p.conflictReason = ClauseReason(ClauseLen(len(literals)), ref)
		return
	case nws == 1:
		// forcing at level 0 - add unary, do not watch.
		forcedTrue := literals[newFirst[0]]
		p.unaryClauses = append(p.unaryClauses, forcedTrue)
		p.assignAt0(forcedTrue)
		return
	}
	// move the watched literals to the front
	literals[newFirst[0]], literals[0] = literals[0], literals[newFirst[0]]
	literals[newFirst[1]], literals[1] = literals[1], literals[newFirst[1]]
	w1, w2 := literals[0], literals[1]
	p.watchers[w1] = append(p.watchers[w1], watcher{blocker: w2, clause: ref})
	p.watchers[w2] = append(p.watchers[w2], watcher{blocker: w1, clause: ref})
}

// initWatches assigns the unary clauses at level 0, closes them under the
// binary clauses, and installs watches for the long clauses.
//
// Order matters: the unary/binary unit closure must be fully settled before
// any long clause is classified, since classifying a long clause as
// satisfied/conflicting/forcing/two-watch at construction time requires
// seeing every literal forced transitively through the short clauses.
func (p *Propagator) initWatches() {
	p.initUnaries()
	if p.conflicting {
		return
	}
	p.initBinaryWatches()
	if p.conflicting {
		return
	}
	p.watchers = make([][]watcher, 2*p.numVars)
	for ref := p.FirstLongerClause(); ref < p.LongerClauseEnd(); ref = p.NextClause(ref) {
		literals := p.mutLitsOf(ref)
		p.newLongClauseOnConstruction(ref, literals)
		if p.conflicting {
			return
		}
	}
}

// processShortClauses sorts and deduplicates the binary adjacency lists,
// then sizes the structure to 2*numVars.
func (p *Propagator) processShortClauses() {
	for _, list := range p.binaryClauses {
		sort.Slice(list, func(i, j int) bool { return list[i] < list[j] })
	}
	for i, list := range p.binaryClauses {
		p.binaryClauses[i] = dedupSorted(list)
	}
	for Lit(len(p.binaryClauses)) < 2*p.numVars {
		p.binaryClauses = append(p.binaryClauses, nil)
	}
}

// importLargeClauses flattens the model builder's longer clauses into the
// contiguous clause store: each clause occupies a length header followed by
// its literals.
func (p *Propagator) importLargeClauses(clauses [][]Lit) {
	totalSize := 0
	for _, c := range clauses {
		totalSize += len(c) + 1
	}
	p.clauseDB = make([]Lit, 0, totalSize+totalSize/2)
	for _, c := range clauses {
		p.clauseDB = append(p.clauseDB, ClauseLen(len(c)))
		p.clauseDB = append(p.clauseDB, c...)
	}
}
