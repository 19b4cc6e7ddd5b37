package sat

// AssignmentHandler receives callbacks during conflict resolution: every
// literal undone by a backjump is reported through AssignmentUndone, and
// every literal the resulting learned clause forces, together with every
// literal propagation then derives from it once no further conflict arises,
// is reported through AssignmentForced. A caller that doesn't need these can use
// ResolveConflicts, which installs a no-op handler.
type AssignmentHandler interface {
	AssignmentUndone(l Lit)
	AssignmentForced(l Lit)
}

type noopHandler struct{}

func (noopHandler) AssignmentUndone(Lit) {}
func (noopHandler) AssignmentForced(Lit) {}

// increaseStamp bumps the stamp generation by three: one value for "seen
// during this analysis", and two more reserved by the redundancy filter to
// memoize "confirmed not redundant" and "confirmed redundant" without
// re-walking the reason graph. Near overflow, every stamp in the
// propagator is reset to 0 and the counter restarts at 3.
func (p *Propagator) increaseStamp() uint32 {
	if p.stampCounter > ^uint32(0)-3 {
		for i := range p.variables {
			p.variables[i].stampWith(0)
		}
		for i := range p.levels {
			p.levels[i].stampWith(0)
		}
		p.stampCounter = 0
	}
	p.stampCounter += 3
	return p.stampCounter
}

// computeConflictClause derives the first-UIP conflict clause from the
// current conflict: it walks the trail backward, resolving through reasons
// until exactly one literal at the current decision level remains (the
// UIP), then filters self-subsuming-redundant literals out of the rest.
// The returned clause has the asserting literal (the UIP's negation) first.
// The returned level is the backjump target: the highest level among the
// clause's non-asserting literals, or 0 if there are none.
func (p *Propagator) computeConflictClause() ([]Lit, int32) {
	base := p.increaseStamp()
	curLevel := p.GetCurrentLevel()
	learn := p.learnBuffer[:0]
	pending := 0

	resolve := func(lits []Lit) {
		for _, l := range lits {
			v := l.Var()
			if p.variables[v].getStamp() == base {
				continue
			}
			p.variables[v].stampWith(base)
			switch lvl := p.variables[v].getLevel(); {
			case lvl == curLevel:
				pending++
			case lvl > 0:
				learn = append(learn, l)
			}
		}
	}

	resolve(p.conflictReason.Lits(p))

	trailIdx := len(p.trailLits) - 1
	var uip Lit
	for {
		for p.variables[p.trailLits[trailIdx].Var()].getStamp() != base {
			trailIdx--
		}
		lit := p.trailLits[trailIdx]
		trailIdx--
		pending--
		if pending == 0 {
			uip = lit
			break
		}
		resolve(p.GetReason(lit).Lits(p))
	}

	learn = p.filterRedundancies(learn, base)

	clause := make([]Lit, 0, len(learn)+1)
	clause = append(clause, uip.Negate())
	clause = append(clause, learn...)

	var target int32
	for _, l := range learn {
		if lvl := p.variables[l.Var()].getLevel(); lvl > target {
			target = lvl
		}
	}

	p.learnBuffer = learn[:0]
	return clause, target
}

// isRedundant reports whether l can be dropped from the learned clause
// because every other literal in its reason is already accounted for by
// the analysis (either seen directly, or itself redundant). A decision
// literal is never redundant: it has no reason to fall back on.
func (p *Propagator) isRedundant(l Lit, base uint32) bool {
	v := l.Var()
	reason := p.GetReason(l)
	if reason.IsDecision() {
		return false
	}
	for _, rl := range reason.Lits(p) {
		if rl.Var() == v {
			continue
		}
		if !p.isCoveredOrRedundant(rl, base) {
			return false
		}
	}
	return true
}

// isCoveredOrRedundant is the recursive half of isRedundant: a literal is
// covered if it was already seen by computeConflictClause's backward walk,
// or already confirmed redundant; it is considered redundant if its reason
// resolves entirely into covered-or-redundant literals. Results are
// memoized in the variable's stamp field (base+1 for confirmed
// not-redundant, base+2 for confirmed redundant) so the recursion never
// revisits the same variable's reason twice.
func (p *Propagator) isCoveredOrRedundant(l Lit, base uint32) bool {
	v := l.Var()
	vs := &p.variables[v]
	switch vs.getStamp() {
	case base, base + 2:
		return true
	case base + 1:
		return false
	}
	if vs.getLevel() == 0 {
		return true
	}
	reason := p.GetReason(l)
	if reason.IsDecision() {
		vs.stampWith(base + 1)
		return false
	}
	for _, rl := range reason.Lits(p) {
		if rl.Var() == v {
			continue
		}
		if !p.isCoveredOrRedundant(rl, base) {
			vs.stampWith(base + 1)
			return false
		}
	}
	vs.stampWith(base + 2)
	return true
}

func (p *Propagator) filterRedundancies(learn []Lit, base uint32) []Lit {
	kept := learn[:0]
	for _, l := range learn {
		if !p.isRedundant(l, base) {
			kept = append(kept, l)
		}
	}
	return kept
}

// insertConflictClause adds clause to the formula (as a unary, a binary
// adjacency entry, or a watched long clause) and returns the reason that
// should be recorded for its asserting literal, clause[0].
func (p *Propagator) insertConflictClause(clause []Lit) Reason {
	switch len(clause) {
	case 1:
		p.unaryClauses = append(p.unaryClauses, clause[0])
		return UnaryReason(clause[0])
	case 2:
		l1, l2 := clause[0], clause[1]
		for Lit(len(p.binaryClauses)) < 2*p.numVars {
			p.binaryClauses = append(p.binaryClauses, nil)
		}
		p.binaryClauses[l1] = append(p.binaryClauses[l1], l2)
		p.binaryClauses[l2] = append(p.binaryClauses[l2], l1)
		return BinaryReason(l1, l2)
	default:
		// clause[0] (the asserting literal) is already in place; pick the
		// literal with the highest level among the rest as the second
		// watch, since it is the one most likely to become unassigned next.
		secondIdx := 1
		bestLevel := p.variables[clause[1].Var()].getLevel()
		for i := 2; i < len(clause); i++ {
			if lvl := p.variables[clause[i].Var()].getLevel(); lvl > bestLevel {
				bestLevel = lvl
				secondIdx = i
			}
		}
		clause[1], clause[secondIdx] = clause[secondIdx], clause[1]

		ref := ClauseRef(len(p.clauseDB) + 1)
		p.clauseDB = append(p.clauseDB, ClauseLen(len(clause)))
		p.clauseDB = append(p.clauseDB, clause...)
		w1, w2 := clause[0], clause[1]
		p.watchers[w1] = append(p.watchers[w1], watcher{blocker: w2, clause: ref})
		p.watchers[w2] = append(p.watchers[w2], watcher{blocker: w1, clause: ref})
		return ClauseReason(ClauseLen(len(clause)), ref)
	}
}

// jumpbackToTarget pops decision levels until the current level equals
// target, reporting every undone literal to h.
func (p *Propagator) jumpbackToTarget(target int32, h AssignmentHandler) {
	for p.GetCurrentLevel() > target {
		p.rollbackLevel(h)
	}
}

// handleConflictClause inserts clause into the formula and asserts its
// first literal at target, reporting the forced assignment to h.
func (p *Propagator) handleConflictClause(clause []Lit, target int32, h AssignmentHandler) {
	reason := p.insertConflictClause(clause)
	assertingLit := clause[0]
	p.assignAt(&p.variables[assertingLit.Var()], target, assertingLit, reason)
	h.AssignmentForced(assertingLit)
}

// resolveConflictsWith repeatedly analyzes and backjumps past conflicts
// until none remain, reporting every undone/forced assignment to h. It
// returns false if the formula was proven unsatisfiable: a conflict at
// decision level 0 has no level to jump back to. It returns true once
// every conflict has been resolved.
func (p *Propagator) resolveConflictsWith(h AssignmentHandler) bool {
	for p.conflicting {
		if p.GetCurrentLevel() == 0 {
			return false
		}
		clause, target := p.computeConflictClause()
		p.jumpbackToTarget(target, h)
		p.handleConflictClause(clause, target, h)
		start := len(p.trailLits)
		p.Propagate()
		if !p.conflicting {
			for _, l := range p.trailLits[start:] {
				h.AssignmentForced(l)
			}
		}
	}
	return true
}

// ResolveConflicts resolves every pending conflict, discarding undone/forced
// assignment notifications. It returns false if the formula is proven
// unsatisfiable, true otherwise.
func (p *Propagator) ResolveConflicts() bool {
	return p.resolveConflictsWith(noopHandler{})
}

// ResolveConflictsHandler resolves every pending conflict like
// ResolveConflicts, but reports every undone/forced assignment to h.
func (p *Propagator) ResolveConflictsHandler(h AssignmentHandler) bool {
	return p.resolveConflictsWith(h)
}

// ResolveOrPanic resolves every pending conflict and panics with
// ErrUnsatisfiable if the formula turns out to be unsatisfiable.
func (p *Propagator) ResolveOrPanic() {
	if !p.resolveConflictsWith(noopHandler{}) {
		panic(ErrUnsatisfiable)
	}
}
