package sat

// Propagate drives unit propagation to a fixed point: every literal already
// on the trail is used to force further literals (via binary adjacency
// scans and long-clause watcher walks) until no more literals can be
// derived, or a conflict is found. On conflict, IsConflicting reports true
// and GetConflict describes it; the trail is left as-is (the caller is
// expected to analyze the conflict before backjumping).
func (p *Propagator) Propagate() {
	for p.trailQueueHead < len(p.trailLits) {
		l := p.trailLits[p.trailQueueHead]
		p.trailQueueHead++
		falseLit := l.Negate()
		if !p.propagateThroughBinaries(falseLit) {
			return
		}
		if !p.propagateThroughLonger(falseLit) {
			return
		}
	}
}

// propagateThroughBinaries scans the adjacency list of falseLit -- which has
// just become false -- and forces, or detects a conflict on, every binary
// clause's other literal. Binary clauses are never watched: the full
// adjacency list is rescanned on every assignment, which is cheap because
// binary clauses need no watcher bookkeeping at all.
func (p *Propagator) propagateThroughBinaries(falseLit Lit) bool {
	level := p.GetCurrentLevel()
	for _, partner := range p.binaryClauses[falseLit] {
		vstate := &p.variables[partner.Var()]
		switch vstate.state(partner) {
		case 1: // already true
		case 0: // already false: conflict
			p.conflicting = true
			p.conflictLit = partner
			p.conflictReason = BinaryReason(falseLit, partner)
			return false
		default: // open: forced true
			p.assignAt(vstate, level, partner, BinaryReason(falseLit, partner))
		}
	}
	return true
}

// propagateThroughLonger walks the watcher list of falseLit, which has just
// become false, looking in each watched clause for a replacement watch. If
// none is found, the clause's other watched literal is forced (or a
// conflict is reported if it is already false).
func (p *Propagator) propagateThroughLonger(falseLit Lit) bool {
	level := p.GetCurrentLevel()
	ws := p.watchers[falseLit]
	i, j := 0, 0
	for i < len(ws) {
		w := ws[i]
		if p.IsTrue(w.blocker) {
			ws[j] = w
			i++
			j++
			continue
		}

		clause := p.mutLitsOf(w.clause)
		if clause[0] == falseLit {
			clause[0], clause[1] = clause[1], clause[0]
		}
		newBlocker := clause[0]
		if p.IsTrue(newBlocker) {
			ws[j] = watcher{blocker: newBlocker, clause: w.clause}
			i++
			j++
			continue
		}

		foundNew := false
		for k := 2; k < len(clause); k++ {
			if !p.IsFalse(clause[k]) {
				clause[1], clause[k] = clause[k], clause[1]
				newWatchLit := clause[1]
				p.watchers[newWatchLit] = append(p.watchers[newWatchLit], watcher{blocker: newBlocker, clause: w.clause})
				foundNew = true
				break
			}
		}
		if foundNew {
			i++
			continue
		}

		// no replacement watch found: the clause keeps watching falseLit,
		// and newBlocker (clause[0]) is the only remaining candidate.
		ws[j] = watcher{blocker: newBlocker, clause: w.clause}
		i++
		j++

		switch p.variables[newBlocker.Var()].state(newBlocker) {
		case 0: // false: conflict
			p.conflicting = true
			p.conflictLit = newBlocker
			p.conflictReason = ClauseReason(ClauseLen(len(clause)), w.clause)
			for ; i < len(ws); i++ {
				ws[j] = ws[i]
				j++
			}
			p.watchers[falseLit] = ws[:j]
			return false
		case -1: // open: forced
			p.assignAt(&p.variables[newBlocker.Var()], level, newBlocker, ClauseReason(ClauseLen(len(clause)), w.clause))
		}
	}
	p.watchers[falseLit] = ws[:j]
	return true
}
