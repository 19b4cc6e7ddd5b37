package sat

// PushLevel opens a new decision level and assigns decision as true within
// it, then propagates to a fixed point. decision must currently be open;
// calling PushLevel on an already-assigned literal is a programming error.
func (p *Propagator) PushLevel(decision Lit) {
	if p.conflicting {
		misuse(ErrInvalidDecision, "push_level called while conflicting")
	}
	if !p.IsOpen(decision) {
		misuse(ErrInvalidDecision, "literal is already assigned")
	}
	level := int32(len(p.levels))
	p.levels = append(p.levels, newLevelInfo(uint32(len(p.trailLits))))
	p.assignAt(&p.variables[decision.Var()], level, decision, DecisionReason())
	p.Propagate()
}

// PopLevel undoes the current decision level: every literal assigned within
// it (the decision itself and everything propagation derived from it) is
// made open again, the trail is truncated, and any pending conflict is
// cleared. Calling PopLevel at level 0 is a programming error.
func (p *Propagator) PopLevel() {
	if p.GetCurrentLevel() == 0 {
		misuse(ErrPopAtLevelZero, "no decision level to pop")
	}
	p.rollbackLevel(nil)
}

// ResetToZero pops every open decision level, returning the propagator to
// level 0.
func (p *Propagator) ResetToZero() {
	for p.GetCurrentLevel() > 0 {
		p.rollbackLevel(nil)
	}
}

// rollbackLevel truncates the trail back to the start of the current level,
// reopens every variable assigned within it, and pops the level. It also
// clears conflicting state, since a conflict can only be analyzed relative
// to the levels that produced it. If h is non-nil, every undone literal is
// reported through AssignmentUndone.
func (p *Propagator) rollbackLevel(h AssignmentHandler) {
	lvl := p.levels[len(p.levels)-1]
	cut := int(lvl.levelBegin())
	for i := len(p.trailLits) - 1; i >= cut; i-- {
		l := p.trailLits[i]
		p.variables[l.Var()].makeOpen()
		if h != nil {
			h.AssignmentUndone(l)
		}
	}
	p.trailLits = p.trailLits[:cut]
	p.trailReasons = p.trailReasons[:cut]
	p.levels = p.levels[:len(p.levels)-1]
	if p.trailQueueHead > cut {
		p.trailQueueHead = cut
	}
	p.conflicting = false
	p.conflictLit = NIL
	p.conflictReason = Reason{}
}
