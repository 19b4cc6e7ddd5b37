package sat

import "sort"

// DecisionsLeadingTo returns every decision literal that literal's
// assignment transitively depends on, ordered by increasing decision
// level. literal must be assigned (not open), and the propagator must not
// be currently conflicting.
func (p *Propagator) DecisionsLeadingTo(literal Lit) []DecisionRef {
	if p.conflicting {
		misuse(ErrQueryWhileConflicting, "decisions_leading_to called while conflicting")
	}
	if p.IsOpen(literal) {
		misuse(ErrQueryOnOpenLiteral, "decisions_leading_to called with an open literal")
	}
	return p.bfsReasons([]Lit{literal})
}

// DecisionsLeadingToConflict returns every decision literal that the
// current conflict transitively depends on, ordered by increasing decision
// level. The propagator must currently be conflicting.
func (p *Propagator) DecisionsLeadingToConflict() []DecisionRef {
	if !p.conflicting {
		misuse(ErrNoConflict, "decisions_leading_to_conflict called with no pending conflict")
	}
	return p.bfsReasons(p.conflictReason.Lits(p))
}

// bfsReasons walks the reason graph backward from seeds, breadth-first,
// collecting every decision literal reachable through non-decision reasons.
// Level-0 literals terminate their branch without being reported: a fact
// forced by a unary/binary/long clause at level 0 does not depend on any
// decision.
func (p *Propagator) bfsReasons(seeds []Lit) []DecisionRef {
	base := p.increaseStamp()
	decisions := p.supportingDecisionBuffer[:0]

	queue := append([]Lit(nil), seeds...)
	for i := 0; i < len(queue); i++ {
		l := queue[i]
		v := l.Var()
		if p.variables[v].getStamp() == base {
			continue
		}
		p.variables[v].stampWith(base)

		if p.variables[v].getLevel() == 0 {
			continue
		}

		reason := p.GetReason(l)
		if reason.IsDecision() {
			decisions = append(decisions, DecisionRef{Level: p.variables[v].getLevel(), Lit: p.trailLits[p.variables[v].getTrailPos()]})
			continue
		}
		for _, rl := range reason.Lits(p) {
			if rl.Var() != v {
				queue = append(queue, rl)
			}
		}
	}

	sort.Slice(decisions, func(i, j int) bool { return decisions[i].Level < decisions[j].Level })
	p.supportingDecisionBuffer = decisions
	return append([]DecisionRef(nil), decisions...)
}
