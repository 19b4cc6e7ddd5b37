package sat

// ClauseStore is implemented by anything that can resolve a ClauseRef into
// its literals. *Propagator implements it; Reason.Lits takes one so that
// long-clause reasons can be resolved without the Reason type itself owning
// a reference to the clause database.
type ClauseStore interface {
	LitsOf(clause ClauseRef) []Lit
}

// Reason explains why a literal was forced onto the trail: a decision (no
// literals), a unary clause (the literal itself), a binary clause (the
// literal and its partner), or a longer clause (a reference into the
// propagator's clause store). Length acts as the tag: 0 is a decision, 1 a
// unary clause, 2 a binary clause, and anything >= 3 a long-clause length.
type Reason struct {
	Length ClauseLen
	lits   [2]Lit
	clause ClauseRef
}

// DecisionReason is the reason of a literal assigned as a decision.
func DecisionReason() Reason {
	return Reason{Length: 0}
}

// UnaryReason is the reason of a literal forced by a unary clause.
func UnaryReason(l Lit) Reason {
	return Reason{Length: 1, lits: [2]Lit{l, 0}}
}

// BinaryReason is the reason of a literal forced by a binary clause.
func BinaryReason(l1, l2 Lit) Reason {
	return Reason{Length: 2, lits: [2]Lit{l1, l2}}
}

// ClauseReason is the reason of a literal forced by a long (length >= 3)
// clause, referred to by clause.
func ClauseReason(length ClauseLen, clause ClauseRef) Reason {
	return Reason{Length: length, clause: clause}
}

// IsDecision reports whether this reason is a decision (no literals).
func (r Reason) IsDecision() bool { return r.Length == 0 }

// ClauseRef returns the clause reference for a long-clause reason. Only
// valid if r.Length >= 3.
func (r Reason) ClauseRef() ClauseRef { return r.clause }

// Lits returns the literals implicated by the reason: empty for a decision,
// the reason's own literal(s) for unary/binary reasons, and the referenced
// clause's literals (borrowed from db) for a long-clause reason.
func (r Reason) Lits(db ClauseStore) []Lit {
	switch r.Length {
	case 0:
		return nil
	case 1:
		return r.lits[:1]
	case 2:
		return r.lits[:2]
	default:
		return db.LitsOf(r.clause)
	}
}
