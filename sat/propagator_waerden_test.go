package sat

import "testing"

// waerden33 builds the CNF encoding of the van der Waerden game W(3,3;n):
// color variables 0..n-1 with two colors such that no arithmetic
// progression of length 3 is monochromatic. It is satisfiable for n=8 and
// unsatisfiable for n=9, which makes it a compact end-to-end exercise for
// construction-time propagation, decisions, and conflict-driven learning
// together.
func waerden33(n int) *ModelBuilder {
	b := &ModelBuilder{}
	for i := 1; i <= n; i++ {
		for d := 1; i+2*d <= n; d++ {
			v1 := Var(i - 1)
			v2 := Var(i + d - 1)
			v3 := Var(i + 2*d - 1)
			if err := b.AddClause(PositiveLit(v1), PositiveLit(v2), PositiveLit(v3)); err != nil {
				panic(err)
			}
			if err := b.AddClause(NegativeLit(v1), NegativeLit(v2), NegativeLit(v3)); err != nil {
				panic(err)
			}
		}
	}
	b.ReserveVariables(Var(n))
	return b
}

// solveByDecisionLoop drives the propagator to completion using the plainest
// possible strategy: decide the first open variable true, propagate, and
// resolve any conflict before deciding again. Conflict-driven learning with
// non-chronological backjumping is refutation complete regardless of
// decision order, so this terminates with a definitive answer.
func solveByDecisionLoop(p *Propagator) (sat bool, assignment []bool) {
	for {
		if p.IsConflicting() {
			if !p.ResolveConflicts() {
				return false, nil
			}
			continue
		}
		v, ok := firstOpenVar(p)
		if !ok {
			return true, p.ExtractAssignment()
		}
		p.PushLevel(PositiveLit(v))
	}
}

func firstOpenVar(p *Propagator) (Var, bool) {
	for v := Var(0); v < p.NumVars(); v++ {
		if p.IsOpen(PositiveLit(v)) {
			return v, true
		}
	}
	return 0, false
}

func TestPropagator_Waerden33_EightIsSatisfiable(t *testing.T) {
	b := waerden33(8)
	p := NewPropagatorFromModel(b)

	sat, assignment := solveByDecisionLoop(p)
	if !sat {
		t.Fatalf("waerden33(8) should be satisfiable")
	}
	if err := b.VerifyAssignment(assignment); err != nil {
		t.Errorf("returned assignment does not satisfy the formula: %v", err)
	}
}

func TestPropagator_Waerden33_NineIsUnsatisfiable(t *testing.T) {
	b := waerden33(9)
	p := NewPropagatorFromModel(b)

	sat, _ := solveByDecisionLoop(p)
	if sat {
		t.Fatalf("waerden33(9) should be unsatisfiable")
	}
}

func TestPropagator_Waerden33_ConflictExposesReasonGraph(t *testing.T) {
	b := waerden33(9)
	p := NewPropagatorFromModel(b)

	for !p.IsConflicting() {
		v, ok := firstOpenVar(p)
		if !ok {
			t.Fatalf("ran out of open variables before hitting a conflict")
		}
		p.PushLevel(PositiveLit(v))
		if p.IsConflicting() {
			break
		}
	}

	decisions := p.DecisionsLeadingToConflict()
	if len(decisions) == 0 {
		t.Errorf("DecisionsLeadingToConflict() should report at least one supporting decision")
	}
	for i := 1; i < len(decisions); i++ {
		if decisions[i-1].Level > decisions[i].Level {
			t.Errorf("DecisionsLeadingToConflict() should be sorted by ascending level, got %v", decisions)
		}
	}
}
