package sat

import "testing"

func buildPropagator(t *testing.T, build func(b *ModelBuilder)) *Propagator {
	t.Helper()
	b := &ModelBuilder{}
	build(b)
	return NewPropagatorFromModel(b)
}

func TestPropagator_UnaryForcesLiteral(t *testing.T) {
	p := buildPropagator(t, func(b *ModelBuilder) {
		b.AddClause(PositiveLit(0))
	})
	if !p.IsTrue(PositiveLit(0)) {
		t.Errorf("unary clause should force its literal true")
	}
	if p.IsConflicting() {
		t.Errorf("single unary clause should not conflict")
	}
}

func TestPropagator_BinaryPropagatesUnderUnitLiteral(t *testing.T) {
	p := buildPropagator(t, func(b *ModelBuilder) {
		b.AddClause(PositiveLit(0))
		b.AddClause(NegativeLit(0), PositiveLit(1))
	})
	if !p.IsTrue(PositiveLit(1)) {
		t.Errorf("binary clause should force partner literal true when the other side is false")
	}
}

func TestPropagator_LongerClausePropagatesAtConstruction(t *testing.T) {
	p := buildPropagator(t, func(b *ModelBuilder) {
		b.AddClause(PositiveLit(0))
		b.AddClause(PositiveLit(1))
		b.AddClause(NegativeLit(0), NegativeLit(1), PositiveLit(2))
	})
	if !p.IsTrue(PositiveLit(2)) {
		t.Errorf("long clause should force its last open literal true once the others are false")
	}
}

func TestPropagator_UnaryConflictAtConstruction(t *testing.T) {
	p := buildPropagator(t, func(b *ModelBuilder) {
		b.AddClause(PositiveLit(0))
		b.AddClause(NegativeLit(0))
	})
	if !p.IsConflicting() {
		t.Errorf("contradictory unary clauses should conflict at construction")
	}
}

func TestPropagator_BinaryConflict(t *testing.T) {
	p := buildPropagator(t, func(b *ModelBuilder) {
		b.AddClause(PositiveLit(0))
		b.AddClause(NegativeLit(0), PositiveLit(1))
		b.AddClause(NegativeLit(0), NegativeLit(1))
	})
	if !p.IsConflicting() {
		t.Errorf("binary clauses forcing both polarities of var 1 should conflict")
	}
}

func TestPropagator_PushPopLevelRoundTrips(t *testing.T) {
	p := buildPropagator(t, func(b *ModelBuilder) {
		b.AddClause(PositiveLit(0), PositiveLit(1), PositiveLit(2))
	})

	p.PushLevel(PositiveLit(0))
	if p.GetCurrentLevel() != 1 {
		t.Fatalf("GetCurrentLevel() = %d, want 1", p.GetCurrentLevel())
	}
	if !p.IsTrue(PositiveLit(0)) {
		t.Fatalf("decision literal should be true")
	}

	p.PopLevel()
	if p.GetCurrentLevel() != 0 {
		t.Fatalf("GetCurrentLevel() = %d, want 0 after PopLevel", p.GetCurrentLevel())
	}
	if !p.IsOpen(PositiveLit(0)) {
		t.Fatalf("literal should be open again after PopLevel")
	}
}

func TestPropagator_PushLevelOnAssignedLiteralPanics(t *testing.T) {
	p := buildPropagator(t, func(b *ModelBuilder) {
		b.AddClause(PositiveLit(0))
	})
	defer func() {
		if recover() == nil {
			t.Errorf("PushLevel on an already-assigned literal should panic")
		}
	}()
	p.PushLevel(PositiveLit(0))
}

func TestPropagator_PopLevelAtZeroPanics(t *testing.T) {
	p := buildPropagator(t, func(b *ModelBuilder) {
		b.AddClause(PositiveLit(0), PositiveLit(1))
	})
	defer func() {
		if recover() == nil {
			t.Errorf("PopLevel at level 0 should panic")
		}
	}()
	p.PopLevel()
}

func TestPropagator_ResolveConflictsBackjumpsAndLearns(t *testing.T) {
	p := buildPropagator(t, func(b *ModelBuilder) {
		// {0,1} and {0,!1}: once var 0 is false, var 1 is forced both ways.
		b.AddClause(PositiveLit(0), PositiveLit(1))
		b.AddClause(PositiveLit(0), NegativeLit(1))
	})

	p.PushLevel(NegativeLit(0))
	if !p.IsConflicting() {
		t.Fatalf("expected a conflict after deciding var 0 false")
	}

	ok := p.ResolveConflicts()
	if !ok {
		t.Fatalf("formula should be satisfiable by learning var 0 true, not UNSAT")
	}
	if p.IsConflicting() {
		t.Fatalf("conflict should be resolved")
	}
	if !p.IsTrue(PositiveLit(0)) {
		t.Errorf("learned clause should force var 0 true")
	}
}

func TestPropagator_ResolveConflictsDetectsUnsat(t *testing.T) {
	p := buildPropagator(t, func(b *ModelBuilder) {
		b.AddClause(PositiveLit(0), PositiveLit(1))
		b.AddClause(PositiveLit(0), NegativeLit(1))
		b.AddClause(NegativeLit(0))
	})
	if !p.IsConflicting() {
		t.Fatalf("expected a level-0 conflict once var 0 is forced both ways")
	}
	if p.ResolveConflicts() {
		t.Errorf("formula should be reported unsatisfiable")
	}
}

// recordingHandler collects every literal reported undone or forced during
// conflict resolution, in the order reported.
type recordingHandler struct {
	undone []Lit
	forced []Lit
}

func (h *recordingHandler) AssignmentUndone(l Lit) { h.undone = append(h.undone, l) }
func (h *recordingHandler) AssignmentForced(l Lit) { h.forced = append(h.forced, l) }

func TestPropagator_ResolveConflictsHandlerReportsUndoneAndForced(t *testing.T) {
	p := buildPropagator(t, func(b *ModelBuilder) {
		// {0,1} and {0,!1}: once var 0 is false, var 1 is forced both ways.
		b.AddClause(PositiveLit(0), PositiveLit(1))
		b.AddClause(PositiveLit(0), NegativeLit(1))
	})

	p.PushLevel(NegativeLit(0))
	if !p.IsConflicting() {
		t.Fatalf("expected a conflict after deciding var 0 false")
	}

	h := &recordingHandler{}
	if !p.ResolveConflictsHandler(h) {
		t.Fatalf("formula should be satisfiable, not UNSAT")
	}

	if len(h.undone) == 0 {
		t.Errorf("AssignmentUndone should have been called while backjumping past the decision")
	}
	for _, l := range h.undone {
		if l.Var() != 0 && l.Var() != 1 {
			t.Errorf("unexpected literal %v reported as undone", l)
		}
	}
	if len(h.forced) != 1 || h.forced[0] != PositiveLit(0) {
		t.Errorf("AssignmentForced = %v, want [var 0 true]", h.forced)
	}
}

func TestPropagator_DecisionsLeadingTo(t *testing.T) {
	p := buildPropagator(t, func(b *ModelBuilder) {
		b.AddClause(NegativeLit(0), PositiveLit(1))
	})
	p.PushLevel(PositiveLit(0))
	if !p.IsTrue(PositiveLit(1)) {
		t.Fatalf("var 1 should have been forced by the decision")
	}

	decisions := p.DecisionsLeadingTo(PositiveLit(1))
	if len(decisions) != 1 || decisions[0].Lit != PositiveLit(0) {
		t.Errorf("DecisionsLeadingTo(1) = %v, want [{level 1, lit 0}]", decisions)
	}
}

func TestPropagator_ExtractAssignmentPanicsOnIncompleteTrail(t *testing.T) {
	p := buildPropagator(t, func(b *ModelBuilder) {
		b.AddClause(PositiveLit(0), PositiveLit(1))
	})
	defer func() {
		if recover() == nil {
			t.Errorf("ExtractAssignment should panic on an incomplete trail")
		}
	}()
	p.ExtractAssignment()
}

func TestPropagator_Copy(t *testing.T) {
	p := buildPropagator(t, func(b *ModelBuilder) {
		b.AddClause(PositiveLit(0), PositiveLit(1))
	})
	p.PushLevel(PositiveLit(0))

	cp := p.Copy()
	cp.PushLevel(PositiveLit(1))

	if p.GetCurrentLevel() != 1 {
		t.Errorf("original propagator should be unaffected by mutating the copy")
	}
	if cp.GetCurrentLevel() != 2 {
		t.Errorf("copy should have advanced independently")
	}
}
