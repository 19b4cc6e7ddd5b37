package sat

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// fakeStore is a minimal ClauseStore for testing Reason.Lits without a full
// Propagator.
type fakeStore map[ClauseRef][]Lit

func (s fakeStore) LitsOf(ref ClauseRef) []Lit { return s[ref] }

func TestReason_IsDecision(t *testing.T) {
	if !DecisionReason().IsDecision() {
		t.Errorf("DecisionReason should be a decision")
	}
	if UnaryReason(PositiveLit(0)).IsDecision() {
		t.Errorf("UnaryReason should not be a decision")
	}
}

func TestReason_Lits(t *testing.T) {
	store := fakeStore{7: {PositiveLit(0), NegativeLit(1), PositiveLit(2)}}

	cases := []struct {
		name   string
		reason Reason
		want   []Lit
	}{
		{"decision", DecisionReason(), nil},
		{"unary", UnaryReason(PositiveLit(3)), []Lit{PositiveLit(3)}},
		{"binary", BinaryReason(PositiveLit(3), NegativeLit(4)), []Lit{PositiveLit(3), NegativeLit(4)}},
		{"clause", ClauseReason(3, 7), store[7]},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := c.reason.Lits(store)
			if diff := cmp.Diff(c.want, got); diff != "" {
				t.Errorf("Lits() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
