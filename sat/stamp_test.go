package sat

import "testing"

func TestStampSet_InsertContains(t *testing.T) {
	s := NewStampSet[Var](8)

	if s.Contains(3) {
		t.Fatalf("fresh set should not contain 3")
	}
	s.Insert(3)
	if !s.Contains(3) {
		t.Fatalf("set should contain 3 after insert")
	}
	if s.Contains(4) {
		t.Fatalf("set should not contain 4")
	}
}

func TestStampSet_ClearEmptiesSet(t *testing.T) {
	s := NewStampSet[Var](8)
	s.Insert(1)
	s.Insert(2)

	s.Clear()

	if s.Contains(1) || s.Contains(2) {
		t.Fatalf("set should be empty after Clear")
	}
}

func TestStampSet_Erase(t *testing.T) {
	s := NewStampSet[Var](8)
	s.Insert(5)
	s.Erase(5)
	if s.Contains(5) {
		t.Fatalf("set should not contain 5 after Erase")
	}
}

func TestStampSet_Assign(t *testing.T) {
	s := NewStampSet[Var](8)
	s.Insert(0)

	s.Assign([]Var{1, 2, 3})

	if s.Contains(0) {
		t.Fatalf("Assign should clear previous contents")
	}
	for _, v := range []Var{1, 2, 3} {
		if !s.Contains(v) {
			t.Fatalf("Assign should insert %d", v)
		}
	}
}

func TestStampSet_CheckInsertCheckErase(t *testing.T) {
	s := NewStampSet[Var](4)

	if wasAbsent := s.CheckInsert(2); !wasAbsent {
		t.Fatalf("CheckInsert should report 2 as absent the first time")
	}
	if wasAbsent := s.CheckInsert(2); wasAbsent {
		t.Fatalf("CheckInsert should report 2 as present the second time")
	}
	if wasPresent := s.CheckErase(2); !wasPresent {
		t.Fatalf("CheckErase should report 2 as present")
	}
	if wasPresent := s.CheckErase(2); wasPresent {
		t.Fatalf("CheckErase should report 2 as absent after erasing")
	}
}

func TestStampSet_ClearNearOverflowResets(t *testing.T) {
	s := NewStampSet[Var](4)
	s.Insert(0)
	s.current = ^uint32(0)

	s.Clear()

	if s.current != 1 {
		t.Fatalf("Clear should restart the generation at 1 after wraparound, got %d", s.current)
	}
	if s.Contains(0) {
		t.Fatalf("set should be empty after a wraparound Clear")
	}
}
