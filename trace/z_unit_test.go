package trace

import "testing"

func TestArenaAppendAndRead(t *testing.T) {
	a := NewArena(3, 2)
	for series := 0; series < 2; series++ {
		a.Append(0, Match)
		a.Append(1, Loss)
		a.Append(2, Ignored)
	}
	if a.Positions() != 3 || a.Series() != 2 {
		t.Fatalf("unexpected shape: %d positions %d series", a.Positions(), a.Series())
	}
	if a.Row(0) != ".." || a.Row(1) != "XX" || a.Row(2) != "==" {
		t.Fatalf("unexpected rows %v", a.Rows())
	}
	if a.At(1, 1) != Loss {
		t.Fatalf("At(1,1) = %s", a.At(1, 1))
	}
}

func TestArenaPartialSeries(t *testing.T) {
	a := NewArena(2, 0)
	a.Append(0, Match)
	if a.Series() != 0 {
		t.Fatalf("partial series must not be counted")
	}
	if NewArena(0, 4).Series() != 0 {
		t.Fatalf("empty arena has no series")
	}
}
