package wheel_test

import (
	"testing"

	"github.com/zintix-labs/coverlab/sdk/core"
	"github.com/zintix-labs/coverlab/wheel"
)

func TestWheelRangeAndDeterminism(t *testing.T) {
	w1 := wheel.New(2025)
	w2 := wheel.New(2025)
	for i := 0; i < 5000; i++ {
		a, b := w1.Spin(), w2.Spin()
		if a != b {
			t.Fatalf("same seed diverged at spin %d", i)
		}
		if a < 0 || a > 36 {
			t.Fatalf("spin out of range: %d", a)
		}
	}
}

func TestWheelSnapshotReplay(t *testing.T) {
	f, _ := core.FactoryOf(core.KindPCG32)
	w := wheel.NewWith(f, 5)
	w.Spin()
	snap, err := w.Snapshot()
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	want := []int{w.Spin(), w.Spin(), w.Spin()}
	if err := w.Restore(snap); err != nil {
		t.Fatalf("restore: %v", err)
	}
	for i := range want {
		if got := w.Spin(); got != want[i] {
			t.Fatalf("replay mismatch at %d: %d vs %d", i, got, want[i])
		}
	}
}

func TestScripted(t *testing.T) {
	s, err := wheel.NewScripted(5, 3)
	if err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	got := []int{s.Spin(), s.Spin(), s.Spin()}
	if got[0] != 5 || got[1] != 3 || got[2] != 5 {
		t.Fatalf("unexpected replay %v", got)
	}
	if _, err := wheel.NewScripted(); err == nil {
		t.Fatalf("empty script must be rejected")
	}
	if _, err := wheel.NewScripted(37); err == nil {
		t.Fatalf("out-of-range spin must be rejected")
	}
}

func TestDescribe(t *testing.T) {
	cases := []wheel.Pocket{
		{Number: 0, Color: wheel.Green, Parity: wheel.Even, Range: wheel.NoRange},
		{Number: 1, Color: wheel.Red, Parity: wheel.Odd, Range: wheel.Low},
		{Number: 10, Color: wheel.Black, Parity: wheel.Even, Range: wheel.Low},
		{Number: 11, Color: wheel.Black, Parity: wheel.Odd, Range: wheel.Low},
		{Number: 18, Color: wheel.Red, Parity: wheel.Even, Range: wheel.Low},
		{Number: 19, Color: wheel.Red, Parity: wheel.Odd, Range: wheel.High},
		{Number: 29, Color: wheel.Black, Parity: wheel.Odd, Range: wheel.High},
		{Number: 36, Color: wheel.Red, Parity: wheel.Even, Range: wheel.High},
	}
	for _, want := range cases {
		if got := wheel.Describe(want.Number); got != want {
			t.Fatalf("Describe(%d) = %+v, want %+v", want.Number, got, want)
		}
	}
	red := 0
	for n := 1; n <= 36; n++ {
		if wheel.Describe(n).Color == wheel.Red {
			red++
		}
	}
	if red != 18 {
		t.Fatalf("expected 18 red pockets, got %d", red)
	}
}
