// Copyright 2025 Zintix Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package core

import "testing"

func TestCoreDeterminism(t *testing.T) {
	for _, k := range []Kind{KindPCG64, KindPCG32} {
		f, err := FactoryOf(k)
		if err != nil {
			t.Fatalf("%s: %v", k, err)
		}
		c1 := New(f.New(7))
		c2 := New(f.New(7))
		for i := 0; i < 64; i++ {
			if c1.IntN(37) != c2.IntN(37) {
				t.Fatalf("%s: IntN mismatch at %d", k, i)
			}
		}
		if c1.Uint64() != c2.Uint64() {
			t.Fatalf("%s: Uint64 mismatch", k)
		}
	}
}

func TestIntNBounds(t *testing.T) {
	c := New(Default().New(42))
	if got := c.IntN(0); got != -1 {
		t.Fatalf("expected -1 for IntN(0), got %d", got)
	}
	seen := make([]bool, 37)
	for i := 0; i < 20000; i++ {
		v := c.IntN(37)
		if v < 0 || v > 36 {
			t.Fatalf("IntN(37) out of range: %d", v)
		}
		seen[v] = true
	}
	for n, ok := range seen {
		if !ok {
			t.Fatalf("pocket %d never drawn in 20k spins", n)
		}
	}
}

func TestSnapshotRestore(t *testing.T) {
	for _, k := range []Kind{KindPCG64, KindPCG32} {
		f, _ := FactoryOf(k)
		rng := f.New(99)
		rng.IntN(37)
		snap, err := rng.Snapshot()
		if err != nil {
			t.Fatalf("%s: snapshot: %v", k, err)
		}
		want := []int{rng.IntN(37), rng.IntN(37), rng.IntN(37)}

		other := f.New(1)
		if err := other.Restore(snap); err != nil {
			t.Fatalf("%s: restore: %v", k, err)
		}
		for i, w := range want {
			if got := other.IntN(37); got != w {
				t.Fatalf("%s: replay mismatch at %d: got %d want %d", k, i, got, w)
			}
		}
	}
}

func TestFactoryOfUnknown(t *testing.T) {
	if _, err := FactoryOf("mt19937"); err == nil {
		t.Fatalf("expected error for unknown rng kind")
	}
}
