package core

import (
	"encoding/binary"
	"math/bits"

	"github.com/zintix-labs/coverlab/errs"
)

const pcg32Multiplier = 6364136223846793005

// PCG32 為 64-bit 狀態、32-bit 輸出的 PCG (XSH RR) 產生器。
// 輸出較窄，提供給想要與 32-bit 參考實作對照的重播。
type PCG32 struct {
	state uint64
	inc   uint64
}

func newPCG32WithSeed(seed int64) *PCG32 {
	r := &PCG32{inc: (1 << 1) | 1}
	// PCG 建議的初始化流程：先 step 一次，再加 seed，最後再 step。
	r.nextUint32()
	r.state += uint64(seed)
	r.nextUint32()
	return r
}

// Uint64 由兩次 32-bit 輸出拼成。
func (r *PCG32) Uint64() uint64 {
	return (uint64(r.nextUint32()) << 32) | uint64(r.nextUint32())
}

// IntN 回傳 [0,n) 的亂數；若 n <= 0 回傳 -1。
func (r *PCG32) IntN(max int) int {
	if max <= 0 {
		return -1
	}
	if uint64(max) <= 1<<32-1 {
		return int(r.randBelowUint32(uint32(max)))
	}
	return int(r.randBelowUint64(uint64(max)))
}

// Snapshot 以 big-endian 輸出 state 與 inc，共 16 bytes。
func (r *PCG32) Snapshot() ([]byte, error) {
	b := make([]byte, 0, 16)
	b = binary.BigEndian.AppendUint64(b, r.state)
	b = binary.BigEndian.AppendUint64(b, r.inc)
	return b, nil
}

func (r *PCG32) Restore(data []byte) error {
	if len(data) != 16 {
		return errs.Fatalf("pcg32 snapshot must be 16 bytes, got %d", len(data))
	}
	r.state = binary.BigEndian.Uint64(data[:8])
	r.inc = binary.BigEndian.Uint64(data[8:])
	return nil
}

func (r *PCG32) nextUint32() uint32 {
	old := r.state
	r.state = old*pcg32Multiplier + r.inc
	xorshifted := uint32(((old >> 18) ^ old) >> 27)
	rot := uint32(old >> 59)
	return bits.RotateLeft32(xorshifted, -int(rot))
}

func (r *PCG32) randBelowUint32(bound uint32) uint32 {
	threshold := (^bound + 1) % bound
	for {
		v := r.nextUint32()
		if v >= threshold {
			return v % bound
		}
	}
}

func (r *PCG32) randBelowUint64(bound uint64) uint64 {
	threshold := (^bound + 1) % bound
	for {
		v := r.Uint64()
		if v >= threshold {
			return v % bound
		}
	}
}
