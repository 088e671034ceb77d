package types

import (
	"math/big"
	"testing"
)

func TestHeaderHashIsStableAndCached(t *testing.T) {
	h := &Header{
		Number:     big.NewInt(100),
		Difficulty: big.NewInt(1),
		GasLimit:   30_000_000,
		GasUsed:    21000,
		Time:       1_700_000_000,
	}
	h1 := h.Hash()
	h2 := h.Hash()
	if h1 != h2 {
		t.Fatal("expected header hash to be cached and stable across calls")
	}
}

func TestHeaderHashDiffersOnFieldChange(t *testing.T) {
	h1 := &Header{Number: big.NewInt(1), Difficulty: big.NewInt(1)}
	h2 := &Header{Number: big.NewInt(2), Difficulty: big.NewInt(1)}
	if h1.Hash() == h2.Hash() {
		t.Fatal("expected different headers to hash differently")
	}
}
