package common

import (
	"math/big"
	"testing"
)

func TestU256FromBigOverflow(t *testing.T) {
	tooBig := new(big.Int).Lsh(big.NewInt(1), 256)
	if _, err := U256FromBig(tooBig); KindOf(err) != OutOfRange {
		t.Fatalf("expected OutOfRange, got %v", err)
	}
	if _, err := U256FromBig(big.NewInt(-1)); KindOf(err) != OutOfRange {
		t.Fatal("expected OutOfRange for negative value")
	}
}

func TestU256FromHex(t *testing.T) {
	v, err := U256FromHex("0x2540be400")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Uint64() != 10_000_000_000 {
		t.Fatalf("expected 10000000000, got %v", v.Uint64())
	}
}

func TestU256FromStringDecimalAndHex(t *testing.T) {
	v, err := U256FromString("10000000000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Uint64() != 10_000_000_000 {
		t.Fatalf("expected 10000000000, got %v", v.Uint64())
	}
	v2, err := U256FromString("0x2540be400")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v2.Uint64() != 10_000_000_000 {
		t.Fatalf("expected 10000000000, got %v", v2.Uint64())
	}
}

func TestPowWrapsOnOverflow(t *testing.T) {
	two := NewU256(2)
	exp := NewU256(256)
	got := Pow(two, exp)
	if !got.IsZero() {
		t.Fatalf("expected 2^256 to wrap to 0 mod 2^256, got %v", got)
	}
	small := Pow(NewU256(2), NewU256(10))
	if small.Uint64() != 1024 {
		t.Fatalf("expected 1024, got %v", small.Uint64())
	}
}

func TestU8RoundTrip(t *testing.T) {
	v, err := U8FromString("255")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Uint64() != 255 {
		t.Fatalf("expected 255, got %d", v.Uint64())
	}
	if _, err := U8FromString("256"); KindOf(err) != OutOfRange {
		t.Fatal("expected OutOfRange for 256 in U8")
	}
	b, err := U8FromBytes([]byte{0xFF})
	if err != nil || b.Uint64() != 255 {
		t.Fatalf("unexpected U8FromBytes result: %v %v", b, err)
	}
}

func TestU16FromBytesAndHex(t *testing.T) {
	v, err := U16FromString("0x01FF")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Uint64() != 0x01FF {
		t.Fatalf("expected 0x01FF, got %x", v.Uint64())
	}
	decoded, err := U16FromBytes(v.Bytes())
	if err != nil || decoded.Uint64() != 0x01FF {
		t.Fatalf("round trip mismatch: %v %v", decoded, err)
	}
}

func TestU128RangeCheck(t *testing.T) {
	tooBig := new(big.Int).Lsh(big.NewInt(1), 128)
	if _, err := U128FromBigInt(tooBig); KindOf(err) != OutOfRange {
		t.Fatal("expected OutOfRange for 2^128")
	}
	v, err := U128FromString("340282366920938463463374607431768211455") // 2^128-1
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(v.Bytes()) != 16 {
		t.Fatalf("expected 16-byte encoding, got %d", len(v.Bytes()))
	}
}

func TestI8TwosComplementRoundTrip(t *testing.T) {
	v := NewI8(-1)
	b := v.Bytes()
	if b[0] != 0xFF {
		t.Fatalf("expected 0xFF, got %x", b[0])
	}
	decoded, err := I8FromBytes(b)
	if err != nil || decoded.Int64() != -1 {
		t.Fatalf("round trip mismatch: %v %v", decoded, err)
	}
	if _, err := I8FromString("128"); KindOf(err) != OutOfRange {
		t.Fatal("expected OutOfRange for 128 in I8")
	}
}

func TestI128RangeCheck(t *testing.T) {
	limit := new(big.Int).Lsh(big.NewInt(1), 127)
	if _, err := I128FromBigInt(limit); KindOf(err) != OutOfRange {
		t.Fatal("expected OutOfRange for 2^127")
	}
	neg := new(big.Int).Neg(limit)
	v, err := I128FromBigInt(neg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	decoded, err := I128FromBytes(v.Bytes())
	if err != nil || decoded.BigInt().Cmp(neg) != 0 {
		t.Fatalf("round trip mismatch: %v %v", decoded, err)
	}
}

func TestI256TwosComplementRoundTrip(t *testing.T) {
	neg := big.NewInt(-42)
	i, err := I256FromBigInt(neg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b := i.Bytes32()

	decoded, err := I256FromTwosComplement(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decoded.BigInt().Cmp(neg) != 0 {
		t.Fatalf("expected %v, got %v", neg, decoded.BigInt())
	}
}

func TestI256FromTwosComplementWrongLength(t *testing.T) {
	if _, err := I256FromTwosComplement([]byte{1, 2, 3}); KindOf(err) != InvalidLength {
		t.Fatal("expected InvalidLength for short input")
	}
}

func TestI256FromStringDecimalAndHex(t *testing.T) {
	v, err := I256FromString("-42")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.String() != "-42" {
		t.Fatalf("expected -42, got %s", v.String())
	}
}
