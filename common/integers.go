package common

import (
	"encoding/binary"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/holiman/uint256"
)

// parseIntString parses a decimal or 0x-prefixed hex string, optionally
// preceded by '-', into a big.Int. It performs no range assertion: that
// is the caller's job, since the legal range differs per width and
// signedness.
func parseIntString(s string) (*big.Int, error) {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var v *big.Int
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		b, err := DecodeHex(s)
		if err != nil {
			return nil, err
		}
		v = new(big.Int).SetBytes(b)
	} else {
		var ok bool
		v, ok = new(big.Int).SetString(s, 10)
		if !ok {
			return nil, fmt.Errorf("invalid integer string %q", s)
		}
	}
	if neg {
		v.Neg(v)
	}
	return v, nil
}

// parseUintString is parseIntString restricted to non-negative results.
func parseUintString(s string) (*big.Int, error) {
	v, err := parseIntString(s)
	if err != nil {
		return nil, err
	}
	if v.Sign() < 0 {
		return nil, fmt.Errorf("negative value %q for unsigned type", s)
	}
	return v, nil
}

func fitsUnsigned(v *big.Int, bits int) bool {
	return v.Sign() >= 0 && v.BitLen() <= bits
}

func fitsSigned(v *big.Int, bits int) bool {
	limit := new(big.Int).Lsh(big.NewInt(1), uint(bits-1))
	min := new(big.Int).Neg(limit)
	max := new(big.Int).Sub(limit, big.NewInt(1))
	return v.Cmp(min) >= 0 && v.Cmp(max) <= 0
}

// U256 is a fixed 256-bit unsigned integer, used for wei amounts, fee
// fields, and storage values. It wraps uint256.Int, which is the same
// type the teacher's go.mod already depends on for this domain.
type U256 = uint256.Int

// NewU256 constructs a U256 from a uint64.
func NewU256(v uint64) *U256 {
	return new(uint256.Int).SetUint64(v)
}

// U256FromBig converts a *big.Int into a U256, returning OutOfRange if
// it does not fit in 256 bits or is negative.
func U256FromBig(b *big.Int) (*U256, error) {
	if b.Sign() < 0 {
		return nil, NewError("common.U256FromBig", OutOfRange, nil).WithValue(b.String())
	}
	v, overflow := uint256.FromBig(b)
	if overflow {
		return nil, NewError("common.U256FromBig", OutOfRange, nil).WithValue(b.String())
	}
	return v, nil
}

// U256FromHex decodes a 0x-prefixed hex string into a U256.
func U256FromHex(s string) (*U256, error) {
	b, err := DecodeHex(s)
	if err != nil {
		return nil, NewError("common.U256FromHex", InvalidFormat, err)
	}
	if len(b) > 32 {
		return nil, NewError("common.U256FromHex", OutOfRange, nil)
	}
	return new(uint256.Int).SetBytes(b), nil
}

// U256FromBytes decodes a big-endian byte slice into a U256.
func U256FromBytes(b []byte) (*U256, error) {
	if len(b) > 32 {
		return nil, NewError("common.U256FromBytes", OutOfRange, nil)
	}
	return new(uint256.Int).SetBytes(b), nil
}

// U256FromString decodes s as either a decimal or a 0x-prefixed hex
// string into a U256.
func U256FromString(s string) (*U256, error) {
	v, err := parseUintString(s)
	if err != nil {
		return nil, NewError("common.U256FromString", InvalidFormat, err)
	}
	return U256FromBig(v)
}

// Pow returns base raised to the exp power as a U256. Like the EVM's
// EXP opcode, the result wraps silently modulo 2^256 on overflow rather
// than erroring: every intermediate multiplication in the underlying
// uint256.Int arithmetic is itself already modulo 2^256.
func Pow(base, exp *U256) *U256 {
	return new(uint256.Int).Exp(base, exp)
}

// --- Unsigned fixed-width types (distinct per spec.md §3) ---

// U8 is a distinct 8-bit unsigned integer type.
type U8 struct{ v uint8 }

func NewU8(v uint8) U8 { return U8{v} }

func U8FromString(s string) (U8, error) {
	n, err := parseUintString(s)
	if err != nil {
		return U8{}, NewError("common.U8FromString", InvalidFormat, err)
	}
	if !fitsUnsigned(n, 8) {
		return U8{}, NewError("common.U8FromString", OutOfRange, nil)
	}
	return U8{uint8(n.Uint64())}, nil
}

func U8FromBytes(b []byte) (U8, error) {
	if len(b) > 1 {
		return U8{}, NewError("common.U8FromBytes", InvalidLength, nil)
	}
	var v uint8
	if len(b) == 1 {
		v = b[0]
	}
	return U8{v}, nil
}

func U8FromBigInt(n *big.Int) (U8, error) {
	if !fitsUnsigned(n, 8) {
		return U8{}, NewError("common.U8FromBigInt", OutOfRange, nil)
	}
	return U8{uint8(n.Uint64())}, nil
}

func (x U8) Uint64() uint64    { return uint64(x.v) }
func (x U8) Bytes() []byte     { return []byte{x.v} }
func (x U8) BigInt() *big.Int  { return new(big.Int).SetUint64(uint64(x.v)) }
func (x U8) String() string    { return strconv.FormatUint(uint64(x.v), 10) }
func (x U8) Hex() string       { return EncodeHex(x.Bytes()) }

// U16 is a distinct 16-bit unsigned integer type.
type U16 struct{ v uint16 }

func NewU16(v uint16) U16 { return U16{v} }

func U16FromString(s string) (U16, error) {
	n, err := parseUintString(s)
	if err != nil {
		return U16{}, NewError("common.U16FromString", InvalidFormat, err)
	}
	if !fitsUnsigned(n, 16) {
		return U16{}, NewError("common.U16FromString", OutOfRange, nil)
	}
	return U16{uint16(n.Uint64())}, nil
}

func U16FromBytes(b []byte) (U16, error) {
	if len(b) > 2 {
		return U16{}, NewError("common.U16FromBytes", InvalidLength, nil)
	}
	var padded [2]byte
	copy(padded[2-len(b):], b)
	return U16{binary.BigEndian.Uint16(padded[:])}, nil
}

func U16FromBigInt(n *big.Int) (U16, error) {
	if !fitsUnsigned(n, 16) {
		return U16{}, NewError("common.U16FromBigInt", OutOfRange, nil)
	}
	return U16{uint16(n.Uint64())}, nil
}

func (x U16) Uint64() uint64 { return uint64(x.v) }
func (x U16) Bytes() []byte {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], x.v)
	return b[:]
}
func (x U16) BigInt() *big.Int { return new(big.Int).SetUint64(uint64(x.v)) }
func (x U16) String() string   { return strconv.FormatUint(uint64(x.v), 10) }
func (x U16) Hex() string      { return EncodeHex(x.Bytes()) }

// U32 is a distinct 32-bit unsigned integer type.
type U32 struct{ v uint32 }

func NewU32(v uint32) U32 { return U32{v} }

func U32FromString(s string) (U32, error) {
	n, err := parseUintString(s)
	if err != nil {
		return U32{}, NewError("common.U32FromString", InvalidFormat, err)
	}
	if !fitsUnsigned(n, 32) {
		return U32{}, NewError("common.U32FromString", OutOfRange, nil)
	}
	return U32{uint32(n.Uint64())}, nil
}

func U32FromBytes(b []byte) (U32, error) {
	if len(b) > 4 {
		return U32{}, NewError("common.U32FromBytes", InvalidLength, nil)
	}
	var padded [4]byte
	copy(padded[4-len(b):], b)
	return U32{binary.BigEndian.Uint32(padded[:])}, nil
}

func U32FromBigInt(n *big.Int) (U32, error) {
	if !fitsUnsigned(n, 32) {
		return U32{}, NewError("common.U32FromBigInt", OutOfRange, nil)
	}
	return U32{uint32(n.Uint64())}, nil
}

func (x U32) Uint64() uint64 { return uint64(x.v) }
func (x U32) Bytes() []byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], x.v)
	return b[:]
}
func (x U32) BigInt() *big.Int { return new(big.Int).SetUint64(uint64(x.v)) }
func (x U32) String() string   { return strconv.FormatUint(uint64(x.v), 10) }
func (x U32) Hex() string      { return EncodeHex(x.Bytes()) }

// U64 is a distinct 64-bit unsigned integer type.
type U64 struct{ v uint64 }

func NewU64(v uint64) U64 { return U64{v} }

func U64FromString(s string) (U64, error) {
	n, err := parseUintString(s)
	if err != nil {
		return U64{}, NewError("common.U64FromString", InvalidFormat, err)
	}
	if !fitsUnsigned(n, 64) {
		return U64{}, NewError("common.U64FromString", OutOfRange, nil)
	}
	return U64{n.Uint64()}, nil
}

func U64FromBytes(b []byte) (U64, error) {
	if len(b) > 8 {
		return U64{}, NewError("common.U64FromBytes", InvalidLength, nil)
	}
	var padded [8]byte
	copy(padded[8-len(b):], b)
	return U64{binary.BigEndian.Uint64(padded[:])}, nil
}

func U64FromBigInt(n *big.Int) (U64, error) {
	if !fitsUnsigned(n, 64) {
		return U64{}, NewError("common.U64FromBigInt", OutOfRange, nil)
	}
	return U64{n.Uint64()}, nil
}

func (x U64) Uint64() uint64 { return x.v }
func (x U64) Bytes() []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], x.v)
	return b[:]
}
func (x U64) BigInt() *big.Int { return new(big.Int).SetUint64(x.v) }
func (x U64) String() string   { return strconv.FormatUint(x.v, 10) }
func (x U64) Hex() string      { return EncodeHex(x.Bytes()) }

// U128 is a distinct 128-bit unsigned integer type. There is no native
// Go word wide enough, so it is backed by a range-checked big.Int.
type U128 struct{ v *big.Int }

func NewU128(v uint64) U128 { return U128{new(big.Int).SetUint64(v)} }

func U128FromString(s string) (U128, error) {
	n, err := parseUintString(s)
	if err != nil {
		return U128{}, NewError("common.U128FromString", InvalidFormat, err)
	}
	return U128FromBigInt(n)
}

func U128FromBytes(b []byte) (U128, error) {
	if len(b) > 16 {
		return U128{}, NewError("common.U128FromBytes", InvalidLength, nil)
	}
	return U128{new(big.Int).SetBytes(b)}, nil
}

func U128FromBigInt(n *big.Int) (U128, error) {
	if !fitsUnsigned(n, 128) {
		return U128{}, NewError("common.U128FromBigInt", OutOfRange, nil).
			WithContext(map[string]any{"bits": 128}).WithValue(n.String())
	}
	return U128{new(big.Int).Set(n)}, nil
}

func (x U128) BigInt() *big.Int { return new(big.Int).Set(x.v) }
func (x U128) Bytes() []byte {
	out := make([]byte, 16)
	b := x.v.Bytes()
	copy(out[16-len(b):], b)
	return out
}
func (x U128) String() string { return x.v.String() }
func (x U128) Hex() string    { return EncodeHex(x.Bytes()) }

// --- Signed fixed-width types (distinct per spec.md §3) ---

// I8 is a distinct 8-bit signed integer type, encoded as two's
// complement in its fixed-width byte form.
type I8 struct{ v int8 }

func NewI8(v int8) I8 { return I8{v} }

func I8FromString(s string) (I8, error) {
	n, err := parseIntString(s)
	if err != nil {
		return I8{}, NewError("common.I8FromString", InvalidFormat, err)
	}
	if !fitsSigned(n, 8) {
		return I8{}, NewError("common.I8FromString", OutOfRange, nil)
	}
	return I8{int8(n.Int64())}, nil
}

func I8FromBytes(b []byte) (I8, error) {
	if len(b) != 1 {
		return I8{}, NewError("common.I8FromBytes", InvalidLength, nil)
	}
	return I8{int8(b[0])}, nil
}

func I8FromBigInt(n *big.Int) (I8, error) {
	if !fitsSigned(n, 8) {
		return I8{}, NewError("common.I8FromBigInt", OutOfRange, nil)
	}
	return I8{int8(n.Int64())}, nil
}

func (x I8) Int64() int64      { return int64(x.v) }
func (x I8) Bytes() []byte      { return []byte{uint8(x.v)} }
func (x I8) BigInt() *big.Int   { return big.NewInt(int64(x.v)) }
func (x I8) String() string     { return strconv.FormatInt(int64(x.v), 10) }
func (x I8) Hex() string        { return EncodeHex(x.Bytes()) }

// I16 is a distinct 16-bit signed integer type.
type I16 struct{ v int16 }

func NewI16(v int16) I16 { return I16{v} }

func I16FromString(s string) (I16, error) {
	n, err := parseIntString(s)
	if err != nil {
		return I16{}, NewError("common.I16FromString", InvalidFormat, err)
	}
	if !fitsSigned(n, 16) {
		return I16{}, NewError("common.I16FromString", OutOfRange, nil)
	}
	return I16{int16(n.Int64())}, nil
}

func I16FromBytes(b []byte) (I16, error) {
	if len(b) != 2 {
		return I16{}, NewError("common.I16FromBytes", InvalidLength, nil)
	}
	return I16{int16(binary.BigEndian.Uint16(b))}, nil
}

func I16FromBigInt(n *big.Int) (I16, error) {
	if !fitsSigned(n, 16) {
		return I16{}, NewError("common.I16FromBigInt", OutOfRange, nil)
	}
	return I16{int16(n.Int64())}, nil
}

func (x I16) Int64() int64 { return int64(x.v) }
func (x I16) Bytes() []byte {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], uint16(x.v))
	return b[:]
}
func (x I16) BigInt() *big.Int { return big.NewInt(int64(x.v)) }
func (x I16) String() string   { return strconv.FormatInt(int64(x.v), 10) }
func (x I16) Hex() string      { return EncodeHex(x.Bytes()) }

// I32 is a distinct 32-bit signed integer type.
type I32 struct{ v int32 }

func NewI32(v int32) I32 { return I32{v} }

func I32FromString(s string) (I32, error) {
	n, err := parseIntString(s)
	if err != nil {
		return I32{}, NewError("common.I32FromString", InvalidFormat, err)
	}
	if !fitsSigned(n, 32) {
		return I32{}, NewError("common.I32FromString", OutOfRange, nil)
	}
	return I32{int32(n.Int64())}, nil
}

func I32FromBytes(b []byte) (I32, error) {
	if len(b) != 4 {
		return I32{}, NewError("common.I32FromBytes", InvalidLength, nil)
	}
	return I32{int32(binary.BigEndian.Uint32(b))}, nil
}

func I32FromBigInt(n *big.Int) (I32, error) {
	if !fitsSigned(n, 32) {
		return I32{}, NewError("common.I32FromBigInt", OutOfRange, nil)
	}
	return I32{int32(n.Int64())}, nil
}

func (x I32) Int64() int64 { return int64(x.v) }
func (x I32) Bytes() []byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(x.v))
	return b[:]
}
func (x I32) BigInt() *big.Int { return big.NewInt(int64(x.v)) }
func (x I32) String() string   { return strconv.FormatInt(int64(x.v), 10) }
func (x I32) Hex() string      { return EncodeHex(x.Bytes()) }

// I64 is a distinct 64-bit signed integer type.
type I64 struct{ v int64 }

func NewI64(v int64) I64 { return I64{v} }

func I64FromString(s string) (I64, error) {
	n, err := parseIntString(s)
	if err != nil {
		return I64{}, NewError("common.I64FromString", InvalidFormat, err)
	}
	if !fitsSigned(n, 64) {
		return I64{}, NewError("common.I64FromString", OutOfRange, nil)
	}
	return I64{n.Int64()}, nil
}

func I64FromBytes(b []byte) (I64, error) {
	if len(b) != 8 {
		return I64{}, NewError("common.I64FromBytes", InvalidLength, nil)
	}
	return I64{int64(binary.BigEndian.Uint64(b))}, nil
}

func I64FromBigInt(n *big.Int) (I64, error) {
	if !fitsSigned(n, 64) {
		return I64{}, NewError("common.I64FromBigInt", OutOfRange, nil)
	}
	return I64{n.Int64()}, nil
}

func (x I64) Int64() int64 { return x.v }
func (x I64) Bytes() []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(x.v))
	return b[:]
}
func (x I64) BigInt() *big.Int { return big.NewInt(x.v) }
func (x I64) String() string   { return strconv.FormatInt(x.v, 10) }
func (x I64) Hex() string      { return EncodeHex(x.Bytes()) }

// I128 is a distinct 128-bit signed integer type, backed by a
// range-checked big.Int with a fixed 16-byte two's-complement encoding.
type I128 struct{ v *big.Int }

func NewI128(v int64) I128 { return I128{big.NewInt(v)} }

func I128FromString(s string) (I128, error) {
	n, err := parseIntString(s)
	if err != nil {
		return I128{}, NewError("common.I128FromString", InvalidFormat, err)
	}
	return I128FromBigInt(n)
}

// I128FromBytes interprets b (must be exactly 16 bytes) as two's
// complement.
func I128FromBytes(b []byte) (I128, error) {
	if len(b) != 16 {
		return I128{}, NewError("common.I128FromBytes", InvalidLength, nil)
	}
	v := new(big.Int).SetBytes(b)
	if b[0]&0x80 != 0 {
		mod := new(big.Int).Lsh(big.NewInt(1), 128)
		v.Sub(v, mod)
	}
	return I128{v}, nil
}

func I128FromBigInt(n *big.Int) (I128, error) {
	if !fitsSigned(n, 128) {
		return I128{}, NewError("common.I128FromBigInt", OutOfRange, nil)
	}
	return I128{new(big.Int).Set(n)}, nil
}

func (x I128) BigInt() *big.Int { return new(big.Int).Set(x.v) }
func (x I128) Bytes() []byte {
	out := make([]byte, 16)
	v := x.v
	if v.Sign() < 0 {
		mod := new(big.Int).Lsh(big.NewInt(1), 128)
		v = new(big.Int).Add(mod, v)
	}
	b := v.Bytes()
	copy(out[16-len(b):], b)
	return out
}
func (x I128) String() string { return x.v.String() }
func (x I128) Hex() string    { return EncodeHex(x.Bytes()) }

// I256 is a distinct 256-bit signed integer type, using math/big since
// uint256 has no signed counterpart and the domain rarely needs more
// than decode/compare for signed values (e.g. EVM SDIV/SMOD operands at
// the bytecode-analyzer boundary, not in the execution semantics this
// module doesn't implement).
type I256 struct{ v *big.Int }

func NewI256(v int64) I256 { return I256{big.NewInt(v)} }

func I256FromString(s string) (I256, error) {
	n, err := parseIntString(s)
	if err != nil {
		return I256{}, NewError("common.I256FromString", InvalidFormat, err)
	}
	return I256FromBigInt(n)
}

// I256FromTwosComplement interprets b (must be exactly 32 bytes) as a
// two's-complement signed 256-bit integer.
func I256FromTwosComplement(b []byte) (I256, error) {
	if len(b) != 32 {
		return I256{}, NewError("common.I256FromTwosComplement", InvalidLength, nil)
	}
	v := new(big.Int).SetBytes(b)
	if b[0]&0x80 != 0 {
		mod := new(big.Int).Lsh(big.NewInt(1), 256)
		v.Sub(v, mod)
	}
	return I256{v}, nil
}

func I256FromBigInt(n *big.Int) (I256, error) {
	if !fitsSigned(n, 256) {
		return I256{}, NewError("common.I256FromBigInt", OutOfRange, nil)
	}
	return I256{new(big.Int).Set(n)}, nil
}

func (x I256) BigInt() *big.Int { return new(big.Int).Set(x.v) }

// Bytes32 renders x as 32-byte two's-complement big-endian bytes.
func (x I256) Bytes32() []byte {
	out := make([]byte, 32)
	v := x.v
	if v.Sign() < 0 {
		mod := new(big.Int).Lsh(big.NewInt(1), 256)
		v = new(big.Int).Add(mod, v)
	}
	b := v.Bytes()
	copy(out[32-len(b):], b)
	return out
}

func (x I256) Bytes() []byte  { return x.Bytes32() }
func (x I256) String() string { return x.v.String() }
func (x I256) Hex() string    { return EncodeHex(x.Bytes32()) }
