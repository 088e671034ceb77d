package crypto

import (
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	dcrecdsa "github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"

	"github.com/ethlayer/primitives/common"
)

// SignatureLength is the length of a recoverable secp256k1 signature:
// 32 bytes R, 32 bytes S, 1 byte recovery id.
const SignatureLength = 64 + 1

// secp256k1HalfN is N/2, the threshold used to enforce canonical
// ("low-s") signatures per EIP-2 / the spec's signing invariants.
var secp256k1HalfN = new(big.Int).Rsh(secp256k1.S256().N, 1)

// PrivateKey wraps a secp256k1 scalar.
type PrivateKey struct {
	key *secp256k1.PrivateKey
}

// GeneratePrivateKey creates a new random secp256k1 private key.
func GeneratePrivateKey() (*PrivateKey, error) {
	key, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return nil, common.NewError("crypto.GeneratePrivateKey", common.InvalidSignature, err)
	}
	return &PrivateKey{key: key}, nil
}

// PrivateKeyFromBytes parses a 32-byte big-endian scalar into a PrivateKey.
func PrivateKeyFromBytes(b []byte) (*PrivateKey, error) {
	if len(b) != 32 {
		return nil, common.NewError("crypto.PrivateKeyFromBytes", common.InvalidLength, nil)
	}
	key := secp256k1.PrivKeyFromBytes(b)
	return &PrivateKey{key: key}, nil
}

// Bytes returns the 32-byte big-endian scalar.
func (p *PrivateKey) Bytes() []byte { return p.key.Serialize() }

// PublicKey returns the corresponding uncompressed public key point.
func (p *PrivateKey) PublicKey() *PublicKey {
	return &PublicKey{pub: p.key.PubKey()}
}

// PublicKey wraps a secp256k1 curve point.
type PublicKey struct {
	pub *secp256k1.PublicKey
}

// PublicKeyFromBytes parses an uncompressed (65-byte, 0x04 prefix) or
// compressed (33-byte) public key.
func PublicKeyFromBytes(b []byte) (*PublicKey, error) {
	pub, err := secp256k1.ParsePubKey(b)
	if err != nil {
		return nil, common.NewError("crypto.PublicKeyFromBytes", common.InvalidFormat, err)
	}
	return &PublicKey{pub: pub}, nil
}

// Uncompressed returns the 65-byte 0x04-prefixed X||Y encoding.
func (p *PublicKey) Uncompressed() []byte { return p.pub.SerializeUncompressed() }

// Compressed returns the 33-byte compressed encoding.
func (p *PublicKey) Compressed() []byte { return p.pub.SerializeCompressed() }

// Address derives the 20-byte Ethereum address from the public key:
// the low 20 bytes of keccak256 of the 64-byte uncompressed point
// (without the leading 0x04 prefix byte).
func (p *PublicKey) Address() common.Address {
	uncompressed := p.Uncompressed()
	hash := Keccak256(uncompressed[1:])
	return common.BytesToAddress(hash[12:])
}

// Signature is a recoverable secp256k1 ECDSA signature: R, S, and a
// recovery id V in {0, 1}.
type Signature struct {
	R *big.Int
	S *big.Int
	V byte
}

// Sign produces a recoverable, low-s-canonicalized signature over a
// 32-byte digest (the caller supplies the hash, per spec.md §4.3 — this
// package never hashes on the caller's behalf).
func Sign(digest []byte, priv *PrivateKey) (*Signature, error) {
	if len(digest) != 32 {
		return nil, common.NewError("crypto.Sign", common.InvalidLength, nil)
	}
	sig := dcrecdsa.SignCompact(priv.key, digest, false)
	// dcrd's compact format is [recoveryID+27, R (32), S (32)].
	recID := sig[0] - 27
	r := new(big.Int).SetBytes(sig[1:33])
	s := new(big.Int).SetBytes(sig[33:65])
	return &Signature{R: r, S: s, V: recID}, nil
}

// Recover recovers the public key that produced sig over digest.
func Recover(digest []byte, sig *Signature) (*PublicKey, error) {
	if len(digest) != 32 {
		return nil, common.NewError("crypto.Recover", common.InvalidLength, nil)
	}
	if !ValidateSignatureValues(sig.R, sig.S, true) {
		return nil, common.NewError("crypto.Recover", common.InvalidSignature, nil)
	}
	compact := make([]byte, SignatureLength)
	compact[0] = sig.V + 27
	rBytes := sig.R.Bytes()
	sBytes := sig.S.Bytes()
	copy(compact[1+32-len(rBytes):33], rBytes)
	copy(compact[33+32-len(sBytes):65], sBytes)

	pub, _, err := dcrecdsa.RecoverCompact(compact, digest)
	if err != nil {
		return nil, common.NewError("crypto.Recover", common.RecoveryFailed, err)
	}
	return &PublicKey{pub: pub}, nil
}

// RecoverAddress recovers the signer address directly, the common case
// for transaction-sender recovery.
func RecoverAddress(digest []byte, sig *Signature) (common.Address, error) {
	pub, err := Recover(digest, sig)
	if err != nil {
		return common.Address{}, err
	}
	return pub.Address(), nil
}

// VerifySignature checks a non-recoverable signature (R, S) against a
// public key and digest, without requiring S to be canonical.
func VerifySignature(pub *PublicKey, digest []byte, r, s *big.Int) bool {
	var rScalar, sScalar secp256k1.ModNScalar
	rScalar.SetByteSlice(r.Bytes())
	sScalar.SetByteSlice(s.Bytes())
	sig := dcrecdsa.NewSignature(&rScalar, &sScalar)
	return sig.Verify(digest, pub.pub)
}

// ValidateSignatureValues reports whether (r, s) fall within the valid
// secp256k1 signature range. When homestead is true, s must additionally
// be canonical (s <= N/2), per EIP-2.
func ValidateSignatureValues(r, s *big.Int, homestead bool) bool {
	n := secp256k1.S256().N
	if r.Sign() <= 0 || s.Sign() <= 0 {
		return false
	}
	if r.Cmp(n) >= 0 || s.Cmp(n) >= 0 {
		return false
	}
	if homestead && s.Cmp(secp256k1HalfN) > 0 {
		return false
	}
	return true
}

// IsCanonicalSignature reports whether s is in the lower half of the
// curve order, i.e. already in canonical ("low-s") form.
func IsCanonicalSignature(s *big.Int) bool {
	return s.Cmp(secp256k1HalfN) <= 0
}

// CanonicalizeSignature returns sig itself if S is already canonical;
// otherwise it returns a new Signature with S flipped to N-S and V flipped.
func CanonicalizeSignature(sig *Signature) *Signature {
	if IsCanonicalSignature(sig.S) {
		return sig
	}
	n := secp256k1.S256().N
	newS := new(big.Int).Sub(n, sig.S)
	newV := sig.V ^ 1
	return &Signature{R: sig.R, S: newS, V: newV}
}

// CompactSignatureLength is the wire size of the r‖s‖(27+yParity)
// compact signature encoding used by eth_sign/personal_sign.
const CompactSignatureLength = 65

// ToCompact encodes sig as 65 bytes: 32-byte big-endian R, 32-byte
// big-endian S, and a trailing recovery byte 27+yParity.
func ToCompact(sig *Signature) []byte {
	out := make([]byte, CompactSignatureLength)
	rBytes := sig.R.Bytes()
	sBytes := sig.S.Bytes()
	copy(out[32-len(rBytes):32], rBytes)
	copy(out[64-len(sBytes):64], sBytes)
	out[64] = 27 + sig.V
	return out
}

// FromCompact decodes a 65-byte r‖s‖(27+yParity) signature, accepting a
// trailing recovery byte of either 0/1 or 27/28.
func FromCompact(b []byte) (*Signature, error) {
	if len(b) != CompactSignatureLength {
		return nil, common.NewError("crypto.FromCompact", common.InvalidLength, nil)
	}
	v := b[64]
	if v >= 27 {
		v -= 27
	}
	if v > 1 {
		return nil, common.NewError("crypto.FromCompact", common.InvalidSignature, nil)
	}
	r := new(big.Int).SetBytes(b[0:32])
	s := new(big.Int).SetBytes(b[32:64])
	return &Signature{R: r, S: s, V: v}, nil
}

// RpcSignature is the {r,s,yParity} shape JSON-RPC uses for typed
// transactions (EIP-2930 onward): r/s as 0x-prefixed hex strings and
// yParity already normalized to 0/1.
type RpcSignature struct {
	R       string
	S       string
	YParity byte
}

// ToRpc encodes sig in the {r,s,yParity} JSON-RPC shape.
func ToRpc(sig *Signature) RpcSignature {
	r := make([]byte, 32)
	s := make([]byte, 32)
	rBytes := sig.R.Bytes()
	sBytes := sig.S.Bytes()
	copy(r[32-len(rBytes):], rBytes)
	copy(s[32-len(sBytes):], sBytes)
	return RpcSignature{
		R:       common.EncodeHex(r),
		S:       common.EncodeHex(s),
		YParity: sig.V,
	}
}

// FromRpc decodes an RpcSignature into a Signature, normalizing legacy
// v encodings a caller might still hand in through the YParity field:
// 0/1 pass through unchanged, 27/28 are shifted down, and any value
// from an EIP-155 v (chainId*2+35+recID) is reduced via the parity of
// v-35, which always equals recID since chainId*2 is even.
func FromRpc(rpc RpcSignature) (*Signature, error) {
	r, err := common.DecodeHex(rpc.R)
	if err != nil {
		return nil, common.NewError("crypto.FromRpc", common.InvalidFormat, err)
	}
	s, err := common.DecodeHex(rpc.S)
	if err != nil {
		return nil, common.NewError("crypto.FromRpc", common.InvalidFormat, err)
	}
	return &Signature{
		R: new(big.Int).SetBytes(r),
		S: new(big.Int).SetBytes(s),
		V: normalizeYParity(rpc.YParity),
	}, nil
}

// normalizeYParity reduces a legacy v byte (0/1, 27/28, or an EIP-155
// v taken modulo 256) down to a 0/1 recovery id.
func normalizeYParity(v byte) byte {
	switch {
	case v == 0 || v == 1:
		return v
	case v == 27 || v == 28:
		return v - 27
	default:
		// Byte wraparound keeps parity, so this holds for v modulo 256.
		return (v - 35) & 1
	}
}
