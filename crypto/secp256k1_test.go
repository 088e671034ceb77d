package crypto

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

func TestSignRecoverRoundTrip(t *testing.T) {
	priv, err := GeneratePrivateKey()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	digest := Keccak256([]byte("message"))

	sig, err := Sign(digest, priv)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !IsCanonicalSignature(sig.S) {
		t.Fatal("Sign should always produce a canonical (low-s) signature")
	}

	recoveredAddr, err := RecoverAddress(digest, sig)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantAddr := priv.PublicKey().Address()
	if recoveredAddr != wantAddr {
		t.Fatalf("recovered address %x, want %x", recoveredAddr, wantAddr)
	}
}

func TestSignIsIdempotentOverAddress(t *testing.T) {
	priv, _ := GeneratePrivateKey()
	digest := Keccak256([]byte("message"))

	sig1, _ := Sign(digest, priv)
	sig2, _ := Sign(digest, priv)

	addr1, err := RecoverAddress(digest, sig1)
	if err != nil {
		t.Fatal(err)
	}
	addr2, err := RecoverAddress(digest, sig2)
	if err != nil {
		t.Fatal(err)
	}
	if addr1 != addr2 {
		t.Fatal("two signatures over the same digest by the same key must recover the same address")
	}
}

func TestCanonicalizeSignatureFlipsHighS(t *testing.T) {
	priv, _ := GeneratePrivateKey()
	digest := Keccak256([]byte("message"))
	sig, _ := Sign(digest, priv)

	n := secp256k1.S256().N
	flippedS := new(big.Int).Sub(n, sig.S)
	highS := &Signature{R: sig.R, S: flippedS, V: sig.V ^ 1}

	if IsCanonicalSignature(highS.S) {
		t.Fatal("test setup should have produced a non-canonical signature")
	}
	canon := CanonicalizeSignature(highS)
	if !IsCanonicalSignature(canon.S) {
		t.Fatal("CanonicalizeSignature should produce a canonical signature")
	}
	if canon.S.Cmp(sig.S) != 0 {
		t.Fatal("canonicalizing a flipped signature should recover the original S")
	}
}

func TestValidateSignatureValuesRejectsZero(t *testing.T) {
	zero := new(big.Int)
	one := big.NewInt(1)
	if ValidateSignatureValues(zero, one, true) {
		t.Fatal("r=0 should be rejected")
	}
	if ValidateSignatureValues(one, zero, true) {
		t.Fatal("s=0 should be rejected")
	}
}

func TestCompactSignatureRoundTrip(t *testing.T) {
	priv, _ := GeneratePrivateKey()
	digest := Keccak256([]byte("message"))
	sig, _ := Sign(digest, priv)

	compact := ToCompact(sig)
	if len(compact) != CompactSignatureLength {
		t.Fatalf("expected %d bytes, got %d", CompactSignatureLength, len(compact))
	}
	decoded, err := FromCompact(compact)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decoded.R.Cmp(sig.R) != 0 || decoded.S.Cmp(sig.S) != 0 || decoded.V != sig.V {
		t.Fatalf("round trip mismatch: got %+v, want %+v", decoded, sig)
	}
}

func TestFromCompactAcceptsLegacyRecoveryByte(t *testing.T) {
	priv, _ := GeneratePrivateKey()
	digest := Keccak256([]byte("message"))
	sig, _ := Sign(digest, priv)

	compact := ToCompact(sig) // trailing byte is already 27+V
	decoded, err := FromCompact(compact)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decoded.V != sig.V {
		t.Fatalf("expected V=%d, got %d", sig.V, decoded.V)
	}
}

func TestFromCompactRejectsWrongLength(t *testing.T) {
	if _, err := FromCompact(make([]byte, 64)); err == nil {
		t.Fatal("expected error for short compact signature")
	}
}

func TestRpcSignatureRoundTrip(t *testing.T) {
	priv, _ := GeneratePrivateKey()
	digest := Keccak256([]byte("message"))
	sig, _ := Sign(digest, priv)

	rpc := ToRpc(sig)
	decoded, err := FromRpc(rpc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decoded.R.Cmp(sig.R) != 0 || decoded.S.Cmp(sig.S) != 0 || decoded.V != sig.V {
		t.Fatalf("round trip mismatch: got %+v, want %+v", decoded, sig)
	}
}

func TestFromRpcNormalizesLegacyV(t *testing.T) {
	priv, _ := GeneratePrivateKey()
	digest := Keccak256([]byte("message"))
	sig, _ := Sign(digest, priv)

	rpc := ToRpc(sig)
	rpc.YParity = sig.V + 27 // legacy v encoding
	decoded, err := FromRpc(rpc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decoded.V != sig.V {
		t.Fatalf("expected normalized yParity %d, got %d", sig.V, decoded.V)
	}
}

func TestPublicKeyRoundTrip(t *testing.T) {
	priv, _ := GeneratePrivateKey()
	pub := priv.PublicKey()

	uncompressed := pub.Uncompressed()
	parsed, err := PublicKeyFromBytes(uncompressed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(parsed.Uncompressed(), uncompressed) {
		t.Fatal("round-tripped public key should match")
	}

	compressed := pub.Compressed()
	parsedCompressed, err := PublicKeyFromBytes(compressed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parsedCompressed.Address() != pub.Address() {
		t.Fatal("address derived from compressed key should match uncompressed")
	}
}
