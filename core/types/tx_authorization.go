package types

import (
	"math/big"

	"github.com/ethlayer/primitives/common"
	"github.com/ethlayer/primitives/crypto"
	"github.com/ethlayer/primitives/rlp"
)

// authorizationMagic is the EIP-7702 domain-separator byte prepended to
// an authorization's signing payload, distinguishing it from any other
// RLP-encoded structure that might hash to the same value.
const authorizationMagic = 0x05

// SigningHash returns the EIP-7702 digest an authorization's signature
// is taken over: keccak256(0x05 || rlp([chainId, address, nonce])).
func (a Authorization) SigningHash() Hash {
	payload, _ := rlp.EncodeToBytes([]interface{}{bigOrZero(a.ChainID), a.Address, a.Nonce})
	return crypto.Keccak256Hash([]byte{authorizationMagic}, payload)
}

// Sign returns a copy of a with V, R, S set from signing its EIP-7702
// digest with priv.
func (a Authorization) Sign(priv *crypto.PrivateKey) (Authorization, error) {
	digest := a.SigningHash()
	sig, err := crypto.Sign(digest[:], priv)
	if err != nil {
		return Authorization{}, common.NewError("types.Authorization.Sign", common.InvalidSignature, err)
	}
	out := a
	out.V = big.NewInt(int64(sig.V))
	out.R = sig.R
	out.S = sig.S
	return out, nil
}

// Verify recovers and returns the address that signed a. It returns a
// TransactionNotSigned error if any of V, R, S is nil, and a
// RecoveryFailed error if they don't carry a valid signature over its
// EIP-7702 digest.
func (a Authorization) Verify() (Address, error) {
	if a.V == nil || a.R == nil || a.S == nil {
		return Address{}, common.NewError("types.Authorization.Verify", common.TransactionNotSigned, nil)
	}
	digest := a.SigningHash()
	sig := &crypto.Signature{R: a.R, S: a.S, V: byte(a.V.Uint64())}
	addr, err := crypto.RecoverAddress(digest[:], sig)
	if err != nil {
		return Address{}, common.NewError("types.Authorization.Verify", common.RecoveryFailed, err)
	}
	return addr, nil
}
