package types

import (
	"math/big"

	"github.com/ethlayer/primitives/common"
	"github.com/ethlayer/primitives/crypto"
)

// Signer derives signing hashes and recovers senders for a chain
// configuration. Grounded on pkg/core/types/signer.go's Signer
// interface, but backed by the real crypto package instead of the
// teacher's locally duplicated secp256k1 curve constants.
type Signer interface {
	ChainID() *big.Int
	Hash(tx *Transaction) Hash
	Sender(tx *Transaction) (Address, error)
	SignatureValues(tx *Transaction, sig *crypto.Signature) (v, r, s *big.Int)
}

// LondonSigner handles every transaction type introduced through
// EIP-1559 (and, by extension, blob and set-code transactions, which
// reuse the same typed-signing-hash shape).
type LondonSigner struct {
	chainID *big.Int
}

// NewLondonSigner constructs a Signer bound to chainID.
func NewLondonSigner(chainID *big.Int) *LondonSigner {
	return &LondonSigner{chainID: new(big.Int).Set(chainID)}
}

func (s *LondonSigner) ChainID() *big.Int { return s.chainID }

func (s *LondonSigner) Hash(tx *Transaction) Hash { return tx.SigningHash() }

func (s *LondonSigner) SignatureValues(tx *Transaction, sig *crypto.Signature) (v, r, s2 *big.Int) {
	if tx.Type() == LegacyTxType {
		v = new(big.Int).Add(new(big.Int).Mul(s.chainID, big.NewInt(2)), big.NewInt(35+int64(sig.V)))
	} else {
		v = big.NewInt(int64(sig.V))
	}
	return v, sig.R, sig.S
}

// Sender recovers and returns the address that signed tx. It returns a
// TransactionNotSigned error if the signature is missing and a
// RecoveryFailed error if it is invalid.
func (s *LondonSigner) Sender(tx *Transaction) (Address, error) {
	if cached, ok := tx.CachedSender(); ok {
		return cached, nil
	}
	v, r, s2 := tx.RawSignatureValues()
	if r == nil || s2 == nil || (r.Sign() == 0 && s2.Sign() == 0) {
		return Address{}, common.NewError("types.Sender", common.TransactionNotSigned, nil)
	}

	var recID byte
	if tx.Type() == LegacyTxType {
		if v == nil {
			return Address{}, common.NewError("types.Sender", common.TransactionNotSigned, nil)
		}
		vv := v.Uint64()
		switch {
		case vv == 27 || vv == 28:
			recID = byte(vv - 27)
		default:
			// EIP-155: v = chainID*2 + 35 + recID
			adjusted := new(big.Int).Sub(v, big.NewInt(35))
			chainDouble := new(big.Int).Mul(s.chainID, big.NewInt(2))
			recIDBig := new(big.Int).Sub(adjusted, chainDouble)
			recID = byte(recIDBig.Uint64())
		}
	} else {
		if v == nil {
			return Address{}, common.NewError("types.Sender", common.TransactionNotSigned, nil)
		}
		recID = byte(v.Uint64())
	}

	digest := tx.SigningHash()
	sig := &crypto.Signature{R: r, S: s2, V: recID}
	addr, err := crypto.RecoverAddress(digest[:], sig)
	if err != nil {
		return Address{}, common.NewError("types.Sender", common.RecoveryFailed, err)
	}
	tx.SetSender(addr)
	return addr, nil
}

// SignTx signs tx's signing hash with priv under signer, returning a
// new Transaction carrying the signature (the input is not mutated).
func SignTx(tx *Transaction, signer Signer, priv *crypto.PrivateKey) (*Transaction, error) {
	digest := signer.Hash(tx)
	sig, err := crypto.Sign(digest[:], priv)
	if err != nil {
		return nil, common.NewError("types.SignTx", common.InvalidSignature, err)
	}
	v, r, s := signer.SignatureValues(tx, sig)

	signed := &Transaction{inner: tx.inner.copy()}
	signed.inner.setSignatureValues(v, r, s)
	return signed, nil
}

// ValidateSignature reports whether tx's raw signature values fall
// within the valid secp256k1 range and (for legacy/access-list
// transactions before the homestead-equivalent canonical-s rule) are
// in canonical low-s form.
func ValidateSignature(tx *Transaction) bool {
	_, r, s := tx.RawSignatureValues()
	if r == nil || s == nil {
		return false
	}
	return crypto.ValidateSignatureValues(r, s, true)
}
