// Package types implements the transaction, access-list, authorization,
// log, receipt, header, and block-level bloom aggregation primitives.
// Grounded on pkg/core/types/{transaction.go,transaction_rlp.go,
// signer.go,common.go,receipt.go,header.go,bloom.go} from the teacher.
package types

import (
	"math/big"
	"sync/atomic"

	"github.com/ethlayer/primitives/common"
)

type Hash = common.Hash
type Address = common.Address
type Bloom = common.Bloom

// BytesToHash and BytesToAddress forward to the common package so callers
// within this package (and its tests) don't need a separate import.
func BytesToHash(b []byte) Hash       { return common.BytesToHash(b) }
func BytesToAddress(b []byte) Address { return common.BytesToAddress(b) }

// Transaction type discriminators (EIP-2718 envelope type bytes).
const (
	LegacyTxType     = 0x00
	AccessListTxType = 0x01
	DynamicFeeTxType = 0x02
	BlobTxType       = 0x03
	SetCodeTxType    = 0x04
)

// TxData is the common interface implemented by every concrete
// transaction variant. A Transaction wraps exactly one TxData value.
type TxData interface {
	txType() byte
	chainID() *big.Int
	accessList() AccessList
	data() []byte
	gas() uint64
	gasPrice() *big.Int
	gasTipCap() *big.Int
	gasFeeCap() *big.Int
	value() *big.Int
	nonce() uint64
	to() *Address
	rawSignatureValues() (v, r, s *big.Int)
	setSignatureValues(v, r, s *big.Int)
	copy() TxData
}

// AccessTuple is one (address, storage keys) entry of an EIP-2930
// access list.
type AccessTuple struct {
	Address     Address
	StorageKeys []Hash
}

// AccessList is an ordered sequence of AccessTuple entries.
type AccessList []AccessTuple

// StorageKeyCount returns the total number of storage keys across every
// tuple in the list, used for EIP-2930 intrinsic gas accounting.
func (al AccessList) StorageKeyCount() int {
	n := 0
	for _, t := range al {
		n += len(t.StorageKeys)
	}
	return n
}

// Authorization is an EIP-7702 set-code authorization tuple.
type Authorization struct {
	ChainID *big.Int
	Address Address
	Nonce   uint64
	V       *big.Int
	R       *big.Int
	S       *big.Int
}

// Transaction wraps a concrete TxData variant and caches its derived
// hash, size, and signer, the way the teacher's transaction.go does
// with atomic.Pointer fields so concurrent readers never race.
type Transaction struct {
	inner TxData

	hash atomic.Pointer[Hash]
	size atomic.Uint64
	from atomic.Pointer[Address]
}

// NewTransaction wraps inner in a fresh Transaction with no cached
// derived fields.
func NewTransaction(inner TxData) *Transaction {
	return &Transaction{inner: inner.copy()}
}

func (tx *Transaction) Type() byte             { return tx.inner.txType() }
func (tx *Transaction) ChainId() *big.Int      { return tx.inner.chainID() }
func (tx *Transaction) AccessList() AccessList  { return tx.inner.accessList() }
func (tx *Transaction) Data() []byte           { return tx.inner.data() }
func (tx *Transaction) Gas() uint64            { return tx.inner.gas() }
func (tx *Transaction) GasPrice() *big.Int     { return tx.inner.gasPrice() }
func (tx *Transaction) GasTipCap() *big.Int    { return tx.inner.gasTipCap() }
func (tx *Transaction) GasFeeCap() *big.Int    { return tx.inner.gasFeeCap() }
func (tx *Transaction) Value() *big.Int        { return tx.inner.value() }
func (tx *Transaction) Nonce() uint64          { return tx.inner.nonce() }
func (tx *Transaction) To() *Address           { return tx.inner.to() }

// RawSignatureValues returns the transaction's raw (v, r, s) signature
// fields, which may be nil/zero for an unsigned transaction.
func (tx *Transaction) RawSignatureValues() (v, r, s *big.Int) {
	return tx.inner.rawSignatureValues()
}

// IsSigned reports whether the transaction carries a non-zero signature.
func (tx *Transaction) IsSigned() bool {
	_, r, s := tx.RawSignatureValues()
	return r != nil && r.Sign() != 0 && s != nil && s.Sign() != 0
}

// AuthorizationList returns the EIP-7702 authorization list for SetCodeTx
// transactions, or nil for every other variant.
func (tx *Transaction) AuthorizationList() []Authorization {
	if sc, ok := tx.inner.(*SetCodeTx); ok {
		return sc.AuthorizationList
	}
	return nil
}

// BlobGasFeeCap returns the EIP-4844 max fee per blob gas for BlobTx
// transactions, or nil for every other variant.
func (tx *Transaction) BlobGasFeeCap() *big.Int {
	if b, ok := tx.inner.(*BlobTx); ok {
		return b.BlobFeeCap
	}
	return nil
}

// BlobHashes returns the versioned blob hashes for BlobTx transactions.
func (tx *Transaction) BlobHashes() []Hash {
	if b, ok := tx.inner.(*BlobTx); ok {
		return b.BlobHashes
	}
	return nil
}

// BlobGasPerBlob is the fixed gas cost attributed to each blob (EIP-4844).
const BlobGasPerBlob = 131072

// BlobGas returns the total blob gas consumed by the transaction's blobs.
func (tx *Transaction) BlobGas() uint64 {
	return uint64(len(tx.BlobHashes())) * BlobGasPerBlob
}

// SetSender caches a recovered sender address on the transaction. Safe
// for concurrent use; callers normally populate this once via Sender.
func (tx *Transaction) SetSender(addr Address) {
	tx.from.Store(&addr)
}

// CachedSender returns a previously cached sender, if any, without
// performing signature recovery.
func (tx *Transaction) CachedSender() (Address, bool) {
	if p := tx.from.Load(); p != nil {
		return *p, true
	}
	return Address{}, false
}

// Size returns the cached RLP-encoded byte length of the transaction,
// computing and caching it on first call.
func (tx *Transaction) Size() uint64 {
	if cached := tx.size.Load(); cached != 0 {
		return cached
	}
	enc, err := tx.EncodeRLP()
	if err != nil {
		return 0
	}
	size := uint64(len(enc))
	tx.size.Store(size)
	return size
}

// Hash returns the cached Keccak-256 hash of the transaction's RLP
// envelope encoding.
func (tx *Transaction) Hash() Hash {
	if cached := tx.hash.Load(); cached != nil {
		return *cached
	}
	h := tx.hashRLP()
	tx.hash.Store(&h)
	return h
}

func copyAddressPtr(a *Address) *Address {
	if a == nil {
		return nil
	}
	cpy := *a
	return &cpy
}

func copyBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	cpy := make([]byte, len(b))
	copy(cpy, b)
	return cpy
}

func copyBigInt(b *big.Int) *big.Int {
	if b == nil {
		return nil
	}
	return new(big.Int).Set(b)
}

func copyAccessList(al AccessList) AccessList {
	if al == nil {
		return nil
	}
	out := make(AccessList, len(al))
	for i, t := range al {
		keys := make([]Hash, len(t.StorageKeys))
		copy(keys, t.StorageKeys)
		out[i] = AccessTuple{Address: t.Address, StorageKeys: keys}
	}
	return out
}

func copyAuthList(auths []Authorization) []Authorization {
	if auths == nil {
		return nil
	}
	out := make([]Authorization, len(auths))
	for i, a := range auths {
		out[i] = Authorization{
			ChainID: copyBigInt(a.ChainID),
			Address: a.Address,
			Nonce:   a.Nonce,
			V:       copyBigInt(a.V),
			R:       copyBigInt(a.R),
			S:       copyBigInt(a.S),
		}
	}
	return out
}

func copyHashes(hs []Hash) []Hash {
	if hs == nil {
		return nil
	}
	out := make([]Hash, len(hs))
	copy(out, hs)
	return out
}

// deriveChainID extracts the chain ID encoded in a legacy transaction's
// V value per EIP-155 (v = chainID*2 + 35 + recoveryID). Pre-EIP-155
// legacy transactions have v in {27, 28} and carry no chain ID.
func deriveChainID(v *big.Int) *big.Int {
	if v == nil {
		return nil
	}
	if v.BitLen() <= 8 {
		vv := v.Uint64()
		if vv == 27 || vv == 28 {
			return new(big.Int)
		}
	}
	// chainID = (v - 35) / 2
	chainID := new(big.Int).Sub(v, big.NewInt(35))
	chainID.Div(chainID, big.NewInt(2))
	if chainID.Sign() < 0 {
		return new(big.Int)
	}
	return chainID
}
