package types

import (
	"math/big"
	"sync/atomic"

	"github.com/ethlayer/primitives/crypto"
	"github.com/ethlayer/primitives/rlp"
)

// Header is an Ethereum block header, supplemented beyond spec.md's
// Transaction/Receipt/Log-centric component table because it is the
// context value every Receipt and Log carries. Grounded on
// pkg/core/types/header.go, trimmed to the fields relevant through the
// London/Cancun forks this module's transaction types span.
type Header struct {
	ParentHash  Hash
	UncleHash   Hash
	Coinbase    Address
	Root        Hash
	TxHash      Hash
	ReceiptHash Hash
	Bloom       Bloom
	Difficulty  *big.Int
	Number      *big.Int
	GasLimit    uint64
	GasUsed     uint64
	Time        uint64
	Extra       []byte
	MixDigest   Hash
	Nonce       [8]byte

	BaseFee *big.Int

	WithdrawalsHash *Hash

	BlobGasUsed   *uint64
	ExcessBlobGas *uint64

	ParentBeaconRoot *Hash

	hash atomic.Pointer[Hash]
}

// Hash returns the keccak256 hash of the header's RLP encoding, caching
// the result the way the teacher's Header.Hash does with atomic.Pointer.
func (h *Header) Hash() Hash {
	if cached := h.hash.Load(); cached != nil {
		return *cached
	}
	enc, err := rlp.EncodeToBytes(h)
	if err != nil {
		return Hash{}
	}
	hash := crypto.Keccak256Hash(enc)
	h.hash.Store(&hash)
	return hash
}

// Withdrawal represents a validator withdrawal pushed from the
// consensus layer (EIP-4895).
type Withdrawal struct {
	Index          uint64
	ValidatorIndex uint64
	Address        Address
	Amount         uint64
}

// Block bundles a Header with the transactions, receipts, and
// withdrawals it contains. This is a value-type convenience and not
// itself part of the codec surface.
type Block struct {
	Header       *Header
	Transactions []*Transaction
	Receipts     []*Receipt
	Withdrawals  []*Withdrawal
}
