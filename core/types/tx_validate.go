package types

import (
	"math/big"

	"github.com/ethlayer/primitives/common"
)

// minIntrinsicGas is the floor every transaction's gas limit must clear,
// the base cost of a simple value transfer before any calldata or
// access-list surcharge. Grounded on pkg/core/processor.go's TxGas.
const minIntrinsicGas = 21000

// blobCommitmentVersionKZG is the leading byte every EIP-4844 versioned
// blob hash must carry, identifying the KZG commitment scheme.
const blobCommitmentVersionKZG = 0x01

// Validate checks tx against the structural and range constraints every
// transaction must satisfy before it can enter a pool or block: integer
// widths, the intrinsic gas floor, typed-transaction chain-ID binding,
// and blob-transaction shape. Nonce and gas limit are already bound to
// uint64 by the Go field types, so only the big.Int-backed value/fee
// fields need an explicit U256 range check.
func (tx *Transaction) Validate() error {
	const op = "types.Validate"

	if tx.Gas() < minIntrinsicGas {
		return common.NewError(op, common.OutOfRange, nil)
	}

	for _, v := range []*big.Int{tx.Value(), tx.GasPrice(), tx.GasTipCap(), tx.GasFeeCap(), tx.BlobGasFeeCap()} {
		if v == nil {
			continue
		}
		if v.Sign() < 0 || v.BitLen() > 256 {
			return common.NewError(op, common.OutOfRange, nil)
		}
	}

	if tx.Type() != LegacyTxType {
		chainID := tx.ChainId()
		if chainID == nil || chainID.Sign() == 0 {
			return common.NewError(op, common.InvalidTransactionType, nil)
		}
	}

	switch tx.Type() {
	case BlobTxType, SetCodeTxType:
		if to := tx.To(); to == nil || *to == (Address{}) {
			return common.NewError(op, common.InvalidFormat, nil)
		}
	}

	if tx.Type() == BlobTxType {
		hashes := tx.BlobHashes()
		if len(hashes) == 0 {
			return common.NewError(op, common.InvalidLength, nil)
		}
		for _, h := range hashes {
			if h[0] != blobCommitmentVersionKZG {
				return common.NewError(op, common.InvalidSize, nil)
			}
		}
	}

	return nil
}

// defaultFeeBumpPercent is the minimum percentage increase a replacement
// transaction must apply to the original's fee fields, matching the
// common mempool replace-by-fee rule.
const defaultFeeBumpPercent = 10

// ReplaceWith builds a replacement for tx with its fee fields bumped by
// feeBumpPercent (0 selects the default of 10%). The nonce, recipient,
// value, data, and access/authorization/blob fields are carried over
// unchanged; the replacement is left unsigned.
func ReplaceWith(tx *Transaction, feeBumpPercent int) (*Transaction, error) {
	if feeBumpPercent <= 0 {
		feeBumpPercent = defaultFeeBumpPercent
	}

	bump := func(v *big.Int) *big.Int {
		if v == nil {
			return nil
		}
		bumped := new(big.Int).Mul(v, big.NewInt(int64(100+feeBumpPercent)))
		bumped.Add(bumped, big.NewInt(99))
		return bumped.Div(bumped, big.NewInt(100))
	}

	inner := tx.inner.copy()
	switch t := inner.(type) {
	case *LegacyTx:
		t.GasPrice = bump(t.GasPrice)
		t.V, t.R, t.S = nil, nil, nil
	case *AccessListTx:
		t.GasPrice = bump(t.GasPrice)
		t.V, t.R, t.S = nil, nil, nil
	case *DynamicFeeTx:
		t.GasTipCap = bump(t.GasTipCap)
		t.GasFeeCap = bump(t.GasFeeCap)
		t.V, t.R, t.S = nil, nil, nil
	case *BlobTx:
		t.GasTipCap = bump(t.GasTipCap)
		t.GasFeeCap = bump(t.GasFeeCap)
		t.BlobFeeCap = bump(t.BlobFeeCap)
		t.V, t.R, t.S = nil, nil, nil
	case *SetCodeTx:
		t.GasTipCap = bump(t.GasTipCap)
		t.GasFeeCap = bump(t.GasFeeCap)
		t.V, t.R, t.S = nil, nil, nil
	default:
		return nil, common.NewError("types.ReplaceWith", common.InvalidTransactionType, nil)
	}

	return &Transaction{inner: inner}, nil
}
