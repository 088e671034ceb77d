package types

import "math/big"

// LegacyTx is the original, pre-EIP-2718 transaction format.
type LegacyTx struct {
	Nonce    uint64
	GasPrice *big.Int
	Gas      uint64
	To       *Address
	Value    *big.Int
	Data     []byte
	V, R, S  *big.Int
}

func (tx *LegacyTx) txType() byte                { return LegacyTxType }
func (tx *LegacyTx) chainID() *big.Int           { return deriveChainID(tx.V) }
func (tx *LegacyTx) accessList() AccessList       { return nil }
func (tx *LegacyTx) data() []byte                { return tx.Data }
func (tx *LegacyTx) gas() uint64                 { return tx.Gas }
func (tx *LegacyTx) gasPrice() *big.Int          { return tx.GasPrice }
func (tx *LegacyTx) gasTipCap() *big.Int         { return tx.GasPrice }
func (tx *LegacyTx) gasFeeCap() *big.Int         { return tx.GasPrice }
func (tx *LegacyTx) value() *big.Int             { return tx.Value }
func (tx *LegacyTx) nonce() uint64               { return tx.Nonce }
func (tx *LegacyTx) to() *Address                { return tx.To }
func (tx *LegacyTx) rawSignatureValues() (v, r, s *big.Int) {
	return tx.V, tx.R, tx.S
}
func (tx *LegacyTx) setSignatureValues(v, r, s *big.Int) { tx.V, tx.R, tx.S = v, r, s }
func (tx *LegacyTx) copy() TxData {
	return &LegacyTx{
		Nonce:    tx.Nonce,
		GasPrice: copyBigInt(tx.GasPrice),
		Gas:      tx.Gas,
		To:       copyAddressPtr(tx.To),
		Value:    copyBigInt(tx.Value),
		Data:     copyBytes(tx.Data),
		V:        copyBigInt(tx.V),
		R:        copyBigInt(tx.R),
		S:        copyBigInt(tx.S),
	}
}

// AccessListTx is the EIP-2930 transaction format.
type AccessListTx struct {
	ChainID    *big.Int
	Nonce      uint64
	GasPrice   *big.Int
	Gas        uint64
	To         *Address
	Value      *big.Int
	Data       []byte
	AccessList AccessList
	V, R, S    *big.Int
}

func (tx *AccessListTx) txType() byte               { return AccessListTxType }
func (tx *AccessListTx) chainID() *big.Int          { return tx.ChainID }
func (tx *AccessListTx) accessList() AccessList      { return tx.AccessList }
func (tx *AccessListTx) data() []byte               { return tx.Data }
func (tx *AccessListTx) gas() uint64                { return tx.Gas }
func (tx *AccessListTx) gasPrice() *big.Int         { return tx.GasPrice }
func (tx *AccessListTx) gasTipCap() *big.Int        { return tx.GasPrice }
func (tx *AccessListTx) gasFeeCap() *big.Int        { return tx.GasPrice }
func (tx *AccessListTx) value() *big.Int            { return tx.Value }
func (tx *AccessListTx) nonce() uint64              { return tx.Nonce }
func (tx *AccessListTx) to() *Address               { return tx.To }
func (tx *AccessListTx) rawSignatureValues() (v, r, s *big.Int) {
	return tx.V, tx.R, tx.S
}
func (tx *AccessListTx) setSignatureValues(v, r, s *big.Int) { tx.V, tx.R, tx.S = v, r, s }
func (tx *AccessListTx) copy() TxData {
	return &AccessListTx{
		ChainID:    copyBigInt(tx.ChainID),
		Nonce:      tx.Nonce,
		GasPrice:   copyBigInt(tx.GasPrice),
		Gas:        tx.Gas,
		To:         copyAddressPtr(tx.To),
		Value:      copyBigInt(tx.Value),
		Data:       copyBytes(tx.Data),
		AccessList: copyAccessList(tx.AccessList),
		V:          copyBigInt(tx.V),
		R:          copyBigInt(tx.R),
		S:          copyBigInt(tx.S),
	}
}

// DynamicFeeTx is the EIP-1559 transaction format.
type DynamicFeeTx struct {
	ChainID    *big.Int
	Nonce      uint64
	GasTipCap  *big.Int
	GasFeeCap  *big.Int
	Gas        uint64
	To         *Address
	Value      *big.Int
	Data       []byte
	AccessList AccessList
	V, R, S    *big.Int
}

func (tx *DynamicFeeTx) txType() byte               { return DynamicFeeTxType }
func (tx *DynamicFeeTx) chainID() *big.Int          { return tx.ChainID }
func (tx *DynamicFeeTx) accessList() AccessList      { return tx.AccessList }
func (tx *DynamicFeeTx) data() []byte               { return tx.Data }
func (tx *DynamicFeeTx) gas() uint64                { return tx.Gas }
func (tx *DynamicFeeTx) gasPrice() *big.Int         { return tx.GasFeeCap }
func (tx *DynamicFeeTx) gasTipCap() *big.Int        { return tx.GasTipCap }
func (tx *DynamicFeeTx) gasFeeCap() *big.Int        { return tx.GasFeeCap }
func (tx *DynamicFeeTx) value() *big.Int            { return tx.Value }
func (tx *DynamicFeeTx) nonce() uint64              { return tx.Nonce }
func (tx *DynamicFeeTx) to() *Address               { return tx.To }
func (tx *DynamicFeeTx) rawSignatureValues() (v, r, s *big.Int) {
	return tx.V, tx.R, tx.S
}
func (tx *DynamicFeeTx) setSignatureValues(v, r, s *big.Int) { tx.V, tx.R, tx.S = v, r, s }
func (tx *DynamicFeeTx) copy() TxData {
	return &DynamicFeeTx{
		ChainID:    copyBigInt(tx.ChainID),
		Nonce:      tx.Nonce,
		GasTipCap:  copyBigInt(tx.GasTipCap),
		GasFeeCap:  copyBigInt(tx.GasFeeCap),
		Gas:        tx.Gas,
		To:         copyAddressPtr(tx.To),
		Value:      copyBigInt(tx.Value),
		Data:       copyBytes(tx.Data),
		AccessList: copyAccessList(tx.AccessList),
		V:          copyBigInt(tx.V),
		R:          copyBigInt(tx.R),
		S:          copyBigInt(tx.S),
	}
}

// BlobTx is the EIP-4844 blob-carrying transaction format. Unlike the
// other variants, To is a plain (non-pointer) Address: blob
// transactions can never be contract-creation transactions.
type BlobTx struct {
	ChainID    *big.Int
	Nonce      uint64
	GasTipCap  *big.Int
	GasFeeCap  *big.Int
	Gas        uint64
	To         Address
	Value      *big.Int
	Data       []byte
	AccessList AccessList
	BlobFeeCap *big.Int
	BlobHashes []Hash
	V, R, S    *big.Int
}

func (tx *BlobTx) txType() byte               { return BlobTxType }
func (tx *BlobTx) chainID() *big.Int          { return tx.ChainID }
func (tx *BlobTx) accessList() AccessList      { return tx.AccessList }
func (tx *BlobTx) data() []byte               { return tx.Data }
func (tx *BlobTx) gas() uint64                { return tx.Gas }
func (tx *BlobTx) gasPrice() *big.Int         { return tx.GasFeeCap }
func (tx *BlobTx) gasTipCap() *big.Int        { return tx.GasTipCap }
func (tx *BlobTx) gasFeeCap() *big.Int        { return tx.GasFeeCap }
func (tx *BlobTx) value() *big.Int            { return tx.Value }
func (tx *BlobTx) nonce() uint64              { return tx.Nonce }
func (tx *BlobTx) to() *Address               { addr := tx.To; return &addr }
func (tx *BlobTx) rawSignatureValues() (v, r, s *big.Int) {
	return tx.V, tx.R, tx.S
}
func (tx *BlobTx) setSignatureValues(v, r, s *big.Int) { tx.V, tx.R, tx.S = v, r, s }
func (tx *BlobTx) copy() TxData {
	return &BlobTx{
		ChainID:    copyBigInt(tx.ChainID),
		Nonce:      tx.Nonce,
		GasTipCap:  copyBigInt(tx.GasTipCap),
		GasFeeCap:  copyBigInt(tx.GasFeeCap),
		Gas:        tx.Gas,
		To:         tx.To,
		Value:      copyBigInt(tx.Value),
		Data:       copyBytes(tx.Data),
		AccessList: copyAccessList(tx.AccessList),
		BlobFeeCap: copyBigInt(tx.BlobFeeCap),
		BlobHashes: copyHashes(tx.BlobHashes),
		V:          copyBigInt(tx.V),
		R:          copyBigInt(tx.R),
		S:          copyBigInt(tx.S),
	}
}

// SetCodeTx is the EIP-7702 set-code transaction format. Like BlobTx,
// To is non-pointer: set-code transactions always target an account.
type SetCodeTx struct {
	ChainID           *big.Int
	Nonce             uint64
	GasTipCap         *big.Int
	GasFeeCap         *big.Int
	Gas               uint64
	To                Address
	Value             *big.Int
	Data              []byte
	AccessList        AccessList
	AuthorizationList []Authorization
	V, R, S           *big.Int
}

func (tx *SetCodeTx) txType() byte               { return SetCodeTxType }
func (tx *SetCodeTx) chainID() *big.Int          { return tx.ChainID }
func (tx *SetCodeTx) accessList() AccessList      { return tx.AccessList }
func (tx *SetCodeTx) data() []byte               { return tx.Data }
func (tx *SetCodeTx) gas() uint64                { return tx.Gas }
func (tx *SetCodeTx) gasPrice() *big.Int         { return tx.GasFeeCap }
func (tx *SetCodeTx) gasTipCap() *big.Int        { return tx.GasTipCap }
func (tx *SetCodeTx) gasFeeCap() *big.Int        { return tx.GasFeeCap }
func (tx *SetCodeTx) value() *big.Int            { return tx.Value }
func (tx *SetCodeTx) nonce() uint64              { return tx.Nonce }
func (tx *SetCodeTx) to() *Address               { addr := tx.To; return &addr }
func (tx *SetCodeTx) rawSignatureValues() (v, r, s *big.Int) {
	return tx.V, tx.R, tx.S
}
func (tx *SetCodeTx) setSignatureValues(v, r, s *big.Int) { tx.V, tx.R, tx.S = v, r, s }
func (tx *SetCodeTx) copy() TxData {
	return &SetCodeTx{
		ChainID:           copyBigInt(tx.ChainID),
		Nonce:             tx.Nonce,
		GasTipCap:         copyBigInt(tx.GasTipCap),
		GasFeeCap:         copyBigInt(tx.GasFeeCap),
		Gas:               tx.Gas,
		To:                tx.To,
		Value:             copyBigInt(tx.Value),
		Data:              copyBytes(tx.Data),
		AccessList:        copyAccessList(tx.AccessList),
		AuthorizationList: copyAuthList(tx.AuthorizationList),
		V:                 copyBigInt(tx.V),
		R:                 copyBigInt(tx.R),
		S:                 copyBigInt(tx.S),
	}
}
