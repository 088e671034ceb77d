package types

import (
	"math/big"

	"github.com/ethlayer/primitives/common"
	"github.com/ethlayer/primitives/crypto"
)

const (
	ReceiptStatusFailed    = 0
	ReceiptStatusSuccessful = 1
)

// Receipt records the outcome of executing a transaction. Grounded on
// pkg/core/types/receipt.go.
type Receipt struct {
	Type              byte
	PostState         []byte
	Status            uint64
	CumulativeGasUsed uint64
	Bloom             Bloom
	Logs              []*Log

	TxHash            Hash
	ContractAddress   Address
	GasUsed           uint64
	EffectiveGasPrice *big.Int

	BlobGasUsed  uint64
	BlobGasPrice *big.Int

	BlockHash        Hash
	BlockNumber      *big.Int
	TransactionIndex uint
}

// NewReceipt constructs a Receipt in the given post-EIP-658 status.
func NewReceipt(status uint64, cumulativeGasUsed uint64) *Receipt {
	return &Receipt{Status: status, CumulativeGasUsed: cumulativeGasUsed}
}

// Succeeded reports whether the receipt's status indicates success.
func (r *Receipt) Succeeded() bool { return r.Status == ReceiptStatusSuccessful }

// DeriveReceiptFields back-fills block/transaction context
// (BlockHash, BlockNumber, TransactionIndex) and per-log indices across
// a full block's receipts, mirroring pkg/core/types/receipt.go's
// DeriveReceiptFields. Log.Index runs sequentially across the whole
// block, not per-transaction.
func DeriveReceiptFields(receipts []*Receipt, blockHash Hash, blockNumber uint64, txHashes []Hash) {
	logIndex := uint(0)
	blockNum := new(big.Int).SetUint64(blockNumber)
	for i, r := range receipts {
		r.TxHash = txHashes[i]
		r.BlockHash = blockHash
		r.BlockNumber = blockNum
		r.TransactionIndex = uint(i)
		for _, log := range r.Logs {
			log.BlockNumber = blockNumber
			log.TxHash = r.TxHash
			log.TxIndex = uint(i)
			log.BlockHash = blockHash
			log.Index = logIndex
			logIndex++
		}
	}
}

// LogsBloom computes the aggregate bloom filter over a set of logs,
// setting bits for each log's address and topics. Grounded on
// pkg/core/types/bloom.go's LogsBloom.
func LogsBloom(logs []*Log) Bloom {
	var bloom Bloom
	for _, log := range logs {
		common.BloomAdd(&bloom, log.Address.Bytes(), keccak256One)
		for _, topic := range log.Topics {
			common.BloomAdd(&bloom, topic.Bytes(), keccak256One)
		}
	}
	return bloom
}

// CreateBloom merges the per-receipt blooms of a block into a single
// block-level bloom filter.
func CreateBloom(receipts []*Receipt) Bloom {
	var bloom Bloom
	for _, r := range receipts {
		bloom = common.MergeBloom(bloom, r.Bloom)
	}
	return bloom
}

// keccak256One adapts the variadic crypto.Keccak256 to the single-slice
// function shape common's bloom helpers expect.
func keccak256One(data []byte) []byte { return crypto.Keccak256(data) }
