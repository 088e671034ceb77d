package types

// Log represents a single EVM log entry (an event emitted by a LOG0-LOG4
// opcode), grounded on pkg/core/types/common.go's Log struct.
type Log struct {
	Address     Address
	Topics      []Hash
	Data        []byte
	BlockNumber uint64
	TxHash      Hash
	TxIndex     uint
	BlockHash   Hash
	Index       uint
	Removed     bool
}
