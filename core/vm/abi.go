package vm

import (
	"github.com/ethlayer/primitives/common"
	"github.com/ethlayer/primitives/crypto"
)

// Well-known ERC-20/ERC-721 4-byte function selectors and the ERC-20
// Transfer event topic. These are the first four bytes of the
// keccak256 hash of the canonical function/event signature and must
// never drift from the values fixed by the ABI spec itself.
const (
	SelectorTransfer  uint32 = 0xa9059cbb // transfer(address,uint256)
	SelectorBalanceOf uint32 = 0x70a08231 // balanceOf(address)
	SelectorApprove   uint32 = 0x095ea7b3 // approve(address,uint256)
)

// TransferEventTopic is the keccak256 hash of the ERC-20/ERC-721
// Transfer(address,address,uint256) event signature, used as topic[0]
// in a Transfer log entry.
var TransferEventTopic = crypto.Keccak256Hash([]byte("Transfer(address,address,uint256)"))

// Create2Address computes the deterministic contract address for a
// CREATE2 deployment: keccak256(0xff ++ deployer ++ salt ++
// initCodeHash)[12:]. Grounded on pkg/core/vm/contract_deployer.go's
// ComputeCreate2Address.
func Create2Address(deployer common.Address, salt common.Hash, initCodeHash common.Hash) common.Address {
	data := make([]byte, 0, 1+common.AddressLength+common.HashLength+common.HashLength)
	data = append(data, 0xff)
	data = append(data, deployer[:]...)
	data = append(data, salt[:]...)
	data = append(data, initCodeHash[:]...)
	hash := crypto.Keccak256(data)
	return common.BytesToAddress(hash[12:])
}
