// Package params holds the protocol-level constants and denomination
// arithmetic used across the transaction and fee-market components:
// wei/gwei/ether conversions and EIP-1559 effective gas price, grounded
// on the naming style of the teacher's pkg/txpool/price_bumper.go
// (which expresses its minimum tip bump directly in wei, e.g.
// BumperMinSuggestedTip = 1_000_000_000).
package params

import "github.com/holiman/uint256"

// Denomination multipliers, all expressed in wei.
const (
	Wei   = 1
	GWei  = 1_000_000_000
	Ether = 1_000_000_000_000_000_000
)

// GWeiToWei converts a gwei amount to wei.
func GWeiToWei(gwei uint64) *uint256.Int {
	return new(uint256.Int).Mul(uint256.NewInt(gwei), uint256.NewInt(GWei))
}

// WeiToGWei converts a wei amount to whole gwei, truncating any
// sub-gwei remainder.
func WeiToGWei(wei *uint256.Int) uint64 {
	q := new(uint256.Int).Div(wei, uint256.NewInt(GWei))
	return q.Uint64()
}

// EtherToWei converts a whole-ether amount to wei.
func EtherToWei(ether uint64) *uint256.Int {
	return new(uint256.Int).Mul(uint256.NewInt(ether), uint256.NewInt(Ether))
}

// EffectiveGasPrice computes the EIP-1559 effective gas price paid by a
// transaction: min(gasTipCap, gasFeeCap-baseFee) + baseFee, clamped so
// the tip component never goes negative.
func EffectiveGasPrice(gasFeeCap, gasTipCap, baseFee *uint256.Int) *uint256.Int {
	if gasFeeCap.Lt(baseFee) {
		return gasFeeCap
	}
	headroom := new(uint256.Int).Sub(gasFeeCap, baseFee)
	tip := gasTipCap
	if headroom.Lt(gasTipCap) {
		tip = headroom
	}
	return new(uint256.Int).Add(tip, baseFee)
}

// EIP-2930/EIP-7702 per-item gas cost constants (spec.md §6).
const (
	AccessListAddressCost    = 2400
	AccessListStorageKeyCost = 1900
	PerAuthBaseCost          = 12500
	PerEmptyAccountCost      = 25000
)

// AccessListGas returns the extra intrinsic gas charged for an
// EIP-2930 access list with the given number of addresses and storage
// keys.
func AccessListGas(addresses, storageKeys int) uint64 {
	return uint64(addresses)*AccessListAddressCost + uint64(storageKeys)*AccessListStorageKeyCost
}

// AuthorizationListGas returns the extra intrinsic gas charged for an
// EIP-7702 authorization list: PER_AUTH_BASE_COST per authorization,
// plus PER_EMPTY_ACCOUNT_COST for each authorization whose target
// account does not yet exist (reported by the caller via emptyAccounts,
// since account existence is state the caller, not this module, knows).
func AuthorizationListGas(authorizations, emptyAccounts int) uint64 {
	return uint64(authorizations)*PerAuthBaseCost + uint64(emptyAccounts)*PerEmptyAccountCost
}
