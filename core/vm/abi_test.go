package vm

import (
	"testing"

	"github.com/ethlayer/primitives/common"
	"github.com/ethlayer/primitives/crypto"
)

func TestSelectorConstants(t *testing.T) {
	if SelectorTransfer != 0xa9059cbb {
		t.Fatalf("unexpected transfer selector: %x", SelectorTransfer)
	}
	if SelectorBalanceOf != 0x70a08231 {
		t.Fatalf("unexpected balanceOf selector: %x", SelectorBalanceOf)
	}
	if SelectorApprove != 0x095ea7b3 {
		t.Fatalf("unexpected approve selector: %x", SelectorApprove)
	}
}

func TestTransferEventTopicMatchesKeccakOfSignature(t *testing.T) {
	want := crypto.Keccak256Hash([]byte("Transfer(address,address,uint256)"))
	if TransferEventTopic != want {
		t.Fatalf("got %x, want %x", TransferEventTopic, want)
	}
}

func TestCreate2AddressIsDeterministicAndSensitiveToInputs(t *testing.T) {
	deployer := common.BytesToAddress([]byte{0x11})
	salt := common.BytesToHash([]byte{0x22})
	initCodeHash := crypto.Keccak256Hash([]byte("init code"))

	got := Create2Address(deployer, salt, initCodeHash)
	again := Create2Address(deployer, salt, initCodeHash)
	if got != again {
		t.Fatalf("Create2Address should be deterministic: %x != %x", got, again)
	}

	otherSalt := common.BytesToHash([]byte{0x33})
	if Create2Address(deployer, otherSalt, initCodeHash) == got {
		t.Fatal("expected a different salt to produce a different address")
	}
}
