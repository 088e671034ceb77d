package types

import (
	"math/big"
	"testing"
)

func TestDeriveReceiptFieldsSequentialLogIndex(t *testing.T) {
	r1 := &Receipt{Logs: []*Log{{}, {}}}
	r2 := &Receipt{Logs: []*Log{{}}}
	receipts := []*Receipt{r1, r2}
	blockHash := BytesToHash([]byte("block"))
	txHashes := []Hash{BytesToHash([]byte("tx0")), BytesToHash([]byte("tx1"))}

	DeriveReceiptFields(receipts, blockHash, 42, txHashes)

	if r1.BlockNumber.Cmp(big.NewInt(42)) != 0 {
		t.Fatalf("expected block number 42, got %v", r1.BlockNumber)
	}
	if r1.TransactionIndex != 0 || r2.TransactionIndex != 1 {
		t.Fatalf("unexpected transaction indices: %d, %d", r1.TransactionIndex, r2.TransactionIndex)
	}
	wantIndices := []uint{0, 1, 2}
	gotIndices := []uint{r1.Logs[0].Index, r1.Logs[1].Index, r2.Logs[0].Index}
	for i := range wantIndices {
		if wantIndices[i] != gotIndices[i] {
			t.Fatalf("expected sequential log indices %v, got %v", wantIndices, gotIndices)
		}
	}
	if r2.Logs[0].TxHash != txHashes[1] {
		t.Fatalf("expected log to carry its transaction's hash")
	}
}

func TestLogsBloomContainsAddressAndTopics(t *testing.T) {
	addr := BytesToAddress([]byte{0xAA})
	topic := BytesToHash([]byte{0xBB})
	logs := []*Log{{Address: addr, Topics: []Hash{topic}}}

	bloom := LogsBloom(logs)
	f := Filter{Addresses: []Address{addr}, Topics: []TopicMatcher{MatchTopic(topic)}}
	if !f.BloomCandidate(bloom) {
		t.Fatal("expected bloom candidate check to pass for address and topic present in the bloom")
	}

	other := BytesToAddress([]byte{0xCC})
	fOther := Filter{Addresses: []Address{other}}
	if fOther.BloomCandidate(bloom) {
		t.Fatal("expected bloom candidate check to fail for an address never added to the bloom")
	}
}

func TestCreateBloomMergesReceiptBlooms(t *testing.T) {
	addr1 := BytesToAddress([]byte{0x01})
	addr2 := BytesToAddress([]byte{0x02})
	b1 := LogsBloom([]*Log{{Address: addr1}})
	b2 := LogsBloom([]*Log{{Address: addr2}})

	merged := CreateBloom([]*Receipt{{Bloom: b1}, {Bloom: b2}})
	f1 := Filter{Addresses: []Address{addr1}}
	f2 := Filter{Addresses: []Address{addr2}}
	if !f1.BloomCandidate(merged) || !f2.BloomCandidate(merged) {
		t.Fatal("expected merged bloom to be a candidate for both receipts' addresses")
	}
}

func TestReceiptSucceeded(t *testing.T) {
	r := NewReceipt(ReceiptStatusSuccessful, 21000)
	if !r.Succeeded() {
		t.Fatal("expected successful receipt")
	}
	failed := NewReceipt(ReceiptStatusFailed, 21000)
	if failed.Succeeded() {
		t.Fatal("expected failed receipt to report not succeeded")
	}
}
