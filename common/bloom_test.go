package common

import (
	"testing"

	"golang.org/x/crypto/sha3"
)

func keccak256(data []byte) []byte {
	h := sha3.NewLegacyKeccak256()
	h.Write(data)
	return h.Sum(nil)
}

func TestBloomAddContains(t *testing.T) {
	var bloom Bloom
	BloomAdd(&bloom, []byte("Hello"), keccak256)
	BloomAdd(&bloom, []byte("World"), keccak256)

	if !BloomContains(bloom, []byte("Hello"), keccak256) {
		t.Fatal("expected bloom to contain Hello")
	}
	if !BloomContains(bloom, []byte("World"), keccak256) {
		t.Fatal("expected bloom to contain World")
	}
	if BloomContains(bloom, []byte("Goodbye"), keccak256) {
		t.Fatal("expected bloom to not contain Goodbye")
	}
}

func TestBloomWithAddedIsPure(t *testing.T) {
	var bloom Bloom
	next := bloom.WithAdded([]byte("Hello"), keccak256)

	if bloom.PopCount() != 0 {
		t.Fatal("WithAdded must not mutate receiver")
	}
	if !BloomContains(next, []byte("Hello"), keccak256) {
		t.Fatal("expected returned bloom to contain Hello")
	}
}

func TestMergeBloom(t *testing.T) {
	var a, b Bloom
	BloomAdd(&a, []byte("Hello"), keccak256)
	BloomAdd(&b, []byte("Goodbye"), keccak256)

	merged := MergeBloom(a, b)
	if !BloomContains(merged, []byte("Hello"), keccak256) {
		t.Fatal("merged bloom should contain Hello")
	}
	if !BloomContains(merged, []byte("Goodbye"), keccak256) {
		t.Fatal("merged bloom should contain Goodbye")
	}
}

func TestBloomDensityAndPopCount(t *testing.T) {
	var bloom Bloom
	if bloom.PopCount() != 0 || bloom.Density() != 0 {
		t.Fatal("empty bloom should have zero density")
	}
	BloomAdd(&bloom, []byte("Hello"), keccak256)
	if bloom.PopCount() == 0 {
		t.Fatal("expected non-zero popcount after add")
	}
	if bloom.Density() <= 0 || bloom.Density() > 1 {
		t.Fatalf("density out of range: %v", bloom.Density())
	}
}

func TestExpectedFalsePositiveRate(t *testing.T) {
	if r := ExpectedFalsePositiveRate(0); r != 0 {
		t.Fatalf("expected 0 for empty filter, got %v", r)
	}
	r1 := ExpectedFalsePositiveRate(10)
	r2 := ExpectedFalsePositiveRate(1000)
	if !(r1 < r2) {
		t.Fatalf("expected false positive rate to grow with n: %v vs %v", r1, r2)
	}
}
