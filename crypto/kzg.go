// Package crypto's KZG support wraps github.com/crate-crypto/go-eth-kzg,
// the production library backing the real Ethereum KZG ceremony SRS, in
// place of a simulated trusted setup. Grounded on the teacher's
// crypto/kzg_goeth_adapter.go, which wraps the same context constructor
// and blob/commitment/proof calls.
package crypto

import (
	"fmt"
	"sync"

	goethkzg "github.com/crate-crypto/go-eth-kzg"

	"github.com/ethlayer/primitives/common"
)

const (
	FieldElementsPerBlob = 4096
	BytesPerFieldElement = 32
	BytesPerBlob         = FieldElementsPerBlob * BytesPerFieldElement // 131072
	BytesPerCommitment   = 48
	BytesPerProof        = 48
	MaxBlobsPerTransaction = 6
)

// KZGContext holds an initialized trusted setup. The zero value is not
// usable; construct one with LoadTrustedSetup.
type KZGContext struct {
	mu  sync.RWMutex
	ctx *goethkzg.Context
}

// LoadTrustedSetup initializes the KZG context using go-eth-kzg's secure,
// built-in Ethereum ceremony SRS (4096 field elements per blob). This
// module only supports that one Ethereum-mainnet setup — a custom SRS
// file is out of scope, matching spec.md's single-backend KZG design.
func LoadTrustedSetup() (*KZGContext, error) {
	ctx, err := goethkzg.NewContext4096Secure()
	if err != nil {
		return nil, common.NewError("crypto.LoadTrustedSetup", common.KzgNotInitialized, err)
	}
	return &KZGContext{ctx: ctx}, nil
}

// Free releases the context. After Free, the KZGContext must not be used.
func (k *KZGContext) Free() {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.ctx = nil
}

func (k *KZGContext) get() (*goethkzg.Context, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	if k.ctx == nil {
		return nil, common.NewError("crypto.KZGContext", common.KzgNotInitialized, nil)
	}
	return k.ctx, nil
}

// BlobToCommitment computes the KZG commitment for a 131072-byte blob.
func (k *KZGContext) BlobToCommitment(blob []byte) ([BytesPerCommitment]byte, error) {
	var out [BytesPerCommitment]byte
	ctx, err := k.get()
	if err != nil {
		return out, err
	}
	if len(blob) != BytesPerBlob {
		return out, common.NewError("crypto.BlobToCommitment", common.InvalidSize, nil)
	}
	var blobArr goethkzg.Blob
	copy(blobArr[:], blob)
	comm, err := ctx.BlobToKZGCommitment(&blobArr, 0)
	if err != nil {
		return out, common.NewError("crypto.BlobToCommitment", common.InvalidFormat, err)
	}
	copy(out[:], comm[:])
	return out, nil
}

// ComputeBlobProof computes the KZG proof for blob against commitment.
func (k *KZGContext) ComputeBlobProof(blob []byte, commitment [BytesPerCommitment]byte) ([BytesPerProof]byte, error) {
	var out [BytesPerProof]byte
	ctx, err := k.get()
	if err != nil {
		return out, err
	}
	if len(blob) != BytesPerBlob {
		return out, common.NewError("crypto.ComputeBlobProof", common.InvalidSize, nil)
	}
	var blobArr goethkzg.Blob
	copy(blobArr[:], blob)
	var comm goethkzg.KZGCommitment
	copy(comm[:], commitment[:])
	proof, err := ctx.ComputeBlobKZGProof(&blobArr, comm, 0)
	if err != nil {
		return out, common.NewError("crypto.ComputeBlobProof", common.InvalidFormat, err)
	}
	copy(out[:], proof[:])
	return out, nil
}

// VerifyBlobProof verifies a single blob/commitment/proof triple.
func (k *KZGContext) VerifyBlobProof(blob, commitment, proof []byte) (bool, error) {
	ctx, err := k.get()
	if err != nil {
		return false, err
	}
	if len(blob) != BytesPerBlob {
		return false, common.NewError("crypto.VerifyBlobProof", common.InvalidSize, nil)
	}
	if len(commitment) != BytesPerCommitment || len(proof) != BytesPerProof {
		return false, common.NewError("crypto.VerifyBlobProof", common.InvalidSize, nil)
	}
	var blobArr goethkzg.Blob
	copy(blobArr[:], blob)
	var comm goethkzg.KZGCommitment
	copy(comm[:], commitment)
	var p goethkzg.KZGProof
	copy(p[:], proof)
	verifyErr := ctx.VerifyBlobKZGProof(&blobArr, comm, p)
	return verifyErr == nil, nil
}

// VerifyBlobProofBatch verifies many blob/commitment/proof triples at
// once; returns false (not an error) if any triple fails verification.
func (k *KZGContext) VerifyBlobProofBatch(blobs [][]byte, commitments, proofs [][BytesPerCommitment]byte) (bool, error) {
	ctx, err := k.get()
	if err != nil {
		return false, err
	}
	if len(blobs) != len(commitments) || len(blobs) != len(proofs) {
		return false, common.NewError("crypto.VerifyBlobProofBatch", common.InvalidLength, nil)
	}
	blobPtrs := make([]*goethkzg.Blob, len(blobs))
	comms := make([]goethkzg.KZGCommitment, len(blobs))
	kzgProofs := make([]goethkzg.KZGProof, len(blobs))
	for i, b := range blobs {
		if len(b) != BytesPerBlob {
			return false, common.NewError("crypto.VerifyBlobProofBatch", common.InvalidSize, nil)
		}
		var blobArr goethkzg.Blob
		copy(blobArr[:], b)
		blobPtrs[i] = &blobArr
		copy(comms[i][:], commitments[i][:])
		copy(kzgProofs[i][:], proofs[i][:])
	}
	verifyErr := ctx.VerifyBlobKZGProofBatch(blobPtrs, comms, kzgProofs)
	return verifyErr == nil, nil
}

// ComputeCellsAndProofs computes the EIP-7594 cell/proof set for a blob.
func (k *KZGContext) ComputeCellsAndProofs(blob []byte) (cells [][]byte, proofs [][BytesPerProof]byte, err error) {
	ctx, gerr := k.get()
	if gerr != nil {
		return nil, nil, gerr
	}
	if len(blob) != BytesPerBlob {
		return nil, nil, common.NewError("crypto.ComputeCellsAndProofs", common.InvalidSize, nil)
	}
	var blobArr goethkzg.Blob
	copy(blobArr[:], blob)
	cellPtrs, proofPtrs, cerr := ctx.ComputeCellsAndKZGProofs(&blobArr, 0)
	if cerr != nil {
		return nil, nil, common.NewError("crypto.ComputeCellsAndProofs", common.InvalidFormat, cerr)
	}
	cells = make([][]byte, len(cellPtrs))
	for i, c := range cellPtrs {
		buf := make([]byte, len(c))
		copy(buf, c[:])
		cells[i] = buf
	}
	proofs = make([][BytesPerProof]byte, len(proofPtrs))
	for i, p := range proofPtrs {
		copy(proofs[i][:], p[:])
	}
	return cells, proofs, nil
}

// RecoverCells reconstructs the full cell set for a blob from a partial,
// identified subset of cells.
func (k *KZGContext) RecoverCells(cellIDs []uint64, cells [][]byte) ([][]byte, error) {
	ctx, err := k.get()
	if err != nil {
		return nil, err
	}
	cellPtrs := make([]*goethkzg.Cell, len(cells))
	for i, c := range cells {
		var cell goethkzg.Cell
		copy(cell[:], c)
		cellPtrs[i] = &cell
	}
	recovered, rerr := ctx.RecoverCells(cellIDs, cellPtrs, 0)
	if rerr != nil {
		return nil, common.NewError("crypto.RecoverCells", common.InvalidFormat, rerr)
	}
	out := make([][]byte, len(recovered))
	for i, c := range recovered {
		buf := make([]byte, len(c))
		copy(buf, c[:])
		out[i] = buf
	}
	return out, nil
}

// VerifyCellProofBatch is intentionally unimplemented: batched cell
// verification across many commitments needs a coordinated
// cell/commitment/proof index alignment that spec.md leaves as an open
// question (§9, "batch KZG verify"); callers should verify cells
// individually via single-triple VerifyBlobProof-style calls until that
// is resolved.
func (k *KZGContext) VerifyCellProofBatch() error {
	return common.NewError("crypto.VerifyCellProofBatch", common.NotImplemented,
		fmt.Errorf("batched cell-proof verification is not implemented"))
}
