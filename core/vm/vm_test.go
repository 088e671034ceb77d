package vm

import (
	"testing"

	"github.com/fxamacker/cbor/v2"
)

func TestParseHandlesPushImmediates(t *testing.T) {
	// PUSH2 0xAABB, STOP
	code := []byte{byte(PUSH2), 0xAA, 0xBB, byte(STOP)}
	instrs := Parse(code)
	if len(instrs) != 2 {
		t.Fatalf("expected 2 instructions, got %d", len(instrs))
	}
	if instrs[0].Op != PUSH2 || len(instrs[0].Immediate) != 2 {
		t.Fatalf("unexpected first instruction: %+v", instrs[0])
	}
	if instrs[1].Offset != 3 || instrs[1].Op != STOP {
		t.Fatalf("unexpected second instruction: %+v", instrs[1])
	}
}

func TestParseTruncatedPushIsNotAnError(t *testing.T) {
	// PUSH32 with only 2 trailing bytes available.
	code := []byte{byte(PUSH32), 0x01, 0x02}
	instrs := Parse(code)
	if len(instrs) != 1 {
		t.Fatalf("expected 1 instruction, got %d", len(instrs))
	}
	if len(instrs[0].Immediate) != 2 {
		t.Fatalf("expected truncated immediate of length 2, got %d", len(instrs[0].Immediate))
	}
}

func TestJumpdestSetExcludesPushData(t *testing.T) {
	// PUSH1 0x5b (looks like JUMPDEST but is push data), then a real JUMPDEST.
	code := []byte{byte(PUSH1), byte(JUMPDEST), byte(JUMPDEST)}
	set := JumpdestSet(code)
	if set[1] {
		t.Fatal("expected offset 1 (inside PUSH1 immediate) to not be a valid jumpdest")
	}
	if !set[2] {
		t.Fatal("expected offset 2 to be a valid jumpdest")
	}
}

func TestIsValidJumpDest(t *testing.T) {
	code := []byte{byte(JUMPDEST), byte(STOP)}
	if !IsValidJumpDest(code, 0) {
		t.Fatal("expected offset 0 to be a valid jumpdest")
	}
	if IsValidJumpDest(code, 1) {
		t.Fatal("expected offset 1 (STOP) to not be a valid jumpdest")
	}
	if IsValidJumpDest(code, 99) {
		t.Fatal("expected out-of-range offset to not be a valid jumpdest")
	}
}

func TestSplitBasicBlocksTerminatorAndJumpdest(t *testing.T) {
	// block1: PUSH1 0x04, JUMP (terminator)
	// block2: JUMPDEST, STOP (terminator)
	code := []byte{
		byte(PUSH1), 0x04,
		byte(JUMP),
		byte(JUMPDEST),
		byte(STOP),
	}
	blocks := SplitBasicBlocks(code)
	if len(blocks) != 2 {
		t.Fatalf("expected 2 basic blocks, got %d: %+v", len(blocks), blocks)
	}
	if blocks[0].Start != 0 || blocks[0].End != 2 {
		t.Fatalf("unexpected first block bounds: %+v", blocks[0])
	}
	if blocks[1].Start != 3 || blocks[1].End != 4 {
		t.Fatalf("unexpected second block bounds: %+v", blocks[1])
	}
}

func TestSplitBasicBlocksSingleBlockNoTerminator(t *testing.T) {
	code := []byte{byte(PUSH1), 0x01, byte(PUSH1), 0x02, byte(ADD)}
	blocks := SplitBasicBlocks(code)
	if len(blocks) != 1 {
		t.Fatalf("expected 1 basic block, got %d", len(blocks))
	}
	if blocks[0].Start != 0 || blocks[0].End != 4 {
		t.Fatalf("unexpected block bounds: %+v", blocks[0])
	}
}

func TestDetectMetadataRoundTrip(t *testing.T) {
	payload := map[string]interface{}{"ipfs": []byte{1, 2, 3}, "solc": []byte{0, 8, 30}}
	blob, err := cbor.Marshal(payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	length := len(blob)
	code := append([]byte{byte(STOP)}, blob...)
	code = append(code, byte(length>>8), byte(length))

	info, ok := DetectMetadata(code)
	if !ok {
		t.Fatal("expected metadata to be detected")
	}
	if info.Length != length {
		t.Fatalf("expected length %d, got %d", length, info.Length)
	}
	foundIPFS := false
	for _, k := range info.Keys {
		if k == "ipfs" {
			foundIPFS = true
		}
	}
	if !foundIPFS {
		t.Fatalf("expected ipfs key in detected metadata, got %v", info.Keys)
	}
}

func TestDetectMetadataAbsent(t *testing.T) {
	code := []byte{byte(PUSH1), 0x01, byte(STOP)}
	if _, ok := DetectMetadata(code); ok {
		t.Fatal("expected no metadata to be detected in plain bytecode")
	}
}

func TestStackValidatorDetectsUnderflow(t *testing.T) {
	sv := NewStackValidator()
	code := []byte{byte(ADD)} // needs 2, stack starts empty
	if _, err := sv.ValidateSequence(code, 0); err == nil {
		t.Fatal("expected underflow error")
	}
}

func TestStackValidatorTracksHeight(t *testing.T) {
	sv := NewStackValidator()
	code := []byte{byte(PUSH1), 0x01, byte(PUSH1), 0x02, byte(ADD)}
	depth, err := sv.ValidateSequence(code, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if depth != 1 {
		t.Fatalf("expected final depth 1, got %d", depth)
	}
	if sv.MaxStackHeight != 2 {
		t.Fatalf("expected max stack height 2, got %d", sv.MaxStackHeight)
	}
}

func TestGasForOpBerlinColdAccess(t *testing.T) {
	if got := GasForOp(SLOAD, Frontier); got != GasSloadFlat {
		t.Fatalf("expected flat SLOAD cost pre-Berlin, got %d", got)
	}
	if got := GasForOp(SLOAD, Berlin); got != GasSloadCold {
		t.Fatalf("expected cold SLOAD cost from Berlin onward, got %d", got)
	}
}

func TestOpCodePushSizeAndFlags(t *testing.T) {
	if PUSH1.PushSize() != 1 || PUSH32.PushSize() != 32 {
		t.Fatal("unexpected PUSH size computation")
	}
	if !JUMP.IsTerminator() || !SELFDESTRUCT.IsTerminator() {
		t.Fatal("expected JUMP and SELFDESTRUCT to be terminators")
	}
	if ADD.IsTerminator() {
		t.Fatal("expected ADD to not be a terminator")
	}
	if !DUP3.IsDup() || !SWAP5.IsSwap() || !LOG2.IsLog() {
		t.Fatal("unexpected opcode classification")
	}
}
