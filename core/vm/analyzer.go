package vm

import (
	"github.com/fxamacker/cbor/v2"
)

// Instruction is one parsed bytecode entry: an opcode at an offset,
// with its PUSH immediate bytes if any.
type Instruction struct {
	Offset    int
	Op        OpCode
	Immediate []byte
}

// Parse walks code left to right, emitting one Instruction per opcode.
// A PUSH instruction whose immediate runs past the end of code is not
// a parse error: it is retained with whatever trailing bytes remain
// (possibly fewer than its nominal size).
func Parse(code []byte) []Instruction {
	var out []Instruction
	for i := 0; i < len(code); {
		op := OpCode(code[i])
		size := op.PushSize()
		end := i + 1 + size
		if end > len(code) {
			end = len(code)
		}
		var imm []byte
		if size > 0 {
			imm = code[i+1 : end]
		}
		out = append(out, Instruction{Offset: i, Op: op, Immediate: imm})
		i = end
	}
	return out
}

// JumpdestSet returns the set of offsets in code whose opcode is
// JUMPDEST and which do not fall inside an earlier PUSH instruction's
// immediate bytes.
func JumpdestSet(code []byte) map[int]bool {
	set := make(map[int]bool)
	for _, instr := range Parse(code) {
		if instr.Op == JUMPDEST {
			set[instr.Offset] = true
		}
	}
	return set
}

// IsValidJumpDest reports whether dest is a legal jump target in code:
// present, in range, and not a PUSH-immediate byte.
func IsValidJumpDest(code []byte, dest int) bool {
	if dest < 0 || dest >= len(code) {
		return false
	}
	return JumpdestSet(code)[dest]
}

// BasicBlock is a maximal straight-line run of instructions: it starts
// at offset 0, at a JUMPDEST, or right after a terminator, and ends at
// its own terminator (inclusive) or at the last instruction in code.
type BasicBlock struct {
	Start        int
	End          int // inclusive offset of the block's last instruction
	Instructions []Instruction
}

// SplitBasicBlocks partitions code's parsed instructions into basic
// blocks per the rule above.
func SplitBasicBlocks(code []byte) []BasicBlock {
	instrs := Parse(code)
	if len(instrs) == 0 {
		return nil
	}

	var blocks []BasicBlock
	start := 0
	for i, instr := range instrs {
		startsNewBlock := instr.Op == JUMPDEST && i != start
		if startsNewBlock {
			blocks = append(blocks, BasicBlock{
				Start:        instrs[start].Offset,
				End:          instrs[i-1].Offset,
				Instructions: instrs[start:i],
			})
			start = i
		}
		if instr.Op.IsTerminator() {
			blocks = append(blocks, BasicBlock{
				Start:        instrs[start].Offset,
				End:          instr.Offset,
				Instructions: instrs[start : i+1],
			})
			start = i + 1
		}
	}
	if start < len(instrs) {
		blocks = append(blocks, BasicBlock{
			Start:        instrs[start].Offset,
			End:          instrs[len(instrs)-1].Offset,
			Instructions: instrs[start:],
		})
	}
	return blocks
}

// metadataKeys are the CBOR map keys the Solidity compiler embeds in
// its contract-metadata trailer: the source hash under one of several
// historical schemes ("ipfs", "bzzr0", "bzzr1"), the experimental flag,
// and the compiler version ("solc").
var metadataKeys = []string{"ipfs", "bzzr0", "bzzr1", "experimental", "solc"}

// MetadataInfo reports what a detected Solidity CBOR metadata trailer
// contained.
type MetadataInfo struct {
	Length int
	Keys   []string
}

// DetectMetadata reads the trailing 2-byte big-endian length L the
// Solidity compiler appends after its CBOR metadata blob, and attempts
// to CBOR-decode the preceding L bytes. Detection is advisory: any
// parse failure (too short, not valid CBOR, no recognized key) simply
// reports no metadata rather than an error, since untrusted bytecode
// that happens to end in plausible-looking bytes is completely valid
// EVM code.
func DetectMetadata(code []byte) (MetadataInfo, bool) {
	if len(code) < 2 {
		return MetadataInfo{}, false
	}
	length := int(code[len(code)-2])<<8 | int(code[len(code)-1])
	if length <= 0 || length+2 > len(code) {
		return MetadataInfo{}, false
	}
	blob := code[len(code)-2-length : len(code)-2]

	var decoded map[string]cbor.RawMessage
	if err := cbor.Unmarshal(blob, &decoded); err != nil {
		return MetadataInfo{}, false
	}

	var found []string
	for _, key := range metadataKeys {
		if _, ok := decoded[key]; ok {
			found = append(found, key)
		}
	}
	if len(found) == 0 {
		return MetadataInfo{}, false
	}
	return MetadataInfo{Length: length, Keys: found}, true
}
