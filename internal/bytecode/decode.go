package bytecode

import (
	"encoding/binary"

	"github.com/seclab-tools/redosprobe/internal/dbg"
)

// byteToOpcode maps the tag byte of an instruction to its Opcode. The VM
// assigns tag bytes densely starting at zero, in the same order opcodes are
// declared in opcode.go.
func byteToOpcode(b byte) (Opcode, bool) {
	op := Opcode(b)
	if !op.valid() {
		return 0, false
	}
	return op, true
}

// Decode parses buf into a typed instruction stream, starting at pc 0.
//
// If the byte stream is misaligned relative to true instruction boundaries,
// Decode happily produces a garbage instruction stream — there is no
// recovery logic, matching the source VM's own behavior. Decode only
// fails outright on an unrecognized opcode byte, an opcode with no known
// width, or an operand that runs past the end of buf.
func Decode(buf []byte) ([]Instruction, error) {
	var (
		out []Instruction
		pc  uint32
	)

	for int(pc) < len(buf) {
		op, ok := byteToOpcode(buf[pc])
		if !ok {
			return nil, errUnknownOpcode(pc, buf[pc])
		}

		width, ok := op.Width()
		if !ok {
			return nil, errMissingWidth(pc)
		}
		if int(pc)+width > len(buf) {
			return nil, errTruncated(pc)
		}

		instr, err := parseOne(op, buf, pc)
		if err != nil {
			return nil, err
		}

		dbg.Log(nil, "decode", "pc=%#x op=%s width=%d", pc, op.Name(), width)
		out = append(out, instr)
		pc += uint32(width)
	}

	return out, nil
}

func mk(op Opcode, pc uint32) base { return base{pc: pc, op: op} }

// parseOne decodes the single instruction at pc, whose opcode is already
// known. Operand layouts are little-endian throughout; a field described as
// a "24-bit signed immediate" is read as a full 32-bit little-endian word
// and then arithmetic-shifted right by 8 so the sign bit carries correctly.
func parseOne(op Opcode, b []byte, pc uint32) (Instruction, error) {
	switch op {
	case OpPushBt:
		return &PushBt{mk(op, pc), u32(b, pc+4)}, nil

	case OpPopBt:
		return &PopBt{mk(op, pc)}, nil

	case OpGoTo:
		return &GoTo{mk(op, pc), u32(b, pc+4)}, nil

	case OpAdvanceCpAndGoto:
		return &AdvanceCpAndGoto{mk(op, pc), i24(b, pc), u32(b, pc+4)}, nil

	case OpCheckChar:
		return &CheckChar{mk(op, pc), char16(b, pc), u32(b, pc+4)}, nil

	case OpCheckNotChar:
		return &CheckNotChar{mk(op, pc), char16(b, pc), u32(b, pc+4)}, nil

	case OpLoadCurrentChar:
		return &LoadCurrentChar{mk(op, pc), i24(b, pc), u32(b, pc+4)}, nil

	case OpLoadCurrentCharUnchecked:
		return &LoadCurrentCharUnchecked{mk(op, pc), i24(b, pc)}, nil

	case OpCheckCurrentPosition:
		return &CheckCurrentPosition{mk(op, pc), i24(b, pc), u32(b, pc+4)}, nil

	case OpSkipUntilBitInTable:
		var table [16]byte
		copy(table[:], b[pc+8:pc+24])
		return &SkipUntilBitInTable{
			mk(op, pc),
			i24(b, pc),
			i16(b, pc+4),
			table,
			u32(b, pc+24),
			u32(b, pc+28),
		}, nil

	case OpSkipUntilChar:
		return &SkipUntilChar{
			mk(op, pc),
			i24(b, pc),
			i16(b, pc+4),
			char16(b, pc+6),
			u32(b, pc+8),
			u32(b, pc+12),
		}, nil

	case OpSkipUntilCharPosChecked:
		return &SkipUntilCharPosChecked{
			mk(op, pc),
			i24(b, pc),
			i16(b, pc+4),
			char16(b, pc+6),
			u32(b, pc+8),
			u32(b, pc+16),
			u32(b, pc+12),
		}, nil

	case OpAndCheckChar:
		return &AndCheckChar{mk(op, pc), char16From32(b, pc), u32(b, pc+4), u32(b, pc+8)}, nil

	case OpAndCheckNotChar:
		return &AndCheckNotChar{mk(op, pc), char16From32(b, pc), u32(b, pc+4), u32(b, pc+8)}, nil

	case OpCheckCharInRange:
		return &CheckCharInRange{mk(op, pc), u16(b, pc+4), u16(b, pc+6), u32(b, pc+8)}, nil

	case OpCheckCharNotInRange:
		return &CheckCharNotInRange{mk(op, pc), u16(b, pc+4), u16(b, pc+6), u32(b, pc+8)}, nil

	case OpCheckGreedy:
		return &CheckGreedy{mk(op, pc), u32(b, pc+4)}, nil

	case OpCheckGt:
		return &CheckGt{mk(op, pc), i24(b, pc), u32(b, pc+4)}, nil

	case OpCheckLt:
		return &CheckLt{mk(op, pc), i24(b, pc), u32(b, pc+4)}, nil

	case OpCheckRegisterLt:
		return &CheckRegisterLt{mk(op, pc), i24(b, pc), u32(b, pc+4), u32(b, pc+8)}, nil

	case OpCheckRegisterGe:
		return &CheckRegisterGe{mk(op, pc), i24(b, pc), u32(b, pc+4), u32(b, pc+8)}, nil

	case OpCheckNotAtStart:
		return &CheckNotAtStart{mk(op, pc), i24(b, pc), u32(b, pc+4)}, nil

	case OpPushCp:
		return &PushCp{mk(op, pc)}, nil

	case OpPopCp:
		return &PopCp{mk(op, pc)}, nil

	case OpSetRegisterToCp:
		return &SetRegisterToCp{mk(op, pc), i24(b, pc), u32(b, pc+4)}, nil

	case OpAdvanceCp:
		return &AdvanceCp{mk(op, pc), i24(b, pc)}, nil

	case OpSetRegister:
		return &SetRegister{mk(op, pc), i24(b, pc), u32(b, pc+4)}, nil

	case OpAdvanceRegister:
		return &AdvanceRegister{mk(op, pc), i24(b, pc), uint32(i24(b, pc+4))}, nil

	case OpPushRegister:
		return &PushRegister{mk(op, pc), i24(b, pc)}, nil

	case OpPopRegister:
		return &PopRegister{mk(op, pc), i24(b, pc)}, nil

	case OpSetCurrentPositionFromEnd:
		return &SetCurrentPositionFromEnd{mk(op, pc), i24(b, pc)}, nil

	case OpSucceed:
		return &Succeed{mk(op, pc)}, nil

	case OpFail:
		return &Fail{mk(op, pc)}, nil

	default:
		return nil, errUnimplementedOpcode(pc)
	}
}

// i24 reads the 24-bit signed immediate packed into the first word of an
// instruction (the low byte is the opcode tag).
func i24(b []byte, pc uint32) int32 {
	return int32(binary.LittleEndian.Uint32(b[pc:pc+4])) >> 8
}

func u32(b []byte, pc uint32) uint32 {
	return binary.LittleEndian.Uint32(b[pc : pc+4])
}

func u16(b []byte, pc uint32) uint16 {
	return binary.LittleEndian.Uint16(b[pc : pc+2])
}

func i16(b []byte, pc uint32) int16 {
	return int16(binary.LittleEndian.Uint16(b[pc : pc+2]))
}

// char16 reinterprets the 24-bit signed immediate's low 16 bits as a single
// UTF-16 code unit, matching the VM's one-code-unit character operands.
func char16(b []byte, pc uint32) rune {
	return rune(uint16(i24(b, pc)))
}

// char16From32 reads a character packed the same way as char16, used by
// the AND_CHECK_CHAR family which otherwise looks like a plain 24-bit field.
func char16From32(b []byte, pc uint32) rune {
	return rune(uint16(i24(b, pc)))
}
